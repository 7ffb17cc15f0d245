package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dtobolski/portfolio/internal/listview"
	"github.com/dtobolski/portfolio/internal/record"
)

var (
	listSearch   string
	listYear     string
	listCategory string
	listType     string
)

func init() {
	listCmd.Flags().StringVarP(&listSearch, "search", "s", "", "Case-insensitive search text")
	listCmd.Flags().StringVar(&listYear, "year", "", "Only records from this year")
	listCmd.Flags().StringVar(&listCategory, "category", "", "Category (publications) or subtype (conferences)")
	listCmd.Flags().StringVar(&listType, "type", "", "Record type (publications only)")
	rootCmd.AddCommand(listCmd)
}

var listCmd = &cobra.Command{
	Use:       "list publications|conferences",
	Short:     "List publications or conference contributions",
	ValidArgs: []string{string(listview.Publications), string(listview.Conferences)},
	Long: `List one partition of the records with the page's filters applied.

Publications are sorted by year (newest first), then List A before List B,
then alphabetically by citation. Conferences keep their input order.

Examples:
  pf list publications --category A
  pf list conferences --search poster --human`,
	Args: cobra.ExactArgs(1),
	RunE: runList,
}

// ListResponse is the JSON output of pf list.
type ListResponse struct {
	Kind    listview.Kind    `json:"kind"`
	State   listview.State   `json:"state"`
	Options listview.Options `json:"options"`
	Total   int              `json:"total"`
	Count   int              `json:"count"`
	Records []record.Record  `json:"records"`
}

func runList(cmd *cobra.Command, args []string) error {
	kind := listview.Kind(args[0])
	if kind != listview.Publications && kind != listview.Conferences {
		exitWithError(ExitError, "unknown list %q (valid: publications, conferences)", args[0])
	}

	p := mustLoadPortfolio(cmd.Context())
	view, err := p.Dispatch(kind,
		listview.SetSearch(listSearch),
		listview.SetYear(listYear),
		listview.SetCategory(listCategory),
		listview.SetType(listType),
	)
	if err != nil {
		return err
	}
	engine, _ := p.List(kind)

	if !humanOutput {
		if view == nil {
			view = []record.Record{}
		}
		return outputJSON(ListResponse{
			Kind:    kind,
			State:   engine.State(),
			Options: engine.Options(),
			Total:   engine.Total(),
			Count:   len(view),
			Records: view,
		})
	}

	for i, r := range view {
		outputHuman("%3d. %s\n", i+1, truncateString(r.Citation, ListTitleMaxLen))
		if meta := recordMeta(kind, r); meta != "" {
			outputHuman("     %s\n", meta)
		}
	}
	outputHuman("\n%d of %d records\n", len(view), engine.Total())
	return nil
}

func recordMeta(kind listview.Kind, r record.Record) string {
	var parts []string
	if y := r.YearKey(); y != "" {
		parts = append(parts, y)
	}
	if kind == listview.Conferences {
		if r.Subtype != "" {
			parts = append(parts, r.Subtype)
		}
		if d := record.FormatDateRange(r.StartDate, r.EndDate); d != "" {
			parts = append(parts, d)
		}
		if r.City != "" {
			parts = append(parts, r.City)
		}
	} else {
		if r.Category != "" {
			parts = append(parts, r.Category)
		}
		if !r.MNiSWPoints.IsEmpty() {
			parts = append(parts, "MNiSW "+r.MNiSWPoints.String())
		}
		if r.ScholarCitations != nil {
			parts = append(parts, fmt.Sprintf("cited %g", *r.ScholarCitations))
		}
	}
	return strings.Join(parts, " · ")
}
