package main

import (
	"github.com/spf13/cobra"

	"github.com/dtobolski/portfolio/internal/card"
	"github.com/dtobolski/portfolio/internal/citation"
)

func init() {
	rootCmd.AddCommand(metricsCmd)
}

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Show the headline metric cards",
	Long: `Show the headline metric cards in display order.

Upstream values come from summary.json; the List A, List B, journal
article and combined counts are recomputed from the records.`,
	Args: cobra.NoArgs,
	RunE: runMetrics,
}

// MetricsResponse is the JSON output of pf metrics.
type MetricsResponse struct {
	GeneratedOn   string         `json:"generated_on"`
	Cards         []card.Card    `json:"cards"`
	CitationsUsed bool           `json:"citations_used"`
	Enrichment    citation.Stats `json:"enrichment"`
}

func runMetrics(cmd *cobra.Command, args []string) error {
	p := mustLoadPortfolio(cmd.Context())

	if !humanOutput {
		return outputJSON(MetricsResponse{
			GeneratedOn:   p.Summary.GeneratedOn,
			Cards:         p.Cards,
			CitationsUsed: p.CitationsUsed,
			Enrichment:    p.EnrichStats,
		})
	}

	width := 0
	for _, c := range p.Cards {
		width = max(width, len(c.Label))
	}
	for _, c := range p.Cards {
		outputHuman("%-*s  %s\n", width, c.Label, c.Value)
	}
	if p.Summary.GeneratedOn != "" {
		outputHuman("\nData generated on %s\n", p.Summary.GeneratedOn)
	}
	return nil
}
