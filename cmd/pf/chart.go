package main

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/dtobolski/portfolio/internal/chart"
)

var chartWidth int

func init() {
	chartCmd.Flags().IntVarP(&chartWidth, "width", "w", 40, "Bar width in cells (human output)")
	rootCmd.AddCommand(chartCmd)
}

var chartCmd = &cobra.Command{
	Use:   "chart <metric>",
	Short: "Show the yearly trend for a metric",
	Long: fmt.Sprintf(`Show the yearly trend for a metric card.

Metrics: %s

With --human the series is drawn as terminal bars.`, strings.Join(chartKeys(), ", ")),
	Args: cobra.ExactArgs(1),
	RunE: runChart,
}

func chartKeys() []string {
	keys := make([]string, 0, len(chart.Metrics))
	for k := range chart.Metrics {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func runChart(cmd *cobra.Command, args []string) error {
	p := mustLoadPortfolio(cmd.Context())

	c, err := p.OpenChart(args[0])
	if errors.Is(err, chart.ErrUnknownMetric) {
		exitWithError(ExitError, "%v (valid: %s)", err, strings.Join(chartKeys(), ", "))
	}
	if err != nil {
		return err
	}

	if !humanOutput {
		return outputJSON(c)
	}
	fmt.Println(chart.RenderText(c, chartWidth, lipgloss.NewRenderer(os.Stdout)))
	return nil
}
