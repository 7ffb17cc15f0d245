package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dtobolski/portfolio/internal/chart"
	"github.com/dtobolski/portfolio/internal/page"
)

var (
	renderOutput string
	renderChart  string
	renderTheme  string
)

func init() {
	renderCmd.Flags().StringVarP(&renderOutput, "output", "o", "", "Output file path (default: stdout)")
	renderCmd.Flags().StringVar(&renderChart, "chart", "", "Open the trend chart for a metric key")
	renderCmd.Flags().StringVar(&renderTheme, "theme", "", "Page theme: light or dark (default: stored preference)")
	rootCmd.AddCommand(renderCmd)
}

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render the portfolio page as HTML",
	Long: `Render the portfolio page as a single static HTML document.

When a required document cannot be loaded the page shows a single error
card instead of the metric grid, and the command exits with a data error.

Examples:
  pf render > index.html
  pf render --chart mnicsw_points --theme dark -o index.html`,
	Args: cobra.NoArgs,
	RunE: runRender,
}

func runRender(cmd *cobra.Command, args []string) error {
	theme := mustResolveTheme(renderTheme)

	var buf bytes.Buffer
	p, loadErr := loadPortfolio(cmd.Context(), newLogger())
	if loadErr != nil {
		if err := page.RenderError(&buf, loadErr, theme); err != nil {
			return err
		}
	} else {
		err := page.Render(&buf, p, page.Options{Theme: theme, ChartKey: renderChart})
		if errors.Is(err, chart.ErrUnknownMetric) {
			exitWithError(ExitError, "%v", err)
		}
		if err != nil {
			return err
		}
	}

	if renderOutput == "" {
		if _, err := buf.WriteTo(os.Stdout); err != nil {
			return err
		}
	} else {
		if err := os.WriteFile(renderOutput, buf.Bytes(), 0o644); err != nil {
			return fmt.Errorf("writing output file: %w", err)
		}
		if humanOutput {
			outputHuman("Wrote %s\n", renderOutput)
		} else {
			outputJSON(StatusResponse{Status: "rendered", Path: renderOutput})
		}
	}

	if loadErr != nil {
		// stdout already carries the error page
		fmt.Fprintf(os.Stderr, "error: loading portfolio data: %v\n", loadErr)
		os.Exit(ExitDataError)
	}
	return nil
}
