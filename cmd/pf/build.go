package main

import (
	"github.com/spf13/cobra"

	"github.com/dtobolski/portfolio/internal/build"
)

var buildInput string

func init() {
	buildCmd.Flags().StringVarP(&buildInput, "input", "i", "", "Spreadsheet export (default: <data>/publications.csv)")
	rootCmd.AddCommand(buildCmd)
}

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build publications.json and summary.json from the spreadsheet",
	Long: `Build the site data from the publications spreadsheet.

Reads the CSV export (UTF-8 or Windows-1250, comma or semicolon
delimited), computes the summary totals and writes publications.json and
summary.json into the data directory. Scholar metrics are copied from
metrics.json when present.`,
	Args: cobra.NoArgs,
	RunE: runBuild,
}

func runBuild(cmd *cobra.Command, args []string) error {
	dir := mustResolveDataDir()

	res, err := build.Run(cmd.Context(), build.Options{
		DataDir: dir,
		Input:   buildInput,
		Logger:  newLogger(),
	})
	if err != nil {
		exitWithError(ExitDataError, "%v", err)
	}

	if humanOutput {
		outputHuman("Built %d records\n  %s\n  %s\n", res.Records, res.RecordsPath, res.SummaryPath)
		return nil
	}
	return outputJSON(res)
}
