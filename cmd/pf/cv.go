package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dtobolski/portfolio/internal/cv"
)

var cvOutput string

func init() {
	cvCmd.Flags().StringVarP(&cvOutput, "output", "o", "", "Output file path (default: stdout)")
	rootCmd.AddCommand(cvCmd)
}

var cvCmd = &cobra.Command{
	Use:   "cv",
	Short: "Export the CV as Markdown",
	Long: `Export a Markdown CV: header, links, summary table, then numbered
List A, List B, book chapter and conference sections.

Examples:
  pf cv > cv.md
  pf cv -o site/assets/cv.md`,
	Args: cobra.NoArgs,
	RunE: runCV,
}

func runCV(cmd *cobra.Command, args []string) error {
	p := mustLoadPortfolio(cmd.Context())

	var buf bytes.Buffer
	if err := cv.Write(&buf, p.Profile, p.Summary, p.Records); err != nil {
		return err
	}

	if cvOutput == "" {
		_, err := buf.WriteTo(os.Stdout)
		return err
	}
	if err := os.WriteFile(cvOutput, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("writing output file: %w", err)
	}
	if humanOutput {
		outputHuman("Wrote %s\n", cvOutput)
		return nil
	}
	return outputJSON(StatusResponse{Status: "written", Path: cvOutput})
}
