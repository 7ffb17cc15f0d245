package main

import (
	"github.com/spf13/cobra"

	"github.com/dtobolski/portfolio/internal/config"
)

func init() {
	rootCmd.AddCommand(themeCmd)
}

var themeCmd = &cobra.Command{
	Use:       "theme [light|dark|auto]",
	Short:     "Show or set the page theme preference",
	ValidArgs: []string{config.ThemeLight, config.ThemeDark, "auto"},
	Long: `Show or set the page theme preference.

With no argument, prints the stored preference and the theme in effect.
"auto" clears the preference so the terminal background decides.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTheme,
}

// ThemeResponse is the JSON output of pf theme.
type ThemeResponse struct {
	Stored    string `json:"stored"`
	Effective string `json:"effective"`
}

func runTheme(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadGlobalConfig()
	if err != nil {
		exitWithError(ExitConfigError, "loading config: %v", err)
	}

	if len(args) == 1 {
		value := args[0]
		if value == "auto" {
			value = config.ThemeAuto
		}
		if err := cfg.Set("theme", value); err != nil {
			exitWithError(ExitError, "%v", err)
		}
		if err := cfg.Save(); err != nil {
			exitWithError(ExitConfigError, "saving config: %v", err)
		}
	}

	resp := ThemeResponse{Stored: cfg.Theme, Effective: config.ResolveTheme(cfg.Theme)}
	if resp.Stored == "" {
		resp.Stored = "auto"
	}
	if humanOutput {
		outputHuman("theme: %s (in effect: %s)\n", resp.Stored, resp.Effective)
		return nil
	}
	return outputJSON(resp)
}
