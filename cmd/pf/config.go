package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dtobolski/portfolio/internal/config"
)

func init() {
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config [key] [value]",
	Short: "Get or set configuration values",
	Long: fmt.Sprintf(`Get or set values in the global config file.

Usage:
  pf config                              # Show all config
  pf config data_path                    # Get specific value
  pf config data_path ~/site/data        # Set value
  pf config scholar-author-id Rj58qXIAAAAJ

Keys (dashes and underscores are interchangeable):
  %s`, strings.Join(config.Keys, "\n  ")),
	Args: cobra.MaximumNArgs(2),
	RunE: runConfig,
}

func runConfig(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadGlobalConfig()
	if err != nil {
		exitWithError(ExitConfigError, "loading config: %v", err)
	}

	// No args: show all config
	if len(args) == 0 {
		values := make(map[string]string, len(config.Keys))
		for _, k := range config.Keys {
			v, _ := cfg.Get(k)
			values[k] = maskSecret(k, v)
		}
		if humanOutput {
			for _, k := range config.Keys {
				outputHuman("%-18s %s\n", k+":", values[k])
			}
			return nil
		}
		return outputJSON(values)
	}

	key := normalizeKey(args[0])

	// One arg: get specific value
	if len(args) == 1 {
		v, err := cfg.Get(key)
		if errors.Is(err, config.ErrUnknownKey) {
			exitWithError(ExitError, "unknown configuration key: %s", args[0])
		}
		if humanOutput {
			fmt.Println(v)
			return nil
		}
		return outputJSON(map[string]string{key: v})
	}

	// Two args: set value
	if err := cfg.Set(key, args[1]); err != nil {
		if errors.Is(err, config.ErrUnknownKey) {
			exitWithError(ExitError, "unknown configuration key: %s", args[0])
		}
		exitWithError(ExitConfigError, "%v", err)
	}
	if err := cfg.Save(); err != nil {
		exitWithError(ExitError, "saving config: %v", err)
	}

	stored, _ := cfg.Get(key)
	if humanOutput {
		outputHuman("Updated %s to %s\n", key, maskSecret(key, stored))
		return nil
	}
	return outputJSON(UpdateResponse{Status: "updated", Key: key, Value: maskSecret(key, stored)})
}

// normalizeKey converts key formats (data-path, DATA_PATH) to data_path.
func normalizeKey(key string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(key)), "-", "_")
}

// maskSecret hides all but the last four characters of the API key.
func maskSecret(key, value string) string {
	if key != "serpapi_api_key" || value == "" {
		return value
	}
	if len(value) <= 4 {
		return "****"
	}
	return strings.Repeat("*", len(value)-4) + value[len(value)-4:]
}
