// Package main provides the pf CLI entry point.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/dtobolski/portfolio/internal/config"
	"github.com/dtobolski/portfolio/internal/observability"
	"github.com/dtobolski/portfolio/internal/portfolio"
	"github.com/dtobolski/portfolio/internal/site"
)

// Version is set at build time via ldflags
var Version = "dev"

var (
	// humanOutput controls whether to use human-readable output
	humanOutput bool

	dataFlag      string
	logLevelFlag  string
	logFormatFlag string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "pf",
	Short: "Scientific portfolio builder",
	Long: `pf builds and previews a researcher's portfolio site.

It reads the profile, summary and publication records from a data
directory or base URL, merges Google Scholar citation counts, and renders
metric cards, filterable publication and conference lists, and yearly
trend charts.

All commands output JSON by default; use --human for text.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&humanOutput, "human", false, "Use human-readable output instead of JSON")
	rootCmd.PersistentFlags().StringVar(&dataFlag, "data", "", "Data directory or base URL (default: $PF_DATA, config data_path, or ./data)")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "", "Log level: debug, info, warn, error, disabled (default: warn, info for serve)")
	rootCmd.PersistentFlags().StringVar(&logFormatFlag, "log-format", "", "Log format: json or console")
	rootCmd.Version = Version
}

// newLogger builds the command logger at the default warn level.
func newLogger() zerolog.Logger {
	return newLoggerAt("warn")
}

// newLoggerAt builds a logger from flags, then the global config, then
// defaultLevel.
func newLoggerAt(defaultLevel string) zerolog.Logger {
	cfg := observability.DefaultLoggingConfig()
	cfg.Level = defaultLevel

	if global, err := config.LoadGlobalConfig(); err == nil {
		if global.LogLevel != "" {
			cfg.Level = global.LogLevel
		}
		if global.LogFormat != "" {
			cfg.Format = global.LogFormat
		}
	}
	if logLevelFlag != "" {
		cfg.Level = logLevelFlag
	}
	if logFormatFlag != "" {
		cfg.Format = logFormatFlag
	}
	return observability.NewLogger(cfg)
}

// mustResolveData returns the data location, exits on error.
func mustResolveData() string {
	location, err := config.ResolveDataPath(dataFlag)
	if err != nil {
		if errors.Is(err, config.ErrDataPathNotFound) {
			fmt.Fprintln(os.Stderr, config.HelpfulConfigMessage())
		}
		exitWithError(ExitConfigError, "resolving data location: %v", err)
	}
	return location
}

// mustResolveDataDir returns a local data directory, exits if the data
// location is a URL.
func mustResolveDataDir() string {
	location := mustResolveData()
	if config.IsURL(location) {
		exitWithError(ExitConfigError, "%s is a URL; this command needs a local data directory", location)
	}
	return location
}

// newSource opens the data location as a document source.
func newSource(location string) site.Source {
	return site.NewSource(location, &http.Client{Timeout: site.DefaultTimeout})
}

// loadPortfolio loads the dataset and derives the portfolio state.
func loadPortfolio(ctx context.Context, logger zerolog.Logger) (*portfolio.Portfolio, error) {
	ds, err := site.Load(ctx, newSource(mustResolveData()), logger)
	if err != nil {
		return nil, err
	}
	return portfolio.New(ds), nil
}

// mustLoadPortfolio loads the portfolio, exits on error.
func mustLoadPortfolio(ctx context.Context) *portfolio.Portfolio {
	p, err := loadPortfolio(ctx, newLogger())
	if err != nil {
		exitWithError(ExitDataError, "loading portfolio data: %v", err)
	}
	return p
}

// mustResolveTheme picks the flag value, then the stored preference, then
// the terminal background.
func mustResolveTheme(flag string) string {
	if flag != "" {
		if err := config.ValidateTheme(flag); err != nil {
			exitWithError(ExitError, "%v", err)
		}
		return flag
	}
	stored := ""
	if global, err := config.LoadGlobalConfig(); err == nil {
		stored = global.Theme
	}
	return config.ResolveTheme(stored)
}
