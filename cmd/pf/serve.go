package main

import (
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dtobolski/portfolio/internal/config"
	"github.com/dtobolski/portfolio/internal/server"
)

var (
	serveAddr  string
	serveTheme string
)

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", server.DefaultConfig().Address, "Listen address")
	serveCmd.Flags().StringVar(&serveTheme, "theme", "", "Default page theme: light or dark")
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Preview the portfolio over HTTP",
	Long: `Serve the portfolio page and, for a local data directory, the raw data
files under /data/. The page is re-rendered from the data on every request.

Query parameters: theme, chart, q, year, category, type (publications) and
cq, cyear, ccategory (conferences).

Stops gracefully on SIGINT or SIGTERM.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	location := mustResolveData()
	logger := newLoggerAt("info")

	cfg := server.DefaultConfig()
	cfg.Address = serveAddr
	cfg.Theme = mustResolveTheme(serveTheme)
	if !config.IsURL(location) {
		cfg.DataDir = location
	}

	ln, err := net.Listen("tcp", cfg.Address)
	if err != nil {
		exitWithError(ExitError, "listen on %s: %v", cfg.Address, err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if humanOutput {
		outputHuman("Serving %s on http://%s\n", location, ln.Addr())
	}
	return server.NewServer(cfg, newSource(location), logger).Run(ctx, ln)
}
