package main

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/dtobolski/portfolio/internal/build"
	"github.com/dtobolski/portfolio/internal/config"
	"github.com/dtobolski/portfolio/internal/scholar"
	"github.com/dtobolski/portfolio/internal/site"
)

var (
	scholarAuthorID string
	scholarHL       string
)

var scholarCmd = &cobra.Command{
	Use:   "scholar",
	Short: "Fetch Google Scholar data via SerpApi",
	Long: `Fetch Google Scholar data via SerpApi.

Requires SERPAPI_API_KEY in the environment, a .env file, or the
serpapi_api_key config key. The author ID comes from --author, then
SCHOLAR_AUTHOR_ID, then the scholar_author_id config key, then the
author_id stored in metrics.json.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		_ = godotenv.Load()
	},
}

func init() {
	scholarCmd.PersistentFlags().StringVar(&scholarAuthorID, "author", "", "Google Scholar author ID")
	scholarMetricsCmd.Flags().StringVar(&scholarHL, "hl", "", "Profile language (default: SCHOLAR_HL, config scholar_hl, or en)")

	scholarCmd.AddCommand(scholarMetricsCmd)
	scholarCmd.AddCommand(scholarPublicationsCmd)
	rootCmd.AddCommand(scholarCmd)
}

var scholarMetricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Fetch citations, h-index and i10-index into metrics.json",
	Args:  cobra.NoArgs,
	RunE:  runScholarMetrics,
}

var scholarPublicationsCmd = &cobra.Command{
	Use:   "publications",
	Short: "Fetch per-publication citation counts into scholar_publications.json",
	Args:  cobra.NoArgs,
	RunE:  runScholarPublications,
}

func runScholarMetrics(cmd *cobra.Command, args []string) error {
	dir := mustResolveDataDir()
	client := mustScholarClient()
	authorID := mustResolveAuthorID(dir)

	hl := firstNonEmpty(scholarHL, os.Getenv("SCHOLAR_HL"), globalValue("scholar_hl"))

	m, err := client.FetchMetrics(cmd.Context(), authorID, hl)
	if err != nil {
		exitScholarError(err)
	}

	path := filepath.Join(dir, config.MetricsFile)
	if err := build.WriteJSON(path, m); err != nil {
		return err
	}

	if humanOutput {
		outputHuman("Citations: %s\nh-index:   %s\ni10-index: %s\nSaved: %s\n",
			m.CitationsAll, m.HIndexAll, m.I10IndexAll, path)
		return nil
	}
	return outputJSON(StatusResponse{Status: "fetched", Path: path})
}

func runScholarPublications(cmd *cobra.Command, args []string) error {
	dir := mustResolveDataDir()
	client := mustScholarClient()
	authorID := mustResolveAuthorID(dir)

	doc, err := client.FetchArticles(cmd.Context(), authorID)
	if err != nil {
		exitScholarError(err)
	}

	path := filepath.Join(dir, site.CitationsFile)
	if err := build.WriteJSON(path, doc); err != nil {
		return err
	}

	if humanOutput {
		outputHuman("Saved %d publications to %s\n", len(doc.Items), path)
		return nil
	}
	return outputJSON(StatusResponse{Status: "fetched", Path: path, Count: len(doc.Items)})
}

// mustScholarClient creates a SerpApi client, exits if no key is set.
func mustScholarClient() *scholar.Client {
	key := config.GetSerpAPIKey()
	if key == "" {
		exitWithError(ExitConfigError, "%v: set SERPAPI_API_KEY or run 'pf config serpapi_api_key <key>'", scholar.ErrAuthError)
	}
	return scholar.NewClient(scholar.WithAPIKey(key))
}

// mustResolveAuthorID finds the author ID, exits if none is configured.
func mustResolveAuthorID(dataDir string) string {
	id := firstNonEmpty(scholarAuthorID, os.Getenv("SCHOLAR_AUTHOR_ID"), globalValue("scholar_author_id"))
	if id != "" {
		return id
	}

	if f, err := os.Open(filepath.Join(dataDir, config.MetricsFile)); err == nil {
		defer f.Close()
		if stored, err := scholar.ReadAuthorID(f); err == nil && stored != "" {
			return stored
		}
	}

	exitWithError(ExitConfigError, "author ID not found: pass --author, set SCHOLAR_AUTHOR_ID, or run 'pf config scholar_author_id <id>'")
	return ""
}

func exitScholarError(err error) {
	switch {
	case scholar.IsAuthError(err):
		exitWithError(ExitConfigError, "%v", err)
	default:
		exitWithError(ExitScholarAPIError, "%v", err)
	}
}

func globalValue(key string) string {
	cfg, err := config.LoadGlobalConfig()
	if err != nil {
		return ""
	}
	v, _ := cfg.Get(key)
	return v
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
