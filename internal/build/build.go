package build

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/dtobolski/portfolio/internal/config"
	"github.com/dtobolski/portfolio/internal/record"
	"github.com/dtobolski/portfolio/internal/site"
)

// Options configures Run.
type Options struct {
	// DataDir receives publications.json and summary.json and holds
	// metrics.json.
	DataDir string

	// Input is the spreadsheet path. Defaults to DataDir/publications.csv.
	Input string

	// Now stamps generated_on. Defaults to time.Now.
	Now func() time.Time

	Logger zerolog.Logger
}

// Result describes what Run wrote.
type Result struct {
	Records     int    `json:"records"`
	RecordsPath string `json:"records_path"`
	SummaryPath string `json:"summary_path"`
}

// Run reads the spreadsheet and writes the records and summary documents.
func Run(ctx context.Context, opts Options) (*Result, error) {
	if opts.DataDir == "" {
		return nil, fmt.Errorf("data directory is required")
	}
	input := opts.Input
	if input == "" {
		input = filepath.Join(opts.DataDir, config.InputCSV)
	}
	now := time.Now
	if opts.Now != nil {
		now = opts.Now
	}

	records, err := ReadCSV(input)
	if err != nil {
		return nil, err
	}
	opts.Logger.Debug().Str("input", input).Int("records", len(records)).Msg("spreadsheet read")

	metrics, err := LoadMetrics(filepath.Join(opts.DataDir, config.MetricsFile))
	if err != nil {
		return nil, err
	}

	summary, err := ComputeSummary(ctx, records, metrics, filepath.ToSlash(input), now())
	if err != nil {
		return nil, err
	}

	res := &Result{
		Records:     len(records),
		RecordsPath: filepath.Join(opts.DataDir, site.RecordsFile),
		SummaryPath: filepath.Join(opts.DataDir, site.SummaryFile),
	}
	if err := WriteJSON(res.RecordsPath, SortForExport(records)); err != nil {
		return nil, err
	}
	if err := WriteJSON(res.SummaryPath, summary); err != nil {
		return nil, err
	}

	opts.Logger.Info().
		Int("records", res.Records).
		Str("records_path", res.RecordsPath).
		Str("summary_path", res.SummaryPath).
		Msg("build completed")
	return res, nil
}

// SortForExport returns a copy ordered by year descending, then start date
// descending. Records without a year or date sort after those with one;
// ties keep input order.
func SortForExport(records []record.Record) []record.Record {
	type key struct {
		year int
		date int64
	}
	keyOf := func(r record.Record) key {
		k := key{year: -1}
		if y, ok := r.YearInt(); ok {
			k.year = y
		}
		if t, ok := record.ParseDate(r.StartDate); ok {
			k.date = t.Unix()
		}
		return k
	}

	out := make([]record.Record, len(records))
	copy(out, records)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := keyOf(out[i]), keyOf(out[j])
		if a.year != b.year {
			return a.year > b.year
		}
		return a.date > b.date
	})
	return out
}

// WriteJSON writes v indented with non-ASCII and HTML characters kept
// literal.
func WriteJSON(path string, v any) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding %s: %w", filepath.Base(path), err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", filepath.Dir(path), err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
