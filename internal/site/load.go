package site

import (
	"context"
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/dtobolski/portfolio/internal/citation"
	"github.com/dtobolski/portfolio/internal/document"
	"github.com/dtobolski/portfolio/internal/observability"
	"github.com/dtobolski/portfolio/internal/record"
)

// Dataset is everything read from a source, with records already enriched.
type Dataset struct {
	Source  string
	Profile *document.Profile
	Summary *document.Summary
	Records []record.Record

	// Citations is nil when the optional dataset was unavailable.
	Citations   *citation.Index
	EnrichStats citation.Stats
}

// Load reads the three required documents and the optional citation
// dataset concurrently and waits for all of them. Any required failure is
// returned wrapped in ErrRequiredDocument. An unavailable citation dataset
// is logged and skipped.
func Load(ctx context.Context, src Source, logger zerolog.Logger) (*Dataset, error) {
	logger = observability.WithSourceContext(logger, src.String())

	ds := &Dataset{Source: src.String()}
	var items []citation.Item
	var citationsOK bool

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		p, err := loadRequired(gctx, src, ProfileFile, document.DecodeProfile)
		ds.Profile = p
		return err
	})
	g.Go(func() error {
		s, err := loadRequired(gctx, src, SummaryFile, document.DecodeSummary)
		ds.Summary = s
		return err
	})
	g.Go(func() error {
		records, err := loadRequired(gctx, src, RecordsFile, record.Decode)
		ds.Records = records
		return err
	})
	g.Go(func() error {
		log := observability.WithDocumentContext(logger, CitationsFile, false)
		parsed, err := decodeDocument(gctx, src, CitationsFile, citation.ParseDataset)
		if err != nil {
			if gctx.Err() == nil {
				log.Warn().Err(err).Msg("citation dataset unavailable, skipping enrichment")
			}
			return nil
		}
		items, citationsOK = parsed, true
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error().Err(err).Msg("loading portfolio data failed")
		return nil, err
	}

	if citationsOK {
		ds.Citations = citation.NewIndex(items)
	}
	ds.EnrichStats = citation.Enrich(ds.Records, ds.Citations)

	logger.Debug().
		Int("records", len(ds.Records)).
		Int("citation_keys", ds.Citations.Len()).
		Int("matched_doi", ds.EnrichStats.ByDOI).
		Int("matched_title", ds.EnrichStats.ByTitle).
		Int("unmatched", ds.EnrichStats.Unmatched).
		Msg("portfolio data loaded")

	return ds, nil
}

func loadRequired[T any](ctx context.Context, src Source, name string, decode func(io.Reader) (T, error)) (T, error) {
	v, err := decodeDocument(ctx, src, name, decode)
	if err != nil {
		var zero T
		return zero, fmt.Errorf("%w: %s: %w", ErrRequiredDocument, name, err)
	}
	return v, nil
}

func decodeDocument[T any](ctx context.Context, src Source, name string, decode func(io.Reader) (T, error)) (T, error) {
	var zero T
	rc, err := src.Open(ctx, name)
	if err != nil {
		return zero, err
	}
	defer rc.Close()

	v, err := decode(rc)
	if err != nil {
		return zero, fmt.Errorf("decoding %s: %w", name, err)
	}
	return v, nil
}
