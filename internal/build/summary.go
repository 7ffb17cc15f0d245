package build

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"
	"time"

	_ "modernc.org/sqlite"

	"github.com/dtobolski/portfolio/internal/document"
	"github.com/dtobolski/portfolio/internal/record"
)

const schema = `
	CREATE TABLE records (
		record_type TEXT NOT NULL,
		year_int INTEGER,
		category TEXT NOT NULL,
		subtype TEXT NOT NULL,
		points REAL,
		impact REAL
	);
`

// Row predicates shared by the totals query. Category comparisons follow
// the spreadsheet conventions, which are looser than the site's.
const (
	isChapter = `(record_type = 'book_chapter' OR LOWER(category) LIKE '%book chapter%')`
	isConf    = `(record_type = 'conference_contribution' OR LOWER(category) = 'conference')`
	isOral    = isConf + ` AND LOWER(subtype) LIKE '%oral%'`
	isPoster  = isConf + ` AND LOWER(subtype) LIKE '%poster%'`
)

const totalsQuery = `
	SELECT
		COALESCE(SUM(points), 0),
		COALESCE(SUM(impact), 0),
		COUNT(*),
		COALESCE(SUM(UPPER(category) = 'A'), 0),
		COALESCE(SUM(UPPER(category) = 'B' OR ` + isChapter + `), 0),
		COALESCE(SUM(` + isChapter + `), 0),
		COALESCE(SUM(` + isConf + `), 0),
		COALESCE(SUM(` + isOral + `), 0),
		COALESCE(SUM(` + isPoster + `), 0),
		COALESCE(SUM(` + isConf + ` AND NOT (LOWER(subtype) LIKE '%oral%' OR LOWER(subtype) LIKE '%poster%')), 0)
	FROM records
`

const yearCountsQuery = `
	SELECT year_int, COUNT(*) FROM records
	WHERE year_int IS NOT NULL
	GROUP BY year_int
`

// LoadMetrics reads the fetched Scholar metrics. A missing file yields
// blank metrics.
func LoadMetrics(path string) (document.ScholarMetrics, error) {
	var m document.ScholarMetrics
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return m, nil
		}
		return m, fmt.Errorf("reading metrics: %w", err)
	}
	if err := json.Unmarshal(data, &m); err != nil {
		return m, fmt.Errorf("parsing metrics: %w", err)
	}
	return m, nil
}

// ComputeSummary derives the summary document from records using an
// in-memory SQLite table.
func ComputeSummary(ctx context.Context, records []record.Record, metrics document.ScholarMetrics, computedFrom string, now time.Time) (*document.Summary, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	// Every connection to :memory: is a separate database.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, schema); err != nil {
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	if err := insertRecords(ctx, db, records); err != nil {
		return nil, err
	}

	var (
		points, impact                              float64
		total, listA, listB, chapters               int
		conferences, oral, posters, unspecifiedConf int
	)
	err = db.QueryRowContext(ctx, totalsQuery).Scan(
		&points, &impact, &total, &listA, &listB, &chapters,
		&conferences, &oral, &posters, &unspecifiedConf,
	)
	if err != nil {
		return nil, fmt.Errorf("computing totals: %w", err)
	}

	yearCounts, err := queryYearCounts(ctx, db)
	if err != nil {
		return nil, err
	}

	return &document.Summary{
		ComputedFrom: computedFrom,
		GeneratedOn:  now.Format(record.DateLayout),
		Totals: document.Totals{
			MNiSWPoints:                  formatFloat(points),
			SumImpactFactor:              formatFloat(math.Round(impact*1000) / 1000),
			RecordsTotal:                 formatInt(total),
			PublicationsListA:            formatInt(listA),
			PublicationsListB:            formatInt(listB),
			BookChapters:                 formatInt(chapters),
			ConferenceContributionsTotal: formatInt(conferences),
			ConferenceOralPresentations:  formatInt(oral),
			ConferencePosters:            formatInt(posters),
			ConferenceTypeUnspecified:    formatInt(unspecifiedConf),
		},
		ScholarMetrics: document.ScholarMetrics{
			CitationsAll: metrics.CitationsAll,
			HIndexAll:    metrics.HIndexAll,
			I10IndexAll:  metrics.I10IndexAll,
			LastUpdated:  metrics.LastUpdated,
			ProfileURL:   metrics.ProfileURL,
		},
		YearCounts: yearCounts,
	}, nil
}

func insertRecords(ctx context.Context, db *sql.DB, records []record.Record) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO records (record_type, year_int, category, subtype, points, impact) VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for i, r := range records {
		var year sql.NullInt64
		if y, ok := r.YearInt(); ok {
			year = sql.NullInt64{Int64: int64(y), Valid: true}
		}
		_, err := stmt.ExecContext(ctx,
			string(r.Type),
			year,
			r.Category,
			r.Subtype,
			nullFloat(r.MNiSWPoints),
			nullFloat(r.ImpactFactor),
		)
		if err != nil {
			return fmt.Errorf("inserting record %d: %w", i, err)
		}
	}
	return tx.Commit()
}

func queryYearCounts(ctx context.Context, db *sql.DB) (map[string]int, error) {
	rows, err := db.QueryContext(ctx, yearCountsQuery)
	if err != nil {
		return nil, fmt.Errorf("counting years: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var year, n int
		if err := rows.Scan(&year, &n); err != nil {
			return nil, fmt.Errorf("scanning year count: %w", err)
		}
		counts[strconv.Itoa(year)] = n
	}
	return counts, rows.Err()
}

func nullFloat(s record.Scalar) sql.NullFloat64 {
	v, ok := s.Float()
	return sql.NullFloat64{Float64: v, Valid: ok}
}

func formatFloat(v float64) record.Scalar {
	return record.Scalar(strconv.FormatFloat(v, 'f', -1, 64))
}

func formatInt(n int) record.Scalar {
	return record.Scalar(strconv.Itoa(n))
}
