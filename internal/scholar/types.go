package scholar

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/dtobolski/portfolio/internal/record"
)

// Source is stamped on every document the fetchers write.
const Source = "Google Scholar (via SerpApi)"

// Metrics is the metrics.json document. Values keep whatever form SerpApi
// returned them in.
type Metrics struct {
	Source             string        `json:"source"`
	AuthorID           string        `json:"author_id"`
	ProfileURL         string        `json:"profile_url"`
	CitationsAll       record.Scalar `json:"citations_all"`
	CitationsSince2016 record.Scalar `json:"citations_since_2016"`
	HIndexAll          record.Scalar `json:"h_index_all"`
	HIndexSince2016    record.Scalar `json:"h_index_since_2016"`
	I10IndexAll        record.Scalar `json:"i10_index_all"`
	I10IndexSince2016  record.Scalar `json:"i10_index_since_2016"`
	LastUpdated        string        `json:"last_updated"`
	Raw                RawTrace      `json:"raw"`
}

// RawTrace keeps the request metadata for debugging. It never contains the
// API key.
type RawTrace struct {
	SearchMetadata   json.RawMessage `json:"search_metadata,omitempty"`
	SearchParameters json.RawMessage `json:"search_parameters,omitempty"`
}

// Article is one entry of the per-publication citation dataset.
type Article struct {
	Title       string        `json:"title"`
	Link        string        `json:"link"`
	Year        record.Scalar `json:"year"`
	Authors     string        `json:"authors"`
	Publication string        `json:"publication"`

	// CitedBy is null when Scholar reports no count.
	CitedBy *float64 `json:"cited_by"`
}

// Publications is the scholar_publications.json document.
type Publications struct {
	Source      string    `json:"source"`
	AuthorID    string    `json:"author_id"`
	ProfileURL  string    `json:"profile_url"`
	GeneratedOn string    `json:"generated_on"`
	Items       []Article `json:"items"`
}

// authorResponse is the subset of the google_scholar_author engine
// response the fetchers read.
type authorResponse struct {
	Error   string `json:"error"`
	CitedBy struct {
		Table []map[string]json.RawMessage `json:"table"`
	} `json:"cited_by"`
	Articles []struct {
		Title       string        `json:"title"`
		Link        string        `json:"link"`
		Year        record.Scalar `json:"year"`
		Authors     string        `json:"authors"`
		Publication string        `json:"publication"`
		CitedBy     *struct {
			Value *float64 `json:"value"`
		} `json:"cited_by"`
	} `json:"articles"`
	Pagination struct {
		Next string `json:"next"`
	} `json:"serpapi_pagination"`
	SearchMetadata   json.RawMessage `json:"search_metadata"`
	SearchParameters json.RawMessage `json:"search_parameters"`
}

// ReadAuthorID returns the author_id stored in a metrics document.
func ReadAuthorID(r io.Reader) (string, error) {
	var doc struct {
		AuthorID string `json:"author_id"`
	}
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return "", fmt.Errorf("parsing metrics: %w", err)
	}
	return doc.AuthorID, nil
}
