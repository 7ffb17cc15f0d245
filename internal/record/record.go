// Package record defines the bibliographic record types shared by every
// portfolio component.
package record

import (
	"math"
	"strconv"
	"strings"
)

// Type is the record_type discriminant.
type Type string

// Known record types.
const (
	JournalArticle         Type = "journal_article"
	OtherPublication       Type = "other_publication"
	BookChapter            Type = "book_chapter"
	ConferenceContribution Type = "conference_contribution"
)

// ValidTypes lists the supported record_type values.
var ValidTypes = []Type{JournalArticle, OtherPublication, BookChapter, ConferenceContribution}

// Category values with special meaning. Any other string is kept as-is.
const (
	CategoryA           = "A"
	CategoryB           = "B"
	CategoryBookChapter = "Book chapter"
	CategoryConference  = "Conference"
)

// Record is one publication or conference contribution.
type Record struct {
	Type     Type   `json:"record_type"`
	Year     Scalar `json:"year"`
	Category string `json:"category"`
	Subtype  string `json:"subtype"`
	Citation string `json:"citation"`

	// Optional
	DOI          string `json:"doi,omitempty"`
	MNiSWPoints  Scalar `json:"mnicsw_points,omitempty"`
	ImpactFactor Scalar `json:"impact_factor,omitempty"`
	StartDate    string `json:"start_date,omitempty"`
	EndDate      string `json:"end_date,omitempty"`
	City         string `json:"city,omitempty"`
	Country      string `json:"country,omitempty"`
	Award        string `json:"award,omitempty"`

	// Set by citation enrichment; nil when no match was found.
	ScholarCitations *float64 `json:"scholar_citations,omitempty"`
}

// YearKey returns the trimmed year, or "" when the record has none.
// Whole numbers are written without a fraction, so 2020.0 and "2020" share
// a key.
func (r Record) YearKey() string {
	text := strings.TrimSpace(r.Year.String())
	if v, ok := r.Year.Float(); ok && v == math.Trunc(v) && math.Abs(v) < 1e9 {
		return strconv.Itoa(int(v))
	}
	return text
}

// IsConference reports whether the record belongs to the conference partition.
func (r Record) IsConference() bool {
	return r.Type == ConferenceContribution || r.Category == CategoryConference
}

// IsPublication reports whether the record belongs to the publication partition.
// It is always the negation of IsConference.
func (r Record) IsPublication() bool {
	return !r.IsConference()
}

// Citations returns the merged Scholar citation count, or 0.
func (r Record) Citations() float64 {
	if r.ScholarCitations == nil {
		return 0
	}
	return *r.ScholarCitations
}

// Partition splits records into publications and conferences, preserving order.
func Partition(records []Record) (publications, conferences []Record) {
	publications = make([]Record, 0, len(records))
	conferences = make([]Record, 0)
	for _, r := range records {
		if r.IsConference() {
			conferences = append(conferences, r)
		} else {
			publications = append(publications, r)
		}
	}
	return publications, conferences
}
