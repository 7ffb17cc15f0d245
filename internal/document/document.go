// Package document defines the profile and summary documents produced by
// the build step and read by the portfolio.
package document

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/dtobolski/portfolio/internal/record"
)

// Profile identifies the portfolio owner.
type Profile struct {
	Name        string `json:"name"`
	Role        string `json:"role"`
	Affiliation string `json:"affiliation"`
	Location    string `json:"location"`
	Email       string `json:"email"`
	Links       Links  `json:"links"`
}

// Summary holds totals precomputed upstream.
type Summary struct {
	ComputedFrom   string         `json:"computed_from,omitempty"`
	GeneratedOn    string         `json:"generated_on"`
	Totals         Totals         `json:"totals"`
	ScholarMetrics ScholarMetrics `json:"scholar_metrics"`
	YearCounts     map[string]int `json:"year_counts,omitempty"`
}

// Totals are the upstream aggregate values. Every field may be a number, a
// numeric string or missing.
type Totals struct {
	MNiSWPoints                  record.Scalar `json:"mnicsw_points"`
	SumImpactFactor              record.Scalar `json:"sum_impact_factor"`
	RecordsTotal                 record.Scalar `json:"records_total,omitempty"`
	PublicationsListA            record.Scalar `json:"publications_list_a"`
	PublicationsListB            record.Scalar `json:"publications_list_b,omitempty"`
	BookChapters                 record.Scalar `json:"book_chapters,omitempty"`
	ConferenceContributionsTotal record.Scalar `json:"conference_contributions_total"`
	ConferenceOralPresentations  record.Scalar `json:"conference_oral_presentations"`
	ConferencePosters            record.Scalar `json:"conference_posters"`
	ConferenceTypeUnspecified    record.Scalar `json:"conference_type_unspecified,omitempty"`
}

// ScholarMetrics are the author-level Google Scholar values.
type ScholarMetrics struct {
	CitationsAll record.Scalar `json:"citations_all"`
	HIndexAll    record.Scalar `json:"h_index_all"`
	I10IndexAll  record.Scalar `json:"i10_index_all,omitempty"`
	LastUpdated  string        `json:"last_updated"`
	ProfileURL   string        `json:"profile_url"`
}

// DecodeProfile reads a profile document.
func DecodeProfile(r io.Reader) (*Profile, error) {
	var p Profile
	if err := json.NewDecoder(r).Decode(&p); err != nil {
		return nil, fmt.Errorf("parsing profile: %w", err)
	}
	return &p, nil
}

// DecodeSummary reads a summary document.
func DecodeSummary(r io.Reader) (*Summary, error) {
	var s Summary
	if err := json.NewDecoder(r).Decode(&s); err != nil {
		return nil, fmt.Errorf("parsing summary: %w", err)
	}
	return &s, nil
}
