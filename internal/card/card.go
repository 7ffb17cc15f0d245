// Package card builds the headline metric cards.
package card

import (
	"fmt"
	"math"
	"strconv"

	"github.com/dtobolski/portfolio/internal/document"
	"github.com/dtobolski/portfolio/internal/record"
	"github.com/dtobolski/portfolio/internal/yearly"
)

// Placeholder is shown for missing or unparseable values.
const Placeholder = "—"

// Card keys, in display order. The same keys select trend charts.
const (
	KeyCitations                    = "citations"
	KeyHIndex                       = "h_index"
	KeyMNiSWPoints                  = "mnicsw_points"
	KeySumImpactFactor              = "sum_impact_factor"
	KeyJournalArticlesTotal         = "journal_articles_total"
	KeyPublicationsListA            = "publications_list_a"
	KeyPublicationsListB            = "publications_list_b"
	KeyConferenceContributionsTotal = "conference_contributions_total"
	KeyArticlesAndConferencesTotal  = "articles_and_conferences_total"
)

// Keys lists every card key in display order.
var Keys = []string{
	KeyCitations,
	KeyHIndex,
	KeyMNiSWPoints,
	KeySumImpactFactor,
	KeyJournalArticlesTotal,
	KeyPublicationsListA,
	KeyPublicationsListB,
	KeyConferenceContributionsTotal,
	KeyArticlesAndConferencesTotal,
}

// Value sources.
const (
	SourceUpstream = "upstream"
	SourceComputed = "computed"
)

// Card is one headline metric.
type Card struct {
	Key    string `json:"key"`
	Label  string `json:"label"`
	Value  string `json:"value"`
	Hint   string `json:"hint"`
	Source string `json:"source"`
}

// counts are the values recomputed from the loaded records.
type counts struct {
	listA, listB, journal, combined int
}

func countRecords(records []record.Record) counts {
	var c counts
	for _, r := range records {
		if yearly.IsListA(r) {
			c.listA++
		}
		if yearly.IsListB(r) {
			c.listB++
		}
		if yearly.IsJournalArticle(r) {
			c.journal++
		}
		if yearly.IsArticleOrConference(r) {
			c.combined++
		}
	}
	return c
}

// Build returns the cards in display order. Upstream totals are used for
// citations, h-index, points, impact factor and conferences. List counts
// and derived totals are recomputed from records and override upstream
// values; pass nil records to keep the upstream ones.
func Build(summary *document.Summary, records []record.Record) []Card {
	if summary == nil {
		summary = &document.Summary{}
	}
	totals := summary.Totals
	scholar := summary.ScholarMetrics

	cards := []Card{
		{
			Key:    KeyCitations,
			Label:  "Citations",
			Value:  FormatScalar(scholar.CitationsAll, 0),
			Hint:   withUpdated("Google Scholar, all years", scholar.LastUpdated),
			Source: SourceUpstream,
		},
		{
			Key:    KeyHIndex,
			Label:  "h-index",
			Value:  FormatScalar(scholar.HIndexAll, 0),
			Hint:   withUpdated("Google Scholar h-index", scholar.LastUpdated),
			Source: SourceUpstream,
		},
		{
			Key:    KeyMNiSWPoints,
			Label:  "MNiSW points",
			Value:  FormatScalar(totals.MNiSWPoints, 2),
			Hint:   "Sum of ministerial points across all records",
			Source: SourceUpstream,
		},
		{
			Key:    KeySumImpactFactor,
			Label:  "Sum of impact factors",
			Value:  FormatScalar(totals.SumImpactFactor, 3),
			Hint:   "Sum of journal impact factors",
			Source: SourceUpstream,
		},
		{
			Key:    KeyJournalArticlesTotal,
			Label:  "Journal articles",
			Value:  Placeholder,
			Hint:   "List A + List B, book chapters included",
			Source: SourceComputed,
		},
		{
			Key:    KeyPublicationsListA,
			Label:  "Publications (List A)",
			Value:  FormatScalar(totals.PublicationsListA, 0),
			Hint:   "Journals on the MNiSW list A",
			Source: SourceUpstream,
		},
		{
			Key:    KeyPublicationsListB,
			Label:  "Publications (List B)",
			Value:  FormatScalar(totals.PublicationsListB, 0),
			Hint:   "List B journals and book chapters",
			Source: SourceUpstream,
		},
		{
			Key:    KeyConferenceContributionsTotal,
			Label:  "Conference contributions",
			Value:  FormatScalar(totals.ConferenceContributionsTotal, 0),
			Hint:   conferenceHint(totals),
			Source: SourceUpstream,
		},
		{
			Key:    KeyArticlesAndConferencesTotal,
			Label:  "Articles + conferences",
			Value:  Placeholder,
			Hint:   "Journal articles and conference contributions",
			Source: SourceComputed,
		},
	}

	if records == nil {
		return cards
	}

	c := countRecords(records)
	computed := map[string]int{
		KeyJournalArticlesTotal:        c.journal,
		KeyPublicationsListA:           c.listA,
		KeyPublicationsListB:           c.listB,
		KeyArticlesAndConferencesTotal: c.combined,
	}
	for i := range cards {
		if v, ok := computed[cards[i].Key]; ok {
			cards[i].Value = strconv.Itoa(v)
			cards[i].Source = SourceComputed
		}
	}
	return cards
}

func withUpdated(hint, lastUpdated string) string {
	if lastUpdated == "" {
		return hint
	}
	return fmt.Sprintf("%s (updated %s)", hint, lastUpdated)
}

func conferenceHint(t document.Totals) string {
	if t.ConferenceOralPresentations.IsEmpty() && t.ConferencePosters.IsEmpty() {
		return "Oral presentations and posters"
	}
	return fmt.Sprintf("%s oral · %s posters",
		FormatScalar(t.ConferenceOralPresentations, 0),
		FormatScalar(t.ConferencePosters, 0))
}

// FormatScalar renders a numeric scalar rounded to at most decimals places,
// or Placeholder when it is missing or not a number.
func FormatScalar(s record.Scalar, decimals int) string {
	v, ok := s.Float()
	if !ok {
		return Placeholder
	}
	return FormatNumber(v, decimals)
}

// FormatNumber rounds to at most decimals places without trailing zeros.
func FormatNumber(v float64, decimals int) string {
	if decimals < 0 {
		decimals = 0
	}
	p := math.Pow(10, float64(decimals))
	rounded := math.Round(v*p) / p
	if rounded == 0 {
		rounded = 0 // no "-0"
	}
	return strconv.FormatFloat(rounded, 'f', -1, 64)
}
