// Package yearly buckets records by year and derived category.
package yearly

import (
	"sort"
	"strconv"
	"strings"

	"github.com/dtobolski/portfolio/internal/record"
)

// Stat holds the per-year counts and sums.
type Stat struct {
	RecordsTotal                 int `json:"records_total"`
	PublicationsListA            int `json:"publications_list_a"`
	PublicationsListB            int `json:"publications_list_b"`
	JournalArticlesTotal         int `json:"journal_articles_total"`
	ConferenceContributionsTotal int `json:"conference_contributions_total"`
	ArticlesAndConferencesTotal  int `json:"articles_and_conferences_total"`

	MNiSWPoints     float64 `json:"mnicsw_points"`
	SumImpactFactor float64 `json:"sum_impact_factor"`
	CitationsTotal  float64 `json:"citations_total"`
}

// Stats maps a year to its Stat.
type Stats map[string]Stat

// IsListA reports category A membership.
func IsListA(r record.Record) bool {
	return r.Category == record.CategoryA
}

// IsListB reports category B membership; book chapters count as List B.
func IsListB(r record.Record) bool {
	return r.Category == record.CategoryB ||
		r.Type == record.BookChapter ||
		strings.Contains(strings.ToLower(r.Category), "book chapter")
}

// IsJournalArticle reports List A or List B membership.
func IsJournalArticle(r record.Record) bool {
	return IsListA(r) || IsListB(r)
}

// IsConference reports a conference contribution.
func IsConference(r record.Record) bool {
	return r.Type == record.ConferenceContribution || r.Category == record.CategoryConference
}

// IsArticleOrConference reports a journal article or a conference contribution.
func IsArticleOrConference(r record.Record) bool {
	return IsJournalArticle(r) || IsConference(r)
}

// Aggregate builds per-year stats. Records without a year are skipped.
func Aggregate(records []record.Record) Stats {
	stats := make(Stats)
	for _, r := range records {
		year := r.YearKey()
		if year == "" {
			continue
		}

		s := stats[year]
		s.RecordsTotal++
		if IsListA(r) {
			s.PublicationsListA++
		}
		if IsListB(r) {
			s.PublicationsListB++
		}
		if IsJournalArticle(r) {
			s.JournalArticlesTotal++
		}
		if IsConference(r) {
			s.ConferenceContributionsTotal++
		}
		if IsArticleOrConference(r) {
			s.ArticlesAndConferencesTotal++
		}
		s.MNiSWPoints += record.Number(r.MNiSWPoints)
		s.SumImpactFactor += record.Number(r.ImpactFactor)
		s.CitationsTotal += r.Citations()
		stats[year] = s
	}
	return stats
}

// Years returns the keys of stats ordered ascending by numeric value.
// Non-numeric keys sort after numeric ones, lexically.
func (s Stats) Years() []string {
	years := make([]string, 0, len(s))
	for y := range s {
		years = append(years, y)
	}
	sort.Slice(years, func(i, j int) bool {
		return yearLess(years[i], years[j])
	})
	return years
}

func yearLess(a, b string) bool {
	ai, aErr := strconv.Atoi(a)
	bi, bErr := strconv.Atoi(b)
	switch {
	case aErr == nil && bErr == nil:
		if ai != bi {
			return ai < bi
		}
		return a < b
	case aErr == nil:
		return true
	case bErr == nil:
		return false
	default:
		return a < b
	}
}

// Totals sums every year into one Stat.
func (s Stats) Totals() Stat {
	var t Stat
	for _, st := range s {
		t.RecordsTotal += st.RecordsTotal
		t.PublicationsListA += st.PublicationsListA
		t.PublicationsListB += st.PublicationsListB
		t.JournalArticlesTotal += st.JournalArticlesTotal
		t.ConferenceContributionsTotal += st.ConferenceContributionsTotal
		t.ArticlesAndConferencesTotal += st.ArticlesAndConferencesTotal
		t.MNiSWPoints += st.MNiSWPoints
		t.SumImpactFactor += st.SumImpactFactor
		t.CitationsTotal += st.CitationsTotal
	}
	return t
}

// Field names accepted by Value, matching the JSON keys of Stat.
const (
	FieldRecordsTotal                 = "records_total"
	FieldPublicationsListA            = "publications_list_a"
	FieldPublicationsListB            = "publications_list_b"
	FieldJournalArticlesTotal         = "journal_articles_total"
	FieldConferenceContributionsTotal = "conference_contributions_total"
	FieldArticlesAndConferencesTotal  = "articles_and_conferences_total"
	FieldMNiSWPoints                  = "mnicsw_points"
	FieldSumImpactFactor              = "sum_impact_factor"
	FieldCitationsTotal               = "citations_total"
)

// Value returns the named field as a number. ok is false for unknown names.
func (st Stat) Value(field string) (v float64, ok bool) {
	switch field {
	case FieldRecordsTotal:
		return float64(st.RecordsTotal), true
	case FieldPublicationsListA:
		return float64(st.PublicationsListA), true
	case FieldPublicationsListB:
		return float64(st.PublicationsListB), true
	case FieldJournalArticlesTotal:
		return float64(st.JournalArticlesTotal), true
	case FieldConferenceContributionsTotal:
		return float64(st.ConferenceContributionsTotal), true
	case FieldArticlesAndConferencesTotal:
		return float64(st.ArticlesAndConferencesTotal), true
	case FieldMNiSWPoints:
		return st.MNiSWPoints, true
	case FieldSumImpactFactor:
		return st.SumImpactFactor, true
	case FieldCitationsTotal:
		return st.CitationsTotal, true
	default:
		return 0, false
	}
}
