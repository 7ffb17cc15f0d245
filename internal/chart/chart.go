// Package chart builds per-year trend series for the metric cards and
// keeps track of which one is open.
package chart

import (
	"errors"
	"fmt"

	"github.com/dtobolski/portfolio/internal/card"
	"github.com/dtobolski/portfolio/internal/yearly"
)

// ErrUnknownMetric is returned for a key with no chart binding.
var ErrUnknownMetric = errors.New("unknown metric")

// Metric binds a card key to the yearly field it charts.
type Metric struct {
	Key         string
	Label       string
	Field       string
	Decimals    int
	Subtitle    string
	Explanation string
}

// Metrics is keyed by card key. The h-index has no yearly series of its
// own and charts the citations it is derived from.
var Metrics = map[string]Metric{
	card.KeyCitations: {
		Key:         card.KeyCitations,
		Label:       "Citations",
		Field:       yearly.FieldCitationsTotal,
		Subtitle:    "Google Scholar citations by publication year",
		Explanation: "Sum of the Scholar citation counts matched to records published in each year.",
	},
	card.KeyHIndex: {
		Key:         card.KeyHIndex,
		Label:       "h-index",
		Field:       yearly.FieldCitationsTotal,
		Subtitle:    "Citations behind the h-index, by publication year",
		Explanation: "The h-index is a single value; the bars show the yearly citation totals it is computed from.",
	},
	card.KeyMNiSWPoints: {
		Key:         card.KeyMNiSWPoints,
		Label:       "MNiSW points",
		Field:       yearly.FieldMNiSWPoints,
		Decimals:    2,
		Subtitle:    "Ministerial points per year",
		Explanation: "Sum of MNiSW points of all records published in each year.",
	},
	card.KeySumImpactFactor: {
		Key:         card.KeySumImpactFactor,
		Label:       "Sum of impact factors",
		Field:       yearly.FieldSumImpactFactor,
		Decimals:    3,
		Subtitle:    "Impact factor per year",
		Explanation: "Sum of journal impact factors of records published in each year.",
	},
	card.KeyJournalArticlesTotal: {
		Key:         card.KeyJournalArticlesTotal,
		Label:       "Journal articles",
		Field:       yearly.FieldJournalArticlesTotal,
		Subtitle:    "Journal articles per year",
		Explanation: "List A plus List B records, book chapters included.",
	},
	card.KeyPublicationsListA: {
		Key:         card.KeyPublicationsListA,
		Label:       "Publications (List A)",
		Field:       yearly.FieldPublicationsListA,
		Subtitle:    "List A publications per year",
		Explanation: "Records whose category is exactly A.",
	},
	card.KeyPublicationsListB: {
		Key:         card.KeyPublicationsListB,
		Label:       "Publications (List B)",
		Field:       yearly.FieldPublicationsListB,
		Subtitle:    "List B publications and book chapters per year",
		Explanation: "Category B records plus book chapters.",
	},
	card.KeyConferenceContributionsTotal: {
		Key:         card.KeyConferenceContributionsTotal,
		Label:       "Conference contributions",
		Field:       yearly.FieldConferenceContributionsTotal,
		Subtitle:    "Conference contributions per year",
		Explanation: "Oral presentations and posters with category Conference.",
	},
	card.KeyArticlesAndConferencesTotal: {
		Key:         card.KeyArticlesAndConferencesTotal,
		Label:       "Articles + conferences",
		Field:       yearly.FieldArticlesAndConferencesTotal,
		Subtitle:    "Articles and conference contributions per year",
		Explanation: "Journal articles plus conference contributions.",
	},
}

// Point is one bar of the series.
type Point struct {
	Year    string  `json:"year"`
	Value   float64 `json:"value"`
	Percent float64 `json:"percent"`
}

// Chart is a rendered-ready yearly series.
type Chart struct {
	Metric    Metric  `json:"-"`
	Key       string  `json:"key"`
	Title     string  `json:"title"`
	Subtitle  string  `json:"subtitle"`
	Points    []Point `json:"points"`
	Total     float64 `json:"total"`
	PeakYear  string  `json:"peak_year"`
	PeakValue float64 `json:"peak_value"`
	MaxValue  float64 `json:"max_value"`
}

// Build returns the series for key with years ascending.
func Build(key string, stats yearly.Stats) (*Chart, error) {
	m, ok := Metrics[key]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownMetric, key)
	}

	years := stats.Years()
	c := &Chart{
		Metric:   m,
		Key:      key,
		Title:    m.Label,
		Subtitle: m.Subtitle,
		Points:   make([]Point, 0, len(years)),
	}

	peakSet := false
	for _, y := range years {
		v, _ := stats[y].Value(m.Field)
		c.Points = append(c.Points, Point{Year: y, Value: v})
		c.Total += v
		if !peakSet || v > c.PeakValue {
			c.PeakYear, c.PeakValue = y, v
			peakSet = true
		}
	}

	c.MaxValue = c.PeakValue
	if c.MaxValue < 1 {
		c.MaxValue = 1
	}
	for i := range c.Points {
		c.Points[i].Percent = percent(c.Points[i].Value, c.MaxValue)
	}
	return c, nil
}

func percent(v, ceiling float64) float64 {
	p := v / ceiling * 100
	switch {
	case p < 0:
		return 0
	case p > 100:
		return 100
	}
	return p
}
