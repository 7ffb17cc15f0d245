// Package portfolio owns the state derived from one loaded dataset: yearly
// stats, metric cards, both list engines and the chart panel.
package portfolio

import (
	"fmt"

	"github.com/dtobolski/portfolio/internal/card"
	"github.com/dtobolski/portfolio/internal/chart"
	"github.com/dtobolski/portfolio/internal/citation"
	"github.com/dtobolski/portfolio/internal/document"
	"github.com/dtobolski/portfolio/internal/listview"
	"github.com/dtobolski/portfolio/internal/record"
	"github.com/dtobolski/portfolio/internal/site"
	"github.com/dtobolski/portfolio/internal/yearly"
)

// Portfolio is not safe for concurrent use.
type Portfolio struct {
	Profile *document.Profile
	Summary *document.Summary
	Records []record.Record
	Stats   yearly.Stats
	Cards   []card.Card

	Publications *listview.Engine
	Conferences  *listview.Engine
	Chart        *chart.Panel

	EnrichStats   citation.Stats
	CitationsUsed bool
}

// New derives everything from ds. Records are expected to be enriched.
func New(ds *site.Dataset) *Portfolio {
	profile := ds.Profile
	if profile == nil {
		profile = &document.Profile{}
	}
	summary := ds.Summary
	if summary == nil {
		summary = &document.Summary{}
	}
	records := ds.Records
	if records == nil {
		records = []record.Record{}
	}

	stats := yearly.Aggregate(records)
	pubs, confs := record.Partition(records)

	return &Portfolio{
		Profile:       profile,
		Summary:       summary,
		Records:       records,
		Stats:         stats,
		Cards:         card.Build(summary, records),
		Publications:  listview.New(listview.Publications, pubs),
		Conferences:   listview.New(listview.Conferences, confs),
		Chart:         chart.NewPanel(stats),
		EnrichStats:   ds.EnrichStats,
		CitationsUsed: ds.Citations != nil,
	}
}

// List returns the engine for kind.
func (p *Portfolio) List(kind listview.Kind) (*listview.Engine, error) {
	switch kind {
	case listview.Publications:
		return p.Publications, nil
	case listview.Conferences:
		return p.Conferences, nil
	}
	return nil, fmt.Errorf("unknown list %q", kind)
}

// Dispatch applies actions to one list and returns its new view. The other
// list is not touched.
func (p *Portfolio) Dispatch(kind listview.Kind, actions ...listview.Action) ([]record.Record, error) {
	e, err := p.List(kind)
	if err != nil {
		return nil, err
	}
	return e.Apply(actions...), nil
}

// Card returns the card for key.
func (p *Portfolio) Card(key string) (card.Card, bool) {
	for _, c := range p.Cards {
		if c.Key == key {
			return c, true
		}
	}
	return card.Card{}, false
}

// OpenChart activates the chart for a card key.
func (p *Portfolio) OpenChart(key string) (*chart.Chart, error) {
	return p.Chart.Activate(key)
}

// CloseChart hides the open chart.
func (p *Portfolio) CloseChart() {
	p.Chart.Close()
}
