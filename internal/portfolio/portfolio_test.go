package portfolio

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/dtobolski/portfolio/internal/card"
	"github.com/dtobolski/portfolio/internal/listview"
	"github.com/dtobolski/portfolio/internal/record"
	"github.com/dtobolski/portfolio/internal/site"
)

var testDocs = map[string]string{
	site.ProfileFile: `{"name":"Anna Nowak","role":"Assistant Professor","affiliation":"University","links":{"Scholar":"https://scholar.example"}}`,
	site.SummaryFile: `{"generated_on":"01.02.2025","totals":{"mnicsw_points":"340","sum_impact_factor":"4.5","conference_contributions_total":2,"conference_oral_presentations":1,"conference_posters":1,"publications_list_a":"7"},"scholar_metrics":{"citations_all":"40","h_index_all":"3","last_updated":"31.01.2025"}}`,
	site.RecordsFile: `[
		{"record_type":"journal_article","year":"2020","category":"A","subtype":"","citation":"Nowak A. Soil fungi. 2020","mnicsw_points":"140","impact_factor":"3.1"},
		{"record_type":"journal_article","year":"2021","category":"A","subtype":"","citation":"Nowak A. Lake sediments. 2021","mnicsw_points":"100","impact_factor":"1.4"},
		{"record_type":"other_publication","year":"2021","category":"B","subtype":"","citation":"Nowak A. Field notes. 2021","mnicsw_points":"20"},
		{"record_type":"book_chapter","year":"2019","category":"Book chapter","subtype":"","citation":"Nowak A. Chapter on peat. 2019","mnicsw_points":"80"},
		{"record_type":"conference_contribution","year":"2021","category":"Conference","subtype":"Oral presentation","citation":"Talk on fungi","city":"Gdańsk"},
		{"record_type":"conference_contribution","year":"2022","category":"Conference","subtype":"Poster","citation":"Poster on peat"}
	]`,
}

func loadFromServer(t *testing.T) *Portfolio {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := testDocs[strings.TrimPrefix(r.URL.Path, "/")]
		if !ok {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	ds, err := site.Load(context.Background(), site.NewSource(srv.URL, srv.Client()), zerolog.Nop())
	if err != nil {
		t.Fatalf("site.Load() error = %v", err)
	}
	return New(ds)
}

func TestNew_WithoutCitationDataset(t *testing.T) {
	p := loadFromServer(t)

	if p.CitationsUsed {
		t.Error("CitationsUsed = true with a 404 dataset")
	}
	if len(p.Cards) != len(card.Keys) {
		t.Fatalf("got %d cards, want %d", len(p.Cards), len(card.Keys))
	}

	wantCards := map[string]string{
		card.KeyCitations:                   "40",
		card.KeyPublicationsListA:           "2",
		card.KeyPublicationsListB:           "2",
		card.KeyJournalArticlesTotal:        "4",
		card.KeyArticlesAndConferencesTotal: "6",
	}
	for key, want := range wantCards {
		c, ok := p.Card(key)
		if !ok || c.Value != want {
			t.Errorf("card %s = %q, want %q", key, c.Value, want)
		}
	}

	if got := p.Publications.Total(); got != 4 {
		t.Errorf("publications total = %d, want 4", got)
	}
	if got := p.Conferences.Total(); got != 2 {
		t.Errorf("conferences total = %d, want 2", got)
	}
	if got := p.Stats["2021"].MNiSWPoints; got != 120 {
		t.Errorf("2021 points = %v, want 120", got)
	}
	if got := p.Stats["2021"].CitationsTotal; got != 0 {
		t.Errorf("2021 citations = %v, want 0 without dataset", got)
	}
}

func TestDispatch_ListsAreIndependent(t *testing.T) {
	p := loadFromServer(t)

	view, err := p.Dispatch(listview.Publications, listview.SetYear("2021"))
	if err != nil {
		t.Fatalf("Dispatch() error = %v", err)
	}
	if len(view) != 2 {
		t.Errorf("filtered publications = %d, want 2", len(view))
	}
	if len(p.Conferences.View()) != 2 {
		t.Errorf("conferences changed by publication filter: %d", len(p.Conferences.View()))
	}

	view, _ = p.Dispatch(listview.Conferences, listview.SetCategory("Poster"))
	if len(view) != 1 || view[0].Citation != "Poster on peat" {
		t.Errorf("conference subtype filter = %v", citations(view))
	}

	if _, err := p.Dispatch("other", listview.Reset()); err == nil {
		t.Error("Dispatch(other) expected error")
	}
}

func TestOpenChart(t *testing.T) {
	p := loadFromServer(t)

	c, err := p.OpenChart(card.KeyMNiSWPoints)
	if err != nil {
		t.Fatalf("OpenChart() error = %v", err)
	}
	if c.Total != 340 || c.PeakYear != "2020" {
		t.Errorf("chart total/peak = %v/%s, want 340/2020", c.Total, c.PeakYear)
	}
	p.CloseChart()
	if p.Chart.IsOpen() {
		t.Error("chart still open after CloseChart")
	}
}

func TestNew_EmptyDataset(t *testing.T) {
	p := New(&site.Dataset{})
	if p.Publications.Total() != 0 || len(p.Cards) != len(card.Keys) {
		t.Errorf("empty portfolio = %+v", p)
	}
}

func citations(records []record.Record) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.Citation
	}
	return out
}
