package cv

import (
	"bytes"
	"strings"
	"testing"

	"github.com/dtobolski/portfolio/internal/document"
	"github.com/dtobolski/portfolio/internal/record"
)

func testInput() (*document.Profile, *document.Summary, []record.Record) {
	profile := &document.Profile{
		Name:        "Anna Nowak",
		Role:        "Researcher",
		Affiliation: "University",
		Email:       "anna@example.org",
		Links:       document.Links{{Label: "ORCID", URL: "https://orcid.org/1"}},
	}
	summary := &document.Summary{
		Totals:         document.Totals{MNiSWPoints: "260", PublicationsListA: "2"},
		ScholarMetrics: document.ScholarMetrics{CitationsAll: "40", HIndexAll: "3"},
	}
	records := []record.Record{
		{Type: record.JournalArticle, Year: "2019", Category: "A", Citation: "Old A", MNiSWPoints: "100"},
		{Type: record.JournalArticle, Year: "2021", Category: "a", Citation: "New A", MNiSWPoints: "140", ImpactFactor: "3.2", DOI: "10.1/new"},
		{Type: record.OtherPublication, Year: "2020", Category: "B", Citation: "Note B"},
		{Type: record.BookChapter, Year: "2018", Category: "Book chapter", Citation: "Chapter"},
		{Type: record.ConferenceContribution, Year: "2021", Category: "Conference", Subtype: "Poster", Citation: "Early talk", StartDate: "01.03.2021", City: "Kraków", Country: "Poland"},
		{Type: record.ConferenceContribution, Year: "2021", Category: "Conference", Subtype: "Oral presentation", Citation: "Late talk", StartDate: "2021-09-01", EndDate: "03.09.2021", Award: "Best talk"},
		{Type: record.ConferenceContribution, Year: "2022", Category: "Conference", Citation: "Undated"},
	}
	return profile, summary, records
}

func TestToMarkdown(t *testing.T) {
	out := ToMarkdown(testInput())

	for _, want := range []string{
		"# Anna Nowak\n",
		"Researcher · University · anna@example.org\n",
		"[ORCID](https://orcid.org/1)",
		"| MNiSW points (computed) | 260 |",
		"| Google Scholar h-index | 3 |",
		"## Peer-reviewed publications (List A)\n\n1. New A (MNiSW: 140; IF: 3.2; DOI: 10.1/new)\n2. Old A (MNiSW: 100)\n",
		"## Other publications (List B)\n\n1. Note B\n",
		"## Book chapters\n\n1. Chapter\n",
		"1. Late talk — Oral presentation · 01.09.2021–03.09.2021 · Best talk\n",
		"2. Early talk — Poster · 01.03.2021 · Kraków, Poland\n",
		"3. Undated\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("ToMarkdown() missing %q\n---\n%s", want, out)
		}
	}
}

func TestToMarkdown_EmptySections(t *testing.T) {
	out := ToMarkdown(nil, nil, nil)
	if !strings.HasPrefix(out, "# Name\n") {
		t.Errorf("missing placeholder name:\n%s", out)
	}
	if got := strings.Count(out, "No records."); got != 4 {
		t.Errorf("got %d empty sections, want 4", got)
	}
}

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	p, s, r := testInput()
	if err := Write(&buf, p, s, r); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if buf.String() != ToMarkdown(p, s, r) {
		t.Error("Write() output differs from ToMarkdown()")
	}
}
