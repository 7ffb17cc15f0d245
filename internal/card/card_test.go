package card

import (
	"testing"

	"github.com/dtobolski/portfolio/internal/document"
	"github.com/dtobolski/portfolio/internal/record"
)

func testSummary() *document.Summary {
	return &document.Summary{
		GeneratedOn: "01.02.2025",
		Totals: document.Totals{
			MNiSWPoints:                  "1240",
			SumImpactFactor:              "23.45678",
			PublicationsListA:            "99",
			PublicationsListB:            "98",
			ConferenceContributionsTotal: "30",
			ConferenceOralPresentations:  "10",
			ConferencePosters:            "20",
		},
		ScholarMetrics: document.ScholarMetrics{
			CitationsAll: "321",
			HIndexAll:    "",
			LastUpdated:  "31.01.2025",
		},
	}
}

func testRecords() []record.Record {
	return []record.Record{
		{Type: record.JournalArticle, Year: "2021", Category: "A"},
		{Type: record.JournalArticle, Year: "2021", Category: "A"},
		{Type: record.OtherPublication, Year: "2022", Category: "B"},
		{Type: record.BookChapter, Year: "2022", Category: "Book chapter"},
		{Type: record.ConferenceContribution, Year: "2022", Category: "Conference"},
		{Type: record.OtherPublication, Year: "", Category: ""},
	}
}

func cardsByKey(cards []Card) map[string]Card {
	m := make(map[string]Card, len(cards))
	for _, c := range cards {
		m[c.Key] = c
	}
	return m
}

func TestBuild_OrderIsFixed(t *testing.T) {
	cards := Build(testSummary(), testRecords())
	if len(cards) != len(Keys) {
		t.Fatalf("Build() returned %d cards, want %d", len(cards), len(Keys))
	}
	for i, key := range Keys {
		if cards[i].Key != key {
			t.Errorf("cards[%d].Key = %q, want %q", i, cards[i].Key, key)
		}
	}
}

func TestBuild_ComputedOverridesUpstream(t *testing.T) {
	cards := cardsByKey(Build(testSummary(), testRecords()))

	tests := []struct {
		key  string
		want string
	}{
		{KeyPublicationsListA, "2"},
		{KeyPublicationsListB, "2"},
		{KeyJournalArticlesTotal, "4"},
		{KeyArticlesAndConferencesTotal, "5"},
	}
	for _, tt := range tests {
		c := cards[tt.key]
		if c.Value != tt.want {
			t.Errorf("%s = %q, want %q", tt.key, c.Value, tt.want)
		}
		if c.Source != SourceComputed {
			t.Errorf("%s source = %q, want computed", tt.key, c.Source)
		}
	}
}

func TestBuild_UpstreamValues(t *testing.T) {
	cards := cardsByKey(Build(testSummary(), testRecords()))

	tests := []struct {
		key  string
		want string
	}{
		{KeyCitations, "321"},
		{KeyHIndex, Placeholder},
		{KeyMNiSWPoints, "1240"},
		{KeySumImpactFactor, "23.457"},
		{KeyConferenceContributionsTotal, "30"},
	}
	for _, tt := range tests {
		if got := cards[tt.key].Value; got != tt.want {
			t.Errorf("%s = %q, want %q", tt.key, got, tt.want)
		}
	}

	if hint := cards[KeyConferenceContributionsTotal].Hint; hint != "10 oral · 20 posters" {
		t.Errorf("conference hint = %q", hint)
	}
	if hint := cards[KeyCitations].Hint; hint != "Google Scholar, all years (updated 31.01.2025)" {
		t.Errorf("citations hint = %q", hint)
	}
}

func TestBuild_NilRecordsKeepsUpstream(t *testing.T) {
	cards := cardsByKey(Build(testSummary(), nil))

	if got := cards[KeyPublicationsListA].Value; got != "99" {
		t.Errorf("list A = %q, want upstream 99", got)
	}
	if got := cards[KeyJournalArticlesTotal].Value; got != Placeholder {
		t.Errorf("journal total = %q, want placeholder", got)
	}
}

func TestBuild_EmptySummaryRendersPlaceholders(t *testing.T) {
	cards := cardsByKey(Build(nil, []record.Record{}))

	for _, key := range []string{KeyCitations, KeyHIndex, KeyMNiSWPoints, KeySumImpactFactor, KeyConferenceContributionsTotal} {
		if got := cards[key].Value; got != Placeholder {
			t.Errorf("%s = %q, want placeholder", key, got)
		}
	}
	if got := cards[KeyPublicationsListA].Value; got != "0" {
		t.Errorf("list A = %q, want 0 from empty record set", got)
	}
	if hint := cards[KeyConferenceContributionsTotal].Hint; hint != "Oral presentations and posters" {
		t.Errorf("conference hint = %q", hint)
	}
}

func TestFormatScalar(t *testing.T) {
	tests := []struct {
		in       record.Scalar
		decimals int
		want     string
	}{
		{"", 0, Placeholder},
		{"abc", 0, Placeholder},
		{"12", 0, "12"},
		{"12.0", 2, "12"},
		{"1.23456", 3, "1.235"},
		{"-0.0001", 2, "0"},
	}
	for _, tt := range tests {
		if got := FormatScalar(tt.in, tt.decimals); got != tt.want {
			t.Errorf("FormatScalar(%q, %d) = %q, want %q", tt.in, tt.decimals, got, tt.want)
		}
	}
}
