package listview

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/dtobolski/portfolio/internal/record"
)

func citations(records []record.Record) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.Citation
	}
	return out
}

func testPublications() []record.Record {
	return []record.Record{
		{Type: record.OtherPublication, Year: "2020", Category: "B", Citation: "Żaba w stawie"},
		{Type: record.JournalArticle, Year: "2021", Category: "A", Citation: "Zebra stripes", DOI: "10.1/ZEB"},
		{Type: record.JournalArticle, Year: "2020", Category: "A", Citation: "Łąka kwietna"},
		{Type: record.BookChapter, Year: "2020", Category: "Book chapter", Citation: "Atlas of moss"},
		{Type: record.JournalArticle, Year: "2020", Category: "A", Citation: "alpha study"},
		{Type: record.OtherPublication, Year: "2019", Category: "B", Citation: "Older note"},
	}
}

func testConferences() []record.Record {
	return []record.Record{
		{Type: record.ConferenceContribution, Year: "2019", Category: "Conference", Subtype: "Poster", Citation: "Poster one", City: "Kraków"},
		{Type: record.ConferenceContribution, Year: "2022", Category: "Conference", Subtype: "Oral", Citation: "Talk one", Country: "Poland"},
		{Type: record.ConferenceContribution, Year: "2021", Category: "Conference", Subtype: "Poster", Citation: "Poster two", Award: "Best poster"},
	}
}

func TestReduce(t *testing.T) {
	s := State{}
	s = Reduce(s, SetSearch("moss"))
	s = Reduce(s, SetYear(" 2020 "))
	s = Reduce(s, SetCategory("A"))
	s = Reduce(s, SetType("journal_article"))

	want := State{Search: "moss", Year: "2020", Category: "A", Type: "journal_article"}
	if diff := cmp.Diff(want, s); diff != "" {
		t.Errorf("Reduce() mismatch (-want +got):\n%s", diff)
	}

	if got := Reduce(s, Reset()); !got.IsZero() {
		t.Errorf("Reduce(Reset) = %+v, want zero state", got)
	}
	if got := Reduce(s, Action{Kind: "unknown"}); got != s {
		t.Errorf("unknown action changed state to %+v", got)
	}
}

func TestEngine_PublicationsSort(t *testing.T) {
	e := New(Publications, testPublications())

	want := []string{
		"Zebra stripes",
		"alpha study",
		"Łąka kwietna",
		"Żaba w stawie",
		"Atlas of moss",
		"Older note",
	}
	if diff := cmp.Diff(want, citations(e.View())); diff != "" {
		t.Errorf("View() order mismatch (-want +got):\n%s", diff)
	}
}

func TestEngine_CategoryBeatsCitation(t *testing.T) {
	e := New(Publications, []record.Record{
		{Type: record.JournalArticle, Year: "2020", Category: "B", Citation: "A paper"},
		{Type: record.JournalArticle, Year: "2020", Category: "A", Citation: "B paper"},
	})

	if diff := cmp.Diff([]string{"B paper", "A paper"}, citations(e.View())); diff != "" {
		t.Errorf("View() mismatch (-want +got):\n%s", diff)
	}
}

func TestEngine_ConferencesKeepInputOrder(t *testing.T) {
	e := New(Conferences, testConferences())

	want := []string{"Poster one", "Talk one", "Poster two"}
	if diff := cmp.Diff(want, citations(e.View())); diff != "" {
		t.Errorf("View() mismatch (-want +got):\n%s", diff)
	}
}

func TestEngine_Filters(t *testing.T) {
	tests := []struct {
		name    string
		kind    Kind
		records []record.Record
		actions []Action
		want    []string
	}{
		{
			name:    "year",
			kind:    Publications,
			records: testPublications(),
			actions: []Action{SetYear("2021")},
			want:    []string{"Zebra stripes"},
		},
		{
			name:    "category",
			kind:    Publications,
			records: testPublications(),
			actions: []Action{SetCategory("B")},
			want:    []string{"Żaba w stawie", "Older note"},
		},
		{
			name:    "type",
			kind:    Publications,
			records: testPublications(),
			actions: []Action{SetType("book_chapter")},
			want:    []string{"Atlas of moss"},
		},
		{
			name:    "search matches doi case-insensitively",
			kind:    Publications,
			records: testPublications(),
			actions: []Action{SetSearch("  10.1/zeb ")},
			want:    []string{"Zebra stripes"},
		},
		{
			name:    "combined filters",
			kind:    Publications,
			records: testPublications(),
			actions: []Action{SetYear("2020"), SetCategory("A"), SetSearch("ALPHA")},
			want:    []string{"alpha study"},
		},
		{
			name:    "no match",
			kind:    Publications,
			records: testPublications(),
			actions: []Action{SetSearch("nothing like this")},
			want:    []string{},
		},
		{
			name:    "conference subtype",
			kind:    Conferences,
			records: testConferences(),
			actions: []Action{SetCategory("Poster")},
			want:    []string{"Poster one", "Poster two"},
		},
		{
			name:    "conference search city",
			kind:    Conferences,
			records: testConferences(),
			actions: []Action{SetSearch("kraków")},
			want:    []string{"Poster one"},
		},
		{
			name:    "conference search folds case but keeps diacritics",
			kind:    Conferences,
			records: testConferences(),
			actions: []Action{SetSearch("KRAKÓW")},
			want:    []string{"Poster one"},
		},
		{
			name:    "conference search without diacritics",
			kind:    Conferences,
			records: testConferences(),
			actions: []Action{SetSearch("krakow")},
			want:    []string{},
		},
		{
			name: "year written as float",
			kind: Publications,
			records: []record.Record{
				{Type: record.JournalArticle, Year: "2021.0", Category: "A", Citation: "Float year"},
				{Type: record.JournalArticle, Year: "2020", Category: "A", Citation: "Other year"},
			},
			actions: []Action{SetYear("2021")},
			want:    []string{"Float year"},
		},
		{
			name:    "conference search award",
			kind:    Conferences,
			records: testConferences(),
			actions: []Action{SetSearch("best")},
			want:    []string{"Poster two"},
		},
		{
			name:    "conference ignores type filter",
			kind:    Conferences,
			records: testConferences(),
			actions: []Action{SetType("journal_article")},
			want:    []string{"Poster one", "Talk one", "Poster two"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := New(tt.kind, tt.records)
			got := citations(e.Apply(tt.actions...))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("view mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestEngine_ResetRestoresFullPartition(t *testing.T) {
	e := New(Publications, testPublications())
	initial := citations(e.View())

	e.Apply(SetYear("2019"), SetCategory("B"), SetSearch("older"), SetType("other_publication"))
	if len(e.View()) != 1 {
		t.Fatalf("filtered view has %d records, want 1", len(e.View()))
	}

	e.Dispatch(Reset())
	if diff := cmp.Diff(initial, citations(e.View())); diff != "" {
		t.Errorf("after Reset mismatch (-want +got):\n%s", diff)
	}
	if len(e.View()) != e.Total() {
		t.Errorf("after Reset view has %d records, want %d", len(e.View()), e.Total())
	}
}

func TestEngine_Options(t *testing.T) {
	pubs := New(Publications, testPublications())
	want := Options{
		Years:      []string{"2021", "2020", "2019"},
		Categories: []string{"A", "B", "Book chapter"},
		Types:      []string{"book_chapter", "journal_article", "other_publication"},
	}
	if diff := cmp.Diff(want, pubs.Options()); diff != "" {
		t.Errorf("publication Options() mismatch (-want +got):\n%s", diff)
	}

	confs := New(Conferences, testConferences())
	wantConfs := Options{
		Years:      []string{"2022", "2021", "2019"},
		Categories: []string{"Oral", "Poster"},
	}
	if diff := cmp.Diff(wantConfs, confs.Options()); diff != "" {
		t.Errorf("conference Options() mismatch (-want +got):\n%s", diff)
	}
}

func TestEngine_OptionsStableUnderFiltering(t *testing.T) {
	e := New(Publications, testPublications())
	before := e.Options()
	e.Dispatch(SetYear("2021"))
	if diff := cmp.Diff(before, e.Options()); diff != "" {
		t.Errorf("Options() changed after filtering (-want +got):\n%s", diff)
	}
}

func TestYearDesc_NonNumericLast(t *testing.T) {
	years := []string{"n.d.", "2019", "2023", "in press"}
	e := New(Publications, []record.Record{
		{Year: record.Scalar(years[0])},
		{Year: record.Scalar(years[1])},
		{Year: record.Scalar(years[2])},
		{Year: record.Scalar(years[3])},
	})
	want := []string{"2023", "2019", "in press", "n.d."}
	if diff := cmp.Diff(want, e.Options().Years); diff != "" {
		t.Errorf("Years mismatch (-want +got):\n%s", diff)
	}
}
