package record

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestPartition_DisjointAndExhaustive(t *testing.T) {
	records := []Record{
		{Type: JournalArticle, Category: "A", Citation: "a"},
		{Type: OtherPublication, Category: "B", Citation: "b"},
		{Type: BookChapter, Category: "Book chapter", Citation: "c"},
		{Type: ConferenceContribution, Category: "Conference", Citation: "d"},
		{Type: ConferenceContribution, Category: "", Citation: "e"},
		{Type: OtherPublication, Category: "Conference", Citation: "f"},
		{Type: OtherPublication, Category: "", Citation: "g"},
	}

	pubs, confs := Partition(records)
	if len(pubs)+len(confs) != len(records) {
		t.Fatalf("partition sizes %d+%d, want %d", len(pubs), len(confs), len(records))
	}

	seen := make(map[string]int)
	for _, r := range pubs {
		if !r.IsPublication() || r.IsConference() {
			t.Errorf("%q in publications but IsConference=%v", r.Citation, r.IsConference())
		}
		seen[r.Citation]++
	}
	for _, r := range confs {
		if !r.IsConference() || r.IsPublication() {
			t.Errorf("%q in conferences but IsPublication=%v", r.Citation, r.IsPublication())
		}
		seen[r.Citation]++
	}
	for _, r := range records {
		if seen[r.Citation] != 1 {
			t.Errorf("%q appears %d times across partitions, want 1", r.Citation, seen[r.Citation])
		}
	}

	wantConfs := []string{"d", "e", "f"}
	for i, c := range wantConfs {
		if confs[i].Citation != c {
			t.Errorf("confs[%d] = %q, want %q", i, confs[i].Citation, c)
		}
	}
}

func TestScalar_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Scalar
	}{
		{"string", `"2021"`, "2021"},
		{"integer", `2021`, "2021"},
		{"float", `3.5`, "3.5"},
		{"null", `null`, ""},
		{"empty string", `""`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var s Scalar
			if err := json.Unmarshal([]byte(tt.input), &s); err != nil {
				t.Fatalf("Unmarshal(%s) error = %v", tt.input, err)
			}
			if s != tt.want {
				t.Errorf("Unmarshal(%s) = %q, want %q", tt.input, s, tt.want)
			}
		})
	}
}

func TestScalar_RejectsObjects(t *testing.T) {
	var s Scalar
	if err := json.Unmarshal([]byte(`{"a":1}`), &s); err == nil {
		t.Error("expected error for object value")
	}
}

func TestNumber(t *testing.T) {
	tests := []struct {
		in   Scalar
		want float64
	}{
		{"", 0},
		{"  ", 0},
		{"140", 140},
		{" 2.345 ", 2.345},
		{"n/a", 0},
		{"NaN", 0},
		{"Inf", 0},
		{"1,5", 0},
	}

	for _, tt := range tests {
		if got := Number(tt.in); got != tt.want {
			t.Errorf("Number(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestDecode_Valid(t *testing.T) {
	input := `[
		{"record_type":"journal_article","year":"2021","category":"A","subtype":"","citation":"Paper one","doi":"10.1/x","mnicsw_points":"140","impact_factor":3.2},
		{"record_type":"conference_contribution","year":2020,"category":"Conference","subtype":"Poster","citation":"Talk","city":"Kraków"}
	]`

	records, err := Decode(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("Decode() returned %d records, want 2", len(records))
	}
	if records[0].YearKey() != "2021" || records[1].YearKey() != "2020" {
		t.Errorf("years = %q, %q", records[0].YearKey(), records[1].YearKey())
	}
	if Number(records[0].ImpactFactor) != 3.2 {
		t.Errorf("ImpactFactor = %v, want 3.2", records[0].ImpactFactor)
	}
	if records[0].ScholarCitations != nil {
		t.Errorf("ScholarCitations = %v, want nil", *records[0].ScholarCitations)
	}
}

func TestYearKey(t *testing.T) {
	tests := []struct {
		year Scalar
		want string
	}{
		{"2020", "2020"},
		{" 2020 ", "2020"},
		{"2020.0", "2020"},
		{"2020.5", "2020.5"},
		{"1e3", "1000"},
		{"n.d.", "n.d."},
		{"", ""},
	}
	for _, tt := range tests {
		if got := (Record{Year: tt.year}).YearKey(); got != tt.want {
			t.Errorf("YearKey(%q) = %q, want %q", tt.year, got, tt.want)
		}
	}
}

func TestDecode_InfersMissingType(t *testing.T) {
	input := `[
		{"year":"2021","category":"Conference","citation":"c"},
		{"year":"2021","category":"Book chapter","citation":"b"},
		{"year":"2021","category":"A","citation":"a"},
		{"year":"2021","category":"","citation":"o"}
	]`

	records, err := Decode(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	want := []Type{ConferenceContribution, BookChapter, JournalArticle, OtherPublication}
	for i, w := range want {
		if records[i].Type != w {
			t.Errorf("records[%d].Type = %q, want %q", i, records[i].Type, w)
		}
	}
}

func TestDecode_UnknownType(t *testing.T) {
	input := `[{"record_type":"journal_article","citation":"ok"},{"record_type":"patent","citation":"bad"}]`

	_, err := Decode(strings.NewReader(input))
	if err == nil {
		t.Fatal("Decode() expected error for unknown record_type")
	}
	if !errors.Is(err, ErrInvalidRecord) {
		t.Errorf("error %v does not wrap ErrInvalidRecord", err)
	}
	var verr *ValidationError
	if !errors.As(err, &verr) || verr.Index != 1 {
		t.Errorf("error = %v, want ValidationError at index 1", err)
	}
}

func TestDecode_NotAnArray(t *testing.T) {
	if _, err := Decode(strings.NewReader(`{"items":[]}`)); err == nil {
		t.Error("Decode() expected error for object document")
	}
}

func TestRecordMarshal_OmitsEmptyOptionals(t *testing.T) {
	data, err := json.Marshal(Record{Type: JournalArticle, Year: "2020", Category: "A", Citation: "x"})
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	for _, field := range []string{"doi", "mnicsw_points", "scholar_citations", "city"} {
		if strings.Contains(string(data), `"`+field+`"`) {
			t.Errorf("marshaled record contains %q: %s", field, data)
		}
	}
}

func TestScalar_MarshalJSON(t *testing.T) {
	tests := []struct {
		in   Scalar
		want string
	}{
		{"2021", `2021`},
		{"3.25", `3.25`},
		{"", `""`},
		{"0123", `"0123"`},
		{"n/a", `"n/a"`},
		{"true", `"true"`},
	}

	for _, tt := range tests {
		data, err := json.Marshal(tt.in)
		if err != nil {
			t.Fatalf("Marshal(%q) error = %v", tt.in, err)
		}
		if string(data) != tt.want {
			t.Errorf("Marshal(%q) = %s, want %s", tt.in, data, tt.want)
		}
	}
}
