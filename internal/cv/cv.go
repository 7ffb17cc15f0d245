// Package cv renders the scientific CV as Markdown.
package cv

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/dtobolski/portfolio/internal/document"
	"github.com/dtobolski/portfolio/internal/record"
)

// Section titles in output order.
const (
	TitleListA       = "Peer-reviewed publications (List A)"
	TitleListB       = "Other publications (List B)"
	TitleChapters    = "Book chapters"
	TitleConferences = "Conference contributions"
)

// Write renders the CV to w.
func Write(w io.Writer, profile *document.Profile, summary *document.Summary, records []record.Record) error {
	_, err := io.WriteString(w, ToMarkdown(profile, summary, records))
	return err
}

// ToMarkdown renders the CV.
func ToMarkdown(profile *document.Profile, summary *document.Summary, records []record.Record) string {
	if profile == nil {
		profile = &document.Profile{}
	}
	if summary == nil {
		summary = &document.Summary{}
	}

	var b strings.Builder

	name := profile.Name
	if name == "" {
		name = "Name"
	}
	fmt.Fprintf(&b, "# %s\n\n", name)

	if header := joinNonEmpty(" · ", profile.Role, profile.Affiliation, profile.Location, profile.Email); header != "" {
		b.WriteString(header + "\n\n")
	}
	if len(profile.Links) > 0 {
		links := make([]string, len(profile.Links))
		for i, l := range profile.Links {
			links[i] = fmt.Sprintf("[%s](%s)", l.Label, l.URL)
		}
		b.WriteString(strings.Join(links, " · ") + "\n\n")
	}

	writeSummary(&b, summary)

	writeSection(&b, TitleListA, byYear(filter(records, isListA)))
	writeSection(&b, TitleListB, byYear(filter(records, isListB)))
	writeSection(&b, TitleChapters, byYear(filter(records, isChapter)))
	writeConferences(&b, byStartDate(filter(records, isConference)))

	return b.String()
}

func writeSummary(b *strings.Builder, s *document.Summary) {
	t, sm := s.Totals, s.ScholarMetrics
	rows := [][2]string{
		{"MNiSW points (computed)", t.MNiSWPoints.String()},
		{"Sum of journal impact factors (computed)", t.SumImpactFactor.String()},
		{"Publications (List A)", t.PublicationsListA.String()},
		{"Other publications (List B)", t.PublicationsListB.String()},
		{"Book chapters", t.BookChapters.String()},
		{"Conference contributions (total)", t.ConferenceContributionsTotal.String()},
		{"Google Scholar citations", sm.CitationsAll.String()},
		{"Google Scholar h-index", sm.HIndexAll.String()},
		{"Google Scholar last updated", sm.LastUpdated},
	}

	b.WriteString("## Summary\n\n| Metric | Value |\n|---|---|\n")
	for _, row := range rows {
		fmt.Fprintf(b, "| %s | %s |\n", row[0], escapeCell(row[1]))
	}
	b.WriteString("\n")
}

func writeSection(b *strings.Builder, title string, records []record.Record) {
	fmt.Fprintf(b, "## %s\n\n", title)
	if len(records) == 0 {
		b.WriteString("No records.\n\n")
		return
	}
	for i, r := range records {
		var extras []string
		if !r.MNiSWPoints.IsEmpty() {
			extras = append(extras, "MNiSW: "+r.MNiSWPoints.String())
		}
		if !r.ImpactFactor.IsEmpty() {
			extras = append(extras, "IF: "+r.ImpactFactor.String())
		}
		if r.DOI != "" {
			extras = append(extras, "DOI: "+r.DOI)
		}
		line := fmt.Sprintf("%d. %s", i+1, r.Citation)
		if len(extras) > 0 {
			line += " (" + strings.Join(extras, "; ") + ")"
		}
		b.WriteString(line + "\n")
	}
	b.WriteString("\n")
}

func writeConferences(b *strings.Builder, records []record.Record) {
	fmt.Fprintf(b, "## %s\n\n", TitleConferences)
	if len(records) == 0 {
		b.WriteString("No records.\n")
		return
	}
	for i, r := range records {
		location := joinNonEmpty(", ", r.City, r.Country)
		tail := joinNonEmpty(" · ", r.Subtype, record.FormatDateRange(r.StartDate, r.EndDate), location, r.Award)
		line := fmt.Sprintf("%d. %s", i+1, r.Citation)
		if tail != "" {
			line += " — " + tail
		}
		b.WriteString(line + "\n")
	}
}

// The CV follows the spreadsheet conventions: categories compare
// case-insensitively.
func isListA(r record.Record) bool { return strings.ToUpper(r.Category) == "A" }

func isListB(r record.Record) bool { return strings.ToUpper(r.Category) == "B" }

func isChapter(r record.Record) bool {
	return r.Type == record.BookChapter || strings.Contains(strings.ToLower(r.Category), "book chapter")
}

func isConference(r record.Record) bool {
	return r.Type == record.ConferenceContribution || strings.ToLower(r.Category) == "conference"
}

func filter(records []record.Record, keep func(record.Record) bool) []record.Record {
	var out []record.Record
	for _, r := range records {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}

func yearOf(r record.Record) int {
	y, ok := r.YearInt()
	if !ok {
		return 0
	}
	return y
}

func byYear(records []record.Record) []record.Record {
	sort.SliceStable(records, func(i, j int) bool {
		return yearOf(records[i]) > yearOf(records[j])
	})
	return records
}

func byStartDate(records []record.Record) []record.Record {
	start := func(r record.Record) int64 {
		if t, ok := record.ParseDate(r.StartDate); ok {
			return t.Unix()
		}
		return 0
	}
	sort.SliceStable(records, func(i, j int) bool {
		a, b := records[i], records[j]
		if sa, sb := start(a), start(b); sa != sb {
			return sa > sb
		}
		return yearOf(a) > yearOf(b)
	})
	return records
}

func joinNonEmpty(sep string, parts ...string) string {
	var kept []string
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
