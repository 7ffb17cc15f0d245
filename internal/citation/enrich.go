package citation

import (
	"strings"

	"github.com/dtobolski/portfolio/internal/record"
)

// MinContainedTitleLen is the shortest title key (in bytes) that may match by
// containment inside a citation string. Shorter titles ("Introduction")
// would match far too many citations.
const MinContainedTitleLen = 20

// Match kinds reported by Lookup.
const (
	MatchNone  = ""
	MatchDOI   = "doi"
	MatchTitle = "title"
)

// Index holds the two lookup tables built from a citation dataset.
type Index struct {
	byDOI   map[string]float64
	byTitle map[string]float64
	titles  []string // distinct title keys in first-insertion order
}

// NewIndex builds lookup tables from dataset items in order. When two items
// share a DOI or title key, the later one wins.
func NewIndex(items []Item) *Index {
	idx := &Index{
		byDOI:   make(map[string]float64),
		byTitle: make(map[string]float64),
	}
	for _, item := range items {
		if !item.HasCount {
			continue
		}
		if key := DOIKey(item.DOI); key != "" {
			idx.byDOI[key] = item.Count
		}
		if key := TitleKey(item.Title); key != "" {
			if _, seen := idx.byTitle[key]; !seen {
				idx.titles = append(idx.titles, key)
			}
			idx.byTitle[key] = item.Count
		}
	}
	return idx
}

// Len returns the number of distinct DOI and title keys.
func (idx *Index) Len() int {
	if idx == nil {
		return 0
	}
	return len(idx.byDOI) + len(idx.byTitle)
}

// Lookup finds the citation count for a record: DOI first, then the
// normalized title against the record's citation string.
func (idx *Index) Lookup(r record.Record) (count float64, kind string) {
	if idx == nil {
		return 0, MatchNone
	}

	if key := DOIKey(r.DOI); key != "" {
		if count, ok := idx.byDOI[key]; ok {
			return count, MatchDOI
		}
	}

	citationKey := TitleKey(r.Citation)
	if citationKey == "" {
		return 0, MatchNone
	}
	if count, ok := idx.byTitle[citationKey]; ok {
		return count, MatchTitle
	}

	// Citation strings carry authors, venue and year around the title, so
	// fall back to the longest indexed title contained in the citation.
	padded := " " + citationKey + " "
	best := ""
	for _, title := range idx.titles {
		// On equal length the earlier title is kept.
		if len(title) < MinContainedTitleLen || len(title) <= len(best) {
			continue
		}
		if strings.Contains(padded, " "+title+" ") {
			best = title
		}
	}
	if best != "" {
		return idx.byTitle[best], MatchTitle
	}
	return 0, MatchNone
}

// Stats summarizes an enrichment pass.
type Stats struct {
	ByDOI     int `json:"by_doi"`
	ByTitle   int `json:"by_title"`
	Unmatched int `json:"unmatched"`
}

// Enrich sets ScholarCitations on every record with a match and leaves the
// others untouched. A nil index makes it a no-op.
func Enrich(records []record.Record, idx *Index) Stats {
	var stats Stats
	if idx == nil {
		stats.Unmatched = len(records)
		return stats
	}

	for i := range records {
		count, kind := idx.Lookup(records[i])
		switch kind {
		case MatchDOI:
			stats.ByDOI++
		case MatchTitle:
			stats.ByTitle++
		default:
			stats.Unmatched++
			continue
		}
		c := count
		records[i].ScholarCitations = &c
	}
	return stats
}
