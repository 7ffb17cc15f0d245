package listview

import (
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/dtobolski/portfolio/internal/record"
)

// Kind selects which partition an engine serves.
type Kind string

// List kinds.
const (
	Publications Kind = "publications"
	Conferences  Kind = "conferences"
)

// Options are the distinct filter values of a partition.
type Options struct {
	Years []string `json:"years"`

	// Categories holds record categories for publications and subtypes
	// for conferences.
	Categories []string `json:"categories"`

	Types []string `json:"types,omitempty"`
}

// Engine owns the filter state of one list and its current view.
// It is not safe for concurrent use.
type Engine struct {
	kind     Kind
	records  []record.Record
	haystack []string // lowercased search text, parallel to records
	options  Options
	collator *collate.Collator

	state State
	view  []record.Record
}

// New creates an engine over one partition. Filter options are derived
// here once and never recomputed.
func New(kind Kind, partition []record.Record) *Engine {
	e := &Engine{
		kind:     kind,
		records:  partition,
		haystack: make([]string, len(partition)),
		collator: collate.New(language.Polish, collate.IgnoreCase, collate.IgnoreDiacritics),
	}
	for i, r := range partition {
		e.haystack[i] = searchText(r)
	}
	e.options = deriveOptions(kind, partition)
	e.recompute()
	return e
}

// Kind returns the list kind.
func (e *Engine) Kind() Kind { return e.kind }

// State returns the current filter state.
func (e *Engine) State() State { return e.state }

// Options returns the filter options derived at construction.
func (e *Engine) Options() Options { return e.options }

// View returns the current filtered and sorted records.
func (e *Engine) View() []record.Record { return e.view }

// Total returns the size of the whole partition.
func (e *Engine) Total() int { return len(e.records) }

// Dispatch applies an action and recomputes the view.
func (e *Engine) Dispatch(a Action) []record.Record {
	next := Reduce(e.state, a)
	if e.kind == Conferences {
		next.Type = ""
	}
	e.state = next
	e.recompute()
	return e.view
}

// Apply dispatches several actions in order.
func (e *Engine) Apply(actions ...Action) []record.Record {
	for _, a := range actions {
		e.Dispatch(a)
	}
	return e.view
}

func (e *Engine) recompute() {
	needle := strings.ToLower(strings.TrimSpace(e.state.Search))

	view := make([]record.Record, 0, len(e.records))
	for i, r := range e.records {
		if e.matches(r, e.haystack[i], needle) {
			view = append(view, r)
		}
	}

	if e.kind == Publications {
		e.sortPublications(view)
	}
	e.view = view
}

func (e *Engine) matches(r record.Record, haystack, needle string) bool {
	if e.state.Year != "" && r.YearKey() != e.state.Year {
		return false
	}
	if e.state.Category != "" && e.categoryOf(r) != e.state.Category {
		return false
	}
	if e.kind == Publications && e.state.Type != "" && string(r.Type) != e.state.Type {
		return false
	}
	return needle == "" || strings.Contains(haystack, needle)
}

func (e *Engine) categoryOf(r record.Record) string {
	if e.kind == Conferences {
		return r.Subtype
	}
	return r.Category
}

// sortPublications orders by year descending, then category A, B, other,
// then citation with Polish collation.
func (e *Engine) sortPublications(view []record.Record) {
	sort.SliceStable(view, func(i, j int) bool {
		a, b := view[i], view[j]
		if ya, yb := yearNumber(a), yearNumber(b); ya != yb {
			return ya > yb
		}
		if pa, pb := categoryPriority(a.Category), categoryPriority(b.Category); pa != pb {
			return pa < pb
		}
		return e.collator.CompareString(a.Citation, b.Citation) < 0
	})
}

func yearNumber(r record.Record) int {
	n, err := strconv.Atoi(r.YearKey())
	if err != nil {
		return 0
	}
	return n
}

func categoryPriority(category string) int {
	switch category {
	case record.CategoryA:
		return 0
	case record.CategoryB:
		return 1
	default:
		return 2
	}
}

func searchText(r record.Record) string {
	return strings.ToLower(strings.Join([]string{r.Citation, r.DOI, r.City, r.Country, r.Award}, " "))
}

func deriveOptions(kind Kind, partition []record.Record) Options {
	years := make(map[string]bool)
	categories := make(map[string]bool)
	types := make(map[string]bool)

	for _, r := range partition {
		if y := r.YearKey(); y != "" {
			years[y] = true
		}
		category := r.Category
		if kind == Conferences {
			category = r.Subtype
		}
		if strings.TrimSpace(category) != "" {
			categories[category] = true
		}
		if kind == Publications && r.Type != "" {
			types[string(r.Type)] = true
		}
	}

	opts := Options{
		Years:      sortedKeys(years),
		Categories: sortedKeys(categories),
	}
	sort.SliceStable(opts.Years, func(i, j int) bool {
		return yearDesc(opts.Years[i], opts.Years[j])
	})
	if kind == Publications {
		opts.Types = sortedKeys(types)
	}
	return opts
}

// yearDesc orders numeric years descending; non-numeric ones go last.
func yearDesc(a, b string) bool {
	ai, aErr := strconv.Atoi(a)
	bi, bErr := strconv.Atoi(b)
	switch {
	case aErr == nil && bErr == nil:
		return ai > bi
	case aErr == nil:
		return true
	case bErr == nil:
		return false
	default:
		return a < b
	}
}

func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
