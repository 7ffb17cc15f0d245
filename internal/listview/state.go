// Package listview implements the filterable, sortable publication and
// conference lists.
package listview

import "strings"

// State is the filter state of one list.
type State struct {
	Search string `json:"search"`
	Year   string `json:"year"`

	// Category is the record category for publications and the subtype
	// for conferences.
	Category string `json:"category"`

	// Type is the record_type filter; publications only.
	Type string `json:"type,omitempty"`
}

// IsZero reports whether no filter is set.
func (s State) IsZero() bool {
	return s == State{}
}

// ActionKind names a state transition.
type ActionKind string

// Transitions.
const (
	ActionSetSearch   ActionKind = "set_search"
	ActionSetYear     ActionKind = "set_year"
	ActionSetCategory ActionKind = "set_category"
	ActionSetType     ActionKind = "set_type"
	ActionReset       ActionKind = "reset"
)

// Action is one state transition.
type Action struct {
	Kind  ActionKind
	Value string
}

// SetSearch changes the free-text filter.
func SetSearch(v string) Action { return Action{Kind: ActionSetSearch, Value: v} }

// SetYear changes the year filter; "" clears it.
func SetYear(v string) Action { return Action{Kind: ActionSetYear, Value: v} }

// SetCategory changes the category (or subtype) filter; "" clears it.
func SetCategory(v string) Action { return Action{Kind: ActionSetCategory, Value: v} }

// SetType changes the record type filter; "" clears it.
func SetType(v string) Action { return Action{Kind: ActionSetType, Value: v} }

// Reset clears every filter.
func Reset() Action { return Action{Kind: ActionReset} }

// Reduce returns the state after applying a. Unknown actions leave the
// state unchanged.
func Reduce(s State, a Action) State {
	switch a.Kind {
	case ActionSetSearch:
		s.Search = a.Value
	case ActionSetYear:
		s.Year = strings.TrimSpace(a.Value)
	case ActionSetCategory:
		s.Category = a.Value
	case ActionSetType:
		s.Type = strings.TrimSpace(a.Value)
	case ActionReset:
		s = State{}
	}
	return s
}
