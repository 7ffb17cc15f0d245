// Package citation merges an external per-publication citation dataset
// (Google Scholar counts) into the canonical record list.
package citation

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// Item is one entry of the external citation dataset.
type Item struct {
	DOI   string
	Title string
	Count float64

	// HasCount is false when the item carried none of the count fields.
	HasCount bool
}

// Field names in priority order; the first one present wins.
var (
	titleFields = []string{"title", "citation"}
	countFields = []string{"cited_by", "citations", "citedBy", "count"}
)

// ParseDataset reads either {"items": [...]} or a bare JSON array of items.
func ParseDataset(r io.Reader) ([]Item, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading citation dataset: %w", err)
	}

	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, fmt.Errorf("parsing citation dataset: empty document")
	}

	var raw []map[string]json.RawMessage
	switch data[0] {
	case '[':
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("parsing citation dataset: %w", err)
		}
	case '{':
		var wrapper struct {
			Items []map[string]json.RawMessage `json:"items"`
		}
		if err := json.Unmarshal(data, &wrapper); err != nil {
			return nil, fmt.Errorf("parsing citation dataset: %w", err)
		}
		raw = wrapper.Items
	default:
		return nil, fmt.Errorf("parsing citation dataset: expected object or array")
	}

	items := make([]Item, 0, len(raw))
	for _, fields := range raw {
		item := Item{
			DOI:   stringField(fields, "doi"),
			Title: firstString(fields, titleFields),
		}
		item.Count, item.HasCount = firstCount(fields, countFields)
		items = append(items, item)
	}
	return items, nil
}

// present reports whether the key exists with a non-null value.
func present(fields map[string]json.RawMessage, key string) (json.RawMessage, bool) {
	v, ok := fields[key]
	if !ok {
		return nil, false
	}
	v = bytes.TrimSpace(v)
	if len(v) == 0 || bytes.Equal(v, []byte("null")) {
		return nil, false
	}
	return v, true
}

func stringField(fields map[string]json.RawMessage, key string) string {
	v, ok := present(fields, key)
	if !ok {
		return ""
	}
	var s string
	if err := json.Unmarshal(v, &s); err != nil {
		return strings.Trim(string(v), `"`)
	}
	return s
}

func firstString(fields map[string]json.RawMessage, keys []string) string {
	for _, key := range keys {
		if _, ok := present(fields, key); ok {
			return stringField(fields, key)
		}
	}
	return ""
}

func firstCount(fields map[string]json.RawMessage, keys []string) (float64, bool) {
	for _, key := range keys {
		if v, ok := present(fields, key); ok {
			return parseCount(v), true
		}
	}
	return 0, false
}

// parseCount accepts numbers, numeric strings and SerpApi's {"value": n}.
// Anything else counts as 0.
func parseCount(v json.RawMessage) float64 {
	var n float64
	if err := json.Unmarshal(v, &n); err == nil {
		return n
	}

	var s string
	if err := json.Unmarshal(v, &s); err == nil {
		if f, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
			return f
		}
		return 0
	}

	var wrapped struct {
		Value json.RawMessage `json:"value"`
	}
	if err := json.Unmarshal(v, &wrapped); err == nil && len(wrapped.Value) > 0 {
		return parseCount(wrapped.Value)
	}
	return 0
}
