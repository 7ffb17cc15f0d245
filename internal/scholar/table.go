package scholar

import (
	"encoding/json"

	"github.com/dtobolski/portfolio/internal/record"
)

// Row keys for each metric. Localized profiles use the French names.
var (
	citationKeys = []string{"citations"}
	hIndexKeys   = []string{"h_index", "indice_h"}
	i10IndexKeys = []string{"i10_index", "indice_i10"}

	// sinceKeys are tried in order; the first one present wins.
	sinceKeys = []string{"since_2016", "depuis_2016", "since_2017", "since_2018"}
)

// parseCitedByTable reads the cited_by.table rows. Each row is a one-key
// object such as {"h_index": {"all": 12, "since_2016": 10}}.
func parseCitedByTable(rows []map[string]json.RawMessage) *Metrics {
	m := &Metrics{}
	for _, row := range rows {
		if all, since, ok := rowValues(row, citationKeys); ok {
			m.CitationsAll, m.CitationsSince2016 = all, since
			continue
		}
		if all, since, ok := rowValues(row, hIndexKeys); ok {
			m.HIndexAll, m.HIndexSince2016 = all, since
		}
		if all, since, ok := rowValues(row, i10IndexKeys); ok {
			m.I10IndexAll, m.I10IndexSince2016 = all, since
		}
	}
	return m
}

func rowValues(row map[string]json.RawMessage, keys []string) (all, since record.Scalar, ok bool) {
	for _, key := range keys {
		raw, found := row[key]
		if !found {
			continue
		}
		var values map[string]json.RawMessage
		if err := json.Unmarshal(raw, &values); err != nil || values == nil {
			continue
		}
		all = scalar(values["all"])
		for _, k := range sinceKeys {
			if v, found := values[k]; found {
				since = scalar(v)
				break
			}
		}
		return all, since, true
	}
	return "", "", false
}

// scalar decodes a value, dropping anything that is not a plain scalar.
func scalar(raw json.RawMessage) record.Scalar {
	if raw == nil {
		return ""
	}
	var s record.Scalar
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}
