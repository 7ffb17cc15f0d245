package record

import (
	"strings"
	"time"
)

// DateLayout is the display layout for record dates.
const DateLayout = "02.01.2006"

var dateLayouts = []string{DateLayout, "2006-01-02"}

// ParseDate accepts DD.MM.YYYY or YYYY-MM-DD.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// FormatDateRange renders start and end as one date when they fall on the
// same day, as "start–end" otherwise, or just start when end is missing.
func FormatDateRange(start, end string) string {
	s, okStart := ParseDate(start)
	if !okStart {
		return ""
	}
	e, okEnd := ParseDate(end)
	if !okEnd || e.Equal(s) {
		return s.Format(DateLayout)
	}
	return s.Format(DateLayout) + "–" + e.Format(DateLayout)
}

// YearInt returns the year as an integer, truncating values like "2021.0".
func (r Record) YearInt() (int, bool) {
	v, ok := r.Year.Float()
	if !ok {
		return 0, false
	}
	return int(v), true
}
