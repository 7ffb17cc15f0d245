package record

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Scalar is a loosely typed JSON value (string, number or null) kept in its
// textual form. Spreadsheet exports write numbers as strings and hand-edited
// files write them as numbers; both decode to the same Scalar.
type Scalar string

// UnmarshalJSON accepts a JSON string, number, boolean or null.
func (s *Scalar) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*s = ""
		return nil
	}

	switch data[0] {
	case '"':
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		*s = Scalar(str)
	case '{', '[':
		return fmt.Errorf("scalar value expected, got %s", data)
	default:
		// Numbers and booleans keep their literal text.
		*s = Scalar(data)
	}
	return nil
}

// MarshalJSON writes numeric text as a JSON number and anything else as a
// string.
func (s Scalar) MarshalJSON() ([]byte, error) {
	text := strings.TrimSpace(string(s))
	if isJSONNumber(text) {
		return []byte(text), nil
	}
	return json.Marshal(string(s))
}

func isJSONNumber(text string) bool {
	if text == "" {
		return false
	}
	if c := text[0]; c != '-' && (c < '0' || c > '9') {
		return false
	}
	return json.Valid([]byte(text))
}

// String returns the raw text.
func (s Scalar) String() string {
	return string(s)
}

// IsEmpty reports whether the value is missing or blank.
func (s Scalar) IsEmpty() bool {
	return strings.TrimSpace(string(s)) == ""
}

// Float parses the value as a finite number.
// ok is false for empty, non-numeric, NaN and infinite values.
func (s Scalar) Float() (v float64, ok bool) {
	text := strings.TrimSpace(string(s))
	if text == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// Number coerces a scalar to a number; anything unparseable counts as 0.
func Number(s Scalar) float64 {
	v, _ := s.Float()
	return v
}
