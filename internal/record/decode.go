package record

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrInvalidRecord is returned when a record fails validation at ingestion.
var ErrInvalidRecord = errors.New("invalid record")

// ValidationError describes which record failed validation and why.
type ValidationError struct {
	Index  int
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("record %d: %s", e.Index, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidRecord
}

// Decode reads a records document (a JSON array of records) and validates
// every entry.
func Decode(r io.Reader) ([]Record, error) {
	var records []Record
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, fmt.Errorf("parsing records: %w", err)
	}
	if err := Validate(records); err != nil {
		return nil, err
	}
	return records, nil
}

// Validate checks record types, inferring a missing record_type from the
// category. It modifies records in place.
func Validate(records []Record) error {
	for i := range records {
		r := &records[i]
		r.Type = Type(strings.TrimSpace(string(r.Type)))
		if r.Type == "" {
			r.Type = InferType(r.Category)
			continue
		}
		if !IsValidType(r.Type) {
			return &ValidationError{Index: i, Reason: fmt.Sprintf("unknown record_type %q", r.Type)}
		}
	}
	return nil
}

// IsValidType reports whether t is one of ValidTypes.
func IsValidType(t Type) bool {
	for _, valid := range ValidTypes {
		if t == valid {
			return true
		}
	}
	return false
}

// InferType picks a record type for rows that do not carry one.
func InferType(category string) Type {
	switch {
	case category == CategoryConference:
		return ConferenceContribution
	case strings.Contains(strings.ToLower(category), "book chapter"):
		return BookChapter
	case category == CategoryA:
		return JournalArticle
	default:
		return OtherPublication
	}
}
