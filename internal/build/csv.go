// Package build turns the curated publications spreadsheet into the JSON
// documents the site reads.
package build

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/dtobolski/portfolio/internal/record"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ReadCSV reads the publications spreadsheet at path.
func ReadCSV(path string) ([]record.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	records, err := ParseCSV(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return records, nil
}

// ParseCSV decodes spreadsheet bytes. UTF-8 (with or without BOM) is
// preferred; anything that is not valid UTF-8 is read as Windows-1250, the
// usual encoding of Polish Excel exports. The delimiter is ',' or ';',
// whichever the header line uses more. Missing record types are inferred
// and unknown ones rejected.
func ParseCSV(data []byte) ([]record.Record, error) {
	text, err := decodeText(data)
	if err != nil {
		return nil, err
	}

	r := csv.NewReader(strings.NewReader(text))
	r.Comma = sniffDelimiter(text)
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	header, err := r.Read()
	if err == io.EOF {
		return []record.Record{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}
	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.ToLower(strings.TrimSpace(name))] = i
	}

	var records []record.Record
	for line := 2; ; line++ {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if blankRow(row) {
			continue
		}
		records = append(records, rowToRecord(row, columns))
	}
	if records == nil {
		records = []record.Record{}
	}

	if err := record.Validate(records); err != nil {
		return nil, err
	}
	return records, nil
}

func decodeText(data []byte) (string, error) {
	data = bytes.TrimPrefix(data, utf8BOM)
	if utf8.Valid(data) {
		return string(data), nil
	}
	out, _, err := transform.Bytes(charmap.Windows1250.NewDecoder(), data)
	if err != nil {
		return "", fmt.Errorf("decoding windows-1250: %w", err)
	}
	return string(out), nil
}

func sniffDelimiter(text string) rune {
	first, _, _ := strings.Cut(text, "\n")
	if strings.Count(first, ";") > strings.Count(first, ",") {
		return ';'
	}
	return ','
}

func blankRow(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

func rowToRecord(row []string, columns map[string]int) record.Record {
	get := func(name string) string {
		i, ok := columns[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	return record.Record{
		Type:         record.Type(get("record_type")),
		Year:         record.Scalar(get("year")),
		Category:     get("category"),
		Subtype:      get("subtype"),
		Citation:     get("citation"),
		DOI:          get("doi"),
		MNiSWPoints:  record.Scalar(get("mnicsw_points")),
		ImpactFactor: record.Scalar(get("impact_factor")),
		StartDate:    get("start_date"),
		EndDate:      get("end_date"),
		City:         get("city"),
		Country:      get("country"),
		Award:        get("award"),
	}
}
