package document

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Link is one labeled profile URL.
type Link struct {
	Label string
	URL   string
}

// Links is the profile's {label: url} object with key order preserved.
type Links []Link

// UnmarshalJSON decodes a JSON object keeping its key order.
func (l *Links) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*l = nil
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("links: expected object")
	}

	var links Links
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, _ := keyTok.(string)

		var url string
		if err := dec.Decode(&url); err != nil {
			return fmt.Errorf("links[%s]: %w", key, err)
		}
		links = append(links, Link{Label: key, URL: url})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}

	*l = links
	return nil
}

// MarshalJSON encodes the links as an object in their original order.
func (l Links) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, link := range l {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(link.Label)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(link.URL)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
