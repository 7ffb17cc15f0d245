// Package site loads the portfolio data documents from a directory or an
// HTTP base URL.
package site

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"
)

// Document file names.
const (
	ProfileFile   = "profile.json"
	SummaryFile   = "summary.json"
	RecordsFile   = "publications.json"
	CitationsFile = "scholar_publications.json"
)

// DefaultTimeout bounds one HTTP document fetch.
const DefaultTimeout = 30 * time.Second

var (
	// ErrNotFound indicates the document does not exist at the source.
	ErrNotFound = errors.New("document not found")

	// ErrRequiredDocument indicates a required document could not be loaded.
	ErrRequiredDocument = errors.New("required document unavailable")
)

// StatusError is a non-OK HTTP response other than 404.
type StatusError struct {
	StatusCode int
	URL        string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: HTTP %d", e.URL, e.StatusCode)
}

// IsNotFound reports whether err means the document is absent.
func IsNotFound(err error) bool {
	if errors.Is(err, ErrNotFound) {
		return true
	}
	var se *StatusError
	return errors.As(err, &se) && se.StatusCode == http.StatusNotFound
}

// Source opens named documents.
type Source interface {
	Open(ctx context.Context, name string) (io.ReadCloser, error)
	String() string
}

// NewSource returns an HTTPSource for http(s) locations and a DirSource
// otherwise.
func NewSource(location string, client *http.Client) Source {
	if strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://") {
		return NewHTTPSource(location, client)
	}
	return DirSource{Root: location}
}

// DirSource reads documents from a local directory.
type DirSource struct {
	Root string
}

// Open opens name under Root.
func (s DirSource) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(filepath.Join(s.Root, filepath.FromSlash(name)))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		return nil, err
	}
	return f, nil
}

func (s DirSource) String() string { return s.Root }

// HTTPSource fetches documents relative to a base URL.
type HTTPSource struct {
	base   *url.URL
	raw    string
	client *http.Client
}

// NewHTTPSource creates a source for baseURL. A nil client gets
// DefaultTimeout.
func NewHTTPSource(baseURL string, client *http.Client) *HTTPSource {
	if client == nil {
		client = &http.Client{Timeout: DefaultTimeout}
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		u = nil
	}
	return &HTTPSource{base: u, raw: baseURL, client: client}
}

// Open GETs name. 404 maps to ErrNotFound; other non-2xx responses are
// returned as *StatusError.
func (s *HTTPSource) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	if s.base == nil {
		return nil, fmt.Errorf("invalid base URL %q", s.raw)
	}

	u := *s.base
	u.Path = path.Join("/", u.Path, name)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w", u.String(), err)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		resp.Body.Close()
		return nil, fmt.Errorf("%w: %s", ErrNotFound, u.String())
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		resp.Body.Close()
		return nil, &StatusError{StatusCode: resp.StatusCode, URL: u.String()}
	}
	return resp.Body, nil
}

func (s *HTTPSource) String() string { return s.raw }
