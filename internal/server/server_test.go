package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/dtobolski/portfolio/internal/site"
)

const (
	testProfile = `{"name":"Jan Kowalski","role":"Researcher","links":{"ORCID":"https://orcid.org/0000"}}`
	testSummary = `{"generated_on":"01.02.2025","totals":{"mnicsw_points":240,"publications_list_a":"1"},"scholar_metrics":{"citations_all":"15","h_index_all":2}}`
	testRecords = `[
		{"record_type":"journal_article","year":"2021","category":"A","citation":"Moss colonies","mnicsw_points":140},
		{"record_type":"journal_article","year":"2020","category":"B","citation":"Soil notes","mnicsw_points":100},
		{"record_type":"conference_contribution","year":2022,"category":"Conference","subtype":"Poster","citation":"Poster on lichens"}
	]`
)

func dataDir(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, body := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func newTestServer(t *testing.T, files map[string]string) (*Server, *bytes.Buffer) {
	t.Helper()
	dir := dataDir(t, files)
	var logs bytes.Buffer
	cfg := DefaultConfig()
	cfg.DataDir = dir
	return NewServer(cfg, site.DirSource{Root: dir}, zerolog.New(&logs)), &logs
}

func fullData() map[string]string {
	return map[string]string{
		site.ProfileFile: testProfile,
		site.SummaryFile: testSummary,
		site.RecordsFile: testRecords,
	}
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, target, nil))
	return rr
}

func TestHealthz(t *testing.T) {
	s, logs := newTestServer(t, fullData())
	rr := get(t, s.Handler(), "/healthz")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil || body["status"] != "ok" {
		t.Errorf("body = %s", rr.Body.String())
	}
	if !strings.Contains(logs.String(), `"path":"/healthz"`) || !strings.Contains(logs.String(), `"request_id"`) {
		t.Errorf("request not logged: %s", logs.String())
	}
}

func TestPage(t *testing.T) {
	s, _ := newTestServer(t, fullData())

	tests := []struct {
		name    string
		target  string
		want    []string
		notWant []string
	}{
		{
			name:   "default",
			target: "/",
			want:   []string{"Jan Kowalski", "Moss colonies", "Soil notes", "Poster on lichens"},
		},
		{
			name:    "category filter",
			target:  "/?category=A",
			want:    []string{"Moss colonies"},
			notWant: []string{"Soil notes"},
		},
		{
			name:    "search filter",
			target:  "/?q=soil&cq=nothing",
			want:    []string{"Soil notes"},
			notWant: []string{"Moss colonies", "Poster on lichens"},
		},
		{
			name:   "chart and theme",
			target: "/?chart=mnicsw_points&theme=dark",
			want:   []string{"theme-dark", `id="chart"`},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := get(t, s.Handler(), tt.target)
			if rr.Code != http.StatusOK {
				t.Fatalf("status = %d: %s", rr.Code, rr.Body.String())
			}
			if ct := rr.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
				t.Errorf("Content-Type = %q", ct)
			}
			body := rr.Body.String()
			for _, w := range tt.want {
				if !strings.Contains(body, w) {
					t.Errorf("body missing %q", w)
				}
			}
			for _, w := range tt.notWant {
				if strings.Contains(body, w) {
					t.Errorf("body unexpectedly contains %q", w)
				}
			}
		})
	}
}

func TestPage_UnknownChart(t *testing.T) {
	s, _ := newTestServer(t, fullData())
	rr := get(t, s.Handler(), "/?chart=bogus")
	if rr.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rr.Code)
	}
}

func TestPage_RequiredDocumentMissing(t *testing.T) {
	files := fullData()
	delete(files, site.SummaryFile)
	s, _ := newTestServer(t, files)

	rr := get(t, s.Handler(), "/")
	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "Unable to load portfolio data") {
		t.Errorf("error page missing message: %s", rr.Body.String())
	}
}

func TestDataFiles(t *testing.T) {
	s, _ := newTestServer(t, fullData())

	rr := get(t, s.Handler(), "/data/"+site.ProfileFile)
	if rr.Code != http.StatusOK || !strings.Contains(rr.Body.String(), "Jan Kowalski") {
		t.Errorf("GET profile = %d %s", rr.Code, rr.Body.String())
	}

	rr = httptest.NewRecorder()
	s.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/data/"+site.ProfileFile, nil))
	if rr.Code != http.StatusMethodNotAllowed {
		t.Errorf("POST status = %d, want 405", rr.Code)
	}
}

func TestRun_GracefulShutdown(t *testing.T) {
	s, _ := newTestServer(t, fullData())
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx, ln) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/healthz")
	if err != nil {
		t.Fatalf("GET /healthz: %v", err)
	}
	resp.Body.Close()

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run() error = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run() did not return after cancel")
	}
}
