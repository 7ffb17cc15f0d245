// Package server serves the rendered portfolio page and its data files.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/dtobolski/portfolio/internal/chart"
	"github.com/dtobolski/portfolio/internal/listview"
	"github.com/dtobolski/portfolio/internal/page"
	"github.com/dtobolski/portfolio/internal/portfolio"
	"github.com/dtobolski/portfolio/internal/site"
)

// Config holds HTTP server configuration.
type Config struct {
	Address         string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration

	// DataDir, when set, is exposed read-only under /data/.
	DataDir string

	// Theme is used when a request does not pick one.
	Theme string
}

// DefaultConfig returns settings suitable for local previews.
func DefaultConfig() Config {
	return Config{
		Address:         "127.0.0.1:8080",
		ReadTimeout:     15 * time.Second,
		WriteTimeout:    30 * time.Second,
		IdleTimeout:     60 * time.Second,
		ShutdownTimeout: 10 * time.Second,
	}
}

// Server renders the portfolio page from a data source on every request.
type Server struct {
	router     chi.Router
	httpServer *http.Server
	source     site.Source
	cfg        Config
	logger     zerolog.Logger
}

// NewServer creates a server reading documents from src.
func NewServer(cfg Config, src site.Source, logger zerolog.Logger) *Server {
	s := &Server{
		source: src,
		cfg:    cfg,
		logger: logger.With().Str("component", "http-server").Logger(),
	}

	s.router = s.buildRouter()

	s.httpServer = &http.Server{
		Addr:         cfg.Address,
		Handler:      s.router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return s
}

// Handler returns the router, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(s.logger))
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.healthHandler)
	r.Get("/", s.pageHandler)
	r.Head("/", s.pageHandler)

	if s.cfg.DataDir != "" {
		files := http.StripPrefix("/data/", http.FileServer(http.Dir(s.cfg.DataDir)))
		r.Get("/data/*", files.ServeHTTP)
		r.Head("/data/*", files.ServeHTTP)
	}

	return r
}

// Start listens on the configured address and serves until Shutdown.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("listen on HTTP address: %w", err)
	}
	return s.Serve(ln)
}

// Serve serves on ln until Shutdown.
func (s *Server) Serve(ln net.Listener) error {
	s.logger.Info().Str("address", ln.Addr().String()).Str("source", s.source.String()).Msg("HTTP server starting")
	err := s.httpServer.Serve(ln)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// Run serves on ln until ctx is cancelled, then shuts down within the
// configured timeout.
func (s *Server) Run(ctx context.Context, ln net.Listener) error {
	errCh := make(chan error, 1)
	go func() { errCh <- s.Serve(ln) }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	timeout := s.cfg.ShutdownTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	s.logger.Info().Msg("HTTP server shutting down")
	if err := s.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	return <-errCh
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// pageHandler loads the dataset and renders the page. Query parameters
// select the theme, the open chart and list filters.
func (s *Server) pageHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	theme := q.Get("theme")
	if theme == "" {
		theme = s.cfg.Theme
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	ds, err := site.Load(r.Context(), s.source, s.logger)
	if err != nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		if rerr := page.RenderError(w, err, theme); rerr != nil {
			s.logger.Error().Err(rerr).Msg("rendering error page")
		}
		return
	}

	p := portfolio.New(ds)
	if _, err := p.Dispatch(listview.Publications, filterActions(q, "")...); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if _, err := p.Dispatch(listview.Conferences, filterActions(q, "c")...); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	err = page.Render(w, p, page.Options{Theme: theme, ChartKey: q.Get("chart")})
	if errors.Is(err, chart.ErrUnknownMetric) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		s.logger.Error().Err(err).Msg("rendering page")
		writeError(w, http.StatusInternalServerError, "rendering failed")
	}
}

// filterActions maps query parameters to list actions. Conference filters
// use the "c" prefix (cq, cyear, ccategory).
func filterActions(q url.Values, prefix string) []listview.Action {
	var actions []listview.Action
	if v := q.Get(prefix + "q"); v != "" {
		actions = append(actions, listview.SetSearch(v))
	}
	if v := q.Get(prefix + "year"); v != "" {
		actions = append(actions, listview.SetYear(v))
	}
	if v := q.Get(prefix + "category"); v != "" {
		actions = append(actions, listview.SetCategory(v))
	}
	if v := q.Get(prefix + "type"); v != "" {
		actions = append(actions, listview.SetType(v))
	}
	return actions
}

func writeJSON(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, map[string]string{"error": message})
}
