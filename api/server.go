// Package api - the dashboard HTTP layer.
// The API is only responsible for request handling, orchestration of
// fetch/parse/summarize, and serialization. It never aggregates itself.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"addon-catalog/adapters/fetch"
	"addon-catalog/core/analysis"
	"addon-catalog/core/output"
	"addon-catalog/core/parser"
	"addon-catalog/internal/logging"
)

// Server is the dashboard server
type Server struct {
	mux        *http.ServeMux
	version    string
	defaultURL string
	cachePath  string

	// lastGood holds the most recent successfully computed report; the
	// HTML view falls back to it when a refetch fails.
	mu       sync.RWMutex
	lastGood *output.Report
}

// NewServer creates a new dashboard server
func NewServer(version, defaultURL, cachePath string) *Server {
	s := &Server{
		mux:        http.NewServeMux(),
		version:    version,
		defaultURL: defaultURL,
		cachePath:  cachePath,
	}
	s.registerRoutes()
	return s
}

// registerRoutes registers all routes
func (s *Server) registerRoutes() {
	s.mux.HandleFunc("GET /{$}", s.handleIndex)
	s.mux.HandleFunc("GET /api/summary", s.handleSummary)
	s.mux.HandleFunc("GET /healthz", s.handleHealth)
}

// statusRecorder captures the response status for the access log.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// ServeHTTP implements http.Handler with a per-request access log.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	requestID := uuid.NewString()
	rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

	s.mux.ServeHTTP(rec, r)

	logging.Info("request",
		zap.String("request_id", requestID),
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.Int("status", rec.status),
		zap.Duration("duration", time.Since(start)),
	)
}

// loadReport runs one fetch, parse, and summarize cycle for url.
func (s *Server) loadReport(ctx context.Context, url string) (*output.Report, error) {
	dest, err := fetch.Catalog(ctx, url, s.cachePath)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(dest)
	if err != nil {
		return nil, err
	}
	addons, err := parser.Parse(string(data))
	if err != nil {
		return nil, err
	}
	report := &output.Report{
		Summary:     analysis.Summarize(addons),
		CatalogPath: dest,
		URL:         url,
	}

	s.mu.Lock()
	s.lastGood = report
	s.mu.Unlock()
	return report, nil
}

func (s *Server) lastGoodReport() *output.Report {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastGood
}

// requestURL returns the per-request catalog source, honoring the url
// query parameter override.
func (s *Server) requestURL(r *http.Request) string {
	if url := r.URL.Query().Get("url"); url != "" {
		return url
	}
	return s.defaultURL
}

// handleSummary handles GET /api/summary
func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	url := s.requestURL(r)
	report, err := s.loadReport(r.Context(), url)
	if err != nil {
		logging.Error("summary failed", zap.String("url", url), zap.Error(err))
		s.writeJSON(w, map[string]string{
			"error": err.Error(),
			"url":   url,
		}, http.StatusBadGateway)
		return
	}
	s.writeJSON(w, report, http.StatusOK)
}

// handleIndex handles GET /
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	url := s.requestURL(r)
	query := r.URL.Query()

	report, err := s.loadReport(r.Context(), url)
	errMsg := ""
	if err != nil {
		logging.Error("dashboard refresh failed", zap.String("url", url), zap.Error(err))
		errMsg = "Failed to load catalog: " + err.Error()
		report = s.lastGoodReport()
	}

	page := buildPage(report, url, errMsg, pageFilters{
		Platform:     query.Get("platform"),
		OSType:       query.Get("os_type"),
		Architecture: query.Get("architecture"),
	})

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := renderPage(w, page); err != nil {
		logging.Error("template render failed", zap.Error(err))
	}
}

// handleHealth handles GET /healthz
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, map[string]string{
		"status":  "ok",
		"version": s.version,
	}, http.StatusOK)
}

func (s *Server) writeJSON(w http.ResponseWriter, data interface{}, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}
