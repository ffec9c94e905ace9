// Package http exposes the annotation dataset over a JSON/CSV API plus the
// usual health, readiness, and metrics endpoints.
package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/couchcryptid/band-atlas/internal/domain"
	"github.com/couchcryptid/band-atlas/internal/label"
	"github.com/couchcryptid/band-atlas/internal/observability"
	"github.com/couchcryptid/band-atlas/internal/store"
	"github.com/couchcryptid/band-atlas/internal/style"
)

// MarkerPublisher pushes resolved markers to an external sink after each
// rebuild. A nil publisher disables publishing.
type MarkerPublisher interface {
	PublishMarkers(ctx context.Context, snap store.Snapshot) error
}

// Server exposes the dataset API and the health surface.
type Server struct {
	httpServer *http.Server
	st         *store.Store
	styles     style.Config
	labels     *label.Cache
	publisher  MarkerPublisher
	metrics    *observability.Metrics
	logger     *slog.Logger
	maxUpload  int64
}

// NewServer wires the routes. publisher may be nil.
func NewServer(addr string, st *store.Store, styles style.Config, labels *label.Cache,
	publisher MarkerPublisher, metrics *observability.Metrics, logger *slog.Logger, maxUpload int64) *Server {

	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		st:        st,
		styles:    styles,
		labels:    labels,
		publisher: publisher,
		metrics:   metrics,
		logger:    logger,
		maxUpload: maxUpload,
	}

	mux.HandleFunc("POST /dataset", s.handleLoad)
	mux.HandleFunc("DELETE /dataset", s.handleClear)
	mux.HandleFunc("POST /dataset/rows", s.handleAddRow)
	mux.HandleFunc("PUT /dataset/filter", s.handleSetFilter)
	mux.HandleFunc("GET /dataset/markers", s.handleMarkers)
	mux.HandleFunc("GET /dataset/shading", s.handleShading)
	mux.HandleFunc("POST /dataset/labels", s.handleLabels)
	mux.HandleFunc("GET /dataset/export", s.handleExport)
	mux.HandleFunc("GET /styles", s.handleStyles)
	mux.HandleFunc("GET /grid", s.handleGrid)

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)
	mux.Handle("GET /metrics", promhttp.Handler())

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (s *Server) handleReady(w http.ResponseWriter, _ *http.Request) {
	if !s.st.Loaded() {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "not ready",
			"error":  "no dataset loaded yet",
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

func (s *Server) handleStyles(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.styles)
}

func (s *Server) handleGrid(w http.ResponseWriter, _ *http.Request) {
	latEdges, lonEdges := domain.GridLines()
	writeJSON(w, http.StatusOK, map[string][]int{
		"lat_edges": latEdges,
		"lon_edges": lonEdges,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"status": "error", "error": err.Error()})
}
