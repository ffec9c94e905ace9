package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/couchcryptid/band-atlas/internal/csvio"
	"github.com/couchcryptid/band-atlas/internal/domain"
	"github.com/couchcryptid/band-atlas/internal/label"
	"github.com/couchcryptid/band-atlas/internal/store"
)

// loadSummary is the response to a successful upload or row addition.
type loadSummary struct {
	Version        uint64              `json:"version"`
	Rows           int                 `json:"rows"`
	Sets           int                 `json:"sets"`
	Skipped        []domain.SkippedRow `json:"skipped,omitempty"`
	UnknownColumns []string            `json:"unknown_columns,omitempty"`
	Report         string              `json:"report,omitempty"`
}

func summarize(snap store.Snapshot) loadSummary {
	return loadSummary{
		Version:        snap.Version,
		Rows:           len(snap.Rows),
		Sets:           len(snap.Sets),
		Skipped:        snap.Skipped,
		UnknownColumns: snap.UnknownColumns,
		Report:         csvio.FormatReport(snap.Skipped, snap.UnknownColumns),
	}
}

// handleLoad replaces the dataset from a CSV request body. Header errors are
// fatal to the load: the previous snapshot stays in place and nothing is
// rendered from the rejected file.
func (s *Server) handleLoad(w http.ResponseWriter, r *http.Request) {
	body := http.MaxBytesReader(w, r.Body, s.maxUpload)
	defer body.Close()

	start := time.Now()
	rows, header, err := csvio.ReadRows(body)
	if err != nil {
		s.logger.Warn("csv load rejected", "error", err)
		writeError(w, http.StatusBadRequest, err)
		return
	}

	snap := s.st.Apply(store.LoadRows{Rows: rows, UnknownColumns: header.Unknown})
	// A load replaces the dataset, so the snapshot counts are this upload's.
	s.observeRebuild(snap, time.Since(start), len(snap.Rows)-len(snap.Skipped), len(snap.Skipped))
	s.metrics.DatasetsLoaded.Inc()
	s.metrics.DatasetRows.Observe(float64(len(rows)))

	s.publish(r, snap)
	writeJSON(w, http.StatusOK, summarize(snap))
}

// addRowRequest is a manually entered row; all fields are raw strings, the
// same as one CSV record.
type addRowRequest struct {
	Lat     string `json:"lat"`
	Lon     string `json:"lon"`
	Label   string `json:"label"`
	Band    string `json:"band_type"`
	Date    string `json:"date"`
	Comment string `json:"comment"`
}

func (s *Server) handleAddRow(w http.ResponseWriter, r *http.Request) {
	var req addRowRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	start := time.Now()
	prev := s.st.Snapshot()
	snap := s.st.Apply(store.AddRow{Row: domain.RawRow{
		Lat:     req.Lat,
		Lon:     req.Lon,
		Label:   req.Label,
		Band:    req.Band,
		Date:    req.Date,
		Comment: req.Comment,
	}})
	skipped := len(snap.Skipped) - len(prev.Skipped)
	s.observeRebuild(snap, time.Since(start), 1-skipped, skipped)

	s.publish(r, snap)
	writeJSON(w, http.StatusOK, summarize(snap))
}

func (s *Server) handleClear(w http.ResponseWriter, _ *http.Request) {
	snap := s.st.Apply(store.Clear{})
	s.metrics.CurrentMarkers.Set(0)
	writeJSON(w, http.StatusOK, summarize(snap))
}

type filterRequest struct {
	Categories []string `json:"categories"`
}

func (s *Server) handleSetFilter(w http.ResponseWriter, r *http.Request) {
	var req filterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	filter := make(domain.Filter, len(req.Categories))
	for _, c := range req.Categories {
		cat := domain.BandCategory(c)
		if !validCategory(cat) {
			writeError(w, http.StatusBadRequest, errors.New("unknown category: "+c))
			return
		}
		filter[cat] = true
	}

	snap := s.st.Apply(store.SetFilter{Filter: filter})
	writeJSON(w, http.StatusOK, summarize(snap))
}

func validCategory(c domain.BandCategory) bool {
	for _, known := range domain.Categories {
		if c == known {
			return true
		}
	}
	return false
}

func (s *Server) handleMarkers(w http.ResponseWriter, _ *http.Request) {
	snap := s.st.Snapshot()
	writeJSON(w, http.StatusOK, map[string]any{
		"version": snap.Version,
		"markers": snap.VisibleMarkers(),
	})
}

// shadedCell extends the domain cell with its resolved fill color.
type shadedCell struct {
	domain.ShadedCell
	Fill string `json:"fill"`
}

func (s *Server) handleShading(w http.ResponseWriter, _ *http.Request) {
	snap := s.st.Snapshot()
	cells := domain.ShadeCells(snap.Markers, snap.Filter)

	out := make([]shadedCell, len(cells))
	for i, c := range cells {
		out[i] = shadedCell{ShadedCell: c, Fill: s.styles.Fill(c)}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"version": snap.Version,
		"opacity": s.styles.Shading.Opacity,
		"cells":   out,
	})
}

// labelsResponse pairs placements with the markers they annotate.
type labelsResponse struct {
	Version    uint64            `json:"version"`
	Placements []label.Placement `json:"placements"`
}

// handleLabels recomputes label placements for the client's viewport. Only
// markers inside the viewport participate; results are served from the LRU
// when the same viewport repeats against an unchanged dataset.
func (s *Server) handleLabels(w http.ResponseWriter, r *http.Request) {
	var vp label.Viewport
	if err := json.NewDecoder(r.Body).Decode(&vp); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if !vp.Valid() {
		writeError(w, http.StatusBadRequest, errors.New("viewport must have positive extent"))
		return
	}

	snap := s.st.Snapshot()
	inputs := make([]label.Input, 0, len(snap.Markers))
	for _, m := range snap.VisibleMarkers() {
		p, ok := vp.Project(m.Lat, m.Lon)
		if !ok {
			continue
		}
		inputs = append(inputs, label.Input{Marker: p, Text: m.Label})
	}

	start := time.Now()
	placements := s.labels.Place(snap.Version, vp, inputs)
	s.metrics.PlaceDuration.Observe(time.Since(start).Seconds())

	writeJSON(w, http.StatusOK, labelsResponse{Version: snap.Version, Placements: placements})
}

func (s *Server) handleExport(w http.ResponseWriter, _ *http.Request) {
	snap := s.st.Snapshot()

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="annotations.csv"`)
	if err := csvio.WriteNormalized(w, snap.Markers); err != nil {
		s.logger.Error("export failed", "error", err)
	}
}

// observeRebuild records one rebuild. The ingested and skipped counts are the
// deltas this event contributed, not the snapshot totals, so the counters
// track rows processed rather than re-counting the dataset on every rebuild.
func (s *Server) observeRebuild(snap store.Snapshot, d time.Duration, ingested, skipped int) {
	s.metrics.ResolveDuration.Observe(d.Seconds())
	s.metrics.RowsIngested.Add(float64(ingested))
	s.metrics.RowsSkipped.Add(float64(skipped))
	s.metrics.CurrentMarkers.Set(float64(len(snap.Markers)))
}

// publish pushes the rebuilt snapshot's markers to the sink, if configured.
// Failures are logged, never surfaced to the uploader.
func (s *Server) publish(r *http.Request, snap store.Snapshot) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishMarkers(r.Context(), snap); err != nil {
		s.logger.Error("marker publish failed", "error", err, "version", snap.Version)
		return
	}
	s.metrics.MarkersPublished.Add(float64(len(snap.Markers)))
}
