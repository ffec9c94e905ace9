// Package store keeps the service's world state as an explicit immutable
// snapshot rebuilt by a pure reducer. There is no incremental mutation of the
// classification: every event re-groups and re-resolves the whole dataset and
// the previous snapshot is discarded wholesale.
package store

import (
	"log/slog"
	"sync"
	"time"

	"github.com/couchcryptid/band-atlas/internal/domain"
)

// Event is a state transition input for Reduce.
type Event interface{ isEvent() }

// LoadRows replaces the dataset with freshly parsed CSV rows.
type LoadRows struct {
	Rows           []domain.RawRow
	UnknownColumns []string
}

// AddRow appends one manually entered row to the current dataset.
type AddRow struct {
	Row domain.RawRow
}

// Clear discards the dataset.
type Clear struct{}

// SetFilter replaces the active category filter.
type SetFilter struct {
	Filter domain.Filter
}

func (LoadRows) isEvent()  {}
func (AddRow) isEvent()    {}
func (Clear) isEvent()     {}
func (SetFilter) isEvent() {}

// Snapshot is one immutable world state. Derived data (sets, markers, skip
// report) is always consistent with Rows because both are produced by the
// same Reduce call.
type Snapshot struct {
	Rows           []domain.RawRow
	Sets           []*domain.LocationSet
	Markers        []domain.Marker
	Skipped        []domain.SkippedRow
	UnknownColumns []string
	Filter         domain.Filter

	// Version increments on every applied event; derived caches key on it.
	Version uint64
	BuiltAt time.Time
}

// VisibleMarkers returns the markers passing the snapshot's filter.
func (s Snapshot) VisibleMarkers() []domain.Marker {
	out := make([]domain.Marker, 0, len(s.Markers))
	for _, m := range s.Markers {
		if s.Filter.Pass(m.Category) {
			out = append(out, m)
		}
	}
	return out
}

// Reduce applies one event to the previous snapshot and returns the next.
// Pure except for the build timestamp, which comes from the domain clock.
func Reduce(prev Snapshot, ev Event) Snapshot {
	next := Snapshot{
		Filter:  prev.Filter,
		Version: prev.Version + 1,
		BuiltAt: domain.Now(),
	}
	if next.Filter == nil {
		next.Filter = domain.DefaultFilter()
	}

	switch e := ev.(type) {
	case LoadRows:
		next.Rows = e.Rows
		next.UnknownColumns = e.UnknownColumns
	case AddRow:
		next.Rows = append(append([]domain.RawRow(nil), prev.Rows...), renumber(e.Row, len(prev.Rows)+1))
		next.UnknownColumns = prev.UnknownColumns
	case Clear:
		// leave Rows empty
	case SetFilter:
		next.Rows = prev.Rows
		next.UnknownColumns = prev.UnknownColumns
		next.Filter = e.Filter
	}

	res := domain.Resolve(next.Rows)
	next.Sets = res.Sets
	next.Markers = res.Markers
	next.Skipped = res.Skipped
	return next
}

func renumber(row domain.RawRow, number int) domain.RawRow {
	row.Number = number
	return row
}

// Store is the thread-safe holder of the current snapshot. Writers apply
// events sequentially; readers get a consistent value copy.
type Store struct {
	mu     sync.RWMutex
	snap   Snapshot
	loaded bool
	logger *slog.Logger
}

// New creates a Store holding an empty snapshot with the default filter.
func New(logger *slog.Logger) *Store {
	return &Store{
		snap:   Snapshot{Filter: domain.DefaultFilter()},
		logger: logger,
	}
}

// Apply reduces the event into a new snapshot, swaps it in, and returns it.
func (s *Store) Apply(ev Event) Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snap = Reduce(s.snap, ev)
	if _, ok := ev.(LoadRows); ok {
		s.loaded = true
	}

	s.logger.Info("snapshot rebuilt",
		"version", s.snap.Version,
		"rows", len(s.snap.Rows),
		"sets", len(s.snap.Sets),
		"skipped", len(s.snap.Skipped),
	)
	return s.snap
}

// Snapshot returns the current world state.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap
}

// Loaded reports whether any dataset has been loaded since startup. The
// readiness probe keys on it.
func (s *Store) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}
