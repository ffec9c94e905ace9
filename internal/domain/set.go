package domain

// RawRow is one CSV data record after header resolution: the canonical
// columns pulled out as strings, plus every raw column for display.
// Coordinate validation has not happened yet.
type RawRow struct {
	Lat     string
	Lon     string
	Label   string
	Band    string
	Date    string
	Comment string

	// Columns preserves every header column (recognized or not) keyed by its
	// original name, in ColumnOrder. Display fields are taken first-seen.
	Columns     map[string]string
	ColumnOrder []string

	// Number is the 1-based data row number (header excluded), used in the
	// skip report.
	Number int
}

// memberRow is a validated row inside a LocationSet.
type memberRow struct {
	BandRaw string
	Date    *ParsedDate
	Comment string
	Row     RawRow
}

// LocationSet aggregates all rows sharing a LocationKey. It is the unit of
// band classification: after resolution every set carries exactly one
// Category.
type LocationSet struct {
	Lat   float64
	Lon   float64
	Label string

	LatBin int
	LonBin int

	// Earliest is the first-encountered minimum valid date among members,
	// nil when no member date parses.
	Earliest *ParsedDate

	// ExplicitTypes are the distinct canonical band types found among
	// members (IsValidBandRaw), in encounter order. When non-empty they
	// decide the category; dates are ignored.
	ExplicitTypes []BandCategory

	// Comment merges the distinct non-empty member comments.
	Comment string

	Category BandCategory

	members []memberRow
}

// Members returns the number of rows collapsed into this set.
func (s *LocationSet) Members() int { return len(s.members) }

// Marker is the renderable entity derived 1:1 from a resolved LocationSet.
type Marker struct {
	Lat      float64      `json:"lat"`
	Lon      float64      `json:"lon"`
	Label    string       `json:"label"`
	Category BandCategory `json:"category"`
	LatBin   int          `json:"lat_bin"`
	LonBin   int          `json:"lon_bin"`

	// Fields is the flattened popup display table: canonical computed fields
	// plus first-seen raw columns. FieldOrder fixes iteration order for
	// display and export.
	Fields     map[string]string `json:"fields"`
	FieldOrder []string          `json:"field_order"`
}

// SkippedRow records one input row excluded from processing.
type SkippedRow struct {
	Number int    `json:"row"`
	Reason string `json:"reason"`
}

// Filter selects which band categories are active. A nil Filter passes
// everything.
type Filter map[BandCategory]bool

// DefaultFilter returns a filter with all four categories active.
func DefaultFilter() Filter {
	f := make(Filter, len(Categories))
	for _, c := range Categories {
		f[c] = true
	}
	return f
}

// Pass reports whether category c is active under the filter.
func (f Filter) Pass(c BandCategory) bool {
	if f == nil {
		return true
	}
	return f[c]
}
