package domain

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// SkipReasonBadCoordinate is the only row-level skip reason currently emitted.
const SkipReasonBadCoordinate = "Invalid or out-of-range lat/lon"

// canonicalFields is the fixed leading order of marker display fields; raw
// columns follow in first-seen order.
var canonicalFields = []string{"lat", "lon", "label", "band_type", "date", "comment", "lat_bin", "lon_bin"}

// Resolution is the complete output of one grouping-and-classification run.
type Resolution struct {
	Sets    []*LocationSet
	Markers []Marker
	Skipped []SkippedRow
}

// Resolve converts raw rows into classified LocationSets and Markers. The
// whole computation is synchronous and deterministic: row order decides
// first-seen display values and earliest-date ties, so callers must pass rows
// in original file order.
//
// Classification is two-stage. Sets with at least one explicit canonical band
// type resolve from those types alone. Sets with none fall back to the global
// epoch tie-break: the first location to arrive in a 10-degree longitude band
// claims "stripe", in a latitude band "ring", in both "both". Bin epochs are
// computed over every dated set, including ones already resolved explicitly.
func Resolve(rows []RawRow) Resolution {
	sets, skipped := groupRows(rows)

	for _, set := range sets {
		summarize(set)
	}

	stripeEpoch, ringEpoch := binEpochs(sets)

	for _, set := range sets {
		if len(set.ExplicitTypes) > 0 {
			set.Category = resolveExplicit(set.ExplicitTypes)
			continue
		}
		set.Category = resolveByEpoch(set, stripeEpoch, ringEpoch)
	}

	markers := make([]Marker, len(sets))
	for i, set := range sets {
		markers[i] = makeMarker(set)
	}

	return Resolution{Sets: sets, Markers: markers, Skipped: skipped}
}

// groupRows validates coordinates and buckets rows by LocationKey, preserving
// first-seen set order. Bad rows land in the skip report and never abort the
// batch.
func groupRows(rows []RawRow) ([]*LocationSet, []SkippedRow) {
	var (
		sets    []*LocationSet
		skipped []SkippedRow
		byKey   = make(map[LocationKey]*LocationSet)
	)

	for _, row := range rows {
		lat, lon, ok := parseCoordinates(row.Lat, row.Lon)
		if !ok {
			skipped = append(skipped, SkippedRow{Number: row.Number, Reason: SkipReasonBadCoordinate})
			continue
		}

		key := LocationKey{
			Lat:   round6(lat),
			Lon:   round6(lon),
			Label: strings.ToLower(strings.TrimSpace(row.Label)),
		}

		set, exists := byKey[key]
		if !exists {
			set = &LocationSet{
				Lat:    key.Lat,
				Lon:    key.Lon,
				Label:  strings.TrimSpace(row.Label),
				LatBin: LatBin(lat),
				LonBin: LonBin(lon),
			}
			byKey[key] = set
			sets = append(sets, set)
		}

		set.members = append(set.members, memberRow{
			BandRaw: row.Band,
			Date:    ParseDate(row.Date),
			Comment: strings.TrimSpace(row.Comment),
			Row:     row,
		})
	}

	return sets, skipped
}

// parseCoordinates parses and validates a raw lat/lon pair. Longitude is
// normalized into [-180, 180) only after the raw value passes range checks.
func parseCoordinates(latRaw, lonRaw string) (lat, lon float64, ok bool) {
	lat, errLat := strconv.ParseFloat(strings.TrimSpace(latRaw), 64)
	lon, errLon := strconv.ParseFloat(strings.TrimSpace(lonRaw), 64)
	if errLat != nil || errLon != nil {
		return 0, 0, false
	}
	if math.IsNaN(lat) || math.IsNaN(lon) || math.IsInf(lat, 0) || math.IsInf(lon, 0) {
		return 0, 0, false
	}
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return 0, 0, false
	}
	return lat, NormalizeLongitude(lon), true
}

// summarize computes the per-set aggregates: earliest valid date (first
// encountered minimum wins ties), distinct explicit band types in encounter
// order, and the merged unique comment list.
func summarize(set *LocationSet) {
	seenTypes := make(map[BandCategory]bool)
	seenComments := make(map[string]bool)
	var comments []string

	for _, m := range set.members {
		if m.Date != nil && (set.Earliest == nil || m.Date.Time.Before(set.Earliest.Time)) {
			set.Earliest = m.Date
		}
		if IsValidBandRaw(m.BandRaw) {
			c := NormalizeBandType(m.BandRaw)
			if !seenTypes[c] {
				seenTypes[c] = true
				set.ExplicitTypes = append(set.ExplicitTypes, c)
			}
		}
		if m.Comment != "" && !seenComments[m.Comment] {
			seenComments[m.Comment] = true
			comments = append(comments, m.Comment)
		}
	}
	set.Comment = strings.Join(comments, "; ")
}

// resolveExplicit applies the explicit-data-wins rules: a single type stands;
// a none paired with one other type yields the other; any other mix of two or
// more types merges to both.
func resolveExplicit(types []BandCategory) BandCategory {
	switch {
	case len(types) == 1:
		return types[0]
	case len(types) == 2 && types[0] == CategoryNone:
		return types[1]
	case len(types) == 2 && types[1] == CategoryNone:
		return types[0]
	default:
		return CategoryBoth
	}
}

// binEpochs builds the global first-arrival indexes: the minimum earliest
// date per longitude bin (stripe epoch) and per latitude bin (ring epoch).
// Every dated set contributes, whether or not it resolves explicitly.
func binEpochs(sets []*LocationSet) (stripe, ring map[int]time.Time) {
	stripe = make(map[int]time.Time)
	ring = make(map[int]time.Time)

	for _, set := range sets {
		if set.Earliest == nil {
			continue
		}
		t := set.Earliest.Time
		if cur, ok := stripe[set.LonBin]; !ok || t.Before(cur) {
			stripe[set.LonBin] = t
		}
		if cur, ok := ring[set.LatBin]; !ok || t.Before(cur) {
			ring[set.LatBin] = t
		}
	}
	return stripe, ring
}

// resolveByEpoch classifies a set with no explicit types: the set claims each
// axis whose bin epoch its earliest date equals. Undated sets claim nothing.
func resolveByEpoch(set *LocationSet, stripeEpoch, ringEpoch map[int]time.Time) BandCategory {
	if set.Earliest == nil {
		return CategoryNone
	}

	t := set.Earliest.Time
	claimsStripe := t.Equal(stripeEpoch[set.LonBin])
	claimsRing := t.Equal(ringEpoch[set.LatBin])

	switch {
	case claimsStripe && claimsRing:
		return CategoryBoth
	case claimsStripe:
		return CategoryStripe
	case claimsRing:
		return CategoryRing
	default:
		return CategoryNone
	}
}

// makeMarker flattens a resolved set into its renderable marker: canonical
// computed fields first, then every raw column first-seen across members.
func makeMarker(set *LocationSet) Marker {
	fields := map[string]string{
		"lat":       formatCoord(set.Lat),
		"lon":       formatCoord(set.Lon),
		"label":     set.Label,
		"band_type": string(set.Category),
		"comment":   set.Comment,
		"lat_bin":   strconv.Itoa(set.LatBin),
		"lon_bin":   strconv.Itoa(set.LonBin),
	}
	if set.Earliest != nil {
		fields["date"] = set.Earliest.Raw
	} else {
		fields["date"] = ""
	}

	order := append([]string(nil), canonicalFields...)
	for _, m := range set.members {
		for _, col := range m.Row.ColumnOrder {
			if _, ok := fields[col]; ok {
				continue
			}
			fields[col] = m.Row.Columns[col]
			order = append(order, col)
		}
	}

	return Marker{
		Lat:        set.Lat,
		Lon:        set.Lon,
		Label:      set.Label,
		Category:   set.Category,
		LatBin:     set.LatBin,
		LonBin:     set.LonBin,
		Fields:     fields,
		FieldOrder: order,
	}
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
