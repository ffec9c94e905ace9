// Package csvio reads uploaded annotation CSVs and writes the normalized
// export. Column names are resolved case-insensitively against a fixed
// synonym table; missing lat, lon, or label columns abort the load.
package csvio

import (
	"fmt"
	"strings"
)

// columnSynonyms maps canonical field names to the accepted header spellings.
var columnSynonyms = map[string][]string{
	"lat":     {"lat", "latitude"},
	"lon":     {"lon", "lng", "long", "longitude"},
	"label":   {"label", "name", "title"},
	"band":    {"band_type", "band", "type", "stripe", "ring"},
	"date":    {"date"},
	"comment": {"comment", "notes", "note", "description"},
}

// requiredFields must all resolve or the upload fails outright.
var requiredFields = []string{"lat", "lon", "label"}

// Header holds the resolved column index per canonical field (-1 when the
// column is absent) plus the unrecognized column names for reporting.
type Header struct {
	Lat     int
	Lon     int
	Label   int
	Band    int
	Date    int
	Comment int

	// Columns are the trimmed original header names in file order.
	Columns []string
	// Unknown lists columns matching no synonym, in file order. They are
	// reported to the user and left out of marker display fields.
	Unknown []string
}

// ResolveHeader matches a header row against the synonym table. The first
// column matching a field's synonym wins; later duplicates count as unknown.
func ResolveHeader(cols []string) (Header, error) {
	h := Header{Lat: -1, Lon: -1, Label: -1, Band: -1, Date: -1, Comment: -1}

	index := map[string]*int{
		"lat": &h.Lat, "lon": &h.Lon, "label": &h.Label,
		"band": &h.Band, "date": &h.Date, "comment": &h.Comment,
	}

	for i, col := range cols {
		name := strings.TrimSpace(col)
		h.Columns = append(h.Columns, name)

		field := matchColumn(name)
		if field == "" {
			h.Unknown = append(h.Unknown, name)
			continue
		}
		if slot := index[field]; *slot == -1 {
			*slot = i
		} else {
			h.Unknown = append(h.Unknown, name)
		}
	}

	var missing []string
	for _, f := range requiredFields {
		if *index[f] == -1 {
			missing = append(missing, f)
		}
	}
	if len(missing) > 0 {
		return Header{}, fmt.Errorf("missing required column(s): %s", strings.Join(missing, ", "))
	}
	return h, nil
}

func matchColumn(name string) string {
	lower := strings.ToLower(name)
	for field, synonyms := range columnSynonyms {
		for _, s := range synonyms {
			if lower == s {
				return field
			}
		}
	}
	return ""
}
