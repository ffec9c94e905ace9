package csvio

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/couchcryptid/band-atlas/internal/domain"
)

// exportHeader is the normalized export column order. One row per resolved
// location set; input duplicates are already collapsed.
var exportHeader = []string{"lat", "lon", "label", "band_type", "date", "comment", "lat_bin", "lon_bin"}

// WriteNormalized writes the normalized CSV export for the given markers.
// Quoting (embedded quotes doubled) follows standard CSV rules via
// encoding/csv.
func WriteNormalized(w io.Writer, markers []domain.Marker) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(exportHeader); err != nil {
		return fmt.Errorf("write export header: %w", err)
	}

	for _, m := range markers {
		rec := []string{
			strconv.FormatFloat(m.Lat, 'f', -1, 64),
			strconv.FormatFloat(m.Lon, 'f', -1, 64),
			m.Label,
			string(m.Category),
			m.Fields["date"],
			m.Fields["comment"],
			strconv.Itoa(m.LatBin),
			strconv.Itoa(m.LonBin),
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("write export row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}
