package csvio

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	"github.com/couchcryptid/band-atlas/internal/domain"
)

// ErrEmptyFile is returned for uploads with no header row.
var ErrEmptyFile = errors.New("empty CSV file")

// ReadRows tokenizes a CSV stream and resolves its header, returning raw rows
// in original file order. Header failures are fatal; data rows are tolerated
// as-is (short rows read as empty fields, stray quotes pass through) because
// coordinate validation downstream handles bad rows.
func ReadRows(r io.Reader) ([]domain.RawRow, Header, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.LazyQuotes = true

	headerRec, err := cr.Read()
	if err == io.EOF {
		return nil, Header{}, ErrEmptyFile
	}
	if err != nil {
		return nil, Header{}, fmt.Errorf("read CSV header: %w", err)
	}

	header, err := ResolveHeader(headerRec)
	if err != nil {
		return nil, Header{}, err
	}

	unknown := make(map[string]bool, len(header.Unknown))
	for _, name := range header.Unknown {
		unknown[name] = true
	}

	var rows []domain.RawRow
	for number := 1; ; number++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, Header{}, fmt.Errorf("read CSV row %d: %w", number, err)
		}
		rows = append(rows, makeRow(header, unknown, rec, number))
	}
	return rows, header, nil
}

// makeRow pulls the canonical fields out of a record and keeps the recognized
// columns for display. Unknown columns are surfaced through the load report
// only. Row numbers are 1-based over data rows, header excluded.
func makeRow(h Header, unknown map[string]bool, rec []string, number int) domain.RawRow {
	field := func(idx int) string {
		if idx < 0 || idx >= len(rec) {
			return ""
		}
		return rec[idx]
	}

	columns := make(map[string]string, len(h.Columns))
	order := make([]string, 0, len(h.Columns))
	for i, name := range h.Columns {
		if name == "" || unknown[name] {
			continue
		}
		if _, dup := columns[name]; dup {
			continue
		}
		columns[name] = field(i)
		order = append(order, name)
	}

	return domain.RawRow{
		Lat:         field(h.Lat),
		Lon:         field(h.Lon),
		Label:       field(h.Label),
		Band:        field(h.Band),
		Date:        field(h.Date),
		Comment:     field(h.Comment),
		Columns:     columns,
		ColumnOrder: order,
		Number:      number,
	}
}
