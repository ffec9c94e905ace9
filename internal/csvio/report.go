package csvio

import (
	"fmt"
	"strings"

	"github.com/couchcryptid/band-atlas/internal/domain"
)

// FormatReport renders the human-readable load report: one line per skipped
// row plus a summary of unrecognized columns. Returns "" when there is
// nothing to report.
func FormatReport(skipped []domain.SkippedRow, unknown []string) string {
	var b strings.Builder

	for _, s := range skipped {
		fmt.Fprintf(&b, "row %d skipped: %s\n", s.Number, s.Reason)
	}
	if len(unknown) > 0 {
		fmt.Fprintf(&b, "unrecognized column(s) ignored: %s\n", strings.Join(unknown, ", "))
	}
	return b.String()
}
