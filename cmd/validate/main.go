// Command validate runs the full grouping and classification pipeline over a
// CSV file offline, checks the core invariants, prints a summary, and
// optionally writes the normalized export.
//
// Usage:
//
//	go run ./cmd/validate -in annotations.csv -out normalized.csv
package main

import (
	"flag"
	"fmt"
	"os"
	"reflect"

	"github.com/couchcryptid/band-atlas/internal/csvio"
	"github.com/couchcryptid/band-atlas/internal/domain"
)

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	in := flag.String("in", "", "input annotation CSV file")
	out := flag.String("out", "", "optional normalized CSV output path")
	flag.Parse()

	if *in == "" {
		flag.Usage()
		os.Exit(1)
	}

	if code := run(*in, *out); code != 0 {
		os.Exit(code)
	}
}

func run(inPath, outPath string) int {
	f, err := os.Open(inPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: open input: %v\n", err)
		return 1
	}
	defer f.Close()

	rows, header, err := csvio.ReadRows(f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: %v\n", err)
		return 1
	}

	res := domain.Resolve(rows)

	fmt.Println("=== Band Annotation Validation ===")
	fmt.Println()
	fmt.Printf("rows: %d  sets: %d  skipped: %d\n", len(rows), len(res.Sets), len(res.Skipped))
	if report := csvio.FormatReport(res.Skipped, header.Unknown); report != "" {
		fmt.Print(report)
	}
	printCategoryCounts(res.Markers)

	phases := []*phase{
		validateMembership(rows, res),
		validateIdempotence(rows, res),
		validateBins(res),
	}

	fmt.Println()
	allPassed := true
	for _, p := range phases {
		if p.passed() {
			fmt.Printf("PASS  %s\n", p.name)
			continue
		}
		allPassed = false
		fmt.Printf("FAIL  %s\n", p.name)
		for _, e := range p.errors {
			fmt.Printf("      - %s\n", e)
		}
	}

	if outPath != "" {
		if err := writeExport(outPath, res.Markers); err != nil {
			fmt.Fprintf(os.Stderr, "FATAL: write export: %v\n", err)
			return 1
		}
		fmt.Printf("\nnormalized export written to %s\n", outPath)
	}

	if !allPassed {
		return 1
	}
	return 0
}

func printCategoryCounts(markers []domain.Marker) {
	counts := make(map[domain.BandCategory]int)
	for _, m := range markers {
		counts[m.Category]++
	}
	for _, c := range domain.Categories {
		fmt.Printf("  %-6s %d\n", c, counts[c])
	}
}

// validateMembership asserts that every input row lands in exactly one place:
// either one skip-report entry or one location set.
func validateMembership(rows []domain.RawRow, res domain.Resolution) *phase {
	p := &phase{name: "row membership"}

	members := 0
	for _, set := range res.Sets {
		members += set.Members()
	}
	if members+len(res.Skipped) != len(rows) {
		p.errorf("set members (%d) + skipped (%d) != input rows (%d)", members, len(res.Skipped), len(rows))
	}

	seen := make(map[int]bool)
	for _, s := range res.Skipped {
		if seen[s.Number] {
			p.errorf("row %d skipped twice", s.Number)
		}
		seen[s.Number] = true
	}
	return p
}

// validateIdempotence re-runs the engine and compares marker output.
func validateIdempotence(rows []domain.RawRow, res domain.Resolution) *phase {
	p := &phase{name: "idempotent resolution"}
	again := domain.Resolve(rows)
	if !reflect.DeepEqual(res.Markers, again.Markers) {
		p.errorf("second run produced different markers")
	}
	return p
}

// validateBins checks that every marker's bins match its coordinates.
func validateBins(res domain.Resolution) *phase {
	p := &phase{name: "bin consistency"}
	for _, m := range res.Markers {
		if got := domain.LatBin(m.Lat); got != m.LatBin {
			p.errorf("marker %q: lat_bin %d, expected %d", m.Label, m.LatBin, got)
		}
		if got := domain.LonBin(m.Lon); got != m.LonBin {
			p.errorf("marker %q: lon_bin %d, expected %d", m.Label, m.LonBin, got)
		}
	}
	return p
}

func writeExport(path string, markers []domain.Marker) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return csvio.WriteNormalized(f, markers)
}
