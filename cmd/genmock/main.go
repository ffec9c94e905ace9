// Command genmock generates a synthetic annotation CSV exercising the messy
// shapes real uploads have: free-text band columns, blank bands, BCE dates,
// duplicate locations, and a few invalid coordinates for the skip report.
//
// Usage:
//
//	go run ./cmd/genmock -rows 200 -out testdata/annotations.csv
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"math/rand"
	"os"
)

var labels = []string{
	"Alexandria", "Carthage", "Byzantium", "Memphis", "Babylon",
	"Ur", "Nineveh", "Thebes", "Knossos", "Mycenae",
	"Persepolis", "Pataliputra", "Chang'an", "Teotihuacan", "Tikal",
}

var bandValues = []string{
	"ring", "stripe", "both", "none", // canonical
	"", "", "", // blank: epoch tie-break territory
	"RS", "r", "striped", "Ring band", "unknown", // free text
}

var dateValues = []string{
	"0044-03-15 BCE", "44 BCE", "-0043-03-15", "0010-01-01",
	"1492-10-12", "2024-04-26T15:10:00+02:00", "Jan 2, 1900", "",
	"not a date",
}

func main() {
	rows := flag.Int("rows", 200, "number of data rows to generate")
	out := flag.String("out", "annotations.csv", "output CSV path")
	seed := flag.Int64("seed", 1, "random seed, fixed for reproducible fixtures")
	flag.Parse()

	if err := run(*rows, *out, *seed); err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: %v\n", err)
		os.Exit(1)
	}
}

func run(rows int, path string, seed int64) error {
	rng := rand.New(rand.NewSource(seed))

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"Latitude", "Longitude", "Name", "Band", "Date", "Notes", "Source"}); err != nil {
		return err
	}

	for i := 0; i < rows; i++ {
		w.Write(record(rng, i)) //nolint:errcheck // flushed below
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	fmt.Printf("wrote %d rows to %s\n", rows, path)
	return nil
}

func record(rng *rand.Rand, i int) []string {
	// Every tenth row repeats an earlier location so grouping has work to do.
	idx := i
	if i%10 == 9 {
		idx = i - rng.Intn(8) - 1
	}
	labelRng := rand.New(rand.NewSource(int64(idx)))

	lat := fmt.Sprintf("%.4f", labelRng.Float64()*170-85)
	lon := fmt.Sprintf("%.4f", labelRng.Float64()*360-180)
	label := labels[labelRng.Intn(len(labels))]

	// A few bad rows for the skip report.
	if i%37 == 13 {
		lat = "not-a-number"
	}
	if i%41 == 17 {
		lon = "190.5"
	}

	return []string{
		lat,
		lon,
		fmt.Sprintf("%s %d", label, idx),
		bandValues[rng.Intn(len(bandValues))],
		dateValues[rng.Intn(len(dateValues))],
		comment(rng),
		"genmock",
	}
}

func comment(rng *rand.Rand) string {
	switch rng.Intn(4) {
	case 0:
		return "surveyed"
	case 1:
		return `cited in "Annals", vol. 2`
	default:
		return ""
	}
}
