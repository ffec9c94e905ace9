package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// row builds a minimal RawRow for engine tests.
func row(num int, lat, lon, label, band, date string) RawRow {
	return RawRow{Lat: lat, Lon: lon, Label: label, Band: band, Date: date, Number: num}
}

func TestResolve_GroupsByRoundedKey(t *testing.T) {
	rows := []RawRow{
		row(1, "10.0000001", "20.0000001", "Site", "", ""),
		row(2, "10.0000002", "20.0000002", "site", "", ""), // same after rounding + case fold
		row(3, "10.0001", "20.0001", "Site", "", ""),       // different location
	}

	res := Resolve(rows)

	require.Len(t, res.Sets, 2)
	assert.Equal(t, 2, res.Sets[0].Members())
	assert.Equal(t, 1, res.Sets[1].Members())
	// Representative label keeps the first-seen original casing.
	assert.Equal(t, "Site", res.Sets[0].Label)
}

func TestResolve_SkipsBadCoordinates(t *testing.T) {
	rows := []RawRow{
		row(1, "10", "20", "A", "", ""),
		row(2, "abc", "20", "B", "", ""),
		row(3, "10", "", "C", "", ""),
		row(4, "91", "20", "D", "", ""),
		row(5, "10", "185", "E", "", ""),
		row(6, "-90", "-180", "F", "", ""),
	}

	res := Resolve(rows)

	assert.Equal(t, []SkippedRow{
		{Number: 2, Reason: SkipReasonBadCoordinate},
		{Number: 3, Reason: SkipReasonBadCoordinate},
		{Number: 4, Reason: SkipReasonBadCoordinate},
		{Number: 5, Reason: SkipReasonBadCoordinate},
	}, res.Skipped)
	assert.Len(t, res.Sets, 2)

	// Every row is either skipped once or a member of exactly one set.
	members := 0
	for _, set := range res.Sets {
		members += set.Members()
	}
	assert.Equal(t, len(rows), members+len(res.Skipped))
}

func TestResolve_LongitudeNormalizedAfterRangeCheck(t *testing.T) {
	// 180 is accepted raw, then normalizes to -180.
	res := Resolve([]RawRow{row(1, "0", "180", "Edge", "", "")})
	require.Len(t, res.Markers, 1)
	assert.Equal(t, -180.0, res.Markers[0].Lon)
	assert.Equal(t, -180, res.Markers[0].LonBin)
}

func TestResolve_ExplicitSingleType(t *testing.T) {
	// Same location and label, one explicit "ring" and one
	// blank band with an earlier date. Explicit data wins; the date is
	// irrelevant.
	rows := []RawRow{
		row(1, "0", "0", "A", "ring", "2000-01-01"),
		row(2, "0", "0", "A", "", "1999-01-01"),
	}

	res := Resolve(rows)

	require.Len(t, res.Sets, 1)
	assert.Equal(t, CategoryRing, res.Sets[0].Category)
	// Earliest still tracks the blank row's date for display.
	require.NotNil(t, res.Sets[0].Earliest)
	assert.Equal(t, "1999-01-01", res.Sets[0].Earliest.Raw)
}

func TestResolve_ExplicitRules(t *testing.T) {
	tests := []struct {
		name     string
		bands    []string
		expected BandCategory
	}{
		{"single ring", []string{"ring", "ring"}, CategoryRing},
		{"single none", []string{"none"}, CategoryNone},
		{"none plus strong", []string{"none", "stripe"}, CategoryStripe},
		{"strong plus none", []string{"ring", "none"}, CategoryRing},
		{"two strong merge", []string{"ring", "stripe"}, CategoryBoth},
		{"strong plus both", []string{"stripe", "both"}, CategoryBoth},
		{"three including none", []string{"ring", "stripe", "none"}, CategoryBoth},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows := make([]RawRow, len(tt.bands))
			for i, b := range tt.bands {
				rows[i] = row(i+1, "5", "5", "X", b, "")
			}
			res := Resolve(rows)
			require.Len(t, res.Sets, 1)
			assert.Equal(t, tt.expected, res.Sets[0].Category)
		})
	}
}

func TestResolve_GuessedBandIsNotExplicit(t *testing.T) {
	// "striped" normalizes to stripe but is not a canonical word, so the set
	// counts as non-explicit and falls through to the epoch tie-break. Being
	// the only dated set in both bins it claims both.
	res := Resolve([]RawRow{row(1, "5", "5", "X", "striped", "2000-01-01")})
	require.Len(t, res.Sets, 1)
	assert.Empty(t, res.Sets[0].ExplicitTypes)
	assert.Equal(t, CategoryBoth, res.Sets[0].Category)
}

func TestResolve_EpochTieBreak(t *testing.T) {
	// X at (10,10) dated 44 BCE, Y at (10,20) dated 10 CE.
	// X is earliest in its longitude bin and its latitude bin: both.
	// Y is earliest in its own longitude bin (20) but shares X's latitude
	// bin where X is earlier: stripe.
	rows := []RawRow{
		row(1, "10", "10", "X", "", "0044-03-15 BCE"),
		row(2, "10", "20", "Y", "", "0010-01-01"),
	}

	res := Resolve(rows)

	require.Len(t, res.Sets, 2)
	assert.Equal(t, CategoryBoth, res.Sets[0].Category)
	assert.Equal(t, CategoryStripe, res.Sets[1].Category)
}

func TestResolve_UndatedNonExplicitIsNone(t *testing.T) {
	rows := []RawRow{
		row(1, "10", "10", "X", "", ""),
		row(2, "10", "10", "X", "", "not a date"),
	}

	res := Resolve(rows)

	require.Len(t, res.Sets, 1)
	assert.Nil(t, res.Sets[0].Earliest)
	assert.Equal(t, CategoryNone, res.Sets[0].Category)
}

func TestResolve_EpochIncludesExplicitSets(t *testing.T) {
	// The explicit set E is the earliest in both bins. It resolves by its
	// explicit type, but it still contributes its date to the bin epochs, so
	// the later non-explicit set N matches neither epoch and resolves none.
	rows := []RawRow{
		row(1, "12", "12", "E", "ring", "1000-01-01"),
		row(2, "14", "14", "N", "", "1500-01-01"),
	}

	res := Resolve(rows)

	require.Len(t, res.Sets, 2)
	assert.Equal(t, CategoryRing, res.Sets[0].Category)
	assert.Equal(t, CategoryNone, res.Sets[1].Category)
}

func TestResolve_ExplicitCategoryIgnoresDates(t *testing.T) {
	base := []RawRow{
		row(1, "10", "10", "X", "stripe", "2000-01-01"),
		row(2, "30", "30", "Y", "", "1990-01-01"),
	}
	shifted := []RawRow{
		row(1, "10", "10", "X", "stripe", "0500-01-01"),
		row(2, "30", "30", "Y", "", "1990-01-01"),
	}

	resBase := Resolve(base)
	resShifted := Resolve(shifted)

	// Changing the explicit set's date never changes its resolved category.
	assert.Equal(t, resBase.Sets[0].Category, resShifted.Sets[0].Category)
	assert.Equal(t, CategoryStripe, resShifted.Sets[0].Category)
}

func TestResolve_EarliestFirstMinimumWins(t *testing.T) {
	// Two members share the minimum date; the first encountered one supplies
	// the display text.
	rows := []RawRow{
		row(1, "10", "10", "X", "", "1000-01-01"),
		row(2, "10", "10", "X", "", "1000-1-1"),
	}

	res := Resolve(rows)

	require.Len(t, res.Sets, 1)
	require.NotNil(t, res.Sets[0].Earliest)
	assert.Equal(t, "1000-01-01", res.Sets[0].Earliest.Raw)
}

func TestResolve_MergesComments(t *testing.T) {
	rows := []RawRow{
		{Lat: "10", Lon: "10", Label: "X", Comment: "first", Number: 1},
		{Lat: "10", Lon: "10", Label: "X", Comment: "second", Number: 2},
		{Lat: "10", Lon: "10", Label: "X", Comment: "first", Number: 3}, // duplicate
		{Lat: "10", Lon: "10", Label: "X", Comment: "", Number: 4},
	}

	res := Resolve(rows)

	require.Len(t, res.Sets, 1)
	assert.Equal(t, "first; second", res.Sets[0].Comment)
}

func TestResolve_MarkerFields(t *testing.T) {
	rows := []RawRow{{
		Lat: "10.5", Lon: "-20.25", Label: "Site", Band: "ring", Date: "44 BCE", Comment: "old",
		Columns:     map[string]string{"Latitude": "10.5", "Longitude": "-20.25", "Name": "Site", "Notes": "old"},
		ColumnOrder: []string{"Latitude", "Longitude", "Name", "Notes"},
		Number:      1,
	}}

	res := Resolve(rows)

	require.Len(t, res.Markers, 1)
	m := res.Markers[0]
	assert.Equal(t, "10.5", m.Fields["lat"])
	assert.Equal(t, "-20.25", m.Fields["lon"])
	assert.Equal(t, "Site", m.Fields["label"])
	assert.Equal(t, "ring", m.Fields["band_type"])
	assert.Equal(t, "44 BCE", m.Fields["date"])
	assert.Equal(t, "old", m.Fields["comment"])
	assert.Equal(t, "10", m.Fields["lat_bin"])
	assert.Equal(t, "-30", m.Fields["lon_bin"])
	// Raw columns follow the canonical fields under their original names.
	assert.Equal(t, "old", m.Fields["Notes"])
	assert.Equal(t, append(append([]string(nil), canonicalFields...), "Latitude", "Longitude", "Name", "Notes"), m.FieldOrder)
}

func TestResolve_Idempotent(t *testing.T) {
	rows := []RawRow{
		row(1, "10", "10", "X", "", "0044-03-15 BCE"),
		row(2, "10", "20", "Y", "", "0010-01-01"),
		row(3, "0", "0", "A", "ring", "2000-01-01"),
		row(4, "0", "0", "A", "", "1999-01-01"),
		row(5, "bad", "20", "B", "", ""),
	}

	first := Resolve(rows)
	second := Resolve(rows)

	assert.Equal(t, first.Markers, second.Markers)
	assert.Equal(t, first.Skipped, second.Skipped)
}
