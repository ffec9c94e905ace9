package domain

import "strings"

// BandCategory classifies a location's claim within the 10-degree grid.
// "ring" claims priority in the location's latitude band, "stripe" in its
// longitude band, "both" in both, "none" in neither.
type BandCategory string

const (
	CategoryRing   BandCategory = "ring"
	CategoryStripe BandCategory = "stripe"
	CategoryBoth   BandCategory = "both"
	CategoryNone   BandCategory = "none"
)

// Categories lists all band categories in display order.
var Categories = []BandCategory{CategoryRing, CategoryStripe, CategoryBoth, CategoryNone}

// NormalizeBandType maps an arbitrary band-type string to a BandCategory.
// Uploaded datasets carry free-text category columns, so this is a total
// function with a fixed precedence ladder rather than a strict parser:
//
//  1. exact canonical token: "ring", "stripe", "both", "none"
//  2. shorthand pairs: "rs" / "sr" mean both
//  3. first-letter prefix: n is none, b is both, s is stripe, r is ring
//  4. word substring: contains "stripe" or "ring"
//  5. letter fallback: both 'r' and 's' present means both, else whichever
//     letter is present, else both
//
// The fallback deliberately maps nonsense like "rats" to both; free-text
// tolerance matters more than rejecting odd inputs. Absent input yields both.
func NormalizeBandType(raw string) BandCategory {
	s := strings.ToLower(strings.TrimSpace(raw))

	switch s {
	case "ring":
		return CategoryRing
	case "stripe":
		return CategoryStripe
	case "both":
		return CategoryBoth
	case "none":
		return CategoryNone
	case "rs", "sr":
		return CategoryBoth
	}

	switch {
	case strings.HasPrefix(s, "n"):
		return CategoryNone
	case strings.HasPrefix(s, "b"):
		return CategoryBoth
	case strings.HasPrefix(s, "s"):
		return CategoryStripe
	case strings.HasPrefix(s, "r"):
		return CategoryRing
	}

	switch {
	case strings.Contains(s, "stripe"):
		return CategoryStripe
	case strings.Contains(s, "ring"):
		return CategoryRing
	}

	hasR := strings.ContainsRune(s, 'r')
	hasS := strings.ContainsRune(s, 's')
	switch {
	case hasR && hasS:
		return CategoryBoth
	case hasR:
		return CategoryRing
	case hasS:
		return CategoryStripe
	}
	return CategoryBoth
}

// IsValidBandRaw reports whether raw is exactly one of the four canonical
// band words after trimming and lower-casing. Rows passing this predicate
// count as explicit classifications during resolution; everything else is
// merely a NormalizeBandType guess and never outvotes the date tie-break.
func IsValidBandRaw(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "ring", "stripe", "both", "none":
		return true
	}
	return false
}
