package domain

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	// bceRe matches "YYYY BCE", "YYYY-MM BCE", "YYYY-MM-DD BC" and loose
	// punctuation variants, e.g. "44 BCE", "0044-03-15 BCE", "44, BC.".
	bceRe = regexp.MustCompile(`(?i)^(\d{1,6})(?:[-/.\s](\d{1,2})(?:[-/.\s](\d{1,2}))?)?\s*[,.]?\s*BC[E]?\.?$`)

	// isoRe matches signed ISO-like dates with optional time and zone offset,
	// permitting negative or zero years (astronomical numbering),
	// e.g. "-0043-03-15", "2024-04-26T15:10:00+02:00", "0000-01-01".
	isoRe = regexp.MustCompile(`^([+-]?\d{1,6})-(\d{1,2})-(\d{1,2})(?:[T\s](\d{1,2}):(\d{2})(?::(\d{2}))?)?(Z|[+-]\d{2}:?\d{2})?$`)
)

// fallbackLayouts are tried in order for ordinary Common-Era date strings
// that the BCE and signed-ISO forms do not cover.
var fallbackLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006/01/02",
	"January 2, 2006",
	"Jan 2, 2006",
	"2 January 2006",
	"01/02/2006",
}

// ParsedDate pairs a comparable UTC instant with the text it was parsed from.
// The original text survives into marker display fields and the export CSV.
type ParsedDate struct {
	Time time.Time
	Raw  string
}

// ParseDate converts a heterogeneous date string into a ParsedDate, or nil if
// no supported form matches. Forms are tried in priority order:
//
//  1. year(-month(-day)) followed by "BCE"/"BC", converted via astronomical
//     year numbering (44 BCE is year -43)
//  2. signed ISO-like year-month-day with optional time and zone offset,
//     negative and zero years allowed
//  3. generic layouts for ordinary Common-Era dates
//
// Month and day values are clamped into valid ranges rather than rejected;
// residual overflow (e.g. February 31) rolls forward, matching the lenient
// behavior of typical date libraries.
func ParseDate(raw string) *ParsedDate {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil
	}

	if m := bceRe.FindStringSubmatch(s); m != nil {
		year, err := strconv.Atoi(m[1])
		if err != nil {
			return nil
		}
		month := clampInt(atoiOr(m[2], 1), 1, 12)
		day := clampInt(atoiOr(m[3], 1), 1, 31)
		t := time.Date(1-year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
		return &ParsedDate{Time: t, Raw: raw}
	}

	if m := isoRe.FindStringSubmatch(s); m != nil {
		year, err := strconv.Atoi(m[1])
		if err != nil {
			return nil
		}
		month := clampInt(atoiOr(m[2], 1), 1, 12)
		day := clampInt(atoiOr(m[3], 1), 1, 31)
		hour := clampInt(atoiOr(m[4], 0), 0, 23)
		min := clampInt(atoiOr(m[5], 0), 0, 59)
		sec := clampInt(atoiOr(m[6], 0), 0, 59)

		loc := time.UTC
		if zone := m[7]; zone != "" && zone != "Z" {
			offset, ok := parseZoneOffset(zone)
			if !ok {
				return nil
			}
			loc = time.FixedZone(zone, offset)
		}
		t := time.Date(year, time.Month(month), day, hour, min, sec, 0, loc).UTC()
		return &ParsedDate{Time: t, Raw: raw}
	}

	for _, layout := range fallbackLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &ParsedDate{Time: t.UTC(), Raw: raw}
		}
	}
	return nil
}

// parseZoneOffset converts "+HH:MM", "-HHMM" etc. to seconds east of UTC.
func parseZoneOffset(zone string) (int, bool) {
	sign := 1
	if zone[0] == '-' {
		sign = -1
	}
	digits := strings.ReplaceAll(zone[1:], ":", "")
	if len(digits) != 4 {
		return 0, false
	}
	hours, errH := strconv.Atoi(digits[:2])
	mins, errM := strconv.Atoi(digits[2:])
	if errH != nil || errM != nil || hours > 23 || mins > 59 {
		return 0, false
	}
	return sign * (hours*3600 + mins*60), true
}

func atoiOr(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
