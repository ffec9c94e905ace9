package domain

import "math"

// NormalizeLongitude wraps a finite longitude into [-180, 180) by repeatedly
// adding or subtracting 360. The result differs from the input by an exact
// multiple of 360.
func NormalizeLongitude(lon float64) float64 {
	for lon < -180 {
		lon += 360
	}
	for lon >= 180 {
		lon -= 360
	}
	return lon
}

// LatBin returns the southern edge of the 10-degree latitude band containing
// lat: -90, -80, ... 80. Latitude exactly +90 yields the degenerate bin 90;
// callers validate range before binning, and the edge value is kept as-is.
func LatBin(lat float64) int {
	return int(math.Floor((lat+90)/10))*10 - 90
}

// LonBin returns the western edge of the 10-degree longitude band containing
// a normalized longitude: -180, -170, ... 170.
func LonBin(lonNorm float64) int {
	return int(math.Floor((lonNorm+180)/10))*10 - 180
}

// LocationKey identifies a unique annotated location: coordinates rounded to
// six decimals (~0.1m) plus the lower-cased trimmed label. Rows sharing a key
// collapse into one LocationSet.
type LocationKey struct {
	Lat   float64
	Lon   float64
	Label string
}

func round6(v float64) float64 {
	return math.Round(v*1e6) / 1e6
}
