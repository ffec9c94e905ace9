package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeLongitude(t *testing.T) {
	tests := []struct {
		name     string
		lon      float64
		expected float64
	}{
		{"already in range", 10, 10},
		{"lower bound inclusive", -180, -180},
		{"upper bound wraps", 180, -180},
		{"one wrap east", 190, -170},
		{"one wrap west", -190, 170},
		{"multiple wraps", 720 + 45, 45},
		{"negative multiple wraps", -720 - 45, -45},
		{"zero", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, NormalizeLongitude(tt.lon), 1e-9)
		})
	}
}

func TestNormalizeLongitude_Properties(t *testing.T) {
	// Result in [-180, 180) and differing from input by a multiple of 360.
	for lon := -1000.0; lon <= 1000; lon += 7.3 {
		got := NormalizeLongitude(lon)
		assert.GreaterOrEqual(t, got, -180.0)
		assert.Less(t, got, 180.0)

		diff := (lon - got) / 360
		assert.InDelta(t, math.Round(diff), diff, 1e-9, "lon %f", lon)
	}
}

func TestLatBin(t *testing.T) {
	tests := []struct {
		lat      float64
		expected int
	}{
		{-90, -90},
		{-85.5, -90},
		{-80, -80},
		{0, 0},
		{9.999, 0},
		{10, 10},
		{89.9, 80},
		{90, 90}, // degenerate edge bin, kept as the formula gives it
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, LatBin(tt.lat), "lat %f", tt.lat)
	}
}

func TestLonBin(t *testing.T) {
	tests := []struct {
		lon      float64
		expected int
	}{
		{-180, -180},
		{-171.2, -180},
		{-170, -170},
		{0, 0},
		{14.2, 10},
		{179.9, 170},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, LonBin(tt.lon), "lon %f", tt.lon)
	}
}
