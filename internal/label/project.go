package label

// Viewport describes the client's visible map area: geographic bounds plus
// the pixel size they are rendered into. Projection is plain equirectangular;
// geodesic accuracy is out of scope for 10-degree band work.
type Viewport struct {
	MinLat float64 `json:"min_lat"`
	MaxLat float64 `json:"max_lat"`
	MinLon float64 `json:"min_lon"`
	MaxLon float64 `json:"max_lon"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Valid reports whether the viewport has positive extent in all dimensions.
func (v Viewport) Valid() bool {
	return v.MaxLat > v.MinLat && v.MaxLon > v.MinLon && v.Width > 0 && v.Height > 0
}

// Project maps a coordinate to screen space. ok is false when the coordinate
// falls outside the viewport bounds; off-screen markers get no label and no
// leader line.
func (v Viewport) Project(lat, lon float64) (Point, bool) {
	if lat < v.MinLat || lat > v.MaxLat || lon < v.MinLon || lon > v.MaxLon {
		return Point{}, false
	}
	return Point{
		X: (lon - v.MinLon) / (v.MaxLon - v.MinLon) * v.Width,
		Y: (v.MaxLat - lat) / (v.MaxLat - v.MinLat) * v.Height,
	}, true
}
