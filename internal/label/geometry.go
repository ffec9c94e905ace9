package label

import "math"

// Point is a screen-space coordinate in pixels, origin top-left.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Rect is an axis-aligned screen rectangle. X,Y is the top-left corner.
type Rect struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// Center returns the rectangle's center point.
func (r Rect) Center() Point {
	return Point{X: r.X + r.W/2, Y: r.Y + r.H/2}
}

// Overlaps reports whether two rectangles intersect.
func (r Rect) Overlaps(o Rect) bool {
	return r.X < o.X+o.W && o.X < r.X+r.W && r.Y < o.Y+o.H && o.Y < r.Y+r.H
}

// Contains reports whether p lies inside the rectangle.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X <= r.X+r.W && p.Y >= r.Y && p.Y <= r.Y+r.H
}

// Curve is a quadratic leader line from a marker to its label.
type Curve struct {
	From Point `json:"from"`
	Ctrl Point `json:"ctrl"`
	To   Point `json:"to"`
}

func dist(a, b Point) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

// orient returns the orientation of the ordered triplet (a, b, c):
// positive for counter-clockwise, negative for clockwise, zero for collinear.
func orient(a, b, c Point) float64 {
	return (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
}

func onSegment(a, b, p Point) bool {
	return math.Min(a.X, b.X) <= p.X && p.X <= math.Max(a.X, b.X) &&
		math.Min(a.Y, b.Y) <= p.Y && p.Y <= math.Max(a.Y, b.Y)
}

// segmentsIntersect reports whether segments p1-p2 and q1-q2 intersect,
// including collinear touching.
func segmentsIntersect(p1, p2, q1, q2 Point) bool {
	d1 := orient(p1, p2, q1)
	d2 := orient(p1, p2, q2)
	d3 := orient(q1, q2, p1)
	d4 := orient(q1, q2, p2)

	if ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) &&
		((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0)) {
		return true
	}

	switch {
	case d1 == 0 && onSegment(p1, p2, q1):
		return true
	case d2 == 0 && onSegment(p1, p2, q2):
		return true
	case d3 == 0 && onSegment(q1, q2, p1):
		return true
	case d4 == 0 && onSegment(q1, q2, p2):
		return true
	}
	return false
}

// segmentIntersectsRect reports whether segment a-b touches rectangle r.
func segmentIntersectsRect(a, b Point, r Rect) bool {
	if r.Contains(a) || r.Contains(b) {
		return true
	}
	tl := Point{r.X, r.Y}
	tr := Point{r.X + r.W, r.Y}
	bl := Point{r.X, r.Y + r.H}
	br := Point{r.X + r.W, r.Y + r.H}
	return segmentsIntersect(a, b, tl, tr) ||
		segmentsIntersect(a, b, tr, br) ||
		segmentsIntersect(a, b, br, bl) ||
		segmentsIntersect(a, b, bl, tl)
}

// circleOverlapsRect reports whether a circle at c with radius rad touches
// rectangle r.
func circleOverlapsRect(c Point, rad float64, r Rect) bool {
	nx := math.Max(r.X, math.Min(c.X, r.X+r.W))
	ny := math.Max(r.Y, math.Min(c.Y, r.Y+r.H))
	return math.Hypot(c.X-nx, c.Y-ny) <= rad
}
