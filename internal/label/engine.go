// Package label positions marker text annotations on screen without
// occlusion. For each visible marker with a non-empty label it finds a label
// rectangle avoiding other labels and marker footprints, plus a curved leader
// line back to the marker when the label sits far away.
//
// Placement is a greedy, order-dependent heuristic, not a global optimizer:
// markers are processed in list order, each takes the cheapest candidate
// available at that moment, and the first minimum wins ties. This is a known
// limitation kept for determinism, not a bug.
package label

import "math"

// Options tunes candidate generation and scoring. Zero values are replaced
// by DefaultOptions in New.
type Options struct {
	// FontSize drives the text measurement approximation, in pixels.
	FontSize float64
	// Padding is the margin added around measured text on every side.
	Padding float64
	// ViewportMargin keeps candidate rectangles off the viewport edge.
	ViewportMargin float64
	// MarkerRadius approximates a marker icon's circular footprint.
	MarkerRadius float64
	// CardinalGap separates cardinal candidates from the marker footprint.
	CardinalGap float64
	// RingStep is the radius increment between concentric fallback rings.
	RingStep float64
	// AngleStepDeg is the angular sampling step on fallback rings, degrees.
	AngleStepDeg float64
	// LeaderThreshold is the label-center distance beyond which a leader
	// line is drawn.
	LeaderThreshold float64
	// LeaderBow offsets the quadratic control point perpendicular to the
	// marker-label chord, producing a gentle arc.
	LeaderBow float64
}

// DefaultOptions returns the tuning used by the service.
func DefaultOptions() Options {
	return Options{
		FontSize:        12,
		Padding:         3,
		ViewportMargin:  4,
		MarkerRadius:    8,
		CardinalGap:     4,
		RingStep:        14,
		AngleStepDeg:    30,
		LeaderThreshold: 24,
		LeaderBow:       10,
	}
}

const (
	overlapPenalty  = 1000
	crossingPenalty = 100
)

// Input is one on-screen marker needing a label.
type Input struct {
	Marker Point
	Text   string
}

// Placement assigns a label rectangle, and optionally a leader curve, to the
// input at Index. Inputs whose label could not be placed are absent.
type Placement struct {
	Index  int    `json:"index"`
	Text   string `json:"text"`
	Rect   Rect   `json:"rect"`
	Leader *Curve `json:"leader,omitempty"`
}

// Engine places labels for one viewport. Engines are stateless and safe for
// concurrent use.
type Engine struct {
	opts Options
}

// New creates an Engine, filling unset options from DefaultOptions.
func New(opts Options) *Engine {
	def := DefaultOptions()
	if opts.FontSize <= 0 {
		opts.FontSize = def.FontSize
	}
	if opts.Padding <= 0 {
		opts.Padding = def.Padding
	}
	if opts.ViewportMargin <= 0 {
		opts.ViewportMargin = def.ViewportMargin
	}
	if opts.MarkerRadius <= 0 {
		opts.MarkerRadius = def.MarkerRadius
	}
	if opts.CardinalGap <= 0 {
		opts.CardinalGap = def.CardinalGap
	}
	if opts.RingStep <= 0 {
		opts.RingStep = def.RingStep
	}
	if opts.AngleStepDeg <= 0 {
		opts.AngleStepDeg = def.AngleStepDeg
	}
	if opts.LeaderThreshold <= 0 {
		opts.LeaderThreshold = def.LeaderThreshold
	}
	if opts.LeaderBow <= 0 {
		opts.LeaderBow = def.LeaderBow
	}
	return &Engine{opts: opts}
}

// measure approximates the rendered pixel size of a label string. The
// approximation (0.6em average glyph advance) matches what SVG generators use
// when no font metrics are available.
func (e *Engine) measure(text string) (w, h float64) {
	runes := float64(len([]rune(text)))
	return runes*e.opts.FontSize*0.6 + 2*e.opts.Padding,
		e.opts.FontSize*1.2 + 2*e.opts.Padding
}

// Place assigns label rectangles to every input with a non-empty label.
// Inputs outside the width x height viewport are skipped entirely. Markers
// are processed in input order; see the package comment for the greedy
// contract.
func (e *Engine) Place(width, height float64, inputs []Input) []Placement {
	var (
		placements []Placement
		placedRect []Rect
		placedLead [][2]Point
	)

	for i, in := range inputs {
		if in.Text == "" || !insideViewport(in.Marker, width, height) {
			continue
		}

		w, h := e.measure(in.Text)
		candidates := e.candidates(in.Marker, w, h, width, height, inputs, i)
		if len(candidates) == 0 {
			continue
		}

		best := candidates[0]
		bestScore := e.score(in.Marker, best, placedRect, placedLead)
		for _, cand := range candidates[1:] {
			if s := e.score(in.Marker, cand, placedRect, placedLead); s < bestScore {
				best, bestScore = cand, s
			}
		}

		p := Placement{Index: i, Text: in.Text, Rect: best}
		if dist(best.Center(), in.Marker) > e.opts.LeaderThreshold {
			p.Leader = e.leader(in.Marker, best.Center())
		}

		placements = append(placements, p)
		placedRect = append(placedRect, best)
		placedLead = append(placedLead, [2]Point{in.Marker, best.Center()})
	}
	return placements
}

// candidates generates admissible label rectangles for the marker at inputs
// index self: the four cardinal offsets first, then concentric ring samples
// at increasing radius up to half the viewport's smaller dimension. A
// candidate must lie fully inside the viewport margin and clear every other
// marker's footprint.
func (e *Engine) candidates(m Point, w, h, vw, vh float64, inputs []Input, self int) []Rect {
	off := e.opts.MarkerRadius + e.opts.CardinalGap
	// Cardinal order: right, left, above, below.
	cardinal := []Rect{
		{X: m.X + off, Y: m.Y - h/2, W: w, H: h},
		{X: m.X - off - w, Y: m.Y - h/2, W: w, H: h},
		{X: m.X - w/2, Y: m.Y - off - h, W: w, H: h},
		{X: m.X - w/2, Y: m.Y + off, W: w, H: h},
	}

	var out []Rect
	for _, r := range cardinal {
		if e.admissible(r, vw, vh, inputs, self) {
			out = append(out, r)
		}
	}
	if len(out) > 0 {
		return out
	}

	maxRadius := math.Min(vw, vh) / 2
	step := e.opts.AngleStepDeg * math.Pi / 180
	for radius := off + e.opts.RingStep; radius <= maxRadius; radius += e.opts.RingStep {
		for angle := 0.0; angle < 2*math.Pi; angle += step {
			c := Point{X: m.X + radius*math.Cos(angle), Y: m.Y + radius*math.Sin(angle)}
			r := Rect{X: c.X - w/2, Y: c.Y - h/2, W: w, H: h}
			if e.admissible(r, vw, vh, inputs, self) {
				out = append(out, r)
			}
		}
	}
	return out
}

// admissible checks the hard constraints: fully on screen with margin, and
// no overlap with any other marker's circular footprint.
func (e *Engine) admissible(r Rect, vw, vh float64, inputs []Input, self int) bool {
	mgn := e.opts.ViewportMargin
	if r.X < mgn || r.Y < mgn || r.X+r.W > vw-mgn || r.Y+r.H > vh-mgn {
		return false
	}
	for j, other := range inputs {
		if j == self {
			continue
		}
		if circleOverlapsRect(other.Marker, e.opts.MarkerRadius, r) {
			return false
		}
	}
	return true
}

// score rates a candidate against already-placed labels: a heavy penalty per
// overlapped label rectangle, a lighter one per crossing between this
// candidate's own leader segment and placed leaders or rectangles.
func (e *Engine) score(m Point, r Rect, placedRect []Rect, placedLead [][2]Point) int {
	score := 0
	for _, pr := range placedRect {
		if r.Overlaps(pr) {
			score += overlapPenalty
		}
	}

	lead := [2]Point{m, r.Center()}
	for _, pl := range placedLead {
		if segmentsIntersect(lead[0], lead[1], pl[0], pl[1]) {
			score += crossingPenalty
		}
	}
	for _, pr := range placedRect {
		if segmentIntersectsRect(lead[0], lead[1], pr) {
			score += crossingPenalty
		}
	}
	return score
}

// leader builds the quadratic arc from marker to label center, bowing the
// control point perpendicular to the chord.
func (e *Engine) leader(from, to Point) *Curve {
	mid := Point{X: (from.X + to.X) / 2, Y: (from.Y + to.Y) / 2}
	dx, dy := to.X-from.X, to.Y-from.Y
	length := math.Hypot(dx, dy)
	if length == 0 {
		return &Curve{From: from, Ctrl: mid, To: to}
	}
	ctrl := Point{
		X: mid.X - dy/length*e.opts.LeaderBow,
		Y: mid.Y + dx/length*e.opts.LeaderBow,
	}
	return &Curve{From: from, Ctrl: ctrl, To: to}
}

func insideViewport(p Point, w, h float64) bool {
	return p.X >= 0 && p.X <= w && p.Y >= 0 && p.Y <= h
}
