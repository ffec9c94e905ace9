package label

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine() *Engine {
	return New(DefaultOptions())
}

func TestPlace_SmallSceneNoOverlap(t *testing.T) {
	// Four well-separated markers with short labels fully inside the
	// viewport: no two assigned label rectangles may overlap.
	e := newTestEngine()
	inputs := []Input{
		{Marker: Point{100, 100}, Text: "A"},
		{Marker: Point{500, 100}, Text: "B"},
		{Marker: Point{100, 400}, Text: "C"},
		{Marker: Point{500, 400}, Text: "D"},
	}

	placements := e.Place(800, 600, inputs)

	require.Len(t, placements, 4)
	for i := range placements {
		for j := i + 1; j < len(placements); j++ {
			assert.False(t, placements[i].Rect.Overlaps(placements[j].Rect),
				"labels %d and %d overlap", i, j)
		}
	}
}

func TestPlace_SkipsEmptyLabelsAndOffscreenMarkers(t *testing.T) {
	e := newTestEngine()
	inputs := []Input{
		{Marker: Point{100, 100}, Text: "visible"},
		{Marker: Point{100, 200}, Text: ""},
		{Marker: Point{-50, 100}, Text: "offscreen"},
		{Marker: Point{100, 900}, Text: "below"},
	}

	placements := e.Place(800, 600, inputs)

	require.Len(t, placements, 1)
	assert.Equal(t, 0, placements[0].Index)
}

func TestPlace_Deterministic(t *testing.T) {
	e := newTestEngine()
	inputs := []Input{
		{Marker: Point{300, 300}, Text: "alpha"},
		{Marker: Point{320, 300}, Text: "beta"},
		{Marker: Point{340, 300}, Text: "gamma"},
	}

	first := e.Place(800, 600, inputs)
	second := e.Place(800, 600, inputs)

	assert.Equal(t, first, second)
}

func TestPlace_NearbyLabelsNoLeader(t *testing.T) {
	// A lone marker takes a cardinal candidate right next to itself; the
	// label center stays within the leader threshold.
	e := newTestEngine()
	placements := e.Place(800, 600, []Input{{Marker: Point{400, 300}, Text: "X"}})

	require.Len(t, placements, 1)
	assert.Nil(t, placements[0].Leader)
}

func TestPlace_LabelClearsOtherMarkerFootprints(t *testing.T) {
	e := newTestEngine()
	inputs := []Input{
		{Marker: Point{300, 300}, Text: "crowded"},
		{Marker: Point{330, 300}, Text: ""},
		{Marker: Point{270, 300}, Text: ""},
	}

	placements := e.Place(800, 600, inputs)

	require.Len(t, placements, 1)
	r := placements[0].Rect
	opts := DefaultOptions()
	assert.False(t, circleOverlapsRect(Point{330, 300}, opts.MarkerRadius, r))
	assert.False(t, circleOverlapsRect(Point{270, 300}, opts.MarkerRadius, r))
}

func TestPlace_LabelsStayInsideViewport(t *testing.T) {
	// A marker close to the edge forces candidates inward.
	e := newTestEngine()
	placements := e.Place(200, 150, []Input{{Marker: Point{5, 5}, Text: "corner"}})

	require.Len(t, placements, 1)
	r := placements[0].Rect
	assert.GreaterOrEqual(t, r.X, 0.0)
	assert.GreaterOrEqual(t, r.Y, 0.0)
	assert.LessOrEqual(t, r.X+r.W, 200.0)
	assert.LessOrEqual(t, r.Y+r.H, 150.0)
}

func TestPlace_LeaderCurveBowsPerpendicular(t *testing.T) {
	e := New(Options{LeaderThreshold: 1})
	// Force a distant placement by crowding the cardinal spots with other
	// marker footprints is fiddly; instead call the leader builder directly.
	c := e.leader(Point{0, 0}, Point{100, 0})

	assert.Equal(t, Point{0, 0}, c.From)
	assert.Equal(t, Point{100, 0}, c.To)
	// Control point sits off the chord midpoint, offset perpendicular.
	assert.InDelta(t, 50, c.Ctrl.X, 1e-9)
	assert.InDelta(t, DefaultOptions().LeaderBow, c.Ctrl.Y, 1e-9)
}

func TestMeasure_GrowsWithText(t *testing.T) {
	e := newTestEngine()
	wShort, hShort := e.measure("ab")
	wLong, hLong := e.measure("abcdefgh")

	assert.Greater(t, wLong, wShort)
	assert.Equal(t, hShort, hLong)
}
