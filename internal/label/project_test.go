package label

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testViewport() Viewport {
	return Viewport{MinLat: -45, MaxLat: 45, MinLon: -90, MaxLon: 90, Width: 800, Height: 600}
}

func TestViewportValid(t *testing.T) {
	assert.True(t, testViewport().Valid())
	assert.False(t, Viewport{MinLat: 10, MaxLat: 5, MinLon: 0, MaxLon: 10, Width: 10, Height: 10}.Valid())
	assert.False(t, Viewport{MinLat: 0, MaxLat: 10, MinLon: 0, MaxLon: 10}.Valid())
}

func TestProject(t *testing.T) {
	vp := testViewport()

	t.Run("center maps to screen center", func(t *testing.T) {
		p, ok := vp.Project(0, 0)
		require.True(t, ok)
		assert.InDelta(t, 400, p.X, 1e-9)
		assert.InDelta(t, 300, p.Y, 1e-9)
	})

	t.Run("north-west corner maps to origin", func(t *testing.T) {
		p, ok := vp.Project(45, -90)
		require.True(t, ok)
		assert.InDelta(t, 0, p.X, 1e-9)
		assert.InDelta(t, 0, p.Y, 1e-9)
	})

	t.Run("latitude increases upward", func(t *testing.T) {
		north, ok := vp.Project(30, 0)
		require.True(t, ok)
		south, ok := vp.Project(-30, 0)
		require.True(t, ok)
		assert.Less(t, north.Y, south.Y)
	})

	t.Run("outside bounds", func(t *testing.T) {
		_, ok := vp.Project(50, 0)
		assert.False(t, ok)
		_, ok = vp.Project(0, 95)
		assert.False(t, ok)
	})
}
