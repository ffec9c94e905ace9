package label

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCache_ServesRepeatViewports(t *testing.T) {
	c := NewCache(newTestEngine(), 10)
	vp := testViewport()
	inputs := []Input{{Marker: Point{100, 100}, Text: "A"}}

	first := c.Place(1, vp, inputs)
	second := c.Place(1, vp, inputs)

	require.Len(t, first, 1)
	assert.Equal(t, first, second)
}

func TestCache_VersionChangeMisses(t *testing.T) {
	c := NewCache(newTestEngine(), 10)
	vp := testViewport()

	first := c.Place(1, vp, []Input{{Marker: Point{100, 100}, Text: "A"}})
	// Same viewport, new dataset version with different inputs: the stale
	// entry must not be served.
	second := c.Place(2, vp, []Input{{Marker: Point{200, 200}, Text: "B"}})

	require.Len(t, first, 1)
	require.Len(t, second, 1)
	assert.NotEqual(t, first[0].Rect, second[0].Rect)
}

func TestLRUCache_EvictsLeastRecentlyUsed(t *testing.T) {
	c := newLRUCache(2)
	c.put("a", []Placement{{Index: 1}})
	c.put("b", []Placement{{Index: 2}})

	// Touch "a" so "b" becomes least recently used.
	_, ok := c.get("a")
	require.True(t, ok)

	c.put("c", []Placement{{Index: 3}})

	_, ok = c.get("b")
	assert.False(t, ok, "b should have been evicted")
	_, ok = c.get("a")
	assert.True(t, ok)
	_, ok = c.get("c")
	assert.True(t, ok)
}

func TestLRUCache_UpdateExistingKey(t *testing.T) {
	c := newLRUCache(2)
	c.put("a", []Placement{{Index: 1}})
	c.put("a", []Placement{{Index: 9}})

	got, ok := c.get("a")
	require.True(t, ok)
	assert.Equal(t, 9, got[0].Index)
	assert.Len(t, c.entries, 1)
}

func TestLRUCache_ManyInsertsBounded(t *testing.T) {
	c := newLRUCache(8)
	for i := 0; i < 100; i++ {
		c.put(fmt.Sprintf("k%d", i), nil)
	}
	assert.Len(t, c.entries, 8)
}
