package dismiss

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRectContains(t *testing.T) {
	r := Rect{X: 2, Y: 1, W: 3, H: 2}
	assert.True(t, r.Contains(2, 1))
	assert.True(t, r.Contains(4, 2))
	assert.False(t, r.Contains(5, 1))
	assert.False(t, r.Contains(2, 3))
	assert.False(t, Rect{}.Contains(0, 0))
}

func TestRegionSet(t *testing.T) {
	var region Region
	assert.False(t, region.Contains(0, 0))

	region.Set(Rect{X: 0, Y: 0, W: 10, H: 1}, Rect{X: 0, Y: 1, W: 20, H: 5})
	assert.True(t, region.Contains(15, 3))
	assert.False(t, region.Contains(15, 0))

	region.Set()
	assert.False(t, region.Contains(1, 1))
}

func TestHubPointerDownReportsOutsideTargets(t *testing.T) {
	hub := NewHub()
	top := &Region{}
	top.Set(Rect{X: 0, Y: 0, W: 10, H: 4})
	bottom := &Region{}
	bottom.Set(Rect{X: 0, Y: 10, W: 10, H: 4})

	topID, releaseTop := hub.Register(top)
	bottomID, releaseBottom := hub.Register(bottom)
	t.Cleanup(releaseTop)
	t.Cleanup(releaseBottom)
	require.NotEqual(t, topID, bottomID)

	assert.Equal(t, []string{bottomID}, hub.PointerDown(1, 1))
	assert.Equal(t, []string{topID}, hub.PointerDown(1, 11))
	assert.Equal(t, []string{topID, bottomID}, hub.PointerDown(50, 50))
	assert.Equal(t, 2, hub.Len(), "pointer presses do not release registrations")
}

func TestHubReferenceCounting(t *testing.T) {
	hub := NewHub()

	active, changed := hub.Edge()
	assert.False(t, active)
	assert.False(t, changed)

	_, releaseA := hub.Register(&Region{})
	active, changed = hub.Edge()
	assert.True(t, active)
	assert.True(t, changed, "0 -> 1 is an edge")

	_, releaseB := hub.Register(&Region{})
	_, changed = hub.Edge()
	assert.False(t, changed, "1 -> 2 is not an edge")

	releaseA()
	releaseA()
	assert.Equal(t, 1, hub.Len(), "release is idempotent")
	_, changed = hub.Edge()
	assert.False(t, changed)

	releaseB()
	active, changed = hub.Edge()
	assert.False(t, active)
	assert.True(t, changed, "1 -> 0 is an edge")
	assert.False(t, hub.Active())
}

func TestHubNilTargetIsAlwaysOutside(t *testing.T) {
	hub := NewHub()
	id, release := hub.Register(nil)
	defer release()
	assert.Equal(t, []string{id}, hub.PointerDown(0, 0))
}
