package viewport

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const epsilon = 1e-9

func TestScreenToWorldRoundTrip(t *testing.T) {
	v := New()
	v.Pan.X, v.Pan.Y = 30, -12
	v.Scale = 2

	w := v.ScreenToWorld(130, 88)
	assert.InDelta(t, 50, w.X, epsilon)
	assert.InDelta(t, 50, w.Y, epsilon)

	s := v.WorldToScreen(w)
	assert.InDelta(t, 130, s.X, epsilon)
	assert.InDelta(t, 88, s.Y, epsilon)
}

func TestZoomKeepsPointerAnchored(t *testing.T) {
	v := New()
	before := v.ScreenToWorld(400, 300)

	v.ZoomAt(400, 300, -1)

	assert.InDelta(t, 1.12, v.Scale, epsilon)
	after := v.ScreenToWorld(400, 300)
	assert.InDelta(t, before.X, after.X, epsilon)
	assert.InDelta(t, before.Y, after.Y, epsilon)
}

func TestZoomIsClamped(t *testing.T) {
	v := New()
	for i := 0; i < 50; i++ {
		v.ZoomAt(10, 10, -1)
	}
	assert.Equal(t, MaxScale, v.Scale)
	for i := 0; i < 50; i++ {
		v.ZoomAt(10, 10, 1)
	}
	assert.Equal(t, MinScale, v.Scale)
}

func TestPanBy(t *testing.T) {
	v := New()
	v.PanBy(15, -5)
	v.PanBy(5, 5)
	assert.Equal(t, 20.0, v.Pan.X)
	assert.Equal(t, 0.0, v.Pan.Y)
}

func TestFitWaitsForSizeAndRunsOnce(t *testing.T) {
	v := New()
	v.RequestFit(0, 0, 200, 100, true, 1)
	require.True(t, v.FitPending(), "no size yet, fit must wait")

	v.SetSize(800, 600)
	assert.False(t, v.FitPending())

	center := v.ScreenToWorld(400, 300)
	assert.InDelta(t, 100, center.X, epsilon)
	assert.InDelta(t, 50, center.Y, epsilon)

	v.PanBy(100, 0)
	v.SetSize(1024, 768)
	assert.Equal(t, 100+400-100.0, v.Pan.X, "a second resize must not refit")
}

func TestFitWithoutContentOnlyClearsRequest(t *testing.T) {
	v := New()
	v.SetSize(800, 600)
	v.PanBy(7, 7)
	v.RequestFit(0, 0, 0, 0, false, 1)

	assert.False(t, v.FitPending())
	assert.Equal(t, 7.0, v.Pan.X)
}
