// Package viewport maps between screen (client) coordinates and world
// coordinates, and implements pan, pointer-anchored zoom and fit-to-content.
package viewport

import (
	"routemap/geometry"
)

const (
	// ZoomStep is the scale change of one wheel notch.
	ZoomStep = 0.12
	// MinScale and MaxScale bound the zoom.
	MinScale = 0.35
	MaxScale = 2.8
)

// Viewport is the pan offset and zoom scale of the canvas.
type Viewport struct {
	Pan   geometry.Vec
	Scale float64

	width, height float64
	fitPending    bool
	fitScale      float64
	bounds        geometry.Rect
	hasBounds     bool
}

// New returns a viewport at scale 1 with no pan.
func New() *Viewport {
	return &Viewport{Scale: 1, fitScale: 1}
}

// ScreenToWorld converts a client position to world space.
func (v *Viewport) ScreenToWorld(clientX, clientY float64) geometry.Vec {
	return geometry.Vec{
		X: (clientX - v.Pan.X) / v.Scale,
		Y: (clientY - v.Pan.Y) / v.Scale,
	}
}

// WorldToScreen converts a world position to client space.
func (v *Viewport) WorldToScreen(p geometry.Vec) geometry.Vec {
	return geometry.Vec{
		X: p.X*v.Scale + v.Pan.X,
		Y: p.Y*v.Scale + v.Pan.Y,
	}
}

// PanBy translates the pan offset by a client-space delta.
func (v *Viewport) PanBy(dx, dy float64) {
	v.Pan.X += dx
	v.Pan.Y += dy
}

// ZoomAt applies one zoom step for a wheel gesture at the given client
// position. Negative deltaY zooms in. The world point under the pointer
// stays under the pointer.
func (v *Viewport) ZoomAt(clientX, clientY, deltaY float64) {
	if deltaY == 0 {
		return
	}
	step := ZoomStep
	if deltaY > 0 {
		step = -ZoomStep
	}
	v.SetScaleAt(clientX, clientY, v.Scale+step)
}

// SetScaleAt sets the scale (clamped) keeping the world point under the
// client position fixed.
func (v *Viewport) SetScaleAt(clientX, clientY, scale float64) {
	anchor := v.ScreenToWorld(clientX, clientY)
	v.Scale = geometry.Clamp(scale, MinScale, MaxScale)
	v.Pan.X = clientX - anchor.X*v.Scale
	v.Pan.Y = clientY - anchor.Y*v.Scale
}

// Size returns the measured viewport size.
func (v *Viewport) Size() (width, height float64) {
	return v.width, v.height
}

// SetSize records the measured viewport size and runs a pending fit once the
// size is nonzero.
func (v *Viewport) SetSize(width, height float64) {
	v.width, v.height = width, height
	v.MaybeFit()
}

// RequestFit arms a single fit-to-content for the given content bounds at
// scale (values <= 0 mean 1). It is called once per graph load.
func (v *Viewport) RequestFit(minX, minY, maxX, maxY float64, ok bool, scale float64) {
	if scale <= 0 {
		scale = 1
	}
	v.fitPending = true
	v.fitScale = scale
	v.hasBounds = ok
	v.bounds = geometry.Rect{Min: geometry.Vec{X: minX, Y: minY}, Max: geometry.Vec{X: maxX, Y: maxY}}
	v.MaybeFit()
}

// FitPending reports whether a requested fit is still waiting for a size.
func (v *Viewport) FitPending() bool {
	return v.fitPending
}

// MaybeFit centers the pending bounds in the viewport. It does nothing
// without a pending request, without content, or while the size is unknown.
func (v *Viewport) MaybeFit() bool {
	if !v.fitPending || v.width <= 0 || v.height <= 0 {
		return false
	}
	v.fitPending = false
	if !v.hasBounds {
		return false
	}
	v.Scale = geometry.Clamp(v.fitScale, MinScale, MaxScale)
	center := v.bounds.Center()
	v.Pan.X = v.width/2 - center.X*v.Scale
	v.Pan.Y = v.height/2 - center.Y*v.Scale
	return true
}
