// Package geometry holds the small amount of 2D math the editor needs.
package geometry

import "math"

// Vec is a point or offset in either screen or world space.
type Vec struct {
	X, Y float64
}

// Add returns v + o.
func (v Vec) Add(o Vec) Vec {
	return Vec{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub returns v - o.
func (v Vec) Sub(o Vec) Vec {
	return Vec{X: v.X - o.X, Y: v.Y - o.Y}
}

// Scale returns v * s.
func (v Vec) Scale(s float64) Vec {
	return Vec{X: v.X * s, Y: v.Y * s}
}

// Dist returns the euclidean distance between v and o.
func (v Vec) Dist(o Vec) float64 {
	return math.Hypot(v.X-o.X, v.Y-o.Y)
}

// Rect is an axis-aligned rectangle. It may be built from any two corners.
type Rect struct {
	Min, Max Vec
}

// RectFrom builds a normalized rectangle from two arbitrary corners.
func RectFrom(a, b Vec) Rect {
	return Rect{
		Min: Vec{X: math.Min(a.X, b.X), Y: math.Min(a.Y, b.Y)},
		Max: Vec{X: math.Max(a.X, b.X), Y: math.Max(a.Y, b.Y)},
	}
}

// Contains reports whether p lies inside r, edges included.
func (r Rect) Contains(p Vec) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X &&
		p.Y >= r.Min.Y && p.Y <= r.Max.Y
}

// Center returns the middle of r.
func (r Rect) Center() Vec {
	return Vec{X: (r.Min.X + r.Max.X) / 2, Y: (r.Min.Y + r.Max.Y) / 2}
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// Snap rounds v to the nearest multiple of grid. A non-positive grid leaves v alone.
func Snap(v, grid float64) float64 {
	if grid <= 0 {
		return v
	}
	return math.Round(v/grid) * grid
}

// SnapVec snaps both coordinates of p to grid.
func SnapVec(p Vec, grid float64) Vec {
	return Vec{X: Snap(p.X, grid), Y: Snap(p.Y, grid)}
}

// DistToSegment returns the distance from p to the segment a-b.
func DistToSegment(p, a, b Vec) float64 {
	ab := b.Sub(a)
	lengthSq := ab.X*ab.X + ab.Y*ab.Y
	if lengthSq == 0 {
		return p.Dist(a)
	}
	t := ((p.X-a.X)*ab.X + (p.Y-a.Y)*ab.Y) / lengthSq
	t = Clamp(t, 0, 1)
	return p.Dist(a.Add(ab.Scale(t)))
}
