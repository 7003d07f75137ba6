package geometry

import (
	"math"
	"testing"
)

func TestSnap(t *testing.T) {
	tests := []struct {
		v, grid, want float64
	}{
		{105, 40, 120},
		{117, 40, 120},
		{99, 40, 80},
		{-21, 40, -40},
		{13.5, 0, 13.5},
	}
	for _, tt := range tests {
		if got := Snap(tt.v, tt.grid); got != tt.want {
			t.Errorf("Snap(%v, %v) = %v, want %v", tt.v, tt.grid, got, tt.want)
		}
	}
}

func TestRectFromNormalizesCorners(t *testing.T) {
	r := RectFrom(Vec{10, 50}, Vec{-5, 20})
	if r.Min != (Vec{-5, 20}) || r.Max != (Vec{10, 50}) {
		t.Fatalf("unexpected rect %+v", r)
	}
	if !r.Contains(Vec{0, 30}) {
		t.Error("expected point inside")
	}
	if r.Contains(Vec{11, 30}) {
		t.Error("expected point outside")
	}
}

func TestDistToSegment(t *testing.T) {
	a, b := Vec{0, 0}, Vec{10, 0}
	if d := DistToSegment(Vec{5, 3}, a, b); math.Abs(d-3) > 1e-9 {
		t.Errorf("expected 3, got %v", d)
	}
	if d := DistToSegment(Vec{-4, 3}, a, b); math.Abs(d-5) > 1e-9 {
		t.Errorf("expected 5 past the segment start, got %v", d)
	}
	if d := DistToSegment(Vec{1, 1}, a, a); math.Abs(d-math.Sqrt2) > 1e-9 {
		t.Errorf("degenerate segment: got %v", d)
	}
}
