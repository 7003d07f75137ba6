package canvas

import (
	"math"

	"routemap/diagram"
	"routemap/viewport"
)

// Snapshot draws the whole graph without interaction state. A width or
// height of zero sizes the grid to the graph at scale 1; otherwise the graph
// is scaled down to fit.
func Snapshot(g diagram.Graph, width, height int, glyphs bool) *Grid {
	minX, minY, maxX, maxY, ok := g.Bounds()
	spanX := (maxX - minX) / CellWidth
	spanY := (maxY - minY) / CellHeight
	if width <= 0 {
		width = int(math.Ceil(spanX)) + MaxLabelWidth + 8
	}
	if height <= 0 {
		height = int(math.Ceil(spanY)) + 5
	}

	scale := 1.0
	if usable := float64(width - MaxLabelWidth - 6); spanX > 0 && usable > 0 {
		scale = math.Min(scale, usable/spanX)
	}
	if usable := float64(height - 4); spanY > 0 && usable > 0 {
		scale = math.Min(scale, usable/spanY)
	}

	view := viewport.New()
	view.RequestFit(minX, minY, maxX, maxY, ok, scale)
	view.SetSize(float64(width)*CellWidth, float64(height)*CellHeight)

	grid := NewGrid(width, height)
	Scene{Graph: &g, View: view, Glyphs: glyphs}.Draw(grid)
	return grid
}
