package editor

import (
	"math"

	"routemap/geometry"
)

// NodeAt returns the node under a world point. Later nodes are drawn on top
// and win ties.
func (e *Editor) NodeAt(p geometry.Vec) (string, bool) {
	g := e.store.View()
	best, bestDist := "", math.Inf(1)
	for i := len(g.Nodes) - 1; i >= 0; i-- {
		n := g.Nodes[i]
		d := p.Dist(geometry.Vec{X: n.X, Y: n.Y})
		if d <= NodeHitRadius && d < bestDist {
			best, bestDist = n.ID, d
		}
	}
	return best, best != ""
}

// EdgeAt returns the edge under a world point. The tolerance is constant on
// screen, so it shrinks in world units as the view zooms in. Edges with a
// missing endpoint are skipped.
func (e *Editor) EdgeAt(p geometry.Vec) (string, bool) {
	g := e.store.View()
	index := g.NodeIndex()
	tolerance := EdgeHitTolerance / e.view.Scale

	best, bestDist := "", math.Inf(1)
	for _, edge := range g.Edges {
		fi, ok := index[edge.From]
		if !ok {
			continue
		}
		ti, ok := index[edge.To]
		if !ok {
			continue
		}
		from, to := g.Nodes[fi], g.Nodes[ti]
		d := geometry.DistToSegment(p, geometry.Vec{X: from.X, Y: from.Y}, geometry.Vec{X: to.X, Y: to.Y})
		if d <= tolerance && d < bestDist {
			best, bestDist = edge.ID, d
		}
	}
	return best, best != ""
}
