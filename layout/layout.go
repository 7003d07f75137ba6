// Package layout positions route map nodes in left-to-right columns based
// on their distance from the root nodes.
package layout

import (
	"routemap/diagram"
)

const (
	// DefaultColumnSpacing is the horizontal distance between levels.
	DefaultColumnSpacing = 260.0
	// DefaultRowSpacing is the vertical distance between nodes of one level.
	DefaultRowSpacing = 140.0
)

// Levels assigns every node a level: 0 for nodes without incoming edges,
// otherwise one more than the highest level among its predecessors.
//
// A node reached again while its own level is still being computed is part
// of a cycle and counts as level 0 there, which breaks the recursion.
// Edges pointing at unknown nodes are ignored.
func Levels(g diagram.Graph) map[string]int {
	index := g.NodeIndex()
	incoming := make(map[string][]string, len(g.Nodes))
	for _, edge := range g.Edges {
		if _, ok := index[edge.From]; !ok {
			continue
		}
		if _, ok := index[edge.To]; !ok {
			continue
		}
		incoming[edge.To] = append(incoming[edge.To], edge.From)
	}

	levels := make(map[string]int, len(g.Nodes))
	visiting := make(map[string]bool)

	var level func(id string) int
	level = func(id string) int {
		if l, ok := levels[id]; ok {
			return l
		}
		if visiting[id] {
			return 0
		}
		visiting[id] = true
		best := 0
		for _, from := range incoming[id] {
			if l := level(from) + 1; l > best {
				best = l
			}
		}
		delete(visiting, id)
		levels[id] = best
		return best
	}

	for _, node := range g.Nodes {
		level(node.ID)
	}
	return levels
}

// Columns groups node ids by level. Within a column nodes keep their
// order in g.Nodes.
func Columns(g diagram.Graph, levels map[string]int) [][]string {
	maxLevel := -1
	for _, l := range levels {
		if l > maxLevel {
			maxLevel = l
		}
	}
	columns := make([][]string, maxLevel+1)
	for _, node := range g.Nodes {
		l, ok := levels[node.ID]
		if !ok {
			continue
		}
		columns[l] = append(columns[l], node.ID)
	}
	return columns
}

// Apply repositions every node of g to x = level*columnSpacing and
// y = row*rowSpacing. Non-positive spacings fall back to the defaults.
func Apply(g *diagram.Graph, columnSpacing, rowSpacing float64) {
	if columnSpacing <= 0 {
		columnSpacing = DefaultColumnSpacing
	}
	if rowSpacing <= 0 {
		rowSpacing = DefaultRowSpacing
	}

	levels := Levels(*g)
	index := g.NodeIndex()
	for level, column := range Columns(*g, levels) {
		for row, id := range column {
			node := &g.Nodes[index[id]]
			node.X = float64(level) * columnSpacing
			node.Y = float64(row) * rowSpacing
		}
	}
}
