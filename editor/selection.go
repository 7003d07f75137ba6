package editor

import (
	"slices"

	"routemap/diagram"
)

// Selection is the ordered set of selected node and edge ids.
type Selection struct {
	nodes []string
	edges []string
}

// Nodes returns the selected node ids in selection order.
func (s *Selection) Nodes() []string {
	return slices.Clone(s.nodes)
}

// Edges returns the selected edge ids in selection order.
func (s *Selection) Edges() []string {
	return slices.Clone(s.edges)
}

// Empty reports whether nothing is selected.
func (s *Selection) Empty() bool {
	return len(s.nodes) == 0 && len(s.edges) == 0
}

// HasNode reports whether the node is selected.
func (s *Selection) HasNode(id string) bool {
	return slices.Contains(s.nodes, id)
}

// HasEdge reports whether the edge is selected.
func (s *Selection) HasEdge(id string) bool {
	return slices.Contains(s.edges, id)
}

// Clear deselects everything.
func (s *Selection) Clear() {
	s.nodes = nil
	s.edges = nil
}

// SetNodes replaces the selection with the given nodes.
func (s *Selection) SetNodes(ids ...string) {
	s.nodes = slices.Clone(ids)
	s.edges = nil
}

// SetEdge replaces the selection with a single edge.
func (s *Selection) SetEdge(id string) {
	s.nodes = nil
	s.edges = []string{id}
}

// ToggleNode adds the node, or removes it if already selected.
func (s *Selection) ToggleNode(id string) {
	if i := slices.Index(s.nodes, id); i >= 0 {
		s.nodes = slices.Delete(s.nodes, i, i+1)
		return
	}
	s.nodes = append(s.nodes, id)
}

// ToggleEdge adds the edge, or removes it if already selected.
func (s *Selection) ToggleEdge(id string) {
	if i := slices.Index(s.edges, id); i >= 0 {
		s.edges = slices.Delete(s.edges, i, i+1)
		return
	}
	s.edges = append(s.edges, id)
}

// Prune drops ids that no longer exist in g.
func (s *Selection) Prune(g *diagram.Graph) {
	s.nodes = slices.DeleteFunc(s.nodes, func(id string) bool {
		return g.NodePtr(id) == nil
	})
	s.edges = slices.DeleteFunc(s.edges, func(id string) bool {
		return g.EdgePtr(id) == nil
	})
}
