package editor

import (
	"routemap/diagram"
)

// Copy captures the selected nodes and the edges between them.
func (e *Editor) Copy() int {
	nodes, edges := e.internal(e.selection.nodes)
	if len(nodes) == 0 {
		return 0
	}
	e.clip = clipboard{nodes: nodes, edges: edges}
	return len(nodes)
}

// Paste inserts a copy of the clipboard. Each paste shifts one more grid
// unit away from the originals. The pasted nodes become the selection.
func (e *Editor) Paste() []string {
	if len(e.clip.nodes) == 0 {
		return nil
	}
	e.clip.generation++
	offset := e.gridSize * float64(e.clip.generation)
	return e.insertCopies(e.clip.nodes, e.clip.edges, offset)
}

// Duplicate clones the selected nodes one grid unit down and right, along
// with every edge whose endpoints are both selected.
func (e *Editor) Duplicate() []string {
	nodes, edges := e.internal(e.selection.nodes)
	if len(nodes) == 0 {
		return nil
	}
	return e.insertCopies(nodes, edges, e.gridSize)
}

// internal returns copies of the given nodes and of the edges with both
// endpoints among them.
func (e *Editor) internal(ids []string) ([]diagram.Node, []diagram.Edge) {
	g := e.store.View()
	inside := make(map[string]bool, len(ids))
	var nodes []diagram.Node
	for _, id := range ids {
		if n := g.NodePtr(id); n != nil && !inside[id] {
			inside[id] = true
			nodes = append(nodes, *n)
		}
	}
	var edges []diagram.Edge
	for _, edge := range g.Edges {
		if inside[edge.From] && inside[edge.To] {
			edges = append(edges, edge)
		}
	}
	return nodes, edges
}

func (e *Editor) insertCopies(nodes []diagram.Node, edges []diagram.Edge, offset float64) []string {
	remap := make(map[string]string, len(nodes))
	copies := make([]diagram.Node, 0, len(nodes))
	for _, n := range nodes {
		c := n
		c.ID = e.ids.NewID(diagram.KindNode)
		c.Name = n.Name + CopySuffix
		c.X += offset
		c.Y += offset
		remap[n.ID] = c.ID
		copies = append(copies, c)
	}

	edgeCopies := make([]diagram.Edge, 0, len(edges))
	for _, edge := range edges {
		from, ok := remap[edge.From]
		if !ok {
			continue
		}
		to, ok := remap[edge.To]
		if !ok {
			continue
		}
		c := edge
		c.ID = e.ids.NewID(diagram.KindEdge)
		c.From, c.To = from, to
		edgeCopies = append(edgeCopies, c)
	}

	e.store.Update(func(g *diagram.Graph) {
		g.Nodes = append(g.Nodes, copies...)
		g.Edges = append(g.Edges, edgeCopies...)
	})

	ids := make([]string, len(copies))
	for i, c := range copies {
		ids[i] = c.ID
	}
	e.selection.SetNodes(ids...)
	e.logger.Debug("inserted copies", "nodes", len(copies), "edges", len(edgeCopies))
	return ids
}
