package editor

import (
	"strings"

	"routemap/appearance"
	"routemap/diagram"
)

// NodeFields is a partial node update. Nil fields are left unchanged.
type NodeFields struct {
	Name       *string
	State      *diagram.NodeState
	UnlockMode *diagram.UnlockMode
	Loot       *string
	Event      *string
	Notes      *string
	X, Y       *float64
}

// EdgeFields is a partial edge update. Nil fields are left unchanged.
type EdgeFields struct {
	Label       *string
	Requirement *string
	Type        *diagram.EdgeType
}

// UpdateNodeFields edits the narrative fields of a node as one history step.
// Invalid enum values are ignored.
func (e *Editor) UpdateNodeFields(id string, f NodeFields) bool {
	return e.apply(func(g *diagram.Graph) bool {
		n := g.NodePtr(id)
		if n == nil {
			return false
		}
		return applyNodeFields(n, f)
	})
}

func applyNodeFields(n *diagram.Node, f NodeFields) bool {
	before := *n
	if f.Name != nil {
		n.Name = strings.TrimSpace(*f.Name)
	}
	if f.State != nil && f.State.Valid() {
		n.State = *f.State
	}
	if f.UnlockMode != nil && f.UnlockMode.Valid() {
		n.UnlockMode = *f.UnlockMode
	}
	if f.Loot != nil {
		n.Loot = *f.Loot
	}
	if f.Event != nil {
		n.Event = *f.Event
	}
	if f.Notes != nil {
		n.Notes = *f.Notes
	}
	if f.X != nil {
		n.X = *f.X
	}
	if f.Y != nil {
		n.Y = *f.Y
	}
	return *n != before
}

// UpdateEdgeFields edits an edge as one history step.
func (e *Editor) UpdateEdgeFields(id string, f EdgeFields) bool {
	return e.apply(func(g *diagram.Graph) bool {
		edge := g.EdgePtr(id)
		if edge == nil {
			return false
		}
		return applyEdgeFields(edge, f)
	})
}

func applyEdgeFields(edge *diagram.Edge, f EdgeFields) bool {
	before := *edge
	if f.Label != nil {
		edge.Label = *f.Label
	}
	if f.Requirement != nil {
		edge.Requirement = *f.Requirement
	}
	if f.Type != nil && f.Type.Valid() {
		edge.Type = *f.Type
	}
	return *edge != before
}

// SetNodeType changes the type of the given nodes. Colors that still
// matched the old type's palette follow the new one.
func (e *Editor) SetNodeType(t diagram.NodeType, ids ...string) bool {
	if !t.Valid() {
		return false
	}
	return e.apply(func(g *diagram.Graph) bool {
		changed := false
		for _, id := range ids {
			n := g.NodePtr(id)
			if n == nil || n.Type == t {
				continue
			}
			appearance.Retype(n, t)
			changed = true
		}
		return changed
	})
}

// TargetNodes returns the nodes appearance edits apply to: the edit target
// when a node editor is open, else the selected nodes.
func (e *Editor) TargetNodes() []string {
	if e.target != nil {
		if e.target.Kind == TargetNode {
			return []string{e.target.ID}
		}
		return nil
	}
	return e.selection.Nodes()
}

// TargetEdges returns the edges edge edits apply to.
func (e *Editor) TargetEdges() []string {
	if e.target != nil {
		if e.target.Kind == TargetEdge {
			return []string{e.target.ID}
		}
		return nil
	}
	return e.selection.Edges()
}

// ReadAppearance returns the shared value of a field across the target
// nodes, or a mixed marker.
func (e *Editor) ReadAppearance(f appearance.Field) appearance.Value {
	g := e.store.View()
	var nodes []diagram.Node
	for _, id := range e.TargetNodes() {
		if n := g.NodePtr(id); n != nil {
			nodes = append(nodes, *n)
		}
	}
	return appearance.Read(nodes, f)
}

// SetAppearance writes raw into a field of every target node as one history
// step. Invalid values are ignored.
func (e *Editor) SetAppearance(f appearance.Field, raw string) bool {
	ids := e.TargetNodes()
	return e.apply(func(g *diagram.Graph) bool {
		changed := false
		for _, id := range ids {
			if n := g.NodePtr(id); n != nil && appearance.Apply(n, f, raw) {
				changed = true
			}
		}
		return changed
	})
}

// ResetAppearance restores the type colors and glow of every target node.
func (e *Editor) ResetAppearance() bool {
	ids := e.TargetNodes()
	return e.apply(func(g *diagram.Graph) bool {
		changed := false
		for _, id := range ids {
			n := g.NodePtr(id)
			if n == nil {
				continue
			}
			before := *n
			appearance.Reset(n)
			if *n != before {
				changed = true
			}
		}
		return changed
	})
}

// AssignIcon sets the custom icon of every target node and records it in
// the shared icon list. An empty icon restores the type glyph.
func (e *Editor) AssignIcon(icon string) bool {
	icon = strings.TrimSpace(icon)
	if icon != "" && icon != "-" {
		e.icons.AddIcon(icon)
	}
	return e.SetAppearance(appearance.FieldIconURL, icon)
}
