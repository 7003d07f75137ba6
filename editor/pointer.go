package editor

import (
	"fmt"
	"strings"

	"routemap/appearance"
	"routemap/diagram"
	"routemap/geometry"
	"routemap/store"
)

// PointerDown dispatches a press according to the active tool.
func (e *Editor) PointerDown(ev PointerEvent) {
	// A press while a gesture is open means its release was lost.
	if e.session != nil {
		e.finishSession()
	}

	world := e.view.ScreenToWorld(ev.X, ev.Y)
	nodeID, onNode := e.NodeAt(world)
	edgeID, onEdge := "", false
	if !onNode {
		edgeID, onEdge = e.EdgeAt(world)
	}

	switch e.tool {
	case ToolSelect:
		switch {
		case onNode:
			e.pressNode(nodeID, ev, world)
		case onEdge:
			if ev.Mods.additive() {
				e.selection.ToggleEdge(edgeID)
			} else {
				e.selection.SetEdge(edgeID)
			}
		default:
			e.pressCanvas(ev, world)
		}

	case ToolCreate:
		if onNode {
			e.selection.SetNodes(nodeID)
			return
		}
		e.createNode(world)

	case ToolConnect:
		if !onNode {
			e.pending = ""
			return
		}
		e.connectTo(nodeID)

	case ToolDelete:
		switch {
		case onNode:
			e.store.Update(func(g *diagram.Graph) { g.RemoveNodes(nodeID) })
			e.sync()
		case onEdge:
			e.store.Update(func(g *diagram.Graph) { g.RemoveEdges(edgeID) })
			e.sync()
		}

	case ToolToggleLock:
		if onNode {
			e.toggleLock(nodeID)
		}
	}
}

// PointerMove feeds motion into the active session, if any.
func (e *Editor) PointerMove(ev PointerEvent) {
	s := e.session
	if s == nil {
		return
	}
	client := geometry.Vec{X: ev.X, Y: ev.Y}
	world := e.view.ScreenToWorld(ev.X, ev.Y)

	switch s.Kind {
	case SessionPan:
		e.view.PanBy(client.X-s.LastClient.X, client.Y-s.LastClient.Y)
	case SessionMarquee:
		s.CurrentWorld = world
	case SessionDrag:
		delta := world.Sub(s.StartWorld)
		e.store.Update(func(g *diagram.Graph) {
			for _, id := range s.Order {
				n := g.NodePtr(id)
				if n == nil {
					continue
				}
				p := s.Origins[id].Add(delta)
				if e.snap {
					p = geometry.SnapVec(p, e.gridSize)
				}
				n.X, n.Y = p.X, p.Y
			}
		}, store.SkipHistory())
		s.CurrentWorld = world
	}
	s.LastClient = client
}

// PointerUp ends the active session.
func (e *Editor) PointerUp(ev PointerEvent) {
	if e.session == nil {
		return
	}
	e.PointerMove(ev)
	e.finishSession()
}

// PointerCancel ends the active session when the release happened outside
// the surface. The last known pointer position is used.
func (e *Editor) PointerCancel() {
	if e.session == nil {
		return
	}
	e.finishSession()
}

// Wheel zooms around the pointer.
func (e *Editor) Wheel(ev WheelEvent) {
	e.view.ZoomAt(ev.X, ev.Y, ev.DeltaY)
}

// DoubleClick opens the field editor of the node or edge under the pointer.
func (e *Editor) DoubleClick(ev PointerEvent) bool {
	world := e.view.ScreenToWorld(ev.X, ev.Y)
	if id, ok := e.NodeAt(world); ok {
		e.target = &EditTarget{Kind: TargetNode, ID: id}
		e.selection.SetNodes(id)
		return true
	}
	if id, ok := e.EdgeAt(world); ok {
		e.target = &EditTarget{Kind: TargetEdge, ID: id}
		e.selection.SetEdge(id)
		return true
	}
	return false
}

func (e *Editor) pressNode(id string, ev PointerEvent, world geometry.Vec) {
	if ev.Mods.additive() {
		e.selection.ToggleNode(id)
		if !e.selection.HasNode(id) {
			return
		}
	} else if !e.selection.HasNode(id) {
		e.selection.SetNodes(id)
	}

	s := &Session{
		Kind:         SessionDrag,
		StartWorld:   world,
		StartClient:  geometry.Vec{X: ev.X, Y: ev.Y},
		LastClient:   geometry.Vec{X: ev.X, Y: ev.Y},
		CurrentWorld: world,
		Origins:      make(map[string]geometry.Vec),
	}
	g := e.store.View()
	for _, nodeID := range e.selection.nodes {
		if n := g.NodePtr(nodeID); n != nil {
			s.Origins[nodeID] = geometry.Vec{X: n.X, Y: n.Y}
			s.Order = append(s.Order, nodeID)
		}
	}
	e.session = s
}

func (e *Editor) pressCanvas(ev PointerEvent, world geometry.Vec) {
	kind := SessionPan
	if e.variant == VariantFull && ev.Mods.Has(ModShift) {
		kind = SessionMarquee
	}
	e.selection.Clear()
	e.session = &Session{
		Kind:         kind,
		StartWorld:   world,
		StartClient:  geometry.Vec{X: ev.X, Y: ev.Y},
		LastClient:   geometry.Vec{X: ev.X, Y: ev.Y},
		CurrentWorld: world,
	}
}

func (e *Editor) finishSession() {
	s := e.session
	e.session = nil

	switch s.Kind {
	case SessionDrag:
		g := e.store.View()
		for _, id := range s.Order {
			n := g.NodePtr(id)
			if n == nil {
				continue
			}
			if o := s.Origins[id]; n.X != o.X || n.Y != o.Y {
				s.Moved = true
				break
			}
		}
		if s.Moved {
			e.store.PushHistory()
		}
	case SessionMarquee:
		rect := s.Marquee()
		var inside []string
		for _, n := range e.store.View().Nodes {
			if rect.Contains(geometry.Vec{X: n.X, Y: n.Y}) {
				inside = append(inside, n.ID)
			}
		}
		e.selection.SetNodes(inside...)
	}
}

func (e *Editor) createNode(world geometry.Vec) {
	p := world
	if e.snap {
		p = geometry.SnapVec(p, e.gridSize)
	}
	id := e.ids.NewID(diagram.KindNode)
	name := fmt.Sprintf("%s %d", typeLabel(e.createType), len(e.store.View().Nodes)+1)
	node := appearance.NewNode(id, name, e.createType, p.X, p.Y)
	e.store.Update(func(g *diagram.Graph) {
		g.Nodes = append(g.Nodes, node)
	})
	e.selection.SetNodes(id)
}

func (e *Editor) connectTo(id string) {
	if e.pending == "" {
		e.pending = id
		e.selection.SetNodes(id)
		return
	}
	from := e.pending
	e.pending = ""
	if from == id {
		return
	}
	if e.store.View().HasEdge(from, id) {
		return
	}
	edge := diagram.Edge{ID: e.ids.NewID(diagram.KindEdge), From: from, To: id}
	e.store.Update(func(g *diagram.Graph) {
		g.Edges = append(g.Edges, edge)
	})
	e.selection.SetNodes(id)
}

func (e *Editor) toggleLock(id string) {
	e.apply(func(g *diagram.Graph) bool {
		n := g.NodePtr(id)
		if n == nil {
			return false
		}
		switch n.State {
		case diagram.StateLocked:
			n.State = diagram.StateUnlocked
		case diagram.StateUnlocked:
			n.State = diagram.StateLocked
		default:
			return false
		}
		return true
	})
}

func typeLabel(t diagram.NodeType) string {
	s := string(t)
	if s == "" {
		return "Node"
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
