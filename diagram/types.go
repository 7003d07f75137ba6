// Package diagram contains the route map graph types shared by every other package.
package diagram

import (
	"encoding/json"
	"math"
)

// NodeType is the gameplay role of a node on the route.
type NodeType string

const (
	NodeStart  NodeType = "start"
	NodeNormal NodeType = "normal"
	NodeEvent  NodeType = "event"
	NodeShop   NodeType = "shop"
	NodeElite  NodeType = "elite"
	NodeHeal   NodeType = "heal"
	NodeBoss   NodeType = "boss"
)

// NodeTypes lists every node type in palette order.
var NodeTypes = []NodeType{NodeStart, NodeNormal, NodeEvent, NodeShop, NodeElite, NodeHeal, NodeBoss}

// Valid reports whether t is a known node type.
func (t NodeType) Valid() bool {
	switch t {
	case NodeStart, NodeNormal, NodeEvent, NodeShop, NodeElite, NodeHeal, NodeBoss:
		return true
	}
	return false
}

// NodeState is the progression state of a node for the players.
type NodeState string

const (
	StateLocked    NodeState = "locked"
	StateVisible   NodeState = "visible"
	StateUnlocked  NodeState = "unlocked"
	StateCompleted NodeState = "completed"
	StateCurrent   NodeState = "current"
)

// Valid reports whether s is a known node state.
func (s NodeState) Valid() bool {
	switch s {
	case StateLocked, StateVisible, StateUnlocked, StateCompleted, StateCurrent:
		return true
	}
	return false
}

// UnlockMode decides whether any ("or") or all ("and") incoming routes unlock a node.
type UnlockMode string

const (
	UnlockOr  UnlockMode = "or"
	UnlockAnd UnlockMode = "and"
)

// Valid reports whether m is a known unlock mode.
func (m UnlockMode) Valid() bool {
	return m == UnlockOr || m == UnlockAnd
}

// EdgeType marks an edge as a plain route or one gated by its requirement text.
type EdgeType string

const (
	EdgeNormal      EdgeType = "normal"
	EdgeConditional EdgeType = "conditional"
)

// Valid reports whether t is empty or a known edge type.
func (t EdgeType) Valid() bool {
	return t == "" || t == EdgeNormal || t == EdgeConditional
}

const (
	// DefaultShape is the node frame used when none is set.
	DefaultShape = "panel"
	// DefaultGlow is the glow intensity of a freshly created node.
	DefaultGlow = 0.75
)

// Shapes lists the node frames the editor offers.
var Shapes = []string{DefaultShape, "circle", "diamond", "hex"}

// Node is a positioned, typed point on the route map.
type Node struct {
	ID         string     `json:"id" yaml:"id"`
	Name       string     `json:"name" yaml:"name"`
	Type       NodeType   `json:"type" yaml:"type"`
	X          float64    `json:"x" yaml:"x"`
	Y          float64    `json:"y" yaml:"y"`
	State      NodeState  `json:"state" yaml:"state"`
	UnlockMode UnlockMode `json:"unlockMode" yaml:"unlockMode"`

	Loot  string `json:"loot,omitempty" yaml:"loot,omitempty"`
	Event string `json:"event,omitempty" yaml:"event,omitempty"`
	Notes string `json:"notes,omitempty" yaml:"notes,omitempty"`

	// Appearance. Colors are normalized "#rrggbb" values once the node has
	// passed through the store.
	AccentColor   string  `json:"accentColor" yaml:"accentColor"`
	FillColor     string  `json:"fillColor" yaml:"fillColor"`
	BorderColor   string  `json:"borderColor" yaml:"borderColor"`
	IconColor     string  `json:"iconColor" yaml:"iconColor"`
	GlowIntensity float64 `json:"glowIntensity" yaml:"glowIntensity"`
	Shape         string  `json:"shape" yaml:"shape"`
	IconURL       string  `json:"iconUrl,omitempty" yaml:"iconUrl,omitempty"`
}

// UnmarshalJSON applies the appearance defaults for fields missing from the input.
func (n *Node) UnmarshalJSON(data []byte) error {
	type plain Node
	decoded := plain{
		GlowIntensity: DefaultGlow,
		Shape:         DefaultShape,
	}
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}
	*n = Node(decoded)
	return nil
}

// UnmarshalYAML applies the same defaults as UnmarshalJSON.
func (n *Node) UnmarshalYAML(unmarshal func(any) error) error {
	type plain Node
	decoded := plain{
		GlowIntensity: DefaultGlow,
		Shape:         DefaultShape,
	}
	if err := unmarshal(&decoded); err != nil {
		return err
	}
	*n = Node(decoded)
	return nil
}

// Edge is a directed route between two nodes.
type Edge struct {
	ID          string   `json:"id" yaml:"id"`
	From        string   `json:"from" yaml:"from"`
	To          string   `json:"to" yaml:"to"`
	Label       string   `json:"label,omitempty" yaml:"label,omitempty"`
	Requirement string   `json:"requirement,omitempty" yaml:"requirement,omitempty"`
	Type        EdgeType `json:"type,omitempty" yaml:"type,omitempty"`
}

// Graph is the whole route map. Nodes keep their array order, which the
// auto-layout uses to order rows within a column.
type Graph struct {
	Nodes []Node `json:"nodes" yaml:"nodes"`
	Edges []Edge `json:"edges" yaml:"edges"`
}

// Clone creates a deep copy of the graph. Node and Edge hold only value
// fields, so copying the slices is enough.
func (g Graph) Clone() Graph {
	clone := Graph{
		Nodes: make([]Node, len(g.Nodes)),
		Edges: make([]Edge, len(g.Edges)),
	}
	copy(clone.Nodes, g.Nodes)
	copy(clone.Edges, g.Edges)
	return clone
}

// NodeIndex maps node ids to their position in Nodes.
func (g Graph) NodeIndex() map[string]int {
	index := make(map[string]int, len(g.Nodes))
	for i, node := range g.Nodes {
		index[node.ID] = i
	}
	return index
}

// Node returns the node with the given id.
func (g Graph) Node(id string) (Node, bool) {
	for _, node := range g.Nodes {
		if node.ID == id {
			return node, true
		}
	}
	return Node{}, false
}

// NodePtr returns a pointer into Nodes for in-place mutation, or nil.
func (g *Graph) NodePtr(id string) *Node {
	for i := range g.Nodes {
		if g.Nodes[i].ID == id {
			return &g.Nodes[i]
		}
	}
	return nil
}

// Edge returns the edge with the given id.
func (g Graph) Edge(id string) (Edge, bool) {
	for _, edge := range g.Edges {
		if edge.ID == id {
			return edge, true
		}
	}
	return Edge{}, false
}

// EdgePtr returns a pointer into Edges for in-place mutation, or nil.
func (g *Graph) EdgePtr(id string) *Edge {
	for i := range g.Edges {
		if g.Edges[i].ID == id {
			return &g.Edges[i]
		}
	}
	return nil
}

// HasEdge reports whether an edge from -> to already exists.
func (g Graph) HasEdge(from, to string) bool {
	for _, edge := range g.Edges {
		if edge.From == from && edge.To == to {
			return true
		}
	}
	return false
}

// RemoveNodes deletes the given nodes and every edge touching them.
func (g *Graph) RemoveNodes(ids ...string) {
	if len(ids) == 0 {
		return
	}
	doomed := make(map[string]bool, len(ids))
	for _, id := range ids {
		doomed[id] = true
	}

	nodes := g.Nodes[:0]
	for _, node := range g.Nodes {
		if !doomed[node.ID] {
			nodes = append(nodes, node)
		}
	}
	g.Nodes = nodes

	edges := g.Edges[:0]
	for _, edge := range g.Edges {
		if !doomed[edge.From] && !doomed[edge.To] {
			edges = append(edges, edge)
		}
	}
	g.Edges = edges
}

// RemoveEdges deletes the given edges.
func (g *Graph) RemoveEdges(ids ...string) {
	if len(ids) == 0 {
		return
	}
	doomed := make(map[string]bool, len(ids))
	for _, id := range ids {
		doomed[id] = true
	}
	edges := g.Edges[:0]
	for _, edge := range g.Edges {
		if !doomed[edge.ID] {
			edges = append(edges, edge)
		}
	}
	g.Edges = edges
}

// DropDanglingEdges removes edges whose endpoints do not exist and returns
// the number removed.
func (g *Graph) DropDanglingEdges() int {
	index := g.NodeIndex()
	edges := g.Edges[:0]
	dropped := 0
	for _, edge := range g.Edges {
		_, fromOK := index[edge.From]
		_, toOK := index[edge.To]
		if fromOK && toOK {
			edges = append(edges, edge)
			continue
		}
		dropped++
	}
	g.Edges = edges
	return dropped
}

// Bounds returns the bounding box of all node positions.
// ok is false when the graph has no nodes.
func (g Graph) Bounds() (minX, minY, maxX, maxY float64, ok bool) {
	if len(g.Nodes) == 0 {
		return 0, 0, 0, 0, false
	}
	minX, minY = math.Inf(1), math.Inf(1)
	maxX, maxY = math.Inf(-1), math.Inf(-1)
	for _, node := range g.Nodes {
		minX = math.Min(minX, node.X)
		minY = math.Min(minY, node.Y)
		maxX = math.Max(maxX, node.X)
		maxY = math.Max(maxY, node.Y)
	}
	return minX, minY, maxX, maxY, true
}
