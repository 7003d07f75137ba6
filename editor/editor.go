// Package editor is the route map interaction state machine. It turns
// pointer, wheel and key events in client coordinates into graph mutations
// on a store.Store, using a viewport.Viewport for the coordinate transform.
//
// The editor is frontend-agnostic and not safe for concurrent use: one event
// loop drives it.
package editor

import (
	"io"
	"log/slog"

	"routemap/appearance"
	"routemap/diagram"
	"routemap/layout"
	"routemap/store"
	"routemap/viewport"
)

const (
	// DefaultGridSize is the grid unit in world coordinates.
	DefaultGridSize = 40.0
	// NodeHitRadius is how close, in world units, a click must be to a node.
	NodeHitRadius = 28.0
	// EdgeHitTolerance is how close, in screen units, a click must be to an edge.
	EdgeHitTolerance = 8.0
	// CopySuffix is appended to the name of pasted and duplicated nodes.
	CopySuffix = " (copy)"
)

// IconStore is the shared custom icon list.
type IconStore interface {
	Icons() []string
	AddIcon(icon string) bool
	RemoveIcon(icon string) bool
}

// LocalIcons adapts an appearance.IconList to IconStore for editors without
// a remote registry.
type LocalIcons struct {
	List *appearance.IconList
}

func (l LocalIcons) Icons() []string { return l.List.Items() }

func (l LocalIcons) AddIcon(icon string) bool { return l.List.Add(icon) }

func (l LocalIcons) RemoveIcon(icon string) bool { return l.List.Remove(icon) }

// TargetKind names what an edit target points at.
type TargetKind int

const (
	TargetNode TargetKind = iota
	TargetEdge
)

// EditTarget is the node or edge whose field editor is open.
type EditTarget struct {
	Kind TargetKind
	ID   string
}

type clipboard struct {
	nodes      []diagram.Node
	edges      []diagram.Edge
	generation int
}

// Editor holds the interaction state on top of a store.
type Editor struct {
	store  *store.Store
	view   *viewport.Viewport
	ids    diagram.IDSource
	icons  IconStore
	logger *slog.Logger

	variant    Variant
	gridSize   float64
	snap       bool
	colSpacing float64
	rowSpacing float64

	tool       Tool
	createType diagram.NodeType
	selection  Selection
	pending    string // connect origin, "" for none
	session    *Session
	target     *EditTarget
	textFocus  bool
	clip       clipboard
}

// Option configures an Editor.
type Option func(*Editor)

// WithVariant selects the full or lite builder.
func WithVariant(v Variant) Option {
	return func(e *Editor) { e.variant = v }
}

// WithGrid sets the grid unit and whether positions snap to it.
func WithGrid(size float64, snap bool) Option {
	return func(e *Editor) {
		if size > 0 {
			e.gridSize = size
		}
		e.snap = snap
	}
}

// WithIDSource replaces the default uuid ids.
func WithIDSource(ids diagram.IDSource) Option {
	return func(e *Editor) {
		if ids != nil {
			e.ids = ids
		}
	}
}

// WithLayoutSpacing sets the auto-layout column and row spacing.
func WithLayoutSpacing(column, row float64) Option {
	return func(e *Editor) {
		e.colSpacing = column
		e.rowSpacing = row
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Editor) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithIcons sets the custom icon list shown in the icon picker.
func WithIcons(icons IconStore) Option {
	return func(e *Editor) {
		if icons != nil {
			e.icons = icons
		}
	}
}

// WithViewport shares an existing viewport.
func WithViewport(v *viewport.Viewport) Option {
	return func(e *Editor) {
		if v != nil {
			e.view = v
		}
	}
}

// New creates an editor driving st.
func New(st *store.Store, opts ...Option) *Editor {
	e := &Editor{
		store:      st,
		view:       viewport.New(),
		ids:        diagram.UUIDSource{},
		icons:      LocalIcons{List: appearance.NewIconList()},
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		gridSize:   DefaultGridSize,
		snap:       true,
		colSpacing: layout.DefaultColumnSpacing,
		rowSpacing: layout.DefaultRowSpacing,
		tool:       ToolSelect,
		createType: diagram.NodeNormal,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Store returns the underlying graph store.
func (e *Editor) Store() *store.Store { return e.store }

// Viewport returns the viewport.
func (e *Editor) Viewport() *viewport.Viewport { return e.view }

// Variant returns the builder variant.
func (e *Editor) Variant() Variant { return e.variant }

// Tool returns the active tool.
func (e *Editor) Tool() Tool { return e.tool }

// CreateType returns the node type the create tool inserts.
func (e *Editor) CreateType() diagram.NodeType { return e.createType }

// Selection returns the current selection.
func (e *Editor) Selection() *Selection { return &e.selection }

// PendingConnect returns the connect origin, if any.
func (e *Editor) PendingConnect() (string, bool) { return e.pending, e.pending != "" }

// Session returns the active pointer session, or nil.
func (e *Editor) Session() *Session { return e.session }

// EditTarget returns the node or edge whose editor is open.
func (e *Editor) EditTarget() (EditTarget, bool) {
	if e.target == nil {
		return EditTarget{}, false
	}
	return *e.target, true
}

// Grid returns the grid unit and whether snapping is enabled.
func (e *Editor) Grid() (size float64, snap bool) { return e.gridSize, e.snap }

// Icons returns the custom icon list.
func (e *Editor) Icons() []string { return e.icons.Icons() }

// SetTool activates t, dropping any pending connection and active gesture.
func (e *Editor) SetTool(t Tool) {
	e.tool = t
	e.pending = ""
	e.session = nil
}

// SetCreateType chooses the node type inserted by the create tool.
func (e *Editor) SetCreateType(t diagram.NodeType) bool {
	if !t.Valid() {
		return false
	}
	e.createType = t
	return true
}

// SetGrid changes the grid unit. Non-positive sizes are ignored.
func (e *Editor) SetGrid(size float64) bool {
	if size <= 0 {
		return false
	}
	e.gridSize = size
	return true
}

// SetSnap turns grid snapping on or off.
func (e *Editor) SetSnap(on bool) { e.snap = on }

// SetTextFocus records whether a text field has keyboard focus. Global key
// bindings are ignored while it does.
func (e *Editor) SetTextFocus(focused bool) { e.textFocus = focused }

// CloseEditor clears the edit target.
func (e *Editor) CloseEditor() { e.target = nil }

// Load replaces the graph, clears interaction state and arms a fit to the
// new content.
func (e *Editor) Load(g diagram.Graph) {
	if seq, ok := e.ids.(interface{ Observe(diagram.Graph) }); ok {
		seq.Observe(g)
	}
	e.store.Load(g)
	e.selection.Clear()
	e.pending = ""
	e.session = nil
	e.target = nil
	e.RequestFit()
}

// RequestFit asks the viewport to center the current content once.
func (e *Editor) RequestFit() {
	minX, minY, maxX, maxY, ok := e.store.View().Bounds()
	e.view.RequestFit(minX, minY, maxX, maxY, ok, 1)
}

// Undo reverts the last committed change.
func (e *Editor) Undo() bool {
	if !e.store.Undo() {
		return false
	}
	e.sync()
	return true
}

// Redo reapplies the last undone change.
func (e *Editor) Redo() bool {
	if !e.store.Redo() {
		return false
	}
	e.sync()
	return true
}

// AutoLayout arranges nodes in columns by level as one history step.
func (e *Editor) AutoLayout() {
	if len(e.store.View().Nodes) == 0 {
		return
	}
	e.store.Update(func(g *diagram.Graph) {
		layout.Apply(g, e.colSpacing, e.rowSpacing)
	})
	e.logger.Debug("auto layout applied", "nodes", len(e.store.View().Nodes))
}

// DeleteSelection removes the selected nodes (with their edges) and the
// selected edges as one history step.
func (e *Editor) DeleteSelection() bool {
	if e.selection.Empty() {
		return false
	}
	nodes, edges := e.selection.Nodes(), e.selection.Edges()
	e.store.Update(func(g *diagram.Graph) {
		g.RemoveNodes(nodes...)
		g.RemoveEdges(edges...)
	})
	e.selection.Clear()
	e.sync()
	return true
}

// apply runs mutate on a copy of the graph and commits it as one history
// step only when mutate reports a change.
func (e *Editor) apply(mutate func(g *diagram.Graph) bool) bool {
	draft := e.store.Graph()
	if !mutate(&draft) {
		return false
	}
	e.store.Update(func(g *diagram.Graph) { *g = draft })
	return true
}

// sync drops references to nodes and edges that no longer exist.
func (e *Editor) sync() {
	g := e.store.View()
	e.selection.Prune(g)
	if e.pending != "" && g.NodePtr(e.pending) == nil {
		e.pending = ""
	}
	if e.target != nil {
		switch e.target.Kind {
		case TargetNode:
			if g.NodePtr(e.target.ID) == nil {
				e.target = nil
			}
		case TargetEdge:
			if g.EdgePtr(e.target.ID) == nil {
				e.target = nil
			}
		}
	}
}
