// Package store owns the route map graph. Every mutation goes through Update
// so node appearance stays normalized and history stays consistent.
package store

import (
	"io"
	"log/slog"

	"routemap/appearance"
	"routemap/diagram"
)

// Store holds the live graph and its undo/redo history.
// It is not safe for concurrent use; callers drive it from one event loop.
type Store struct {
	graph     diagram.Graph
	history   *History
	listeners []func(diagram.Graph)
	logger    *slog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithDepth sets the history depth.
func WithDepth(depth int) Option {
	return func(s *Store) {
		s.history = NewHistory(depth)
	}
}

// WithLogger sets the logger used for data-integrity warnings.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New creates a store holding an empty graph with one history snapshot.
func New(opts ...Option) *Store {
	s := &Store{
		history: NewHistory(DefaultDepth),
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.graph = diagram.Graph{Nodes: []diagram.Node{}, Edges: []diagram.Edge{}}
	s.history.Reset(s.graph)
	return s
}

type updateConfig struct {
	skipHistory bool
}

// UpdateOption tweaks a single Update call.
type UpdateOption func(*updateConfig)

// SkipHistory makes the update live without recording an undo step.
// It is meant for continuous feedback such as dragging.
func SkipHistory() UpdateOption {
	return func(c *updateConfig) {
		c.skipHistory = true
	}
}

// OnCommit registers fn to be called with a copy of the graph after every
// committed change: Load, Update without SkipHistory, PushHistory, Undo and Redo.
func (s *Store) OnCommit(fn func(diagram.Graph)) {
	s.listeners = append(s.listeners, fn)
}

// Load replaces the whole graph and resets history to a single snapshot.
func (s *Store) Load(g diagram.Graph) {
	s.graph = s.sanitize(g.Clone())
	s.history.Reset(s.graph)
	s.commit()
}

// Update applies mutate to a draft copy of the graph and makes the result live.
func (s *Store) Update(mutate func(g *diagram.Graph), opts ...UpdateOption) {
	var cfg updateConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	draft := s.graph.Clone()
	mutate(&draft)
	s.graph = s.sanitize(draft)

	if cfg.skipHistory {
		return
	}
	s.history.Push(s.graph)
	s.commit()
}

// PushHistory records the current state as one history entry without
// mutating it. A drag gesture calls this once on release to collapse all of
// its SkipHistory updates into a single undo step.
func (s *Store) PushHistory() {
	s.history.Push(s.graph)
	s.commit()
}

// Undo restores the previous snapshot. It reports whether anything changed.
func (s *Store) Undo() bool {
	g, ok := s.history.Undo()
	if !ok {
		return false
	}
	s.graph = g
	s.commit()
	return true
}

// Redo restores the next snapshot. It reports whether anything changed.
func (s *Store) Redo() bool {
	g, ok := s.history.Redo()
	if !ok {
		return false
	}
	s.graph = g
	s.commit()
	return true
}

// CanUndo reports whether Undo would change the graph.
func (s *Store) CanUndo() bool {
	return s.history.CanUndo()
}

// CanRedo reports whether Redo would change the graph.
func (s *Store) CanRedo() bool {
	return s.history.CanRedo()
}

// Stats returns the history cursor (1-based) and the number of snapshots.
func (s *Store) Stats() (current, total int) {
	return s.history.Stats()
}

// Graph returns a deep copy of the live graph.
func (s *Store) Graph() diagram.Graph {
	return s.graph.Clone()
}

// View returns the live graph without copying. Callers must not modify it.
func (s *Store) View() *diagram.Graph {
	return &s.graph
}

// Node returns the node with the given id.
func (s *Store) Node(id string) (diagram.Node, bool) {
	return s.graph.Node(id)
}

// Edge returns the edge with the given id.
func (s *Store) Edge(id string) (diagram.Edge, bool) {
	return s.graph.Edge(id)
}

func (s *Store) sanitize(g diagram.Graph) diagram.Graph {
	if g.Nodes == nil {
		g.Nodes = []diagram.Node{}
	}
	if g.Edges == nil {
		g.Edges = []diagram.Edge{}
	}
	appearance.NormalizeGraph(&g)
	if dropped := g.DropDanglingEdges(); dropped > 0 {
		s.logger.Warn("dropped edges referencing missing nodes", "count", dropped)
	}
	return g
}

func (s *Store) commit() {
	if len(s.listeners) == 0 {
		return
	}
	for _, fn := range s.listeners {
		fn(s.graph.Clone())
	}
}
