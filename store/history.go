package store

import (
	"routemap/diagram"
)

// DefaultDepth is the number of snapshots kept for undo/redo.
const DefaultDepth = 10

// History is a bounded list of graph snapshots with a cursor.
// Snapshots are deep copies and are never handed out without cloning.
type History struct {
	states  []diagram.Graph
	current int // index of the snapshot matching the committed state
	max     int
}

// NewHistory creates a history keeping at most max snapshots.
func NewHistory(max int) *History {
	if max <= 0 {
		max = DefaultDepth
	}
	return &History{
		states:  make([]diagram.Graph, 0, max),
		current: -1,
		max:     max,
	}
}

// Reset drops every snapshot and starts over with g at cursor 0.
func (h *History) Reset(g diagram.Graph) {
	h.states = append(h.states[:0], g.Clone())
	h.current = 0
}

// Push discards everything after the cursor, appends a copy of g and trims
// the oldest snapshots beyond the depth limit.
func (h *History) Push(g diagram.Graph) {
	if h.current < len(h.states)-1 {
		h.states = h.states[:h.current+1]
	}
	h.states = append(h.states, g.Clone())
	if len(h.states) > h.max {
		h.states = h.states[len(h.states)-h.max:]
	}
	h.current = len(h.states) - 1
}

// CanUndo returns true if a previous snapshot exists.
func (h *History) CanUndo() bool {
	return h.current > 0
}

// CanRedo returns true if a later snapshot exists.
func (h *History) CanRedo() bool {
	return h.current >= 0 && h.current < len(h.states)-1
}

// Undo moves the cursor back and returns a copy of that snapshot.
func (h *History) Undo() (diagram.Graph, bool) {
	if !h.CanUndo() {
		return diagram.Graph{}, false
	}
	h.current--
	return h.states[h.current].Clone(), true
}

// Redo moves the cursor forward and returns a copy of that snapshot.
func (h *History) Redo() (diagram.Graph, bool) {
	if !h.CanRedo() {
		return diagram.Graph{}, false
	}
	h.current++
	return h.states[h.current].Clone(), true
}

// Stats returns the 1-based cursor position and the number of snapshots.
func (h *History) Stats() (current, total int) {
	return h.current + 1, len(h.states)
}
