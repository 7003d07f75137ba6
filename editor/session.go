package editor

import (
	"routemap/geometry"
)

// SessionKind is what a pointer-down started.
type SessionKind int

const (
	SessionDrag SessionKind = iota
	SessionPan
	SessionMarquee
)

// String returns the session name for display
func (k SessionKind) String() string {
	switch k {
	case SessionDrag:
		return "drag"
	case SessionPan:
		return "pan"
	case SessionMarquee:
		return "marquee"
	default:
		return "unknown"
	}
}

// Session is one pointer gesture. It is created on pointer-down and
// consumed exactly once on pointer-up or pointer-cancel.
type Session struct {
	Kind SessionKind

	// StartWorld and StartClient are the pointer position at pointer-down.
	StartWorld  geometry.Vec
	StartClient geometry.Vec

	// LastClient is the most recent pointer position, used for panning.
	LastClient geometry.Vec
	// CurrentWorld is the most recent pointer position in world space,
	// the moving corner of a marquee.
	CurrentWorld geometry.Vec

	// Origins holds the start position of every dragged node.
	Origins map[string]geometry.Vec
	// Order is the dragged node ids in selection order.
	Order []string

	Moved bool
}

// Marquee returns the world rectangle spanned by a marquee session.
func (s *Session) Marquee() geometry.Rect {
	return geometry.RectFrom(s.StartWorld, s.CurrentWorld)
}
