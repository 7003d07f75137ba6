package diagram

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// Kind names what an id is generated for.
type Kind string

const (
	KindNode Kind = "node"
	KindEdge Kind = "edge"
)

// IDSource hands out ids that are never reused, even after deletion.
type IDSource interface {
	NewID(kind Kind) string
}

// UUIDSource generates random ids such as "node-6f1c...".
type UUIDSource struct{}

// NewID returns a fresh uuid-backed id.
func (UUIDSource) NewID(kind Kind) string {
	return string(kind) + "-" + uuid.NewString()
}

// Sequence generates readable, monotonically increasing ids ("node-1",
// "edge-2", ...). It is used by tests and by imports that want stable ids.
type Sequence struct {
	next int
}

// NewSequence creates a sequence starting at 1.
func NewSequence() *Sequence {
	return &Sequence{next: 1}
}

// NewID returns the next id for kind.
func (s *Sequence) NewID(kind Kind) string {
	id := fmt.Sprintf("%s-%d", kind, s.next)
	s.next++
	return id
}

// Observe advances the counter past any "<kind>-<n>" ids already in use so
// loaded graphs never collide with freshly generated ids.
func (s *Sequence) Observe(g Graph) {
	bump := func(id string) {
		i := strings.LastIndexByte(id, '-')
		if i < 0 {
			return
		}
		n, err := strconv.Atoi(id[i+1:])
		if err != nil {
			return
		}
		if n >= s.next {
			s.next = n + 1
		}
	}
	for _, node := range g.Nodes {
		bump(node.ID)
	}
	for _, edge := range g.Edges {
		bump(edge.ID)
	}
}

// EnsureUniqueNodeIDs assigns fresh ids to nodes with an empty or duplicate
// id. Duplicate nodes keep their edges pointing at the first occurrence.
func EnsureUniqueNodeIDs(g *Graph, ids IDSource) {
	if g == nil {
		return
	}
	seen := make(map[string]bool, len(g.Nodes))
	for i := range g.Nodes {
		id := g.Nodes[i].ID
		if id == "" || seen[id] {
			g.Nodes[i].ID = ids.NewID(KindNode)
		}
		seen[g.Nodes[i].ID] = true
	}
}

// EnsureUniqueEdgeIDs assigns fresh ids to edges with an empty or duplicate id.
func EnsureUniqueEdgeIDs(g *Graph, ids IDSource) {
	if g == nil || len(g.Edges) == 0 {
		return
	}
	seen := make(map[string]bool, len(g.Edges))
	for i := range g.Edges {
		id := g.Edges[i].ID
		if id == "" || seen[id] {
			g.Edges[i].ID = ids.NewID(KindEdge)
		}
		seen[g.Edges[i].ID] = true
	}
}
