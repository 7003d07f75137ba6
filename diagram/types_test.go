package diagram

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleGraph() Graph {
	return Graph{
		Nodes: []Node{
			{ID: "a", Name: "Camp", Type: NodeStart},
			{ID: "b", Name: "Ambush", Type: NodeElite},
			{ID: "c", Name: "Merchant", Type: NodeShop},
		},
		Edges: []Edge{
			{ID: "e1", From: "a", To: "b"},
			{ID: "e2", From: "b", To: "c"},
			{ID: "e3", From: "a", To: "c"},
		},
	}
}

func TestCloneIsIndependent(t *testing.T) {
	g := sampleGraph()
	clone := g.Clone()

	clone.Nodes[0].Name = "changed"
	clone.Edges[0].Label = "changed"

	assert.Equal(t, "Camp", g.Nodes[0].Name)
	assert.Empty(t, g.Edges[0].Label)
}

func TestRemoveNodesCascadesOnlyTouchingEdges(t *testing.T) {
	g := sampleGraph()
	g.RemoveNodes("b")

	require.Len(t, g.Nodes, 2)
	require.Len(t, g.Edges, 1)
	assert.Equal(t, "e3", g.Edges[0].ID)
	for _, edge := range g.Edges {
		assert.NotEqual(t, "b", edge.From)
		assert.NotEqual(t, "b", edge.To)
	}
}

func TestDropDanglingEdges(t *testing.T) {
	g := sampleGraph()
	g.Edges = append(g.Edges, Edge{ID: "ghost", From: "a", To: "missing"})

	dropped := g.DropDanglingEdges()

	assert.Equal(t, 1, dropped)
	_, ok := g.Edge("ghost")
	assert.False(t, ok)
	assert.Len(t, g.Edges, 3)
}

func TestNodeUnmarshalAppliesDefaults(t *testing.T) {
	var n Node
	require.NoError(t, json.Unmarshal([]byte(`{"id":"x","name":"X","type":"boss"}`), &n))

	assert.Equal(t, DefaultGlow, n.GlowIntensity)
	assert.Equal(t, DefaultShape, n.Shape)

	require.NoError(t, json.Unmarshal([]byte(`{"id":"y","glowIntensity":0,"shape":"hex"}`), &n))
	assert.Equal(t, 0.0, n.GlowIntensity)
	assert.Equal(t, "hex", n.Shape)
}

func TestBounds(t *testing.T) {
	_, _, _, _, ok := Graph{}.Bounds()
	assert.False(t, ok)

	g := Graph{Nodes: []Node{{ID: "a", X: -10, Y: 5}, {ID: "b", X: 30, Y: -20}}}
	minX, minY, maxX, maxY, ok := g.Bounds()
	require.True(t, ok)
	assert.Equal(t, []float64{-10, -20, 30, 5}, []float64{minX, minY, maxX, maxY})
}

func TestSequenceNeverReusesObservedIDs(t *testing.T) {
	seq := NewSequence()
	seq.Observe(Graph{Nodes: []Node{{ID: "node-7"}}, Edges: []Edge{{ID: "edge-3"}}})

	assert.Equal(t, "node-8", seq.NewID(KindNode))
	assert.Equal(t, "edge-9", seq.NewID(KindEdge))
}

func TestUUIDSourcePrefixesKind(t *testing.T) {
	id := UUIDSource{}.NewID(KindEdge)
	assert.True(t, strings.HasPrefix(id, "edge-"))
	assert.NotEqual(t, id, UUIDSource{}.NewID(KindEdge))
}

func TestEnsureUniqueEdgeIDs(t *testing.T) {
	g := Graph{Edges: []Edge{{ID: ""}, {ID: "e"}, {ID: "e"}}}
	EnsureUniqueEdgeIDs(&g, NewSequence())

	seen := map[string]bool{}
	for _, edge := range g.Edges {
		require.NotEmpty(t, edge.ID)
		assert.False(t, seen[edge.ID], "duplicate id %s", edge.ID)
		seen[edge.ID] = true
	}
	assert.Equal(t, "e", g.Edges[1].ID)
}
