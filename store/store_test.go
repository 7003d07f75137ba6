package store

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"routemap/appearance"
	"routemap/diagram"
)

func addNode(id string, x float64) func(*diagram.Graph) {
	return func(g *diagram.Graph) {
		g.Nodes = append(g.Nodes, appearance.NewNode(id, id, diagram.NodeNormal, x, 0))
	}
}

func TestLoadResetsHistoryAndNormalizes(t *testing.T) {
	s := New()
	s.Update(addNode("a", 0))
	s.Update(addNode("b", 0))

	s.Load(diagram.Graph{
		Nodes: []diagram.Node{{ID: "x", Type: diagram.NodeBoss, AccentColor: "nope", GlowIntensity: 9}},
		Edges: []diagram.Edge{{ID: "e", From: "x", To: "missing"}},
	})

	current, total := s.Stats()
	assert.Equal(t, 1, current)
	assert.Equal(t, 1, total)
	assert.False(t, s.CanUndo())

	g := s.Graph()
	require.Len(t, g.Nodes, 1)
	assert.Equal(t, appearance.DefaultPalette(diagram.NodeBoss).Accent, g.Nodes[0].AccentColor)
	assert.Equal(t, 1.0, g.Nodes[0].GlowIntensity)
	assert.Empty(t, g.Edges, "dangling edge should be dropped")
}

func TestUpdateRecordsHistory(t *testing.T) {
	s := New()
	s.Update(addNode("a", 0))
	s.Update(addNode("b", 0))

	require.True(t, s.Undo())
	assert.Len(t, s.Graph().Nodes, 1)
	require.True(t, s.Undo())
	assert.Empty(t, s.Graph().Nodes)
	assert.False(t, s.Undo(), "undo at the oldest snapshot is a no-op")

	require.True(t, s.Redo())
	require.True(t, s.Redo())
	assert.Len(t, s.Graph().Nodes, 2)
	assert.False(t, s.Redo(), "redo at the newest snapshot is a no-op")
}

func TestUpdateAfterUndoDropsRedo(t *testing.T) {
	s := New()
	s.Update(addNode("a", 0))
	s.Update(addNode("b", 0))
	s.Undo()

	s.Update(addNode("c", 0))

	assert.False(t, s.CanRedo())
	ids := []string{}
	for _, n := range s.Graph().Nodes {
		ids = append(ids, n.ID)
	}
	assert.Equal(t, []string{"a", "c"}, ids)
}

func TestHistoryDepthIsCapped(t *testing.T) {
	s := New()
	for i := 0; i < 25; i++ {
		s.Update(addNode(fmt.Sprintf("n%d", i), 0))
	}

	_, total := s.Stats()
	assert.Equal(t, DefaultDepth, total)

	undos := 0
	for s.Undo() {
		undos++
	}
	assert.Equal(t, DefaultDepth-1, undos)
	assert.Len(t, s.Graph().Nodes, 16)
}

func TestSkipHistoryCollapsesIntoOneStep(t *testing.T) {
	s := New()
	s.Update(addNode("a", 0))
	_, before := s.Stats()

	for i := 1; i <= 30; i++ {
		x := float64(i * 10)
		s.Update(func(g *diagram.Graph) { g.NodePtr("a").X = x }, SkipHistory())
	}
	_, during := s.Stats()
	assert.Equal(t, before, during, "skip-history updates must not add entries")

	s.PushHistory()
	n, _ := s.Node("a")
	assert.Equal(t, 300.0, n.X)

	require.True(t, s.Undo())
	n, _ = s.Node("a")
	assert.Equal(t, 0.0, n.X, "one undo reverts the whole gesture")
}

func TestSnapshotsAreIsolatedFromLiveState(t *testing.T) {
	s := New()
	s.Update(addNode("a", 5))

	g := s.Graph()
	g.Nodes[0].X = 999

	n, _ := s.Node("a")
	assert.Equal(t, 5.0, n.X)

	s.Update(func(g *diagram.Graph) { g.NodePtr("a").X = 50 })
	s.Undo()
	n, _ = s.Node("a")
	assert.Equal(t, 5.0, n.X)
}

func TestOnCommitFiresForCommittedChangesOnly(t *testing.T) {
	s := New()
	var commits []int
	s.OnCommit(func(g diagram.Graph) { commits = append(commits, len(g.Nodes)) })

	s.Update(addNode("a", 0))
	s.Update(func(g *diagram.Graph) { g.NodePtr("a").X = 1 }, SkipHistory())
	s.PushHistory()
	s.Undo()
	s.Redo()
	s.Load(diagram.Graph{})

	assert.Equal(t, []int{1, 1, 1, 1, 0}, commits)
}

func TestUpdateNormalizesNodes(t *testing.T) {
	s := New()
	s.Update(func(g *diagram.Graph) {
		g.Nodes = append(g.Nodes, diagram.Node{ID: "raw", Type: diagram.NodeHeal, GlowIntensity: -1, FillColor: "#ABC"})
	})
	n, ok := s.Node("raw")
	require.True(t, ok)
	assert.Equal(t, 0.0, n.GlowIntensity)
	assert.Equal(t, appearance.DefaultPalette(diagram.NodeHeal).Fill, n.FillColor)
}
