package editor

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"routemap/appearance"
	"routemap/diagram"
)

func TestExecAppearanceAppliesToSelection(t *testing.T) {
	e := newLoadedEditor()
	click(e, 0, 0, 0)
	click(e, 200, 0, ModShift)

	msg, err := e.Exec(":fill #ABCDEF")
	require.NoError(t, err)
	assert.Equal(t, "fill = #abcdef", msg)
	assert.Equal(t, "#abcdef", mustNode(t, e, "a").FillColor)
	assert.Equal(t, "#abcdef", mustNode(t, e, "b").FillColor)
	assert.NotEqual(t, "#abcdef", mustNode(t, e, "c").FillColor)

	steps := historySteps(e)
	msg, err = e.Exec("fill zzz")
	require.NoError(t, err)
	assert.Equal(t, "fill unchanged", msg)
	assert.Equal(t, steps, historySteps(e), "invalid color must not add history")

	_, err = e.Exec("glow 3")
	require.NoError(t, err)
	assert.Equal(t, 1.0, mustNode(t, e, "a").GlowIntensity)
}

func TestExecReadReportsMixed(t *testing.T) {
	e := newLoadedEditor()
	click(e, 0, 0, 0)
	_, err := e.Exec("accent #111111")
	require.NoError(t, err)

	click(e, 200, 0, ModShift)
	v := e.ReadAppearance(appearance.FieldAccent)
	assert.True(t, v.Mixed)

	_, err = e.Exec("accent #222222")
	require.NoError(t, err)
	v = e.ReadAppearance(appearance.FieldAccent)
	assert.False(t, v.Mixed)
	assert.Equal(t, "#222222", v.Value)
}

func TestExecResetKeepsIcon(t *testing.T) {
	e := newLoadedEditor()
	click(e, 0, 0, 0)
	_, err := e.Exec("icon https://cdn.example/icons/skull.png")
	require.NoError(t, err)
	_, err = e.Exec("border #123456")
	require.NoError(t, err)

	_, err = e.Exec("reset")
	require.NoError(t, err)

	a := mustNode(t, e, "a")
	assert.Equal(t, appearance.DefaultPalette(a.Type).Border, a.BorderColor)
	assert.Equal(t, "https://cdn.example/icons/skull.png", a.IconURL)
	assert.Contains(t, e.Icons(), "https://cdn.example/icons/skull.png", "assigned icons join the shared list")

	_, err = e.Exec("icon -")
	require.NoError(t, err)
	assert.Empty(t, mustNode(t, e, "a").IconURL)
}

func TestExecNodeFieldsUseEditTarget(t *testing.T) {
	e := newLoadedEditor()
	click(e, 0, 0, 0)
	require.True(t, e.DoubleClick(PointerEvent{X: 200, Y: 0}))
	e.Selection().SetNodes("a", "c")

	_, err := e.Exec("name Goblin Camp")
	require.NoError(t, err)
	_, err = e.Exec("state completed")
	require.NoError(t, err)
	_, err = e.Exec("unlock and")
	require.NoError(t, err)

	b := mustNode(t, e, "b")
	assert.Equal(t, "Goblin Camp", b.Name)
	assert.Equal(t, diagram.StateCompleted, b.State)
	assert.Equal(t, diagram.UnlockAnd, b.UnlockMode)
	assert.Equal(t, "a", mustNode(t, e, "a").Name, "the open editor wins over the selection")

	_, err = e.Exec("state asleep")
	assert.Error(t, err)
	assert.Equal(t, diagram.StateCompleted, mustNode(t, e, "b").State)
}

func TestExecEdgeFields(t *testing.T) {
	e := newLoadedEditor()
	e.Store().Update(func(g *diagram.Graph) {
		g.Edges = append(g.Edges, diagram.Edge{ID: "ab", From: "a", To: "b"})
	})
	click(e, 100, 0, 0)

	_, err := e.Exec("label Bridge")
	require.NoError(t, err)
	_, err = e.Exec("req Needs the key")
	require.NoError(t, err)
	_, err = e.Exec("etype conditional")
	require.NoError(t, err)

	edge, ok := e.Store().Edge("ab")
	require.True(t, ok)
	assert.Equal(t, "Bridge", edge.Label)
	assert.Equal(t, "Needs the key", edge.Requirement)
	assert.Equal(t, diagram.EdgeConditional, edge.Type)

	_, err = e.Exec("etype teleport")
	assert.Error(t, err)
}

func TestExecTypeRetypesOrSetsCreateType(t *testing.T) {
	e := newLoadedEditor()
	_, err := e.Exec("type elite")
	require.NoError(t, err)
	assert.Equal(t, diagram.NodeElite, e.CreateType())

	click(e, 0, 0, 0)
	_, err = e.Exec("fill #010101")
	require.NoError(t, err)
	_, err = e.Exec("type heal")
	require.NoError(t, err)

	a := mustNode(t, e, "a")
	heal := appearance.DefaultPalette(diagram.NodeHeal)
	assert.Equal(t, diagram.NodeHeal, a.Type)
	assert.Equal(t, heal.Accent, a.AccentColor, "default colors follow the new type")
	assert.Equal(t, "#010101", a.FillColor, "custom colors stay")
}

func TestExecToolsGridSnapAndHistory(t *testing.T) {
	e := newLoadedEditor()

	_, err := e.Exec("tool connect")
	require.NoError(t, err)
	assert.Equal(t, ToolConnect, e.Tool())

	_, err = e.Exec("grid 25")
	require.NoError(t, err)
	_, err = e.Exec("snap off")
	require.NoError(t, err)
	size, snap := e.Grid()
	assert.Equal(t, 25.0, size)
	assert.False(t, snap)

	_, err = e.Exec("grid -3")
	assert.Error(t, err)

	msg, err := e.Exec("undo")
	require.NoError(t, err)
	assert.Equal(t, "nothing to undo", msg)

	_, err = e.Exec("tool hammer")
	assert.Error(t, err)
	_, err = e.Exec("explode")
	assert.Error(t, err)
}

func TestExecNeedsTarget(t *testing.T) {
	e := newLoadedEditor()
	for _, cmd := range []string{"fill #000000", "name x", "label y", "reset", "dup", "del"} {
		_, err := e.Exec(cmd)
		assert.True(t, errors.Is(err, ErrNoTarget), "%s: got %v", cmd, err)
	}
}

func TestExecIcons(t *testing.T) {
	icons := appearance.NewIconList("a.png")
	e := newTestEditor(WithIcons(LocalIcons{List: icons}))

	msg, err := e.Exec("icons add b.png")
	require.NoError(t, err)
	assert.Equal(t, "icon added", msg)
	msg, _ = e.Exec("icons add b.png")
	assert.Equal(t, "icon already listed", msg)

	msg, _ = e.Exec("icons")
	assert.Equal(t, "a.png, b.png", msg)

	_, err = e.Exec("icons rm a.png")
	require.NoError(t, err)
	assert.Equal(t, []string{"b.png"}, icons.Items())

	_, err = e.Exec("icons add")
	assert.Error(t, err)
}

func TestExecLayoutAndDuplicate(t *testing.T) {
	e := newLoadedEditor()
	click(e, 0, 300, 0)

	msg, err := e.Exec("dup")
	require.NoError(t, err)
	assert.Equal(t, "duplicated 1 node(s)", msg)
	require.Len(t, e.Store().Graph().Nodes, 4)

	_, err = e.Exec("layout")
	require.NoError(t, err)
	for _, n := range e.Store().Graph().Nodes {
		assert.Equal(t, 0.0, n.X, "no edges: every node is a root")
	}
}
