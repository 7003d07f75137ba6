// Package appearance owns node colors, glow, shapes and icons: the type
// defaults, validation of user input and bulk editing across a selection.
package appearance

import (
	"routemap/diagram"
)

// Palette is the default color set of a node type.
type Palette struct {
	Accent string
	Fill   string
	Border string
	Icon   string
}

var palettes = map[diagram.NodeType]Palette{
	diagram.NodeStart:  {Accent: "#4ade80", Fill: "#0f2a1a", Border: "#22c55e", Icon: "#dcfce7"},
	diagram.NodeNormal: {Accent: "#94a3b8", Fill: "#1e293b", Border: "#64748b", Icon: "#e2e8f0"},
	diagram.NodeEvent:  {Accent: "#a78bfa", Fill: "#241a3d", Border: "#8b5cf6", Icon: "#ede9fe"},
	diagram.NodeShop:   {Accent: "#facc15", Fill: "#332a0b", Border: "#eab308", Icon: "#fef9c3"},
	diagram.NodeElite:  {Accent: "#fb923c", Fill: "#3a1d0b", Border: "#f97316", Icon: "#ffedd5"},
	diagram.NodeHeal:   {Accent: "#2dd4bf", Fill: "#0b2f2b", Border: "#14b8a6", Icon: "#ccfbf1"},
	diagram.NodeBoss:   {Accent: "#f87171", Fill: "#3b0d0d", Border: "#ef4444", Icon: "#fee2e2"},
}

// DefaultPalette returns the palette of t, falling back to the normal type.
func DefaultPalette(t diagram.NodeType) Palette {
	if p, ok := palettes[t]; ok {
		return p
	}
	return palettes[diagram.NodeNormal]
}

var glyphs = map[diagram.NodeType]rune{
	diagram.NodeStart:  '⚑',
	diagram.NodeNormal: '●',
	diagram.NodeEvent:  '?',
	diagram.NodeShop:   '$',
	diagram.NodeElite:  '⚔',
	diagram.NodeHeal:   '✚',
	diagram.NodeBoss:   '☠',
}

// Glyph returns the built-in icon of a node type. It is shown whenever the
// node has no custom icon.
func Glyph(t diagram.NodeType) rune {
	if g, ok := glyphs[t]; ok {
		return g
	}
	return glyphs[diagram.NodeNormal]
}

// NewNode builds a node of type t at (x, y) with the creation defaults:
// locked, "or" unlock and the type palette.
func NewNode(id, name string, t diagram.NodeType, x, y float64) diagram.Node {
	n := diagram.Node{
		ID:         id,
		Name:       name,
		Type:       t,
		X:          x,
		Y:          y,
		State:      diagram.StateLocked,
		UnlockMode: diagram.UnlockOr,
		Shape:      diagram.DefaultShape,
	}
	Reset(&n)
	return n
}

// Reset restores the four colors and the glow of n to its type defaults.
// The custom icon is left alone.
func Reset(n *diagram.Node) {
	p := DefaultPalette(n.Type)
	n.AccentColor = p.Accent
	n.FillColor = p.Fill
	n.BorderColor = p.Border
	n.IconColor = p.Icon
	n.GlowIntensity = diagram.DefaultGlow
}

// Retype changes the type of n. Colors still equal to the old type's
// defaults follow the new type; customized colors are kept.
func Retype(n *diagram.Node, t diagram.NodeType) {
	if !t.Valid() || n.Type == t {
		return
	}
	old, next := DefaultPalette(n.Type), DefaultPalette(t)
	if n.AccentColor == old.Accent {
		n.AccentColor = next.Accent
	}
	if n.FillColor == old.Fill {
		n.FillColor = next.Fill
	}
	if n.BorderColor == old.Border {
		n.BorderColor = next.Border
	}
	if n.IconColor == old.Icon {
		n.IconColor = next.Icon
	}
	n.Type = t
}
