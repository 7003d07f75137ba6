package appearance

import (
	"math"
	"strings"

	"routemap/diagram"
)

// NormalizeHex accepts exactly six hex digits, with or without a leading '#',
// and returns the lowercase "#rrggbb" form.
func NormalizeHex(s string) (string, bool) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 {
		return "", false
	}
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9', r >= 'a' && r <= 'f', r >= 'A' && r <= 'F':
		default:
			return "", false
		}
	}
	return "#" + strings.ToLower(s), true
}

// ClampGlow limits v to [0, 1]. NaN becomes the default glow.
func ClampGlow(v float64) float64 {
	if math.IsNaN(v) {
		return diagram.DefaultGlow
	}
	return math.Max(0, math.Min(1, v))
}

// Normalize repairs every enum and appearance field of n so the node can be
// stored: unknown enums fall back to their defaults, invalid colors to the
// type palette, glow is clamped and the shape defaults to "panel".
func Normalize(n *diagram.Node) {
	if !n.Type.Valid() {
		n.Type = diagram.NodeNormal
	}
	if !n.State.Valid() {
		n.State = diagram.StateLocked
	}
	if !n.UnlockMode.Valid() {
		n.UnlockMode = diagram.UnlockOr
	}

	p := DefaultPalette(n.Type)
	n.AccentColor = hexOr(n.AccentColor, p.Accent)
	n.FillColor = hexOr(n.FillColor, p.Fill)
	n.BorderColor = hexOr(n.BorderColor, p.Border)
	n.IconColor = hexOr(n.IconColor, p.Icon)

	n.GlowIntensity = ClampGlow(n.GlowIntensity)
	n.Shape = strings.TrimSpace(n.Shape)
	if n.Shape == "" {
		n.Shape = diagram.DefaultShape
	}
	n.IconURL = strings.TrimSpace(n.IconURL)
}

// NormalizeGraph normalizes every node in g.
func NormalizeGraph(g *diagram.Graph) {
	for i := range g.Nodes {
		Normalize(&g.Nodes[i])
	}
}

func hexOr(value, fallback string) string {
	if hex, ok := NormalizeHex(value); ok {
		return hex
	}
	return fallback
}
