package appearance

import (
	"fmt"
	"strconv"
	"strings"

	"routemap/diagram"
)

// Field names one editable appearance property.
type Field int

const (
	FieldAccent Field = iota
	FieldFill
	FieldBorder
	FieldIconColor
	FieldGlow
	FieldShape
	FieldIconURL
)

// String returns the field name used by the command line.
func (f Field) String() string {
	switch f {
	case FieldAccent:
		return "accent"
	case FieldFill:
		return "fill"
	case FieldBorder:
		return "border"
	case FieldIconColor:
		return "iconcolor"
	case FieldGlow:
		return "glow"
	case FieldShape:
		return "shape"
	case FieldIconURL:
		return "icon"
	default:
		return "unknown"
	}
}

// ParseField converts a command-line field name to a Field.
func ParseField(s string) (Field, error) {
	switch strings.ToLower(s) {
	case "accent", "accentcolor":
		return FieldAccent, nil
	case "fill", "fillcolor":
		return FieldFill, nil
	case "border", "bordercolor":
		return FieldBorder, nil
	case "iconcolor":
		return FieldIconColor, nil
	case "glow", "glowintensity":
		return FieldGlow, nil
	case "shape":
		return FieldShape, nil
	case "icon", "iconurl":
		return FieldIconURL, nil
	default:
		return 0, fmt.Errorf("unknown appearance field: %s", s)
	}
}

// Value is the combined value of a field across a selection.
type Value struct {
	Value string
	Mixed bool
}

// Shared returns the value of get for every node when all nodes agree.
// mixed is true when they disagree; an empty selection is neither.
func Shared[T comparable](nodes []diagram.Node, get func(diagram.Node) T) (value T, mixed bool) {
	for i, node := range nodes {
		v := get(node)
		if i == 0 {
			value = v
			continue
		}
		if v != value {
			var zero T
			return zero, true
		}
	}
	return value, false
}

// Get returns the field of n formatted as a string.
func Get(n diagram.Node, f Field) string {
	switch f {
	case FieldAccent:
		return n.AccentColor
	case FieldFill:
		return n.FillColor
	case FieldBorder:
		return n.BorderColor
	case FieldIconColor:
		return n.IconColor
	case FieldGlow:
		return strconv.FormatFloat(n.GlowIntensity, 'f', -1, 64)
	case FieldShape:
		return n.Shape
	case FieldIconURL:
		return n.IconURL
	}
	return ""
}

// Read returns the shared value of f across nodes, or Mixed.
func Read(nodes []diagram.Node, f Field) Value {
	v, mixed := Shared(nodes, func(n diagram.Node) string { return Get(n, f) })
	return Value{Value: v, Mixed: mixed}
}

// Apply writes raw into field f of n after validation. Invalid input is
// ignored and the prior value kept; the return value reports whether n changed.
func Apply(n *diagram.Node, f Field, raw string) bool {
	before := *n
	switch f {
	case FieldAccent, FieldFill, FieldBorder, FieldIconColor:
		hex, ok := NormalizeHex(raw)
		if !ok {
			return false
		}
		switch f {
		case FieldAccent:
			n.AccentColor = hex
		case FieldFill:
			n.FillColor = hex
		case FieldBorder:
			n.BorderColor = hex
		case FieldIconColor:
			n.IconColor = hex
		}
	case FieldGlow:
		v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return false
		}
		n.GlowIntensity = ClampGlow(v)
	case FieldShape:
		shape := strings.TrimSpace(raw)
		if shape == "" {
			shape = diagram.DefaultShape
		}
		n.Shape = shape
	case FieldIconURL:
		// Empty (or "-") restores the type glyph.
		icon := strings.TrimSpace(raw)
		if icon == "-" {
			icon = ""
		}
		n.IconURL = icon
	default:
		return false
	}
	return *n != before
}
