package canvas

import (
	"github.com/lucasb-eyer/go-colorful"
)

// Attr is a set of text attributes.
type Attr uint8

const (
	AttrBold Attr = 1 << iota
	AttrDim
	AttrReverse
	AttrUnderline
	AttrStrike
)

// Style is the look of a cell. Colors are "#rrggbb"; empty means the
// terminal default.
type Style struct {
	Fg    string
	Bg    string
	Attrs Attr
}

// With returns s with the attributes a added.
func (s Style) With(a Attr) Style {
	s.Attrs |= a
	return s
}

// Has reports whether every attribute in a is set.
func (s Style) Has(a Attr) bool {
	return s.Attrs&a == a
}

// Blend mixes two hex colors in Lab space; t=0 gives a, t=1 gives b.
// An unparsable color yields the other one.
func Blend(a, b string, t float64) string {
	ca, errA := colorful.Hex(a)
	cb, errB := colorful.Hex(b)
	switch {
	case errA != nil && errB != nil:
		return ""
	case errA != nil:
		return b
	case errB != nil:
		return a
	}
	return ca.BlendLab(cb, t).Clamped().Hex()
}

// Darken moves a hex color toward black by t.
func Darken(hex string, t float64) string {
	return Blend(hex, "#000000", t)
}
