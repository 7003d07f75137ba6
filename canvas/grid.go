// Package canvas draws route maps into a grid of styled terminal cells.
package canvas

import (
	"errors"
	"strings"

	"github.com/mattn/go-runewidth"
)

// ErrOutOfBounds is returned for writes outside the grid.
var ErrOutOfBounds = errors.New("position out of bounds")

// continuation marks the second cell of a wide rune.
const continuation = '\x00'

// Cell is one terminal cell.
type Cell struct {
	Rune  rune
	Style Style
}

// Grid is a rune matrix with a style per cell. Origin (0,0) is top-left,
// x grows rightward and y downward, all in character cells.
//
// Grid is not safe for concurrent use.
type Grid struct {
	cells  [][]Cell
	width  int
	height int
}

// NewGrid creates a blank grid. Non-positive sizes yield an empty grid.
func NewGrid(width, height int) *Grid {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	g := &Grid{width: width, height: height, cells: make([][]Cell, height)}
	for y := range g.cells {
		g.cells[y] = make([]Cell, width)
	}
	g.Clear()
	return g
}

// Size returns the width and height of the grid.
func (g *Grid) Size() (width, height int) {
	return g.width, g.height
}

// InBounds reports whether (x, y) is a cell of the grid.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height
}

// Get returns the cell at (x, y), or a blank cell outside the grid.
func (g *Grid) Get(x, y int) Cell {
	if !g.InBounds(x, y) {
		return Cell{Rune: ' '}
	}
	return g.cells[y][x]
}

// Set places r at (x, y), merging box-drawing characters with what is
// already there.
func (g *Grid) Set(x, y int, r rune, style Style) error {
	if !g.InBounds(x, y) {
		return ErrOutOfBounds
	}
	cell := &g.cells[y][x]
	cell.Rune = merge(cell.Rune, r)
	cell.Style = style
	return nil
}

// Put places r at (x, y) without merging. Out-of-bounds writes are dropped.
func (g *Grid) Put(x, y int, r rune, style Style) {
	if g.InBounds(x, y) {
		g.cells[y][x] = Cell{Rune: r, Style: style}
	}
}

// Fill paints a rectangle of cells with r.
func (g *Grid) Fill(x, y, width, height int, r rune, style Style) {
	for row := y; row < y+height; row++ {
		for col := x; col < x+width; col++ {
			g.Put(col, row, r, style)
		}
	}
}

// Clear resets every cell to a blank with the default style.
func (g *Grid) Clear() {
	for y := range g.cells {
		for x := range g.cells[y] {
			g.cells[y][x] = Cell{Rune: ' '}
		}
	}
}

// Cells calls fn for every cell that should be drawn, skipping the
// continuation cells of wide runes.
func (g *Grid) Cells(fn func(x, y int, c Cell)) {
	for y := range g.cells {
		for x, c := range g.cells[y] {
			if c.Rune == continuation {
				continue
			}
			fn(x, y, c)
		}
	}
}

// String returns the runes of the grid, one line per row.
func (g *Grid) String() string {
	var sb strings.Builder
	sb.Grow(g.height * (g.width + 1))
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			if r := g.cells[y][x].Rune; r != continuation {
				sb.WriteRune(r)
			}
		}
		if y < g.height-1 {
			sb.WriteRune('\n')
		}
	}
	return sb.String()
}

// DrawText writes text starting at (x, y) and returns the number of cells
// used. Wide runes take two cells; text is clipped at the grid edge.
func (g *Grid) DrawText(x, y int, text string, style Style) int {
	if y < 0 || y >= g.height {
		return 0
	}
	col := x
	for _, r := range text {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if col+w > g.width {
			break
		}
		if col >= 0 {
			g.Put(col, y, r, style)
			if w == 2 {
				g.Put(col+1, y, continuation, style)
			}
		}
		col += w
	}
	return col - x
}

// TextWidth returns the display width of s in cells.
func TextWidth(s string) int {
	return runewidth.StringWidth(s)
}

// Truncate shortens s to at most width cells, ending with "…" when cut.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return runewidth.Truncate(s, width, "…")
}
