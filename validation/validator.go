// Package validation checks rendered route maps for broken line drawing.
package validation

import (
	"fmt"
	"strings"
)

type side uint8

const (
	north side = 1 << iota
	east
	south
	west
)

// openings lists the sides each drawing character connects toward.
var openings = map[rune]side{
	'─': east | west, '━': east | west, '═': east | west, '╌': east | west,
	'│': north | south, '┃': north | south, '║': north | south, '┆': north | south,
	'┌': east | south, '┏': east | south, '╔': east | south, '╭': east | south,
	'┐': west | south, '┓': west | south, '╗': west | south, '╮': west | south,
	'└': north | east, '┗': north | east, '╚': north | east, '╰': north | east,
	'┘': north | west, '┛': north | west, '╝': north | west, '╯': north | west,
	'├': north | east | south, '┤': north | west | south,
	'┬': east | west | south, '┴': north | east | west,
	'┼': north | east | south | west,
	// Arrowheads connect back toward the line they end.
	'▶': west, '◀': east, '▼': north, '▲': south,
}

// Problem is a line that ends in empty space.
type Problem struct {
	X, Y int
	Char rune
	Side string
}

func (p Problem) String() string {
	return fmt.Sprintf("%d:%d %q opens %s onto empty space", p.Y+1, p.X+1, p.Char, p.Side)
}

// Lines reports every drawing character whose open side faces a blank
// cell. Sides facing the edge of the drawing, text or another glyph are
// accepted: edges end on node borders and labels interrupt lines.
func Lines(text string) []Problem {
	rows := strings.Split(strings.TrimRight(text, "\n"), "\n")
	grid := make([][]rune, len(rows))
	for i, row := range rows {
		grid[i] = []rune(row)
	}

	var problems []Problem
	for y, row := range grid {
		for x, r := range row {
			open, ok := openings[r]
			if !ok {
				continue
			}
			for _, c := range []struct {
				s      side
				name   string
				dx, dy int
			}{
				{north, "north", 0, -1},
				{east, "east", 1, 0},
				{south, "south", 0, 1},
				{west, "west", -1, 0},
			} {
				if open&c.s == 0 {
					continue
				}
				if n, inside := at(grid, x+c.dx, y+c.dy); inside && n == ' ' {
					problems = append(problems, Problem{X: x, Y: y, Char: r, Side: c.name})
				}
			}
		}
	}
	return problems
}

// at returns the rune at x, y and whether the cell exists.
func at(grid [][]rune, x, y int) (rune, bool) {
	if y < 0 || y >= len(grid) || x < 0 || x >= len(grid[y]) {
		return 0, false
	}
	return grid[y][x], true
}
