package canvas

// Directions a box-drawing rune connects to.
const (
	north = 1 << iota
	east
	south
	west
)

// Light box-drawing runes by the directions they connect.
var boxRunes = map[int]rune{
	east | west:                 '─',
	north | south:               '│',
	east | south:                '┌',
	west | south:                '┐',
	north | east:                '└',
	north | west:                '┘',
	north | south | east:        '├',
	north | south | west:        '┤',
	east | west | south:         '┬',
	east | west | north:         '┴',
	north | east | south | west: '┼',
}

var runeDirs = func() map[rune]int {
	m := make(map[rune]int, len(boxRunes)+4)
	for dirs, r := range boxRunes {
		m[r] = dirs
	}
	// Rounded corners connect like their square counterparts.
	m['╭'] = east | south
	m['╮'] = west | south
	m['╰'] = north | east
	m['╯'] = north | west
	return m
}()

// merge combines a new rune with the one already in a cell. Two line runes
// join into the junction covering both; anything else overwrites.
func merge(existing, next rune) rune {
	a, okA := runeDirs[existing]
	b, okB := runeDirs[next]
	if !okA || !okB {
		return next
	}
	if r, ok := boxRunes[a|b]; ok {
		return r
	}
	return next
}

// LineStyle selects the runes of a connector.
type LineStyle struct {
	Horizontal rune
	Vertical   rune
	Merge      bool // join with existing lines into junctions
}

var (
	// SolidLine is a light box-drawing line.
	SolidLine = LineStyle{Horizontal: '─', Vertical: '│', Merge: true}
	// DashedLine is used for conditional routes.
	DashedLine = LineStyle{Horizontal: '╌', Vertical: '┆'}
)

// BoxStyle holds the runes of a rectangle.
type BoxStyle struct {
	TopLeft, TopRight, BottomLeft, BottomRight rune
	Horizontal, Vertical                       rune
}

var (
	// PanelBox is the square frame.
	PanelBox = BoxStyle{'┌', '┐', '└', '┘', '─', '│'}
	// RoundBox is used for circle frames.
	RoundBox = BoxStyle{'╭', '╮', '╰', '╯', '─', '│'}
	// HeavyBox marks the node being edited.
	HeavyBox = BoxStyle{'┏', '┓', '┗', '┛', '━', '┃'}
	// DoubleBox is used for hex frames.
	DoubleBox = BoxStyle{'╔', '╗', '╚', '╝', '═', '║'}
	// DiamondBox is used for diamond frames.
	DiamondBox = BoxStyle{'◆', '◆', '◆', '◆', '─', '│'}
)

func (g *Grid) line(x, y int, r rune, ls LineStyle, style Style) {
	if ls.Merge {
		_ = g.Set(x, y, r, style)
		return
	}
	g.Put(x, y, r, style)
}

// DrawHorizontalLine draws from x1 to x2 inclusive on row y, clipped.
func (g *Grid) DrawHorizontalLine(x1, y, x2 int, ls LineStyle, style Style) {
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	for x := max(x1, 0); x <= min(x2, g.width-1); x++ {
		g.line(x, y, ls.Horizontal, ls, style)
	}
}

// DrawVerticalLine draws from y1 to y2 inclusive on column x, clipped.
func (g *Grid) DrawVerticalLine(x, y1, y2 int, ls LineStyle, style Style) {
	if y1 > y2 {
		y1, y2 = y2, y1
	}
	for y := max(y1, 0); y <= min(y2, g.height-1); y++ {
		g.line(x, y, ls.Vertical, ls, style)
	}
}

// DrawLine draws a straight line between two cells using Bresenham's
// algorithm. Off-grid cells are skipped.
func (g *Grid) DrawLine(x1, y1, x2, y2 int, r rune, style Style) {
	dx, dy := abs(x2-x1), abs(y2-y1)
	xInc, yInc := 1, 1
	if x1 > x2 {
		xInc = -1
	}
	if y1 > y2 {
		yInc = -1
	}

	x, y := x1, y1
	if dx > dy {
		err := dx / 2
		for x != x2 {
			g.Put(x, y, r, style)
			err -= dy
			if err < 0 {
				y += yInc
				err += dx
			}
			x += xInc
		}
	} else {
		err := dy / 2
		for y != y2 {
			g.Put(x, y, r, style)
			err -= dx
			if err < 0 {
				x += xInc
				err += dy
			}
			y += yInc
		}
	}
	g.Put(x2, y2, r, style)
}

// Point is a cell position.
type Point struct {
	X, Y int
}

// DrawPath draws an orthogonal polyline with rounded corners at its bends.
// Diagonal segments are drawn as straight lines of '·'.
func (g *Grid) DrawPath(points []Point, ls LineStyle, style Style) {
	points = compact(points)
	for i := 0; i+1 < len(points); i++ {
		p1, p2 := points[i], points[i+1]
		switch {
		case p1.Y == p2.Y:
			g.DrawHorizontalLine(p1.X, p1.Y, p2.X, ls, style)
		case p1.X == p2.X:
			g.DrawVerticalLine(p1.X, p1.Y, p2.Y, ls, style)
		default:
			g.DrawLine(p1.X, p1.Y, p2.X, p2.Y, '·', style)
		}
	}
	for i := 1; i+1 < len(points); i++ {
		if r, ok := corner(points[i-1], points[i], points[i+1]); ok {
			g.Put(points[i].X, points[i].Y, r, style)
		}
	}
}

// corner picks the rounded corner joining the segments prev→curr→next.
func corner(prev, curr, next Point) (rune, bool) {
	from, to := direction(prev, curr), direction(curr, next)
	switch {
	case from == east && to == south, from == north && to == west:
		return '╮', true
	case from == east && to == north, from == south && to == west:
		return '╯', true
	case from == west && to == south, from == north && to == east:
		return '╭', true
	case from == west && to == north, from == south && to == east:
		return '╰', true
	}
	return 0, false
}

// direction returns the compass direction of travel from p1 to p2.
func direction(p1, p2 Point) int {
	switch {
	case p2.X > p1.X:
		return east
	case p2.X < p1.X:
		return west
	case p2.Y > p1.Y:
		return south
	default:
		return north
	}
}

func compact(points []Point) []Point {
	out := make([]Point, 0, len(points))
	for _, p := range points {
		if len(out) > 0 && out[len(out)-1] == p {
			continue
		}
		out = append(out, p)
	}
	return out
}

// DrawBox draws a rectangle outline. Parts outside the grid are clipped.
func (g *Grid) DrawBox(x, y, width, height int, bs BoxStyle, style Style) {
	if width < 2 || height < 2 {
		return
	}
	right, bottom := x+width-1, y+height-1
	for col := x + 1; col < right; col++ {
		g.Put(col, y, bs.Horizontal, style)
		g.Put(col, bottom, bs.Horizontal, style)
	}
	for row := y + 1; row < bottom; row++ {
		g.Put(x, row, bs.Vertical, style)
		g.Put(right, row, bs.Vertical, style)
	}
	g.Put(x, y, bs.TopLeft, style)
	g.Put(right, y, bs.TopRight, style)
	g.Put(x, bottom, bs.BottomLeft, style)
	g.Put(right, bottom, bs.BottomRight, style)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
