package canvas

import (
	"math"

	"routemap/appearance"
	"routemap/diagram"
	"routemap/geometry"
	"routemap/viewport"
)

// A cell covers CellWidth x CellHeight client units.
const (
	CellWidth  = 10.0
	CellHeight = 20.0
)

// MaxLabelWidth caps the width of a node label in cells.
const MaxLabelWidth = 18

const (
	edgeColor        = "#8b919a"
	conditionalColor = "#c3a6ff"
	gridColor        = "#3b4048"
	marqueeColor     = "#e0e0e0"
)

// ClientToCell converts client coordinates to the cell containing them.
func ClientToCell(p geometry.Vec) Point {
	return Point{X: int(math.Floor(p.X / CellWidth)), Y: int(math.Floor(p.Y / CellHeight))}
}

// CellToClient returns the client coordinates of the center of a cell.
func CellToClient(x, y int) geometry.Vec {
	return geometry.Vec{X: (float64(x) + 0.5) * CellWidth, Y: (float64(y) + 0.5) * CellHeight}
}

// Highlights reports which items are selected.
type Highlights interface {
	HasNode(id string) bool
	HasEdge(id string) bool
}

// Scene is everything needed to draw one frame of the canvas.
type Scene struct {
	Graph     *diagram.Graph
	View      *viewport.Viewport
	Selection Highlights

	Pending  string // connect origin
	Target   string // node or edge in the edit panel
	Marquee  *geometry.Rect
	GridSize float64 // world units; 0 hides the grid
	Glyphs   bool    // prefix labels with the type glyph
}

type nodeBox struct {
	x, y, w, h int
	cx, cy     int
}

func (b nodeBox) contains(p Point) bool {
	return p.X >= b.x && p.X < b.x+b.w && p.Y >= b.y && p.Y < b.y+b.h
}

// Draw renders the scene into g, replacing its contents.
func (s Scene) Draw(g *Grid) {
	g.Clear()
	if s.View == nil || s.Graph == nil {
		return
	}
	s.drawGrid(g)

	boxes := make(map[string]nodeBox, len(s.Graph.Nodes))
	for _, n := range s.Graph.Nodes {
		boxes[n.ID] = s.measure(n)
	}
	for _, e := range s.Graph.Edges {
		from, okFrom := boxes[e.From]
		to, okTo := boxes[e.To]
		if !okFrom || !okTo {
			continue
		}
		s.drawEdge(g, e, from, to)
	}
	for _, n := range s.Graph.Nodes {
		s.drawNode(g, n, boxes[n.ID])
	}
	if s.Marquee != nil {
		s.drawMarquee(g, *s.Marquee)
	}
}

func (s Scene) cell(p geometry.Vec) Point {
	return ClientToCell(s.View.WorldToScreen(p))
}

func (s Scene) label(n diagram.Node) string {
	name := n.Name
	if name == "" {
		name = string(n.Type)
	}
	name = Truncate(name, MaxLabelWidth)
	if s.Glyphs {
		return string(appearance.Glyph(n.Type)) + " " + name
	}
	return name
}

func (s Scene) measure(n diagram.Node) nodeBox {
	c := s.cell(geometry.Vec{X: n.X, Y: n.Y})
	w := TextWidth(s.label(n)) + 4
	return nodeBox{x: c.X - w/2, y: c.Y - 1, w: w, h: 3, cx: c.X, cy: c.Y}
}

func (s Scene) drawGrid(g *Grid) {
	if s.GridSize <= 0 {
		return
	}
	step := s.GridSize * s.View.Scale
	if step/CellWidth < 2 || step/CellHeight < 1 {
		return
	}
	w, h := g.Size()
	topLeft := s.View.ScreenToWorld(0, 0)
	bottomRight := s.View.ScreenToWorld(float64(w)*CellWidth, float64(h)*CellHeight)
	dot := Style{Fg: gridColor}
	for wy := math.Ceil(topLeft.Y/s.GridSize) * s.GridSize; wy <= bottomRight.Y; wy += s.GridSize {
		for wx := math.Ceil(topLeft.X/s.GridSize) * s.GridSize; wx <= bottomRight.X; wx += s.GridSize {
			p := s.cell(geometry.Vec{X: wx, Y: wy})
			g.Put(p.X, p.Y, '·', dot)
		}
	}
}

func (s Scene) drawEdge(g *Grid, e diagram.Edge, from, to nodeBox) {
	ls, style := SolidLine, Style{Fg: edgeColor}
	if e.Type == diagram.EdgeConditional {
		ls, style = DashedLine, Style{Fg: conditionalColor}
	}
	selected := s.Selection != nil && s.Selection.HasEdge(e.ID)
	if selected || s.Target == e.ID {
		style = style.With(AttrBold | AttrReverse)
	}

	midX := (from.cx + to.cx) / 2
	path := []Point{{from.cx, from.cy}, {midX, from.cy}, {midX, to.cy}, {to.cx, to.cy}}
	g.DrawPath(path, ls, style)

	if p, r, ok := arrowHead(compact(path), to); ok {
		g.Put(p.X, p.Y, r, style)
	}

	text := e.Label
	if e.Requirement != "" {
		if text != "" {
			text += " "
		}
		text += "[" + e.Requirement + "]"
	}
	if text != "" {
		text = Truncate(text, MaxLabelWidth)
		y := (from.cy + to.cy) / 2
		if from.cy == to.cy {
			y--
		}
		g.DrawText(midX-TextWidth(text)/2, y, text, style)
	}
}

// arrowHead walks the path back from its end to the first cell outside the
// target box and returns it with the arrow for the direction of travel.
func arrowHead(path []Point, target nodeBox) (Point, rune, bool) {
	for i := len(path) - 1; i > 0; i-- {
		a, b := path[i-1], path[i]
		dir := direction(a, b)
		p := b
		for target.contains(p) && p != a {
			p = step(p, dir, -1)
		}
		if target.contains(p) {
			continue
		}
		switch dir {
		case east:
			return p, '▶', true
		case west:
			return p, '◀', true
		case south:
			return p, '▼', true
		default:
			return p, '▲', true
		}
	}
	return Point{}, 0, false
}

func step(p Point, dir, n int) Point {
	switch dir {
	case east:
		p.X += n
	case west:
		p.X -= n
	case south:
		p.Y += n
	default:
		p.Y -= n
	}
	return p
}

func (s Scene) drawNode(g *Grid, n diagram.Node, b nodeBox) {
	bg := Blend(n.FillColor, n.AccentColor, n.GlowIntensity*0.35)
	base := Style{Bg: bg}
	switch n.State {
	case diagram.StateLocked:
		base = base.With(AttrDim)
	case diagram.StateCurrent:
		base = base.With(AttrBold)
	}

	g.Fill(b.x+1, b.y+1, b.w-2, b.h-2, ' ', base)

	frame := PanelBox
	switch n.Shape {
	case "circle":
		frame = RoundBox
	case "hex":
		frame = DoubleBox
	case "diamond":
		frame = DiamondBox
	}
	border := base
	border.Fg = n.BorderColor
	if s.Target == n.ID {
		frame = HeavyBox
		border = border.With(AttrBold)
	}
	if s.Selection != nil && s.Selection.HasNode(n.ID) {
		border.Fg = n.AccentColor
		border = border.With(AttrReverse)
	}
	g.DrawBox(b.x, b.y, b.w, b.h, frame, border)

	text := base
	text.Fg = n.IconColor
	if n.State == diagram.StateCompleted {
		text = text.With(AttrStrike)
	}
	if s.Pending == n.ID {
		text = text.With(AttrUnderline | AttrBold)
	}
	g.DrawText(b.x+2, b.cy, s.label(n), text)
}

func (s Scene) drawMarquee(g *Grid, r geometry.Rect) {
	a := s.cell(r.Min)
	b := s.cell(r.Max)
	dashed := BoxStyle{'┌', '┐', '└', '┘', '╌', '┆'}
	g.DrawBox(a.X, a.Y, b.X-a.X+1, b.Y-a.Y+1, dashed, Style{Fg: marqueeColor})
}
