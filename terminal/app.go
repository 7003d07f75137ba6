// Package terminal runs the route map editor in a terminal using tcell.
// Terminal cells are mapped to client coordinates so the editor sees the
// same pointer, wheel and key events a browser would deliver.
package terminal

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"

	"routemap/canvas"
	"routemap/diagram"
	"routemap/editor"
)

// DoubleClickInterval is the longest gap between two releases on the same
// cell that still counts as a double click.
const DoubleClickInterval = 400 * time.Millisecond

// panStep is how far an arrow key pans, in client units.
const panStep = 4 * canvas.CellWidth

// App is a terminal frontend for one editor.
type App struct {
	screen tcell.Screen
	ed     *editor.Editor
	logger *slog.Logger
	glyphs bool
	save   func(diagram.Graph) (string, error)

	grid *canvas.Grid

	pressed     bool
	lastRelease time.Time
	lastCell    canvas.Point

	commanding bool
	cmdline    []rune
	message    string
	quit       bool
}

// Option configures an App.
type Option func(*App)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(a *App) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// WithGlyphs prefixes node labels with their type glyph.
func WithGlyphs(on bool) Option {
	return func(a *App) { a.glyphs = on }
}

// WithSave enables the ":w" command. save receives the current graph and
// returns the status message.
func WithSave(save func(diagram.Graph) (string, error)) Option {
	return func(a *App) { a.save = save }
}

// New creates an app drawing ed on screen. The screen must be initialized.
func New(screen tcell.Screen, ed *editor.Editor, opts ...Option) *App {
	a := &App{
		screen: screen,
		ed:     ed,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		grid:   canvas.NewGrid(0, 0),
	}
	for _, opt := range opts {
		opt(a)
	}
	a.resize()
	return a
}

// OpenScreen creates and initializes the terminal screen with mouse support.
func OpenScreen() (tcell.Screen, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("init screen: %w", err)
	}
	screen.EnableMouse()
	screen.EnableFocus()
	screen.Clear()
	return screen, nil
}

// Refresh asks the event loop to redraw. It is safe to call from any goroutine.
func (a *App) Refresh() {
	_ = a.screen.PostEvent(tcell.NewEventInterrupt(nil))
}

// Message returns the status line message.
func (a *App) Message() string { return a.message }

// Run draws and handles events until the user quits or ctx is done.
func (a *App) Run(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		a.Refresh()
	}()

	for {
		a.Draw()
		a.screen.Show()

		ev := a.screen.PollEvent()
		if ev == nil {
			return nil
		}
		if ctx.Err() != nil {
			a.cancelPointer()
			return ctx.Err()
		}
		if a.HandleEvent(ev) {
			return nil
		}
	}
}

// HandleEvent applies one terminal event and reports whether the user quit.
// A drag still open on quit, resize or focus loss is finished where the
// pointer last was.
func (a *App) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		a.cancelPointer()
		a.resize()
		a.screen.Sync()
	case *tcell.EventFocus:
		if !ev.Focused {
			a.cancelPointer()
		}
	case *tcell.EventKey:
		if a.handleKey(ev) {
			a.cancelPointer()
			return true
		}
	case *tcell.EventMouse:
		a.handleMouse(ev)
	}
	return false
}

func (a *App) cancelPointer() {
	if !a.pressed {
		return
	}
	a.pressed = false
	a.ed.PointerCancel()
}

func (a *App) resize() {
	w, h := a.screen.Size()
	if h > 0 {
		h-- // status line
	}
	a.grid = canvas.NewGrid(w, h)
	a.ed.Viewport().SetSize(float64(w)*canvas.CellWidth, float64(h)*canvas.CellHeight)
}

func (a *App) handleMouse(ev *tcell.EventMouse) {
	x, y := ev.Position()
	client := canvas.CellToClient(x, y)
	pe := editor.PointerEvent{X: client.X, Y: client.Y, Mods: translateMods(ev.Modifiers())}
	buttons := ev.Buttons()

	switch {
	case buttons&tcell.WheelUp != 0:
		a.ed.Wheel(editor.WheelEvent{X: client.X, Y: client.Y, DeltaY: -1})
		return
	case buttons&tcell.WheelDown != 0:
		a.ed.Wheel(editor.WheelEvent{X: client.X, Y: client.Y, DeltaY: 1})
		return
	}

	down := buttons&tcell.Button1 != 0
	_, rows := a.grid.Size()
	switch {
	case down && !a.pressed:
		if y >= rows {
			return
		}
		a.pressed = true
		a.ed.PointerDown(pe)
	case down && a.pressed:
		a.ed.PointerMove(pe)
	case !down && a.pressed:
		a.pressed = false
		a.ed.PointerUp(pe)
		a.release(ev.When(), canvas.Point{X: x, Y: y}, pe)
	}
}

// release detects double clicks: two releases on one cell within
// DoubleClickInterval. A third release starts a new pair.
func (a *App) release(when time.Time, cell canvas.Point, pe editor.PointerEvent) {
	if !a.lastRelease.IsZero() && cell == a.lastCell && when.Sub(a.lastRelease) <= DoubleClickInterval {
		a.lastRelease = time.Time{}
		if a.ed.DoubleClick(pe) {
			a.message = a.targetSummary()
		}
		return
	}
	a.lastRelease = when
	a.lastCell = cell
}

func (a *App) handleKey(ev *tcell.EventKey) bool {
	if a.commanding {
		a.handleCommandKey(ev)
		return a.quit
	}

	switch ev.Key() {
	case tcell.KeyCtrlQ:
		return true
	case tcell.KeyLeft:
		a.ed.Viewport().PanBy(panStep, 0)
		return false
	case tcell.KeyRight:
		a.ed.Viewport().PanBy(-panStep, 0)
		return false
	case tcell.KeyUp:
		a.ed.Viewport().PanBy(0, panStep)
		return false
	case tcell.KeyDown:
		a.ed.Viewport().PanBy(0, -panStep)
		return false
	}

	if ke, ok := translateKey(ev); ok && a.ed.HandleKey(ke) {
		a.message = ""
		return false
	}
	if ev.Key() != tcell.KeyRune || ev.Modifiers()&(tcell.ModCtrl|tcell.ModAlt|tcell.ModMeta) != 0 {
		return false
	}

	switch r := ev.Rune(); r {
	case 'q':
		return true
	case ':':
		a.commanding = true
		a.cmdline = a.cmdline[:0]
		a.ed.SetTextFocus(true)
	case '1', '2', '3', '4', '5':
		a.ed.SetTool(editor.Tool(r - '1'))
		a.message = "tool " + strings.ToLower(a.ed.Tool().String())
	case 'f':
		a.ed.RequestFit()
	case '+':
		a.zoomCenter(-1)
	case '-':
		a.zoomCenter(1)
	}
	return false
}

func (a *App) zoomCenter(delta float64) {
	w, h := a.ed.Viewport().Size()
	a.ed.Wheel(editor.WheelEvent{X: w / 2, Y: h / 2, DeltaY: delta})
}

func (a *App) handleCommandKey(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEscape:
		a.endCommand()
	case tcell.KeyEnter:
		line := string(a.cmdline)
		a.endCommand()
		a.runCommand(line)
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if len(a.cmdline) > 0 {
			a.cmdline = a.cmdline[:len(a.cmdline)-1]
		} else {
			a.endCommand()
		}
	case tcell.KeyRune:
		a.cmdline = append(a.cmdline, ev.Rune())
	}
}

func (a *App) endCommand() {
	a.commanding = false
	a.ed.SetTextFocus(false)
}

func (a *App) runCommand(line string) {
	switch strings.TrimSpace(line) {
	case "q", "quit":
		a.quit = true
		return
	case "w", "write":
		a.write()
		return
	case "wq":
		a.write()
		a.quit = true
		return
	case "fit":
		a.ed.RequestFit()
		a.message = "fit"
		return
	case "close":
		a.ed.CloseEditor()
		a.message = ""
		return
	}
	msg, err := a.ed.Exec(line)
	if err != nil {
		a.logger.Debug("command failed", "command", line, "error", err)
		a.message = "error: " + err.Error()
		return
	}
	a.message = msg
}

func (a *App) write() {
	if a.save == nil {
		a.message = "error: no file to write"
		return
	}
	msg, err := a.save(a.ed.Store().Graph())
	if err != nil {
		a.logger.Warn("write failed", "error", err)
		a.message = "error: " + err.Error()
		return
	}
	a.message = msg
}

func (a *App) targetSummary() string {
	t, ok := a.ed.EditTarget()
	if !ok {
		return ""
	}
	if t.Kind == editor.TargetNode {
		if n, ok := a.ed.Store().Node(t.ID); ok {
			return fmt.Sprintf("editing %s %q (%s)", n.Type, n.Name, n.State)
		}
	}
	if e, ok := a.ed.Store().Edge(t.ID); ok {
		return fmt.Sprintf("editing edge %q", e.Label)
	}
	return ""
}

// Draw renders the canvas and the status line to the screen.
func (a *App) Draw() {
	scene := canvas.Scene{
		Graph:     a.ed.Store().View(),
		View:      a.ed.Viewport(),
		Selection: a.ed.Selection(),
		Glyphs:    a.glyphs,
	}
	scene.Pending, _ = a.ed.PendingConnect()
	if t, ok := a.ed.EditTarget(); ok {
		scene.Target = t.ID
	}
	if size, snap := a.ed.Grid(); snap {
		scene.GridSize = size
	}
	if s := a.ed.Session(); s != nil && s.Kind == editor.SessionMarquee {
		r := s.Marquee()
		scene.Marquee = &r
	}
	scene.Draw(a.grid)

	a.screen.Clear()
	a.grid.Cells(func(x, y int, c canvas.Cell) {
		a.screen.SetContent(x, y, c.Rune, nil, cellStyle(c.Style))
	})
	a.drawStatus()
}

func (a *App) drawStatus() {
	w, h := a.screen.Size()
	if h == 0 {
		return
	}
	y := h - 1
	style := tcell.StyleDefault.Reverse(true)
	for x := 0; x < w; x++ {
		a.screen.SetContent(x, y, ' ', nil, style)
	}

	text := a.StatusLine()
	x := 0
	for _, r := range canvas.Truncate(text, w) {
		a.screen.SetContent(x, y, r, nil, style)
		x += canvas.TextWidth(string(r))
	}
	if a.commanding {
		a.screen.ShowCursor(min(x, w-1), y)
	} else {
		a.screen.HideCursor()
	}
}

// StatusLine returns the text of the bottom line.
func (a *App) StatusLine() string {
	if a.commanding {
		return ":" + string(a.cmdline)
	}
	current, total := a.ed.Store().Stats()
	parts := []string{
		strings.ToLower(a.ed.Tool().String()),
		a.ed.Variant().String(),
		string(a.ed.CreateType()),
		fmt.Sprintf("history %d/%d", current, total),
	}
	if n := len(a.ed.Selection().Nodes()); n > 0 {
		parts = append(parts, fmt.Sprintf("%d selected", n))
	}
	if from, ok := a.ed.PendingConnect(); ok {
		parts = append(parts, "connect from "+from)
	}
	if a.message != "" {
		parts = append(parts, a.message)
	}
	return strings.Join(parts, " | ")
}
