package editor

// Tool is the active pointer behavior. Exactly one tool is active at a time.
type Tool int

const (
	ToolSelect     Tool = iota // Select, drag, pan
	ToolCreate                 // Insert nodes on empty canvas
	ToolConnect                // Click origin then target
	ToolDelete                 // Remove the clicked node or edge
	ToolToggleLock             // Flip locked/unlocked
)

// String returns the tool name for display
func (t Tool) String() string {
	switch t {
	case ToolSelect:
		return "SELECT"
	case ToolCreate:
		return "CREATE"
	case ToolConnect:
		return "CONNECT"
	case ToolDelete:
		return "DELETE"
	case ToolToggleLock:
		return "LOCK"
	default:
		return "UNKNOWN"
	}
}

// ParseTool converts a command-line tool name to a Tool.
func ParseTool(s string) (Tool, bool) {
	switch s {
	case "select", "s":
		return ToolSelect, true
	case "create", "c", "add":
		return ToolCreate, true
	case "connect", "link", "l":
		return ToolConnect, true
	case "delete", "d", "del":
		return ToolDelete, true
	case "lock", "togglelock", "toggle":
		return ToolToggleLock, true
	}
	return 0, false
}

// Variant selects the builder flavor. Lite has no marquee selection.
type Variant int

const (
	VariantFull Variant = iota
	VariantLite
)

// String returns the variant name used in configuration
func (v Variant) String() string {
	if v == VariantLite {
		return "lite"
	}
	return "full"
}

// ParseVariant converts a configuration value to a Variant.
func ParseVariant(s string) (Variant, bool) {
	switch s {
	case "", "full":
		return VariantFull, true
	case "lite":
		return VariantLite, true
	}
	return 0, false
}

// Modifiers is a bit set of held modifier keys.
type Modifiers uint8

const (
	ModShift Modifiers = 1 << iota
	ModCtrl
	ModMeta
	ModAlt
)

// Has reports whether every modifier in m is held.
func (m Modifiers) Has(mods Modifiers) bool {
	return m&mods == mods
}

// additive reports whether a click should toggle instead of replace the selection.
func (m Modifiers) additive() bool {
	return m&(ModShift|ModCtrl|ModMeta) != 0
}

// command reports whether Ctrl or Cmd is held.
func (m Modifiers) command() bool {
	return m&(ModCtrl|ModMeta) != 0
}

// PointerEvent is a pointer press, motion or release in client coordinates.
type PointerEvent struct {
	X, Y float64
	Mods Modifiers
}

// WheelEvent is a scroll gesture. Negative DeltaY scrolls up (zoom in).
type WheelEvent struct {
	X, Y   float64
	DeltaY float64
}

// Key identifies a non-printable key. Printable keys use KeyRune.
type Key int

const (
	KeyRune Key = iota
	KeyDelete
	KeyBackspace
	KeyEscape
	KeyEnter
)

// KeyEvent is a key press.
type KeyEvent struct {
	Key  Key
	Rune rune
	Mods Modifiers
}
