package editor

import (
	"unicode"
)

// HandleKey applies the global key bindings. It reports whether the key
// was consumed. Keys are ignored while a text field has focus.
func (e *Editor) HandleKey(ev KeyEvent) bool {
	if e.textFocus {
		return false
	}

	switch ev.Key {
	case KeyDelete, KeyBackspace:
		return e.DeleteSelection()
	case KeyEscape:
		return e.escape()
	case KeyRune:
	default:
		return false
	}

	if !ev.Mods.command() {
		return false
	}
	shift := ev.Mods.Has(ModShift) || unicode.IsUpper(ev.Rune)
	switch unicode.ToLower(ev.Rune) {
	case 'z':
		if shift {
			e.Redo()
		} else {
			e.Undo()
		}
		return true
	case 'y':
		e.Redo()
		return true
	case 'c':
		e.Copy()
		return true
	case 'v':
		e.Paste()
		return true
	case 'd':
		e.Duplicate()
		return true
	}
	return false
}

func (e *Editor) escape() bool {
	handled := false
	if e.pending != "" {
		e.pending = ""
		handled = true
	}
	if e.target != nil {
		e.target = nil
		handled = true
	}
	return handled
}
