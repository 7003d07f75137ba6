package terminal

import (
	"github.com/gdamore/tcell/v2"

	"routemap/canvas"
	"routemap/editor"
)

// translateMods maps tcell modifier bits to editor modifiers.
func translateMods(m tcell.ModMask) editor.Modifiers {
	var mods editor.Modifiers
	if m&tcell.ModShift != 0 {
		mods |= editor.ModShift
	}
	if m&tcell.ModCtrl != 0 {
		mods |= editor.ModCtrl
	}
	if m&tcell.ModAlt != 0 {
		mods |= editor.ModAlt
	}
	if m&tcell.ModMeta != 0 {
		mods |= editor.ModMeta
	}
	return mods
}

// translateKey converts a tcell key press. Control codes become the
// matching letter with ModCtrl so editor shortcuts see Ctrl+Z as 'z'.
func translateKey(ev *tcell.EventKey) (editor.KeyEvent, bool) {
	mods := translateMods(ev.Modifiers())
	switch k := ev.Key(); {
	case k == tcell.KeyRune:
		return editor.KeyEvent{Key: editor.KeyRune, Rune: ev.Rune(), Mods: mods}, true
	case k == tcell.KeyDelete:
		return editor.KeyEvent{Key: editor.KeyDelete, Mods: mods}, true
	case k == tcell.KeyBackspace || k == tcell.KeyBackspace2:
		return editor.KeyEvent{Key: editor.KeyBackspace, Mods: mods}, true
	case k == tcell.KeyEscape:
		return editor.KeyEvent{Key: editor.KeyEscape, Mods: mods}, true
	case k == tcell.KeyEnter:
		return editor.KeyEvent{Key: editor.KeyEnter, Mods: mods}, true
	case k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ:
		r := 'a' + rune(k-tcell.KeyCtrlA)
		return editor.KeyEvent{Key: editor.KeyRune, Rune: r, Mods: mods | editor.ModCtrl}, true
	}
	return editor.KeyEvent{}, false
}

// cellStyle converts a canvas style.
func cellStyle(s canvas.Style) tcell.Style {
	st := tcell.StyleDefault
	if s.Fg != "" {
		st = st.Foreground(tcell.GetColor(s.Fg))
	}
	if s.Bg != "" {
		st = st.Background(tcell.GetColor(s.Bg))
	}
	return st.
		Bold(s.Has(canvas.AttrBold)).
		Dim(s.Has(canvas.AttrDim)).
		Reverse(s.Has(canvas.AttrReverse)).
		Underline(s.Has(canvas.AttrUnderline)).
		StrikeThrough(s.Has(canvas.AttrStrike))
}
