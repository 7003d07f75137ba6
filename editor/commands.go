package editor

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"routemap/appearance"
	"routemap/diagram"
)

// ErrNoTarget is returned by commands that need a selection when nothing
// is selected.
var ErrNoTarget = errors.New("nothing selected")

// Exec runs a command-line command such as "fill #112233" or "tool connect".
// Commands act on the open edit target, else on the selection. The returned
// message is meant for the status line.
func (e *Editor) Exec(cmdline string) (string, error) {
	cmdline = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(cmdline), ":"))
	name, arg, _ := strings.Cut(cmdline, " ")
	arg = strings.TrimSpace(arg)
	if name == "" {
		return "", nil
	}

	switch name {
	case "tool":
		t, ok := ParseTool(arg)
		if !ok {
			return "", fmt.Errorf("unknown tool: %q", arg)
		}
		e.SetTool(t)
		return "tool " + strings.ToLower(t.String()), nil

	case "type":
		t := diagram.NodeType(strings.ToLower(arg))
		if !t.Valid() {
			return "", fmt.Errorf("unknown node type: %q", arg)
		}
		if ids := e.TargetNodes(); len(ids) > 0 {
			e.SetNodeType(t, ids...)
			return fmt.Sprintf("retyped %d node(s) to %s", len(ids), t), nil
		}
		e.SetCreateType(t)
		return "creating " + string(t) + " nodes", nil

	case "name", "loot", "event", "notes", "state", "unlock":
		return e.execNodeField(name, arg)

	case "label", "req", "etype":
		return e.execEdgeField(name, arg)

	case "accent", "fill", "border", "iconcolor", "glow", "shape":
		f, err := appearance.ParseField(name)
		if err != nil {
			return "", err
		}
		if len(e.TargetNodes()) == 0 {
			return "", ErrNoTarget
		}
		if !e.SetAppearance(f, arg) {
			return fmt.Sprintf("%s unchanged", f), nil
		}
		return fmt.Sprintf("%s = %s", f, e.ReadAppearance(f).Value), nil

	case "icon":
		if len(e.TargetNodes()) == 0 {
			return "", ErrNoTarget
		}
		e.AssignIcon(arg)
		if arg == "" || arg == "-" {
			return "icon cleared", nil
		}
		return "icon = " + arg, nil

	case "reset":
		if len(e.TargetNodes()) == 0 {
			return "", ErrNoTarget
		}
		e.ResetAppearance()
		return "appearance reset", nil

	case "icons":
		return e.execIcons(arg)

	case "dup", "duplicate":
		ids := e.Duplicate()
		if len(ids) == 0 {
			return "", ErrNoTarget
		}
		return fmt.Sprintf("duplicated %d node(s)", len(ids)), nil

	case "del", "delete":
		if !e.DeleteSelection() {
			return "", ErrNoTarget
		}
		return "deleted", nil

	case "layout":
		e.AutoLayout()
		e.RequestFit()
		return "layout applied", nil

	case "undo", "u":
		if !e.Undo() {
			return "nothing to undo", nil
		}
		return "undo", nil

	case "redo":
		if !e.Redo() {
			return "nothing to redo", nil
		}
		return "redo", nil

	case "grid":
		size, err := strconv.ParseFloat(arg, 64)
		if err != nil || !e.SetGrid(size) {
			return "", fmt.Errorf("invalid grid size: %q", arg)
		}
		return fmt.Sprintf("grid %g", size), nil

	case "snap":
		switch arg {
		case "on", "true", "1":
			e.SetSnap(true)
		case "off", "false", "0":
			e.SetSnap(false)
		case "":
			e.SetSnap(!e.snap)
		default:
			return "", fmt.Errorf("snap expects on or off, got %q", arg)
		}
		if e.snap {
			return "snap on", nil
		}
		return "snap off", nil
	}
	return "", fmt.Errorf("unknown command: %s", name)
}

func (e *Editor) execNodeField(name, arg string) (string, error) {
	ids := e.TargetNodes()
	if len(ids) == 0 {
		return "", ErrNoTarget
	}

	var f NodeFields
	switch name {
	case "name":
		f.Name = &arg
	case "loot":
		f.Loot = &arg
	case "event":
		f.Event = &arg
	case "notes":
		f.Notes = &arg
	case "state":
		s := diagram.NodeState(strings.ToLower(arg))
		if !s.Valid() {
			return "", fmt.Errorf("unknown state: %q", arg)
		}
		f.State = &s
	case "unlock":
		m := diagram.UnlockMode(strings.ToLower(arg))
		if !m.Valid() {
			return "", fmt.Errorf("unknown unlock mode: %q", arg)
		}
		f.UnlockMode = &m
	}

	changed := e.apply(func(g *diagram.Graph) bool {
		hit := false
		for _, id := range ids {
			if n := g.NodePtr(id); n != nil && applyNodeFields(n, f) {
				hit = true
			}
		}
		return hit
	})
	if !changed {
		return name + " unchanged", nil
	}
	return fmt.Sprintf("%s updated on %d node(s)", name, len(ids)), nil
}

func (e *Editor) execEdgeField(name, arg string) (string, error) {
	ids := e.TargetEdges()
	if len(ids) == 0 {
		return "", ErrNoTarget
	}

	var f EdgeFields
	switch name {
	case "label":
		f.Label = &arg
	case "req":
		f.Requirement = &arg
	case "etype":
		t := diagram.EdgeType(strings.ToLower(arg))
		if !t.Valid() {
			return "", fmt.Errorf("unknown edge type: %q", arg)
		}
		f.Type = &t
	}

	changed := e.apply(func(g *diagram.Graph) bool {
		hit := false
		for _, id := range ids {
			if edge := g.EdgePtr(id); edge != nil && applyEdgeFields(edge, f) {
				hit = true
			}
		}
		return hit
	})
	if !changed {
		return name + " unchanged", nil
	}
	return fmt.Sprintf("%s updated on %d edge(s)", name, len(ids)), nil
}

func (e *Editor) execIcons(arg string) (string, error) {
	sub, icon, _ := strings.Cut(arg, " ")
	icon = strings.TrimSpace(icon)
	switch sub {
	case "", "list":
		icons := e.icons.Icons()
		if len(icons) == 0 {
			return "no custom icons", nil
		}
		return strings.Join(icons, ", "), nil
	case "add":
		if icon == "" {
			return "", errors.New("icons add needs an icon reference")
		}
		if !e.icons.AddIcon(icon) {
			return "icon already listed", nil
		}
		return "icon added", nil
	case "rm", "remove":
		if !e.icons.RemoveIcon(icon) {
			return "icon not listed", nil
		}
		return "icon removed", nil
	}
	return "", fmt.Errorf("unknown icons command: %s", sub)
}
