package export

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"routemap/appearance"
	"routemap/diagram"
)

func sampleGraph() diagram.Graph {
	start := appearance.NewNode("s", "Gate", diagram.NodeStart, 0, 0)
	boss := appearance.NewNode("b", `The "King"`, diagram.NodeBoss, 260, 140)
	boss.Shape = "hex"
	return diagram.Graph{
		Nodes: []diagram.Node{start, boss},
		Edges: []diagram.Edge{
			{ID: "e1", From: "s", To: "b", Label: "door", Requirement: "key", Type: diagram.EdgeConditional},
		},
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want Format
	}{
		{"", FormatJSON},
		{"JSON", FormatJSON},
		{".yml", FormatYAML},
		{"mmd", FormatMermaid},
		{"graphviz", FormatDOT},
		{".gv", FormatDOT},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if err != nil {
			t.Errorf("ParseFormat(%q) error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}

	if _, err := ParseFormat("svg"); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("ParseFormat(svg) error = %v, want ErrUnknownFormat", err)
	}
}

func TestEveryFormatHasAnExporter(t *testing.T) {
	descriptions := GetFormatDescriptions()
	for _, f := range GetAvailableFormats() {
		exp, err := NewExporter(f)
		if err != nil {
			t.Fatalf("NewExporter(%s): %v", f, err)
		}
		if !strings.HasPrefix(exp.GetFileExtension(), ".") {
			t.Errorf("%s extension %q missing dot", f, exp.GetFileExtension())
		}
		if descriptions[f] == "" {
			t.Errorf("%s has no description", f)
		}
	}
}

func TestFileName(t *testing.T) {
	now := time.Date(2024, 1, 31, 15, 45, 0, 0, time.UTC)
	if got := FileName(FormatJSON, now); got != "route-map-20240131-154500.json" {
		t.Errorf("FileName json = %q", got)
	}
	if got := FileName(FormatMermaid, now); got != "route-map-20240131-154500.mmd" {
		t.Errorf("FileName mermaid = %q", got)
	}
}

func TestJSONExportKeepsEmptyArrays(t *testing.T) {
	out, err := NewJSONExporter().Export(diagram.Graph{})
	if err != nil {
		t.Fatal(err)
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal([]byte(out), &raw); err != nil {
		t.Fatal(err)
	}
	if string(raw["nodes"]) != "[]" || string(raw["edges"]) != "[]" {
		t.Errorf("empty graph exported as %s", out)
	}
}

func TestJSONExportFieldNames(t *testing.T) {
	out, err := NewJSONExporter().Export(sampleGraph())
	if err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{`"unlockMode"`, `"accentColor"`, `"glowIntensity"`, `"requirement": "key"`, `"type": "conditional"`} {
		if !strings.Contains(out, key) {
			t.Errorf("JSON export missing %s", key)
		}
	}
	if strings.Contains(out, `"loot"`) {
		t.Error("empty optional field should be omitted")
	}
}

func TestYAMLExport(t *testing.T) {
	out, err := NewYAMLExporter().Export(sampleGraph())
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out, "nodes:\n") {
		t.Errorf("YAML export should start with nodes, got %q", out[:20])
	}
	if !strings.Contains(out, "unlockMode:") {
		t.Error("YAML export missing unlockMode")
	}
}

func TestMermaidExport(t *testing.T) {
	out, err := NewMermaidExporter().Export(sampleGraph())
	if err != nil {
		t.Fatal(err)
	}
	want := []string{
		"flowchart LR\n",
		`    N0["Gate"]`,
		`    N1{{"The #quot;King#quot;"}}`,
		"    N0 -.->|door: key| N1",
		"    classDef start stroke:" + appearance.DefaultPalette(diagram.NodeStart).Accent,
		"    class N1 boss",
	}
	for _, w := range want {
		if !strings.Contains(out, w) {
			t.Errorf("Mermaid export missing %q\n%s", w, out)
		}
	}
	if strings.Index(out, "classDef start") > strings.Index(out, "classDef boss") {
		t.Error("classes should follow palette order")
	}
}

func TestMermaidExportEmpty(t *testing.T) {
	if _, err := NewMermaidExporter().Export(diagram.Graph{}); err == nil {
		t.Error("expected error for empty graph")
	}
}

func TestGraphvizExport(t *testing.T) {
	out, err := NewGraphvizExporter().Export(sampleGraph())
	if err != nil {
		t.Fatal(err)
	}
	want := []string{
		"digraph RouteMap {",
		"rankdir=LR;",
		`label="The \"King\""`,
		"shape=hexagon",
		`pos="0,0!"`,
		`N0 -> N1 [label="door", xlabel="key", style=dashed];`,
	}
	for _, w := range want {
		if !strings.Contains(out, w) {
			t.Errorf("DOT export missing %q\n%s", w, out)
		}
	}
}
