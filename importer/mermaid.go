package importer

import (
	"fmt"
	"regexp"
	"strings"

	"routemap/appearance"
	"routemap/diagram"
	"routemap/layout"
)

var (
	// ID, optional shape with label, optional ":::class" shorthand.
	mermaidNode = regexp.MustCompile(`^([A-Za-z0-9_]+)(\(\(.*?\)\)|\{\{.*?\}\}|\[.*?\]|\(.*?\)|\{.*?\})?(?::::([A-Za-z0-9_]+))?\s*`)
	// Arrow with optional |label|.
	mermaidLink = regexp.MustCompile(`^(-\.+->|={2,}>|-{2,}>|-{3,})\s*(?:\|([^|]*)\|)?\s*`)
	// "-- text -->" form.
	mermaidTextLink = regexp.MustCompile(`^(--|-\.)\s+(.+?)\s+(-->|\.->)\s*`)
	mermaidClass    = regexp.MustCompile(`^class\s+([A-Za-z0-9_,\s]+?)\s+([A-Za-z0-9_]+)$`)
)

// MermaidImporter imports Mermaid flowcharts. Mermaid carries no positions,
// so the result is auto-laid out.
type MermaidImporter struct {
	ids diagram.IDSource
}

// NewMermaidImporter creates a new Mermaid importer
func NewMermaidImporter(ids diagram.IDSource) *MermaidImporter {
	if ids == nil {
		ids = diagram.UUIDSource{}
	}
	return &MermaidImporter{ids: ids}
}

// CanImport checks if the content is a Mermaid flowchart
func (m *MermaidImporter) CanImport(content string) bool {
	content = strings.TrimSpace(content)
	return strings.HasPrefix(content, "graph ") ||
		strings.HasPrefix(content, "flowchart ") ||
		content == "graph" || content == "flowchart"
}

// GetFormatName returns the format name
func (m *MermaidImporter) GetFormatName() string {
	return "Mermaid"
}

// GetFileExtensions returns common file extensions
func (m *MermaidImporter) GetFileExtensions() []string {
	return []string{".mmd", ".mermaid"}
}

type mermaidBuilder struct {
	ids   diagram.IDSource
	g     diagram.Graph
	index map[string]int // mermaid id -> position in g.Nodes
}

// Import converts a Mermaid flowchart to a graph. Node shapes map to node
// frames, "class X type" lines and ":::type" set node types, dotted arrows
// become conditional edges and "label: requirement" edge text is split.
func (m *MermaidImporter) Import(content string) (diagram.Graph, error) {
	content = strings.TrimSpace(content)
	if !m.CanImport(content) {
		return diagram.Graph{}, fmt.Errorf("unsupported Mermaid diagram type")
	}

	b := &mermaidBuilder{
		ids:   m.ids,
		g:     diagram.Graph{Nodes: []diagram.Node{}, Edges: []diagram.Edge{}},
		index: make(map[string]int),
	}

	lines := strings.Split(content, "\n")
	for n, raw := range lines[1:] {
		line := strings.TrimSuffix(strings.TrimSpace(raw), ";")
		if line == "" || strings.HasPrefix(line, "%%") {
			continue
		}
		switch keyword := strings.Fields(line)[0]; keyword {
		case "subgraph", "end", "direction", "style", "linkStyle", "classDef", "click":
			continue
		case "class":
			if match := mermaidClass.FindStringSubmatch(line); match != nil {
				for _, id := range strings.Split(match[1], ",") {
					b.setType(strings.TrimSpace(id), match[2])
				}
			}
			continue
		}
		if err := b.statement(line); err != nil {
			return diagram.Graph{}, fmt.Errorf("line %d: %w", n+2, err)
		}
	}

	if len(b.g.Nodes) == 0 {
		return diagram.Graph{}, fmt.Errorf("flowchart has no nodes")
	}
	layout.Apply(&b.g, layout.DefaultColumnSpacing, layout.DefaultRowSpacing)
	return b.g, nil
}

// statement parses "A --> B -->|x| C" chains and bare node declarations.
func (b *mermaidBuilder) statement(line string) error {
	rest := line
	from, rest, err := b.node(rest)
	if err != nil {
		return err
	}
	for rest != "" {
		var arrow, label string
		if match := mermaidTextLink.FindStringSubmatch(rest); match != nil {
			arrow, label = match[1]+match[3], match[2]
			rest = rest[len(match[0]):]
		} else if match := mermaidLink.FindStringSubmatch(rest); match != nil {
			arrow, label = match[1], match[2]
			rest = rest[len(match[0]):]
		} else {
			return fmt.Errorf("unexpected %q", rest)
		}

		var to string
		to, rest, err = b.node(rest)
		if err != nil {
			return err
		}
		b.edge(from, to, arrow, label)
		from = to
	}
	return nil
}

func (b *mermaidBuilder) node(s string) (id, rest string, err error) {
	match := mermaidNode.FindStringSubmatch(s)
	if match == nil {
		return "", s, fmt.Errorf("expected node at %q", s)
	}
	id, shape, class := match[1], match[2], match[3]

	pos, ok := b.index[id]
	if !ok {
		pos = len(b.g.Nodes)
		b.index[id] = pos
		b.g.Nodes = append(b.g.Nodes, appearance.NewNode(b.ids.NewID(diagram.KindNode), id, diagram.NodeNormal, 0, 0))
	}
	if shape != "" {
		label, frame := parseShape(shape)
		b.g.Nodes[pos].Name = label
		b.g.Nodes[pos].Shape = frame
	}
	if class != "" {
		b.setType(id, class)
	}
	return id, s[len(match[0]):], nil
}

func (b *mermaidBuilder) edge(from, to, arrow, label string) {
	edge := diagram.Edge{
		ID:   b.ids.NewID(diagram.KindEdge),
		From: b.g.Nodes[b.index[from]].ID,
		To:   b.g.Nodes[b.index[to]].ID,
	}
	if strings.Contains(arrow, ".") {
		edge.Type = diagram.EdgeConditional
	}
	label = unescapeMermaid(strings.Trim(strings.TrimSpace(label), `"`))
	if text, req, ok := strings.Cut(label, ": "); ok {
		edge.Label, edge.Requirement = text, req
	} else {
		edge.Label = label
	}
	if b.g.HasEdge(edge.From, edge.To) {
		return
	}
	b.g.Edges = append(b.g.Edges, edge)
}

func (b *mermaidBuilder) setType(id, class string) {
	pos, ok := b.index[id]
	t := diagram.NodeType(strings.ToLower(class))
	if !ok || !t.Valid() {
		return
	}
	appearance.Retype(&b.g.Nodes[pos], t)
}

// parseShape returns the label inside shape brackets and the node frame
// the bracket style stands for.
func parseShape(shape string) (label, frame string) {
	trim := 1
	frame = diagram.DefaultShape
	switch {
	case strings.HasPrefix(shape, "(("):
		trim, frame = 2, "circle"
	case strings.HasPrefix(shape, "{{"):
		trim, frame = 2, "hex"
	case strings.HasPrefix(shape, "{"):
		frame = "diamond"
	}
	label = shape[trim : len(shape)-trim]
	label = strings.Trim(strings.TrimSpace(label), `"`)
	return unescapeMermaid(label), frame
}

func unescapeMermaid(s string) string {
	s = strings.ReplaceAll(s, "#quot;", `"`)
	s = strings.ReplaceAll(s, "#124;", "|")
	s = strings.ReplaceAll(s, "<br/>", "\n")
	return s
}
