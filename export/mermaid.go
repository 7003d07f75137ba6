package export

import (
	"fmt"
	"strings"

	"routemap/diagram"
)

// MermaidExporter exports graphs to Mermaid flowchart syntax
type MermaidExporter struct{}

// NewMermaidExporter creates a new Mermaid exporter
func NewMermaidExporter() *MermaidExporter {
	return &MermaidExporter{}
}

// Export converts the graph to a left-to-right Mermaid flowchart. Node
// types become classes colored with the node's accent.
func (e *MermaidExporter) Export(g diagram.Graph) (string, error) {
	if len(g.Nodes) == 0 {
		return "", fmt.Errorf("route map has no nodes")
	}

	var sb strings.Builder
	sb.WriteString("flowchart LR\n")

	ids := make(map[string]string, len(g.Nodes))
	for i, node := range g.Nodes {
		id := fmt.Sprintf("N%d", i)
		ids[node.ID] = id
		sb.WriteString(fmt.Sprintf("    %s%s\n", id, e.formatNode(node)))
	}

	if len(g.Edges) > 0 {
		sb.WriteString("\n")
	}
	for _, edge := range g.Edges {
		from, ok := ids[edge.From]
		if !ok {
			continue
		}
		to, ok := ids[edge.To]
		if !ok {
			continue
		}

		arrow := "-->"
		if edge.Type == diagram.EdgeConditional {
			arrow = "-.->"
		}
		if label := e.edgeLabel(edge); label != "" {
			sb.WriteString(fmt.Sprintf("    %s %s|%s| %s\n", from, arrow, label, to))
		} else {
			sb.WriteString(fmt.Sprintf("    %s %s %s\n", from, arrow, to))
		}
	}

	// One class per node type in use, in palette order.
	used := make(map[diagram.NodeType][]string)
	accent := make(map[diagram.NodeType]string)
	for _, node := range g.Nodes {
		used[node.Type] = append(used[node.Type], ids[node.ID])
		if _, ok := accent[node.Type]; !ok {
			accent[node.Type] = node.AccentColor
		}
	}
	first := true
	for _, t := range diagram.NodeTypes {
		members := used[t]
		if len(members) == 0 {
			continue
		}
		if first {
			sb.WriteString("\n")
			first = false
		}
		sb.WriteString(fmt.Sprintf("    classDef %s stroke:%s\n", t, accent[t]))
		sb.WriteString(fmt.Sprintf("    class %s %s\n", strings.Join(members, ","), t))
	}

	return sb.String(), nil
}

func (e *MermaidExporter) formatNode(node diagram.Node) string {
	label := e.escapeLabel(node.Name)
	if label == "" {
		label = string(node.Type)
	}
	switch node.Shape {
	case "circle":
		return fmt.Sprintf("((\"%s\"))", label)
	case "diamond":
		return fmt.Sprintf("{\"%s\"}", label)
	case "hex":
		return fmt.Sprintf("{{\"%s\"}}", label)
	default:
		return fmt.Sprintf("[\"%s\"]", label)
	}
}

func (e *MermaidExporter) edgeLabel(edge diagram.Edge) string {
	parts := make([]string, 0, 2)
	if edge.Label != "" {
		parts = append(parts, e.escapeLabel(edge.Label))
	}
	if edge.Requirement != "" {
		parts = append(parts, e.escapeLabel(edge.Requirement))
	}
	return strings.Join(parts, ": ")
}

// escapeLabel replaces characters Mermaid treats as syntax
func (e *MermaidExporter) escapeLabel(label string) string {
	label = strings.ReplaceAll(label, `"`, "#quot;")
	label = strings.ReplaceAll(label, "|", "#124;")
	label = strings.ReplaceAll(label, "\n", "<br/>")
	return label
}

// GetFileExtension returns the file extension for Mermaid
func (e *MermaidExporter) GetFileExtension() string {
	return ".mmd"
}

// GetFormatName returns the format name
func (e *MermaidExporter) GetFormatName() string {
	return "Mermaid"
}
