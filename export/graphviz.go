package export

import (
	"fmt"
	"strings"

	"routemap/diagram"
)

// GraphvizExporter exports graphs to Graphviz DOT syntax
type GraphvizExporter struct{}

// NewGraphvizExporter creates a new Graphviz exporter
func NewGraphvizExporter() *GraphvizExporter {
	return &GraphvizExporter{}
}

// Export converts the graph to a DOT digraph. Node positions are emitted as
// pinned pos attributes so neato/fdp reproduce the editor layout.
func (e *GraphvizExporter) Export(g diagram.Graph) (string, error) {
	if len(g.Nodes) == 0 {
		return "", fmt.Errorf("route map has no nodes")
	}

	var sb strings.Builder
	sb.WriteString("digraph RouteMap {\n")
	sb.WriteString("  rankdir=LR;\n")
	sb.WriteString("  node [style=filled];\n\n")

	ids := make(map[string]string, len(g.Nodes))
	for i, node := range g.Nodes {
		id := fmt.Sprintf("N%d", i)
		ids[node.ID] = id
		sb.WriteString(fmt.Sprintf("  %s [%s];\n", id, strings.Join(e.nodeAttributes(node), ", ")))
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
		if attrs := e.edgeAttributes(edge); len(attrs) > 0 {
			sb.WriteString(fmt.Sprintf("  %s -> %s [%s];\n", from, to, strings.Join(attrs, ", ")))
		} else {
			sb.WriteString(fmt.Sprintf("  %s -> %s;\n", from, to))
		}
	}

	sb.WriteString("}\n")
	return sb.String(), nil
}

func (e *GraphvizExporter) nodeAttributes(node diagram.Node) []string {
	attrs := []string{
		fmt.Sprintf("label=\"%s\"", e.escapeLabel(node.Name)),
		fmt.Sprintf("shape=%s", e.mapShapeToDOT(node.Shape)),
		fmt.Sprintf("fillcolor=\"%s\"", node.FillColor),
		fmt.Sprintf("color=\"%s\"", node.BorderColor),
		fmt.Sprintf("fontcolor=\"%s\"", node.IconColor),
		// DOT points are 1/72 inch and y grows upwards.
		fmt.Sprintf("pos=\"%g,%g!\"", node.X/72, (0-node.Y)/72),
	}
	if node.State == diagram.StateLocked {
		attrs = append(attrs, "penwidth=1")
	} else {
		attrs = append(attrs, "penwidth=2")
	}
	return attrs
}

func (e *GraphvizExporter) edgeAttributes(edge diagram.Edge) []string {
	var attrs []string
	if edge.Label != "" {
		attrs = append(attrs, fmt.Sprintf("label=\"%s\"", e.escapeLabel(edge.Label)))
	}
	if edge.Requirement != "" {
		attrs = append(attrs, fmt.Sprintf("xlabel=\"%s\"", e.escapeLabel(edge.Requirement)))
	}
	if edge.Type == diagram.EdgeConditional {
		attrs = append(attrs, "style=dashed")
	}
	return attrs
}

// mapShapeToDOT maps node frames to DOT shapes
func (e *GraphvizExporter) mapShapeToDOT(shape string) string {
	switch shape {
	case "circle":
		return "circle"
	case "diamond":
		return "diamond"
	case "hex":
		return "hexagon"
	default:
		return "box"
	}
}

// escapeLabel escapes special characters in labels
func (e *GraphvizExporter) escapeLabel(label string) string {
	label = strings.ReplaceAll(label, `\`, `\\`)
	label = strings.ReplaceAll(label, `"`, `\"`)
	label = strings.ReplaceAll(label, "\n", `\n`)
	return label
}

// GetFileExtension returns the file extension for DOT
func (e *GraphvizExporter) GetFileExtension() string {
	return ".dot"
}

// GetFormatName returns the format name
func (e *GraphvizExporter) GetFormatName() string {
	return "Graphviz"
}
