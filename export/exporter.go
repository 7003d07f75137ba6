// Package export serializes route maps to the file format and to
// text-based diagram formats.
package export

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"routemap/diagram"
)

// Format represents an export format
type Format string

const (
	// FormatJSON is the native file format, also used for drafts
	FormatJSON Format = "json"
	// FormatYAML is the native document as YAML
	FormatYAML Format = "yaml"
	// FormatMermaid exports to Mermaid flowchart syntax
	FormatMermaid Format = "mermaid"
	// FormatDOT exports to Graphviz DOT syntax
	FormatDOT Format = "dot"
)

// ErrUnknownFormat is returned for format names no exporter handles.
var ErrUnknownFormat = errors.New("unknown format")

// Exporter interface for different export formats
type Exporter interface {
	// Export converts a graph to the target format
	Export(g diagram.Graph) (string, error)
	// GetFileExtension returns the recommended file extension for this format
	GetFileExtension() string
	// GetFormatName returns a human-readable name for this format
	GetFormatName() string
}

// NewExporter creates an exporter for the specified format
func NewExporter(format Format) (Exporter, error) {
	switch format {
	case FormatJSON:
		return NewJSONExporter(), nil
	case FormatYAML:
		return NewYAMLExporter(), nil
	case FormatMermaid:
		return NewMermaidExporter(), nil
	case FormatDOT:
		return NewGraphvizExporter(), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, format)
	}
}

// ParseFormat converts a string to a Format
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(s, ".")) {
	case "", "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "mermaid", "mmd":
		return FormatMermaid, nil
	case "dot", "graphviz", "gv":
		return FormatDOT, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownFormat, s)
	}
}

// GetAvailableFormats returns a list of all available export formats
func GetAvailableFormats() []Format {
	return []Format{
		FormatJSON,
		FormatYAML,
		FormatMermaid,
		FormatDOT,
	}
}

// GetFormatDescriptions returns human-readable descriptions of all formats
func GetFormatDescriptions() map[Format]string {
	return map[Format]string{
		FormatJSON:    "Route map file (re-importable)",
		FormatYAML:    "Route map file as YAML (re-importable)",
		FormatMermaid: "Mermaid flowchart (for Markdown)",
		FormatDOT:     "Graphviz DOT",
	}
}

// FileName returns the timestamped download name of an export, for example
// "route-map-20240131-154500.json".
func FileName(format Format, now time.Time) string {
	ext := ".json"
	if exp, err := NewExporter(format); err == nil {
		ext = exp.GetFileExtension()
	}
	return "route-map-" + now.Format("20060102-150405") + ext
}
