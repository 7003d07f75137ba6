package export

import (
	"encoding/json"

	"gopkg.in/yaml.v3"

	"routemap/diagram"
)

// JSONExporter exports graphs to the native JSON format
type JSONExporter struct{}

// NewJSONExporter creates a new JSON exporter
func NewJSONExporter() *JSONExporter {
	return &JSONExporter{}
}

// Export converts a graph to JSON. Empty graphs still carry both arrays so
// the file can be imported again.
func (e *JSONExporter) Export(g diagram.Graph) (string, error) {
	data, err := json.MarshalIndent(withArrays(g), "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// GetFileExtension returns the file extension for JSON
func (e *JSONExporter) GetFileExtension() string {
	return ".json"
}

// GetFormatName returns the format name
func (e *JSONExporter) GetFormatName() string {
	return "JSON"
}

// YAMLExporter exports graphs to YAML with the same field names as JSON
type YAMLExporter struct{}

// NewYAMLExporter creates a new YAML exporter
func NewYAMLExporter() *YAMLExporter {
	return &YAMLExporter{}
}

// Export converts a graph to YAML
func (e *YAMLExporter) Export(g diagram.Graph) (string, error) {
	data, err := yaml.Marshal(withArrays(g))
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// GetFileExtension returns the file extension for YAML
func (e *YAMLExporter) GetFileExtension() string {
	return ".yaml"
}

// GetFormatName returns the format name
func (e *YAMLExporter) GetFormatName() string {
	return "YAML"
}

func withArrays(g diagram.Graph) diagram.Graph {
	if g.Nodes == nil {
		g.Nodes = []diagram.Node{}
	}
	if g.Edges == nil {
		g.Edges = []diagram.Edge{}
	}
	return g
}
