package importer

import (
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"routemap/appearance"
	"routemap/diagram"
)

// document distinguishes a missing array from an empty one.
type document struct {
	Nodes *[]diagram.Node `json:"nodes" yaml:"nodes"`
	Edges *[]diagram.Edge `json:"edges" yaml:"edges"`
}

// graph checks both arrays are present and repairs the result: ids are made
// unique and node appearance is normalized.
func (d document) graph(ids diagram.IDSource) (diagram.Graph, error) {
	if d.Nodes == nil || d.Edges == nil {
		return diagram.Graph{}, ErrMissingArrays
	}
	g := diagram.Graph{Nodes: *d.Nodes, Edges: *d.Edges}
	if g.Nodes == nil {
		g.Nodes = []diagram.Node{}
	}
	if g.Edges == nil {
		g.Edges = []diagram.Edge{}
	}
	diagram.EnsureUniqueNodeIDs(&g, ids)
	diagram.EnsureUniqueEdgeIDs(&g, ids)
	appearance.NormalizeGraph(&g)
	return g, nil
}

// ImportJSON parses a route map file. It fails with ErrMissingArrays when
// either array is absent and with a decode error for malformed JSON.
func ImportJSON(data []byte) (diagram.Graph, error) {
	return NewJSONImporter(nil).importBytes(data)
}

// JSONImporter imports the native JSON file format
type JSONImporter struct {
	ids diagram.IDSource
}

// NewJSONImporter creates a JSON importer. nil ids means uuids.
func NewJSONImporter(ids diagram.IDSource) *JSONImporter {
	if ids == nil {
		ids = diagram.UUIDSource{}
	}
	return &JSONImporter{ids: ids}
}

// CanImport checks if the content looks like a JSON object
func (j *JSONImporter) CanImport(content string) bool {
	return strings.HasPrefix(strings.TrimSpace(content), "{")
}

// Import converts JSON content to a graph
func (j *JSONImporter) Import(content string) (diagram.Graph, error) {
	return j.importBytes([]byte(content))
}

func (j *JSONImporter) importBytes(data []byte) (diagram.Graph, error) {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return diagram.Graph{}, fmt.Errorf("decode route map: %w", err)
	}
	return doc.graph(j.ids)
}

// GetFormatName returns the format name
func (j *JSONImporter) GetFormatName() string {
	return "JSON"
}

// GetFileExtensions returns common file extensions
func (j *JSONImporter) GetFileExtensions() []string {
	return []string{".json"}
}

// YAMLImporter imports the native format written as YAML
type YAMLImporter struct {
	ids diagram.IDSource
}

// NewYAMLImporter creates a YAML importer. nil ids means uuids.
func NewYAMLImporter(ids diagram.IDSource) *YAMLImporter {
	if ids == nil {
		ids = diagram.UUIDSource{}
	}
	return &YAMLImporter{ids: ids}
}

// CanImport checks if the content is a YAML mapping with a nodes key
func (y *YAMLImporter) CanImport(content string) bool {
	content = strings.TrimSpace(content)
	if strings.HasPrefix(content, "{") {
		return false
	}
	return strings.HasPrefix(content, "nodes:") || strings.Contains(content, "\nnodes:") ||
		strings.HasPrefix(content, "edges:") || strings.Contains(content, "\nedges:")
}

// Import converts YAML content to a graph
func (y *YAMLImporter) Import(content string) (diagram.Graph, error) {
	var doc document
	if err := yaml.Unmarshal([]byte(content), &doc); err != nil {
		return diagram.Graph{}, fmt.Errorf("decode route map: %w", err)
	}
	return doc.graph(y.ids)
}

// GetFormatName returns the format name
func (y *YAMLImporter) GetFormatName() string {
	return "YAML"
}

// GetFileExtensions returns common file extensions
func (y *YAMLImporter) GetFileExtensions() []string {
	return []string{".yaml", ".yml"}
}
