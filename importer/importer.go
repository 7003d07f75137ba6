// Package importer reads route maps from the native JSON/YAML file format
// and from Mermaid flowcharts.
package importer

import (
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"routemap/diagram"
)

// ErrMissingArrays is returned when a document lacks the nodes or the edges array.
var ErrMissingArrays = errors.New("document must contain both a nodes array and an edges array")

// ErrUnknownFormat is returned when no importer accepts the content or name.
var ErrUnknownFormat = errors.New("unknown import format")

// Importer interface defines methods for importing route maps from various formats
type Importer interface {
	// CanImport checks if the given content can be imported by this importer
	CanImport(content string) bool

	// Import converts the input content into a graph. It never returns a
	// partially imported graph together with an error.
	Import(content string) (diagram.Graph, error)

	// GetFormatName returns the human-readable name of the format
	GetFormatName() string

	// GetFileExtensions returns common file extensions for this format
	GetFileExtensions() []string
}

// ImporterRegistry manages available importers
type ImporterRegistry struct {
	importers []Importer
}

// NewImporterRegistry creates a registry with every built-in importer.
// ids names the source for repaired or generated ids; nil means uuids.
func NewImporterRegistry(ids diagram.IDSource) *ImporterRegistry {
	if ids == nil {
		ids = diagram.UUIDSource{}
	}
	return &ImporterRegistry{
		importers: []Importer{
			NewJSONImporter(ids),
			NewMermaidImporter(ids),
			NewYAMLImporter(ids),
		},
	}
}

// Register adds a new importer to the registry
func (r *ImporterRegistry) Register(importer Importer) {
	r.importers = append(r.importers, importer)
}

// DetectFormat attempts to detect the format of the given content
func (r *ImporterRegistry) DetectFormat(content string) (Importer, error) {
	for _, imp := range r.importers {
		if imp.CanImport(content) {
			return imp, nil
		}
	}
	return nil, fmt.Errorf("%w: unable to detect format", ErrUnknownFormat)
}

// Import attempts to import content using auto-detection
func (r *ImporterRegistry) Import(content string) (diagram.Graph, error) {
	importer, err := r.DetectFormat(content)
	if err != nil {
		return diagram.Graph{}, err
	}
	return importer.Import(content)
}

// ImportWithFormat imports content using a specific format
func (r *ImporterRegistry) ImportWithFormat(content, format string) (diagram.Graph, error) {
	format = strings.ToLower(format)

	for _, imp := range r.importers {
		if strings.ToLower(imp.GetFormatName()) == format {
			return imp.Import(content)
		}
	}

	return diagram.Graph{}, fmt.Errorf("%w: %s", ErrUnknownFormat, format)
}

// ForFile returns the importer registered for the extension of path.
func (r *ImporterRegistry) ForFile(path string) (Importer, bool) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == "" {
		return nil, false
	}
	for _, imp := range r.importers {
		if slices.Contains(imp.GetFileExtensions(), ext) {
			return imp, true
		}
	}
	return nil, false
}

// GetAvailableFormats returns a list of available import formats
func (r *ImporterRegistry) GetAvailableFormats() []string {
	formats := make([]string, len(r.importers))
	for i, imp := range r.importers {
		formats[i] = imp.GetFormatName()
	}
	return formats
}
