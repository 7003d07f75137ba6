package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"routemap/diagram"
	"routemap/export"
	"routemap/importer"
)

// readGraph imports a file. format forces an importer by name; otherwise
// the extension picks one, then the content is sniffed.
func readGraph(path, format string) (diagram.Graph, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return diagram.Graph{}, err
	}
	reg := importer.NewImporterRegistry(nil)
	content := string(data)

	var g diagram.Graph
	switch {
	case format != "":
		g, err = reg.ImportWithFormat(content, format)
	default:
		if imp, ok := reg.ForFile(path); ok {
			g, err = imp.Import(content)
		} else {
			g, err = reg.Import(content)
		}
	}
	if err != nil {
		return diagram.Graph{}, fmt.Errorf("import %s: %w", path, err)
	}
	return g, nil
}

// render serializes g in format.
func render(g diagram.Graph, format export.Format) (string, error) {
	exp, err := export.NewExporter(format)
	if err != nil {
		return "", err
	}
	return exp.Export(g)
}

// writeOutput writes data to out. An empty out or "-" means stdout; an
// existing directory receives a timestamped file name. It returns the path
// written, or "" for stdout.
func writeOutput(stdout io.Writer, out string, format export.Format, data string) (string, error) {
	if out == "" || out == "-" {
		_, err := io.WriteString(stdout, data)
		return "", err
	}
	if info, err := os.Stat(out); err == nil && info.IsDir() {
		out = filepath.Join(out, export.FileName(format, time.Now()))
	}
	if err := os.WriteFile(out, []byte(data), 0o644); err != nil {
		return "", err
	}
	return out, nil
}

// formatForPath picks the export format from a file extension, defaulting
// to the native JSON format.
func formatForPath(path string) export.Format {
	f, err := export.ParseFormat(filepath.Ext(path))
	if err != nil {
		return export.FormatJSON
	}
	return f
}
