package export

import (
	"encoding/json"
	"io"

	"textmapper/layout"
)

// JSONExporter exports the layout tree to JSON format
type JSONExporter struct {
	Indent string
}

// NewJSONExporter creates a new JSON exporter
func NewJSONExporter() *JSONExporter {
	return &JSONExporter{Indent: "  "}
}

// Export writes the map as JSON
func (e *JSONExporter) Export(w io.Writer, m *layout.Map) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", e.Indent)
	return enc.Encode(m)
}

// GetFileExtension returns the file extension for JSON
func (e *JSONExporter) GetFileExtension() string {
	return ".json"
}

// GetFormatName returns the format name
func (e *JSONExporter) GetFormatName() string {
	return "JSON"
}

func (e *JSONExporter) GetContentType() string {
	return "application/json"
}
