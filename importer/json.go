package importer

import (
	"bytes"
	"encoding/json"
	"fmt"

	"textmapper/core"
)

// JSONImporter reads documents written as a JSON object.
type JSONImporter struct{}

// NewJSONImporter creates a new JSON importer
func NewJSONImporter() *JSONImporter {
	return &JSONImporter{}
}

// CanImport reports whether content starts with a JSON object.
func (i *JSONImporter) CanImport(content []byte) bool {
	trimmed := bytes.TrimSpace(content)
	return len(trimmed) > 0 && trimmed[0] == '{'
}

// Import decodes a JSON document. Unknown fields are rejected so that a
// misspelt key does not silently drop part of a map.
func (i *JSONImporter) Import(content []byte) (*core.Document, error) {
	dec := json.NewDecoder(bytes.NewReader(content))
	dec.DisallowUnknownFields()
	var doc core.Document
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("json: %w", err)
	}
	return &doc, nil
}

func (i *JSONImporter) GetFormatName() string {
	return "JSON"
}

func (i *JSONImporter) GetFileExtensions() []string {
	return []string{".json"}
}
