package importer

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"textmapper/core"
)

// YAMLImporter reads documents written in YAML. It accepts anything that is
// not empty, so it belongs last in a registry.
type YAMLImporter struct{}

// NewYAMLImporter creates a new YAML importer
func NewYAMLImporter() *YAMLImporter {
	return &YAMLImporter{}
}

func (i *YAMLImporter) CanImport(content []byte) bool {
	return len(bytes.TrimSpace(content)) > 0
}

func (i *YAMLImporter) Import(content []byte) (*core.Document, error) {
	dec := yaml.NewDecoder(bytes.NewReader(content))
	dec.KnownFields(true)
	var doc core.Document
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("yaml: empty document")
		}
		return nil, fmt.Errorf("yaml: %w", err)
	}
	return &doc, nil
}

func (i *YAMLImporter) GetFormatName() string {
	return "YAML"
}

func (i *YAMLImporter) GetFileExtensions() []string {
	return []string{".yaml", ".yml"}
}
