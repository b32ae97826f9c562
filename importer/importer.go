package importer

import (
	"fmt"
	"path/filepath"
	"strings"

	"textmapper/core"
)

// Importer interface defines methods for reading map documents from various formats
type Importer interface {
	// CanImport checks if the given content can be imported by this importer
	CanImport(content []byte) bool

	// Import decodes the content into a document
	Import(content []byte) (*core.Document, error)

	// GetFormatName returns the human-readable name of the format
	GetFormatName() string

	// GetFileExtensions returns common file extensions for this format
	GetFileExtensions() []string
}

// ImporterRegistry manages available importers. Detection tries them in
// registration order, so the most permissive format goes last.
type ImporterRegistry struct {
	importers []Importer
}

// NewImporterRegistry creates a new importer registry
func NewImporterRegistry() *ImporterRegistry {
	return &ImporterRegistry{
		importers: []Importer{
			NewJSONImporter(),
			NewMsgpackImporter(),
			NewYAMLImporter(),
		},
	}
}

// Register adds a new importer to the registry
func (r *ImporterRegistry) Register(importer Importer) {
	r.importers = append(r.importers, importer)
}

// DetectFormat attempts to detect the format of the given content
func (r *ImporterRegistry) DetectFormat(content []byte) (Importer, error) {
	for _, imp := range r.importers {
		if imp.CanImport(content) {
			return imp, nil
		}
	}
	return nil, fmt.Errorf("unable to detect format")
}

// ForExtension returns the importer registered for the extension of path.
func (r *ImporterRegistry) ForExtension(path string) (Importer, bool) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == "" {
		return nil, false
	}
	for _, imp := range r.importers {
		for _, e := range imp.GetFileExtensions() {
			if e == ext {
				return imp, true
			}
		}
	}
	return nil, false
}

// Import attempts to import content using auto-detection
func (r *ImporterRegistry) Import(content []byte) (*core.Document, error) {
	importer, err := r.DetectFormat(content)
	if err != nil {
		return nil, err
	}
	return importer.Import(content)
}

// ImportFile imports content read from path, picking the importer by
// extension and falling back to detection.
func (r *ImporterRegistry) ImportFile(path string, content []byte) (*core.Document, error) {
	if imp, ok := r.ForExtension(path); ok {
		return imp.Import(content)
	}
	return r.Import(content)
}

// ImportWithFormat imports content using a specific format
func (r *ImporterRegistry) ImportWithFormat(content []byte, format string) (*core.Document, error) {
	format = strings.ToLower(format)

	for _, imp := range r.importers {
		if strings.ToLower(imp.GetFormatName()) == format {
			return imp.Import(content)
		}
	}

	return nil, fmt.Errorf("unknown format: %s", format)
}

// GetAvailableFormats returns a list of available import formats
func (r *ImporterRegistry) GetAvailableFormats() []string {
	formats := make([]string, len(r.importers))
	for i, imp := range r.importers {
		formats[i] = imp.GetFormatName()
	}
	return formats
}
