// Package export writes a laid out map to image and data formats
package export

import (
	"fmt"
	"io"
	"strings"

	"textmapper/layout"
)

// Format represents an export format
type Format string

const (
	// FormatSVG exports a standalone SVG document (default textmapper format)
	FormatSVG Format = "svg"
	// FormatPNG rasterises the map
	FormatPNG Format = "png"
	// FormatJSON exports the layout tree as JSON
	FormatJSON Format = "json"
	// FormatMsgpack exports the layout tree as MessagePack
	FormatMsgpack Format = "msgpack"
)

// Exporter interface for different export formats
type Exporter interface {
	// Export writes the map in the target format
	Export(w io.Writer, m *layout.Map) error
	// GetFileExtension returns the recommended file extension for this format
	GetFileExtension() string
	// GetFormatName returns a human-readable name for this format
	GetFormatName() string
	// GetContentType returns the MIME type of the output
	GetContentType() string
}

// NewExporter creates an exporter for the specified format
func NewExporter(format Format) (Exporter, error) {
	switch format {
	case FormatSVG:
		return NewSVGExporter(), nil
	case FormatPNG:
		return NewPNGExporter(), nil
	case FormatJSON:
		return NewJSONExporter(), nil
	case FormatMsgpack:
		return NewMsgpackExporter(), nil
	default:
		return nil, fmt.Errorf("unsupported export format: %s", format)
	}
}

// ParseFormat converts a string to a Format
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "svg":
		return FormatSVG, nil
	case "png":
		return FormatPNG, nil
	case "json":
		return FormatJSON, nil
	case "msgpack", "mpk":
		return FormatMsgpack, nil
	default:
		return "", fmt.Errorf("unknown format: %s", s)
	}
}

// GetAvailableFormats returns a list of all available export formats
func GetAvailableFormats() []Format {
	return []Format{
		FormatSVG,
		FormatPNG,
		FormatJSON,
		FormatMsgpack,
	}
}

// GetFormatDescriptions returns human-readable descriptions of all formats
func GetFormatDescriptions() map[Format]string {
	return map[Format]string{
		FormatSVG:     "SVG document (textmapper native format)",
		FormatPNG:     "PNG raster image",
		FormatJSON:    "Layout tree as JSON",
		FormatMsgpack: "Layout tree as MessagePack",
	}
}
