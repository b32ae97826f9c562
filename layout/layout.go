// Package layout holds the rendering-ready tree produced for one document:
// every hex with its pixel geometry and labels, and every spline with its
// routed path and curve. Sinks in the export and terminal packages only
// read it.
package layout

import (
	"textmapper/core"
	"textmapper/geometry"
	"textmapper/pathfinding"
)

// Map is the laid out document.
type Map struct {
	ID          string           `json:"id" msgpack:"id"`
	Tiling      string           `json:"tiling" msgpack:"tiling"`
	SwapEvenOdd bool             `json:"swapEvenOdd" msgpack:"swapEvenOdd"`
	Viewbox     geometry.Viewbox `json:"viewbox" msgpack:"viewbox"`

	// HexCorners are the corner offsets shared by every hex.
	HexCorners []core.Pixel `json:"hexCorners" msgpack:"hexCorners"`

	// Group ids of the rendering layers, namespaced per document.
	Groups Groups `json:"groups" msgpack:"groups"`

	Types   []TypeDef         `json:"types,omitempty" msgpack:"types,omitempty"`
	Defs    []string          `json:"defs,omitempty" msgpack:"defs,omitempty"`
	Regions []RegionLayout    `json:"regions" msgpack:"regions"`
	Splines []SplineLayout    `json:"splines" msgpack:"splines"`
	Style   Style             `json:"style" msgpack:"style"`
	Labels  []core.HexMapping `json:"labels,omitempty" msgpack:"labels,omitempty"`
	Options map[string]string `json:"options,omitempty" msgpack:"options,omitempty"`
}

// Groups names the layer groups in drawing order.
type Groups struct {
	Backgrounds string `json:"backgrounds" msgpack:"backgrounds"`
	Paths       string `json:"paths" msgpack:"paths"`
	Things      string `json:"things" msgpack:"things"`
	Coordinates string `json:"coordinates" msgpack:"coordinates"`
	Regions     string `json:"regions" msgpack:"regions"`
	PathLabels  string `json:"pathLabels" msgpack:"pathLabels"`
	Labels      string `json:"labels" msgpack:"labels"`
}

// TypeDef is a reusable symbol for a region or spline type. A type with
// attributes is drawn as a filled hex (a background); a type with only a
// path is an icon (a thing).
type TypeDef struct {
	Type       string            `json:"type" msgpack:"type"`
	ID         string            `json:"id" msgpack:"id"`
	Attributes map[string]string `json:"attributes,omitempty" msgpack:"attributes,omitempty"`
	Path       string            `json:"path,omitempty" msgpack:"path,omitempty"`
}

// Background reports whether the type is drawn as a filled hex.
func (t TypeDef) Background() bool {
	return t.Attributes != nil
}

// Style carries the attribute sets shared by all elements of a kind.
type Style struct {
	// Region styles the outline polygon of every hex.
	Region map[string]string `json:"region,omitempty" msgpack:"region,omitempty"`
	// Path styles splines and icon paths by type.
	Path  map[string]map[string]string `json:"path,omitempty" msgpack:"path,omitempty"`
	Text  map[string]string            `json:"text,omitempty" msgpack:"text,omitempty"`
	Label map[string]string            `json:"label,omitempty" msgpack:"label,omitempty"`
	Glow  map[string]string            `json:"glow,omitempty" msgpack:"glow,omitempty"`
}

// RegionLayout is one hex ready to draw.
type RegionLayout struct {
	ID         string       `json:"id" msgpack:"id"`
	Point      core.Point   `json:"point" msgpack:"point"`
	Z          int          `json:"z,omitempty" msgpack:"z,omitempty"`
	Coordinate string       `json:"coordinate" msgpack:"coordinate"`
	Centre     core.Pixel   `json:"centre" msgpack:"centre"`
	Polygon    []core.Pixel `json:"polygon" msgpack:"polygon"`

	// Backgrounds and Things split the region's types by TypeDef.Background.
	// Types without any definition are dropped.
	Backgrounds []string `json:"backgrounds,omitempty" msgpack:"backgrounds,omitempty"`
	Things      []string `json:"things,omitempty" msgpack:"things,omitempty"`

	CoordinateLabel  string     `json:"coordinateLabel" msgpack:"coordinateLabel"`
	CoordinateAnchor core.Pixel `json:"coordinateAnchor" msgpack:"coordinateAnchor"`

	Label       string     `json:"label,omitempty" msgpack:"label,omitempty"`
	Link        string     `json:"link,omitempty" msgpack:"link,omitempty"`
	FontSize    string     `json:"fontSize,omitempty" msgpack:"fontSize,omitempty"`
	LabelAnchor core.Pixel `json:"labelAnchor" msgpack:"labelAnchor"`
}

// Linked reports whether the label points somewhere other than its text.
func (r RegionLayout) Linked() bool {
	return r.Link != "" && r.Link != r.Label
}

// SplineLayout is one routed spline ready to draw.
type SplineLayout struct {
	ID        string       `json:"id" msgpack:"id"`
	Type      string       `json:"type" msgpack:"type"`
	Label     string       `json:"label,omitempty" msgpack:"label,omitempty"`
	Side      string       `json:"side,omitempty" msgpack:"side,omitempty"`
	Start     string       `json:"start,omitempty" msgpack:"start,omitempty"`
	Waypoints []core.Point `json:"waypoints" msgpack:"waypoints"`
	Cells     []core.Point `json:"cells" msgpack:"cells"`
	Samples   []core.Pixel `json:"samples" msgpack:"samples"`
	PathData  string       `json:"pathData" msgpack:"pathData"`

	// Segments are the cubic pieces PathData is made of.
	Segments []pathfinding.Segment `json:"segments,omitempty" msgpack:"segments,omitempty"`

	// Error is set when routing failed and Cells is the bare waypoint list.
	Error string `json:"error,omitempty" msgpack:"error,omitempty"`
}

// Routed reports whether the spline was routed without error.
func (s SplineLayout) Routed() bool {
	return s.Error == ""
}

// Empty reports whether the map has nothing to draw.
func (m *Map) Empty() bool {
	return len(m.Regions) == 0 && len(m.Splines) == 0
}

// TypeDef looks up the definition of a type.
func (m *Map) TypeDef(name string) (TypeDef, bool) {
	for _, t := range m.Types {
		if t.Type == name {
			return t, true
		}
	}
	return TypeDef{}, false
}
