// Package core contains the fundamental types used throughout the textmapper renderer.
package core

import (
	"fmt"
	"strconv"
	"strings"
)

// Point represents a grid coordinate on the hex map.
type Point struct {
	X int `json:"x" yaml:"x" msgpack:"x"`
	Y int `json:"y" yaml:"y" msgpack:"y"`
}

// String returns the point in "XXYY" coordinate form.
func (p Point) String() string {
	return FormatCoordinate(p.X, p.Y)
}

// MaxCoordinate is the largest axis value a four digit coordinate holds.
const MaxCoordinate = 99

// Valid reports whether p fits the "XXYY" coordinate form.
func (p Point) Valid() bool {
	return p.X >= 0 && p.Y >= 0 && p.X <= MaxCoordinate && p.Y <= MaxCoordinate
}

// Add returns the component-wise sum of two points.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Pixel represents a position in pixel space. Grid points become pixels
// only through geometry.Orientation.
type Pixel struct {
	X float64 `json:"x" msgpack:"x"`
	Y float64 `json:"y" msgpack:"y"`
}

// String formats the pixel the way SVG point lists expect it.
func (p Pixel) String() string {
	return strconv.FormatFloat(p.X, 'f', 1, 64) + "," + strconv.FormatFloat(p.Y, 'f', 1, 64)
}

// FormatCoordinate renders x and y as two zero-padded 2-digit axes.
func FormatCoordinate(x, y int) string {
	return fmt.Sprintf("%02d%02d", x, y)
}

// ParseCoordinate parses a coordinate string of exactly four digits.
func ParseCoordinate(s string) (Point, bool) {
	if len(s) != 4 {
		return Point{}, false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return Point{}, false
		}
	}
	x, _ := strconv.Atoi(s[:2])
	y, _ := strconv.Atoi(s[2:])
	return Point{X: x, Y: y}, true
}

// Region represents one hex cell of the map.
type Region struct {
	X     int      `json:"x" msgpack:"x"`
	Y     int      `json:"y" msgpack:"y"`
	Z     int      `json:"z,omitempty" msgpack:"z,omitempty"`
	Types []string `json:"types" msgpack:"types"` // render order
	Label string   `json:"label,omitempty" msgpack:"label,omitempty"`
	Size  string   `json:"size,omitempty" msgpack:"size,omitempty"` // font-size override
	ID    string   `json:"id" msgpack:"id"`
}

// Point returns the grid coordinate of the region.
func (r Region) Point() Point {
	return Point{X: r.X, Y: r.Y}
}

// Coordinate returns the region position in "XXYY" form.
func (r Region) Coordinate() string {
	return FormatCoordinate(r.X, r.Y)
}

// LinkAndLabel splits a "link|display" label. A label without a pipe is
// both its own link and display text.
func (r Region) LinkAndLabel() (link, display string) {
	if r.Label == "" {
		return "", ""
	}
	parts := strings.SplitN(r.Label, "|", 2)
	if len(parts) == 2 {
		return strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
	}
	label := strings.TrimSpace(r.Label)
	return label, label
}

// CurveOptions controls the wave applied to a routed path.
type CurveOptions struct {
	Frequency float64 `json:"frequency" yaml:"frequency" msgpack:"frequency"`
	Depth     float64 `json:"depth" yaml:"depth" msgpack:"depth"`
	Rate      float64 `json:"rate" yaml:"rate" msgpack:"rate"`
	// Curvature scales the tangents of the smoothed path; 0 means the default.
	Curvature float64 `json:"curvature,omitempty" yaml:"curvature,omitempty" msgpack:"curvature,omitempty"`
}

// Spline represents a connector (river, road, trail) through the grid.
type Spline struct {
	ID     string       `json:"id" msgpack:"id"`
	Types  string       `json:"types" msgpack:"types"`
	Label  string       `json:"label,omitempty" msgpack:"label,omitempty"`
	Side   string       `json:"side,omitempty" msgpack:"side,omitempty"`
	Start  string       `json:"start,omitempty" msgpack:"start,omitempty"`
	Points []Point      `json:"points" msgpack:"points"` // explicit waypoints, possibly non-adjacent
	Curve  CurveOptions `json:"curve" msgpack:"curve"`
}

// AddPoint appends a waypoint.
func (s *Spline) AddPoint(x, y int) {
	s.Points = append(s.Points, Point{X: x, Y: y})
}

// HexMapping pairs a display label with the coordinate it names.
type HexMapping struct {
	DisplayValue string `json:"displayValue" msgpack:"displayValue"`
	Coordinate   string `json:"coordinate" msgpack:"coordinate"`
}
