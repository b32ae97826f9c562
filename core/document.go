package core

// Document is the set of typed declarations produced by a front end for one map.
type Document struct {
	ID             string                       `json:"id,omitempty" yaml:"id,omitempty" msgpack:"id,omitempty"`
	Options        []OptionDecl                 `json:"options,omitempty" yaml:"options,omitempty" msgpack:"options,omitempty"`
	Regions        []RegionDecl                 `json:"regions,omitempty" yaml:"regions,omitempty" msgpack:"regions,omitempty"`
	Splines        []SplineDecl                 `json:"splines,omitempty" yaml:"splines,omitempty" msgpack:"splines,omitempty"`
	Attributes     map[string]map[string]string `json:"attributes,omitempty" yaml:"attributes,omitempty" msgpack:"attributes,omitempty"`
	PathAttributes map[string]map[string]string `json:"pathAttributes,omitempty" yaml:"pathAttributes,omitempty" msgpack:"pathAttributes,omitempty"`
	Paths          map[string]string            `json:"paths,omitempty" yaml:"paths,omitempty" msgpack:"paths,omitempty"`
	Defs           []string                     `json:"defs,omitempty" yaml:"defs,omitempty" msgpack:"defs,omitempty"`
	Text           map[string]string            `json:"text,omitempty" yaml:"text,omitempty" msgpack:"text,omitempty"`
	Label          map[string]string            `json:"label,omitempty" yaml:"label,omitempty" msgpack:"label,omitempty"`
	Glow           map[string]string            `json:"glow,omitempty" yaml:"glow,omitempty" msgpack:"glow,omitempty"`
}

// OptionDecl is one "option KEY VALUE" declaration. Letter and Center are
// only used by hexflower declarations.
type OptionDecl struct {
	Key    string `json:"key" yaml:"key" msgpack:"key"`
	Value  string `json:"value,omitempty" yaml:"value,omitempty" msgpack:"value,omitempty"`
	Letter string `json:"letter,omitempty" yaml:"letter,omitempty" msgpack:"letter,omitempty"`
	Center string `json:"center,omitempty" yaml:"center,omitempty" msgpack:"center,omitempty"`
}

// RegionDecl declares one hex, or a straight run of hexes when To is set.
type RegionDecl struct {
	X     int      `json:"x" yaml:"x" msgpack:"x"`
	Y     int      `json:"y" yaml:"y" msgpack:"y"`
	Z     int      `json:"z,omitempty" yaml:"z,omitempty" msgpack:"z,omitempty"`
	To    *Point   `json:"to,omitempty" yaml:"to,omitempty" msgpack:"to,omitempty"`
	Types []string `json:"types,omitempty" yaml:"types,omitempty" msgpack:"types,omitempty"`
	Label string   `json:"label,omitempty" yaml:"label,omitempty" msgpack:"label,omitempty"`
	Size  string   `json:"size,omitempty" yaml:"size,omitempty" msgpack:"size,omitempty"`
}

// Cells expands the declaration into grid points. A run is inclusive and may
// go in either direction along one axis; a diagonal run yields only the start.
// A start outside the coordinate range yields nothing, and a run stops at
// the edge of the range.
func (d RegionDecl) Cells() []Point {
	start := Point{X: d.X, Y: d.Y}
	if !start.Valid() {
		return nil
	}
	if d.To == nil || *d.To == start {
		return []Point{start}
	}
	end := Point{X: clampAxis(d.To.X), Y: clampAxis(d.To.Y)}
	var cells []Point
	switch {
	case d.To.Y == start.Y:
		step := 1
		if end.X < start.X {
			step = -1
		}
		for x := start.X; x != end.X+step; x += step {
			cells = append(cells, Point{X: x, Y: start.Y})
		}
	case d.To.X == start.X:
		step := 1
		if end.Y < start.Y {
			step = -1
		}
		for y := start.Y; y != end.Y+step; y += step {
			cells = append(cells, Point{X: start.X, Y: y})
		}
	default:
		cells = []Point{start}
	}
	return cells
}

func clampAxis(v int) int {
	return max(0, min(v, MaxCoordinate))
}

// SplineDecl declares a connector through explicit waypoints.
type SplineDecl struct {
	Points []Point        `json:"points" yaml:"points" msgpack:"points"`
	Types  string         `json:"types" yaml:"types" msgpack:"types"`
	Label  string         `json:"label,omitempty" yaml:"label,omitempty" msgpack:"label,omitempty"`
	Side   string         `json:"side,omitempty" yaml:"side,omitempty" msgpack:"side,omitempty"`
	Start  string         `json:"start,omitempty" yaml:"start,omitempty" msgpack:"start,omitempty"`
	Curve  *CurveOverride `json:"curveOptions,omitempty" yaml:"curveOptions,omitempty" msgpack:"curveOptions,omitempty"`
}

// CurveOverride holds per-path curve settings; nil fields fall back to the
// document options.
type CurveOverride struct {
	Frequency *float64 `json:"frequency,omitempty" yaml:"frequency,omitempty" msgpack:"frequency,omitempty"`
	Depth     *float64 `json:"depth,omitempty" yaml:"depth,omitempty" msgpack:"depth,omitempty"`
	Rate      *float64 `json:"rate,omitempty" yaml:"rate,omitempty" msgpack:"rate,omitempty"`
}

// Resolve applies the override on top of base.
func (c *CurveOverride) Resolve(base CurveOptions) CurveOptions {
	if c == nil {
		return base
	}
	if c.Frequency != nil {
		base.Frequency = *c.Frequency
	}
	if c.Depth != nil {
		base.Depth = *c.Depth
	}
	if c.Rate != nil {
		base.Rate = *c.Rate
	}
	return base
}
