package layout

import (
	"sort"

	"textmapper/core"
	"textmapper/geometry"
	"textmapper/labels"
	"textmapper/pathfinding"
)

// Namespace turns a local id into a document-unique one.
type Namespace func(what string) string

// Global leaves ids untouched.
func Global(what string) string { return what }

// Scoped returns a Namespace suffixing ids with "-"+docID.
func Scoped(docID string) Namespace {
	return func(what string) string { return what + "-" + docID }
}

// Builder lays out regions and splines on one grid.
type Builder struct {
	orientation geometry.Orientation
	resolver    *labels.Resolver
	namespace   Namespace
	types       map[string]TypeDef
}

// NewBuilder creates a builder. A nil namespace means Global.
func NewBuilder(o geometry.Orientation, resolver *labels.Resolver, namespace Namespace) *Builder {
	if namespace == nil {
		namespace = Global
	}
	return &Builder{
		orientation: o,
		resolver:    resolver,
		namespace:   namespace,
		types:       make(map[string]TypeDef),
	}
}

// Groups returns the namespaced layer group ids.
func (b *Builder) Groups() Groups {
	return Groups{
		Backgrounds: b.namespace("backgrounds"),
		Paths:       b.namespace("paths"),
		Things:      b.namespace("things"),
		Coordinates: b.namespace("coordinates"),
		Regions:     b.namespace("regions"),
		PathLabels:  b.namespace("path-labels"),
		Labels:      b.namespace("labels"),
	}
}

// DefineTypes records a definition for every used type that has attributes
// or a path, sorted by name. Later calls to Region use them to split types
// into backgrounds and things.
func (b *Builder) DefineTypes(used []string, attributes map[string]map[string]string, paths map[string]string) []TypeDef {
	names := make([]string, 0, len(used))
	seen := make(map[string]bool, len(used))
	for _, t := range used {
		if !seen[t] {
			seen[t] = true
			names = append(names, t)
		}
	}
	sort.Strings(names)

	var defs []TypeDef
	for _, name := range names {
		attrs, hasAttrs := attributes[name]
		path, hasPath := paths[name]
		if !hasAttrs && !hasPath {
			continue
		}
		def := TypeDef{Type: name, ID: b.namespace(name), Path: path}
		if hasAttrs {
			def.Attributes = attrs
			if def.Attributes == nil {
				def.Attributes = map[string]string{}
			}
		}
		b.types[name] = def
		defs = append(defs, def)
	}
	return defs
}

// Region lays out one hex.
func (b *Builder) Region(r core.Region) RegionLayout {
	p := r.Point()
	o := b.orientation
	polygon := o.Polygon(p)
	link, display := r.LinkAndLabel()

	out := RegionLayout{
		ID:               b.namespace(r.ID),
		Point:            p,
		Z:                r.Z,
		Coordinate:       r.Coordinate(),
		Centre:           o.Pixels(p),
		Polygon:          polygon[:],
		CoordinateLabel:  b.resolver.Resolve(p),
		CoordinateAnchor: o.PixelsOffset(p, 0, -o.DY*o.LabelOffset),
		Label:            display,
		Link:             link,
		FontSize:         r.Size,
		LabelAnchor:      o.PixelsOffset(p, 0, o.DY*o.LabelOffset),
	}
	for _, t := range r.Types {
		def, ok := b.types[t]
		switch {
		case !ok:
		case def.Background():
			out.Backgrounds = append(out.Backgrounds, t)
		default:
			out.Things = append(out.Things, t)
		}
	}
	return out
}

// Spline lays out one spline from its routed cells. When routing failed,
// routeErr is recorded and the waypoints are drawn as they are.
func (b *Builder) Spline(s core.Spline, cells []core.Point, routeErr error) SplineLayout {
	out := SplineLayout{
		ID:        b.namespace(s.ID),
		Type:      s.Types,
		Label:     s.Label,
		Start:     s.Start,
		Waypoints: s.Points,
		Cells:     cells,
	}
	if routeErr != nil {
		out.Error = routeErr.Error()
		out.Cells = s.Points
	}
	curve := pathfinding.NewCurve(b.orientation, out.Cells, s.Curve)
	out.Samples = curve.Samples
	out.Segments = curve.Segments()
	out.PathData = curve.PathData()
	out.Side = pathfinding.LabelSide(b.orientation, out.Cells, s.Side)
	return out
}

// Viewbox returns the bounds of the given regions.
func (b *Builder) Viewbox(regions []RegionLayout) geometry.Viewbox {
	points := make([]core.Point, len(regions))
	for i, r := range regions {
		points[i] = r.Point
	}
	return b.orientation.Viewbox(points)
}
