// Package mapper turns a document into a laid out map. A Session runs the
// three passes over a document: options first, then hex flowers, then
// regions and splines.
package mapper

import (
	"fmt"
	"strconv"

	"github.com/google/uuid"

	"textmapper/config"
	"textmapper/core"
	"textmapper/hexflower"
	"textmapper/labels"
	"textmapper/layout"
	"textmapper/pathfinding"
)

// Session processes documents. Each call to Process builds a fresh label
// table, so a session never carries labels from one document into the
// next. A Session is not safe for concurrent use; use one per goroutine.
type Session struct {
	base      config.Options
	strict    bool
	metric    pathfinding.Metric
	stepLimit int
	cache     *pathfinding.RouteCache
	newID     func() string
}

// Option configures a Session.
type Option func(*Session)

// WithOptions sets the options documents start from, e.g. ones loaded with
// config.Load. The default is config.Default().
func WithOptions(o config.Options) Option {
	return func(s *Session) { s.base = o }
}

// WithStrictRouting makes a spline that cannot be routed fail the whole
// document instead of being drawn through its bare waypoints.
func WithStrictRouting() Option {
	return func(s *Session) { s.strict = true }
}

// WithMetric selects the router's distance metric.
func WithMetric(m pathfinding.Metric) Option {
	return func(s *Session) { s.metric = m }
}

// WithStepLimit caps the router's steps per segment.
func WithStepLimit(n int) Option {
	return func(s *Session) { s.stepLimit = n }
}

// WithRouteCache shares routed segments between documents. The cache is
// safe to share between sessions.
func WithRouteCache(c *pathfinding.RouteCache) Option {
	return func(s *Session) { s.cache = c }
}

// WithIDGenerator sets the source of ids for documents that have none.
func WithIDGenerator(f func() string) Option {
	return func(s *Session) { s.newID = f }
}

// NewSession creates a session.
func NewSession(opts ...Option) *Session {
	s := &Session{
		base:  config.Default(),
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Process lays out doc. Only a routing failure under WithStrictRouting is
// an error; everything else the session cannot use is logged and skipped.
func (s *Session) Process(doc *core.Document) (*layout.Map, error) {
	if doc == nil {
		return nil, fmt.Errorf("process: nil document")
	}
	log := Logger()

	id := doc.ID
	if id == "" {
		id = s.newID()
	}

	// Options pass.
	opts := s.base
	var flowers []config.Flower
	var maps []string
	for _, decl := range doc.Options {
		switch config.NormalizeKey(decl.Key) {
		case config.KeyHexFlower:
			f, err := config.ParseFlower(decl)
			if err != nil {
				log.Warn("ignoring hexflower", "document", id, "error", err)
				continue
			}
			flowers = append(flowers, f)
		case config.KeyMap:
			maps = append(maps, decl.Value)
		default:
			if err := opts.Apply(decl); err != nil {
				log.Warn("ignoring option", "document", id, "error", err)
			}
		}
	}

	resolver := labels.NewResolver(opts.CoordinatesFormat)
	for _, m := range maps {
		if err := resolver.ParseMap(m); err != nil {
			log.Warn("ignoring map entries", "document", id, "error", err)
		}
	}

	// Flower pass, with the final options.
	orientation := opts.Orientation()
	calc := hexflower.NewCalculator(orientation)
	for _, f := range flowers {
		mappings := calc.Calculate(f.Letter, f.Center, opts.Counterclockwise, opts.FlowerStart, opts.Relabel)
		if len(mappings) == 0 {
			log.Warn("skipping hexflower with invalid center", "document", id, "letter", f.Letter, "center", f.Center)
			continue
		}
		addFlower(resolver, mappings, id, f.Letter)
	}

	// Region and spline pass.
	namespace := layout.Scoped(id)
	if opts.Global {
		namespace = layout.Global
	}
	b := layout.NewBuilder(orientation, resolver, namespace)

	regions := expandRegions(doc.Regions, id)
	splines := makeSplines(doc.Splines, opts.Curve, id)
	var used []string
	for _, r := range regions {
		used = append(used, r.Types...)
	}
	for _, sp := range splines {
		used = append(used, sp.Types)
	}

	m := &layout.Map{
		ID:          id,
		Tiling:      orientation.Tiling().String(),
		SwapEvenOdd: orientation.SwapEvenOdd(),
		Groups:      b.Groups(),
		Types:       b.DefineTypes(used, doc.Attributes, doc.Paths),
		Defs:        namespaceDefs(doc.Defs, namespace),
		Style: layout.Style{
			Region: doc.Attributes["default"],
			Path:   doc.PathAttributes,
			Text:   doc.Text,
			Label:  doc.Label,
			Glow:   doc.Glow,
		},
		Options: summarize(opts),
	}
	corners := orientation.HexCorners()
	m.HexCorners = corners[:]

	m.Regions = make([]layout.RegionLayout, 0, len(regions))
	for _, r := range regions {
		m.Regions = append(m.Regions, b.Region(r))
	}
	m.Viewbox = b.Viewbox(m.Regions)

	router := pathfinding.NewRouter(orientation,
		pathfinding.WithMetric(s.metric),
		pathfinding.WithStepLimit(s.stepLimit),
		pathfinding.WithCache(s.cache),
	)
	m.Splines = make([]layout.SplineLayout, 0, len(splines))
	for _, sp := range splines {
		if len(sp.Points) == 0 {
			log.Warn("skipping spline without points", "document", id, "spline", sp.ID)
			continue
		}
		cells, err := router.ComputeMissingPoints(sp.Points)
		if err != nil {
			if s.strict {
				return nil, fmt.Errorf("spline %s: %w", sp.ID, err)
			}
			log.Warn("drawing unrouted spline", "document", id, "spline", sp.ID, "error", err)
		}
		m.Splines = append(m.Splines, b.Spline(sp, cells, err))
	}
	m.Labels = resolver.Mappings()

	log.Debug("processed document", "document", id,
		"regions", len(m.Regions), "splines", len(m.Splines), "labels", resolver.Len())
	return m, nil
}

// Process lays out doc with a new session.
func Process(doc *core.Document, opts ...Option) (*layout.Map, error) {
	return NewSession(opts...).Process(doc)
}

// addFlower adds the cells of a flower that fit the map. A flower replaces
// explicit map entries for the same cells.
func addFlower(resolver *labels.Resolver, mappings []core.HexMapping, id, letter string) {
	log := Logger()
	var outside int
	for _, m := range mappings {
		if _, ok := core.ParseCoordinate(m.Coordinate); !ok {
			outside++
			continue
		}
		if old, ok := resolver.Lookup(m.Coordinate); ok && old != m.DisplayValue {
			log.Debug("hexflower replaces map entry", "document", id, "coordinate", m.Coordinate, "old", old, "new", m.DisplayValue)
		}
		resolver.AddMapping(m.DisplayValue, m.Coordinate)
	}
	if outside > 0 {
		log.Warn("hexflower runs off the map", "document", id, "letter", letter, "dropped", outside)
	}
}

func expandRegions(decls []core.RegionDecl, id string) []core.Region {
	var out []core.Region
	for i, d := range decls {
		cells := d.Cells()
		if len(cells) == 0 {
			Logger().Warn("skipping region outside the map", "document", id, "region", i, "x", d.X, "y", d.Y)
		}
		for _, p := range cells {
			out = append(out, core.Region{
				X:     p.X,
				Y:     p.Y,
				Z:     d.Z,
				Types: d.Types,
				Label: d.Label,
				Size:  d.Size,
				ID:    fmt.Sprintf("hex.%d.%d", p.X, p.Y),
			})
		}
	}
	return out
}

func makeSplines(decls []core.SplineDecl, curve core.CurveOptions, id string) []core.Spline {
	out := make([]core.Spline, 0, len(decls))
	for i, d := range decls {
		sp := core.Spline{
			ID:    "path-" + strconv.Itoa(i+1),
			Types: d.Types,
			Label: d.Label,
			Side:  d.Side,
			Start: d.Start,
			Curve: d.Curve.Resolve(curve),
		}
		for _, p := range d.Points {
			if !p.Valid() {
				Logger().Warn("skipping waypoint outside the map", "document", id, "spline", sp.ID, "x", p.X, "y", p.Y)
				continue
			}
			sp.AddPoint(p.X, p.Y)
		}
		out = append(out, sp)
	}
	return out
}

func summarize(o config.Options) map[string]string {
	return map[string]string{
		config.KeyFlowerStart:       o.FlowerStart.String(),
		config.KeyCounterclockwise:  strconv.FormatBool(o.Counterclockwise),
		config.KeyRelabel:           strconv.FormatBool(o.Relabel),
		config.KeyCoordinatesFormat: o.CoordinatesFormat,
		config.KeyHorizontal:        strconv.FormatBool(o.Horizontal),
		config.KeySwapEvenOdd:       strconv.FormatBool(o.SwapEvenOdd),
		config.KeyGlobal:            strconv.FormatBool(o.Global),
		config.KeyPathFrequency:     strconv.FormatFloat(o.Curve.Frequency, 'g', -1, 64),
		config.KeyPathDepth:         strconv.FormatFloat(o.Curve.Depth, 'g', -1, 64),
		config.KeyPathRate:          strconv.FormatFloat(o.Curve.Rate, 'g', -1, 64),
		config.KeyPathCurvature:     strconv.FormatFloat(o.Curve.Curvature, 'g', -1, 64),
	}
}
