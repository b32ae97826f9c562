// Package pathfinding turns sparse spline waypoints into walkable hex paths
// and the smooth curves drawn along them.
package pathfinding

import (
	"errors"
	"fmt"

	"textmapper/core"
	"textmapper/geometry"
)

// ErrNotConverged is the kind of RoutingError returned when the greedy walk
// cannot reach its target.
var ErrNotConverged = errors.New("path did not converge")

// RoutingError reports a segment the router gave up on.
type RoutingError struct {
	From  core.Point
	To    core.Point
	Steps int
	Kind  error
}

func (e *RoutingError) Error() string {
	return fmt.Sprintf("route %s -> %s: %v after %d steps", e.From, e.To, e.Kind, e.Steps)
}

func (e *RoutingError) Unwrap() error {
	return e.Kind
}

// Metric selects how the router measures the remaining distance to a target.
type Metric int

const (
	// GridMetric compares squared offset-coordinate distances.
	GridMetric Metric = iota
	// PixelMetric compares squared distances between hex centres.
	PixelMetric
)

// Router walks from waypoint to waypoint one neighbour at a time.
type Router struct {
	orientation geometry.Orientation
	metric      Metric
	stepLimit   int
	cache       *RouteCache
}

// Option configures a Router.
type Option func(*Router)

// WithMetric sets the distance metric. The default is GridMetric.
func WithMetric(m Metric) Option {
	return func(r *Router) { r.metric = m }
}

// WithStepLimit caps the number of steps per segment. Zero or less restores
// the default, which grows with the distance between the two waypoints.
func WithStepLimit(n int) Option {
	return func(r *Router) { r.stepLimit = n }
}

// WithCache shares a route cache between routers of the same orientation.
func WithCache(c *RouteCache) Option {
	return func(r *Router) { r.cache = c }
}

// NewRouter creates a router for the given grid orientation.
func NewRouter(o geometry.Orientation, opts ...Option) *Router {
	r := &Router{orientation: o}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Orientation returns the grid the router walks on.
func (r *Router) Orientation() geometry.Orientation {
	return r.orientation
}

// OneStep returns the neighbour of from closest to to. Ties go to the
// neighbour listed first by geometry.Orientation.Neighbors.
func (r *Router) OneStep(from, to core.Point) core.Point {
	var best core.Point
	bestDist := -1.0
	for _, n := range r.orientation.Neighbors(from) {
		d := r.distance(n, to)
		if bestDist < 0 || d < bestDist {
			bestDist = d
			best = n
		}
	}
	return best
}

func (r *Router) distance(a, b core.Point) float64 {
	if r.metric == PixelMetric {
		pa, pb := r.orientation.Pixels(a), r.orientation.Pixels(b)
		dx, dy := pa.X-pb.X, pa.Y-pb.Y
		return dx*dx + dy*dy
	}
	dx, dy := float64(a.X-b.X), float64(a.Y-b.Y)
	return dx*dx + dy*dy
}

// ComputeMissingPoints fills the gaps between waypoints so that every pair of
// consecutive points in the result is adjacent. The first waypoint is kept
// and each later one appears once it is reached; repeated waypoints are
// skipped. A segment that revisits a cell or runs past the step limit fails
// with a *RoutingError.
func (r *Router) ComputeMissingPoints(waypoints []core.Point) ([]core.Point, error) {
	if len(waypoints) == 0 {
		return nil, nil
	}
	current := waypoints[0]
	result := []core.Point{current}
	for _, target := range waypoints[1:] {
		if target == current {
			continue
		}
		segment, err := r.segment(current, target)
		if err != nil {
			return result, err
		}
		result = append(result, segment...)
		current = target
	}
	return result, nil
}

// segment returns the cells after from up to and including to.
func (r *Router) segment(from, to core.Point) ([]core.Point, error) {
	if r.cache != nil {
		if cached, ok := r.cache.Get(r.key(from, to)); ok {
			return cached, nil
		}
	}

	limit := r.limit(from, to)
	visited := map[core.Point]bool{from: true}
	var out []core.Point
	current := from
	for current != to {
		if len(out) >= limit {
			return nil, &RoutingError{From: from, To: to, Steps: len(out), Kind: ErrNotConverged}
		}
		current = r.OneStep(current, to)
		if visited[current] {
			return nil, &RoutingError{From: from, To: to, Steps: len(out) + 1, Kind: ErrNotConverged}
		}
		visited[current] = true
		out = append(out, current)
	}

	if r.cache != nil {
		r.cache.Put(r.key(from, to), out)
	}
	return out, nil
}

func (r *Router) key(from, to core.Point) RouteKey {
	limit := max(r.stepLimit, 0)
	return RouteKey{
		From:      from,
		To:        to,
		Tiling:    r.orientation.Tiling(),
		Parity:    r.orientation.Parity(),
		Metric:    r.metric,
		StepLimit: limit,
	}
}

func (r *Router) limit(from, to core.Point) int {
	if r.stepLimit > 0 {
		return r.stepLimit
	}
	return 4*r.orientation.Distance(from, to) + 4
}
