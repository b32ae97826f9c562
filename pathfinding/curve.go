package pathfinding

import (
	"math"
	"strings"

	"textmapper/core"
	"textmapper/geometry"
)

// SamplesPerStep is the number of pixel samples taken along each hex step.
const SamplesPerStep = 4

// DefaultCurvature is the tangent scale giving a plain Catmull-Rom spline.
const DefaultCurvature = 0.1

// Label sides understood by text-on-path renderers.
const (
	SideLeft  = "left"
	SideRight = "right"
)

// Segment is one cubic Bezier piece of a curve.
type Segment struct {
	From core.Pixel `json:"from" msgpack:"from"`
	C1   core.Pixel `json:"c1" msgpack:"c1"`
	C2   core.Pixel `json:"c2" msgpack:"c2"`
	To   core.Pixel `json:"to" msgpack:"to"`
}

// Curve is a smooth wavy line through the centres of a dense hex path.
type Curve struct {
	Samples  []core.Pixel
	tangents float64
}

// NewCurve samples dense in pixel space. Every step is displaced along its
// perpendicular by
//
//	depth * |(n.x*DX, n.y*DY)| * sin(pi*t) * sin(2*pi*(frequency*t + rate*i))
//
// where n is the unit grid normal of step i and t runs from 0 to 1, so the
// curve still passes through every hex centre. A depth of 0 gives straight
// steps.
func NewCurve(o geometry.Orientation, dense []core.Point, opts core.CurveOptions) Curve {
	curvature := opts.Curvature
	if curvature <= 0 {
		curvature = DefaultCurvature
	}
	c := Curve{tangents: curvature / DefaultCurvature}
	if len(dense) == 0 {
		return c
	}

	c.Samples = make([]core.Pixel, 0, (len(dense)-1)*SamplesPerStep+1)
	for i := 0; i+1 < len(dense); i++ {
		p, q := dense[i], dense[i+1]
		a, b := o.Pixels(p), o.Pixels(q)

		gx, gy := float64(q.X-p.X), float64(q.Y-p.Y)
		gl := math.Hypot(gx, gy)
		amplitude := 0.0
		if gl > 0 {
			nx, ny := -gy/gl, gx/gl
			amplitude = opts.Depth * math.Hypot(nx*o.DX, ny*o.DY)
		}

		dx, dy := b.X-a.X, b.Y-a.Y
		ux, uy := 0.0, 0.0
		if l := math.Hypot(dx, dy); l > 0 {
			ux, uy = -dy/l, dx/l
		}

		for k := 0; k < SamplesPerStep; k++ {
			t := float64(k) / SamplesPerStep
			w := amplitude * math.Sin(math.Pi*t) * math.Sin(2*math.Pi*(opts.Frequency*t+opts.Rate*float64(i)))
			c.Samples = append(c.Samples, core.Pixel{
				X: a.X + dx*t + ux*w,
				Y: a.Y + dy*t + uy*w,
			})
		}
	}
	c.Samples = append(c.Samples, o.Pixels(dense[len(dense)-1]))
	return c
}

// Segments returns Catmull-Rom cubic pieces joining consecutive samples.
func (c Curve) Segments() []Segment {
	n := len(c.Samples)
	if n < 2 {
		return nil
	}
	k := c.tangents / 6
	out := make([]Segment, 0, n-1)
	for i := 0; i+1 < n; i++ {
		p0 := c.Samples[geometry.Max(i-1, 0)]
		p1 := c.Samples[i]
		p2 := c.Samples[i+1]
		p3 := c.Samples[geometry.Min(i+2, n-1)]
		out = append(out, Segment{
			From: p1,
			C1:   core.Pixel{X: p1.X + (p2.X-p0.X)*k, Y: p1.Y + (p2.Y-p0.Y)*k},
			C2:   core.Pixel{X: p2.X - (p3.X-p1.X)*k, Y: p2.Y - (p3.Y-p1.Y)*k},
			To:   p2,
		})
	}
	return out
}

// PathData renders the curve as path data: "M x,y C c1 c2 to ...".
func (c Curve) PathData() string {
	if len(c.Samples) == 0 {
		return ""
	}
	var sb strings.Builder
	sb.WriteString("M")
	sb.WriteString(c.Samples[0].String())
	for _, s := range c.Segments() {
		sb.WriteString(" C")
		sb.WriteString(s.C1.String())
		sb.WriteString(" ")
		sb.WriteString(s.C2.String())
		sb.WriteString(" ")
		sb.WriteString(s.To.String())
	}
	return sb.String()
}

// LabelSide picks the side text is set on along a path. An explicit side
// always wins. Otherwise a path that travels right to left gets SideRight so
// its label is not upside down; a path with no net horizontal travel looks
// at its first steps instead. The empty string means the renderer default.
func LabelSide(o geometry.Orientation, dense []core.Point, explicit string) string {
	if explicit != "" {
		return explicit
	}
	if len(dense) < 2 {
		return ""
	}
	first := o.Pixels(dense[0])
	last := o.Pixels(dense[len(dense)-1])
	switch {
	case last.X < first.X:
		return SideRight
	case last.X > first.X:
		return ""
	}
	if dense[1].X < dense[0].X || (len(dense) > 2 && dense[2].X < dense[0].X) {
		return SideRight
	}
	return ""
}
