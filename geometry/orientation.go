// Package geometry maps offset hex grid coordinates to pixel space.
package geometry

import (
	"math"

	"textmapper/core"
)

// Radius is the distance from a hex centre to each of its corners, in pixels.
const Radius = 100.0

// Tiling selects how hexes are laid out.
type Tiling int

const (
	// FlatTop hexes stack in columns; odd and even columns are staggered.
	FlatTop Tiling = iota
	// PointyTop hexes stack in rows; odd and even rows are staggered.
	PointyTop
)

// String returns the string representation of a Tiling.
func (t Tiling) String() string {
	switch t {
	case FlatTop:
		return "flat-top"
	case PointyTop:
		return "pointy-top"
	default:
		return "unknown"
	}
}

// Parity selects which of the staggered columns (or rows) is shifted up (or left).
type Parity int

const (
	// NormalParity shifts odd columns (rows) by half a hex.
	NormalParity Parity = iota
	// SwappedParity shifts even columns (rows) instead.
	SwappedParity
)

// Axial is a hex coordinate in the axial system, where neighbour deltas do
// not depend on parity.
type Axial struct {
	Q, R int
}

// Add returns the component-wise sum.
func (a Axial) Add(b Axial) Axial {
	return Axial{Q: a.Q + b.Q, R: a.R + b.R}
}

// Sub returns the component-wise difference.
func (a Axial) Sub(b Axial) Axial {
	return Axial{Q: a.Q - b.Q, R: a.R - b.R}
}

// variant bundles the mapping functions for one Tiling x Parity combination.
type variant struct {
	toPixel   func(p core.Point, dx, dy float64) core.Pixel
	toAxial   func(p core.Point) Axial
	fromAxial func(a Axial) core.Point
}

var variants = [2][2]variant{
	FlatTop: {
		NormalParity: {
			toPixel: func(p core.Point, dx, dy float64) core.Pixel {
				return core.Pixel{X: float64(p.X) * dx * 3 / 2, Y: float64(p.Y)*dy - shift(isOdd(p.X))*dy/2}
			},
			toAxial: func(p core.Point) Axial {
				return Axial{Q: p.X, R: p.Y - (p.X+(p.X&1))/2}
			},
			fromAxial: func(a Axial) core.Point {
				return core.Point{X: a.Q, Y: a.R + (a.Q+(a.Q&1))/2}
			},
		},
		SwappedParity: {
			toPixel: func(p core.Point, dx, dy float64) core.Pixel {
				return core.Pixel{X: float64(p.X) * dx * 3 / 2, Y: float64(p.Y)*dy - shift(!isOdd(p.X))*dy/2}
			},
			toAxial: func(p core.Point) Axial {
				return Axial{Q: p.X, R: p.Y - (p.X-(p.X&1))/2}
			},
			fromAxial: func(a Axial) core.Point {
				return core.Point{X: a.Q, Y: a.R + (a.Q-(a.Q&1))/2}
			},
		},
	},
	PointyTop: {
		NormalParity: {
			toPixel: func(p core.Point, dx, dy float64) core.Pixel {
				return core.Pixel{X: float64(p.X)*dx - shift(isOdd(p.Y))*dx/2, Y: float64(p.Y) * dy * 3 / 2}
			},
			toAxial: func(p core.Point) Axial {
				return Axial{Q: p.X - (p.Y+(p.Y&1))/2, R: p.Y}
			},
			fromAxial: func(a Axial) core.Point {
				return core.Point{X: a.Q + (a.R+(a.R&1))/2, Y: a.R}
			},
		},
		SwappedParity: {
			toPixel: func(p core.Point, dx, dy float64) core.Pixel {
				return core.Pixel{X: float64(p.X)*dx - shift(!isOdd(p.Y))*dx/2, Y: float64(p.Y) * dy * 3 / 2}
			},
			toAxial: func(p core.Point) Axial {
				return Axial{Q: p.X - (p.Y-(p.Y&1))/2, R: p.Y}
			},
			fromAxial: func(a Axial) core.Point {
				return core.Point{X: a.Q + (a.R-(a.R&1))/2, Y: a.R}
			},
		},
	},
}

func shift(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

// Axial neighbour deltas in the order the router tries them.
var (
	// NW, N, NE, SE, S, SW
	flatDirections = [6]Axial{{-1, 0}, {0, -1}, {1, -1}, {1, 0}, {0, 1}, {-1, 1}}
	// NW, NE, E, SE, SW, W
	pointyDirections = [6]Axial{{0, -1}, {1, -1}, {1, 0}, {0, 1}, {-1, 1}, {-1, 0}}
)

// Orientation is an immutable description of the grid layout.
type Orientation struct {
	tiling      Tiling
	parity      Parity
	DX          float64 // horizontal pixel delta
	DY          float64 // vertical pixel delta
	LabelOffset float64 // fraction of DY between centre and label baseline
}

// NewOrientation returns the orientation for the given tiling and parity.
func NewOrientation(t Tiling, p Parity) Orientation {
	o := Orientation{tiling: t, parity: p}
	if t == PointyTop {
		o.DX = Radius * math.Sqrt(3)
		o.DY = Radius
		o.LabelOffset = 0.6
	} else {
		o.DX = Radius
		o.DY = Radius * math.Sqrt(3)
		o.LabelOffset = 0.4
	}
	return o
}

// FromFlags builds an orientation from the two document booleans.
func FromFlags(flatTop, swapEvenOdd bool) Orientation {
	t, p := PointyTop, NormalParity
	if flatTop {
		t = FlatTop
	}
	if swapEvenOdd {
		p = SwappedParity
	}
	return NewOrientation(t, p)
}

// Tiling returns the tiling of the orientation.
func (o Orientation) Tiling() Tiling { return o.tiling }

// Parity returns the parity of the orientation.
func (o Orientation) Parity() Parity { return o.parity }

// FlatTop reports whether hexes have a flat top edge.
func (o Orientation) FlatTop() bool { return o.tiling == FlatTop }

// SwapEvenOdd reports whether the stagger parity is swapped.
func (o Orientation) SwapEvenOdd() bool { return o.parity == SwappedParity }

func (o Orientation) variant() variant {
	return variants[o.tiling][o.parity]
}

// Pixels returns the pixel position of the centre of p.
func (o Orientation) Pixels(p core.Point) core.Pixel {
	return o.variant().toPixel(p, o.DX, o.DY)
}

// PixelsOffset returns the pixel position of p moved by (addX, addY).
func (o Orientation) PixelsOffset(p core.Point, addX, addY float64) core.Pixel {
	px := o.Pixels(p)
	return core.Pixel{X: px.X + addX, Y: px.Y + addY}
}

// Grid returns the cell whose centre is nearest to px. It is the inverse of Pixels.
func (o Orientation) Grid(px core.Pixel) core.Point {
	var guess core.Point
	if o.tiling == FlatTop {
		guess.X = int(math.Round(px.X / (o.DX * 3 / 2)))
	} else {
		guess.Y = int(math.Round(px.Y / (o.DY * 3 / 2)))
	}

	best := core.Point{}
	bestDist := math.Inf(1)
	for delta := -1; delta <= 1; delta++ {
		var candidate core.Point
		if o.tiling == FlatTop {
			candidate.X = guess.X + delta
			base := o.Pixels(core.Point{X: candidate.X})
			candidate.Y = int(math.Round((px.Y - base.Y) / o.DY))
		} else {
			candidate.Y = guess.Y + delta
			base := o.Pixels(core.Point{Y: candidate.Y})
			candidate.X = int(math.Round((px.X - base.X) / o.DX))
		}
		centre := o.Pixels(candidate)
		d := squared(centre.X-px.X, centre.Y-px.Y)
		if d < bestDist {
			bestDist = d
			best = candidate
		}
	}
	return best
}

// HexCorners returns the six corner offsets of a hex relative to its centre.
func (o Orientation) HexCorners() [6]core.Pixel {
	if o.tiling == PointyTop {
		return [6]core.Pixel{
			{X: 0, Y: -o.DY},
			{X: o.DX / 2, Y: -o.DY / 2},
			{X: o.DX / 2, Y: o.DY / 2},
			{X: 0, Y: o.DY},
			{X: -o.DX / 2, Y: o.DY / 2},
			{X: -o.DX / 2, Y: -o.DY / 2},
		}
	}
	return [6]core.Pixel{
		{X: -o.DX, Y: 0},
		{X: -o.DX / 2, Y: o.DY / 2},
		{X: o.DX / 2, Y: o.DY / 2},
		{X: o.DX, Y: 0},
		{X: o.DX / 2, Y: -o.DY / 2},
		{X: -o.DX / 2, Y: -o.DY / 2},
	}
}

// Polygon returns the absolute corner positions of the hex at p.
func (o Orientation) Polygon(p core.Point) [6]core.Pixel {
	centre := o.Pixels(p)
	corners := o.HexCorners()
	for i := range corners {
		corners[i].X += centre.X
		corners[i].Y += centre.Y
	}
	return corners
}

// ToAxial converts an offset coordinate to axial form.
func (o Orientation) ToAxial(p core.Point) Axial {
	return o.variant().toAxial(p)
}

// FromAxial converts an axial coordinate back to offset form.
func (o Orientation) FromAxial(a Axial) core.Point {
	return o.variant().fromAxial(a)
}

// Directions returns the six axial neighbour deltas in routing order.
func (o Orientation) Directions() [6]Axial {
	if o.tiling == PointyTop {
		return pointyDirections
	}
	return flatDirections
}

// Neighbors returns the six cells adjacent to p. For flat-top grids the order
// is NW, N, NE, SE, S, SW; for pointy-top grids NW, NE, E, SE, SW, W.
func (o Orientation) Neighbors(p core.Point) [6]core.Point {
	v := o.variant()
	a := v.toAxial(p)
	var out [6]core.Point
	for i, d := range o.Directions() {
		out[i] = v.fromAxial(a.Add(d))
	}
	return out
}

// Distance returns the number of steps between two cells.
func (o Orientation) Distance(a, b core.Point) int {
	d := o.ToAxial(a).Sub(o.ToAxial(b))
	return Max(Abs(d.Q), Max(Abs(d.R), Abs(d.Q+d.R)))
}

// Viewbox is a bounding box in pixel space.
type Viewbox struct {
	MinX float64 `json:"minX" msgpack:"minX"`
	MinY float64 `json:"minY" msgpack:"minY"`
	MaxX float64 `json:"maxX" msgpack:"maxX"`
	MaxY float64 `json:"maxY" msgpack:"maxY"`
}

// Width returns the horizontal extent.
func (v Viewbox) Width() float64 { return v.MaxX - v.MinX }

// Height returns the vertical extent.
func (v Viewbox) Height() float64 { return v.MaxY - v.MinY }

// IsEmpty reports whether the viewbox covers no area.
func (v Viewbox) IsEmpty() bool { return v.Width() <= 0 || v.Height() <= 0 }

// Viewbox returns the bounds of every corner of every given cell.
// An empty input yields the zero Viewbox.
func (o Orientation) Viewbox(points []core.Point) Viewbox {
	if len(points) == 0 {
		return Viewbox{}
	}
	v := Viewbox{MinX: math.Inf(1), MinY: math.Inf(1), MaxX: math.Inf(-1), MaxY: math.Inf(-1)}
	for _, p := range points {
		for _, c := range o.Polygon(p) {
			v.MinX = math.Min(v.MinX, c.X)
			v.MinY = math.Min(v.MinY, c.Y)
			v.MaxX = math.Max(v.MaxX, c.X)
			v.MaxY = math.Max(v.MaxY, c.Y)
		}
	}
	return v
}

func squared(dx, dy float64) float64 {
	return dx*dx + dy*dy
}
