// Package hexflower computes the 19-cell layout of a hex flower and the labels
// its cells get when several flowers tile a larger flower of super-hexes.
package hexflower

import (
	"regexp"
	"strconv"

	"textmapper/core"
	"textmapper/geometry"
)

// Slot numbers: 1 is the centre, 2-7 the inner ring clockwise from North and
// 8-19 the outer ring clockwise from the cell north-west of North.
const (
	CenterSlot = 1
	innerFirst = 2
	outerFirst = 8
	Slots      = 19

	// Radius is the number of cells a flower reaches from its centre along
	// either axis.
	Radius = 2
)

// Positions holds one grid offset per slot; index 0 is slot 1.
type Positions [Slots]core.Point

// Slot returns the offset of slot n (1-19).
func (p Positions) Slot(n int) core.Point {
	return p[n-1]
}

// BasePositions is the unrotated flower around an even-column centre of a
// flat-top grid. Positive Y points down.
var BasePositions = Positions{
	{0, 0},
	{0, -1}, {1, 0}, {1, 1}, {0, 1}, {-1, 1}, {-1, 0},
	{-1, -1}, {0, -2}, {1, -1}, {2, -1}, {2, 0}, {2, 1},
	{1, 2}, {0, 2}, {-1, 2}, {-2, 1}, {-2, 0}, {-2, -1},
}

// RotatePositions relabels the slots so that slot 2 faces startDir. The inner
// ring turns one cell per step and the outer ring two. Counterclockwise
// flowers are mirrored about the North axis before turning.
func RotatePositions(base Positions, startDir Direction, counterclockwise bool) Positions {
	s := startDir.Steps()
	var out Positions
	out[0] = base[0]
	for i := 0; i < 6; i++ {
		src := geometry.Mod(i+s, 6)
		if counterclockwise {
			src = geometry.Mod(s-i, 6)
		}
		out[innerFirst-1+i] = base[innerFirst-1+src]
	}
	for m := 0; m < 12; m++ {
		src := geometry.Mod(m+2*s, 12)
		if counterclockwise {
			src = geometry.Mod(2+2*s-m, 12)
		}
		out[outerFirst-1+m] = base[outerFirst-1+src]
	}
	return out
}

// IsConnector reports whether an outer slot is a corner of the ring, the
// cells that face a neighbouring super-hex.
func IsConnector(slot int) bool {
	return slot >= outerFirst && slot <= Slots && slot%2 == 1
}

// outerNumber compresses the twelve outer slots onto six numbers, 8-13, one
// per compass direction.
func outerNumber(slot int) int {
	return outerFirst + (slot-outerFirst)/2
}

var centerPattern = regexp.MustCompile(`^\d{4}$`)

// canonical is the grid BasePositions is expressed in.
var canonical = geometry.NewOrientation(geometry.FlatTop, geometry.NormalParity)

// Calculator places flowers on a grid of a given orientation.
type Calculator struct {
	orientation geometry.Orientation
}

// NewCalculator creates a calculator for the given grid orientation.
func NewCalculator(o geometry.Orientation) *Calculator {
	return &Calculator{orientation: o}
}

var defaultCalculator = NewCalculator(canonical)

// CalculateHexFlower computes a flower on a flat-top grid with normal parity.
func CalculateHexFlower(letter, center string, counterclockwise bool, startDir Direction, relabel bool) []core.HexMapping {
	return defaultCalculator.Calculate(letter, center, counterclockwise, startDir, relabel)
}

// Calculate returns the 19 mappings of the flower for super-hex letter
// centred on center ("XXYY"), in slot order. A malformed centre yields nil.
//
// With relabel set, connector cells that face another super-hex display the
// pair of letters, e.g. "BI" for the cell of B that borders I. All other
// outer cells display the compressed number of their direction.
func (c *Calculator) Calculate(letter, center string, counterclockwise bool, startDir Direction, relabel bool) []core.HexMapping {
	if !centerPattern.MatchString(center) {
		return nil
	}
	origin, _ := core.ParseCoordinate(center)
	originAxial := c.orientation.ToAxial(origin)

	positions := RotatePositions(BasePositions, startDir, counterclockwise)
	mappings := make([]core.HexMapping, 0, Slots)
	for slot := CenterSlot; slot <= Slots; slot++ {
		delta := canonical.ToAxial(positions.Slot(slot))
		cell := c.orientation.FromAxial(originAxial.Add(delta))
		mappings = append(mappings, core.HexMapping{
			DisplayValue: displayValue(letter, slot, counterclockwise, startDir, relabel),
			Coordinate:   core.FormatCoordinate(cell.X, cell.Y),
		})
	}
	return mappings
}

func displayValue(letter string, slot int, counterclockwise bool, startDir Direction, relabel bool) string {
	if slot < outerFirst {
		return letter + strconv.Itoa(slot)
	}
	if relabel && IsConnector(slot) {
		position := (slot - (outerFirst + 1)) / 2
		if n, ok := neighbor(letter, position, counterclockwise, startDir); ok && n != OpenBorder {
			return letter + n
		}
	}
	return letter + strconv.Itoa(outerNumber(slot))
}
