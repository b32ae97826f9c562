package core

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatCoordinate(t *testing.T) {
	assert.Equal(t, "0307", FormatCoordinate(3, 7))
	assert.Equal(t, "1010", Point{X: 10, Y: 10}.String())
	assert.Equal(t, "9999", FormatCoordinate(99, 99))
}

func TestParseCoordinate(t *testing.T) {
	tests := []struct {
		in   string
		want Point
		ok   bool
	}{
		{"1010", Point{X: 10, Y: 10}, true},
		{"0307", Point{X: 3, Y: 7}, true},
		{"101", Point{}, false},
		{"10101", Point{}, false},
		{"10a0", Point{}, false},
		{"", Point{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseCoordinate(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRegionLinkAndLabel(t *testing.T) {
	tests := []struct {
		label, link, display string
	}{
		{"", "", ""},
		{"Town", "Town", "Town"},
		{"Notes/Town | The Town", "Notes/Town", "The Town"},
		{"  spaced ", "spaced", "spaced"},
	}
	for _, tt := range tests {
		link, display := Region{Label: tt.label}.LinkAndLabel()
		assert.Equal(t, tt.link, link, "link for %q", tt.label)
		assert.Equal(t, tt.display, display, "display for %q", tt.label)
	}
}

func TestRegionDeclCells(t *testing.T) {
	tests := []struct {
		name string
		decl RegionDecl
		want []Point
	}{
		{"single", RegionDecl{X: 2, Y: 3}, []Point{{2, 3}}},
		{"horizontal", RegionDecl{X: 1, Y: 1, To: &Point{X: 3, Y: 1}}, []Point{{1, 1}, {2, 1}, {3, 1}}},
		{"horizontal reversed", RegionDecl{X: 3, Y: 1, To: &Point{X: 1, Y: 1}}, []Point{{3, 1}, {2, 1}, {1, 1}}},
		{"vertical", RegionDecl{X: 5, Y: 2, To: &Point{X: 5, Y: 4}}, []Point{{5, 2}, {5, 3}, {5, 4}}},
		{"diagonal", RegionDecl{X: 1, Y: 1, To: &Point{X: 3, Y: 3}}, []Point{{1, 1}}},
		{"same cell", RegionDecl{X: 4, Y: 4, To: &Point{X: 4, Y: 4}}, []Point{{4, 4}}},
		{"run stops at the edge", RegionDecl{X: 97, Y: 1, To: &Point{X: 300000, Y: 1}}, []Point{{97, 1}, {98, 1}, {99, 1}}},
		{"run stops at zero", RegionDecl{X: 1, Y: 2, To: &Point{X: 1, Y: -50}}, []Point{{1, 2}, {1, 1}, {1, 0}}},
		{"run to max int", RegionDecl{X: 99, Y: 5, To: &Point{X: math.MaxInt, Y: 5}}, []Point{{99, 5}}},
		{"start out of range", RegionDecl{X: 100, Y: 1}, nil},
		{"negative start", RegionDecl{X: -1, Y: 1, To: &Point{X: 3, Y: 1}}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.decl.Cells())
		})
	}
}

func TestPointValid(t *testing.T) {
	assert.True(t, Point{0, 0}.Valid())
	assert.True(t, Point{99, 99}.Valid())
	assert.False(t, Point{100, 0}.Valid())
	assert.False(t, Point{0, -1}.Valid())
}

func TestCurveOverrideResolve(t *testing.T) {
	base := CurveOptions{Frequency: 1, Depth: 0.1, Rate: 0.1}

	var none *CurveOverride
	assert.Equal(t, base, none.Resolve(base))

	depth := 0.5
	got := (&CurveOverride{Depth: &depth}).Resolve(base)
	require.Equal(t, 0.5, got.Depth)
	assert.Equal(t, 1.0, got.Frequency)
	assert.Equal(t, 0.1, got.Rate)
}

func TestSplineAddPoint(t *testing.T) {
	var s Spline
	s.AddPoint(1, 2)
	s.AddPoint(3, 4)
	assert.Equal(t, []Point{{1, 2}, {3, 4}}, s.Points)
}

func TestPixelString(t *testing.T) {
	assert.Equal(t, "150.0,-86.6", Pixel{X: 150, Y: -86.6025}.String())
}
