package layout

import (
	"errors"
	"testing"

	"textmapper/core"
	"textmapper/geometry"
	"textmapper/labels"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBuilder(ns Namespace) *Builder {
	return NewBuilder(geometry.NewOrientation(geometry.FlatTop, geometry.NormalParity), labels.NewResolver(""), ns)
}

func TestNamespaces(t *testing.T) {
	assert.Equal(t, "hex.1.1", Global("hex.1.1"))
	assert.Equal(t, "hex.1.1-doc", Scoped("doc")("hex.1.1"))

	g := newBuilder(Scoped("d1")).Groups()
	assert.Equal(t, "backgrounds-d1", g.Backgrounds)
	assert.Equal(t, "path-labels-d1", g.PathLabels)
	assert.Equal(t, "labels", newBuilder(nil).Groups().Labels)
}

func TestDefineTypes(t *testing.T) {
	b := newBuilder(Scoped("d"))
	defs := b.DefineTypes(
		[]string{"swamp", "forest", "house", "forest", "river", "unknown"},
		map[string]map[string]string{"forest": {"fill": "green"}, "swamp": nil, "sea": {"fill": "blue"}},
		map[string]string{"house": "M 0,0 l 10,10", "forest": "M 1,1"},
	)
	require.Len(t, defs, 3)
	assert.Equal(t, []string{"forest", "house", "swamp"}, []string{defs[0].Type, defs[1].Type, defs[2].Type})
	assert.Equal(t, "forest-d", defs[0].ID)
	assert.True(t, defs[0].Background())
	assert.Equal(t, "M 1,1", defs[0].Path)
	assert.False(t, defs[1].Background())
	assert.True(t, defs[2].Background(), "declared without attributes is still a background")
}

func TestRegion(t *testing.T) {
	b := newBuilder(Scoped("d"))
	b.DefineTypes([]string{"forest", "house"},
		map[string]map[string]string{"forest": {"fill": "green"}},
		map[string]string{"house": "M 0,0"})

	r := b.Region(core.Region{X: 1, Y: 1, ID: "hex.1.1", Types: []string{"forest", "house", "plain"}, Label: "Town|Hill", Size: "20pt"})
	assert.Equal(t, "hex.1.1-d", r.ID)
	assert.Equal(t, "0101", r.Coordinate)
	assert.Equal(t, "0101", r.CoordinateLabel)
	assert.Equal(t, []string{"forest"}, r.Backgrounds)
	assert.Equal(t, []string{"house"}, r.Things)
	assert.Equal(t, "Hill", r.Label)
	assert.Equal(t, "Town", r.Link)
	assert.True(t, r.Linked())
	assert.Equal(t, "20pt", r.FontSize)
	require.Len(t, r.Polygon, 6)

	o := geometry.NewOrientation(geometry.FlatTop, geometry.NormalParity)
	assert.InDelta(t, r.Centre.Y-o.DY*0.4, r.CoordinateAnchor.Y, 1e-9)
	assert.InDelta(t, r.Centre.Y+o.DY*0.4, r.LabelAnchor.Y, 1e-9)
	assert.Equal(t, r.Centre.X, r.LabelAnchor.X)

	plain := b.Region(core.Region{X: 2, Y: 2, ID: "hex.2.2", Label: "Keep"})
	assert.False(t, plain.Linked())
}

func TestRegionUsesResolver(t *testing.T) {
	res := labels.NewResolver("{X}.{Y}")
	res.AddMapping("A1", "1010")
	b := NewBuilder(geometry.NewOrientation(geometry.PointyTop, geometry.NormalParity), res, nil)
	assert.Equal(t, "A1", b.Region(core.Region{X: 10, Y: 10}).CoordinateLabel)
	assert.Equal(t, "03.07", b.Region(core.Region{X: 3, Y: 7}).CoordinateLabel)
}

func TestSpline(t *testing.T) {
	b := newBuilder(Scoped("d"))
	s := core.Spline{ID: "path-1", Types: "river", Label: "Styx", Points: []core.Point{{X: 3, Y: 1}, {X: 1, Y: 1}}}
	cells := []core.Point{{X: 3, Y: 1}, {X: 2, Y: 1}, {X: 1, Y: 1}}
	l := b.Spline(s, cells, nil)
	assert.Equal(t, "path-1-d", l.ID)
	assert.True(t, l.Routed())
	assert.Equal(t, cells, l.Cells)
	assert.Equal(t, "right", l.Side)
	assert.NotEmpty(t, l.PathData)
	assert.NotEmpty(t, l.Samples)

	failed := b.Spline(s, nil, errors.New("route 0301 -> 0101: path did not converge after 3 steps"))
	assert.False(t, failed.Routed())
	assert.Equal(t, s.Points, failed.Cells)
	assert.Contains(t, failed.Error, "did not converge")
	assert.NotEmpty(t, failed.PathData)
}

func TestViewbox(t *testing.T) {
	b := newBuilder(nil)
	assert.True(t, b.Viewbox(nil).IsEmpty())
	v := b.Viewbox([]RegionLayout{b.Region(core.Region{X: 1, Y: 1}), b.Region(core.Region{X: 3, Y: 2})})
	assert.False(t, v.IsEmpty())
}

func TestMapHelpers(t *testing.T) {
	m := &Map{Types: []TypeDef{{Type: "forest", ID: "forest"}}}
	assert.True(t, m.Empty())
	_, ok := m.TypeDef("forest")
	assert.True(t, ok)
	_, ok = m.TypeDef("sea")
	assert.False(t, ok)
}
