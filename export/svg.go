package export

import (
	"bufio"
	"encoding/xml"
	"fmt"
	"io"
	"math"
	"sort"
	"strings"

	svg "github.com/ajstarks/svgo"

	"textmapper/core"
	"textmapper/layout"
	"textmapper/mapper"
)

// SVGExporter draws the map as layered SVG groups: backgrounds, paths,
// things, coordinates, region outlines, path labels and labels.
type SVGExporter struct {
	// Coordinates toggles the coordinate label layer.
	Coordinates bool
}

// NewSVGExporter creates a new SVG exporter
func NewSVGExporter() *SVGExporter {
	return &SVGExporter{Coordinates: true}
}

// Export writes a standalone SVG document.
func (e *SVGExporter) Export(w io.Writer, m *layout.Map) error {
	bw := bufio.NewWriter(w)
	canvas := svg.New(bw)

	if m.Viewbox.IsEmpty() {
		canvas.Startraw()
	} else {
		v := m.Viewbox
		canvas.Startraw(fmt.Sprintf(`viewBox="%s %s %s %s"`,
			num(v.MinX), num(v.MinY), num(v.Width()), num(v.Height())))
	}

	e.defs(canvas, m)
	regions := byZ(m.Regions)

	canvas.Gid(m.Groups.Backgrounds)
	for _, r := range regions {
		for _, t := range r.Backgrounds {
			if def, ok := m.TypeDef(t); ok {
				canvas.Use(round(r.Centre.X), round(r.Centre.Y), "#"+def.ID)
			}
		}
	}
	canvas.Gend()

	canvas.Gid(m.Groups.Paths)
	for _, s := range m.Splines {
		a := []string{attr("id", s.ID), attr("type", s.Type)}
		if !s.Routed() {
			a = append(a, attr("class", "unrouted"))
		}
		canvas.Path(s.PathData, append(a, attrs(m.Style.Path[s.Type])...)...)
	}
	canvas.Gend()

	canvas.Gid(m.Groups.Things)
	for _, r := range regions {
		for _, t := range r.Things {
			if def, ok := m.TypeDef(t); ok {
				canvas.Use(round(r.Centre.X), round(r.Centre.Y), "#"+def.ID)
			}
		}
	}
	canvas.Gend()

	canvas.Gid(m.Groups.Coordinates)
	if e.Coordinates {
		for _, r := range regions {
			a := append([]string{`text-anchor="middle"`}, attrs(m.Style.Text)...)
			canvas.Text(round(r.CoordinateAnchor.X), round(r.CoordinateAnchor.Y), r.CoordinateLabel, a...)
		}
	}
	canvas.Gend()

	canvas.Gid(m.Groups.Regions)
	for _, r := range regions {
		xs, ys := polygon(r.Polygon)
		canvas.Polygon(xs, ys, append([]string{attr("id", r.ID)}, attrs(m.Style.Region)...)...)
	}
	canvas.Gend()

	canvas.Gid(m.Groups.PathLabels)
	for _, s := range m.Splines {
		if s.Label != "" {
			pathLabel(canvas, s, m.Style)
		}
	}
	canvas.Gend()

	canvas.Gid(m.Groups.Labels)
	for _, r := range regions {
		if r.Label != "" {
			regionLabel(canvas, r, m.Style)
		}
	}
	canvas.Gend()

	canvas.End()
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write svg: %w", err)
	}
	mapper.Logger().Debug("exported svg", "map", m.ID, "regions", len(m.Regions), "splines", len(m.Splines))
	return nil
}

func (e *SVGExporter) defs(canvas *svg.SVG, m *layout.Map) {
	canvas.Def()
	for _, d := range m.Defs {
		fmt.Fprintln(canvas.Writer, d)
	}
	xs, ys := polygon(m.HexCorners)
	for _, t := range m.Types {
		canvas.Gid(t.ID)
		if t.Background() {
			canvas.Polygon(xs, ys, attrs(t.Attributes)...)
		}
		if t.Path != "" {
			canvas.Path(t.Path, attrs(m.Style.Path[t.Type])...)
		}
		canvas.Gend()
	}
	canvas.DefEnd()
}

func (e *SVGExporter) GetFileExtension() string {
	return ".svg"
}

func (e *SVGExporter) GetFormatName() string {
	return "SVG"
}

func (e *SVGExporter) GetContentType() string {
	return "image/svg+xml"
}

// regionLabel draws the glow and then the label, wrapped in a link when the
// label points elsewhere.
func regionLabel(canvas *svg.SVG, r layout.RegionLayout, style layout.Style) {
	a := append([]string{`text-anchor="middle"`}, attrs(style.Label)...)
	if r.FontSize != "" {
		a = append(a, attr("font-size", r.FontSize))
	}
	x, y := round(r.LabelAnchor.X), round(r.LabelAnchor.Y)

	canvas.Group()
	if r.Linked() {
		canvas.Link(escape(r.Link), r.Label)
	}
	canvas.Text(x, y, r.Label, append(a, attrs(style.Glow)...)...)
	canvas.Text(x, y, r.Label, a...)
	if r.Linked() {
		canvas.LinkEnd()
	}
	canvas.Gend()
}

// pathLabel writes the label along the spline. svgo's Textpath has no way
// to put attributes on the textPath element itself, which side and
// startOffset need.
func pathLabel(canvas *svg.SVG, s layout.SplineLayout, style layout.Style) {
	ref := []string{attr("href", "#"+s.ID)}
	if s.Side != "" {
		ref = append(ref, attr("side", s.Side))
	}
	if s.Start != "" {
		ref = append(ref, attr("startOffset", s.Start))
	}
	label := attrs(style.Label)

	canvas.Group()
	for _, a := range [][]string{append(label, attrs(style.Glow)...), label} {
		fmt.Fprintf(canvas.Writer, "<text %s><textPath %s>%s</textPath></text>\n",
			strings.Join(a, " "), strings.Join(ref, " "), escape(s.Label))
	}
	canvas.Gend()
}

func byZ(regions []layout.RegionLayout) []layout.RegionLayout {
	out := make([]layout.RegionLayout, len(regions))
	copy(out, regions)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Z < out[j].Z })
	return out
}

func polygon(points []core.Pixel) ([]int, []int) {
	xs := make([]int, len(points))
	ys := make([]int, len(points))
	for i, p := range points {
		xs[i], ys[i] = round(p.X), round(p.Y)
	}
	return xs, ys
}

// attrs renders an attribute map in key order.
func attrs(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]string, len(keys))
	for i, k := range keys {
		out[i] = attr(k, m[k])
	}
	return out
}

func attr(key, value string) string {
	return key + `="` + escape(value) + `"`
}

func escape(s string) string {
	var b strings.Builder
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}

func round(f float64) int {
	return int(math.Round(f))
}

func num(f float64) string {
	return fmt.Sprintf("%.1f", f)
}
