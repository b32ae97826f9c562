package export

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
	"golang.org/x/image/colornames"
	"golang.org/x/image/font/gofont/goregular"

	"textmapper/core"
	"textmapper/layout"
	"textmapper/mapper"
)

// PNGExporter rasterises the map with the software renderer of gg. It draws
// the same layers as the SVG exporter, except that icon paths and raw defs
// are left out.
type PNGExporter struct {
	// Scale converts map pixels to image pixels.
	Scale float64
	// Margin is added around the viewbox, in map pixels.
	Margin float64
}

// NewPNGExporter creates a new PNG exporter
func NewPNGExporter() *PNGExporter {
	return &PNGExporter{Scale: 0.5, Margin: 20}
}

const (
	defaultStrokeWidth = 3.0
	coordinateFontSize = 20.0
	labelFontSize      = 30.0
)

func (e *PNGExporter) Export(w io.Writer, m *layout.Map) error {
	if m.Viewbox.IsEmpty() {
		return fmt.Errorf("png: map %q has nothing to draw", m.ID)
	}
	v := m.Viewbox
	width := int(math.Ceil((v.Width() + 2*e.Margin) * e.Scale))
	height := int(math.Ceil((v.Height() + 2*e.Margin) * e.Scale))

	dc := gg.NewContext(width, height)
	defer func() { _ = dc.Close() }()
	dc.ClearWithColor(gg.White)
	dc.Scale(e.Scale, e.Scale)
	dc.Translate(e.Margin-v.MinX, e.Margin-v.MinY)

	regions := byZ(m.Regions)
	for _, r := range regions {
		for _, t := range r.Backgrounds {
			def, ok := m.TypeDef(t)
			if !ok {
				continue
			}
			if c, ok := parseColor(def.Attributes["fill"]); ok {
				dc.SetColor(c)
				tracePolygon(dc, r.Polygon)
				if err := dc.Fill(); err != nil {
					return fmt.Errorf("png: fill %s: %w", r.ID, err)
				}
			}
		}
	}

	for _, s := range m.Splines {
		style := m.Style.Path[s.Type]
		c, ok := parseColor(style["stroke"])
		if !ok {
			c = gg.Black
		}
		dc.SetColor(c)
		dc.SetLineWidth(parseSize(style["stroke-width"], defaultStrokeWidth))
		traceSpline(dc, s)
		if err := dc.Stroke(); err != nil {
			return fmt.Errorf("png: stroke %s: %w", s.ID, err)
		}
	}

	outline, ok := parseColor(m.Style.Region["stroke"])
	if !ok {
		outline = gg.Black
	}
	dc.SetColor(outline)
	dc.SetLineWidth(parseSize(m.Style.Region["stroke-width"], 1))
	for _, r := range regions {
		tracePolygon(dc, r.Polygon)
		if err := dc.Stroke(); err != nil {
			return fmt.Errorf("png: outline %s: %w", r.ID, err)
		}
	}

	source, err := text.NewFontSource(goregular.TTF)
	if err != nil {
		return fmt.Errorf("png: font: %w", err)
	}
	defer func() { _ = source.Close() }()

	dc.SetColor(gg.Black)
	dc.SetFont(source.Face(parseSize(m.Style.Text["font-size"], coordinateFontSize)))
	for _, r := range regions {
		dc.DrawStringAnchored(r.CoordinateLabel, r.CoordinateAnchor.X, r.CoordinateAnchor.Y, 0.5, 0.5)
	}
	base := parseSize(m.Style.Label["font-size"], labelFontSize)
	for _, r := range regions {
		if r.Label == "" {
			continue
		}
		dc.SetFont(source.Face(parseSize(r.FontSize, base)))
		dc.DrawStringAnchored(r.Label, r.LabelAnchor.X, r.LabelAnchor.Y, 0.5, 0.5)
	}

	if err := dc.EncodePNG(w); err != nil {
		return fmt.Errorf("png: encode: %w", err)
	}
	mapper.Logger().Debug("exported png", "map", m.ID, "width", width, "height", height)
	return nil
}

func (e *PNGExporter) GetFileExtension() string {
	return ".png"
}

func (e *PNGExporter) GetFormatName() string {
	return "PNG"
}

func (e *PNGExporter) GetContentType() string {
	return "image/png"
}

func tracePolygon(dc *gg.Context, points []core.Pixel) {
	for i, p := range points {
		if i == 0 {
			dc.MoveTo(p.X, p.Y)
		} else {
			dc.LineTo(p.X, p.Y)
		}
	}
	dc.ClosePath()
}

// traceSpline follows the cubic segments of a spline, or its samples when
// there are none.
func traceSpline(dc *gg.Context, s layout.SplineLayout) {
	if len(s.Segments) > 0 {
		dc.MoveTo(s.Segments[0].From.X, s.Segments[0].From.Y)
		for _, seg := range s.Segments {
			dc.CubicTo(seg.C1.X, seg.C1.Y, seg.C2.X, seg.C2.Y, seg.To.X, seg.To.Y)
		}
		return
	}
	for i, p := range s.Samples {
		if i == 0 {
			dc.MoveTo(p.X, p.Y)
		} else {
			dc.LineTo(p.X, p.Y)
		}
	}
}

// parseColor understands "#rgb", "#rrggbb" and the SVG colour names.
func parseColor(s string) (gg.RGBA, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch {
	case s == "", s == "none":
		return gg.RGBA{}, false
	case strings.HasPrefix(s, "#"):
		c, err := gg.ParseHex(s)
		return c, err == nil
	}
	c, ok := colornames.Map[s]
	if !ok {
		return gg.RGBA{}, false
	}
	return gg.FromColor(c), true
}

// parseSize reads the number at the start of a CSS length such as "12pt".
func parseSize(s string, fallback float64) float64 {
	s = strings.TrimSpace(s)
	end := strings.IndexFunc(s, func(r rune) bool {
		return (r < '0' || r > '9') && r != '.'
	})
	if end >= 0 {
		s = s[:end]
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f <= 0 {
		return fallback
	}
	return f
}
