// Package terminal shows a rough character-cell preview of a laid out map.
package terminal

import (
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"textmapper/core"
	"textmapper/layout"
)

// Horizontal centre spacing of 1.5 radii maps to columnsPerStep columns and
// vertical spacing of sqrt(3) radii to rowsPerStep rows.
const (
	columnsPerStep = 8
	rowsPerStep    = 4
	labelWidth     = columnsPerStep - 1
)

// Preview draws a map onto a tcell screen.
type Preview struct {
	screen tcell.Screen
	m      *layout.Map

	// pixel to cell scale
	sx, sy float64

	// OffsetX and OffsetY pan the view, in cells.
	OffsetX, OffsetY int
}

// NewPreview prepares a preview of m on s. The screen must already be
// initialised.
func NewPreview(s tcell.Screen, m *layout.Map) *Preview {
	r := radius(m.HexCorners)
	if r == 0 {
		r = 100
	}
	return &Preview{
		screen: s,
		m:      m,
		sx:     1.5 * r / columnsPerStep,
		sy:     math.Sqrt(3) * r / rowsPerStep,
	}
}

const emptyMessage = "nothing to draw"

// Draw renders the whole map and shows it. Fills go first, then splines,
// then text so that labels stay readable.
func (p *Preview) Draw() {
	s := p.screen
	s.Clear()

	if p.m.Empty() {
		w, h := s.Size()
		x := (w - runewidth.StringWidth(emptyMessage)) / 2
		for _, r := range emptyMessage {
			s.SetContent(x, h/2, r, nil, tcell.StyleDefault.Dim(true))
			x += runewidth.RuneWidth(r)
		}
		s.Show()
		return
	}

	for _, r := range p.m.Regions {
		fill := p.fill(r)
		if fill == tcell.ColorDefault {
			continue
		}
		x, y := p.cell(r.Centre)
		style := tcell.StyleDefault.Background(fill)
		for dx := -labelWidth / 2; dx <= labelWidth/2; dx++ {
			for dy := -1; dy <= 1; dy++ {
				s.SetContent(x+dx, y+dy, ' ', nil, style)
			}
		}
	}

	for _, sp := range p.m.Splines {
		fg := color(p.m.Style.Path[sp.Type]["stroke"])
		glyph := '·'
		if !sp.Routed() {
			glyph = '?'
		}
		for _, px := range sp.Samples {
			x, y := p.cell(px)
			_, _, style, _ := s.GetContent(x, y)
			s.SetContent(x, y, glyph, nil, style.Foreground(fg))
		}
	}

	for _, r := range p.m.Regions {
		x, y := p.cell(r.Centre)
		style := tcell.StyleDefault.Background(p.fill(r))
		p.centred(x, y-1, r.CoordinateLabel, style.Dim(true))
		if r.Label != "" {
			p.centred(x, y, r.Label, style.Bold(true))
		}
		if len(r.Things) > 0 {
			p.centred(x, y+1, r.Things[0], style.Italic(true))
		}
	}

	s.Show()
}

// Run draws the map and handles keys until q, Escape or Ctrl-C. Arrow keys
// pan the view.
func (p *Preview) Run() error {
	p.Draw()
	for {
		switch ev := p.screen.PollEvent().(type) {
		case nil:
			return nil
		case *tcell.EventResize:
			p.screen.Sync()
			p.Draw()
		case *tcell.EventKey:
			switch ev.Key() {
			case tcell.KeyEscape, tcell.KeyCtrlC:
				return nil
			case tcell.KeyLeft:
				p.OffsetX += columnsPerStep
			case tcell.KeyRight:
				p.OffsetX -= columnsPerStep
			case tcell.KeyUp:
				p.OffsetY += rowsPerStep
			case tcell.KeyDown:
				p.OffsetY -= rowsPerStep
			case tcell.KeyRune:
				if ev.Rune() == 'q' {
					return nil
				}
			}
			p.Draw()
		}
	}
}

func (p *Preview) cell(px core.Pixel) (int, int) {
	v := p.m.Viewbox
	x := int(math.Round((px.X-v.MinX)/p.sx)) + p.OffsetX
	y := int(math.Round((px.Y-v.MinY)/p.sy)) + p.OffsetY
	return x, y
}

func (p *Preview) fill(r layout.RegionLayout) tcell.Color {
	for _, t := range r.Backgrounds {
		if def, ok := p.m.TypeDef(t); ok {
			if c := color(def.Attributes["fill"]); c != tcell.ColorDefault {
				return c
			}
		}
	}
	return tcell.ColorDefault
}

// centred writes text centred on column x, cut to the width of one hex.
func (p *Preview) centred(x, y int, text string, style tcell.Style) {
	text = runewidth.Truncate(text, labelWidth, "…")
	x -= runewidth.StringWidth(text) / 2
	for _, r := range text {
		p.screen.SetContent(x, y, r, nil, style)
		x += runewidth.RuneWidth(r)
	}
}

func color(name string) tcell.Color {
	if name == "" {
		return tcell.ColorDefault
	}
	return tcell.GetColor(name)
}

func radius(corners []core.Pixel) float64 {
	r := 0.0
	for _, c := range corners {
		r = math.Max(r, math.Hypot(c.X, c.Y))
	}
	return r
}
