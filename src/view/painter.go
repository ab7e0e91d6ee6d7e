package view

import (
	"bytes"

	"github.com/logrusorgru/aurora"
	"simplay/src/sim"
)

//Painter turns a frame into colored text
type Painter struct {
	au     aurora.Aurora
	colors map[sim.Cell]func(arg interface{}) aurora.Value
}

//NewPainter creates the painter, with colors=false the glyphs are written as is
func NewPainter(colors bool) *Painter {
	au := aurora.NewAurora(colors)
	p := &Painter{au: au}
	//'R' is both recovered and prey, one color serves both
	p.colors = map[sim.Cell]func(arg interface{}) aurora.Value{
		sim.GlyphBody:           au.BrightYellow,
		sim.Infected.Glyph():    au.Red,
		sim.Recovered.Glyph():   au.Green,
		sim.Susceptible.Glyph(): au.White,
		sim.GlyphCar:            au.Cyan,
		sim.GlyphRoad:           au.BrightBlack,
		sim.Predator.Glyph():    au.Magenta,
	}
	return p
}

//Aurora exposes the colorizer used by the painter
func (p *Painter) Aurora() aurora.Aurora {
	return p.au
}

//Paint renders the area, rows are separated by the line feed
func (p *Painter) Paint(a sim.Area) string {
	var b bytes.Buffer
	for i, l := range a.Entities {
		if i != 0 {
			b.WriteByte('\n')
		}
		p.paintLine(&b, l, a.Spaced, len(l))
	}
	return b.String()
}

//paintLine writes up to maxW cells of the line
func (p *Painter) paintLine(b *bytes.Buffer, l []sim.Cell, spaced bool, maxW int) {
	for j, e := range l {
		if j >= maxW {
			break
		}
		if spaced && j != 0 {
			b.WriteByte(' ')
		}
		if c, ok := p.colors[e]; ok {
			b.WriteString(c(e.String()).String())
		} else {
			b.WriteByte(byte(e))
		}
	}
}

//Glyph renders the glyph alone, used by the legends
func (p *Painter) Glyph(e sim.Cell) string {
	if c, ok := p.colors[e]; ok {
		return c(e.String()).String()
	}
	return e.String()
}
