package view

import (
	"bytes"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"github.com/jroimartin/gocui"
	"github.com/logrusorgru/aurora"
	"simplay/src/sim"
)

type keyBindings struct {
	key      interface{}
	name     string
	descr    string
	handler  func(v *gocui.View) error
	viewName string
}

//ConsoleUI is the interactive terminal mode
type ConsoleUI struct {
	r *sim.Runner
	g *gocui.Gui
	k []keyBindings
	p *Painter
}

var (
	runningStateDescr = map[sim.RunningState]string{
		sim.RunningStateManual:   aurora.Colorize("waiting", aurora.BlueFg).String(),
		sim.RunningStateStep:     "do the step",
		sim.RunningStateRun:      aurora.Colorize("running", aurora.CyanFg).String(),
		sim.RunningStateFinished: aurora.Colorize("finished", aurora.RedFg).String(),
	}
)

func NewViewTerminal(p *Painter) *ConsoleUI {

	var err error
	t := ConsoleUI{p: p}

	t.g, err = gocui.NewGui(gocui.OutputNormal)
	if err != nil {
		log.Panicln(err)
	}

	t.k = []keyBindings{
		{gocui.KeyCtrlC, "^C", "Exit", t.cmdQuit, ""},
		{'q', "Q", "Exit", t.cmdQuit, ""},
		{'n', "N", "Next step", t.cmdNextRound, ""},
		{'r', "R", "Run", t.cmdRun, ""},
		{'s', "S", "Stop", t.cmdStop, ""},
		{'w', "W", "Reseed", t.cmdReseed, ""},
	}
	for i, k := range sim.Kinds() {
		k := k
		t.k = append(t.k, keyBindings{
			rune('1' + i),
			string(rune('1' + i)),
			k.Title(),
			func(_ *gocui.View) error { return t.cmdSelect(k) },
			"",
		})
	}
	t.g.SetManagerFunc(t.layout)

	t.initKeyBindings(t.k)

	return &t
}

func (t *ConsoleUI) initKeyBindings(k []keyBindings) {
	for _, kb := range k {
		h := kb.handler
		if err := t.g.SetKeybinding(kb.viewName, kb.key, gocui.ModNone, func(gui *gocui.Gui, view *gocui.View) error { return h(view) }); err != nil {
			log.Panicln(err)
		}
	}
}

func (t *ConsoleUI) Register(r *sim.Runner) {
	t.r = r
}

func (t *ConsoleUI) Start() {
	if err := t.g.MainLoop(); err != nil && err != gocui.ErrQuit {
		log.Panicln(err)
	}
	t.g.Close()
}

func (t *ConsoleUI) Refresh() {
	t.g.Update(func(g *gocui.Gui) error {
		t.renderField(g)
		t.renderConfiguration(g)
		t.renderStatus(g)
		return nil
	})
}

func (t *ConsoleUI) renderField(g *gocui.Gui) {
	v, e := g.View("playground")
	if e != nil {
		return
	}
	a := t.r.Frame()
	v.Title = t.r.Status().Kind.Title()
	v.Clear()

	maxW, maxH := v.Size()
	cellW := 1
	if a.Spaced {
		cellW = 2
	}
	crop := a.Width*cellW > maxW+1 || a.Height > maxH

	var b bytes.Buffer
	for i, l := range a.Entities {
		//discard the data outside the view area
		if i >= maxH {
			break
		}
		//line feed char
		if i != 0 {
			b.WriteByte(10)
		}
		if crop && i == (maxH-1) {
			b.WriteString(aurora.Red("The field size is larger than the viewing area").BgBlack().String())
			break
		}
		t.p.paintLine(&b, l, a.Spaced, (maxW+cellW-1)/cellW)
	}
	_, _ = fmt.Fprint(v, b.String())
}

func (t *ConsoleUI) renderStatus(g *gocui.Gui) {
	v, e := g.View("status")
	if e != nil {
		return
	}
	s := t.r.Status()
	v.Clear()
	_, _ = fmt.Fprintln(v, t.renderProp("Step", "%v", s.IterationNum))
	_, _ = fmt.Fprintln(v, t.renderProp("Evaluation time", "%v", s.IterationTime.Round(time.Microsecond)))
	_, _ = fmt.Fprintln(v, t.renderProp("Mode", "%v", runningStateDescr[s.RunningMode]))
	_, _ = fmt.Fprintln(v, t.renderProp("Seed", "%v", s.Seed))
	glyphs := make([]int, 0, len(s.Census))
	for c := range s.Census {
		glyphs = append(glyphs, int(c))
	}
	sort.Ints(glyphs)
	for _, c := range glyphs {
		cell := sim.Cell(c)
		if cell == sim.GlyphSpace {
			continue
		}
		_, _ = fmt.Fprintln(v, t.renderProp("Cells "+t.p.Glyph(cell), "%v", s.Census[cell]))
	}
}

func (t *ConsoleUI) renderConfiguration(g *gocui.Gui) {
	v, e := g.View("configuration")
	if e != nil {
		return
	}
	c := t.r.Config()
	a := t.r.Frame()
	v.Clear()
	_, _ = fmt.Fprintln(v, t.renderProp("Dimension", "%v x %v", a.Width, a.Height))
	_, _ = fmt.Fprintln(v, t.renderProp("Interval", "%v", c.Run.Interval))
	_, _ = fmt.Fprintln(v, t.renderProp("Iterations", "%v steps", c.Run.Steps))
	switch t.r.Status().Kind {
	case sim.KindGravity:
		_, _ = fmt.Fprintln(v, t.renderProp("Bodies", "%v", c.Gravity.Bodies))
		_, _ = fmt.Fprintln(v, t.renderProp("Mass", "%g..%g", c.Gravity.MassMin, c.Gravity.MassMax))
	case sim.KindEpidemic:
		_, _ = fmt.Fprintln(v, t.renderProp("Infection rate", "%g", c.Epidemic.InfectionRate))
		_, _ = fmt.Fprintln(v, t.renderProp("Recovery rate", "%g", c.Epidemic.RecoveryRate))
	case sim.KindTraffic:
		_, _ = fmt.Fprintln(v, t.renderProp("Density", "%g", c.Traffic.Density))
	case sim.KindEcosystem:
		_, _ = fmt.Fprintln(v, t.renderProp("Prey", "%v", c.Ecosystem.Prey))
		_, _ = fmt.Fprintln(v, t.renderProp("Predators", "%v", c.Ecosystem.Predators))
	}
}

func (t *ConsoleUI) renderProp(name string, valueformat string, values ...interface{}) string {
	return fmt.Sprintf(" "+aurora.Colorize(name, aurora.GreenFg).String()+": "+valueformat, values...)
}

func (t *ConsoleUI) layout(g *gocui.Gui) error {

	maxX, maxY := g.Size()
	leftColumnWidth := 28
	minWindowHeight := 20

	if maxY < minWindowHeight {
		if _, err := t.headerLayout(g, maxY, "Terminal height too small"); err != nil {
			if err != gocui.ErrUnknownView {
				return err
			}
		}
		_ = g.DeleteView("configuration")
		_ = g.DeleteView("status")
		_ = g.DeleteView("playground")
		return nil
	}
	if _, err := t.headerLayout(g, 3, "Simulation Playground"); err != nil {
		if err != gocui.ErrUnknownView {
			return err
		}
	}

	if v, err := g.SetView("configuration", 0, 3, leftColumnWidth, 3+(maxY-5-3)/2); err != nil {
		if err != gocui.ErrUnknownView || v == nil {
			return err
		}
		v.Title = "Configuration"
		v.Frame = true
	}

	if v, err := g.SetView("status", 0, 3+(maxY-5-3)/2+1, leftColumnWidth, maxY-5); err != nil {
		if err != gocui.ErrUnknownView || v == nil {
			return err
		}
		v.Title = "Status"
		v.Frame = true
	}

	if v, err := g.SetView("playground", leftColumnWidth+1, 3, maxX-1, maxY-5); err != nil {
		if err != gocui.ErrUnknownView || v == nil {
			return err
		}
		v.Frame = true
	}
	t.renderField(g)
	t.renderConfiguration(g)
	t.renderStatus(g)

	if v, err := g.SetView("help", -1, maxY-5, maxX, maxY-3); err != nil {
		if err != gocui.ErrUnknownView || v == nil {
			return err
		}
		v.Frame = false
		v.Wrap = true
		b := bytes.Buffer{}
		b.WriteString("KEYBINDINGS: ")
		for i, k := range t.k {
			if i != 0 {
				b.WriteString(", ")
			}
			b.WriteString(aurora.Green(k.name).String())
			b.WriteString(": ")
			b.WriteString(k.descr)
		}
		_, _ = fmt.Fprintln(v, b.String())
	}

	return nil
}

func (t *ConsoleUI) headerLayout(g *gocui.Gui, height int, text string) (v *gocui.View, err error) {
	maxX, _ := g.Size()
	if v, err = g.SetView("header", -1, -1, maxX+1, height); err != nil {
		if err == gocui.ErrUnknownView && v != nil {
			v.Frame = false
			v.BgColor = gocui.ColorCyan
			v.FgColor = gocui.ColorBlack
		}
	}
	if v != nil {
		v.Clear()
		pad := 0
		if maxX > len(text) {
			pad = (maxX - len(text)) / 2
		}
		_, _ = fmt.Fprintln(v, strings.Repeat("\n", height/2+1)+strings.Repeat(" ", pad)+text)
	}
	return
}

func (t *ConsoleUI) cmdQuit(_ *gocui.View) error {
	return gocui.ErrQuit
}

func (t *ConsoleUI) cmdNextRound(_ *gocui.View) error {
	t.r.Step()
	return nil
}

func (t *ConsoleUI) cmdRun(_ *gocui.View) error {
	t.r.Run()
	return nil
}

func (t *ConsoleUI) cmdStop(_ *gocui.View) error {
	t.r.Stop()
	return nil
}

func (t *ConsoleUI) cmdReseed(_ *gocui.View) error {
	t.r.Reset()
	return nil
}

func (t *ConsoleUI) cmdSelect(k sim.Kind) error {
	t.r.Select(k)
	return nil
}
