package view

import (
	"bytes"
	"strings"
	"testing"

	"github.com/logrusorgru/aurora"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"simplay/src/sim"
)

func TestPainterWithoutColorsWritesGlyphs(t *testing.T) {
	e := sim.NewEmptyEcosystem(3, 2)
	e.Set(1, 0, sim.Predator)
	e.Set(2, 1, sim.Prey)
	p := NewPainter(false)
	assert.Equal(t, ". F .\n. . R", p.Paint(e.Render()))

	tr := sim.NewTrafficWithCars(5, []int{0, 2})
	assert.Equal(t, "C.C..", p.Paint(tr.Render()))
}

func TestPainterColorsKnownGlyphs(t *testing.T) {
	tr := sim.NewTrafficWithCars(2, []int{0})
	out := NewPainter(true).Paint(tr.Render())
	assert.Contains(t, out, "\033[")
	assert.Contains(t, out, "C")
	assert.Equal(t, aurora.Cyan("C").String(), NewPainter(true).Glyph(sim.GlyphCar))
	assert.Equal(t, "#", NewPainter(true).Glyph('#'))
}

func TestMenuChoosesKinds(t *testing.T) {
	var out bytes.Buffer
	m := NewMenu(strings.NewReader("2\n banana\n9\n\n 4 \n3\n1\n5\n"), &out, aurora.NewAurora(false))

	var got []sim.Kind
	for {
		k, ok := m.Choose()
		if !ok {
			break
		}
		got = append(got, k)
	}
	assert.Equal(t, []sim.Kind{sim.KindEpidemic, sim.KindEcosystem, sim.KindTraffic, sim.KindGravity}, got)
	assert.Contains(t, out.String(), "1. Gravity Simulation")
	assert.Contains(t, out.String(), "5. Quit")
	//invalid input shows the menu again: 8 lines read, 8 prompts
	assert.Equal(t, 8, strings.Count(out.String(), "Select simulation: "))
}

func TestMenuQuitsOnEOF(t *testing.T) {
	m := NewMenu(strings.NewReader("7\n"), &bytes.Buffer{}, aurora.NewAurora(false))
	_, ok := m.Choose()
	assert.False(t, ok)
}

func TestConsoleOutPrintsEveryFrame(t *testing.T) {
	cfg := sim.DefaultConfig()
	cfg.Run.Steps = 3
	cfg.Run.Interval = 0
	cfg.Run.Seed = 2
	cfg.Traffic.Length = 10

	stateCh := make(chan sim.Status, 10)
	r, err := sim.NewRunner(sim.KindTraffic, &cfg, stateCh)
	require.NoError(t, err)

	var out bytes.Buffer
	c := NewConsoleOut(&out, NewPainter(false))
	r.RegisterViewer(c)
	first := r.Frame().Rows()[0]
	c.Start()
	r.Run()
	for st := range stateCh {
		if st.RunningMode == sim.RunningStateFinished {
			break
		}
	}
	r.Close()

	s := out.String()
	assert.Equal(t, 4, strings.Count(s, clearScreen))
	assert.Contains(t, s, "Traffic Flow started...")
	assert.Contains(t, s, clearScreen+first+"\n")
	assert.Contains(t, s, "Traffic Flow  step 3/3")
	assert.Contains(t, s, "Finished:")
	assert.Contains(t, s, "  Last iteration: 3\n")
}

func TestConsoleOutNoClearAppendsFrames(t *testing.T) {
	cfg := sim.DefaultConfig()
	cfg.Run.Steps = 2
	cfg.Run.Interval = 0
	cfg.Run.Seed = 3

	r, err := sim.NewRunner(sim.KindEcosystem, &cfg, make(chan sim.Status, 10))
	require.NoError(t, err)

	var out bytes.Buffer
	c := NewConsoleOut(&out, NewPainter(false)).NoClear()
	r.RegisterViewer(c)
	c.Start()
	r.Run()
	for st := range r.StateCh() {
		if st.RunningMode == sim.RunningStateFinished {
			break
		}
	}
	r.Close()

	s := out.String()
	assert.NotContains(t, s, clearScreen)
	assert.Contains(t, s, "Ecosystem Evolution  step 1/2")
	assert.Contains(t, s, "Ecosystem Evolution  step 2/2")
}
