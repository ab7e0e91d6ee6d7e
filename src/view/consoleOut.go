package view

import (
	"fmt"
	"io"
	"sort"
	"time"

	"simplay/src/sim"
)

//clearScreen moves the cursor home and erases the terminal
const clearScreen = "\033[H\033[2J"

//ConsoleOut prints every frame to the terminal, clearing the screen before each one
type ConsoleOut struct {
	r         *sim.Runner
	w         io.Writer
	p         *Painter
	clear     bool
	startTime time.Time
}

func NewConsoleOut(w io.Writer, p *Painter) *ConsoleOut {
	return &ConsoleOut{w: w, p: p, clear: true}
}

//NoClear disables the screen clearing, frames are appended one after another
func (c *ConsoleOut) NoClear() *ConsoleOut {
	c.clear = false
	return c
}

func (c *ConsoleOut) Refresh() {
	st := c.r.Status()
	if st.IterationNum == 0 {
		return
	}
	if c.clear {
		_, _ = fmt.Fprint(c.w, clearScreen)
	}
	_, _ = fmt.Fprintln(c.w, c.p.Paint(c.r.Frame()))
	_, _ = fmt.Fprintf(c.w, "%s  step %v/%v\n", st.Kind.Title(), st.IterationNum, c.r.Config().Run.Steps)

	if st.RunningMode == sim.RunningStateFinished {
		totalTime := time.Since(c.startTime).Round(time.Millisecond)
		resultData := map[string]interface{}{
			"Last iteration": st.IterationNum,
			"Total time":     totalTime,
			"Seed":           st.Seed,
		}
		for glyph, n := range st.Census {
			resultData[fmt.Sprintf("Cells %q", glyph.String())] = n
		}
		_, _ = fmt.Fprintln(c.w, "\nFinished:")
		c.printHashData(resultData)
	}
}

func (c *ConsoleOut) Register(r *sim.Runner) {
	c.r = r
}

func (c *ConsoleOut) Start() {
	c.startTime = time.Now()
	if c.clear {
		_, _ = fmt.Fprint(c.w, clearScreen)
	}
	_, _ = fmt.Fprintf(c.w, "%s started...\n", c.r.Status().Kind.Title())
}

func (c *ConsoleOut) printHashData(d map[string]interface{}) {
	propNames := make([]string, 0, len(d))
	for k := range d {
		propNames = append(propNames, k)
	}
	sort.Strings(propNames)
	for _, propName := range propNames {
		_, _ = fmt.Fprintf(c.w, "  %s: %v\n", propName, d[propName])
	}
}
