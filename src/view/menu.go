package view

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/logrusorgru/aurora"
	"simplay/src/sim"
)

//Menu is the textual model selection
type Menu struct {
	in  *bufio.Scanner
	out io.Writer
	au  aurora.Aurora
}

func NewMenu(in io.Reader, out io.Writer, au aurora.Aurora) *Menu {
	return &Menu{in: bufio.NewScanner(in), out: out, au: au}
}

//Choose shows the menu until a valid choice is made
//ok is false when the user quits or the input is over
func (m *Menu) Choose() (k sim.Kind, ok bool) {
	kinds := sim.Kinds()
	for {
		m.show(kinds)
		if !m.in.Scan() {
			return "", false
		}
		n, err := strconv.Atoi(strings.TrimSpace(m.in.Text()))
		if err != nil {
			continue
		}
		if n >= 1 && n <= len(kinds) {
			return kinds[n-1], true
		}
		if n == len(kinds)+1 {
			return "", false
		}
	}
}

func (m *Menu) show(kinds []sim.Kind) {
	_, _ = fmt.Fprintf(m.out, "\n%s\n", m.au.Bold(m.au.Cyan("Simulation Playground")))
	for i, k := range kinds {
		_, _ = fmt.Fprintf(m.out, "%v. %s\n", m.au.Green(i+1), k.Title())
	}
	_, _ = fmt.Fprintf(m.out, "%v. Quit\n", m.au.Green(len(kinds)+1))
	_, _ = fmt.Fprint(m.out, "Select simulation: ")
}
