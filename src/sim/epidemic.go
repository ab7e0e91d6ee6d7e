package sim

import "math/rand"

//Health is the state of one epidemic cell
type Health uint8

const (
	Susceptible Health = iota
	Infected
	Recovered
)

var healthGlyphs = [...]Cell{Susceptible: 'S', Infected: 'I', Recovered: 'R'}

func (h Health) Glyph() Cell { return healthGlyphs[h] }

/*
	Epidemic is the stochastic SIR automaton on a bounded grid
	the next grid is built from a full snapshot of the current one and the buffers are swapped
*/
type Epidemic struct {
	w, h          int
	infectionRate float64
	recoveryRate  float64
	rng           *rand.Rand
	cur           []Health
	nxt           []Health
}

//NewEpidemic creates a fully susceptible grid with one infected cell at the center
func NewEpidemic(c EpidemicConfig, rng *rand.Rand) *Epidemic {
	e := &Epidemic{
		w:             c.Width,
		h:             c.Height,
		infectionRate: c.InfectionRate,
		recoveryRate:  c.RecoveryRate,
		rng:           rng,
		cur:           make([]Health, c.Width*c.Height),
		nxt:           make([]Health, c.Width*c.Height),
	}
	e.Set(c.Width/2, c.Height/2, Infected)
	return e
}

//At returns the state of the cell x, y
func (e *Epidemic) At(x int, y int) Health { return e.cur[y*e.w+x] }

//Set places the state at x, y, coordinates outside the grid are ignored
func (e *Epidemic) Set(x int, y int, s Health) {
	if x < 0 || y < 0 || x >= e.w || y >= e.h {
		return
	}
	e.cur[y*e.w+x] = s
}

//Count returns the number of cells in state s
func (e *Epidemic) Count(s Health) (n int) {
	for _, c := range e.cur {
		if c == s {
			n++
		}
	}
	return
}

func (e *Epidemic) Advance() {
	w, h := e.w, e.h
	copy(e.nxt, e.cur)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if e.cur[y*w+x] != Infected {
				continue
			}
			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					nx, ny := x+dx, y+dy
					//skip coordinates outside the grid
					if nx < 0 || ny < 0 || nx >= w || ny >= h {
						continue
					}
					if e.cur[ny*w+nx] == Susceptible && e.rng.Float64() < e.infectionRate {
						e.nxt[ny*w+nx] = Infected
					}
				}
			}
			if e.rng.Float64() < e.recoveryRate {
				e.nxt[y*w+x] = Recovered
			}
		}
	}
	e.cur, e.nxt = e.nxt, e.cur
}

func (e *Epidemic) Render() Area {
	a := createArea(e.w, e.h, Susceptible.Glyph())
	a.Spaced = true
	for i, s := range e.cur {
		a.Entities[i/e.w][i%e.w] = s.Glyph()
	}
	return a
}
