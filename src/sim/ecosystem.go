package sim

import "math/rand"

//Habitat is the content of one ecosystem cell
type Habitat uint8

const (
	Empty Habitat = iota
	Prey
	Predator
)

var habitatGlyphs = [...]Cell{Empty: '.', Prey: 'R', Predator: 'F'}

func (h Habitat) Glyph() Cell { return habitatGlyphs[h] }

//Ecosystem is the deterministic predator-prey automaton
//every predator converts the prey in its Moore neighborhood, nothing dies or moves
type Ecosystem struct {
	w, h int
	cur  []Habitat
	nxt  []Habitat
}

//NewEcosystem drops prey and then predators at random cells, later drops overwrite earlier ones
func NewEcosystem(c EcosystemConfig, rng *rand.Rand) *Ecosystem {
	e := NewEmptyEcosystem(c.Width, c.Height)
	for i := 0; i < c.Prey; i++ {
		e.Set(rng.Intn(c.Width), rng.Intn(c.Height), Prey)
	}
	for i := 0; i < c.Predators; i++ {
		e.Set(rng.Intn(c.Width), rng.Intn(c.Height), Predator)
	}
	return e
}

//NewEmptyEcosystem creates the habitat with no agents
func NewEmptyEcosystem(w int, h int) *Ecosystem {
	return &Ecosystem{w: w, h: h, cur: make([]Habitat, w*h), nxt: make([]Habitat, w*h)}
}

func (e *Ecosystem) At(x int, y int) Habitat { return e.cur[y*e.w+x] }

//Set places the agent at x, y, coordinates outside the grid are ignored
func (e *Ecosystem) Set(x int, y int, s Habitat) {
	if x < 0 || y < 0 || x >= e.w || y >= e.h {
		return
	}
	e.cur[y*e.w+x] = s
}

func (e *Ecosystem) Count(s Habitat) (n int) {
	for _, c := range e.cur {
		if c == s {
			n++
		}
	}
	return
}

func (e *Ecosystem) Advance() {
	w, h := e.w, e.h
	copy(e.nxt, e.cur)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if e.cur[y*w+x] != Predator {
				continue
			}
			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					nx, ny := x+dx, y+dy
					if nx < 0 || ny < 0 || nx >= w || ny >= h {
						continue
					}
					if e.cur[ny*w+nx] == Prey {
						e.nxt[ny*w+nx] = Predator
					}
				}
			}
		}
	}
	e.cur, e.nxt = e.nxt, e.cur
}

func (e *Ecosystem) Render() Area {
	a := createArea(e.w, e.h, Empty.Glyph())
	a.Spaced = true
	for i, s := range e.cur {
		a.Entities[i/e.w][i%e.w] = s.Glyph()
	}
	return a
}
