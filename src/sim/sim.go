package sim

import (
	"math/rand"
	"time"
)

//Simulation is the contract every model exposes to the run-loop
//Render must not mutate the model, Advance moves it one tick forward
type Simulation interface {
	Advance()
	Render() Area
}

//Cell is the glyph of one rendered cell
type Cell byte

func (c Cell) String() string { return string([]byte{byte(c)}) }

//Area is the text-renderable snapshot of a model
type Area struct {
	Width    int
	Height   int
	Entities [][]Cell
	Spaced   bool //cells are printed with a blank between them
}

//Census counts every glyph in the area
func (a Area) Census() map[Cell]int {
	c := make(map[Cell]int)
	for y := range a.Entities {
		for _, e := range a.Entities[y] {
			c[e]++
		}
	}
	return c
}

//Rows returns the area as text lines
func (a Area) Rows() []string {
	rows := make([]string, len(a.Entities))
	for y, l := range a.Entities {
		b := make([]byte, 0, 2*len(l))
		for x, e := range l {
			if a.Spaced && x != 0 {
				b = append(b, ' ')
			}
			b = append(b, byte(e))
		}
		rows[y] = string(b)
	}
	return rows
}

//Kind identifies one of the models
type Kind string

const (
	KindGravity   Kind = "gravity"
	KindEpidemic  Kind = "epidemic"
	KindTraffic   Kind = "traffic"
	KindEcosystem Kind = "ecosystem"
)

//Factory builds a model from the configuration and an explicitly owned generator
type Factory func(cfg *Config, rng *rand.Rand) Simulation

var factories = map[Kind]Factory{
	KindGravity: func(cfg *Config, rng *rand.Rand) Simulation {
		return NewGravity(cfg.Gravity, rng)
	},
	KindEpidemic: func(cfg *Config, rng *rand.Rand) Simulation {
		return NewEpidemic(cfg.Epidemic, rng)
	},
	KindTraffic: func(cfg *Config, rng *rand.Rand) Simulation {
		return NewTraffic(cfg.Traffic, rng)
	},
	KindEcosystem: func(cfg *Config, rng *rand.Rand) Simulation {
		return NewEcosystem(cfg.Ecosystem, rng)
	},
}

var kindTitles = map[Kind]string{
	KindGravity:   "Gravity Simulation",
	KindEpidemic:  "Epidemic Spread",
	KindTraffic:   "Traffic Flow",
	KindEcosystem: "Ecosystem Evolution",
}

//Kinds returns all models in menu order
func Kinds() []Kind {
	return []Kind{KindGravity, KindEpidemic, KindTraffic, KindEcosystem}
}

//Title returns the human readable model name
func (k Kind) Title() string {
	if t, ok := kindTitles[k]; ok {
		return t
	}
	return string(k)
}

//Valid reports whether the kind is registered
func (k Kind) Valid() bool {
	_, ok := factories[k]
	return ok
}

//New creates the model of the given kind, returns nil for unknown kinds
func New(k Kind, cfg *Config, rng *rand.Rand) Simulation {
	f, ok := factories[k]
	if !ok {
		return nil
	}
	if cfg == nil {
		c := DefaultConfig()
		cfg = &c
	}
	return f(cfg, rng)
}

//NewRand returns the generator for the seed, zero seed means time based
func NewRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

//createArea allocates the area with one backing buffer
func createArea(width int, height int, fill Cell) Area {
	area := Area{Width: width, Height: height, Entities: make([][]Cell, height)}
	b := make([]Cell, width*height)
	for i := range b {
		b[i] = fill
	}
	for i := range area.Entities {
		start := width * i
		area.Entities[i] = b[start : start+width : start+width]
	}
	return area
}
