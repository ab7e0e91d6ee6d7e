package sim

import "math/rand"

const (
	GlyphRoad Cell = '.'
	GlyphCar  Cell = 'C'
)

//Traffic is a single lane ring road, a car moves one cell forward when that cell was empty
type Traffic struct {
	cur []bool
	nxt []bool
}

//NewTraffic fills every cell with a car with probability density
func NewTraffic(c TrafficConfig, rng *rand.Rand) *Traffic {
	t := &Traffic{cur: make([]bool, c.Length), nxt: make([]bool, c.Length)}
	for i := range t.cur {
		t.cur[i] = rng.Float64() < c.Density
	}
	return t
}

//NewTrafficWithCars creates the lane of the given length with cars at the positions
func NewTrafficWithCars(length int, cars []int) *Traffic {
	t := &Traffic{cur: make([]bool, length), nxt: make([]bool, length)}
	for _, i := range cars {
		if i >= 0 && i < length {
			t.cur[i] = true
		}
	}
	return t
}

//Positions returns the occupied cells in ascending order
func (t *Traffic) Positions() []int {
	p := make([]int, 0, len(t.cur))
	for i, car := range t.cur {
		if car {
			p = append(p, i)
		}
	}
	return p
}

//Cars returns the number of cars on the lane
func (t *Traffic) Cars() int { return len(t.Positions()) }

func (t *Traffic) Advance() {
	n := len(t.cur)
	for i := range t.nxt {
		t.nxt[i] = false
	}
	for i, car := range t.cur {
		if !car {
			continue
		}
		next := (i + 1) % n
		if !t.cur[next] {
			t.nxt[next] = true
		} else {
			t.nxt[i] = true
		}
	}
	t.cur, t.nxt = t.nxt, t.cur
}

func (t *Traffic) Render() Area {
	a := createArea(len(t.cur), 1, GlyphRoad)
	for i, car := range t.cur {
		if car {
			a.Entities[0][i] = GlyphCar
		}
	}
	return a
}
