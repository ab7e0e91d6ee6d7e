package sim

import (
	"math"
	"math/rand"
)

const (
	//G is the gravitational constant of the playground
	G = 0.1
	//Softening is added to every pairwise distance
	Softening = 0.1

	GlyphSpace Cell = ' '
	GlyphBody  Cell = 'O'
)

//Body is a point mass, mass never changes after creation
type Body struct {
	X, Y   float64
	VX, VY float64
	Mass   float64
}

/*
	Gravity is the n-body model on a torus
	bodies are moved one by one in slice order, a body sees the new positions of the bodies moved before it
*/
type Gravity struct {
	width  float64
	height float64
	bodies []Body
}

//NewGravity places the bodies at random positions with random masses at rest
func NewGravity(c GravityConfig, rng *rand.Rand) *Gravity {
	bodies := make([]Body, c.Bodies)
	for i := range bodies {
		bodies[i] = Body{
			X:    rng.Float64() * float64(c.Width),
			Y:    rng.Float64() * float64(c.Height),
			Mass: c.MassMin + rng.Float64()*(c.MassMax-c.MassMin),
		}
	}
	return NewGravityWithBodies(c.Width, c.Height, bodies)
}

//NewGravityWithBodies creates the model with a predefined set of bodies
func NewGravityWithBodies(width int, height int, bodies []Body) *Gravity {
	g := &Gravity{
		width:  float64(width),
		height: float64(height),
		bodies: make([]Body, len(bodies)),
	}
	copy(g.bodies, bodies)
	for i := range g.bodies {
		g.bodies[i].X = wrap(g.bodies[i].X, g.width)
		g.bodies[i].Y = wrap(g.bodies[i].Y, g.height)
	}
	return g
}

//Bodies returns a copy of the bodies
func (g *Gravity) Bodies() []Body {
	b := make([]Body, len(g.bodies))
	copy(b, g.bodies)
	return b
}

//Mass returns the total mass of the system
func (g *Gravity) Mass() (m float64) {
	for _, b := range g.bodies {
		m += b.Mass
	}
	return
}

//Acceleration returns the acceleration of body i caused by all the other bodies
func (g *Gravity) Acceleration(i int) (ax float64, ay float64) {
	body := g.bodies[i]
	for j, other := range g.bodies {
		if j == i {
			continue
		}
		dx := other.X - body.X
		dy := other.Y - body.Y
		dist := math.Sqrt(dx*dx+dy*dy) + Softening
		force := G * body.Mass * other.Mass / (dist * dist)
		ax += force * dx / dist
		ay += force * dy / dist
	}
	return ax / body.Mass, ay / body.Mass
}

func (g *Gravity) Advance() {
	for i := range g.bodies {
		ax, ay := g.Acceleration(i)
		b := &g.bodies[i]
		b.VX += ax
		b.VY += ay
		b.X = wrap(b.X+b.VX, g.width)
		b.Y = wrap(b.Y+b.VY, g.height)
	}
}

//Render marks the truncated position of every body, coincident bodies share one mark
func (g *Gravity) Render() Area {
	a := createArea(int(g.width), int(g.height), GlyphSpace)
	for _, b := range g.bodies {
		a.Entities[int(b.Y)][int(b.X)] = GlyphBody
	}
	return a
}

//wrap maps v into [0, size)
func wrap(v float64, size float64) float64 {
	v = math.Mod(v, size)
	if v < 0 {
		v += size
	}
	//a tiny negative value can round up to size
	if v >= size {
		v = 0
	}
	return v
}
