package sim

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEpidemicSeedAtCenter(t *testing.T) {
	e := NewEpidemic(DefaultConfig().Epidemic, rand.New(rand.NewSource(1)))
	assert.Equal(t, Infected, e.At(10, 10))
	assert.Equal(t, 1, e.Count(Infected))
	assert.Equal(t, 399, e.Count(Susceptible))
}

func TestEpidemicCertainInfectionReachesMooreNeighbors(t *testing.T) {
	e := NewEpidemic(EpidemicConfig{Width: 4, Height: 4, InfectionRate: 1, RecoveryRate: 0}, rand.New(rand.NewSource(1)))
	require.Equal(t, Infected, e.At(2, 2))

	e.Advance()

	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			//the Moore neighborhood of (2,2) plus the seed itself
			want := Susceptible
			if x >= 1 && x <= 3 && y >= 1 && y <= 3 {
				want = Infected
			}
			assert.Equal(t, want, e.At(x, y), "cell (%d,%d)", x, y)
		}
	}
	assert.Equal(t, 9, e.Count(Infected))
}

func TestEpidemicUpdateIsSynchronous(t *testing.T) {
	//newly infected cells must not spread within the same tick
	e := NewEpidemic(EpidemicConfig{Width: 9, Height: 1, InfectionRate: 1, RecoveryRate: 0}, rand.New(rand.NewSource(1)))
	require.Equal(t, Infected, e.At(4, 0))
	e.Advance()
	assert.Equal(t, "S S S I I I S S S", e.Render().Rows()[0])
	e.Advance()
	assert.Equal(t, "S S I I I I I S S", e.Render().Rows()[0])
}

func TestEpidemicRecoveredIsAbsorbing(t *testing.T) {
	c := EpidemicConfig{Width: 20, Height: 20, InfectionRate: 0.25, RecoveryRate: 0.3}
	e := NewEpidemic(c, rand.New(rand.NewSource(3)))
	recovered := map[int]bool{}
	for tick := 0; tick < 100; tick++ {
		e.Advance()
		for y := 0; y < c.Height; y++ {
			for x := 0; x < c.Width; x++ {
				i := y*c.Width + x
				if recovered[i] {
					assert.Equal(t, Recovered, e.At(x, y), "cell (%d,%d) left recovered", x, y)
				}
				if e.At(x, y) == Recovered {
					recovered[i] = true
				}
			}
		}
	}
	assert.NotEmpty(t, recovered)
}

func TestEpidemicInfectedNonDecreasingWithoutRecovery(t *testing.T) {
	e := NewEpidemic(EpidemicConfig{Width: 20, Height: 20, InfectionRate: 0.25, RecoveryRate: 0}, rand.New(rand.NewSource(11)))
	prev := e.Count(Infected)
	for tick := 0; tick < 100; tick++ {
		e.Advance()
		n := e.Count(Infected)
		assert.GreaterOrEqual(t, n, prev, "tick %d", tick)
		assert.Zero(t, e.Count(Recovered))
		prev = n
	}
}

func TestEpidemicOnlyInfectedRecover(t *testing.T) {
	e := NewEpidemic(EpidemicConfig{Width: 5, Height: 5, InfectionRate: 0, RecoveryRate: 1}, rand.New(rand.NewSource(1)))
	e.Advance()
	assert.Equal(t, Recovered, e.At(2, 2))
	assert.Equal(t, 24, e.Count(Susceptible))
	e.Advance()
	assert.Equal(t, 1, e.Count(Recovered))
}

func TestEpidemicSameSeedSameRun(t *testing.T) {
	c := DefaultConfig().Epidemic
	a := NewEpidemic(c, rand.New(rand.NewSource(5)))
	b := NewEpidemic(c, rand.New(rand.NewSource(5)))
	for i := 0; i < 30; i++ {
		a.Advance()
		b.Advance()
	}
	assert.Equal(t, a.Render().Rows(), b.Render().Rows())
}
