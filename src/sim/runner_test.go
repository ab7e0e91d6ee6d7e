package sim

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

//frameRecorder keeps every frame shown after a step
type frameRecorder struct {
	r      *Runner
	frames [][]string
	starts int
}

func (f *frameRecorder) Refresh() {
	if f.r.Status().IterationNum > 0 {
		f.frames = append(f.frames, f.r.Frame().Rows())
	}
}

func (f *frameRecorder) Register(r *Runner) { f.r = r }

func (f *frameRecorder) Start() { f.starts++ }

func newRunnerConfig(steps int) *Config {
	c := DefaultConfig()
	c.Run.Steps = steps
	c.Run.Interval = 0
	c.Run.Seed = 5
	return &c
}

func waitFor(stateCh chan Status, mode RunningState) Status {
	for {
		st := <-stateCh
		if st.RunningMode == mode {
			return st
		}
	}
}

func TestRunnerRendersBeforeAdvance(t *testing.T) {
	cfg := newRunnerConfig(10)
	stateCh := make(chan Status, 10)
	r, err := NewRunner(KindTraffic, cfg, stateCh)
	require.NoError(t, err)
	rec := &frameRecorder{}
	r.RegisterViewer(rec)

	r.Run()
	st := waitFor(stateCh, RunningStateFinished)
	r.Close()
	assert.Equal(t, 10, st.IterationNum)

	//replay the same model with the seed the runner derived
	model := New(KindTraffic, cfg, rand.New(rand.NewSource(NewRand(cfg.Run.Seed).Int63())))
	require.Len(t, rec.frames, 10)
	for i, frame := range rec.frames {
		assert.Equal(t, model.Render().Rows(), frame, "tick %d", i)
		model.Advance()
	}
}

func TestRunnerManualSteps(t *testing.T) {
	stateCh := make(chan Status, 10)
	r, err := NewRunner(KindEpidemic, newRunnerConfig(100), stateCh)
	require.NoError(t, err)
	defer r.Close()

	r.Step()
	st := waitFor(stateCh, RunningStateManual)
	assert.Equal(t, 1, st.IterationNum)
	//the first frame is the seeded grid
	assert.Equal(t, 1, st.Census[Infected.Glyph()])
	assert.Equal(t, DefEpidemicSize*DefEpidemicSize-1, st.Census[Susceptible.Glyph()])

	r.Step()
	st = waitFor(stateCh, RunningStateManual)
	assert.Equal(t, 2, st.IterationNum)
}

func TestRunnerFinishedIgnoresSteps(t *testing.T) {
	stateCh := make(chan Status, 10)
	r, err := NewRunner(KindEcosystem, newRunnerConfig(1), stateCh)
	require.NoError(t, err)
	defer r.Close()
	require.Equal(t, stateCh, r.StateCh())

	r.Step()
	waitFor(stateCh, RunningStateFinished)
	r.Step()
	r.Run()
	//Reset is the only way out of finished
	r.Reset()
	st := waitFor(stateCh, RunningStateManual)
	assert.Equal(t, 0, st.IterationNum)
	assert.Equal(t, 0, r.Status().IterationNum)
}

func TestRunnerSelectSwitchesModel(t *testing.T) {
	stateCh := make(chan Status, 10)
	r, err := NewRunner(KindGravity, newRunnerConfig(100), stateCh)
	require.NoError(t, err)
	defer r.Close()
	assert.Equal(t, DefGravityWidth, r.Frame().Width)

	r.Select(KindTraffic)
	st := waitFor(stateCh, RunningStateManual)
	assert.Equal(t, KindTraffic, st.Kind)
	assert.Equal(t, 1, r.Frame().Height)
	assert.Equal(t, DefLaneLength, r.Frame().Width)
}

func TestRunnerSameSeedSameFrames(t *testing.T) {
	run := func() [][]string {
		stateCh := make(chan Status, 10)
		r, err := NewRunner(KindEpidemic, newRunnerConfig(20), stateCh)
		require.NoError(t, err)
		rec := &frameRecorder{}
		r.RegisterViewer(rec)
		r.Run()
		waitFor(stateCh, RunningStateFinished)
		r.Close()
		return rec.frames
	}
	assert.Equal(t, run(), run())
}

func TestRunnerUnknownKind(t *testing.T) {
	_, err := NewRunner("plague", nil, nil)
	assert.Error(t, err)
}

func TestRunnerCloseStopsCommands(t *testing.T) {
	r, err := NewRunner(KindTraffic, newRunnerConfig(100), nil)
	require.NoError(t, err)
	r.Close()
	//commands after close are dropped instead of blocking
	assert.False(t, r.command(func() {}))
	r.Step()
	r.Run()
	r.Close()
	assert.Equal(t, 0, r.Status().IterationNum)
}

func TestRunnerStopThenRunKeepsOneTicker(t *testing.T) {
	cfg := newRunnerConfig(1000)
	cfg.Run.Interval = Duration(20 * time.Millisecond)
	r, err := NewRunner(KindTraffic, cfg, nil)
	require.NoError(t, err)
	defer r.Close()

	//the first ticker is asleep when stop and the second run arrive
	r.Run()
	r.Stop()
	r.Run()
	time.Sleep(400 * time.Millisecond)
	r.Stop()

	n := r.Status().IterationNum
	//one ticker makes about 20 steps, two would make about 40
	assert.GreaterOrEqual(t, n, 8)
	assert.LessOrEqual(t, n, 28)
}
