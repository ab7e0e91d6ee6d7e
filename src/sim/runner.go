package sim

import (
	"fmt"
	"math/rand"
	"sync"
	"time"
)

//Status represents the status of the run at concrete moment
type Status struct {
	Kind          Kind
	IterationNum  int
	RunningMode   RunningState
	Census        map[Cell]int //glyph counts of the last rendered frame
	IterationTime time.Duration
	Seed          int64
}

//Viewer is the interface to any Viewer - the object who can display simulation frames or control the run
type Viewer interface {
	Refresh()
	Register(r *Runner)
	Start()
}

//The run status at the concrete moment
type RunningState int

const (
	RunningStateManual   = RunningState(0x0)
	RunningStateStep     = RunningState(0x1)
	RunningStateRun      = RunningState(0x2)
	RunningStateFinished = RunningState(0x3)
)

func (s RunningState) String() string {
	switch s {
	case RunningStateManual:
		return "waiting"
	case RunningStateStep:
		return "do the step"
	case RunningStateRun:
		return "running"
	case RunningStateFinished:
		return "finished"
	}
	return "unknown"
}

/*
	Runner drives one model at a time
	all commands are executed one by one by the main loop, so the model is never touched concurrently
	each tick renders the current state, then advances the model
*/
type Runner struct {
	cfg   Config
	seeds *rand.Rand
	model Simulation
	state struct {
		Status
		sync.Mutex
	}
	frame struct {
		Area
		sync.Mutex
	}
	stateCh   chan Status
	views     []Viewer
	controlCh chan func()
	closeCh   chan bool
	done      chan struct{}
	runGen    int //changed by every run, stop and reload, touched by the main loop only
}

//NewRunner creates the runner for the model kind
//stateCh is optional, when it's set every running state switch is written there
func NewRunner(k Kind, cfg *Config, stateCh chan Status) (*Runner, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("unknown simulation %q", k)
	}
	if cfg == nil {
		c := DefaultConfig()
		cfg = &c
	}
	r := &Runner{
		cfg:       *cfg,
		seeds:     NewRand(cfg.Run.Seed),
		stateCh:   stateCh,
		controlCh: make(chan func(), 1),
		closeCh:   make(chan bool, 1),
		done:      make(chan struct{}),
	}
	r.state.Kind = k
	r.load()
	go r.mainLoop()
	return r, nil
}

//RegisterViewer registers the viewer - the runner will call the viewer after every step
func (r *Runner) RegisterViewer(v Viewer) {
	r.views = append(r.views, v)
	v.Register(r)
}

//StateCh returns the channel with the status updates
func (r *Runner) StateCh() chan Status {
	return r.stateCh
}

//Status returns the current status
func (r *Runner) Status() Status {
	r.state.Lock()
	defer r.state.Unlock()
	st := r.state.Status
	st.Census = make(map[Cell]int, len(r.state.Census))
	for k, v := range r.state.Census {
		st.Census[k] = v
	}
	return st
}

//Config returns the configuration the runner was created with
func (r *Runner) Config() Config {
	return r.cfg
}

//Frame returns the last rendered frame, it shows the state before the last tick was applied
func (r *Runner) Frame() Area {
	r.frame.Lock()
	defer r.frame.Unlock()
	return r.frame.Area
}

//Run starts the simulation, returns immediately
//the run stops when Stop is called or when the steps limit is reached
func (r *Runner) Run() {
	r.command(r.run)
}

//Stop stops the simulation, returns immediately
func (r *Runner) Stop() {
	r.command(r.stop)
}

//Step does one tick, returns immediately
func (r *Runner) Step() {
	r.command(r.step)
}

//Reset rebuilds the current model with a new seed, returns immediately
func (r *Runner) Reset() {
	r.command(r.reset)
}

//Select switches the runner to another model, returns immediately
func (r *Runner) Select(k Kind) {
	if !k.Valid() {
		return
	}
	r.command(func() {
		r.state.Lock()
		r.state.Kind = k
		r.state.Unlock()
		r.reset()
	})
}

//Close stops the main loop, returns when the command in progress is over
func (r *Runner) Close() {
	select {
	case r.closeCh <- true:
	case <-r.done:
	}
	<-r.done
}

//command hands the function to the main loop, dropped once the loop is closed
func (r *Runner) command(f func()) bool {
	select {
	case <-r.done:
		return false
	default:
	}
	select {
	case r.controlCh <- f:
		return true
	case <-r.done:
		return false
	}
}

//mainLoop - the main cycle, should start as a goroutine
//waits for command and executes
func (r *Runner) mainLoop() {
	defer close(r.done)
	for {
		select {
		case cmd := <-r.controlCh:
			cmd()
		case <-r.closeCh:
			return
		}
	}
}

func (r *Runner) mode() RunningState {
	r.state.Lock()
	defer r.state.Unlock()
	return r.state.RunningMode
}

//switchRunningState switch the state of the runner to RunningState
//also writes the new state to the stateCh to signal upper control software
func (r *Runner) switchRunningState(to RunningState) {
	r.state.Lock()
	r.state.RunningMode = to
	r.state.Unlock()
	if r.stateCh != nil {
		r.stateCh <- r.Status()
	}
}

//run starts the ticking goroutine
//the goroutine quits as soon as its generation is replaced by a later run, stop or reset
func (r *Runner) run() {
	if m := r.mode(); m == RunningStateRun || m == RunningStateFinished {
		return
	}
	r.runGen++
	gen := r.runGen
	r.switchRunningState(RunningStateRun)
	go func() {
		done := make(chan bool, 1)
		for {
			if !r.command(func() {
				if gen != r.runGen || r.mode() != RunningStateRun {
					done <- false
					return
				}
				r.step()
				done <- true
			}) {
				return
			}
			select {
			case ok := <-done:
				if !ok {
					return
				}
			case <-r.done:
				return
			}
			if r.cfg.Run.Interval > 0 {
				time.Sleep(time.Duration(r.cfg.Run.Interval))
			}
		}
	}()
}

func (r *Runner) stop() {
	if r.mode() == RunningStateRun {
		r.runGen++
		r.switchRunningState(RunningStateManual)
	}
}

//step renders the current state and advances the model by one tick
func (r *Runner) step() {
	rm := r.mode()
	if rm == RunningStateFinished {
		return
	}
	r.switchRunningState(RunningStateStep)

	start := time.Now()
	frame := r.model.Render()
	r.model.Advance()

	r.frame.Lock()
	r.frame.Area = frame
	r.frame.Unlock()

	r.state.Lock()
	r.state.IterationNum++
	r.state.Census = frame.Census()
	r.state.IterationTime = time.Since(start)
	finished := r.state.IterationNum >= r.cfg.Run.Steps
	r.state.Unlock()

	if finished {
		rm = RunningStateFinished
	}
	r.switchRunningState(rm)
	r.refreshView()
}

//reset rebuilds the model and resets all counters
func (r *Runner) reset() {
	r.load()
	r.switchRunningState(RunningStateManual)
	r.refreshView()
}

//load creates the model for the current kind with the next seed
func (r *Runner) load() {
	r.runGen++
	seed := r.seeds.Int63()
	r.state.Lock()
	k := r.state.Kind
	r.state.Seed = seed
	r.state.IterationNum = 0
	r.state.RunningMode = RunningStateManual
	r.state.IterationTime = 0
	r.state.Unlock()

	r.model = New(k, &r.cfg, rand.New(rand.NewSource(seed)))
	frame := r.model.Render()

	r.frame.Lock()
	r.frame.Area = frame
	r.frame.Unlock()
	r.state.Lock()
	r.state.Census = frame.Census()
	r.state.Unlock()
}

//refreshView calls Refresh event for all registered views
func (r *Runner) refreshView() {
	for _, v := range r.views {
		v.Refresh()
	}
}
