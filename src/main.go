package main

import (
	"log"
	"os"
	"strings"
	"time"

	"github.com/integrii/flaggy"
	"simplay/src/sim"
	"simplay/src/view"
)

type EnvOptions struct {
	configFile  string
	interactive bool
	noColor     bool
	sim         string
	steps       int
	interval    time.Duration
	seed        int64
}

func main() {
	eo := parseOptions()
	cfg, err := loadConfig(eo)
	if err != nil {
		log.Fatal(err)
	}
	painter := view.NewPainter(!eo.noColor)

	if eo.interactive {
		k := sim.KindGravity
		if eo.sim != "" {
			k = sim.Kind(eo.sim)
		}
		r, err := sim.NewRunner(k, &cfg, nil)
		if err != nil {
			log.Fatal(err)
		}
		v := view.NewViewTerminal(painter)
		r.RegisterViewer(v)
		v.Start()
		r.Close()
		return
	}

	if eo.sim != "" {
		if err := runSimulation(sim.Kind(eo.sim), &cfg, painter); err != nil {
			log.Fatal(err)
		}
		return
	}

	menu := view.NewMenu(os.Stdin, os.Stdout, painter.Aurora())
	for {
		k, ok := menu.Choose()
		if !ok {
			return
		}
		if err := runSimulation(k, &cfg, painter); err != nil {
			log.Fatal(err)
		}
	}
}

//runSimulation plays one model for the configured number of steps and prints every frame
func runSimulation(k sim.Kind, cfg *sim.Config, p *view.Painter) error {
	stateCh := make(chan sim.Status, 10) //the buffered channel to getting the run status
	r, err := sim.NewRunner(k, cfg, stateCh)
	if err != nil {
		return err
	}
	out := view.NewConsoleOut(os.Stdout, p)
	r.RegisterViewer(out)
	out.Start()
	r.Run()
	for {
		st := <-stateCh
		if st.RunningMode == sim.RunningStateFinished {
			break
		}
	}
	r.Close()
	return nil
}

func parseOptions() *EnvOptions {
	kinds := make([]string, 0, len(sim.Kinds()))
	for _, k := range sim.Kinds() {
		kinds = append(kinds, string(k))
	}
	eo := &EnvOptions{interval: -1}
	flaggy.SetName("simplay")
	flaggy.SetDescription("Terminal playground: gravity, epidemic, traffic and ecosystem simulations")
	flaggy.DefaultParser.ShowHelpOnUnexpected = true
	flaggy.String(&eo.configFile, "c", "config", "Path to a gcfg configuration file")
	flaggy.String(&eo.sim, "m", "sim", "Run one simulation without the menu ["+strings.Join(kinds, "|")+"]")
	flaggy.Int(&eo.steps, "s", "steps", "Limit the simulation to steps ticks")
	flaggy.Duration(&eo.interval, "i", "interval", "Simulation speed (interval between the steps) in format the number with 'ms' suffix, for example 150ms")
	flaggy.Int64(&eo.seed, "d", "seed", "Random seed, 0 means time based")
	flaggy.Bool(&eo.interactive, "n", "interactive", "Start interactive mode")
	flaggy.Bool(&eo.noColor, "", "no-color", "Disable colored output")

	flaggy.Parse()

	if eo.sim != "" && !sim.Kind(eo.sim).Valid() {
		flaggy.ShowHelpAndExit("unknown simulation")
	}
	return eo
}

//loadConfig reads the optional file and applies the flags over it
func loadConfig(eo *EnvOptions) (cfg sim.Config, err error) {
	cfg = sim.DefaultConfig()
	if eo.configFile != "" {
		if cfg, err = sim.ReadConfigFile(eo.configFile); err != nil {
			return
		}
	}
	if eo.steps != 0 {
		cfg.Run.Steps = eo.steps
	}
	if eo.interval >= 0 {
		cfg.Run.Interval = sim.Duration(eo.interval)
	}
	if eo.seed != 0 {
		cfg.Run.Seed = eo.seed
	}
	err = cfg.Validate()
	return
}
