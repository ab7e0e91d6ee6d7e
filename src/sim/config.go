package sim

import (
	"fmt"
	"time"

	"gopkg.in/gcfg.v1"
)

//default options
const (
	DefSimulationInterval = time.Millisecond * 100
	DefMaxSteps           = 100

	DefGravityWidth  = 60
	DefGravityHeight = 20
	DefBodies        = 5
	DefMassMin       = 5.0
	DefMassMax       = 20.0

	DefEpidemicSize  = 20
	DefInfectionRate = 0.25
	DefRecoveryRate  = 0.05

	DefLaneLength     = 50
	DefTrafficDensity = 0.3

	DefHabitatSize = 20
	DefPrey        = 40
	DefPredators   = 10
)

//Duration is a time.Duration read from its string form ("150ms")
type Duration time.Duration

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

func (d Duration) String() string {
	return time.Duration(d).String()
}

//RunConfig controls the run-loop
type RunConfig struct {
	Steps    int
	Interval Duration
	Seed     int64
}

type GravityConfig struct {
	Width   int
	Height  int
	Bodies  int
	MassMin float64
	MassMax float64
}

type EpidemicConfig struct {
	Width         int
	Height        int
	InfectionRate float64
	RecoveryRate  float64
}

type TrafficConfig struct {
	Length  int
	Density float64
}

type EcosystemConfig struct {
	Width     int
	Height    int
	Prey      int
	Predators int
}

//Config is the whole playground configuration, one section per model
type Config struct {
	Run       RunConfig
	Gravity   GravityConfig
	Epidemic  EpidemicConfig
	Traffic   TrafficConfig
	Ecosystem EcosystemConfig
}

//DefaultConfig returns the fixed defaults
func DefaultConfig() Config {
	return Config{
		Run: RunConfig{
			Steps:    DefMaxSteps,
			Interval: Duration(DefSimulationInterval),
		},
		Gravity: GravityConfig{
			Width:   DefGravityWidth,
			Height:  DefGravityHeight,
			Bodies:  DefBodies,
			MassMin: DefMassMin,
			MassMax: DefMassMax,
		},
		Epidemic: EpidemicConfig{
			Width:         DefEpidemicSize,
			Height:        DefEpidemicSize,
			InfectionRate: DefInfectionRate,
			RecoveryRate:  DefRecoveryRate,
		},
		Traffic: TrafficConfig{
			Length:  DefLaneLength,
			Density: DefTrafficDensity,
		},
		Ecosystem: EcosystemConfig{
			Width:     DefHabitatSize,
			Height:    DefHabitatSize,
			Prey:      DefPrey,
			Predators: DefPredators,
		},
	}
}

//ReadConfigFile reads the gcfg file over the defaults and validates the result
func ReadConfigFile(filename string) (Config, error) {
	c := DefaultConfig()
	if err := gcfg.ReadFileInto(&c, filename); err != nil {
		return c, fmt.Errorf("reading config %q: %w", filename, err)
	}
	if err := c.Validate(); err != nil {
		return c, fmt.Errorf("config %q: %w", filename, err)
	}
	return c, nil
}

//ReadConfigString is ReadConfigFile for an in-memory document
func ReadConfigString(s string) (Config, error) {
	c := DefaultConfig()
	if err := gcfg.ReadStringInto(&c, s); err != nil {
		return c, err
	}
	return c, c.Validate()
}

//Validate checks the ranges the models rely on
func (c *Config) Validate() error {
	if c.Run.Steps < 1 {
		return fmt.Errorf("run.steps must be positive, but is %d", c.Run.Steps)
	}
	if c.Run.Interval < 0 {
		return fmt.Errorf("run.interval must not be negative, but is %v", c.Run.Interval)
	}

	g := c.Gravity
	if err := checkSize("gravity", g.Width, g.Height); err != nil {
		return err
	}
	if g.Bodies < 0 {
		return fmt.Errorf("gravity.bodies must not be negative, but is %d", g.Bodies)
	}
	if g.MassMin <= 0 {
		return fmt.Errorf("gravity.massmin must be positive, but is %g", g.MassMin)
	} else if g.MassMax < g.MassMin {
		return fmt.Errorf("gravity.massmax must be at least %g, but is %g", g.MassMin, g.MassMax)
	}

	e := c.Epidemic
	if err := checkSize("epidemic", e.Width, e.Height); err != nil {
		return err
	}
	if err := checkRate("epidemic.infectionrate", e.InfectionRate); err != nil {
		return err
	}
	if err := checkRate("epidemic.recoveryrate", e.RecoveryRate); err != nil {
		return err
	}

	if c.Traffic.Length <= 0 {
		return fmt.Errorf("traffic.length must be positive, but is %d", c.Traffic.Length)
	}
	if err := checkRate("traffic.density", c.Traffic.Density); err != nil {
		return err
	}

	h := c.Ecosystem
	if err := checkSize("ecosystem", h.Width, h.Height); err != nil {
		return err
	}
	if h.Prey < 0 || h.Predators < 0 {
		return fmt.Errorf("ecosystem seed counts must not be negative, but are prey=%d predators=%d", h.Prey, h.Predators)
	}
	return nil
}

func checkSize(section string, w, h int) error {
	if w <= 0 || h <= 0 {
		return fmt.Errorf("%s dimensions must be positive, but are %dx%d", section, w, h)
	}
	return nil
}

func checkRate(key string, v float64) error {
	if v < 0 || v > 1 {
		return fmt.Errorf("%s must be in range [0, 1], but is %g", key, v)
	}
	return nil
}
