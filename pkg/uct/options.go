package uct

import "runtime"

// Config carries every knob the engine needs, passed explicitly through
// constructors rather than read from package-level mutable state: a fixed
// iteration budget (never wall-clock time, per the Non-goals), a worker
// count for the parallel variants, and the UCB1 exploration constant.
type Config struct {
	IterMax     int
	Workers     int
	Exploration float64
	Verbose     bool
}

// DefaultConfig matches the reference implementation's defaults: 100
// iterations, one worker per logical CPU, and the standard UCB1 constant.
func DefaultConfig() Config {
	return Config{
		IterMax:     100,
		Workers:     runtime.NumCPU(),
		Exploration: explorationConstant,
		Verbose:     false,
	}
}

// WithIterMax returns a copy of c with IterMax set, if n is positive.
func (c Config) WithIterMax(n int) Config {
	if n > 0 {
		c.IterMax = n
	}
	return c
}

// WithWorkers returns a copy of c with Workers set, if n is positive.
func (c Config) WithWorkers(n int) Config {
	if n > 0 {
		c.Workers = n
	}
	return c
}

// WithExploration returns a copy of c with Exploration set to v.
func (c Config) WithExploration(v float64) Config {
	c.Exploration = v
	return c
}

// WithVerbose returns a copy of c with Verbose set to v.
func (c Config) WithVerbose(v bool) Config {
	c.Verbose = v
	return c
}
