package app

import "flag"

// Config represents the command-line parameters for the viewer.
type Config struct {
	Resolution int
	Scale      int
	TPS        int
	Seed       int64
	WindSpeed  float64
	Fetch      float64
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	return &Config{Resolution: 128, Scale: 4, TPS: 60, Seed: 1337, WindSpeed: 9, Fetch: 300000}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.IntVar(&c.Resolution, "resolution", c.Resolution, "cascade grid resolution (power of two)")
	fs.IntVar(&c.Scale, "scale", c.Scale, "pixel scale multiplier")
	fs.IntVar(&c.TPS, "tps", c.TPS, "simulation ticks per second")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "spectrum seed")
	fs.Float64Var(&c.WindSpeed, "wind", c.WindSpeed, "wind speed in m/s")
	fs.Float64Var(&c.Fetch, "fetch", c.Fetch, "fetch length in meters")
}
