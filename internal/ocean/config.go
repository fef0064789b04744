package ocean

import (
	"fmt"
	"math"
	"strconv"

	"github.com/go-gl/mathgl/mgl32"
)

// Params holds the physical and visual tunables of the ocean surface. Wave
// physics fields shape the spectrum and require a rebuild when edited; the
// color fields are passed straight through to the renderer.
type Params struct {
	WindSpeed     float64 // m/s, must be positive
	WindDirection float64 // degrees, [0, 360)
	FetchLength   float64 // meters of open water upwind, must be positive
	Swell         float64 // [0, 2], directional bias of long waves
	Detail        float64 // [0, 1], retention of short wavelengths
	Spread        float64 // [0, 1], widens the directional lobe
	Choppiness    float64 // [0, 2], horizontal displacement scale

	FoamAmount float64 // [0, 10], Jacobian seed gain
	FoamDecay  float64 // (0, 1), persistent foam retained per second
	FoamGrowth float64 // (0, 4], seed injected per second

	WaterColor mgl32.Vec3 // linear RGB, [0, 1] per channel
	FoamColor  mgl32.Vec3 // linear RGB, [0, 1] per channel
}

// Config controls the cascade set layout.
type Config struct {
	// Resolution is the per-cascade grid size. Must be a power of two.
	Resolution int
	// Resolutions optionally overrides Resolution per cascade. When set it
	// must match TileSizes in length.
	Resolutions []int
	// TileSizes lists the world-space tile edge per cascade, largest first.
	TileSizes []float64
	// Seed drives the per-bin amplitude draws.
	Seed int64

	Params Params
}

// DefaultConfig returns the standard three-cascade configuration.
func DefaultConfig() Config {
	return Config{
		Resolution: 128,
		TileSizes:  []float64{1024, 128, 16},
		Seed:       1337,
		Params:     DefaultParams(),
	}
}

// DefaultParams returns a moderate open-sea state.
func DefaultParams() Params {
	return Params{
		WindSpeed:     9,
		WindDirection: 30,
		FetchLength:   300000,
		Swell:         0.6,
		Detail:        0.8,
		Spread:        0.4,
		Choppiness:    1.2,
		FoamAmount:    2,
		FoamDecay:     0.15,
		FoamGrowth:    1.5,
		WaterColor:    mgl32.Vec3{0.02, 0.08, 0.14},
		FoamColor:     mgl32.Vec3{0.9, 0.94, 0.96},
	}
}

// Validate reports the first configuration error, or nil. Rejected configs
// leave the caller's previous state untouched.
func (c Config) Validate() error {
	if c.Resolution < 8 || c.Resolution&(c.Resolution-1) != 0 {
		return fmt.Errorf("ocean: resolution %d is not a power of two >= 8", c.Resolution)
	}
	if len(c.TileSizes) == 0 {
		return fmt.Errorf("ocean: at least one cascade tile size required")
	}
	if len(c.Resolutions) > 0 {
		if len(c.Resolutions) != len(c.TileSizes) {
			return fmt.Errorf("ocean: %d resolution overrides for %d cascades", len(c.Resolutions), len(c.TileSizes))
		}
		for i, r := range c.Resolutions {
			if r < 8 || r&(r-1) != 0 {
				return fmt.Errorf("ocean: cascade %d resolution %d is not a power of two >= 8", i, r)
			}
		}
	}
	for i, t := range c.TileSizes {
		if !(t > 0) || math.IsInf(t, 0) {
			return fmt.Errorf("ocean: cascade %d tile size %v must be a positive finite number", i, t)
		}
	}
	if !(c.Params.WindSpeed > 0) {
		return fmt.Errorf("ocean: wind speed %v must be positive", c.Params.WindSpeed)
	}
	if !(c.Params.FetchLength > 0) {
		return fmt.Errorf("ocean: fetch length %v must be positive", c.Params.FetchLength)
	}
	return nil
}

// FromMap populates the config from a string map (flag-style key/value pairs).
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	if v, ok := cfg["resolution"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Resolution = parsed
		}
	}
	if v, ok := cfg["seed"]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Seed = parsed
		}
	}
	if v, ok := cfg["wind_speed"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed > 0 {
			c.Params.WindSpeed = parsed
		}
	}
	if v, ok := cfg["wind_direction"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			c.Params.WindDirection = wrapDegrees(parsed)
		}
	}
	if v, ok := cfg["fetch"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed > 0 {
			c.Params.FetchLength = parsed
		}
	}
	if v, ok := cfg["swell"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			c.Params.Swell = clampRange(parsed, 0, 2)
		}
	}
	if v, ok := cfg["detail"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			c.Params.Detail = clampRange(parsed, 0, 1)
		}
	}
	if v, ok := cfg["spread"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			c.Params.Spread = clampRange(parsed, 0, 1)
		}
	}
	if v, ok := cfg["choppiness"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			c.Params.Choppiness = clampRange(parsed, 0, 2)
		}
	}
	if v, ok := cfg["foam_amount"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			c.Params.FoamAmount = clampRange(parsed, 0, 10)
		}
	}
	return c
}

func clampRange(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func wrapDegrees(v float64) float64 {
	v = math.Mod(v, 360)
	if v < 0 {
		v += 360
	}
	return v
}

func clampVec01(v mgl32.Vec3) mgl32.Vec3 {
	for i := 0; i < 3; i++ {
		if v[i] < 0 {
			v[i] = 0
		}
		if v[i] > 1 {
			v[i] = 1
		}
	}
	return v
}

// physicsEqual reports whether two parameter sets produce the same base
// spectrum. Color and foam-integration fields do not participate.
func physicsEqual(a, b Params) bool {
	return a.WindSpeed == b.WindSpeed &&
		a.WindDirection == b.WindDirection &&
		a.FetchLength == b.FetchLength &&
		a.Swell == b.Swell &&
		a.Detail == b.Detail &&
		a.Spread == b.Spread
}
