package ocean

import (
	"fmt"
	"math"
	"sync"

	"github.com/go-gl/mathgl/mgl32"

	icore "oceansim/internal/core"
)

// Ocean owns the cascade set and runs the per-frame pipeline. Parameters are
// single-writer: external callers mutate through the setters, and Step takes
// one snapshot per frame so every stage sees a consistent view.
type Ocean struct {
	cfg      Config
	cascades []*Cascade // nil entry = cascade disabled at construction

	mu      sync.Mutex
	pending Params
	dirty   bool

	time   float64
	status chan icore.StatusEvent
}

// New builds the cascade set from the configuration. Configuration errors
// reject the whole set; per-cascade allocation failures disable just that
// cascade and surface once on the status channel.
func New(cfg Config) (*Ocean, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	o := &Ocean{
		cfg:     cfg,
		pending: cfg.Params,
		dirty:   true,
		status:  make(chan icore.StatusEvent, 8),
	}
	alive := 0
	for i, tile := range cfg.TileSizes {
		res := cfg.Resolution
		if len(cfg.Resolutions) > 0 {
			res = cfg.Resolutions[i]
		}
		c, err := newCascade(i, res, tile)
		if err != nil {
			o.postStatus(icore.StatusEvent{Kind: icore.StatusCascadeDisabled, Cascade: i, Detail: err.Error()})
			o.cascades = append(o.cascades, nil)
			continue
		}
		o.cascades = append(o.cascades, c)
		alive++
	}
	if alive == 0 {
		return nil, fmt.Errorf("ocean: every cascade failed to allocate")
	}
	return o, nil
}

// Step advances the simulation by dt seconds. Within a cascade the stages
// run strictly in order; across cascades they run concurrently. A
// parameter-triggered spectrum rebuild completes and flips in before any
// evolution is dispatched, so displacement for this frame only ever comes
// from a fully built spectrum.
func (o *Ocean) Step(dt float64) {
	o.mu.Lock()
	p := o.pending
	dirty := o.dirty
	o.dirty = false
	o.mu.Unlock()

	if dirty {
		var wg sync.WaitGroup
		for _, c := range o.cascades {
			if c == nil {
				continue
			}
			wg.Add(1)
			go func(c *Cascade) {
				defer wg.Done()
				c.rebuildSpectrum(o.cfg.Seed, p)
			}(c)
		}
		wg.Wait()
		for _, c := range o.cascades {
			if c != nil {
				c.commitSpectrum()
			}
		}
	}

	o.time += dt

	var wg sync.WaitGroup
	for _, c := range o.cascades {
		if c == nil {
			continue
		}
		wg.Add(1)
		go func(c *Cascade) {
			defer wg.Done()
			c.step(o.time, dt, p)
		}(c)
	}
	wg.Wait()
}

// Time returns the accumulated simulation time in seconds.
func (o *Ocean) Time() float64 { return o.time }

// ResetTime rewinds simulation time to zero. State is always rebuilt from
// current parameters, never persisted.
func (o *Ocean) ResetTime() { o.time = 0 }

// Status exposes degraded-functionality events. The channel is buffered and
// never blocks the simulation; slow consumers simply miss older events.
func (o *Ocean) Status() <-chan icore.StatusEvent { return o.status }

func (o *Ocean) postStatus(ev icore.StatusEvent) {
	select {
	case o.status <- ev:
	default:
	}
}

// Params returns a copy of the current parameter set.
func (o *Ocean) Params() Params {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.pending
}

// markPhysics flags the spectrum caches of every cascade for rebuild at the
// next frame boundary when a physics-relevant parameter changed.
func (o *Ocean) markPhysics(old Params) {
	if !physicsEqual(old, o.pending) {
		o.dirty = true
	}
}

func (o *Ocean) reject(key string, v float64) bool {
	o.postStatus(icore.StatusEvent{
		Kind:   icore.StatusParameterRejected,
		Detail: fmt.Sprintf("%s=%v rejected, previous value kept", key, v),
	})
	return false
}

// SetWindSpeed updates the wind speed in m/s. Non-positive or non-finite
// values are rejected and the previous value retained.
func (o *Ocean) SetWindSpeed(v float64) bool {
	if !(v > 0) || math.IsInf(v, 0) {
		return o.reject("windSpeed", v)
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	old := o.pending
	o.pending.WindSpeed = clampRange(v, 0.01, 80)
	o.markPhysics(old)
	return true
}

// SetWindDirection updates the wind direction in degrees, wrapped to
// [0, 360).
func (o *Ocean) SetWindDirection(v float64) bool {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return o.reject("windDirection", v)
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	old := o.pending
	o.pending.WindDirection = wrapDegrees(v)
	o.markPhysics(old)
	return true
}

// SetFetchLength updates the fetch in meters. Non-positive values are
// rejected.
func (o *Ocean) SetFetchLength(v float64) bool {
	if !(v > 0) || math.IsInf(v, 0) {
		return o.reject("fetchLength", v)
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	old := o.pending
	o.pending.FetchLength = v
	o.markPhysics(old)
	return true
}

// SetSwell clamps to [0, 2].
func (o *Ocean) SetSwell(v float64) bool {
	if math.IsNaN(v) {
		return o.reject("swell", v)
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	old := o.pending
	o.pending.Swell = clampRange(v, 0, 2)
	o.markPhysics(old)
	return true
}

// SetDetail clamps to [0, 1].
func (o *Ocean) SetDetail(v float64) bool {
	if math.IsNaN(v) {
		return o.reject("detail", v)
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	old := o.pending
	o.pending.Detail = clampRange(v, 0, 1)
	o.markPhysics(old)
	return true
}

// SetSpread clamps to [0, 1].
func (o *Ocean) SetSpread(v float64) bool {
	if math.IsNaN(v) {
		return o.reject("spread", v)
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	old := o.pending
	o.pending.Spread = clampRange(v, 0, 1)
	o.markPhysics(old)
	return true
}

// SetChoppiness clamps to [0, 2]. Applied at composition time, so no
// spectrum rebuild is needed.
func (o *Ocean) SetChoppiness(v float64) bool {
	if math.IsNaN(v) {
		return o.reject("choppiness", v)
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	o.pending.Choppiness = clampRange(v, 0, 2)
	return true
}

// SetFoamAmount clamps to [0, 10].
func (o *Ocean) SetFoamAmount(v float64) bool {
	if math.IsNaN(v) {
		return o.reject("foamAmount", v)
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	o.pending.FoamAmount = clampRange(v, 0, 10)
	return true
}

// SetWaterColor clamps each channel to [0, 1]. Colors never touch
// simulation state.
func (o *Ocean) SetWaterColor(c mgl32.Vec3) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.pending.WaterColor = clampVec01(c)
	return true
}

// SetFoamColor clamps each channel to [0, 1].
func (o *Ocean) SetFoamColor(c mgl32.Vec3) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.pending.FoamColor = clampVec01(c)
	return true
}

// CascadeCount reports the configured number of cascades, including
// disabled slots.
func (o *Ocean) CascadeCount() int { return len(o.cascades) }

// CascadeEnabled reports whether cascade i allocated successfully.
func (o *Ocean) CascadeEnabled(i int) bool {
	return i >= 0 && i < len(o.cascades) && o.cascades[i] != nil
}

// CascadeTileSize returns the world-space tile edge of cascade i, or zero
// for a disabled cascade.
func (o *Ocean) CascadeTileSize(i int) float64 {
	if !o.CascadeEnabled(i) {
		return 0
	}
	return o.cascades[i].tileSize
}

// CascadeAt exposes cascade i for direct texture access, nil if disabled.
func (o *Ocean) CascadeAt(i int) *Cascade {
	if !o.CascadeEnabled(i) {
		return nil
	}
	return o.cascades[i]
}

// SampleDisplacement bilinearly samples cascade i's displacement at UV.
// Disabled cascades contribute zero, never a hole.
func (o *Ocean) SampleDisplacement(i int, u, v float64) (float32, float32, float32) {
	if !o.CascadeEnabled(i) {
		return 0, 0, 0
	}
	d := o.cascades[i].displacement
	return d.SampleBilinear(u, v, 0), d.SampleBilinear(u, v, 1), d.SampleBilinear(u, v, 2)
}

// SampleNormalSeed bilinearly samples cascade i's slope texture at UV.
func (o *Ocean) SampleNormalSeed(i int, u, v float64) (float32, float32) {
	if !o.CascadeEnabled(i) {
		return 0, 0
	}
	ns := o.cascades[i].normalSeed
	return ns.SampleBilinear(u, v, 0), ns.SampleBilinear(u, v, 1)
}

// SampleFoam bilinearly samples cascade i's persistent foam at UV.
func (o *Ocean) SampleFoam(i int, u, v float64) float32 {
	if !o.CascadeEnabled(i) {
		return 0
	}
	return o.cascades[i].Foam().SampleBilinear(u, v, 0)
}
