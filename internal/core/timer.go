package core

import "time"

// FixedStep advances a continuous-time simulation in steady increments. The
// render loop may run at any rate; Steps reports how many fixed ticks fit
// into the accumulated wall time so simulation dt stays constant.
type FixedStep struct {
	step        time.Duration
	accumulator time.Duration
	last        time.Time
}

// NewFixedStep constructs a FixedStep controller targeting the given TPS.
func NewFixedStep(tps int) *FixedStep {
	if tps <= 0 {
		tps = 60
	}
	fs := &FixedStep{}
	fs.SetTPS(tps)
	return fs
}

// SetTPS changes the tick rate. It is safe to call from the main loop.
func (f *FixedStep) SetTPS(tps int) {
	if tps <= 0 {
		tps = 60
	}
	f.step = time.Second / time.Duration(tps)
}

// Dt returns the fixed tick duration in seconds.
func (f *FixedStep) Dt() float64 {
	return f.step.Seconds()
}

// Steps reports how many fixed ticks the simulation should advance this
// frame. Capped so a long stall cannot trigger a catch-up spiral.
func (f *FixedStep) Steps() int {
	now := time.Now()
	if f.last.IsZero() {
		f.last = now
	}
	f.accumulator += now.Sub(f.last)
	f.last = now

	n := 0
	for f.accumulator >= f.step && n < 4 {
		f.accumulator -= f.step
		n++
	}
	if n == 4 {
		f.accumulator = 0
	}
	return n
}
