package ocean

import (
	"math"

	icore "oceansim/internal/core"
)

// stepFoam integrates the Jacobian seed into the persistent foam buffer.
// decay and growth are per-second rates; the dt exponentiation makes the
// update frame-rate independent, converging on seed·growth/(1−decay) for a
// constant seed regardless of step size. prev is only read and next only
// written; the caller flips the pair afterwards.
func stepFoam(prev, next, seed *icore.FloatField, dt, decay, growth, gain float64) {
	if decay <= 0 {
		decay = 1e-6
	}
	if decay >= 1 {
		decay = 1 - 1e-6
	}
	alpha := float32(math.Pow(decay, dt))
	inject := float32(growth * (1 - float64(alpha)) / (1 - decay))
	g := float32(gain)

	pv := prev.Values()
	nv := next.Values()
	sv := seed.Values()
	for i := range nv {
		s := sv[i] * g
		if s > 1 {
			s = 1
		}
		f := pv[i]*alpha + s*inject
		if f < 0 || f != f { // NaN guard: the accumulator must never poison
			f = 0
		}
		if f > 1 {
			f = 1
		}
		nv[i] = f
	}
}
