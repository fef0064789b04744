package ocean

import (
	"math"

	icore "oceansim/internal/core"
)

// sanitize squashes NaN/Inf to zero. Numerical edge cases in the dispersion
// math are clamped here, at the composer boundary, so they can never reach
// the persistent foam accumulator or the renderer.
func sanitize(v float64) float32 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return float32(v)
}

// composeFields unpacks the four transformed planes into the cascade's
// output textures: 3-channel displacement (choppy horizontal plus vertical
// height), 2-channel normal seed (height slopes), and the scalar Jacobian
// foam seed. Strictly per-texel; no cross-texel reads.
func composeFields(planes *[planeCount]*icore.ComplexGrid, disp, normal, foamSeed *icore.FloatField, p Params) {
	n := disp.N
	chop := p.Choppiness
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			d := planes[planeDisplace].At(x, y)
			h := planes[planeHeight].At(x, y)
			s := planes[planeSlope].At(x, y)
			g := planes[planeGradient].At(x, y)

			disp.Set(x, y, 0, sanitize(chop*real(d)))
			disp.Set(x, y, 1, sanitize(chop*imag(d)))
			disp.Set(x, y, 2, sanitize(real(h)))

			normal.Set(x, y, 0, sanitize(real(s)))
			normal.Set(x, y, 1, sanitize(imag(s)))

			// Jacobian determinant of the horizontal displacement map.
			// Values below one mean crests are compressing.
			jxx := 1 + chop*real(g)
			jyy := 1 + chop*imag(g)
			jxy := chop * imag(h)
			j := jxx*jyy - jxy*jxy

			seed := sanitize(1 - j)
			if seed < 0 {
				seed = 0
			}
			if seed > 1 {
				seed = 1
			}
			foamSeed.Set(x, y, 0, seed)
		}
	}
}
