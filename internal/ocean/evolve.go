package ocean

import (
	"math"

	icore "oceansim/internal/core"
)

// Indices of the packed frequency planes produced per frame. Each plane
// carries two real output fields, one in the real and one in the imaginary
// part of the inverse transform (both component spectra are Hermitian, so
// the parts separate cleanly).
const (
	planeDisplace = iota // Dx + i·Dy, horizontal displacement
	planeHeight          // h + i·∂Dx/∂y, height and cross gradient
	planeSlope           // ∂h/∂x + i·∂h/∂y, normal seed
	planeGradient        // ∂Dx/∂x + i·∂Dy/∂y, Jacobian diagonal
	planeCount
)

// evolveSpectrum advances every bin of the base spectrum to time t via the
// dispersion relation and expands the result into the packed derivative
// planes. Pure function of (base, conj, t): cascades may run this in any
// order relative to one another.
//
//	evolved(k, t) = base(k)·e^{iωt} + conj(k)·e^{-iωt}
func evolveSpectrum(base, conj *icore.ComplexGrid, planes *[planeCount]*icore.ComplexGrid, tile, t float64) {
	n := base.N
	for y := 0; y < n; y++ {
		ky := waveNumber(y, n, tile)
		for x := 0; x < n; x++ {
			kx := waveNumber(x, n, tile)
			k := math.Hypot(kx, ky)

			// Wrapped phase keeps the trig bounded at large t.
			phase := math.Mod(dispersion(k)*t, 2*math.Pi)
			s, c := math.Sincos(phase)
			fwd := complex(c, s)

			h := base.At(x, y)*fwd + conj.At(x, y)*complex(c, -s)

			// The k=0 bin has no direction, and a Nyquist row/column is its
			// own mirror, so derivative spectra there cannot stay Hermitian.
			// Both carry height only.
			if k == 0 || x == n/2 || y == n/2 {
				planes[planeDisplace].Set(x, y, 0)
				planes[planeHeight].Set(x, y, h)
				planes[planeSlope].Set(x, y, 0)
				planes[planeGradient].Set(x, y, 0)
				continue
			}

			nx := kx / k
			ny := ky / k

			// Horizontal displacement spectra: D = -i·(k/|k|)·h.
			dx := complex(0, -nx) * h
			dy := complex(0, -ny) * h
			planes[planeDisplace].Set(x, y, dx+complex(0, 1)*dy)

			// Slopes: ∂h/∂x = i·kx·h.
			sx := complex(0, kx) * h
			sy := complex(0, ky) * h
			planes[planeSlope].Set(x, y, sx+complex(0, 1)*sy)

			// Displacement gradients: ∂Dx/∂x = kx²/|k|·h etc.
			gxx := complex(kx*nx, 0) * h
			gyy := complex(ky*ny, 0) * h
			gxy := complex(kx*ny, 0) * h
			planes[planeHeight].Set(x, y, h+complex(0, 1)*gxy)
			planes[planeGradient].Set(x, y, gxx+complex(0, 1)*gyy)
		}
	}
}
