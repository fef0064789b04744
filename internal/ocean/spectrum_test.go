package ocean

import (
	"math"
	"slices"
	"testing"

	"gonum.org/v1/gonum/floats"

	icore "oceansim/internal/core"
)

func TestSpectrumDeterministic(t *testing.T) {
	p := DefaultParams()
	a := icore.NewComplexGrid(64)
	ac := icore.NewComplexGrid(64)
	b := icore.NewComplexGrid(64)
	bc := icore.NewComplexGrid(64)

	buildSpectrum(a, ac, 256, 99, p)
	buildSpectrum(b, bc, 256, 99, p)

	if !slices.Equal(a.Values(), b.Values()) {
		t.Fatal("identical parameters must rebuild a bit-identical base spectrum")
	}
	if !slices.Equal(ac.Values(), bc.Values()) {
		t.Fatal("identical parameters must rebuild a bit-identical conjugate spectrum")
	}
}

func TestSpectrumZeroBin(t *testing.T) {
	p := DefaultParams()
	base := icore.NewComplexGrid(32)
	conj := icore.NewComplexGrid(32)
	buildSpectrum(base, conj, 128, 7, p)

	if base.At(0, 0) != 0 {
		t.Fatalf("k=0 bin must be zero, got %v", base.At(0, 0))
	}
	if conj.At(0, 0) != 0 {
		t.Fatalf("k=0 conjugate bin must be zero, got %v", conj.At(0, 0))
	}
}

func TestSpectrumConjugateSymmetry(t *testing.T) {
	p := DefaultParams()
	n := 16
	base := icore.NewComplexGrid(n)
	conj := icore.NewComplexGrid(n)
	buildSpectrum(base, conj, 64, 3, p)

	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			mirror := base.At((n-x)%n, (n-y)%n)
			got := conj.At(x, y)
			if real(got) != real(mirror) || imag(got) != -imag(mirror) {
				t.Fatalf("conj bin (%d,%d) = %v, want conjugate of %v", x, y, got, mirror)
			}
		}
	}
}

// windSpeed=20 m/s over 550 km of fetch puts the JONSWAP peak at
// ωp = 22·(g²/(U·F))^(1/3), which in deep
// water corresponds to kp ≈ ωp²/g. The k-space power peak sits near that
// wavenumber; the ω→k change of variables skews it somewhat, hence the wide
// tolerance.
func TestSpectrumPeakMatchesFetchModel(t *testing.T) {
	p := DefaultParams()
	p.WindSpeed = 20
	p.FetchLength = 550000
	p.Swell = 0.8
	p.Detail = 1

	omegaP := peakFrequency(p.WindSpeed, p.FetchLength)
	kp := omegaP * omegaP / gravity

	windTheta := p.WindDirection * math.Pi / 180
	bestK, bestPower := 0.0, 0.0
	for i := 1; i <= 4000; i++ {
		k := kp * float64(i) / 400 // scan 0.0025·kp .. 10·kp
		kx := k * math.Cos(windTheta)
		ky := k * math.Sin(windTheta)
		if pw := binPower(kx, ky, 1024, p); pw > bestPower {
			bestPower = pw
			bestK = k
		}
	}

	if bestPower == 0 {
		t.Fatal("spectrum power is zero along the wind direction")
	}
	if bestK < 0.6*kp || bestK > 1.4*kp {
		t.Fatalf("spectral peak at k=%.5f, want within 40%% of kp=%.5f", bestK, kp)
	}
}

// Qualitative contract: more wind piles up steeper, higher waves; more fetch
// moves energy to longer wavelengths.
func TestSpectrumQualitative(t *testing.T) {
	total := func(wind, fetch float64) float64 {
		p := DefaultParams()
		p.WindSpeed = wind
		p.FetchLength = fetch
		n := 64
		base := icore.NewComplexGrid(n)
		conj := icore.NewComplexGrid(n)
		buildSpectrum(base, conj, 512, 1, p)
		mags := make([]float64, 0, n*n)
		for _, v := range base.Values() {
			mags = append(mags, real(v)*real(v)+imag(v)*imag(v))
		}
		return floats.Sum(mags)
	}

	if total(6, 300000) >= total(18, 300000) {
		t.Fatal("higher wind speed must carry more spectral energy")
	}

	peakK := func(fetch float64) float64 {
		p := DefaultParams()
		p.WindSpeed = 12
		p.FetchLength = fetch
		best, bestPw := 0.0, 0.0
		for i := 1; i <= 2000; i++ {
			k := float64(i) / 2000
			if pw := binPower(k, 0, 1024, p); pw > bestPw {
				bestPw = pw
				best = k
			}
		}
		return best
	}
	if peakK(600000) >= peakK(40000) {
		t.Fatal("longer fetch must move the spectral peak to longer wavelengths")
	}
}

func TestSpectrumDetailAttenuatesShortWaves(t *testing.T) {
	sharp := DefaultParams()
	sharp.Detail = 1
	smooth := DefaultParams()
	smooth.Detail = 0

	// A short ripple-scale wave.
	k := 4.0
	if binPower(k, 0, 64, smooth) >= binPower(k, 0, 64, sharp) {
		t.Fatal("lowering detail must attenuate short wavelengths")
	}
}

// The detail cutoff is a physical length scale, so cascades with different
// tile sizes attenuate the same wavenumber by the same factor. Anything else
// would make overlapping cascades disagree about the same wave.
func TestSpectrumDetailCutoffTileIndependent(t *testing.T) {
	sharp := DefaultParams()
	sharp.Detail = 1
	soft := DefaultParams()
	soft.Detail = 0.3

	k := 3.0
	ratio := func(tile float64) float64 {
		return binPower(k, 0, tile, soft) / binPower(k, 0, tile, sharp)
	}
	a, b := ratio(64), ratio(1024)
	if math.Abs(a-b) > 1e-12 {
		t.Fatalf("detail attenuation depends on tile size: %v vs %v", a, b)
	}
}
