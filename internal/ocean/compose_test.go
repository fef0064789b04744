package ocean

import (
	"math"
	"testing"

	icore "oceansim/internal/core"
)

func TestComposeFlatSea(t *testing.T) {
	n := 8
	planes := newTestPlanes(n)
	disp := icore.NewFloatField(n, 3)
	normal := icore.NewFloatField(n, 2)
	seed := icore.NewFloatField(n, 1)

	composeFields(&planes, disp, normal, seed, DefaultParams())

	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			for c := 0; c < 3; c++ {
				if disp.At(x, y, c) != 0 {
					t.Fatalf("flat sea displacement (%d,%d,%d) = %v", x, y, c, disp.At(x, y, c))
				}
			}
			if normal.At(x, y, 0) != 0 || normal.At(x, y, 1) != 0 {
				t.Fatalf("flat sea slope (%d,%d) nonzero", x, y)
			}
			// Jacobian of the identity map is 1, so no crest compression.
			if seed.At(x, y, 0) != 0 {
				t.Fatalf("flat sea foam seed (%d,%d) = %v", x, y, seed.At(x, y, 0))
			}
		}
	}
}

func TestComposeClampsNonFinite(t *testing.T) {
	n := 8
	planes := newTestPlanes(n)
	planes[planeDisplace].Set(1, 1, complex(math.NaN(), math.Inf(1)))
	planes[planeHeight].Set(2, 2, complex(math.Inf(-1), math.NaN()))
	planes[planeSlope].Set(3, 3, complex(math.NaN(), math.NaN()))
	planes[planeGradient].Set(4, 4, complex(math.Inf(1), math.Inf(1)))

	disp := icore.NewFloatField(n, 3)
	normal := icore.NewFloatField(n, 2)
	seed := icore.NewFloatField(n, 1)
	composeFields(&planes, disp, normal, seed, DefaultParams())

	check := func(name string, f *icore.FloatField) {
		for _, v := range f.Values() {
			if math.IsNaN(float64(v)) || math.IsInf(float64(v), 0) {
				t.Fatalf("%s field leaked a non-finite texel", name)
			}
		}
	}
	check("displacement", disp)
	check("normal", normal)
	check("foam seed", seed)

	for _, v := range seed.Values() {
		if v < 0 || v > 1 {
			t.Fatalf("foam seed %v outside [0,1]", v)
		}
	}
}

func TestComposeChoppinessScalesHorizontal(t *testing.T) {
	n := 8
	planes := newTestPlanes(n)
	planes[planeDisplace].Set(2, 3, complex(0.5, -0.25))

	disp := icore.NewFloatField(n, 3)
	normal := icore.NewFloatField(n, 2)
	seed := icore.NewFloatField(n, 1)

	p := DefaultParams()
	p.Choppiness = 0.5
	composeFields(&planes, disp, normal, seed, p)
	if disp.At(2, 3, 0) != 0.25 || disp.At(2, 3, 1) != -0.125 {
		t.Fatalf("choppiness 0.5 gave horizontal (%v, %v)", disp.At(2, 3, 0), disp.At(2, 3, 1))
	}

	p.Choppiness = 2
	composeFields(&planes, disp, normal, seed, p)
	if disp.At(2, 3, 0) != 1 || disp.At(2, 3, 1) != -0.5 {
		t.Fatalf("choppiness 2 gave horizontal (%v, %v)", disp.At(2, 3, 0), disp.At(2, 3, 1))
	}
}
