package ocean

import (
	"math"
	"math/bits"

	icore "oceansim/internal/core"
)

// butterfly performs the 2D inverse FFT used to bring evolved spectra into
// the spatial domain: radix-2 Cooley-Tukey, log2(N) ordered passes per axis
// (horizontal then vertical), each pass reading the previous pass's output
// through a ping-pong grid pair so no pass aliases its own input.
//
// The transform is the plain exponential sum Σ h(k)·e^{+2πi·kn/N} with no
// 1/N² normalization: spectrum amplitudes already carry the bin-area scale,
// so a single occupied bin comes out as a unit-amplitude complex sinusoid.
type butterfly struct {
	n       int
	stages  int
	rev     []int
	twiddle [][]complex128 // per stage, indexed by position within a group
}

// newButterfly precomputes the bit-reversal table and per-stage twiddle
// factors for an N-point transform. N must be a power of two.
func newButterfly(n int) *butterfly {
	stages := bits.TrailingZeros(uint(n))
	b := &butterfly{n: n, stages: stages, rev: make([]int, n)}
	for i := 0; i < n; i++ {
		b.rev[i] = int(bits.Reverse(uint(i)) >> (bits.UintSize - stages))
	}
	b.twiddle = make([][]complex128, stages)
	for s := 0; s < stages; s++ {
		size := 1 << (s + 1)
		tw := make([]complex128, size)
		for j := 0; j < size; j++ {
			angle := 2 * math.Pi * float64(j) / float64(size)
			sin, cos := math.Sincos(angle)
			tw[j] = complex(cos, sin)
		}
		b.twiddle[s] = tw
	}
	return b
}

// Inverse transforms src into the spatial domain using pp as scratch. The
// result is left in pp.Read(); src itself is not modified.
func (b *butterfly) Inverse(src *icore.ComplexGrid, pp *icore.PingPong) *icore.ComplexGrid {
	n := b.n

	// Horizontal reorder pass: bit-reverse within each row.
	in := src.Values()
	out := pp.Write().Values()
	for y := 0; y < n; y++ {
		row := y * n
		for x := 0; x < n; x++ {
			out[row+x] = in[row+b.rev[x]]
		}
	}
	pp.Swap()

	for s := 0; s < b.stages; s++ {
		b.passHorizontal(pp, s)
		pp.Swap()
	}

	// Vertical reorder pass.
	in = pp.Read().Values()
	out = pp.Write().Values()
	for y := 0; y < n; y++ {
		srcRow := b.rev[y] * n
		dstRow := y * n
		copy(out[dstRow:dstRow+n], in[srcRow:srcRow+n])
	}
	pp.Swap()

	for s := 0; s < b.stages; s++ {
		b.passVertical(pp, s)
		pp.Swap()
	}

	return pp.Read()
}

// passHorizontal applies one butterfly stage along rows.
func (b *butterfly) passHorizontal(pp *icore.PingPong, stage int) {
	n := b.n
	half := 1 << stage
	mask := half<<1 - 1
	tw := b.twiddle[stage]
	in := pp.Read().Values()
	out := pp.Write().Values()
	for y := 0; y < n; y++ {
		row := y * n
		for x := 0; x < n; x++ {
			j := x & mask
			if j < half {
				out[row+x] = in[row+x] + tw[j]*in[row+x+half]
			} else {
				out[row+x] = in[row+x-half] + tw[j]*in[row+x]
			}
		}
	}
}

// passVertical applies one butterfly stage along columns.
func (b *butterfly) passVertical(pp *icore.PingPong, stage int) {
	n := b.n
	half := 1 << stage
	mask := half<<1 - 1
	tw := b.twiddle[stage]
	in := pp.Read().Values()
	out := pp.Write().Values()
	for y := 0; y < n; y++ {
		j := y & mask
		row := y * n
		if j < half {
			other := (y + half) * n
			w := tw[j]
			for x := 0; x < n; x++ {
				out[row+x] = in[row+x] + w*in[other+x]
			}
		} else {
			other := (y - half) * n
			w := tw[j]
			for x := 0; x < n; x++ {
				out[row+x] = in[other+x] + w*in[row+x]
			}
		}
	}
}
