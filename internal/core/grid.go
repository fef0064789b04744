package core

import "math"

// ComplexGrid stores a 2D grid of complex values in row-major order. It backs
// the frequency-domain buffers and the butterfly transform scratch space.
type ComplexGrid struct {
	N    int
	data []complex128
}

// NewComplexGrid allocates an N×N complex grid.
func NewComplexGrid(n int) *ComplexGrid {
	if n <= 0 {
		n = 1
	}
	return &ComplexGrid{N: n, data: make([]complex128, n*n)}
}

// Values exposes the backing slice so callers can read/write bins directly.
func (g *ComplexGrid) Values() []complex128 { return g.data }

// Index returns the linear slice index for bin (x, y).
func (g *ComplexGrid) Index(x, y int) int { return y*g.N + x }

// At reads the bin at (x, y).
func (g *ComplexGrid) At(x, y int) complex128 { return g.data[y*g.N+x] }

// Set writes the bin at (x, y).
func (g *ComplexGrid) Set(x, y int, v complex128) { g.data[y*g.N+x] = v }

// Clear fills the grid with zeros.
func (g *ComplexGrid) Clear() {
	for i := range g.data {
		g.data[i] = 0
	}
}

// CopyFrom copies another grid of the same dimensions into this one.
func (g *ComplexGrid) CopyFrom(src *ComplexGrid) {
	copy(g.data, src.data)
}

// PingPong is a pair of equally sized complex grids with an index flip. One
// grid is read while the other is written; Swap makes the written grid the
// next read source without reallocating.
type PingPong struct {
	grids [2]*ComplexGrid
	read  int
}

// NewPingPong allocates a ping-pong pair of N×N grids.
func NewPingPong(n int) *PingPong {
	return &PingPong{grids: [2]*ComplexGrid{NewComplexGrid(n), NewComplexGrid(n)}}
}

// Read returns the grid holding the previous pass's output.
func (p *PingPong) Read() *ComplexGrid { return p.grids[p.read] }

// Write returns the grid the current pass should fill.
func (p *PingPong) Write() *ComplexGrid { return p.grids[1-p.read] }

// Swap flips the read index so the last written grid becomes readable.
func (p *PingPong) Swap() { p.read = 1 - p.read }

// FloatField stores a 2D grid of float32 texels with a fixed number of
// channels per texel, row-major. It is the CPU analogue of the output
// textures handed to the renderer.
type FloatField struct {
	N        int
	Channels int
	data     []float32
}

// NewFloatField allocates an N×N field with the given channel count.
func NewFloatField(n, channels int) *FloatField {
	if n <= 0 {
		n = 1
	}
	if channels <= 0 {
		channels = 1
	}
	return &FloatField{N: n, Channels: channels, data: make([]float32, n*n*channels)}
}

// Values exposes the backing slice.
func (f *FloatField) Values() []float32 { return f.data }

// Index returns the base slice index of texel (x, y).
func (f *FloatField) Index(x, y int) int { return (y*f.N + x) * f.Channels }

// At reads channel c of texel (x, y).
func (f *FloatField) At(x, y, c int) float32 { return f.data[(y*f.N+x)*f.Channels+c] }

// Set writes channel c of texel (x, y).
func (f *FloatField) Set(x, y, c int, v float32) { f.data[(y*f.N+x)*f.Channels+c] = v }

// Clear fills the field with zeros.
func (f *FloatField) Clear() {
	for i := range f.data {
		f.data[i] = 0
	}
}

// wrapIndex applies periodic wrapping to a texel coordinate.
func wrapIndex(i, n int) int {
	i %= n
	if i < 0 {
		i += n
	}
	return i
}

// SampleBilinear samples channel c at continuous texture coordinates with
// periodic wrapping. Texel i sits at u = i/N, the same convention the
// transform output uses for world position i·tile/N, so sampling a texel's
// own coordinate returns the stored value exactly. Out-of-range values wrap
// rather than clamp because cascade tiles are periodic.
func (f *FloatField) SampleBilinear(u, v float64, c int) float32 {
	n := float64(f.N)
	x := u * n
	y := v * n
	x0 := int(math.Floor(x))
	y0 := int(math.Floor(y))
	fx := float32(x - float64(x0))
	fy := float32(y - float64(y0))

	xa := wrapIndex(x0, f.N)
	xb := wrapIndex(x0+1, f.N)
	ya := wrapIndex(y0, f.N)
	yb := wrapIndex(y0+1, f.N)

	v00 := f.At(xa, ya, c)
	v10 := f.At(xb, ya, c)
	v01 := f.At(xa, yb, c)
	v11 := f.At(xb, yb, c)

	top := v00 + (v10-v00)*fx
	bot := v01 + (v11-v01)*fx
	return top + (bot-top)*fy
}
