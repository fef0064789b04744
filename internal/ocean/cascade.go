package ocean

import (
	"fmt"

	icore "oceansim/internal/core"
)

// maxCascadeTexels caps a single cascade's buffer footprint. Blowing the cap
// disables that cascade only; the rest of the set keeps running.
const maxCascadeTexels = 2048 * 2048

// Cascade is one spectral pipeline instance at a fixed spatial tile size.
// All buffers are exclusively owned; nothing here is shared across cascades.
type Cascade struct {
	index      int
	resolution int
	tileSize   float64
	uvScale    float64

	// Base spectrum, double-buffered: rebuilds land in the staging pair and
	// are flipped in at a frame boundary so evolution never reads a
	// partially written spectrum.
	base, conj               *icore.ComplexGrid
	stagingBase, stagingConj *icore.ComplexGrid
	staged                   bool

	fft    *butterfly
	planes [planeCount]*icore.ComplexGrid
	pp     *icore.PingPong

	displacement *icore.FloatField // x, y chop + z height
	normalSeed   *icore.FloatField // height slopes
	foamSeed     *icore.FloatField // raw Jacobian seed, per frame
	foam         [2]*icore.FloatField
	foamRead     int
}

// newCascade allocates every buffer a cascade owns. Resolution is assumed
// power-of-two (validated by Config); the texel cap is enforced here because
// it is a per-cascade resource failure, not a config error.
func newCascade(index, resolution int, tileSize float64) (*Cascade, error) {
	if resolution*resolution > maxCascadeTexels {
		return nil, fmt.Errorf("cascade %d: %dx%d exceeds texture budget", index, resolution, resolution)
	}
	c := &Cascade{
		index:        index,
		resolution:   resolution,
		tileSize:     tileSize,
		uvScale:      1 / tileSize,
		base:         icore.NewComplexGrid(resolution),
		conj:         icore.NewComplexGrid(resolution),
		stagingBase:  icore.NewComplexGrid(resolution),
		stagingConj:  icore.NewComplexGrid(resolution),
		fft:          newButterfly(resolution),
		pp:           icore.NewPingPong(resolution),
		displacement: icore.NewFloatField(resolution, 3),
		normalSeed:   icore.NewFloatField(resolution, 2),
		foamSeed:     icore.NewFloatField(resolution, 1),
	}
	for i := range c.planes {
		c.planes[i] = icore.NewComplexGrid(resolution)
	}
	c.foam[0] = icore.NewFloatField(resolution, 1)
	c.foam[1] = icore.NewFloatField(resolution, 1)
	return c, nil
}

// rebuildSpectrum regenerates the base spectrum into the staging buffers.
// Safe to run while the live spectrum is still being evolved.
func (c *Cascade) rebuildSpectrum(seed int64, p Params) {
	buildSpectrum(c.stagingBase, c.stagingConj, c.tileSize, seed, p)
	c.staged = true
}

// commitSpectrum flips a staged rebuild into the live buffers. Called only
// at the frame boundary, before any evolution is dispatched.
func (c *Cascade) commitSpectrum() {
	if !c.staged {
		return
	}
	c.base, c.stagingBase = c.stagingBase, c.base
	c.conj, c.stagingConj = c.stagingConj, c.conj
	c.staged = false
}

// step runs the per-frame chain for this cascade: evolve, transform,
// compose, foam. The four stages are strictly ordered; each consumes the
// previous stage's output.
func (c *Cascade) step(t, dt float64, p Params) {
	evolveSpectrum(c.base, c.conj, &c.planes, c.tileSize, t)

	for i := range c.planes {
		spatial := c.fft.Inverse(c.planes[i], c.pp)
		// The spatial result is reused through the same plane slot so the
		// composer reads transformed data without extra copies.
		c.planes[i].CopyFrom(spatial)
	}

	composeFields(&c.planes, c.displacement, c.normalSeed, c.foamSeed, p)

	prev := c.foam[c.foamRead]
	next := c.foam[1-c.foamRead]
	stepFoam(prev, next, c.foamSeed, dt, p.FoamDecay, p.FoamGrowth, p.FoamAmount)
	c.foamRead = 1 - c.foamRead
}

// TileSize returns the world-space edge length of the cascade tile.
func (c *Cascade) TileSize() float64 { return c.tileSize }

// UVScale returns 1/tileSize, the factor consumers multiply world positions
// by to get sampling UVs. Exposed so renderer and simulation compute the
// exact same mapping.
func (c *Cascade) UVScale() float64 { return c.uvScale }

// Resolution returns the grid size per axis.
func (c *Cascade) Resolution() int { return c.resolution }

// Displacement returns the 3-channel displacement texture.
func (c *Cascade) Displacement() *icore.FloatField { return c.displacement }

// NormalSeed returns the 2-channel slope texture.
func (c *Cascade) NormalSeed() *icore.FloatField { return c.normalSeed }

// Foam returns the persistent foam texture for the current frame.
func (c *Cascade) Foam() *icore.FloatField { return c.foam[c.foamRead] }
