package clipmap

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Source is the cascade output surface the mesh samples from. The ocean
// simulation satisfies it; tests substitute analytic fields.
type Source interface {
	CascadeCount() int
	CascadeEnabled(i int) bool
	CascadeTileSize(i int) float64
	SampleDisplacement(i int, u, v float64) (float32, float32, float32)
	SampleNormalSeed(i int, u, v float64) (float32, float32)
	SampleFoam(i int, u, v float64) float32
}

// Config controls the ring layout.
type Config struct {
	// Rings is the number of concentric LOD rings.
	Rings int
	// CellsPerSide is the cell count per ring edge. Must be even, and large
	// enough that outer rings retain a band around the interior hole.
	CellsPerSide int
	// BaseSpacing is ring 0's grid spacing in world units; each outer ring
	// doubles it.
	BaseSpacing float64
	// BaseHeight is the undisplaced water plane height.
	BaseHeight float64
}

// DefaultConfig returns a four-ring layout with one-meter inner spacing.
func DefaultConfig() Config {
	return Config{Rings: 4, CellsPerSide: 64, BaseSpacing: 1, BaseHeight: 0}
}

// Vertex is one displaced mesh vertex handed to the renderer.
type Vertex struct {
	// Position is the final world position: (base XY, base height) plus the
	// summed cascade displacement, applied exactly once.
	Position mgl32.Vec3
	// Blend fades the ring's outermost band so adjacent rings cross over
	// smoothly.
	Blend float32
}

// Ring is one LOD level: a square vertex grid whose center snaps to the
// ring's own spacing, so vertex world positions only ever move in whole
// grid-spacing steps.
type Ring struct {
	level    int
	spacing  float64
	centerX  float64
	centerY  float64
	vertices []Vertex
	indices  []uint32

	cells int
	verts int // verts = cells + 1 surface vertices per side; skirt follows
}

// Level returns the LOD index, 0 being the finest.
func (r *Ring) Level() int { return r.level }

// Spacing returns the ring's grid spacing in world units.
func (r *Ring) Spacing() float64 { return r.spacing }

// Center returns the current grid-snapped center.
func (r *Ring) Center() (float64, float64) { return r.centerX, r.centerY }

// Vertices returns the displaced vertex buffer, surface grid first, then the
// skirt strip around the outer edge.
func (r *Ring) Vertices() []Vertex { return r.vertices }

// Indices returns the triangle index buffer. Topology is fixed at startup.
func (r *Ring) Indices() []uint32 { return r.indices }

// surfaceVertexCount returns the number of grid vertices before the skirt.
func (r *Ring) surfaceVertexCount() int { return r.verts * r.verts }

// Mesh maintains the concentric rings around the viewer and projects the
// cascade outputs onto them.
type Mesh struct {
	cfg   Config
	rings []*Ring
}

// New validates the configuration and builds the ring set with fixed
// topology. Vertices are positioned on the first Update/Displace.
func New(cfg Config) (*Mesh, error) {
	if cfg.Rings < 1 {
		return nil, fmt.Errorf("clipmap: ring count %d must be at least 1", cfg.Rings)
	}
	if cfg.CellsPerSide < 8 || cfg.CellsPerSide%2 != 0 {
		return nil, fmt.Errorf("clipmap: cells per side %d must be even and >= 8", cfg.CellsPerSide)
	}
	if !(cfg.BaseSpacing > 0) || math.IsInf(cfg.BaseSpacing, 0) {
		return nil, fmt.Errorf("clipmap: base spacing %v must be positive and finite", cfg.BaseSpacing)
	}
	m := &Mesh{cfg: cfg}
	spacing := cfg.BaseSpacing
	for level := 0; level < cfg.Rings; level++ {
		m.rings = append(m.rings, newRing(level, cfg.CellsPerSide, spacing))
		spacing *= 2
	}
	return m, nil
}

// Rings exposes the LOD rings, finest first.
func (m *Mesh) Rings() []*Ring { return m.rings }

func newRing(level, cells int, spacing float64) *Ring {
	verts := cells + 1
	r := &Ring{
		level:   level,
		spacing: spacing,
		cells:   cells,
		verts:   verts,
	}
	// Surface grid plus one skirt vertex under each outer-edge vertex. The
	// boundary walk visits each corner once, so it has 4·(verts−1) entries.
	r.vertices = make([]Vertex, verts*verts+4*(verts-1))
	r.indices = buildIndices(level, cells)
	return r
}

// holeHalfCells returns the half-extent, in this ring's cells, of the
// interior square covered by the next finer ring. One cell is kept as the
// shared transition band.
func holeHalfCells(level, cells int) int {
	if level == 0 {
		return 0
	}
	return cells/4 - 1
}

// buildIndices triangulates the ring once. Outer rings leave a hole for the
// finer rings, minus a one-cell overlap band; a skirt strip hangs from the
// outer edge to mask spacing-mismatch cracks against the next coarser ring.
func buildIndices(level, cells int) []uint32 {
	verts := cells + 1
	hole := holeHalfCells(level, cells)
	var idx []uint32

	vid := func(x, y int) uint32 { return uint32(y*verts + x) }

	for cy := 0; cy < cells; cy++ {
		for cx := 0; cx < cells; cx++ {
			if hole > 0 {
				// Cell center offset from the ring center, in cells.
				ox := float64(cx) + 0.5 - float64(cells)/2
				oy := float64(cy) + 0.5 - float64(cells)/2
				if math.Abs(ox) < float64(hole) && math.Abs(oy) < float64(hole) {
					continue
				}
			}
			a := vid(cx, cy)
			b := vid(cx+1, cy)
			c := vid(cx, cy+1)
			d := vid(cx+1, cy+1)
			idx = append(idx, a, c, b, b, c, d)
		}
	}

	// Skirt quads: each outer-edge vertex pairs with its dropped duplicate.
	skirtBase := uint32(verts * verts)
	edge := outerEdgeVertexIDs(verts)
	for i := range edge {
		j := (i + 1) % len(edge)
		a := edge[i]
		b := edge[j]
		sa := skirtBase + uint32(i)
		sb := skirtBase + uint32(j)
		idx = append(idx, a, sa, b, b, sa, sb)
	}
	return idx
}

// outerEdgeVertexIDs walks the ring's outer boundary counter-clockwise.
func outerEdgeVertexIDs(verts int) []uint32 {
	var ids []uint32
	last := verts - 1
	for x := 0; x < last; x++ {
		ids = append(ids, uint32(x))
	}
	for y := 0; y < last; y++ {
		ids = append(ids, uint32(y*verts+last))
	}
	for x := last; x > 0; x-- {
		ids = append(ids, uint32(last*verts+x))
	}
	for y := last; y > 0; y-- {
		ids = append(ids, uint32(y*verts))
	}
	return ids
}

// snap restricts v to whole multiples of spacing.
func snap(v, spacing float64) float64 {
	return math.Floor(v/spacing+0.5) * spacing
}

// Update recenters every ring on the camera, snapped to each ring's own
// spacing. Between snap steps the vertex world positions are time-invariant.
func (m *Mesh) Update(camX, camY float64) {
	for _, r := range m.rings {
		r.centerX = snap(camX, r.spacing)
		r.centerY = snap(camY, r.spacing)
	}
}

// Displace recomputes every vertex from the ring layout and the cascade
// outputs. Must be called after the simulation's frame barrier: all cascades'
// composer outputs for the current frame are sampled here.
func (m *Mesh) Displace(src Source) {
	for _, r := range m.rings {
		m.displaceRing(r, src)
	}
}

func (m *Mesh) displaceRing(r *Ring, src Source) {
	half := float64(r.cells) / 2
	for iy := 0; iy < r.verts; iy++ {
		for ix := 0; ix < r.verts; ix++ {
			// World position is built once from the snapped center and the
			// vertex's fixed local offset; the same value feeds both the
			// cascade sampling and the final placement.
			wx := r.centerX + (float64(ix)-half)*r.spacing
			wy := r.centerY + (float64(iy)-half)*r.spacing

			dx, dy, dz := BlendDisplacement(src, r.spacing, wx, wy)

			v := &r.vertices[iy*r.verts+ix]
			v.Position = mgl32.Vec3{
				float32(wx) + dx,
				float32(wy) + dy,
				float32(m.cfg.BaseHeight) + dz,
			}
			v.Blend = edgeBlend(ix, iy, r.verts)
		}
	}

	// Skirt duplicates the outer edge, dropped by half a coarse cell.
	drop := float32(r.spacing)
	edge := outerEdgeVertexIDs(r.verts)
	base := r.surfaceVertexCount()
	for i, id := range edge {
		sv := &r.vertices[base+i]
		*sv = r.vertices[id]
		sv.Position[2] -= drop
		sv.Blend = 0
	}
}

// edgeBlend fades the outermost vertex band from one to zero so the ring
// hands off to its coarser neighbor without a hard edge.
func edgeBlend(ix, iy, verts int) float32 {
	last := verts - 1
	d := ix
	if iy < d {
		d = iy
	}
	if last-ix < d {
		d = last - ix
	}
	if last-iy < d {
		d = last - iy
	}
	if d >= 2 {
		return 1
	}
	return float32(d) / 2
}
