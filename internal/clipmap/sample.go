package clipmap

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// CascadeUV maps a world position onto a cascade tile. Pure function of the
// position and the tile size: identical world positions resolve to identical
// UVs no matter which ring or caller asks. Out-of-range positions wrap
// periodically, matching the tiled simulation domain.
func CascadeUV(wx, wy, tileSize float64) (float64, float64) {
	if !(tileSize > 0) || math.IsInf(tileSize, 0) {
		return 0, 0
	}
	u := wx / tileSize
	v := wy / tileSize
	u -= math.Floor(u)
	v -= math.Floor(v)
	return u, v
}

// CascadeWeight fades a cascade's contribution as the sampling grid spacing
// approaches the cascade's useful-frequency boundary. Full weight while the
// spacing resolves the tile comfortably, smoothly zero by an eighth of the
// tile so undersampled high frequencies never alias into the mesh.
func CascadeWeight(spacing, tileSize float64) float64 {
	if !(tileSize > 0) {
		return 0
	}
	r := 8 * spacing / tileSize
	return 1 - smoothstep(0.5, 1, r)
}

func smoothstep(lo, hi, v float64) float64 {
	t := (v - lo) / (hi - lo)
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	return t * t * (3 - 2*t)
}

// BlendDisplacement sums the weighted cascade displacements at a world
// position sampled at the given grid spacing. Disabled cascades carry zero
// weight and zero contribution.
func BlendDisplacement(src Source, spacing, wx, wy float64) (float32, float32, float32) {
	var dx, dy, dz float32
	for i := 0; i < src.CascadeCount(); i++ {
		if !src.CascadeEnabled(i) {
			continue
		}
		tile := src.CascadeTileSize(i)
		w := float32(CascadeWeight(spacing, tile))
		if w == 0 {
			continue
		}
		u, v := CascadeUV(wx, wy, tile)
		sx, sy, sz := src.SampleDisplacement(i, u, v)
		dx += w * sx
		dy += w * sy
		dz += w * sz
	}
	return dx, dy, dz
}

// Surface is the shading data resampled at a displaced vertex's world
// position.
type Surface struct {
	Normal mgl32.Vec3
	Foam   float32
}

// SampleSurface blends cascade normal seeds and foam at a world position.
// Callers must pass the same world XY the displacement was sampled at so
// shading and geometry agree.
func (m *Mesh) SampleSurface(src Source, wx, wy float64) Surface {
	spacing := m.spacingAt(wx, wy)
	var sx, sy float64
	var foam float32
	for i := 0; i < src.CascadeCount(); i++ {
		if !src.CascadeEnabled(i) {
			continue
		}
		tile := src.CascadeTileSize(i)
		w := CascadeWeight(spacing, tile)
		if w == 0 {
			continue
		}
		u, v := CascadeUV(wx, wy, tile)
		nx, ny := src.SampleNormalSeed(i, u, v)
		sx += w * float64(nx)
		sy += w * float64(ny)
		foam += float32(w) * src.SampleFoam(i, u, v)
	}
	n := mgl32.Vec3{float32(-sx), float32(-sy), 1}.Normalize()
	if foam > 1 {
		foam = 1
	}
	return Surface{Normal: n, Foam: foam}
}

// spacingAt returns the grid spacing of the finest ring covering the world
// position, so per-fragment weights match the geometry that was built there.
func (m *Mesh) spacingAt(wx, wy float64) float64 {
	for _, r := range m.rings {
		half := float64(r.cells) / 2 * r.spacing
		if math.Abs(wx-r.centerX) <= half && math.Abs(wy-r.centerY) <= half {
			return r.spacing
		}
	}
	return m.rings[len(m.rings)-1].spacing
}
