package render

import (
	"github.com/go-gl/mathgl/mgl32"

	"oceansim/internal/core"
)

// FillOceanRGBA converts a cascade's height and foam textures into RGBA
// pixels. Height is mapped through a dark-to-bright ramp of the water color
// scaled by amplitude, then blended toward the foam color by foam coverage.
func FillOceanRGBA(buf []byte, disp, foam *core.FloatField, amplitude float32, water, foamColor mgl32.Vec3) {
	if amplitude <= 0 {
		amplitude = 1
	}
	n := disp.N
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			h := disp.At(x, y, 2)
			t := 0.5 + h/(2*amplitude)
			if t < 0 {
				t = 0
			}
			if t > 1 {
				t = 1
			}
			shade := 0.25 + 0.75*t

			f := foam.At(x, y, 0)
			if f < 0 {
				f = 0
			}
			if f > 1 {
				f = 1
			}

			r := water[0]*shade*(1-f) + foamColor[0]*f
			g := water[1]*shade*(1-f) + foamColor[1]*f
			b := water[2]*shade*(1-f) + foamColor[2]*f

			base := (y*n + x) * 4
			buf[base+0] = toByte(r)
			buf[base+1] = toByte(g)
			buf[base+2] = toByte(b)
			buf[base+3] = 0xff
		}
	}
}

func toByte(v float32) byte {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 0xff
	}
	return byte(v * 255)
}
