//go:build ebiten

package app

import (
	"oceansim/internal/clipmap"
	"oceansim/internal/core"
	"oceansim/internal/ocean"
	"oceansim/internal/render"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// camSpeed is the viewer pan rate in world meters per second.
const camSpeed = 24.0

// Game adapts the ocean simulation and clipmap to the ebiten.Game interface.
// The draw path shows the finest cascade's height and foam textures top-down;
// the clipmap runs every frame so camera panning exercises grid snapping.
type Game struct {
	ocean *ocean.Ocean
	mesh  *clipmap.Mesh
	clock *core.FixedStep

	camX, camY float64
	scale      int
	paused     bool
	tickOnce   bool

	img        *ebiten.Image
	buf        []byte
	lastStatus string
}

// New constructs a Game for the provided simulation and mesh.
func New(o *ocean.Ocean, m *clipmap.Mesh, scale, tps int) *Game {
	res := viewCascade(o).Resolution()
	return &Game{
		ocean: o,
		mesh:  m,
		clock: core.NewFixedStep(tps),
		scale: scale,
		img:   ebiten.NewImage(res, res),
		buf:   make([]byte, res*res*4),
	}
}

// viewCascade picks the finest enabled cascade for the texture view.
func viewCascade(o *ocean.Ocean) *ocean.Cascade {
	for i := o.CascadeCount() - 1; i >= 0; i-- {
		if c := o.CascadeAt(i); c != nil {
			return c
		}
	}
	return nil
}

// Update handles input and advances the simulation at the fixed tick rate.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.tickOnce = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.ocean.ResetTime()
	}

	dt := g.clock.Dt()
	if ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		g.camX -= camSpeed * dt
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		g.camX += camSpeed * dt
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		g.camY += camSpeed * dt
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		g.camY -= camSpeed * dt
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyMinus) {
		g.ocean.SetWindSpeed(g.ocean.Params().WindSpeed - 1)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEqual) {
		g.ocean.SetWindSpeed(g.ocean.Params().WindSpeed + 1)
	}

	select {
	case ev := <-g.ocean.Status():
		g.lastStatus = ev.Detail
	default:
	}

	steps := g.clock.Steps()
	if g.paused && !g.tickOnce {
		steps = 0
	}
	if g.tickOnce && steps == 0 {
		steps = 1
	}
	g.tickOnce = false

	for i := 0; i < steps; i++ {
		g.ocean.Step(dt)
	}
	g.mesh.Update(g.camX, g.camY)
	g.mesh.Displace(g.ocean)
	return nil
}

// Draw renders the cascade texture view.
func (g *Game) Draw(screen *ebiten.Image) {
	c := viewCascade(g.ocean)
	if c == nil {
		return
	}
	p := g.ocean.Params()
	render.FillOceanRGBA(g.buf, c.Displacement(), c.Foam(), heightScale(p.WindSpeed), p.WaterColor, p.FoamColor)
	g.img.WritePixels(g.buf)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(g.scale), float64(g.scale))
	screen.DrawImage(g.img, op)
}

// heightScale estimates a display amplitude from the wind speed so the ramp
// stays readable across sea states.
func heightScale(windSpeed float64) float32 {
	a := float32(windSpeed * windSpeed / 60)
	if a < 0.05 {
		a = 0.05
	}
	return a
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	res := viewCascade(g.ocean).Resolution()
	return res * g.scale, res * g.scale
}
