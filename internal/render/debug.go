package render

import (
	"image/color"

	"github.com/fogleman/gg"
	"github.com/pkg/errors"

	"tickarena/internal/sim"
)

// DebugRenderer draws the arena, tiles, players and in-flight
// projectiles to a PNG each frame using gg's immediate-mode canvas
// API. It is a reference implementation of Renderer suitable for
// headless debugging (dump frames to disk) rather than a production
// game client's renderer, which would instead blit to a live window.
type DebugRenderer struct {
	ctx        *gg.Context
	outputPath string
	width      int
	height     int
}

// NewDebugRenderer creates a renderer that writes each frame to
// outputPath, overwriting it every Draw call.
func NewDebugRenderer(width, height int, outputPath string) *DebugRenderer {
	return &DebugRenderer{
		ctx:        gg.NewContext(width, height),
		outputPath: outputPath,
		width:      width,
		height:     height,
	}
}

func (d *DebugRenderer) Draw(g *sim.Game, mainPlayerID sim.PlayerId, dt, elapsed float64) error {
	d.ctx.SetColor(color.Black)
	d.ctx.Clear()

	scale := float64(d.width) / (float64(g.Map.Width) * g.Map.TileSize)

	for j := 0; j < g.Map.Height; j++ {
		for i := 0; i < g.Map.Width; i++ {
			tile := g.Map.Data[j*g.Map.Width+i]
			if tile != sim.TileStone {
				continue
			}
			x := float64(i) * g.Map.TileSize * scale
			y := float64(j) * g.Map.TileSize * scale
			size := g.Map.TileSize * scale
			d.ctx.SetColor(color.RGBA{R: 90, G: 90, B: 100, A: 255})
			d.ctx.DrawRectangle(x, y, size, size)
			d.ctx.Fill()
		}
	}

	g.Players.ForEach(func(key uint64, p *sim.Player) {
		if p.Health <= 0 {
			return
		}
		x := p.Pos.X * scale
		y := p.Pos.Y * scale
		r := 0.25 * scale

		if p.ID == mainPlayerID {
			d.ctx.SetColor(color.RGBA{R: 255, G: 220, B: 50, A: 255})
		} else {
			d.ctx.SetColor(colorFromHue(p.Hue))
		}
		d.ctx.DrawCircle(x, y, r)
		d.ctx.Fill()

		lookX := x + p.Look.X*r*2
		lookY := y + p.Look.Y*r*2
		d.ctx.SetColor(color.White)
		d.ctx.SetLineWidth(2)
		d.ctx.DrawLine(x, y, lookX, lookY)
		d.ctx.Stroke()
	})

	g.Hitscans.ForEach(func(i int, hs *sim.HitscanProjectile) {
		d.ctx.SetColor(color.RGBA{R: 255, G: 60, B: 60, A: 200})
		d.ctx.SetLineWidth(1.5)
		d.ctx.DrawLine(hs.Pos.X*scale, hs.Pos.Y*scale, hs.Impact.X*scale, hs.Impact.Y*scale)
		d.ctx.Stroke()
	})

	g.Nades.ForEach(func(i int, nd *sim.NadeProjectile) {
		d.ctx.SetColor(color.RGBA{R: 60, G: 200, B: 60, A: 255})
		d.ctx.DrawCircle(nd.Pos.X*scale, nd.Pos.Y*scale, 0.12*scale)
		d.ctx.Fill()
	})

	g.Explosions.ForEach(func(i int, e *sim.Explosion) {
		d.ctx.SetColor(color.RGBA{R: 255, G: 150, B: 40, A: 150})
		d.ctx.DrawCircle(e.Pos.X*scale, e.Pos.Y*scale, e.Radius*scale)
		d.ctx.Fill()
	})

	if err := d.ctx.SavePNG(d.outputPath); err != nil {
		return errors.Wrap(err, "render: save debug frame")
	}
	return nil
}

func (d *DebugRenderer) Close() error { return nil }

func colorFromHue(hue float64) color.Color {
	h := hue - float64(int(hue))
	i := int(h * 6)
	f := h*6 - float64(i)
	q := 1 - f
	var r, g, b float64
	switch i % 6 {
	case 0:
		r, g, b = 1, f, 0
	case 1:
		r, g, b = q, 1, 0
	case 2:
		r, g, b = 0, 1, f
	case 3:
		r, g, b = 0, q, 1
	case 4:
		r, g, b = f, 0, 1
	default:
		r, g, b = 1, 0, q
	}
	return color.RGBA{R: uint8(r * 255), G: uint8(g * 255), B: uint8(b * 255), A: 255}
}
