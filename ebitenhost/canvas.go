package ebitenhost

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/bramble"
)

// whitePixel is a 1x1 white image scaled and tinted to fill every quad.
var whitePixel *ebiten.Image

func pixel() *ebiten.Image {
	if whitePixel == nil {
		whitePixel = ebiten.NewImage(1, 1)
		whitePixel.Fill(colorWhite)
	}
	return whitePixel
}

// Canvas draws bramble quads onto an ebiten image.
type Canvas struct {
	Target *ebiten.Image
	op     ebiten.DrawImageOptions
}

// FillQuad implements bramble.Canvas.
func (c *Canvas) FillQuad(m bramble.Affine, r bramble.AABB, col bramble.Color) {
	if c.Target == nil || r.IsEmpty() {
		return
	}
	c.op.GeoM = quadGeoM(m, r)
	c.op.ColorScale.Reset()
	c.op.ColorScale.Scale(colorScale(col))
	c.Target.DrawImage(pixel(), &c.op)
}

// quadGeoM maps the unit pixel onto r, then through m.
func quadGeoM(m bramble.Affine, r bramble.AABB) ebiten.GeoM {
	var g ebiten.GeoM
	g.Scale(r.Width, r.Height)
	g.Translate(r.MinX, r.MinY)

	var w ebiten.GeoM
	w.SetElement(0, 0, m[0])
	w.SetElement(0, 1, m[2])
	w.SetElement(0, 2, m[4])
	w.SetElement(1, 0, m[1])
	w.SetElement(1, 1, m[3])
	w.SetElement(1, 2, m[5])
	g.Concat(w)
	return g
}

// colorScale converts a straight-alpha color to the premultiplied scale
// ebiten applies to the white pixel.
func colorScale(c bramble.Color) (r, g, b, a float32) {
	return float32(c.R * c.A), float32(c.G * c.A), float32(c.B * c.A), float32(c.A)
}
