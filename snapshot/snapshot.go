// Package snapshot rasterizes a bramble Scene to an image with the gg
// software renderer, without a window or GPU. It is used for golden tests,
// thumbnails, and headless debugging.
package snapshot

import (
	"fmt"
	"image"

	"github.com/gogpu/gg"

	"github.com/phanxgames/bramble"
)

// Options controls Capture.
type Options struct {
	// Background fills the image before drawing. The zero value leaves it
	// transparent.
	Background bramble.Color
	// ShowBounds strokes every visible node's world bounds.
	ShowBounds bool
	// BoundsColor is the outline color; the zero value uses opaque green.
	BoundsColor bramble.Color
	// Update refreshes world matrices before drawing. Leave false to capture
	// exactly what the last render tick computed.
	Update bool
}

var defaultBoundsColor = bramble.Color{G: 1, A: 1}

// Capture draws root and its visible descendants into a w by h image.
func Capture(root *bramble.Node, w, h int, opts Options) (image.Image, error) {
	dc, err := draw(root, w, h, opts)
	if err != nil {
		return nil, err
	}
	defer dc.Close()
	if err := dc.FlushGPU(); err != nil {
		return nil, fmt.Errorf("snapshot: flush: %w", err)
	}
	return dc.Image(), nil
}

// SavePNG captures root and writes it to path as a PNG file.
func SavePNG(root *bramble.Node, w, h int, opts Options, path string) error {
	dc, err := draw(root, w, h, opts)
	if err != nil {
		return err
	}
	defer dc.Close()
	if err := dc.SavePNG(path); err != nil {
		return fmt.Errorf("snapshot: save %s: %w", path, err)
	}
	return nil
}

func draw(root *bramble.Node, w, h int, opts Options) (*gg.Context, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("snapshot: invalid size %dx%d", w, h)
	}
	if opts.Update {
		root.UpdateWorldMatrix(false)
	}
	dc := gg.NewContext(w, h)
	if opts.Background.A > 0 {
		b := opts.Background
		dc.ClearWithColor(gg.RGBA2(b.R, b.G, b.B, b.A))
	}

	c := &canvas{dc: dc}
	root.Draw(c)
	if opts.ShowBounds {
		col := opts.BoundsColor
		if col.A <= 0 {
			col = defaultBoundsColor
		}
		c.outlineBounds(root, col)
	}
	if c.err != nil {
		dc.Close()
		return nil, c.err
	}
	return dc, nil
}

// canvas fills transformed quads as gg paths. The first fill error is kept
// and later draws are skipped.
type canvas struct {
	dc  *gg.Context
	err error
}

// FillQuad implements bramble.Canvas.
func (c *canvas) FillQuad(m bramble.Affine, r bramble.AABB, col bramble.Color) {
	if c.err != nil || r.IsEmpty() {
		return
	}
	c.quadPath(m, r)
	c.dc.SetRGBA(col.R, col.G, col.B, col.A)
	if err := c.dc.Fill(); err != nil {
		c.err = fmt.Errorf("snapshot: fill: %w", err)
	}
}

func (c *canvas) quadPath(m bramble.Affine, r bramble.AABB) {
	x, y := m.Apply(r.MinX, r.MinY)
	c.dc.MoveTo(x, y)
	x, y = m.Apply(r.MaxX, r.MinY)
	c.dc.LineTo(x, y)
	x, y = m.Apply(r.MaxX, r.MaxY)
	c.dc.LineTo(x, y)
	x, y = m.Apply(r.MinX, r.MaxY)
	c.dc.LineTo(x, y)
	c.dc.ClosePath()
}

// outlineBounds strokes the world bounds of every visible node with
// non-empty bounds.
func (c *canvas) outlineBounds(root *bramble.Node, col bramble.Color) {
	c.dc.SetLineWidth(1)
	root.Walk(func(n *bramble.Node) bool {
		if c.err != nil {
			return false
		}
		b := n.WorldBounds()
		if b.IsEmpty() {
			return true
		}
		c.quadPath(bramble.IdentityAffine, b)
		c.dc.SetRGBA(col.R, col.G, col.B, col.A)
		if err := c.dc.Stroke(); err != nil {
			c.err = fmt.Errorf("snapshot: stroke %q: %w", n.Name, err)
		}
		return true
	})
}
