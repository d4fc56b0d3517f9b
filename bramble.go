package bramble

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Premultiplication happens inside each Canvas implementation.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default box color.
var ColorWhite = Color{1, 1, 1, 1}

// Vec2 is a 2D vector used for positions, scales, pivots, and anchors
// throughout the API.
type Vec2 struct {
	X, Y float64
}

// Kind selects how a Node answers Bounds and whether it draws.
type Kind uint8

const (
	KindTransform  Kind = iota // pure transform, never draws
	KindRenderable             // draws its Content
	KindComposite              // groups children; bounds aggregate the children
)

// String returns the lowercase name used in scene files.
func (k Kind) String() string {
	switch k {
	case KindTransform:
		return "transform"
	case KindRenderable:
		return "renderable"
	case KindComposite:
		return "composite"
	default:
		return "unknown"
	}
}

// Canvas receives draw calls from Content during Scene.Draw. Each host
// (ebiten window, terminal, software snapshot) supplies its own.
type Canvas interface {
	// FillQuad fills the local rectangle r transformed by the world matrix m.
	FillQuad(m Affine, r AABB, c Color)
}

// Content supplies the concrete local bounds and drawing for a node.
// A node without content has zero bounds and draws nothing.
type Content interface {
	Bounds(n *Node) AABB
	Render(c Canvas, n *Node)
}

// Box is a solid rectangle of the given size, positioned around the owning
// node's anchor: anchor (0, 0) puts the node origin at the top-left corner,
// (0.5, 0.5) at the center.
type Box struct {
	Width, Height float64
	Color         Color
}

// Bounds returns the box rectangle in the node's local space.
func (b Box) Bounds(n *Node) AABB {
	ax, ay := n.anchor.X, n.anchor.Y
	return NewAABB(-ax*b.Width, -ay*b.Height, (1-ax)*b.Width, (1-ay)*b.Height)
}

// Render fills the box, fading it by the node's accumulated opacity.
func (b Box) Render(c Canvas, n *Node) {
	col := b.Color
	col.A *= n.worldOpacity
	if col.A <= 0 {
		return
	}
	c.FillQuad(n.world, b.Bounds(n), col)
}
