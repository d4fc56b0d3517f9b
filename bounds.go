package bramble

import "math"

// AABB is an axis-aligned bounding box. Width and Height are always
// MaxX-MinX and MaxY-MinY; build values with NewAABB to keep them in sync.
type AABB struct {
	MinX, MinY, MaxX, MaxY float64
	Width, Height          float64
}

// NewAABB returns the box spanning the given extents.
func NewAABB(minX, minY, maxX, maxY float64) AABB {
	return AABB{
		MinX: minX, MinY: minY,
		MaxX: maxX, MaxY: maxY,
		Width:  maxX - minX,
		Height: maxY - minY,
	}
}

// IsEmpty reports whether the box has zero width and zero height. A box that
// is degenerate along only one axis (a line) is not empty.
func (r AABB) IsEmpty() bool {
	return r.Width == 0 && r.Height == 0
}

// Contains reports whether (x, y) lies inside the box. Edges are inside.
func (r AABB) Contains(x, y float64) bool {
	return x >= r.MinX && x <= r.MaxX && y >= r.MinY && y <= r.MaxY
}

// Intersects reports whether r and other overlap.
// Boxes sharing only an edge are considered intersecting.
func (r AABB) Intersects(other AABB) bool {
	return r.MinX <= other.MaxX && r.MaxX >= other.MinX &&
		r.MinY <= other.MaxY && r.MaxY >= other.MinY
}

// Union returns the smallest box enclosing both r and other.
func (r AABB) Union(other AABB) AABB {
	return NewAABB(
		math.Min(r.MinX, other.MinX),
		math.Min(r.MinY, other.MinY),
		math.Max(r.MaxX, other.MaxX),
		math.Max(r.MaxY, other.MaxY),
	)
}

// Transform maps all four corners through m and returns their enclosing box.
func (r AABB) Transform(m Affine) AABB {
	x0, y0 := m.Apply(r.MinX, r.MinY)
	x1, y1 := m.Apply(r.MaxX, r.MinY)
	x2, y2 := m.Apply(r.MaxX, r.MaxY)
	x3, y3 := m.Apply(r.MinX, r.MaxY)
	return NewAABB(
		min(x0, x1, x2, x3),
		min(y0, y1, y2, y3),
		max(x0, x1, x2, x3),
		max(y0, y1, y2, y3),
	)
}

// Bounds returns the node's local-space bounds. Composite nodes return the
// union of their children's world bounds; other nodes ask their Content and
// return the zero box when they have none.
func (n *Node) Bounds() AABB {
	if n.kind == KindComposite {
		return n.compositeBounds()
	}
	if n.content == nil {
		return AABB{}
	}
	return n.content.Bounds(n)
}

// WorldBounds returns the node's bounds in world space, using the world matrix
// from the last UpdateWorldMatrix. Empty bounds are returned unchanged.
// A composite's aggregate is already in world space and is returned as is.
func (n *Node) WorldBounds() AABB {
	b := n.Bounds()
	if n.kind == KindComposite || b.IsEmpty() {
		return b
	}
	return b.Transform(n.world)
}

// compositeBounds unions the world bounds of every child whose own bounds are
// non-empty. Children with empty bounds never widen the result, wherever they
// are positioned.
func (n *Node) compositeBounds() AABB {
	var out AABB
	found := false
	for _, child := range n.children {
		b := child.Bounds()
		if b.IsEmpty() {
			continue
		}
		if child.kind != KindComposite {
			b = b.Transform(child.world)
		}
		if !found {
			out = b
			found = true
			continue
		}
		out = out.Union(b)
	}
	return out
}
