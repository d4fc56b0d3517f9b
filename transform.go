package bramble

import "math"

// Affine is a 2D affine matrix laid out as [a, b, c, d, tx, ty]:
//
//	| a  c  tx |
//	| b  d  ty |
//	| 0  0   1 |
type Affine [6]float64

// IdentityAffine is the identity matrix.
var IdentityAffine = Affine{1, 0, 0, 1, 0, 0}

// Multiply returns p * c, the matrix that applies c first and then p.
func (p Affine) Multiply(c Affine) Affine {
	return Affine{
		p[0]*c[0] + p[2]*c[1],
		p[1]*c[0] + p[3]*c[1],
		p[0]*c[2] + p[2]*c[3],
		p[1]*c[2] + p[3]*c[3],
		p[0]*c[4] + p[2]*c[5] + p[4],
		p[1]*c[4] + p[3]*c[5] + p[5],
	}
}

// Apply maps the point (x, y) through m.
func (m Affine) Apply(x, y float64) (float64, float64) {
	return m[0]*x + m[2]*y + m[4], m[1]*x + m[3]*y + m[5]
}

// Invert returns the inverse of m, or the identity if m is singular.
func (m Affine) Invert() Affine {
	det := m[0]*m[3] - m[2]*m[1]
	if det > -1e-12 && det < 1e-12 {
		return IdentityAffine
	}
	invDet := 1.0 / det
	a := m[3] * invDet
	b := -m[1] * invDet
	c := -m[2] * invDet
	d := m[0] * invDet
	return Affine{
		a, b, c, d,
		-(a*m[4] + c*m[5]),
		-(b*m[4] + d*m[5]),
	}
}

// computeLocalTransform builds the node's local matrix.
//
// Composition order:
//
//	Translate(-Pivot) -> Scale -> Rotate -> Translate(Position)
//
// so rotation and scale happen about the pivot, and the pivot lands on
// Position in the parent's space.
func computeLocalTransform(n *Node) Affine {
	sx, sy := n.scale.X, n.scale.Y
	sin, cos := math.Sincos(n.rotation)

	// After Scale * Translate(-pivot): a=sx, d=sy, tx=-px*sx, ty=-py*sy
	preTx := -n.pivot.X * sx
	preTy := -n.pivot.Y * sy

	// After Rotate, then Translate(position):
	return Affine{
		cos * sx,
		sin * sx,
		-sin * sy,
		cos * sy,
		cos*preTx - sin*preTy + n.position.X,
		sin*preTx + cos*preTy + n.position.Y,
	}
}

// UpdateWorldMatrix recomputes the cached local and world matrices of this
// node and its descendants. A node is recomputed when it is dirty, when force
// is set, or when its parent was recomputed during this pass; clean subtrees
// are still walked so dirty descendants get resolved.
//
// Reading WorldMatrix (or anything derived from it) without calling this
// first returns whatever was cached by the previous pass.
func (n *Node) UpdateWorldMatrix(force bool) {
	parent := IdentityAffine
	parentOpacity := 1.0
	if n.parent != nil {
		parent = n.parent.world
		parentOpacity = n.parent.worldOpacity
	}
	n.updateWorld(parent, parentOpacity, force)
}

func (n *Node) updateWorld(parent Affine, parentOpacity float64, force bool) {
	recompute := n.dirty || force
	if recompute {
		n.local = computeLocalTransform(n)
		n.world = parent.Multiply(n.local)
		n.worldOpacity = parentOpacity * n.opacity
		n.dirty = false
	}
	for _, child := range n.children {
		child.updateWorld(n.world, n.worldOpacity, recompute)
	}
}

// LocalMatrix returns the local matrix cached by the last UpdateWorldMatrix.
func (n *Node) LocalMatrix() Affine {
	return n.local
}

// WorldMatrix returns the world matrix cached by the last UpdateWorldMatrix.
func (n *Node) WorldMatrix() Affine {
	return n.world
}

// TransformPoint converts a local-space point to world space.
func (n *Node) TransformPoint(p Vec2) Vec2 {
	x, y := n.world.Apply(p.X, p.Y)
	return Vec2{x, y}
}

// WorldToLocal converts a world-space point to this node's local space.
func (n *Node) WorldToLocal(p Vec2) Vec2 {
	x, y := n.world.Invert().Apply(p.X, p.Y)
	return Vec2{x, y}
}

// MarkDirty flags the cached matrices as stale. Descendants are not touched:
// they are recomputed because their parent is.
func (n *Node) MarkDirty() {
	n.dirty = true
}

// IsDirty reports whether the node changed since the last UpdateWorldMatrix.
func (n *Node) IsDirty() bool {
	return n.dirty
}

// --- Transform property setters ---

// SetPosition sets the node's position in its parent's space.
func (n *Node) SetPosition(x, y float64) *Node {
	n.position = Vec2{x, y}
	n.dirty = true
	return n
}

// SetRotation sets the rotation in radians, about the pivot.
func (n *Node) SetRotation(r float64) *Node {
	n.rotation = r
	n.dirty = true
	return n
}

// SetScale sets the horizontal and vertical scale, about the pivot.
func (n *Node) SetScale(sx, sy float64) *Node {
	n.scale = Vec2{sx, sy}
	n.dirty = true
	return n
}

// SetUniformScale sets both scale axes to s.
func (n *Node) SetUniformScale(s float64) *Node {
	return n.SetScale(s, s)
}

// SetPivot sets the local point that rotation and scale happen about.
func (n *Node) SetPivot(px, py float64) *Node {
	n.pivot = Vec2{px, py}
	n.dirty = true
	return n
}

// Position returns the node's position.
func (n *Node) Position() Vec2 { return n.position }

// Rotation returns the rotation in radians.
func (n *Node) Rotation() float64 { return n.rotation }

// Scale returns the scale.
func (n *Node) Scale() Vec2 { return n.scale }

// Pivot returns the pivot.
func (n *Node) Pivot() Vec2 { return n.pivot }
