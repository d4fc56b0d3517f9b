package bramble

// SetOpacity sets the node's opacity. Children inherit it multiplicatively
// through WorldOpacity. Values are not clamped.
func (n *Node) SetOpacity(a float64) *Node {
	n.opacity = a
	n.dirty = true
	return n
}

// SetVisible shows or hides the node and its whole subtree.
func (n *Node) SetVisible(v bool) *Node {
	n.visible = v
	n.dirty = true
	return n
}

// SetDepth sets the sibling draw-order key. Lower depths draw first; equal
// depths keep insertion order. The parent re-sorts lazily, and only when the
// value actually changes.
func (n *Node) SetDepth(d int) *Node {
	n.dirty = true
	if n.depth == d {
		return n
	}
	n.depth = d
	if n.parent != nil {
		n.parent.childrenSorted = false
	}
	return n
}

// SetAnchor sets the normalized origin used by Content to place itself
// around the node position: (0, 0) is top-left, (0.5, 0.5) is centered.
func (n *Node) SetAnchor(ax, ay float64) *Node {
	n.anchor = Vec2{ax, ay}
	n.dirty = true
	return n
}

// SetContent replaces the node's content.
func (n *Node) SetContent(c Content) *Node {
	n.content = c
	n.dirty = true
	return n
}

// SetRenderHints attaches host-specific drawing hints (nil by default).
func (n *Node) SetRenderHints(h any) *Node {
	n.renderHints = h
	return n
}

// Opacity returns the node's own opacity.
func (n *Node) Opacity() float64 { return n.opacity }

// WorldOpacity returns the product of this node's and all ancestors'
// opacities, as of the last UpdateWorldMatrix.
func (n *Node) WorldOpacity() float64 { return n.worldOpacity }

// Visible reports whether the node is shown.
func (n *Node) Visible() bool { return n.visible }

// Depth returns the sibling draw-order key.
func (n *Node) Depth() int { return n.depth }

// Anchor returns the normalized content origin.
func (n *Node) Anchor() Vec2 { return n.anchor }

// Content returns the node's content, or nil.
func (n *Node) Content() Content { return n.content }

// RenderHints returns the hints set with SetRenderHints, or nil.
func (n *Node) RenderHints() any { return n.renderHints }

// Render draws this node alone (not its children) onto c. Only renderable
// nodes with content draw; every other node is a no-op.
func (n *Node) Render(c Canvas) {
	if n.kind != KindRenderable || n.content == nil {
		return
	}
	n.content.Render(c, n)
}
