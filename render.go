package bramble

// Walk visits n and its visible descendants depth-first, pre-order, with
// siblings in depth order. A hidden node skips its whole subtree. Returning
// false from fn skips that node's children.
func (n *Node) Walk(fn func(*Node) bool) {
	if !n.visible {
		return
	}
	if !fn(n) {
		return
	}
	for _, child := range n.orderedChildren() {
		child.Walk(fn)
	}
}

// Draw renders n and its visible descendants onto c in depth order. World
// matrices are used as cached; call UpdateWorldMatrix first.
func (n *Node) Draw(c Canvas) int {
	drawn := 0
	n.Walk(func(node *Node) bool {
		if node.kind == KindRenderable && node.content != nil {
			node.content.Render(c, node)
			drawn++
		}
		return true
	})
	return drawn
}

// orderedChildren returns the children sorted by depth, rebuilding the cached
// order only when a child was added, removed, or changed depth.
func (n *Node) orderedChildren() []*Node {
	if len(n.children) == 0 {
		return nil
	}
	if !n.childrenSorted {
		n.rebuildSortedChildren()
	}
	return n.sortedChildren
}

// rebuildSortedChildren rebuilds the depth-sorted traversal order for a node.
// Uses insertion sort: zero allocations, stable, and optimal for the typical
// case of few children that are nearly sorted (O(n) when already sorted).
func (n *Node) rebuildSortedChildren() {
	nc := len(n.children)
	if cap(n.sortedChildren) < nc {
		n.sortedChildren = make([]*Node, nc)
	}
	n.sortedChildren = n.sortedChildren[:nc]
	copy(n.sortedChildren, n.children)
	for i := 1; i < nc; i++ {
		key := n.sortedChildren[i]
		j := i - 1
		for j >= 0 && n.sortedChildren[j].depth > key.depth {
			n.sortedChildren[j+1] = n.sortedChildren[j]
			j--
		}
		n.sortedChildren[j+1] = key
	}
	n.childrenSorted = true
}
