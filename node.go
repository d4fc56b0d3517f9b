package bramble

// nodeIDCounter is a plain counter (no atomic; bramble is single-threaded).
var nodeIDCounter uint32

func nextNodeID() uint32 {
	nodeIDCounter++
	return nodeIDCounter
}

// Node is the scene graph element. One struct serves every Kind; the kind
// decides how Bounds and Render behave and Content supplies the concrete
// shape of renderable nodes.
//
// Fields are private: every setter flags the cached matrices dirty (and
// SetDepth flags the parent's child order stale), so mutation must go
// through the setters.
type Node struct {
	// Identity
	ID   uint32
	Name string
	kind Kind

	// Hierarchy. The parent pointer is a lookup, never an ownership edge:
	// a node owns its children slice exclusively.
	parent   *Node
	children []*Node

	// Transform (local)
	position Vec2
	rotation float64
	scale    Vec2
	pivot    Vec2

	// Computed by UpdateWorldMatrix
	local        Affine
	world        Affine
	worldOpacity float64
	dirty        bool

	// Visual
	visible     bool
	opacity     float64
	depth       int
	anchor      Vec2
	content     Content
	renderHints any

	// Metadata
	UserData any

	// Internal
	disposed       bool
	childrenSorted bool
	sortedChildren []*Node // reused buffer for depth-sorted traversal order
}

// nodeDefaults sets the common default field values shared by all constructors.
func nodeDefaults(n *Node) {
	n.ID = nextNodeID()
	n.scale = Vec2{1, 1}
	n.opacity = 1
	n.visible = true
	n.anchor = Vec2{0.5, 0.5}
	n.local = IdentityAffine
	n.world = IdentityAffine
	n.worldOpacity = 1
	n.dirty = true
	n.childrenSorted = true
}

// NewTransform creates a node that only carries a transform.
func NewTransform(name string) *Node {
	n := &Node{Name: name, kind: KindTransform}
	nodeDefaults(n)
	return n
}

// NewRenderable creates a node that draws content. content may be nil and
// set later with SetContent.
func NewRenderable(name string, content Content) *Node {
	n := &Node{Name: name, kind: KindRenderable, content: content}
	nodeDefaults(n)
	return n
}

// NewComposite creates a group node whose bounds aggregate its children.
func NewComposite(name string) *Node {
	n := &Node{Name: name, kind: KindComposite}
	nodeDefaults(n)
	return n
}

// NewBox creates a renderable node drawing a solid box.
func NewBox(name string, width, height float64, color Color) *Node {
	return NewRenderable(name, Box{Width: width, Height: height, Color: color})
}

// Kind returns the node's kind.
func (n *Node) Kind() Kind {
	return n.kind
}

// --- Tree manipulation ---

// AddChild appends each child to this node's children and returns n.
// A child that already has a parent is removed from it first.
// Panics if a child is nil or is an ancestor of this node (cycle).
func (n *Node) AddChild(children ...*Node) *Node {
	for _, child := range children {
		n.attach(child, len(n.children))
	}
	return n
}

// AddChildAt inserts child at the given index.
// Same reparenting and cycle-check behavior as AddChild.
func (n *Node) AddChildAt(child *Node, index int) *Node {
	if child != nil && child.parent == n {
		n.removeChildByPtr(child)
	}
	if index < 0 || index > len(n.children) {
		panic("bramble: child index out of range")
	}
	n.attach(child, index)
	return n
}

func (n *Node) attach(child *Node, index int) {
	if child == nil {
		panic("bramble: cannot add nil child")
	}
	if globalDebug {
		debugCheckDisposed(n, "AddChild (parent)")
		debugCheckDisposed(child, "AddChild (child)")
	}
	if isAncestor(child, n) {
		panic("bramble: adding child would create a cycle")
	}
	if child.parent != nil {
		child.parent.removeChildByPtr(child)
		child.parent.childrenSorted = false
		index = min(index, len(n.children))
	}
	child.parent = n
	n.children = append(n.children, nil)
	copy(n.children[index+1:], n.children[index:])
	n.children[index] = child
	n.childrenSorted = false
	child.dirty = true
	if globalDebug {
		debugCheckTreeDepth(child)
		debugCheckChildCount(n)
	}
}

// RemoveChild detaches child from this node.
// Panics if child is not a child of n.
func (n *Node) RemoveChild(child *Node) {
	if globalDebug {
		debugCheckDisposed(n, "RemoveChild (parent)")
		debugCheckDisposed(child, "RemoveChild (child)")
	}
	if child.parent != n {
		panic("bramble: child's parent is not this node")
	}
	n.removeChildByPtr(child)
	child.parent = nil
	child.dirty = true
	n.childrenSorted = false
}

// RemoveFromParent detaches this node from its parent.
// No-op if this node has no parent.
func (n *Node) RemoveFromParent() {
	if n.parent == nil {
		return
	}
	n.parent.RemoveChild(n)
}

// RemoveChildren detaches all children from this node.
// Children are NOT disposed.
func (n *Node) RemoveChildren() {
	for _, child := range n.children {
		child.parent = nil
		child.dirty = true
	}
	clear(n.children)
	n.children = n.children[:0]
	n.childrenSorted = true
	n.sortedChildren = n.sortedChildren[:0]
}

// Parent returns the node's parent, or nil for a root.
func (n *Node) Parent() *Node {
	return n.parent
}

// Children returns the child list in insertion order. The returned slice
// MUST NOT be mutated by the caller.
func (n *Node) Children() []*Node {
	return n.children
}

// NumChildren returns the number of children.
func (n *Node) NumChildren() int {
	return len(n.children)
}

// ChildAt returns the child at the given index.
func (n *Node) ChildAt(index int) *Node {
	return n.children[index]
}

// FindChild returns the first descendant (depth-first, insertion order) with
// the given name, or nil.
func (n *Node) FindChild(name string) *Node {
	for _, child := range n.children {
		if child.Name == name {
			return child
		}
		if found := child.FindChild(name); found != nil {
			return found
		}
	}
	return nil
}

// --- Disposal ---

// Dispose removes this node from its parent, marks it as disposed,
// and recursively disposes all descendants.
func (n *Node) Dispose() {
	if n.disposed {
		return
	}
	n.RemoveFromParent()
	n.dispose()
}

func (n *Node) dispose() {
	n.disposed = true
	n.ID = 0
	for _, child := range n.children {
		child.parent = nil
		child.dispose()
	}
	n.children = nil
	n.sortedChildren = nil
	n.parent = nil
	n.content = nil
	n.renderHints = nil
	n.UserData = nil
}

// IsDisposed returns true if this node has been disposed.
func (n *Node) IsDisposed() bool {
	return n.disposed
}

// --- Helpers ---

// isAncestor reports whether candidate is node or one of its ancestors.
func isAncestor(candidate, node *Node) bool {
	for p := node; p != nil; p = p.parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// removeChildByPtr removes child from n.children without clearing child.parent.
// Uses copy+nil to avoid retaining a dangling pointer in the backing array.
func (n *Node) removeChildByPtr(child *Node) {
	for i, c := range n.children {
		if c == child {
			copy(n.children[i:], n.children[i+1:])
			n.children[len(n.children)-1] = nil
			n.children = n.children[:len(n.children)-1]
			return
		}
	}
}
