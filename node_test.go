package bramble

import "testing"

// --- Constructor defaults ---

func TestNewTransformDefaults(t *testing.T) {
	assertNodeDefaults(t, NewTransform("t"), "t", KindTransform)
}

func TestNewRenderableDefaults(t *testing.T) {
	n := NewRenderable("r", Box{Width: 4, Height: 4})
	assertNodeDefaults(t, n, "r", KindRenderable)
	if n.Content() == nil {
		t.Error("content should be set")
	}
}

func TestNewCompositeDefaults(t *testing.T) {
	assertNodeDefaults(t, NewComposite("c"), "c", KindComposite)
}

func assertNodeDefaults(t *testing.T, n *Node, name string, kind Kind) {
	t.Helper()
	if n.ID == 0 {
		t.Error("ID should be non-zero")
	}
	if n.Name != name {
		t.Errorf("Name = %q, want %q", n.Name, name)
	}
	if n.Kind() != kind {
		t.Errorf("Kind = %v, want %v", n.Kind(), kind)
	}
	if n.Scale() != (Vec2{1, 1}) {
		t.Errorf("Scale = %v, want (1, 1)", n.Scale())
	}
	if n.Opacity() != 1 {
		t.Errorf("Opacity = %v, want 1", n.Opacity())
	}
	if !n.Visible() {
		t.Error("Visible should default to true")
	}
	if n.Depth() != 0 {
		t.Errorf("Depth = %d, want 0", n.Depth())
	}
	if n.Anchor() != (Vec2{0.5, 0.5}) {
		t.Errorf("Anchor = %v, want (0.5, 0.5)", n.Anchor())
	}
	if !n.IsDirty() {
		t.Error("new node should be dirty")
	}
	if n.RenderHints() != nil {
		t.Error("RenderHints should default to nil")
	}
}

func TestNodeIDsUnique(t *testing.T) {
	a := NewTransform("a")
	b := NewTransform("b")
	if a.ID == b.ID {
		t.Errorf("IDs should differ, both %d", a.ID)
	}
}

func TestKindString(t *testing.T) {
	cases := map[Kind]string{
		KindTransform:  "transform",
		KindRenderable: "renderable",
		KindComposite:  "composite",
		Kind(99):       "unknown",
	}
	for k, want := range cases {
		if got := k.String(); got != want {
			t.Errorf("Kind(%d).String() = %q, want %q", k, got, want)
		}
	}
}

// --- AddChild ---

func TestAddChildVariadicAndChaining(t *testing.T) {
	parent := NewComposite("p")
	a, b, c := NewTransform("a"), NewTransform("b"), NewTransform("c")
	if got := parent.AddChild(a, b).AddChild(c); got != parent {
		t.Error("AddChild should return the receiver")
	}
	if parent.NumChildren() != 3 {
		t.Fatalf("NumChildren = %d, want 3", parent.NumChildren())
	}
	for i, want := range []*Node{a, b, c} {
		if parent.ChildAt(i) != want {
			t.Errorf("ChildAt(%d) = %q, want %q", i, parent.ChildAt(i).Name, want.Name)
		}
		if want.Parent() != parent {
			t.Errorf("%s.Parent() not set", want.Name)
		}
	}
}

func TestAddChildReparents(t *testing.T) {
	p1 := NewComposite("p1")
	p2 := NewComposite("p2")
	child := NewTransform("c")
	p1.AddChild(child)
	p2.AddChild(child)

	if child.Parent() != p2 {
		t.Error("child should belong to p2")
	}
	if p1.NumChildren() != 0 {
		t.Errorf("p1 NumChildren = %d, want 0", p1.NumChildren())
	}
}

func TestAddChildSameParentMovesToEnd(t *testing.T) {
	p := NewComposite("p")
	a, b := NewTransform("a"), NewTransform("b")
	p.AddChild(a, b)
	p.AddChild(a)
	if p.NumChildren() != 2 || p.ChildAt(0) != b || p.ChildAt(1) != a {
		t.Errorf("order = %v, want [b a]", names(p.Children()))
	}
}

func TestAddChildMarksChildDirty(t *testing.T) {
	p := NewComposite("p")
	c := NewTransform("c")
	c.UpdateWorldMatrix(false)
	p.AddChild(c)
	if !c.IsDirty() {
		t.Error("attached child should be dirty")
	}
}

func TestAddChildNilPanics(t *testing.T) {
	defer expectPanic(t, "nil child")
	NewComposite("p").AddChild(nil)
}

func TestAddChildCyclePanics(t *testing.T) {
	a := NewComposite("a")
	b := NewComposite("b")
	a.AddChild(b)
	defer expectPanic(t, "cycle")
	b.AddChild(a)
}

func TestAddChildSelfPanics(t *testing.T) {
	a := NewComposite("a")
	defer expectPanic(t, "self")
	a.AddChild(a)
}

func TestAddChildAt(t *testing.T) {
	p := NewComposite("p")
	a, b, c := NewTransform("a"), NewTransform("b"), NewTransform("c")
	p.AddChild(a, c)
	p.AddChildAt(b, 1)
	if got := names(p.Children()); got != "a,b,c" {
		t.Errorf("order = %s, want a,b,c", got)
	}
	p.AddChildAt(c, 0)
	if got := names(p.Children()); got != "c,a,b" {
		t.Errorf("order = %s, want c,a,b", got)
	}
}

func TestAddChildAtOutOfRangePanics(t *testing.T) {
	defer expectPanic(t, "index")
	NewComposite("p").AddChildAt(NewTransform("c"), 1)
}

// --- Removal ---

func TestRemoveChild(t *testing.T) {
	p := NewComposite("p")
	a, b := NewTransform("a"), NewTransform("b")
	p.AddChild(a, b)
	p.RemoveChild(a)
	if a.Parent() != nil {
		t.Error("removed child should have no parent")
	}
	if got := names(p.Children()); got != "b" {
		t.Errorf("children = %s, want b", got)
	}
}

func TestRemoveChildWrongParentPanics(t *testing.T) {
	p := NewComposite("p")
	defer expectPanic(t, "wrong parent")
	p.RemoveChild(NewTransform("stranger"))
}

func TestRemoveFromParent(t *testing.T) {
	p := NewComposite("p")
	c := NewTransform("c")
	p.AddChild(c)
	c.RemoveFromParent()
	c.RemoveFromParent() // no-op
	if p.NumChildren() != 0 || c.Parent() != nil {
		t.Error("RemoveFromParent did not detach")
	}
}

func TestRemoveChildren(t *testing.T) {
	p := NewComposite("p")
	a, b := NewTransform("a"), NewTransform("b")
	p.AddChild(a, b)
	p.RemoveChildren()
	if p.NumChildren() != 0 || a.Parent() != nil || b.Parent() != nil {
		t.Error("RemoveChildren did not detach everything")
	}
}

func TestFindChild(t *testing.T) {
	root := NewComposite("root")
	mid := NewComposite("mid")
	leaf := NewTransform("leaf")
	root.AddChild(mid)
	mid.AddChild(leaf)
	if root.FindChild("leaf") != leaf {
		t.Error("FindChild should find nested node")
	}
	if root.FindChild("missing") != nil {
		t.Error("FindChild should return nil for missing name")
	}
}

// --- Dispose ---

func TestDisposeRecursive(t *testing.T) {
	root := NewComposite("root")
	mid := NewComposite("mid")
	leaf := NewTransform("leaf")
	root.AddChild(mid)
	mid.AddChild(leaf)

	mid.Dispose()
	if !mid.IsDisposed() || !leaf.IsDisposed() {
		t.Error("Dispose should recurse")
	}
	if root.NumChildren() != 0 {
		t.Error("disposed node should be detached")
	}
	if mid.ID != 0 {
		t.Error("disposed ID should be cleared")
	}
	mid.Dispose() // idempotent
}

func TestDebugDisposedAddPanics(t *testing.T) {
	s := NewScene(nil)
	s.SetDebugMode(true)
	defer s.SetDebugMode(false)

	dead := NewTransform("dead")
	dead.Dispose()
	defer expectPanic(t, "disposed")
	s.Root().AddChild(dead)
}

// --- Fluent setters ---

func TestSettersReturnReceiverAndMarkDirty(t *testing.T) {
	n := NewRenderable("n", nil)
	setters := map[string]func() *Node{
		"SetPosition":     func() *Node { return n.SetPosition(1, 2) },
		"SetRotation":     func() *Node { return n.SetRotation(1) },
		"SetScale":        func() *Node { return n.SetScale(2, 3) },
		"SetUniformScale": func() *Node { return n.SetUniformScale(2) },
		"SetPivot":        func() *Node { return n.SetPivot(1, 1) },
		"SetOpacity":      func() *Node { return n.SetOpacity(0.5) },
		"SetVisible":      func() *Node { return n.SetVisible(true) },
		"SetDepth":        func() *Node { return n.SetDepth(3) },
		"SetAnchor":       func() *Node { return n.SetAnchor(0, 0) },
		"SetContent":      func() *Node { return n.SetContent(nil) },
	}
	for name, set := range setters {
		n.UpdateWorldMatrix(false)
		if got := set(); got != n {
			t.Errorf("%s should return the receiver", name)
		}
		if !n.IsDirty() {
			t.Errorf("%s should mark dirty", name)
		}
	}
}

func TestSetDepthMarksParentUnsortedOnlyOnChange(t *testing.T) {
	p := NewComposite("p")
	c := NewTransform("c")
	p.AddChild(c)
	p.orderedChildren()
	if !p.childrenSorted {
		t.Fatal("orderedChildren should leave children sorted")
	}

	c.SetDepth(0)
	if !p.childrenSorted {
		t.Error("unchanged depth should not invalidate order")
	}
	c.SetDepth(5)
	if p.childrenSorted {
		t.Error("changed depth should invalidate order")
	}
}

func expectPanic(t *testing.T, what string) {
	t.Helper()
	if recover() == nil {
		t.Errorf("expected panic: %s", what)
	}
}

func names(nodes []*Node) string {
	out := ""
	for i, n := range nodes {
		if i > 0 {
			out += ","
		}
		out += n.Name
	}
	return out
}
