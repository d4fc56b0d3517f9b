package bramble

import (
	"math"
	"testing"
)

const epsilon = 1e-9

func assertNear(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > epsilon {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

func assertMatrix(t *testing.T, name string, got, want Affine) {
	t.Helper()
	for i := range got {
		if math.Abs(got[i]-want[i]) > epsilon {
			t.Errorf("%s[%d] = %v, want %v (full: %v vs %v)", name, i, got[i], want[i], got, want)
		}
	}
}

func assertVec(t *testing.T, name string, got, want Vec2) {
	t.Helper()
	if math.Abs(got.X-want.X) > epsilon || math.Abs(got.Y-want.Y) > epsilon {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

// --- computeLocalTransform ---

func TestLocalTransformIdentity(t *testing.T) {
	n := NewTransform("test")
	assertMatrix(t, "identity", computeLocalTransform(n), IdentityAffine)
}

func TestLocalTransformTranslation(t *testing.T) {
	n := NewTransform("test").SetPosition(10, 20)
	assertMatrix(t, "translation", computeLocalTransform(n), Affine{1, 0, 0, 1, 10, 20})
}

func TestLocalTransformScale(t *testing.T) {
	n := NewTransform("test").SetScale(2, 3)
	assertMatrix(t, "scale", computeLocalTransform(n), Affine{2, 0, 0, 3, 0, 0})
}

func TestLocalTransformUniformScale(t *testing.T) {
	n := NewTransform("test").SetUniformScale(4)
	assertMatrix(t, "uniform", computeLocalTransform(n), Affine{4, 0, 0, 4, 0, 0})
}

func TestLocalTransformRotation90(t *testing.T) {
	n := NewTransform("test").SetRotation(math.Pi / 2)
	// cos(90)=0, sin(90)=1 → a=0, b=1, c=-1, d=0
	assertMatrix(t, "rot90", computeLocalTransform(n), Affine{0, 1, -1, 0, 0, 0})
}

func TestLocalTransformPivot(t *testing.T) {
	n := NewTransform("test").SetPosition(100, 200).SetPivot(16, 16)
	// T(100,200) * T(-16,-16) = [1,0,0,1, 84, 184]
	assertMatrix(t, "pivot", computeLocalTransform(n), Affine{1, 0, 0, 1, 84, 184})
}

func TestLocalTransformCombined(t *testing.T) {
	n := NewTransform("test").
		SetPosition(50, 100).
		SetUniformScale(2).
		SetRotation(math.Pi / 2)
	// Scale(2,2) then Rotate(90°): a=0, b=2, c=-2, d=0, t=(50,100)
	assertMatrix(t, "combined", computeLocalTransform(n), Affine{0, 2, -2, 0, 50, 100})
}

func TestRotationAboutOffCenterPivot(t *testing.T) {
	n := NewTransform("test").
		SetPosition(10, 10).
		SetPivot(5, 0).
		SetRotation(math.Pi / 2)
	n.UpdateWorldMatrix(false)

	// The pivot itself lands on the position.
	assertVec(t, "pivot", n.TransformPoint(Vec2{5, 0}), Vec2{10, 10})
	// A point 5 units right of the pivot swings to 5 units below it.
	assertVec(t, "right of pivot", n.TransformPoint(Vec2{10, 0}), Vec2{10, 15})
	// The local origin (5 units left of the pivot) swings above it.
	assertVec(t, "origin", n.TransformPoint(Vec2{0, 0}), Vec2{10, 5})
}

func TestScaleAboutPivot(t *testing.T) {
	n := NewTransform("test").SetPivot(10, 10).SetScale(2, 3)
	n.UpdateWorldMatrix(false)
	assertVec(t, "pivot fixed", n.TransformPoint(Vec2{10, 10}), Vec2{0, 0})
	assertVec(t, "corner", n.TransformPoint(Vec2{11, 11}), Vec2{2, 3})
}

// --- Affine ---

func TestMultiplyAffineIdentity(t *testing.T) {
	m := Affine{2, 1, 3, 4, 5, 6}
	assertMatrix(t, "id*m", IdentityAffine.Multiply(m), m)
	assertMatrix(t, "m*id", m.Multiply(IdentityAffine), m)
}

func TestMultiplyAffineTranslations(t *testing.T) {
	a := Affine{1, 0, 0, 1, 10, 20}
	b := Affine{1, 0, 0, 1, 5, 3}
	assertMatrix(t, "translations", a.Multiply(b), Affine{1, 0, 0, 1, 15, 23})
}

func TestInvertAffine(t *testing.T) {
	m := Affine{2, 0, 0, 3, 10, 20}
	assertMatrix(t, "m*inv=id", m.Multiply(m.Invert()), IdentityAffine)
}

func TestInvertSingularReturnsIdentity(t *testing.T) {
	m := Affine{0, 0, 0, 0, 5, 5}
	assertMatrix(t, "singular", m.Invert(), IdentityAffine)
}

// --- UpdateWorldMatrix ---

func TestWorldMatrixComposesParent(t *testing.T) {
	root := NewComposite("root").SetPosition(100, 50).SetRotation(math.Pi / 3)
	mid := NewTransform("mid").SetPosition(10, 0).SetScale(2, 0.5)
	leaf := NewRenderable("leaf", nil).SetPosition(3, 4).SetPivot(1, 1).SetRotation(0.25)
	root.AddChild(mid)
	mid.AddChild(leaf)

	root.UpdateWorldMatrix(false)

	assertMatrix(t, "root", root.WorldMatrix(), root.LocalMatrix())
	assertMatrix(t, "mid", mid.WorldMatrix(), root.WorldMatrix().Multiply(mid.LocalMatrix()))
	assertMatrix(t, "leaf", leaf.WorldMatrix(), mid.WorldMatrix().Multiply(leaf.LocalMatrix()))
}

func TestWorldMatrixIsPulledNotPushed(t *testing.T) {
	n := NewTransform("n")
	n.UpdateWorldMatrix(false)

	n.SetPosition(5, 5)
	if !n.IsDirty() {
		t.Fatal("setter should mark dirty")
	}
	assertMatrix(t, "stale", n.WorldMatrix(), IdentityAffine)

	n.UpdateWorldMatrix(false)
	if n.IsDirty() {
		t.Error("UpdateWorldMatrix should clear dirty")
	}
	assertMatrix(t, "fresh", n.WorldMatrix(), Affine{1, 0, 0, 1, 5, 5})
}

func TestParentChangeRecomputesCleanChild(t *testing.T) {
	parent := NewComposite("p")
	child := NewTransform("c").SetPosition(1, 1)
	parent.AddChild(child)
	parent.UpdateWorldMatrix(false)

	parent.SetPosition(10, 0)
	if child.IsDirty() {
		t.Fatal("MarkDirty must not recurse into children")
	}
	parent.UpdateWorldMatrix(false)
	assertVec(t, "child origin", child.TransformPoint(Vec2{}), Vec2{11, 1})
}

func TestDirtyChildUnderCleanParentResolves(t *testing.T) {
	parent := NewComposite("p").SetPosition(10, 10)
	child := NewTransform("c")
	parent.AddChild(child)
	parent.UpdateWorldMatrix(false)

	child.SetPosition(5, 0)
	parent.UpdateWorldMatrix(false)
	assertVec(t, "child origin", child.TransformPoint(Vec2{}), Vec2{15, 10})
}

func TestUpdateWorldMatrixOnSubtreeUsesCachedParent(t *testing.T) {
	parent := NewComposite("p").SetPosition(10, 0)
	child := NewTransform("c").SetPosition(1, 0)
	parent.AddChild(child)
	parent.UpdateWorldMatrix(false)

	child.SetPosition(2, 0)
	child.UpdateWorldMatrix(false)
	assertVec(t, "child origin", child.TransformPoint(Vec2{}), Vec2{12, 0})
}

func TestForceRecomputesCleanNode(t *testing.T) {
	n := NewTransform("n").SetPosition(1, 2)
	n.UpdateWorldMatrix(false)
	n.world = Affine{} // corrupt the cache
	n.UpdateWorldMatrix(false)
	assertMatrix(t, "not recomputed", n.WorldMatrix(), Affine{})
	n.UpdateWorldMatrix(true)
	assertMatrix(t, "forced", n.WorldMatrix(), Affine{1, 0, 0, 1, 1, 2})
}

func TestWorldToLocalRoundTrip(t *testing.T) {
	n := NewTransform("n").SetPosition(30, -4).SetRotation(1.1).SetScale(2, 3).SetPivot(4, 4)
	n.UpdateWorldMatrix(false)
	p := Vec2{7, -2}
	assertVec(t, "round trip", n.WorldToLocal(n.TransformPoint(p)), p)
}

func TestWorldOpacityMultiplies(t *testing.T) {
	parent := NewComposite("p").SetOpacity(0.5)
	child := NewBox("c", 1, 1, ColorWhite).SetOpacity(0.4)
	parent.AddChild(child)
	parent.UpdateWorldMatrix(false)
	assertNear(t, "world opacity", child.WorldOpacity(), 0.2)
}
