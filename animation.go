package bramble

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TweenGroup animates up to 4 node properties simultaneously. Create one via
// the convenience constructors and either call Update(dt) yourself or hand it
// to Scene.AddTween so loop updates drive it. Values are written through the
// node's setters, so the node is marked dirty on every step. If the target
// node is disposed, the group stops immediately.
type TweenGroup struct {
	tweens [4]*gween.Tween
	count  int
	apply  func(n *Node, v [4]float64)
	target *Node
	Done   bool
}

// Update advances all tweens by dt seconds and applies the values to the
// target. If the target has been disposed, Done is set and nothing is written.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}
	if g.target == nil || g.target.IsDisposed() {
		g.Done = true
		return
	}

	var vals [4]float64
	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		vals[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	g.apply(g.target, vals)
	g.Done = allDone
}

// TweenPosition animates the node's position to (toX, toY).
func TweenPosition(node *Node, toX, toY float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 2, target: node}
	g.tweens[0] = gween.New(float32(node.position.X), float32(toX), duration, fn)
	g.tweens[1] = gween.New(float32(node.position.Y), float32(toY), duration, fn)
	g.apply = func(n *Node, v [4]float64) { n.SetPosition(v[0], v[1]) }
	return g
}

// TweenScale animates the node's scale to (toSX, toSY).
func TweenScale(node *Node, toSX, toSY float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 2, target: node}
	g.tweens[0] = gween.New(float32(node.scale.X), float32(toSX), duration, fn)
	g.tweens[1] = gween.New(float32(node.scale.Y), float32(toSY), duration, fn)
	g.apply = func(n *Node, v [4]float64) { n.SetScale(v[0], v[1]) }
	return g
}

// TweenRotation animates the node's rotation (radians) to the target value.
func TweenRotation(node *Node, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 1, target: node}
	g.tweens[0] = gween.New(float32(node.rotation), float32(to), duration, fn)
	g.apply = func(n *Node, v [4]float64) { n.SetRotation(v[0]) }
	return g
}

// TweenOpacity animates the node's opacity to the target value.
func TweenOpacity(node *Node, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 1, target: node}
	g.tweens[0] = gween.New(float32(node.opacity), float32(to), duration, fn)
	g.apply = func(n *Node, v [4]float64) { n.SetOpacity(v[0]) }
	return g
}

// TweenPivot animates the node's pivot to (toX, toY).
func TweenPivot(node *Node, toX, toY float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 2, target: node}
	g.tweens[0] = gween.New(float32(node.pivot.X), float32(toX), duration, fn)
	g.tweens[1] = gween.New(float32(node.pivot.Y), float32(toY), duration, fn)
	g.apply = func(n *Node, v [4]float64) { n.SetPivot(v[0], v[1]) }
	return g
}
