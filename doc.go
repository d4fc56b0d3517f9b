// Package bramble is a retained-mode 2D scene graph driven by a
// fixed/variable timestep game loop.
//
// # Scene graph
//
// Every element is a [Node]. Nodes form a tree; each caches a local and a
// world affine matrix that [Node.UpdateWorldMatrix] recomputes on demand.
// Setters only flag a node dirty: world matrices are pulled, never pushed,
// so call UpdateWorldMatrix on a subtree root before reading them.
//
// Three kinds of node exist:
//
//   - [NewTransform]: position, rotation, scale, and pivot only.
//   - [NewRenderable]: adds visibility, opacity, depth, anchor, and a
//     [Content] that supplies bounds and drawing (for example [Box]).
//   - [NewComposite]: groups children; its bounds are the union of its
//     children's world bounds.
//
// Setters are fluent:
//
//	hero := bramble.NewBox("hero", 32, 32, bramble.ColorWhite).
//		SetPosition(100, 50).
//		SetRotation(math.Pi / 4).
//		SetDepth(2)
//	scene.Root().AddChild(hero)
//
// # Game loop
//
// [GameLoop] turns host display refreshes (a [FrameSource]) into simulation
// steps. In fixed-step mode it emits zero or more updates of exactly
// 1/FPS seconds per frame, clamped after stalls, followed by one render
// carrying the interpolation alpha. In pass-through mode it emits one update
// with the real elapsed time and one render with alpha 1.
//
//	loop := bramble.NewGameLoop(bramble.DefaultLoopConfig(), host, nil)
//	scene := bramble.NewScene(loop)
//	loop.Start()
//
// [Scene] subscribes to the loop: updates run the scene's update function and
// tweens, renders refresh world matrices. Hosts then call [Scene.Draw] with
// their [Canvas]. Ready-made hosts live in the ebitenhost (window), termhost
// (terminal), and snapshot (software image) packages.
package bramble
