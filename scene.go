package bramble

import "time"

// Scene is the top-level object that owns the node tree and forwards GameLoop
// ticks into it: updates run user logic and tweens, renders refresh world
// matrices and record the interpolation alpha for the host's Draw.
type Scene struct {
	root  *Node
	loop  *GameLoop
	debug bool

	updateFunc UpdateFunc
	tweens     []*TweenGroup
	handles    []CallbackHandle

	alpha      float64
	currentFPS int
	screenFPS  int
	stats      debugStats
}

// NewScene creates a scene with a pre-created root composite. When loop is
// non-nil the scene subscribes to its update and render events; otherwise
// call Update and Render yourself.
func NewScene(loop *GameLoop) *Scene {
	s := &Scene{root: NewComposite("root"), alpha: 1}
	if loop != nil {
		s.Attach(loop)
	}
	return s
}

// Attach subscribes the scene to loop, detaching from any previous loop.
func (s *Scene) Attach(loop *GameLoop) {
	s.Detach()
	s.loop = loop
	s.handles = append(s.handles,
		loop.OnUpdate(s.Update),
		loop.OnRender(s.Render),
	)
}

// Detach removes the scene's loop subscriptions.
func (s *Scene) Detach() {
	for _, h := range s.handles {
		h.Remove()
	}
	s.handles = s.handles[:0]
	s.loop = nil
}

// Root returns the scene's root composite.
func (s *Scene) Root() *Node {
	return s.root
}

// Loop returns the attached GameLoop, or nil.
func (s *Scene) Loop() *GameLoop {
	return s.loop
}

// SetUpdateFunc sets the user logic run on every simulation step, before
// tweens advance.
func (s *Scene) SetUpdateFunc(fn UpdateFunc) {
	s.updateFunc = fn
}

// AddTween registers a tween group advanced on every simulation step until it
// is done.
func (s *Scene) AddTween(g *TweenGroup) {
	s.tweens = append(s.tweens, g)
}

// NumTweens returns the number of tweens still running.
func (s *Scene) NumTweens() int {
	return len(s.tweens)
}

// Update runs one simulation step of dt seconds.
func (s *Scene) Update(dt float64) {
	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}

	if s.updateFunc != nil {
		s.updateFunc(dt)
	}
	live := s.tweens[:0]
	for _, g := range s.tweens {
		g.Update(float32(dt))
		if !g.Done {
			live = append(live, g)
		}
	}
	clear(s.tweens[len(live):])
	s.tweens = live

	if s.debug {
		s.stats.updateTime += time.Since(t0)
	}
}

// Render refreshes world matrices and records the frame's interpolation
// alpha and FPS snapshot for Draw.
func (s *Scene) Render(alpha float64, currentFPS, screenFPS int) {
	s.root.UpdateWorldMatrix(false)
	s.alpha = alpha
	s.currentFPS = currentFPS
	s.screenFPS = screenFPS
}

// Draw renders the tree in depth order onto c.
func (s *Scene) Draw(c Canvas) {
	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}

	drawn := s.root.Draw(c)

	if s.debug {
		s.stats.drawTime = time.Since(t0)
		s.stats.drawn = drawn
		s.debugLog(s.stats)
		s.stats = debugStats{}
	}
}

// Alpha returns the interpolation alpha of the last render tick.
func (s *Scene) Alpha() float64 {
	return s.alpha
}

// FPS returns the simulation and display rates reported by the last render
// tick.
func (s *Scene) FPS() (current, screen int) {
	return s.currentFPS, s.screenFPS
}

// SetDebugMode enables or disables debug mode. When enabled, disposed-node
// access panics, tree depth and child count warnings are logged, and
// per-frame timing stats are logged at debug level.
func (s *Scene) SetDebugMode(enabled bool) {
	s.debug = enabled
	globalDebug = enabled
}
