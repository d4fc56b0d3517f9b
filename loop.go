package bramble

import (
	"math"
	"time"
)

// FrameSource is the host's "call me on the next display refresh" primitive.
// RequestFrame registers fn to run once, with the refresh timestamp; it must
// not call fn synchronously.
type FrameSource interface {
	RequestFrame(fn func(now time.Time))
}

// TimeSource supplies monotonic "now" readings.
type TimeSource interface {
	Now() time.Time
}

// SystemTime reads the real monotonic clock.
type SystemTime struct{}

// Now returns time.Now().
func (SystemTime) Now() time.Time { return time.Now() }

const (
	defaultFPS          = 60
	defaultMaxFrameSkip = 5
	fpsSampleWindow     = time.Second
)

// GameLoop turns display refreshes into simulation steps at a target rate.
//
// In fixed-step mode (FPSLimited) each processed frame drains an accumulator
// in frameInterval steps, emitting one update per step, then one render with
// the leftover fraction as interpolation alpha. In pass-through mode each
// frame emits exactly one update with the real elapsed time and one render
// with alpha 1.
//
// GameLoop is single-threaded: every method, and the frame callback, must run
// on the host's loop goroutine. Calls made in the wrong state return false
// instead of failing, keeping the per-frame path free of errors.
type GameLoop struct {
	frames FrameSource
	clock  TimeSource

	fps           float64
	frameInterval time.Duration
	accumulator   time.Duration
	maxFrameSkip  int
	fpsLimited    bool

	frameCount       int
	screenFrameCount int
	currentFPS       int
	screenFPS        int

	started   bool
	paused    bool
	scheduled bool // a frame callback is outstanding

	lastTime     time.Time
	lastSnapshot time.Time
	clampLogged  bool // clamp warning already logged this sample window

	handlers loopHandlers
}

// NewGameLoop creates an idle loop. frames must be non-nil; a nil clock uses
// SystemTime. Invalid config values fall back to the defaults.
func NewGameLoop(cfg LoopConfig, frames FrameSource, clock TimeSource) *GameLoop {
	if frames == nil {
		panic("bramble: GameLoop requires a FrameSource")
	}
	if clock == nil {
		clock = SystemTime{}
	}
	l := &GameLoop{
		frames:       frames,
		clock:        clock,
		maxFrameSkip: defaultMaxFrameSkip,
		fpsLimited:   cfg.FPSLimited,
	}
	if !l.applyFPS(cfg.FPS) {
		l.applyFPS(defaultFPS)
	}
	if cfg.MaxFrameSkip > 0 {
		l.maxFrameSkip = cfg.MaxFrameSkip
	}
	return l
}

// --- Lifecycle ---

// Start captures the time origin, resets the accumulator and frame counters,
// and requests the first frame. Returns false if already started.
func (l *GameLoop) Start() bool {
	if l.started {
		return false
	}
	now := l.clock.Now()
	l.started = true
	l.paused = false
	l.lastTime = now
	l.lastSnapshot = now
	l.accumulator = 0
	l.frameCount = 0
	l.screenFrameCount = 0
	Logger().Debug("bramble loop started", "fps", l.fps, "fpsLimited", l.fpsLimited, "maxFrameSkip", l.maxFrameSkip)
	emitSignal(l.handlers.start)
	l.requestFrame()
	return true
}

// Stop ends the loop; the next frame callback observes it and exits.
// Returns false if the loop was not started.
func (l *GameLoop) Stop() bool {
	if !l.started {
		return false
	}
	l.started = false
	l.paused = false
	Logger().Debug("bramble loop stopped")
	emitSignal(l.handlers.stop)
	return true
}

// Pause suspends ticking. An already requested frame is not cancelled: it
// runs, sees the pause, and exits without work. Returns false unless running.
func (l *GameLoop) Pause() bool {
	if !l.Running() {
		return false
	}
	l.paused = true
	Logger().Debug("bramble loop paused")
	emitSignal(l.handlers.pause)
	return true
}

// Resume continues a paused loop. The time origin is reset to now so the
// paused interval never reaches the accumulator. Returns false unless
// started and paused.
func (l *GameLoop) Resume() bool {
	if !l.started || !l.paused {
		return false
	}
	l.paused = false
	l.lastTime = l.clock.Now()
	Logger().Debug("bramble loop resumed")
	emitSignal(l.handlers.resume)
	l.requestFrame()
	return true
}

// requestFrame asks the host for a frame unless one is already outstanding,
// so pause/resume cycles inside a single frame never fork a second chain.
func (l *GameLoop) requestFrame() {
	if l.scheduled {
		return
	}
	l.scheduled = true
	l.frames.RequestFrame(l.tick)
}

// tick is the callback handed to the FrameSource. It consumes the
// outstanding request before running the frame.
func (l *GameLoop) tick(now time.Time) {
	l.scheduled = false
	l.Tick(now)
}

// Tick processes one display frame at timestamp now. Hosts and tests may
// call it directly; a frame request that is still outstanding is kept, so
// the frame chain never forks. Returns false, doing nothing, when the loop
// is not running.
func (l *GameLoop) Tick(now time.Time) bool {
	if !l.Running() {
		return false
	}

	delta := now.Sub(l.lastTime)
	if delta < 0 {
		delta = 0
	}
	l.lastTime = now
	l.screenFrameCount++

	if l.fpsLimited {
		if limit := l.skipLimit(); delta > limit {
			if !l.clampLogged {
				Logger().Warn("bramble: frame skip clamped", "delta", delta, "limit", limit)
				l.clampLogged = true
			}
			delta = limit
		}
		l.accumulator += delta
		step := l.frameInterval.Seconds()
		for l.accumulator >= l.frameInterval {
			l.emitUpdate(step)
			l.accumulator -= l.frameInterval
			l.frameCount++
		}
		l.emitRender(float64(l.accumulator) / float64(l.frameInterval))
	} else {
		l.emitUpdate(delta.Seconds())
		l.emitRender(1)
		l.frameCount++
	}

	if now.Sub(l.lastSnapshot) >= fpsSampleWindow {
		l.currentFPS = l.frameCount
		l.screenFPS = l.screenFrameCount
		l.frameCount = 0
		l.screenFrameCount = 0
		l.lastSnapshot = now
		l.clampLogged = false
	}

	if l.Running() {
		l.requestFrame()
	}
	return true
}

// skipLimit is the largest delta one frame may feed the accumulator,
// saturating instead of overflowing for huge skip counts.
func (l *GameLoop) skipLimit() time.Duration {
	if int64(l.maxFrameSkip) > math.MaxInt64/int64(l.frameInterval) {
		return math.MaxInt64
	}
	return l.frameInterval * time.Duration(l.maxFrameSkip)
}

// --- Configuration ---

// SetFPS sets the target simulation rate and emits changed:fps. Values that
// are not finite and positive, or whose interval rounds to zero, are
// rejected with false.
func (l *GameLoop) SetFPS(fps float64) bool {
	if !l.applyFPS(fps) {
		return false
	}
	for _, h := range l.handlers.fpsChanged {
		h.fn(fps)
	}
	return true
}

func (l *GameLoop) applyFPS(fps float64) bool {
	if fps <= 0 || math.IsNaN(fps) || math.IsInf(fps, 0) {
		return false
	}
	interval := time.Duration(float64(time.Second) / fps)
	if interval <= 0 {
		return false
	}
	l.fps = fps
	l.frameInterval = interval
	return true
}

// SetFPSLimited switches between fixed-step (true) and pass-through (false)
// mode and emits changed:fpsLimited.
func (l *GameLoop) SetFPSLimited(limited bool) {
	l.fpsLimited = limited
	for _, h := range l.handlers.limitedChange {
		h.fn(limited)
	}
}

// SetMaxFrameSkip caps how many steps a single frame may catch up after a
// stall. Values below 1 are raised to 1.
func (l *GameLoop) SetMaxFrameSkip(n int) {
	l.maxFrameSkip = max(n, 1)
}

// --- Accessors ---

// FPS returns the target simulation rate.
func (l *GameLoop) FPS() float64 { return l.fps }

// CurrentFPS returns the simulation steps counted over the last full second.
func (l *GameLoop) CurrentFPS() int { return l.currentFPS }

// ScreenFPS returns the display frames counted over the last full second.
func (l *GameLoop) ScreenFPS() int { return l.screenFPS }

// FPSLimited reports whether the loop runs in fixed-step mode.
func (l *GameLoop) FPSLimited() bool { return l.fpsLimited }

// FrameInterval returns the fixed step length.
func (l *GameLoop) FrameInterval() time.Duration { return l.frameInterval }

// MaxFrameSkip returns the catch-up cap in steps.
func (l *GameLoop) MaxFrameSkip() int { return l.maxFrameSkip }

// Accumulator returns the simulation time carried to the next frame.
func (l *GameLoop) Accumulator() time.Duration { return l.accumulator }

// Started reports whether Start succeeded and Stop has not been called since.
func (l *GameLoop) Started() bool { return l.started }

// Paused reports whether the loop is paused.
func (l *GameLoop) Paused() bool { return l.paused }

// Running reports started && !paused.
func (l *GameLoop) Running() bool { return l.started && !l.paused }
