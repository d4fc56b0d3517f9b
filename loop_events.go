package bramble

// LoopEvent identifies a kind of GameLoop event.
type LoopEvent uint8

const (
	EventUpdate            LoopEvent = iota // one fixed or variable simulation step
	EventRender                             // once per processed display frame
	EventPause                              // loop paused
	EventResume                             // loop resumed
	EventFPSChanged                         // target FPS changed
	EventFPSLimitedChanged                  // fixed-step mode toggled
	EventStart                              // loop started
	EventStop                               // loop stopped
)

// String returns the event's wire name.
func (e LoopEvent) String() string {
	switch e {
	case EventUpdate:
		return "update"
	case EventRender:
		return "render"
	case EventPause:
		return "pause"
	case EventResume:
		return "resume"
	case EventFPSChanged:
		return "changed:fps"
	case EventFPSLimitedChanged:
		return "changed:fpsLimited"
	case EventStart:
		return "start"
	case EventStop:
		return "stop"
	default:
		return "unknown"
	}
}

// UpdateFunc receives the simulation step in seconds.
type UpdateFunc func(dt float64)

// RenderFunc receives the interpolation alpha in [0, 1] (always 1 in
// pass-through mode) and the last published simulation and display rates.
type RenderFunc func(alpha float64, currentFPS, screenFPS int)

type handler[F any] struct {
	id uint32
	fn F
}

type loopHandlers struct {
	nextID        uint32
	update        []handler[UpdateFunc]
	render        []handler[RenderFunc]
	pause         []handler[func()]
	resume        []handler[func()]
	start         []handler[func()]
	stop          []handler[func()]
	fpsChanged    []handler[func(float64)]
	limitedChange []handler[func(bool)]
}

// CallbackHandle allows removing a registered loop callback.
type CallbackHandle struct {
	id    uint32
	reg   *loopHandlers
	event LoopEvent
}

// Remove unregisters this callback so it no longer fires. Removing during an
// emit is safe: the current emit still sees the old list.
func (h CallbackHandle) Remove() {
	if h.reg == nil {
		return
	}
	switch h.event {
	case EventUpdate:
		h.reg.update = removeHandler(h.reg.update, h.id)
	case EventRender:
		h.reg.render = removeHandler(h.reg.render, h.id)
	case EventPause:
		h.reg.pause = removeHandler(h.reg.pause, h.id)
	case EventResume:
		h.reg.resume = removeHandler(h.reg.resume, h.id)
	case EventStart:
		h.reg.start = removeHandler(h.reg.start, h.id)
	case EventStop:
		h.reg.stop = removeHandler(h.reg.stop, h.id)
	case EventFPSChanged:
		h.reg.fpsChanged = removeHandler(h.reg.fpsChanged, h.id)
	case EventFPSLimitedChanged:
		h.reg.limitedChange = removeHandler(h.reg.limitedChange, h.id)
	}
}

// removeHandler returns a fresh slice without id so that an emit iterating
// the old slice is not disturbed.
func removeHandler[F any](s []handler[F], id uint32) []handler[F] {
	for i := range s {
		if s[i].id == id {
			out := make([]handler[F], 0, len(s)-1)
			out = append(out, s[:i]...)
			return append(out, s[i+1:]...)
		}
	}
	return s
}

func addHandler[F any](r *loopHandlers, s *[]handler[F], fn F, event LoopEvent) CallbackHandle {
	r.nextID++
	*s = append(*s, handler[F]{id: r.nextID, fn: fn})
	return CallbackHandle{id: r.nextID, reg: r, event: event}
}

// OnUpdate registers a callback for simulation steps.
func (l *GameLoop) OnUpdate(fn UpdateFunc) CallbackHandle {
	return addHandler(&l.handlers, &l.handlers.update, fn, EventUpdate)
}

// OnRender registers a callback fired once per processed display frame,
// after that frame's updates.
func (l *GameLoop) OnRender(fn RenderFunc) CallbackHandle {
	return addHandler(&l.handlers, &l.handlers.render, fn, EventRender)
}

// OnPause registers a callback for successful Pause calls.
func (l *GameLoop) OnPause(fn func()) CallbackHandle {
	return addHandler(&l.handlers, &l.handlers.pause, fn, EventPause)
}

// OnResume registers a callback for successful Resume calls.
func (l *GameLoop) OnResume(fn func()) CallbackHandle {
	return addHandler(&l.handlers, &l.handlers.resume, fn, EventResume)
}

// OnStart registers a callback for successful Start calls.
func (l *GameLoop) OnStart(fn func()) CallbackHandle {
	return addHandler(&l.handlers, &l.handlers.start, fn, EventStart)
}

// OnStop registers a callback for successful Stop calls.
func (l *GameLoop) OnStop(fn func()) CallbackHandle {
	return addHandler(&l.handlers, &l.handlers.stop, fn, EventStop)
}

// OnFPSChanged registers a callback receiving the new target FPS.
func (l *GameLoop) OnFPSChanged(fn func(fps float64)) CallbackHandle {
	return addHandler(&l.handlers, &l.handlers.fpsChanged, fn, EventFPSChanged)
}

// OnFPSLimitedChanged registers a callback receiving the new mode.
func (l *GameLoop) OnFPSLimitedChanged(fn func(limited bool)) CallbackHandle {
	return addHandler(&l.handlers, &l.handlers.limitedChange, fn, EventFPSLimitedChanged)
}

func (l *GameLoop) emitUpdate(dt float64) {
	for _, h := range l.handlers.update {
		h.fn(dt)
	}
}

func (l *GameLoop) emitRender(alpha float64) {
	for _, h := range l.handlers.render {
		h.fn(alpha, l.currentFPS, l.screenFPS)
	}
}

func emitSignal(hs []handler[func()]) {
	for _, h := range hs {
		h.fn()
	}
}
