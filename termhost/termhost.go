// Package termhost renders a bramble Scene into a terminal with tcell. Each
// cell is one sample: a cell is filled when its center, scaled by CellSize,
// lies inside a drawn quad.
package termhost

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/phanxgames/bramble"
)

// FillRune is drawn in every covered cell.
const FillRune = '█'

// DefaultRefresh is the display refresh used by Run when none is given.
const DefaultRefresh = 16 * time.Millisecond

// Host drives a GameLoop from a ticker and draws the scene onto Screen.
type Host struct {
	Screen tcell.Screen
	// CellSize is the world-space size of one terminal cell. Values <= 0
	// are treated as 1.
	CellSize float64
	// Background is the style used to clear the screen.
	Background tcell.Style

	scene   *bramble.Scene
	loop    *bramble.GameLoop
	pending func(time.Time)
}

// New creates a host for scene on an initialized screen, attaching a new
// GameLoop built from cfg.
func New(screen tcell.Screen, scene *bramble.Scene, cfg bramble.LoopConfig, clock bramble.TimeSource) *Host {
	h := &Host{Screen: screen, CellSize: 1, Background: tcell.StyleDefault, scene: scene}
	h.loop = bramble.NewGameLoop(cfg, h, clock)
	scene.Attach(h.loop)
	return h
}

// Loop returns the GameLoop driven by this host.
func (h *Host) Loop() *bramble.GameLoop {
	return h.loop
}

// RequestFrame implements bramble.FrameSource. The callback runs on the next
// Step.
func (h *Host) RequestFrame(fn func(now time.Time)) {
	h.pending = fn
}

// Step fires the pending frame at now and redraws the screen. It reports
// whether a frame callback ran.
func (h *Host) Step(now time.Time) bool {
	fn := h.pending
	if fn == nil {
		return false
	}
	h.pending = nil
	fn(now)
	h.draw()
	return true
}

func (h *Host) draw() {
	h.Screen.Fill(' ', h.Background)
	h.scene.Draw(&canvas{host: h})
	h.Screen.Show()
}

// Run starts the loop and processes refreshes and input until ctx is done or
// the user presses Esc, Ctrl-C, or q. A resize re-syncs the screen. The
// screen is not finalized; the caller owns it.
func (h *Host) Run(ctx context.Context, refresh time.Duration) error {
	if refresh <= 0 {
		refresh = DefaultRefresh
	}
	if !h.loop.Start() {
		return errors.New("termhost: loop already started")
	}
	defer h.loop.Stop()

	events := make(chan tcell.Event, 16)
	done := make(chan struct{})
	defer close(done)
	go h.pollEvents(events, done)

	ticker := time.NewTicker(refresh)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-ticker.C:
			h.Step(now)
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if !h.handleEvent(ev) {
				return nil
			}
		}
	}
}

// pollEvents forwards screen events until the screen is finalized or Run
// returns.
func (h *Host) pollEvents(events chan<- tcell.Event, done <-chan struct{}) {
	defer close(events)
	for {
		ev := h.Screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case events <- ev:
		case <-done:
			return
		}
	}
}

// handleEvent returns false when the event asks to quit.
func (h *Host) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyRune:
			if ev.Rune() == 'q' {
				return false
			}
		}
	case *tcell.EventResize:
		h.Screen.Sync()
	}
	return true
}

func (h *Host) cellSize() float64 {
	if h.CellSize <= 0 {
		return 1
	}
	return h.CellSize
}

// canvas rasterizes quads onto the host screen.
type canvas struct {
	host *Host
}

// FillQuad implements bramble.Canvas by inverse-mapping each cell center in
// the quad's screen bounds back to local space.
func (c *canvas) FillQuad(m bramble.Affine, r bramble.AABB, col bramble.Color) {
	if r.IsEmpty() || col.A <= 0 {
		return
	}
	cs := c.host.cellSize()
	sw, sh := c.host.Screen.Size()
	world := r.Transform(m)
	if !finite(world.MinX, world.MinY, world.MaxX, world.MaxY) {
		return
	}
	// Clamp in float space so huge extents never reach the int conversion.
	x0 := int(clampCell(math.Floor(world.MinX/cs), sw))
	y0 := int(clampCell(math.Floor(world.MinY/cs), sh))
	x1 := int(clampCell(math.Ceil(world.MaxX/cs), sw))
	y1 := int(clampCell(math.Ceil(world.MaxY/cs), sh))

	inv := m.Invert()
	style := c.host.Background.Foreground(toTcell(col))
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			lx, ly := inv.Apply((float64(x)+0.5)*cs, (float64(y)+0.5)*cs)
			if r.Contains(lx, ly) {
				c.host.Screen.SetContent(x, y, FillRune, nil, style)
			}
		}
	}
}

func clampCell(v float64, n int) float64 {
	return min(max(v, 0), float64(n))
}

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// toTcell flattens alpha onto black; terminals have no per-cell blending.
func toTcell(c bramble.Color) tcell.Color {
	a := min(max(c.A, 0), 1)
	ch := func(v float64) int32 {
		return int32(math.Round(min(max(v, 0), 1) * a * 255))
	}
	return tcell.NewRGBColor(ch(c.R), ch(c.G), ch(c.B))
}
