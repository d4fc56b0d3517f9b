// Package ebitenhost runs a bramble Scene in an ebiten window. ebiten's
// Update callback serves as the GameLoop's frame source, and Draw renders the
// scene with a white-pixel quad canvas.
package ebitenhost

import (
	"errors"
	"fmt"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/phanxgames/bramble"
)

var colorWhite = color.White

// RunConfig configures Run.
type RunConfig struct {
	Title         string
	Width, Height int
	// ClearColor fills the window before each draw. The zero value leaves
	// the screen black.
	ClearColor bramble.Color
	// ShowFPS draws the simulation and display rates in the top-left corner.
	ShowFPS bool
	// Loop tunes the GameLoop. A zero value uses bramble.DefaultLoopConfig.
	Loop *bramble.LoopConfig
}

// Host adapts a Scene to ebiten.Game and acts as the loop's FrameSource.
type Host struct {
	scene   *bramble.Scene
	loop    *bramble.GameLoop
	clock   bramble.TimeSource
	cfg     RunConfig
	canvas  Canvas
	pending func(time.Time)
	quit    bool
}

// New creates a host driving scene with a fresh GameLoop. The loop is not
// started; Run starts it.
func New(scene *bramble.Scene, cfg RunConfig) *Host {
	return newHost(scene, cfg, bramble.SystemTime{})
}

func newHost(scene *bramble.Scene, cfg RunConfig, clock bramble.TimeSource) *Host {
	loopCfg := bramble.DefaultLoopConfig()
	if cfg.Loop != nil {
		loopCfg = *cfg.Loop
	}
	h := &Host{scene: scene, clock: clock, cfg: cfg}
	h.loop = bramble.NewGameLoop(loopCfg, h, clock)
	scene.Attach(h.loop)
	return h
}

// Loop returns the GameLoop driven by this host.
func (h *Host) Loop() *bramble.GameLoop {
	return h.loop
}

// RequestFrame implements bramble.FrameSource. The callback runs on the next
// ebiten Update.
func (h *Host) RequestFrame(fn func(now time.Time)) {
	h.pending = fn
}

// Quit ends RunGame after the current Update.
func (h *Host) Quit() {
	h.quit = true
}

// Update implements ebiten.Game.
func (h *Host) Update() error {
	if fn := h.pending; fn != nil {
		h.pending = nil
		fn(h.clock.Now())
	}
	if h.quit {
		return ebiten.Termination
	}
	return nil
}

// Draw implements ebiten.Game.
func (h *Host) Draw(screen *ebiten.Image) {
	if h.cfg.ClearColor.A > 0 {
		r, g, b, a := colorScale(h.cfg.ClearColor)
		screen.Fill(color.RGBA{R: to8(r), G: to8(g), B: to8(b), A: to8(a)})
	}
	h.canvas.Target = screen
	h.scene.Draw(&h.canvas)
	h.canvas.Target = nil

	if h.cfg.ShowFPS {
		ebitenutil.DebugPrint(screen, h.fpsText())
	}
}

func (h *Host) fpsText() string {
	cur, scr := h.scene.FPS()
	return fmt.Sprintf("FPS: %d\nScreen: %d\nTPS: %.1f", cur, scr, ebiten.ActualTPS())
}

// Layout implements ebiten.Game with a fixed logical size.
func (h *Host) Layout(outsideWidth, outsideHeight int) (int, int) {
	if h.cfg.Width <= 0 || h.cfg.Height <= 0 {
		return outsideWidth, outsideHeight
	}
	return h.cfg.Width, h.cfg.Height
}

// Run opens a window, starts the scene's GameLoop, and blocks until the
// window closes. ebiten's tick rate is synced to the display so the loop's
// accumulator, not ebiten, decides how many steps run per frame.
func Run(scene *bramble.Scene, cfg RunConfig) error {
	h := New(scene, cfg)
	if cfg.Title != "" {
		ebiten.SetWindowTitle(cfg.Title)
	}
	if cfg.Width > 0 && cfg.Height > 0 {
		ebiten.SetWindowSize(cfg.Width, cfg.Height)
	}
	ebiten.SetTPS(ebiten.SyncWithFPS)

	h.loop.Start()
	defer h.loop.Stop()
	bramble.Logger().Debug("ebitenhost: running", "title", cfg.Title, "width", cfg.Width, "height", cfg.Height)

	if err := ebiten.RunGame(h); err != nil && !errors.Is(err, ebiten.Termination) {
		return fmt.Errorf("ebitenhost: run game: %w", err)
	}
	return nil
}

func to8(v float32) uint8 {
	return uint8(min(max(v, 0), 1)*255 + 0.5)
}
