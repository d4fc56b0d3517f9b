package bramble

import (
	"fmt"
	"time"
)

// globalDebug mirrors the most recently set Scene debug flag so that node
// operations (which lack a Scene pointer) can check it cheaply. Only valid
// with a single Scene; multiple Scenes with differing debug modes will
// reflect whichever called SetDebugMode last.
var globalDebug bool

// debugStats holds per-frame timing metrics. Only populated in debug mode.
type debugStats struct {
	updateTime time.Duration
	drawTime   time.Duration
	drawn      int
}

// debugLog reports the frame's stats through the package logger.
func (s *Scene) debugLog(stats debugStats) {
	if !s.debug {
		return
	}
	Logger().Debug("bramble frame",
		"update", stats.updateTime,
		"draw", stats.drawTime,
		"drawn", stats.drawn,
		"alpha", s.alpha,
		"fps", s.currentFPS,
		"screenFps", s.screenFPS,
	)
}

// debugCheckDisposed panics with a descriptive message when a disposed node is
// used in a tree operation. Callers skip this entirely outside debug mode.
func debugCheckDisposed(n *Node, op string) {
	if n.disposed {
		panic(fmt.Sprintf("bramble debug: %s on disposed node %q", op, n.Name))
	}
}

// debugMaxTreeDepth is the depth past which debugCheckTreeDepth warns.
const debugMaxTreeDepth = 32

func debugCheckTreeDepth(n *Node) {
	depth := 0
	for p := n; p != nil; p = p.parent {
		depth++
	}
	if depth > debugMaxTreeDepth {
		Logger().Warn("bramble: deep tree", "depth", depth, "threshold", debugMaxTreeDepth, "node", n.Name)
	}
}

// debugMaxChildCount is the child count past which debugCheckChildCount warns.
const debugMaxChildCount = 1000

func debugCheckChildCount(n *Node) {
	if len(n.children) > debugMaxChildCount {
		Logger().Warn("bramble: wide node", "children", len(n.children), "threshold", debugMaxChildCount, "node", n.Name)
	}
}
