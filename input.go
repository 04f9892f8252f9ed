package pangrid

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// wheelPixelsPerLine converts ebiten's line-based wheel offsets into the
// pixel deltas WheelEvent expects.
const wheelPixelsPerLine = 16

// inputFrame is one frame of sampled input, from the real devices or the
// inject queue.
type inputFrame struct {
	x, y           float64
	pressed        bool
	wheelX, wheelY float64 // pixel deltas, positive Y scrolls down
	escape         bool
}

type hitKind uint8

const (
	hitBackground hitKind = iota
	hitItem
	hitPanel
)

type hitTarget struct {
	kind hitKind
	item *Item
}

// pointerState tracks the single logical pointer: the mouse, or the first
// touch when the mouse is up.
type pointerState struct {
	down    bool
	ignored bool // pressed before activation
	startX  float64
	startY  float64
	target  hitTarget
}

// pollInput samples the devices, preferring a queued synthetic event.
func (g *Gallery) pollInput() inputFrame {
	if f, ok := g.popInjected(); ok {
		return f
	}

	var f inputFrame
	mx, my := ebiten.CursorPosition()
	f.x, f.y = float64(mx), float64(my)
	f.pressed = ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	if !f.pressed {
		g.touchIDs = ebiten.AppendTouchIDs(g.touchIDs[:0])
		if len(g.touchIDs) > 0 {
			tx, ty := ebiten.TouchPosition(g.touchIDs[0])
			g.touch = Vec2{X: float64(tx), Y: float64(ty)}
			g.touching = true
			f.x, f.y = g.touch.X, g.touch.Y
			f.pressed = true
		} else if g.touching {
			// A lifted touch has no position; release where it was last seen.
			g.touching = false
			f.x, f.y = g.touch.X, g.touch.Y
		}
	}
	wx, wy := ebiten.Wheel()
	f.wheelX = -wx * wheelPixelsPerLine
	f.wheelY = -wy * wheelPixelsPerLine
	f.escape = inpututil.IsKeyJustPressed(ebiten.KeyEscape)
	return f
}

// processInput routes one frame of input. Nothing is bound before the intro
// finishes.
func (g *Gallery) processInput(in inputFrame) {
	if !g.active {
		g.ptr = pointerState{down: in.pressed, ignored: in.pressed}
		return
	}

	if in.wheelX != 0 || in.wheelY != 0 {
		e := WheelEvent{DeltaX: in.wheelX, DeltaY: in.wheelY}
		g.pan.Wheel(&e)
	}
	if in.escape && g.focus.Showing() {
		g.Dispatch(BackgroundClicked{})
	}

	switch {
	case in.pressed && !g.ptr.down:
		g.press(in.x, in.y)
	case in.pressed && g.ptr.down:
		if !g.ptr.ignored && g.ptr.target.kind != hitPanel {
			g.pan.PointerMove(in.x, in.y)
		}
	case !in.pressed && g.ptr.down:
		g.release(in.x, in.y)
	}
}

func (g *Gallery) press(x, y float64) {
	t := g.hitTest(x, y)
	g.ptr = pointerState{down: true, startX: x, startY: y, target: t}
	if t.kind != hitPanel {
		g.pan.PointerDown(x, y)
	}
}

func (g *Gallery) release(x, y float64) {
	p := g.ptr
	g.ptr = pointerState{}
	if p.ignored {
		return
	}
	if p.target.kind != hitPanel && g.pan.PointerUp(x, y) {
		return
	}
	// A click needs press and release on the same target.
	if t := g.hitTest(x, y); t != p.target {
		return
	}
	switch p.target.kind {
	case hitItem:
		g.Dispatch(ItemClicked{ID: p.target.item.ID})
	case hitPanel:
		g.Dispatch(PanelClicked{})
	default:
		g.Dispatch(BackgroundClicked{})
	}
}

// hitTest resolves a screen point. The open panel sits above the grid; the
// grid container fills everything else.
func (g *Gallery) hitTest(x, y float64) hitTarget {
	if g.panel.Contains(x, y) {
		return hitTarget{kind: hitPanel}
	}
	for i := len(g.items) - 1; i >= 0; i-- {
		it := g.items[i]
		if it.Visibility == Hidden || it.Node.worldAlpha <= 0 {
			continue
		}
		if it.Node.containsWorld(x, y) {
			return hitTarget{kind: hitItem, item: it}
		}
	}
	return hitTarget{kind: hitBackground}
}
