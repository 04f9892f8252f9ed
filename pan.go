package pangrid

import (
	"log/slog"

	"github.com/tanema/gween/ease"
)

const (
	// WheelMultiplier scales an inverted wheel delta into a pan delta.
	WheelMultiplier = 7

	wheelDuration      = 0.3
	dragEdgeResistance = 0.9
)

// WheelEvent is one wheel notification in browser-style pixel deltas
// (positive DeltaY scrolls down). Handled is set once the event has been
// consumed.
type WheelEvent struct {
	DeltaX, DeltaY float64
	Handled        bool
}

// PanController owns the grid offset. It merges drag gestures and wheel
// input into the grid node's X/Y, clamped to the active bounds, and owns the
// transforms of the two containers above the grid: the scaler (intro zoom)
// and the slider (horizontal shift for the detail panel). No other component
// writes these transforms.
type PanController struct {
	grid   *Node
	scaler *Node
	slider *Node
	anim   *Animator
	log    *slog.Logger

	content  Size
	viewport Size
	drag     *Draggable

	// OnDragStart and OnDragEnd mirror the drag engine notifications.
	OnDragStart func()
	OnDragEnd   func()
}

// NewPanController creates a controller for grid nested as
// slider -> scaler -> grid. content is the grid's full size.
func NewPanController(grid, scaler, slider *Node, anim *Animator, content, viewport Size, log *slog.Logger) *PanController {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	p := &PanController{
		grid:     grid,
		scaler:   scaler,
		slider:   slider,
		anim:     anim,
		log:      log,
		content:  content,
		viewport: viewport,
	}
	p.layoutScaler()
	return p
}

// Offset returns the grid's current offset.
func (p *PanController) Offset() Vec2 {
	return Vec2{X: p.grid.X, Y: p.grid.Y}
}

// Viewport returns the last viewport size given to the controller.
func (p *PanController) Viewport() Size {
	return p.viewport
}

// Center places the grid so its content is centered in the viewport,
// immediately and without animation.
func (p *PanController) Center() {
	c := CenterOffset(p.content, p.viewport)
	p.anim.Set(p.grid, Props{}.WithPos(c.X, c.Y))
}

// Enable hands the grid to the drag engine with the drag margin profile.
// Calling it again is a no-op.
func (p *PanController) Enable() {
	if p.drag != nil {
		return
	}
	p.drag = NewDraggable(p.grid, DragConfig{
		Bounds:         ComputeBounds(p.content, p.viewport, DragMargins),
		Inertia:        true,
		EdgeResistance: dragEdgeResistance,
		OnDragStart: func() {
			if p.OnDragStart != nil {
				p.OnDragStart()
			}
		},
		OnDragEnd: func() {
			if p.OnDragEnd != nil {
				p.OnDragEnd()
			}
		},
	})
}

// Enabled reports whether Enable has run.
func (p *PanController) Enabled() bool {
	return p.drag != nil
}

// Bounds returns the drag engine's current clamp rectangle. ok is false
// before Enable.
func (p *PanController) Bounds() (b Bounds, ok bool) {
	if p.drag == nil {
		return Bounds{}, false
	}
	return p.drag.Bounds, true
}

// Dragging reports whether a drag gesture is active.
func (p *PanController) Dragging() bool {
	return p.drag != nil && p.drag.Dragging()
}

// Settled reports whether no drag, glide, or wheel tween is moving the grid.
func (p *PanController) Settled() bool {
	if p.anim.Animating(p.grid, PropX|PropY) {
		return false
	}
	return p.drag == nil || p.drag.Settled()
}

// Wheel consumes a wheel event. The delta is inverted and multiplied by
// WheelMultiplier, added to the current offset, clamped to the active bounds,
// and animated to. The event is always marked handled. Returns the clamped
// target; ok is false when panning is not enabled yet or a pointer is held
// on the grid, since the drag engine then owns the offset.
func (p *PanController) Wheel(e *WheelEvent) (target Vec2, ok bool) {
	e.Handled = true
	if p.drag == nil {
		return Vec2{}, false
	}
	if p.drag.Pressed() {
		p.log.Debug("wheel ignored during pointer gesture")
		return p.Offset(), false
	}
	delta := Vec2{X: -e.DeltaX * WheelMultiplier, Y: -e.DeltaY * WheelMultiplier}
	target = p.drag.Bounds.Clamp(p.Offset().Add(delta))
	p.drag.Stop()
	p.anim.To(p.grid, Tween{
		Props:    Props{}.WithPos(target.X, target.Y),
		Duration: wheelDuration,
		Ease:     ease.OutCubic,
	})
	return target, true
}

// Resize records the new viewport and recomputes the drag engine's bounds
// with the resize margin profile, in place. The current offset is not
// re-clamped. Before Enable only the container layout is updated.
func (p *PanController) Resize(viewport Size) {
	p.viewport = viewport
	p.layoutScaler()
	if p.drag == nil {
		return
	}
	p.drag.Bounds = ComputeBounds(p.content, viewport, ResizeMargins)
	p.log.Debug("pan bounds updated",
		slog.Float64("viewport_w", viewport.W),
		slog.Float64("viewport_h", viewport.H),
		slog.Any("bounds", p.drag.Bounds))
}

// PointerDown starts a potential drag. Running wheel tweens on the grid stop
// so that only the drag engine writes the offset.
func (p *PanController) PointerDown(x, y float64) {
	if p.drag == nil {
		return
	}
	p.anim.Kill(p.grid, PropX|PropY)
	p.drag.Press(x, y)
}

// PointerMove forwards pointer motion to the drag engine.
func (p *PanController) PointerMove(x, y float64) {
	if p.drag != nil {
		p.drag.Move(x, y)
	}
}

// PointerUp ends the gesture and reports whether it was a drag.
func (p *PanController) PointerUp(x, y float64) bool {
	if p.drag == nil {
		return false
	}
	return p.drag.Release(x, y)
}

// Update advances the drag engine's inertia by dt seconds.
func (p *PanController) Update(dt float32) {
	if p.drag != nil {
		p.drag.Update(float64(dt))
	}
}

// SlideContainer tweens the slider to fraction x viewport width.
func (p *PanController) SlideContainer(fraction float64, duration, delay float32, fn ease.TweenFunc) {
	p.anim.To(p.slider, Tween{
		Props:    Props{}.WithX(fraction * p.viewport.W),
		Duration: duration,
		Delay:    delay,
		Ease:     fn,
	})
}

// SetContainerScale sets the scaler's scale immediately.
func (p *PanController) SetContainerScale(s float64) {
	p.anim.Set(p.scaler, Props{}.WithScale(s))
}

// ScaleContainerTo tweens the scaler's scale, calling onComplete when done.
func (p *PanController) ScaleContainerTo(s float64, duration float32, fn ease.TweenFunc, onComplete func()) {
	p.anim.To(p.scaler, Tween{
		Props:      Props{}.WithScale(s),
		Duration:   duration,
		Ease:       fn,
		OnComplete: onComplete,
	})
}

// layoutScaler keeps the scaler pivoting around the viewport center.
func (p *PanController) layoutScaler() {
	cx, cy := p.viewport.W/2, p.viewport.H/2
	p.scaler.SetPivot(cx, cy)
	p.scaler.SetPosition(cx, cy)
}
