package pangrid

// syntheticPointerEvent represents a single injected input event in screen
// coordinates, identical to real mouse input.
type syntheticPointerEvent struct {
	screenX, screenY float64
	pressed          bool
	wheelX, wheelY   float64
	escape           bool
}

// InjectPress queues a pointer press at the given screen coordinates. The
// event is consumed on the next frame.
func (g *Gallery) InjectPress(x, y float64) {
	g.injectQueue = append(g.injectQueue, syntheticPointerEvent{screenX: x, screenY: y, pressed: true})
}

// InjectMove queues a pointer move with the button held down. Use this
// between InjectPress and InjectRelease to simulate a drag.
func (g *Gallery) InjectMove(x, y float64) {
	g.injectQueue = append(g.injectQueue, syntheticPointerEvent{screenX: x, screenY: y, pressed: true})
}

// InjectRelease queues a pointer release at the given screen coordinates.
func (g *Gallery) InjectRelease(x, y float64) {
	g.injectQueue = append(g.injectQueue, syntheticPointerEvent{screenX: x, screenY: y})
}

// InjectClick queues a press followed by a release at the same screen
// coordinates. Consumes two frames.
func (g *Gallery) InjectClick(x, y float64) {
	g.InjectPress(x, y)
	g.InjectRelease(x, y)
}

// InjectDrag queues a full drag sequence: press at (fromX, fromY), linearly
// interpolated moves over frames-2 intermediate frames, and release at
// (toX, toY). Minimum frames is 2 (press + release).
func (g *Gallery) InjectDrag(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	g.InjectPress(fromX, fromY)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		g.InjectMove(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
	g.InjectRelease(toX, toY)
}

// InjectWheel queues a wheel notification in pixel deltas (positive dy
// scrolls down). The pointer keeps its last injected state.
func (g *Gallery) InjectWheel(dx, dy float64) {
	last := g.lastInjected()
	last.wheelX, last.wheelY = dx, dy
	last.escape = false
	g.injectQueue = append(g.injectQueue, last)
}

// InjectEscape queues an Escape key press.
func (g *Gallery) InjectEscape() {
	last := g.lastInjected()
	last.wheelX, last.wheelY = 0, 0
	last.escape = true
	g.injectQueue = append(g.injectQueue, last)
}

// lastInjected returns the pointer state the queue will leave behind.
func (g *Gallery) lastInjected() syntheticPointerEvent {
	if n := len(g.injectQueue); n > 0 {
		return g.injectQueue[n-1]
	}
	return g.inject
}

// popInjected pops one event from the inject queue. Returns false when the
// queue is empty and real input should be read.
func (g *Gallery) popInjected() (inputFrame, bool) {
	if len(g.injectQueue) == 0 {
		return inputFrame{}, false
	}
	evt := g.injectQueue[0]
	copy(g.injectQueue, g.injectQueue[1:])
	g.injectQueue = g.injectQueue[:len(g.injectQueue)-1]
	g.inject = evt
	return evt.frame(), true
}

func (e syntheticPointerEvent) frame() inputFrame {
	return inputFrame{
		x:       e.screenX,
		y:       e.screenY,
		pressed: e.pressed,
		wheelX:  e.wheelX,
		wheelY:  e.wheelY,
		escape:  e.escape,
	}
}
