package pangrid

import "math"

const (
	defaultDragDeadZone = 4.0  // pixels
	defaultFriction     = 4.0  // velocity decay rate per second while gliding
	overshootDamping    = 8.0  // friction multiplier while gliding outside bounds
	settleRate          = 12.0 // elastic return rate per second
	minGlideSpeed       = 10.0 // px/s below which a glide ends
	settleEpsilon       = 0.5  // px from the bound at which settling snaps
	velocitySmoothing   = 0.4  // weight of the newest velocity sample
)

// DragConfig configures a Draggable.
type DragConfig struct {
	// Bounds limits the target's X/Y once the gesture settles.
	Bounds Bounds
	// Inertia lets the target keep gliding after release.
	Inertia bool
	// EdgeResistance in [0, 1] scales down motion past Bounds while
	// dragging (0 = free overshoot, 1 = hard stop).
	EdgeResistance float64
	// DeadZone is the pointer travel in pixels before a drag starts.
	// Zero uses 4 px.
	DeadZone float64
	// Friction is the per-second velocity decay during inertia. Zero uses 4.
	Friction float64

	OnDragStart func()
	OnDragEnd   func()
}

// Draggable moves a target node on both axes in response to pointer
// gestures, with edge resistance, inertia, and an elastic return into bounds.
// It writes Target.X and Target.Y directly.
type Draggable struct {
	Target *Node
	// Bounds may be reassigned at any time; the new rectangle applies to
	// the next gesture or settle.
	Bounds         Bounds
	Inertia        bool
	EdgeResistance float64

	deadZone    float64
	friction    float64
	onDragStart func()
	onDragEnd   func()

	pressed        bool
	dragging       bool
	pressX, pressY float64
	startX, startY float64
	prevX, prevY   float64
	vx, vy         float64
	gliding        bool
	settling       bool
}

// NewDraggable creates a Draggable for target.
func NewDraggable(target *Node, cfg DragConfig) *Draggable {
	d := &Draggable{
		Target:         target,
		Bounds:         cfg.Bounds,
		Inertia:        cfg.Inertia,
		EdgeResistance: cfg.EdgeResistance,
		deadZone:       cfg.DeadZone,
		friction:       cfg.Friction,
		onDragStart:    cfg.OnDragStart,
		onDragEnd:      cfg.OnDragEnd,
	}
	if d.deadZone <= 0 {
		d.deadZone = defaultDragDeadZone
	}
	if d.friction <= 0 {
		d.friction = defaultFriction
	}
	d.prevX, d.prevY = target.X, target.Y
	return d
}

// Press begins a potential gesture at pointer position (x, y). Any glide or
// settle in progress stops.
func (d *Draggable) Press(x, y float64) {
	d.pressed = true
	d.dragging = false
	d.pressX, d.pressY = x, y
	d.startX, d.startY = d.Target.X, d.Target.Y
	d.prevX, d.prevY = d.Target.X, d.Target.Y
	d.Stop()
}

// Move updates the gesture with the pointer at (x, y).
func (d *Draggable) Move(x, y float64) {
	if !d.pressed {
		return
	}
	dx := x - d.pressX
	dy := y - d.pressY
	if !d.dragging {
		if math.Sqrt(dx*dx+dy*dy) <= d.deadZone {
			return
		}
		d.dragging = true
		if d.onDragStart != nil {
			d.onDragStart()
		}
	}
	d.Target.X = d.resist(d.startX+dx, d.Bounds.MinX, d.Bounds.MaxX)
	d.Target.Y = d.resist(d.startY+dy, d.Bounds.MinY, d.Bounds.MaxY)
	d.Target.MarkDirty()
}

// Release ends the gesture and reports whether it was a drag (as opposed to
// a press that never left the dead zone).
func (d *Draggable) Release(x, y float64) bool {
	if !d.pressed {
		return false
	}
	d.Move(x, y)
	d.pressed = false
	if !d.dragging {
		// A click can interrupt a glide or return past the bounds.
		if !d.Bounds.Contains(Vec2{X: d.Target.X, Y: d.Target.Y}) {
			d.settling = true
		}
		return false
	}
	d.dragging = false
	if d.Inertia {
		d.gliding = true
	} else {
		d.settling = true
	}
	if d.onDragEnd != nil {
		d.onDragEnd()
	}
	return true
}

// Pressed reports whether a pointer is held on the target, dragging or not.
func (d *Draggable) Pressed() bool {
	return d.pressed
}

// Dragging reports whether a drag gesture is in progress.
func (d *Draggable) Dragging() bool {
	return d.dragging
}

// Settled reports whether the target is at rest: no gesture, glide, or
// elastic return in progress.
func (d *Draggable) Settled() bool {
	return !d.pressed && !d.gliding && !d.settling
}

// Stop cancels any glide or elastic return, leaving the target where it is.
func (d *Draggable) Stop() {
	d.gliding = false
	d.settling = false
	d.vx, d.vy = 0, 0
}

// Update advances velocity tracking, inertia, and the elastic return by dt
// seconds.
func (d *Draggable) Update(dt float64) {
	if dt <= 0 {
		return
	}
	t := d.Target
	switch {
	case d.dragging:
		ivx := (t.X - d.prevX) / dt
		ivy := (t.Y - d.prevY) / dt
		d.vx += (ivx - d.vx) * velocitySmoothing
		d.vy += (ivy - d.vy) * velocitySmoothing
	case d.gliding:
		t.X += d.vx * dt
		t.Y += d.vy * dt
		d.vx *= d.decay(t.X, d.Bounds.MinX, d.Bounds.MaxX, dt)
		d.vy *= d.decay(t.Y, d.Bounds.MinY, d.Bounds.MaxY, dt)
		t.MarkDirty()
		if math.Hypot(d.vx, d.vy) < minGlideSpeed {
			d.gliding = false
			d.settling = true
		}
	case d.settling:
		k := 1 - math.Exp(-settleRate*dt)
		doneX := settleAxis(&t.X, d.Bounds.MinX, d.Bounds.MaxX, k)
		doneY := settleAxis(&t.Y, d.Bounds.MinY, d.Bounds.MaxY, k)
		t.MarkDirty()
		if doneX && doneY {
			d.settling = false
		}
	}
	d.prevX, d.prevY = t.X, t.Y
}

// resist scales the portion of v past [lo, hi] by 1-EdgeResistance.
func (d *Draggable) resist(v, lo, hi float64) float64 {
	k := 1 - clamp(d.EdgeResistance, 0, 1)
	switch {
	case v < lo:
		return lo - (lo-v)*k
	case v > hi:
		return hi + (v-hi)*k
	}
	return v
}

// decay returns the velocity multiplier for one glide step; gliding past a
// bound brakes much harder.
func (d *Draggable) decay(v, lo, hi, dt float64) float64 {
	f := d.friction
	if v < lo || v > hi {
		f *= overshootDamping
	}
	return math.Exp(-f * dt)
}

// settleAxis eases *v toward [lo, hi] by fraction k and reports whether it
// arrived.
func settleAxis(v *float64, lo, hi, k float64) bool {
	target := clamp(*v, lo, hi)
	if math.Abs(target-*v) <= settleEpsilon {
		*v = target
		return true
	}
	*v += (target - *v) * k
	return false
}
