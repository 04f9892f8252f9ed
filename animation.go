package pangrid

import (
	"math/rand/v2"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Prop is a bit set of animatable Node properties.
type Prop uint8

const (
	PropX     Prop = 1 << iota // Node.X
	PropY                      // Node.Y
	PropScale                  // Node.ScaleX and Node.ScaleY together
	PropAlpha                  // Node.Alpha
)

// Props holds target values for a tween. Only the properties present in
// Mask are animated; use the With* helpers to build one.
type Props struct {
	X, Y, Scale, Alpha float64
	Mask               Prop
}

// WithX returns p with X set.
func (p Props) WithX(x float64) Props { p.X = x; p.Mask |= PropX; return p }

// WithY returns p with Y set.
func (p Props) WithY(y float64) Props { p.Y = y; p.Mask |= PropY; return p }

// WithPos returns p with X and Y set.
func (p Props) WithPos(x, y float64) Props { return p.WithX(x).WithY(y) }

// WithScale returns p with the uniform scale set.
func (p Props) WithScale(s float64) Props { p.Scale = s; p.Mask |= PropScale; return p }

// WithAlpha returns p with Alpha set.
func (p Props) WithAlpha(a float64) Props { p.Alpha = a; p.Mask |= PropAlpha; return p }

// Tween is a declarative animation request.
type Tween struct {
	Props Props
	// Duration in seconds. Zero or negative applies the values on the next
	// Update and completes immediately.
	Duration float32
	// Delay in seconds before the tween starts and captures its start values.
	Delay float32
	// Ease defaults to ease.OutQuad.
	Ease ease.TweenFunc
	// OnComplete is invoked exactly once from Animator.Update when the tween
	// finishes. It is not invoked when the tween is superseded before
	// finishing.
	OnComplete func()
}

// StaggerFrom selects the order in which a staggered batch starts.
type StaggerFrom uint8

const (
	StaggerStart  StaggerFrom = iota // first element starts first
	StaggerEnd                       // last element starts first
	StaggerRandom                    // random order
)

// Stagger spreads the start times of a batch of tweens. Amount is the total
// spread across the whole batch; when zero, Each is the gap between
// consecutive starts.
type Stagger struct {
	Each   float32
	Amount float32
	From   StaggerFrom
}

// channel is one animated scalar. Several fields may share a channel
// (PropScale drives ScaleX and ScaleY).
type channel struct {
	prop   Prop
	to     float64
	tween  *gween.Tween
	fields []*float64
	done   bool
}

type animation struct {
	node     *Node
	req      Tween
	delay    float32
	started  bool
	channels []channel
	group    *staggerGroup
	killed   bool
}

// staggerGroup fires its callback once every member has finished.
type staggerGroup struct {
	remaining int
	onDone    func()
}

// Animator schedules and advances tweens on Nodes. It is the single
// animation scheduler of a Gallery. Requests return immediately; completion
// callbacks run later from Update on the caller's goroutine.
//
// Starting a tween on a property of a node supersedes any running tween on
// the same property of the same node.
type Animator struct {
	anims   []*animation
	pending []func()
	rng     *rand.Rand
}

// NewAnimator creates an Animator. rng drives StaggerRandom ordering; nil
// uses a randomly seeded source.
func NewAnimator(rng *rand.Rand) *Animator {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Animator{rng: rng}
}

// To starts animating node toward t.Props.
func (a *Animator) To(node *Node, t Tween) {
	a.anims = append(a.anims, &animation{node: node, req: t, delay: t.Delay})
}

// StaggerTo starts the same tween on every node, offsetting start times per
// s. t.OnComplete fires once after the last node finishes. t.Delay is added
// to every node's offset.
func (a *Animator) StaggerTo(nodes []*Node, t Tween, s Stagger) {
	n := len(nodes)
	if n == 0 {
		if t.OnComplete != nil {
			a.pending = append(a.pending, t.OnComplete)
		}
		return
	}
	each := s.Each
	if s.Amount > 0 {
		each = 0
		if n > 1 {
			each = s.Amount / float32(n-1)
		}
	}

	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	switch s.From {
	case StaggerEnd:
		for i := range order {
			order[i] = n - 1 - i
		}
	case StaggerRandom:
		a.rng.Shuffle(n, func(i, j int) { order[i], order[j] = order[j], order[i] })
	}

	g := &staggerGroup{remaining: n, onDone: t.OnComplete}
	member := t
	member.OnComplete = nil
	for rank, idx := range order {
		member.Delay = t.Delay + float32(rank)*each
		a.anims = append(a.anims, &animation{node: nodes[idx], req: member, delay: member.Delay, group: g})
	}
}

// Set applies props immediately and kills running tweens on those properties.
func (a *Animator) Set(node *Node, p Props) {
	a.Kill(node, p.Mask)
	applyProps(node, p)
}

// Kill stops running tweens on the given properties of node without invoking
// their callbacks.
func (a *Animator) Kill(node *Node, mask Prop) {
	for _, an := range a.anims {
		if an.node == node && an.started {
			an.release(mask)
		}
	}
	for _, an := range a.anims {
		if an.node == node && !an.started {
			if an.req.Props.Mask&^mask == 0 {
				an.killed = true
			} else {
				an.req.Props.Mask &^= mask
			}
		}
	}
}

// Active reports the number of scheduled, unfinished tweens.
func (a *Animator) Active() int {
	return len(a.anims)
}

// Animating reports whether any scheduled tween touches one of mask on node.
func (a *Animator) Animating(node *Node, mask Prop) bool {
	for _, an := range a.anims {
		if an.node != node || an.killed {
			continue
		}
		if !an.started && an.req.Props.Mask&mask != 0 {
			return true
		}
		for i := range an.channels {
			if !an.channels[i].done && an.channels[i].prop&mask != 0 {
				return true
			}
		}
	}
	return false
}

// Update advances every tween by dt seconds and then invokes the completion
// callbacks of tweens that finished. Callbacks may schedule new tweens; those
// start advancing on the next Update.
func (a *Animator) Update(dt float32) {
	callbacks := a.pending
	a.pending = nil

	current := a.anims
	live := current[:0]
	for _, an := range current {
		if an.killed {
			continue
		}
		step := dt
		if !an.started {
			if an.delay > step {
				an.delay -= step
				live = append(live, an)
				continue
			}
			step -= an.delay
			an.delay = 0
			a.start(an, current)
		}
		if an.advance(step) {
			if an.killed {
				continue
			}
			if cb := an.finish(); cb != nil {
				callbacks = append(callbacks, cb)
			}
			continue
		}
		if !an.killed {
			live = append(live, an)
		}
	}
	clear(current[len(live):])
	a.anims = live

	for _, cb := range callbacks {
		cb()
	}
}

// start captures start values and supersedes older tweens on the same
// properties.
func (a *Animator) start(an *animation, all []*animation) {
	an.started = true
	mask := an.req.Props.Mask
	for _, other := range all {
		if other != an && other.node == an.node && other.started && !other.killed {
			other.release(mask)
		}
	}

	fn := an.req.Ease
	if fn == nil {
		fn = ease.OutQuad
	}
	n := an.node
	p := an.req.Props
	add := func(prop Prop, from, to float64, fields ...*float64) {
		an.channels = append(an.channels, channel{
			prop:   prop,
			to:     to,
			tween:  gween.New(float32(from), float32(to), an.req.Duration, fn),
			fields: fields,
		})
	}
	if p.Mask&PropX != 0 {
		add(PropX, n.X, p.X, &n.X)
	}
	if p.Mask&PropY != 0 {
		add(PropY, n.Y, p.Y, &n.Y)
	}
	if p.Mask&PropScale != 0 {
		add(PropScale, n.ScaleX, p.Scale, &n.ScaleX, &n.ScaleY)
	}
	if p.Mask&PropAlpha != 0 {
		add(PropAlpha, n.Alpha, p.Alpha, &n.Alpha)
	}
}

// release drops channels in mask. An animation left with no channels is
// killed.
func (an *animation) release(mask Prop) {
	alive := 0
	for i := range an.channels {
		if an.channels[i].prop&mask != 0 {
			an.channels[i].done = true
		}
		if !an.channels[i].done {
			alive++
		}
	}
	if alive == 0 {
		an.killed = true
	}
}

// advance steps all channels and reports whether every channel is finished.
// Finished channels write their exact target to avoid float32 drift.
func (an *animation) advance(dt float32) bool {
	if an.killed {
		return true
	}
	allDone := true
	for i := range an.channels {
		ch := &an.channels[i]
		if ch.done {
			continue
		}
		var v float64
		if an.req.Duration <= 0 {
			v, ch.done = ch.to, true
		} else {
			val, finished := ch.tween.Update(dt)
			v = float64(val)
			if finished {
				v, ch.done = ch.to, true
			}
		}
		for _, f := range ch.fields {
			*f = v
		}
		if !ch.done {
			allDone = false
		}
	}
	an.node.MarkDirty()
	return allDone
}

// finish returns the callback to run for a completed animation, resolving
// stagger groups.
func (an *animation) finish() func() {
	if an.group == nil {
		return an.req.OnComplete
	}
	an.group.remaining--
	if an.group.remaining == 0 {
		return an.group.onDone
	}
	return nil
}

func applyProps(n *Node, p Props) {
	if p.Mask&PropX != 0 {
		n.X = p.X
	}
	if p.Mask&PropY != 0 {
		n.Y = p.Y
	}
	if p.Mask&PropScale != 0 {
		n.ScaleX, n.ScaleY = p.Scale, p.Scale
	}
	if p.Mask&PropAlpha != 0 {
		n.Alpha = p.Alpha
	}
	n.MarkDirty()
}
