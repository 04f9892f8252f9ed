package pangrid

import (
	"errors"

	"github.com/tanema/gween/ease"
)

// ErrIntroStarted is returned by Intro.Start after the first call.
var ErrIntroStarted = errors.New("pangrid: intro already started")

const (
	introHiddenScale   = 0.5
	introItemDuration  = 0.6
	introStaggerAmount = 1.2
	introZoomDuration  = 1.2
)

// IntroPhase tracks the one-shot startup sequence.
type IntroPhase uint8

const (
	IntroPending IntroPhase = iota // Start not called yet
	IntroRunning                   // reveal animations in flight
	IntroDone                      // bindings activated
)

func (p IntroPhase) String() string {
	switch p {
	case IntroRunning:
		return "running"
	case IntroDone:
		return "done"
	}
	return "pending"
}

// Intro runs the startup reveal: center the grid, shrink and hide every item,
// grow them back in random staggered order, then zoom the container from half
// size to full. Only after the zoom completes does it call onActivate.
type Intro struct {
	anim       *Animator
	pan        *PanController
	items      []*Item
	onActivate func()
	phase      IntroPhase
}

// NewIntro creates the sequencer. onActivate runs once, from an animation
// completion callback.
func NewIntro(anim *Animator, pan *PanController, items []*Item, onActivate func()) *Intro {
	return &Intro{anim: anim, pan: pan, items: items, onActivate: onActivate}
}

// Phase returns the current phase.
func (in *Intro) Phase() IntroPhase {
	return in.phase
}

// Start begins the sequence. It can only be called once.
func (in *Intro) Start() error {
	if in.phase != IntroPending {
		return ErrIntroStarted
	}
	in.phase = IntroRunning

	in.pan.Center()
	in.pan.SetContainerScale(introHiddenScale)

	nodes := make([]*Node, len(in.items))
	for i, it := range in.items {
		nodes[i] = it.Node
		in.anim.Set(it.Node, Props{}.WithScale(introHiddenScale).WithAlpha(0))
	}
	in.anim.StaggerTo(nodes, Tween{
		Props:      Props{}.WithScale(1).WithAlpha(1),
		Duration:   introItemDuration,
		Ease:       ease.OutCubic,
		OnComplete: in.zoom,
	}, Stagger{Amount: introStaggerAmount, From: StaggerRandom})
	return nil
}

func (in *Intro) zoom() {
	in.pan.ScaleContainerTo(1, introZoomDuration, ease.InOutCubic, in.activate)
}

func (in *Intro) activate() {
	in.phase = IntroDone
	for _, it := range in.items {
		it.Visibility = Visible
	}
	if in.onActivate != nil {
		in.onActivate()
	}
}
