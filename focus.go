package pangrid

import (
	"errors"
	"fmt"

	"github.com/tanema/gween/ease"
)

// ErrNoDescription is returned when an item without a description entity is
// clicked. The focus transition is rejected.
var ErrNoDescription = errors.New("pangrid: no description for item")

// Timings of the focus transitions, in seconds.
const (
	slideDuration   = 1.2
	slideBackDelay  = 0.3
	flipDuration    = 0.5
	unflipDuration  = 0.4
	panelDuration   = 0.6
	charStaggerSpan = 0.025
	lineStaggerStep = 0.05

	// slideFraction is the container shift, as a fraction of the viewport
	// width, that makes room for the detail panel.
	slideFraction = -0.5
)

// FocusPhase is the tag of a FocusState.
type FocusPhase uint8

const (
	FocusIdle    FocusPhase = iota // nothing focused
	FocusShowing                   // exactly one item focused
)

func (p FocusPhase) String() string {
	if p == FocusShowing {
		return "showing"
	}
	return "idle"
}

// FocusState is Idle, or Showing one item. ItemID is non-empty exactly when
// Phase is FocusShowing.
type FocusState struct {
	Phase  FocusPhase
	ItemID string
	// Revealed is false while a switch waits for the previous item's
	// description to finish fading out.
	Revealed bool
	// Seq tags the most recent un-flip; only its UnflipDone is honoured.
	Seq uint64
}

// Focused returns the focused item ID.
func (s FocusState) Focused() (id string, ok bool) {
	return s.ItemID, s.Phase == FocusShowing
}

// Showing reports whether the detail view is open.
func (s FocusState) Showing() bool {
	return s.Phase == FocusShowing
}

// FocusEvent is an input to Transition.
type FocusEvent interface{ focusEvent() }

// ItemClicked is a click on a grid item.
type ItemClicked struct{ ID string }

// BackgroundClicked is a click on the grid container outside any item.
type BackgroundClicked struct{}

// PanelClicked is a click on the detail panel. It never reaches the
// background handler.
type PanelClicked struct{}

// UnflipDone reports that the un-flip tagged Seq finished fading.
type UnflipDone struct{ Seq uint64 }

func (ItemClicked) focusEvent()       {}
func (BackgroundClicked) focusEvent() {}
func (PanelClicked) focusEvent()      {}
func (UnflipDone) focusEvent()        {}

// Command is a side-effect request produced by Transition.
type Command interface{ command() }

// SlideContainer shifts the grid container horizontally to Fraction of the
// viewport width.
type SlideContainer struct {
	Fraction float64
	Duration float32
	Delay    float32
	Ease     ease.TweenFunc
}

// FadeDescription fades the description of ItemID to Alpha. When Then is
// set it must be delivered back to Transition after the fade completes.
type FadeDescription struct {
	ItemID   string
	Alpha    float64
	Duration float32
	Ease     ease.TweenFunc
	Then     FocusEvent
}

// ShowPanel opens the detail panel.
type ShowPanel struct{}

// HidePanel closes the detail panel, sliding its title characters and body
// lines out of view.
type HidePanel struct {
	Duration    float32
	Ease        ease.TweenFunc
	CharStagger Stagger
	LineStagger Stagger
}

func (SlideContainer) command()  {}
func (FadeDescription) command() {}
func (ShowPanel) command()       {}
func (HidePanel) command()       {}

// Catalog answers whether an item has a description entity.
type Catalog interface {
	HasDescription(id string) bool
}

// Transition computes the next focus state and the commands that realize it.
// It has no side effects. Commands must be executed in order.
func Transition(s FocusState, ev FocusEvent, cat Catalog) (FocusState, []Command, error) {
	switch e := ev.(type) {
	case ItemClicked:
		if !cat.HasDescription(e.ID) {
			return s, nil, fmt.Errorf("focus %q: %w", e.ID, ErrNoDescription)
		}
		return show(s, e.ID), showCommands(s, e.ID), nil
	case BackgroundClicked, PanelClicked:
		if !s.Showing() {
			return s, nil, nil
		}
		next, unflipCmds := unflip(s, nil)
		cmds := []Command{
			HidePanel{
				Duration:    panelDuration,
				Ease:        ease.InOutCubic,
				CharStagger: Stagger{Amount: charStaggerSpan, From: StaggerEnd},
				LineStagger: Stagger{Each: lineStaggerStep},
			},
			SlideContainer{Fraction: 0, Duration: slideDuration, Delay: slideBackDelay, Ease: ease.InOutCubic},
		}
		return next, append(cmds, unflipCmds...), nil
	case UnflipDone:
		if !s.Showing() || s.Revealed || e.Seq != s.Seq {
			return s, nil, nil
		}
		s.Revealed = true
		return s, []Command{flip(s.ItemID)}, nil
	}
	return s, nil, fmt.Errorf("focus: unknown event %T", ev)
}

// show returns the state after focusing id. A switch from another focused
// item waits for that item's un-flip before revealing id.
func show(s FocusState, id string) FocusState {
	if !s.Showing() {
		return FocusState{Phase: FocusShowing, ItemID: id, Revealed: true, Seq: s.Seq}
	}
	return FocusState{Phase: FocusShowing, ItemID: id, Revealed: false, Seq: s.Seq + 1}
}

func showCommands(s FocusState, id string) []Command {
	cmds := []Command{
		ShowPanel{},
		SlideContainer{Fraction: slideFraction, Duration: slideDuration, Ease: ease.InOutCubic},
	}
	if !s.Showing() {
		return append(cmds, flip(id))
	}
	_, unflipCmds := unflip(s, UnflipDone{Seq: s.Seq + 1})
	return append(cmds, unflipCmds...)
}

// unflip fades out the focused item's description and clears focus. then,
// if non-nil, is attached to the fade. It is a no-op when nothing is focused.
func unflip(s FocusState, then FocusEvent) (FocusState, []Command) {
	id, ok := s.Focused()
	if !ok {
		return s, nil
	}
	return FocusState{Phase: FocusIdle, Seq: s.Seq + 1}, []Command{FadeDescription{
		ItemID:   id,
		Alpha:    0,
		Duration: unflipDuration,
		Ease:     ease.OutQuad,
		Then:     then,
	}}
}

func flip(id string) Command {
	return FadeDescription{ItemID: id, Alpha: 1, Duration: flipDuration, Ease: ease.OutQuad}
}
