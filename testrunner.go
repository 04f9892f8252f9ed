package pangrid

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrEmptyScript is returned by LoadTestScript for a script without steps.
var ErrEmptyScript = errors.New("parse test script: no steps")

// scriptAction names what a script step does.
type scriptAction string

const (
	actionWaitReady  scriptAction = "waitReady"
	actionWait       scriptAction = "wait"
	actionClick      scriptAction = "click"
	actionDrag       scriptAction = "drag"
	actionWheel      scriptAction = "wheel"
	actionEscape     scriptAction = "escape"
	actionScreenshot scriptAction = "screenshot"
)

func (a *scriptAction) UnmarshalText(b []byte) error {
	switch v := scriptAction(b); v {
	case actionWaitReady, actionWait, actionClick, actionDrag,
		actionWheel, actionEscape, actionScreenshot:
		*a = v
		return nil
	}
	return fmt.Errorf("unknown action %q", b)
}

// scriptStep is one entry of a script's "steps" array. Fields not used by
// the action are ignored.
type scriptStep struct {
	Action scriptAction `json:"action"`
	Label  string       `json:"label,omitempty"`
	X      float64      `json:"x,omitempty"`
	Y      float64      `json:"y,omitempty"`
	FromX  float64      `json:"fromX,omitempty"`
	FromY  float64      `json:"fromY,omitempty"`
	ToX    float64      `json:"toX,omitempty"`
	ToY    float64      `json:"toY,omitempty"`
	DeltaX float64      `json:"deltaX,omitempty"`
	DeltaY float64      `json:"deltaY,omitempty"`
	Frames int          `json:"frames,omitempty"`
}

// TestRunner plays a scripted session against a Gallery: it injects input,
// waits, and queues screenshots, one step per frame at most.
//
// Actions: waitReady, wait, click, drag, wheel, escape, screenshot.
type TestRunner struct {
	steps    []scriptStep
	next     int
	sleep    int
	finished bool
}

// LoadTestScript parses a JSON script of the form {"steps": [...]}.
func LoadTestScript(data []byte) (*TestRunner, error) {
	var doc struct {
		Steps []scriptStep `json:"steps"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse test script: %w", err)
	}
	if len(doc.Steps) == 0 {
		return nil, ErrEmptyScript
	}
	return &TestRunner{steps: doc.Steps}, nil
}

// SetTestRunner attaches r. It is stepped at the start of every Update.
func (g *Gallery) SetTestRunner(r *TestRunner) {
	g.testRunner = r
}

// Done reports whether the script has run to completion.
func (r *TestRunner) Done() bool {
	return r.finished
}

// step runs at most one script step. It holds while injected input is still
// queued, while a wait is counting down, and at waitReady until the gallery
// is active.
func (r *TestRunner) step(g *Gallery) {
	switch {
	case r.finished, len(g.injectQueue) > 0:
		return
	case r.sleep > 0:
		r.sleep--
		return
	case r.next == len(r.steps):
		r.finished = true
		return
	}

	st := r.steps[r.next]
	if st.Action == actionWaitReady && !g.active {
		return
	}
	r.next++
	r.run(g, st)

	if r.next == len(r.steps) && r.sleep == 0 && len(g.injectQueue) == 0 {
		r.finished = true
	}
}

func (r *TestRunner) run(g *Gallery, st scriptStep) {
	switch st.Action {
	case actionWait:
		// The current frame is the first one waited.
		r.sleep = max(st.Frames-1, 0)
	case actionClick:
		g.InjectClick(st.X, st.Y)
	case actionDrag:
		g.InjectDrag(st.FromX, st.FromY, st.ToX, st.ToY, st.Frames)
	case actionWheel:
		g.InjectWheel(st.DeltaX, st.DeltaY)
	case actionEscape:
		g.InjectEscape()
	case actionScreenshot:
		g.Screenshot(st.Label)
	}
}
