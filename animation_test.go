package pangrid

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/tanema/gween/ease"
)

func newTestAnimator() *Animator {
	return NewAnimator(rand.New(rand.NewPCG(1, 2)))
}

func TestTweenPositionReachesTarget(t *testing.T) {
	a := newTestAnimator()
	node := NewContainer("pos")
	node.X, node.Y = 10, 20

	calls := 0
	a.To(node, Tween{
		Props:      Props{}.WithPos(100, 200),
		Duration:   1,
		Ease:       ease.Linear,
		OnComplete: func() { calls++ },
	})

	a.Update(0.5)
	if math.Abs(node.X-55) > 0.5 {
		t.Errorf("X = %f, want ~55 at halfway", node.X)
	}
	if calls != 0 {
		t.Fatal("OnComplete fired before the tween finished")
	}

	a.Update(0.5)
	if node.X != 100 || node.Y != 200 {
		t.Errorf("position = (%f, %f), want exactly (100, 200)", node.X, node.Y)
	}
	if calls != 1 {
		t.Errorf("OnComplete calls = %d, want 1", calls)
	}
	if a.Active() != 0 {
		t.Errorf("Active = %d after completion, want 0", a.Active())
	}

	a.Update(1)
	if calls != 1 {
		t.Errorf("OnComplete fired again: %d", calls)
	}
}

func TestTweenScaleDrivesBothAxes(t *testing.T) {
	a := newTestAnimator()
	node := NewContainer("scale")

	a.To(node, Tween{Props: Props{}.WithScale(0.5), Duration: 0.5, Ease: ease.Linear})
	a.Update(0.5)

	if node.ScaleX != 0.5 || node.ScaleY != 0.5 {
		t.Errorf("scale = (%f, %f), want (0.5, 0.5)", node.ScaleX, node.ScaleY)
	}
}

func TestTweenDelayCapturesStartValuesLate(t *testing.T) {
	a := newTestAnimator()
	node := NewContainer("delay")

	a.To(node, Tween{Props: Props{}.WithX(100), Duration: 1, Delay: 0.5, Ease: ease.Linear})

	a.Update(0.25)
	if node.X != 0 {
		t.Fatalf("X moved during delay: %f", node.X)
	}
	// Changed before the delay elapses; the tween must start from here.
	node.X = 50
	a.Update(0.25)
	a.Update(0.5)
	if math.Abs(node.X-75) > 0.5 {
		t.Errorf("X = %f, want ~75", node.X)
	}
}

func TestTweenZeroDurationSnaps(t *testing.T) {
	a := newTestAnimator()
	node := NewContainer("snap")

	done := false
	a.To(node, Tween{Props: Props{}.WithAlpha(0), OnComplete: func() { done = true }})
	if done {
		t.Fatal("OnComplete must not run synchronously")
	}
	a.Update(0)
	if node.Alpha != 0 {
		t.Errorf("Alpha = %f, want 0", node.Alpha)
	}
	if !done {
		t.Error("OnComplete did not fire")
	}
}

func TestNewerTweenSupersedesProperty(t *testing.T) {
	a := newTestAnimator()
	node := NewContainer("overwrite")

	firstDone, secondDone := 0, 0
	a.To(node, Tween{
		Props:      Props{}.WithX(100),
		Duration:   1,
		Ease:       ease.Linear,
		OnComplete: func() { firstDone++ },
	})
	a.Update(0.5)

	a.To(node, Tween{
		Props:      Props{}.WithX(0),
		Duration:   1,
		Ease:       ease.Linear,
		OnComplete: func() { secondDone++ },
	})
	a.Update(0.25)
	a.Update(1)

	if node.X != 0 {
		t.Errorf("X = %f, want 0 from the newer tween", node.X)
	}
	if firstDone != 0 {
		t.Errorf("superseded tween's OnComplete fired %d times", firstDone)
	}
	if secondDone != 1 {
		t.Errorf("newer tween's OnComplete fired %d times, want 1", secondDone)
	}
}

func TestSupersedeOnlyOverlappingProperties(t *testing.T) {
	a := newTestAnimator()
	node := NewContainer("partial")

	a.To(node, Tween{Props: Props{}.WithPos(100, 100), Duration: 1, Ease: ease.Linear})
	a.Update(0.25)
	a.To(node, Tween{Props: Props{}.WithX(-50), Duration: 0.5, Ease: ease.Linear})
	for range 8 {
		a.Update(0.25)
	}

	if node.X != -50 {
		t.Errorf("X = %f, want -50", node.X)
	}
	if node.Y != 100 {
		t.Errorf("Y = %f, want 100 (older tween keeps Y)", node.Y)
	}
}

func TestStaggerToSpreadsStartsAndCompletesOnce(t *testing.T) {
	a := newTestAnimator()
	nodes := []*Node{NewContainer("a"), NewContainer("b"), NewContainer("c")}
	for _, n := range nodes {
		n.Alpha = 0
	}

	calls := 0
	a.StaggerTo(nodes, Tween{
		Props:      Props{}.WithAlpha(1),
		Duration:   0.5,
		Ease:       ease.Linear,
		OnComplete: func() { calls++ },
	}, Stagger{Amount: 1})

	a.Update(0.25)
	if math.Abs(nodes[0].Alpha-0.5) > 0.01 {
		t.Errorf("first alpha = %f, want ~0.5", nodes[0].Alpha)
	}
	if nodes[1].Alpha != 0 || nodes[2].Alpha != 0 {
		t.Errorf("later nodes started early: %f %f", nodes[1].Alpha, nodes[2].Alpha)
	}

	for range 4 {
		a.Update(0.25)
	}
	if calls != 0 {
		t.Fatalf("group callback fired before the last node finished")
	}
	a.Update(0.25)
	if calls != 1 {
		t.Errorf("group callback calls = %d, want 1", calls)
	}
	for i, n := range nodes {
		if n.Alpha != 1 {
			t.Errorf("node %d alpha = %f, want 1", i, n.Alpha)
		}
	}
}

func TestStaggerFromEnd(t *testing.T) {
	a := newTestAnimator()
	nodes := []*Node{NewContainer("a"), NewContainer("b")}

	a.StaggerTo(nodes, Tween{Props: Props{}.WithX(10), Duration: 0.5, Ease: ease.Linear},
		Stagger{Each: 1, From: StaggerEnd})
	a.Update(0.5)

	if nodes[1].X != 10 {
		t.Errorf("last node X = %f, want 10 (starts first)", nodes[1].X)
	}
	if nodes[0].X != 0 {
		t.Errorf("first node X = %f, want 0 (still delayed)", nodes[0].X)
	}
}

func TestStaggerRandomIsSeeded(t *testing.T) {
	order := func() []int {
		a := NewAnimator(rand.New(rand.NewPCG(7, 7)))
		nodes := make([]*Node, 6)
		for i := range nodes {
			nodes[i] = NewContainer("n")
		}
		a.StaggerTo(nodes, Tween{Props: Props{}.WithX(1), Duration: 0}, Stagger{Each: 1, From: StaggerRandom})
		var started []int
		for range len(nodes) {
			a.Update(1)
			for i, n := range nodes {
				if n.X == 1 && !contains(started, i) {
					started = append(started, i)
				}
			}
		}
		return started
	}
	first, second := order(), order()
	if len(first) != 6 {
		t.Fatalf("started %d nodes, want 6", len(first))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("random stagger not reproducible: %v vs %v", first, second)
		}
	}
}

func contains(s []int, v int) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}
	return false
}

func TestStaggerToEmptyCompletesOnNextUpdate(t *testing.T) {
	a := newTestAnimator()
	done := false
	a.StaggerTo(nil, Tween{OnComplete: func() { done = true }}, Stagger{Amount: 1})
	if done {
		t.Fatal("callback ran synchronously")
	}
	a.Update(0)
	if !done {
		t.Error("callback did not run on Update")
	}
}

func TestKillStopsWithoutCallback(t *testing.T) {
	a := newTestAnimator()
	node := NewContainer("kill")

	done := false
	a.To(node, Tween{Props: Props{}.WithX(100), Duration: 1, Ease: ease.Linear, OnComplete: func() { done = true }})
	a.Update(0.5)
	if !a.Animating(node, PropX) {
		t.Fatal("Animating = false while running")
	}
	a.Kill(node, PropX)
	x := node.X
	a.Update(1)

	if done {
		t.Error("killed tween fired OnComplete")
	}
	if node.X != x {
		t.Errorf("X moved after Kill: %f -> %f", x, node.X)
	}
	if a.Animating(node, PropX) {
		t.Error("Animating = true after Kill")
	}
	if a.Active() != 0 {
		t.Errorf("Active = %d, want 0", a.Active())
	}
}

func TestKillPendingTween(t *testing.T) {
	a := newTestAnimator()
	node := NewContainer("pending")
	a.To(node, Tween{Props: Props{}.WithPos(10, 10), Duration: 0.5, Delay: 1})
	if !a.Animating(node, PropY) {
		t.Fatal("delayed tween should count as animating")
	}
	a.Kill(node, PropX)
	for range 4 {
		a.Update(0.5)
	}
	if node.X != 0 {
		t.Errorf("X = %f, want 0 (killed)", node.X)
	}
	if node.Y != 10 {
		t.Errorf("Y = %f, want 10 (not killed)", node.Y)
	}
}

func TestSetAppliesImmediatelyAndKills(t *testing.T) {
	a := newTestAnimator()
	node := NewContainer("set")
	a.To(node, Tween{Props: Props{}.WithAlpha(0), Duration: 1})
	a.Update(0.25)

	a.Set(node, Props{}.WithAlpha(0.75).WithScale(2))
	if node.Alpha != 0.75 || node.ScaleX != 2 || node.ScaleY != 2 {
		t.Fatalf("Set not applied: alpha %f scale %f", node.Alpha, node.ScaleX)
	}
	a.Update(1)
	if node.Alpha != 0.75 {
		t.Errorf("Alpha = %f, want 0.75 (tween killed by Set)", node.Alpha)
	}
}

func TestCallbackMaySchedule(t *testing.T) {
	a := newTestAnimator()
	node := NewContainer("chain")

	a.To(node, Tween{Props: Props{}.WithX(10), Duration: 0, OnComplete: func() {
		a.To(node, Tween{Props: Props{}.WithY(20), Duration: 0})
	}})
	a.Update(0)
	if node.Y != 0 {
		t.Fatal("chained tween ran in the same Update")
	}
	a.Update(0)
	if node.X != 10 || node.Y != 20 {
		t.Errorf("position = (%f, %f), want (10, 20)", node.X, node.Y)
	}
}

func TestTweenMarksNodeDirty(t *testing.T) {
	a := newTestAnimator()
	root := NewContainer("root")
	child := NewContainer("child")
	root.AddChild(child)
	root.updateWorld()

	a.To(child, Tween{Props: Props{}.WithX(40), Duration: 0})
	a.Update(0)
	root.updateWorld()

	if x, _ := child.LocalToWorld(0, 0); x != 40 {
		t.Errorf("world X = %f, want 40", x)
	}
}
