package pangrid

import (
	"math"
	"testing"
)

func TestNodeDefaults(t *testing.T) {
	n := NewRect("r", 10, 20, ColorWhite)
	if n.ScaleX != 1 || n.ScaleY != 1 || n.Alpha != 1 || !n.Visible {
		t.Errorf("defaults = scale (%f, %f) alpha %f visible %v", n.ScaleX, n.ScaleY, n.Alpha, n.Visible)
	}
	if n.Type != NodeTypeRect || n.Width != 10 || n.Height != 20 {
		t.Errorf("rect = %+v", n)
	}
	if a, b := NewContainer("a"), NewContainer("b"); a.ID == b.ID {
		t.Error("node IDs must be unique")
	}
}

func TestNodeTree(t *testing.T) {
	root := NewContainer("root")
	a := NewContainer("a")
	b := NewContainer("b")
	root.AddChild(a)
	root.AddChild(b)
	if root.NumChildren() != 2 || a.Parent != root {
		t.Fatalf("children = %d", root.NumChildren())
	}

	// Reparenting detaches from the old parent.
	a.AddChild(b)
	if root.NumChildren() != 1 || b.Parent != a {
		t.Errorf("reparent: root children %d, b.Parent == a is %v", root.NumChildren(), b.Parent == a)
	}

	b.RemoveFromParent()
	if a.NumChildren() != 0 || b.Parent != nil {
		t.Error("RemoveFromParent left links behind")
	}
	b.RemoveFromParent()
}

func TestNodeAddChildPanics(t *testing.T) {
	tests := []struct {
		name string
		fn   func()
	}{
		{"nil", func() { NewContainer("p").AddChild(nil) }},
		{"cycle", func() {
			p := NewContainer("p")
			c := NewContainer("c")
			p.AddChild(c)
			c.AddChild(p)
		}},
		{"self", func() {
			p := NewContainer("p")
			p.AddChild(p)
		}},
		{"wrong parent", func() {
			NewContainer("p").RemoveChild(NewContainer("c"))
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Error("expected panic")
				}
			}()
			tt.fn()
		})
	}
}

func TestWorldTransformPivotScale(t *testing.T) {
	parent := NewContainer("parent")
	parent.SetPosition(10, 0)
	child := NewRect("child", 20, 20, ColorWhite)
	child.SetPosition(100, 50)
	child.SetPivot(10, 10)
	child.SetScale(2, 2)
	parent.AddChild(child)
	parent.updateWorld()

	wx, wy := child.LocalToWorld(10, 10)
	if math.Abs(wx-110) > 1e-9 || math.Abs(wy-50) > 1e-9 {
		t.Errorf("pivot maps to (%f, %f), want (110, 50)", wx, wy)
	}
	lx, ly := child.WorldToLocal(wx, wy)
	if math.Abs(lx-10) > 1e-9 || math.Abs(ly-10) > 1e-9 {
		t.Errorf("round trip = (%f, %f), want (10, 10)", lx, ly)
	}

	b := child.WorldBounds()
	if b != (Rect{X: 90, Y: 30, Width: 40, Height: 40}) {
		t.Errorf("WorldBounds = %+v", b)
	}
	if !child.containsWorld(100, 40) || child.containsWorld(85, 40) {
		t.Error("containsWorld disagrees with WorldBounds")
	}
}

func TestWorldAlphaMultiplies(t *testing.T) {
	parent := NewContainer("parent")
	child := NewContainer("child")
	parent.AddChild(child)
	parent.SetAlpha(0.5)
	child.SetAlpha(0.5)
	parent.updateWorld()

	if child.worldAlpha != 0.25 {
		t.Errorf("worldAlpha = %f, want 0.25", child.worldAlpha)
	}
}

func TestWorldTransformDirtyPropagation(t *testing.T) {
	parent := NewContainer("parent")
	child := NewContainer("child")
	parent.AddChild(child)
	parent.updateWorld()

	parent.SetPosition(5, 5)
	parent.updateWorld()
	if x, y := child.LocalToWorld(0, 0); x != 5 || y != 5 {
		t.Errorf("child origin = (%f, %f), want (5, 5)", x, y)
	}

	// Direct writes need MarkDirty.
	parent.X = 50
	parent.updateWorld()
	if x, _ := child.LocalToWorld(0, 0); x != 5 {
		t.Errorf("clean node recomputed: x = %f", x)
	}
	parent.MarkDirty()
	parent.updateWorld()
	if x, _ := child.LocalToWorld(0, 0); x != 50 {
		t.Errorf("x = %f after MarkDirty, want 50", x)
	}
}

func TestPremultiplied(t *testing.T) {
	r, g, b, a := premultiplied(Color{R: 1, G: 0.5, B: 0, A: 1}, 0.5)
	if r != 0.5 || g != 0.25 || b != 0 || a != 0.5 {
		t.Errorf("premultiplied = %f %f %f %f", r, g, b, a)
	}
}

func TestGeoM(t *testing.T) {
	m := affine{2, 0, 0, 3, 10, 20}
	x, y := geoM(m).Apply(1, 1)
	if x != 12 || y != 23 {
		t.Errorf("Apply = (%f, %f), want (12, 23)", x, y)
	}
}
