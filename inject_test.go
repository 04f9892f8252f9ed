package pangrid

import "testing"

func drainInjected(g *Gallery) []inputFrame {
	var out []inputFrame
	for {
		f, ok := g.popInjected()
		if !ok {
			return out
		}
		out = append(out, f)
	}
}

func TestInjectClick(t *testing.T) {
	g := &Gallery{}
	g.InjectClick(10, 20)
	frames := drainInjected(g)
	if len(frames) != 2 {
		t.Fatalf("frames = %d, want 2", len(frames))
	}
	if !frames[0].pressed || frames[1].pressed {
		t.Errorf("pressed = %v, %v; want press then release", frames[0].pressed, frames[1].pressed)
	}
	for _, f := range frames {
		if f.x != 10 || f.y != 20 {
			t.Errorf("position = (%f, %f)", f.x, f.y)
		}
	}
}

func TestInjectDrag(t *testing.T) {
	tests := []struct {
		frames, want int
	}{
		{0, 2},
		{2, 2},
		{5, 5},
	}
	for _, tt := range tests {
		g := &Gallery{}
		g.InjectDrag(0, 0, 100, 50, tt.frames)
		frames := drainInjected(g)
		if len(frames) != tt.want {
			t.Fatalf("InjectDrag(frames=%d) queued %d, want %d", tt.frames, len(frames), tt.want)
		}
		last := frames[len(frames)-1]
		if last.pressed || last.x != 100 || last.y != 50 {
			t.Errorf("last frame = %+v, want release at (100, 50)", last)
		}
		for i := 1; i < len(frames)-1; i++ {
			if !frames[i].pressed || frames[i].x <= frames[i-1].x {
				t.Errorf("move %d = %+v", i, frames[i])
			}
		}
	}
}

func TestInjectWheelKeepsPointer(t *testing.T) {
	g := &Gallery{}
	g.InjectPress(5, 5)
	g.InjectWheel(0, 10)
	g.InjectEscape()
	frames := drainInjected(g)
	if len(frames) != 3 {
		t.Fatalf("frames = %d", len(frames))
	}
	w := frames[1]
	if !w.pressed || w.x != 5 || w.wheelY != 10 || w.escape {
		t.Errorf("wheel frame = %+v", w)
	}
	e := frames[2]
	if !e.escape || e.wheelY != 0 || !e.pressed {
		t.Errorf("escape frame = %+v", e)
	}

	// Once drained, new events continue from the last consumed state.
	g.InjectWheel(1, 0)
	if f, _ := g.popInjected(); !f.pressed || f.escape {
		t.Errorf("frame after drain = %+v", f)
	}
}
