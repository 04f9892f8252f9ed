package pangrid

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"testing"
)

const testDT = float32(1.0 / 60)

type recordingSink struct{ events []GalleryEvent }

func (s *recordingSink) EmitEvent(e GalleryEvent) { s.events = append(s.events, e) }

func (s *recordingSink) count(typ EventType) int {
	n := 0
	for _, e := range s.events {
		if e.Type == typ {
			n++
		}
	}
	return n
}

// newTestGallery lays out 40 items as a 3000x2000 grid in a 1000x800
// viewport.
func newTestGallery(t *testing.T) (*Gallery, *recordingSink) {
	t.Helper()
	entries := make([]Content, 40)
	for i := range entries {
		id := fmt.Sprintf("p%d", i+1)
		entries[i] = Content{ID: id, Title: id, Description: "description of " + id}
	}
	sink := &recordingSink{}
	g, err := NewGallery(entries, Config{
		Layout:   GridLayout{Columns: 10, CellWidth: 300, CellHeight: 500},
		Viewport: Size{W: 1000, H: 800},
		Rand:     rand.New(rand.NewPCG(1, 1)),
		Sink:     sink,
	})
	if err != nil {
		t.Fatalf("NewGallery: %v", err)
	}
	return g, sink
}

func runFrames(g *Gallery, n int) {
	for range n {
		g.tick(testDT, inputFrame{})
	}
}

func runUntilActive(t *testing.T, g *Gallery) {
	t.Helper()
	for i := 0; i < 600 && !g.Active(); i++ {
		g.tick(testDT, inputFrame{})
	}
	if !g.Active() {
		t.Fatal("gallery never activated")
	}
}

// feed runs one frame per queued injected event.
func feed(g *Gallery) {
	for {
		f, ok := g.popInjected()
		if !ok {
			return
		}
		g.tick(testDT, f)
	}
}

func itemCenter(t *testing.T, g *Gallery, id string) (float64, float64) {
	t.Helper()
	it, ok := g.Item(id)
	if !ok {
		t.Fatalf("no item %s", id)
	}
	b := it.Bounds()
	return b.X + b.Width/2, b.Y + b.Height/2
}

func TestNewGalleryErrors(t *testing.T) {
	if _, err := NewGallery(nil, Config{}); !errors.Is(err, ErrNoItems) {
		t.Errorf("empty entries: err = %v, want ErrNoItems", err)
	}
	dup := []Content{{ID: "a"}, {ID: "a"}}
	if _, err := NewGallery(dup, Config{}); !errors.Is(err, ErrDuplicateItem) {
		t.Errorf("duplicate ids: err = %v, want ErrDuplicateItem", err)
	}
}

func TestNewGalleryDefaults(t *testing.T) {
	g, err := NewGallery([]Content{{ID: "a"}}, Config{})
	if err != nil {
		t.Fatalf("NewGallery: %v", err)
	}
	if g.Viewport() != DefaultViewport {
		t.Errorf("viewport = %+v, want default", g.Viewport())
	}
	if g.cfg.ScreenshotDir != "screenshots" {
		t.Errorf("ScreenshotDir = %q", g.cfg.ScreenshotDir)
	}
	if g.Panel().HasDescription("a") {
		t.Error("entry without description got a description entity")
	}
}

func TestGalleryIntroActivates(t *testing.T) {
	g, sink := newTestGallery(t)
	if g.Active() {
		t.Fatal("active before the intro")
	}
	g.tick(testDT, inputFrame{})
	if g.Intro().Phase() != IntroRunning {
		t.Fatalf("intro phase = %v after first tick", g.Intro().Phase())
	}
	runUntilActive(t, g)

	if sink.count(EventIntroDone) != 1 {
		t.Errorf("IntroDone events = %d, want 1", sink.count(EventIntroDone))
	}
	if !g.Pan().Enabled() {
		t.Error("pan not enabled after activation")
	}
	if got := g.Pan().Offset(); got != (Vec2{X: -1000, Y: -600}) {
		t.Errorf("offset = %+v, want centered", got)
	}

	runFrames(g, 60)
	visible, hidden := 0, 0
	for _, it := range g.Items() {
		if it.Visibility == Visible {
			visible++
		} else {
			hidden++
		}
	}
	if visible == 0 || hidden == 0 {
		t.Errorf("visible %d hidden %d, want both after culling", visible, hidden)
	}
	if sink.count(EventItemHidden) != hidden {
		t.Errorf("ItemHidden events = %d, want %d", sink.count(EventItemHidden), hidden)
	}
}

func TestGalleryDropsInputBeforeActivation(t *testing.T) {
	g, _ := newTestGallery(t)
	g.Dispatch(ItemClicked{ID: "p7"})
	g.tick(testDT, inputFrame{x: 500, y: 400, pressed: true})
	g.tick(testDT, inputFrame{x: 500, y: 400, wheelX: -10})
	runUntilActive(t, g)
	runFrames(g, 30)

	if g.Focus().Showing() {
		t.Errorf("focus = %+v, want idle", g.Focus())
	}
	if got := g.Pan().Offset(); got != (Vec2{X: -1000, Y: -600}) {
		t.Errorf("offset = %+v, input leaked into pan", got)
	}
}

func TestGalleryPressHeldThroughActivationIsIgnored(t *testing.T) {
	g, _ := newTestGallery(t)
	held := inputFrame{x: 500, y: 400, pressed: true}
	for i := 0; i < 600 && !g.Active(); i++ {
		g.tick(testDT, held)
	}
	g.tick(testDT, held)
	g.tick(testDT, inputFrame{x: 500, y: 400})

	if g.Focus().Showing() {
		t.Errorf("release of a pre-activation press focused %q", g.Focus().ItemID)
	}
}

func TestGalleryFocusSwitch(t *testing.T) {
	g, sink := newTestGallery(t)
	runUntilActive(t, g)

	g.Dispatch(ItemClicked{ID: "p7"})
	runFrames(g, 120)
	if id, ok := g.Focus().Focused(); !ok || id != "p7" {
		t.Fatalf("focus = %+v, want p7", g.Focus())
	}
	if a := g.Panel().Alpha("p7"); a != 1 {
		t.Errorf("p7 description alpha = %f, want 1", a)
	}
	if !g.Panel().Showing() {
		t.Error("panel not showing")
	}
	if g.slider.X != -500 {
		t.Errorf("slider X = %f, want -500", g.slider.X)
	}

	g.Dispatch(ItemClicked{ID: "p3"})
	runFrames(g, 120)
	if id, _ := g.Focus().Focused(); id != "p3" {
		t.Fatalf("focus = %q, want p3", id)
	}
	if a := g.Panel().Alpha("p7"); a != 0 {
		t.Errorf("p7 description alpha = %f, want 0", a)
	}
	if a := g.Panel().Alpha("p3"); a != 1 {
		t.Errorf("p3 description alpha = %f, want 1", a)
	}
	if !g.Focus().Revealed {
		t.Error("p3 not revealed")
	}
	if sink.count(EventFocusChanged) != 2 {
		t.Errorf("FocusChanged events = %d, want 2", sink.count(EventFocusChanged))
	}

	g.Dispatch(BackgroundClicked{})
	runFrames(g, 120)
	if g.Focus().Showing() {
		t.Error("still showing after background click")
	}
	if g.slider.X != 0 {
		t.Errorf("slider X = %f, want 0", g.slider.X)
	}
	if a := g.Panel().Alpha("p3"); a != 0 {
		t.Errorf("p3 description alpha = %f, want 0", a)
	}
}

func TestGalleryMissingDescriptionRejected(t *testing.T) {
	entries := []Content{{ID: "a", Description: "x"}, {ID: "b"}}
	g, err := NewGallery(entries, Config{Rand: rand.New(rand.NewPCG(1, 1))})
	if err != nil {
		t.Fatalf("NewGallery: %v", err)
	}
	runUntilActive(t, g)
	g.Dispatch(ItemClicked{ID: "b"})
	runFrames(g, 1)
	if g.Focus().Showing() {
		t.Errorf("focus = %+v, want idle", g.Focus())
	}
}

func TestGalleryClickItem(t *testing.T) {
	g, _ := newTestGallery(t)
	runUntilActive(t, g)
	runFrames(g, 60)

	x, y := itemCenter(t, g, "p26")
	g.InjectClick(x, y)
	feed(g)
	if id, _ := g.Focus().Focused(); id != "p26" {
		t.Fatalf("focus = %+v, want p26", g.Focus())
	}

	runFrames(g, 90)
	g.InjectClick(900, 400)
	feed(g)
	if g.Focus().Showing() {
		t.Error("panel click did not close the detail view")
	}
	if g.ptr.target.kind != hitBackground || g.ptr.down {
		t.Errorf("pointer state not reset: %+v", g.ptr)
	}

	runFrames(g, 120)
	x, y = itemCenter(t, g, "p26")
	g.InjectClick(x, y)
	g.InjectEscape()
	feed(g)
	if g.Focus().Showing() {
		t.Error("Escape did not close the detail view")
	}
}

func TestGalleryPanelPressDoesNotPan(t *testing.T) {
	g, _ := newTestGallery(t)
	runUntilActive(t, g)
	g.Dispatch(ItemClicked{ID: "p26"})
	runFrames(g, 90)
	before := g.Pan().Offset()

	g.InjectDrag(900, 400, 600, 400, 6)
	feed(g)
	runFrames(g, 30)
	if got := g.Pan().Offset(); got != before {
		t.Errorf("offset = %+v, want %+v", got, before)
	}
}

func TestGalleryDragIsNotAClick(t *testing.T) {
	g, sink := newTestGallery(t)
	runUntilActive(t, g)
	runFrames(g, 60)

	g.InjectDrag(500, 400, 300, 400, 10)
	feed(g)
	if g.Focus().Showing() {
		t.Errorf("drag focused %q", g.Focus().ItemID)
	}
	if sink.count(EventDragStart) != 1 || sink.count(EventDragEnd) != 1 {
		t.Errorf("drag events start %d end %d", sink.count(EventDragStart), sink.count(EventDragEnd))
	}
	runFrames(g, 300)
	if !g.Pan().Settled() {
		t.Fatal("pan did not settle")
	}
	b, _ := g.Pan().Bounds()
	if off := g.Pan().Offset(); !b.Contains(off) {
		t.Errorf("offset %+v outside bounds %+v", off, b)
	}
	if off := g.Pan().Offset(); off.X >= -1100 {
		t.Errorf("offset X = %f, want moved left", off.X)
	}
}

func TestGalleryWheel(t *testing.T) {
	g, _ := newTestGallery(t)
	runUntilActive(t, g)

	g.InjectWheel(-10, 0)
	feed(g)
	runFrames(g, 30)
	if got := g.Pan().Offset(); got != (Vec2{X: -930, Y: -600}) {
		t.Errorf("offset = %+v, want (-930, -600)", got)
	}
}

func TestGalleryResize(t *testing.T) {
	g, sink := newTestGallery(t)
	runUntilActive(t, g)

	w, h := g.Layout(1200, 900)
	if w != 1200 || h != 900 {
		t.Errorf("Layout = %d, %d", w, h)
	}
	if g.Viewport() != (Size{W: 1200, H: 900}) {
		t.Errorf("viewport = %+v", g.Viewport())
	}
	b, _ := g.Pan().Bounds()
	if want := ComputeBounds(Size{W: 3000, H: 2000}, Size{W: 1200, H: 900}, ResizeMargins); b != want {
		t.Errorf("bounds = %+v, want %+v", b, want)
	}
	g.Layout(1200, 900)
	if sink.count(EventViewportResize) != 1 {
		t.Errorf("ViewportResize events = %d, want 1", sink.count(EventViewportResize))
	}
}

func TestGalleryDebugStats(t *testing.T) {
	g, _ := newTestGallery(t)
	runUntilActive(t, g)
	g.Dispatch(ItemClicked{ID: "p7"})
	runFrames(g, 1)

	st := g.debugStats()
	if st.intro != IntroDone || st.focus.ItemID != "p7" {
		t.Errorf("stats = %+v", st)
	}
	if st.visible+st.hidden != 40 {
		t.Errorf("visible+hidden = %d, want 40", st.visible+st.hidden)
	}
	if s := st.String(); s == "" {
		t.Error("empty stats string")
	}
}
