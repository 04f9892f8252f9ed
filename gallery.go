package pangrid

import (
	"errors"
	"fmt"
	"image"
	"log/slog"
	"math/rand/v2"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// Defaults applied by NewGallery to zero Config fields.
var (
	DefaultLayout   = GridLayout{Columns: 8, CellWidth: 240, CellHeight: 320, Gap: 40}
	DefaultViewport = Size{W: 1280, H: 800}
)

// ErrNoItems is returned by NewGallery when no entries are given.
var ErrNoItems = errors.New("pangrid: no items")

// Config configures a Gallery.
type Config struct {
	Layout GridLayout
	// Viewport is the initial size, replaced by the first Layout call.
	Viewport Size
	Logger   *slog.Logger
	// Rand drives the random intro stagger. Nil uses a random seed.
	Rand *rand.Rand
	// TitleFace and BodyFace render descriptions. Nil loads the Go fonts.
	TitleFace text.Face
	BodyFace  text.Face
	// Background fills the screen before drawing.
	Background Color
	// Preload, when set, gates the intro until images have decoded.
	Preload *Preloader
	// Sink receives lifecycle events. May be nil.
	Sink EventSink

	ShowFPS       bool
	Debug         bool
	ScreenshotDir string
}

// Gallery is the pannable grid runtime. It implements ebiten.Game.
//
// Node tree:
//
//	root
//	├── slider  (horizontal shift for the detail panel)
//	│   └── scaler  (intro zoom around the viewport center)
//	│       └── grid  (pan offset)
//	│           └── item nodes
//	└── panel
type Gallery struct {
	cfg Config
	log *slog.Logger

	root   *Node
	slider *Node
	scaler *Node
	grid   *Node

	items []*Item
	byID  map[string]*Item

	anim     *Animator
	pan      *PanController
	panel    *Panel
	observer *Observer
	culler   *Culler
	intro    *Intro

	focus    FocusState
	queue    []FocusEvent
	started  bool
	active   bool
	viewport Size

	ptr         pointerState
	injectQueue []syntheticPointerEvent
	inject      syntheticPointerEvent
	touchIDs    []ebiten.TouchID
	touch       Vec2
	touching    bool

	cursor        ebiten.CursorShapeType
	appliedCursor ebiten.CursorShapeType

	testRunner      *TestRunner
	screenshotQueue []string
	whitePixel      *ebiten.Image
	frame           uint64
}

// NewGallery builds the node tree, the items, and the detail panel for
// entries. The intro starts on the first Update, or once cfg.Preload is done.
func NewGallery(entries []Content, cfg Config) (*Gallery, error) {
	if len(entries) == 0 {
		return nil, ErrNoItems
	}
	if cfg.Layout.Columns <= 0 || cfg.Layout.CellWidth <= 0 || cfg.Layout.CellHeight <= 0 {
		cfg.Layout = DefaultLayout
	}
	if cfg.Viewport.W <= 0 || cfg.Viewport.H <= 0 {
		cfg.Viewport = DefaultViewport
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.DiscardHandler)
	}
	if cfg.Rand == nil {
		cfg.Rand = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if cfg.TitleFace == nil || cfg.BodyFace == nil {
		title, body, err := LoadDefaultFaces()
		if err != nil {
			return nil, err
		}
		if cfg.TitleFace == nil {
			cfg.TitleFace = title
		}
		if cfg.BodyFace == nil {
			cfg.BodyFace = body
		}
	}
	if cfg.ScreenshotDir == "" {
		cfg.ScreenshotDir = "screenshots"
	}

	g := &Gallery{
		cfg:      cfg,
		log:      cfg.Logger,
		root:     NewContainer("root"),
		slider:   NewContainer("slider"),
		scaler:   NewContainer("scaler"),
		grid:     NewContainer("grid"),
		viewport: cfg.Viewport,
		byID:     make(map[string]*Item, len(entries)),
		cursor:   ebiten.CursorShapeDefault,
	}
	g.root.AddChild(g.slider)
	g.slider.AddChild(g.scaler)
	g.scaler.AddChild(g.grid)

	items, err := buildItems(g.grid, cfg.Layout, entries)
	if err != nil {
		return nil, fmt.Errorf("pangrid: build items: %w", err)
	}
	g.items = items
	for _, it := range items {
		g.byID[it.ID] = it
	}

	g.anim = NewAnimator(cfg.Rand)
	g.pan = NewPanController(g.grid, g.scaler, g.slider, g.anim,
		cfg.Layout.Size(len(items)), g.viewport, g.log)
	g.pan.OnDragStart = g.dragStarted
	g.pan.OnDragEnd = g.dragEnded

	g.panel = NewPanel(g.anim, entries, g.viewport, cfg.TitleFace, cfg.BodyFace)
	g.root.AddChild(g.panel.Root)

	g.observer = NewObserver(DefaultThreshold)
	g.culler = NewCuller(g.anim, func() string {
		id, _ := g.focus.Focused()
		return id
	})
	g.intro = NewIntro(g.anim, g.pan, items, g.activate)

	g.log.Debug("gallery built",
		slog.Int("items", len(items)),
		slog.Int("descriptions", len(g.panel.order)),
		slog.Any("content", g.pan.content))
	return g, nil
}

// Items returns the items in grid order.
func (g *Gallery) Items() []*Item { return g.items }

// Item returns the item with id.
func (g *Gallery) Item(id string) (*Item, bool) {
	it, ok := g.byID[id]
	return it, ok
}

// Focus returns the current focus state.
func (g *Gallery) Focus() FocusState { return g.focus }

// Active reports whether the intro has finished and input is bound.
func (g *Gallery) Active() bool { return g.active }

// Pan returns the pan controller.
func (g *Gallery) Pan() *PanController { return g.pan }

// Panel returns the detail panel.
func (g *Gallery) Panel() *Panel { return g.panel }

// Animator returns the gallery's animator.
func (g *Gallery) Animator() *Animator { return g.anim }

// Intro returns the startup sequencer.
func (g *Gallery) Intro() *Intro { return g.intro }

// Viewport returns the current viewport size.
func (g *Gallery) Viewport() Size { return g.viewport }

// Root returns the root of the node tree.
func (g *Gallery) Root() *Node { return g.root }

// SetEventSink replaces the lifecycle event sink.
func (g *Gallery) SetEventSink(s EventSink) { g.cfg.Sink = s }

// Dispatch queues a focus event. It is processed during the next Update.
func (g *Gallery) Dispatch(ev FocusEvent) {
	g.queue = append(g.queue, ev)
}

// Update implements ebiten.Game.
func (g *Gallery) Update() error {
	dt := float32(1.0 / float64(ebiten.TPS()))
	return g.tick(dt, g.pollInput())
}

// tick advances the gallery by dt seconds with one frame of input.
func (g *Gallery) tick(dt float32, in inputFrame) error {
	if err := g.maybeStart(); err != nil {
		return err
	}
	if g.testRunner != nil {
		g.testRunner.step(g)
	}

	g.refresh()
	g.processInput(in)
	g.pan.Update(dt)
	g.anim.Update(dt)
	g.drain()

	if g.active {
		g.refresh()
		g.cull()
	}
	g.frame++
	return nil
}

// refresh brings world transforms up to date.
func (g *Gallery) refresh() {
	g.root.updateWorld()
}

func (g *Gallery) maybeStart() error {
	if g.started {
		return nil
	}
	if p := g.cfg.Preload; p != nil {
		if !p.Ready() {
			return nil
		}
		imgs, err := p.Result()
		if err != nil {
			return fmt.Errorf("pangrid: %w", err)
		}
		g.applyImages(imgs)
	}
	g.started = true
	if err := g.intro.Start(); err != nil {
		return err
	}
	g.log.Debug("intro started")
	return nil
}

// applyImages uploads decoded images to the items that reference them.
func (g *Gallery) applyImages(imgs map[string]image.Image) {
	uploaded := make(map[string]*ebiten.Image, len(imgs))
	for _, it := range g.items {
		path := it.content.ImagePath
		if path == "" || it.content.Image != nil {
			continue
		}
		src, ok := imgs[path]
		if !ok {
			g.log.Warn("image not preloaded", slog.String("item", it.ID), slog.String("path", path))
			continue
		}
		img, ok := uploaded[path]
		if !ok {
			img = ebiten.NewImageFromImage(src)
			uploaded[path] = img
		}
		it.setImage(img)
	}
	g.log.Debug("images applied", slog.Int("images", len(uploaded)))
}

// activate runs once, when the intro zoom completes.
func (g *Gallery) activate() {
	g.active = true
	g.pan.Enable()
	g.observer.Observe(g.items...)
	g.log.Info("gallery ready",
		slog.Int("items", len(g.items)),
		slog.Float64("viewport_w", g.viewport.W),
		slog.Float64("viewport_h", g.viewport.H))
	g.emit(GalleryEvent{Type: EventIntroDone})
}

// drain processes queued focus events in order. Events queued while
// draining are processed in the same pass.
func (g *Gallery) drain() {
	for len(g.queue) > 0 {
		ev := g.queue[0]
		g.queue = g.queue[1:]
		g.apply(ev)
	}
}

func (g *Gallery) apply(ev FocusEvent) {
	if !g.active {
		return
	}
	prev := g.focus
	next, cmds, err := Transition(prev, ev, g.panel)
	if err != nil {
		g.log.Warn("focus transition rejected", slog.String("event", fmt.Sprintf("%T", ev)), slog.Any("err", err))
		return
	}
	g.focus = next
	for _, c := range cmds {
		g.execute(c)
	}

	if prev.ItemID == next.ItemID && prev.Phase == next.Phase {
		return
	}
	if prev.ItemID != "" && prev.ItemID != next.ItemID {
		// The culler skipped this item while it was focused.
		g.observer.Forget(prev.ItemID)
	}
	g.log.Debug("focus changed",
		slog.String("from", prev.ItemID),
		slog.String("to", next.ItemID),
		slog.String("phase", next.Phase.String()))
	g.emit(GalleryEvent{Type: EventFocusChanged, ItemID: next.ItemID})
}

func (g *Gallery) execute(c Command) {
	switch c := c.(type) {
	case SlideContainer:
		g.pan.SlideContainer(c.Fraction, c.Duration, c.Delay, c.Ease)
	case FadeDescription:
		var done func()
		if c.Then != nil {
			then := c.Then
			done = func() { g.Dispatch(then) }
		}
		g.panel.Fade(c.ItemID, c.Alpha, c.Duration, c.Ease, done)
	case ShowPanel:
		g.panel.Show()
	case HidePanel:
		g.panel.Hide(c)
	}
}

// cull runs the observer against the viewport and applies the batch.
func (g *Gallery) cull() {
	batch := g.observer.Check(Rect{Width: g.viewport.W, Height: g.viewport.H})
	if len(batch) == 0 {
		return
	}
	for _, rec := range g.culler.Apply(batch) {
		typ := EventItemShown
		if !rec.Intersecting {
			typ = EventItemHidden
		}
		g.emit(GalleryEvent{Type: typ, ItemID: rec.Item.ID})
	}
}

// Layout implements ebiten.Game. The screen matches the window size.
func (g *Gallery) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.resize(Size{W: float64(outsideWidth), H: float64(outsideHeight)})
	return outsideWidth, outsideHeight
}

func (g *Gallery) resize(s Size) {
	if s == g.viewport || s.W <= 0 || s.H <= 0 {
		return
	}
	g.viewport = s
	g.pan.Resize(s)
	g.panel.Layout(s)
	g.emit(GalleryEvent{Type: EventViewportResize, Viewport: s})
}

func (g *Gallery) dragStarted() {
	g.cursor = ebiten.CursorShapeMove
	g.emit(GalleryEvent{Type: EventDragStart, Offset: g.pan.Offset()})
}

func (g *Gallery) dragEnded() {
	g.cursor = ebiten.CursorShapeDefault
	g.emit(GalleryEvent{Type: EventDragEnd, Offset: g.pan.Offset()})
}

func (g *Gallery) emit(e GalleryEvent) {
	if g.cfg.Sink != nil {
		g.cfg.Sink.EmitEvent(e)
	}
}
