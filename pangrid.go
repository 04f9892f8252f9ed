package pangrid

import "image/color"

// Color is a straight-alpha RGBA color with channels in [0, 1].
type Color struct {
	R, G, B, A float64
}

// ColorWhite leaves whatever it tints unchanged.
var ColorWhite = Color{R: 1, G: 1, B: 1, A: 1}

// toRGBA premultiplies c and quantizes it to 8 bits per channel.
func (c Color) toRGBA() color.RGBA {
	q := func(v float64) uint8 { return uint8(v*255 + 0.5) }
	return color.RGBA{R: q(c.R * c.A), G: q(c.G * c.A), B: q(c.B * c.A), A: q(c.A)}
}

// Vec2 is a position or offset in pixels.
type Vec2 struct {
	X, Y float64
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{v.X + o.X, v.Y + o.Y}
}

// Size is a width/height pair in pixels.
type Size struct {
	W, H float64
}

// Rect is an axis-aligned box in screen space (Y grows downward).
type Rect struct {
	X, Y          float64
	Width, Height float64
}

// Right returns the X coordinate of the right edge.
func (r Rect) Right() float64 { return r.X + r.Width }

// Bottom returns the Y coordinate of the bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.Height }

// Contains reports whether (x, y) is inside r, edges included.
func (r Rect) Contains(x, y float64) bool {
	return r.X <= x && x <= r.Right() && r.Y <= y && y <= r.Bottom()
}

// Intersects reports whether r and other overlap or touch.
func (r Rect) Intersects(other Rect) bool {
	return other.X <= r.Right() && r.X <= other.Right() &&
		other.Y <= r.Bottom() && r.Y <= other.Bottom()
}

// Intersection returns the overlapping region of r and other. The result has
// zero width or height when they do not overlap.
func (r Rect) Intersection(other Rect) Rect {
	x0 := max(r.X, other.X)
	y0 := max(r.Y, other.Y)
	x1 := min(r.Right(), other.Right())
	y1 := min(r.Bottom(), other.Bottom())
	if x1 <= x0 || y1 <= y0 {
		return Rect{X: x0, Y: y0}
	}
	return Rect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}

// Area returns Width*Height.
func (r Rect) Area() float64 {
	return r.Width * r.Height
}

// EventType identifies a kind of gallery event forwarded to an EventSink.
type EventType uint8

const (
	EventIntroDone     EventType = iota // intro finished, bindings active
	EventFocusChanged                   // focused item changed (ItemID empty when idle)
	EventItemShown                      // item entered the viewport
	EventItemHidden                     // item left the viewport
	EventDragStart                      // grid drag gesture started
	EventDragEnd                        // grid drag gesture released
	EventViewportResize                 // viewport dimensions changed
)

var eventTypeNames = [...]string{
	EventIntroDone:      "intro-done",
	EventFocusChanged:   "focus-changed",
	EventItemShown:      "item-shown",
	EventItemHidden:     "item-hidden",
	EventDragStart:      "drag-start",
	EventDragEnd:        "drag-end",
	EventViewportResize: "viewport-resize",
}

func (t EventType) String() string {
	if int(t) < len(eventTypeNames) {
		return eventTypeNames[t]
	}
	return "unknown"
}

// GalleryEvent carries a notification for an optional EventSink.
type GalleryEvent struct {
	Type     EventType
	ItemID   string
	Offset   Vec2
	Viewport Size
}

// EventSink is the interface for optional ECS or telemetry integration.
// When set on a Gallery, state changes are forwarded to it.
type EventSink interface {
	EmitEvent(event GalleryEvent)
}
