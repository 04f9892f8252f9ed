package pangrid

// Margins is the overscroll allowance of a clamp rectangle, in pixels, on
// each side of each axis.
type Margins struct {
	X, Y float64
}

// Margin profiles. DragMargins is the looser profile given to the drag engine
// for inertial drags; ResizeMargins is applied after the viewport resizes.
var (
	DragMargins   = Margins{X: 200, Y: 100}
	ResizeMargins = Margins{X: 50, Y: 50}
)

// Bounds is the rectangle a grid offset is clamped to.
type Bounds struct {
	MinX, MaxX, MinY, MaxY float64
}

// ComputeBounds derives the clamp rectangle that stops content from being
// panned further than m past the viewport edges:
//
//	MinX = -(content.W - viewport.W) - m.X    MaxX = m.X
//	MinY = -(content.H - viewport.H) - m.Y    MaxY = m.Y
//
// When an axis would come out inverted (content smaller than the viewport by
// more than twice the margin) it collapses to the centered offset, so
// MinX <= MaxX and MinY <= MaxY always hold.
func ComputeBounds(content, viewport Size, m Margins) Bounds {
	b := Bounds{
		MinX: -(content.W - viewport.W) - m.X,
		MaxX: m.X,
		MinY: -(content.H - viewport.H) - m.Y,
		MaxY: m.Y,
	}
	if b.MinX > b.MaxX {
		c := (viewport.W - content.W) / 2
		b.MinX, b.MaxX = c, c
	}
	if b.MinY > b.MaxY {
		c := (viewport.H - content.H) / 2
		b.MinY, b.MaxY = c, c
	}
	return b
}

// CenterOffset returns the offset that centers content over the viewport.
func CenterOffset(content, viewport Size) Vec2 {
	return Vec2{
		X: (viewport.W - content.W) / 2,
		Y: (viewport.H - content.H) / 2,
	}
}

// Clamp restricts p to the rectangle.
func (b Bounds) Clamp(p Vec2) Vec2 {
	return Vec2{X: clamp(p.X, b.MinX, b.MaxX), Y: clamp(p.Y, b.MinY, b.MaxY)}
}

// Contains reports whether p lies inside the rectangle, edges included.
func (b Bounds) Contains(p Vec2) bool {
	return p.X >= b.MinX && p.X <= b.MaxX && p.Y >= b.MinY && p.Y <= b.MaxY
}

func clamp(v, lo, hi float64) float64 {
	return max(lo, min(hi, v))
}
