package pangrid

import (
	"errors"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
)

// ErrDuplicateItem is returned when two content entries share an ID.
var ErrDuplicateItem = errors.New("pangrid: duplicate item id")

// Visibility is an item's culling state.
type Visibility uint8

const (
	Visible Visibility = iota
	Hidden
)

func (v Visibility) String() string {
	if v == Hidden {
		return "hidden"
	}
	return "visible"
}

// Content describes one grid entry. Image may be nil, in which case the
// item is drawn as a solid Color until ImagePath, if set, has been preloaded.
type Content struct {
	ID          string
	Title       string
	Description string
	Image       *ebiten.Image
	ImagePath   string
	Color       Color
}

// Item is one cell of the grid. Items are created once and live for the
// whole session.
type Item struct {
	ID         string
	Node       *Node
	Visibility Visibility
	content    Content
	cell       Rect
}

// Content returns the entry the item was built from.
func (it *Item) Content() Content {
	return it.content
}

// setImage swaps the item's fill for img.
func (it *Item) setImage(img *ebiten.Image) {
	it.content.Image = img
	it.Node.Type = NodeTypeImage
	it.Node.Image = img
}

// Bounds returns the item's cell in world space as of the last transform
// refresh. It ignores the item's own scale, so culling animations do not feed
// back into the observed ratio.
func (it *Item) Bounds() Rect {
	m := identity
	if it.Node.Parent != nil {
		m = it.Node.Parent.world
	}
	m[4], m[5] = m.apply(it.cell.X, it.cell.Y)
	return m.bounds(it.cell.Width, it.cell.Height)
}

// GridLayout places items row-major in fixed-size cells.
type GridLayout struct {
	Columns    int
	CellWidth  float64
	CellHeight float64
	Gap        float64
}

// Size returns the content size of a grid holding n items.
func (l GridLayout) Size(n int) Size {
	cols := max(l.Columns, 1)
	rows := (n + cols - 1) / cols
	if n < cols {
		cols = n
	}
	return Size{
		W: float64(cols)*l.CellWidth + float64(max(cols-1, 0))*l.Gap,
		H: float64(rows)*l.CellHeight + float64(max(rows-1, 0))*l.Gap,
	}
}

// Cell returns the top-left corner of cell i.
func (l GridLayout) Cell(i int) Vec2 {
	cols := max(l.Columns, 1)
	col, row := i%cols, i/cols
	return Vec2{
		X: float64(col) * (l.CellWidth + l.Gap),
		Y: float64(row) * (l.CellHeight + l.Gap),
	}
}

// buildItems creates one item node per entry under grid. Item nodes pivot
// around their center so scale tweens shrink toward the middle of the cell.
func buildItems(grid *Node, layout GridLayout, entries []Content) ([]*Item, error) {
	seen := make(map[string]struct{}, len(entries))
	items := make([]*Item, 0, len(entries))
	for i, c := range entries {
		if c.ID == "" {
			return nil, fmt.Errorf("item %d: empty id", i)
		}
		if _, dup := seen[c.ID]; dup {
			return nil, fmt.Errorf("item %q: %w", c.ID, ErrDuplicateItem)
		}
		seen[c.ID] = struct{}{}

		var n *Node
		if c.Image != nil {
			n = NewImage("item:"+c.ID, c.Image, layout.CellWidth, layout.CellHeight)
		} else {
			n = NewRect("item:"+c.ID, layout.CellWidth, layout.CellHeight, c.Color)
		}
		pos := layout.Cell(i)
		n.SetPivot(layout.CellWidth/2, layout.CellHeight/2)
		n.SetPosition(pos.X+layout.CellWidth/2, pos.Y+layout.CellHeight/2)
		grid.AddChild(n)
		items = append(items, &Item{
			ID:      c.ID,
			Node:    n,
			content: c,
			cell:    Rect{X: pos.X, Y: pos.Y, Width: layout.CellWidth, Height: layout.CellHeight},
		})
	}
	return items, nil
}
