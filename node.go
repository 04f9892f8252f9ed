package pangrid

import (
	"slices"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// NodeType selects what a Node draws.
type NodeType uint8

const (
	NodeTypeContainer NodeType = iota // draws nothing, groups children
	NodeTypeRect                      // Width x Height filled with Color
	NodeTypeImage                     // Image stretched to Width x Height
	NodeTypeText                      // one line of Text in Face
)

// lastNodeID is only touched from the game goroutine.
var lastNodeID uint32

// Node is one element of the gallery's display tree: item cells, the
// containers above them, and the detail panel's text.
type Node struct {
	ID   uint32
	Name string
	Type NodeType

	Parent   *Node
	children []*Node

	// X/Y place the pivot in the parent's space; scaling happens around the
	// pivot, which is in local pixels.
	X, Y           float64
	ScaleX, ScaleY float64
	PivotX, PivotY float64

	// Width and Height size the drawn box and the hit area.
	Width, Height float64

	Alpha   float64
	Visible bool
	Color   Color

	Image *ebiten.Image
	Text  string
	Face  text.Face

	world      affine
	worldAlpha float64
	dirty      bool
}

func newNode(name string, typ NodeType, w, h float64) *Node {
	lastNodeID++
	return &Node{
		ID:      lastNodeID,
		Name:    name,
		Type:    typ,
		Width:   w,
		Height:  h,
		ScaleX:  1,
		ScaleY:  1,
		Alpha:   1,
		Visible: true,
		Color:   ColorWhite,
		world:   identity,
		dirty:   true,
	}
}

// NewContainer creates a grouping node.
func NewContainer(name string) *Node {
	return newNode(name, NodeTypeContainer, 0, 0)
}

// NewRect creates a w x h rectangle filled with c.
func NewRect(name string, w, h float64, c Color) *Node {
	n := newNode(name, NodeTypeRect, w, h)
	n.Color = c
	return n
}

// NewImage creates a node drawing img stretched to w x h.
func NewImage(name string, img *ebiten.Image, w, h float64) *Node {
	n := newNode(name, NodeTypeImage, w, h)
	n.Image = img
	return n
}

// NewText creates a text node sized to content. A nil face leaves it
// zero-sized.
func NewText(name, content string, face text.Face) *Node {
	n := newNode(name, NodeTypeText, 0, 0)
	n.Text = content
	n.Face = face
	if face != nil {
		n.Width, n.Height = text.Measure(content, face, 0)
	}
	return n
}

// AddChild appends child, detaching it from any previous parent. It panics
// on a nil child or when child is n or one of n's ancestors.
func (n *Node) AddChild(child *Node) {
	if child == nil {
		panic("pangrid: AddChild(nil)")
	}
	for p := n; p != nil; p = p.Parent {
		if p == child {
			panic("pangrid: AddChild would create a cycle")
		}
	}
	if child.Parent != nil {
		child.Parent.detach(child)
	}
	child.Parent = n
	n.children = append(n.children, child)
	child.dirty = true
}

// RemoveChild detaches child. It panics if child's parent is not n.
func (n *Node) RemoveChild(child *Node) {
	if child.Parent != n {
		panic("pangrid: RemoveChild of a node with another parent")
	}
	n.detach(child)
	child.Parent = nil
	child.dirty = true
}

// RemoveFromParent detaches n from its parent, if any.
func (n *Node) RemoveFromParent() {
	if n.Parent != nil {
		n.Parent.RemoveChild(n)
	}
}

// Children returns n's children in draw order. Callers must not modify the
// slice.
func (n *Node) Children() []*Node {
	return n.children
}

// NumChildren returns len(n.Children()).
func (n *Node) NumChildren() int {
	return len(n.children)
}

func (n *Node) detach(child *Node) {
	for i, c := range n.children {
		if c == child {
			n.children = slices.Delete(n.children, i, i+1)
			return
		}
	}
}
