package pangrid

import "math"

// affine is a 2D affine matrix [a, b, c, d, tx, ty] mapping (x, y) to
// (a*x + c*y + tx, b*x + d*y + ty).
type affine [6]float64

var identity = affine{1, 0, 0, 1, 0, 0}

// singularDet is the determinant magnitude below which a matrix has no
// usable inverse.
const singularDet = 1e-12

// localAffine places n's pivot at (X, Y) and scales around it.
func localAffine(n *Node) affine {
	return affine{n.ScaleX, 0, 0, n.ScaleY, n.X - n.PivotX*n.ScaleX, n.Y - n.PivotY*n.ScaleY}
}

// mul returns m applied after c.
func (m affine) mul(c affine) affine {
	return affine{
		m[0]*c[0] + m[2]*c[1],
		m[1]*c[0] + m[3]*c[1],
		m[0]*c[2] + m[2]*c[3],
		m[1]*c[2] + m[3]*c[3],
		m[0]*c[4] + m[2]*c[5] + m[4],
		m[1]*c[4] + m[3]*c[5] + m[5],
	}
}

// inverse returns the inverse of m, or identity when m is singular (a node
// scaled to zero).
func (m affine) inverse() affine {
	det := m[0]*m[3] - m[2]*m[1]
	if math.Abs(det) < singularDet {
		return identity
	}
	a, b := m[3]/det, -m[1]/det
	c, d := -m[2]/det, m[0]/det
	return affine{a, b, c, d, -(a*m[4] + c*m[5]), -(b*m[4] + d*m[5])}
}

func (m affine) apply(x, y float64) (float64, float64) {
	return m[0]*x + m[2]*y + m[4], m[1]*x + m[3]*y + m[5]
}

// bounds returns the axis-aligned box around the w x h rectangle at the
// local origin after m.
func (m affine) bounds(w, h float64) Rect {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range [4][2]float64{{0, 0}, {w, 0}, {w, h}, {0, h}} {
		x, y := m.apply(p[0], p[1])
		minX, maxX = math.Min(minX, x), math.Max(maxX, x)
		minY, maxY = math.Min(minY, y), math.Max(maxY, y)
	}
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// updateWorld refreshes world transforms and alphas for the tree rooted at n.
func (n *Node) updateWorld() {
	n.propagate(identity, 1, false)
}

// propagate recomputes n's world state from its parent's when n is dirty or
// force is set. A recomputed node forces its whole subtree.
func (n *Node) propagate(parent affine, parentAlpha float64, force bool) {
	if n.dirty || force {
		n.world = parent.mul(localAffine(n))
		n.worldAlpha = parentAlpha * n.Alpha
		n.dirty = false
		force = true
	}
	for _, c := range n.children {
		c.propagate(n.world, n.worldAlpha, force)
	}
}

// SetPosition moves n's pivot to (x, y) in its parent's space.
func (n *Node) SetPosition(x, y float64) {
	n.X, n.Y = x, y
	n.dirty = true
}

// SetScale sets both scale factors.
func (n *Node) SetScale(sx, sy float64) {
	n.ScaleX, n.ScaleY = sx, sy
	n.dirty = true
}

// SetPivot sets the local point that X/Y places and scaling happens around.
func (n *Node) SetPivot(px, py float64) {
	n.PivotX, n.PivotY = px, py
	n.dirty = true
}

// SetAlpha sets n's opacity, which multiplies into every descendant.
func (n *Node) SetAlpha(a float64) {
	n.Alpha = a
	n.dirty = true
}

// MarkDirty flags n for recomputation after its fields were written
// directly.
func (n *Node) MarkDirty() {
	n.dirty = true
}

// WorldToLocal maps a screen point into n's local space.
func (n *Node) WorldToLocal(wx, wy float64) (lx, ly float64) {
	return n.world.inverse().apply(wx, wy)
}

// LocalToWorld maps a point in n's local space to the screen.
func (n *Node) LocalToWorld(lx, ly float64) (wx, wy float64) {
	return n.world.apply(lx, ly)
}

// WorldBounds returns the node's Width x Height box on screen as of the last
// refresh.
func (n *Node) WorldBounds() Rect {
	return n.world.bounds(n.Width, n.Height)
}

func (n *Node) containsWorld(wx, wy float64) bool {
	lx, ly := n.WorldToLocal(wx, wy)
	return lx >= 0 && lx <= n.Width && ly >= 0 && ly <= n.Height
}
