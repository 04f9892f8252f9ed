package pangrid

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// Draw implements ebiten.Game.
func (g *Gallery) Draw(screen *ebiten.Image) {
	if g.cursor != g.appliedCursor {
		ebiten.SetCursorShape(g.cursor)
		g.appliedCursor = g.cursor
	}

	screen.Fill(g.cfg.Background.toRGBA())
	g.refresh()

	view := Rect{Width: g.viewport.W, Height: g.viewport.H}
	g.drawNode(screen, g.root, view)

	if g.cfg.ShowFPS {
		drawFPS(screen)
	}
	if g.cfg.Debug {
		g.drawDebug(screen)
	}
	g.flushScreenshots(screen)
}

// geoM converts an affine matrix [a, b, c, d, tx, ty] to an ebiten.GeoM.
func geoM(m affine) ebiten.GeoM {
	var gm ebiten.GeoM
	gm.SetElement(0, 0, m[0])
	gm.SetElement(1, 0, m[1])
	gm.SetElement(0, 1, m[2])
	gm.SetElement(1, 1, m[3])
	gm.SetElement(0, 2, m[4])
	gm.SetElement(1, 2, m[5])
	return gm
}

// drawNode draws n and its subtree depth-first. Invisible subtrees and
// subtrees at zero alpha are skipped.
func (g *Gallery) drawNode(dst *ebiten.Image, n *Node, view Rect) {
	if !n.Visible || n.worldAlpha <= 0 {
		return
	}
	if !shouldCull(n, view) {
		switch n.Type {
		case NodeTypeRect:
			g.drawRect(dst, n)
		case NodeTypeImage:
			drawImage(dst, n)
		case NodeTypeText:
			drawText(dst, n)
		}
	}
	for _, child := range n.children {
		g.drawNode(dst, child, view)
	}
}

// shouldCull reports whether a drawable node lies entirely outside view.
// Containers are never culled since their children may lie anywhere.
func shouldCull(n *Node, view Rect) bool {
	if n.Type == NodeTypeContainer || n.Type == NodeTypeText {
		return false
	}
	return !n.WorldBounds().Intersects(view)
}

func (g *Gallery) drawRect(dst *ebiten.Image, n *Node) {
	if g.whitePixel == nil {
		g.whitePixel = ebiten.NewImage(1, 1)
		g.whitePixel.Fill(ColorWhite.toRGBA())
	}
	var op ebiten.DrawImageOptions
	op.GeoM.Scale(n.Width, n.Height)
	op.GeoM.Concat(geoM(n.world))
	op.ColorScale.Scale(premultiplied(n.Color, n.worldAlpha))
	dst.DrawImage(g.whitePixel, &op)
}

func drawImage(dst *ebiten.Image, n *Node) {
	if n.Image == nil {
		return
	}
	b := n.Image.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return
	}
	var op ebiten.DrawImageOptions
	op.GeoM.Scale(n.Width/float64(b.Dx()), n.Height/float64(b.Dy()))
	op.GeoM.Concat(geoM(n.world))
	op.ColorScale.ScaleAlpha(float32(n.worldAlpha))
	op.Filter = ebiten.FilterLinear
	dst.DrawImage(n.Image, &op)
}

func drawText(dst *ebiten.Image, n *Node) {
	if n.Face == nil || n.Text == "" {
		return
	}
	var op text.DrawOptions
	op.GeoM.Concat(geoM(n.world))
	op.ColorScale.Scale(premultiplied(n.Color, n.worldAlpha))
	text.Draw(dst, n.Text, n.Face, &op)
}

// premultiplied returns c scaled by alpha as premultiplied color scale
// components.
func premultiplied(c Color, alpha float64) (r, g, b, a float32) {
	a = float32(c.A * alpha)
	return float32(c.R) * a, float32(c.G) * a, float32(c.B) * a, a
}
