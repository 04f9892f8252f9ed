package pangrid

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/tanema/gween/ease"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

const (
	defaultTitleSize = 40
	defaultBodySize  = 18
	panelPadding     = 48
	titleBodyGap     = 24
	panelFade        = 0.6
)

// LoadDefaultFaces returns Go Bold for titles and Go Regular for body text.
func LoadDefaultFaces() (title, body text.Face, err error) {
	boldSrc, err := text.NewGoTextFaceSource(bytes.NewReader(gobold.TTF))
	if err != nil {
		return nil, nil, fmt.Errorf("pangrid: parse title font: %w", err)
	}
	regSrc, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return nil, nil, fmt.Errorf("pangrid: parse body font: %w", err)
	}
	return &text.GoTextFace{Source: boldSrc, Size: defaultTitleSize},
		&text.GoTextFace{Source: regSrc, Size: defaultBodySize}, nil
}

// description is the per-item detail entity. Title characters and body lines
// each sit in their own slot container; the text node inside moves from local
// Y 0 (shown) to its own height (hidden).
type description struct {
	node  *Node
	body  string
	chars []*Node
	lines []*Node
	charH float64
	lineH float64
}

// Panel is the detail view. It holds one description per item; at most one
// is at alpha 1, the focused item's.
type Panel struct {
	Root *Node

	anim      *Animator
	bodyFace  text.Face
	descs     map[string]*description
	order     []string
	showing   bool
	rect      Rect
	wrapWidth float64
}

// NewPanel builds descriptions for entries and lays the panel out over
// viewport. Entries with an empty Description get no description entity.
func NewPanel(anim *Animator, entries []Content, viewport Size, titleFace, bodyFace text.Face) *Panel {
	p := &Panel{
		Root:     NewContainer("panel"),
		anim:     anim,
		bodyFace: bodyFace,
		descs:    make(map[string]*description, len(entries)),
	}
	p.Root.Alpha = 0
	for _, c := range entries {
		if c.Description == "" {
			continue
		}
		d := buildDescription(c, titleFace)
		p.Root.AddChild(d.node)
		p.descs[c.ID] = d
		p.order = append(p.order, c.ID)
	}
	p.Layout(viewport)
	return p
}

func buildDescription(c Content, titleFace text.Face) *description {
	d := &description{node: NewContainer("desc:" + c.ID), body: c.Description}
	d.node.Alpha = 0

	title := c.Title
	if title == "" {
		title = c.ID
	}
	d.charH = lineHeight(titleFace)
	titleSlot := NewContainer("title")
	d.node.AddChild(titleSlot)
	x := 0.0
	for _, r := range title {
		s := string(r)
		ch := NewText("char", s, titleFace)
		ch.SetPosition(x, d.charH)
		if titleFace != nil {
			x += text.Advance(s, titleFace)
		}
		titleSlot.AddChild(ch)
		d.chars = append(d.chars, ch)
	}
	return d
}

// wrapBody replaces d's body lines with d.body wrapped to the panel's wrap
// width. New lines start shown when the panel is open and hidden otherwise.
func (p *Panel) wrapBody(d *description) {
	for _, ln := range d.lines {
		p.anim.Kill(ln, PropY)
		ln.Parent.RemoveFromParent()
	}
	d.lines = nil
	d.lineH = lineHeight(p.bodyFace)
	rest := d.lineH
	if p.showing {
		rest = 0
	}
	y := d.charH + titleBodyGap
	for _, l := range wrapText(d.body, p.bodyFace, p.wrapWidth) {
		slot := NewContainer("line")
		slot.SetPosition(0, y)
		ln := NewText("line", l, p.bodyFace)
		ln.SetPosition(0, rest)
		slot.AddChild(ln)
		d.node.AddChild(slot)
		d.lines = append(d.lines, ln)
		y += d.lineH
	}
}

// HasDescription reports whether id has a description entity.
func (p *Panel) HasDescription(id string) bool {
	_, ok := p.descs[id]
	return ok
}

// Showing reports whether the panel is open.
func (p *Panel) Showing() bool {
	return p.showing
}

// Layout places the panel over the right half of viewport and re-wraps body
// text when the usable width changed.
func (p *Panel) Layout(viewport Size) {
	p.rect = Rect{X: viewport.W / 2, Y: 0, Width: viewport.W / 2, Height: viewport.H}
	p.Root.SetPosition(p.rect.X+panelPadding, p.rect.Y+panelPadding)

	width := max(p.rect.Width-2*panelPadding, 0)
	if width == p.wrapWidth && p.wrapWidth != 0 {
		return
	}
	p.wrapWidth = width
	for _, id := range p.order {
		p.wrapBody(p.descs[id])
	}
}

// WrapWidth returns the width body text is currently wrapped to.
func (p *Panel) WrapWidth() float64 {
	return p.wrapWidth
}

// Contains reports whether the screen point hits the open panel.
func (p *Panel) Contains(x, y float64) bool {
	return p.showing && p.rect.Contains(x, y)
}

// Alpha returns the current alpha of id's description, or 0 when it has
// none.
func (p *Panel) Alpha(id string) float64 {
	if d, ok := p.descs[id]; ok {
		return d.node.Alpha
	}
	return 0
}

// Fade tweens id's description to alpha. onComplete may be nil. Returns
// false when id has no description.
func (p *Panel) Fade(id string, alpha float64, duration float32, fn ease.TweenFunc, onComplete func()) bool {
	d, ok := p.descs[id]
	if !ok {
		return false
	}
	p.anim.To(d.node, Tween{
		Props:      Props{}.WithAlpha(alpha),
		Duration:   duration,
		Ease:       fn,
		OnComplete: onComplete,
	})
	return true
}

// Show opens the panel and slides every title and body back into place.
// No-op while already open.
func (p *Panel) Show() {
	if p.showing {
		return
	}
	p.showing = true
	p.anim.To(p.Root, Tween{Props: Props{}.WithAlpha(1), Duration: panelFade, Ease: ease.OutCubic})
	for _, id := range p.order {
		d := p.descs[id]
		p.anim.StaggerTo(d.chars, Tween{Props: Props{}.WithY(0), Duration: panelDuration, Ease: ease.InOutCubic},
			Stagger{Amount: charStaggerSpan})
		p.anim.StaggerTo(d.lines, Tween{Props: Props{}.WithY(0), Duration: panelDuration, Ease: ease.InOutCubic},
			Stagger{Each: lineStaggerStep})
	}
}

// Hide closes the panel, moving title characters and body lines down by
// their own height with the staggers in h.
func (p *Panel) Hide(h HidePanel) {
	p.showing = false
	p.anim.To(p.Root, Tween{Props: Props{}.WithAlpha(0), Duration: h.Duration, Ease: h.Ease})
	for _, id := range p.order {
		d := p.descs[id]
		p.anim.StaggerTo(d.chars, Tween{Props: Props{}.WithY(d.charH), Duration: h.Duration, Ease: h.Ease}, h.CharStagger)
		p.anim.StaggerTo(d.lines, Tween{Props: Props{}.WithY(d.lineH), Duration: h.Duration, Ease: h.Ease}, h.LineStagger)
	}
}

func lineHeight(face text.Face) float64 {
	if face == nil {
		return 0
	}
	m := face.Metrics()
	return m.HAscent + m.HDescent + m.HLineGap
}

// wrapText greedily breaks s into lines no wider than width. Explicit
// newlines always break. A single word wider than width gets its own line.
func wrapText(s string, face text.Face, width float64) []string {
	var lines []string
	for _, para := range strings.Split(s, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}
		cur := words[0]
		for _, w := range words[1:] {
			candidate := cur + " " + w
			if face != nil && width > 0 && text.Advance(candidate, face) > width {
				lines = append(lines, cur)
				cur = w
				continue
			}
			cur = candidate
		}
		lines = append(lines, cur)
	}
	return lines
}
