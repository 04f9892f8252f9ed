package pangrid

import "github.com/tanema/gween/ease"

const (
	cullDuration    = 0.5
	cullHiddenScale = 0.5
)

// Culler applies intersection batches to item presentation: entering items
// grow to full size and opacity, leaving items shrink and fade out. The item
// currently in focus is left alone so it never fades under an open detail
// panel.
type Culler struct {
	anim    *Animator
	focused func() string
}

// NewCuller creates a culler. focused returns the ID of the focused item, or
// "" when nothing is focused.
func NewCuller(anim *Animator, focused func() string) *Culler {
	return &Culler{anim: anim, focused: focused}
}

// Apply handles one observer batch and returns the records it acted on.
func (c *Culler) Apply(batch []Intersection) []Intersection {
	focus := c.focused()
	applied := batch[:0:0]
	for _, rec := range batch {
		it := rec.Item
		if focus != "" && it.ID == focus {
			continue
		}
		if rec.Intersecting {
			it.Visibility = Visible
			c.anim.To(it.Node, Tween{
				Props:    Props{}.WithScale(1).WithAlpha(1),
				Duration: cullDuration,
				Ease:     ease.OutQuad,
			})
		} else {
			it.Visibility = Hidden
			c.anim.To(it.Node, Tween{
				Props:    Props{}.WithScale(cullHiddenScale).WithAlpha(0),
				Duration: cullDuration,
				Ease:     ease.InQuad,
			})
		}
		applied = append(applied, rec)
	}
	return applied
}
