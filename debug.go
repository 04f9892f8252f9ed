package pangrid

import (
	"fmt"
	"log/slog"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// debugLogInterval is the number of frames between debug log lines.
const debugLogInterval = 300

// debugStats is a snapshot of the gallery's runtime state.
type debugStats struct {
	frame   uint64
	intro   IntroPhase
	focus   FocusState
	offset  Vec2
	tweens  int
	visible int
	hidden  int
	queued  int
}

func (g *Gallery) debugStats() debugStats {
	st := debugStats{
		frame:  g.frame,
		intro:  g.intro.Phase(),
		focus:  g.focus,
		offset: g.pan.Offset(),
		tweens: g.anim.Active(),
		queued: len(g.queue),
	}
	for _, it := range g.items {
		if it.Visibility == Hidden {
			st.hidden++
		} else {
			st.visible++
		}
	}
	return st
}

func (s debugStats) String() string {
	focus := s.focus.Phase.String()
	if id, ok := s.focus.Focused(); ok {
		focus += " " + id
	}
	return fmt.Sprintf("frame %d | intro %s | focus %s\noffset %.0f,%.0f | tweens %d | visible %d hidden %d",
		s.frame, s.intro, focus, s.offset.X, s.offset.Y, s.tweens, s.visible, s.hidden)
}

// drawDebug prints the stats overlay below the FPS counter and logs the
// stats every debugLogInterval frames.
func (g *Gallery) drawDebug(screen *ebiten.Image) {
	st := g.debugStats()
	ebitenutil.DebugPrintAt(screen, st.String(), 4, 40)
	if st.frame%debugLogInterval != 0 {
		return
	}
	g.log.Debug("gallery stats",
		slog.Uint64("frame", st.frame),
		slog.String("intro", st.intro.String()),
		slog.String("focus", st.focus.ItemID),
		slog.Float64("offset_x", st.offset.X),
		slog.Float64("offset_y", st.offset.Y),
		slog.Int("tweens", st.tweens),
		slog.Int("visible", st.visible),
		slog.Int("hidden", st.hidden),
		slog.Int("queued", st.queued))
}
