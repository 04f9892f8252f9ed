// Package pangrid is a pannable, animated grid gallery for [Ebitengine].
//
// A [Gallery] lays out a large grid of items, larger than the window, that
// the user can drag with inertia or scroll with the wheel. Items shrink and
// fade out as they leave the window and grow back as they enter. Clicking an
// item slides the grid aside and opens a detail panel with its description;
// clicking the background, the panel, or pressing Escape closes it.
//
// # Quick start
//
//	g, err := pangrid.NewGallery(entries, pangrid.Config{})
//	if err != nil {
//		log.Fatal(err)
//	}
//	pangrid.Run(g, pangrid.RunConfig{Title: "Gallery", Width: 1280, Height: 800})
//
// [Gallery] implements [ebiten.Game], so it can also be run with
// ebiten.RunGame directly or embedded in another game.
//
// # Lifecycle
//
// On the first Update (or once a [Preloader] passed in [Config] is done) the
// intro runs: the grid is centered, items grow in random staggered order,
// and the container zooms from half size to full. Only when the zoom
// completes are dragging, wheel panning, culling, and focus bound. Input
// before that is dropped.
//
// # Components
//
// The pieces are usable on their own:
//
//   - [ComputeBounds] derives the pan clamp rectangle from content and
//     viewport sizes with the [DragMargins] or [ResizeMargins] profile.
//   - [PanController] owns the grid offset, merging drags ([Draggable]) and
//     wheel input ([WheelEvent]).
//   - [Observer] and [Culler] animate items entering and leaving the
//     viewport.
//   - [Transition] is the pure focus state machine; it returns [Command]
//     values that the gallery executes.
//   - [Animator] runs property tweens (via [gween]) with staggering. Starting
//     a tween on a property supersedes any running tween on it.
//
// All state is owned by the goroutine calling Update. Completion callbacks
// run from [Animator.Update], never synchronously.
//
// # Automated testing
//
// [LoadTestScript] parses a JSON script of clicks, drags, wheel events,
// waits, and screenshots. Attach it with [Gallery.SetTestRunner]. The ecs
// submodule forwards [GalleryEvent] values into a [Donburi] world.
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
// [Donburi]: https://github.com/yohamta/donburi
package pangrid
