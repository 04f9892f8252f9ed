// Package ecs provides ECS adapters for pangrid's gallery events.
//
// The primary adapter is [NewDonburiSink], which bridges gallery lifecycle
// events (intro done, focus changes, items entering and leaving the
// viewport, drags, resizes) into a [Donburi] world as typed events.
// Subscribe to [GalleryEventType] in your ECS systems to receive them.
//
// Usage:
//
//	sink := ecs.NewDonburiSink(world)
//	gallery.SetEventSink(sink)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
