package ecs

import (
	"github.com/phanxgames/pangrid"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// GalleryEventType is the Donburi event type for pangrid gallery events.
var GalleryEventType = events.NewEventType[pangrid.GalleryEvent]()

type donburiSink struct {
	world donburi.World
}

// NewDonburiSink creates an EventSink backed by a Donburi world. Events are
// published to GalleryEventType and delivered by ProcessEvents.
func NewDonburiSink(world donburi.World) pangrid.EventSink {
	return &donburiSink{world: world}
}

func (s *donburiSink) EmitEvent(event pangrid.GalleryEvent) {
	GalleryEventType.Publish(s.world, event)
}
