package ecs

import (
	"github.com/phanxgames/folio"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// EventKind identifies a gallery notification.
type EventKind uint8

const (
	EventIndexChanged EventKind = iota
	EventHeroOpened
	EventHeroClosed
)

// String returns the event name.
func (k EventKind) String() string {
	switch k {
	case EventIndexChanged:
		return "index-changed"
	case EventHeroOpened:
		return "hero-opened"
	case EventHeroClosed:
		return "hero-closed"
	default:
		return "unknown"
	}
}

// GalleryEvent is published for every engine notification. Index is the
// centered project at the time of the event.
type GalleryEvent struct {
	Kind  EventKind
	Index int
}

// GalleryEventType is the Donburi event type for gallery notifications.
var GalleryEventType = events.NewEventType[GalleryEvent]()

// NewListener returns a folio.Listener that publishes every notification to
// world and then forwards it to next. Events are queued; consume them with
// GalleryEventType.ProcessEvents or events.ProcessAllEvents.
func NewListener(world donburi.World, next folio.Listener) folio.Listener {
	index := 0
	return folio.Listener{
		OnIndexChanged: func(i int) {
			index = i
			GalleryEventType.Publish(world, GalleryEvent{Kind: EventIndexChanged, Index: i})
			if next.OnIndexChanged != nil {
				next.OnIndexChanged(i)
			}
		},
		OnHeroOpened: func() {
			GalleryEventType.Publish(world, GalleryEvent{Kind: EventHeroOpened, Index: index})
			if next.OnHeroOpened != nil {
				next.OnHeroOpened()
			}
		},
		OnHeroClosed: func() {
			GalleryEventType.Publish(world, GalleryEvent{Kind: EventHeroClosed, Index: index})
			if next.OnHeroClosed != nil {
				next.OnHeroClosed()
			}
		},
	}
}
