// Package ecs provides ECS adapters for folio's engine notifications.
//
// The primary adapter is [NewListener], which publishes gallery events
// (index changed, hero opened, hero closed) into a [Donburi] world as typed
// events. Subscribe to [GalleryEventType] in your ECS systems to receive
// them.
//
// Usage:
//
//	engine, err := folio.New(projects, cfg, folio.Options{
//		Listener: ecs.NewListener(world, folio.Listener{}),
//	})
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
