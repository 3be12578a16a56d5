// Package folio is a 3D card-gallery engine for [Ebitengine].
//
// A vertical strip of slightly bent project cards scrolls with wheel and
// swipe momentum, snaps to the nearest card, flies in with a one-shot entry
// animation, and morphs the centered card into a flat full-size "hero" view
// and back.
//
// # Quick start
//
// The simplest way to get started is [Run], which creates a window and game
// loop for you:
//
//	projects, _ := folio.LoadCatalog(os.DirFS("assets"), "projects.yaml")
//	engine, _ := folio.New(projects, folio.DefaultConfig(), folio.Options{
//		Loader: folio.FSImageLoader{FS: os.DirFS("assets")},
//	})
//	folio.Run(engine, folio.RunConfig{Title: "Portfolio", Width: 1280, Height: 720})
//
// For full control, implement [ebiten.Game] yourself and call
// [Engine.Update] and [Engine.Draw] directly, feeding input through the
// engine operations ([Engine.ApplyImpulse], [Engine.ClickAt],
// [Engine.OpenHero], ...) or an [InputHandler].
//
// # Phases
//
// The engine is always in exactly one [Phase]. The entry animation owns the
// cards until it completes; then scroll physics drives the strip. Opening the
// hero view and closing it are fixed-length morphs during which scroll input
// is ignored. Operations whose preconditions fail are silent no-ops.
//
// # Live tuning
//
// [Config] is held by reference and read every tick. A [TuningWatcher]
// reloads a YAML or TOML file on save and applies it between frames.
//
// # Notifications
//
// [Listener] callbacks report index changes and hero open/close completion.
// The folio/ecs module republishes them as [Donburi] events.
//
// [Ebitengine]: https://ebitengine.org
// [Donburi]: https://github.com/yohamta/donburi
package folio
