package folio

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/tanema/gween/ease"
)

// Listener receives engine notifications. Any field may be nil. Callbacks run
// on the update goroutine, after the state change they report.
type Listener struct {
	// OnIndexChanged fires once each time a different card becomes centered.
	OnIndexChanged func(index int)
	// OnHeroOpened fires once when the open morph completes.
	OnHeroOpened func()
	// OnHeroClosed fires once when the close morph completes.
	OnHeroClosed func()
}

// Options configures an Engine beyond its tuning values.
type Options struct {
	// Logger receives warnings and lifecycle events. Defaults to
	// slog.Default() tagged with component=folio.
	Logger *slog.Logger

	// Loader resolves Project.ImageRef. With no loader cards keep their
	// placeholders.
	Loader ImageLoader

	// Placeholder renders the image shown until a texture loads. Defaults to
	// DefaultPlaceholder.
	Placeholder PlaceholderFunc

	Listener Listener

	// Theme supplies the background for the centered project. Defaults to
	// CatalogTheme of the projects passed to New.
	Theme ThemeFunc

	// DeferStart holds the entry animation until Start is called instead of
	// starting it after Config.EntryDelay.
	DeferStart bool

	// Tuning, when set, is polled every Update and its reloaded values are
	// copied into the engine's Config.
	Tuning *TuningWatcher

	// Width and Height are the initial viewport size. Defaults to 1280x720.
	Width, Height int
}

// Engine owns the gallery: the cards, the scroll state and the controllers
// that animate them. All methods must be called from one goroutine (the
// Ebitengine update/draw goroutine); only texture loads run elsewhere.
type Engine struct {
	cfg      *Config
	log      *slog.Logger
	listener Listener
	theme    ThemeFunc
	tuning   *TuningWatcher

	state  EngineState
	cards  []*Card
	camera *Camera

	scroll scroller
	entry  entrySequencer
	trans  transition

	background Color
	bgTween    *TweenGroup
	caption    captionState

	loader      ImageLoader
	inbox       textureInbox
	loadCtx     context.Context
	cancelLoads context.CancelFunc

	clock  float64
	frame  uint64
	closed bool

	debug  bool
	render renderBuffers
}

// New creates an engine for the given featured projects. cfg is kept by
// reference and read every tick; a nil cfg uses DefaultConfig. Texture loads
// start immediately.
func New(projects []Project, cfg *Config, opts Options) (*Engine, error) {
	if len(projects) == 0 {
		return nil, ErrEmptyCatalog
	}
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("folio: %w", err)
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default().With("component", "folio")
	}
	theme := opts.Theme
	if theme == nil {
		theme = CatalogTheme(projects)
	}
	w, h := opts.Width, opts.Height
	if w <= 0 || h <= 0 {
		w, h = 1280, 720
	}

	e := &Engine{
		cfg:      cfg,
		log:      logger,
		listener: opts.Listener,
		theme:    theme,
		tuning:   opts.Tuning,
		camera:   newCamera(float64(w), float64(h)),
		loader:   opts.Loader,
	}
	e.loadCtx, e.cancelLoads = context.WithCancel(context.Background())

	e.cards = make([]*Card, len(projects))
	for i, p := range projects {
		p.Index = i
		e.cards[i] = newCard(p, cfg, newPlaceholderTexture(opts.Placeholder, p))
	}

	delay := cfg.EntryDelay
	if opts.DeferStart {
		delay = -1
	}
	e.entry.arm(cfg, delay)
	e.state.Phase = PhaseEntry
	e.background = e.theme(e.cards[0].Project.ID).Background

	for _, c := range e.cards {
		e.loadTexture(c)
	}
	logger.Info("engine created", "cards", len(e.cards), "deferStart", opts.DeferStart)
	return e, nil
}

// loadTexture starts the asynchronous load of a card's image.
func (e *Engine) loadTexture(c *Card) {
	ref := c.Project.ImageRef
	if e.loader == nil || ref == "" {
		return
	}
	c.loadGen++
	gen := c.loadGen
	ctx := e.loadCtx
	loader := e.loader
	go func() {
		img, err := loader.LoadImage(ctx, ref)
		if ctx.Err() != nil {
			return
		}
		e.inbox.push(textureResult{card: c, gen: gen, img: img, err: err})
	}()
}

// applyTextures installs finished loads. Results for closed engines, dead
// cards or superseded loads are dropped.
func (e *Engine) applyTextures() {
	for _, r := range e.inbox.drain() {
		if e.closed || !r.card.alive || r.gen != r.card.loadGen {
			continue
		}
		if r.err != nil || r.img == nil {
			if r.err == nil {
				r.err = errors.New("loader returned no image")
			}
			e.log.Warn("texture load failed; keeping placeholder",
				"project", r.card.Project.ID, "ref", r.card.Project.ImageRef, "err", r.err)
			continue
		}
		r.card.setTexture(NewTexture(r.img))
	}
}

// Update advances the engine by dt seconds; negative and NaN steps count as
// zero. It is the only place committed poses and surfaces change outside the
// explicit operations.
func (e *Engine) Update(dt float64) {
	if e.closed {
		return
	}
	if !(dt > 0) {
		dt = 0
	}
	e.frame++
	e.clock += dt

	if e.tuning != nil {
		e.tuning.Apply(e.cfg)
	}
	e.applyTextures()
	e.scroll.tickIdle(dt)

	cfg := e.cfg
	bound(&e.state, cfg, len(e.cards))
	for _, c := range e.cards {
		c.RestingSlot = -float64(c.Index()) * cfg.Spacing
	}

	switch e.state.Phase {
	case PhaseEntry:
		e.entry.advance(dt)
		e.placeCards()
		if e.entry.state == EntryRunning {
			e.state.EntryProgress = e.entry.rawProgress(cfg)
			if e.entry.apply(e.cards, cfg) {
				e.state.Phase = PhaseGallery
				e.state.EntryProgress = 0
				e.log.Debug("entry complete", "elapsed", e.entry.elapsed)
			}
		}
	case PhaseGallery:
		e.scroll.integrate(&e.state, cfg, len(e.cards))
		e.placeCards()
		e.syncSurfaces(cfg.GalleryBend)
		e.setActiveIndex(slotIndex(e.state.ScrollPosition, cfg.Spacing, len(e.cards)))
	case PhaseTransitioningToHero:
		e.stepOpen()
	case PhaseHero:
		e.activeCard().setCurvature(heroBend, cfg.CardWidth, cfg.CardHeight, false)
	case PhaseTransitioningToGallery:
		e.stepClose()
	}

	e.bgTween.Update(float32(dt))
}

// placeCards puts every card at its gallery pose for the current scroll
// position.
func (e *Engine) placeCards() {
	for _, c := range e.cards {
		c.Pose = e.cfg.galleryPose(c.RestingSlot, e.state.ScrollPosition)
	}
}

// syncSurfaces keeps every card's surface at bend, rebuilding after live
// changes to the bend or card size.
func (e *Engine) syncSurfaces(bend float64) {
	for _, c := range e.cards {
		c.setCurvature(bend, e.cfg.CardWidth, e.cfg.CardHeight, false)
	}
}

// setActiveIndex records a new centered card, notifying the listener and
// starting the background crossfade when it changed.
func (e *Engine) setActiveIndex(i int) {
	if i == e.state.ActiveIndex {
		return
	}
	e.state.ActiveIndex = i
	to := e.theme(e.cards[i].Project.ID).Background
	e.bgTween = TweenColor(&e.background, to, float32(e.cfg.ThemeFade), ease.InOutCubic)
	if fn := e.listener.OnIndexChanged; fn != nil {
		fn(i)
	}
}

func (e *Engine) activeCard() *Card {
	return e.cards[e.state.ActiveIndex]
}

// galleryReady reports whether scroll input and navigation are accepted.
func (e *Engine) galleryReady() bool {
	return !e.closed && e.entry.state == EntryComplete && e.state.Phase == PhaseGallery
}

// --- Operations ---

// ApplyImpulse feeds a scroll delta in pixels (positive scrolls toward later
// projects). Wheel deltas build velocity; touch deltas move the target
// directly. Ignored outside the idle gallery.
func (e *Engine) ApplyImpulse(delta float64, source InputSource) {
	if !e.galleryReady() {
		return
	}
	switch source {
	case InputWheel:
		e.scroll.wheel(&e.state, e.cfg, delta)
	case InputTouch:
		if !e.scroll.touching {
			e.scroll.beginTouch(&e.state, e.clock)
		}
		e.scroll.touchMove(&e.state, e.cfg, len(e.cards), delta, e.clock)
	}
}

// BeginTouch starts a drag, stopping any momentum.
func (e *Engine) BeginTouch() {
	if e.closed {
		return
	}
	e.scroll.beginTouch(&e.state, e.clock)
}

// EndTouch ends a drag and converts its last speed into momentum.
func (e *Engine) EndTouch() {
	if e.closed {
		return
	}
	e.scroll.endTouch(&e.state, e.cfg)
}

// Fling applies a wheel impulse that carries the strip at least distance
// world units before snapping takes over. Unlike ApplyImpulse it compensates
// for the glide lost below the snap threshold, so a fling of 2.5 slots lands
// on the third slot rather than the second.
func (e *Engine) Fling(distance float64) {
	if !e.galleryReady() || distance == 0 {
		return
	}
	e.state.ScrollVelocity += flingVelocity(distance, e.cfg)
	e.scroll.scrolling = true
	e.scroll.idleTimer = e.cfg.ScrollIdleDelay
}

// GoToIndex scrolls the gallery to the card at i, clamped to the catalog.
func (e *Engine) GoToIndex(i int) {
	if !e.galleryReady() {
		return
	}
	i = clampInt(i, 0, len(e.cards)-1)
	e.state.ScrollTarget = float64(i) * e.cfg.Spacing
}

// Next moves to the following project in the gallery or the hero view.
func (e *Engine) Next() { e.step(1) }

// Prev moves to the previous project in the gallery or the hero view.
func (e *Engine) Prev() { e.step(-1) }

func (e *Engine) step(d int) {
	switch e.state.Phase {
	case PhaseHero:
		e.GoToIndexInHero(e.state.ActiveIndex + d)
	case PhaseGallery:
		cur := slotIndex(e.state.ScrollTarget, e.cfg.Spacing, len(e.cards))
		e.GoToIndex(cur + d)
	}
}

// Start releases the entry animation when the engine was created with
// DeferStart. Later calls are ignored.
func (e *Engine) Start() {
	if e.closed || e.state.Phase != PhaseEntry {
		return
	}
	if e.entry.start() {
		e.log.Debug("entry started")
	}
}

// ReplayEntry runs the entry animation again from its start pose. Ignored
// while the hero view is open or morphing.
func (e *Engine) ReplayEntry() {
	if e.closed {
		return
	}
	if e.state.Phase != PhaseGallery && e.state.Phase != PhaseEntry {
		return
	}
	cfg := e.cfg
	e.entry.arm(cfg, 0)
	e.entry.start()
	e.scroll.reset()
	e.state.ScrollVelocity = 0
	e.state.Phase = PhaseEntry
	e.state.EntryProgress = 0
	for _, c := range e.cards {
		c.setCurvature(0, cfg.CardWidth, cfg.CardHeight, true)
		c.Opacity = 0
		c.Visible = true
	}
}

// Resize updates the viewport size in pixels.
func (e *Engine) Resize(w, h int) {
	e.camera.Resize(float64(w), float64(h))
}

// Close tears the engine down: pending loads are cancelled and their results
// discarded, and every surface and texture is released. Close is idempotent
// and the engine is unusable afterwards.
func (e *Engine) Close() {
	if e.closed {
		return
	}
	e.closed = true
	for _, c := range e.cards {
		c.alive = false
	}
	e.cancelLoads()
	for _, c := range e.cards {
		c.dispose()
	}
	e.caption.tex.Dispose()
	e.caption.tex = nil
	if e.render.pixel != nil {
		e.render.pixel.Deallocate()
		e.render.pixel = nil
	}
	e.inbox.drain()
	e.log.Info("engine closed", "frames", e.frame)
}

// --- Accessors ---

// State returns a copy of the engine state.
func (e *Engine) State() EngineState { return e.state }

// EntryState returns the entry animation lifecycle state.
func (e *Engine) EntryState() EntryState { return e.entry.state }

// Cards returns the engine's cards in display order. The slice MUST NOT be
// mutated.
func (e *Engine) Cards() []*Card { return e.cards }

// Card returns the card at index i, or nil when out of range.
func (e *Engine) Card(i int) *Card {
	if i < 0 || i >= len(e.cards) {
		return nil
	}
	return e.cards[i]
}

// Config returns the live tuning values.
func (e *Engine) Config() *Config { return e.cfg }

// Camera returns the engine camera.
func (e *Engine) Camera() *Camera { return e.camera }

// Background returns the current (possibly crossfading) background color.
func (e *Engine) Background() Color { return e.background }

// Closed reports whether Close has been called.
func (e *Engine) Closed() bool { return e.closed }

// SetDebugMode enables or disables per-frame timing stats on stderr and the
// on-screen overlay.
func (e *Engine) SetDebugMode(enabled bool) {
	e.debug = enabled
}
