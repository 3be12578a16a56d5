package folio

const (
	// hideAfter is the eased open progress past which the other cards fade out.
	hideAfter = 0.3
	// showAfter is the eased close progress past which they fade back in.
	showAfter = 0.7
	// fadeSpan is how much eased progress a fade takes.
	fadeSpan = 0.2
)

// transition is the bookkeeping of an in-flight gallery <-> hero morph. The
// progress itself lives in EngineState.TransitionProgress.
type transition struct {
	fromPose Pose
	fromBend float64
}

// OpenHero starts morphing the centered card into the hero view. It is a
// no-op unless the entry animation is complete and the gallery is idle of
// transitions.
func (e *Engine) OpenHero() {
	if e.closed || e.entry.state != EntryComplete || e.state.Phase != PhaseGallery {
		return
	}
	c := e.activeCard()
	e.trans = transition{fromPose: c.Pose, fromBend: c.Curvature}
	e.state.Phase = PhaseTransitioningToHero
	e.state.TransitionProgress = 0
	e.scroll.reset()
	e.state.ScrollVelocity = 0
	e.log.Debug("open hero", "index", e.state.ActiveIndex)
}

// CloseHero starts morphing the hero card back into its gallery slot. It is
// a no-op unless the hero view is fully open.
func (e *Engine) CloseHero() {
	if e.closed || e.state.Phase != PhaseHero {
		return
	}
	e.trans = transition{fromPose: HeroPose, fromBend: heroBend}
	e.state.Phase = PhaseTransitioningToGallery
	e.state.TransitionProgress = 0
	e.log.Debug("close hero", "index", e.state.ActiveIndex)
}

// GoToIndexInHero swaps the hero card for another project without any
// animation. The previous card is parked, hidden, at its gallery slot for the
// new scroll position. Invalid or current indices are ignored.
func (e *Engine) GoToIndexInHero(i int) {
	if e.closed || e.state.Phase != PhaseHero {
		return
	}
	if i < 0 || i >= len(e.cards) || i == e.state.ActiveIndex {
		return
	}
	cfg := e.cfg
	pos := float64(i) * cfg.Spacing
	e.state.ScrollPosition = pos
	e.state.ScrollTarget = pos
	e.state.ScrollVelocity = 0

	prev := e.activeCard()
	prev.Pose = cfg.galleryPose(prev.RestingSlot, pos)
	prev.setCurvature(cfg.GalleryBend, cfg.CardWidth, cfg.CardHeight, true)
	prev.Visible = false

	next := e.cards[i]
	next.Pose = HeroPose
	next.setCurvature(heroBend, cfg.CardWidth, cfg.CardHeight, true)
	next.Visible = true
	next.Opacity = 1

	e.setActiveIndex(i)
}

// stepOpen advances the open morph by one tick.
func (e *Engine) stepOpen() {
	cfg := e.cfg
	e.state.TransitionProgress += cfg.OpenStep
	t := inOutCubic(e.state.TransitionProgress)

	active := e.activeCard()
	active.Pose = lerpPose(e.trans.fromPose, HeroPose, t)
	active.setCurvature(lerp(e.trans.fromBend, heroBend, t), cfg.CardWidth, cfg.CardHeight, false)

	fade := 1 - clamp01((t-hideAfter)/fadeSpan)
	for _, c := range e.cards {
		if c == active {
			continue
		}
		c.Opacity = fade
		c.Visible = fade > 0
	}

	if e.state.TransitionProgress < 1 {
		return
	}
	active.Pose = HeroPose
	active.setCurvature(heroBend, cfg.CardWidth, cfg.CardHeight, true)
	active.Opacity = 1
	active.Visible = true
	for _, c := range e.cards {
		if c != active {
			c.Opacity = 0
			c.Visible = false
		}
	}
	e.state.Phase = PhaseHero
	e.state.TransitionProgress = 0
	e.log.Debug("hero opened", "index", e.state.ActiveIndex)
	if fn := e.listener.OnHeroOpened; fn != nil {
		fn()
	}
}

// stepClose advances the close morph by one tick. The destination is
// recomputed from the live scroll position every tick.
func (e *Engine) stepClose() {
	cfg := e.cfg
	e.state.TransitionProgress += cfg.CloseStep
	t := inOutCubic(e.state.TransitionProgress)

	active := e.activeCard()
	target := cfg.galleryPose(active.RestingSlot, e.state.ScrollPosition)
	active.Pose = lerpPose(e.trans.fromPose, target, t)
	active.setCurvature(lerp(e.trans.fromBend, cfg.GalleryBend, t), cfg.CardWidth, cfg.CardHeight, false)

	fade := clamp01((t - showAfter) / (1 - showAfter))
	for _, c := range e.cards {
		if c == active {
			continue
		}
		c.Pose = cfg.galleryPose(c.RestingSlot, e.state.ScrollPosition)
		c.Opacity = fade
		c.Visible = t > showAfter
	}

	if e.state.TransitionProgress < 1 {
		return
	}
	active.Pose = target
	active.setCurvature(cfg.GalleryBend, cfg.CardWidth, cfg.CardHeight, true)
	for _, c := range e.cards {
		c.Opacity = 1
		c.Visible = true
	}
	e.state.Phase = PhaseGallery
	e.state.TransitionProgress = 0
	e.log.Debug("hero closed", "index", e.state.ActiveIndex)
	if fn := e.listener.OnHeroClosed; fn != nil {
		fn()
	}
}
