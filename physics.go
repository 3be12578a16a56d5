package folio

import "math"

const (
	// snapEpsilon is the gap below which the scroll target lands exactly on
	// its slot.
	snapEpsilon = 0.001
	// settleEpsilon is the gap below which the scroll position lands exactly
	// on the target.
	settleEpsilon = 1e-6
	// edgeDamping scales velocity when the target hits either end of the strip.
	edgeDamping = 0.5
	// touchFrameMs normalizes drag velocity to a 60 Hz frame.
	touchFrameMs = 16.0
)

// scroller holds the input-side state of the scroll physics: whether the
// user is actively scrolling and the drag bookkeeping for touch momentum.
// The committed values live in EngineState.
type scroller struct {
	scrolling bool
	idleTimer float64 // seconds until scrolling clears

	touching      bool
	touchVelocity float64 // pixels per 16 ms
	lastTouchTime float64 // engine clock, seconds
}

// wheel adds a wheel impulse to the velocity and restarts the idle debounce.
func (s *scroller) wheel(st *EngineState, cfg *Config, delta float64) {
	st.ScrollVelocity += delta * cfg.WheelSensitivity
	s.scrolling = true
	s.idleTimer = cfg.ScrollIdleDelay
}

// beginTouch starts a drag and kills any momentum in flight.
func (s *scroller) beginTouch(st *EngineState, now float64) {
	s.touching = true
	s.scrolling = true
	s.idleTimer = 0
	s.touchVelocity = 0
	s.lastTouchTime = now
	st.ScrollVelocity = 0
}

// touchMove moves the target directly by a drag delta and tracks the
// instantaneous drag speed.
func (s *scroller) touchMove(st *EngineState, cfg *Config, n int, delta, now float64) {
	if dtMs := (now - s.lastTouchTime) * 1000; dtMs > 0 {
		s.touchVelocity = delta / dtMs * touchFrameMs
	} else {
		s.touchVelocity = delta
	}
	s.lastTouchTime = now
	st.ScrollTarget = clamp(st.ScrollTarget+delta*cfg.TouchSensitivity, 0, cfg.maxScroll(n))
}

// endTouch turns the last drag speed into momentum.
func (s *scroller) endTouch(st *EngineState, cfg *Config) {
	if !s.touching {
		return
	}
	s.touching = false
	s.scrolling = false
	st.ScrollVelocity = s.touchVelocity * cfg.TouchSensitivity * cfg.TouchMomentum
	s.touchVelocity = 0
}

// tickIdle counts down the wheel debounce. It runs every tick regardless of
// phase so a pending timer never outlives its delay.
func (s *scroller) tickIdle(dt float64) {
	if !s.scrolling || s.touching || s.idleTimer <= 0 {
		return
	}
	s.idleTimer -= dt
	if s.idleTimer <= 0 {
		s.idleTimer = 0
		s.scrolling = false
	}
}

// reset clears all input state.
func (s *scroller) reset() {
	*s = scroller{}
}

// bound pulls the scroll target and position back inside the strip. Spacing
// is live tuning, so the strip can shrink under values that were in range.
func bound(st *EngineState, cfg *Config, n int) {
	maxScroll := cfg.maxScroll(n)
	st.ScrollTarget = clamp(st.ScrollTarget, 0, maxScroll)
	st.ScrollPosition = clamp(st.ScrollPosition, 0, maxScroll)
}

// integrate advances velocity, snapping and position by one tick.
func (s *scroller) integrate(st *EngineState, cfg *Config, n int) {
	maxScroll := cfg.maxScroll(n)

	if math.Abs(st.ScrollVelocity) > cfg.MinVelocity {
		st.ScrollTarget += st.ScrollVelocity
		st.ScrollVelocity *= cfg.Friction
		st.ScrollTarget = clamp(st.ScrollTarget, 0, maxScroll)
		if st.ScrollTarget <= 0 || st.ScrollTarget >= maxScroll {
			st.ScrollVelocity *= edgeDamping
		}
	} else {
		st.ScrollVelocity = 0
	}

	if !s.scrolling && math.Abs(st.ScrollVelocity) < cfg.MinVelocity*10 {
		slot := nearestSlot(st.ScrollTarget, cfg.Spacing, n)
		gap := slot - st.ScrollTarget
		if math.Abs(gap) > snapEpsilon {
			st.ScrollTarget += gap * cfg.SnapStrength
		} else {
			st.ScrollTarget = slot
		}
	}

	delta := st.ScrollTarget - st.ScrollPosition
	if math.Abs(delta) < settleEpsilon {
		st.ScrollPosition = st.ScrollTarget
		return
	}
	speed := 0.12 + math.Min(math.Abs(delta)*0.05, 0.15)
	st.ScrollPosition += delta * speed
}

// nearestSlot returns the slot position closest to pos.
func nearestSlot(pos, spacing float64, n int) float64 {
	return float64(slotIndex(pos, spacing, n)) * spacing
}

// slotIndex returns round(pos / spacing) clamped to [0, n-1].
func slotIndex(pos, spacing float64, n int) int {
	if n <= 0 || spacing <= 0 {
		return 0
	}
	return clampInt(int(math.Round(pos/spacing)), 0, n-1)
}

// flingVelocity returns a wheel velocity whose friction glide carries the
// target at least distance before the snap takes over. The glide stops
// contributing once velocity drops under the snap threshold, so that tail is
// added back in. A raw wheel impulse sized for exactly distance falls short
// by that tail and can round to the previous slot.
func flingVelocity(distance float64, cfg *Config) float64 {
	tail := 2 * 10 * cfg.MinVelocity
	v := math.Abs(distance)*(1-cfg.Friction) + tail
	if distance < 0 {
		return -v
	}
	return v
}
