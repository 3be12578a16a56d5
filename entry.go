package folio

import (
	"math"

	"github.com/tanema/gween/ease"
)

// EntryState is the lifecycle of the one-shot entry animation.
type EntryState uint8

const (
	EntryNotStarted EntryState = iota
	EntryRunning
	EntryComplete
)

// String returns the state name.
func (s EntryState) String() string {
	switch s {
	case EntryNotStarted:
		return "not-started"
	case EntryRunning:
		return "running"
	case EntryComplete:
		return "complete"
	default:
		return "unknown"
	}
}

const (
	// bendDelay is the fraction of the entry before curvature starts.
	bendDelay = 0.3
	// bendApproach is the per-tick smoothing of curvature toward its target.
	bendApproach = 0.15
	// bendTolerance is the gap below which curvature stops chasing.
	bendTolerance = 0.005
	// fadeRate speeds up the per-card fade relative to the group motion.
	fadeRate = 1.8
)

// entrySequencer drives the strip from its off-screen start pose into the
// gallery, fades the cards in one after another and ramps their curvature.
type entrySequencer struct {
	state   EntryState
	delay   float64 // seconds left before an automatic start
	elapsed float64
	bend    float64

	// Strip group transform.
	groupY, groupZ, groupTilt float64
}

// arm resets the sequencer to its start pose, waiting delay seconds (or for
// an explicit start when delay is negative).
func (s *entrySequencer) arm(cfg *Config, delay float64) {
	s.state = EntryNotStarted
	s.delay = delay
	s.elapsed = 0
	s.bend = 0
	s.groupY = cfg.StripScroll
	s.groupZ = cfg.EntryZ
	s.groupTilt = cfg.EntryTilt
}

// start begins the animation. It is a no-op unless the sequencer is waiting.
func (s *entrySequencer) start() bool {
	if s.state != EntryNotStarted {
		return false
	}
	s.state = EntryRunning
	s.delay = 0
	s.elapsed = 0
	return true
}

// rawProgress returns elapsed time as a fraction of the duration, capped at 1.
func (s *entrySequencer) rawProgress(cfg *Config) float64 {
	return math.Min(1, s.elapsed/cfg.EntryDuration)
}

// advance moves time forward. A pending automatic start consumes dt first and
// the remainder goes into the animation.
func (s *entrySequencer) advance(dt float64) {
	switch s.state {
	case EntryNotStarted:
		if s.delay < 0 {
			return
		}
		s.delay -= dt
		if s.delay > 0 {
			return
		}
		over := -s.delay
		s.start()
		s.elapsed = over
	case EntryRunning:
		s.elapsed += dt
	}
}

// apply writes the group transform, card opacity and curvature for the
// current time. It returns true on the tick the animation completes.
func (s *entrySequencer) apply(cards []*Card, cfg *Config) bool {
	if s.state != EntryRunning {
		return false
	}
	raw := s.rawProgress(cfg)
	p := entryEase(raw, cfg.Smoothness)

	s.groupY = cfg.StripScroll * (1 - p)
	s.groupZ = cfg.EntryZ * (1 - p)
	s.groupTilt = cfg.EntryTilt * (1 - p)

	for i, c := range cards {
		c.Opacity = clamp01(p*fadeRate - float64(i)*cfg.EntryStagger)
	}

	bendP := clamp01((raw - bendDelay) / (1 - bendDelay))
	target := cfg.GalleryBend * outQuint(bendP)
	if math.Abs(target-s.bend) > bendTolerance {
		s.bend += (target - s.bend) * bendApproach
		for _, c := range cards {
			c.setCurvature(s.bend, cfg.CardWidth, cfg.CardHeight, false)
		}
	}

	if raw < 1 {
		return false
	}

	s.state = EntryComplete
	s.groupY, s.groupZ, s.groupTilt = 0, 0, 0
	s.bend = cfg.GalleryBend
	for _, c := range cards {
		c.setCurvature(cfg.GalleryBend, cfg.CardWidth, cfg.CardHeight, true)
		c.Opacity = 1
	}
	return true
}

// groupMatrix returns the strip transform.
func (s *entrySequencer) groupMatrix() Mat4 {
	if s.groupY == 0 && s.groupZ == 0 && s.groupTilt == 0 {
		return identityMat4
	}
	return groupMatrix(s.groupY, s.groupZ, s.groupTilt)
}

// entryEase averages a quintic ease-out with an inverse power curve, giving a
// fast start that still lands softly.
func entryEase(t, smoothness float64) float64 {
	t = clamp01(t)
	return (outQuint(t) + 1 - math.Pow(1-t, smoothness)) / 2
}

func outQuint(t float64) float64 {
	return float64(ease.OutQuint(float32(clamp01(t)), 0, 1, 1))
}

func inOutCubic(t float64) float64 {
	return float64(ease.InOutCubic(float32(clamp01(t)), 0, 1, 1))
}
