package folio

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScrollStaysInBounds(t *testing.T) {
	e := readyEngine(t, 6, Options{})
	maxS := e.cfg.maxScroll(6)
	rng := rand.New(rand.NewSource(1))

	for i := 0; i < 2000; i++ {
		switch rng.Intn(4) {
		case 0:
			e.ApplyImpulse(rng.Float64()*4000-2000, InputWheel)
		case 1:
			e.ApplyImpulse(rng.Float64()*800-400, InputTouch)
		case 2:
			e.EndTouch()
		}
		e.Update(tick)

		st := e.State()
		require.GreaterOrEqual(t, st.ScrollTarget, 0.0)
		require.LessOrEqual(t, st.ScrollTarget, maxS)
		require.GreaterOrEqual(t, st.ScrollPosition, 0.0)
		require.LessOrEqual(t, st.ScrollPosition, maxS)
		require.Equal(t, slotIndex(st.ScrollPosition, e.cfg.Spacing, 6), st.ActiveIndex)
	}
}

func TestScrollSettlesOnSlot(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for run := 0; run < 20; run++ {
		e := readyEngine(t, 5, Options{})
		for i := 0; i < 30; i++ {
			if rng.Intn(2) == 0 {
				e.ApplyImpulse(rng.Float64()*600-200, InputWheel)
			} else {
				e.ApplyImpulse(rng.Float64()*200-50, InputTouch)
			}
			e.Update(tick)
		}
		e.EndTouch()
		advance(e, 10)

		st := e.State()
		slot := float64(st.ActiveIndex) * e.cfg.Spacing
		assert.Equal(t, slot, st.ScrollTarget, "run %d", run)
		assert.Equal(t, st.ScrollTarget, st.ScrollPosition, "run %d", run)
		assert.Equal(t, 0.0, st.ScrollVelocity, "run %d", run)
	}
}

func TestFlingSnapsToNearestSlot(t *testing.T) {
	tests := []struct {
		name     string
		distance float64
		index    int
	}{
		{"one slot", 3.3, 1},
		{"two and a half slots", 2.5 * 3.3, 3},
		{"past the end", 100, 6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := readyEngine(t, 7, Options{})
			e.Fling(tt.distance)
			advance(e, 10)

			st := e.State()
			assert.Equal(t, tt.index, st.ActiveIndex)
			assert.InDelta(t, float64(tt.index)*3.3, st.ScrollPosition, 1e-9)
			assert.Equal(t, st.ScrollTarget, st.ScrollPosition)
			assert.Equal(t, 0.0, st.ScrollVelocity)
		})
	}
}

func TestFlingBackward(t *testing.T) {
	e := readyEngine(t, 7, Options{})
	e.GoToIndex(5)
	advance(e, 10)
	require.Equal(t, 5, e.State().ActiveIndex)

	e.Fling(-2 * 3.3)
	advance(e, 10)
	assert.Equal(t, 3, e.State().ActiveIndex)
}

func TestWheelImpulseBuildsVelocity(t *testing.T) {
	e := readyEngine(t, 4, Options{})
	e.ApplyImpulse(100, InputWheel)

	st := e.State()
	assert.InDelta(t, 100*e.cfg.WheelSensitivity, st.ScrollVelocity, 1e-12)
	assert.Equal(t, 0.0, st.ScrollTarget)

	e.Update(tick)
	st = e.State()
	assert.InDelta(t, 0.15, st.ScrollTarget, 1e-12)
	assert.InDelta(t, 0.15*e.cfg.Friction, st.ScrollVelocity, 1e-12)
}

func TestTouchMovesTargetDirectly(t *testing.T) {
	e := readyEngine(t, 4, Options{})
	e.ApplyImpulse(50, InputTouch)

	st := e.State()
	assert.InDelta(t, 50*e.cfg.TouchSensitivity, st.ScrollTarget, 1e-12)
	assert.Equal(t, 0.0, st.ScrollVelocity)
	assert.True(t, e.scroll.touching)

	// Dragging past the start clamps.
	e.ApplyImpulse(-10000, InputTouch)
	assert.Equal(t, 0.0, e.State().ScrollTarget)
}

func TestTouchReleaseMomentum(t *testing.T) {
	e := readyEngine(t, 4, Options{})
	e.BeginTouch()
	e.Update(tick)
	e.ApplyImpulse(20, InputTouch)
	e.EndTouch()

	// 20px over one 60 Hz frame, normalized to 16 ms.
	want := 20 / (tick * 1000) * touchFrameMs * e.cfg.TouchSensitivity * e.cfg.TouchMomentum
	assert.InEpsilon(t, want, e.State().ScrollVelocity, 1e-6)
	assert.False(t, e.scroll.touching)
	assert.False(t, e.scroll.scrolling)
}

func TestBeginTouchStopsMomentum(t *testing.T) {
	e := readyEngine(t, 4, Options{})
	e.ApplyImpulse(500, InputWheel)
	e.BeginTouch()
	assert.Equal(t, 0.0, e.State().ScrollVelocity)
}

func TestEndTouchWithoutTouchIsNoOp(t *testing.T) {
	e := readyEngine(t, 4, Options{})
	e.ApplyImpulse(500, InputWheel)
	v := e.State().ScrollVelocity
	e.EndTouch()
	assert.Equal(t, v, e.State().ScrollVelocity)
	assert.True(t, e.scroll.scrolling)
}

func TestWheelIdleDebounce(t *testing.T) {
	e := readyEngine(t, 4, Options{})
	e.ApplyImpulse(10, InputWheel)

	advance(e, 0.1)
	assert.True(t, e.scroll.scrolling)

	// Another impulse restarts the timer.
	e.ApplyImpulse(10, InputWheel)
	advance(e, 0.1)
	assert.True(t, e.scroll.scrolling)

	advance(e, 0.1)
	assert.False(t, e.scroll.scrolling)
}

func TestImpulseIgnoredDuringEntry(t *testing.T) {
	e := newTestEngine(t, 4, Options{})
	e.ApplyImpulse(1000, InputWheel)
	e.ApplyImpulse(100, InputTouch)
	e.Fling(3.3)

	st := e.State()
	assert.Equal(t, 0.0, st.ScrollVelocity)
	assert.Equal(t, 0.0, st.ScrollTarget)
}

func TestEdgeDamping(t *testing.T) {
	e := readyEngine(t, 2, Options{})
	e.ApplyImpulse(-1000, InputWheel)
	e.Update(tick)

	st := e.State()
	assert.Equal(t, 0.0, st.ScrollTarget)
	assert.InDelta(t, -1000*e.cfg.WheelSensitivity*e.cfg.Friction*edgeDamping, st.ScrollVelocity, 1e-12)
}

func TestSlotIndex(t *testing.T) {
	tests := []struct {
		pos  float64
		want int
	}{
		{-5, 0},
		{0, 0},
		{1.64, 0},
		{1.66, 1},
		{3.3, 1},
		{9.8, 3},
		{100, 4},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, slotIndex(tt.pos, 3.3, 5), "pos %v", tt.pos)
	}
	assert.Equal(t, 0, slotIndex(10, 0, 5), "zero spacing")
}

func TestFlingVelocitySign(t *testing.T) {
	cfg := DefaultConfig()
	v := flingVelocity(3.3, cfg)
	assert.Positive(t, v)
	assert.InDelta(t, -v, flingVelocity(-3.3, cfg), 1e-15)
}

func TestWheelImpulseFallsShortOfFling(t *testing.T) {
	// 440px at the default sensitivity is 2.5 slots of raw velocity, but the
	// glide below the snap threshold is lost, so the strip rounds back.
	e := readyEngine(t, 7, Options{})
	e.ApplyImpulse(440, InputWheel)
	advance(e, 10)

	st := e.State()
	assert.Equal(t, 2, st.ActiveIndex)
	assert.InDelta(t, 2*3.3, st.ScrollPosition, 1e-9)
	assert.Equal(t, 0.0, st.ScrollVelocity)
}

func TestScrollStaysInBoundsWhenSpacingShrinks(t *testing.T) {
	e := readyEngine(t, 7, Options{})
	e.GoToIndex(4)
	advance(e, 10)
	require.InDelta(t, 4*3.3, e.State().ScrollPosition, 1e-9)

	e.Config().Spacing = 1.0
	maxS := e.cfg.maxScroll(7)
	require.InDelta(t, 6.0, maxS, 1e-12)

	for i := 0; i < 600; i++ {
		if i == 100 {
			e.ApplyImpulse(2000, InputWheel)
		}
		e.Update(tick)

		st := e.State()
		require.GreaterOrEqual(t, st.ScrollTarget, 0.0, "tick %d", i)
		require.LessOrEqual(t, st.ScrollTarget, maxS, "tick %d", i)
		require.GreaterOrEqual(t, st.ScrollPosition, 0.0, "tick %d", i)
		require.LessOrEqual(t, st.ScrollPosition, maxS, "tick %d", i)
		require.GreaterOrEqual(t, st.ActiveIndex, 0, "tick %d", i)
		require.Less(t, st.ActiveIndex, 7, "tick %d", i)
	}

	st := e.State()
	assert.Equal(t, 6, st.ActiveIndex)
	assert.InDelta(t, maxS, st.ScrollPosition, 1e-9)
	for i, c := range e.Cards() {
		assert.InDelta(t, -float64(i), c.RestingSlot, 1e-12)
	}
}
