package folio

import (
	"fmt"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
)

type syntheticKind uint8

const (
	syntheticPointer syntheticKind = iota
	syntheticWheel
	syntheticKey
)

// syntheticEvent represents a single injected input event. Pointer events use
// screen coordinates, identical to real mouse input.
type syntheticEvent struct {
	kind             syntheticKind
	screenX, screenY float64
	pressed          bool
	wheel            float64
	key              ebiten.Key
}

// InjectPress queues a pointer press at the given screen coordinates. The
// event is consumed on the next frame's Update.
func (h *InputHandler) InjectPress(x, y float64) {
	h.injectQueue = append(h.injectQueue, syntheticEvent{
		kind:    syntheticPointer,
		screenX: x, screenY: y,
		pressed: true,
	})
}

// InjectMove queues a pointer move with the button held down. Use this
// between InjectPress and InjectRelease to simulate a drag.
func (h *InputHandler) InjectMove(x, y float64) {
	h.InjectPress(x, y)
}

// InjectRelease queues a pointer release at the given screen coordinates.
func (h *InputHandler) InjectRelease(x, y float64) {
	h.injectQueue = append(h.injectQueue, syntheticEvent{
		kind:    syntheticPointer,
		screenX: x, screenY: y,
	})
}

// InjectClick queues a press followed by a release at the same screen
// coordinates. Consumes two frames.
func (h *InputHandler) InjectClick(x, y float64) {
	h.InjectPress(x, y)
	h.InjectRelease(x, y)
}

// InjectDrag queues a full drag sequence: press at (fromX, fromY), linearly
// interpolated moves over frames-2 intermediate frames, and release at
// (toX, toY). The total sequence consumes `frames` frames. Minimum frames is
// 2 (press + release).
func (h *InputHandler) InjectDrag(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	h.InjectPress(fromX, fromY)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		h.InjectMove(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
	h.InjectRelease(toX, toY)
}

// InjectWheel queues a wheel movement in notches (positive away from the
// user, as ebiten.Wheel reports).
func (h *InputHandler) InjectWheel(notches float64) {
	h.injectQueue = append(h.injectQueue, syntheticEvent{kind: syntheticWheel, wheel: notches})
}

// InjectKey queues a key press.
func (h *InputHandler) InjectKey(k ebiten.Key) {
	h.injectQueue = append(h.injectQueue, syntheticEvent{kind: syntheticKey, key: k})
}

// Pending returns the number of queued synthetic events.
func (h *InputHandler) Pending() int {
	return len(h.injectQueue)
}

// processInjectedInput pops one event from the inject queue and feeds it
// through the same paths as real input. Returns true if an event was
// consumed (real input should be skipped).
func (h *InputHandler) processInjectedInput() bool {
	if len(h.injectQueue) == 0 {
		return false
	}
	evt := h.injectQueue[0]
	copy(h.injectQueue, h.injectQueue[1:])
	h.injectQueue = h.injectQueue[:len(h.injectQueue)-1]

	switch evt.kind {
	case syntheticPointer:
		h.processPointer(evt.screenX, evt.screenY, evt.pressed)
	case syntheticWheel:
		h.wheel(evt.wheel)
	case syntheticKey:
		h.key(evt.key)
	}
	return true
}

// parseKey maps a key name from a test script to an ebiten.Key.
func parseKey(name string) (ebiten.Key, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "r":
		return ebiten.KeyR, nil
	case "up", "arrowup":
		return ebiten.KeyArrowUp, nil
	case "down", "arrowdown":
		return ebiten.KeyArrowDown, nil
	case "enter", "return":
		return ebiten.KeyEnter, nil
	case "escape", "esc":
		return ebiten.KeyEscape, nil
	case "backspace":
		return ebiten.KeyBackspace, nil
	}
	return 0, fmt.Errorf("unknown key %q", name)
}
