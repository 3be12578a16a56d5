package folio

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

const defaultDragDeadZone = 4.0 // pixels

// pointerState tracks the primary pointer (mouse or first touch).
type pointerState struct {
	down     bool
	dragging bool
	startX   float64
	startY   float64
	lastX    float64
	lastY    float64

	touch   bool
	touchID ebiten.TouchID
}

// InputHandler turns Ebitengine input into engine operations: the wheel
// scrolls, a pointer drag past the dead zone scrolls like a touch swipe, a
// press and release without dragging clicks, and keys navigate.
type InputHandler struct {
	engine *Engine

	// DragDeadZone is the pointer travel in pixels before a press becomes a
	// drag.
	DragDeadZone float64

	pointer     pointerState
	injectQueue []syntheticEvent
	touchBuf    []ebiten.TouchID
}

// NewInputHandler creates an input handler driving e.
func NewInputHandler(e *Engine) *InputHandler {
	return &InputHandler{engine: e, DragDeadZone: defaultDragDeadZone}
}

// Update reads one frame of input. A queued synthetic event replaces real
// input for the frame.
func (h *InputHandler) Update() {
	if h.processInjectedInput() {
		return
	}
	h.processWheel()
	h.processPointerInput()
	h.processKeys()
}

func (h *InputHandler) processWheel() {
	_, wy := ebiten.Wheel()
	if wy != 0 {
		h.wheel(wy)
	}
}

// wheel converts wheel notches (positive away from the user) to a scroll
// delta in pixels.
func (h *InputHandler) wheel(wy float64) {
	h.engine.ApplyImpulse(-wy*h.engine.cfg.WheelLineScale, InputWheel)
}

// processPointerInput feeds the mouse, or the first touch when one is
// active, through the pointer state machine.
func (h *InputHandler) processPointerInput() {
	ps := &h.pointer
	if ps.down && ps.touch {
		if inpututil.IsTouchJustReleased(ps.touchID) {
			h.processPointer(ps.lastX, ps.lastY, false)
			ps.touch = false
			return
		}
		tx, ty := ebiten.TouchPosition(ps.touchID)
		h.processPointer(float64(tx), float64(ty), true)
		return
	}

	h.touchBuf = inpututil.AppendJustPressedTouchIDs(h.touchBuf[:0])
	if len(h.touchBuf) > 0 && !ps.down {
		ps.touch = true
		ps.touchID = h.touchBuf[0]
		tx, ty := ebiten.TouchPosition(ps.touchID)
		h.processPointer(float64(tx), float64(ty), true)
		return
	}

	mx, my := ebiten.CursorPosition()
	h.processPointer(float64(mx), float64(my), ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft))
}

// processPointer runs the pointer state machine for one sample.
func (h *InputHandler) processPointer(x, y float64, pressed bool) {
	ps := &h.pointer
	switch {
	case pressed && !ps.down:
		ps.down = true
		ps.dragging = false
		ps.startX, ps.startY = x, y
		ps.lastX, ps.lastY = x, y

	case pressed && ps.down:
		if !ps.dragging {
			dx := x - ps.startX
			dy := y - ps.startY
			if math.Sqrt(dx*dx+dy*dy) <= h.DragDeadZone {
				return
			}
			ps.dragging = true
			h.engine.BeginTouch()
		}
		// Dragging up moves toward later projects.
		if d := ps.lastY - y; d != 0 {
			h.engine.ApplyImpulse(d, InputTouch)
		}
		ps.lastX, ps.lastY = x, y

	case !pressed && ps.down:
		if ps.dragging {
			h.engine.EndTouch()
		} else {
			h.engine.ClickAt(x, y)
		}
		ps.down = false
		ps.dragging = false
	}
}

// processKeys handles keyboard navigation.
func (h *InputHandler) processKeys() {
	for _, k := range navigationKeys {
		if inpututil.IsKeyJustPressed(k) {
			h.key(k)
		}
	}
}

var navigationKeys = []ebiten.Key{
	ebiten.KeyR,
	ebiten.KeyArrowUp,
	ebiten.KeyArrowDown,
	ebiten.KeyEnter,
	ebiten.KeyEscape,
	ebiten.KeyBackspace,
}

// key applies the action bound to k.
func (h *InputHandler) key(k ebiten.Key) {
	e := h.engine
	switch k {
	case ebiten.KeyR:
		e.ReplayEntry()
	case ebiten.KeyArrowUp:
		e.Prev()
	case ebiten.KeyArrowDown:
		e.Next()
	case ebiten.KeyEnter:
		e.OpenHero()
	case ebiten.KeyEscape, ebiten.KeyBackspace:
		e.CloseHero()
	}
}
