package folio

import (
	"fmt"
	"image/color"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// debugStats holds per-frame timing and draw metrics.
// Only populated when the engine is in debug mode.
type debugStats struct {
	collectTime   time.Duration
	submitTime    time.Duration
	cardCount     int
	drawCallCount int
	vertexCount   int
}

// debugLog prints timing and draw stats to stderr.
func (e *Engine) debugLog(stats debugStats) {
	if !e.debug {
		return
	}
	_, _ = fmt.Fprintf(os.Stderr,
		"[folio] collect: %v | submit: %v | total: %v\n",
		stats.collectTime, stats.submitTime, stats.collectTime+stats.submitTime)
	_, _ = fmt.Fprintf(os.Stderr,
		"[folio] cards: %d | draw calls: %d | vertices: %d\n",
		stats.cardCount, stats.drawCallCount, stats.vertexCount)
}

// debugOverlay is the on-screen panel shown in debug mode. The text is
// refreshed about twice a second.
type debugOverlay struct {
	img     *ebiten.Image
	elapsed float64
	text    string
}

const debugOverlayRefresh = 0.5

// update refreshes the overlay text from the engine state.
func (o *debugOverlay) update(e *Engine, dt float64) {
	o.elapsed += dt
	if o.text != "" && o.elapsed < debugOverlayRefresh {
		return
	}
	o.elapsed = 0
	st := e.State()
	o.text = fmt.Sprintf("FPS: %.1f  TPS: %.1f\nphase: %s  entry: %s\nindex: %d/%d\nscroll: %.3f -> %.3f\nvelocity: %.5f",
		ebiten.ActualFPS(), ebiten.ActualTPS(),
		st.Phase, e.EntryState(),
		st.ActiveIndex+1, len(e.cards),
		st.ScrollPosition, st.ScrollTarget,
		st.ScrollVelocity)
}

// draw renders the overlay in the top-left corner of screen.
func (o *debugOverlay) draw(screen *ebiten.Image) {
	if o.img == nil {
		o.img = ebiten.NewImage(220, 80)
	}
	o.img.Clear()
	// Semi-transparent background for readability
	o.img.Fill(color.RGBA{0, 0, 0, 128})
	ebitenutil.DebugPrint(o.img, o.text)
	var op ebiten.DrawImageOptions
	op.GeoM.Translate(8, 8)
	screen.DrawImage(o.img, &op)
}
