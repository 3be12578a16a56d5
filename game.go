package folio

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
)

// RunConfig configures the window opened by Run.
type RunConfig struct {
	Title         string
	Width, Height int
	Debug         bool

	// ScreenshotDir is where Screenshot writes files. Defaults to
	// "screenshots".
	ScreenshotDir string
	// ScreenshotFormat is "png" (default) or "webp".
	ScreenshotFormat string

	// TestRunner, when set, drives the gallery from a script.
	TestRunner *TestRunner
	// ExitWhenDone ends the run once the test runner finishes.
	ExitWhenDone bool
}

// Game adapts an Engine to ebiten.Game, wiring input, the debug overlay,
// scripted runs and screenshots.
type Game struct {
	engine *Engine
	input  *InputHandler
	runner *TestRunner

	exitWhenDone bool

	overlay debugOverlay

	screenshotDir    string
	screenshotFormat string
	screenshotQueue  []string
}

// NewGame creates a Game for e.
func NewGame(e *Engine, cfg RunConfig) *Game {
	g := &Game{
		engine:           e,
		input:            NewInputHandler(e),
		runner:           cfg.TestRunner,
		exitWhenDone:     cfg.ExitWhenDone,
		screenshotDir:    cfg.ScreenshotDir,
		screenshotFormat: cfg.ScreenshotFormat,
	}
	if g.screenshotDir == "" {
		g.screenshotDir = "screenshots"
	}
	if cfg.Debug {
		e.SetDebugMode(true)
	}
	return g
}

// Engine returns the engine the game drives.
func (g *Game) Engine() *Engine { return g.engine }

// Input returns the game's input handler.
func (g *Game) Input() *InputHandler { return g.input }

// Update implements ebiten.Game.
func (g *Game) Update() error {
	if g.engine.Closed() {
		return ebiten.Termination
	}
	if g.runner != nil {
		g.runner.step(g)
		if g.exitWhenDone && g.runner.Done() && len(g.screenshotQueue) == 0 {
			g.engine.Close()
			return ebiten.Termination
		}
	}
	dt := 1.0 / float64(ebiten.TPS())
	g.input.Update()
	g.engine.Update(dt)
	if g.engine.debug {
		g.overlay.update(g.engine, dt)
	}
	return nil
}

// Draw implements ebiten.Game.
func (g *Game) Draw(screen *ebiten.Image) {
	g.engine.Draw(screen)
	if g.engine.debug {
		g.overlay.draw(screen)
	}
	g.flushScreenshots(screen)
}

// Layout implements ebiten.Game. The gallery always fills the window.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.engine.Resize(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}

// Run opens a window and runs the gallery until the window closes or the
// engine is closed. The engine is closed on return.
func Run(e *Engine, cfg RunConfig) error {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		cfg.Width, cfg.Height = 1280, 720
	}
	if cfg.Title == "" {
		cfg.Title = "folio"
	}
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	g := NewGame(e, cfg)
	defer e.Close()
	if err := ebiten.RunGame(g); err != nil {
		return fmt.Errorf("folio: run: %w", err)
	}
	return nil
}
