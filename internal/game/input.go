package game

import (
	"seacull/internal/game/keytracker"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// InputHandler translates keys into observer movement and host signals
type InputHandler struct {
	game *SeaGame
	keys *keytracker.Tracker
}

// NewInputHandler creates a new input handler
func NewInputHandler(game *SeaGame) *InputHandler {
	return &InputHandler{game: game, keys: keytracker.New()}
}

// HandleInput processes one frame of input. Returns ebiten.Termination on Esc.
func (ih *InputHandler) HandleInput() error {
	g := ih.game

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	ih.handleMovement()

	if ih.keys.JustPressed(ebiten.KeyP) {
		g.world.SetPaused(!g.world.Paused())
	}
	if ih.keys.JustPressed(ebiten.KeyT) {
		g.beginTransit()
	}
	if ih.keys.JustPressed(ebiten.KeyR) {
		g.reloadScene()
	}
	if ih.keys.JustPressed(ebiten.KeyTab) {
		g.cycleScene()
	}
	if ih.keys.JustPressed(ebiten.KeyH) {
		g.showHelp = !g.showHelp
	}
	return nil
}

func (ih *InputHandler) handleMovement() {
	step := ih.game.config.Sea.ObserverStep
	if ebiten.IsKeyPressed(ebiten.KeyShift) {
		step *= 4
	}

	var dx, dy float64
	if ebiten.IsKeyPressed(ebiten.KeyArrowLeft) || ebiten.IsKeyPressed(ebiten.KeyA) {
		dx -= step
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowRight) || ebiten.IsKeyPressed(ebiten.KeyD) {
		dx += step
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowUp) || ebiten.IsKeyPressed(ebiten.KeyW) {
		dy -= step
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowDown) || ebiten.IsKeyPressed(ebiten.KeyS) {
		dy += step
	}
	if dx != 0 || dy != 0 {
		ih.game.world.MoveObserver(dx, dy)
	}
}
