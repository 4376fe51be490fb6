package game

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	ebitext "github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"
)

var (
	UIColorText    = color.RGBA{230, 230, 230, 255}
	UIColorWarning = color.RGBA{255, 180, 60, 255}
	UIColorPanel   = color.RGBA{0, 0, 0, 160}
)

const hudLineHeight = 15

// hudLines builds the status text shown in the top-left panel
func (g *SeaGame) hudLines() []string {
	m := g.monitor.GetCurrentMetrics()
	lines := []string{
		fmt.Sprintf("scene: %s  culling: %s", g.world.CurrentScene(), g.scheduler.State()),
		fmt.Sprintf("tiles: %d tracked, %d active", m.TrackedTiles, g.world.ActiveTileCount()),
		fmt.Sprintf("passes: %d  last: %d ticks", m.PassesCompleted, m.LastPassTicks),
		fmt.Sprintf("writes: +%d / -%d  polls: %d", m.Activations, m.Deactivations, m.DiscoveryPolls),
	}

	var flags string
	if g.world.Paused() {
		flags += "[paused] "
	}
	if g.world.InTransit() {
		flags += "[in transit] "
	}
	if flags != "" {
		lines = append(lines, flags)
	}
	if g.showHelp {
		lines = append(lines,
			"arrows/WASD move, shift faster",
			"P pause  T transit  R reload  Tab scene  H help  Esc quit")
	}
	return lines
}

// DrawHUD draws the status panel and any active alerts
func (r *Renderer) DrawHUD(screen *ebiten.Image) {
	g := r.game
	face := basicfont.Face7x13
	lines := g.hudLines()

	vector.DrawFilledRect(screen, 8, 8, 420, float32(len(lines)*hudLineHeight+10), UIColorPanel, false)
	y := 12 + face.Ascent
	for _, line := range lines {
		ebitext.Draw(screen, line, face, 14, y, UIColorText)
		y += hudLineHeight
	}

	y = g.config.GetScreenHeight() - 12
	for _, alert := range g.alerts {
		ebitext.Draw(screen, alert.Message, face, 14, y, UIColorWarning)
		y -= hudLineHeight
	}
}
