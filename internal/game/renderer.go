package game

import (
	"image/color"
	"math"

	"seacull/internal/culling"
	"seacull/internal/mathutil"
	"seacull/internal/sea"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/colornames"
)

// Tile palette
var (
	ColorTileActive    = colornames.Seagreen
	ColorTileCulled    = colornames.Midnightblue
	ColorTileUntracked = colornames.Dimgray
	ColorObserver      = colornames.Gold
	ColorCullRadius    = colornames.White
	ColorBackground    = color.RGBA{8, 12, 24, 255}
)

// tileStyle is how a tile is drawn
type tileStyle int

const (
	tileUntracked tileStyle = iota // inactive at discovery, never culled
	tileActive
	tileCulled
)

// classifyTile picks the draw style from the host flag and the tracked set
func classifyTile(node *sea.Node, tracked map[culling.Entity]bool) tileStyle {
	if !tracked[node] {
		if node.ActiveSelf() {
			return tileActive
		}
		return tileUntracked
	}
	if node.ActiveSelf() {
		return tileActive
	}
	return tileCulled
}

func (s tileStyle) color() color.Color {
	switch s {
	case tileActive:
		return ColorTileActive
	case tileCulled:
		return ColorTileCulled
	default:
		return ColorTileUntracked
	}
}

// viewport maps world coordinates onto the screen around a center point
type viewport struct {
	center mathutil.Vec2
	scale  float64
	width  int
	height int
}

// viewSpan returns how many world units fit across the shorter screen edge
func viewSpan(tileSize, cullDistance float64) float64 {
	return math.Max(4*tileSize, 5*cullDistance)
}

func newViewport(center mathutil.Vec2, span float64, width, height int) viewport {
	return viewport{
		center: center,
		scale:  float64(mathutil.IntMin(width, height)) / span,
		width:  width,
		height: height,
	}
}

func (v viewport) toScreen(p mathutil.Vec2) (float32, float32) {
	x := (p.X-v.center.X)*v.scale + float64(v.width)/2
	y := (p.Y-v.center.Y)*v.scale + float64(v.height)/2
	return float32(x), float32(y)
}

// Renderer draws the sea from above
type Renderer struct {
	game *SeaGame
}

// NewRenderer creates a new renderer
func NewRenderer(game *SeaGame) *Renderer {
	return &Renderer{game: game}
}

// DrawSea draws every tile of the container, the observer and the cull radius
func (r *Renderer) DrawSea(screen *ebiten.Image) {
	g := r.game
	screen.Fill(ColorBackground)

	center, hasObserver := g.world.ObserverPosition()
	tileSize := g.world.TileSize()
	vp := newViewport(center, viewSpan(tileSize, g.config.Culling.CullDistance),
		g.config.GetScreenWidth(), g.config.GetScreenHeight())

	if root, ok := g.world.Container(); ok {
		tracked := make(map[culling.Entity]bool)
		for _, tile := range g.scheduler.Tiles() {
			tracked[tile.Entity] = true
		}

		side := float32(tileSize * vp.scale)
		for _, node := range root.ChildNodes() {
			x, y := vp.toScreen(node.Position())
			style := classifyTile(node, tracked)
			// 1px gap between tiles
			vector.DrawFilledRect(screen, x, y, side-1, side-1, style.color(), false)
		}
	}

	if hasObserver {
		cx, cy := vp.toScreen(center)
		if g.config.Culling.Enabled {
			radius := float32(g.config.Culling.CullDistance * vp.scale)
			vector.StrokeCircle(screen, cx, cy, radius, 1, ColorCullRadius, true)
		}
		vector.DrawFilledCircle(screen, cx, cy, 5, ColorObserver, true)
	}
}
