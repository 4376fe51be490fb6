package culling

import (
	"seacull/internal/config"
	"seacull/internal/mathutil"
)

// Decide reports whether tile should be active for an observer at observerPos.
// Any override forces activation. Otherwise the tile is active when its center
// lies within cfg.CullDistance of the observer, boundary inclusive.
// Decide has no side effects.
func Decide(tile *Tile, observerPos mathutil.Vec2, cfg config.CullingConfig, overrides OverrideFlags) bool {
	if overrides.Any() {
		return true
	}
	distSqr := mathutil.DistSqr(observerPos, tile.Center(cfg.TileSize))
	return distSqr <= cfg.CullDistance*cfg.CullDistance
}
