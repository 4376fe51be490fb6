package culling

import "seacull/internal/mathutil"

// Tile is one tracked world-space chunk.
// Anchor is the top-left registration corner, not the center.
type Tile struct {
	Entity Entity
	Anchor mathutil.Vec2
	// Active is the scheduler's cached view of the host flag
	Active bool
}

// TileCenter recovers the logical center of a tile from its anchor
func TileCenter(anchor mathutil.Vec2, tileSize float64) mathutil.Vec2 {
	half := tileSize / 2
	return anchor.Add(mathutil.Vec2{X: half, Y: half})
}

// Center returns the tile's logical center
func (t *Tile) Center(tileSize float64) mathutil.Vec2 {
	return TileCenter(t.Anchor, tileSize)
}

func (t *Tile) Name() string {
	if t.Entity == nil {
		return ""
	}
	return t.Entity.Name()
}
