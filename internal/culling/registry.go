package culling

import (
	"errors"
	"fmt"

	"seacull/internal/config"
)

// ErrNotReady means the scene has not finished loading the entities discovery needs.
// It is transient and the caller retries.
var ErrNotReady = errors.New("culling: scene entities not ready")

// TileRegistry holds the tile set of the current scene. The snapshot is
// either empty or complete; it is replaced wholesale on every rebuild.
type TileRegistry struct {
	tiles      []*Tile
	generation uint64
}

// NewTileRegistry creates an empty registry
func NewTileRegistry() *TileRegistry {
	return &TileRegistry{}
}

// Rebuild locates the tile container and the observer in the loaded scene and
// collects every child that is active in hierarchy at this moment. Inactive
// children are left out and never tracked for this scene generation.
func (r *TileRegistry) Rebuild(host SceneHost, names config.SceneConfig) (observer Entity, err error) {
	r.Clear()

	root, ok := host.Find(names.TileContainer)
	if !ok {
		return nil, fmt.Errorf("%w: container %q", ErrNotReady, names.TileContainer)
	}
	observer, ok = host.Find(names.Observer)
	if !ok {
		return nil, fmt.Errorf("%w: observer %q", ErrNotReady, names.Observer)
	}

	children := root.Children()
	tiles := make([]*Tile, 0, len(children))
	for _, child := range children {
		if !child.ActiveInHierarchy() {
			continue
		}
		tiles = append(tiles, &Tile{
			Entity: child,
			Anchor: child.Position(),
			Active: true,
		})
	}

	r.tiles = tiles
	return observer, nil
}

// Tiles returns the live tile list in registry order
func (r *TileRegistry) Tiles() []*Tile {
	return r.tiles
}

// Len returns the number of tracked tiles
func (r *TileRegistry) Len() int {
	return len(r.tiles)
}

// Clear abandons every tracked tile and starts a new generation
func (r *TileRegistry) Clear() {
	r.tiles = nil
	r.generation++
}

// Generation increments each time the snapshot is invalidated
func (r *TileRegistry) Generation() uint64 {
	return r.generation
}
