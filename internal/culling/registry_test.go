package culling

import (
	"errors"
	"testing"

	"seacull/internal/mathutil"
)

func TestRegistryRebuildCollectsActiveChildren(t *testing.T) {
	host := newFakeHost()
	tiles := host.addSea("Sea", mathutil.Vec2{X: 0, Y: 0}, mathutil.Vec2{X: 1500, Y: 0}, mathutil.Vec2{X: 3000, Y: 0})
	tiles[1].active = false
	host.addObserver("PlayerBoat", 10, 10)

	r := NewTileRegistry()
	observer, err := r.Rebuild(host, testConfig(1500).Scene)
	if err != nil {
		t.Fatalf("Rebuild failed: %v", err)
	}
	if observer.Name() != "PlayerBoat" {
		t.Errorf("Expected observer PlayerBoat, got %q", observer.Name())
	}
	if r.Len() != 2 {
		t.Fatalf("Expected 2 tracked tiles, got %d", r.Len())
	}

	got := r.Tiles()
	if got[0].Anchor != (mathutil.Vec2{X: 0, Y: 0}) || got[1].Anchor != (mathutil.Vec2{X: 3000, Y: 0}) {
		t.Errorf("Expected registry order to follow child order, got %v and %v", got[0].Anchor, got[1].Anchor)
	}
	for i, tile := range got {
		if !tile.Active {
			t.Errorf("Tile %d should be seeded active", i)
		}
	}
}

func TestRegistryRebuildSkipsChildrenOfInactiveParent(t *testing.T) {
	host := newFakeHost()
	tiles := host.addSea("Sea", mathutil.Vec2{}, mathutil.Vec2{X: 1500})
	tiles[0].parentOn = false
	host.addObserver("PlayerBoat", 0, 0)

	r := NewTileRegistry()
	if _, err := r.Rebuild(host, testConfig(1500).Scene); err != nil {
		t.Fatalf("Rebuild failed: %v", err)
	}
	if r.Len() != 1 {
		t.Errorf("Expected only the tile active in hierarchy, got %d", r.Len())
	}
}

func TestRegistryRebuildNotReady(t *testing.T) {
	names := testConfig(1500).Scene

	t.Run("missing container", func(t *testing.T) {
		host := newFakeHost()
		host.addObserver("PlayerBoat", 0, 0)
		r := NewTileRegistry()
		if _, err := r.Rebuild(host, names); !errors.Is(err, ErrNotReady) {
			t.Errorf("Expected ErrNotReady, got %v", err)
		}
		if r.Len() != 0 {
			t.Errorf("Registry must stay empty when not ready")
		}
	})

	t.Run("missing observer", func(t *testing.T) {
		host := newFakeHost()
		host.addSea("Sea", mathutil.Vec2{})
		r := NewTileRegistry()
		if _, err := r.Rebuild(host, names); !errors.Is(err, ErrNotReady) {
			t.Errorf("Expected ErrNotReady, got %v", err)
		}
		if r.Len() != 0 {
			t.Errorf("Registry must stay empty when not ready")
		}
	})
}

func TestRegistryRebuildReplacesSnapshot(t *testing.T) {
	host := newFakeHost()
	host.addSea("Sea", mathutil.Vec2{}, mathutil.Vec2{X: 1500})
	host.addObserver("PlayerBoat", 0, 0)
	names := testConfig(1500).Scene

	r := NewTileRegistry()
	if _, err := r.Rebuild(host, names); err != nil {
		t.Fatalf("Rebuild failed: %v", err)
	}
	gen := r.Generation()
	first := r.Tiles()

	host.addSea("Sea", mathutil.Vec2{X: 9000})
	if _, err := r.Rebuild(host, names); err != nil {
		t.Fatalf("Rebuild failed: %v", err)
	}
	if r.Generation() == gen {
		t.Errorf("Expected a new generation after rebuild")
	}
	if r.Len() != 1 || r.Tiles()[0] == first[0] {
		t.Errorf("Expected a wholly new snapshot")
	}

	r.Clear()
	if r.Len() != 0 {
		t.Errorf("Clear should empty the registry")
	}
}
