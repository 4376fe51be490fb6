package game

import (
	"io"
	"log"
	"testing"
	"time"

	"seacull/internal/config"
	"seacull/internal/culling"
	"seacull/internal/mathutil"
	"seacull/internal/sea"
)

const testLayouts = `scenes:
  Sailing:
    ready_after_ticks: 2
    observer: true
    observer_spawn: [0, 0]
    sea:
      rows: 4
      cols: 4
      origin: [-3000, -3000]
  Harbour:
    observer: true
`

func createTestGame(t *testing.T) *SeaGame {
	t.Helper()
	cfg := config.Default()
	cfg.Culling.Enabled = true
	cfg.Culling.CullDistance = 1500

	layouts, err := sea.ParseLayouts([]byte(testLayouts))
	if err != nil {
		t.Fatalf("Failed to parse layouts: %v", err)
	}
	world := sea.NewWorld(cfg)
	for _, layout := range layouts {
		world.AddLayout(*layout)
	}

	g := NewSeaGame(cfg, world, log.New(io.Discard, "", 0))
	if err := g.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	t.Cleanup(g.Close)
	return g
}

func runFrames(g *SeaGame, start time.Time, n int) time.Time {
	for i := 0; i < n; i++ {
		g.step(start)
		start = start.Add(16 * time.Millisecond)
	}
	return start
}

func TestSeaGameCullsAfterDiscovery(t *testing.T) {
	g := createTestGame(t)
	now := runFrames(g, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), 20)

	if g.scheduler.State() != culling.StateRunning {
		t.Fatalf("Expected running, got %s", g.scheduler.State())
	}
	runFrames(g, now, 32)

	// observer at the origin touches the four inner tiles only
	if active := g.world.ActiveTileCount(); active != 4 {
		t.Errorf("Expected 4 active tiles, got %d", active)
	}
}

func TestSeaGameTransitReactivates(t *testing.T) {
	g := createTestGame(t)
	now := runFrames(g, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), 60)

	g.beginTransit()
	if !g.world.InTransit() || g.world.ActiveTileCount() != 16 {
		t.Fatalf("Transit should activate every tile, got %d", g.world.ActiveTileCount())
	}

	now = runFrames(g, now, transitFrames)
	if g.world.InTransit() {
		t.Errorf("Transit override should expire after %d frames", transitFrames)
	}
	runFrames(g, now, 32)
	if active := g.world.ActiveTileCount(); active != 4 {
		t.Errorf("Expected culling to resume after transit, got %d active", active)
	}
}

func TestSeaGameCycleScene(t *testing.T) {
	g := createTestGame(t)
	if g.world.CurrentScene() != "Sailing" {
		t.Fatalf("Expected start scene Sailing")
	}

	g.cycleScene()
	if g.world.CurrentScene() != "Harbour" {
		t.Errorf("Expected Harbour after Sailing, got %s", g.world.CurrentScene())
	}
	if g.scheduler.State() != culling.StateIdle {
		t.Errorf("Harbour is not the gameplay scene")
	}

	g.cycleScene()
	if g.scheduler.State() != culling.StateDiscovering {
		t.Errorf("Expected discovery after returning to Sailing, got %s", g.scheduler.State())
	}
}

func TestHudLinesReflectFlags(t *testing.T) {
	g := createTestGame(t)
	g.world.SetPaused(true)
	found := false
	for _, line := range g.hudLines() {
		if line == "[paused] " {
			found = true
		}
	}
	if !found {
		t.Errorf("Expected paused flag in HUD, got %v", g.hudLines())
	}
}

func TestViewportCentersObserver(t *testing.T) {
	vp := newViewport(mathutil.Vec2{X: 1000, Y: -500}, viewSpan(1500, 1500), 800, 600)

	x, y := vp.toScreen(mathutil.Vec2{X: 1000, Y: -500})
	if x != 400 || y != 300 {
		t.Errorf("Observer should map to screen center, got (%v,%v)", x, y)
	}
	if vp.scale != 600.0/7500.0 {
		t.Errorf("Expected scale from shorter edge, got %v", vp.scale)
	}
}

func TestClassifyTile(t *testing.T) {
	tracked := sea.NewNode("a", mathutil.Vec2{})
	untracked := sea.NewNode("b", mathutil.Vec2{})
	untracked.SetActive(false)
	set := map[culling.Entity]bool{tracked: true}

	if classifyTile(tracked, set) != tileActive {
		t.Errorf("Tracked active tile should be drawn active")
	}
	tracked.SetActive(false)
	if classifyTile(tracked, set) != tileCulled {
		t.Errorf("Tracked inactive tile should be drawn culled")
	}
	if classifyTile(untracked, set) != tileUntracked {
		t.Errorf("Untracked inactive tile should be drawn untracked")
	}
}
