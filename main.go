package main

import (
	"log"
	"os"

	"seacull/internal/config"
	"seacull/internal/game"
	"seacull/internal/sea"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	// Load configuration; a missing file leaves culling disabled
	cfg := config.MustLoadConfig("config.yaml")
	logger := log.New(os.Stderr, "[seacull] ", log.LstdFlags)

	// Load the scene layouts the sea host plays back
	world := sea.NewWorld(cfg)
	if err := world.LoadLayouts(cfg.Sea.LayoutFile); err != nil {
		log.Fatalf("Failed to load scene layouts: %v", err)
	}
	if !cfg.Culling.Enabled {
		log.Printf("Warning: culling disabled, tiles will stay as the scene loads them")
	}

	g := game.NewSeaGame(cfg, world, logger)
	if err := g.Start(); err != nil {
		log.Fatal(err)
	}

	// Set window properties from config
	ebiten.SetWindowSize(cfg.GetScreenWidth(), cfg.GetScreenHeight())
	ebiten.SetWindowTitle(cfg.Display.WindowTitle)
	if cfg.Display.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}

	err := ebiten.RunGame(g)
	g.Close()
	if err != nil {
		log.Fatal(err)
	}
}
