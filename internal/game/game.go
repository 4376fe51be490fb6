package game

import (
	"fmt"
	"log"
	"time"

	"seacull/internal/config"
	"seacull/internal/culling"
	"seacull/internal/monitoring"
	"seacull/internal/sea"

	"github.com/hajimehoshi/ebiten/v2"
)

// transitFrames is how long the in-transit override stays up after a trigger
const transitFrames = 90

// SeaGame is the graphical host: it owns the sea world, forwards frames to
// the culling scheduler and draws a top-down view of tile activity.
type SeaGame struct {
	config     *config.Config
	world      *sea.World
	scheduler  *culling.Scheduler
	controller *culling.Controller
	monitor    *monitoring.CullingMonitor
	logger     *log.Logger

	input    *InputHandler
	renderer *Renderer

	transitLeft int
	showHelp    bool
	frame       uint64
	alerts      []monitoring.CullingAlert
}

// NewSeaGame wires the culling core to world and subscribes to its scene events
func NewSeaGame(cfg *config.Config, world *sea.World, logger *log.Logger) *SeaGame {
	monitor := monitoring.NewCullingMonitor()
	scheduler := culling.NewScheduler(cfg, world, culling.NewOverrideGate(world), culling.SchedulerOptions{
		Monitor: monitor,
		Logger:  logger,
	})
	controller := culling.NewController(world, scheduler, cfg.Scene, logger)
	controller.Attach()

	g := &SeaGame{
		config:     cfg,
		world:      world,
		scheduler:  scheduler,
		controller: controller,
		monitor:    monitor,
		logger:     logger,
		showHelp:   true,
	}
	g.input = NewInputHandler(g)
	g.renderer = NewRenderer(g)
	return g
}

// Start loads the configured start scene
func (g *SeaGame) Start() error {
	if err := g.world.LoadScene(g.config.Sea.StartScene, culling.LoadSingle); err != nil {
		return fmt.Errorf("failed to load start scene: %w", err)
	}
	return nil
}

// Close detaches the culler from the world
func (g *SeaGame) Close() {
	g.controller.Close()
}

// Update handles one frame: input, host step, then one culling tick
func (g *SeaGame) Update() error {
	if err := g.input.HandleInput(); err != nil {
		return err
	}

	g.step(time.Now())
	return nil
}

// step advances the host world and the culler by one frame
func (g *SeaGame) step(now time.Time) {
	g.updateTransit()
	g.world.Step()
	g.scheduler.Tick(now)
	g.frame++

	if g.frame%60 == 0 {
		g.checkAlerts()
	}
}

// Draw renders the sea and HUD
func (g *SeaGame) Draw(screen *ebiten.Image) {
	g.renderer.DrawSea(screen)
	g.renderer.DrawHUD(screen)
}

// Layout returns the screen dimensions
func (g *SeaGame) Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int) {
	return g.config.GetScreenWidth(), g.config.GetScreenHeight()
}

// beginTransit raises the in-transit override and reactivates every tile at once
func (g *SeaGame) beginTransit() {
	g.world.SetInTransit(true)
	g.transitLeft = transitFrames
	if n := g.controller.OnTransitTrigger(); n > 0 {
		g.logger.Printf("transit trigger reactivated %d tiles", n)
	}
}

func (g *SeaGame) updateTransit() {
	if g.transitLeft == 0 {
		return
	}
	g.transitLeft--
	if g.transitLeft == 0 {
		g.world.SetInTransit(false)
	}
}

// reloadScene re-enters the current scene, as dying at sea does
func (g *SeaGame) reloadScene() {
	g.loadScene(g.world.CurrentScene())
}

// cycleScene loads the next defined scene
func (g *SeaGame) cycleScene() {
	names := g.world.SceneNames()
	if len(names) == 0 {
		return
	}
	next := names[0]
	for i, name := range names {
		if name == g.world.CurrentScene() {
			next = names[(i+1)%len(names)]
			break
		}
	}
	g.loadScene(next)
}

func (g *SeaGame) loadScene(name string) {
	g.transitLeft = 0
	if err := g.world.LoadScene(name, culling.LoadSingle); err != nil {
		g.logger.Printf("Warning: %v", err)
	}
}

func (g *SeaGame) checkAlerts() {
	g.alerts = g.monitor.CheckAlerts()
	for _, alert := range g.alerts {
		g.logger.Printf("alert %s: %s (%.0f >= %.0f)", alert.Type, alert.Message, alert.Value, alert.Threshold)
	}
}
