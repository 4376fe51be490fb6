package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"time"

	"seacull/internal/config"
	"seacull/internal/culling"
	"seacull/internal/mathutil"
	"seacull/internal/monitoring"
	"seacull/internal/sea"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/sync/errgroup"
)

const (
	frameInterval = 16 * time.Millisecond
	transitFrames = 90
	hudRows       = 3
)

var (
	styleDefault   = tcell.StyleDefault
	styleActive    = tcell.StyleDefault.Foreground(tcell.ColorSeaGreen)
	styleCulled    = tcell.StyleDefault.Foreground(tcell.ColorNavy)
	styleUntracked = tcell.StyleDefault.Foreground(tcell.ColorDimGray)
	styleObserver  = tcell.StyleDefault.Foreground(tcell.ColorGold).Bold(true)
	styleWarning   = tcell.StyleDefault.Foreground(tcell.ColorOrange)
)

// app is the terminal host: one goroutine pumps tcell events, another owns
// the world and the scheduler and runs the frame loop.
type app struct {
	cfg        *config.Config
	world      *sea.World
	scheduler  *culling.Scheduler
	controller *culling.Controller
	monitor    *monitoring.CullingMonitor
	screen     tcell.Screen
	logger     *log.Logger

	transitLeft int
	frame       uint64
}

func newApp(cfg *config.Config, world *sea.World, screen tcell.Screen, logger *log.Logger) *app {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	monitor := monitoring.NewCullingMonitor()
	scheduler := culling.NewScheduler(cfg, world, culling.NewOverrideGate(world), culling.SchedulerOptions{
		Monitor: monitor,
		Logger:  logger,
	})
	controller := culling.NewController(world, scheduler, cfg.Scene, logger)
	controller.Attach()

	return &app{
		cfg:        cfg,
		world:      world,
		scheduler:  scheduler,
		controller: controller,
		monitor:    monitor,
		screen:     screen,
		logger:     logger,
	}
}

// Run blocks until the user quits or ctx is cancelled
func (a *app) Run(ctx context.Context) error {
	if err := a.world.LoadScene(a.cfg.Sea.StartScene, culling.LoadSingle); err != nil {
		return fmt.Errorf("failed to load start scene: %w", err)
	}
	defer a.controller.Close()

	group, ctx := errgroup.WithContext(ctx)
	keys := make(chan *tcell.EventKey, 16)

	group.Go(func() error {
		return a.pumpEvents(ctx, keys)
	})
	group.Go(func() error {
		defer a.screen.PostEvent(tcell.NewEventInterrupt(nil)) // unblock PollEvent
		return a.frameLoop(ctx, keys)
	})
	return group.Wait()
}

func (a *app) pumpEvents(ctx context.Context, keys chan<- *tcell.EventKey) error {
	for {
		ev := a.screen.PollEvent()
		switch ev := ev.(type) {
		case nil, *tcell.EventInterrupt:
			return nil
		case *tcell.EventResize:
			a.screen.Sync()
		case *tcell.EventKey:
			select {
			case keys <- ev:
			case <-ctx.Done():
				return nil
			}
		}
	}
}

func (a *app) frameLoop(ctx context.Context, keys <-chan *tcell.EventKey) error {
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-keys:
			if quit := a.handleKey(ev); quit {
				return nil
			}
		case now := <-ticker.C:
			a.step(now)
			a.render()
		}
	}
}

func (a *app) step(now time.Time) {
	if a.transitLeft > 0 {
		a.transitLeft--
		if a.transitLeft == 0 {
			a.world.SetInTransit(false)
		}
	}
	a.world.Step()
	a.scheduler.Tick(now)
	a.frame++
}

// handleKey applies one key press. Returns true when the user asked to quit.
func (a *app) handleKey(ev *tcell.EventKey) bool {
	step := a.cfg.Sea.ObserverStep
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyUp:
		a.world.MoveObserver(0, -step)
	case tcell.KeyDown:
		a.world.MoveObserver(0, step)
	case tcell.KeyLeft:
		a.world.MoveObserver(-step, 0)
	case tcell.KeyRight:
		a.world.MoveObserver(step, 0)
	case tcell.KeyTab:
		a.cycleScene()
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			return true
		case 'p':
			a.world.SetPaused(!a.world.Paused())
		case 't':
			a.world.SetInTransit(true)
			a.transitLeft = transitFrames
			a.controller.OnTransitTrigger()
		case 'r':
			a.loadScene(a.world.CurrentScene())
		}
	}
	return false
}

func (a *app) cycleScene() {
	names := a.world.SceneNames()
	if len(names) == 0 {
		return
	}
	next := names[0]
	for i, name := range names {
		if name == a.world.CurrentScene() {
			next = names[(i+1)%len(names)]
			break
		}
	}
	a.loadScene(next)
}

func (a *app) loadScene(name string) {
	a.transitLeft = 0
	if err := a.world.LoadScene(name, culling.LoadSingle); err != nil {
		a.logger.Printf("Warning: %v", err)
	}
}

func (a *app) render() {
	a.screen.Clear()
	width, height := a.screen.Size()

	tracked := make(map[culling.Entity]bool)
	for _, tile := range a.scheduler.Tiles() {
		tracked[tile.Entity] = true
	}
	root, _ := a.world.Container()
	observer, hasObserver := a.world.ObserverPosition()

	// two terminal columns per tile keep cells roughly square
	view := buildGrid(root, tracked, a.world.TileSize(), observer, hasObserver,
		mathutil.IntMax(0, height-hudRows), mathutil.IntMax(0, width/2))
	for r, row := range view.cells {
		for c, kind := range row {
			glyph, style := cellGlyph(kind)
			a.screen.SetContent(c*2, r+hudRows, glyph, nil, style)
			a.screen.SetContent(c*2+1, r+hudRows, glyph, nil, style)
		}
	}

	m := a.monitor.GetCurrentMetrics()
	a.drawText(0, 0, styleDefault, fmt.Sprintf("scene %s  culling %s  tracked %d  passes %d  writes +%d/-%d  polls %d",
		a.world.CurrentScene(), a.scheduler.State(), m.TrackedTiles, m.PassesCompleted, m.Activations, m.Deactivations, m.DiscoveryPolls))
	status := "arrows move  p pause  t transit  r reload  tab scene  q quit"
	if a.world.Paused() {
		status = "[paused] " + status
	}
	if a.world.InTransit() {
		status = "[in transit] " + status
	}
	a.drawText(0, 1, styleDefault, status)
	if alerts := a.monitor.CheckAlerts(); len(alerts) > 0 {
		a.drawText(0, 2, styleWarning, alerts[0].Message)
	}

	a.screen.Show()
}

func (a *app) drawText(x, y int, style tcell.Style, text string) {
	for i, r := range []rune(text) {
		a.screen.SetContent(x+i, y, r, nil, style)
	}
}

func cellGlyph(kind cellKind) (rune, tcell.Style) {
	switch kind {
	case cellActive:
		return '█', styleActive
	case cellCulled:
		return '░', styleCulled
	case cellUntracked:
		return '·', styleUntracked
	case cellObserver:
		return '@', styleObserver
	default:
		return ' ', styleDefault
	}
}
