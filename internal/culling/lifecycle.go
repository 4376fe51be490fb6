package culling

import (
	"io"
	"log"
	"sync"

	"seacull/internal/config"
)

// Controller connects host scene transitions to the scheduler. Every
// scene-loaded notification cancels the current run; only the gameplay scene
// starts a new discovery.
type Controller struct {
	host          SceneHost
	scheduler     *Scheduler
	gameplayScene string
	logger        *log.Logger

	mu          sync.Mutex
	unsubscribe func()
}

// NewController creates a controller. Call Attach to start listening.
func NewController(host SceneHost, scheduler *Scheduler, names config.SceneConfig, logger *log.Logger) *Controller {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Controller{
		host:          host,
		scheduler:     scheduler,
		gameplayScene: names.GameplayScene,
		logger:        logger,
	}
}

// Attach subscribes to scene-loaded notifications. Calling it twice is a no-op.
func (c *Controller) Attach() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.unsubscribe != nil {
		return
	}
	c.unsubscribe = c.host.SubscribeSceneLoaded(c.HandleSceneLoaded)
}

// Close unsubscribes and stops culling. Tiles keep their last applied state.
func (c *Controller) Close() {
	c.mu.Lock()
	unsubscribe := c.unsubscribe
	c.unsubscribe = nil
	c.mu.Unlock()

	if unsubscribe != nil {
		unsubscribe()
	}
	c.scheduler.Stop()
}

// HandleSceneLoaded reacts to one scene transition
func (c *Controller) HandleSceneLoaded(ev SceneEvent) {
	c.scheduler.Stop()

	if ev.Scene != c.gameplayScene {
		return
	}
	if c.scheduler.Start() {
		c.logger.Printf("entered %s (%s load), discovering tiles", ev.Scene, ev.Mode)
	} else {
		c.logger.Printf("entered %s, culling disabled", ev.Scene)
	}
}

// OnTransitTrigger is called by the host when the observer enters a trigger
// that may move it somewhere else. Every tracked tile is activated at once so
// the destination is never suspended.
func (c *Controller) OnTransitTrigger() int {
	return c.scheduler.ForceActivateAll()
}
