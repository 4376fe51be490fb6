package culling

import (
	"errors"
	"io"
	"log"
	"sync"
	"time"

	"seacull/internal/config"
	"seacull/internal/mathutil"
	"seacull/internal/monitoring"
)

// State is the scheduler's lifecycle phase
type State int

const (
	// StateIdle: no gameplay scene loaded, or culling disabled
	StateIdle State = iota
	// StateDiscovering: polling for the tile container and observer
	StateDiscovering
	// StateRunning: steady-state culling, one tile per tick
	StateRunning
)

func (s State) String() string {
	switch s {
	case StateDiscovering:
		return "discovering"
	case StateRunning:
		return "running"
	default:
		return "idle"
	}
}

// SchedulerOptions carries optional collaborators
type SchedulerOptions struct {
	Monitor *monitoring.CullingMonitor
	Logger  *log.Logger
}

// Scheduler is the cooperative culling driver. The host calls Tick once per
// frame; each call performs at most one discovery poll or one tile decision,
// then returns control to the host.
//
// The tile list and each tile's Active flag are owned by the scheduler.
type Scheduler struct {
	mu sync.Mutex

	cfg      config.CullingConfig
	names    config.SceneConfig
	retry    time.Duration
	host     SceneHost
	gate     *OverrideGate
	registry *TileRegistry
	monitor  *monitoring.CullingMonitor
	logger   *log.Logger

	state    State
	observer Entity
	nextPoll time.Time

	// Pass cursor. The observer is sampled once when cursor is 0 and that
	// sample is used for every tile of the pass.
	cursor         int
	observerSample mathutil.Vec2
	pass           *monitoring.PassTimer
}

// NewScheduler creates an idle scheduler bound to host
func NewScheduler(cfg *config.Config, host SceneHost, gate *OverrideGate, opts SchedulerOptions) *Scheduler {
	monitor := opts.Monitor
	if monitor == nil {
		monitor = monitoring.NewCullingMonitor()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	return &Scheduler{
		cfg:      cfg.Culling,
		names:    cfg.Scene,
		retry:    cfg.GetDiscoveryRetry(),
		host:     host,
		gate:     gate,
		registry: NewTileRegistry(),
		monitor:  monitor,
		logger:   logger,
		state:    StateIdle,
	}
}

// Start enters Discovering for a freshly loaded gameplay scene. Any pass in
// flight is cancelled first. Returns false and stays Idle when culling is
// disabled by configuration.
func (s *Scheduler) Start() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cancelLocked()
	if !s.cfg.Enabled {
		return false
	}

	s.state = StateDiscovering
	// zero time: the first Tick polls immediately
	s.nextPoll = time.Time{}
	return true
}

// Stop cancels discovery or the running pass and drops every cached reference.
// Tiles keep whatever state was last applied.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancelLocked()
}

// Tick advances the state machine by one host frame
func (s *Scheduler) Tick(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.state {
	case StateDiscovering:
		if !s.pollLocked(now) {
			return
		}
		// discovery resolved: the first tile is evaluated in the same tick
		s.stepLocked()
	case StateRunning:
		s.stepLocked()
	}
}

// ForceActivateAll activates every tracked tile that is currently inactive,
// without waiting for the pass to reach it. Returns the number of host writes.
// The cached Active flag is authoritative since only the scheduler writes
// tile activation while a scene is tracked.
func (s *Scheduler) ForceActivateAll() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateRunning {
		return 0
	}
	writes := 0
	for _, tile := range s.registry.Tiles() {
		if tile.Entity == nil || !tile.Entity.Valid() {
			continue
		}
		if s.applyLocked(tile, true) {
			writes++
		}
	}
	return writes
}

// State returns the current phase
func (s *Scheduler) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Tiles returns a copy of the tracked tiles in registry order
func (s *Scheduler) Tiles() []Tile {
	s.mu.Lock()
	defer s.mu.Unlock()

	tiles := s.registry.Tiles()
	out := make([]Tile, len(tiles))
	for i, tile := range tiles {
		out[i] = *tile
	}
	return out
}

// Generation identifies the current registry snapshot
func (s *Scheduler) Generation() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.registry.Generation()
}

// Monitor returns the metrics sink
func (s *Scheduler) Monitor() *monitoring.CullingMonitor {
	return s.monitor
}

// pollLocked runs one discovery attempt if the retry delay has elapsed.
// Returns true when the scheduler moved to Running.
func (s *Scheduler) pollLocked(now time.Time) bool {
	if now.Before(s.nextPoll) {
		return false
	}

	observer, err := s.registry.Rebuild(s.host, s.names)
	if err != nil {
		if !errors.Is(err, ErrNotReady) {
			s.logger.Printf("discovery failed: %v", err)
		}
		s.monitor.RecordDiscoveryPoll(false)
		s.nextPoll = now.Add(s.retry)
		return false
	}

	s.monitor.RecordDiscoveryPoll(true)
	s.monitor.SetTrackedTiles(s.registry.Len())
	s.observer = observer
	s.cursor = 0
	s.state = StateRunning
	s.logger.Printf("discovered %d tiles under %q", s.registry.Len(), s.names.TileContainer)
	return true
}

// stepLocked evaluates the tile under the cursor and advances it.
// Lost resources end the run silently; the next scene load restarts discovery.
func (s *Scheduler) stepLocked() {
	tiles := s.registry.Tiles()
	if len(tiles) == 0 || s.observer == nil || !s.observer.Valid() {
		s.abandonLocked()
		return
	}
	if s.cursor >= len(tiles) {
		s.cursor = 0
	}

	if s.cursor == 0 {
		s.observerSample = s.observer.Position()
		s.pass = s.monitor.StartPass()
	}

	tile := tiles[s.cursor]
	if tile.Entity == nil || !tile.Entity.Valid() {
		s.abandonLocked()
		return
	}

	decision := Decide(tile, s.observerSample, s.cfg, s.gate.Flags())
	s.monitor.RecordEvaluation()
	s.applyLocked(tile, decision)
	s.pass.Tick()

	s.cursor++
	if s.cursor == len(tiles) {
		s.pass.EndPass()
		s.pass = nil
		s.cursor = 0
	}
}

// applyLocked writes decision to the host only when it differs from the cached flag
func (s *Scheduler) applyLocked(tile *Tile, decision bool) bool {
	if tile.Active == decision {
		return false
	}
	tile.Entity.SetActive(decision)
	tile.Active = decision
	s.monitor.RecordWrite(decision)
	return true
}

func (s *Scheduler) cancelLocked() {
	if s.state != StateIdle {
		s.monitor.RecordCancellation()
		s.logger.Printf("culling %s cancelled", s.state)
	}
	s.abandonLocked()
}

// abandonLocked returns to Idle and forgets the scene. The old tile slice is
// dropped with the registry generation, so nothing can mutate it afterwards.
func (s *Scheduler) abandonLocked() {
	s.state = StateIdle
	s.observer = nil
	s.cursor = 0
	s.pass = nil
	s.nextPoll = time.Time{}
	s.registry.Clear()
	s.monitor.SetTrackedTiles(0)
}
