package sea

import (
	"fmt"
	"sort"
	"sync"

	"seacull/internal/config"
	"seacull/internal/culling"
	"seacull/internal/mathutil"
)

// World is an in-memory scene host. It loads named scene layouts, populates
// them a configurable number of frames after the load notification, and
// exposes the pause and transit signals the culler reads as overrides.
//
// Node state is driven from the host's frame goroutine; the mutex guards the
// entity and subscriber tables.
type World struct {
	mu       sync.RWMutex
	config   *config.Config
	tileSize float64

	Layouts      map[string]*SceneLayout
	currentScene string
	entities     map[string]*Node
	pending      *SceneLayout
	readyIn      int

	subscribers map[int]func(culling.SceneEvent)
	nextSubID   int

	paused    bool
	inTransit bool
}

// NewWorld creates an empty world with no scene loaded
func NewWorld(cfg *config.Config) *World {
	return &World{
		config:      cfg,
		tileSize:    cfg.GetTileSize(),
		Layouts:     make(map[string]*SceneLayout),
		entities:    make(map[string]*Node),
		subscribers: make(map[int]func(culling.SceneEvent)),
	}
}

// LoadLayouts reads scene layouts from a YAML file and adds them to the world
func (w *World) LoadLayouts(filename string) error {
	layouts, err := LoadLayouts(filename)
	if err != nil {
		return err
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	for name, layout := range layouts {
		w.Layouts[name] = layout
	}
	return nil
}

// AddLayout registers a single layout
func (w *World) AddLayout(layout SceneLayout) {
	w.mu.Lock()
	defer w.mu.Unlock()
	layoutCopy := layout
	w.Layouts[layout.Name] = &layoutCopy
}

// LoadScene switches to the named scene and notifies subscribers. A single
// load destroys every entity of the previous scene; an additive load keeps them.
func (w *World) LoadScene(name string, mode culling.LoadMode) error {
	w.mu.Lock()
	layout, exists := w.Layouts[name]
	if !exists {
		w.mu.Unlock()
		return fmt.Errorf("scene not defined: %s", name)
	}

	if mode == culling.LoadSingle {
		for _, n := range w.entities {
			n.destroy()
		}
		w.entities = make(map[string]*Node)
		w.paused = false
		w.inTransit = false
	}
	w.currentScene = name
	w.pending = layout
	w.readyIn = layout.ReadyAfterTicks
	if w.readyIn == 0 {
		w.populateLocked()
	}

	subscribers := w.snapshotSubscribersLocked()
	w.mu.Unlock()

	ev := culling.SceneEvent{Scene: name, Mode: mode}
	for _, fn := range subscribers {
		fn(ev)
	}
	return nil
}

// Step advances the host by one frame, finishing a pending scene load when due
func (w *World) Step() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.pending == nil {
		return
	}
	w.readyIn--
	if w.readyIn <= 0 {
		w.populateLocked()
	}
}

// Ready reports whether the current scene has finished populating
func (w *World) Ready() bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.pending == nil
}

func (w *World) populateLocked() {
	layout := w.pending
	w.pending = nil
	w.readyIn = 0

	names := w.config.Scene
	if layout.Sea != nil {
		root := NewNode(names.TileContainer, mathutil.Vec2{X: layout.Sea.Origin[0], Y: layout.Sea.Origin[1]})
		for row := 0; row < layout.Sea.Rows; row++ {
			for col := 0; col < layout.Sea.Cols; col++ {
				tile := NewNode(fmt.Sprintf("tile_%d_%d", row, col), layout.Sea.anchor(row, col, w.tileSize))
				if layout.Sea.isDisabled(row, col) {
					tile.activeSelf = false
				}
				root.AddChild(tile)
			}
		}
		w.entities[names.TileContainer] = root
	}
	if layout.Observer {
		spawn := mathutil.Vec2{X: layout.ObserverSpawn[0], Y: layout.ObserverSpawn[1]}
		w.entities[names.Observer] = NewNode(names.Observer, spawn)
	}
}

// Find implements culling.SceneHost
func (w *World) Find(name string) (culling.Entity, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	n, ok := w.entities[name]
	if !ok || n.destroyed {
		return nil, false
	}
	return n, true
}

// SubscribeSceneLoaded implements culling.SceneHost
func (w *World) SubscribeSceneLoaded(fn func(culling.SceneEvent)) func() {
	w.mu.Lock()
	defer w.mu.Unlock()
	id := w.nextSubID
	w.nextSubID++
	w.subscribers[id] = fn

	return func() {
		w.mu.Lock()
		defer w.mu.Unlock()
		delete(w.subscribers, id)
	}
}

// SubscriberCount returns the number of active scene-loaded subscriptions
func (w *World) SubscriberCount() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.subscribers)
}

func (w *World) snapshotSubscribersLocked() []func(culling.SceneEvent) {
	ids := make([]int, 0, len(w.subscribers))
	for id := range w.subscribers {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	out := make([]func(culling.SceneEvent), len(ids))
	for i, id := range ids {
		out[i] = w.subscribers[id]
	}
	return out
}

// DestroyEntity removes a named entity and its subtree, as a scene teardown would
func (w *World) DestroyEntity(name string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	n, ok := w.entities[name]
	if !ok {
		return false
	}
	n.destroy()
	delete(w.entities, name)
	return true
}

// MoveObserver shifts the observer by (dx, dy). Returns false when there is no observer.
func (w *World) MoveObserver(dx, dy float64) bool {
	w.mu.RLock()
	boat, ok := w.entities[w.config.Scene.Observer]
	w.mu.RUnlock()
	if !ok {
		return false
	}
	boat.SetPosition(boat.Position().Add(mathutil.Vec2{X: dx, Y: dy}))
	return true
}

// ObserverPosition returns the observer's position if it exists
func (w *World) ObserverPosition() (mathutil.Vec2, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	boat, ok := w.entities[w.config.Scene.Observer]
	if !ok {
		return mathutil.Vec2{}, false
	}
	return boat.Position(), true
}

// Container returns the tile container node, including inactive children
func (w *World) Container() (*Node, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	root, ok := w.entities[w.config.Scene.TileContainer]
	return root, ok
}

// TotalWrites sums the activation writes received by every tile
func (w *World) TotalWrites() int {
	root, ok := w.Container()
	if !ok {
		return 0
	}
	total := 0
	for _, tile := range root.ChildNodes() {
		total += tile.Writes()
	}
	return total
}

// ActiveTileCount returns how many tiles are currently active
func (w *World) ActiveTileCount() int {
	root, ok := w.Container()
	if !ok {
		return 0
	}
	count := 0
	for _, tile := range root.ChildNodes() {
		if tile.ActiveSelf() {
			count++
		}
	}
	return count
}

// CurrentScene returns the name of the last loaded scene
func (w *World) CurrentScene() string {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.currentScene
}

// SceneNames returns all defined scene names in a stable order
func (w *World) SceneNames() []string {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return SortedSceneNames(w.Layouts)
}

// TileSize returns the edge length of one tile
func (w *World) TileSize() float64 {
	return w.tileSize
}

// Paused implements culling.OverrideSource
func (w *World) Paused() bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.paused
}

// InTransit implements culling.OverrideSource
func (w *World) InTransit() bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.inTransit
}

// SetPaused raises or clears the host pause signal
func (w *World) SetPaused(paused bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.paused = paused
}

// SetInTransit raises or clears the transit signal
func (w *World) SetInTransit(inTransit bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.inTransit = inTransit
}
