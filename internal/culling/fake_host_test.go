package culling

import (
	"seacull/internal/config"
	"seacull/internal/mathutil"
)

// fakeEntity is a minimal scene node. calls counts every SetActive, writes
// only the ones that changed state.
type fakeEntity struct {
	name     string
	pos      mathutil.Vec2
	active   bool
	parentOn bool
	children []Entity
	removed  bool
	writes   int
	calls    int
}

func newFakeEntity(name string, x, y float64) *fakeEntity {
	return &fakeEntity{name: name, pos: mathutil.Vec2{X: x, Y: y}, active: true, parentOn: true}
}

func (e *fakeEntity) Name() string            { return e.name }
func (e *fakeEntity) Position() mathutil.Vec2 { return e.pos }
func (e *fakeEntity) Children() []Entity      { return e.children }
func (e *fakeEntity) ActiveSelf() bool        { return e.active }
func (e *fakeEntity) ActiveInHierarchy() bool { return e.active && e.parentOn }
func (e *fakeEntity) Valid() bool             { return !e.removed }

func (e *fakeEntity) SetActive(active bool) {
	e.calls++
	if e.active == active {
		return
	}
	e.active = active
	e.writes++
}

// fakeHost is an in-memory SceneHost
type fakeHost struct {
	entities    map[string]Entity
	subscribers map[int]func(SceneEvent)
	nextID      int
	paused      bool
	inTransit   bool
}

func newFakeHost() *fakeHost {
	return &fakeHost{
		entities:    make(map[string]Entity),
		subscribers: make(map[int]func(SceneEvent)),
	}
}

func (h *fakeHost) Find(name string) (Entity, bool) {
	e, ok := h.entities[name]
	return e, ok
}

func (h *fakeHost) SubscribeSceneLoaded(fn func(SceneEvent)) func() {
	id := h.nextID
	h.nextID++
	h.subscribers[id] = fn
	return func() { delete(h.subscribers, id) }
}

func (h *fakeHost) emit(scene string) {
	for _, fn := range h.subscribers {
		fn(SceneEvent{Scene: scene, Mode: LoadSingle})
	}
}

func (h *fakeHost) Paused() bool    { return h.paused }
func (h *fakeHost) InTransit() bool { return h.inTransit }

// addSea registers a container with one child per anchor and returns the children
func (h *fakeHost) addSea(name string, anchors ...mathutil.Vec2) []*fakeEntity {
	root := newFakeEntity(name, 0, 0)
	tiles := make([]*fakeEntity, len(anchors))
	for i, a := range anchors {
		tiles[i] = newFakeEntity(name+"_tile", a.X, a.Y)
		root.children = append(root.children, tiles[i])
	}
	h.entities[name] = root
	return tiles
}

func (h *fakeHost) addObserver(name string, x, y float64) *fakeEntity {
	e := newFakeEntity(name, x, y)
	h.entities[name] = e
	return e
}

func testConfig(distance float64) *config.Config {
	cfg := config.Default()
	cfg.Culling.Enabled = true
	cfg.Culling.CullDistance = distance
	cfg.Culling.TileSize = 1500
	return cfg
}
