package culling

import "seacull/internal/mathutil"

// LoadMode mirrors how the host loaded a scene
type LoadMode int

const (
	LoadSingle LoadMode = iota
	LoadAdditive
)

func (m LoadMode) String() string {
	if m == LoadAdditive {
		return "additive"
	}
	return "single"
}

// SceneEvent is delivered by the host after a scene has loaded
type SceneEvent struct {
	Scene string
	Mode  LoadMode
}

// Entity is a node of the host scene graph.
type Entity interface {
	Name() string
	Position() mathutil.Vec2
	Children() []Entity
	ActiveInHierarchy() bool
	ActiveSelf() bool
	// SetActive sets the node's own active flag. Writes are not free on
	// the host side, so callers skip them when nothing changes.
	SetActive(active bool)
	// Valid reports whether the node still exists in the loaded scene
	Valid() bool
}

// SceneHost is implemented by the integration layer that owns the scene graph.
type SceneHost interface {
	// SubscribeSceneLoaded registers fn for scene-loaded notifications and
	// returns a function that removes the subscription.
	SubscribeSceneLoaded(fn func(SceneEvent)) (unsubscribe func())
	// Find looks up a named entity in the loaded scene. A missing entity is
	// reported with ok == false, never as a failure.
	Find(name string) (e Entity, ok bool)
}
