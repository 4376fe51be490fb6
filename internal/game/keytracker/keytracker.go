// Package keytracker reports key press edges for host toggles such as pause
// and transit, where a held key must fire once.
package keytracker

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Tracker remembers the previous pressed state of every key it is asked about.
// Each tracked key must be queried once per frame for the edges to be exact.
type Tracker struct {
	prev    map[ebiten.Key]bool
	pressed func(ebiten.Key) bool
}

// New creates a tracker reading live ebiten key state
func New() *Tracker {
	return NewWithSource(ebiten.IsKeyPressed)
}

// NewWithSource creates a tracker reading key state from pressed
func NewWithSource(pressed func(ebiten.Key) bool) *Tracker {
	return &Tracker{
		prev:    make(map[ebiten.Key]bool),
		pressed: pressed,
	}
}

// JustPressed returns true if key was not pressed last frame but is pressed this frame.
func (t *Tracker) JustPressed(key ebiten.Key) bool {
	pressed := t.pressed(key)
	justPressed := pressed && !t.prev[key]
	t.prev[key] = pressed
	return justPressed
}
