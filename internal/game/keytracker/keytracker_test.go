package keytracker

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

func TestJustPressedFiresOncePerHold(t *testing.T) {
	down := map[ebiten.Key]bool{}
	tr := NewWithSource(func(k ebiten.Key) bool { return down[k] })

	if tr.JustPressed(ebiten.KeyP) {
		t.Fatal("Released key should not fire")
	}
	down[ebiten.KeyP] = true
	if !tr.JustPressed(ebiten.KeyP) {
		t.Fatal("Expected edge on first pressed frame")
	}
	if tr.JustPressed(ebiten.KeyP) {
		t.Error("Held key should not fire again")
	}
	down[ebiten.KeyP] = false
	tr.JustPressed(ebiten.KeyP)
	down[ebiten.KeyP] = true
	if !tr.JustPressed(ebiten.KeyP) {
		t.Error("Expected edge after release and press")
	}
}

func TestKeysAreTrackedIndependently(t *testing.T) {
	down := map[ebiten.Key]bool{ebiten.KeyT: true}
	tr := NewWithSource(func(k ebiten.Key) bool { return down[k] })

	if !tr.JustPressed(ebiten.KeyT) {
		t.Fatal("Expected T edge")
	}
	down[ebiten.KeyR] = true
	if !tr.JustPressed(ebiten.KeyR) {
		t.Error("R edge should not depend on T state")
	}
}
