package main

import (
	"math"

	"seacull/internal/culling"
	"seacull/internal/mathutil"
	"seacull/internal/sea"
)

// cellKind is what one terminal cell shows
type cellKind int

const (
	cellEmpty cellKind = iota
	cellActive
	cellCulled
	cellUntracked
	cellObserver
)

// gridView is a window of tiles around the observer, one cell per tile
type gridView struct {
	rows, cols int
	cells      [][]cellKind
}

// buildGrid projects the tile container onto a rows x cols window centered on
// the observer's tile. Tiles outside the window are skipped.
func buildGrid(root *sea.Node, tracked map[culling.Entity]bool, tileSize float64, observer mathutil.Vec2, hasObserver bool, rows, cols int) gridView {
	view := gridView{rows: rows, cols: cols, cells: make([][]cellKind, rows)}
	for r := range view.cells {
		view.cells[r] = make([]cellKind, cols)
	}
	if rows <= 0 || cols <= 0 {
		return view
	}

	centerCol := int(math.Floor(observer.X / tileSize))
	centerRow := int(math.Floor(observer.Y / tileSize))
	originCol := centerCol - cols/2
	originRow := centerRow - rows/2

	if root != nil {
		for _, node := range root.ChildNodes() {
			pos := node.Position()
			c := int(math.Floor(pos.X/tileSize)) - originCol
			r := int(math.Floor(pos.Y/tileSize)) - originRow
			if r < 0 || r >= rows || c < 0 || c >= cols {
				continue
			}
			view.cells[r][c] = classify(node, tracked)
		}
	}

	if hasObserver {
		view.cells[centerRow-originRow][centerCol-originCol] = cellObserver
	}
	return view
}

func classify(node *sea.Node, tracked map[culling.Entity]bool) cellKind {
	switch {
	case node.ActiveSelf():
		return cellActive
	case tracked[node]:
		return cellCulled
	default:
		return cellUntracked
	}
}

// counts returns how many cells of each kind are visible
func (g gridView) counts() map[cellKind]int {
	out := make(map[cellKind]int)
	for _, row := range g.cells {
		for _, c := range row {
			out[c]++
		}
	}
	return out
}
