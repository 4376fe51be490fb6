package sea

import (
	"seacull/internal/culling"
	"seacull/internal/mathutil"
)

// Node is an in-memory scene-graph node implementing culling.Entity
type Node struct {
	name       string
	pos        mathutil.Vec2
	activeSelf bool
	destroyed  bool
	parent     *Node
	children   []*Node
	writes     int
}

// NewNode creates an active, parentless node
func NewNode(name string, pos mathutil.Vec2) *Node {
	return &Node{name: name, pos: pos, activeSelf: true}
}

// AddChild attaches child under n
func (n *Node) AddChild(child *Node) {
	child.parent = n
	n.children = append(n.children, child)
}

func (n *Node) Name() string {
	return n.name
}

func (n *Node) Position() mathutil.Vec2 {
	return n.pos
}

// SetPosition moves the node in world space
func (n *Node) SetPosition(pos mathutil.Vec2) {
	n.pos = pos
}

func (n *Node) Children() []culling.Entity {
	out := make([]culling.Entity, len(n.children))
	for i, c := range n.children {
		out[i] = c
	}
	return out
}

// ChildNodes returns the children without the interface conversion
func (n *Node) ChildNodes() []*Node {
	return n.children
}

func (n *Node) ActiveSelf() bool {
	return n.activeSelf
}

// ActiveInHierarchy is true when the node and all its ancestors are active
func (n *Node) ActiveInHierarchy() bool {
	for cur := n; cur != nil; cur = cur.parent {
		if !cur.activeSelf {
			return false
		}
	}
	return true
}

// SetActive changes the node's own flag. Same-value and destroyed writes are ignored.
func (n *Node) SetActive(active bool) {
	if n.destroyed || n.activeSelf == active {
		return
	}
	n.activeSelf = active
	n.writes++
}

func (n *Node) Valid() bool {
	return !n.destroyed
}

// Writes returns how many effective activation changes the node received
func (n *Node) Writes() int {
	return n.writes
}

func (n *Node) destroy() {
	n.destroyed = true
	for _, c := range n.children {
		c.destroy()
	}
}
