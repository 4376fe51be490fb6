package mathutil

// Vec2 is a world-space 2D coordinate (search: vec-math).
type Vec2 struct {
	X, Y float64
}

// Add returns v + o (search: vec-math).
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub returns v - o (search: vec-math).
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{X: v.X - o.X, Y: v.Y - o.Y}
}

// DistSqr returns the squared Euclidean distance between a and b.
// No square root is taken; callers compare against a squared radius.
func DistSqr(a, b Vec2) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return dx*dx + dy*dy
}
