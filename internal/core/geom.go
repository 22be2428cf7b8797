// Package core provides fundamental types shared by the gameplay logic and the
// platform layer: input edge tracking, containment boxes and the screen buffer.
// It has no dependency on Bubble Tea so game logic stays pure and testable.
package core

import "github.com/go-gl/mathgl/mgl32"

// Rect represents a 2D axis-aligned rectangle in screen cells.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Contains returns true if the point (x, y) is inside this rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Box3 is a closed axis-aligned box [Min, Max] in world units.
type Box3 struct {
	Min mgl32.Vec3
	Max mgl32.Vec3
}

// NewBox3 creates a box from its two corners.
func NewBox3(min, max mgl32.Vec3) Box3 {
	return Box3{Min: min, Max: max}
}

// Contains reports whether p lies inside the box. Points on a face are inside.
func (b Box3) Contains(p mgl32.Vec3) bool {
	for i := 0; i < 3; i++ {
		if p[i] < b.Min[i] || p[i] > b.Max[i] {
			return false
		}
	}
	return true
}

// Size returns the edge lengths of the box.
func (b Box3) Size() mgl32.Vec3 {
	return b.Max.Sub(b.Min)
}

// Reflect mirrors an out-of-bounds coordinate back across the violated face
// and flips the matching velocity component. Each axis is tested once against
// the minimum and once against the maximum, so a displacement larger than the
// box can still leave the point outside.
func (b Box3) Reflect(p, v mgl32.Vec3) (mgl32.Vec3, mgl32.Vec3) {
	for i := 0; i < 3; i++ {
		if p[i] < b.Min[i] {
			p[i] = 2*b.Min[i] - p[i]
			v[i] = -v[i]
		}
		if p[i] > b.Max[i] {
			p[i] = 2*b.Max[i] - p[i]
			v[i] = -v[i]
		}
	}
	return p, v
}

// Clamp pins each coordinate of p into the box.
func (b Box3) Clamp(p mgl32.Vec3) mgl32.Vec3 {
	for i := 0; i < 3; i++ {
		p[i] = ClampF(p[i], b.Min[i], b.Max[i])
	}
	return p
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// ClampF restricts a float32 value to be within [min, max].
func ClampF(val, min, max float32) float32 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
