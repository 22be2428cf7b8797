package game

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/vovakirdan/wingchase/internal/core"
	"github.com/vovakirdan/wingchase/internal/scene"
)

// Body moves a scene node at constant velocity and bounces it off the walls of Bounds.
type Body struct {
	Node     *scene.Transform
	Velocity mgl32.Vec3
	// Gravity is added to Velocity.Z() per second before integration.
	Gravity float32
	Bounds  core.Box3
}

// Advance integrates one explicit Euler step and reflects out-of-bounds axes.
// Only one reflection per wall per step: a step longer than the box tunnels.
func (b *Body) Advance(dt float32) {
	if b.Gravity != 0 {
		b.Velocity[2] += b.Gravity * dt
	}
	p := b.Node.Position.Add(b.Velocity.Mul(dt))
	b.Node.Position, b.Velocity = b.Bounds.Reflect(p, b.Velocity)
}

// Position returns the node's position.
func (b *Body) Position() mgl32.Vec3 {
	return b.Node.Position
}
