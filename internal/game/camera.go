package game

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/vovakirdan/wingchase/internal/audio"
	"github.com/vovakirdan/wingchase/internal/core"
	"github.com/vovakirdan/wingchase/internal/scene"
)

var worldUp = mgl32.Vec3{0, 0, 1}

// CameraController flies the scene camera from held directions and pointer look.
type CameraController struct {
	Camera      *scene.Camera
	Speed       float32 // units per second
	Sensitivity float32
	Bounds      core.Box3
}

// ApplyLook turns the camera. dx turns right, dy pitches up; both are scaled by
// scale and the vertical field of view. Yaw is about world up, pitch about the
// camera's own right axis.
func (c *CameraController) ApplyLook(dx, dy, scale float32) {
	t := c.Camera.Transform
	k := scale * c.Camera.FovY * c.Sensitivity
	yaw := mgl32.QuatRotate(-dx*k, worldUp)
	pitch := mgl32.QuatRotate(dy*k, mgl32.Vec3{1, 0, 0})
	t.Rotation = yaw.Mul(t.Rotation).Mul(pitch).Normalize()
}

// Advance moves the camera relative to where it looks, then clamps it into Bounds.
// Opposing held directions cancel; diagonals are normalized.
func (c *CameraController) Advance(dt float32, in *core.InputState) {
	t := c.Camera.Transform
	move := mgl32.Vec2{core.Axis(in.Left, in.Right), core.Axis(in.Down, in.Up)}
	if move.Len() != 0 {
		move = move.Normalize().Mul(c.Speed * dt)
		t.Position = t.Position.Add(t.Right().Mul(move.X())).Add(t.Forward().Mul(move.Y()))
	}
	t.Position = c.Bounds.Clamp(t.Position)
}

// Position returns the camera position.
func (c *CameraController) Position() mgl32.Vec3 {
	return c.Camera.Transform.Position
}

// SyncListener places the audio listener at the camera.
func (c *CameraController) SyncListener(sink audio.Sink, ramp float32) {
	t := c.Camera.Transform
	sink.SetListener(t.Position, t.Right(), ramp)
}
