package game

import (
	"math/rand"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/vovakirdan/wingchase/internal/core"
	"github.com/vovakirdan/wingchase/internal/scene"
)

var levelBox = core.NewBox3(mgl32.Vec3{-9, -9, 1}, mgl32.Vec3{9, 9, 19})

func newBody(pos, vel mgl32.Vec3, gravity float32) *Body {
	n := scene.NewTransform("body")
	n.Position = pos
	return &Body{Node: n, Velocity: vel, Gravity: gravity, Bounds: levelBox}
}

func TestBodyGravityScenario(t *testing.T) {
	b := newBody(mgl32.Vec3{0, 0, 2}, mgl32.Vec3{0, 0, -10}, -9.8)

	expected := []struct{ z, vz float32 }{
		{18.2, -19.8},
		{13.4, 29.6},
		{4.8, -19.8},
	}

	for i, want := range expected {
		b.Advance(1.0)
		if !mgl32.FloatEqualThreshold(b.Position().Z(), want.z, 1e-4) {
			t.Errorf("tick %d: z = %v, expected %v", i+1, b.Position().Z(), want.z)
		}
		if !mgl32.FloatEqualThreshold(b.Velocity.Z(), want.vz, 1e-4) {
			t.Errorf("tick %d: vz = %v, expected %v", i+1, b.Velocity.Z(), want.vz)
		}
	}
}

func TestBodyReflectsAtMax(t *testing.T) {
	const eps = 0.01
	b := newBody(mgl32.Vec3{9 - eps, 0, 10}, mgl32.Vec3{5, 0, 0}, 0)

	b.Advance(0.1)

	want := 2*float32(9) - (9 - eps + 0.5)
	if !mgl32.FloatEqualThreshold(b.Position().X(), want, 1e-5) {
		t.Errorf("x = %v, expected %v", b.Position().X(), want)
	}
	if b.Velocity.X() != -5 {
		t.Errorf("vx = %v, expected -5", b.Velocity.X())
	}
}

func TestBodyBoundaryIsInBounds(t *testing.T) {
	b := newBody(mgl32.Vec3{8, 0, 10}, mgl32.Vec3{1, 0, 0}, 0)

	b.Advance(1)

	if b.Position().X() != 9 || b.Velocity.X() != 1 {
		t.Errorf("landing exactly on the wall should not reflect, got x=%v vx=%v", b.Position().X(), b.Velocity.X())
	}
}

func TestBodyConstantVelocityWithoutGravity(t *testing.T) {
	b := newBody(mgl32.Vec3{0, 0, 10}, mgl32.Vec3{1, 2, 3}, 0)

	b.Advance(0.5)

	if !b.Position().ApproxEqual(mgl32.Vec3{0.5, 1, 11.5}) {
		t.Errorf("Position() = %v, expected (0.5, 1, 11.5)", b.Position())
	}
	if b.Velocity != (mgl32.Vec3{1, 2, 3}) {
		t.Errorf("Velocity = %v, should be unchanged", b.Velocity)
	}
}

func TestBodyContainment(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	bodies := []*Body{
		newBody(mgl32.Vec3{0, 4, 10}, mgl32.Vec3{7, 9, -15}, -9.8),
		newBody(mgl32.Vec3{-5, -5, 8}, mgl32.Vec3{6, -3, 8}, 0),
		newBody(mgl32.Vec3{5, 6, 12}, mgl32.Vec3{4, 2, 3}, 0),
	}

	for tick := 0; tick < 5000; tick++ {
		dt := rng.Float32() * 0.05
		for i, b := range bodies {
			b.Advance(dt)
			if !levelBox.Contains(b.Position()) {
				t.Fatalf("tick %d: body %d escaped to %v", tick, i, b.Position())
			}
		}
	}
}
