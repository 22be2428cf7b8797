package game

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/vovakirdan/wingchase/internal/scene"
)

func newTestOscillator() (*Oscillator, *scene.Transform, *scene.Transform) {
	left := scene.NewTransform("LeftAnkle")
	right := scene.NewTransform("RightAnkle")
	base := mgl32.QuatRotate(mgl32.DegToRad(20), mgl32.Vec3{0, 0, 1})
	left.Rotation = base
	right.Rotation = base
	return NewOscillator(left, right, 2, 30), left, right
}

func TestOscillatorPeriod(t *testing.T) {
	o, _, _ := newTestOscillator()

	o.Advance(0.13)
	before := o.Phase()
	o.Advance(0.5)

	if !mgl32.FloatEqualThreshold(o.Phase(), before, 1e-5) {
		t.Errorf("Phase() after one period = %v, expected %v", o.Phase(), before)
	}
}

func TestOscillatorPhaseStaysInRange(t *testing.T) {
	o, _, _ := newTestOscillator()

	for i := 0; i < 10000; i++ {
		o.Advance(0.0371)
		if p := o.Phase(); p < 0 || p >= 1 {
			t.Fatalf("step %d: Phase() = %v, expected [0, 1)", i, p)
		}
	}
}

func TestOscillatorZeroAtHalfPeriods(t *testing.T) {
	o, left, right := newTestOscillator()
	base := left.Rotation

	o.Advance(0.25) // phase 0.5
	if !mgl32.FloatEqualThreshold(o.Phase(), 0.5, 1e-6) {
		t.Fatalf("Phase() = %v, expected 0.5", o.Phase())
	}
	if !mgl32.FloatEqualThreshold(o.Angle(), 0, 1e-4) {
		t.Errorf("Angle() at phase 0.5 = %v, expected 0", o.Angle())
	}
	if !left.Rotation.ApproxEqualThreshold(base, 1e-5) || !right.Rotation.ApproxEqualThreshold(base, 1e-5) {
		t.Error("ankles should be at rest at phase 0.5")
	}
}

func TestOscillatorOpposesAnkles(t *testing.T) {
	o, left, right := newTestOscillator()
	base := left.Rotation

	o.Advance(0.125) // phase 0.25, peak
	if !mgl32.FloatEqualThreshold(o.Angle(), 30, 1e-3) {
		t.Errorf("Angle() at peak = %v, expected 30", o.Angle())
	}

	x := mgl32.Vec3{1, 0, 0}
	wantLeft := base.Mul(mgl32.QuatRotate(mgl32.DegToRad(30), x))
	wantRight := base.Mul(mgl32.QuatRotate(mgl32.DegToRad(-30), x))
	if !left.Rotation.ApproxEqualThreshold(wantLeft, 1e-4) {
		t.Errorf("left = %v, expected %v", left.Rotation, wantLeft)
	}
	if !right.Rotation.ApproxEqualThreshold(wantRight, 1e-4) {
		t.Errorf("right = %v, expected %v", right.Rotation, wantRight)
	}

	// Odd about the half period: phase 0.75 mirrors phase 0.25.
	o.Advance(0.25)
	if !mgl32.FloatEqualThreshold(o.Angle(), -30, 1e-3) {
		t.Errorf("Angle() at phase 0.75 = %v, expected -30", o.Angle())
	}
}
