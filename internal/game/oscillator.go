package game

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/vovakirdan/wingchase/internal/scene"
)

// Oscillator swings two ankle joints in opposition about their local X axes.
type Oscillator struct {
	Rate      float32 // cycles per second
	Amplitude float32 // degrees

	wobble    float32
	left      *scene.Transform
	right     *scene.Transform
	leftBase  mgl32.Quat
	rightBase mgl32.Quat
}

// NewOscillator captures the current ankle rotations as the rest pose.
func NewOscillator(left, right *scene.Transform, rate, amplitude float32) *Oscillator {
	return &Oscillator{
		Rate:      rate,
		Amplitude: amplitude,
		left:      left,
		right:     right,
		leftBase:  left.Rotation,
		rightBase: right.Rotation,
	}
}

// Advance moves the phase and re-poses both ankles.
func (o *Oscillator) Advance(dt float32) {
	w := o.wobble + dt*o.Rate
	w -= float32(math.Floor(float64(w)))
	if w >= 1 {
		w = 0
	}
	o.wobble = w
	o.pose()
}

// Phase returns the current phase in [0, 1).
func (o *Oscillator) Phase() float32 {
	return o.wobble
}

// Angle returns the left ankle offset in degrees. The right ankle uses the negation.
func (o *Oscillator) Angle() float32 {
	return o.Amplitude * float32(math.Sin(2*math.Pi*float64(o.wobble)))
}

func (o *Oscillator) pose() {
	a := mgl32.DegToRad(o.Angle())
	x := mgl32.Vec3{1, 0, 0}
	o.left.Rotation = o.leftBase.Mul(mgl32.QuatRotate(a, x))
	o.right.Rotation = o.rightBase.Mul(mgl32.QuatRotate(-a, x))
}
