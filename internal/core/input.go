package core

// Direction is one of the four logical movement buttons.
type Direction int

const (
	DirNone  Direction = iota
	DirLeft            // A, Left arrow - strafe left
	DirRight           // D, Right arrow - strafe right
	DirUp              // W, Up arrow - walk forward
	DirDown            // S, Down arrow - walk backward
)

// String returns a human-readable name for the direction.
func (d Direction) String() string {
	switch d {
	case DirLeft:
		return "Left"
	case DirRight:
		return "Right"
	case DirUp:
		return "Up"
	case DirDown:
		return "Down"
	default:
		return "None"
	}
}

// Directions lists the four recognized directions in a stable order.
var Directions = [...]Direction{DirLeft, DirRight, DirUp, DirDown}

// Button tracks a single logical button.
// Downs counts press transitions since the last ConsumeAndReset; Pressed is the held state.
type Button struct {
	Downs   uint
	Pressed bool
}

// InputState holds the four direction buttons plus the look-mode flag.
// It is mutated by event handling and read/reset by the update tick.
type InputState struct {
	Left, Right, Up, Down Button

	looking bool
}

// Button returns the button for a direction, or nil for an unrecognized one.
func (s *InputState) Button(d Direction) *Button {
	switch d {
	case DirLeft:
		return &s.Left
	case DirRight:
		return &s.Right
	case DirUp:
		return &s.Up
	case DirDown:
		return &s.Down
	}
	return nil
}

// KeyDown records a press transition for d.
// Unrecognized directions are ignored.
func (s *InputState) KeyDown(d Direction) {
	b := s.Button(d)
	if b == nil {
		return
	}
	b.Downs++
	b.Pressed = true
}

// KeyUp releases d. The press counter is left alone.
func (s *InputState) KeyUp(d Direction) {
	b := s.Button(d)
	if b == nil {
		return
	}
	b.Pressed = false
}

// ConsumeAndReset zeroes every press counter. Held state survives.
func (s *InputState) ConsumeAndReset() {
	s.Left.Downs = 0
	s.Right.Downs = 0
	s.Up.Downs = 0
	s.Down.Downs = 0
}

// Axis combines an opposing pair into -1, 0 or +1.
// Holding both (or neither) yields 0.
func Axis(neg, pos Button) float32 {
	switch {
	case neg.Pressed && !pos.Pressed:
		return -1
	case pos.Pressed && !neg.Pressed:
		return 1
	default:
		return 0
	}
}

// Looking reports whether pointer motion is currently routed to the camera.
func (s *InputState) Looking() bool {
	return s.looking
}

// PointerDown enters look mode. It returns false when look mode was already active,
// in which case the press is not consumed.
func (s *InputState) PointerDown() bool {
	if s.looking {
		return false
	}
	s.looking = true
	return true
}

// CancelLook leaves look mode.
func (s *InputState) CancelLook() {
	s.looking = false
}

// EventKind identifies a raw input event delivered by the platform.
type EventKind int

const (
	EventNone EventKind = iota
	EventKeyDown
	EventKeyUp
	EventPointerDown
	EventPointerMotion
	EventCancel
)

// Event is a platform-independent input event.
// DX/DY carry relative pointer motion in window units (pixels or terminal cells);
// positive DY points down the window.
type Event struct {
	Kind      EventKind
	Direction Direction
	DX, DY    float32
}

// KeyDownEvent is shorthand for a key press event.
func KeyDownEvent(d Direction) Event {
	return Event{Kind: EventKeyDown, Direction: d}
}

// KeyUpEvent is shorthand for a key release event.
func KeyUpEvent(d Direction) Event {
	return Event{Kind: EventKeyUp, Direction: d}
}

// MotionEvent is shorthand for a relative pointer motion event.
func MotionEvent(dx, dy float32) Event {
	return Event{Kind: EventPointerMotion, DX: dx, DY: dy}
}
