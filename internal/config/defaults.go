package config

import (
	"time"

	"github.com/go-gl/mathgl/mgl32"
)

// Default returns the built-in tuning of the classic level.
// It is the last fallback when no YAML can be read.
func Default() Level {
	return Level{
		Bounds: BoundsConfig{
			Min: mgl32.Vec3{-9, -9, 1},
			Max: mgl32.Vec3{9, 9, 19},
		},
		Hazards: []BodyConfig{
			{Node: "Sphere", Velocity: mgl32.Vec3{7, 9, -15}, Gravity: -9.8},
			{Node: "Sphere1", Velocity: mgl32.Vec3{6, -3, 8}},
		},
		Goal: BodyConfig{Node: "Target", Velocity: mgl32.Vec3{4, 2, 3}},
		Camera: CameraConfig{
			Speed:           30,
			LookSensitivity: 1,
		},
		Oscillator: OscillatorConfig{
			Rate:       2,
			Amplitude:  30,
			LeftAnkle:  "LeftAnkle",
			RightAnkle: "RightAnkle",
		},
		Rules: RulesConfig{
			WinRadius:  1.0,
			LoseRadius: 1.5,
		},
		Audio: AudioConfig{
			BGMVolume:    1,
			CueVolume:    1,
			ListenerRamp: 1.0 / 60.0,
		},
		Messages: MessagesConfig{
			Prompt: "Balls = Death, Wings = Success!",
			Win:    "You win!",
			Lose:   "You lose!",
		},
		Keys: DefaultKeys(),
		Platform: PlatformConfig{
			RepeatDelay: 550 * time.Millisecond,
			HoldTimeout: 150 * time.Millisecond,
			MaxStep:     100 * time.Millisecond,
		},
	}
}

// DefaultKeys returns the fixed WASD/arrow scheme.
func DefaultKeys() KeysConfig {
	return KeysConfig{
		Left:   []string{"a", "left"},
		Right:  []string{"d", "right"},
		Up:     []string{"w", "up"},
		Down:   []string{"s", "down"},
		Cancel: []string{"esc"},
		Quit:   []string{"ctrl+c", "q"},
	}
}
