// Package config provides YAML-based level tuning and difficulty presets.
package config

import (
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/vovakirdan/wingchase/internal/core"
)

// Level contains all tuning for one playable level.
type Level struct {
	Bounds     BoundsConfig     `yaml:"bounds"`
	Hazards    []BodyConfig     `yaml:"hazards"`
	Goal       BodyConfig       `yaml:"goal"`
	Camera     CameraConfig     `yaml:"camera"`
	Oscillator OscillatorConfig `yaml:"oscillator"`
	Rules      RulesConfig      `yaml:"rules"`
	Audio      AudioConfig      `yaml:"audio"`
	Messages   MessagesConfig   `yaml:"messages"`
	Keys       KeysConfig       `yaml:"keys"`
	Platform   PlatformConfig   `yaml:"platform"`
}

// BoundsConfig is the containment box shared by every body and the camera.
type BoundsConfig struct {
	Min mgl32.Vec3 `yaml:"min"`
	Max mgl32.Vec3 `yaml:"max"`
}

// Box converts the bounds to a core.Box3.
func (b BoundsConfig) Box() core.Box3 {
	return core.NewBox3(b.Min, b.Max)
}

// BodyConfig binds a scene node to an initial velocity.
// A non-zero Gravity is added to the velocity's Z component every tick.
type BodyConfig struct {
	Node     string     `yaml:"node"`
	Velocity mgl32.Vec3 `yaml:"velocity"`
	Gravity  float32    `yaml:"gravity,omitempty"`
}

// CameraConfig defines first-person locomotion.
type CameraConfig struct {
	Speed           float32 `yaml:"speed"`            // units per second
	LookSensitivity float32 `yaml:"look_sensitivity"` // multiplier on fovy-scaled pointer motion
}

// OscillatorConfig defines the ankle wobble.
type OscillatorConfig struct {
	Rate       float32 `yaml:"rate"`      // phase cycles per second
	Amplitude  float32 `yaml:"amplitude"` // degrees
	LeftAnkle  string  `yaml:"left_ankle"`
	RightAnkle string  `yaml:"right_ankle"`
}

// RulesConfig defines the proximity thresholds.
type RulesConfig struct {
	WinRadius  float32 `yaml:"win_radius"`
	LoseRadius float32 `yaml:"lose_radius"`
}

// AudioConfig lists sample paths and mix levels. Empty paths use built-in tones.
type AudioConfig struct {
	BGM          string  `yaml:"bgm"`
	Win          string  `yaml:"win"`
	Lose         string  `yaml:"lose"`
	BGMVolume    float32 `yaml:"bgm_volume"`
	CueVolume    float32 `yaml:"cue_volume"`
	CuePan       float32 `yaml:"cue_pan"`
	ListenerRamp float32 `yaml:"listener_ramp"`
}

// MessagesConfig holds the overlay strings.
type MessagesConfig struct {
	Prompt string `yaml:"prompt"`
	Win    string `yaml:"win"`
	Lose   string `yaml:"lose"`
}

// KeysConfig lists terminal key names per logical action.
type KeysConfig struct {
	Left   []string `yaml:"left"`
	Right  []string `yaml:"right"`
	Up     []string `yaml:"up"`
	Down   []string `yaml:"down"`
	Cancel []string `yaml:"cancel"`
	Quit   []string `yaml:"quit"`
}

// PlatformConfig tunes the terminal adapter.
type PlatformConfig struct {
	// Terminals report presses only. A direction is released when no repeat
	// arrives within RepeatDelay of the first press, or within HoldTimeout of
	// a later repeat.
	RepeatDelay time.Duration `yaml:"repeat_delay"`
	HoldTimeout time.Duration `yaml:"hold_timeout"`
	// MaxStep caps the measured frame time handed to the simulation.
	MaxStep time.Duration `yaml:"max_step"`
}

// GravityHazard returns the index of the hazard carrying gravity, or -1.
func (l Level) GravityHazard() int {
	for i, h := range l.Hazards {
		if h.Gravity != 0 {
			return i
		}
	}
	return -1
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParseDifficulty maps a CLI string to a preset. Unknown strings yield "".
func ParseDifficulty(s string) DifficultyPreset {
	switch DifficultyPreset(s) {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return DifficultyPreset(s)
	default:
		return ""
	}
}

// SpeedFactorForPreset returns the hazard velocity multiplier for a preset.
func SpeedFactorForPreset(preset DifficultyPreset) float32 {
	switch preset {
	case DifficultyEasy:
		return 0.75
	case DifficultyHard:
		return 1.5
	default:
		return 1.0
	}
}

// ApplyPreset scales hazard velocities. Gravity and the goal are left alone.
func ApplyPreset(cfg *Level, preset DifficultyPreset) {
	f := SpeedFactorForPreset(preset)
	if f == 1 {
		return
	}
	for i := range cfg.Hazards {
		cfg.Hazards[i].Velocity = cfg.Hazards[i].Velocity.Mul(f)
	}
}
