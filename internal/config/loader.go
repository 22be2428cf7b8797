package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Load loads the tuning for a level.
// Search order: customPath -> ~/.wingchase/configs/<id>.yaml -> ./configs/<id>.yaml -> embedded -> Default().
// Fields missing from a file keep their Default() values.
func Load(levelID, customPath string, embedded []byte) (Level, error) {
	filename := levelID + ".yaml"

	// Custom path errors are fatal: the user asked for that file.
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return Level{}, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		cfg, err := Parse(data)
		if err != nil {
			return Level{}, fmt.Errorf("config: %s: %w", customPath, err)
		}
		return cfg, nil
	}

	if userCfgPath := userConfigPath(filename); userCfgPath != "" {
		if cfg, ok := tryFile(userCfgPath); ok {
			return cfg, nil
		}
	}

	if cfg, ok := tryFile(filepath.Join("configs", filename)); ok {
		return cfg, nil
	}

	if len(embedded) > 0 {
		if cfg, err := Parse(embedded); err == nil {
			return cfg, nil
		}
	}
	return Default(), nil
}

// Parse decodes YAML on top of Default() and validates the result.
func Parse(data []byte) (Level, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Level{}, fmt.Errorf("failed to parse: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Level{}, err
	}
	return cfg, nil
}

func tryFile(path string) (Level, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Level{}, false
	}
	cfg, err := Parse(data)
	if err != nil {
		return Level{}, false
	}
	return cfg, true
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".wingchase", "configs", filename)
}

// Validate reports every inconsistent setting at once.
func (l Level) Validate() error {
	var errs []error

	for i := 0; i < 3; i++ {
		if l.Bounds.Min[i] >= l.Bounds.Max[i] {
			errs = append(errs, fmt.Errorf("bounds: min[%d]=%v must be below max[%d]=%v", i, l.Bounds.Min[i], i, l.Bounds.Max[i]))
		}
	}
	if len(l.Hazards) != 2 {
		errs = append(errs, fmt.Errorf("hazards: expected 2, got %d", len(l.Hazards)))
	}
	gravity := 0
	for i, h := range l.Hazards {
		if h.Node == "" {
			errs = append(errs, fmt.Errorf("hazards[%d]: node name is empty", i))
		}
		if h.Gravity != 0 {
			gravity++
		}
	}
	if gravity != 1 {
		errs = append(errs, fmt.Errorf("hazards: expected exactly one with gravity, got %d", gravity))
	}
	if l.Goal.Node == "" {
		errs = append(errs, errors.New("goal: node name is empty"))
	}
	if l.Goal.Gravity != 0 {
		errs = append(errs, errors.New("goal: gravity is not supported"))
	}
	if l.Camera.Speed <= 0 {
		errs = append(errs, fmt.Errorf("camera: speed %v must be positive", l.Camera.Speed))
	}
	if l.Oscillator.LeftAnkle == "" || l.Oscillator.RightAnkle == "" {
		errs = append(errs, errors.New("oscillator: ankle node names are required"))
	}
	if l.Oscillator.Rate <= 0 {
		errs = append(errs, fmt.Errorf("oscillator: rate %v must be positive", l.Oscillator.Rate))
	}
	if l.Rules.WinRadius <= 0 || l.Rules.LoseRadius <= 0 {
		errs = append(errs, errors.New("rules: radii must be positive"))
	}
	if l.Audio.CuePan < -1 || l.Audio.CuePan > 1 {
		errs = append(errs, fmt.Errorf("audio: cue_pan %v outside [-1, 1]", l.Audio.CuePan))
	}
	if l.Platform.HoldTimeout <= 0 || l.Platform.RepeatDelay <= 0 {
		errs = append(errs, errors.New("platform: hold_timeout and repeat_delay must be positive"))
	}
	if l.Platform.MaxStep <= 0 {
		errs = append(errs, errors.New("platform: max_step must be positive"))
	}

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid level config: %w", err)
	}
	return nil
}
