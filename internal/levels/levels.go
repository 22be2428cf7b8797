// Package levels registers the built-in levels and resolves a level ID plus
// optional override files into a ready scene and tuning.
package levels

import (
	_ "embed"
	"fmt"

	"github.com/vovakirdan/wingchase/internal/config"
	"github.com/vovakirdan/wingchase/internal/registry"
	"github.com/vovakirdan/wingchase/internal/scene"
)

// DefaultID is the level played when none is named.
const DefaultID = "boxsphere"

var (
	//go:embed boxsphere.scene.yaml
	boxsphereScene []byte
	//go:embed boxsphere.yaml
	boxsphereConfig []byte
	//go:embed courtyard.scene.yaml
	courtyardScene []byte
	//go:embed courtyard.yaml
	courtyardConfig []byte
)

func init() {
	registry.Register(registry.Level{
		ID:          "boxsphere",
		Title:       "Box & Spheres",
		Description: "Two bouncing balls, one winged target, one box.",
		Scene:       boxsphereScene,
		Config:      boxsphereConfig,
	})
	registry.Register(registry.Level{
		ID:          "courtyard",
		Title:       "Courtyard",
		Description: "A wider arena with faster balls and a jumpier bird.",
		Scene:       courtyardScene,
		Config:      courtyardConfig,
	})
}

// Options selects override files and a difficulty preset.
type Options struct {
	ScenePath  string // replaces the embedded scene
	ConfigPath string // replaces the config search order
	Difficulty config.DifficultyPreset
}

// Loaded is a resolved level. Scene is a template: clone it per session.
type Loaded struct {
	Info   registry.Level
	Scene  *scene.Scene
	Config config.Level
}

// Load resolves id with opts.
func Load(id string, opts Options) (*Loaded, error) {
	lvl, err := registry.Get(id)
	if err != nil {
		return nil, err
	}

	var sc *scene.Scene
	if opts.ScenePath != "" {
		sc, err = scene.Load(opts.ScenePath)
	} else {
		sc, err = scene.Parse(lvl.Scene)
	}
	if err != nil {
		return nil, fmt.Errorf("levels: %s: %w", id, err)
	}

	cfg, err := config.Load(id, opts.ConfigPath, lvl.Config)
	if err != nil {
		return nil, fmt.Errorf("levels: %s: %w", id, err)
	}
	config.ApplyPreset(&cfg, opts.Difficulty)

	return &Loaded{Info: lvl, Scene: sc, Config: cfg}, nil
}
