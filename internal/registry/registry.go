// Package registry provides a global registry of playable levels.
// Levels register themselves in init() functions, allowing the platform
// to discover and load them without hardcoded dependencies.
package registry

import (
	"fmt"
	"sort"
	"sync"
)

// Level is a built-in level: an embedded scene plus its default tuning.
type Level struct {
	// ID is the unique identifier (e.g., "boxsphere").
	// Used for CLI commands, config file names and score storage.
	ID string

	// Title is a human-readable name for display.
	Title string

	// Description is a one-line summary for listings.
	Description string

	// Scene is the scene YAML.
	Scene []byte

	// Config is the default tuning YAML.
	Config []byte
}

// LevelInfo contains metadata about a registered level.
type LevelInfo struct {
	ID          string
	Title       string
	Description string
}

var (
	levels = make(map[string]Level)
	mu     sync.RWMutex
)

// Register adds a level to the registry.
// Typically called from an init() function.
// Panics if a level with the same ID is already registered.
func Register(l Level) {
	mu.Lock()
	defer mu.Unlock()

	if l.ID == "" {
		panic("registry: level without ID")
	}
	if _, exists := levels[l.ID]; exists {
		panic(fmt.Sprintf("registry: level %q already registered", l.ID))
	}
	levels[l.ID] = l
}

// List returns information about all registered levels, sorted by ID.
func List() []LevelInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]LevelInfo, 0, len(levels))
	for _, l := range levels {
		result = append(result, LevelInfo{
			ID:          l.ID,
			Title:       l.Title,
			Description: l.Description,
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Get returns a level by its ID.
// Returns an error if the level ID is not registered.
func Get(id string) (Level, error) {
	mu.RLock()
	defer mu.RUnlock()

	l, ok := levels[id]
	if !ok {
		return Level{}, fmt.Errorf("registry: unknown level %q", id)
	}
	return l, nil
}

// Exists checks if a level with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := levels[id]
	return ok
}

// unregister removes a level. Tests only.
func unregister(id string) {
	mu.Lock()
	defer mu.Unlock()
	delete(levels, id)
}
