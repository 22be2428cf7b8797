package core

// RuntimeConfig holds the platform parameters a session runs with.
type RuntimeConfig struct {
	ScreenW  int // Terminal width in cells
	ScreenH  int // Terminal height in cells
	TickRate int // Simulation ticks per second
}

// DefaultRuntimeConfig returns an 80x24 terminal at 60 ticks per second.
func DefaultRuntimeConfig() RuntimeConfig {
	return RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60}
}
