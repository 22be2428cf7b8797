package tui

import (
	"time"

	"github.com/vovakirdan/wingchase/internal/core"
)

// holdTracker synthesizes key releases. Terminals only report presses and
// auto-repeats, so a direction counts as held until its repeats stop.
type holdTracker struct {
	repeatDelay time.Duration
	holdTimeout time.Duration
	held        map[core.Direction]holdState
}

type holdState struct {
	last     time.Time
	repeated bool
}

func newHoldTracker(repeatDelay, holdTimeout time.Duration) *holdTracker {
	return &holdTracker{
		repeatDelay: repeatDelay,
		holdTimeout: holdTimeout,
		held:        make(map[core.Direction]holdState),
	}
}

// press records a key event for d at now. It reports whether this is a new
// press rather than an auto-repeat of a held key.
func (h *holdTracker) press(d core.Direction, now time.Time) bool {
	_, held := h.held[d]
	h.held[d] = holdState{last: now, repeated: held}
	return !held
}

// expire returns the directions whose repeats stopped before now and forgets them.
func (h *holdTracker) expire(now time.Time) []core.Direction {
	var released []core.Direction
	for _, d := range core.Directions {
		s, ok := h.held[d]
		if !ok {
			continue
		}
		limit := h.repeatDelay
		if s.repeated {
			limit = h.holdTimeout
		}
		if now.Sub(s.last) > limit {
			delete(h.held, d)
			released = append(released, d)
		}
	}
	return released
}

// releaseAll forgets every held direction and returns them.
func (h *holdTracker) releaseAll() []core.Direction {
	var released []core.Direction
	for _, d := range core.Directions {
		if _, ok := h.held[d]; ok {
			delete(h.held, d)
			released = append(released, d)
		}
	}
	return released
}
