package tui

import (
	"time"

	"github.com/vovakirdan/marble-run/internal/core"
)

// holdWindow is how long a directional key counts as held after its last
// press or auto-repeat. It must outlast the terminal's initial repeat delay.
const holdWindow = 550 * time.Millisecond

// opposite pairs cancel each other: pressing one releases the other.
var opposite = map[core.Action]core.Action{
	core.ActionForward:  core.ActionBackward,
	core.ActionBackward: core.ActionForward,
	core.ActionLeft:     core.ActionRight,
	core.ActionRight:    core.ActionLeft,
}

// HeldInput turns discrete terminal key presses into per-tick held state.
// Terminals report presses and auto-repeats but never releases, so a
// direction stays held for a window after each press; every other action
// is held for exactly one tick.
type HeldInput struct {
	hold      int
	remaining map[core.Action]int
}

// NewHeldInput sizes the hold window for the given tick rate.
func NewHeldInput(tickRate int) *HeldInput {
	if tickRate <= 0 {
		tickRate = 60
	}
	hold := int(holdWindow.Seconds() * float64(tickRate))
	if hold < 1 {
		hold = 1
	}
	return &HeldInput{
		hold:      hold,
		remaining: make(map[core.Action]int),
	}
}

// Press registers a key press or repeat.
func (h *HeldInput) Press(a core.Action) {
	if a == core.ActionNone {
		return
	}
	if other, ok := opposite[a]; ok {
		delete(h.remaining, other)
		h.remaining[a] = h.hold
		return
	}
	h.remaining[a] = 1
}

// Frame returns the actions held for the next tick and ages every hold.
func (h *HeldInput) Frame() core.InputFrame {
	frame := core.NewInputFrame()
	for a, n := range h.remaining {
		frame.Set(a)
		if n <= 1 {
			delete(h.remaining, a)
		} else {
			h.remaining[a] = n - 1
		}
	}
	return frame
}

// Release drops every held action.
func (h *HeldInput) Release() {
	for a := range h.remaining {
		delete(h.remaining, a)
	}
}
