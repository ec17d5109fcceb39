package core

import "time"

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed for per-run randomness (0 = time based, resolved by the platform)

	// LevelSeed is the initial course seed. Renewed courses draw their seeds
	// from a stream derived from Seed.
	LevelSeed float64
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0,
	}
}

// TickDuration returns the fixed simulation step length.
func (c RuntimeConfig) TickDuration() time.Duration {
	rate := c.TickRate
	if rate <= 0 {
		rate = 60
	}
	return time.Second / time.Duration(rate)
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Phase      string        // "ready", "playing" or "ended"
	Elapsed    time.Duration // Run clock as shown to the player
	Finished   bool          // Whether the current run reached the goal
	Paused     bool          // Whether the simulation is paused
	Seed       float64       // Course seed of the current layout
	BlockCount int           // Obstacles between start and goal
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State GameState

	// Completed is set on the tick a run reaches the goal and carries the
	// completion duration (endTime - startTime).
	Completed *time.Duration
}
