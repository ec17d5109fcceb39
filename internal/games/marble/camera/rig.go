// Package camera follows the ball with a smoothed chase camera.
package camera

import "github.com/go-gl/mathgl/mgl64"

// State is where the camera sits and what it looks at.
type State struct {
	Position mgl64.Vec3
	Target   mgl64.Vec3
}

// Config tunes the rig.
type Config struct {
	Offset       mgl64.Vec3 // camera position relative to the ball
	TargetOffset mgl64.Vec3 // look-at point relative to the ball
	Smoothing    float64    // convergence rate per second
	Initial      State
}

// DefaultConfig returns the stock chase camera.
func DefaultConfig() Config {
	return Config{
		Offset:       mgl64.Vec3{0, 0.65, 2.25},
		TargetOffset: mgl64.Vec3{0, 0.65, 0},
		Smoothing:    5,
		Initial: State{
			Position: mgl64.Vec3{0, 10, 10},
			Target:   mgl64.Vec3{},
		},
	}
}

// Rig holds the smoothed camera state. It is updated every step and is never
// reset by run transitions.
type Rig struct {
	cfg   Config
	state State
}

// NewRig places the camera at its initial state.
func NewRig(cfg Config) *Rig {
	return &Rig{cfg: cfg, state: cfg.Initial}
}

// State returns the current smoothed camera.
func (r *Rig) State() State { return r.state }

// Desired is the unsmoothed camera for a ball at player.
func (r *Rig) Desired(player mgl64.Vec3) State {
	return State{
		Position: player.Add(r.cfg.Offset),
		Target:   player.Add(r.cfg.TargetOffset),
	}
}

// Update moves the camera a fraction of the way toward the desired state.
func (r *Rig) Update(player mgl64.Vec3, dt float64) State {
	alpha := r.cfg.Smoothing * dt
	if alpha > 1 {
		alpha = 1
	}
	if alpha < 0 {
		alpha = 0
	}

	want := r.Desired(player)
	r.state.Position = lerp(r.state.Position, want.Position, alpha)
	r.state.Target = lerp(r.state.Target, want.Target, alpha)
	return r.state
}

func lerp(from, to mgl64.Vec3, alpha float64) mgl64.Vec3 {
	return from.Add(to.Sub(from).Mul(alpha))
}
