// Package player turns held directional input into impulses on the ball,
// checks the ground for jumps and asks the run state machine to start, end
// or restart the run.
package player

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/marble-run/internal/games/marble/state"
	"github.com/vovakirdan/marble-run/internal/physics"
)

// Input is the control state sampled once per step.
type Input struct {
	Forward   bool
	Backward  bool
	Leftward  bool
	Rightward bool
	Jump      bool
	Restart   bool
}

// AnyDirection reports whether a directional control is held.
func (in Input) AnyDirection() bool {
	return in.Forward || in.Backward || in.Leftward || in.Rightward
}

// finishMargin is how far short of the end of the last block the goal
// line sits, independent of block spacing.
const finishMargin = 2

// Config tunes the controller.
type Config struct {
	Start           mgl64.Vec3
	ImpulseStrength float64
	TorqueStrength  float64
	JumpImpulse     float64
	RayOffset       float64
	RayLength       float64
	GroundThreshold float64
	FailHeight      float64
	Spacing         float64
}

// DefaultConfig returns the stock tuning.
func DefaultConfig() Config {
	return Config{
		Start:           mgl64.Vec3{0, 1, 0},
		ImpulseStrength: 0.5,
		TorqueStrength:  0.5,
		JumpImpulse:     0.5,
		RayOffset:       0.31,
		RayLength:       10,
		GroundThreshold: 0.15,
		FailHeight:      -4,
		Spacing:         4,
	}
}

// Controller drives one player body.
type Controller struct {
	body    physics.Body
	rays    physics.RayCaster
	machine *state.Machine
	cfg     Config

	prev        Input
	unsubscribe func()
}

// New binds a controller to a body and a state machine. Entering Ready from
// any transition puts the body back on the start pose.
func New(body physics.Body, rays physics.RayCaster, machine *state.Machine, cfg Config) *Controller {
	c := &Controller{
		body:    body,
		rays:    rays,
		machine: machine,
		cfg:     cfg,
	}
	c.unsubscribe = machine.Subscribe(func(prev, next state.RunState) {
		if next.Phase == state.Ready {
			c.Reset()
		}
	})
	return c
}

// Close detaches the controller from the state machine.
func (c *Controller) Close() {
	if c.unsubscribe != nil {
		c.unsubscribe()
		c.unsubscribe = nil
	}
}

// Reset teleports the body to the start pose and stops it.
func (c *Controller) Reset() {
	c.body.SetTranslation(c.cfg.Start)
	c.body.SetLinvel(mgl64.Vec3{})
	c.body.SetAngvel(mgl64.Vec3{})
}

// FinishZ is the depth past which a run on the current course is complete.
func (c *Controller) FinishZ() float64 {
	n := c.machine.State().BlockCount
	return -(float64(n+1)*c.cfg.Spacing - finishMargin)
}

// Update advances the controller by one step of dt seconds.
func (c *Controller) Update(in Input, dt float64) {
	if in.Jump && !c.prev.Jump {
		c.Jump()
	}
	if in.Restart && !c.prev.Restart && c.machine.Phase() != state.Ready {
		c.machine.Restart()
	}
	// The clock starts before a held direction moves the ball.
	if in.AnyDirection() && c.machine.Phase() == state.Ready {
		c.machine.Start()
	}

	c.move(in, dt)
	c.checkBounds()

	c.prev = in
}

// Grounded casts the ground ray and reports whether the ball rests on
// something close enough to jump from.
func (c *Controller) Grounded() bool {
	origin := c.body.Translation().Sub(mgl64.Vec3{0, c.cfg.RayOffset, 0})
	ray := physics.Ray{Origin: origin, Dir: mgl64.Vec3{0, -1, 0}}

	hit, ok := c.rays.CastRay(ray, c.cfg.RayLength)
	return ok && hit.Toi < c.cfg.GroundThreshold
}

// Jump applies the upward impulse when the ball is grounded.
func (c *Controller) Jump() bool {
	if !c.Grounded() {
		return false
	}
	c.body.ApplyImpulse(mgl64.Vec3{0, c.cfg.JumpImpulse, 0})
	return true
}

func (c *Controller) move(in Input, dt float64) {
	var impulse, torque mgl64.Vec3
	impulseStrength := c.cfg.ImpulseStrength * dt
	torqueStrength := c.cfg.TorqueStrength * dt

	if in.Forward {
		impulse[2] -= impulseStrength
		torque[0] -= torqueStrength
	}
	if in.Rightward {
		impulse[0] += impulseStrength
		torque[2] -= torqueStrength
	}
	if in.Backward {
		impulse[2] += impulseStrength
		torque[0] += torqueStrength
	}
	if in.Leftward {
		impulse[0] -= impulseStrength
		torque[2] += torqueStrength
	}

	c.body.ApplyImpulse(impulse)
	c.body.ApplyTorqueImpulse(torque)
}

// checkBounds ends the run past the finish line and restarts it after a
// fall, in that order. A fall while already Ready has no transition to
// ride on, so the body is put back directly.
func (c *Controller) checkBounds() {
	pos := c.body.Translation()

	if pos.Z() < c.FinishZ() && pos.Y() >= 0 {
		c.machine.End()
	}
	if pos.Y() < c.cfg.FailHeight {
		if c.machine.Phase() == state.Ready {
			c.Reset()
			return
		}
		c.machine.Restart()
	}
}
