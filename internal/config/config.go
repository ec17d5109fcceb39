// Package config provides YAML-based course configuration loading and
// difficulty presets for marble-run.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-gl/mathgl/mgl64"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("config: invalid")

// MarbleConfig contains all configuration for a marble course.
type MarbleConfig struct {
	Level   LevelConfig   `yaml:"level"`
	Player  PlayerConfig  `yaml:"player"`
	Camera  CameraConfig  `yaml:"camera"`
	Physics PhysicsConfig `yaml:"physics"`
	Rules   RulesConfig   `yaml:"rules"`
}

// LevelConfig defines how courses are generated and what they are made of.
type LevelConfig struct {
	BlockCount          int      `yaml:"block_count"`
	Spacing             float64  `yaml:"spacing"`
	Types               []string `yaml:"types,flow"` // slot types drawn for each block
	ObstacleRestitution float64  `yaml:"obstacle_restitution"`
	ObstacleFriction    float64  `yaml:"obstacle_friction"`
	FloorFriction       float64  `yaml:"floor_friction"`
	WallRestitution     float64  `yaml:"wall_restitution"`
}

// PlayerConfig defines the ball and its controls.
type PlayerConfig struct {
	Radius          float64    `yaml:"radius"`
	Density         float64    `yaml:"density"`
	Start           mgl64.Vec3 `yaml:"start,flow"`
	ImpulseStrength float64    `yaml:"impulse_strength"` // per second of held input
	TorqueStrength  float64    `yaml:"torque_strength"`  // per second of held input
	JumpImpulse     float64    `yaml:"jump_impulse"`
	RayOffset       float64    `yaml:"ray_offset"` // ground ray starts this far below the centre
	RayLength       float64    `yaml:"ray_length"`
	GroundThreshold float64    `yaml:"ground_threshold"`
	FailHeight      float64    `yaml:"fail_height"`
	LinearDamping   float64    `yaml:"linear_damping"`
	AngularDamping  float64    `yaml:"angular_damping"`
	Restitution     float64    `yaml:"restitution"`
	Friction        float64    `yaml:"friction"`
}

// CameraConfig defines the chase camera.
type CameraConfig struct {
	Offset          mgl64.Vec3 `yaml:"offset,flow"`
	TargetOffset    mgl64.Vec3 `yaml:"target_offset,flow"`
	Smoothing       float64    `yaml:"smoothing"`
	InitialPosition mgl64.Vec3 `yaml:"initial_position,flow"`
	InitialTarget   mgl64.Vec3 `yaml:"initial_target,flow"`
}

// PhysicsConfig defines the built-in world.
type PhysicsConfig struct {
	Gravity  float64 `yaml:"gravity"`
	Substeps int     `yaml:"substeps"`
}

// RulesConfig defines run rules outside the simulation.
type RulesConfig struct {
	// QualifyTime is the best time a player must beat on a layout before a
	// new layout may be requested.
	QualifyTime time.Duration `yaml:"qualify_time"`
}

// Validate reports the first value that would make a course unplayable.
func (c MarbleConfig) Validate() error {
	switch {
	case c.Level.BlockCount < 0:
		return fmt.Errorf("%w: level.block_count %d is negative", ErrInvalidConfig, c.Level.BlockCount)
	case c.Level.Spacing <= 0:
		return fmt.Errorf("%w: level.spacing must be positive", ErrInvalidConfig)
	case len(c.Level.Types) == 0:
		return fmt.Errorf("%w: level.types is empty", ErrInvalidConfig)
	case c.Player.Radius <= 0:
		return fmt.Errorf("%w: player.radius must be positive", ErrInvalidConfig)
	case c.Player.RayOffset <= c.Player.Radius:
		// The ground ray would start inside the ball and always hit it.
		return fmt.Errorf("%w: player.ray_offset %.3f must exceed player.radius %.3f",
			ErrInvalidConfig, c.Player.RayOffset, c.Player.Radius)
	case c.Physics.Substeps < 0:
		return fmt.Errorf("%w: physics.substeps %d is negative", ErrInvalidConfig, c.Physics.Substeps)
	case c.Rules.QualifyTime < 0:
		return fmt.Errorf("%w: rules.qualify_time is negative", ErrInvalidConfig)
	}
	return nil
}
