package config

import (
	_ "embed"
	"time"

	"github.com/go-gl/mathgl/mgl64"
)

//go:embed defaults/marble.yaml
var defaultMarbleYAML []byte

// DefaultMarbleConfig returns the default course configuration.
func DefaultMarbleConfig() MarbleConfig {
	return MarbleConfig{
		Level: LevelConfig{
			BlockCount:          10,
			Spacing:             4,
			Types:               []string{"spinner", "axe", "limbo", "slider"},
			ObstacleRestitution: 0.2,
			ObstacleFriction:    0,
			FloorFriction:       0.5,
			WallRestitution:     0.2,
		},
		Player: PlayerConfig{
			Radius:          0.3,
			Density:         1,
			Start:           mgl64.Vec3{0, 1, 0},
			ImpulseStrength: 0.5,
			TorqueStrength:  0.5,
			JumpImpulse:     0.5,
			RayOffset:       0.31,
			RayLength:       10,
			GroundThreshold: 0.15,
			FailHeight:      -4,
			LinearDamping:   0.5,
			AngularDamping:  0.5,
			Restitution:     0.2,
			Friction:        1,
		},
		Camera: CameraConfig{
			Offset:          mgl64.Vec3{0, 0.65, 2.25},
			TargetOffset:    mgl64.Vec3{0, 0.65, 0},
			Smoothing:       5,
			InitialPosition: mgl64.Vec3{0, 10, 10},
			InitialTarget:   mgl64.Vec3{0, 0, 0},
		},
		Physics: PhysicsConfig{
			Gravity:  -9.81,
			Substeps: 4,
		},
		Rules: RulesConfig{
			QualifyTime: 5 * time.Second,
		},
	}
}
