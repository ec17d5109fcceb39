package obstacle

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/marble-run/internal/physics"
)

// Fixed geometry of the moving parts, in metres.
const (
	SpinnerRestHeight = 0.3
	LimboRestHeight   = 1.15
	AxeSwing          = 1.25
	AxeRestHeight     = 0.75
	GoalBob           = 0.1
	GoalYawRate       = 0.25
)

var up = mgl64.Vec3{0, 1, 0}

func yaw(angle float64) mgl64.Quat {
	return mgl64.QuatRotate(angle, up)
}

// SpinnerPose rotates a bar about the vertical axis at speed radians per
// second.
func SpinnerPose(base mgl64.Vec3, speed, t float64) physics.Pose {
	return physics.Pose{
		Position: base.Add(mgl64.Vec3{0, SpinnerRestHeight, 0}),
		Rotation: yaw(t * speed),
	}
}

// LimboPose raises and lowers a bar between 0.15 and 2.15 above the block.
func LimboPose(base mgl64.Vec3, phase, t float64) physics.Pose {
	y := math.Sin(t+phase) + LimboRestHeight
	return physics.IdentityPose(base.Add(mgl64.Vec3{0, y, 0}))
}

// AxePose swings a blade side to side across the track.
func AxePose(base mgl64.Vec3, phase, t float64) physics.Pose {
	x := math.Sin(t+phase) * AxeSwing
	return physics.IdentityPose(base.Add(mgl64.Vec3{x, AxeRestHeight, 0}))
}

// SliderOffset is the lateral displacement of the slider platform.
func SliderOffset(phase, t float64) float64 {
	return math.Sin(t + phase)
}

// SliderPose moves the platform sideways at the block's own height.
func SliderPose(base mgl64.Vec3, phase, t float64) physics.Pose {
	return physics.IdentityPose(base.Add(mgl64.Vec3{SliderOffset(phase, t), 0, 0}))
}

// GoalPose bobs the goal marker and turns it slowly.
func GoalPose(base mgl64.Vec3, t float64) physics.Pose {
	y := math.Sin(t)*GoalBob - GoalBob
	return physics.Pose{
		Position: base.Add(mgl64.Vec3{0, y, 0}),
		Rotation: yaw(t * GoalYawRate),
	}
}

// TargetPose returns the commanded pose of a block's moving part at time t.
// Start has no moving part and reports its base pose.
func TargetPose(kind Type, base mgl64.Vec3, phase, speed, t float64) physics.Pose {
	switch kind {
	case Spinner:
		return SpinnerPose(base, speed, t)
	case Limbo:
		return LimboPose(base, phase, t)
	case Axe:
		return AxePose(base, phase, t)
	case Slider:
		return SliderPose(base, phase, t)
	case Goal:
		return GoalPose(base, t)
	default:
		return physics.IdentityPose(base)
	}
}

// Moving reports whether a block of this type has a kinematic part.
func Moving(kind Type) bool {
	return kind != Start && kind.Valid()
}

// Shape returns the collider of a block's moving part.
func Shape(kind Type) (physics.Shape, bool) {
	switch kind {
	case Spinner, Limbo:
		return physics.Box(mgl64.Vec3{3.5, 0.3, 0.3}), true
	case Axe:
		return physics.Box(mgl64.Vec3{1.5, 1.5, 0.3}), true
	case Slider:
		return physics.Box(mgl64.Vec3{1.5, 0.3, 3.5}), true
	case Goal:
		return physics.Box(mgl64.Vec3{0.8, 0.8, 0.8}), true
	default:
		return physics.Shape{}, false
	}
}

// FloorSize is the full size of a block's floor tile.
var FloorSize = mgl64.Vec3{4, 0.2, 4}

// FloorOffset places the floor tile so its top face is at the block height.
var FloorOffset = mgl64.Vec3{0, -0.1, 0}

// HasFloor reports whether the block has a fixed floor tile. The slider's
// moving platform is its only floor.
func HasFloor(kind Type) bool {
	return kind != Slider
}
