package obstacle

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/marble-run/internal/physics"
)

// Animated is one kinematic part placed on the course.
type Animated struct {
	Kind   Type
	Base   mgl64.Vec3
	Phase  float64
	Speed  float64
	Target physics.KinematicTarget
}

// Driver commands every animated part of a course once per step.
type Driver struct {
	parts []Animated
}

// NewDriver creates an empty driver.
func NewDriver() *Driver {
	return &Driver{}
}

// Add registers a part. Parts without a target are ignored.
func (d *Driver) Add(a Animated) {
	if a.Target == nil {
		return
	}
	d.parts = append(d.parts, a)
}

// Len returns the number of driven parts.
func (d *Driver) Len() int { return len(d.parts) }

// Drive issues next-step pose commands for the shared clock value t.
func (d *Driver) Drive(t float64) {
	for _, p := range d.parts {
		pose := TargetPose(p.Kind, p.Base, p.Phase, p.Speed, t)
		p.Target.SetNextKinematicTranslation(pose.Position)
		p.Target.SetNextKinematicRotation(pose.Rotation)
	}
}

// Reset drops every part.
func (d *Driver) Reset() {
	d.parts = d.parts[:0]
}
