package camera

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestInitialState(t *testing.T) {
	r := NewRig(DefaultConfig())
	s := r.State()

	if s.Position != (mgl64.Vec3{0, 10, 10}) {
		t.Errorf("Position = %v, expected (0, 10, 10)", s.Position)
	}
	if s.Target != (mgl64.Vec3{}) {
		t.Errorf("Target = %v, expected origin", s.Target)
	}
}

func TestSingleStepFraction(t *testing.T) {
	r := NewRig(DefaultConfig())
	player := mgl64.Vec3{0, 1, 0}

	s := r.Update(player, 0.1)

	// alpha = 0.5: halfway from (0,10,10) to (0,1.65,2.25).
	expected := mgl64.Vec3{0, 5.825, 6.125}
	if !s.Position.ApproxEqualThreshold(expected, 1e-9) {
		t.Errorf("Position = %v, expected %v", s.Position, expected)
	}
}

func TestConvergesToFollowPose(t *testing.T) {
	r := NewRig(DefaultConfig())
	player := mgl64.Vec3{0.5, 0.3, -12}

	for i := 0; i < 600; i++ {
		r.Update(player, 1.0/60)
	}

	s := r.State()
	want := r.Desired(player)
	if !s.Position.ApproxEqualThreshold(want.Position, 1e-6) {
		t.Errorf("Position = %v, expected %v", s.Position, want.Position)
	}
	if !s.Target.ApproxEqualThreshold(want.Target, 1e-6) {
		t.Errorf("Target = %v, expected %v", s.Target, want.Target)
	}
}

func TestLargeStepSnaps(t *testing.T) {
	r := NewRig(DefaultConfig())
	player := mgl64.Vec3{0, 1, -3}

	s := r.Update(player, 1)
	want := r.Desired(player)
	if !s.Position.ApproxEqualThreshold(want.Position, 1e-9) || !s.Target.ApproxEqualThreshold(want.Target, 1e-9) {
		t.Errorf("State = %+v, expected snap to %+v", s, r.Desired(player))
	}
}

func TestStatePersistsBetweenTeleports(t *testing.T) {
	r := NewRig(DefaultConfig())
	for i := 0; i < 300; i++ {
		r.Update(mgl64.Vec3{0, 0.3, -30}, 1.0/60)
	}
	before := r.State()

	// The ball is teleported back to the start; the camera glides rather
	// than jumping.
	after := r.Update(mgl64.Vec3{0, 1, 0}, 1.0/60)
	if after.Position.Z() > before.Position.Z()+3 {
		t.Errorf("camera jumped from z=%v to z=%v", before.Position.Z(), after.Position.Z())
	}
	if after.Position.Z() <= before.Position.Z() {
		t.Errorf("camera did not move toward the ball: %v -> %v", before.Position.Z(), after.Position.Z())
	}
}
