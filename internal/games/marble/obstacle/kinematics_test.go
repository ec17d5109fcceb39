package obstacle

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

const eps = 1e-9

func near(a, b float64) bool { return math.Abs(a-b) < eps }

func TestSliderOffset(t *testing.T) {
	tests := []struct {
		phase, t float64
		expected float64
	}{
		{0, 0, 0},
		{0, math.Pi / 2, 1},
		{math.Pi / 2, 0, 1},
		{0, math.Pi, 0},
		{0, 3 * math.Pi / 2, -1},
	}

	for _, tt := range tests {
		got := SliderOffset(tt.phase, tt.t)
		if !near(got, tt.expected) {
			t.Errorf("SliderOffset(%v, %v) = %v, expected %v", tt.phase, tt.t, got, tt.expected)
		}
	}
}

func TestSliderPoseKeepsHeight(t *testing.T) {
	base := mgl64.Vec3{0, 0, -8}
	pose := TargetPose(Slider, base, 0, 0, math.Pi/2)

	expected := mgl64.Vec3{1, 0, -8}
	if !pose.Position.ApproxEqual(expected) {
		t.Errorf("Position = %v, expected %v", pose.Position, expected)
	}
}

func TestLimboHeight(t *testing.T) {
	base := mgl64.Vec3{0, 0, -4}

	low := LimboPose(base, 0, 3*math.Pi/2)
	if !near(low.Position.Y(), 0.15) {
		t.Errorf("lowest Y = %v, expected 0.15", low.Position.Y())
	}
	high := LimboPose(base, 0, math.Pi/2)
	if !near(high.Position.Y(), 2.15) {
		t.Errorf("highest Y = %v, expected 2.15", high.Position.Y())
	}
}

func TestAxeSwing(t *testing.T) {
	base := mgl64.Vec3{0, 0, -12}
	pose := AxePose(base, math.Pi/2, 0)

	if !near(pose.Position.X(), 1.25) {
		t.Errorf("X = %v, expected 1.25", pose.Position.X())
	}
	if !near(pose.Position.Y(), 0.75) {
		t.Errorf("Y = %v, expected 0.75", pose.Position.Y())
	}
	if !near(pose.Position.Z(), -12) {
		t.Errorf("Z = %v, expected -12", pose.Position.Z())
	}
}

func TestSpinnerYaw(t *testing.T) {
	base := mgl64.Vec3{0, 0, -4}
	pose := SpinnerPose(base, -1.2, 2)

	if !near(pose.Position.Y(), 0.3) {
		t.Errorf("Y = %v, expected 0.3", pose.Position.Y())
	}

	// The bar's long axis starts along x; after yaw it is rotated by t*speed.
	dir := pose.Rotation.Rotate(mgl64.Vec3{1, 0, 0})
	angle := math.Atan2(-dir.Z(), dir.X())
	if !near(angle, -2.4) {
		t.Errorf("yaw = %v, expected -2.4", angle)
	}
}

func TestGoalBob(t *testing.T) {
	base := mgl64.Vec3{0, 0, -44}

	rest := GoalPose(base, 0)
	if !near(rest.Position.Y(), -0.1) {
		t.Errorf("Y at t=0 = %v, expected -0.1", rest.Position.Y())
	}
	top := GoalPose(base, math.Pi/2)
	if !near(top.Position.Y(), 0) {
		t.Errorf("Y at t=pi/2 = %v, expected 0", top.Position.Y())
	}
}

func TestTargetPoseIsPure(t *testing.T) {
	base := mgl64.Vec3{0, 0, -20}
	for _, kind := range []Type{Spinner, Limbo, Axe, Slider, Goal, Start} {
		a := TargetPose(kind, base, 1.1, 0.8, 3.7)
		b := TargetPose(kind, base, 1.1, 0.8, 3.7)
		if a != b {
			t.Errorf("%s: pose differs between identical calls: %v vs %v", kind, a, b)
		}
	}
}

func TestShapes(t *testing.T) {
	if _, ok := Shape(Start); ok {
		t.Error("Start should have no moving part")
	}
	for _, kind := range []Type{Spinner, Limbo, Axe, Slider, Goal} {
		if _, ok := Shape(kind); !ok {
			t.Errorf("%s should have a moving part", kind)
		}
		if !Moving(kind) {
			t.Errorf("Moving(%s) = false, expected true", kind)
		}
	}
	if HasFloor(Slider) {
		t.Error("Slider should not have a fixed floor")
	}
	if !HasFloor(Axe) {
		t.Error("Axe should have a fixed floor")
	}
}

func TestParseType(t *testing.T) {
	for _, kind := range []Type{Spinner, Limbo, Axe, Slider, Start, Goal} {
		got, err := ParseType(kind.String())
		if err != nil {
			t.Fatalf("ParseType(%q): %v", kind.String(), err)
		}
		if got != kind {
			t.Errorf("ParseType(%q) = %v, expected %v", kind.String(), got, kind)
		}
	}
	if _, err := ParseType("trampoline"); err == nil {
		t.Error("ParseType should reject unknown names")
	}
	if got, _ := ParseType(" Axe "); got != Axe {
		t.Errorf("ParseType(\" Axe \") = %v, expected axe", got)
	}
}

func TestPlaceable(t *testing.T) {
	for _, kind := range CourseTypes() {
		if !kind.Placeable() {
			t.Errorf("%s should be placeable", kind)
		}
	}
	if Start.Placeable() || Goal.Placeable() {
		t.Error("Start and goal blocks are not slot types")
	}
}
