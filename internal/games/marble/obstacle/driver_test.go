package obstacle

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

type recordingTarget struct {
	translations []mgl64.Vec3
	rotations    []mgl64.Quat
}

func (r *recordingTarget) SetNextKinematicTranslation(p mgl64.Vec3) {
	r.translations = append(r.translations, p)
}

func (r *recordingTarget) SetNextKinematicRotation(q mgl64.Quat) {
	r.rotations = append(r.rotations, q)
}

func TestDriverCommandsEveryPart(t *testing.T) {
	d := NewDriver()
	slider := &recordingTarget{}
	limbo := &recordingTarget{}

	d.Add(Animated{Kind: Slider, Base: mgl64.Vec3{0, 0, -4}, Target: slider})
	d.Add(Animated{Kind: Limbo, Base: mgl64.Vec3{0, 0, -8}, Phase: math.Pi / 2, Target: limbo})
	d.Add(Animated{Kind: Axe})

	if d.Len() != 2 {
		t.Fatalf("Len = %d, expected 2", d.Len())
	}

	d.Drive(0)
	d.Drive(math.Pi / 2)

	if len(slider.translations) != 2 || len(limbo.translations) != 2 {
		t.Fatalf("expected two commands per part, got %d and %d",
			len(slider.translations), len(limbo.translations))
	}
	if !slider.translations[1].ApproxEqual(mgl64.Vec3{1, 0, -4}) {
		t.Errorf("slider at pi/2 = %v, expected (1,0,-4)", slider.translations[1])
	}
	if !near(limbo.translations[0].Y(), 2.15) {
		t.Errorf("limbo at t=0 Y = %v, expected 2.15", limbo.translations[0].Y())
	}
	if len(limbo.rotations) != 2 {
		t.Errorf("rotations = %d, expected 2", len(limbo.rotations))
	}

	d.Reset()
	if d.Len() != 0 {
		t.Errorf("Len after Reset = %d, expected 0", d.Len())
	}
}
