package core

import (
	"testing"
	"time"
)

func TestRectEdges(t *testing.T) {
	r := NewRect(2, 3, 4, 2)
	if r.Right() != 6 || r.Bottom() != 5 {
		t.Errorf("Right, Bottom = %d, %d; expected 6, 5", r.Right(), r.Bottom())
	}
}

func TestRectCentered(t *testing.T) {
	outer := NewRect(0, 0, 20, 10)
	inner := outer.Centered(6, 4)

	if inner.X != 7 || inner.Y != 3 || inner.W != 6 || inner.H != 4 {
		t.Errorf("Centered(6, 4) = %+v", inner)
	}
}

func TestClampF(t *testing.T) {
	if ClampF(-1, 0, 1) != 0 {
		t.Error("ClampF should clamp below")
	}
	if ClampF(2, 0, 1) != 1 {
		t.Error("ClampF should clamp above")
	}
	if ClampF(0.5, 0, 1) != 0.5 {
		t.Error("ClampF should pass values in range")
	}
}

func TestTickDuration(t *testing.T) {
	cfg := DefaultConfig()
	if got := cfg.TickDuration(); got != time.Second/60 {
		t.Errorf("TickDuration() = %v, expected %v", got, time.Second/60)
	}

	cfg.TickRate = 0
	if got := cfg.TickDuration(); got != time.Second/60 {
		t.Errorf("TickDuration() with zero rate = %v, expected 60Hz fallback", got)
	}
}
