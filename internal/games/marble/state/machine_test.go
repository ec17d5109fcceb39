package state

import (
	"testing"
	"time"
)

var origin = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func newTestMachine() (*Machine, *SimClock) {
	clock := NewSimClock(origin)
	return NewMachine(clock, 10, 0.42), clock
}

func TestNewMachineIsReady(t *testing.T) {
	m, _ := newTestMachine()
	s := m.State()

	if s.Phase != Ready {
		t.Errorf("Phase = %v, expected ready", s.Phase)
	}
	if s.BlockCount != 10 {
		t.Errorf("BlockCount = %d, expected 10", s.BlockCount)
	}
	if s.Seed != 0.42 {
		t.Errorf("Seed = %v, expected 0.42", s.Seed)
	}
	if !s.StartTime.IsZero() || !s.EndTime.IsZero() {
		t.Error("Timestamps should be zero before the first run")
	}
}

func TestTransitionTable(t *testing.T) {
	type op func(m *Machine) RunState

	start := func(m *Machine) RunState { return m.Start() }
	end := func(m *Machine) RunState { return m.End() }
	restart := func(m *Machine) RunState { return m.Restart() }
	renew := func(m *Machine) RunState { return m.Renew(0.9) }

	into := func(p Phase) func(m *Machine) {
		return func(m *Machine) {
			switch p {
			case Playing:
				m.Start()
			case Ended:
				m.Start()
				m.End()
			}
		}
	}

	tests := []struct {
		name     string
		from     Phase
		op       op
		expected Phase
	}{
		{"start from ready", Ready, start, Playing},
		{"start from playing", Playing, start, Playing},
		{"start from ended", Ended, start, Ended},
		{"end from ready", Ready, end, Ready},
		{"end from playing", Playing, end, Ended},
		{"end from ended", Ended, end, Ended},
		{"restart from ready", Ready, restart, Ready},
		{"restart from playing", Playing, restart, Ready},
		{"restart from ended", Ended, restart, Ready},
		{"renew from ready", Ready, renew, Ready},
		{"renew from playing", Playing, renew, Ready},
		{"renew from ended", Ended, renew, Ready},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, _ := newTestMachine()
			into(tt.from)(m)
			if m.Phase() != tt.from {
				t.Fatalf("setup phase = %v, expected %v", m.Phase(), tt.from)
			}

			got := tt.op(m)
			if got.Phase != tt.expected {
				t.Errorf("Phase = %v, expected %v", got.Phase, tt.expected)
			}
			if m.Phase() != tt.expected {
				t.Errorf("machine Phase = %v, expected %v", m.Phase(), tt.expected)
			}
		})
	}
}

func TestIllegalTransitionLeavesStateUnchanged(t *testing.T) {
	m, clock := newTestMachine()
	m.Start()
	clock.Advance(2 * time.Second)
	before := m.State()

	notified := 0
	m.Subscribe(func(prev, next RunState) { notified++ })

	after := m.Start()
	if after != before {
		t.Errorf("Start while playing changed state: %+v -> %+v", before, after)
	}
	if notified != 0 {
		t.Errorf("notified = %d, expected 0 for a no-op", notified)
	}
}

func TestStartAndEndRecordTimes(t *testing.T) {
	m, clock := newTestMachine()

	clock.Advance(time.Second)
	m.Start()
	clock.Advance(7500 * time.Millisecond)
	s := m.End()

	if !s.StartTime.Equal(origin.Add(time.Second)) {
		t.Errorf("StartTime = %v, expected %v", s.StartTime, origin.Add(time.Second))
	}
	if !s.EndTime.After(s.StartTime) {
		t.Errorf("EndTime %v should be after StartTime %v", s.EndTime, s.StartTime)
	}

	d, ok := m.Completion()
	if !ok {
		t.Fatal("Completion should be available once ended")
	}
	if d != 7500*time.Millisecond {
		t.Errorf("Completion = %v, expected 7.5s", d)
	}
}

func TestRestartKeepsTimestamps(t *testing.T) {
	m, clock := newTestMachine()
	m.Start()
	clock.Advance(3 * time.Second)
	ended := m.End()

	s := m.Restart()
	if s.Phase != Ready {
		t.Fatalf("Phase = %v, expected ready", s.Phase)
	}
	if !s.StartTime.Equal(ended.StartTime) {
		t.Errorf("StartTime = %v, expected %v", s.StartTime, ended.StartTime)
	}
	if !s.EndTime.Equal(ended.EndTime) {
		t.Errorf("EndTime = %v, expected %v", s.EndTime, ended.EndTime)
	}
}

func TestRenewChangesOnlySeedAndPhase(t *testing.T) {
	m, _ := newTestMachine()
	m.Start()

	s := m.Renew(0.77)
	if s.Phase != Ready {
		t.Errorf("Phase = %v, expected ready", s.Phase)
	}
	if s.Seed != 0.77 {
		t.Errorf("Seed = %v, expected 0.77", s.Seed)
	}
	if s.BlockCount != 10 {
		t.Errorf("BlockCount = %d, expected 10", s.BlockCount)
	}

	m.Start()
	m.End()
	m.Restart()
	if m.State().Seed != 0.77 {
		t.Errorf("Seed changed outside Renew: %v", m.State().Seed)
	}
}

func TestElapsed(t *testing.T) {
	m, clock := newTestMachine()

	if m.Elapsed() != 0 {
		t.Errorf("Elapsed before start = %v, expected 0", m.Elapsed())
	}

	m.Start()
	clock.Advance(1500 * time.Millisecond)
	if m.Elapsed() != 1500*time.Millisecond {
		t.Errorf("Elapsed while playing = %v, expected 1.5s", m.Elapsed())
	}

	m.End()
	clock.Advance(10 * time.Second)
	if m.Elapsed() != 1500*time.Millisecond {
		t.Errorf("Elapsed after end = %v, expected frozen 1.5s", m.Elapsed())
	}
}

func TestSubscribeReceivesTransitions(t *testing.T) {
	m, _ := newTestMachine()

	var seen [][2]Phase
	unsubscribe := m.Subscribe(func(prev, next RunState) {
		seen = append(seen, [2]Phase{prev.Phase, next.Phase})
	})

	m.Start()
	m.End()
	m.Restart()

	expected := [][2]Phase{{Ready, Playing}, {Playing, Ended}, {Ended, Ready}}
	if len(seen) != len(expected) {
		t.Fatalf("got %d notifications, expected %d", len(seen), len(expected))
	}
	for i := range expected {
		if seen[i] != expected[i] {
			t.Errorf("notification %d = %v, expected %v", i, seen[i], expected[i])
		}
	}

	unsubscribe()
	m.Start()
	if len(seen) != len(expected) {
		t.Error("Listener called after unsubscribe")
	}
	unsubscribe()
}

func TestTransitionInsideListenerIsQueued(t *testing.T) {
	m, _ := newTestMachine()

	var order []string
	m.Subscribe(func(prev, next RunState) {
		order = append(order, "a:"+next.Phase.String())
		if next.Phase == Playing {
			m.End()
		}
	})
	m.Subscribe(func(prev, next RunState) {
		order = append(order, "b:"+next.Phase.String())
	})

	final := m.Start()
	if final.Phase != Ended {
		t.Errorf("final Phase = %v, expected ended", final.Phase)
	}

	expected := []string{"a:playing", "b:playing", "a:ended", "b:ended"}
	if len(order) != len(expected) {
		t.Fatalf("order = %v, expected %v", order, expected)
	}
	for i := range expected {
		if order[i] != expected[i] {
			t.Errorf("order[%d] = %s, expected %s", i, order[i], expected[i])
		}
	}
}

func TestSetBlockCount(t *testing.T) {
	m, _ := newTestMachine()
	m.Start()

	s := m.SetBlockCount(5)
	if s.BlockCount != 5 {
		t.Errorf("BlockCount = %d, expected 5", s.BlockCount)
	}
	if s.Phase != Ready {
		t.Errorf("Phase = %v, expected ready", s.Phase)
	}
}

func TestPhaseString(t *testing.T) {
	if Ready.String() != "ready" || Playing.String() != "playing" || Ended.String() != "ended" {
		t.Error("Unexpected phase names")
	}
	if Phase(9).String() != "unknown" {
		t.Errorf("Phase(9) = %s, expected unknown", Phase(9))
	}
}
