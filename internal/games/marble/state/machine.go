// Package state holds the run lifecycle of a course: which phase the run is
// in, when it started and ended, and which seed the current layout uses.
//
// Every transition is a request. A request from a phase where it does not
// apply is ignored, so callers can fire them freely from a step loop.
package state

import "time"

// Phase is the discrete stage of a run.
type Phase int

const (
	Ready Phase = iota
	Playing
	Ended
)

func (p Phase) String() string {
	switch p {
	case Ready:
		return "ready"
	case Playing:
		return "playing"
	case Ended:
		return "ended"
	default:
		return "unknown"
	}
}

// RunState is a snapshot of the machine. StartTime is meaningful once the
// run has been Playing, EndTime only while Ended; zero means none.
type RunState struct {
	Phase      Phase
	StartTime  time.Time
	EndTime    time.Time
	Seed       float64
	BlockCount int
}

// Listener is called after every change with the state before and after.
type Listener func(prev, next RunState)

// Machine owns the RunState. It is not safe for concurrent use; the step
// loop is its only caller.
type Machine struct {
	state RunState
	clock Clock

	listeners map[int]Listener
	order     []int
	nextID    int

	dispatching bool
	pending     [][2]RunState
}

// NewMachine creates a machine in Ready for a course of blockCount obstacles.
func NewMachine(clock Clock, blockCount int, seed float64) *Machine {
	if clock == nil {
		clock = WallClock{}
	}
	return &Machine{
		state: RunState{
			Phase:      Ready,
			Seed:       seed,
			BlockCount: blockCount,
		},
		clock:     clock,
		listeners: make(map[int]Listener),
	}
}

// State returns a copy of the current run state.
func (m *Machine) State() RunState { return m.state }

// Phase returns the current phase.
func (m *Machine) Phase() Phase { return m.state.Phase }

// Start moves Ready to Playing and records the start time.
func (m *Machine) Start() RunState {
	if m.state.Phase != Ready {
		return m.state
	}
	next := m.state
	next.Phase = Playing
	next.StartTime = m.clock.Now()
	return m.apply(next)
}

// End moves Playing to Ended and records the end time.
func (m *Machine) End() RunState {
	if m.state.Phase != Playing {
		return m.state
	}
	next := m.state
	next.Phase = Ended
	next.EndTime = m.clock.Now()
	return m.apply(next)
}

// Restart returns a Playing or Ended run to Ready. Timestamps are kept.
func (m *Machine) Restart() RunState {
	if m.state.Phase == Ready {
		return m.state
	}
	next := m.state
	next.Phase = Ready
	return m.apply(next)
}

// Renew unconditionally returns to Ready with a new layout seed. It is the
// only operation that changes the seed.
func (m *Machine) Renew(seed float64) RunState {
	next := m.state
	next.Phase = Ready
	next.Seed = seed
	return m.apply(next)
}

// SetBlockCount changes the course length used by the next layout. Listeners
// are notified like a renew, without a phase change unless one is needed.
func (m *Machine) SetBlockCount(n int) RunState {
	if n == m.state.BlockCount {
		return m.state
	}
	next := m.state
	next.BlockCount = n
	next.Phase = Ready
	return m.apply(next)
}

// Elapsed is the run clock shown to a player: zero before the first start,
// running while Playing, frozen at the completion time once Ended.
func (m *Machine) Elapsed() time.Duration {
	switch m.state.Phase {
	case Playing:
		return m.clock.Now().Sub(m.state.StartTime)
	case Ended:
		return m.state.EndTime.Sub(m.state.StartTime)
	default:
		return 0
	}
}

// Completion returns endTime - startTime for a finished run.
func (m *Machine) Completion() (time.Duration, bool) {
	if m.state.Phase != Ended {
		return 0, false
	}
	return m.state.EndTime.Sub(m.state.StartTime), true
}

// Subscribe registers l for change notifications and returns a function
// that removes it.
func (m *Machine) Subscribe(l Listener) (unsubscribe func()) {
	id := m.nextID
	m.nextID++
	m.listeners[id] = l
	m.order = append(m.order, id)

	return func() {
		if _, ok := m.listeners[id]; !ok {
			return
		}
		delete(m.listeners, id)
		for i, v := range m.order {
			if v == id {
				m.order = append(m.order[:i], m.order[i+1:]...)
				break
			}
		}
	}
}

// apply commits next and notifies listeners. A transition requested from
// inside a listener is committed at once, but its notification waits until
// the current round of listeners has finished.
func (m *Machine) apply(next RunState) RunState {
	prev := m.state
	m.state = next
	m.pending = append(m.pending, [2]RunState{prev, next})

	if m.dispatching {
		return m.state
	}

	m.dispatching = true
	defer func() { m.dispatching = false }()

	for len(m.pending) > 0 {
		change := m.pending[0]
		m.pending = m.pending[1:]

		ids := append([]int(nil), m.order...)
		for _, id := range ids {
			if l, ok := m.listeners[id]; ok {
				l(change[0], change[1])
			}
		}
	}
	return m.state
}
