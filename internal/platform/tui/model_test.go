package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/marble-run/internal/core"
	"github.com/vovakirdan/marble-run/internal/storage"
)

// stubGame finishes a run on a chosen tick and records its inputs.
type stubGame struct {
	seed       float64
	finishAt   int
	ticks      int
	frames     []core.InputFrame
	phase      string
	best       time.Duration
	resets     int
	renderRows int
}

func (g *stubGame) ID() string    { return "stub" }
func (g *stubGame) Title() string { return "Stub" }

func (g *stubGame) Reset(cfg core.RuntimeConfig) {
	g.resets++
	g.ticks = 0
	g.phase = "ready"
}

func (g *stubGame) Step(in core.InputFrame) core.StepResult {
	g.frames = append(g.frames, in.Clone())
	g.ticks++
	if in.Has(core.ActionRenew) {
		g.seed += 0.5
	}
	res := core.StepResult{}
	if g.ticks == g.finishAt {
		g.phase = "ended"
		d := 3 * time.Second
		res.Completed = &d
	}
	res.State = g.State()
	return res
}

func (g *stubGame) Render(dst *core.Screen) {
	g.renderRows = dst.Height()
	dst.DrawText(0, 0, "stub")
}

func (g *stubGame) State() core.GameState {
	return core.GameState{Phase: g.phase, Seed: g.seed, BlockCount: 4}
}

func (g *stubGame) SetBestTime(d time.Duration) { g.best = d }

type memStore struct {
	entries []storage.TimeEntry
	best    map[float64]time.Duration
	lookups []float64
}

func (s *memStore) SaveTime(e storage.TimeEntry) (int64, error) {
	s.entries = append(s.entries, e)
	return int64(len(s.entries)), nil
}

func (s *memStore) BestTime(courseID string, seed float64) (time.Duration, bool, error) {
	s.lookups = append(s.lookups, seed)
	d, ok := s.best[seed]
	return d, ok, nil
}

func testModel(g *stubGame, s *memStore) Model {
	cfg := core.RuntimeConfig{ScreenW: 40, ScreenH: 10, TickRate: 60, Seed: 7}
	var ts TimeStore
	if s != nil {
		ts = s
	}
	m := NewModel(g, ts, cfg).WithPlayer("tester")
	m.Init()
	return m
}

func tick(t *testing.T, m Model) Model {
	t.Helper()
	next, _ := m.Update(TickMsg(time.Now()))
	out, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, expected Model", next)
	}
	return out
}

func press(t *testing.T, m Model, msg tea.KeyMsg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	out, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, expected Model", next)
	}
	return out, cmd
}

func TestModelSavesCompletedRun(t *testing.T) {
	g := &stubGame{seed: 0.42, finishAt: 3}
	s := &memStore{}
	m := testModel(g, s)

	for i := 0; i < 5; i++ {
		m = tick(t, m)
	}

	if len(s.entries) != 1 {
		t.Fatalf("saved %d runs, expected 1", len(s.entries))
	}
	e := s.entries[0]
	if e.CourseID != "stub" || e.Seed != 0.42 || e.BlockCount != 4 || e.Duration != 3*time.Second || e.Player != "tester" {
		t.Errorf("saved entry = %+v", e)
	}
	if m.Saved() != 1 {
		t.Errorf("Saved() = %d, expected 1", m.Saved())
	}
}

func TestModelLoadsBestTimePerSeed(t *testing.T) {
	g := &stubGame{seed: 0.25}
	s := &memStore{best: map[float64]time.Duration{0.25: 4 * time.Second, 0.75: 2 * time.Second}}
	m := testModel(g, s)

	m = tick(t, m)
	m = tick(t, m)
	if g.best != 4*time.Second {
		t.Errorf("best = %v, expected 4s", g.best)
	}
	if len(s.lookups) != 1 {
		t.Errorf("lookups = %v, expected one per seed", s.lookups)
	}

	m, _ = press(t, m, runeKey('n'))
	m = tick(t, m)
	if g.seed != 0.75 {
		t.Fatalf("seed = %v, expected 0.75 after renew", g.seed)
	}
	if g.best != 2*time.Second {
		t.Errorf("best after renew = %v, expected 2s", g.best)
	}
	_ = m
}

func TestModelHoldsDirectionAcrossTicks(t *testing.T) {
	g := &stubGame{}
	m := testModel(g, nil)

	m, _ = press(t, m, runeKey('w'))
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	m = tick(t, m)
	m = tick(t, m)

	if !g.frames[0].Has(core.ActionForward) || !g.frames[1].Has(core.ActionForward) {
		t.Error("forward should stay held across ticks")
	}
	if g.frames[1].Has(core.ActionJump) {
		t.Error("jump should last one tick")
	}
}

func TestModelResizeKeepsRun(t *testing.T) {
	g := &stubGame{}
	m := testModel(g, nil)
	m = tick(t, m)

	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	m = next.(Model)

	if g.resets != 1 {
		t.Errorf("resets = %d, expected 1", g.resets)
	}
	m.View()
	if g.renderRows != 30 {
		t.Errorf("rendered %d rows, expected 30", g.renderRows)
	}
}

func TestModelBackRules(t *testing.T) {
	g := &stubGame{}
	m := testModel(g, nil)
	m.canGoBack = true
	m.gameState.Phase = "playing"

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.BackToMenu() {
		t.Error("back should be ignored mid-run")
	}

	m.gameState.Phase = "ended"
	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if !m.BackToMenu() {
		t.Error("back should return to menu after the run")
	}
	if cmd != nil {
		t.Error("back inside a session should not quit the program")
	}
}

func TestModelQuit(t *testing.T) {
	m := testModel(&stubGame{}, nil)
	m, cmd := press(t, m, runeKey('q'))
	if !m.IsQuitting() || cmd == nil {
		t.Error("q should quit")
	}
	if m.View() != "" {
		t.Error("View should be empty after quit")
	}
}
