package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/marble-run/internal/core"
	"github.com/vovakirdan/marble-run/internal/registry"
	"github.com/vovakirdan/marble-run/internal/storage"
)

// TimeStore is the persistence the play loop needs. *storage.Store
// satisfies it.
type TimeStore interface {
	SaveTime(e storage.TimeEntry) (int64, error)
	BestTime(courseID string, seed float64) (time.Duration, bool, error)
}

// bestTimeSetter is implemented by courses that accept a stored best time.
type bestTimeSetter interface {
	SetBestTime(d time.Duration)
}

// Model is the Bubble Tea model for running a course.
type Model struct {
	game      registry.Game
	screen    *core.Screen
	store     TimeStore
	config    core.RuntimeConfig
	keys      *KeyMapper
	held      *HeldInput
	gameState core.GameState
	player    string

	loadedSeed float64 // Seed whose stored best time was handed to the game
	loaded     bool
	storedBest time.Duration // Best stored time on the loaded seed, 0 if none
	saved      int           // Completed runs written to the store
	last       storage.TimeEntry
	lastRecord bool // Whether the last run beat every stored time on its layout

	notice      string // One-line announcement drawn over the bottom row
	noticeTicks int

	quitting   bool
	backToMenu bool
	canGoBack  bool // Back returns to a menu instead of quitting
}

// NewModel creates a new Bubble Tea model for the given course.
func NewModel(game registry.Game, store TimeStore, cfg core.RuntimeConfig) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	return Model{
		game:   game,
		screen: core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:  store,
		config: cfg,
		keys:   NewKeyMapper(),
		held:   NewHeldInput(cfg.TickRate),
	}
}

// WithPlayer sets the name stored with completed runs.
func (m Model) WithPlayer(name string) Model {
	m.player = name
	return m
}

// Init initializes the model and starts the course.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	// Note: gameState and the stored best time are picked up on the first tick
	// (value receiver limitation)

	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keys.MapKey(msg)
	if isQuit {
		m.quitting = true
		return m, tea.Quit
	}

	if action == core.ActionBack {
		// Leaving mid-run would throw the attempt away; only from rest
		if m.gameState.Phase == "playing" && !m.gameState.Paused {
			return m, nil
		}
		if m.canGoBack {
			m.backToMenu = true
			return m, nil
		}
		m.quitting = true
		return m, tea.Quit
	}

	m.held.Press(action)
	return m, nil
}

// handleResize processes window resize events. The course keeps running;
// only the viewport changes.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	m.syncBestTime()
	if m.noticeTicks > 0 {
		m.noticeTicks--
	}

	result := m.game.Step(m.held.Frame())
	m.gameState = result.State

	// Save the completed run (once per completion)
	if result.Completed != nil {
		m.saveRun(*result.Completed)
	}

	// A renew switches layouts; fetch the best time of the new one
	m.syncBestTime()

	return m, tickCmd(m.config.TickRate)
}

// syncBestTime hands the stored best time to the game whenever the layout
// seed changes.
func (m *Model) syncBestTime() {
	seed := m.game.State().Seed
	if m.loaded && seed == m.loadedSeed {
		return
	}
	m.loaded = true
	m.loadedSeed = seed
	m.storedBest = 0

	if m.store == nil {
		return
	}
	best, found, err := m.store.BestTime(m.game.ID(), seed)
	if err != nil || !found {
		return
	}
	m.storedBest = best
	if setter, ok := m.game.(bestTimeSetter); ok {
		setter.SetBestTime(best)
	}
}

// saveRun writes a completed run to the store.
func (m *Model) saveRun(d time.Duration) {
	m.saved++
	m.last = storage.TimeEntry{
		CourseID:   m.game.ID(),
		Seed:       m.gameState.Seed,
		BlockCount: m.gameState.BlockCount,
		Duration:   d,
		Player:     m.player,
	}
	m.lastRecord = m.storedBest == 0 || d < m.storedBest
	if m.lastRecord {
		m.storedBest = d
	}

	if m.store == nil {
		return
	}
	//nolint:errcheck // Best-effort save, game continues regardless
	m.store.SaveTime(m.last)
}

// ShowNotice displays a one-line announcement for a few seconds.
func (m *Model) ShowNotice(text string) {
	rate := m.config.TickRate
	if rate <= 0 {
		rate = 60
	}
	m.notice = text
	m.noticeTicks = 4 * rate
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	// Render current state
	m.screen.Clear()
	m.game.Render(m.screen)

	// Create screenshots directory
	dir := filepath.Join(os.Getenv("HOME"), ".marble", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	// Generate filename with timestamp
	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp)
	path := filepath.Join(dir, filename)

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting || m.backToMenu {
		return ""
	}

	// Render game to screen buffer
	m.screen.Clear()
	m.game.Render(m.screen)

	if m.noticeTicks > 0 && m.screen.Height() > 0 {
		row := m.screen.Height() - 1
		m.screen.DrawHLine(0, row, m.screen.Width(), ' ')
		m.screen.DrawTextColored(1, row, m.notice, core.ColorBrightYellow)
	}

	return RenderScreen(m.screen)
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu reports whether the player asked to return to the menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Saved returns the number of completed runs recorded by this model.
func (m Model) Saved() int {
	return m.saved
}

// LastRun returns the most recent completed run and whether it was the
// fastest known time on its layout.
func (m Model) LastRun() (storage.TimeEntry, bool) {
	return m.last, m.lastRecord
}

// Run starts the Bubble Tea program for a single course.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, player string) error {
	var ts TimeStore
	if store != nil {
		ts = store
	}
	model := NewModel(game, ts, cfg).WithPlayer(player)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}
