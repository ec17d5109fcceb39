package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/marble-run/internal/core"
	"github.com/vovakirdan/marble-run/internal/registry"
	"github.com/vovakirdan/marble-run/internal/storage"
)

// RecordSource supplies the per-course records shown next to each course.
// *storage.Store implements it.
type RecordSource interface {
	GetAllCourseStats() (map[string]*storage.CourseStats, error)
}

// Course is one line of the course picker.
type Course struct {
	ID          string
	Title       string
	Description string
	Runs        int
	Best        float64 // seconds; zero when the course was never finished
}

// MenuModel is the course picker shown before a run.
type MenuModel struct {
	courses []Course
	cursor  int
	config  core.RuntimeConfig
	keys    *KeyMapper

	picked   *Course
	board    bool
	quitting bool
}

var (
	menuTitleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	menuSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("3"))
	menuDimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// NewMenuModel lists every registered course. records may be nil; a failed
// lookup only hides the record column.
func NewMenuModel(cfg core.RuntimeConfig, records RecordSource) MenuModel {
	var stats map[string]*storage.CourseStats
	if records != nil {
		stats, _ = records.GetAllCourseStats()
	}

	infos := registry.List()
	courses := make([]Course, 0, len(infos))
	for _, info := range infos {
		c := Course{ID: info.ID, Title: info.Title, Description: info.Description}
		if s, ok := stats[info.ID]; ok {
			c.Runs = s.Runs
			c.Best = s.Best.Seconds()
		}
		courses = append(courses, c)
	}

	return MenuModel{courses: courses, config: cfg, keys: NewKeyMapper()}
}

func (m MenuModel) Init() tea.Cmd { return nil }

// Update moves the cursor and records the choice. Any choice ends the
// picker program.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height

	case tea.KeyMsg:
		switch m.keys.MapKeyToMenuAction(msg) {
		case MenuActionUp:
			m.move(-1)
		case MenuActionDown:
			m.move(1)
		case MenuActionSelect:
			if len(m.courses) > 0 {
				c := m.courses[m.cursor]
				m.picked = &c
				return m, tea.Quit
			}
		case MenuActionScoreboard:
			m.board = true
			return m, tea.Quit
		case MenuActionBack, MenuActionQuit:
			m.quitting = true
			return m, tea.Quit
		}
	}
	return m, nil
}

// move steps the cursor, wrapping at both ends.
func (m *MenuModel) move(delta int) {
	n := len(m.courses)
	if n == 0 {
		return
	}
	m.cursor = ((m.cursor+delta)%n + n) % n
}

func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}
	w := m.config.ScreenW

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(menuTitleStyle.Render("M A R B L E   R U N"), w))
	b.WriteString("\n")
	b.WriteString(centerText(menuDimStyle.Render("roll to the goal, beat the clock"), w))
	b.WriteString("\n\n")

	for i, c := range m.courses {
		line := fmt.Sprintf("  %-18s %s", c.Title, recordLabel(c))
		if i == m.cursor {
			line = menuSelectedStyle.Render(fmt.Sprintf("> %-18s %s", c.Title, recordLabel(c)))
		}
		b.WriteString(centerText(line, w))
		b.WriteString("\n")
	}

	if len(m.courses) > 0 {
		if d := m.courses[m.cursor].Description; d != "" {
			b.WriteString("\n")
			b.WriteString(centerText(menuDimStyle.Render(d), w))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(centerText("↑/↓ choose  enter roll  tab records  q quit", w))
	b.WriteString("\n")
	return b.String()
}

func recordLabel(c Course) string {
	if c.Best <= 0 {
		return "no finish yet"
	}
	return fmt.Sprintf("best %.2fs (%d runs)", c.Best, c.Runs)
}

// Picked is the chosen course, or nil.
func (m MenuModel) Picked() *Course { return m.picked }

// IsQuitting reports whether the player left the picker.
func (m MenuModel) IsQuitting() bool { return m.quitting }

// WantsScoreboard reports whether the records board was requested.
func (m MenuModel) WantsScoreboard() bool { return m.board }

// Config is the runtime config, updated by resizes.
func (m MenuModel) Config() core.RuntimeConfig { return m.config }

// centerText pads text on the left to center it in width columns. Width is
// measured without ANSI styling.
func centerText(text string, width int) string {
	pad := (width - lipgloss.Width(text)) / 2
	if pad <= 0 {
		return text
	}
	return strings.Repeat(" ", pad) + text
}

// MenuResult is what the picker program ended with.
type MenuResult struct {
	CourseID        string
	Config          core.RuntimeConfig
	WantsScoreboard bool
	Quit            bool
}

// result folds the picker state into a MenuResult.
func (m MenuModel) result() MenuResult {
	r := MenuResult{Config: m.config}
	switch {
	case m.board:
		r.WantsScoreboard = true
	case m.picked != nil:
		r.CourseID = m.picked.ID
	default:
		r.Quit = true
	}
	return r
}

// RunMenu shows the course picker full screen until a choice is made.
func RunMenu(cfg core.RuntimeConfig, records RecordSource) (MenuResult, error) {
	final, err := tea.NewProgram(NewMenuModel(cfg, records), tea.WithAltScreen()).Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}
	m, ok := final.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}
	return m.result(), nil
}
