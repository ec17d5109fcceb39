package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/vovakirdan/marble-run/internal/core"
	"github.com/vovakirdan/marble-run/internal/lobby"
	"github.com/vovakirdan/marble-run/internal/registry"
	"github.com/vovakirdan/marble-run/internal/storage"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.marble/host_key.
	HostKeyPath string

	// DBPath is the path to the best-times database.
	DBPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		DBPath:      "~/.marble/times.db",
		IdleTimeout: 30 * time.Minute,
	}
}

// SSHServer wraps a Wish SSH server for remote play.
type SSHServer struct {
	config SSHServerConfig
	server *ssh.Server
	store  *storage.Store
	room   *lobby.Room
	logger *log.Logger
}

// NewSSHServer creates a new SSH server with the given configuration.
func NewSSHServer(cfg SSHServerConfig) (*SSHServer, error) {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "marble-ssh",
	})

	// Open storage
	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		logger.Warn("could not open times database", "error", err)
		// Continue without storage
	}

	srv := &SSHServer{
		config: cfg,
		store:  store,
		room:   lobby.NewRoom(),
		logger: logger,
	}

	// Resolve host key path
	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		home, homeErr := os.UserHomeDir()
		if homeErr != nil {
			return nil, fmt.Errorf("cannot get home directory: %w", homeErr)
		}
		hostKeyPath = filepath.Join(home, ".marble", "host_key")
	}

	// Ensure host key directory exists
	hostKeyDir := filepath.Dir(hostKeyPath)
	if mkdirErr := os.MkdirAll(hostKeyDir, 0o700); mkdirErr != nil {
		return nil, fmt.Errorf("cannot create host key directory: %w", mkdirErr)
	}

	// Create Wish server options
	opts := []ssh.Option{
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.loggingMiddleware,
		),
	}

	// Create the server
	server, err := wish.NewServer(opts...)
	if err != nil {
		if store != nil {
			store.Close()
		}
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// teaHandler creates a Bubble Tea program for each SSH session.
func (s *SSHServer) teaHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sshSession.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sshSession.User())
		return nil, nil
	}

	// Create runtime config from PTY size
	cfg := core.RuntimeConfig{
		ScreenW:  pty.Window.Width,
		ScreenH:  pty.Window.Height,
		TickRate: 60,
		Seed:     time.Now().UnixNano(),
	}

	// Join the lobby for run announcements; leave when the connection ends
	user := sshSession.User()
	box := s.join(user)
	go func() {
		<-sshSession.Context().Done()
		s.leave(box)
	}()

	// Create session model that handles menu + course flow
	model := NewSessionModel(s.store, cfg, user).WithLobby(s.room, box)
	s.logger.Debug("session model ready", "user", sshSession.User(), "width", cfg.ScreenW, "height", cfg.ScreenH)

	return model, []tea.ProgramOption{
		tea.WithAltScreen(),
	}
}

// join gives a connecting player a mailbox in the room.
func (s *SSHServer) join(user string) *lobby.Mailbox {
	box := lobby.NewMailbox(lobby.NewSessionID(user, time.Now()), user, 16)
	online := s.room.Join(box)
	s.logger.Debug("lobby join", "user", user, "online", online)
	return box
}

// leave closes the player's mailbox and takes it out of the room.
func (s *SSHServer) leave(box *lobby.Mailbox) {
	box.Close()
	online := s.room.Leave(box.ID())
	s.logger.Debug("lobby leave", "user", box.Player(), "online", online)
}

// loggingMiddleware logs SSH session events.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		s.logger.Info("session started",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
		next(sshSession)
		s.logger.Info("session ended",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
	}
}

// ListenAndServe starts the SSH server and blocks until shutdown.
func (s *SSHServer) ListenAndServe() error {
	s.logger.Info("starting SSH server", "address", s.config.Address)

	// Setup signal handling for graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			s.logger.Error("server error", "error", err)
		}
	}()

	<-done
	s.logger.Info("shutting down...")
	return s.Shutdown()
}

// Shutdown gracefully stops the server.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if s.store != nil {
		s.store.Close()
	}

	return s.server.Shutdown(ctx)
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}

// SessionModel manages the full session flow: menu -> course -> menu, with
// the best-times board reachable from the menu. This is the top-level model
// used for SSH sessions.
type SessionModel struct {
	store     *storage.Store
	config    core.RuntimeConfig
	username  string
	menu      MenuModel
	board     *ScoreboardModel
	gameModel *Model
	quitting  bool

	room   *lobby.Room
	box    *lobby.Mailbox
	notice string // Latest announcement, shown under the menu
}

// lobbyEventMsg delivers an announcement from another session.
type lobbyEventMsg struct {
	evt lobby.Event
}

// waitForEvent blocks until the next announcement or the end of the session.
func waitForEvent(box *lobby.Mailbox) tea.Cmd {
	return func() tea.Msg {
		select {
		case evt := <-box.Announcements():
			return lobbyEventMsg{evt: evt}
		case <-box.Closed():
			return nil
		}
	}
}

// recordsOf avoids handing the menu a typed nil store.
func recordsOf(store *storage.Store) RecordSource {
	if store == nil {
		return nil
	}
	return store
}

// NewSessionModel creates a new session model.
func NewSessionModel(store *storage.Store, cfg core.RuntimeConfig, username string) SessionModel {
	return SessionModel{
		store:    store,
		config:   cfg,
		username: username,
		menu:     NewMenuModel(cfg, recordsOf(store)),
	}
}

// WithLobby connects the session to a lobby for run announcements.
func (m SessionModel) WithLobby(room *lobby.Room, box *lobby.Mailbox) SessionModel {
	m.room = room
	m.box = box
	return m
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	if m.box != nil {
		return tea.Batch(m.menu.Init(), waitForEvent(m.box))
	}
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Handle window resize globally
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	if evt, ok := msg.(lobbyEventMsg); ok {
		m.notice = evt.evt.Notice()
		if m.gameModel != nil {
			m.gameModel.ShowNotice(m.notice)
		}
		return m, waitForEvent(m.box)
	}

	switch {
	case m.gameModel != nil:
		return m.updateGame(msg)
	case m.board != nil:
		return m.updateBoard(msg)
	}
	return m.updateMenu(msg)
}

// updateMenu handles updates when in menu mode.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	// Check if user quit
	if m.menu.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.menu.WantsScoreboard() {
		var bs BoardStore
		if m.store != nil {
			bs = m.store
		}
		board := NewScoreboardModel(bs, m.config.ScreenW, m.config.ScreenH)
		m.board = &board
		return m, nil
	}

	// Check if a course was selected
	if picked := m.menu.Picked(); picked != nil {
		game, err := registry.Create(picked.ID)
		if err != nil {
			// Shouldn't happen since menu only shows registered courses
			return m, nil
		}

		m.config = m.menu.Config() // Get possibly updated config from resize
		m.config.Seed = time.Now().UnixNano()

		var ts TimeStore
		if m.store != nil {
			ts = m.store
		}
		gameModel := NewModel(game, ts, m.config).WithPlayer(m.username)
		gameModel.canGoBack = true
		m.gameModel = &gameModel

		return m, m.gameModel.Init()
	}

	return m, cmd
}

// updateBoard handles updates when the best-times board is open.
func (m SessionModel) updateBoard(msg tea.Msg) (tea.Model, tea.Cmd) {
	newBoard, cmd := m.board.Update(msg)
	if board, ok := newBoard.(ScoreboardModel); ok {
		m.board = &board
	}

	if m.board.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.board.IsGoingBack() {
		m.board = nil
		m.menu = NewMenuModel(m.config, recordsOf(m.store))
		return m, m.menu.Init()
	}
	return m, cmd
}

// updateGame handles updates when a course is running.
func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	saved := m.gameModel.Saved()
	newModel, cmd := m.gameModel.Update(msg)
	if gameModel, ok := newModel.(Model); ok {
		m.gameModel = &gameModel
	}

	// Announce a finished run to everyone else
	if m.gameModel.Saved() > saved && m.room != nil && m.box != nil {
		run, record := m.gameModel.LastRun()
		m.room.Announce(lobby.RunFinishedEvent{
			Player:     m.username,
			CourseID:   run.CourseID,
			CourseName: m.gameModel.game.Title(),
			Seed:       run.Seed,
			Duration:   run.Duration,
			LayoutBest: record,
		}, m.box.ID())
	}

	// Back to menu
	if m.gameModel.BackToMenu() {
		m.gameModel = nil
		m.menu = NewMenuModel(m.config, recordsOf(m.store))
		return m, m.menu.Init()
	}

	// Check if user quit entirely
	if m.gameModel.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	return m, cmd
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch {
	case m.gameModel != nil:
		return m.gameModel.View()
	case m.board != nil:
		return m.board.View()
	}
	if m.notice != "" {
		return m.menu.View() + "\n" + centerText(m.notice, m.config.ScreenW) + "\n"
	}
	return m.menu.View()
}
