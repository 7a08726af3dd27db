// Package tui provides the terminal user interface for tramo.
package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/javiermolinar/tramo/internal/config"
	"github.com/javiermolinar/tramo/internal/logging"
	"github.com/javiermolinar/tramo/internal/phase"
	"github.com/javiermolinar/tramo/internal/session"
	"github.com/javiermolinar/tramo/internal/tui/commands"
	"github.com/javiermolinar/tramo/internal/tui/theme"
)

// Mode represents the current interaction mode.
type Mode int

const (
	ModeNormal   Mode = iota
	ModeDrag          // Pointer reorder in progress
	ModeKeyboard      // Keyboard reorder in progress
	ModePrompt
)

func (m Mode) String() string {
	switch m {
	case ModeNormal:
		return "Normal"
	case ModeDrag:
		return "Drag"
	case ModeKeyboard:
		return "Keyboard"
	case ModePrompt:
		return "Prompt"
	default:
		return "Unknown"
	}
}

// statusLine holds the latest announcement. It is shared by pointer so the
// engine's announcer and every copy of the Model see the same value.
type statusLine struct {
	text    string
	isError bool
	until   time.Time // Zero keeps the message until replaced
}

func (s *statusLine) set(text string) {
	s.text = text
	s.isError = false
	s.until = time.Time{}
}

// Model is the main TUI model.
type Model struct {
	// Dependencies
	repo   phase.Repository
	config *config.Config
	logger *zap.Logger

	// Theme and styles
	theme  *theme.Theme
	styles *Styles

	// Reorder engine and unsaved changes
	engine  *session.Engine
	pending *Pending

	// State
	projects      []*phase.Project
	current       int    // Index of the shown project
	selectProject string // Project name to focus on first load
	cursor        int    // Focused row
	scrollOffset  int
	mode          Mode
	loading       bool
	quitArmed     bool // q pressed once with unsaved changes
	initState     InitState

	// Components
	prompt textinput.Model

	// Terminal dimensions
	width  int
	height int

	// Messages
	status *statusLine

	// Error state
	err error
}

// ModelOption configures optional model behavior.
type ModelOption func(*Model)

// WithInitState sets the startup initialization state.
func WithInitState(state InitState) ModelOption {
	return func(m *Model) {
		m.initState = state
	}
}

// WithLogger sets the debug logger shared with the reorder engine.
func WithLogger(l *zap.Logger) ModelOption {
	return func(m *Model) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithProject focuses the named project once projects are loaded.
func WithProject(name string) ModelOption {
	return func(m *Model) {
		m.selectProject = name
	}
}

// New creates a new TUI model.
func New(repo phase.Repository, cfg *config.Config, opts ...ModelOption) Model {
	if cfg == nil {
		cfg = config.Default()
	}

	t, err := theme.Load(cfg.UI.Theme)
	if err != nil {
		// Fallback to mocha on error
		t, _ = theme.Load("mocha")
	}
	styles := NewStyles(t)

	ti := textinput.New()
	ti.Placeholder = "/add Name days"
	ti.CharLimit = 256
	ti.Prompt = "> "
	ti.PlaceholderStyle = styles.PlaceholderStyle
	ti.TextStyle = styles.PromptTextStyle
	ti.PromptStyle = styles.PromptTextStyle
	ti.Cursor.Style = styles.PromptCursorStyle
	ti.Cursor.TextStyle = styles.PromptTextStyle

	m := Model{
		repo:    repo,
		config:  cfg,
		logger:  zap.NewNop(),
		theme:   t,
		styles:  styles,
		pending: NewPending(),
		status:  &statusLine{},
		mode:    ModeNormal,
		loading: repo != nil,
		prompt:  ti,
	}
	for _, opt := range opts {
		opt(&m)
	}

	status := m.status
	logger := m.logger
	m.engine = session.New(
		session.WithLogger(logger),
		session.WithAnnouncer(session.AnnouncerFunc(func(msg string) {
			logger.Debug("ANNOUNCE", zap.String("text", logging.Truncate(msg, 120)))
			status.set(msg)
		})),
	)
	return m
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	if m.repo == nil {
		return nil
	}
	return commands.LoadProjects(m.repo, m.selectProject)
}

// Options configures Run.
type Options struct {
	Debug   bool
	Project string // Focus this project on start
}

// Run starts the TUI. A nil repo is opened from the config, initializing
// the config file and database on first use.
func Run(repo phase.Repository, cfg *config.Config, opts Options) error {
	logger, closeLog, err := logging.New(opts.Debug, cfg.Log.DebugPath)
	if err != nil {
		return err
	}
	defer closeLog()

	initialRepo := repo
	var initState InitState

	if repo == nil {
		state, err := DetectInitState(cfg)
		if err != nil {
			return err
		}
		initState = state
		repo, err = initializeStorage(cfg, state)
		if err != nil {
			return err
		}
	}

	model := New(repo, cfg,
		WithInitState(initState),
		WithLogger(logger),
		WithProject(opts.Project),
	)

	programOpts := []tea.ProgramOption{tea.WithAltScreen()}
	if cfg.UI.Mouse {
		programOpts = append(programOpts, tea.WithMouseCellMotion())
	}
	p := tea.NewProgram(model, programOpts...)
	finalModel, err := p.Run()
	if initialRepo == nil {
		if m, ok := finalModel.(Model); ok && m.repo != nil {
			_ = m.repo.Close()
		}
	}
	return err
}

// currentProject returns the shown project, or nil.
func (m Model) currentProject() *phase.Project {
	if m.current < 0 || m.current >= len(m.projects) {
		return nil
	}
	return m.projects[m.current]
}

// setMode switches the interaction mode and logs the change.
func (m *Model) setMode(to Mode, reason string) {
	if m.mode == to {
		return
	}
	m.logger.Debug("MODE_CHANGE",
		zap.Stringer("from", m.mode),
		zap.Stringer("to", to),
		zap.String("reason", reason),
	)
	m.mode = to
}

// selectedPhase returns the phase under the cursor in the accepted order.
func (m Model) selectedPhase() (phase.Phase, bool) {
	phases := m.engine.Phases()
	if m.cursor < 0 || m.cursor >= len(phases) {
		return phase.Phase{}, false
	}
	return phases[m.cursor], true
}
