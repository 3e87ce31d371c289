package tui

import (
	"errors"
	"io"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/spikan/soda-clicker/internal/clock"
	"github.com/spikan/soda-clicker/internal/game"
	"github.com/spikan/soda-clicker/internal/loop"
)

// DefaultFPS is the frame rate used when none is configured.
const DefaultFPS = 30

// intervalStep is how far the interval keys move the autosave interval, in seconds.
const intervalStep = 15

// Config configures the game screen.
type Config struct {
	FPS     int
	Width   int
	Height  int
	Flash   *Flash        // Optional; receives feedback hooks
	History HistorySource // Optional; enables the save history view
	Clock   clock.Clock
	Logger  *log.Logger
}

// Model is the Bubble Tea model for the game screen.
type Model struct {
	game    *game.Game
	loop    *loop.Loop
	host    *loop.ManualHost
	clock   clock.Clock
	flash   *Flash
	history HistorySource
	logger  *log.Logger

	keys  KeyMap
	help  help.Model
	bar   progress.Model
	table table.Model

	fps         int
	width       int
	height      int
	showHistory bool
	status      string
	quitting    bool
}

// NewModel creates the game screen. The scheduler is created here and
// driven by the model's tick messages.
func NewModel(g *game.Game, cfg Config) Model {
	if cfg.FPS <= 0 {
		cfg.FPS = DefaultFPS
	}
	if cfg.Clock == nil {
		cfg.Clock = clock.Real{}
	}
	if cfg.Logger == nil {
		cfg.Logger = log.New(io.Discard)
	}
	if cfg.Flash == nil {
		cfg.Flash = NewFlash(cfg.Clock)
	}

	host := loop.NewManualHost()
	l := loop.New(host, cfg.Clock, loop.WithLogger(cfg.Logger))
	g.Attach(l)

	h := help.New()
	h.ShowAll = false

	m := Model{
		game:    g,
		loop:    l,
		host:    host,
		clock:   cfg.Clock,
		flash:   cfg.Flash,
		history: cfg.History,
		logger:  cfg.Logger,
		keys:    DefaultKeyMap(),
		help:    h,
		bar:     progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
		fps:     cfg.FPS,
	}
	m.table = newHistoryTable(cfg.Height)
	m = m.resize(cfg.Width, cfg.Height)
	return m
}

// Init starts the scheduler and the tick loop.
func (m Model) Init() tea.Cmd {
	m.loop.Start()
	return tickCmd(m.fps)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.resize(msg.Width, msg.Height), nil

	case TickMsg:
		m.host.Fire(m.clock.Now())
		return m, tickCmd(m.fps)
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		m.shutdown()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keys.History):
		m.showHistory = !m.showHistory && m.history != nil
		if m.showHistory {
			m.loadHistory()
		}
		return m, nil
	}

	if m.showHistory {
		if key.Matches(msg, m.keys.Up) || key.Matches(msg, m.keys.Down) {
			var cmd tea.Cmd
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	if id, ok := m.keys.UpgradeFor(msg); ok {
		if !m.game.Buy(id) {
			m.flash.Show("Not enough sips")
		}
		return m, nil
	}

	var err error
	switch {
	case key.Matches(msg, m.keys.Sip):
		m.game.Click()
	case key.Matches(msg, m.keys.ToggleAutosave):
		err = m.game.ToggleAutosave()
	case key.Matches(msg, m.keys.ToggleSounds):
		err = m.game.ToggleClickSounds()
	case key.Matches(msg, m.keys.ToggleMusic):
		err = m.game.ToggleMusic()
	case key.Matches(msg, m.keys.IntervalUp):
		err = m.game.SetAutosaveInterval(m.game.State().Options.AutosaveInterval + intervalStep)
	case key.Matches(msg, m.keys.IntervalDown):
		err = m.game.SetAutosaveInterval(m.game.State().Options.AutosaveInterval - intervalStep)
	case key.Matches(msg, m.keys.Save):
		err = m.game.Save()
	}
	m = m.report(err)
	return m, nil
}

// report surfaces an error in the status line and the log.
func (m Model) report(err error) Model {
	if err == nil || errors.Is(err, game.ErrNoSaveSystem) {
		m.status = ""
		return m
	}
	m.logger.Error("action failed", "error", err)
	m.status = err.Error()
	return m
}

func (m Model) resize(width, height int) Model {
	m.width = width
	m.height = height
	m.help.Width = width
	m.bar.Width = clamp(width-24, 10, 60)
	m.table.SetHeight(clamp(height-10, 3, 20))
	return m
}

// shutdown stops the scheduler and writes a final save.
func (m Model) shutdown() {
	m.loop.Stop()
	if err := m.game.Save(); err != nil && !errors.Is(err, game.ErrNoSaveSystem) {
		m.logger.Error("final save failed", "error", err)
	}
}

// Quitting reports whether the player asked to quit.
func (m Model) Quitting() bool {
	return m.quitting
}

// Run starts the Bubble Tea program for g.
func Run(g *game.Game, cfg Config) error {
	model := NewModel(g, cfg)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	final, err := p.Run()
	if err != nil {
		// The model may not have seen a quit key; still save
		model.shutdown()
		return err
	}
	if fm, ok := final.(Model); ok && !fm.Quitting() {
		fm.shutdown()
	}
	return nil
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
