package tui

import (
	"strconv"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/spikan/soda-clicker/internal/config"
)

// KeyMap defines the key bindings of the game screen.
type KeyMap struct {
	Sip            key.Binding
	Buy            []key.Binding // One per upgrade, in config.UpgradeOrder
	ToggleAutosave key.Binding
	ToggleSounds   key.Binding
	ToggleMusic    key.Binding
	IntervalUp     key.Binding
	IntervalDown   key.Binding
	Save           key.Binding
	History        key.Binding
	Up             key.Binding
	Down           key.Binding
	Help           key.Binding
	Quit           key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Sip, k.buyHint(), k.History, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Sip, k.buyHint(), k.Save},
		{k.ToggleAutosave, k.IntervalUp, k.IntervalDown},
		{k.ToggleSounds, k.ToggleMusic},
		{k.History, k.Up, k.Down, k.Help, k.Quit},
	}
}

// buyHint is a display-only binding summarizing the number keys.
func (k KeyMap) buyHint() key.Binding {
	return key.NewBinding(
		key.WithKeys("1"),
		key.WithHelp("1-"+strconv.Itoa(len(k.Buy)), "buy upgrade"),
	)
}

// DefaultKeyMap returns default key bindings.
func DefaultKeyMap() KeyMap {
	buy := make([]key.Binding, len(config.UpgradeOrder))
	for i, id := range config.UpgradeOrder {
		n := strconv.Itoa(i + 1)
		buy[i] = key.NewBinding(
			key.WithKeys(n),
			key.WithHelp(n, "buy "+id),
		)
	}

	return KeyMap{
		Sip: key.NewBinding(
			key.WithKeys(" ", "enter"),
			key.WithHelp("space", "sip"),
		),
		Buy: buy,
		ToggleAutosave: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "autosave on/off"),
		),
		ToggleSounds: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "click sounds on/off"),
		),
		ToggleMusic: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "music on/off"),
		),
		IntervalUp: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "autosave less often"),
		),
		IntervalDown: key.NewBinding(
			key.WithKeys("-"),
			key.WithHelp("-", "autosave more often"),
		),
		Save: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "save now"),
		),
		History: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "save history"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more keys"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "save & quit"),
		),
	}
}

// UpgradeFor returns the upgrade ID bound to msg.
func (k KeyMap) UpgradeFor(msg tea.KeyMsg) (string, bool) {
	for i, b := range k.Buy {
		if key.Matches(msg, b) {
			return config.UpgradeOrder[i], true
		}
	}
	return "", false
}
