package tui

import (
	"strconv"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/spikan/soda-clicker/internal/bignum"
	"github.com/spikan/soda-clicker/internal/save"
)

// maxHistory is how many saves the history view loads.
const maxHistory = 50

// HistorySource lists recent saves, newest first.
type HistorySource interface {
	RecentHistory(saveID string, limit int) ([]save.HistoryEntry, error)
}

// newHistoryTable creates the table used by the save history view.
func newHistoryTable(height int) table.Model {
	columns := []table.Column{
		{Title: "Saved", Width: 14},
		{Title: "Sips", Width: 22},
		{Title: "Level", Width: 6},
		{Title: "Clicks", Width: 10},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(clamp(height-10, 3, 20)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// historyRows converts history entries into table rows.
func historyRows(entries []save.HistoryEntry) []table.Row {
	rows := make([]table.Row, len(entries))
	for i, e := range entries {
		sips := e.Sips
		if n, err := bignum.Parse(e.Sips); err == nil {
			sips = n.Short()
		}
		rows[i] = table.Row{
			e.SavedAt.Format("Jan 02 15:04"),
			sips,
			strconv.Itoa(e.Level),
			strconv.FormatInt(e.TotalClicks, 10),
		}
	}
	return rows
}

// loadHistory refreshes the table from the history source.
func (m *Model) loadHistory() {
	if m.history == nil {
		m.table.SetRows(nil)
		return
	}

	entries, err := m.history.RecentHistory(m.game.State().SaveID, maxHistory)
	if err != nil {
		m.logger.Warn("cannot load save history", "error", err)
		entries = nil
	}
	m.table.SetRows(historyRows(entries))

	// Reset cursor to top
	m.table.GotoTop()
}

// historyView renders the table or an empty message.
func (m Model) historyView() string {
	if len(m.table.Rows()) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		return emptyStyle.Render("No saves recorded yet.\nPress ctrl+s to save now.")
	}
	return m.table.View()
}
