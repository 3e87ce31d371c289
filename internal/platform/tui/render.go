package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	ltable "github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"

	"github.com/spikan/soda-clicker/internal/game"
	"github.com/spikan/soda-clicker/internal/state"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57")).
			Padding(0, 2)
	sipsStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214"))
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	flashStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	panelStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1)
	cupStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("208"))
	cupHotStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("226"))
	onStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	offStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

const cupArt = ` \   /
  |~|
 |   |
 |___|`

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	s := m.game.State()
	var b strings.Builder

	b.WriteString(titleStyle.Render("SODA CLICKER"))
	b.WriteString("  ")
	if text := m.flash.Text(); text != "" {
		b.WriteString(flashStyle.Render(text))
	}
	b.WriteString("\n\n")

	if m.showHistory {
		b.WriteString(panelStyle.Render(m.historyView()))
	} else {
		left := lipgloss.JoinVertical(lipgloss.Left,
			m.renderCup(),
			"",
			m.renderStats(s),
		)
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
			panelStyle.Render(left),
			"  ",
			renderShop(m.game.Costs()),
		))
	}

	b.WriteString("\n")
	b.WriteString(m.renderOptions(s))
	b.WriteString("\n")
	if m.status != "" {
		b.WriteString(errorStyle.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

func (m Model) renderCup() string {
	style := cupStyle
	if m.flash.Pulsing() {
		style = cupHotStyle
	}
	s := m.game.State()
	return lipgloss.JoinVertical(lipgloss.Left,
		style.Render(cupArt),
		sipsStyle.Render(s.Sips.Short()+" sips"),
		m.bar.ViewAs(s.Drink.Progress),
	)
}

func (m Model) renderStats(s state.State) string {
	p := s.Production
	rows := [][2]string{
		{"per drink", p.SPD.Short()},
		{"drink every", fmtDuration(s.Drink.Rate)},
		{"per click", p.ClickValue.Short()},
		{"critical", fmt.Sprintf("%.2f%% x%g", p.CriticalChance*100, p.CriticalMultiplier)},
		{"level", fmt.Sprintf("%d (next at %s)", s.Level, m.game.NextLevelAt().Short())},
		{"total earned", s.TotalSipsEarned.Short()},
		{"clicks", humanize.Comma(s.Clicks.Total)},
		{"streak", fmt.Sprintf("%d (best %d)", s.Clicks.Streak, s.Clicks.BestStreak)},
		{"clicks/sec", strconv.FormatFloat(m.game.ClickRate(), 'f', 1, 64)},
		{"played", fmtDuration(s.PlayTime)},
	}

	lines := make([]string, len(rows))
	for i, r := range rows {
		lines[i] = labelStyle.Render(fmt.Sprintf("%-13s", r[0])) + valueStyle.Render(r[1])
	}
	return strings.Join(lines, "\n")
}

// renderShop renders the upgrade shop; rows the player cannot afford are dimmed.
func renderShop(offers []game.Offer) string {
	t := ltable.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("240"))).
		Headers("Key", "Upgrade", "Owned", "Cost", "Effect")

	for i, o := range offers {
		t.Row(strconv.Itoa(i+1), o.Name, strconv.Itoa(o.Owned), o.Cost.Short(), o.Description)
	}

	t.StyleFunc(func(row, col int) lipgloss.Style {
		base := lipgloss.NewStyle().Padding(0, 1)
		if row == ltable.HeaderRow {
			return base.Bold(true).Foreground(lipgloss.Color("229"))
		}
		if row >= 0 && row < len(offers) && !offers[row].Affordable {
			return base.Foreground(lipgloss.Color("241"))
		}
		return base.Foreground(lipgloss.Color("10"))
	})

	return t.Render()
}

func (m Model) renderOptions(s state.State) string {
	o := s.Options
	saved := "never saved"
	if !s.LastSaveTime.IsZero() {
		saved = "saved " + humanize.RelTime(s.LastSaveTime, m.clock.Now(), "ago", "from now")
	}
	parts := []string{
		toggle("autosave", o.AutosaveEnabled) + labelStyle.Render(fmt.Sprintf(" every %ds", o.AutosaveInterval)),
		toggle("sounds", o.ClickSoundsEnabled),
		toggle("music", o.MusicEnabled),
		labelStyle.Render(saved),
	}
	return strings.Join(parts, labelStyle.Render(" | "))
}

func toggle(name string, on bool) string {
	if on {
		return onStyle.Render(name + " on")
	}
	return offStyle.Render(name + " off")
}

func fmtDuration(d time.Duration) string {
	if d < time.Minute {
		return strconv.FormatFloat(d.Seconds(), 'f', 1, 64) + "s"
	}
	return d.Round(time.Second).String()
}
