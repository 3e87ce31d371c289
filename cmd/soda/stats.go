package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/spikan/soda-clicker/internal/bignum"
	"github.com/spikan/soda-clicker/internal/feedback"
)

var flagStatsHistory int

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show progress and save history",
	Long: `Display the current save, owned upgrades and the most recent saves.

Examples:
  soda stats
  soda stats --history 20`,
	Args: cobra.NoArgs,
	RunE: runStats,
}

func init() {
	statsCmd.Flags().IntVar(&flagStatsHistory, "history", 5, "How many recent saves to list")
}

var (
	statsTitle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	statsBorder = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	statsHeader = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	statsCell   = lipgloss.NewStyle().Padding(0, 1)
)

func newStatsTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(statsBorder).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return statsHeader
			}
			return statsCell
		})
}

func runStats(cmd *cobra.Command, args []string) error {
	logger, err := newLogger(os.Stderr)
	if err != nil {
		return err
	}
	rt, err := openRuntime(logger, feedback.Hooks{})
	if err != nil {
		return err
	}
	defer rt.Close()

	s := rt.game.State()
	lastSave := "never"
	if !s.LastSaveTime.IsZero() {
		lastSave = humanize.Time(s.LastSaveTime)
	}

	summary := newStatsTable("Stat", "Value").
		Row("Sips", s.Sips.Short()).
		Row("Total earned", s.TotalSipsEarned.Short()).
		Row("Per drink", s.Production.SPD.Short()).
		Row("Drink every", s.Drink.Rate.String()).
		Row("Level", strconv.Itoa(s.Level)).
		Row("Next level at", rt.game.NextLevelAt().Short()).
		Row("Clicks", humanize.Comma(s.Clicks.Total)).
		Row("Best streak", strconv.Itoa(s.Clicks.BestStreak)).
		Row("Play time", s.PlayTime.Round(time.Second).String()).
		Row("Last save", lastSave).
		Row("Save ID", s.SaveID)

	fmt.Println(statsTitle.Render("Soda Clicker"))
	fmt.Println(summary.Render())

	upgrades := newStatsTable("Upgrade", "Owned", "Next cost")
	for _, o := range rt.game.Costs() {
		upgrades.Row(o.Name, strconv.Itoa(o.Owned), o.Cost.Short())
	}
	fmt.Println()
	fmt.Println(statsTitle.Render("Upgrades"))
	fmt.Println(upgrades.Render())

	hs, err := rt.db.HistoryStats(s.SaveID)
	if err != nil {
		return err
	}
	entries, err := rt.db.RecentHistory(s.SaveID, flagStatsHistory)
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(statsTitle.Render("Save history"))
	if hs.Saves == 0 {
		fmt.Println("No saves recorded yet.")
		fmt.Println()
		fmt.Println("Play 'soda play' to make the first one!")
		return nil
	}
	fmt.Printf("%s saves since %s, highest level %d\n",
		humanize.Comma(int64(hs.Saves)), hs.FirstSave.Format("2006-01-02 15:04"), hs.MaxLevel)

	history := newStatsTable("Saved", "Sips", "Level", "Clicks")
	for _, e := range entries {
		sips := e.Sips
		if n, err := bignum.Parse(e.Sips); err == nil {
			sips = n.Short()
		}
		history.Row(e.SavedAt.Format("2006-01-02 15:04"), sips, strconv.Itoa(e.Level), humanize.Comma(e.TotalClicks))
	}
	fmt.Println(history.Render())
	return nil
}
