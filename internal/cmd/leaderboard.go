package cmd

import (
	"context"
	"fmt"

	"gittrainer/internal/domain"
	"gittrainer/internal/ui"
)

// LeaderboardCmd shows the top recorded scores
type LeaderboardCmd struct {
	Limit int    `help:"Maximum number of entries" default:"10" short:"l"`
	DB    string `help:"SQLite database path for session history (defaults to the JSONL log)"`
}

// Run executes the leaderboard command
func (l *LeaderboardCmd) Run(cli *CLI) error {
	store, err := newSummaryRepository(l.DB, cli.settings)
	if err != nil {
		return fmt.Errorf("failed to open session history: %w", err)
	}
	defer store.Close()

	records, err := store.LoadAll(context.Background())
	if err != nil {
		return fmt.Errorf("failed to load session history: %w", err)
	}

	fmt.Println(ui.FormatLeaderboard(domain.Leaderboard(records, l.Limit)))
	return nil
}
