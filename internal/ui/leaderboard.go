package ui

import (
	"fmt"
	"strings"

	"gittrainer/internal/domain"
)

// FormatLeaderboard renders ranked summaries as plain text
func FormatLeaderboard(rows []domain.Summary) string {
	if len(rows) == 0 {
		return "No leaderboard data yet."
	}

	lines := []string{"Git Trainer Leaderboard"}
	for i, row := range rows {
		player := row.Player
		if player == "" {
			player = "anonymous"
		}
		lines = append(lines, fmt.Sprintf(
			"%d. %s score=%d stages=%d/%d commands=%d duration=%.0fs",
			i+1, player, row.Score,
			row.CompletedStageCount, row.TotalStageCount,
			row.Commands, row.DurationSeconds,
		))
	}
	return strings.Join(lines, "\n")
}

// FormatSummary renders a finished session for the goodbye screen
func FormatSummary(summary domain.Summary) string {
	return fmt.Sprintf(
		"Session saved: player=%s score=%d stages=%d/%d commands=%d hints=%d solutions=%d",
		summary.Player, summary.Score,
		summary.CompletedStageCount, summary.TotalStageCount,
		summary.Commands, summary.Hints, summary.Solutions,
	)
}
