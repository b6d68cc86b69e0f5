package domain

import (
	"sort"
	"time"
)

// Scoring constants: reward completions, refund unused command and time
// budget, charge for help.
const (
	StageReward       = 120
	CommandBudget     = 250
	CommandCost       = 2
	TimeBudgetSeconds = 300
	HintPenalty       = 5
	SolutionPenalty   = 10
)

// Summary is the immutable record of one finished session. It is
// appended to the session log as a single JSON line.
type Summary struct {
	SessionID           string    `json:"session_id"`
	Player              string    `json:"player"`
	StartedAt           time.Time `json:"started_at"`
	EndedAt             time.Time `json:"ended_at"`
	DurationSeconds     float64   `json:"duration_seconds"`
	Commands            int       `json:"commands"`
	Hints               int       `json:"hints"`
	Solutions           int       `json:"solutions"`
	CompletedStageIDs   []int     `json:"completed_stage_ids"`
	CompletedStageCount int       `json:"completed_stage_count"`
	TotalStageCount     int       `json:"total_stage_count"`
	Score               int       `json:"score"`
}

// ComputeScore converts session metrics into a non-negative score
func ComputeScore(completedCount, commands, hints, solutions int, duration time.Duration) int {
	score := completedCount * StageReward
	if unused := CommandBudget - commands*CommandCost; unused > 0 {
		score += unused
	}
	if unused := TimeBudgetSeconds - int(duration.Seconds()); unused > 0 {
		score += unused
	}
	score -= hints*HintPenalty + solutions*SolutionPenalty
	if score < 0 {
		return 0
	}
	return score
}

// Leaderboard reduces historical records to the best score per player,
// sorted descending. The sort is stable so the append order of the
// underlying log breaks ties.
func Leaderboard(records []Summary, limit int) []Summary {
	bestIndex := make(map[string]int)
	var best []Summary
	for _, rec := range records {
		player := rec.Player
		if player == "" {
			player = "anonymous"
		}
		if i, ok := bestIndex[player]; ok {
			if rec.Score > best[i].Score {
				best[i] = rec
			}
			continue
		}
		bestIndex[player] = len(best)
		best = append(best, rec)
	}

	sort.SliceStable(best, func(i, j int) bool {
		return best[i].Score > best[j].Score
	})

	if limit > 0 && len(best) > limit {
		best = best[:limit]
	}
	return best
}
