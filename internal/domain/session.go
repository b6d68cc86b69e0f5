package domain

import "time"

// CompletedStage records one stage completion within a session
type CompletedStage struct {
	StageID  int
	Duration time.Duration // time from stage start to validator success
	Commands int           // commands used during the stage attempt
}

// SessionStats tracks the lifetime counters of one session
type SessionStats struct {
	Commands  int
	Hints     int
	Solutions int
}

// ShouldRepeatStage implements the retry-once policy: a stage is
// repeated after completion exactly once when a hint or solution was
// used during the attempt.
func ShouldRepeatStage(helpUsed, alreadyRepeated bool) bool {
	return helpUsed && !alreadyRepeated
}
