package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestShouldRepeatStage(t *testing.T) {
	tests := []struct {
		name            string
		helpUsed        bool
		alreadyRepeated bool
		expected        bool
	}{
		{"help used first time", true, false, true},
		{"no help used", false, false, false},
		{"help used but already repeated", true, true, false},
		{"no help and already repeated", false, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ShouldRepeatStage(tt.helpUsed, tt.alreadyRepeated))
		})
	}
}

func TestComputeScore(t *testing.T) {
	tests := []struct {
		name      string
		completed int
		commands  int
		hints     int
		solutions int
		duration  time.Duration
		expected  int
	}{
		{"fast clean run", 5, 10, 0, 0, 60 * time.Second, 5*120 + (250 - 20) + (300 - 60)},
		{"command budget exhausted", 1, 200, 0, 0, 400 * time.Second, 120},
		{"help penalties apply", 2, 50, 3, 1, 100 * time.Second, 2*120 + (250 - 100) + (300 - 100) - 15 - 10},
		{"never negative", 0, 500, 20, 20, time.Hour, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeScore(tt.completed, tt.commands, tt.hints, tt.solutions, tt.duration)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestLeaderboard_BestScorePerPlayer(t *testing.T) {
	records := []Summary{
		{SessionID: "a", Player: "mina", Score: 100},
		{SessionID: "b", Player: "joon", Score: 150},
		{SessionID: "c", Player: "mina", Score: 200},
	}

	top := Leaderboard(records, 10)

	assert.Len(t, top, 2)
	assert.Equal(t, "mina", top[0].Player)
	assert.Equal(t, 200, top[0].Score)
	assert.Equal(t, "c", top[0].SessionID)
	assert.Equal(t, "joon", top[1].Player)
	assert.Equal(t, 150, top[1].Score)
}

func TestLeaderboard_TiesKeepInsertionOrder(t *testing.T) {
	records := []Summary{
		{SessionID: "first", Player: "alice", Score: 90},
		{SessionID: "second", Player: "bob", Score: 90},
	}

	top := Leaderboard(records, 10)

	assert.Len(t, top, 2)
	assert.Equal(t, "alice", top[0].Player)
	assert.Equal(t, "bob", top[1].Player)
}

func TestLeaderboard_LimitAndAnonymous(t *testing.T) {
	records := []Summary{
		{Player: "", Score: 10},
		{Player: "carol", Score: 30},
		{Player: "dave", Score: 20},
	}

	top := Leaderboard(records, 2)

	assert.Len(t, top, 2)
	assert.Equal(t, "carol", top[0].Player)
	assert.Equal(t, "dave", top[1].Player)
}
