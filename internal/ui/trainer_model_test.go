package ui

import (
	"context"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gittrainer/internal/adapters/git"
	"gittrainer/internal/adapters/storage"
	"gittrainer/internal/application"
	"gittrainer/internal/domain"
	"gittrainer/internal/engine"
	"gittrainer/internal/sandbox"
	"gittrainer/internal/stages"
)

func TestFormatLeaderboard(t *testing.T) {
	assert.Equal(t, "No leaderboard data yet.", FormatLeaderboard(nil))

	rows := []domain.Summary{
		{Player: "renato", Score: 520, CompletedStageCount: 4, TotalStageCount: 20, Commands: 18, DurationSeconds: 95},
		{Player: "", Score: 410, CompletedStageCount: 3, TotalStageCount: 20, Commands: 25, DurationSeconds: 170},
	}

	out := FormatLeaderboard(rows)
	assert.Contains(t, out, "Git Trainer Leaderboard")
	assert.Contains(t, out, "1. renato score=520 stages=4/20")
	assert.Contains(t, out, "2. anonymous score=410")
}

func TestFormatSummary(t *testing.T) {
	out := FormatSummary(domain.Summary{
		Player: "ana", Score: 300,
		CompletedStageCount: 2, TotalStageCount: 20,
		Commands: 9, Hints: 1, Solutions: 0,
	})
	assert.Contains(t, out, "player=ana")
	assert.Contains(t, out, "score=300")
	assert.Contains(t, out, "stages=2/20")
}

func newTestModel(t *testing.T) *TrainerModel {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git binary not available")
	}

	store, err := storage.NewJSONLRepository(filepath.Join(t.TempDir(), "sessions.jsonl"))
	require.NoError(t, err)

	baseDir := t.TempDir()
	catalog := stages.NewCatalog()
	service := application.NewTrainerService(func() (*engine.Trainer, error) {
		sb, err := sandbox.New(baseDir, sandbox.DefaultTimeout)
		if err != nil {
			return nil, err
		}
		return engine.New(catalog, sb, git.NewCLIInspector(sb.RepoPath()), 1)
	}, store)
	t.Cleanup(func() { _ = service.CloseAll(context.Background()) })

	sessionID, err := service.StartSession(context.Background(), "renato")
	require.NoError(t, err)
	return NewTrainerModel(service, sessionID, "renato")
}

func transcriptText(m *TrainerModel) string {
	return strings.Join(m.transcript, "\n")
}

func TestTrainerModel_ShowsStageHeaderOnStart(t *testing.T) {
	m := newTestModel(t)
	assert.Contains(t, transcriptText(m), "[Stage 1/20] Cherry-pick Hotfix")
	assert.Contains(t, transcriptText(m), "Objective:")
}

func TestTrainerModel_Builtins(t *testing.T) {
	m := newTestModel(t)

	m.handleLine(":help")
	assert.Contains(t, transcriptText(m), ":leaderboard")

	m.handleLine(":status")
	assert.Contains(t, transcriptText(m), "in progress")

	m.handleLine(":hint")
	assert.Contains(t, transcriptText(m), "Hint: git log --oneline hotfix")

	m.handleLine(":commands")
	assert.Contains(t, transcriptText(m), "Allowed commands:")
	assert.Contains(t, transcriptText(m), "git")

	m.handleLine(":repo")
	assert.Contains(t, transcriptText(m), "repository snapshot")

	m.handleLine(":bogus")
	assert.Contains(t, transcriptText(m), "Unknown built-in :bogus")
}

func TestTrainerModel_SandboxCommandFlow(t *testing.T) {
	m := newTestModel(t)

	_, cmd := m.handleLine("git status")
	require.NotNil(t, cmd)
	assert.True(t, m.busy)

	msg := cmd()
	result, ok := msg.(commandResultMsg)
	require.True(t, ok)
	require.NoError(t, result.err)

	m.Update(result)
	assert.False(t, m.busy)
	assert.Contains(t, transcriptText(m), "branch main")
}

func TestTrainerModel_QuitEndsSession(t *testing.T) {
	m := newTestModel(t)

	_, cmd := m.handleLine(":quit")
	require.NotNil(t, cmd)

	msg := cmd()
	ended, ok := msg.(sessionEndedMsg)
	require.True(t, ok)
	require.NoError(t, ended.err)

	_, quit := m.Update(msg)
	require.NotNil(t, quit)
	assert.Equal(t, tea.Quit(), quit())

	require.NotNil(t, m.Summary())
	assert.Equal(t, "renato", m.Summary().Player)
}
