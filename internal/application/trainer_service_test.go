package application

import (
	"context"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gittrainer/internal/adapters/git"
	"gittrainer/internal/adapters/storage"
	"gittrainer/internal/domain"
	"gittrainer/internal/engine"
	"gittrainer/internal/sandbox"
	"gittrainer/internal/stages"
)

func newTestService(t *testing.T) *TrainerService {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git binary not available")
	}

	store, err := storage.NewJSONLRepository(filepath.Join(t.TempDir(), "sessions.jsonl"))
	require.NoError(t, err)

	baseDir := t.TempDir()
	catalog := stages.NewCatalog()
	factory := func() (*engine.Trainer, error) {
		sb, err := sandbox.New(baseDir, sandbox.DefaultTimeout)
		if err != nil {
			return nil, err
		}
		return engine.New(catalog, sb, git.NewCLIInspector(sb.RepoPath()), 1)
	}

	service := NewTrainerService(factory, store)
	t.Cleanup(func() { _ = service.CloseAll(context.Background()) })
	return service
}

func TestTrainerService_SessionLifecycle(t *testing.T) {
	service := newTestService(t)
	ctx := context.Background()

	id, err := service.StartSession(ctx, "renato")
	require.NoError(t, err)
	require.NotEmpty(t, id)

	status, err := service.GetStatus(id)
	require.NoError(t, err)
	assert.Contains(t, status, "[Stage 1/20]")

	stage, err := service.CurrentStage(id)
	require.NoError(t, err)
	assert.Equal(t, 1, stage.ID)
	assert.Equal(t, 20, stage.TotalStages)

	result, err := service.SubmitCommand(ctx, id, "git status")
	require.NoError(t, err)
	assert.NotEmpty(t, result.Output)
	assert.False(t, result.Completed)

	summary, err := service.EndSession(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, id, summary.SessionID)
	assert.Equal(t, "renato", summary.Player)
	assert.Equal(t, 1, summary.Commands)

	// The session is gone after ending
	_, err = service.GetStatus(id)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestTrainerService_UnknownSession(t *testing.T) {
	service := newTestService(t)
	ctx := context.Background()

	_, err := service.SubmitCommand(ctx, "nope", "git status")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)

	_, err = service.UseHint("nope")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)

	_, err = service.EndSession(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestTrainerService_HelpCountsIntoSummary(t *testing.T) {
	service := newTestService(t)
	ctx := context.Background()

	id, err := service.StartSession(ctx, "ana")
	require.NoError(t, err)

	hint, err := service.UseHint(id)
	require.NoError(t, err)
	assert.NotEmpty(t, hint)

	solution, err := service.UseSolution(id)
	require.NoError(t, err)
	assert.NotEmpty(t, solution)

	summary, err := service.EndSession(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Hints)
	assert.Equal(t, 1, summary.Solutions)
}

func TestTrainerService_LeaderboardFromEndedSessions(t *testing.T) {
	service := newTestService(t)
	ctx := context.Background()

	for _, player := range []string{"renato", "ana"} {
		id, err := service.StartSession(ctx, player)
		require.NoError(t, err)
		_, err = service.EndSession(ctx, id)
		require.NoError(t, err)
	}

	board, err := service.Leaderboard(ctx, 10)
	require.NoError(t, err)
	require.Len(t, board, 2)
	assert.GreaterOrEqual(t, board[0].Score, board[1].Score)
}

func TestTrainerService_CloseAllEndsLiveSessions(t *testing.T) {
	service := newTestService(t)
	ctx := context.Background()

	id, err := service.StartSession(ctx, "renato")
	require.NoError(t, err)

	require.NoError(t, service.CloseAll(ctx))

	_, err = service.GetStatus(id)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}
