package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gittrainer/internal/domain"
)

func testSummary(sessionID, player string, score int) domain.Summary {
	started := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	return domain.Summary{
		SessionID:           sessionID,
		Player:              player,
		StartedAt:           started,
		EndedAt:             started.Add(4 * time.Minute),
		DurationSeconds:     240,
		Commands:            17,
		Hints:               1,
		Solutions:           0,
		CompletedStageIDs:   []int{1, 2, 3},
		CompletedStageCount: 3,
		TotalStageCount:     20,
		Score:               score,
	}
}

func TestJSONLRepository_RoundTrip(t *testing.T) {
	repo, err := NewJSONLRepository(filepath.Join(t.TempDir(), "sessions.jsonl"))
	require.NoError(t, err)
	defer repo.Close()

	first := testSummary("s-1", "renato", 500)
	second := testSummary("s-2", "ana", 420)

	ctx := context.Background()
	require.NoError(t, repo.Append(ctx, first))
	require.NoError(t, repo.Append(ctx, second))

	loaded, err := repo.LoadAll(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 2)
	assert.Equal(t, first, loaded[0], "records round-trip without loss")
	assert.Equal(t, second, loaded[1])
}

func TestJSONLRepository_MissingFileIsEmptyHistory(t *testing.T) {
	repo, err := NewJSONLRepository(filepath.Join(t.TempDir(), "sessions.jsonl"))
	require.NoError(t, err)

	loaded, err := repo.LoadAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, loaded)
}

func TestJSONLRepository_SkipsMalformedLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sessions.jsonl")
	repo, err := NewJSONLRepository(path)
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, repo.Append(ctx, testSummary("s-1", "renato", 500)))

	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0644)
	require.NoError(t, err)
	_, err = f.WriteString("{this is not json\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	require.NoError(t, repo.Append(ctx, testSummary("s-2", "ana", 420)))

	loaded, err := repo.LoadAll(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 2, "corrupt line is skipped, valid records survive")
	assert.Equal(t, "s-1", loaded[0].SessionID)
	assert.Equal(t, "s-2", loaded[1].SessionID)
}

func TestJSONLRepository_AppendOrderIsHistoryOrder(t *testing.T) {
	repo, err := NewJSONLRepository(filepath.Join(t.TempDir(), "sessions.jsonl"))
	require.NoError(t, err)

	ctx := context.Background()
	for i, id := range []string{"a", "b", "c"} {
		require.NoError(t, repo.Append(ctx, testSummary(id, "p", 100+i)))
	}

	loaded, err := repo.LoadAll(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 3)
	assert.Equal(t, "a", loaded[0].SessionID)
	assert.Equal(t, "c", loaded[2].SessionID)
}
