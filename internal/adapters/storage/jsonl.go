package storage

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gittrainer/internal/domain"
	"gittrainer/internal/logging"
	"gittrainer/internal/ports"
)

// JSONLRepository implements ports.SummaryRepository as an append-only
// log, one JSON record per line. Appends take an exclusive file lock so
// concurrent sessions never interleave partial lines.
type JSONLRepository struct {
	path string
}

// Verify interface compliance at compile time
var _ ports.SummaryRepository = (*JSONLRepository)(nil)

// DefaultLogPath resolves the session log location:
// $GIT_TRAINER_HOME/sessions.jsonl, or ~/.gittrainer/sessions.jsonl.
func DefaultLogPath() (string, error) {
	if home := os.Getenv("GIT_TRAINER_HOME"); home != "" {
		return filepath.Join(home, "sessions.jsonl"), nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".gittrainer", "sessions.jsonl"), nil
}

// NewJSONLRepository creates the log's directory if needed
func NewJSONLRepository(path string) (*JSONLRepository, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	return &JSONLRepository{path: path}, nil
}

// Append implements ports.SummaryWriter
func (r *JSONLRepository) Append(ctx context.Context, summary domain.Summary) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("failed to encode summary: %w", err)
	}

	file, err := os.OpenFile(r.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open session log: %w", err)
	}
	defer file.Close()

	if err := lockFile(file); err != nil {
		return fmt.Errorf("failed to lock session log: %w", err)
	}
	defer unlockFile(file)

	if _, err := file.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to append summary: %w", err)
	}
	return nil
}

// LoadAll implements ports.SummaryReader. Malformed lines are skipped
// with a warning so one corrupt record never hides the history.
func (r *JSONLRepository) LoadAll(ctx context.Context) ([]domain.Summary, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	file, err := os.Open(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to open session log: %w", err)
	}
	defer file.Close()

	var summaries []domain.Summary
	scanner := bufio.NewScanner(file)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var summary domain.Summary
		if err := json.Unmarshal(line, &summary); err != nil {
			logging.Logger.Warn("Skipping malformed session log line",
				"path", r.path, "line", lineNo, "error", err)
			continue
		}
		summaries = append(summaries, summary)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read session log: %w", err)
	}
	return summaries, nil
}

// Close implements ports.SummaryRepository. The log holds no open
// handles between calls.
func (r *JSONLRepository) Close() error {
	return nil
}
