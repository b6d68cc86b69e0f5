package cmd

import (
	"time"

	"gittrainer/internal/adapters/git"
	"gittrainer/internal/adapters/storage"
	"gittrainer/internal/application"
	"gittrainer/internal/config"
	"gittrainer/internal/engine"
	"gittrainer/internal/ports"
	"gittrainer/internal/sandbox"
	"gittrainer/internal/stages"
)

// newSummaryRepository picks the history backend: SQLite when a
// database path is given (flag or settings.json), the append-only
// JSONL log otherwise.
func newSummaryRepository(dbPath string, settings *config.Settings) (ports.SummaryRepository, error) {
	if dbPath == "" && settings != nil {
		dbPath = settings.DBPath
	}
	if dbPath != "" {
		return storage.NewSQLiteRepository(dbPath)
	}

	logPath := ""
	if settings != nil {
		logPath = settings.SessionLogPath
	}
	if logPath == "" {
		var err error
		logPath, err = storage.DefaultLogPath()
		if err != nil {
			return nil, err
		}
	}
	return storage.NewJSONLRepository(logPath)
}

// commandTimeout resolves the per-command sandbox timeout from settings
func commandTimeout(settings *config.Settings) time.Duration {
	if settings != nil && settings.CommandTimeoutSeconds != nil && *settings.CommandTimeoutSeconds > 0 {
		return time.Duration(*settings.CommandTimeoutSeconds) * time.Second
	}
	return sandbox.DefaultTimeout
}

// newTrainerFactory builds the per-session trainer constructor: each
// call creates a fresh sandbox under the system temp dir.
func newTrainerFactory(catalog *stages.Catalog, startStage int, timeout time.Duration) application.TrainerFactory {
	return func() (*engine.Trainer, error) {
		sb, err := sandbox.New("", timeout)
		if err != nil {
			return nil, err
		}
		trainer, err := engine.New(catalog, sb, git.NewCLIInspector(sb.RepoPath()), startStage)
		if err != nil {
			_ = sb.Destroy()
			return nil, err
		}
		return trainer, nil
	}
}
