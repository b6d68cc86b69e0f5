package application

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"gittrainer/internal/domain"
	"gittrainer/internal/engine"
	"gittrainer/internal/logging"
	"gittrainer/internal/ports"
)

// TrainerFactory builds a ready-to-play trainer (sandbox created, first
// stage set up). Wired in cmd so the service stays adapter-free.
type TrainerFactory func() (*engine.Trainer, error)

// session pairs a trainer with its serialization lock. The engine is
// not concurrency-safe; all access to one session goes through mu.
type session struct {
	mu      sync.Mutex
	trainer *engine.Trainer
	player  string
}

// TrainerService is the session registry: it owns every live trainer
// and the summary store, and serializes access per session.
type TrainerService struct {
	newTrainer TrainerFactory
	store      ports.SummaryRepository

	mu       sync.Mutex
	sessions map[string]*session
}

// NewTrainerService creates a new TrainerService
func NewTrainerService(newTrainer TrainerFactory, store ports.SummaryRepository) *TrainerService {
	return &TrainerService{
		newTrainer: newTrainer,
		store:      store,
		sessions:   make(map[string]*session),
	}
}

// StartSession creates a trainer for the player and registers it
func (s *TrainerService) StartSession(ctx context.Context, player string) (string, error) {
	trainer, err := s.newTrainer()
	if err != nil {
		return "", fmt.Errorf("failed to start session: %w", err)
	}

	id := trainer.SessionID()
	s.mu.Lock()
	if _, exists := s.sessions[id]; exists {
		s.mu.Unlock()
		_ = trainer.Close()
		return "", fmt.Errorf("%w: %s", domain.ErrSessionExists, id)
	}
	s.sessions[id] = &session{trainer: trainer, player: player}
	s.mu.Unlock()

	logging.Logger.Info("Session registered", "session_id", id, "player", player)
	return id, nil
}

func (s *TrainerService) lookup(id string) (*session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrSessionNotFound, id)
	}
	return sess, nil
}

// SubmitCommand runs one command in the session's sandbox
func (s *TrainerService) SubmitCommand(ctx context.Context, sessionID, line string) (engine.SubmitResult, error) {
	sess, err := s.lookup(sessionID)
	if err != nil {
		return engine.SubmitResult{}, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.trainer.SubmitCommand(ctx, line)
}

// UseHint returns the current stage's hint
func (s *TrainerService) UseHint(sessionID string) (string, error) {
	sess, err := s.lookup(sessionID)
	if err != nil {
		return "", err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.trainer.UseHint(), nil
}

// UseSolution returns the current stage's solution
func (s *TrainerService) UseSolution(sessionID string) (string, error) {
	sess, err := s.lookup(sessionID)
	if err != nil {
		return "", err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.trainer.UseSolution(), nil
}

// GetStatus renders the session's one-line progress summary
func (s *TrainerService) GetStatus(sessionID string) (string, error) {
	sess, err := s.lookup(sessionID)
	if err != nil {
		return "", err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.trainer.Status(), nil
}

// CurrentStage returns the stage in play and the curriculum size
func (s *TrainerService) CurrentStage(sessionID string) (StageView, error) {
	sess, err := s.lookup(sessionID)
	if err != nil {
		return StageView{}, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return stageViewFromDomain(sess.trainer.CurrentStage(), sess.trainer.TotalStages()), nil
}

// ResetStage rebuilds the session's current stage from scratch
func (s *TrainerService) ResetStage(sessionID string) error {
	sess, err := s.lookup(sessionID)
	if err != nil {
		return err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.trainer.ResetStage()
}

// Snapshot renders a read-only view of the session's repository for
// the presentation layer.
func (s *TrainerService) Snapshot(sessionID string) (string, error) {
	sess, err := s.lookup(sessionID)
	if err != nil {
		return "", err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.trainer.Snapshot(), nil
}

// EndSession freezes the session into a summary, persists it, destroys
// the sandbox, and unregisters the session. The summary is returned
// even when persisting fails.
func (s *TrainerService) EndSession(ctx context.Context, sessionID string) (domain.Summary, error) {
	s.mu.Lock()
	sess, ok := s.sessions[sessionID]
	if !ok {
		s.mu.Unlock()
		return domain.Summary{}, fmt.Errorf("%w: %s", domain.ErrSessionNotFound, sessionID)
	}
	delete(s.sessions, sessionID)
	s.mu.Unlock()

	sess.mu.Lock()
	defer sess.mu.Unlock()

	summary := sess.trainer.BuildSummary(sess.player)
	appendErr := s.store.Append(ctx, summary)
	if appendErr != nil {
		logging.Logger.Error("Failed to persist session summary",
			"session_id", sessionID, "error", appendErr)
	}
	if err := sess.trainer.Close(); err != nil {
		logging.Logger.Error("Failed to destroy session sandbox",
			"session_id", sessionID, "error", err)
	}
	return summary, appendErr
}

// Leaderboard computes the best-score-per-player ranking from the full
// session history.
func (s *TrainerService) Leaderboard(ctx context.Context, limit int) ([]domain.Summary, error) {
	records, err := s.store.LoadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load session history: %w", err)
	}
	return domain.Leaderboard(records, limit), nil
}

// CloseAll ends every live session concurrently and closes the store.
// Used on process shutdown so no sandbox directory is leaked.
func (s *TrainerService) CloseAll(ctx context.Context) error {
	s.mu.Lock()
	remaining := make([]string, 0, len(s.sessions))
	for id := range s.sessions {
		remaining = append(remaining, id)
	}
	s.mu.Unlock()

	g, ctx := errgroup.WithContext(ctx)
	for _, id := range remaining {
		g.Go(func() error {
			_, err := s.EndSession(ctx, id)
			return err
		})
	}
	err := g.Wait()

	if closeErr := s.store.Close(); closeErr != nil && err == nil {
		err = closeErr
	}
	return err
}
