package engine

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"gittrainer/internal/adapters/git"
	"gittrainer/internal/domain"
	"gittrainer/internal/logging"
	"gittrainer/internal/sandbox"
	"gittrainer/internal/stages"
)

// Trainer is the state machine of one training session: one sandbox, one
// current stage, lifetime counters, and the retry-once policy. It is not
// safe for concurrent use; callers serialize per session.
type Trainer struct {
	catalog   *stages.Catalog
	sandbox   *sandbox.Sandbox
	inspector domain.RepoInspector

	sessionID string
	startedAt time.Time

	stage          domain.Stage
	stageStartedAt time.Time
	helpUsed       bool
	stageRepeated  bool

	// command counter value when the current stage attempt began
	commandsAtStageStart int

	stats     domain.SessionStats
	completed []domain.CompletedStage
}

// New creates a session starting at the given stage and runs its setup.
// The trainer takes ownership of the sandbox; Close destroys it.
func New(catalog *stages.Catalog, sb *sandbox.Sandbox, inspector domain.RepoInspector, startStage int) (*Trainer, error) {
	t := &Trainer{
		catalog:   catalog,
		sandbox:   sb,
		inspector: inspector,
		sessionID: uuid.New().String(),
		startedAt: time.Now().UTC(),
	}
	if err := t.setupStage(startStage); err != nil {
		return nil, err
	}
	logging.Logger.Info("Session started", "session_id", t.sessionID, "stage", startStage)
	return t, nil
}

// SessionID returns the unique id of this session
func (t *Trainer) SessionID() string {
	return t.sessionID
}

// CurrentStage returns the stage in play
func (t *Trainer) CurrentStage() domain.Stage {
	return t.stage
}

// TotalStages returns the size of the curriculum
func (t *Trainer) TotalStages() int {
	return t.catalog.Count()
}

// Stats returns the lifetime session counters
func (t *Trainer) Stats() domain.SessionStats {
	return t.stats
}

// RepoPath returns the working copy learner commands run in
func (t *Trainer) RepoPath() string {
	return t.sandbox.RepoPath()
}

// Snapshot renders a read-only view of the sandbox repository
func (t *Trainer) Snapshot() string {
	return git.CaptureSnapshot(t.sandbox.RepoPath()).Render()
}

// setupStage switches to the stage and rebuilds the sandbox for it.
// Per-stage bookkeeping restarts; lifetime counters are untouched.
func (t *Trainer) setupStage(id int) error {
	stage, err := t.catalog.Get(id)
	if err != nil {
		return err
	}
	if err := t.sandbox.ApplySetup(stage); err != nil {
		return err
	}
	t.stage = stage
	t.stageStartedAt = time.Now().UTC()
	t.helpUsed = false
	t.commandsAtStageStart = t.stats.Commands
	return nil
}

// SubmitResult is the outcome of one submitted command line
type SubmitResult struct {
	Output      string
	Completed   bool   // the current stage's objective was met
	Repeated    bool   // same stage was replayed because help was used
	SessionDone bool   // the last stage was completed
	StageID     int    // stage in play after any transition
	Message     string // transition note for the learner, empty otherwise
}

// SubmitCommand runs one learner command and re-evaluates the stage.
// Execution failures become output text; only a failed setup during a
// stage transition is an error, and the transition may be retried by
// submitting again.
func (t *Trainer) SubmitCommand(ctx context.Context, line string) (SubmitResult, error) {
	t.stats.Commands++
	exec := t.sandbox.Execute(ctx, line)

	// Validate even after rejected or failed commands: the learner may
	// have finished the objective on an earlier command.
	ok, _ := t.stage.Validator.Validate(t.inspector)
	if !ok {
		return SubmitResult{Output: exec.Output, StageID: t.stage.ID}, nil
	}

	completedID := t.stage.ID
	t.completed = append(t.completed, domain.CompletedStage{
		StageID:  completedID,
		Duration: time.Since(t.stageStartedAt),
		Commands: t.stats.Commands - t.commandsAtStageStart,
	})
	logging.Logger.Info("Stage completed",
		"session_id", t.sessionID, "stage", completedID,
		"commands", t.stats.Commands-t.commandsAtStageStart)

	if domain.ShouldRepeatStage(t.helpUsed, t.stageRepeated) {
		t.stageRepeated = true
		if err := t.setupStage(completedID); err != nil {
			return SubmitResult{Output: exec.Output}, err
		}
		return SubmitResult{
			Output:    exec.Output,
			Completed: true,
			Repeated:  true,
			StageID:   completedID,
			Message:   "hint or solution used: play this stage once more without help",
		}, nil
	}

	t.stageRepeated = false
	if completedID >= t.catalog.Count() {
		return SubmitResult{
			Output:      exec.Output,
			Completed:   true,
			SessionDone: true,
			StageID:     completedID,
			Message:     "all stages complete",
		}, nil
	}

	nextID := completedID + 1
	if err := t.setupStage(nextID); err != nil {
		return SubmitResult{Output: exec.Output}, err
	}
	return SubmitResult{
		Output:    exec.Output,
		Completed: true,
		StageID:   nextID,
		Message:   fmt.Sprintf("stage %d: %s", nextID, t.stage.Title),
	}, nil
}

// UseHint returns the stage hint and marks help as used
func (t *Trainer) UseHint() string {
	t.stats.Hints++
	t.helpUsed = true
	return t.stage.Hint
}

// UseSolution returns the stage solution and marks help as used
func (t *Trainer) UseSolution() string {
	t.stats.Solutions++
	t.helpUsed = true
	return t.stage.Solution
}

// ResetStage rebuilds the current stage from scratch. It does not count
// as a completion and does not consume the retry-on-help allowance.
func (t *Trainer) ResetStage() error {
	return t.setupStage(t.stage.ID)
}

// Status renders a one-line progress summary with the live validator
// verdict.
func (t *Trainer) Status() string {
	ok, reason := t.stage.Validator.Validate(t.inspector)
	state := "in progress"
	if ok {
		state = "objectives met"
	}
	return fmt.Sprintf("[Stage %d/%d] %s - %s (%s)",
		t.stage.ID, t.catalog.Count(), t.stage.Title, state, reason)
}

// CompletedStages returns the completion records in completion order
func (t *Trainer) CompletedStages() []domain.CompletedStage {
	out := make([]domain.CompletedStage, len(t.completed))
	copy(out, t.completed)
	return out
}

// BuildSummary freezes the session into its persistent record
func (t *Trainer) BuildSummary(player string) domain.Summary {
	endedAt := time.Now().UTC()
	duration := endedAt.Sub(t.startedAt)

	seen := make(map[int]bool)
	var ids []int
	for _, c := range t.completed {
		if !seen[c.StageID] {
			seen[c.StageID] = true
			ids = append(ids, c.StageID)
		}
	}
	sort.Ints(ids)

	return domain.Summary{
		SessionID:           t.sessionID,
		Player:              player,
		StartedAt:           t.startedAt,
		EndedAt:             endedAt,
		DurationSeconds:     duration.Seconds(),
		Commands:            t.stats.Commands,
		Hints:               t.stats.Hints,
		Solutions:           t.stats.Solutions,
		CompletedStageIDs:   ids,
		CompletedStageCount: len(ids),
		TotalStageCount:     t.catalog.Count(),
		Score:               domain.ComputeScore(len(ids), t.stats.Commands, t.stats.Hints, t.stats.Solutions, duration),
	}
}

// Close destroys the sandbox. The trainer must not be used afterwards.
func (t *Trainer) Close() error {
	logging.Logger.Info("Session closed", "session_id", t.sessionID)
	return t.sandbox.Destroy()
}
