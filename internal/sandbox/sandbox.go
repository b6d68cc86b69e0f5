package sandbox

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"gittrainer/internal/domain"
	"gittrainer/internal/logging"
)

const (
	repoDirName    = "repo"
	learnerName    = "Git Learner"
	learnerEmail   = "learner@example.com"
	DefaultTimeout = 30 * time.Second

	// Fixed setup timestamp keeps stage setup byte-reproducible
	setupDate = "2024-01-01T00:00:00 +0000"
)

// Sandbox owns one disposable working directory and mediates all
// command execution against it. Exactly one sandbox is live per
// session; it is wiped and rebuilt wholesale on every stage setup.
type Sandbox struct {
	root     string // disposable directory, removed on Destroy
	repoPath string // working copy inside root
	timeout  time.Duration
}

// Verify interface compliance at compile time
var _ domain.StageWorkspace = (*Sandbox)(nil)

// New creates the disposable directory and initializes an empty
// repository with a synthetic identity. baseDir may be empty to use the
// system temp dir.
func New(baseDir string, timeout time.Duration) (*Sandbox, error) {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	root, err := os.MkdirTemp(baseDir, "git_trainer_")
	if err != nil {
		return nil, fmt.Errorf("failed to create sandbox directory: %w", err)
	}

	s := &Sandbox{
		root:     root,
		repoPath: filepath.Join(root, repoDirName),
		timeout:  timeout,
	}
	if err := s.reinitialize(); err != nil {
		_ = s.Destroy()
		return nil, err
	}
	return s, nil
}

// RepoPath returns the working copy root learner commands run in
func (s *Sandbox) RepoPath() string {
	return s.repoPath
}

// ApplySetup wipes the working copy and rebuilds it for the stage.
// A mid-setup failure leaves a freshly re-initialized repository, never
// a partial one.
func (s *Sandbox) ApplySetup(stage domain.Stage) error {
	if err := s.reinitialize(); err != nil {
		return err
	}
	if stage.Setup == nil {
		return nil
	}
	if err := stage.Setup(s); err != nil {
		logging.Logger.Error("Stage setup failed, re-initializing sandbox",
			"stage", stage.ID, "error", err)
		if reinitErr := s.reinitialize(); reinitErr != nil {
			return fmt.Errorf("stage %d setup failed (%v) and recovery failed: %w", stage.ID, err, reinitErr)
		}
		return fmt.Errorf("stage %d setup failed: %w", stage.ID, err)
	}
	return nil
}

// reinitialize recreates repoPath as an empty repository on main
func (s *Sandbox) reinitialize() error {
	if err := os.RemoveAll(s.repoPath); err != nil {
		return fmt.Errorf("failed to wipe working copy: %w", err)
	}
	if err := os.MkdirAll(s.repoPath, 0755); err != nil {
		return fmt.Errorf("failed to create working copy: %w", err)
	}
	for _, args := range [][]string{
		{"init", "-b", "main"},
		{"config", "user.name", learnerName},
		{"config", "user.email", learnerEmail},
	} {
		if err := s.Git(args...); err != nil {
			return err
		}
	}
	return nil
}

// WriteFile implements domain.StageWorkspace
func (s *Sandbox) WriteFile(rel, content string) error {
	path := filepath.Join(s.repoPath, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create %s: %w", rel, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", rel, err)
	}
	return nil
}

// Git implements domain.StageWorkspace. Setup commits use a pinned
// identity and date so repeated setups produce identical repositories.
func (s *Sandbox) Git(args ...string) error {
	cmd := exec.Command("git", args...)
	cmd.Dir = s.repoPath
	cmd.Env = append(s.baseEnv(),
		"GIT_AUTHOR_DATE="+setupDate,
		"GIT_COMMITTER_DATE="+setupDate,
	)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("git %s: %s: %w", strings.Join(args, " "), strings.TrimSpace(string(out)), err)
	}
	return nil
}

// ExecResult is the outcome of one learner command
type ExecResult struct {
	Output   string
	Allowed  bool
	TimedOut bool
}

// Execute filters and runs one learner command line through the shell,
// bounded by the sandbox timeout. Failures become text, never errors.
func (s *Sandbox) Execute(ctx context.Context, line string) ExecResult {
	decision := CheckCommand(line)
	if !decision.Allowed {
		logging.Logger.Debug("Command rejected", "command", line, "reason", decision.Reason)
		return ExecResult{
			Output: "command not permitted: " + decision.Reason + "\nonly git and basic file inspection commands are allowed",
		}
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "/bin/sh", "-c", line)
	cmd.Dir = s.repoPath
	cmd.Env = s.baseEnv()
	// Don't let orphaned children hold the output pipe open past the deadline
	cmd.WaitDelay = time.Second

	out, err := cmd.CombinedOutput()
	if ctx.Err() == context.DeadlineExceeded {
		logging.Logger.Warn("Command timed out", "command", line, "timeout", s.timeout)
		return ExecResult{Output: "command timed out", Allowed: true, TimedOut: true}
	}

	text := strings.TrimSpace(string(out))
	if err != nil && text == "" {
		text = "error: " + err.Error()
	}
	if text == "" {
		text = "(no output)"
	}
	return ExecResult{Output: text, Allowed: true}
}

// baseEnv pins HOME and git's config/discovery inside the sandbox so
// neither setup nor learner commands can touch the real user state
func (s *Sandbox) baseEnv() []string {
	env := []string{
		"PATH=" + os.Getenv("PATH"),
		"HOME=" + s.root,
		"GIT_CONFIG_NOSYSTEM=1",
		"GIT_CEILING_DIRECTORIES=" + s.root,
		"GIT_AUTHOR_NAME=" + learnerName,
		"GIT_AUTHOR_EMAIL=" + learnerEmail,
		"GIT_COMMITTER_NAME=" + learnerName,
		"GIT_COMMITTER_EMAIL=" + learnerEmail,
		"LANG=C",
		"TERM=dumb",
	}
	if tmp := os.Getenv("TMPDIR"); tmp != "" {
		env = append(env, "TMPDIR="+tmp)
	}
	return env
}

// Destroy removes the disposable directory. Safe to call twice.
func (s *Sandbox) Destroy() error {
	if s.root == "" {
		return nil
	}
	if err := os.RemoveAll(s.root); err != nil {
		return fmt.Errorf("failed to remove sandbox directory: %w", err)
	}
	return nil
}
