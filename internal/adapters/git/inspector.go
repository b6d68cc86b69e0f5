package git

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"gittrainer/internal/domain"
)

// CLIInspector implements domain.RepoInspector by shelling out to the
// local git binary. Every query is read-only; failures surface as
// errors so rules evaluate to not-satisfied.
type CLIInspector struct {
	repoPath string
}

// Verify interface compliance at compile time
var _ domain.RepoInspector = (*CLIInspector)(nil)

// NewCLIInspector creates an inspector rooted at repoPath
func NewCLIInspector(repoPath string) *CLIInspector {
	return &CLIInspector{repoPath: repoPath}
}

// Root returns the inspected worktree root
func (i *CLIInspector) Root() string {
	return i.repoPath
}

func (i *CLIInspector) git(args ...string) (string, error) {
	cmd := exec.Command("git", args...)
	cmd.Dir = i.repoPath
	out, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("git %s: %w", strings.Join(args, " "), err)
	}
	return strings.TrimSpace(string(out)), nil
}

// HeadMessage implements domain.RepoInspector
func (i *CLIInspector) HeadMessage() (string, error) {
	return i.git("log", "-1", "--pretty=%s")
}

// RecentMessages implements domain.RepoInspector
func (i *CLIInspector) RecentMessages(maxCount int) ([]string, error) {
	out, err := i.git("log", "--pretty=%s", "-n", strconv.Itoa(maxCount))
	if err != nil {
		return nil, err
	}
	if out == "" {
		return nil, nil
	}
	return strings.Split(out, "\n"), nil
}

// RecentMessagesOf implements domain.RepoInspector
func (i *CLIInspector) RecentMessagesOf(ref string, maxCount int) ([]string, error) {
	out, err := i.git("log", "--pretty=%s", "-n", strconv.Itoa(maxCount), ref)
	if err != nil {
		return nil, err
	}
	if out == "" {
		return nil, nil
	}
	return strings.Split(out, "\n"), nil
}

// CommitCount implements domain.RepoInspector
func (i *CLIInspector) CommitCount(maxCount int) (int, error) {
	out, err := i.git("rev-list", "--count", fmt.Sprintf("--max-count=%d", maxCount), "HEAD")
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(out)
}

// MergeCommitCount implements domain.RepoInspector
func (i *CLIInspector) MergeCommitCount(maxCount int) (int, error) {
	out, err := i.git("rev-list", "--merges", "--count", fmt.Sprintf("--max-count=%d", maxCount), "HEAD")
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(out)
}

// StashCount implements domain.RepoInspector
func (i *CLIInspector) StashCount() (int, error) {
	out, err := i.git("stash", "list")
	if err != nil {
		return 0, err
	}
	count := 0
	for _, line := range strings.Split(out, "\n") {
		if strings.TrimSpace(line) != "" {
			count++
		}
	}
	return count, nil
}

// BranchExists implements domain.RepoInspector
func (i *CLIInspector) BranchExists(name string) (bool, error) {
	out, err := i.git("branch", "--list", name)
	if err != nil {
		return false, err
	}
	return out != "", nil
}

// CurrentBranch implements domain.RepoInspector
func (i *CLIInspector) CurrentBranch() (string, error) {
	return i.git("rev-parse", "--abbrev-ref", "HEAD")
}

// WorktreeClean implements domain.RepoInspector
func (i *CLIInspector) WorktreeClean() (bool, error) {
	out, err := i.git("status", "--porcelain")
	if err != nil {
		return false, err
	}
	return out == "", nil
}

// FileExists implements domain.RepoInspector
func (i *CLIInspector) FileExists(path string) bool {
	_, err := os.Stat(filepath.Join(i.repoPath, path))
	return err == nil
}

// FileContains implements domain.RepoInspector
func (i *CLIInspector) FileContains(path, text string) bool {
	content, err := os.ReadFile(filepath.Join(i.repoPath, path))
	if err != nil {
		return false
	}
	return strings.Contains(string(content), text)
}

// ListDir implements domain.RepoInspector
func (i *CLIInspector) ListDir(path string) ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(i.repoPath, path))
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", path, err)
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name())
	}
	return names, nil
}
