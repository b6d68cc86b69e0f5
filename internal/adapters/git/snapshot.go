package git

import (
	"os/exec"
	"strings"
)

// Snapshot is a read-only projection of repository state for display.
// It carries no state-machine meaning.
type Snapshot struct {
	CurrentBranch string
	WorktreeClean bool
	Branches      []string
	GraphLines    []string
}

// CaptureSnapshot gathers display information, best effort. Queries
// that fail leave their field empty rather than erroring.
func CaptureSnapshot(repoPath string) Snapshot {
	snap := Snapshot{CurrentBranch: "unknown"}

	if branch := safeGit(repoPath, "rev-parse", "--abbrev-ref", "HEAD"); branch != "" {
		snap.CurrentBranch = branch
	}
	snap.WorktreeClean = safeGit(repoPath, "status", "--short") == ""
	snap.Branches = splitLines(safeGit(repoPath, "branch", "--sort=refname"))
	snap.GraphLines = splitLines(safeGit(repoPath,
		"log", "--graph", "--decorate", "--oneline", "--all", "-n", "12"))

	return snap
}

// Render draws the snapshot as a bordered text block
func (s Snapshot) Render() string {
	tree := "changes pending"
	if s.WorktreeClean {
		tree = "clean"
	}

	lines := []string{
		"┌─ repository snapshot",
		"│ current branch: " + s.CurrentBranch,
		"│ working tree: " + tree,
		"├─ branches",
	}
	if len(s.Branches) == 0 {
		lines = append(lines, "│ (no branches)")
	}
	for _, branch := range s.Branches {
		lines = append(lines, "│ "+branch)
	}
	lines = append(lines, "├─ recent commits")
	if len(s.GraphLines) == 0 {
		lines = append(lines, "│ (no commits)")
	}
	for _, graphLine := range s.GraphLines {
		lines = append(lines, "│ "+graphLine)
	}
	lines = append(lines, "└─ tip: git log --graph --decorate --oneline --all")
	return strings.Join(lines, "\n")
}

func safeGit(repoPath string, args ...string) string {
	cmd := exec.Command("git", args...)
	cmd.Dir = repoPath
	out, err := cmd.Output()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(out))
}

func splitLines(raw string) []string {
	if raw == "" {
		return nil
	}
	var lines []string
	for _, line := range strings.Split(raw, "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, strings.TrimRight(line, " \t"))
		}
	}
	return lines
}
