package domain

import (
	"fmt"
	"strings"
)

// RuleKind identifies one validation rule variant
type RuleKind string

const (
	RuleHeadMessageContains   RuleKind = "head_message_contains"
	RuleCommitMessageContains RuleKind = "commit_message_contains"
	RuleCommitCountAtMost     RuleKind = "commit_count_at_most"
	RuleFileContains          RuleKind = "file_contains"
	RuleFileExists            RuleKind = "file_exists"
	RuleNoMergeCommits        RuleKind = "no_merge_commits"
	RuleHasMergeCommits       RuleKind = "has_merge_commits"
	RuleStashCountAtLeast     RuleKind = "stash_count_at_least"
	RuleBranchExists          RuleKind = "branch_exists"
	RuleBranchIsCurrent       RuleKind = "branch_is_current"
	RuleWorktreeClean         RuleKind = "worktree_clean"
)

// defaultScanLimit caps history walks when a rule does not set MaxCount
const defaultScanLimit = 50

// RepoInspector is the read-only view of a repository that rule
// evaluation needs. Implementations must never panic; returning an
// error makes the rule evaluate to not-satisfied.
type RepoInspector interface {
	HeadMessage() (string, error)
	RecentMessages(maxCount int) ([]string, error)
	// RecentMessagesOf reads history from an arbitrary ref instead of
	// HEAD. Declarative rules never use it; custom validators may.
	RecentMessagesOf(ref string, maxCount int) ([]string, error)
	CommitCount(maxCount int) (int, error)
	MergeCommitCount(maxCount int) (int, error)
	StashCount() (int, error)
	BranchExists(name string) (bool, error)
	CurrentBranch() (string, error)
	WorktreeClean() (bool, error)
	FileExists(path string) bool
	FileContains(path, text string) bool
	ListDir(path string) ([]string, error)
}

// Rule is one declarative completion condition. Which parameters are
// meaningful depends on Kind; the rest stay zero.
type Rule struct {
	Kind     RuleKind
	Path     string // file rules: path relative to the worktree root
	Text     string // substring to look for
	Name     string // branch rules: exact branch name
	Bound    int    // numeric bound (commit count, stash count)
	MaxCount int    // history scan cap, defaultScanLimit when zero
}

func (r Rule) scanLimit() int {
	if r.MaxCount > 0 {
		return r.MaxCount
	}
	return defaultScanLimit
}

// Describe renders the rule as a learner-facing requirement
func (r Rule) Describe() string {
	switch r.Kind {
	case RuleHeadMessageContains:
		return fmt.Sprintf("latest commit message contains %q", r.Text)
	case RuleCommitMessageContains:
		return fmt.Sprintf("a recent commit message contains %q", r.Text)
	case RuleCommitCountAtMost:
		return fmt.Sprintf("at most %d commits", r.bound(r.scanLimit()))
	case RuleFileContains:
		return fmt.Sprintf("%s contains %q", r.Path, r.Text)
	case RuleFileExists:
		return fmt.Sprintf("%s exists", r.Path)
	case RuleNoMergeCommits:
		return "history has no merge commits"
	case RuleHasMergeCommits:
		return "history has a merge commit"
	case RuleStashCountAtLeast:
		return fmt.Sprintf("at least %d stash entries", r.bound(1))
	case RuleBranchExists:
		return fmt.Sprintf("branch %q exists", r.Name)
	case RuleBranchIsCurrent:
		return fmt.Sprintf("branch %q is checked out", r.Name)
	case RuleWorktreeClean:
		return "working tree is clean"
	default:
		return fmt.Sprintf("unsupported rule %q", string(r.Kind))
	}
}

func (r Rule) bound(fallback int) int {
	if r.Bound > 0 {
		return r.Bound
	}
	return fallback
}

// EvaluateRule reports whether the rule holds for the repository.
// Unknown kinds and inspection failures evaluate to false.
func EvaluateRule(r Rule, repo RepoInspector) bool {
	switch r.Kind {
	case RuleHeadMessageContains:
		msg, err := repo.HeadMessage()
		return err == nil && strings.Contains(msg, r.Text)
	case RuleCommitMessageContains:
		msgs, err := repo.RecentMessages(r.scanLimit())
		if err != nil {
			return false
		}
		for _, msg := range msgs {
			if strings.Contains(msg, r.Text) {
				return true
			}
		}
		return false
	case RuleCommitCountAtMost:
		count, err := repo.CommitCount(r.scanLimit())
		return err == nil && count <= r.bound(r.scanLimit())
	case RuleFileContains:
		return repo.FileContains(r.Path, r.Text)
	case RuleFileExists:
		return repo.FileExists(r.Path)
	case RuleNoMergeCommits:
		merges, err := repo.MergeCommitCount(r.scanLimit())
		return err == nil && merges == 0
	case RuleHasMergeCommits:
		merges, err := repo.MergeCommitCount(r.scanLimit())
		return err == nil && merges > 0
	case RuleStashCountAtLeast:
		count, err := repo.StashCount()
		return err == nil && count >= r.bound(1)
	case RuleBranchExists:
		exists, err := repo.BranchExists(r.Name)
		return err == nil && exists
	case RuleBranchIsCurrent:
		current, err := repo.CurrentBranch()
		return err == nil && current == r.Name
	case RuleWorktreeClean:
		clean, err := repo.WorktreeClean()
		return err == nil && clean
	default:
		// Unknown rule kinds fail closed
		return false
	}
}

// StageValidator decides whether a stage's objective is met.
// Declarative rule sets and hand-written predicates both implement it.
type StageValidator interface {
	Validate(repo RepoInspector) (ok bool, reason string)
}

// ValidatorFunc adapts a plain predicate to StageValidator
type ValidatorFunc func(repo RepoInspector) (bool, string)

// Validate implements StageValidator
func (f ValidatorFunc) Validate(repo RepoInspector) (bool, string) {
	return f(repo)
}

// RuleSet is the declarative validator: every MustHave rule must hold
// and every MustNotHave rule must not.
type RuleSet struct {
	MustHave    []Rule
	MustNotHave []Rule
}

// Verify interface compliance at compile time
var _ StageValidator = RuleSet{}

// Validate implements StageValidator
func (rs RuleSet) Validate(repo RepoInspector) (bool, string) {
	for _, rule := range rs.MustHave {
		if !EvaluateRule(rule, repo) {
			return false, "missing: " + rule.Describe()
		}
	}
	for _, rule := range rs.MustNotHave {
		if EvaluateRule(rule, repo) {
			return false, "still true: " + rule.Describe()
		}
	}
	return true, "all objectives met"
}
