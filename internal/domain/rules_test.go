package domain

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// fakeInspector is an in-memory RepoInspector for rule tests
type fakeInspector struct {
	headMessage string
	messages    []string
	commits     int
	merges      int
	stashes     int
	branches    []string
	current     string
	clean       bool
	files       map[string]string
	refMessages map[string][]string
	dirs        map[string][]string
	failAll     bool
}

var errInspect = errors.New("inspection failed")

func (f *fakeInspector) HeadMessage() (string, error) {
	if f.failAll {
		return "", errInspect
	}
	return f.headMessage, nil
}

func (f *fakeInspector) RecentMessages(maxCount int) ([]string, error) {
	if f.failAll {
		return nil, errInspect
	}
	if len(f.messages) > maxCount {
		return f.messages[:maxCount], nil
	}
	return f.messages, nil
}

func (f *fakeInspector) RecentMessagesOf(ref string, maxCount int) ([]string, error) {
	if f.failAll {
		return nil, errInspect
	}
	msgs := f.refMessages[ref]
	if len(msgs) > maxCount {
		return msgs[:maxCount], nil
	}
	return msgs, nil
}

func (f *fakeInspector) CommitCount(maxCount int) (int, error) {
	if f.failAll {
		return 0, errInspect
	}
	if f.commits > maxCount {
		return maxCount, nil
	}
	return f.commits, nil
}

func (f *fakeInspector) MergeCommitCount(maxCount int) (int, error) {
	if f.failAll {
		return 0, errInspect
	}
	return f.merges, nil
}

func (f *fakeInspector) StashCount() (int, error) {
	if f.failAll {
		return 0, errInspect
	}
	return f.stashes, nil
}

func (f *fakeInspector) BranchExists(name string) (bool, error) {
	if f.failAll {
		return false, errInspect
	}
	for _, b := range f.branches {
		if b == name {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeInspector) CurrentBranch() (string, error) {
	if f.failAll {
		return "", errInspect
	}
	return f.current, nil
}

func (f *fakeInspector) WorktreeClean() (bool, error) {
	if f.failAll {
		return false, errInspect
	}
	return f.clean, nil
}

func (f *fakeInspector) FileExists(path string) bool {
	if f.failAll {
		return false
	}
	_, ok := f.files[path]
	return ok
}

func (f *fakeInspector) FileContains(path, text string) bool {
	if f.failAll {
		return false
	}
	content, ok := f.files[path]
	return ok && strings.Contains(content, text)
}

func (f *fakeInspector) ListDir(path string) ([]string, error) {
	if f.failAll {
		return nil, errInspect
	}
	names, ok := f.dirs[path]
	if !ok {
		return nil, errInspect
	}
	return names, nil
}

func TestEvaluateRule(t *testing.T) {
	repo := &fakeInspector{
		headMessage: "Hotfix: enable runtime patch",
		messages:    []string{"Hotfix: enable runtime patch", "Base config"},
		commits:     2,
		merges:      0,
		stashes:     1,
		branches:    []string{"main", "hotfix"},
		current:     "main",
		clean:       true,
		files:       map[string]string{"app.cfg": "feature=false\nhotfix=true\n"},
	}

	tests := []struct {
		name     string
		rule     Rule
		expected bool
	}{
		{"head message match", Rule{Kind: RuleHeadMessageContains, Text: "Hotfix:"}, true},
		{"head message miss", Rule{Kind: RuleHeadMessageContains, Text: "Feature:"}, false},
		{"commit message match", Rule{Kind: RuleCommitMessageContains, Text: "Base config", MaxCount: 10}, true},
		{"commit message beyond cap", Rule{Kind: RuleCommitMessageContains, Text: "Base config", MaxCount: 1}, false},
		{"commit count within bound", Rule{Kind: RuleCommitCountAtMost, Bound: 2, MaxCount: 10}, true},
		{"commit count over bound", Rule{Kind: RuleCommitCountAtMost, Bound: 1, MaxCount: 10}, false},
		{"file contains", Rule{Kind: RuleFileContains, Path: "app.cfg", Text: "hotfix=true"}, true},
		{"file contains missing file", Rule{Kind: RuleFileContains, Path: "nope.txt", Text: "x"}, false},
		{"file exists", Rule{Kind: RuleFileExists, Path: "app.cfg"}, true},
		{"no merge commits", Rule{Kind: RuleNoMergeCommits}, true},
		{"has merge commits", Rule{Kind: RuleHasMergeCommits}, false},
		{"stash count default bound", Rule{Kind: RuleStashCountAtLeast}, true},
		{"stash count explicit bound", Rule{Kind: RuleStashCountAtLeast, Bound: 2}, false},
		{"branch exists", Rule{Kind: RuleBranchExists, Name: "hotfix"}, true},
		{"branch missing", Rule{Kind: RuleBranchExists, Name: "release"}, false},
		{"branch is current", Rule{Kind: RuleBranchIsCurrent, Name: "main"}, true},
		{"branch not current", Rule{Kind: RuleBranchIsCurrent, Name: "hotfix"}, false},
		{"worktree clean", Rule{Kind: RuleWorktreeClean}, true},
		{"unknown kind fails closed", Rule{Kind: RuleKind("head_message_matches_regex")}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, EvaluateRule(tt.rule, repo))
		})
	}
}

func TestEvaluateRule_InspectionFailureIsNotSatisfied(t *testing.T) {
	repo := &fakeInspector{failAll: true}

	rules := []Rule{
		{Kind: RuleHeadMessageContains, Text: "x"},
		{Kind: RuleCommitMessageContains, Text: "x"},
		{Kind: RuleCommitCountAtMost, Bound: 100},
		{Kind: RuleFileContains, Path: "a", Text: "b"},
		{Kind: RuleFileExists, Path: "a"},
		{Kind: RuleNoMergeCommits},
		{Kind: RuleHasMergeCommits},
		{Kind: RuleStashCountAtLeast},
		{Kind: RuleBranchExists, Name: "main"},
		{Kind: RuleBranchIsCurrent, Name: "main"},
		{Kind: RuleWorktreeClean},
	}

	for _, rule := range rules {
		t.Run(string(rule.Kind), func(t *testing.T) {
			assert.False(t, EvaluateRule(rule, repo))
		})
	}
}

func TestRuleSetValidate_NotesScenario(t *testing.T) {
	ruleSet := RuleSet{
		MustHave: []Rule{
			{Kind: RuleFileContains, Path: "notes.txt", Text: "keep"},
			{Kind: RuleWorktreeClean},
		},
		MustNotHave: []Rule{
			{Kind: RuleFileContains, Path: "notes.txt", Text: "lost draft"},
		},
	}

	t.Run("satisfied when draft removed and tree clean", func(t *testing.T) {
		repo := &fakeInspector{clean: true, files: map[string]string{"notes.txt": "keep\n"}}
		ok, reason := ruleSet.Validate(repo)
		assert.True(t, ok)
		assert.Equal(t, "all objectives met", reason)
	})

	t.Run("not satisfied while draft remains", func(t *testing.T) {
		repo := &fakeInspector{clean: true, files: map[string]string{"notes.txt": "keep\nlost draft\n"}}
		ok, reason := ruleSet.Validate(repo)
		assert.False(t, ok)
		assert.Contains(t, reason, "lost draft")
	})

	t.Run("not satisfied with dirty tree", func(t *testing.T) {
		repo := &fakeInspector{clean: false, files: map[string]string{"notes.txt": "keep\n"}}
		ok, _ := ruleSet.Validate(repo)
		assert.False(t, ok)
	})
}

func TestValidatorFunc(t *testing.T) {
	called := false
	v := ValidatorFunc(func(repo RepoInspector) (bool, string) {
		called = true
		return true, "custom"
	})

	ok, reason := v.Validate(&fakeInspector{})
	assert.True(t, called)
	assert.True(t, ok)
	assert.Equal(t, "custom", reason)
}
