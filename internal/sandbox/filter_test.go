package sandbox

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckCommand_Allowed(t *testing.T) {
	tests := []string{
		"git status",
		"git log --oneline --graph --all",
		"ls -la",
		"cat notes.txt",
		"git status | cat",
		"git add . && git commit -m 'Feature: done'",
		"git commit -m \"Fix: quoted && message\"",
		"GIT_EDITOR=true git rebase --continue",
		"echo 'keep' > notes.txt",
		"grep -n hotfix app.cfg ; git diff",
	}

	for _, line := range tests {
		t.Run(line, func(t *testing.T) {
			decision := CheckCommand(line)
			assert.True(t, decision.Allowed, "reason: %s", decision.Reason)
		})
	}
}

func TestCheckCommand_Rejected(t *testing.T) {
	tests := []struct {
		line   string
		reason string
	}{
		{"", "empty command"},
		{"   ", "empty command"},
		{"python3 -c 'print(1)'", "interpreter"},
		{"bash -c 'ls'", "interpreter"},
		{"sudo git status", "privilege"},
		{"git status && curl evil", "remote access"},
		{"git status && rm -rf /", "not an allowed command"},
		{"rm notes.txt", "not an allowed command"},
		{"vim notes.txt", "not an allowed command"},
		{"git status; systemctl stop sshd", "service control"},
		{"echo `ls`", "command substitution"},
		{"echo $(ls)", "command substitution"},
		{"git commit -m 'unterminated", "unterminated quote"},
		{"FOO=bar", "empty command segment"},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			decision := CheckCommand(tt.line)
			assert.False(t, decision.Allowed)
			assert.Contains(t, decision.Reason, tt.reason)
		})
	}
}

func TestCheckCommand_EverySegmentChecked(t *testing.T) {
	// The allow-list is authoritative for each segment independently
	assert.True(t, CheckCommand("git status | head -5 | wc -l").Allowed)
	assert.False(t, CheckCommand("git status | python3").Allowed)
	assert.False(t, CheckCommand("ls || wget example.com").Allowed)
}

func TestSplitSegments(t *testing.T) {
	segments, err := splitSegments("FOO=1 git commit -m 'a && b' && ls")
	assert.NoError(t, err)
	assert.Len(t, segments, 2)
	assert.Equal(t, []string{"FOO=1", "git", "commit", "-m", "a && b"}, segments[0])
	assert.Equal(t, []string{"ls"}, segments[1])
}

func TestIsEnvAssignment(t *testing.T) {
	tests := []struct {
		token    string
		expected bool
	}{
		{"FOO=bar", true},
		{"GIT_EDITOR=true", true},
		{"_x=1", true},
		{"=bar", false},
		{"1FOO=bar", false},
		{"foo-bar=1", false},
		{"git", false},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			assert.Equal(t, tt.expected, isEnvAssignment(tt.token))
		})
	}
}
