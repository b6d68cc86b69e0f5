package git

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// initTestRepo creates a throwaway repository with one commit on main
func initTestRepo(t *testing.T) string {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git binary not available")
	}

	dir := t.TempDir()
	run := func(args ...string) {
		t.Helper()
		cmd := exec.Command("git", args...)
		cmd.Dir = dir
		out, err := cmd.CombinedOutput()
		require.NoError(t, err, "git %v: %s", args, out)
	}

	run("init", "-b", "main")
	run("config", "user.name", "Git Learner")
	run("config", "user.email", "learner@example.com")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "app.cfg"), []byte("feature=false\n"), 0644))
	run("add", "app.cfg")
	run("commit", "-m", "Base config")
	return dir
}

func TestCLIInspector_BasicQueries(t *testing.T) {
	dir := initTestRepo(t)
	inspector := NewCLIInspector(dir)

	msg, err := inspector.HeadMessage()
	require.NoError(t, err)
	assert.Equal(t, "Base config", msg)

	count, err := inspector.CommitCount(50)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	merges, err := inspector.MergeCommitCount(50)
	require.NoError(t, err)
	assert.Equal(t, 0, merges)

	branch, err := inspector.CurrentBranch()
	require.NoError(t, err)
	assert.Equal(t, "main", branch)

	exists, err := inspector.BranchExists("main")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = inspector.BranchExists("hotfix")
	require.NoError(t, err)
	assert.False(t, exists)

	clean, err := inspector.WorktreeClean()
	require.NoError(t, err)
	assert.True(t, clean)

	stashes, err := inspector.StashCount()
	require.NoError(t, err)
	assert.Equal(t, 0, stashes)
}

func TestCLIInspector_FileQueries(t *testing.T) {
	dir := initTestRepo(t)
	inspector := NewCLIInspector(dir)

	assert.True(t, inspector.FileExists("app.cfg"))
	assert.False(t, inspector.FileExists("missing.cfg"))
	assert.True(t, inspector.FileContains("app.cfg", "feature=false"))
	assert.False(t, inspector.FileContains("app.cfg", "feature=true"))
	assert.False(t, inspector.FileContains("missing.cfg", "anything"))
}

func TestCLIInspector_DirtyWorktree(t *testing.T) {
	dir := initTestRepo(t)
	inspector := NewCLIInspector(dir)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "extra.txt"), []byte("wip\n"), 0644))

	clean, err := inspector.WorktreeClean()
	require.NoError(t, err)
	assert.False(t, clean)
}

func TestCLIInspector_ErrorsOutsideRepository(t *testing.T) {
	inspector := NewCLIInspector(t.TempDir())

	_, err := inspector.HeadMessage()
	assert.Error(t, err)

	_, err = inspector.CommitCount(10)
	assert.Error(t, err)
}

func TestCaptureSnapshot(t *testing.T) {
	dir := initTestRepo(t)

	snap := CaptureSnapshot(dir)

	assert.Equal(t, "main", snap.CurrentBranch)
	assert.True(t, snap.WorktreeClean)
	assert.NotEmpty(t, snap.Branches)
	assert.NotEmpty(t, snap.GraphLines)

	rendered := snap.Render()
	assert.Contains(t, rendered, "current branch: main")
	assert.Contains(t, rendered, "Base config")
}
