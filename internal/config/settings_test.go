package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrainerHome_EnvOverride(t *testing.T) {
	home := t.TempDir()
	t.Setenv("GIT_TRAINER_HOME", home)

	assert.Equal(t, home, TrainerHome())
	assert.Equal(t, filepath.Join(home, "settings.json"), GetSettingsPath())
}

func TestLoadSettings_MissingFileMeansDefaults(t *testing.T) {
	t.Setenv("GIT_TRAINER_HOME", t.TempDir())

	settings, err := LoadSettings()
	require.NoError(t, err)
	assert.Nil(t, settings.Debug)
	assert.Empty(t, settings.Player)
}

func TestLoadSettings_InvalidJSON(t *testing.T) {
	home := t.TempDir()
	t.Setenv("GIT_TRAINER_HOME", home)
	require.NoError(t, os.WriteFile(filepath.Join(home, "settings.json"), []byte("{broken"), 0644))

	_, err := LoadSettings()
	assert.ErrorContains(t, err, "invalid settings.json")
}

func TestSaveAndLoadSettings_RoundTrip(t *testing.T) {
	t.Setenv("GIT_TRAINER_HOME", filepath.Join(t.TempDir(), "nested"))

	debug := true
	timeout := 45
	in := &Settings{
		Debug:                 &debug,
		CommandTimeoutSeconds: &timeout,
		Player:                "renato",
	}
	require.NoError(t, SaveSettings(in))

	out, err := LoadSettings()
	require.NoError(t, err)
	require.NotNil(t, out.Debug)
	assert.True(t, *out.Debug)
	require.NotNil(t, out.CommandTimeoutSeconds)
	assert.Equal(t, 45, *out.CommandTimeoutSeconds)
	assert.Equal(t, "renato", out.Player)
}

func TestExpandPath(t *testing.T) {
	homeDir, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(homeDir, ".gittrainer"), ExpandPath("~/.gittrainer"))
	assert.Equal(t, "/absolute/path", ExpandPath("/absolute/path"))
	assert.Equal(t, "", ExpandPath(""))
}
