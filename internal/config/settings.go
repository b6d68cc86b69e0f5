package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Settings represents the structure of ~/.gittrainer/settings.json.
// Pointer fields distinguish "not set" from an explicit zero so CLI
// flags can take precedence only when the file is silent.
type Settings struct {
	CommandTimeoutSeconds *int   `json:"command_timeout_seconds,omitempty"`
	DBPath                string `json:"db_path,omitempty"`
	Debug                 *bool  `json:"debug,omitempty"`
	MaxLogFiles           *int   `json:"max_log_files,omitempty"`
	Player                string `json:"player,omitempty"`
	SessionLogPath        string `json:"session_log_path,omitempty"`
}

// TrainerHome returns the trainer's state directory:
// $GIT_TRAINER_HOME, or ~/.gittrainer.
func TrainerHome() string {
	if home := os.Getenv("GIT_TRAINER_HOME"); home != "" {
		return home
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".gittrainer" // fallback: relative to cwd
	}
	return filepath.Join(homeDir, ".gittrainer")
}

// GetSettingsPath returns the path to the settings file
func GetSettingsPath() string {
	return filepath.Join(TrainerHome(), "settings.json")
}

// ExpandPath expands a leading ~ to the user's home directory
func ExpandPath(path string) string {
	if len(path) == 0 || path[0] != '~' {
		return path
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(homeDir, path[1:])
}

// LoadSettings loads settings from the settings file. A missing file is
// not an error; it means defaults.
func LoadSettings() (*Settings, error) {
	data, err := os.ReadFile(GetSettingsPath())
	if err != nil {
		if os.IsNotExist(err) {
			return &Settings{}, nil
		}
		return nil, fmt.Errorf("failed to read settings file: %w", err)
	}

	var settings Settings
	if err := json.Unmarshal(data, &settings); err != nil {
		return nil, fmt.Errorf("invalid settings.json: %w", err)
	}

	if settings.DBPath != "" {
		settings.DBPath = ExpandPath(settings.DBPath)
	}
	if settings.SessionLogPath != "" {
		settings.SessionLogPath = ExpandPath(settings.SessionLogPath)
	}
	return &settings, nil
}

// SaveSettings writes settings to the settings file, creating the
// trainer home directory if needed.
func SaveSettings(settings *Settings) error {
	path := GetSettingsPath()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create settings directory: %w", err)
	}

	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write settings file: %w", err)
	}
	return nil
}
