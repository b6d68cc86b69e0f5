package cmd

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"gittrainer/internal/config"
	"gittrainer/internal/logging"
)

// CLI represents the command-line interface structure
type CLI struct {
	Version     kong.VersionFlag `help:"Show version information"`
	Debug       bool             `help:"Enable debug logging to file" short:"d"`
	DebugFile   string           `help:"Custom path for debug log file (disables automatic cleanup)"`
	MaxLogFiles int              `help:"Maximum number of log files to keep (0 = unlimited)" default:"1000"`

	Play        PlayCmd        `cmd:"" help:"Start an interactive training session (default)" default:"1"`
	Serve       ServeCmd       `cmd:"serve" help:"Serve the trainer over SSH"`
	Stages      StagesCmd      `cmd:"stages" help:"List the stage catalog"`
	Leaderboard LeaderboardCmd `cmd:"leaderboard" help:"Show the top recorded scores"`
	Doctor      DoctorCmd      `cmd:"doctor" help:"Check the local environment"`

	// Internal field (not a flag)
	settings *config.Settings `kong:"-"`
}

// AfterApply loads settings and initializes logging after CLI parsing.
// Precedence: CLI flags > env vars > settings.json > defaults.
func (c *CLI) AfterApply() error {
	settings, err := config.LoadSettings()
	if err != nil {
		return err
	}
	c.settings = settings

	// Apply MaxLogFiles setting only if the flag is at its default and
	// the env var is not set
	if c.MaxLogFiles == 1000 {
		if _, hasEnv := os.LookupEnv("GIT_TRAINER_MAX_LOG_FILES"); !hasEnv {
			if settings.MaxLogFiles != nil {
				c.MaxLogFiles = *settings.MaxLogFiles
			}
		}
	}

	// Apply Debug setting
	if !c.Debug {
		if _, hasEnv := os.LookupEnv("GIT_TRAINER_DEBUG"); !hasEnv {
			if settings.Debug != nil && *settings.Debug {
				c.Debug = true
			}
		}
	}

	if err := logging.Initialize(c.Debug, c.DebugFile, c.MaxLogFiles); err != nil {
		return err
	}

	// Child processes (sandboxed git included) inherit debug settings
	if c.Debug || c.DebugFile != "" {
		os.Setenv("GIT_TRAINER_DEBUG", "1")
	}
	if c.MaxLogFiles != 1000 {
		os.Setenv("GIT_TRAINER_MAX_LOG_FILES", fmt.Sprintf("%d", c.MaxLogFiles))
	}

	return nil
}
