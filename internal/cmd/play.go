package cmd

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"gittrainer/internal/application"
	"gittrainer/internal/doctor"
	"gittrainer/internal/logging"
	"gittrainer/internal/stages"
	"gittrainer/internal/ui"
)

// PlayCmd starts an interactive training session in the terminal
type PlayCmd struct {
	Stage  int    `help:"Stage number to start at" default:"1"`
	Player string `help:"Player name for the leaderboard (prompted when omitted)" short:"p"`
	DB     string `help:"SQLite database path for session history (defaults to the JSONL log)"`
}

// Run executes the play command
func (p *PlayCmd) Run(cli *CLI) error {
	results := doctor.Run()
	if !doctor.Healthy(results) {
		fmt.Println(doctor.FormatReport(results))
		return fmt.Errorf("environment checks failed, fix the issues above and retry")
	}

	if p.Player == "" && cli.settings != nil {
		p.Player = cli.settings.Player
	}
	if p.Player == "" {
		form := huh.NewForm(huh.NewGroup(
			huh.NewInput().
				Title("Player name").
				Description("Shown on the leaderboard, leave empty to stay anonymous").
				Value(&p.Player),
		))
		if err := form.Run(); err != nil {
			return fmt.Errorf("failed to read player name: %w", err)
		}
		p.Player = strings.TrimSpace(p.Player)
	}

	store, err := newSummaryRepository(p.DB, cli.settings)
	if err != nil {
		return fmt.Errorf("failed to open session history: %w", err)
	}

	catalog := stages.NewCatalog()
	service := application.NewTrainerService(
		newTrainerFactory(catalog, p.Stage, commandTimeout(cli.settings)),
		store,
	)
	defer func() {
		if err := service.CloseAll(context.Background()); err != nil {
			logging.Logger.Warn("Failed to close trainer service", "error", err)
		}
	}()

	sessionID, err := service.StartSession(context.Background(), p.Player)
	if err != nil {
		return fmt.Errorf("failed to start session: %w", err)
	}

	logging.Logger.Info("Starting trainer TUI",
		"player", p.Player, "session_id", sessionID, "start_stage", p.Stage)

	program := tea.NewProgram(
		ui.NewTrainerModel(service, sessionID, p.Player),
		tea.WithAltScreen(),
	)
	finalModel, err := program.Run()
	if err != nil {
		return fmt.Errorf("error running program: %w", err)
	}

	if model, ok := finalModel.(*ui.TrainerModel); ok && model.Summary() != nil {
		fmt.Println(ui.FormatSummary(*model.Summary()))
	}
	return nil
}
