package cmd

import (
	"fmt"

	"gittrainer/internal/application"
	"gittrainer/internal/server"
	"gittrainer/internal/stages"
)

// ServeCmd serves the trainer over SSH so players only need a key pair
type ServeCmd struct {
	Host  string `help:"Host to bind the SSH server to" default:"0.0.0.0"`
	Port  string `help:"Port to listen on" default:"2222"`
	Stage int    `help:"Stage number new sessions start at" default:"1"`
	DB    string `help:"SQLite database path for session history (defaults to the JSONL log)"`
}

// Run executes the serve command
func (s *ServeCmd) Run(cli *CLI) error {
	store, err := newSummaryRepository(s.DB, cli.settings)
	if err != nil {
		return fmt.Errorf("failed to open session history: %w", err)
	}

	catalog := stages.NewCatalog()
	service := application.NewTrainerService(
		newTrainerFactory(catalog, s.Stage, commandTimeout(cli.settings)),
		store,
	)

	srv, err := server.NewServer(s.Host, s.Port, service)
	if err != nil {
		return err
	}
	return srv.Start()
}
