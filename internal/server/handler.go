package server

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/ssh"

	"gittrainer/internal/application"
	"gittrainer/internal/logging"
	"gittrainer/internal/ui"
)

// teaHandler creates the trainer UI for each SSH session. The SSH user
// name doubles as the player name on the leaderboard.
func (s *Server) teaHandler(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
	player := sess.User()
	logging.Logger.Info("New SSH session", "player", player, "remote", sess.RemoteAddr().String())

	sessionID, err := s.service.StartSession(sess.Context(), player)
	if err != nil {
		logging.Logger.Error("Failed to start session", "error", err, "player", player)
		return errorModel{err: err}, []tea.ProgramOption{tea.WithAltScreen()}
	}

	// Wrap the model so the sandbox is released and the score recorded
	// even when the program quits without a clean :quit (dropped
	// connections included)
	wrapped := &connectionModel{
		inner:     ui.NewTrainerModel(s.service, sessionID, player),
		service:   s.service,
		sessionID: sessionID,
		player:    player,
	}

	return wrapped, []tea.ProgramOption{tea.WithAltScreen()}
}

// connectionModel ties one SSH connection to one trainer session
type connectionModel struct {
	inner     *ui.TrainerModel
	service   *application.TrainerService
	sessionID string
	player    string
	ended     bool
}

func (m *connectionModel) Init() tea.Cmd {
	return m.inner.Init()
}

func (m *connectionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if _, ok := msg.(tea.QuitMsg); ok {
		if !m.ended {
			m.ended = true
			if summary := m.inner.Summary(); summary != nil {
				logging.Logger.Info("Session ended",
					"player", m.player, "session_id", m.sessionID, "score", summary.Score)
			} else if _, err := m.service.EndSession(context.Background(), m.sessionID); err != nil {
				logging.Logger.Warn("Failed to end dropped session",
					"error", err, "session_id", m.sessionID)
			}
		}
		return m, tea.Quit
	}

	inner, cmd := m.inner.Update(msg)
	if model, ok := inner.(*ui.TrainerModel); ok {
		m.inner = model
	}
	return m, cmd
}

func (m *connectionModel) View() string {
	return m.inner.View()
}

// errorModel shows a startup failure and exits on any key press
type errorModel struct {
	err error
}

func (m errorModel) Init() tea.Cmd {
	return nil
}

func (m errorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if _, ok := msg.(tea.KeyMsg); ok {
		return m, tea.Quit
	}
	return m, nil
}

func (m errorModel) View() string {
	return fmt.Sprintf("Could not start a training session: %v\n\nPress any key to disconnect.", m.err)
}
