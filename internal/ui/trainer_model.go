package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"gittrainer/internal/application"
	"gittrainer/internal/doctor"
	"gittrainer/internal/domain"
	"gittrainer/internal/engine"
	"gittrainer/internal/logging"
	"gittrainer/internal/sandbox"
)

const builtinHelp = `Built-in commands:
  :help         show this help
  :status       show stage progress and the live validator verdict
  :info         explain the current stage's git topic
  :hint         show a hint (counts against your score)
  :solution     show a solution example (counts more)
  :reset        rebuild the current stage from scratch
  :repo         show a repository snapshot (branches, graph)
  :commands     list the allowed shell commands
  :leaderboard  show the top scores
  :doctor       run environment checks
  :quit         end the session and save the score
Anything else runs in the sandbox repository.`

// commandResultMsg carries the outcome of one sandbox command
type commandResultMsg struct {
	result engine.SubmitResult
	err    error
}

// sessionEndedMsg carries the final summary before quitting
type sessionEndedMsg struct {
	summary domain.Summary
	err     error
}

// TrainerModel is the interactive trainer: a transcript viewport over a
// single-line command input, driving one session through the service.
type TrainerModel struct {
	service   *application.TrainerService
	sessionID string
	player    string

	viewport   viewport.Model
	input      textinput.Model
	transcript []string

	ready   bool
	busy    bool // a sandbox command is in flight
	width   int
	height  int
	summary *domain.Summary
}

// NewTrainerModel creates the model for an already-started session
func NewTrainerModel(service *application.TrainerService, sessionID, player string) *TrainerModel {
	input := textinput.New()
	input.Placeholder = "git command or :help"
	input.Prompt = promptStyle.Render("> ")
	input.CharLimit = 500
	input.Focus()

	m := &TrainerModel{
		service:   service,
		sessionID: sessionID,
		player:    player,
		input:     input,
	}
	m.appendLine(titleStyle.Render("Git Trainer"))
	m.appendLine(mutedStyle.Render("Type :help for built-in commands."))
	m.printStageHeader()
	return m
}

// Summary returns the final record once the session has ended
func (m *TrainerModel) Summary() *domain.Summary {
	return m.summary
}

func (m *TrainerModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *TrainerModel) appendLine(line string) {
	m.transcript = append(m.transcript, line)
	if m.ready {
		m.viewport.SetContent(strings.Join(m.transcript, "\n"))
		m.viewport.GotoBottom()
	}
}

func (m *TrainerModel) printStageHeader() {
	stage, err := m.service.CurrentStage(m.sessionID)
	if err != nil {
		m.appendLine(errorStyle.Render(err.Error()))
		return
	}
	m.appendLine("")
	m.appendLine(bannerStyle.Render(fmt.Sprintf("[Stage %d/%d] %s", stage.ID, stage.TotalStages, stage.Title)))
	m.appendLine("Objective: " + stage.Objective)
}

func (m *TrainerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		// Reserve lines for the input and footer
		viewportHeight := msg.Height - 3
		if viewportHeight < 1 {
			viewportHeight = 1
		}
		if !m.ready {
			m.viewport = viewport.New(msg.Width, viewportHeight)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = viewportHeight
		}
		m.viewport.SetContent(strings.Join(m.transcript, "\n"))
		m.viewport.GotoBottom()
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC:
			return m, m.endSessionCmd()
		case tea.KeyEnter:
			if m.busy {
				return m, nil
			}
			line := strings.TrimSpace(m.input.Value())
			m.input.Reset()
			if line == "" {
				return m, nil
			}
			return m.handleLine(line)
		}

	case commandResultMsg:
		m.busy = false
		return m.handleCommandResult(msg)

	case sessionEndedMsg:
		if msg.err != nil {
			logging.Logger.Error("Failed to end session", "error", msg.err)
		}
		m.summary = &msg.summary
		return m, tea.Quit
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)
	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

// handleLine dispatches one submitted line: built-ins inline, sandbox
// commands as an async tea command.
func (m *TrainerModel) handleLine(line string) (tea.Model, tea.Cmd) {
	m.appendLine(promptStyle.Render("> ") + line)

	if !strings.HasPrefix(line, ":") {
		m.busy = true
		return m, m.submitCmd(line)
	}

	switch line {
	case ":quit":
		return m, m.endSessionCmd()
	case ":help":
		m.appendLine(mutedStyle.Render(builtinHelp))
	case ":status":
		status, err := m.service.GetStatus(m.sessionID)
		m.appendOrError(status, err)
	case ":info":
		stage, err := m.service.CurrentStage(m.sessionID)
		if err != nil {
			m.appendLine(errorStyle.Render(err.Error()))
			break
		}
		m.appendLine(bannerStyle.Render(fmt.Sprintf("[Info] Stage %d | %s", stage.ID, stage.Title)))
		m.appendLine(stage.Info)
	case ":hint":
		hint, err := m.service.UseHint(m.sessionID)
		m.appendOrError("Hint: "+hint, err)
	case ":solution":
		solution, err := m.service.UseSolution(m.sessionID)
		m.appendOrError("Solution: "+solution, err)
	case ":reset":
		if err := m.service.ResetStage(m.sessionID); err != nil {
			m.appendLine(errorStyle.Render(err.Error()))
			break
		}
		m.appendLine(okStyle.Render("Stage environment rebuilt."))
		m.printStageHeader()
	case ":repo":
		snapshot, err := m.service.Snapshot(m.sessionID)
		m.appendOrError(snapshot, err)
	case ":commands":
		m.appendLine("Allowed commands: " + strings.Join(sandbox.AllowedCommands(), " "))
	case ":leaderboard":
		rows, err := m.service.Leaderboard(context.Background(), 10)
		if err != nil {
			m.appendLine(errorStyle.Render(err.Error()))
			break
		}
		m.appendLine(FormatLeaderboard(rows))
	case ":doctor":
		m.appendLine(doctor.FormatReport(doctor.Run()))
	default:
		m.appendLine(errorStyle.Render("Unknown built-in " + line + " (:help lists them)"))
	}
	return m, nil
}

func (m *TrainerModel) appendOrError(line string, err error) {
	if err != nil {
		m.appendLine(errorStyle.Render(err.Error()))
		return
	}
	m.appendLine(line)
}

func (m *TrainerModel) submitCmd(line string) tea.Cmd {
	return func() tea.Msg {
		result, err := m.service.SubmitCommand(context.Background(), m.sessionID, line)
		return commandResultMsg{result: result, err: err}
	}
}

func (m *TrainerModel) handleCommandResult(msg commandResultMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.appendLine(errorStyle.Render(msg.err.Error()))
		return m, nil
	}

	m.appendLine(msg.result.Output)

	if !msg.result.Completed {
		return m, nil
	}

	m.appendLine(okStyle.Render("Stage complete!"))
	if msg.result.Message != "" {
		m.appendLine(bannerStyle.Render(msg.result.Message))
	}
	if msg.result.SessionDone {
		return m, m.endSessionCmd()
	}
	m.printStageHeader()
	return m, nil
}

func (m *TrainerModel) endSessionCmd() tea.Cmd {
	return func() tea.Msg {
		summary, err := m.service.EndSession(context.Background(), m.sessionID)
		return sessionEndedMsg{summary: summary, err: err}
	}
}

func (m *TrainerModel) View() string {
	if !m.ready {
		return "loading..."
	}
	footer := mutedStyle.Render(fmt.Sprintf("player: %s | :help for commands | ctrl+c to quit", m.player))
	return m.viewport.View() + "\n" + m.input.View() + "\n" + footer
}
