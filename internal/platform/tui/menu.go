package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/grid-arcade/internal/core"
	"github.com/vovakirdan/grid-arcade/internal/registry"
	"github.com/vovakirdan/grid-arcade/internal/storage"
)

type sessionState int

const (
	stateMenu sessionState = iota
	statePlaying
	stateScores
)

// SessionModel drives one interactive session: a game picker, the game
// itself, and the scoreboard. It backs both the local menu command and
// each SSH connection.
type SessionModel struct {
	store    *storage.Store
	config   core.Config
	tickRate int
	user     string

	games  []registry.Info
	cursor int
	state  sessionState

	game   Model
	scores ScoreboardModel

	width    int
	height   int
	quitting bool
}

// NewSessionModel creates a session model listing all registered games.
func NewSessionModel(store *storage.Store, cfg core.Config, tickRate int, user string) SessionModel {
	return SessionModel{
		store:    store,
		config:   cfg,
		tickRate: tickRate,
		user:     user,
		games:    registry.List(),
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return nil
}

// Update handles messages, delegating to the active sub-model.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = size.Width
		m.height = size.Height
	}

	switch m.state {
	case statePlaying:
		return m.updateGame(msg)
	case stateScores:
		return m.updateScores(msg)
	default:
		return m.updateMenu(msg)
	}
}

// updateMenu handles the game picker.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "ctrl+c", "q":
		m.quitting = true
		return m, tea.Quit

	case "up", "k", "w":
		if m.cursor > 0 {
			m.cursor--
		}

	case "down", "j", "s":
		if m.cursor < len(m.games)-1 {
			m.cursor++
		}

	case "h":
		m.scores = NewScoreboardModel(m.store, m.width, m.height)
		m.state = stateScores

	case "enter", " ":
		if len(m.games) == 0 {
			return m, nil
		}
		env, err := registry.Create(m.games[m.cursor].ID)
		if err != nil {
			return m, nil
		}
		cfg := m.config
		cfg.Seed = time.Now().UnixNano()
		m.game = NewModel(env, m.store, cfg, m.tickRate)
		if m.game.err != nil {
			return m, nil
		}
		m.state = statePlaying
		return m, m.game.Init()
	}

	return m, nil
}

// updateGame forwards messages to the running game, intercepting the
// back key to return to the menu.
func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if key.Matches(keyMsg, m.game.keys.Back) {
			m.state = stateMenu
			return m, nil
		}
	}

	next, cmd := m.game.Update(msg)
	game, ok := next.(Model)
	if !ok {
		return m, cmd
	}
	m.game = game

	// The game model quits on q; turn that into a return to the menu so
	// the session survives.
	if m.game.quitting {
		m.state = stateMenu
		return m, nil
	}
	return m, cmd
}

// updateScores forwards messages to the scoreboard, turning its exit
// signals back into menu navigation.
func (m SessionModel) updateScores(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, _ := m.scores.Update(msg)
	scores, ok := next.(ScoreboardModel)
	if !ok {
		return m, nil
	}
	m.scores = scores

	if m.scores.quitting {
		m.quitting = true
		return m, tea.Quit
	}
	if m.scores.goingBack {
		m.state = stateMenu
	}
	return m, nil
}

// View renders the active screen.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.state {
	case statePlaying:
		return m.game.View()
	case stateScores:
		return m.scores.View()
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("GRID ARCADE"))
	if m.user != "" {
		b.WriteString(helpStyle.Render(fmt.Sprintf("  welcome, %s", m.user)))
	}
	b.WriteString("\n\n")

	selected := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	for i, g := range m.games {
		cursor := "  "
		line := g.Title
		if m.store != nil {
			if high, err := m.store.HighScore(g.ID); err == nil && high > 0 {
				line = fmt.Sprintf("%-16s best %d", g.Title, high)
			}
		}
		if i == m.cursor {
			cursor = "> "
			line = selected.Render(line)
		}
		b.WriteString(cursor + line + "\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("enter play  •  h high scores  •  q quit"))
	return b.String()
}

// RunSession starts a full interactive session in the local terminal.
func RunSession(store *storage.Store, cfg core.Config, tickRate int) error {
	model := NewSessionModel(store, cfg, tickRate, "")

	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
