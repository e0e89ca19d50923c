// Package tui is the terminal front end of the arcade: the game picker,
// the playground that steps a game on a fixed clock, the scoreboard, and
// the SSH server that serves the same session remotely.
package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/grid-arcade/internal/core"
	"github.com/vovakirdan/grid-arcade/internal/registry"
	"github.com/vovakirdan/grid-arcade/internal/storage"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	scoreStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	overStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	boardStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1)
	statusStyle = lipgloss.NewStyle().MarginTop(1)
)

// TickMsg marks one simulation step. The playground applies the pending
// action and advances the game once per message.
type TickMsg time.Time

// tickCmd schedules the next TickMsg, tickRate steps per second.
func tickCmd(tickRate int) tea.Cmd {
	return tea.Tick(time.Second/time.Duration(tickRate), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// Model is the Bubble Tea model for running one game.
type Model struct {
	env      registry.Env
	store    *storage.Store
	config   core.Config
	tickRate int

	keys KeyMap
	help help.Model

	actionIdx map[core.Action]int
	pending   int // action index applied on the next tick

	ob         *core.Observation
	score      float64
	over       bool
	scoreSaved bool
	quitting   bool
	err        error
}

// NewModel creates a Bubble Tea model for the given game.
func NewModel(env registry.Env, store *storage.Store, cfg core.Config, tickRate int) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if tickRate <= 0 {
		tickRate = 8
	}

	idx := make(map[core.Action]int, len(env.Actions()))
	for i, a := range env.Actions() {
		idx[a] = i
	}

	m := Model{
		env:       env,
		store:     store,
		config:    cfg,
		tickRate:  tickRate,
		keys:      DefaultKeyMap(),
		help:      help.New(),
		actionIdx: idx,
	}
	m.ob, m.err = env.Reset(cfg)
	return m
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	if m.err != nil {
		return tea.Quit
	}
	return tickCmd(m.tickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case TickMsg:
		return m.handleTick()
	}
	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Restart):
		if m.over {
			m.config.Seed = time.Now().UnixNano()
			m.ob, m.err = m.env.Reset(m.config)
			if m.err != nil {
				return m, tea.Quit
			}
			m.score = 0
			m.over = false
			m.scoreSaved = false
			m.pending = 0
			return m, tickCmd(m.tickRate)
		}
		return m, nil
	}

	if action, ok := m.keys.mapKey(msg); ok {
		if idx, supported := m.actionIdx[action]; supported {
			m.pending = idx
		}
	}
	return m, nil
}

// handleTick advances the simulation by one step. The pending action is
// consumed and the next tick defaults back to no-op.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.over {
		return m, nil
	}

	ob, reward, terminated, err := m.env.Step(m.pending)
	m.pending = 0
	if err != nil {
		m.err = err
		return m, tea.Quit
	}

	m.ob = ob
	m.score += reward

	if terminated {
		m.over = true
		m.saveScore()
		return m, nil
	}
	return m, tickCmd(m.tickRate)
}

// saveScore persists the final score once per episode.
func (m *Model) saveScore() {
	if m.scoreSaved || m.store == nil || m.score <= 0 {
		return
	}
	//nolint:errcheck // Best-effort save, game continues regardless
	m.store.SaveScore(m.env.ID(), int(m.score), m.config.Seed)
	m.scoreSaved = true
}

// View renders the board, the score line and the help bar.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.err != nil {
		return fmt.Sprintf("error: %v\n", m.err)
	}

	var status string
	if m.over {
		status = overStyle.Render("GAME OVER") + helpStyle.Render("  press r to restart")
	} else {
		status = scoreStyle.Render(fmt.Sprintf("score %d", int(m.score)))
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(m.env.Title()),
		boardStyle.Render(RenderObservation(m.ob)),
		statusStyle.Render(status),
		helpStyle.Render(m.help.View(m.keys)),
	)
}

// Run starts the Bubble Tea program for a single game.
func Run(env registry.Env, store *storage.Store, cfg core.Config, tickRate int) error {
	model := NewModel(env, store, cfg, tickRate)
	if model.err != nil {
		return model.err
	}

	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
