package terminal

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/aliskhannn/ysquiz/internal/quiz"
)

// StartFunc (re)initializes the session with its question set.
type StartFunc func(session *quiz.Session) error

// Options configures the terminal model.
type Options struct {
	NoColor bool
}

// Model drives a quiz session from key presses.
type Model struct {
	session  *quiz.Session
	screen   *quiz.Screen
	start    StartFunc
	keys     keyMap
	cursor   int
	err      error
	quitting bool
	noColor  bool
}

// NewModel constructs a model for a session that draws into screen.
// The session must already be initialized; start is used for restarts.
func NewModel(session *quiz.Session, screen *quiz.Screen, start StartFunc, opts Options) Model {
	return Model{
		session: session,
		screen:  screen,
		start:   start,
		keys:    defaultKeyMap(),
		noColor: opts.NoColor,
	}
}

// Init has nothing to wait for: the first question is already on screen.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles key presses.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(keyMsg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(keyMsg, m.keys.Down):
		if q := m.screen.Question(); q != nil && m.cursor < len(q.Controls)-1 {
			m.cursor++
		}

	case key.Matches(keyMsg, m.keys.Toggle):
		if q := m.screen.Question(); q != nil && m.cursor < len(q.Controls) {
			m.screen.Toggle(q.Controls[m.cursor].Position)
		}

	case key.Matches(keyMsg, m.keys.Next):
		if m.session.Advance() == quiz.OutcomeNext {
			m.cursor = 0
		}

	case key.Matches(keyMsg, m.keys.Restart):
		m.session.Teardown()
		m.err = m.start(m.session)
		m.cursor = 0
	}

	return m, nil
}

// View renders the quiz.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	if m.err != nil {
		return renderError(m.err, m.noColor) + "\n"
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		renderHeader(m.screen.Chrome(), m.noColor),
		renderContent(m.screen, m.cursor, m.noColor),
		renderMessage(m.screen.Message(), m.noColor),
		renderHelp(m.keys.help(), m.noColor),
	) + "\n"
}

// Stats exposes the session progress.
func (m Model) Stats() quiz.Stats {
	return m.session.Stats()
}
