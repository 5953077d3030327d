// ABOUTME: Terminal chat interface using bubbletea framework
// ABOUTME: Full-screen assistant panel with scrollback and degraded-mode badge
package tui

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/harperreed/stakeholdr/ai"
)

// chatMessage is one entry in the scrollback.
type chatMessage struct {
	fromUser bool
	content  string
	degraded bool
}

// responseMsg delivers the orchestrator's answer back into the update loop.
type responseMsg struct {
	response ai.ChatResponse
}

// Model is the main bubbletea model for the chat panel.
type Model struct {
	db      *sql.DB
	service *ai.Service
	project ai.ProjectContext
	model   string

	input    textinput.Model
	view     viewport.Model
	spin     spinner.Model
	messages []chatMessage
	waiting  bool
	ready    bool

	width  int
	height int
}

var suggestedQueries = []string{
	"Who is responsible for design?",
	"List all high-influence stakeholders",
	"Who should I email weekly?",
	"Who are the blockers?",
	"Who am I neglecting?",
}

// NewModel creates the chat model for one project.
func NewModel(db *sql.DB, service *ai.Service, project ai.ProjectContext, model string) Model {
	input := textinput.New()
	input.Placeholder = "Ask about your stakeholders..."
	input.Focus()
	input.CharLimit = 500

	spin := spinner.New()
	spin.Spinner = spinner.Dot
	spin.Style = spinnerStyle

	return Model{
		db:      db,
		service: service,
		project: project,
		model:   model,
		input:   input,
		spin:    spin,
		width:   80,
		height:  24,
	}
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "enter":
			if m.waiting {
				return m, nil
			}
			question := strings.TrimSpace(m.input.Value())
			if question == "" {
				return m, nil
			}
			m.messages = append(m.messages, chatMessage{fromUser: true, content: question})
			m.input.Reset()
			m.waiting = true
			m.refreshViewport()
			return m, tea.Batch(m.spin.Tick, m.ask(question))
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.view = viewport.New(msg.Width-2, msg.Height-5)
		m.ready = true
		m.refreshViewport()
		return m, nil

	case responseMsg:
		m.waiting = false
		m.messages = append(m.messages, chatMessage{
			content:  msg.response.Content,
			degraded: msg.response.ErrorNote != "",
		})
		m.refreshViewport()
		return m, nil

	case spinner.TickMsg:
		if !m.waiting {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(fmt.Sprintf("%s — assistant", m.project.ProjectName)))
	b.WriteString("\n")

	if m.ready {
		b.WriteString(m.view.View())
	}
	b.WriteString("\n")

	if m.waiting {
		b.WriteString(m.spin.View() + " thinking...")
	} else {
		b.WriteString(m.input.View())
	}
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("enter: send · esc: quit"))

	return b.String()
}

// ask runs the orchestrator off the update loop.
func (m Model) ask(question string) tea.Cmd {
	service := m.service
	project := m.project
	model := m.model
	return func() tea.Msg {
		response := service.ProcessQuery(context.Background(), question, project, model)
		return responseMsg{response: response}
	}
}

func (m *Model) refreshViewport() {
	if !m.ready {
		return
	}
	m.view.SetContent(m.transcript())
	m.view.GotoBottom()
}

func (m Model) transcript() string {
	if len(m.messages) == 0 {
		var b strings.Builder
		b.WriteString("Try asking:\n")
		for _, q := range suggestedQueries {
			b.WriteString("  · " + q + "\n")
		}
		return b.String()
	}

	var b strings.Builder
	for _, msg := range m.messages {
		if msg.fromUser {
			b.WriteString(userStyle.Render("you: ") + msg.content + "\n\n")
			continue
		}
		label := "assistant: "
		if msg.degraded {
			label = "assistant (offline): "
		}
		b.WriteString(assistantStyle.Render(label) + msg.content + "\n\n")
	}
	return b.String()
}

// Run starts the chat TUI and blocks until the user quits.
func Run(db *sql.DB, service *ai.Service, project ai.ProjectContext, model string) error {
	p := tea.NewProgram(NewModel(db, service, project, model), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("170")).
			MarginBottom(1)

	userStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	assistantStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("170"))

	spinnerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("170"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			MarginTop(1)
)
