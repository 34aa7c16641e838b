package main

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/muesli/reflow/wordwrap"

	"github.com/pupilplay/game-engine/pkg/session"
)

const (
	TutorName       = "Tutor"
	PlaceHolderText = "Ask your tutor anything..."
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")). // pink
			Bold(true)

	tutorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")) // green

	userStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")) // teal

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")) // red

	loadingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")) // yellow

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")) // dark grey

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	separatorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))
)

type chatLine struct {
	speaker string
	text    string
}

// ConsoleUI is the BubbleTea model that runs the UI.
type ConsoleUI struct {
	config    *ConsoleConfig
	client    *http.Client
	viewport  viewport.Model
	textarea  textarea.Model
	lines     []chatLine
	sessionID uuid.UUID
	snapshot  *session.GameSnapshot
	ready     bool
	loading   bool
	width     int
	height    int
	err       error
}

type interactionMsg struct {
	response *session.InteractionResponse
	err      error
}

func NewConsoleUI(cfg *ConsoleConfig, client *http.Client) ConsoleUI {
	ta := textarea.New()
	ta.Placeholder = PlaceHolderText
	ta.Focus()
	ta.Prompt = promptStyle.Render(":: ")
	ta.CharLimit = 1000
	ta.SetWidth(50)
	ta.SetHeight(3)
	ta.ShowLineNumbers = false

	vp := viewport.New(50, 20)
	vp.MouseWheelEnabled = true

	return ConsoleUI{
		config:   cfg,
		client:   client,
		textarea: ta,
		viewport: vp,
	}
}

func (m ConsoleUI) Init() tea.Cmd {
	return textarea.Blink
}

func (m ConsoleUI) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var (
		tiCmd tea.Cmd
		vpCmd tea.Cmd
	)

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = m.width - 4
		m.viewport.Height = m.height - 7
		m.textarea.SetWidth(m.width - 6)
		m.ready = true
		m.writeChatContent()

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			if m.loading {
				return m, nil
			}
			message := strings.TrimSpace(m.textarea.Value())
			if message == "" {
				return m, nil
			}
			m.textarea.Reset()
			m.lines = append(m.lines, chatLine{speaker: "You", text: message})
			m.loading = true
			m.err = nil
			m.writeChatContent()
			return m, m.sendMessage(message)
		}

	case interactionMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
		} else {
			m.lines = append(m.lines, chatLine{speaker: TutorName, text: msg.response.Response})
			m.snapshot = &msg.response.GameState
			m.sessionID = msg.response.GameState.SessionID
			if !msg.response.Success {
				m.err = fmt.Errorf("%s", msg.response.Error)
			}
		}
		m.writeChatContent()
	}

	m.textarea, tiCmd = m.textarea.Update(msg)
	m.viewport, vpCmd = m.viewport.Update(msg)

	return m, tea.Batch(tiCmd, vpCmd)
}

func (m ConsoleUI) View() string {
	if !m.ready {
		return "Initializing..."
	}

	return fmt.Sprintf("%s\n\n%s\n%s",
		m.viewport.View(),
		m.statusLine(),
		m.textarea.View())
}

// sendMessage posts the player message asynchronously.
func (m ConsoleUI) sendMessage(message string) tea.Cmd {
	client := m.client
	cfg := m.config
	sessionID := m.sessionID
	return func() tea.Msg {
		resp, err := sendInteraction(client, cfg.APIBaseURL, cfg.PlayerID, message, sessionID)
		return interactionMsg{response: resp, err: err}
	}
}

func (m *ConsoleUI) writeChatContent() {
	chatWidth := m.viewport.Width - 4
	if chatWidth < 20 {
		chatWidth = 20
	}

	var content strings.Builder
	content.WriteString(titleStyle.Render("PUPILPLAY") + "\n\n")
	content.WriteString("Type your questions below to play with your tutor.\n\n")
	content.WriteString(separatorStyle.Render(strings.Repeat("─", chatWidth)) + "\n\n")

	for _, line := range m.lines {
		if line.speaker == TutorName {
			content.WriteString(tutorStyle.Render(TutorName+": ") + wordwrap.String(line.text, chatWidth) + "\n\n")
		} else {
			content.WriteString(userStyle.Render("You: ") + wordwrap.String(line.text, chatWidth) + "\n\n")
		}
	}

	if m.loading {
		content.WriteString(loadingStyle.Render("Thinking...") + "\n")
	}
	if m.err != nil {
		content.WriteString(errorStyle.Render("Error: "+m.err.Error()) + "\n")
	}

	m.viewport.SetContent(content.String())
	m.viewport.GotoBottom()
}

// statusLine summarizes progression from the latest snapshot.
func (m ConsoleUI) statusLine() string {
	if m.snapshot == nil {
		return statusStyle.Render(fmt.Sprintf("Player: %s  •  Ctrl+C to quit", m.config.PlayerID))
	}
	return statusStyle.Render(fmt.Sprintf(
		"Player: %s  •  Level %d  •  Difficulty %.2f  •  Engagement %.2f",
		m.config.PlayerID,
		m.snapshot.CurrentLevel,
		m.snapshot.DifficultyLevel,
		m.snapshot.EngagementScore))
}
