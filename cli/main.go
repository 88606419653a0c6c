package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Styling
var (
	docStyle = lipgloss.NewStyle().Margin(1, 2)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	userStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#0a84ff"))

	botStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#30d158"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#ff453a")).
			Padding(0, 1)
)

// line is one rendered transcript entry
type line struct {
	speaker string
	text    string
}

// Model defines the application state
type Model struct {
	client         *ApiClient
	conversationID string
	transcript     []line
	inputField     textinput.Model
	spinner        spinner.Model
	loading        bool
	error          string
}

type conversationStartedMsg struct {
	conv *Conversation
	err  error
}

type replyMsg struct {
	reply string
	err   error
}

// Initialize the model
func initialModel() Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	ti := textinput.New()
	ti.Placeholder = "Ask about outlets, menus, or orders..."
	ti.CharLimit = 500
	ti.Width = 80
	ti.Focus()

	return Model{
		client:     NewApiClient(),
		inputField: ti,
		spinner:    s,
		loading:    true,
	}
}

// Init starts the conversation with the server
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.startConversation())
}

func (m Model) startConversation() tea.Cmd {
	return func() tea.Msg {
		conv, err := m.client.StartConversation()
		return conversationStartedMsg{conv: conv, err: err}
	}
}

func (m Model) sendMessage(message string) tea.Cmd {
	return func() tea.Msg {
		reply, err := m.client.SendMessage(m.conversationID, message)
		return replyMsg{reply: reply, err: err}
	}
}

// Update handles incoming messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			text := strings.TrimSpace(m.inputField.Value())
			if text == "" || m.loading || m.conversationID == "" {
				return m, nil
			}
			m.transcript = append(m.transcript, line{speaker: "You", text: text})
			m.inputField.Reset()
			m.loading = true
			m.error = ""
			return m, tea.Batch(m.spinner.Tick, m.sendMessage(text))
		}

	case conversationStartedMsg:
		m.loading = false
		if msg.err != nil {
			m.error = fmt.Sprintf("Could not reach the chatbot server: %v", msg.err)
			return m, nil
		}
		m.conversationID = msg.conv.ConversationID
		m.transcript = append(m.transcript, line{speaker: "Assistant", text: msg.conv.Reply})
		return m, nil

	case replyMsg:
		m.loading = false
		if msg.err != nil {
			m.error = fmt.Sprintf("Request failed: %v", msg.err)
			return m, nil
		}
		m.transcript = append(m.transcript, line{speaker: "Assistant", text: msg.reply})
		return m, nil

	case spinner.TickMsg:
		if m.loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.inputField, cmd = m.inputField.Update(msg)
	return m, cmd
}

// View renders the chat transcript and input field
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Restaurant Chatbot"))
	b.WriteString("\n\n")

	for _, entry := range m.transcript {
		if entry.speaker == "You" {
			b.WriteString(userStyle.Render("You: "))
		} else {
			b.WriteString(botStyle.Render("Assistant: "))
		}
		b.WriteString(entry.text)
		b.WriteString("\n\n")
	}

	if m.error != "" {
		b.WriteString(errorStyle.Render(m.error))
		b.WriteString("\n\n")
	}

	if m.loading {
		b.WriteString(m.spinner.View())
		b.WriteString(" thinking...")
	} else {
		b.WriteString(m.inputField.View())
	}
	b.WriteString("\n\n(esc or ctrl+c to quit)")

	return docStyle.Render(b.String())
}

func main() {
	p := tea.NewProgram(initialModel())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running CLI: %v\n", err)
		os.Exit(1)
	}
}
