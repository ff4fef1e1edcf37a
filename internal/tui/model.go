package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"docchat/internal/domain"
	"docchat/internal/index"
	"docchat/internal/session"
)

// Answerer is the TUI-facing subset of the answer service.
type Answerer interface {
	Answer(ctx context.Context, query string, idx *index.Index) string
}

// Model is the Bubble Tea model for the chat application.
type Model struct {
	answerer Answerer
	idx      *index.Index
	log      *session.Log
	input    textinput.Model
	viewport viewport.Model
	spinner  spinner.Model
	thinking bool
	ready    bool
	status   string
}

// answerMsg carries a finished answer back into the event loop.
type answerMsg struct {
	text string
}

// New creates a new chat model over the given index and session log.
func New(answerer Answerer, idx *index.Index, log *session.Log) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Ask about the documents and press Enter"
	ti.Focus()
	ti.CharLimit = 0
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = spinnerStyle
	vp := viewport.New(0, 0)
	status := fmt.Sprintf("%d document(s) loaded. Type a question.", len(idx.Documents()))
	if idx.Empty() {
		status = "No documents available. Add PDFs to the folder and restart."
	}
	return Model{answerer: answerer, idx: idx, log: log, input: ti, viewport: vp, spinner: sp, status: status}
}

// Init initializes the model (text input cursor blink).
func (m Model) Init() tea.Cmd { return textinput.Blink }

// Update handles key, window and answer events and updates the view state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		// account for frames around chat and query boxes
		_, ch := chatBoxStyle.GetFrameSize()
		_, qh := queryBoxStyle.GetFrameSize()
		totalHeaderLines := 2                                    // title + document list
		totalFooterLines := 1                                    // status
		reserved := totalHeaderLines + totalFooterLines + qh + 1 // 1 spacer
		vh := msg.Height - reserved
		if vh < 3 {
			vh = 3
		}
		m.viewport.Width = max(20, msg.Width)
		m.viewport.Height = max(3, vh-ch)
		m.viewport.SetContent(m.renderConversation())
		return m, nil
	case tea.KeyMsg:
		// Global quits
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyCtrlD {
			return m, tea.Quit
		}
		if msg.String() == "enter" && !m.thinking {
			q := strings.TrimSpace(m.input.Value())
			if q != "" {
				m.log.Append(domain.RoleUser, q)
				m.input.Reset()
				m.thinking = true
				m.status = "Assistant is thinking..."
				m.viewport.SetContent(m.renderConversation())
				m.viewport.GotoBottom()
				return m, tea.Batch(m.spinner.Tick, m.ask(q))
			}
		}
	case answerMsg:
		m.log.Append(domain.RoleAssistant, msg.text)
		m.thinking = false
		m.status = "Ready."
		m.viewport.SetContent(m.renderConversation())
		m.viewport.GotoBottom()
		return m, nil
	case spinner.TickMsg:
		if m.thinking {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			m.viewport.SetContent(m.renderConversation())
			return m, cmd
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the chat layout.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	header := titleStyle.Render("Document Assistant")
	docs := docListStyle.Render(m.documentLine())
	chat := chatBoxStyle.Render(m.viewport.View())
	input := queryBoxStyle.Render(m.input.View())
	status := statusStyle.Render(m.status)
	if m.idx.Empty() {
		notice := docListStyle.Render("Add at least one PDF to start chatting.")
		return header + "\n" + docs + "\n" + chat + "\n" + notice + "\n" + status
	}
	return header + "\n" + docs + "\n" + chat + "\n" + input + "\n" + status
}

// ask runs the answer pipeline off the event loop so a slow generation
// backend never blocks rendering.
func (m Model) ask(query string) tea.Cmd {
	answerer, idx := m.answerer, m.idx
	return func() tea.Msg {
		return answerMsg{text: answerer.Answer(context.Background(), query, idx)}
	}
}

func (m Model) documentLine() string {
	docs := m.idx.Documents()
	if len(docs) == 0 {
		return "No documents loaded."
	}
	return "Documents: " + strings.Join(docs, ", ")
}

func (m Model) renderConversation() string {
	if m.log.Len() == 0 {
		if m.idx.Empty() {
			return "No documents available."
		}
		return "Ask a question about the loaded documents."
	}
	var b strings.Builder
	for i, msg := range m.log.Messages() {
		if i > 0 {
			b.WriteString("\n\n")
		}
		switch msg.Role {
		case domain.RoleUser:
			b.WriteString(userStyle.Render("You: ") + msg.Content)
		default:
			b.WriteString(assistantStyle.Render("Assistant: ") + msg.Content)
		}
	}
	if m.thinking {
		b.WriteString("\n\n" + m.spinner.View() + " thinking")
	}
	return b.String()
}

var (
	titleStyle     = lipgloss.NewStyle().Bold(true)
	docListStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	chatBoxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	queryBoxStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	statusStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	userStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	assistantStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	spinnerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
