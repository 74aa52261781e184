// Package tui implements the interactive assistant chat screen.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/jmar008/dealaai/internal/cli/chat"
	"github.com/jmar008/dealaai/internal/cli/client"
	"github.com/jmar008/dealaai/internal/cli/types"
)

const (
	defaultWidth    = 100
	defaultHeight   = 30
	inputCharLimit  = 4000
	chromeHeight    = 4
	requestTimeout  = 120 * time.Second
	minContentWidth = 20
)

var (
	dimStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	userStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("63")).Bold(true)
	assistantStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true)
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

// ChatProgram wraps the Bubble Tea program for the assistant chat.
type ChatProgram struct {
	model chatModel
}

// NewChatProgram creates the chat program. The store keeps the transcript
// so a later session in the same process resumes where it left off.
func NewChatProgram(apiClient *client.Client, store *chat.Store, username string) *ChatProgram {
	return &ChatProgram{model: initialModel(apiClient, store, username)}
}

// Run starts the chat program.
func (p *ChatProgram) Run() error {
	p.model.store.Open()
	defer p.model.store.Close()

	program := tea.NewProgram(p.model, tea.WithAltScreen())
	_, err := program.Run()
	return err
}

type (
	replyMsg    struct{ exchange *types.ChatExchange }
	replyErrMsg struct{ err error }
)

type chatModel struct {
	apiClient *client.Client
	store     *chat.Store
	username  string

	input    textinput.Model
	viewport viewport.Model

	waiting bool
	err     error

	width  int
	height int
}

func initialModel(apiClient *client.Client, store *chat.Store, username string) chatModel {
	input := textinput.New()
	input.Placeholder = "Ask about the stock..."
	input.Focus()
	input.CharLimit = inputCharLimit
	input.Width = defaultWidth - 4

	vp := viewport.New(defaultWidth, defaultHeight-chromeHeight)

	m := chatModel{
		apiClient: apiClient,
		store:     store,
		username:  username,
		input:     input,
		viewport:  vp,
		width:     defaultWidth,
		height:    defaultHeight,
	}
	m.refreshContent()
	return m
}

func (m chatModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m chatModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyCtrlL:
			m.store.ClearMessages()
			m.err = nil
			m.refreshContent()
			return m, nil
		case tea.KeyEnter:
			if cmd := m.submit(); cmd != nil {
				cmds = append(cmds, cmd)
			}
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = msg.Width
		m.viewport.Height = msg.Height - chromeHeight
		m.input.Width = msg.Width - 4
		m.refreshContent()

	case replyMsg:
		m.waiting = false
		m.store.SetLoading(false)
		if msg.exchange != nil {
			m.store.SetCurrentConversationID(msg.exchange.ConversationID)
			if msg.exchange.Reply != nil {
				m.store.AddMessage(*msg.exchange.Reply)
			}
		}
		m.refreshContent()

	case replyErrMsg:
		m.waiting = false
		m.store.SetLoading(false)
		m.err = msg.err
		m.refreshContent()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)

	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

func (m *chatModel) submit() tea.Cmd {
	text := strings.TrimSpace(m.input.Value())
	if text == "" || m.waiting {
		return nil
	}

	m.input.Reset()
	m.err = nil
	m.waiting = true

	m.store.AddMessage(types.ChatMessage{
		Role:      "user",
		Content:   text,
		CreatedAt: time.Now().Format(time.RFC3339),
	})
	m.store.SetLoading(true)
	m.refreshContent()

	conversationID := m.store.State().CurrentConversationID
	apiClient := m.apiClient

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		exchange, err := apiClient.SendChatMessage(ctx, conversationID, text)
		if err != nil {
			return replyErrMsg{err: err}
		}
		return replyMsg{exchange: exchange}
	}
}

func (m *chatModel) refreshContent() {
	state := m.store.State()
	width := m.viewport.Width
	if width < minContentWidth {
		width = minContentWidth
	}

	var b strings.Builder
	for _, msg := range state.Messages {
		switch msg.Role {
		case "user":
			b.WriteString(userStyle.Render(m.username+" >") + " ")
		default:
			b.WriteString(assistantStyle.Render("assistant >") + " ")
		}
		b.WriteString(wrapText(msg.Content, width-2))
		b.WriteString("\n\n")
	}

	if m.waiting {
		b.WriteString(dimStyle.Render("thinking..."))
		b.WriteString("\n")
	}
	if m.err != nil {
		b.WriteString(errorStyle.Render("error: " + m.err.Error()))
		b.WriteString("\n")
	}

	m.viewport.SetContent(b.String())
	m.viewport.GotoBottom()
}

func (m chatModel) View() string {
	status := dimStyle.Render("enter send · ctrl+l clear · esc quit")
	if id := m.store.State().CurrentConversationID; id != "" {
		short := id
		if len(short) > 8 {
			short = short[:8]
		}
		status += dimStyle.Render("  conversation " + short)
	}

	return fmt.Sprintf("%s\n%s\n%s",
		m.viewport.View(),
		m.input.View(),
		status,
	)
}

// wrapText soft-wraps text to the given display width.
func wrapText(text string, maxWidth int) string {
	if maxWidth <= 0 {
		return text
	}

	var out []string
	for _, line := range strings.Split(text, "\n") {
		out = append(out, wrapLine(line, maxWidth))
	}
	return strings.Join(out, "\n")
}

func wrapLine(line string, maxWidth int) string {
	if runewidth.StringWidth(line) <= maxWidth {
		return line
	}

	var b strings.Builder
	current := 0
	for _, word := range strings.Fields(line) {
		w := runewidth.StringWidth(word)
		if current > 0 && current+w+1 > maxWidth {
			b.WriteString("\n")
			current = 0
		} else if current > 0 {
			b.WriteString(" ")
			current++
		}
		b.WriteString(word)
		current += w
	}
	return b.String()
}
