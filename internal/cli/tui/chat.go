package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/AlecGordonToTheMaxx/albumctl/internal/cli/types"
)

// UI configuration constants
const (
	defaultInputWidth      = 100
	defaultViewportWidth   = 100
	defaultViewportHeight  = 30
	defaultWindowWidth     = 100
	defaultWindowHeight    = 40
	inputCharLimit         = 4000
	inputHeightReserved    = 4
	statusHeightReserved   = 3
	minContentHeight       = 10
	sessionIDDisplayLength = 8
)

// Style definitions
var (
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	boldStyle   = lipgloss.NewStyle().Bold(true)
	accentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	promptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("63"))
	actionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("212"))
)

// Message roles
const (
	roleUser      = "user"
	roleAssistant = "assistant"
	roleSystem    = "system"
)

// greeting opens every chat session.
const greeting = "Hello! I'm your album management assistant. I can help you view, create, update, and delete albums. What would you like to do?"

// apologyReply is appended as a synthetic assistant message when a send fails.
// The transcript is never rolled back.
const apologyReply = "Sorry, I encountered an error processing your request. Please try again."

// quickActions are pre-canned prompts offered at the start of a session.
var quickActions = []string{
	"Show me all albums",
	"Create a new album",
	"What albums do you have?",
	"Delete an album",
}

// Message is a view-local transcript entry. Its id comes from a timestamp and
// is not guaranteed unique across rapid sends; entries are never mutated after
// creation and live only for the session.
type Message struct {
	ID        int64
	Role      string
	Content   string
	CreatedAt time.Time
}

func newMessage(role, content string) Message {
	now := time.Now()
	return Message{
		ID:        now.UnixNano(),
		Role:      role,
		Content:   content,
		CreatedAt: now,
	}
}

// ChatSender is the slice of the API client the chat view depends on.
type ChatSender interface {
	SendChat(ctx context.Context, messages []types.ChatMessage) (*types.ChatResponse, error)
	StreamChat(ctx context.Context, messages []types.ChatMessage) (<-chan types.ChatStreamChunk, <-chan error, error)
}

// ChatProgram encapsulates the chat TUI program
type ChatProgram struct {
	model chatModel
}

// NewChatProgram creates a new chat program instance. With streaming enabled
// the assistant reply renders incrementally as chunks arrive.
func NewChatProgram(sender ChatSender, sessionID string, streaming bool) *ChatProgram {
	return &ChatProgram{model: initialChatModel(sender, sessionID, streaming)}
}

// Run starts the chat TUI program
func (p *ChatProgram) Run() error {
	program := tea.NewProgram(p.model, tea.WithAltScreen())
	_, err := program.Run()
	return err
}

// chatModel is the Bubble Tea model containing all chat interface state
type chatModel struct {
	// Dependencies
	sender    ChatSender
	sessionID string
	streaming bool

	// Transcript state. Ordered, append-only for the session.
	transcript []Message

	// UI components
	input       textarea.Model
	contentView viewport.Model
	spin        spinner.Model

	// Send state. Only one send may be in flight at a time. streamBuf is a
	// plain string because the model is copied by value on every update.
	loading   bool
	streamBuf string
	chunkCh   <-chan types.ChatStreamChunk
	errCh     <-chan error
	lastErr   error

	// Window dimensions
	width  int
	height int
}

// initialChatModel creates the initial chat model
func initialChatModel(sender ChatSender, sessionID string, streaming bool) chatModel {
	input := textarea.New()
	input.Placeholder = "Type your message..."
	input.Focus()
	input.CharLimit = inputCharLimit
	input.SetWidth(defaultInputWidth)
	input.SetHeight(2)
	input.ShowLineNumbers = false
	input.Prompt = ""
	// Plain enter submits; shift+enter (alt+enter where the terminal cannot
	// report shift) inserts a line break
	input.KeyMap.InsertNewline = key.NewBinding(key.WithKeys("shift+enter", "alt+enter"))

	contentViewport := viewport.New(defaultViewportWidth, defaultViewportHeight)
	contentViewport.SetContent("")

	spin := spinner.New()
	spin.Spinner = spinner.Dot
	spin.Style = accentStyle

	m := chatModel{
		sender:      sender,
		sessionID:   sessionID,
		streaming:   streaming,
		transcript:  []Message{newMessage(roleAssistant, greeting)},
		input:       input,
		contentView: contentViewport,
		spin:        spin,
		width:       defaultWindowWidth,
		height:      defaultWindowHeight,
	}
	m.refreshContent()
	return m
}

// Init initializes the model (Bubble Tea interface)
func (m chatModel) Init() tea.Cmd {
	return textarea.Blink
}

// Message type definitions
type (
	chatReplyMsg struct{ content string }
	chatErrMsg   struct{ err error }

	streamInitMsg struct {
		chunkCh <-chan types.ChatStreamChunk
		errCh   <-chan error
	}
	streamChunkMsg struct{ chunk types.ChatStreamChunk }
	streamErrMsg   struct{ err error }
	streamDoneMsg  struct{}
)

// Update processes messages and updates the model (Bubble Tea interface)
func (m chatModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	inputMsg := msg

	switch msg := msg.(type) {
	case tea.KeyMsg:
		var quit, consumed bool
		cmds, quit, consumed = m.handleKeyPress(msg)
		if quit {
			return m, tea.Quit
		}
		if consumed {
			// A quick-action key must not leak into the textarea
			inputMsg = nil
		}

	case tea.WindowSizeMsg:
		m.handleWindowResize(msg)

	case spinner.TickMsg:
		if m.loading {
			var cmd tea.Cmd
			m.spin, cmd = m.spin.Update(msg)
			cmds = append(cmds, cmd)
		}

	case chatReplyMsg:
		m.transcript = append(m.transcript, newMessage(roleAssistant, msg.content))
		m.loading = false
		m.refreshContent()

	case chatErrMsg:
		// Failures surface in the transcript; the user entry stays put
		m.lastErr = msg.err
		m.transcript = append(m.transcript, newMessage(roleAssistant, apologyReply))
		m.loading = false
		m.refreshContent()

	case streamInitMsg:
		m.chunkCh = msg.chunkCh
		m.errCh = msg.errCh
		cmds = append(cmds, waitForChunk(m.chunkCh, m.errCh))

	case streamChunkMsg:
		m.handleChunk(msg.chunk)
		cmds = append(cmds, waitForChunk(m.chunkCh, m.errCh))

	case streamErrMsg:
		m.lastErr = msg.err
		m.streamBuf = ""
		m.transcript = append(m.transcript, newMessage(roleAssistant, apologyReply))
		m.loading = false
		m.chunkCh, m.errCh = nil, nil
		m.refreshContent()

	case streamDoneMsg:
		m.finishStream()
	}

	// The input only updates while no send is in flight
	if !m.loading && inputMsg != nil {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(inputMsg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// handleKeyPress handles keyboard input. The boolean returns request quitting
// the program and report whether the key was consumed by a quick action.
func (m *chatModel) handleKeyPress(msg tea.KeyMsg) ([]tea.Cmd, bool, bool) {
	var cmds []tea.Cmd

	switch msg.String() {
	case "ctrl+c", "esc":
		return nil, true, false

	case "enter":
		if !m.loading {
			if cmd := m.submit(m.input.Value()); cmd != nil {
				cmds = append(cmds, cmd, m.spin.Tick)
			}
		}

	case "pgup":
		m.contentView.ViewUp()

	case "pgdown":
		m.contentView.ViewDown()

	default:
		// Digit shortcuts trigger quick actions while the session is fresh
		if m.quickActionsVisible() && !m.loading && m.input.Value() == "" {
			if idx := quickActionIndex(msg.String()); idx >= 0 {
				if cmd := m.submit(quickActions[idx]); cmd != nil {
					cmds = append(cmds, cmd, m.spin.Tick)
				}
				return cmds, false, true
			}
		}
	}

	return cmds, false, false
}

func quickActionIndex(keyStr string) int {
	if len(keyStr) != 1 || keyStr[0] < '1' {
		return -1
	}
	idx := int(keyStr[0] - '1')
	if idx >= len(quickActions) {
		return -1
	}
	return idx
}

// quickActionsVisible reports whether the quick action panel is shown: only
// while the transcript holds at most the greeting.
func (m *chatModel) quickActionsVisible() bool {
	return len(m.transcript) <= 1
}

// handleWindowResize handles window size changes
func (m *chatModel) handleWindowResize(msg tea.WindowSizeMsg) {
	m.width = msg.Width
	m.height = msg.Height

	contentHeight := msg.Height - inputHeightReserved - statusHeightReserved
	if contentHeight < minContentHeight {
		contentHeight = minContentHeight
	}

	m.contentView.Width = msg.Width
	m.contentView.Height = contentHeight
	m.input.SetWidth(msg.Width - 3)

	// Reapply wrapping when window size changes
	m.refreshContent()
}

// submit appends the user message and starts the send. The outgoing payload is
// built from the transcript after the append, so the request always includes
// the message the user just sent.
func (m *chatModel) submit(content string) tea.Cmd {
	content = strings.TrimSpace(content)
	if content == "" || m.loading {
		return nil
	}

	m.input.Reset()
	m.lastErr = nil
	m.transcript = append(m.transcript, newMessage(roleUser, content))
	m.loading = true

	payload := m.outgoingMessages()
	m.refreshContent()

	if m.streaming {
		m.streamBuf = ""
		return m.initStream(payload)
	}
	return m.sendChat(payload)
}

// outgoingMessages converts the transcript to the wire shape, dropping
// system-role entries. The result is a fresh slice, detached from the model.
func (m *chatModel) outgoingMessages() []types.ChatMessage {
	out := make([]types.ChatMessage, 0, len(m.transcript))
	for _, msg := range m.transcript {
		if msg.Role == roleSystem {
			continue
		}
		out = append(out, types.ChatMessage{Role: msg.Role, Content: msg.Content})
	}
	return out
}

// sendChat performs a non-streaming send
func (m *chatModel) sendChat(payload []types.ChatMessage) tea.Cmd {
	sender := m.sender
	return func() tea.Msg {
		resp, err := sender.SendChat(context.Background(), payload)
		if err != nil {
			return chatErrMsg{err: err}
		}
		return chatReplyMsg{content: resp.Message}
	}
}

// initStream starts a streaming send
func (m *chatModel) initStream(payload []types.ChatMessage) tea.Cmd {
	sender := m.sender
	return func() tea.Msg {
		chunkCh, errCh, err := sender.StreamChat(context.Background(), payload)
		if err != nil {
			return streamErrMsg{err: err}
		}
		return streamInitMsg{chunkCh: chunkCh, errCh: errCh}
	}
}

// waitForChunk waits for the next streaming data chunk
func waitForChunk(chunkCh <-chan types.ChatStreamChunk, errCh <-chan error) tea.Cmd {
	return func() tea.Msg {
		select {
		case chunk, ok := <-chunkCh:
			if !ok {
				return streamDoneMsg{}
			}
			return streamChunkMsg{chunk: chunk}
		case err, ok := <-errCh:
			if !ok {
				return streamDoneMsg{}
			}
			if err != nil {
				return streamErrMsg{err: err}
			}
			return streamDoneMsg{}
		}
	}
}

// handleChunk accumulates a streaming delta into the partial-content buffer
func (m *chatModel) handleChunk(chunk types.ChatStreamChunk) {
	if len(chunk.Choices) == 0 {
		return
	}
	delta := chunk.Choices[0].Delta.Content
	if delta == "" {
		return
	}

	m.streamBuf += delta
	m.refreshContent()
}

// finishStream finalizes the buffered partial content into a regular
// assistant message
func (m *chatModel) finishStream() {
	content := m.streamBuf
	m.streamBuf = ""
	m.chunkCh, m.errCh = nil, nil
	m.loading = false

	if content == "" {
		content = apologyReply
	}
	m.transcript = append(m.transcript, newMessage(roleAssistant, content))
	m.refreshContent()
}

// refreshContent rebuilds the viewport from the transcript
func (m *chatModel) refreshContent() {
	var b strings.Builder

	for i, msg := range m.transcript {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(m.renderMessage(msg))
	}

	if m.streamBuf != "" {
		b.WriteString("\n")
		b.WriteString(accentStyle.Render("Assistant"))
		b.WriteString(dimStyle.Render(" streaming..."))
		b.WriteString("\n")
		b.WriteString(m.streamBuf)
		b.WriteString("▌")
		b.WriteString("\n")
	}

	display := b.String()
	if m.width > 0 {
		display = wrapText(display, m.width)
	}

	m.contentView.SetContent(display)
	m.contentView.GotoBottom()
}

// renderMessage renders one transcript entry with its role header and time
func (m *chatModel) renderMessage(msg Message) string {
	header := accentStyle.Render("Assistant")
	if msg.Role == roleUser {
		header = boldStyle.Render("You")
	}
	timestamp := dimStyle.Render(" " + msg.CreatedAt.Format("3:04 PM"))

	return fmt.Sprintf("%s%s\n%s\n", header, timestamp, msg.Content)
}

// wrapText applies auto-wrapping to text, handling wide runes correctly
func wrapText(text string, maxWidth int) string {
	if maxWidth <= 10 {
		return text
	}

	lines := strings.Split(text, "\n")
	var result strings.Builder

	for i, line := range lines {
		if i > 0 {
			result.WriteString("\n")
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		result.WriteString(wrapLine(line, maxWidth))
	}

	return result.String()
}

// wrapLine wraps a single line of text by rune display width
func wrapLine(line string, maxWidth int) string {
	if runewidth.StringWidth(line) <= maxWidth {
		return line
	}

	var result strings.Builder
	var currentLine strings.Builder
	currentWidth := 0

	for _, r := range line {
		runeW := runewidth.RuneWidth(r)

		if currentWidth+runeW > maxWidth && currentWidth > 0 {
			result.WriteString(currentLine.String())
			result.WriteString("\n")
			currentLine.Reset()
			currentWidth = 0
		}

		currentLine.WriteRune(r)
		currentWidth += runeW
	}

	if currentLine.Len() > 0 {
		result.WriteString(currentLine.String())
	}

	return result.String()
}

// View renders the UI (Bubble Tea interface)
func (m chatModel) View() string {
	// Top status bar
	status := dimStyle.Render(fmt.Sprintf("session %s", shortID(m.sessionID)))
	if m.loading {
		status += " " + m.spin.View() + dimStyle.Render("Thinking...")
	}
	if m.lastErr != nil {
		status += "  " + errorStyle.Render(fmt.Sprintf("error: %v", m.lastErr))
	}

	content := m.contentView.View()

	// Quick actions panel, shown until the first exchange
	actions := ""
	if m.quickActionsVisible() {
		var parts []string
		for i, action := range quickActions {
			label := fmt.Sprintf("[%d] %s", i+1, action)
			if m.loading {
				parts = append(parts, dimStyle.Render(label))
			} else {
				parts = append(parts, actionStyle.Render(label))
			}
		}
		actions = dimStyle.Render("Try asking:") + "\n" + strings.Join(parts, "  ")
	}

	// Input area
	var inputView string
	if m.loading {
		inputView = dimStyle.Render("> waiting for reply...")
	} else {
		inputView = promptStyle.Render("> ") + "\n" + m.input.View()
	}

	helpText := "Enter send • Shift+Enter new line • PgUp/PgDn scroll • Esc quit"
	if m.quickActionsVisible() {
		helpText = "1-4 quick action • " + helpText
	}
	help := dimStyle.Render(helpText)

	parts := []string{status, "", content}
	if actions != "" {
		parts = append(parts, "", actions)
	}
	parts = append(parts, "", inputView, help)

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func shortID(id string) string {
	if len(id) <= sessionIDDisplayLength {
		return id
	}
	return id[:sessionIDDisplayLength]
}
