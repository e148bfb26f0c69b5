package tui

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AlecGordonToTheMaxx/albumctl/internal/cli/types"
)

// fakeSender records outgoing payloads and returns canned replies.
type fakeSender struct {
	payloads [][]types.ChatMessage
	reply    string
	err      error

	chunks    []types.ChatStreamChunk
	streamErr error
}

func (f *fakeSender) SendChat(_ context.Context, messages []types.ChatMessage) (*types.ChatResponse, error) {
	f.payloads = append(f.payloads, messages)
	if f.err != nil {
		return nil, f.err
	}
	return &types.ChatResponse{Message: f.reply}, nil
}

func (f *fakeSender) StreamChat(_ context.Context, messages []types.ChatMessage) (<-chan types.ChatStreamChunk, <-chan error, error) {
	f.payloads = append(f.payloads, messages)
	if f.streamErr != nil {
		return nil, nil, f.streamErr
	}

	chunkCh := make(chan types.ChatStreamChunk, len(f.chunks))
	// errCh stays open so the chunk channel drains deterministically
	errCh := make(chan error, 1)
	for _, chunk := range f.chunks {
		chunkCh <- chunk
	}
	close(chunkCh)
	return chunkCh, errCh, nil
}

func textChunk(delta string) types.ChatStreamChunk {
	return types.ChatStreamChunk{
		Choices: []types.ChatStreamChunkChoice{
			{Delta: types.ChatStreamChunkDelta{Content: delta}},
		},
	}
}

func applyChat(t *testing.T, m chatModel, msg tea.Msg) (chatModel, tea.Cmd) {
	t.Helper()
	updated, cmd := m.Update(msg)
	next, ok := updated.(chatModel)
	require.True(t, ok)
	return next, cmd
}

func TestSessionOpensWithGreeting(t *testing.T) {
	m := initialChatModel(&fakeSender{}, "session-1", false)

	require.Len(t, m.transcript, 1)
	assert.Equal(t, roleAssistant, m.transcript[0].Role)
	assert.Equal(t, greeting, m.transcript[0].Content)
	assert.False(t, m.loading)
}

func TestSubmitAppendsBeforeSending(t *testing.T) {
	sender := &fakeSender{reply: "You have 2 albums."}
	m := initialChatModel(sender, "session-1", false)

	cmd := m.submit("Show me all albums")
	require.NotNil(t, cmd)

	// The user entry is in the transcript before the reply arrives
	require.Len(t, m.transcript, 2)
	assert.Equal(t, roleUser, m.transcript[1].Role)
	assert.Equal(t, "Show me all albums", m.transcript[1].Content)
	assert.True(t, m.loading)

	msg := cmd()
	require.IsType(t, chatReplyMsg{}, msg)

	// The payload includes the just-sent message as its last entry
	require.Len(t, sender.payloads, 1)
	payload := sender.payloads[0]
	require.NotEmpty(t, payload)
	assert.Equal(t, types.ChatMessage{Role: roleUser, Content: "Show me all albums"}, payload[len(payload)-1])

	m, _ = applyChat(t, m, msg)
	require.Len(t, m.transcript, 3)
	assert.Equal(t, roleAssistant, m.transcript[2].Role)
	assert.Equal(t, "You have 2 albums.", m.transcript[2].Content)
	assert.False(t, m.loading)
}

func TestSubmitIgnoresBlankInput(t *testing.T) {
	m := initialChatModel(&fakeSender{}, "session-1", false)

	assert.Nil(t, m.submit(""))
	assert.Nil(t, m.submit("   \n  "))
	assert.Len(t, m.transcript, 1)
	assert.False(t, m.loading)
}

func TestSubmitBlockedWhileLoading(t *testing.T) {
	sender := &fakeSender{reply: "ok"}
	m := initialChatModel(sender, "session-1", false)

	require.NotNil(t, m.submit("first"))
	assert.Nil(t, m.submit("second"))

	require.Len(t, m.transcript, 2)
	assert.Equal(t, "first", m.transcript[1].Content)
}

func TestSendFailureAppendsApology(t *testing.T) {
	sender := &fakeSender{err: errors.New("connection refused")}
	m := initialChatModel(sender, "session-1", false)

	cmd := m.submit("Delete an album")
	require.NotNil(t, cmd)

	msg := cmd()
	require.IsType(t, chatErrMsg{}, msg)

	m, _ = applyChat(t, m, msg)

	// The user entry stays; the failure shows as a synthetic assistant reply
	require.Len(t, m.transcript, 3)
	assert.Equal(t, roleUser, m.transcript[1].Role)
	assert.Equal(t, "Delete an album", m.transcript[1].Content)
	assert.Equal(t, roleAssistant, m.transcript[2].Role)
	assert.Equal(t, apologyReply, m.transcript[2].Content)
	assert.False(t, m.loading)
	assert.Error(t, m.lastErr)
}

func TestRetryAfterFailureKeepsHistory(t *testing.T) {
	sender := &fakeSender{err: errors.New("boom")}
	m := initialChatModel(sender, "session-1", false)

	msg := m.submit("list albums")()
	m, _ = applyChat(t, m, msg)

	sender.err = nil
	sender.reply = "Here they are."
	msg = m.submit("list albums")()
	m, _ = applyChat(t, m, msg)

	// greeting, user, apology, user, reply
	require.Len(t, m.transcript, 5)
	assert.Equal(t, apologyReply, m.transcript[2].Content)
	assert.Equal(t, "Here they are.", m.transcript[4].Content)

	// The retry payload carries the full prior exchange
	retry := sender.payloads[1]
	require.Len(t, retry, 4)
	assert.Equal(t, "list albums", retry[len(retry)-1].Content)
}

func TestOutgoingMessagesSkipSystemEntries(t *testing.T) {
	m := initialChatModel(&fakeSender{}, "session-1", false)
	m.transcript = append(m.transcript,
		newMessage(roleSystem, "internal note"),
		newMessage(roleUser, "hello"),
	)

	out := m.outgoingMessages()
	require.Len(t, out, 2)
	assert.Equal(t, roleAssistant, out[0].Role)
	assert.Equal(t, roleUser, out[1].Role)
}

func TestQuickActionKeySubmitsAndIsConsumed(t *testing.T) {
	sender := &fakeSender{reply: "ok"}
	m := initialChatModel(sender, "session-1", false)
	require.True(t, m.quickActionsVisible())

	keyOne := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'1'}}
	cmds, quit, consumed := m.handleKeyPress(keyOne)
	assert.False(t, quit)
	assert.True(t, consumed)
	require.NotEmpty(t, cmds)

	require.Len(t, m.transcript, 2)
	assert.Equal(t, quickActions[0], m.transcript[1].Content)
	assert.True(t, m.loading)
}

func TestQuickActionsHiddenAfterFirstExchange(t *testing.T) {
	sender := &fakeSender{reply: "done"}
	m := initialChatModel(sender, "session-1", false)

	msg := m.submit("hello")()
	m, _ = applyChat(t, m, msg)
	require.False(t, m.quickActionsVisible())

	keyTwo := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'2'}}
	_, quit, consumed := m.handleKeyPress(keyTwo)
	assert.False(t, quit)
	assert.False(t, consumed)
	assert.Len(t, m.transcript, 3)
}

func TestHelpLineMentionsQuickActionKeys(t *testing.T) {
	sender := &fakeSender{reply: "done"}
	m := initialChatModel(sender, "session-1", false)

	// The digit shortcuts are announced while the panel is active
	assert.Contains(t, m.View(), "1-4 quick action")

	msg := m.submit("hello")()
	m, _ = applyChat(t, m, msg)
	assert.NotContains(t, m.View(), "1-4 quick action")
}

func TestQuickActionIndex(t *testing.T) {
	tests := []struct {
		key  string
		want int
	}{
		{key: "1", want: 0},
		{key: "4", want: 3},
		{key: "5", want: -1},
		{key: "0", want: -1},
		{key: "a", want: -1},
		{key: "enter", want: -1},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, quickActionIndex(tt.key), "key %q", tt.key)
	}
}

func TestStreamingAccumulatesChunks(t *testing.T) {
	sender := &fakeSender{chunks: []types.ChatStreamChunk{
		textChunk("Here "),
		textChunk("are "),
		textChunk("your albums."),
	}}
	m := initialChatModel(sender, "session-1", true)

	cmd := m.submit("list albums")
	require.NotNil(t, cmd)

	msg := cmd()
	initMsg, ok := msg.(streamInitMsg)
	require.True(t, ok)

	m, next := applyChat(t, m, initMsg)
	for {
		msg := next()
		m, next = applyChat(t, m, msg)
		if _, done := msg.(streamDoneMsg); done {
			break
		}
	}

	require.Len(t, m.transcript, 3)
	assert.Equal(t, "Here are your albums.", m.transcript[2].Content)
	assert.False(t, m.loading)
	assert.Empty(t, m.streamBuf)
}

func TestStreamFailureAppendsApology(t *testing.T) {
	sender := &fakeSender{streamErr: errors.New("stream refused")}
	m := initialChatModel(sender, "session-1", true)

	msg := m.submit("list albums")()
	require.IsType(t, streamErrMsg{}, msg)

	m, _ = applyChat(t, m, msg)
	require.Len(t, m.transcript, 3)
	assert.Equal(t, apologyReply, m.transcript[2].Content)
	assert.False(t, m.loading)
}

func TestEmptyStreamFallsBackToApology(t *testing.T) {
	m := initialChatModel(&fakeSender{}, "session-1", true)
	m.transcript = append(m.transcript, newMessage(roleUser, "hi"))
	m.loading = true

	m.finishStream()

	require.Len(t, m.transcript, 3)
	assert.Equal(t, apologyReply, m.transcript[2].Content)
}

func TestWrapLine(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		width int
		want  string
	}{
		{name: "short line untouched", in: "hello", width: 20, want: "hello"},
		{name: "wraps at width", in: "aaaabbbb", width: 4, want: "aaaa\nbbbb"},
		{name: "wide runes counted double", in: "音楽音楽", width: 4, want: "音楽\n音楽"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, wrapLine(tt.in, tt.width))
		})
	}
}

func TestShortID(t *testing.T) {
	assert.Equal(t, "abc", shortID("abc"))
	assert.Equal(t, "12345678", shortID("123456789abcdef"))
}
