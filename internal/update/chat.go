package update

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/focuslist/internal/chat"
	"github.com/sandeepkv93/focuslist/internal/completion"
	"github.com/sandeepkv93/focuslist/internal/model"
	"github.com/sandeepkv93/focuslist/internal/views"
)

func (m Model) handleChatKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.CurrentPane = PaneTasks
		return m, nil
	case "enter":
		raw := m.chatInput.Value()
		if strings.HasPrefix(strings.TrimSpace(raw), "/") {
			m.chatInput.SetValue("")
			m.Palette.Input = strings.TrimSpace(raw)
			return m.executePaletteCommand()
		}
		return m.sendChat(raw)
	case "pgup", "pgdown", "ctrl+u", "ctrl+d":
		var cmd tea.Cmd
		m.transcript, cmd = m.transcript.Update(msg)
		return m, cmd
	}
	var cmd tea.Cmd
	m.chatInput, cmd = m.chatInput.Update(msg)
	return m, cmd
}

// sendChat records the user message and hands the completion call to a
// command so the UI keeps running while the request is in flight.
func (m Model) sendChat(text string) (Model, tea.Cmd) {
	userMsg, err := m.Chat.Begin(text)
	if err != nil {
		m.Status = StatusBar{Text: "type a message first", IsError: true}
		return m, nil
	}
	m.chatInput.SetValue("")
	m.persistMessage(userMsg)
	m.refreshTranscript()

	m.InFlight++
	cmds := []tea.Cmd{completeCmd(m.ctx, m.completer, text, m.requestTimeout)}
	if m.InFlight == 1 {
		cmds = append(cmds, m.typingSpinner.Tick)
	}
	return m, tea.Batch(cmds...)
}

func completeCmd(ctx context.Context, completer completion.Completer, text string, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		reqCtx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()
		return ChatReplyMsg{Text: chat.Reply(reqCtx, completer, text)}
	}
}

func (m Model) onChatReply(msg ChatReplyMsg) (Model, tea.Cmd) {
	if m.InFlight > 0 {
		m.InFlight--
	}
	botMsg := m.Chat.Finish(msg.Text)
	m.persistMessage(botMsg)
	m.refreshTranscript()
	if botMsg.Text == chat.FallbackReply {
		m.Status = StatusBar{Text: "assistant unavailable", IsError: true}
	} else if botMsg.HasListMarkup {
		m.Status = StatusBar{Text: fmt.Sprintf("reply has steps: %s or /promote to add them", m.Keys.Promote)}
	}
	return m, nil
}

// promote adds the list items of a bot reply as tasks. With latest set the
// newest promotable reply is used and index is ignored.
func (m Model) promote(index int, latest bool) (Model, tea.Cmd) {
	if latest {
		idx, ok := m.Chat.LastPromotable()
		if !ok {
			m.Status = StatusBar{Text: "no reply with steps to promote", IsError: true}
			return m, nil
		}
		index = idx
	}
	ids, err := m.Chat.PromoteToTasks(index, m.Session)
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m, nil
	}
	m.persistTasks()
	m.Status = StatusBar{Text: fmt.Sprintf("added %d task(s) from reply #%d", len(ids), index+1)}
	return m, m.highlightExpireCmd()
}

func (m *Model) refreshTranscript() {
	transcript := m.Chat.Transcript()
	data := views.TranscriptData{
		Messages: make([]views.MessageData, 0, len(transcript)),
		Width:    m.transcript.Width - 2,
	}
	for i, msg := range transcript {
		data.Messages = append(data.Messages, views.MessageData{
			Sender:     string(msg.Sender),
			Text:       msg.Text,
			Promotable: msg.Sender == model.SenderBot && msg.HasListMarkup,
			Position:   i + 1,
		})
	}
	m.transcript.SetContent(views.RenderTranscript(data, m.Theme))
	m.transcript.GotoBottom()
}

func (m Model) renderChatPane() string {
	var b strings.Builder
	b.WriteString("chat:\n")
	b.WriteString(m.transcript.View())
	b.WriteString("\n")
	if m.InFlight > 0 {
		b.WriteString(m.typingSpinner.View() + " assistant is typing\n")
	}
	b.WriteString(m.chatInput.View())
	return b.String()
}
