// Package chat keeps the assistant transcript and turns list-shaped replies
// into tasks.
package chat

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sandeepkv93/focuslist/internal/completion"
	"github.com/sandeepkv93/focuslist/internal/extract"
	"github.com/sandeepkv93/focuslist/internal/model"
)

// FallbackReply is shown in place of any failed completion.
const FallbackReply = "Sorry, the assistant failed to respond. Please try again later."

var ErrNotPromotable = errors.New("chat: message has no list items to promote")

// TaskAdder receives promoted list items; session.Controller satisfies it.
type TaskAdder interface {
	AddTasks(texts []string) []string
}

type Panel struct {
	completer  completion.Completer
	transcript []model.ChatMessage
	now        func() time.Time
}

func NewPanel(completer completion.Completer) *Panel {
	return &Panel{
		completer:  completer,
		transcript: make([]model.ChatMessage, 0),
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// Transcript returns a copy of every message in order.
func (p *Panel) Transcript() []model.ChatMessage {
	out := make([]model.ChatMessage, len(p.transcript))
	copy(out, p.transcript)
	return out
}

func (p *Panel) Len() int { return len(p.transcript) }

// Begin records the user's message. It is the synchronous half of a send;
// the caller then runs Complete, possibly off the UI loop, and hands the
// result to Finish.
func (p *Panel) Begin(text string) (model.ChatMessage, error) {
	if strings.TrimSpace(text) == "" {
		return model.ChatMessage{}, model.ErrEmptyText
	}
	msg := model.ChatMessage{Sender: model.SenderUser, Text: text, CreatedAt: p.now()}
	p.transcript = append(p.transcript, msg)
	return msg, nil
}

// Complete asks the completer for a reply and never fails: every error is
// folded into a displayable string.
func (p *Panel) Complete(ctx context.Context, text string) string {
	return Reply(ctx, p.completer, text)
}

// Reply is Complete without a Panel, for callers that must not touch the
// transcript from another goroutine.
func Reply(ctx context.Context, completer completion.Completer, text string) string {
	if completer == nil {
		return FallbackReply
	}
	reply, err := completer.Complete(ctx, text)
	switch completion.Kind(err) {
	case completion.KindNone:
		return reply
	case completion.KindEmptyReply:
		return completion.PlaceholderReply
	default:
		return FallbackReply
	}
}

// Finish appends exactly one bot message for a reply.
func (p *Panel) Finish(reply string) model.ChatMessage {
	msg := model.ChatMessage{
		Sender:        model.SenderBot,
		Text:          reply,
		HasListMarkup: reply != FallbackReply && extract.HasListMarkup(reply),
		CreatedAt:     p.now(),
	}
	p.transcript = append(p.transcript, msg)
	return msg
}

// Send runs Begin, Complete and Finish in one blocking call and returns the
// bot message.
func (p *Panel) Send(ctx context.Context, text string) (model.ChatMessage, error) {
	if _, err := p.Begin(text); err != nil {
		return model.ChatMessage{}, err
	}
	return p.Finish(p.Complete(ctx, text)), nil
}

// PromoteToTasks extracts the list items of the bot message at index and
// hands them to tasks, returning the created task IDs.
func (p *Panel) PromoteToTasks(index int, tasks TaskAdder) ([]string, error) {
	if index < 0 || index >= len(p.transcript) {
		return nil, model.IndexError(index, len(p.transcript))
	}
	msg := p.transcript[index]
	if msg.Sender != model.SenderBot || !msg.HasListMarkup {
		return nil, ErrNotPromotable
	}
	items := extract.Items(msg.Text)
	if len(items) == 0 {
		return nil, ErrNotPromotable
	}
	return tasks.AddTasks(items), nil
}

// LastPromotable finds the newest bot message that offers promotion.
func (p *Panel) LastPromotable() (int, bool) {
	for i := len(p.transcript) - 1; i >= 0; i-- {
		msg := p.transcript[i]
		if msg.Sender == model.SenderBot && msg.HasListMarkup {
			return i, true
		}
	}
	return -1, false
}

// Restore replaces the transcript with persisted messages.
func (p *Panel) Restore(messages []model.ChatMessage) error {
	for _, m := range messages {
		if err := m.Validate(); err != nil {
			return err
		}
	}
	p.transcript = make([]model.ChatMessage, len(messages))
	copy(p.transcript, messages)
	return nil
}

// Clear drops the transcript.
func (p *Panel) Clear() {
	p.transcript = p.transcript[:0]
}
