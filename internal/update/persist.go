package update

import (
	"fmt"

	"github.com/sandeepkv93/focuslist/internal/model"
	"github.com/sandeepkv93/focuslist/internal/storage"
)

// restore loads saved tasks and transcript into a fresh model.
func (m *Model) restore() error {
	if m.repo == nil {
		return nil
	}
	saved, err := m.repo.ListTasks(m.ctx)
	if err != nil {
		return fmt.Errorf("load tasks: %w", err)
	}
	tasks := make([]model.Task, 0, len(saved))
	for _, t := range saved {
		tasks = append(tasks, t.ToModel())
	}
	if err := m.Session.LoadTasks(tasks); err != nil {
		return fmt.Errorf("load tasks: %w", err)
	}

	messages, err := m.repo.ListMessages(m.ctx, storage.MessageListFilter{})
	if err != nil {
		return fmt.Errorf("load transcript: %w", err)
	}
	restored := make([]model.ChatMessage, 0, len(messages))
	for _, msg := range messages {
		restored = append(restored, msg.ToModel())
	}
	if err := m.Chat.Restore(restored); err != nil {
		return fmt.Errorf("load transcript: %w", err)
	}
	m.refreshTranscript()
	return nil
}

func (m *Model) persistTasks() {
	if m.repo == nil {
		return
	}
	if err := m.repo.SaveTasks(m.ctx, storage.TasksFromModel(m.Session.Tasks())); err != nil {
		m.LastError = err
		m.Status = StatusBar{Text: fmt.Sprintf("save tasks failed: %v", err), IsError: true}
	}
}

func (m *Model) persistMessage(msg model.ChatMessage) {
	if m.repo == nil {
		return
	}
	if _, err := m.repo.AppendMessage(m.ctx, storage.MessageFromModel(msg)); err != nil {
		m.LastError = err
		m.Status = StatusBar{Text: fmt.Sprintf("save message failed: %v", err), IsError: true}
	}
}

func (m *Model) clearTranscript() error {
	m.Chat.Clear()
	m.refreshTranscript()
	if m.repo == nil {
		return nil
	}
	return m.repo.ClearMessages(m.ctx)
}
