package storage

import (
	"time"

	"github.com/sandeepkv93/focuslist/internal/model"
)

type Task struct {
	ID        string
	Text      string
	Completed bool
	Position  int
	CreatedAt time.Time
}

type Message struct {
	ID            int64
	Sender        string
	Text          string
	HasListMarkup bool
	CreatedAt     time.Time
}

type MessageListFilter struct {
	// Limit keeps only the newest N messages; zero means all.
	Limit int
}

func TasksFromModel(tasks []model.Task) []Task {
	out := make([]Task, 0, len(tasks))
	for i, t := range tasks {
		out = append(out, Task{
			ID:        t.ID,
			Text:      t.Text,
			Completed: t.Completed,
			Position:  i,
			CreatedAt: t.CreatedAt,
		})
	}
	return out
}

func (t Task) ToModel() model.Task {
	return model.Task{ID: t.ID, Text: t.Text, Completed: t.Completed, CreatedAt: t.CreatedAt}
}

func MessageFromModel(m model.ChatMessage) Message {
	return Message{
		Sender:        string(m.Sender),
		Text:          m.Text,
		HasListMarkup: m.HasListMarkup,
		CreatedAt:     m.CreatedAt,
	}
}

func (m Message) ToModel() model.ChatMessage {
	return model.ChatMessage{
		Sender:        model.Sender(m.Sender),
		Text:          m.Text,
		HasListMarkup: m.HasListMarkup,
		CreatedAt:     m.CreatedAt,
	}
}
