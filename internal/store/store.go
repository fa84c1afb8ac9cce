// Package store keeps the ordered task playlist.
package store

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sandeepkv93/focuslist/internal/model"
)

// Store is not safe for concurrent use; the TUI update loop owns it.
type Store struct {
	tasks []model.Task
	now   func() time.Time
	newID func() string
}

func New() *Store {
	return &Store{
		tasks: make([]model.Task, 0),
		now:   func() time.Time { return time.Now().UTC() },
		newID: uuid.NewString,
	}
}

func (s *Store) Len() int { return len(s.tasks) }

func (s *Store) Get(index int) (model.Task, error) {
	if err := s.checkIndex(index); err != nil {
		return model.Task{}, err
	}
	return s.tasks[index], nil
}

// List returns a copy of the tasks in playlist order.
func (s *Store) List() []model.Task {
	out := make([]model.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

func (s *Store) IndexOf(id string) (int, bool) {
	for i, t := range s.tasks {
		if t.ID == id {
			return i, true
		}
	}
	return -1, false
}

func (s *Store) Append(text string) (string, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return "", model.ErrEmptyText
	}
	task := model.Task{
		ID:        s.newID(),
		Text:      trimmed,
		CreatedAt: s.now(),
	}
	s.tasks = append(s.tasks, task)
	return task.ID, nil
}

// AppendMany adds every non-blank text in order and returns the created IDs.
// Blank entries are skipped, so an all-blank batch is a no-op.
func (s *Store) AppendMany(texts []string) []string {
	ids := make([]string, 0, len(texts))
	for _, text := range texts {
		id, err := s.Append(text)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids
}

func (s *Store) Toggle(index int) error {
	if err := s.checkIndex(index); err != nil {
		return err
	}
	s.tasks[index].Completed = !s.tasks[index].Completed
	return nil
}

func (s *Store) SetCompleted(index int, completed bool) error {
	if err := s.checkIndex(index); err != nil {
		return err
	}
	s.tasks[index].Completed = completed
	return nil
}

func (s *Store) Delete(index int) (model.Task, error) {
	if err := s.checkIndex(index); err != nil {
		return model.Task{}, err
	}
	removed := s.tasks[index]
	s.tasks = append(s.tasks[:index], s.tasks[index+1:]...)
	return removed, nil
}

// Replace swaps the whole playlist, e.g. after loading a persisted snapshot.
func (s *Store) Replace(tasks []model.Task) error {
	seen := make(map[string]bool, len(tasks))
	for _, t := range tasks {
		if err := t.Validate(); err != nil {
			return err
		}
		if seen[t.ID] {
			return model.ErrInvalidTask
		}
		seen[t.ID] = true
	}
	s.tasks = make([]model.Task, len(tasks))
	copy(s.tasks, tasks)
	return nil
}

func (s *Store) checkIndex(index int) error {
	if index < 0 || index >= len(s.tasks) {
		return model.IndexError(index, len(s.tasks))
	}
	return nil
}
