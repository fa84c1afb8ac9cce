package storage

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("storage: not found")

type Repository interface {
	SaveTasks(ctx context.Context, tasks []Task) error
	ListTasks(ctx context.Context) ([]Task, error)
	GetTask(ctx context.Context, id string) (Task, error)

	AppendMessage(ctx context.Context, in Message) (int64, error)
	ListMessages(ctx context.Context, filter MessageListFilter) ([]Message, error)
	ClearMessages(ctx context.Context) error

	Close() error
}
