package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrEmptyText       = errors.New("model: text is empty")
	ErrIndexOutOfRange = errors.New("model: index out of range")
	ErrInvalidTask     = errors.New("model: invalid task")
)

type Task struct {
	ID        string
	Text      string
	Completed bool
	CreatedAt time.Time
}

func (t Task) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return fmt.Errorf("%w: id is required", ErrInvalidTask)
	}
	if strings.TrimSpace(t.Text) == "" {
		return fmt.Errorf("%w: text is required", ErrInvalidTask)
	}
	if t.CreatedAt.IsZero() {
		return fmt.Errorf("%w: created_at is required", ErrInvalidTask)
	}
	return nil
}

// IndexError reports an index that does not address an existing task or message.
func IndexError(index, length int) error {
	return fmt.Errorf("%w: %d (len %d)", ErrIndexOutOfRange, index, length)
}

// IsValidation reports whether err is caused by bad caller input rather than
// an environmental failure.
func IsValidation(err error) bool {
	return errors.Is(err, ErrEmptyText) || errors.Is(err, ErrIndexOutOfRange) || errors.Is(err, ErrInvalidTask)
}
