package model

import (
	"errors"
	"fmt"
	"time"
)

var ErrInvalidSender = errors.New("model: invalid chat sender")

type Sender string

const (
	SenderUser Sender = "user"
	SenderBot  Sender = "bot"
)

func (s Sender) IsValid() bool {
	switch s {
	case SenderUser, SenderBot:
		return true
	default:
		return false
	}
}

type ChatMessage struct {
	Sender        Sender
	Text          string
	HasListMarkup bool
	CreatedAt     time.Time
}

func (m ChatMessage) Validate() error {
	if !m.Sender.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidSender, m.Sender)
	}
	if m.Sender == SenderUser && m.HasListMarkup {
		return errors.New("model: only bot messages can carry list markup")
	}
	return nil
}
