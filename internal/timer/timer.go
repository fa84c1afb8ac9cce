// Package timer implements the focus countdown as a tick-driven state machine.
// It owns no goroutines: the caller delivers one Tick per elapsed second.
package timer

import (
	"errors"
	"time"
)

var (
	ErrCompleted     = errors.New("timer: countdown completed, reset first")
	ErrInvalidLength = errors.New("timer: total duration must be at least one second")
)

type Status string

const (
	StatusIdle      Status = "idle"
	StatusRunning   Status = "running"
	StatusCompleted Status = "completed"
)

// TickInterval is the fixed period between ticks.
const TickInterval = time.Second

type Timer struct {
	total     int
	remaining int
	status    Status
	run       uint64
}

// State is a read-only copy of the timer.
type State struct {
	TotalSec     int
	RemainingSec int
	Status       Status
	Run          uint64
}

func New(total time.Duration) (*Timer, error) {
	sec := int(total / time.Second)
	if sec < 1 {
		return nil, ErrInvalidLength
	}
	return &Timer{total: sec, remaining: sec, status: StatusIdle}, nil
}

func (t *Timer) State() State {
	return State{TotalSec: t.total, RemainingSec: t.remaining, Status: t.status, Run: t.run}
}

func (t *Timer) Running() bool { return t.status == StatusRunning }

// Run identifies the current running period. It changes on every transition
// into StatusRunning so ticks scheduled for an earlier period can be dropped.
func (t *Timer) Run() uint64 { return t.run }

func (t *Timer) Start() error {
	switch t.status {
	case StatusRunning:
		return nil
	case StatusCompleted:
		return ErrCompleted
	}
	if t.remaining <= 0 {
		t.remaining = t.total
	}
	t.status = StatusRunning
	t.run++
	return nil
}

func (t *Timer) Pause() {
	if t.status == StatusRunning {
		t.status = StatusIdle
	}
}

// Acknowledge moves a completed countdown back to idle without refilling it;
// the next Start begins a full run.
func (t *Timer) Acknowledge() {
	if t.status == StatusCompleted {
		t.status = StatusIdle
	}
}

func (t *Timer) Reset() {
	t.status = StatusIdle
	t.remaining = t.total
}

// Tick advances a running countdown by one second. It returns true exactly
// once per run, on the tick that reaches zero.
func (t *Timer) Tick() bool {
	if t.status != StatusRunning {
		return false
	}
	if t.remaining > 0 {
		t.remaining--
	}
	if t.remaining == 0 {
		t.status = StatusCompleted
		return true
	}
	return false
}

// Progress is the remaining fraction of the countdown in [0,1].
func (s State) Progress() float64 {
	if s.TotalSec <= 0 {
		return 0
	}
	p := float64(s.RemainingSec) / float64(s.TotalSec)
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}
