// Package session binds the task playlist to the focus timer. The Controller
// is the single owner of the active selection, the pending completion prompt
// and the highlight window; every mutation goes through its methods.
package session

import (
	"errors"
	"time"

	"github.com/sandeepkv93/focuslist/internal/model"
	"github.com/sandeepkv93/focuslist/internal/store"
	"github.com/sandeepkv93/focuslist/internal/timer"
)

var (
	ErrConfirmationPending   = errors.New("session: confirm whether the task is done first")
	ErrNoPendingConfirmation = errors.New("session: no completion awaiting confirmation")
)

const (
	DefaultFocusDuration   = 25 * time.Minute
	DefaultHighlightWindow = 2500 * time.Millisecond
)

type Event int

const (
	EventNone Event = iota
	EventTicked
	EventCompleted
)

type Options struct {
	FocusDuration   time.Duration
	HighlightWindow time.Duration
	Now             func() time.Time
}

type Controller struct {
	tasks           *store.Store
	timer           *timer.Timer
	active          int
	pending         bool
	highlights      map[string]time.Time
	highlightWindow time.Duration
	now             func() time.Time
}

func New(opts Options) (*Controller, error) {
	if opts.FocusDuration == 0 {
		opts.FocusDuration = DefaultFocusDuration
	}
	if opts.HighlightWindow <= 0 {
		opts.HighlightWindow = DefaultHighlightWindow
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	tm, err := timer.New(opts.FocusDuration)
	if err != nil {
		return nil, err
	}
	return &Controller{
		tasks:           store.New(),
		timer:           tm,
		active:          -1,
		highlights:      make(map[string]time.Time),
		highlightWindow: opts.HighlightWindow,
		now:             opts.Now,
	}, nil
}

func (c *Controller) Tasks() []model.Task { return c.tasks.List() }

func (c *Controller) TaskCount() int { return c.tasks.Len() }

func (c *Controller) Timer() timer.State { return c.timer.State() }

func (c *Controller) Pending() bool { return c.pending }

func (c *Controller) Active() (int, bool) {
	if c.active < 0 {
		return -1, false
	}
	return c.active, true
}

func (c *Controller) ActiveTask() (model.Task, bool) {
	if c.active < 0 {
		return model.Task{}, false
	}
	task, err := c.tasks.Get(c.active)
	if err != nil {
		return model.Task{}, false
	}
	return task, true
}

// SelectAndStart binds the task at index to a fresh countdown and starts it.
func (c *Controller) SelectAndStart(index int) error {
	if c.pending {
		return ErrConfirmationPending
	}
	if index < 0 || index >= c.tasks.Len() {
		return model.IndexError(index, c.tasks.Len())
	}
	c.active = index
	c.timer.Reset()
	return c.timer.Start()
}

// Tick delivers one elapsed second for the given run. Ticks from an earlier
// run, or for a timer that is no longer running, are ignored.
func (c *Controller) Tick(run uint64) Event {
	if run != c.timer.Run() || !c.timer.Running() {
		return EventNone
	}
	if c.timer.Tick() {
		c.pending = true
		return EventCompleted
	}
	return EventTicked
}

func (c *Controller) ResolveConfirmation(done bool) error {
	if !c.pending {
		return ErrNoPendingConfirmation
	}
	c.pending = false
	c.timer.Acknowledge()
	if !done || c.active < 0 {
		return nil
	}
	if err := c.tasks.SetCompleted(c.active, true); err != nil {
		return err
	}
	next := c.active + 1
	if next < c.tasks.Len() {
		return c.SelectAndStart(next)
	}
	c.active = -1
	c.timer.Reset()
	return nil
}

func (c *Controller) StartTimer() error {
	if c.pending {
		return ErrConfirmationPending
	}
	return c.timer.Start()
}

func (c *Controller) PauseTimer() error {
	if c.pending {
		return ErrConfirmationPending
	}
	c.timer.Pause()
	return nil
}

func (c *Controller) ResetTimer() error {
	if c.pending {
		return ErrConfirmationPending
	}
	c.timer.Reset()
	return nil
}

func (c *Controller) AddTask(text string) (string, error) {
	id, err := c.tasks.Append(text)
	if err != nil {
		return "", err
	}
	c.highlight([]string{id})
	return id, nil
}

// AddTasks appends a batch and highlights every created task.
func (c *Controller) AddTasks(texts []string) []string {
	ids := c.tasks.AppendMany(texts)
	c.highlight(ids)
	return ids
}

func (c *Controller) ToggleTask(index int) error {
	return c.tasks.Toggle(index)
}

// DeleteTask removes the task at index. Removing the active task clears the
// selection and pauses the countdown; removing an earlier task keeps the same
// task selected under its new index.
func (c *Controller) DeleteTask(index int) (model.Task, error) {
	removed, err := c.tasks.Delete(index)
	if err != nil {
		return model.Task{}, err
	}
	delete(c.highlights, removed.ID)
	switch {
	case c.active < 0:
	case index == c.active:
		c.active = -1
		c.timer.Pause()
	case index < c.active:
		c.active--
	}
	return removed, nil
}

// LoadTasks replaces the playlist and drops any selection.
func (c *Controller) LoadTasks(tasks []model.Task) error {
	if err := c.tasks.Replace(tasks); err != nil {
		return err
	}
	c.active = -1
	c.pending = false
	c.highlights = make(map[string]time.Time)
	c.timer.Reset()
	return nil
}

func (c *Controller) HighlightWindow() time.Duration { return c.highlightWindow }

func (c *Controller) Highlighted(id string) bool {
	until, ok := c.highlights[id]
	return ok && c.now().Before(until)
}

// ExpireHighlights drops highlights whose window has passed and reports how
// many were removed.
func (c *Controller) ExpireHighlights() int {
	now := c.now()
	removed := 0
	for id, until := range c.highlights {
		if !now.Before(until) {
			delete(c.highlights, id)
			removed++
		}
	}
	return removed
}

func (c *Controller) highlight(ids []string) {
	if len(ids) == 0 {
		return
	}
	until := c.now().Add(c.highlightWindow)
	for _, id := range ids {
		c.highlights[id] = until
	}
}
