package update

import (
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/focuslist/internal/session"
	"github.com/sandeepkv93/focuslist/internal/timer"
	"github.com/sandeepkv93/focuslist/internal/views"
)

func (m Model) handleConfirmKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y", "enter":
		return m.resolve(true)
	case "n", "N", "esc":
		return m.resolve(false)
	}
	m.Status = StatusBar{Text: "time is up: press y if the task is done, n if not", IsError: true}
	return m, nil
}

func (m Model) resolve(done bool) (Model, tea.Cmd) {
	if err := m.Session.ResolveConfirmation(done); err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m, nil
	}
	m.persistTasks()
	switch {
	case !done:
		m.Status = StatusBar{Text: "keep going: start the timer again when ready"}
	case m.Session.Timer().Status == timer.StatusRunning:
		task, _ := m.Session.ActiveTask()
		m.Status = StatusBar{Text: fmt.Sprintf("next: %s", task.Text)}
	default:
		m.Status = StatusBar{Text: "all steps done"}
	}
	if idx, ok := m.Session.Active(); ok {
		m.Cursor = idx
	}
	return m, nil
}

func (m Model) onFocusTick(msg FocusTickMsg) (Model, tea.Cmd) {
	switch m.Session.Tick(msg.Run) {
	case session.EventTicked:
		return m, focusTickCmd(msg.Run)
	case session.EventCompleted:
		m.Status = StatusBar{Text: "time is up"}
		return m, nil
	default:
		return m, nil
	}
}

// armTick starts a tick chain for the current running period unless one is
// already scheduled for it.
func (m *Model) armTick() tea.Cmd {
	state := m.Session.Timer()
	if state.Status != timer.StatusRunning || state.Run == m.armedRun {
		return nil
	}
	m.armedRun = state.Run
	return focusTickCmd(state.Run)
}

func (m Model) startSelected(index int) (Model, tea.Cmd) {
	if err := m.Session.SelectAndStart(index); err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m, nil
	}
	m.Cursor = index
	task, _ := m.Session.ActiveTask()
	m.Status = StatusBar{Text: fmt.Sprintf("focus: %s", task.Text)}
	return m, nil
}

func (m Model) toggleTimer() (Model, tea.Cmd) {
	var err error
	if m.Session.Timer().Status == timer.StatusRunning {
		err = m.Session.PauseTimer()
		m.Status = StatusBar{Text: "focus paused"}
	} else {
		err = m.Session.StartTimer()
		m.Status = StatusBar{Text: "focus running"}
	}
	if err != nil {
		m.Status = StatusBar{Text: timerErrorText(err), IsError: true}
	}
	return m, nil
}

func (m Model) resetTimer() (Model, tea.Cmd) {
	if err := m.Session.ResetTimer(); err != nil {
		m.Status = StatusBar{Text: timerErrorText(err), IsError: true}
		return m, nil
	}
	m.Status = StatusBar{Text: "focus reset"}
	return m, nil
}

func timerErrorText(err error) string {
	if errors.Is(err, timer.ErrCompleted) {
		return "timer finished: reset it or start a task"
	}
	return err.Error()
}

func (m Model) renderTimerPane() string {
	state := m.Session.Timer()
	return views.RenderTimerPanel(views.TimerPanelData{
		Clock:        formatDuration(state.RemainingSec),
		Status:       string(state.Status),
		ProgressView: m.focusProgress.ViewAs(state.Progress()),
	})
}

func (m Model) renderCurrentStep() string {
	task, ok := m.Session.ActiveTask()
	if !ok {
		return ""
	}
	return views.RenderCurrentStep(views.CurrentStepData{Text: task.Text, Completed: task.Completed}, m.Theme)
}

func focusTickCmd(run uint64) tea.Cmd {
	return tea.Tick(timer.TickInterval, func(time.Time) tea.Msg { return FocusTickMsg{Run: run} })
}
