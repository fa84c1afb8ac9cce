package update

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/focuslist/internal/commands"
)

func (m Model) handlePaletteKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.Palette.Active = false
		m.Palette.Input = ""
		m.commandInput.SetValue("")
		m.Status = StatusBar{Text: "command palette closed"}
		return m, nil
	case "enter":
		m.Palette.Input = m.commandInput.Value()
		return m.executePaletteCommand()
	}
	if msg.Type == tea.KeyRunes {
		m.commandInput.SetValue(m.commandInput.Value() + string(msg.Runes))
		m.Palette.Input = m.commandInput.Value()
		return m, nil
	}
	var cmd tea.Cmd
	m.commandInput, cmd = m.commandInput.Update(msg)
	m.Palette.Input = m.commandInput.Value()
	return m, cmd
}

func (m Model) executePaletteCommand() (Model, tea.Cmd) {
	raw := strings.TrimSpace(m.Palette.Input)
	m.Palette.Active = false
	m.Palette.Input = ""
	m.commandInput.SetValue("")

	cmd, err := commands.Parse(raw)
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m, nil
	}

	var follow tea.Cmd
	res, err := commands.Execute(cmd, commands.Handlers{
		Add: func(a commands.AddArgs) (commands.Result, error) {
			m, follow = m.addTask(a.Text)
			return commands.Result{Message: m.Status.Text}, statusError(m.Status)
		},
		Start: func(a commands.IndexArgs) (commands.Result, error) {
			m, follow = m.startSelected(a.Index)
			return commands.Result{Message: m.Status.Text}, statusError(m.Status)
		},
		Toggle: func(a commands.IndexArgs) (commands.Result, error) {
			if err := m.Session.ToggleTask(a.Index); err != nil {
				return commands.Result{}, err
			}
			m.persistTasks()
			return commands.Result{Message: fmt.Sprintf("toggled task %d", a.Index+1)}, nil
		},
		Delete: func(a commands.IndexArgs) (commands.Result, error) {
			m, follow = m.deleteTask(a.Index)
			return commands.Result{Message: m.Status.Text}, statusError(m.Status)
		},
		Promote: func(a commands.PromoteArgs) (commands.Result, error) {
			m, follow = m.promote(a.Index, a.Latest)
			return commands.Result{Message: m.Status.Text}, statusError(m.Status)
		},
		Pause: func() (commands.Result, error) {
			if err := m.Session.PauseTimer(); err != nil {
				return commands.Result{}, err
			}
			return commands.Result{Message: "focus paused"}, nil
		},
		Reset: func() (commands.Result, error) {
			if err := m.Session.ResetTimer(); err != nil {
				return commands.Result{}, err
			}
			return commands.Result{Message: "focus reset"}, nil
		},
		Clear: func() (commands.Result, error) {
			if err := m.clearTranscript(); err != nil {
				return commands.Result{}, err
			}
			return commands.Result{Message: "transcript cleared"}, nil
		},
	})
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m, follow
	}
	m.Status = StatusBar{Text: res.Message}
	return m, follow
}

// statusError lifts an error already reported in the status bar back into
// an error value for commands.Execute.
func statusError(s StatusBar) error {
	if !s.IsError {
		return nil
	}
	return &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: s.Text}
}
