package update

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/focuslist/internal/views"
)

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.update(msg)
	next.syncBubbleData()
	return next, cmd
}

func (m Model) update(msg tea.Msg) (Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = typed.Width
		m.transcript.Height = max(typed.Height-14, 6)
		m.refreshTranscript()
		return m, nil
	case tea.KeyMsg:
		next, cmd := m.handleKey(typed)
		tick := next.armTick()
		return next, tea.Batch(cmd, tick)
	case FocusTickMsg:
		return m.onFocusTick(typed)
	case ChatReplyMsg:
		return m.onChatReply(typed)
	case HighlightExpireMsg:
		m.Session.ExpireHighlights()
		return m, nil
	case spinner.TickMsg:
		if m.InFlight > 0 {
			var cmd tea.Cmd
			m.typingSpinner, cmd = m.typingSpinner.Update(typed)
			return m, cmd
		}
		return m, nil
	case SetStatusMsg:
		m.Status = StatusBar{Text: typed.Text, IsError: typed.IsError}
		return m, nil
	case ClearStatusMsg:
		m.Status = StatusBar{}
		return m, nil
	case AppErrorMsg:
		m.LastError = typed.Err
		if typed.Err != nil {
			m.Status = StatusBar{Text: typed.Err.Error(), IsError: true}
		}
		return m, nil
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	keyStr := msg.String()
	if keyStr == "ctrl+c" {
		m.Quitting = true
		return m, tea.Quit
	}

	if m.Session.Pending() {
		return m.handleConfirmKey(msg)
	}
	if m.Palette.Active {
		return m.handlePaletteKey(msg)
	}
	if m.Adding {
		return m.handleTaskInputKey(msg)
	}

	switch keyStr {
	case m.Keys.SwitchPane:
		m.switchPane()
		return m, nil
	case m.Keys.Promote:
		return m.promote(-1, true)
	}

	if m.CurrentPane == PaneChat {
		return m.handleChatKey(msg)
	}

	switch keyStr {
	case m.Keys.Palette:
		m.Palette.Active = true
		m.Palette.Input = ""
		m.Status = StatusBar{Text: "command palette active"}
		return m, nil
	case m.Keys.Theme:
		m.Theme = m.Theme.Toggle()
		m.refreshTranscript()
		m.Status = StatusBar{Text: "theme: " + m.Theme.Name}
		return m, nil
	case m.Keys.Help:
		m.HelpVisible = !m.HelpVisible
		if m.HelpVisible {
			m.Status = StatusBar{Text: "help shown"}
		} else {
			m.Status = StatusBar{Text: "help hidden"}
		}
		return m, nil
	case m.Keys.Quit:
		m.Quitting = true
		return m, tea.Quit
	}
	return m.handleTaskKey(msg)
}

func (m *Model) switchPane() {
	if m.CurrentPane == PaneChat {
		m.CurrentPane = PaneTasks
	} else {
		m.CurrentPane = PaneChat
	}
}

func (m Model) View() string {
	status := ""
	if m.Status.Text != "" {
		if m.Status.IsError {
			status = fmt.Sprintf("status: error: %s", m.Status.Text)
		} else {
			status = fmt.Sprintf("status: %s", m.Status.Text)
		}
	}

	prompt := ""
	if m.Session.Pending() {
		if task, ok := m.Session.ActiveTask(); ok {
			prompt = views.RenderConfirmPrompt(task.Text)
		}
	}

	taskPane := m.renderTaskPane()
	if palette := views.RenderCommandPalette(m.Palette.Active, m.commandInput.View()); palette != "" {
		taskPane = taskPane + "\n\n" + palette
	}

	helpView := ""
	if m.HelpVisible {
		helpView = m.renderHelpView()
	}

	return views.RenderApp(views.AppData{
		Header:      fmt.Sprintf("focuslist | pane: %s | tasks: %d | theme: %s", m.CurrentPane, m.Session.TaskCount(), m.Theme.Name),
		ChatPane:    m.renderChatPane(),
		TaskPane:    taskPane,
		TimerPane:   m.renderTimerPane(),
		CurrentStep: m.renderCurrentStep(),
		Prompt:      prompt,
		StatusLine:  status,
		StatusError: m.Status.IsError,
		Help:        helpView,
		Footer:      m.footer(),
		Width:       m.width,
	}, m.Theme, m.CurrentPane == PaneChat)
}

func (m Model) footer() string {
	parts := []string{
		fmt.Sprintf("%s switch pane", m.Keys.SwitchPane),
		fmt.Sprintf("%s promote steps", m.Keys.Promote),
	}
	if m.CurrentPane == PaneTasks {
		parts = append(parts,
			fmt.Sprintf("%s cmd", m.Keys.Palette),
			fmt.Sprintf("%s theme", m.Keys.Theme),
			fmt.Sprintf("%s help", m.Keys.Help),
			fmt.Sprintf("%s quit", m.Keys.Quit),
		)
	} else {
		parts = append(parts, "enter send", "esc tasks", "ctrl+c quit")
	}
	return "keys: " + strings.Join(parts, " | ")
}
