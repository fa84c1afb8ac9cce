package update

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/focuslist/internal/views"
)

func (m Model) handleTaskKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "j", "down":
		if m.Cursor < m.Session.TaskCount()-1 {
			m.Cursor++
		}
	case "k", "up":
		if m.Cursor > 0 {
			m.Cursor--
		}
	case "enter":
		return m.startSelected(m.Cursor)
	case " ":
		return m.toggleTask(m.Cursor)
	case "x", "delete":
		return m.deleteTask(m.Cursor)
	case "a":
		m.Adding = true
		m.taskInput.SetValue("")
		m.Status = StatusBar{Text: "new task: enter to add, esc to cancel"}
	case "s":
		return m.toggleTimer()
	case "r":
		return m.resetTimer()
	case "i", "c":
		m.CurrentPane = PaneChat
	}
	return m, nil
}

func (m Model) handleTaskInputKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.Adding = false
		m.taskInput.SetValue("")
		m.Status = StatusBar{Text: "add cancelled"}
		return m, nil
	case "enter":
		text := m.taskInput.Value()
		m.Adding = false
		m.taskInput.SetValue("")
		return m.addTask(text)
	}
	var cmd tea.Cmd
	m.taskInput, cmd = m.taskInput.Update(msg)
	return m, cmd
}

func (m Model) addTask(text string) (Model, tea.Cmd) {
	if _, err := m.Session.AddTask(text); err != nil {
		m.Status = StatusBar{Text: "task text is empty", IsError: true}
		return m, nil
	}
	m.persistTasks()
	m.Status = StatusBar{Text: fmt.Sprintf("added: %s", strings.TrimSpace(text))}
	return m, m.highlightExpireCmd()
}

func (m Model) toggleTask(index int) (Model, tea.Cmd) {
	if err := m.Session.ToggleTask(index); err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m, nil
	}
	m.persistTasks()
	return m, nil
}

func (m Model) deleteTask(index int) (Model, tea.Cmd) {
	removed, err := m.Session.DeleteTask(index)
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m, nil
	}
	m.persistTasks()
	m.Status = StatusBar{Text: fmt.Sprintf("deleted: %s", removed.Text)}
	return m, nil
}

func (m Model) highlightExpireCmd() tea.Cmd {
	return tea.Tick(m.Session.HighlightWindow(), func(time.Time) tea.Msg { return HighlightExpireMsg{} })
}

func (m Model) renderTaskPane() string {
	tasks := m.Session.Tasks()
	active, hasActive := m.Session.Active()
	items := make([]views.TaskItemData, 0, len(tasks))
	for i, task := range tasks {
		items = append(items, views.TaskItemData{
			Position:    i + 1,
			Text:        task.Text,
			Completed:   task.Completed,
			Active:      hasActive && i == active,
			Highlighted: m.Session.Highlighted(task.ID),
			Cursor:      m.CurrentPane == PaneTasks && i == m.Cursor,
		})
	}
	return views.RenderTaskPanel(views.TaskPanelData{
		Items:     items,
		InputView: m.taskInput.View(),
		Adding:    m.Adding,
		Width:     views.PaneWidth(m.width),
	}, m.Theme)
}
