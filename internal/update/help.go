package update

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/sandeepkv93/focuslist/internal/commands"
	"github.com/sandeepkv93/focuslist/internal/views"
)

type KeyBinding struct {
	Key    string
	Action string
}

type helpKeyMap struct {
	short []key.Binding
	full  [][]key.Binding
}

func (k helpKeyMap) ShortHelp() []key.Binding  { return k.short }
func (k helpKeyMap) FullHelp() [][]key.Binding { return k.full }

func (m Model) renderHelpView() string {
	bindings := m.helpBindings()
	var plain []string
	for _, kb := range m.paneBindings() {
		plain = append(plain, fmt.Sprintf("- %s: %s", kb.Key, kb.Action))
	}
	for _, t := range commands.Types {
		plain = append(plain, fmt.Sprintf("- /%s", t))
	}
	return views.RenderHelpPanel(views.HelpPanelData{
		Pane:     string(m.CurrentPane),
		Bindings: plain,
		HelpView: m.helpModel.View(helpKeyMap{
			short: bindings,
			full:  [][]key.Binding{bindings},
		}),
	})
}

func (m Model) globalBindings() []KeyBinding {
	return []KeyBinding{
		{Key: m.Keys.SwitchPane, Action: "switch pane"},
		{Key: m.Keys.Promote, Action: "promote latest steps"},
		{Key: m.Keys.Palette, Action: "open command palette"},
		{Key: m.Keys.Theme, Action: "toggle dark/light"},
		{Key: m.Keys.Help, Action: "toggle help panel"},
		{Key: m.Keys.Quit, Action: "quit app"},
	}
}

func (m Model) paneBindings() []KeyBinding {
	if m.CurrentPane == PaneChat {
		return []KeyBinding{
			{Key: "enter", Action: "send message or /command"},
			{Key: "pgup/pgdown", Action: "scroll transcript"},
			{Key: "esc", Action: "go to tasks"},
		}
	}
	return []KeyBinding{
		{Key: "j/k", Action: "move cursor"},
		{Key: "enter", Action: "start focus on task"},
		{Key: "space", Action: "toggle done"},
		{Key: "x", Action: "delete task"},
		{Key: "a", Action: "add task"},
		{Key: "s", Action: "start/pause timer"},
		{Key: "r", Action: "reset timer"},
	}
}

func (m Model) helpBindings() []key.Binding {
	out := make([]key.Binding, 0, len(m.globalBindings())+len(m.paneBindings()))
	for _, kb := range m.globalBindings() {
		out = append(out, key.NewBinding(key.WithKeys(kb.Key), key.WithHelp(kb.Key, kb.Action)))
	}
	for _, kb := range m.paneBindings() {
		out = append(out, key.NewBinding(key.WithKeys(kb.Key), key.WithHelp(kb.Key, kb.Action)))
	}
	return out
}
