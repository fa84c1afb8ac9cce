package views

import (
	"fmt"
	"strings"

	"github.com/muesli/reflow/truncate"
	"github.com/muesli/reflow/wordwrap"
)

type MessageData struct {
	Sender     string
	Text       string
	Promotable bool
	Position   int
}

type TranscriptData struct {
	Messages []MessageData
	Typing   string
	Width    int
}

type TaskItemData struct {
	Position    int
	Text        string
	Completed   bool
	Active      bool
	Highlighted bool
	Cursor      bool
}

type TaskPanelData struct {
	Items     []TaskItemData
	InputView string
	Adding    bool
	Width     int
}

type TimerPanelData struct {
	Clock        string
	Status       string
	ProgressView string
}

type CurrentStepData struct {
	Text      string
	Completed bool
}

type HelpPanelData struct {
	Pane     string
	Bindings []string
	HelpView string
}

func RenderTranscript(data TranscriptData, theme Theme) string {
	if len(data.Messages) == 0 && data.Typing == "" {
		return "Ask for help breaking a task into steps."
	}
	width := data.Width
	if width <= 0 {
		width = 56
	}
	blocks := make([]string, 0, len(data.Messages)+1)
	for _, msg := range data.Messages {
		var b strings.Builder
		if msg.Sender == "bot" {
			b.WriteString(theme.bot.Render(fmt.Sprintf("#%d assistant", msg.Position)))
			b.WriteString("\n")
			b.WriteString(RenderMarkdown(msg.Text, theme, width))
			if msg.Promotable {
				b.WriteString("\n")
				b.WriteString(theme.footer.Render(fmt.Sprintf("ctrl+p or /promote %d adds these steps", msg.Position)))
			}
		} else {
			b.WriteString(theme.user.Render(fmt.Sprintf("#%d you", msg.Position)))
			b.WriteString("\n")
			b.WriteString(strings.TrimSuffix(wordwrap.String(msg.Text, width), "\n"))
		}
		blocks = append(blocks, b.String())
	}
	if data.Typing != "" {
		blocks = append(blocks, theme.bot.Render(data.Typing))
	}
	return strings.Join(blocks, "\n\n")
}

func RenderTaskPanel(data TaskPanelData, theme Theme) string {
	var b strings.Builder
	b.WriteString("tasks:\n")
	if data.Adding {
		b.WriteString(data.InputView + "\n")
	}
	if len(data.Items) == 0 {
		b.WriteString("  (no tasks yet)")
		return b.String()
	}
	width := data.Width
	if width <= 0 {
		width = 56
	}
	for _, item := range data.Items {
		cursor := " "
		if item.Cursor {
			cursor = ">"
		}
		box := "[ ]"
		if item.Completed {
			box = "[x]"
		}
		marker := " "
		if item.Active {
			marker = "*"
		}
		prefix := fmt.Sprintf("%s%s %d. %s ", cursor, marker, item.Position, box)
		text := truncate.StringWithTail(item.Text, uint(max(width-len(prefix), 8)), "…")
		switch {
		case item.Highlighted:
			text = theme.highlight.Render(text)
		case item.Completed:
			text = theme.done.Render(text)
		case item.Active:
			text = theme.active.Render(text)
		}
		b.WriteString(prefix + text + "\n")
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func RenderTimerPanel(data TimerPanelData) string {
	return fmt.Sprintf("focus timer: %s (%s)\n%s", data.Clock, data.Status, data.ProgressView)
}

func RenderCurrentStep(data CurrentStepData, theme Theme) string {
	if strings.TrimSpace(data.Text) == "" {
		return ""
	}
	text := theme.active.Render(data.Text)
	if data.Completed {
		text = theme.done.Render(data.Text) + " (done)"
	}
	return "current step:\n" + text
}

func RenderConfirmPrompt(taskText string) string {
	return fmt.Sprintf("Time is up. Did you finish %q?\n[y] yes, next task   [n] not yet", taskText)
}

func RenderCommandPalette(active bool, inputView string) string {
	if !active {
		return ""
	}
	return "command: " + inputView
}

func RenderHelpPanel(data HelpPanelData) string {
	return fmt.Sprintf("help (%s pane):\n%s\n%s",
		strings.ToLower(data.Pane),
		strings.Join(data.Bindings, "\n"),
		data.HelpView,
	)
}
