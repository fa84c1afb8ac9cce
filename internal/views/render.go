package views

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

type AppData struct {
	Header      string
	ChatPane    string
	TaskPane    string
	TimerPane   string
	CurrentStep string
	Prompt      string
	StatusLine  string
	StatusError bool
	Footer      string
	Help        string
	Width       int
}

type Theme struct {
	Name      string
	Markdown  string
	header    lipgloss.Style
	status    lipgloss.Style
	err       lipgloss.Style
	panel     lipgloss.Style
	focused   lipgloss.Style
	footer    lipgloss.Style
	active    lipgloss.Style
	highlight lipgloss.Style
	done      lipgloss.Style
	user      lipgloss.Style
	bot       lipgloss.Style
	prompt    lipgloss.Style
}

func DarkTheme() Theme {
	return Theme{
		Name:      "dark",
		Markdown:  "dark",
		header:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		status:    lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		err:       lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		panel:     lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("8")).Padding(0, 1),
		focused:   lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("12")).Padding(0, 1),
		footer:    lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		active:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14")),
		highlight: lipgloss.NewStyle().Background(lipgloss.Color("22")).Foreground(lipgloss.Color("15")),
		done:      lipgloss.NewStyle().Strikethrough(true).Foreground(lipgloss.Color("8")),
		user:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("13")),
		bot:       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10")),
		prompt:    lipgloss.NewStyle().Border(lipgloss.DoubleBorder()).BorderForeground(lipgloss.Color("11")).Padding(0, 1),
	}
}

func LightTheme() Theme {
	return Theme{
		Name:      "light",
		Markdown:  "light",
		header:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("4")),
		status:    lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		err:       lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
		panel:     lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("7")).Padding(0, 1),
		focused:   lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("4")).Padding(0, 1),
		footer:    lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		active:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6")),
		highlight: lipgloss.NewStyle().Background(lipgloss.Color("194")).Foreground(lipgloss.Color("0")),
		done:      lipgloss.NewStyle().Strikethrough(true).Foreground(lipgloss.Color("244")),
		user:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("5")),
		bot:       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("2")),
		prompt:    lipgloss.NewStyle().Border(lipgloss.DoubleBorder()).BorderForeground(lipgloss.Color("3")).Padding(0, 1),
	}
}

// Toggle swaps dark and light.
func (t Theme) Toggle() Theme {
	if t.Name == "light" {
		return DarkTheme()
	}
	return LightTheme()
}

// PaneWidth is the inner width of each of the two columns for a terminal of
// the given width.
func PaneWidth(total int) int {
	if total <= 0 {
		return 58
	}
	w := total/2 - 4
	if w < 24 {
		w = 24
	}
	return w
}

func RenderApp(data AppData, theme Theme, focusChat bool) string {
	width := PaneWidth(data.Width)
	chatStyle, taskStyle := theme.panel, theme.focused
	if focusChat {
		chatStyle, taskStyle = theme.focused, theme.panel
	}

	left := chatStyle.Width(width).Render(data.ChatPane)
	rightParts := []string{taskStyle.Width(width).Render(data.TaskPane)}
	if data.CurrentStep != "" {
		rightParts = append(rightParts, theme.panel.Width(width).Render(data.CurrentStep))
	}
	rightParts = append(rightParts, theme.panel.Width(width).Render(data.TimerPane))
	right := lipgloss.JoinVertical(lipgloss.Left, rightParts...)
	row := lipgloss.JoinHorizontal(lipgloss.Top, left, right)

	lines := []string{theme.header.Render(data.Header), row}
	if data.Prompt != "" {
		lines = append(lines, theme.prompt.Render(data.Prompt))
	}
	if data.StatusLine != "" {
		if data.StatusError {
			lines = append(lines, theme.err.Render(data.StatusLine))
		} else {
			lines = append(lines, theme.status.Render(data.StatusLine))
		}
	}
	if data.Help != "" {
		lines = append(lines, theme.panel.Render(data.Help))
	}
	if data.Footer != "" {
		lines = append(lines, theme.footer.Render(data.Footer))
	}
	return strings.Join(lines, "\n")
}

// RenderMarkdown renders md with the glamour style named by the theme,
// wrapped at width. Rendering failures fall back to the raw text.
func RenderMarkdown(md string, theme Theme, width int) string {
	if strings.TrimSpace(md) == "" {
		return ""
	}
	opts := []glamour.TermRendererOption{glamour.WithStandardStyle(theme.Markdown)}
	if width > 0 {
		opts = append(opts, glamour.WithWordWrap(width))
	}
	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return strings.TrimSpace(out)
}
