package update

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/sandeepkv93/focuslist/internal/chat"
	"github.com/sandeepkv93/focuslist/internal/completion"
	"github.com/sandeepkv93/focuslist/internal/session"
	"github.com/sandeepkv93/focuslist/internal/storage"
	"github.com/sandeepkv93/focuslist/internal/views"
)

type Pane string

const (
	PaneChat  Pane = "Chat"
	PaneTasks Pane = "Tasks"
)

type StatusBar struct {
	Text    string
	IsError bool
}

type GlobalKeyMap struct {
	SwitchPane string
	Promote    string
	Palette    string
	Theme      string
	Help       string
	Quit       string
}

type CommandPaletteState struct {
	Active bool
	Input  string
}

type Model struct {
	CurrentPane Pane
	Session     *session.Controller
	Chat        *chat.Panel
	Cursor      int
	Adding      bool
	InFlight    int
	Palette     CommandPaletteState
	HelpVisible bool
	Theme       views.Theme
	Status      StatusBar
	Keys        GlobalKeyMap
	Quitting    bool
	LastError   error

	ctx            context.Context
	completer      completion.Completer
	repo           storage.Repository
	requestTimeout time.Duration
	armedRun       uint64
	width          int

	chatInput     textinput.Model
	taskInput     textinput.Model
	commandInput  textinput.Model
	focusProgress progress.Model
	typingSpinner spinner.Model
	helpModel     help.Model
	transcript    viewport.Model
}

// Options wires the model to its collaborators. Repo may be nil, in which
// case nothing is persisted.
type Options struct {
	Context        context.Context
	Session        *session.Controller
	Completer      completion.Completer
	Repo           storage.Repository
	RequestTimeout time.Duration
}

type FocusTickMsg struct {
	Run uint64
}

type ChatReplyMsg struct {
	Text string
}

type HighlightExpireMsg struct{}

type SetStatusMsg struct {
	Text    string
	IsError bool
}

type ClearStatusMsg struct{}

type AppErrorMsg struct {
	Err error
}

func NewModel(opts Options) (Model, error) {
	if opts.Context == nil {
		opts.Context = context.Background()
	}
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = completion.DefaultTimeout
	}
	sess := opts.Session
	if sess == nil {
		var err error
		sess, err = session.New(session.Options{})
		if err != nil {
			return Model{}, err
		}
	}

	m := Model{
		CurrentPane:    PaneChat,
		Session:        sess,
		Chat:           chat.NewPanel(opts.Completer),
		Theme:          views.DarkTheme(),
		ctx:            opts.Context,
		completer:      opts.Completer,
		repo:           opts.Repo,
		requestTimeout: opts.RequestTimeout,
		Keys: GlobalKeyMap{
			SwitchPane: "tab",
			Promote:    "ctrl+p",
			Palette:    "/",
			Theme:      "t",
			Help:       "?",
			Quit:       "q",
		},
	}
	m.initBubbleComponents()
	if err := m.restore(); err != nil {
		return Model{}, err
	}
	m.syncBubbleData()
	return m, nil
}

func (m *Model) initBubbleComponents() {
	m.chatInput = textinput.New()
	m.chatInput.Prompt = "you> "
	m.chatInput.Placeholder = "ask how to start, or /command"
	m.chatInput.CharLimit = 1000
	m.chatInput.Width = 48
	m.chatInput.Focus()

	m.taskInput = textinput.New()
	m.taskInput.Prompt = "add> "
	m.taskInput.CharLimit = 256
	m.taskInput.Width = 42

	m.commandInput = textinput.New()
	m.commandInput.Prompt = "/"
	m.commandInput.CharLimit = 256
	m.commandInput.Width = 48

	m.focusProgress = progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage())
	m.focusProgress.Width = 40

	m.typingSpinner = spinner.New()
	m.typingSpinner.Spinner = spinner.Dot

	m.helpModel = help.New()
	m.transcript = viewport.New(56, 16)
}

// syncBubbleData pushes session and chat state into the bubble components.
func (m *Model) syncBubbleData() {
	width := views.PaneWidth(m.width)
	m.transcript.Width = width
	m.chatInput.Width = width - len(m.chatInput.Prompt) - 1
	m.focusProgress.Width = width - 2

	count := m.Session.TaskCount()
	if m.Cursor >= count {
		m.Cursor = count - 1
	}
	if m.Cursor < 0 {
		m.Cursor = 0
	}

	m.commandInput.SetValue(m.Palette.Input)
	if m.Palette.Active {
		m.commandInput.Focus()
	} else {
		m.commandInput.Blur()
	}
	if m.Adding {
		m.taskInput.Focus()
	} else {
		m.taskInput.Blur()
	}
	if m.CurrentPane == PaneChat && !m.Palette.Active && !m.Adding {
		m.chatInput.Focus()
	} else {
		m.chatInput.Blur()
	}
}
