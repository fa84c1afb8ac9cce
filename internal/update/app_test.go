package update

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/focuslist/internal/chat"
	"github.com/sandeepkv93/focuslist/internal/completion"
	"github.com/sandeepkv93/focuslist/internal/session"
	"github.com/sandeepkv93/focuslist/internal/storage"
	"github.com/sandeepkv93/focuslist/internal/timer"
)

type stubCompleter struct {
	reply string
	err   error
}

func (s stubCompleter) Complete(context.Context, string) (string, error) {
	return s.reply, s.err
}

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func newTestModel(t *testing.T, completer completion.Completer) Model {
	t.Helper()
	sess, err := session.New(session.Options{FocusDuration: 3 * time.Second})
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	m, err := NewModel(Options{Session: sess, Completer: completer})
	if err != nil {
		t.Fatalf("new model: %v", err)
	}
	return m
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "ctrl+p":
		return tea.KeyMsg{Type: tea.KeyCtrlP}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
}

func press(t *testing.T, m Model, keys ...string) (Model, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, k := range keys {
		var updated tea.Model
		updated, cmd = m.Update(keyMsg(k))
		m = updated.(Model)
	}
	return m, cmd
}

func send(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	updated, _ := m.Update(msg)
	return updated.(Model)
}

func TestNewModelDefaults(t *testing.T) {
	m := newTestModel(t, nil)
	if m.CurrentPane != PaneChat {
		t.Fatalf("expected default pane %q, got %q", PaneChat, m.CurrentPane)
	}
	if m.Theme.Name != "dark" {
		t.Fatalf("expected dark theme, got %q", m.Theme.Name)
	}
	if m.Keys.Quit != "q" || m.Keys.Promote != "ctrl+p" {
		t.Fatalf("unexpected key map: %+v", m.Keys)
	}
	if m.Session.TaskCount() != 0 || m.Chat.Len() != 0 {
		t.Fatal("expected empty session and transcript")
	}
}

func TestChatSendRecordsUserMessage(t *testing.T) {
	m := newTestModel(t, stubCompleter{reply: "ok"})
	m, cmd := press(t, m, "how do I start?", "enter")

	if m.Chat.Len() != 1 {
		t.Fatalf("expected one user message, got %d", m.Chat.Len())
	}
	if m.InFlight != 1 {
		t.Fatalf("expected request in flight, got %d", m.InFlight)
	}
	if cmd == nil {
		t.Fatal("expected completion command")
	}
	if m.chatInput.Value() != "" {
		t.Fatalf("expected input cleared, got %q", m.chatInput.Value())
	}
	if !strings.Contains(m.View(), "assistant is typing") {
		t.Fatal("expected typing indicator while waiting")
	}
}

func TestChatEmptySendIsRejected(t *testing.T) {
	m := newTestModel(t, stubCompleter{reply: "ok"})
	m, cmd := press(t, m, "   ", "enter")
	if m.Chat.Len() != 0 {
		t.Fatalf("expected no message, got %d", m.Chat.Len())
	}
	if !m.Status.IsError {
		t.Fatalf("expected error status, got %+v", m.Status)
	}
	if cmd != nil {
		t.Fatal("expected no command for empty send")
	}
}

func TestCompleteCmdFallsBackOnFailure(t *testing.T) {
	failing := stubCompleter{err: &completion.ProviderError{Status: 500, Body: "boom"}}
	msg := completeCmd(context.Background(), failing, "x", time.Second)()
	reply, ok := msg.(ChatReplyMsg)
	if !ok {
		t.Fatalf("expected ChatReplyMsg, got %T", msg)
	}
	if reply.Text != chat.FallbackReply {
		t.Fatalf("expected fallback reply, got %q", reply.Text)
	}

	empty := completeCmd(context.Background(), stubCompleter{err: completion.ErrEmptyReply}, "x", time.Second)()
	if empty.(ChatReplyMsg).Text != completion.PlaceholderReply {
		t.Fatalf("expected placeholder reply, got %q", empty.(ChatReplyMsg).Text)
	}
}

func TestChatReplyThenPromote(t *testing.T) {
	m := newTestModel(t, stubCompleter{})
	m, _ = press(t, m, "plan my essay", "enter")
	m = send(t, m, ChatReplyMsg{Text: "- open editor\n- write intro\n- outline body"})

	if m.InFlight != 0 {
		t.Fatalf("expected no request in flight, got %d", m.InFlight)
	}
	transcript := m.Chat.Transcript()
	if len(transcript) != 2 || !transcript[1].HasListMarkup {
		t.Fatalf("expected promotable bot reply, got %+v", transcript)
	}

	m, cmd := press(t, m, "ctrl+p")
	if m.Session.TaskCount() != 3 {
		t.Fatalf("expected 3 promoted tasks, got %d", m.Session.TaskCount())
	}
	if cmd == nil {
		t.Fatal("expected highlight expiry command")
	}
	for _, task := range m.Session.Tasks() {
		if !m.Session.Highlighted(task.ID) {
			t.Fatalf("expected new task %q highlighted", task.Text)
		}
	}
}

func TestFallbackReplyIsNotPromotable(t *testing.T) {
	m := newTestModel(t, stubCompleter{})
	m, _ = press(t, m, "hi", "enter")
	m = send(t, m, ChatReplyMsg{Text: chat.FallbackReply})

	if !m.Status.IsError {
		t.Fatalf("expected error status after fallback, got %+v", m.Status)
	}
	m, _ = press(t, m, "ctrl+p")
	if m.Session.TaskCount() != 0 {
		t.Fatalf("expected nothing promoted, got %d", m.Session.TaskCount())
	}
}

func TestHighlightExpires(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC)}
	sess, err := session.New(session.Options{FocusDuration: time.Minute, Now: clock.Now})
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	m, err := NewModel(Options{Session: sess})
	if err != nil {
		t.Fatalf("new model: %v", err)
	}

	m, _ = press(t, m, "/add stretch", "enter")
	id := m.Session.Tasks()[0].ID
	if !m.Session.Highlighted(id) {
		t.Fatal("expected fresh task highlighted")
	}
	clock.now = clock.now.Add(3 * time.Second)
	m = send(t, m, HighlightExpireMsg{})
	if m.Session.Highlighted(id) {
		t.Fatal("expected highlight expired")
	}
}

func TestTaskPaneAddStartTickAndConfirm(t *testing.T) {
	m := newTestModel(t, nil)
	m, _ = press(t, m, "tab", "a", "write intro", "enter", "a", "edit draft", "enter")
	if m.Session.TaskCount() != 2 {
		t.Fatalf("expected 2 tasks, got %d", m.Session.TaskCount())
	}

	m, cmd := press(t, m, "enter")
	if idx, ok := m.Session.Active(); !ok || idx != 0 {
		t.Fatalf("expected first task active, got %d %v", idx, ok)
	}
	if cmd == nil {
		t.Fatal("expected tick command after start")
	}
	if !strings.Contains(m.View(), "current step") {
		t.Fatal("expected current step panel")
	}

	run := m.Session.Timer().Run
	for i := 0; i < 3; i++ {
		m = send(t, m, FocusTickMsg{Run: run})
	}
	if !m.Session.Pending() {
		t.Fatal("expected confirmation pending after countdown")
	}
	if !strings.Contains(m.View(), "Did you finish") {
		t.Fatal("expected confirmation prompt in view")
	}

	m, cmd = press(t, m, "y")
	tasks := m.Session.Tasks()
	if !tasks[0].Completed {
		t.Fatal("expected first task completed")
	}
	if idx, ok := m.Session.Active(); !ok || idx != 1 {
		t.Fatalf("expected second task active, got %d %v", idx, ok)
	}
	state := m.Session.Timer()
	if state.Status != timer.StatusRunning || state.RemainingSec != 3 {
		t.Fatalf("expected fresh running timer, got %+v", state)
	}
	if cmd == nil {
		t.Fatal("expected tick command for the next task")
	}

	run = m.Session.Timer().Run
	for i := 0; i < 3; i++ {
		m = send(t, m, FocusTickMsg{Run: run})
	}
	m, _ = press(t, m, "y")
	if _, ok := m.Session.Active(); ok {
		t.Fatal("expected selection cleared after last task")
	}
	if m.Status.Text != "all steps done" {
		t.Fatalf("unexpected status: %+v", m.Status)
	}
}

func TestDeclineKeepsSelection(t *testing.T) {
	m := newTestModel(t, nil)
	m, _ = press(t, m, "/add one", "enter", "/start 1", "enter")
	run := m.Session.Timer().Run
	for i := 0; i < 3; i++ {
		m = send(t, m, FocusTickMsg{Run: run})
	}
	m, _ = press(t, m, "n")
	if m.Session.Pending() {
		t.Fatal("expected confirmation resolved")
	}
	if idx, ok := m.Session.Active(); !ok || idx != 0 {
		t.Fatalf("expected selection kept, got %d %v", idx, ok)
	}
	if m.Session.Tasks()[0].Completed {
		t.Fatal("expected task still open")
	}
}

func TestConfirmationBlocksOtherKeys(t *testing.T) {
	m := newTestModel(t, nil)
	m, _ = press(t, m, "/add one", "enter", "/start 1", "enter")
	run := m.Session.Timer().Run
	for i := 0; i < 3; i++ {
		m = send(t, m, FocusTickMsg{Run: run})
	}
	m, _ = press(t, m, "tab", "x")
	if m.Session.TaskCount() != 1 {
		t.Fatal("expected delete blocked while confirmation pending")
	}
	if !m.Status.IsError {
		t.Fatalf("expected hint in status, got %+v", m.Status)
	}
}

func TestStaleTickIgnoredAfterPause(t *testing.T) {
	m := newTestModel(t, nil)
	m, _ = press(t, m, "tab", "a", "one", "enter", "enter")
	run := m.Session.Timer().Run

	m, _ = press(t, m, "s")
	if m.Session.Timer().Status != timer.StatusIdle {
		t.Fatalf("expected paused timer, got %s", m.Session.Timer().Status)
	}
	m, cmd := press(t, m, "s")
	if cmd == nil {
		t.Fatal("expected new tick chain after resume")
	}

	m = send(t, m, FocusTickMsg{Run: run})
	if m.Session.Timer().RemainingSec != 3 {
		t.Fatalf("stale tick should be ignored, remaining %d", m.Session.Timer().RemainingSec)
	}
	m = send(t, m, FocusTickMsg{Run: m.Session.Timer().Run})
	if m.Session.Timer().RemainingSec != 2 {
		t.Fatalf("expected current tick applied, remaining %d", m.Session.Timer().RemainingSec)
	}
}

func TestTaskPaneToggleDeleteAndCursor(t *testing.T) {
	m := newTestModel(t, nil)
	m, _ = press(t, m, "tab", "a", "one", "enter", "a", "two", "enter", "j", " ")
	tasks := m.Session.Tasks()
	if tasks[0].Completed || !tasks[1].Completed {
		t.Fatalf("expected second task toggled, got %+v", tasks)
	}

	m, _ = press(t, m, "x")
	if m.Session.TaskCount() != 1 || m.Cursor != 0 {
		t.Fatalf("expected one task and cursor clamped, got %d tasks cursor %d", m.Session.TaskCount(), m.Cursor)
	}
}

func TestPaletteCommands(t *testing.T) {
	m := newTestModel(t, nil)
	m, _ = press(t, m, "tab", "/")
	if !m.Palette.Active {
		t.Fatal("expected palette active")
	}
	m, _ = press(t, m, "add water plants", "enter")
	if m.Palette.Active || m.Session.TaskCount() != 1 {
		t.Fatalf("expected palette closed and task added, got %+v count %d", m.Palette, m.Session.TaskCount())
	}

	m, _ = press(t, m, "/", "start 1", "enter")
	if idx, ok := m.Session.Active(); !ok || idx != 0 {
		t.Fatalf("expected task started, got %d %v", idx, ok)
	}

	m, _ = press(t, m, "/", "delete 1", "enter")
	if m.Session.TaskCount() != 0 {
		t.Fatal("expected task deleted")
	}
	if _, ok := m.Session.Active(); ok {
		t.Fatal("expected selection cleared when active task deleted")
	}

	m, _ = press(t, m, "/", "start 4", "enter")
	if !m.Status.IsError {
		t.Fatalf("expected out of range error, got %+v", m.Status)
	}

	m, _ = press(t, m, "/", "bogus", "enter")
	if !m.Status.IsError || !strings.Contains(m.Status.Text, "unsupported command") {
		t.Fatalf("expected unknown command error, got %+v", m.Status)
	}
}

func TestPaletteEscCloses(t *testing.T) {
	m := newTestModel(t, nil)
	m, _ = press(t, m, "tab", "/", "add x", "esc")
	if m.Palette.Active || m.Session.TaskCount() != 0 {
		t.Fatalf("expected palette closed without running, got %+v", m.Palette)
	}
}

func TestClearCommandDropsTranscript(t *testing.T) {
	m := newTestModel(t, nil)
	m, _ = press(t, m, "hello", "enter")
	m = send(t, m, ChatReplyMsg{Text: "hi"})
	m, _ = press(t, m, "/clear", "enter")
	if m.Chat.Len() != 0 {
		t.Fatalf("expected empty transcript, got %d", m.Chat.Len())
	}
}

func TestThemeAndHelpToggle(t *testing.T) {
	m := newTestModel(t, nil)
	m, _ = press(t, m, "tab", "t", "?")
	if m.Theme.Name != "light" {
		t.Fatalf("expected light theme, got %q", m.Theme.Name)
	}
	if !m.HelpVisible || !strings.Contains(m.View(), "help (tasks pane)") {
		t.Fatal("expected help panel")
	}
}

func TestLettersTypeIntoChatInput(t *testing.T) {
	m := newTestModel(t, nil)
	m, _ = press(t, m, "q", "t")
	if m.Quitting || m.Theme.Name != "dark" {
		t.Fatal("letters in the chat pane must not trigger task pane keys")
	}
	if m.chatInput.Value() != "qt" {
		t.Fatalf("expected typed text, got %q", m.chatInput.Value())
	}
}

func TestUpdateStatusAndError(t *testing.T) {
	m := newTestModel(t, nil)
	m = send(t, m, SetStatusMsg{Text: "ready"})
	if m.Status.Text != "ready" || m.Status.IsError {
		t.Fatalf("unexpected status: %+v", m.Status)
	}

	m = send(t, m, AppErrorMsg{Err: errors.New("boom")})
	if m.LastError == nil || !m.Status.IsError || m.Status.Text != "boom" {
		t.Fatalf("unexpected error state: %+v %v", m.Status, m.LastError)
	}

	m = send(t, m, ClearStatusMsg{})
	if m.Status.Text != "" || m.Status.IsError {
		t.Fatalf("expected cleared status, got: %+v", m.Status)
	}
}

func TestUpdateQuitKeys(t *testing.T) {
	m := newTestModel(t, nil)
	next, cmd := press(t, m, "tab", "q")
	if !next.Quitting || cmd == nil {
		t.Fatal("expected quit from tasks pane")
	}

	next, cmd = press(t, m, "ctrl+c")
	if !next.Quitting || cmd == nil {
		t.Fatal("expected ctrl+c to quit from chat pane")
	}
}

func TestViewContainsCoreState(t *testing.T) {
	m := newTestModel(t, nil)
	m.Status = StatusBar{Text: "all good"}
	out := m.View()
	for _, want := range []string{"pane: Chat", "tasks: 0", "status: all good", "focus timer: 00:03"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output: %q", want, out)
		}
	}
}

func TestPersistenceRestoresTasksAndTranscript(t *testing.T) {
	repo, err := storage.OpenSQLite(filepath.Join(t.TempDir(), "focuslist.db"))
	if err != nil {
		t.Fatalf("open repo: %v", err)
	}
	t.Cleanup(func() { _ = repo.Close() })

	m, err := NewModel(Options{Repo: repo})
	if err != nil {
		t.Fatalf("new model: %v", err)
	}
	m, _ = press(t, m, "steps please", "enter")
	m = send(t, m, ChatReplyMsg{Text: "1. stand up\n2. drink water"})
	m, _ = press(t, m, "ctrl+p", "tab", " ")

	restored, err := NewModel(Options{Repo: repo})
	if err != nil {
		t.Fatalf("restore model: %v", err)
	}
	if restored.Chat.Len() != 2 {
		t.Fatalf("expected 2 restored messages, got %d", restored.Chat.Len())
	}
	tasks := restored.Session.Tasks()
	if len(tasks) != 2 || tasks[0].Text != "stand up" || !tasks[0].Completed {
		t.Fatalf("unexpected restored tasks: %+v", tasks)
	}
	if _, ok := restored.Chat.LastPromotable(); !ok {
		t.Fatal("expected restored reply to stay promotable")
	}
}

func TestFormatDuration(t *testing.T) {
	cases := map[int]string{0: "00:00", 5: "00:05", 1500: "25:00", -3: "00:00"}
	for in, want := range cases {
		if got := formatDuration(in); got != want {
			t.Fatalf("formatDuration(%d) = %q, want %q", in, got, want)
		}
	}
}
