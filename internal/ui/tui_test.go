package ui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nibzard/momo-go/internal/storage"
)

func newTestTUI(t *testing.T, store *memStore) *tuiModel {
	t.Helper()
	tui := NewTUI(DefaultPrompt)
	exec := newSession(t, store, tui.Display())
	return newTUIModel(exec, tui.out, tui.console, tui.prompt)
}

func typeLine(m *tuiModel, line string) tea.Cmd {
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(line)})
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	return cmd
}

func transcriptText(m *tuiModel) string {
	return strings.Join(m.transcript, "\n")
}

func TestTUIWelcome(t *testing.T) {
	m := newTestTUI(t, &memStore{})
	if !strings.Contains(transcriptText(m), "Squeak! I'm Momo") {
		t.Errorf("welcome missing from transcript: %q", transcriptText(m))
	}
	if m.out.Len() != 0 {
		t.Error("console buffer should be drained")
	}
}

func TestTUISubmit(t *testing.T) {
	store := &memStore{}
	m := newTestTUI(t, store)

	if cmd := typeLine(m, "todo read book"); cmd != nil {
		t.Error("todo should not quit")
	}
	if m.input.Value() != "" {
		t.Errorf("input should be cleared, got %q", m.input.Value())
	}
	text := transcriptText(m)
	if !strings.Contains(text, "todo read book") || !strings.Contains(text, "[T][ ] read book") {
		t.Errorf("transcript missing command or result: %q", text)
	}
	if len(store.tasks) != 1 {
		t.Errorf("stored tasks: got %d, want 1", len(store.tasks))
	}

	typeLine(m, "mark 9")
	if !strings.Contains(transcriptText(m), "Did you mean: mark <1-1>") {
		t.Errorf("argument error missing: %q", transcriptText(m))
	}
	if m.quitting {
		t.Error("recoverable error must not quit")
	}

	if !strings.Contains(m.View(), "enter to run") {
		t.Error("footer missing from view")
	}
}

func TestTUIBlankLineIgnored(t *testing.T) {
	m := newTestTUI(t, &memStore{})
	before := len(m.transcript)
	typeLine(m, "   ")
	if len(m.transcript) != before {
		t.Errorf("blank input should not touch the transcript: %v", m.transcript[before:])
	}
}

func TestTUIBye(t *testing.T) {
	m := newTestTUI(t, &memStore{})
	cmd := typeLine(m, "bye")
	if cmd == nil || !m.quitting {
		t.Fatal("bye should quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.Quit command")
	}
	if m.fatal != nil {
		t.Errorf("bye is not a failure: %v", m.fatal)
	}
}

func TestTUIStorageFailure(t *testing.T) {
	store := &memStore{saveErr: &storage.Error{Op: "save", Path: "tasks.txt", Err: errors.New("read-only")}}
	m := newTestTUI(t, store)

	cmd := typeLine(m, "todo a")
	if cmd == nil {
		t.Fatal("storage failure should quit")
	}
	var storeErr *storage.Error
	if !errors.As(m.fatal, &storeErr) {
		t.Errorf("fatal error not recorded: %v", m.fatal)
	}
	if !strings.Contains(transcriptText(m), "read-only") {
		t.Errorf("storage error not shown: %q", transcriptText(m))
	}
}

func TestTUIQuitKeys(t *testing.T) {
	for _, key := range []tea.KeyType{tea.KeyCtrlC, tea.KeyEsc} {
		m := newTestTUI(t, &memStore{})
		_, cmd := m.Update(tea.KeyMsg{Type: key})
		if cmd == nil || !m.quitting {
			t.Errorf("key %v should quit", key)
		}
	}
}

func TestTUIWindowSize(t *testing.T) {
	m := newTestTUI(t, &memStore{})
	for i := 0; i < 20; i++ {
		typeLine(m, "list")
	}
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 10})
	if m.input.Width != 70 {
		t.Errorf("input width: got %d, want 70", m.input.Width)
	}
	// Title + blank + 4 transcript lines + blank + input + blank + footer.
	if lines := strings.Count(m.View(), "\n"); lines > 10 {
		t.Errorf("view should fit the window height, got %d lines", lines)
	}
}

func TestTUITranscriptBounded(t *testing.T) {
	m := newTestTUI(t, &memStore{})
	for i := 0; i < maxTranscript+50; i++ {
		m.append("x")
	}
	if len(m.transcript) != maxTranscript {
		t.Errorf("transcript length: got %d, want %d", len(m.transcript), maxTranscript)
	}
}
