package ui

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/nibzard/momo-go/internal/command"
	"github.com/nibzard/momo-go/internal/datetime"
	"github.com/nibzard/momo-go/internal/storage"
	"github.com/nibzard/momo-go/internal/task"
)

type memStore struct {
	tasks   []*task.Task
	saveErr error
}

func (s *memStore) Load() ([]*task.Task, error) { return s.tasks, nil }

func (s *memStore) Save(tasks []*task.Task) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.tasks = append([]*task.Task(nil), tasks...)
	return nil
}

func newSession(t *testing.T, store *memStore, display command.Display) *command.Executor {
	t.Helper()
	m, err := task.NewManager(store)
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}
	return command.NewExecutor(m, display, nil)
}

func TestConsoleRunSession(t *testing.T) {
	var out bytes.Buffer
	console := NewConsole(&out)
	store := &memStore{}
	exec := newSession(t, store, console)

	in := strings.NewReader(strings.Join([]string{
		"todo read book",
		"dance",
		"mark 5",
		"deadline report /by 2026-13-01",
		"mark 1",
		"list",
		"bye",
		"todo never reached",
	}, "\n"))

	if err := console.Run(context.Background(), in, exec); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	got := out.String()
	for _, want := range []string{
		"Squeak! I'm Momo",
		"\n>> ",
		"Got it! I've added this task:\n  [T][ ] read book\nNow you have 1 task in the list.",
		"Momo doesn't understand",
		"Did you mean: mark <1-1>",
		"Dates look like yyyy-MM-dd",
		"Yippee! I've marked this task as done:\n  [T][X] read book",
		"Here are the tasks in your list:\n1.[T][X] read book",
		"Let's play again another time!",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q\n--- output ---\n%s", want, got)
		}
	}
	if strings.Contains(got, "never reached") {
		t.Error("input after bye must not be handled")
	}
	if len(store.tasks) != 1 {
		t.Errorf("stored tasks: got %d, want 1", len(store.tasks))
	}
}

func TestConsoleRunEOF(t *testing.T) {
	var out bytes.Buffer
	console := NewConsole(&out, WithPrompt("momo> "))
	exec := newSession(t, &memStore{}, console)

	if err := console.Run(context.Background(), strings.NewReader("todo a\n\nlist"), exec); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	got := out.String()
	if !strings.Contains(got, "momo> ") {
		t.Errorf("custom prompt missing from %q", got)
	}
	if !strings.Contains(got, "1.[T][ ] a") {
		t.Errorf("list output missing from %q", got)
	}
	if strings.Contains(got, "Let's play again") {
		t.Error("EOF must not print the farewell")
	}
}

func TestConsoleRunStorageFailure(t *testing.T) {
	var out bytes.Buffer
	console := NewConsole(&out)
	store := &memStore{saveErr: &storage.Error{Op: "save", Path: "tasks.txt", Err: errors.New("disk full")}}
	exec := newSession(t, store, console)

	err := console.Run(context.Background(), strings.NewReader("todo a\nlist\n"), exec)
	if !command.IsFatal(err) {
		t.Fatalf("expected fatal storage error, got %v", err)
	}
	got := out.String()
	if !strings.Contains(got, "disk full") || !strings.Contains(got, "I have to stop now") {
		t.Errorf("fatal error not reported: %q", got)
	}
	if strings.Contains(got, "Here are the tasks") {
		t.Error("loop must stop after a storage failure")
	}
}

func TestConsoleRunContextCancel(t *testing.T) {
	var out bytes.Buffer
	console := NewConsole(&out)
	exec := newSession(t, &memStore{}, console)

	pr, pw := io.Pipe()
	defer pw.Close()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- console.Run(ctx, pr, exec)
	}()
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancellation")
	}
}

func TestConsoleDisplay(t *testing.T) {
	due := time.Date(2026, 2, 1, 9, 30, 0, 0, time.UTC)
	tagged := task.NewDeadline("report", due)
	tagged.AddTag("work")

	tests := []struct {
		name string
		show func(c *Console)
		want string
	}{
		{
			name: "empty list",
			show: func(c *Console) { c.ShowTaskList(nil) },
			want: "Your list is empty. Add something with todo, deadline or event.\n",
		},
		{
			name: "matches",
			show: func(c *Console) { c.ShowMatches([]*task.Task{tagged}) },
			want: "Here are the matching tasks in your list:\n1.[D][ ] report (by: Feb 01 2026 09:30) #work\n",
		},
		{
			name: "no matches",
			show: func(c *Console) { c.ShowMatches(nil) },
			want: "No matching task found.\n",
		},
		{
			name: "deleted",
			show: func(c *Console) { c.ShowDeleted(task.NewTodo("a"), 0) },
			want: "Ok, I've removed this task:\n  [T][ ] a\nNow you have 0 tasks in the list.\n",
		},
		{
			name: "tag removed",
			show: func(c *Console) { c.ShowTagRemoved(task.NewTodo("a")) },
			want: "I have removed the tag:\n  [T][ ] a\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			tt.show(NewConsole(&out, WithFrame(false)))
			if out.String() != tt.want {
				t.Errorf("got %q, want %q", out.String(), tt.want)
			}

			out.Reset()
			tt.show(NewConsole(&out))
			framed := divider + "\n" + tt.want + divider + "\n"
			if out.String() != framed {
				t.Errorf("framed: got %q, want %q", out.String(), framed)
			}
		})
	}
}

func TestErrorMessage(t *testing.T) {
	_, dateErr := datetime.Parse("tomorrow")
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"invalid command", command.ErrInvalidCommand, "Sorry >.< but Momo doesn't understand. Would you say that again?"},
		{"argument", &command.ArgumentError{Usage: "mark <1-3>"}, "Eeek >.<! Did you mean: mark <1-3>"},
		{"wrapped argument", fmt.Errorf("x: %w", &command.ArgumentError{Usage: "list"}), "Eeek >.<! Did you mean: list"},
		{"date", dateErr, "Eeek >.<! Dates look like yyyy-MM-dd or yyyy-MM-dd HHmm, e.g. 2026-02-01 0930"},
		{"other", errors.New("boom"), "boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ErrorMessage(tt.err); got != tt.want {
				t.Errorf("ErrorMessage = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIsTTY(t *testing.T) {
	if IsTTY(&bytes.Buffer{}) {
		t.Error("buffer is not a terminal")
	}
}
