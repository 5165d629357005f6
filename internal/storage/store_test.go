package storage

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/nibzard/momo-go/internal/logging"
	"github.com/nibzard/momo-go/internal/task"
)

func TestNewFileStoreCreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "data", "tasks.txt")

	store, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("NewFileStore failed: %v", err)
	}
	if store.Path() != path {
		t.Errorf("Path: got %q, want %q", store.Path(), path)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("task file not created: %v", err)
	}
	if info.Size() != 0 {
		t.Errorf("new task file should be empty, got %d bytes", info.Size())
	}

	tasks, err := store.Load()
	if err != nil {
		t.Fatalf("Load on fresh file failed: %v", err)
	}
	if len(tasks) != 0 {
		t.Errorf("Load on fresh file: got %d tasks, want 0", len(tasks))
	}
}

func TestNewFileStoreKeepsExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.txt")
	if err := os.WriteFile(path, []byte("T|1|keep me|\n"), 0644); err != nil {
		t.Fatal(err)
	}

	store, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("NewFileStore failed: %v", err)
	}
	tasks, err := store.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(tasks) != 1 || tasks[0].Title() != "keep me" || !tasks[0].IsComplete() {
		t.Errorf("existing content not preserved: %v", tasks)
	}
}

func TestNewFileStoreErrors(t *testing.T) {
	dir := t.TempDir()

	t.Run("empty path", func(t *testing.T) {
		_, err := NewFileStore("  ")
		var storeErr *Error
		if !errors.As(err, &storeErr) || storeErr.Op != "create" {
			t.Errorf("expected create error, got %v", err)
		}
	})

	t.Run("path is a directory", func(t *testing.T) {
		_, err := NewFileStore(dir)
		var storeErr *Error
		if !errors.As(err, &storeErr) {
			t.Errorf("expected storage error, got %v", err)
		}
	})

	t.Run("parent is a file", func(t *testing.T) {
		blocker := filepath.Join(dir, "blocker")
		if err := os.WriteFile(blocker, nil, 0644); err != nil {
			t.Fatal(err)
		}
		_, err := NewFileStore(filepath.Join(blocker, "tasks.txt"))
		var storeErr *Error
		if !errors.As(err, &storeErr) {
			t.Errorf("expected storage error, got %v", err)
		}
	})
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.txt")
	store, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("NewFileStore failed: %v", err)
	}

	due := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	first := task.NewTodo("first")
	first.AddTag("b")
	first.AddTag("a")
	second := task.NewDeadline("second", due)
	second.SetComplete()
	third := task.NewEvent("third", due, due.Add(2*time.Hour))
	want := []*task.Task{first, second, third}

	if err := store.Save(want); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	wantText := "T|0|first|a, b\n" +
		"D|1|second||2026-02-01T00:00\n" +
		"E|0|third||2026-02-01T00:00|2026-02-01T02:00\n"
	if string(data) != wantText {
		t.Errorf("file content:\n got  %q\n want %q", string(data), wantText)
	}

	got, err := store.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("Load: got %d tasks, want %d", len(got), len(want))
	}
	for i := range want {
		if !got[i].Equal(want[i]) {
			t.Errorf("task %d: got %v, want %v", i, got[i], want[i])
		}
	}
}

func TestSaveTruncates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.txt")
	store, err := NewFileStore(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := store.Save([]*task.Task{task.NewTodo("a"), task.NewTodo("b")}); err != nil {
		t.Fatal(err)
	}
	if err := store.Save([]*task.Task{task.NewTodo("c")}); err != nil {
		t.Fatal(err)
	}
	data, _ := os.ReadFile(path)
	if string(data) != "T|0|c|\n" {
		t.Errorf("file content after rewrite: %q", string(data))
	}
}

func TestLoadSkipsBlankLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.txt")
	content := "\nT|0|a|\n   \r\nT|1|b|x\r\n\n\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	store, err := NewFileStore(path)
	if err != nil {
		t.Fatal(err)
	}
	tasks, err := store.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(tasks) != 2 || tasks[0].Title() != "a" || tasks[1].Title() != "b" || !tasks[1].HasTag("x") {
		t.Errorf("Load: got %v", tasks)
	}
}

func TestLoadCorruptFailsEntirely(t *testing.T) {
	tests := []struct {
		name    string
		content string
		line    int
	}{
		{"unknown marker", "T|0|good|\nQ|0|bad|\nT|0|also good|\n", 2},
		{"non-numeric status", "T|x|bad|\n", 1},
		{"deadline date", "T|0|good|\n\nD|0|bad||31/12/2026\n", 3},
		{"event date", "E|0|bad||2026-02-01T00:00|never\n", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "tasks.txt")
			if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
				t.Fatal(err)
			}
			var logs bytes.Buffer
			store, err := NewFileStore(path, WithLogger(logging.New(&logs, logging.DefaultOptions())))
			if err != nil {
				t.Fatal(err)
			}

			tasks, err := store.Load()
			if err == nil {
				t.Fatalf("Load should fail, got %d tasks", len(tasks))
			}
			if tasks != nil {
				t.Errorf("no partial result expected, got %v", tasks)
			}
			var storeErr *Error
			if !errors.As(err, &storeErr) {
				t.Fatalf("expected *Error, got %T: %v", err, err)
			}
			if storeErr.Op != "load" || storeErr.Line != tt.line {
				t.Errorf("error op/line: got %s/%d, want load/%d", storeErr.Op, storeErr.Line, tt.line)
			}
			if !errors.Is(err, ErrCorruptRecord) {
				t.Errorf("error should wrap ErrCorruptRecord: %v", err)
			}
			if !strings.Contains(logs.String(), "corrupt task record") {
				t.Errorf("expected corrupt record to be logged, got %q", logs.String())
			}

			data, _ := os.ReadFile(path)
			if string(data) != tt.content {
				t.Error("corrupt file must not be rewritten")
			}
		})
	}
}

func TestLockFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.txt")

	locked, err := NewFileStore(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := locked.Save([]*task.Task{task.NewTodo("a")}); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(path + ".lock"); err != nil {
		t.Errorf("expected lock file next to task file: %v", err)
	}

	// Lock is released after each call, so a second store can proceed.
	other, err := NewFileStore(path)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := other.Load(); err != nil {
		t.Errorf("second store could not load: %v", err)
	}
}

func TestWithoutLock(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.txt")
	store, err := NewFileStore(path, WithLock(false))
	if err != nil {
		t.Fatal(err)
	}
	if err := store.Save([]*task.Task{task.NewTodo("a")}); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(path + ".lock"); !os.IsNotExist(err) {
		t.Errorf("no lock file expected when locking is disabled, stat err = %v", err)
	}
}
