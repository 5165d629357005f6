// Package storage persists tasks as escaped, pipe-delimited text records.
package storage

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/gofrs/flock"

	"github.com/nibzard/momo-go/internal/logging"
	"github.com/nibzard/momo-go/internal/task"
)

// maxRecordSize bounds a single line read from the task file.
const maxRecordSize = 1 << 20

// FileStore reads and writes the task file. Each call opens the file,
// reads or rewrites it completely and closes it again.
type FileStore struct {
	path   string
	lock   *flock.Flock
	logger *log.Logger
}

// Option configures a FileStore.
type Option func(*FileStore)

// WithLogger sets the logger used for debug and error output.
func WithLogger(logger *log.Logger) Option {
	return func(s *FileStore) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithLock enables or disables the advisory lock held on <path>.lock
// for the duration of every Load and Save.
func WithLock(enabled bool) Option {
	return func(s *FileStore) {
		if enabled {
			s.lock = flock.New(s.path + ".lock")
		} else {
			s.lock = nil
		}
	}
}

// NewFileStore returns a store for path, creating the file and its parent
// directory if they do not exist yet. Locking is on by default.
func NewFileStore(path string, opts ...Option) (*FileStore, error) {
	if strings.TrimSpace(path) == "" {
		return nil, &Error{Op: "create", Path: path, Err: errors.New("task file path is empty")}
	}
	s := &FileStore{
		path:   path,
		logger: logging.Discard(),
	}
	WithLock(true)(s)
	for _, opt := range opts {
		opt(s)
	}

	if err := s.create(); err != nil {
		return nil, err
	}
	return s, nil
}

// Path returns the task file path.
func (s *FileStore) Path() string {
	return s.path
}

func (s *FileStore) create() error {
	info, err := os.Stat(s.path)
	if err == nil {
		if info.IsDir() {
			return &Error{Op: "create", Path: s.path, Err: errors.New("path is a directory")}
		}
		return nil
	}
	if !os.IsNotExist(err) {
		return &Error{Op: "create", Path: s.path, Err: err}
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return &Error{Op: "create", Path: s.path, Err: fmt.Errorf("create directory: %w", err)}
	}
	f, err := os.OpenFile(s.path, os.O_WRONLY|os.O_CREATE, 0644)
	if err != nil {
		return &Error{Op: "create", Path: s.path, Err: err}
	}
	if err := f.Close(); err != nil {
		return &Error{Op: "create", Path: s.path, Err: err}
	}
	s.logger.Debug("created task file", "path", s.path)
	return nil
}

// Load reads every record in file order. Blank lines are skipped. The
// first corrupt record fails the whole load.
func (s *FileStore) Load() ([]*task.Task, error) {
	unlock, err := s.acquire("load")
	if err != nil {
		return nil, err
	}
	defer unlock()

	f, err := os.Open(s.path)
	if err != nil {
		return nil, &Error{Op: "load", Path: s.path, Err: err}
	}
	defer f.Close()

	tasks := make([]*task.Task, 0)
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), maxRecordSize)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		t, err := Decode(line)
		if err != nil {
			s.logger.Error("corrupt task record", "path", s.path, "line", lineNo)
			return nil, &Error{Op: "load", Path: s.path, Line: lineNo, Err: err}
		}
		tasks = append(tasks, t)
	}
	if err := scanner.Err(); err != nil {
		return nil, &Error{Op: "load", Path: s.path, Err: err}
	}

	s.logger.Debug("loaded tasks", "path", s.path, "count", len(tasks))
	return tasks, nil
}

// Save truncates the file and writes one record per task in the given order.
func (s *FileStore) Save(tasks []*task.Task) (err error) {
	unlock, err := s.acquire("save")
	if err != nil {
		return err
	}
	defer unlock()

	f, err := os.OpenFile(s.path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return &Error{Op: "save", Path: s.path, Err: err}
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = &Error{Op: "save", Path: s.path, Err: cerr}
		}
	}()

	w := bufio.NewWriter(f)
	for _, t := range tasks {
		if _, err := w.WriteString(Encode(t) + "\n"); err != nil {
			return &Error{Op: "save", Path: s.path, Err: err}
		}
	}
	if err := w.Flush(); err != nil {
		return &Error{Op: "save", Path: s.path, Err: err}
	}

	s.logger.Debug("saved tasks", "path", s.path, "count", len(tasks))
	return nil
}

// acquire takes the advisory lock if enabled and returns its release func.
func (s *FileStore) acquire(op string) (func(), error) {
	if s.lock == nil {
		return func() {}, nil
	}
	if err := s.lock.Lock(); err != nil {
		return nil, &Error{Op: op, Path: s.path, Err: fmt.Errorf("acquire lock: %w", err)}
	}
	return func() {
		if err := s.lock.Unlock(); err != nil {
			s.logger.Warn("release lock", "path", s.lock.Path(), "err", err)
		}
	}, nil
}
