package task

import (
	"errors"
	"fmt"
)

// ErrIndexOutOfRange is returned when a list position does not exist.
var ErrIndexOutOfRange = errors.New("task index out of range")

// Store persists the full task list.
type Store interface {
	Load() ([]*Task, error)
	Save(tasks []*Task) error
}

// Manager owns the ordered task list and keeps it in sync with a Store.
//
// Add and RemoveAt persist the whole list immediately. Mutating a task
// obtained from Get does not; callers must call Save afterwards.
type Manager struct {
	store Store
	tasks []*Task
}

// NewManager loads the full list from store.
func NewManager(store Store) (*Manager, error) {
	tasks, err := store.Load()
	if err != nil {
		return nil, err
	}
	if tasks == nil {
		tasks = make([]*Task, 0)
	}
	return &Manager{store: store, tasks: tasks}, nil
}

// Add appends t and saves the list.
func (m *Manager) Add(t *Task) error {
	if t == nil {
		return fmt.Errorf("add task: nil task")
	}
	m.tasks = append(m.tasks, t)
	return m.store.Save(m.tasks)
}

// RemoveAt removes and returns the task at i, then saves the list.
func (m *Manager) RemoveAt(i int) (*Task, error) {
	if err := m.checkIndex(i); err != nil {
		return nil, err
	}
	removed := m.tasks[i]
	m.tasks = append(m.tasks[:i], m.tasks[i+1:]...)
	if err := m.store.Save(m.tasks); err != nil {
		return removed, err
	}
	return removed, nil
}

// Get returns the task at i for in-place mutation. It does not save.
func (m *Manager) Get(i int) (*Task, error) {
	if err := m.checkIndex(i); err != nil {
		return nil, err
	}
	return m.tasks[i], nil
}

// Save persists the current list.
func (m *Manager) Save() error {
	return m.store.Save(m.tasks)
}

// Size returns the number of tasks.
func (m *Manager) Size() int {
	return len(m.tasks)
}

// Tasks returns the tasks in list order. The slice is a copy; the tasks are not.
func (m *Manager) Tasks() []*Task {
	out := make([]*Task, len(m.tasks))
	copy(out, m.tasks)
	return out
}

// FindByTitle returns tasks whose title contains keyword, ignoring case.
func (m *Manager) FindByTitle(keyword string) []*Task {
	return m.filter(func(t *Task) bool { return t.ContainsKeyword(keyword) })
}

// FindByTag returns tasks tagged with exactly keyword.
func (m *Manager) FindByTag(keyword string) []*Task {
	return m.filter(func(t *Task) bool { return t.HasTag(keyword) })
}

func (m *Manager) filter(match func(*Task) bool) []*Task {
	found := make([]*Task, 0)
	for _, t := range m.tasks {
		if match(t) {
			found = append(found, t)
		}
	}
	return found
}

func (m *Manager) checkIndex(i int) error {
	if i < 0 || i >= len(m.tasks) {
		return fmt.Errorf("%w: %d not in [0, %d)", ErrIndexOutOfRange, i, len(m.tasks))
	}
	return nil
}
