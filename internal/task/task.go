package task

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/nibzard/momo-go/internal/datetime"
)

// Kind selects the task variant.
type Kind int

const (
	KindTodo Kind = iota
	KindDeadline
	KindEvent
)

func (k Kind) String() string {
	switch k {
	case KindTodo:
		return "todo"
	case KindDeadline:
		return "deadline"
	case KindEvent:
		return "event"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Task is a tagged union over the todo, deadline and event variants.
// The title is fixed at construction. Due is only meaningful for deadlines,
// Start and End only for events.
type Task struct {
	kind     Kind
	title    string
	complete bool
	tags     map[string]struct{}
	due      time.Time
	start    time.Time
	end      time.Time
}

// NewTodo creates a task without dates.
func NewTodo(title string) *Task {
	return newTask(KindTodo, title)
}

// NewDeadline creates a task due at the given time.
func NewDeadline(title string, due time.Time) *Task {
	t := newTask(KindDeadline, title)
	t.due = due
	return t
}

// NewEvent creates a task spanning start to end. Callers that accept user
// input are expected to have rejected end < start already.
func NewEvent(title string, start, end time.Time) *Task {
	t := newTask(KindEvent, title)
	t.start = start
	t.end = end
	return t
}

func newTask(kind Kind, title string) *Task {
	return &Task{
		kind:  kind,
		title: strings.TrimSpace(title),
		tags:  make(map[string]struct{}),
	}
}

// Kind returns the task variant.
func (t *Task) Kind() Kind { return t.kind }

// Title returns the task title.
func (t *Task) Title() string { return t.title }

// IsComplete reports whether the task is marked done.
func (t *Task) IsComplete() bool { return t.complete }

// Due returns the deadline of a KindDeadline task.
func (t *Task) Due() time.Time { return t.due }

// Start returns the start of a KindEvent task.
func (t *Task) Start() time.Time { return t.start }

// End returns the end of a KindEvent task.
func (t *Task) End() time.Time { return t.end }

func (t *Task) SetComplete() { t.complete = true }
func (t *Task) SetIncomplete() { t.complete = false }

// TagCount returns the number of tags.
func (t *Task) TagCount() int { return len(t.tags) }

// HasTag reports whether tag is in the set. The match is exact.
func (t *Task) HasTag(tag string) bool {
	_, ok := t.tags[tag]
	return ok
}

// AddTag adds tag to the set. Blank tags are ignored. It returns false if
// the tag was blank or already present.
func (t *Task) AddTag(tag string) bool {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return false
	}
	if _, ok := t.tags[tag]; ok {
		return false
	}
	t.tags[tag] = struct{}{}
	return true
}

// RemoveTag removes tag from the set. Removing an absent tag is a no-op
// that returns false.
func (t *Task) RemoveTag(tag string) bool {
	tag = strings.TrimSpace(tag)
	if _, ok := t.tags[tag]; !ok {
		return false
	}
	delete(t.tags, tag)
	return true
}

// Tags returns the tag set sorted lexicographically.
func (t *Task) Tags() []string {
	tags := make([]string, 0, len(t.tags))
	for tag := range t.tags {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

// ContainsKeyword reports whether the title contains keyword, ignoring case.
func (t *Task) ContainsKeyword(keyword string) bool {
	return strings.Contains(strings.ToLower(t.title), strings.ToLower(keyword))
}

// Equal reports whether two tasks have the same variant, status, title,
// tag set and dates.
func (t *Task) Equal(other *Task) bool {
	if t == nil || other == nil {
		return t == other
	}
	if t.kind != other.kind || t.title != other.title || t.complete != other.complete {
		return false
	}
	if len(t.tags) != len(other.tags) {
		return false
	}
	for tag := range t.tags {
		if !other.HasTag(tag) {
			return false
		}
	}
	switch t.kind {
	case KindDeadline:
		return t.due.Equal(other.due)
	case KindEvent:
		return t.start.Equal(other.start) && t.end.Equal(other.end)
	}
	return true
}

// String renders the task for display, e.g.
//
//	[D][X] submit report (by: Feb 01 2026 09:30) #work
func (t *Task) String() string {
	var b strings.Builder
	b.WriteString("[")
	b.WriteString(t.marker())
	b.WriteString("][")
	if t.complete {
		b.WriteString("X")
	} else {
		b.WriteString(" ")
	}
	b.WriteString("] ")
	b.WriteString(t.title)

	switch t.kind {
	case KindDeadline:
		fmt.Fprintf(&b, " (by: %s)", datetime.Format(t.due))
	case KindEvent:
		fmt.Fprintf(&b, " (from: %s to: %s)", datetime.Format(t.start), datetime.Format(t.end))
	}

	for _, tag := range t.Tags() {
		b.WriteString(" #")
		b.WriteString(tag)
	}
	return b.String()
}

func (t *Task) marker() string {
	switch t.kind {
	case KindDeadline:
		return "D"
	case KindEvent:
		return "E"
	default:
		return "T"
	}
}
