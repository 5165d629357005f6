package command

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/nibzard/momo-go/internal/logging"
	"github.com/nibzard/momo-go/internal/task"
)

// Display renders the outcome of executed commands.
type Display interface {
	ShowTaskList(tasks []*task.Task)
	ShowAdded(t *task.Task, size int)
	ShowMarked(t *task.Task)
	ShowUnmarked(t *task.Task)
	ShowDeleted(t *task.Task, size int)
	ShowMatches(found []*task.Task)
	ShowTagAdded(t *task.Task)
	ShowTagRemoved(t *task.Task)
	ShowGoodbye()
}

// Executor runs commands against a manager and reports results to a Display.
type Executor struct {
	manager *task.Manager
	display Display
	logger  *log.Logger
}

// NewExecutor returns an executor. A nil logger discards output.
func NewExecutor(manager *task.Manager, display Display, logger *log.Logger) *Executor {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Executor{manager: manager, display: display, logger: logger}
}

// Handle parses line and executes the result. It reports whether the
// session should end.
func (e *Executor) Handle(line string) (bool, error) {
	cmd, err := Parse(line)
	if err != nil {
		e.logger.Debug("parse failed", "input", line, "err", err)
		return false, err
	}
	exit, err := e.Execute(cmd)
	if err != nil {
		if IsFatal(err) {
			e.logger.Error("storage failure", "err", err)
		} else {
			e.logger.Debug("command failed", "input", line, "err", err)
		}
	}
	return exit, err
}

// Execute applies cmd. It reports whether the session should end.
func (e *Executor) Execute(cmd Command) (bool, error) {
	switch c := cmd.(type) {
	case List:
		e.display.ShowTaskList(e.manager.Tasks())
	case Exit:
		e.display.ShowGoodbye()
		return true, nil
	case Mark:
		t, err := e.get(c.Index, "mark", "")
		if err != nil {
			return false, err
		}
		t.SetComplete()
		if err := e.manager.Save(); err != nil {
			return false, err
		}
		e.display.ShowMarked(t)
	case Unmark:
		t, err := e.get(c.Index, "unmark", "")
		if err != nil {
			return false, err
		}
		t.SetIncomplete()
		if err := e.manager.Save(); err != nil {
			return false, err
		}
		e.display.ShowUnmarked(t)
	case Delete:
		if err := e.checkIndex(c.Index, "delete", ""); err != nil {
			return false, err
		}
		t, err := e.manager.RemoveAt(c.Index)
		if err != nil {
			return false, err
		}
		e.display.ShowDeleted(t, e.manager.Size())
	case Todo:
		return false, e.add(task.NewTodo(c.Title))
	case Deadline:
		return false, e.add(task.NewDeadline(c.Title, c.Due))
	case Event:
		if c.End.Before(c.Start) {
			return false, argError("event <task> /from <start> /to <end not before start>")
		}
		return false, e.add(task.NewEvent(c.Title, c.Start, c.End))
	case Find:
		if c.IsTag {
			e.display.ShowMatches(e.manager.FindByTag(c.Keyword))
		} else {
			e.display.ShowMatches(e.manager.FindByTitle(c.Keyword))
		}
	case Tag:
		t, err := e.get(c.Index, "tag", c.Tag)
		if err != nil {
			return false, err
		}
		t.AddTag(c.Tag)
		if err := e.manager.Save(); err != nil {
			return false, err
		}
		e.display.ShowTagAdded(t)
	case Untag:
		t, err := e.get(c.Index, "untag", c.Tag)
		if err != nil {
			return false, err
		}
		t.RemoveTag(c.Tag)
		if err := e.manager.Save(); err != nil {
			return false, err
		}
		e.display.ShowTagRemoved(t)
	default:
		return false, fmt.Errorf("%w: %T", ErrInvalidCommand, cmd)
	}
	return false, nil
}

func (e *Executor) add(t *task.Task) error {
	if err := e.manager.Add(t); err != nil {
		return err
	}
	e.display.ShowAdded(t, e.manager.Size())
	return nil
}

// get returns the task at i, or an *ArgumentError naming the valid range.
func (e *Executor) get(i int, keyword, arg string) (*task.Task, error) {
	if err := e.checkIndex(i, keyword, arg); err != nil {
		return nil, err
	}
	return e.manager.Get(i)
}

func (e *Executor) checkIndex(i int, keyword, arg string) error {
	if i < 0 || i >= e.manager.Size() {
		return argError(rangeUsage(keyword, e.manager.Size(), arg))
	}
	return nil
}

// rangeUsage formats e.g. "tag <1-3> urgent".
func rangeUsage(keyword string, size int, arg string) string {
	usage := fmt.Sprintf("%s <1-%d>", keyword, size)
	if arg != "" {
		usage += " " + arg
	}
	return usage
}
