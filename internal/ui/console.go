// Package ui provides the line console and the terminal UI front ends.
package ui

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/nibzard/momo-go/internal/command"
	"github.com/nibzard/momo-go/internal/datetime"
	"github.com/nibzard/momo-go/internal/task"
)

// DefaultPrompt is shown before each input line.
const DefaultPrompt = ">> "

const divider = "=============================="

const logo = " /\\_/\\\n( o.o )\n > ^ <"

// Handler runs one input line. It reports whether the session should end.
// *command.Executor implements it.
type Handler interface {
	Handle(line string) (bool, error)
}

// Console writes command results as plain text. It implements
// command.Display.
type Console struct {
	w      io.Writer
	prompt string
	framed bool
}

// ConsoleOption configures a Console.
type ConsoleOption func(*Console)

// WithPrompt sets the input prompt.
func WithPrompt(prompt string) ConsoleOption {
	return func(c *Console) {
		c.prompt = prompt
	}
}

// WithFrame toggles the divider lines around each response.
func WithFrame(enabled bool) ConsoleOption {
	return func(c *Console) {
		c.framed = enabled
	}
}

// NewConsole returns a console writing to w.
func NewConsole(w io.Writer, opts ...ConsoleOption) *Console {
	c := &Console{w: w, prompt: DefaultPrompt, framed: true}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var _ command.Display = (*Console)(nil)

func (c *Console) block(lines ...string) {
	if c.framed {
		fmt.Fprintln(c.w, divider)
	}
	for _, line := range lines {
		fmt.Fprintln(c.w, line)
	}
	if c.framed {
		fmt.Fprintln(c.w, divider)
	}
}

// ShowWelcome prints the greeting.
func (c *Console) ShowWelcome() {
	fmt.Fprintln(c.w, logo)
	fmt.Fprintln(c.w, "Squeak! I'm Momo")
	fmt.Fprintln(c.w, "What can I do for you?")
}

// ShowGoodbye prints the farewell.
func (c *Console) ShowGoodbye() {
	fmt.Fprintln(c.w, logo)
	fmt.Fprintln(c.w, "Bye ^-^ . Let's play again another time!")
}

func (c *Console) ShowTaskList(tasks []*task.Task) {
	if len(tasks) == 0 {
		c.block("Your list is empty. Add something with todo, deadline or event.")
		return
	}
	c.block(numbered("Here are the tasks in your list:", tasks)...)
}

func (c *Console) ShowAdded(t *task.Task, size int) {
	c.block("Got it! I've added this task:", "  "+t.String(), countLine(size))
}

func (c *Console) ShowMarked(t *task.Task) {
	c.block("Yippee! I've marked this task as done:", "  "+t.String())
}

func (c *Console) ShowUnmarked(t *task.Task) {
	c.block("Ok, I've marked this task as not done yet:", "  "+t.String())
}

func (c *Console) ShowDeleted(t *task.Task, size int) {
	c.block("Ok, I've removed this task:", "  "+t.String(), countLine(size))
}

func (c *Console) ShowMatches(found []*task.Task) {
	if len(found) == 0 {
		c.block("No matching task found.")
		return
	}
	c.block(numbered("Here are the matching tasks in your list:", found)...)
}

func (c *Console) ShowTagAdded(t *task.Task) {
	c.block("I have added the tag:", "  "+t.String())
}

func (c *Console) ShowTagRemoved(t *task.Task) {
	c.block("I have removed the tag:", "  "+t.String())
}

// ShowError prints a recoverable error.
func (c *Console) ShowError(err error) {
	c.block(ErrorMessage(err))
}

// ShowFatal prints a storage error before the session ends.
func (c *Console) ShowFatal(err error) {
	c.block(ErrorMessage(err), "WAAAAA WHAT'S HAPPENING???!!! I have to stop now.")
}

// Run reads one command per line from in until bye, end of input, a
// storage error or ctx cancellation. Recoverable errors are reported and
// the loop continues. A storage error is reported and returned.
func (c *Console) Run(ctx context.Context, in io.Reader, h Handler) error {
	c.ShowWelcome()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	lines := make(chan string)
	readErr := make(chan error, 1)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		readErr <- scanner.Err()
	}()

	for {
		fmt.Fprint(c.w, "\n"+c.prompt)

		var line string
		select {
		case <-ctx.Done():
			fmt.Fprintln(c.w)
			return ctx.Err()
		case l, ok := <-lines:
			if !ok {
				fmt.Fprintln(c.w)
				select {
				case err := <-readErr:
					if err != nil {
						return fmt.Errorf("read input: %w", err)
					}
				default:
				}
				return nil
			}
			line = l
		}

		exit, err := h.Handle(line)
		if err != nil {
			if command.IsFatal(err) {
				c.ShowFatal(err)
				return err
			}
			c.ShowError(err)
			continue
		}
		if exit {
			return nil
		}
	}
}

// ErrorMessage turns an error into the text shown to the user.
func ErrorMessage(err error) string {
	var argErr *command.ArgumentError
	switch {
	case errors.Is(err, command.ErrInvalidCommand):
		return "Sorry >.< but Momo doesn't understand. Would you say that again?"
	case errors.As(err, &argErr):
		return "Eeek >.<! Did you mean: " + argErr.Usage
	case errors.Is(err, datetime.ErrInvalidDateTime):
		return "Eeek >.<! Dates look like yyyy-MM-dd or yyyy-MM-dd HHmm, e.g. 2026-02-01 0930"
	default:
		return err.Error()
	}
}

func numbered(header string, tasks []*task.Task) []string {
	lines := make([]string, 0, len(tasks)+1)
	lines = append(lines, header)
	for i, t := range tasks {
		lines = append(lines, fmt.Sprintf("%d.%s", i+1, t))
	}
	return lines
}

func countLine(size int) string {
	if size == 1 {
		return "Now you have 1 task in the list."
	}
	return fmt.Sprintf("Now you have %d tasks in the list.", size)
}

// IsTTY reports whether w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}

// splitLines splits console output into display lines, dropping the
// empty element left by a trailing newline.
func splitLines(s string) []string {
	s = strings.TrimSuffix(s, "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}
