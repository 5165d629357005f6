// Package command parses input lines into typed commands and executes them
// against a task.Manager.
//
// Indices are supplied 1-based by the user and stored 0-based in the
// command values. Range checks against the current list happen at
// execution time, not while parsing.
package command

import "time"

// Command is one parsed user request. The set of implementations is closed.
type Command interface {
	command()
}

// List shows every task.
type List struct{}

// Exit ends the session.
type Exit struct{}

// Mark sets the task at Index complete.
type Mark struct {
	Index int
}

// Unmark sets the task at Index incomplete.
type Unmark struct {
	Index int
}

// Delete removes the task at Index.
type Delete struct {
	Index int
}

// Todo adds a plain task.
type Todo struct {
	Title string
}

// Deadline adds a task due at Due.
type Deadline struct {
	Title string
	Due   time.Time
}

// Event adds a task spanning Start to End.
type Event struct {
	Title string
	Start time.Time
	End   time.Time
}

// Find searches titles, or tags when IsTag is set.
type Find struct {
	Keyword string
	IsTag   bool
}

// Tag adds Tag to the task at Index.
type Tag struct {
	Index int
	Tag   string
}

// Untag removes Tag from the task at Index.
type Untag struct {
	Index int
	Tag   string
}

func (List) command()     {}
func (Exit) command()     {}
func (Mark) command()     {}
func (Unmark) command()   {}
func (Delete) command()   {}
func (Todo) command()     {}
func (Deadline) command() {}
func (Event) command()    {}
func (Find) command()     {}
func (Tag) command()      {}
func (Untag) command()    {}
