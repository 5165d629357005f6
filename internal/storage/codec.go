package storage

import (
	"strconv"
	"strings"

	"github.com/nibzard/momo-go/internal/datetime"
	"github.com/nibzard/momo-go/internal/task"
	"github.com/nibzard/momo-go/internal/utils"
)

// Record layout, one task per line:
//
//	T|<0|1>|<title>|<tags>
//	D|<0|1>|<title>|<tags>|<due>
//	E|<0|1>|<title>|<tags>|<start>|<end>
//
// Tags are sorted and joined with ", ". Title and tags are escaped so that
// they never contain a raw field or list separator.
const (
	fieldSep = "|"
	tagSep   = ", "

	markerTodo     = "T"
	markerDeadline = "D"
	markerEvent    = "E"
)

var (
	escaper = strings.NewReplacer(
		`%`, "%25",
		`\`, "%5C",
		`|`, "%7C",
		`,`, "%2C",
	)
	// Replacer matches in a single left-to-right pass, so decoding never
	// re-reads text it has already produced.
	unescaper = strings.NewReplacer(
		"%25", `%`,
		"%5C", `\`,
		"%7C", `|`,
		"%2C", `,`,
	)
)

func escape(s string) string { return escaper.Replace(s) }
func unescape(s string) string { return unescaper.Replace(s) }

// Encode converts a task to its one-line record.
func Encode(t *task.Task) string {
	var b strings.Builder
	switch t.Kind() {
	case task.KindDeadline:
		b.WriteString(markerDeadline)
	case task.KindEvent:
		b.WriteString(markerEvent)
	default:
		b.WriteString(markerTodo)
	}

	b.WriteString(fieldSep)
	if t.IsComplete() {
		b.WriteString("1")
	} else {
		b.WriteString("0")
	}

	b.WriteString(fieldSep)
	b.WriteString(escape(t.Title()))

	b.WriteString(fieldSep)
	tags := t.Tags()
	for i, tag := range tags {
		if i > 0 {
			b.WriteString(tagSep)
		}
		b.WriteString(escape(tag))
	}

	switch t.Kind() {
	case task.KindDeadline:
		b.WriteString(fieldSep)
		b.WriteString(datetime.FormatISO(t.Due()))
	case task.KindEvent:
		b.WriteString(fieldSep)
		b.WriteString(datetime.FormatISO(t.Start()))
		b.WriteString(fieldSep)
		b.WriteString(datetime.FormatISO(t.End()))
	}

	return b.String()
}

// Decode reconstructs a task from a record. Any malformed field yields a
// *RecordError wrapping ErrCorruptRecord.
func Decode(line string) (*task.Task, error) {
	fields := strings.Split(line, fieldSep)
	if len(fields) < 4 {
		return nil, corrupt(line, "expected at least 4 fields")
	}

	status, err := strconv.Atoi(fields[1])
	if err != nil || (status != 0 && status != 1) {
		return nil, corrupt(line, "status must be 0 or 1")
	}

	title := unescape(fields[2])
	if strings.TrimSpace(title) == "" {
		return nil, corrupt(line, "empty title")
	}

	var t *task.Task
	switch fields[0] {
	case markerTodo:
		t = task.NewTodo(title)
	case markerDeadline:
		if len(fields) < 5 {
			return nil, corrupt(line, "deadline without due date")
		}
		due, err := datetime.ParseISO(fields[4])
		if err != nil {
			return nil, corrupt(line, "invalid due date")
		}
		t = task.NewDeadline(title, due)
	case markerEvent:
		if len(fields) < 6 {
			return nil, corrupt(line, "event without start and end dates")
		}
		start, err := datetime.ParseISO(fields[4])
		if err != nil {
			return nil, corrupt(line, "invalid start date")
		}
		end, err := datetime.ParseISO(fields[5])
		if err != nil {
			return nil, corrupt(line, "invalid end date")
		}
		t = task.NewEvent(title, start, end)
	default:
		return nil, corrupt(line, "unknown task type")
	}

	if status == 1 {
		t.SetComplete()
	}
	for _, tag := range utils.SplitAndTrim(fields[3], tagSep) {
		t.AddTag(unescape(tag))
	}
	return t, nil
}
