package command

import (
	"strconv"
	"strings"

	"github.com/nibzard/momo-go/internal/datetime"
)

const (
	byDelim   = " /by "
	fromDelim = " /from "
	toDelim   = " /to "
)

const (
	usageList     = "list"
	usageBye      = "bye"
	usageTodo     = "todo <task>"
	usageDeadline = "deadline <task> /by <date>"
	usageEvent    = "event <task> /from <start_date/time> /to <end_date/time>"
	usageFind     = "find <keyword>"
	usageFindTag  = "find #<tag>"
)

// Parse converts one raw input line into a Command.
//
// Errors are ErrInvalidCommand for a blank or unknown keyword, an
// *ArgumentError for malformed arguments, and an error wrapping
// datetime.ErrInvalidDateTime for unparseable dates.
func Parse(raw string) (Command, error) {
	line := strings.TrimSpace(raw)
	if line == "" {
		return nil, ErrInvalidCommand
	}

	tokens := strings.Fields(line)
	keyword := strings.ToLower(tokens[0])
	// Everything after the keyword token, untrimmed.
	rest := line[len(tokens[0]):]

	switch keyword {
	case "list":
		if len(tokens) != 1 {
			return nil, argError(usageList)
		}
		return List{}, nil
	case "bye":
		if len(tokens) != 1 {
			return nil, argError(usageBye)
		}
		return Exit{}, nil
	case "mark":
		i, err := parseIndex(tokens, "mark <int>")
		if err != nil {
			return nil, err
		}
		return Mark{Index: i}, nil
	case "unmark":
		i, err := parseIndex(tokens, "unmark <int>")
		if err != nil {
			return nil, err
		}
		return Unmark{Index: i}, nil
	case "delete":
		i, err := parseIndex(tokens, "delete <int>")
		if err != nil {
			return nil, err
		}
		return Delete{Index: i}, nil
	case "todo":
		return parseTodo(tokens, rest)
	case "deadline":
		return parseDeadline(line, tokens[0])
	case "event":
		return parseEvent(line, tokens[0])
	case "find":
		return parseFind(tokens, rest)
	case "tag":
		i, tag, err := parseIndexedTag(tokens, "tag <int> <tag>")
		if err != nil {
			return nil, err
		}
		return Tag{Index: i, Tag: tag}, nil
	case "untag":
		i, tag, err := parseIndexedTag(tokens, "untag <int> <tag>")
		if err != nil {
			return nil, err
		}
		return Untag{Index: i, Tag: tag}, nil
	default:
		return nil, ErrInvalidCommand
	}
}

// parseIndex reads "<keyword> <n>" and returns n as a zero-based index.
func parseIndex(tokens []string, usage string) (int, error) {
	if len(tokens) != 2 {
		return 0, argError(usage)
	}
	n, err := strconv.Atoi(tokens[1])
	if err != nil {
		return 0, argError(usage)
	}
	return n - 1, nil
}

func parseIndexedTag(tokens []string, usage string) (int, string, error) {
	if len(tokens) != 3 {
		return 0, "", argError(usage)
	}
	n, err := strconv.Atoi(tokens[1])
	if err != nil {
		return 0, "", argError(usage)
	}
	tag := strings.TrimSpace(tokens[2])
	if tag == "" {
		return 0, "", argError(usage)
	}
	return n - 1, tag, nil
}

func parseTodo(tokens []string, rest string) (Command, error) {
	if len(tokens) < 2 {
		return nil, argError(usageTodo)
	}
	title := strings.TrimSpace(rest)
	if title == "" {
		return nil, argError(usageTodo)
	}
	return Todo{Title: title}, nil
}

func parseDeadline(line, keyword string) (Command, error) {
	left, dateText, ok := strings.Cut(line, byDelim)
	if !ok {
		return nil, argError(usageDeadline)
	}
	title := strings.TrimSpace(left[len(keyword):])
	dateText = strings.TrimSpace(dateText)
	if title == "" || dateText == "" {
		return nil, argError(usageDeadline)
	}

	due, err := datetime.Parse(dateText)
	if err != nil {
		return nil, err
	}
	return Deadline{Title: title, Due: due}, nil
}

func parseEvent(line, keyword string) (Command, error) {
	if !strings.Contains(line, fromDelim) || !strings.Contains(line, toDelim) {
		return nil, argError(usageEvent)
	}
	left, rest, _ := strings.Cut(line, fromDelim)
	startText, endText, ok := strings.Cut(strings.TrimSpace(rest), toDelim)
	if !ok {
		return nil, argError(usageEvent)
	}

	title := strings.TrimSpace(left[len(keyword):])
	startText = strings.TrimSpace(startText)
	endText = strings.TrimSpace(endText)
	if title == "" || startText == "" || endText == "" {
		return nil, argError(usageEvent)
	}

	start, err := datetime.Parse(startText)
	if err != nil {
		return nil, err
	}
	end, err := datetime.Parse(endText)
	if err != nil {
		return nil, err
	}
	return Event{Title: title, Start: start, End: end}, nil
}

func parseFind(tokens []string, rest string) (Command, error) {
	if len(tokens) < 2 {
		return nil, argError(usageFind)
	}
	keyword := strings.TrimSpace(rest)
	if tag, ok := strings.CutPrefix(keyword, "#"); ok {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			return nil, argError(usageFindTag)
		}
		return Find{Keyword: tag, IsTag: true}, nil
	}
	return Find{Keyword: keyword}, nil
}
