package storage

import (
	"errors"
	"fmt"
)

// ErrCorruptRecord marks a stored line that cannot be decoded.
var ErrCorruptRecord = errors.New("corrupted record")

// Error is a storage failure: the task file could not be created, read or
// written, or it holds a corrupt record. Storage errors are not recoverable.
type Error struct {
	Op   string // "create", "load" or "save"
	Path string // task file path
	Line int    // 1-based line number for corrupt records, 0 otherwise
	Err  error  // underlying error
}

func (e *Error) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("storage %s %s:%d: %v", e.Op, e.Path, e.Line, e.Err)
	}
	return fmt.Sprintf("storage %s %s: %v", e.Op, e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// RecordError describes why a single record failed to decode.
type RecordError struct {
	Record string
	Reason string
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("%s: %s: %q", ErrCorruptRecord, e.Reason, e.Record)
}

// Unwrap returns ErrCorruptRecord.
func (e *RecordError) Unwrap() error {
	return ErrCorruptRecord
}

func corrupt(record, reason string) error {
	return &RecordError{Record: record, Reason: reason}
}
