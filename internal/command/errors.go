package command

import (
	"errors"

	"github.com/nibzard/momo-go/internal/storage"
)

var (
	// ErrInvalidCommand is returned for a blank or unknown keyword.
	ErrInvalidCommand = errors.New("invalid command")

	// ErrInvalidArgument is the kind of every *ArgumentError.
	ErrInvalidArgument = errors.New("invalid argument")
)

// ArgumentError reports a recognized command with malformed, missing or
// out-of-range arguments. Usage shows the expected form.
type ArgumentError struct {
	Usage string
}

func (e *ArgumentError) Error() string {
	return "invalid argument, expected: " + e.Usage
}

// Unwrap returns ErrInvalidArgument.
func (e *ArgumentError) Unwrap() error {
	return ErrInvalidArgument
}

func argError(usage string) error {
	return &ArgumentError{Usage: usage}
}

// IsFatal reports whether err is a storage failure. The session must end
// after such an error is reported; every other error is recoverable.
func IsFatal(err error) bool {
	var storeErr *storage.Error
	return errors.As(err, &storeErr)
}
