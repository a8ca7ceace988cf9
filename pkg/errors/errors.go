package errors

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidID          = errors.New("invalid document id")
	ErrDuplicateID        = errors.New("document already exists")
	ErrInvalidText        = errors.New("invalid document text")
	ErrNotFound           = errors.New("document not found")
	ErrEmptyQueryWord     = errors.New("empty query word")
	ErrMissingMinusTarget = errors.New("missing word after minus")
	ErrDoubleMinus        = errors.New("double minus in query word")
	ErrInvalidQueryWord   = errors.New("invalid query word")
	ErrInvalidStopWord    = errors.New("invalid stop word")
	ErrInvalidPageSize    = errors.New("invalid page size")
	ErrInvalidConfig      = errors.New("invalid configuration")
)

// Exit codes returned by the CLI for each error family.
const (
	ExitOK       = 0
	ExitInternal = 1
	ExitUsage    = 2
	ExitNotFound = 3
	ExitConflict = 4
)

type AppError struct {
	Err     error
	Message string
}

func (e *AppError) Error() string {
	return fmt.Sprintf("%s: %s", e.Err.Error(), e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(sentinel error, message string) *AppError {
	return &AppError{
		Err:     sentinel,
		Message: message,
	}
}

func Newf(sentinel error, format string, args ...any) *AppError {
	return &AppError{
		Err:     sentinel,
		Message: fmt.Sprintf(format, args...),
	}
}

// IsQueryError reports whether err belongs to the query-parse family.
func IsQueryError(err error) bool {
	return errors.Is(err, ErrEmptyQueryWord) ||
		errors.Is(err, ErrMissingMinusTarget) ||
		errors.Is(err, ErrDoubleMinus) ||
		errors.Is(err, ErrInvalidQueryWord)
}

func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	switch {
	case errors.Is(err, ErrNotFound):
		return ExitNotFound
	case errors.Is(err, ErrDuplicateID):
		return ExitConflict
	case errors.Is(err, ErrInvalidID),
		errors.Is(err, ErrInvalidText),
		errors.Is(err, ErrInvalidStopWord),
		errors.Is(err, ErrInvalidPageSize),
		errors.Is(err, ErrInvalidConfig),
		IsQueryError(err):
		return ExitUsage
	default:
		return ExitInternal
	}
}
