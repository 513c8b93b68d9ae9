package apperr

import (
	"errors"
	"fmt"

	goerrors "github.com/go-errors/errors"
)

type Kind string

const (
	KindValidation    Kind = "VALIDATION"
	KindNotFound      Kind = "NOT_FOUND"
	KindOutOfRange    Kind = "OUT_OF_RANGE"
	KindMalformedJSON Kind = "MALFORMED_JSON"
	KindSchema        Kind = "SCHEMA"
	KindInternal      Kind = "INTERNAL"
)

// Sentinels for errors.Is checks. A *Error matches the sentinel of its kind.
var (
	ErrValidation    = &Error{Kind: KindValidation}
	ErrNotFound      = &Error{Kind: KindNotFound}
	ErrOutOfRange    = &Error{Kind: KindOutOfRange}
	ErrMalformedJSON = &Error{Kind: KindMalformedJSON}
	ErrSchema        = &Error{Kind: KindSchema}
	ErrInternal      = &Error{Kind: KindInternal}
)

type Error struct {
	Kind    Kind
	Message string
	Err     error
	Stack   []byte
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports kind equality so wrapped errors match the package sentinels.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

func (e *Error) StackTrace() []byte {
	return e.Stack
}

func New(kind Kind, message string, err error) *Error {
	var stack []byte
	if err != nil {
		if stackErr, ok := err.(*goerrors.Error); ok {
			stack = stackErr.Stack()
		} else {
			stack = goerrors.Wrap(err, 2).Stack()
		}
	} else {
		stack = goerrors.New(message).Stack()
	}

	return &Error{
		Kind:    kind,
		Message: message,
		Err:     err,
		Stack:   stack,
	}
}

func Validation(message string) *Error {
	return New(KindValidation, message, nil)
}

func NotFound(message string) *Error {
	return New(KindNotFound, message, nil)
}

func OutOfRange(message string) *Error {
	return New(KindOutOfRange, message, nil)
}

func MalformedJSON(message string, err error) *Error {
	return New(KindMalformedJSON, message, err)
}

func Schema(message string, err error) *Error {
	return New(KindSchema, message, err)
}

func Internal(message string, err error) *Error {
	return New(KindInternal, message, err)
}

// KindOf returns the kind of the first *Error in err's chain, or
// KindInternal when there is none.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// MessageOf returns the user-facing message of err.
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		if e.Err != nil && (e.Kind == KindMalformedJSON || e.Kind == KindSchema) {
			return e.Message + ": " + e.Err.Error()
		}
		return e.Message
	}
	return err.Error()
}
