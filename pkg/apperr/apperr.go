// Package apperr carries the error taxonomy the service layer reports:
// NotFound, Conflict, Validation and Unexpected. Controllers map kinds to
// HTTP statuses; services never return raw storage errors to callers.
package apperr

import (
	"errors"
	"fmt"
)

type Kind int

const (
	KindUnexpected Kind = iota
	KindNotFound
	KindConflict
	KindValidation
)

type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unexpected error"
}

func (e *Error) Unwrap() error { return e.Err }

func NotFound(format string, args ...any) error {
	return &Error{Kind: KindNotFound, Msg: fmt.Sprintf(format, args...)}
}

func Conflict(format string, args ...any) error {
	return &Error{Kind: KindConflict, Msg: fmt.Sprintf(format, args...)}
}

func Validation(format string, args ...any) error {
	return &Error{Kind: KindValidation, Msg: fmt.Sprintf(format, args...)}
}

// Unexpected wraps an infrastructure failure. The original error stays
// reachable through Unwrap for logging; the message shown to clients is
// sanitized at the HTTP boundary.
func Unexpected(err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: KindUnexpected, Err: err}
}

// KindOf classifies any error; non-apperr errors count as unexpected.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnexpected
}

func IsNotFound(err error) bool   { return KindOf(err) == KindNotFound }
func IsConflict(err error) bool   { return KindOf(err) == KindConflict }
func IsValidation(err error) bool { return KindOf(err) == KindValidation }
