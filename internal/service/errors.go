package service

import "fmt"

type ErrorCode string

const (
	ErrorInvalidInput ErrorCode = "INVALID_INPUT"
	ErrorNotFound     ErrorCode = "NOT_FOUND"
	ErrorInternal     ErrorCode = "INTERNAL_ERROR"
)

// Error carries a code the HTTP layer maps to a status and a message safe
// to surface to the caller.
type Error struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("service: %s: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("service: %s: %s: %v", e.Code, e.Message, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func invalidInput(msg string) *Error {
	return &Error{Code: ErrorInvalidInput, Message: msg}
}

func notFound(msg string) *Error {
	return &Error{Code: ErrorNotFound, Message: msg}
}

func internal(msg string, err error) *Error {
	return &Error{Code: ErrorInternal, Message: msg, Err: err}
}
