package docstore

import (
	"errors"
	"fmt"
)

// Code classifies a store failure.
type Code string

const (
	CodePermissionDenied Code = "permission-denied"
	CodeNotFound         Code = "not-found"
	CodeAlreadyExists    Code = "already-exists"
	CodeUnavailable      Code = "unavailable"
	CodeInvalidArgument  Code = "invalid-argument"
	CodeUnknown          Code = "unknown"
)

// Error is a coded store failure. Msg is the store's own description.
type Error struct {
	Code Code
	Op   string
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	switch {
	case e.Msg != "" && e.Op != "":
		return fmt.Sprintf("%s: %s", e.Op, e.Msg)
	case e.Msg != "":
		return e.Msg
	case e.Err != nil && e.Op != "":
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	case e.Err != nil:
		return e.Err.Error()
	}
	return string(e.Code)
}

func (e *Error) Unwrap() error { return e.Err }

// NewError builds a coded error.
func NewError(code Code, op, msg string) *Error {
	return &Error{Code: code, Op: op, Msg: msg}
}

// Wrap builds a coded error around a cause.
func Wrap(code Code, op string, err error) *Error {
	return &Error{Code: code, Op: op, Err: err}
}

// CodeOf returns the code carried by err, or CodeUnknown.
func CodeOf(err error) Code {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return CodeUnknown
}

// IsNotFound reports whether err is a not-found store error.
func IsNotFound(err error) bool { return CodeOf(err) == CodeNotFound }
