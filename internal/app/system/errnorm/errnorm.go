// Package errnorm turns store, auth and upload failures into the short,
// user-facing messages shown in the UI.
package errnorm

import (
	"errors"
	"strings"

	"github.com/jawahirullah/portal/internal/app/system/docstore"
)

// Fixed messages for the coded failures.
const (
	MsgPermissionDenied = "You do not have permission to perform this action."
	MsgNotFound         = "The requested resource was not found."
	MsgAlreadyExists    = "The resource already exists."
	MsgUnavailable      = "The service is currently unavailable. Please try again later."
	MsgUnexpected       = "An unexpected error occurred."
)

// Coded is implemented by errors that carry a machine-readable code from
// some backend other than the document store (auth, uploads).
type Coded interface {
	error
	ErrorCode() string
}

// Message returns the user-facing text for err. Nil yields "".
//
// Coded failures map to the fixed messages above. Anything else passes its
// own message through, or MsgUnexpected when that message is empty.
func Message(err error) string {
	if err == nil {
		return ""
	}

	code := ""
	var de *docstore.Error
	var ce Coded
	switch {
	case errors.As(err, &de):
		code = string(de.Code)
	case errors.As(err, &ce):
		code = ce.ErrorCode()
	}

	switch code {
	case string(docstore.CodePermissionDenied):
		return MsgPermissionDenied
	case string(docstore.CodeNotFound):
		return MsgNotFound
	case string(docstore.CodeAlreadyExists):
		return MsgAlreadyExists
	case string(docstore.CodeUnavailable):
		return MsgUnavailable
	}

	if de != nil && de.Msg != "" {
		return de.Msg
	}
	if msg := strings.TrimSpace(err.Error()); msg != "" {
		return msg
	}
	return MsgUnexpected
}
