package errnorm_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jawahirullah/portal/internal/app/system/docstore"
	"github.com/jawahirullah/portal/internal/app/system/errnorm"
)

type codedErr struct{ code, msg string }

func (e codedErr) Error() string     { return e.msg }
func (e codedErr) ErrorCode() string { return e.code }

func TestMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"permission", docstore.NewError(docstore.CodePermissionDenied, "list", "denied"), errnorm.MsgPermissionDenied},
		{"not found", docstore.NewError(docstore.CodeNotFound, "update", "gone"), errnorm.MsgNotFound},
		{"exists", docstore.NewError(docstore.CodeAlreadyExists, "create", "dup"), errnorm.MsgAlreadyExists},
		{"unavailable", docstore.NewError(docstore.CodeUnavailable, "list", "offline"), errnorm.MsgUnavailable},
		{"wrapped", fmt.Errorf("books: %w", docstore.NewError(docstore.CodeNotFound, "get", "x")), errnorm.MsgNotFound},
		{"unknown store code keeps store text", docstore.NewError(docstore.CodeUnknown, "list", "quota exceeded"), "quota exceeded"},
		{"auth coded", codedErr{code: "unavailable", msg: "down"}, errnorm.MsgUnavailable},
		{"auth other", codedErr{code: "invalid-credentials", msg: "Invalid email or password."}, "Invalid email or password."},
		{"plain", errors.New("boom"), "boom"},
		{"empty", errors.New("  "), errnorm.MsgUnexpected},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := errnorm.Message(tt.err); got != tt.want {
				t.Errorf("Message() = %q, want %q", got, tt.want)
			}
		})
	}
}
