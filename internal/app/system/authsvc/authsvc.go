// Package authsvc is the admin authentication service.
//
// A Provider verifies credentials against the admin directory and persists
// sessions. Each browser session gets its own Client, which exposes the
// sign-in/sign-out calls and a session-change stream. Imperative calls never
// return state directly to the caller's UI; observers learn about the new
// session only through OnSessionChange callbacks, delivered asynchronously
// and in order.
package authsvc

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jawahirullah/portal/internal/app/store/admins"
	"github.com/jawahirullah/portal/internal/app/store/authsessions"
	"github.com/jawahirullah/portal/internal/domain/models"
	"go.uber.org/zap"
)

// Principal is the identity of a signed-in admin.
type Principal struct {
	UID         string
	Email       string
	DisplayName string
}

// Service is what the session hook consumes.
type Service interface {
	SignIn(ctx context.Context, email, password string) (Principal, error)
	SignOut(ctx context.Context) error
	OnSessionChange(fn func(*Principal)) (unsubscribe func())
}

// Error codes reported by the service.
const (
	CodeInvalidCredentials = "invalid-credentials"
	CodeUserDisabled       = "user-disabled"
	CodeUnavailable        = "unavailable"
)

// Error is a coded auth failure; Msg is ready for display.
type Error struct {
	Code string
	Msg  string
	Err  error
}

func (e *Error) Error() string     { return e.Msg }
func (e *Error) Unwrap() error     { return e.Err }
func (e *Error) ErrorCode() string { return e.Code }

var (
	ErrInvalidCredentials = &Error{Code: CodeInvalidCredentials, Msg: "Invalid email or password."}
	ErrUserDisabled       = &Error{Code: CodeUserDisabled, Msg: "This account has been disabled."}
)

func unavailable(err error) *Error {
	return &Error{Code: CodeUnavailable, Msg: "Authentication service unavailable.", Err: err}
}

// DefaultSessionTTL is how long a sign-in lasts without activity.
const DefaultSessionTTL = 12 * time.Hour

// Provider holds the backends shared by every Client.
type Provider struct {
	dir     admins.Directory
	records authsessions.Records
	ttl     time.Duration
	now     func() time.Time
	log     *zap.Logger
}

// NewProvider builds a Provider. A zero ttl uses DefaultSessionTTL.
func NewProvider(dir admins.Directory, records authsessions.Records, ttl time.Duration, log *zap.Logger) *Provider {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Provider{dir: dir, records: records, ttl: ttl, now: time.Now, log: log}
}

// Records exposes the session record store for cleanup workers.
func (p *Provider) Records() authsessions.Records { return p.records }

// authenticate checks email and password against the directory.
func (p *Provider) authenticate(ctx context.Context, email, password string) (*models.AdminUser, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}
	a, err := p.dir.FindByEmail(ctx, email)
	if err != nil {
		return nil, unavailable(err)
	}
	if a == nil || !admins.CheckPassword(a.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	if !a.IsActive {
		return nil, ErrUserDisabled
	}
	if err := p.dir.TouchLogin(ctx, a.ID, p.now().UTC()); err != nil {
		p.log.Warn("record admin login failed", zap.String("email", a.Email), zap.Error(err))
	}
	return a, nil
}

// IsAuthError reports whether err came from this package.
func IsAuthError(err error) bool {
	var ae *Error
	return errors.As(err, &ae)
}
