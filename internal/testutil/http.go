package testutil

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/jawahirullah/portal/internal/app/store/admins"
	"github.com/jawahirullah/portal/internal/app/store/authsessions"
	"github.com/jawahirullah/portal/internal/app/system/auth"
	"github.com/jawahirullah/portal/internal/app/system/authsession"
	"github.com/jawahirullah/portal/internal/app/system/authsvc"
	"go.uber.org/zap"
)

// Admin credentials created by NewAuth.
const (
	AdminEmail    = "admin@test.com"
	AdminPassword = "secret123"
)

// Auth is an in-memory auth stack with one active admin.
type Auth struct {
	Admins   *admins.MemStore
	Records  *authsessions.MemStore
	Provider *authsvc.Provider
	Registry *authsession.Registry
}

// NewAuth builds an auth stack over in-memory stores. The registry is
// closed when the test ends.
func NewAuth(t *testing.T) *Auth {
	t.Helper()
	a := &Auth{Admins: admins.NewMemStore(), Records: authsessions.NewMemStore()}
	ctx, cancel := TestContext()
	defer cancel()
	if _, err := a.Admins.Create(ctx, AdminEmail, "Test Admin", AdminPassword); err != nil {
		t.Fatalf("create admin: %v", err)
	}
	a.Provider = authsvc.NewProvider(a.Admins, a.Records, time.Hour, zap.NewNop())
	a.Registry = authsession.NewRegistry(a.Provider, zap.NewNop())
	t.Cleanup(a.Registry.Close)
	return a
}

// Hook returns the settled hook for token: Unauthenticated for a new token.
func (a *Auth) Hook(t *testing.T, token string) *authsession.Hook {
	t.Helper()
	h := a.Registry.Get(token)
	ctx, cancel := TestContext()
	defer cancel()
	if _, ok := h.WaitFor(ctx, func(s authsession.State) bool { return s.Status != authsession.Initializing }); !ok {
		t.Fatal("session hook never resolved")
	}
	return h
}

// SignedIn returns a hook for token that has reached Authenticated.
func (a *Auth) SignedIn(t *testing.T, token string) *authsession.Hook {
	t.Helper()
	h := a.Hook(t, token)
	ctx, cancel := TestContext()
	defer cancel()
	if !h.SignIn(ctx, AdminEmail, AdminPassword) {
		t.Fatalf("sign in failed: %s", h.State().Err)
	}
	if _, ok := h.WaitFor(ctx, func(s authsession.State) bool { return s.Status == authsession.Authenticated }); !ok {
		t.Fatal("session never became Authenticated")
	}
	return h
}

// NewRequest creates an HTTP request for testing.
func NewRequest(method, target string) *http.Request {
	return httptest.NewRequest(method, target, nil)
}

// NewFormRequest creates a url-encoded form POST.
func NewFormRequest(target string, form url.Values) *http.Request {
	r := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return r
}

// WithHook attaches a session hook the way the session middleware does.
func WithHook(r *http.Request, h *authsession.Hook) *http.Request {
	return auth.WithHook(r, h)
}

// ResponseRecorder wraps httptest.ResponseRecorder with helper methods.
type ResponseRecorder struct {
	*httptest.ResponseRecorder
}

// NewRecorder creates a new ResponseRecorder.
func NewRecorder() *ResponseRecorder {
	return &ResponseRecorder{httptest.NewRecorder()}
}

// AssertStatus checks the response status code.
func (r *ResponseRecorder) AssertStatus(t interface{ Errorf(string, ...any) }, expected int) {
	if r.Code != expected {
		t.Errorf("status code: got %d, want %d", r.Code, expected)
	}
}

// AssertRedirect checks for a redirect to the expected location.
func (r *ResponseRecorder) AssertRedirect(t interface{ Errorf(string, ...any) }, expectedLocation string) {
	if r.Code != http.StatusSeeOther && r.Code != http.StatusFound && r.Code != http.StatusMovedPermanently {
		t.Errorf("expected redirect status, got %d", r.Code)
	}
	if location := r.Header().Get("Location"); location != expectedLocation {
		t.Errorf("redirect location: got %q, want %q", location, expectedLocation)
	}
}

// AssertContains checks if the response body contains the expected string.
func (r *ResponseRecorder) AssertContains(t interface{ Errorf(string, ...any) }, expected string) {
	if !strings.Contains(r.Body.String(), expected) {
		t.Errorf("response body does not contain %q", expected)
	}
}
