// Package auth binds browser requests to admin session hooks.
//
// Every browser gets an opaque token in a signed gorilla/sessions cookie.
// The token keys the authsession.Registry, so all requests from the same
// browser share one Hook and one auth client.
package auth

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"
	"github.com/jawahirullah/portal/internal/app/system/authsession"
	"go.uber.org/zap"
)

/*─────────────────────────────────────────────────────────────────────────────*
| Session constants                                                          |
*─────────────────────────────────────────────────────────────────────────────*/

const (
	DefaultSessionName = "portal-session"

	tokenKey = "token"

	// ResolveWait is how long a gated request waits for a fresh hook to
	// learn its state.
	ResolveWait = 750 * time.Millisecond

	// Where unauthenticated admin requests are sent. The shell there renders
	// the login form.
	LoginPath = "/admin/login"
)

type ctxKey string

const (
	hookKey  ctxKey = "authHook"
	tokenCtx ctxKey = "authToken"
)

// SessionManager issues browser tokens and resolves their hooks.
type SessionManager struct {
	store *sessions.CookieStore
	name  string
	log   *zap.Logger
}

// NewSessionManager builds the cookie store. The `secure` flag controls
// whether cookies are marked Secure; in local dev over http://localhost use
// secure=false so cookies are accepted.
func NewSessionManager(sessionKey, name, domain string, maxAge time.Duration, secure bool, logger *zap.Logger) (*SessionManager, error) {
	if sessionKey == "" {
		return nil, errors.New("session key is empty; provide ≥32 random chars")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if len(sessionKey) < 32 {
		logger.Warn("session key is short; 32+ chars recommended",
			zap.Int("length", len(sessionKey)))
	}
	if name == "" {
		name = DefaultSessionName
	}

	store := sessions.NewCookieStore([]byte(sessionKey))
	store.Options = &sessions.Options{
		Domain:   domain,
		Path:     "/",
		MaxAge:   int(maxAge.Seconds()),
		Secure:   secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}

	logger.Info("session store initialized",
		zap.Bool("secure", secure),
		zap.String("domain", domain),
		zap.String("name", name))

	return &SessionManager{store: store, name: name, log: logger}, nil
}

// Token returns the browser's token, issuing and saving a new one when the
// request carries none. It must run before the response body is written.
func (m *SessionManager) Token(w http.ResponseWriter, r *http.Request) (string, error) {
	// A cookie that fails to decode (rotated key) yields a fresh session.
	sess, _ := m.store.Get(r, m.name)
	if tok, ok := sess.Values[tokenKey].(string); ok && tok != "" {
		return tok, nil
	}
	tok := uuid.NewString()
	sess.Values[tokenKey] = tok
	if err := sess.Save(r, w); err != nil {
		return "", err
	}
	return tok, nil
}

// Clear expires the browser's cookie so the next request gets a new token.
func (m *SessionManager) Clear(w http.ResponseWriter, r *http.Request) {
	sess, _ := m.store.Get(r, m.name)
	sess.Options.MaxAge = -1
	if err := sess.Save(r, w); err != nil {
		m.log.Warn("clear session cookie failed", zap.Error(err))
	}
}

// LoadSession attaches the browser's Hook from reg to the request context.
func (m *SessionManager) LoadSession(reg *authsession.Registry) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tok, err := m.Token(w, r)
			if err != nil {
				m.log.Error("issue session token failed", zap.Error(err))
				next.ServeHTTP(w, r)
				return
			}
			ctx := context.WithValue(r.Context(), tokenCtx, tok)
			ctx = context.WithValue(ctx, hookKey, reg.Get(tok))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// HookFrom returns the Hook attached by LoadSession, or nil.
func HookFrom(r *http.Request) *authsession.Hook {
	h, _ := r.Context().Value(hookKey).(*authsession.Hook)
	return h
}

// TokenFrom returns the browser token attached by LoadSession.
func TokenFrom(r *http.Request) string {
	t, _ := r.Context().Value(tokenCtx).(string)
	return t
}

// WithHook attaches h to the request, for tests and internal redirects.
func WithHook(r *http.Request, h *authsession.Hook) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), hookKey, h))
}

// CurrentAdmin returns the signed-in admin's state, waiting briefly for a
// new hook to resolve.
func CurrentAdmin(r *http.Request) (authsession.State, bool) {
	h := HookFrom(r)
	if h == nil {
		return authsession.State{Status: authsession.Unauthenticated}, false
	}
	st := h.Await(r.Context(), ResolveWait)
	return st, st.Status == authsession.Authenticated
}

// RequireAdmin lets the request through only when the browser's hook is
// Authenticated. Otherwise:
//   - HTMX: sends HX-Redirect to the admin login
//   - HTML: 303 redirect to the admin login with ?return=
//   - API:  401 Unauthorized with a plain error body.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := CurrentAdmin(r); ok {
			next.ServeHTTP(w, r)
			return
		}

		dest := LoginPath + "?return=" + url.QueryEscape(currentURI(r))

		if r.Header.Get("HX-Request") == "true" {
			w.Header().Set("HX-Redirect", dest)
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		if wantsHTML(r) {
			http.Redirect(w, r, dest, http.StatusSeeOther)
			return
		}

		http.Error(w, "unauthorized", http.StatusUnauthorized)
	})
}

// helpers

func wantsHTML(r *http.Request) bool {
	if r.Header.Get("HX-Request") == "true" {
		return true
	}
	return strings.Contains(r.Header.Get("Accept"), "text/html")
}

func currentURI(r *http.Request) string {
	u := *r.URL
	return u.RequestURI()
}
