// Package prefs holds the visitor's locale and theme preferences.
//
// One Store is created at startup and injected into handlers. Values live in
// signed cookies named after the keys the site has always used, so nothing
// is kept server-side per visitor.
package prefs

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/securecookie"
	"go.uber.org/zap"
)

const (
	LocaleCookie = "preferred-language"
	ThemeCookie  = "theme"

	LocaleEN = "en"
	LocaleTA = "ta"

	ThemeLight = "light"
	ThemeDark  = "dark"

	cookieMaxAge = 365 * 24 * time.Hour
)

// Prefs is one visitor's preferences.
type Prefs struct {
	Locale string
	Theme  string
}

// IsTamil reports whether copy should be shown in Tamil.
func (p Prefs) IsTamil() bool { return p.Locale == LocaleTA }

var ErrInvalid = errors.New("prefs: unsupported value")

// ValidLocale reports whether s is a supported locale.
func ValidLocale(s string) bool { return s == LocaleEN || s == LocaleTA }

// ValidTheme reports whether s is a supported theme.
func ValidTheme(s string) bool { return s == ThemeLight || s == ThemeDark }

// Store reads and writes preference cookies and notifies subscribers when a
// visitor changes them.
type Store struct {
	sc       *securecookie.SecureCookie
	defaults Prefs
	secure   bool
	log      *zap.Logger

	mu     sync.Mutex
	subs   map[int]func(Prefs)
	nextID int
}

// New builds a Store. hashKey signs the cookies.
func New(hashKey []byte, defaults Prefs, secure bool, log *zap.Logger) (*Store, error) {
	if len(hashKey) == 0 {
		return nil, errors.New("prefs: empty signing key")
	}
	if log == nil {
		log = zap.NewNop()
	}
	if !ValidLocale(defaults.Locale) {
		defaults.Locale = LocaleEN
	}
	if !ValidTheme(defaults.Theme) {
		defaults.Theme = ThemeLight
	}
	sc := securecookie.New(hashKey, nil)
	sc.MaxAge(int(cookieMaxAge.Seconds()))
	return &Store{
		sc:       sc,
		defaults: defaults,
		secure:   secure,
		log:      log,
		subs:     map[int]func(Prefs){},
	}, nil
}

// Defaults returns the preferences used for first-time visitors.
func (s *Store) Defaults() Prefs { return s.defaults }

// Get reads the visitor's preferences. Missing, tampered or unsupported
// values fall back to the defaults.
func (s *Store) Get(r *http.Request) Prefs {
	p := s.defaults
	if v := s.read(r, LocaleCookie); ValidLocale(v) {
		p.Locale = v
	}
	if v := s.read(r, ThemeCookie); ValidTheme(v) {
		p.Theme = v
	}
	return p
}

// Set writes p to the response and notifies subscribers.
func (s *Store) Set(w http.ResponseWriter, p Prefs) error {
	if !ValidLocale(p.Locale) || !ValidTheme(p.Theme) {
		return ErrInvalid
	}
	if err := s.write(w, LocaleCookie, p.Locale); err != nil {
		return err
	}
	if err := s.write(w, ThemeCookie, p.Theme); err != nil {
		return err
	}

	s.mu.Lock()
	fns := make([]func(Prefs), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.mu.Unlock()
	for _, fn := range fns {
		fn(p)
	}
	return nil
}

// Subscribe registers fn for every Set. The returned func unsubscribes.
func (s *Store) Subscribe(fn func(Prefs)) func() {
	s.mu.Lock()
	s.nextID++
	id := s.nextID
	s.subs[id] = fn
	s.mu.Unlock()
	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

func (s *Store) read(r *http.Request, name string) string {
	c, err := r.Cookie(name)
	if err != nil {
		return ""
	}
	var v string
	if err := s.sc.Decode(name, c.Value, &v); err != nil {
		s.log.Debug("ignoring unreadable preference cookie", zap.String("cookie", name), zap.Error(err))
		return ""
	}
	return v
}

func (s *Store) write(w http.ResponseWriter, name, value string) error {
	enc, err := s.sc.Encode(name, value)
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    enc,
		Path:     "/",
		MaxAge:   int(cookieMaxAge.Seconds()),
		Secure:   s.secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

type ctxKey struct{}

// Middleware puts the visitor's preferences into the request context.
func (s *Store) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := context.WithValue(r.Context(), ctxKey{}, s.Get(r))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// From returns the preferences set by Middleware, or English/light.
func From(ctx context.Context) Prefs {
	if p, ok := ctx.Value(ctxKey{}).(Prefs); ok {
		return p
	}
	return Prefs{Locale: LocaleEN, Theme: ThemeLight}
}

// WithPrefs returns ctx carrying p.
func WithPrefs(ctx context.Context, p Prefs) context.Context {
	return context.WithValue(ctx, ctxKey{}, p)
}
