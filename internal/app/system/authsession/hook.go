// Package authsession tracks one browser's admin session.
//
// A Hook starts in Initializing and moves to Authenticated or
// Unauthenticated only when the auth service reports a session change.
// SignIn and SignOut ask the service for a change and return; they never
// set the status themselves.
package authsession

import (
	"context"
	"sync"
	"time"

	"github.com/jawahirullah/portal/internal/app/system/authsvc"
	"github.com/jawahirullah/portal/internal/app/system/errnorm"
	"go.uber.org/zap"
)

type Status int

const (
	Initializing Status = iota
	Unauthenticated
	Authenticated
)

func (s Status) String() string {
	switch s {
	case Unauthenticated:
		return "unauthenticated"
	case Authenticated:
		return "authenticated"
	default:
		return "initializing"
	}
}

// State is a snapshot of a Hook.
type State struct {
	Status  Status
	User    *authsvc.Principal
	Loading bool
	Err     string
}

// Hook is the session view shared by every request from one browser.
type Hook struct {
	svc authsvc.Service
	log *zap.Logger

	mu       sync.Mutex
	status   Status
	user     *authsvc.Principal
	err      string
	unsub    func()
	changed  chan struct{}
	lastUsed time.Time
}

// NewHook returns a Hook in the Initializing state. Call Start to subscribe.
func NewHook(svc authsvc.Service, log *zap.Logger) *Hook {
	if log == nil {
		log = zap.NewNop()
	}
	return &Hook{
		svc:      svc,
		log:      log,
		changed:  make(chan struct{}),
		lastUsed: time.Now(),
	}
}

// Start subscribes to session changes. Calling it again is a no-op.
func (h *Hook) Start() {
	h.mu.Lock()
	if h.unsub != nil {
		h.mu.Unlock()
		return
	}
	h.mu.Unlock()

	unsub := h.svc.OnSessionChange(h.onSessionChange)

	h.mu.Lock()
	if h.unsub != nil {
		h.mu.Unlock()
		unsub()
		return
	}
	h.unsub = unsub
	h.mu.Unlock()
}

// Close unsubscribes. The last known state stays readable.
func (h *Hook) Close() {
	h.mu.Lock()
	unsub := h.unsub
	h.unsub = func() {}
	h.mu.Unlock()
	if unsub != nil {
		unsub()
	}
}

func (h *Hook) onSessionChange(p *authsvc.Principal) {
	h.mu.Lock()
	if p != nil && p.Email != "" {
		h.status = Authenticated
		h.user = p
	} else {
		h.status = Unauthenticated
		h.user = nil
	}
	h.broadcastLocked()
	h.mu.Unlock()
}

// SignIn asks the auth service for a session. It reports whether the
// request was accepted; the Authenticated state arrives later through the
// subscription. On failure Err holds the normalized message.
func (h *Hook) SignIn(ctx context.Context, email, password string) bool {
	h.ClearError()
	if _, err := h.svc.SignIn(ctx, email, password); err != nil {
		h.setErr(err)
		return false
	}
	return true
}

// SignOut asks the auth service to end the session.
func (h *Hook) SignOut(ctx context.Context) bool {
	h.ClearError()
	if err := h.svc.SignOut(ctx); err != nil {
		h.setErr(err)
		return false
	}
	return true
}

func (h *Hook) ClearError() {
	h.mu.Lock()
	if h.err != "" {
		h.err = ""
		h.broadcastLocked()
	}
	h.mu.Unlock()
}

func (h *Hook) setErr(err error) {
	msg := errnorm.Message(err)
	h.log.Info("auth request failed", zap.String("message", msg), zap.Error(err))
	h.mu.Lock()
	h.err = msg
	h.broadcastLocked()
	h.mu.Unlock()
}

// State returns a snapshot and marks the hook as used.
func (h *Hook) State() State {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.lastUsed = time.Now()
	var u *authsvc.Principal
	if h.user != nil {
		cp := *h.user
		u = &cp
	}
	return State{
		Status:  h.status,
		User:    u,
		Loading: h.status == Initializing,
		Err:     h.err,
	}
}

// Changes returns a channel that is closed at the next state change.
func (h *Hook) Changes() <-chan struct{} {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.changed
}

// WaitFor blocks until pred holds for the current state or ctx ends.
func (h *Hook) WaitFor(ctx context.Context, pred func(State) bool) (State, bool) {
	for {
		ch := h.Changes()
		st := h.State()
		if pred(st) {
			return st, true
		}
		select {
		case <-ch:
		case <-ctx.Done():
			return h.State(), false
		}
	}
}

// Await waits up to d for the Initializing state to resolve and returns
// whatever state the hook is in afterwards.
func (h *Hook) Await(ctx context.Context, d time.Duration) State {
	ctx, cancel := context.WithTimeout(ctx, d)
	defer cancel()
	st, _ := h.WaitFor(ctx, func(s State) bool { return s.Status != Initializing })
	return st
}

func (h *Hook) touch() {
	h.mu.Lock()
	h.lastUsed = time.Now()
	h.mu.Unlock()
}

func (h *Hook) idleSince() time.Time {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.lastUsed
}

func (h *Hook) broadcastLocked() {
	close(h.changed)
	h.changed = make(chan struct{})
}
