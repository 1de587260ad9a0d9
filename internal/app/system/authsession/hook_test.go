package authsession_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/jawahirullah/portal/internal/app/store/admins"
	"github.com/jawahirullah/portal/internal/app/store/authsessions"
	"github.com/jawahirullah/portal/internal/app/system/authsession"
	"github.com/jawahirullah/portal/internal/app/system/authsvc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const waitFor = 2 * time.Second

func newProvider(t *testing.T) *authsvc.Provider {
	t.Helper()
	dir := admins.NewMemStore()
	_, err := dir.Create(context.Background(), "admin@example.com", "Admin", "secret123")
	require.NoError(t, err)
	return authsvc.NewProvider(dir, authsessions.NewMemStore(), time.Hour, zap.NewNop())
}

func waitStatus(t *testing.T, h *authsession.Hook, want authsession.Status) authsession.State {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), waitFor)
	defer cancel()
	st, ok := h.WaitFor(ctx, func(s authsession.State) bool { return s.Status == want })
	require.True(t, ok, "status %s never reached, last %s", want, st.Status)
	return st
}

// manualService only reports session changes when the test says so.
type manualService struct {
	mu      sync.Mutex
	fn      func(*authsvc.Principal)
	signErr error
	signIns int
}

func (m *manualService) SignIn(context.Context, string, string) (authsvc.Principal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.signIns++
	if m.signErr != nil {
		return authsvc.Principal{}, m.signErr
	}
	return authsvc.Principal{Email: "a@b.c"}, nil
}

func (m *manualService) SignOut(context.Context) error { return nil }

func (m *manualService) OnSessionChange(fn func(*authsvc.Principal)) func() {
	m.mu.Lock()
	m.fn = fn
	m.mu.Unlock()
	return func() {
		m.mu.Lock()
		m.fn = nil
		m.mu.Unlock()
	}
}

func (m *manualService) emit(p *authsvc.Principal) {
	m.mu.Lock()
	fn := m.fn
	m.mu.Unlock()
	if fn != nil {
		fn(p)
	}
}

func TestHookStartsInitializing(t *testing.T) {
	svc := &manualService{}
	h := authsession.NewHook(svc, zap.NewNop())
	h.Start()
	defer h.Close()

	st := h.State()
	assert.Equal(t, authsession.Initializing, st.Status)
	assert.True(t, st.Loading)
	assert.Nil(t, st.User)

	svc.emit(nil)
	st = h.State()
	assert.Equal(t, authsession.Unauthenticated, st.Status)
	assert.False(t, st.Loading)
}

func TestSignInDoesNotTransitionByItself(t *testing.T) {
	svc := &manualService{}
	h := authsession.NewHook(svc, zap.NewNop())
	h.Start()
	defer h.Close()
	svc.emit(nil)

	require.True(t, h.SignIn(context.Background(), "a@b.c", "secret123"))
	assert.Equal(t, authsession.Unauthenticated, h.State().Status)

	svc.emit(&authsvc.Principal{Email: "a@b.c"})
	st := h.State()
	assert.Equal(t, authsession.Authenticated, st.Status)
	assert.Equal(t, "a@b.c", st.User.Email)
}

func TestSignInFailureSetsNormalizedError(t *testing.T) {
	svc := &manualService{signErr: errors.New("boom")}
	h := authsession.NewHook(svc, zap.NewNop())
	h.Start()
	defer h.Close()
	svc.emit(nil)

	assert.False(t, h.SignIn(context.Background(), "a@b.c", "secret123"))
	assert.Equal(t, "boom", h.State().Err)

	h.ClearError()
	h.ClearError()
	assert.Empty(t, h.State().Err)
	assert.Equal(t, authsession.Unauthenticated, h.State().Status)
}

func TestValidSignInEventuallyAuthenticates(t *testing.T) {
	reg := authsession.NewRegistry(newProvider(t), zap.NewNop())
	defer reg.Close()
	h := reg.Get("tok-1")

	waitStatus(t, h, authsession.Unauthenticated)
	require.True(t, h.SignIn(context.Background(), "admin@example.com", "secret123"))

	st := waitStatus(t, h, authsession.Authenticated)
	require.NotNil(t, st.User)
	assert.NotEmpty(t, st.User.Email)
	assert.False(t, st.Loading)
	assert.Empty(t, st.Err)
}

func TestInvalidSignInStaysUnauthenticated(t *testing.T) {
	reg := authsession.NewRegistry(newProvider(t), zap.NewNop())
	defer reg.Close()
	h := reg.Get("tok-1")

	waitStatus(t, h, authsession.Unauthenticated)
	assert.False(t, h.SignIn(context.Background(), "admin@example.com", "wrong-password"))

	st := h.State()
	assert.Equal(t, authsession.Unauthenticated, st.Status)
	assert.Equal(t, "Invalid email or password.", st.Err)
}

func TestSignOutEventuallyUnauthenticates(t *testing.T) {
	reg := authsession.NewRegistry(newProvider(t), zap.NewNop())
	defer reg.Close()
	h := reg.Get("tok-1")

	waitStatus(t, h, authsession.Unauthenticated)
	require.True(t, h.SignIn(context.Background(), "admin@example.com", "secret123"))
	waitStatus(t, h, authsession.Authenticated)

	require.True(t, h.SignOut(context.Background()))
	st := waitStatus(t, h, authsession.Unauthenticated)
	assert.Nil(t, st.User)
}

func TestAwaitReturnsAfterTimeoutWhenUnresolved(t *testing.T) {
	h := authsession.NewHook(&manualService{}, zap.NewNop())
	h.Start()
	defer h.Close()

	st := h.Await(context.Background(), 20*time.Millisecond)
	assert.Equal(t, authsession.Initializing, st.Status)
	assert.True(t, st.Loading)
}

func TestRegistryReusesAndSweeps(t *testing.T) {
	reg := authsession.NewRegistry(newProvider(t), zap.NewNop())
	defer reg.Close()

	a := reg.Get("tok-1")
	assert.Same(t, a, reg.Get("tok-1"))
	reg.Get("tok-2")
	assert.Equal(t, 2, reg.Len())

	assert.Equal(t, 0, reg.Sweep(time.Hour))
	time.Sleep(5 * time.Millisecond)
	assert.Equal(t, 2, reg.Sweep(time.Millisecond))
	assert.Equal(t, 0, reg.Len())

	reg.Get("tok-3")
	reg.Evict("tok-3")
	assert.Equal(t, 0, reg.Len())
}

func TestSessionSurvivesEviction(t *testing.T) {
	reg := authsession.NewRegistry(newProvider(t), zap.NewNop())
	defer reg.Close()

	h := reg.Get("tok-1")
	waitStatus(t, h, authsession.Unauthenticated)
	require.True(t, h.SignIn(context.Background(), "admin@example.com", "secret123"))
	waitStatus(t, h, authsession.Authenticated)

	reg.Evict("tok-1")
	again := reg.Get("tok-1")
	assert.NotSame(t, h, again)
	waitStatus(t, again, authsession.Authenticated)
}
