package authsession

import (
	"sync"
	"time"

	"github.com/jawahirullah/portal/internal/app/system/authsvc"
	"go.uber.org/zap"
)

type entry struct {
	hook   *Hook
	client *authsvc.Client
}

// Registry keeps one Hook per browser session token.
type Registry struct {
	provider *authsvc.Provider
	log      *zap.Logger

	mu    sync.Mutex
	hooks map[string]entry
}

func NewRegistry(provider *authsvc.Provider, log *zap.Logger) *Registry {
	if log == nil {
		log = zap.NewNop()
	}
	return &Registry{provider: provider, log: log, hooks: map[string]entry{}}
}

// Get returns the started Hook for token, creating it on first use.
func (r *Registry) Get(token string) *Hook {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.hooks[token]; ok {
		e.hook.touch()
		return e.hook
	}
	c := r.provider.Client(token)
	h := NewHook(c, r.log)
	h.Start()
	r.hooks[token] = entry{hook: h, client: c}
	return h
}

// Evict closes and forgets the Hook for token.
func (r *Registry) Evict(token string) {
	r.mu.Lock()
	e, ok := r.hooks[token]
	delete(r.hooks, token)
	r.mu.Unlock()
	if ok {
		e.close()
	}
}

// Sweep evicts hooks unused for longer than idle and returns how many went.
func (r *Registry) Sweep(idle time.Duration) int {
	cutoff := time.Now().Add(-idle)
	var stale []entry

	r.mu.Lock()
	for tok, e := range r.hooks {
		if e.hook.idleSince().Before(cutoff) {
			stale = append(stale, e)
			delete(r.hooks, tok)
		}
	}
	r.mu.Unlock()

	for _, e := range stale {
		e.close()
	}
	return len(stale)
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.hooks)
}

// Close evicts every hook.
func (r *Registry) Close() {
	r.mu.Lock()
	all := r.hooks
	r.hooks = map[string]entry{}
	r.mu.Unlock()
	for _, e := range all {
		e.close()
	}
}

func (e entry) close() {
	e.hook.Close()
	e.client.Close()
}
