// internal/app/store/authsessions/memory.go
package authsessions

import (
	"context"
	"sync"
	"time"

	"github.com/jawahirullah/portal/internal/domain/models"
)

// MemStore keeps auth session records in process.
type MemStore struct {
	mu      sync.Mutex
	byToken map[string]models.AuthSession
}

func NewMemStore() *MemStore {
	return &MemStore{byToken: map[string]models.AuthSession{}}
}

func (s *MemStore) Save(_ context.Context, rec models.AuthSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byToken[rec.Token] = rec
	return nil
}

func (s *MemStore) Find(_ context.Context, token string, now time.Time) (*models.AuthSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.byToken[token]
	if !ok || !rec.ExpiresAt.After(now) {
		return nil, nil
	}
	return &rec, nil
}

func (s *MemStore) Delete(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.byToken, token)
	return nil
}

func (s *MemStore) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for tok, rec := range s.byToken {
		if !rec.ExpiresAt.After(now) {
			delete(s.byToken, tok)
			n++
		}
	}
	return n, nil
}
