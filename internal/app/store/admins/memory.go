// internal/app/store/admins/memory.go
package admins

import (
	"context"
	"sync"
	"time"

	"github.com/jawahirullah/portal/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemStore is an in-process admin directory for tests and the memory
// store backend.
type MemStore struct {
	mu      sync.Mutex
	byEmail map[string]models.AdminUser
}

func NewMemStore() *MemStore {
	return &MemStore{byEmail: map[string]models.AdminUser{}}
}

func (s *MemStore) FindByEmail(_ context.Context, email string) (*models.AdminUser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.byEmail[NormalizeEmail(email)]
	if !ok {
		return nil, nil
	}
	return &a, nil
}

func (s *MemStore) TouchLogin(_ context.Context, id primitive.ObjectID, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for k, a := range s.byEmail {
		if a.ID == id {
			a.LastLoginAt = &at
			a.UpdatedAt = at
			s.byEmail[k] = a
		}
	}
	return nil
}

func (s *MemStore) Create(_ context.Context, email, displayName, password string) (models.AdminUser, error) {
	a, err := newAdmin(email, displayName, password)
	if err != nil {
		return models.AdminUser{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byEmail[a.Email]; ok {
		return models.AdminUser{}, ErrExists
	}
	s.byEmail[a.Email] = a
	return a, nil
}

func (s *MemStore) SetActive(_ context.Context, email string, active bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.byEmail[NormalizeEmail(email)]
	if !ok {
		return ErrNotFound
	}
	a.IsActive = active
	s.byEmail[a.Email] = a
	return nil
}
