// internal/app/store/admins/store.go
package admins

import (
	"context"
	"errors"
	"time"

	"github.com/jawahirullah/portal/internal/app/system/normalize"
	"github.com/jawahirullah/portal/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var (
	// ErrExists is returned by Create when the e-mail is already registered.
	ErrExists = errors.New("admin already exists")
	// ErrNotFound is returned when no admin has the given e-mail.
	ErrNotFound = errors.New("admin not found")
)

// Directory is the admin account surface shared by Store and MemStore.
type Directory interface {
	FindByEmail(ctx context.Context, email string) (*models.AdminUser, error)
	TouchLogin(ctx context.Context, id primitive.ObjectID, at time.Time) error
	Create(ctx context.Context, email, displayName, password string) (models.AdminUser, error)
	SetActive(ctx context.Context, email string, active bool) error
}

var (
	_ Directory = (*Store)(nil)
	_ Directory = (*MemStore)(nil)
)

// Store provides access to the admins collection.
type Store struct {
	c *mongo.Collection
}

// New creates a new admins store.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection(models.CollAdmins)}
}

// FindByEmail returns the admin with the given e-mail, or nil when none.
func (s *Store) FindByEmail(ctx context.Context, email string) (*models.AdminUser, error) {
	var a models.AdminUser
	err := s.c.FindOne(ctx, bson.M{"email": NormalizeEmail(email)}).Decode(&a)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// TouchLogin records a successful sign-in.
func (s *Store) TouchLogin(ctx context.Context, id primitive.ObjectID, at time.Time) error {
	_, err := s.c.UpdateByID(ctx, id, bson.M{"$set": bson.M{"last_login_at": at, "updated_at": at}})
	return err
}

// Create inserts a new active admin with a bcrypt-hashed password.
func (s *Store) Create(ctx context.Context, email, displayName, password string) (models.AdminUser, error) {
	a, err := newAdmin(email, displayName, password)
	if err != nil {
		return models.AdminUser{}, err
	}
	if _, err := s.c.InsertOne(ctx, a); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return models.AdminUser{}, ErrExists
		}
		return models.AdminUser{}, err
	}
	return a, nil
}

// SetActive enables or disables an admin account.
func (s *Store) SetActive(ctx context.Context, email string, active bool) error {
	res, err := s.c.UpdateOne(ctx,
		bson.M{"email": NormalizeEmail(email)},
		bson.M{"$set": bson.M{"is_active": active, "updated_at": time.Now().UTC()}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// NormalizeEmail lowercases and trims an e-mail for storage and lookup.
func NormalizeEmail(email string) string {
	return normalize.Email(email)
}

func newAdmin(email, displayName, password string) (models.AdminUser, error) {
	hash, err := HashPassword(password)
	if err != nil {
		return models.AdminUser{}, err
	}
	now := time.Now().UTC()
	return models.AdminUser{
		ID:           primitive.NewObjectID(),
		Email:        NormalizeEmail(email),
		DisplayName:  normalize.Name(displayName),
		PasswordHash: hash,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}
