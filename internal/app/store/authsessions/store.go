// internal/app/store/authsessions/store.go
package authsessions

import (
	"context"
	"errors"
	"time"

	"github.com/jawahirullah/portal/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Records is the persisted-session surface shared by Store and MemStore.
type Records interface {
	Save(ctx context.Context, rec models.AuthSession) error
	Find(ctx context.Context, token string, now time.Time) (*models.AuthSession, error)
	Delete(ctx context.Context, token string) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

var (
	_ Records = (*Store)(nil)
	_ Records = (*MemStore)(nil)
)

// Store keeps auth session records in MongoDB. A TTL index on expires_at
// (see system/indexes) removes stale records server-side.
type Store struct {
	c *mongo.Collection
}

// New creates a new auth sessions Store.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection(models.CollAuthSessions)}
}

// Save upserts the record for rec.Token.
func (s *Store) Save(ctx context.Context, rec models.AuthSession) error {
	if rec.ID.IsZero() {
		rec.ID = primitive.NewObjectID()
	}
	_, err := s.c.UpdateOne(ctx,
		bson.M{"token": rec.Token},
		bson.M{
			"$set": bson.M{
				"admin_id":   rec.AdminID,
				"email":      rec.Email,
				"created_at": rec.CreatedAt,
				"expires_at": rec.ExpiresAt,
			},
			"$setOnInsert": bson.M{"_id": rec.ID, "token": rec.Token},
		},
		options.Update().SetUpsert(true),
	)
	return err
}

// Find returns the unexpired record for token, or nil.
func (s *Store) Find(ctx context.Context, token string, now time.Time) (*models.AuthSession, error) {
	var rec models.AuthSession
	err := s.c.FindOne(ctx, bson.M{"token": token, "expires_at": bson.M{"$gt": now}}).Decode(&rec)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// Delete removes the record for token. Deleting a missing record is not an error.
func (s *Store) Delete(ctx context.Context, token string) error {
	_, err := s.c.DeleteOne(ctx, bson.M{"token": token})
	return err
}

// DeleteExpired removes records whose expiry has passed. The TTL index does
// the same lazily; this makes the cleanup deterministic.
func (s *Store) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res, err := s.c.DeleteMany(ctx, bson.M{"expires_at": bson.M{"$lte": now}})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
