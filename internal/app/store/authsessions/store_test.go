package authsessions_test

import (
	"context"
	"testing"
	"time"

	"github.com/jawahirullah/portal/internal/app/store/authsessions"
	"github.com/jawahirullah/portal/internal/domain/models"
	"github.com/jawahirullah/portal/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func exercise(t *testing.T, ctx context.Context, s authsessions.Records) {
	t.Helper()
	now := time.Now().UTC().Truncate(time.Millisecond)

	live := models.AuthSession{Token: "live", AdminID: primitive.NewObjectID(), Email: "a@example.com", CreatedAt: now, ExpiresAt: now.Add(time.Hour)}
	stale := models.AuthSession{Token: "stale", AdminID: primitive.NewObjectID(), Email: "b@example.com", CreatedAt: now.Add(-2 * time.Hour), ExpiresAt: now.Add(-time.Hour)}
	for _, rec := range []models.AuthSession{live, stale} {
		if err := s.Save(ctx, rec); err != nil {
			t.Fatalf("Save(%s): %v", rec.Token, err)
		}
	}

	got, err := s.Find(ctx, "live", now)
	if err != nil || got == nil {
		t.Fatalf("Find(live) = %v, %v", got, err)
	}
	if got.Email != "a@example.com" {
		t.Errorf("Email = %q", got.Email)
	}

	if got, _ := s.Find(ctx, "stale", now); got != nil {
		t.Error("expired record should not be returned")
	}

	n, err := s.DeleteExpired(ctx, now)
	if err != nil {
		t.Fatalf("DeleteExpired: %v", err)
	}
	if n != 1 {
		t.Errorf("DeleteExpired removed %d, want 1", n)
	}

	if err := s.Delete(ctx, "live"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := s.Delete(ctx, "live"); err != nil {
		t.Errorf("second Delete should be a no-op, got %v", err)
	}
	if got, _ := s.Find(ctx, "live", now); got != nil {
		t.Error("deleted record still found")
	}
}

func TestMemStore(t *testing.T) {
	exercise(t, context.Background(), authsessions.NewMemStore())
}

func TestStore(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	exercise(t, ctx, authsessions.New(db))
}
