package admins_test

import (
	"context"
	"testing"
	"time"

	"github.com/jawahirullah/portal/internal/app/store/admins"
	"github.com/jawahirullah/portal/internal/testutil"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := admins.HashPassword("secret1")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if !admins.CheckPassword(hash, "secret1") {
		t.Error("expected matching password to check out")
	}
	if admins.CheckPassword(hash, "secret2") {
		t.Error("expected wrong password to be rejected")
	}
	if admins.CheckPassword("", "secret1") {
		t.Error("expected empty hash to be rejected")
	}
}

func TestHashPasswordTooShort(t *testing.T) {
	if _, err := admins.HashPassword("12345"); err != admins.ErrPasswordTooShort {
		t.Errorf("expected ErrPasswordTooShort, got %v", err)
	}
}

func TestMemStoreLifecycle(t *testing.T) {
	ctx := context.Background()
	s := admins.NewMemStore()

	a, err := s.Create(ctx, " Admin@Example.com ", "Admin", "secret1")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if a.Email != "admin@example.com" {
		t.Errorf("email not normalized: %q", a.Email)
	}
	if _, err := s.Create(ctx, "admin@example.com", "Dup", "secret1"); err != admins.ErrExists {
		t.Errorf("expected ErrExists, got %v", err)
	}

	got, err := s.FindByEmail(ctx, "ADMIN@example.com")
	if err != nil || got == nil {
		t.Fatalf("FindByEmail: %v, %v", got, err)
	}
	if !got.IsActive {
		t.Error("new admin should be active")
	}

	now := time.Now().UTC()
	if err := s.TouchLogin(ctx, got.ID, now); err != nil {
		t.Fatalf("TouchLogin: %v", err)
	}
	got, _ = s.FindByEmail(ctx, "admin@example.com")
	if got.LastLoginAt == nil || !got.LastLoginAt.Equal(now) {
		t.Errorf("LastLoginAt not recorded: %v", got.LastLoginAt)
	}

	if err := s.SetActive(ctx, "admin@example.com", false); err != nil {
		t.Fatalf("SetActive: %v", err)
	}
	got, _ = s.FindByEmail(ctx, "admin@example.com")
	if got.IsActive {
		t.Error("expected admin to be disabled")
	}
	if err := s.SetActive(ctx, "nobody@example.com", true); err != admins.ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}

	missing, err := s.FindByEmail(ctx, "nobody@example.com")
	if err != nil || missing != nil {
		t.Errorf("expected nil, nil for missing admin, got %v, %v", missing, err)
	}
}

func TestEnsureBootstrap(t *testing.T) {
	ctx := context.Background()
	s := admins.NewMemStore()

	created, err := admins.EnsureBootstrap(ctx, s, "", "secret1")
	if err != nil || created {
		t.Errorf("blank email should be a no-op, got %v, %v", created, err)
	}

	created, err = admins.EnsureBootstrap(ctx, s, "root@example.com", "secret1")
	if err != nil || !created {
		t.Fatalf("expected bootstrap admin to be created, got %v, %v", created, err)
	}

	created, err = admins.EnsureBootstrap(ctx, s, "root@example.com", "other-pass")
	if err != nil || created {
		t.Errorf("second bootstrap should not create, got %v, %v", created, err)
	}
}

func TestStoreAgainstMongo(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	s := admins.New(db)
	if _, err := s.Create(ctx, "mongo@example.com", "Mongo", "secret1"); err != nil {
		t.Fatalf("Create: %v", err)
	}
	got, err := s.FindByEmail(ctx, "Mongo@Example.com")
	if err != nil || got == nil {
		t.Fatalf("FindByEmail: %v, %v", got, err)
	}
	if !admins.CheckPassword(got.PasswordHash, "secret1") {
		t.Error("stored hash does not match")
	}
}
