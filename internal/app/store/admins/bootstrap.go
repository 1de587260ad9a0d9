// internal/app/store/admins/bootstrap.go
package admins

import (
	"context"
	"errors"
)

// EnsureBootstrap creates the first admin account when email is set and no
// account exists for it yet. An existing account is left alone.
func EnsureBootstrap(ctx context.Context, dir Directory, email, password string) (bool, error) {
	if NormalizeEmail(email) == "" {
		return false, nil
	}
	existing, err := dir.FindByEmail(ctx, email)
	if err != nil {
		return false, err
	}
	if existing != nil {
		return false, nil
	}
	if _, err := dir.Create(ctx, email, "Administrator", password); err != nil {
		if errors.Is(err, ErrExists) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
