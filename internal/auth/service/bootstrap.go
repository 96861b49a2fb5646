package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/taskhubhq/taskhub/internal/auth/domain"
	"github.com/taskhubhq/taskhub/internal/auth/store"
	"github.com/taskhubhq/taskhub/pkg/cryptox"
	"github.com/taskhubhq/taskhub/pkg/idx"
	"github.com/taskhubhq/taskhub/pkg/slogx"
)

// BootstrapService seeds the first manager account on startup. Registration
// only ever creates members, so without the seed nobody could create teams.
type BootstrapService struct {
	Store store.Store
}

// SeedManager ensures a verified manager account exists for the configured
// address. Safe to run on every boot: an existing account (any role) is
// left untouched, so rotating the configured password does not overwrite a
// live one.
func (s *BootstrapService) SeedManager(ctx context.Context, email, name, password string) error {
	l := slogx.FromContext(ctx)
	now := time.Now().UTC()
	email = normalizeEmail(email)

	if email == "" || password == "" {
		l.Info("manager seed not configured, skipping")
		return nil
	}
	if err := validatePassword(password); err != nil {
		return fmt.Errorf("seed manager password rejected by policy: %w", err)
	}

	// 1. Idempotence: the address already having an account means a
	// previous boot (or a real signup) owns it.
	_, err := s.Store.Users().GetUserByEmail(ctx, email)
	switch {
	case err == nil:
		l.Info("manager seed account already exists")
		return nil
	case !errors.Is(err, store.ErrNotFound):
		return err
	}

	// 2. Create it verified and active; the seed account never goes
	// through the email verification flow.
	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return fmt.Errorf("failed to hash seed manager password: %w", err)
	}
	user := domain.User{
		ID:           idx.New().String(),
		Email:        email,
		Name:         name,
		PasswordHash: hash,
		Role:         domain.RoleManager,
		VerifiedAt:   &now,
		Active:       true,
	}
	if err := s.Store.Users().CreateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			// Raced another replica doing the same seed.
			return nil
		}
		l.Error("failed to create seed manager", slog.Any("error", err))
		return err
	}

	l.Info("seeded manager account", slog.String("user_id", user.ID))
	return nil
}
