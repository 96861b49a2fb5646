package service

import (
	"context"

	"github.com/taskhubhq/taskhub/internal/auth/domain"
	"github.com/taskhubhq/taskhub/internal/auth/store"
)

type UserService struct {
	Store store.Store
}

// GetUserByID fetches a user by id.
func (s *UserService) GetUserByID(ctx context.Context, userID string) (domain.User, error) {
	return s.Store.Users().GetUserByID(ctx, userID)
}

// Profile bundles what /me exposes about an account: the user row plus
// whether two-factor is on and how many backup codes remain.
type Profile struct {
	User             domain.User
	TwoFactorEnabled bool
	BackupCodesLeft  int
}

// GetProfile assembles the caller's own profile.
func (s *UserService) GetProfile(ctx context.Context, userID string) (Profile, error) {
	user, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		return Profile{}, err
	}

	p := Profile{
		User:             user,
		TwoFactorEnabled: user.TOTPEnabledAt != nil,
	}
	if p.TwoFactorEnabled {
		n, err := s.Store.BackupCodes().CountUserBackupCodes(ctx, userID)
		if err != nil {
			return Profile{}, err
		}
		p.BackupCodesLeft = n
	}
	return p, nil
}
