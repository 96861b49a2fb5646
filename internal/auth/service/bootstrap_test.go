package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/taskhubhq/taskhub/internal/auth/domain"
	"github.com/taskhubhq/taskhub/internal/auth/store"
)

func TestSeedManager(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := &BootstrapService{Store: st}
	login := newLoginService(t, st, &captureMailer{})

	require.NoError(t, svc.SeedManager(ctx, " Admin@Example.COM ", "Admin", "bootstrap123"))

	user, err := st.Users().GetUserByEmail(ctx, "admin@example.com")
	require.NoError(t, err)
	require.Equal(t, domain.RoleManager, user.Role)
	require.NotNil(t, user.VerifiedAt)
	require.True(t, user.Active)

	// The seed account logs straight in; no verification round trip.
	_, err = login.Login(ctx, "admin@example.com", "bootstrap123", "")
	require.NoError(t, err)

	t.Run("reseeding never overwrites", func(t *testing.T) {
		require.NoError(t, svc.SeedManager(ctx, "admin@example.com", "Admin", "rotated456"))

		_, err := login.Login(ctx, "admin@example.com", "rotated456", "")
		require.ErrorIs(t, err, ErrInvalidCredentials)
		_, err = login.Login(ctx, "admin@example.com", "bootstrap123", "")
		require.NoError(t, err)
	})

	t.Run("existing member accounts are left untouched", func(t *testing.T) {
		member := seedUser(t, st, "taken@example.com", "password123")
		require.NoError(t, svc.SeedManager(ctx, "taken@example.com", "Admin", "bootstrap123"))

		fresh, err := st.Users().GetUserByID(ctx, member.ID)
		require.NoError(t, err)
		require.Equal(t, domain.RoleMember, fresh.Role)
	})

	t.Run("unconfigured seed is a skip", func(t *testing.T) {
		require.NoError(t, svc.SeedManager(ctx, "", "Admin", ""))
		require.NoError(t, svc.SeedManager(ctx, "noone@example.com", "Admin", ""))

		_, err := st.Users().GetUserByEmail(ctx, "noone@example.com")
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("the configured password still meets policy", func(t *testing.T) {
		err := svc.SeedManager(ctx, "weak@example.com", "Admin", "short")
		require.ErrorIs(t, err, ErrWeakPassword)
	})
}

func TestGetProfile(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := &UserService{Store: st}

	user := seedUser(t, st, "casey@example.com", "password123")

	profile, err := svc.GetProfile(ctx, user.ID)
	require.NoError(t, err)
	require.Equal(t, user.ID, profile.User.ID)
	require.False(t, profile.TwoFactorEnabled)
	require.Zero(t, profile.BackupCodesLeft)

	enrollAndActivate(t, st, user.ID)

	profile, err = svc.GetProfile(ctx, user.ID)
	require.NoError(t, err)
	require.True(t, profile.TwoFactorEnabled)
	require.Equal(t, BackupCodeCount, profile.BackupCodesLeft)

	_, err = svc.GetProfile(ctx, "no-such-user")
	require.ErrorIs(t, err, store.ErrNotFound)
}
