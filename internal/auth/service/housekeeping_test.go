package service

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/taskhubhq/taskhub/internal/auth/domain"
	"github.com/taskhubhq/taskhub/pkg/idx"
)

func TestHousekeepingCleanup(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	quiet := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := NewHousekeepingService(st, quiet, time.Hour)

	user := seedUser(t, st, "casey@example.com", "password123")
	other := seedUser(t, st, "other@example.com", "password123")
	manager := seedManager(t, st, "pm@example.com", "password123")
	team := seedTeam(t, st, manager)

	now := time.Now().UTC()
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	// One expired and one live row per swept table.
	require.NoError(t, st.Challenges().ReplaceChallenge(ctx, domain.Challenge{
		ID: idx.New().String(), UserID: other.ID, Channel: domain.ChannelTOTP,
		CreatedAt: past.Add(-time.Minute), ExpiresAt: past,
	}))
	require.NoError(t, st.Challenges().ReplaceChallenge(ctx, domain.Challenge{
		ID: "live-challenge", UserID: user.ID, Channel: domain.ChannelTOTP,
		CreatedAt: now, ExpiresAt: future,
	}))

	require.NoError(t, st.OTPCodes().ReplaceOTPCode(ctx, domain.OTPCode{
		ID: idx.New().String(), UserID: other.ID, Purpose: domain.OTPPurposePasswordReset,
		CodeFingerprint: "stale", CreatedAt: past.Add(-time.Minute), ExpiresAt: past,
	}))
	require.NoError(t, st.OTPCodes().ReplaceOTPCode(ctx, domain.OTPCode{
		ID: "live-code", UserID: user.ID, Purpose: domain.OTPPurposeRegistration,
		CodeFingerprint: "fresh", CreatedAt: now, ExpiresAt: future,
	}))

	require.NoError(t, st.Invitations().ReplaceInvitation(ctx, domain.TeamInvitation{
		ID: idx.New().String(), TeamID: team.ID, Email: "stale@example.com",
		InviterID: manager.ID, TokenHash: "stale-hash",
		CreatedAt: past.Add(-time.Minute), ExpiresAt: past,
	}))
	require.NoError(t, st.Invitations().ReplaceInvitation(ctx, domain.TeamInvitation{
		ID: "live-invitation", TeamID: team.ID, Email: "fresh@example.com",
		InviterID: manager.ID, TokenHash: "fresh-hash",
		CreatedAt: now, ExpiresAt: future,
	}))

	svc.cleanup()

	// Live rows survive the sweep.
	_, err := st.Challenges().GetChallenge(ctx, "live-challenge")
	require.NoError(t, err)
	_, err = st.OTPCodes().GetOTPCode(ctx, user.ID, domain.OTPPurposeRegistration)
	require.NoError(t, err)
	_, err = st.Invitations().GetInvitationByTokenHash(ctx, "fresh-hash")
	require.NoError(t, err)

	// The expired invitation row is really gone, not just hidden by reads:
	// its unique token hash is free for a new invitation again.
	require.NoError(t, st.Invitations().ReplaceInvitation(ctx, domain.TeamInvitation{
		ID: idx.New().String(), TeamID: team.ID, Email: "reclaimed@example.com",
		InviterID: manager.ID, TokenHash: "stale-hash",
		CreatedAt: now, ExpiresAt: future,
	}))
}

func TestHousekeepingStartStop(t *testing.T) {
	st := newTestStore(t)
	quiet := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := NewHousekeepingService(st, quiet, time.Hour)

	// Start runs one sweep immediately; Stop blocks until the worker exits.
	svc.Start()
	svc.Stop()

	require.NoError(t, st.Ping(context.Background()))
}
