package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/taskhubhq/taskhub/internal/auth/domain"
	"github.com/taskhubhq/taskhub/internal/auth/mail"
	"github.com/taskhubhq/taskhub/internal/auth/store"
	"github.com/taskhubhq/taskhub/pkg/cryptox"
	"github.com/taskhubhq/taskhub/pkg/idx"
	"github.com/taskhubhq/taskhub/pkg/slogx"
)

// InvitationTTL is how long a team invitation stays redeemable.
const InvitationTTL = 7 * 24 * time.Hour

var (
	// ErrAlreadyMember is returned when inviting someone who already sits
	// on the team, or redeeming an invitation while already a member.
	ErrAlreadyMember = errors.New("already_member")

	// ErrInvitationInvalid is returned when an invitation token does not
	// reference a live invitation. Expired and unknown read the same.
	ErrInvitationInvalid = errors.New("invitation_expired_or_invalid")
)

// TeamService manages teams, their members and invitations. Every mutating
// operation runs through the policy rules first.
type TeamService struct {
	Store  store.Store
	Mailer mail.Mailer
	Policy *PolicyService
}

// CreateTeam creates a team with the caller as its manager. Only accounts
// with the manager role may create teams.
func (s *TeamService) CreateTeam(ctx context.Context, userID, name, description string) (domain.Team, error) {
	l := slogx.FromContext(ctx)
	now := time.Now().UTC()

	user, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		return domain.Team{}, err
	}
	if user.Role != domain.RoleManager {
		return domain.Team{}, ErrForbidden
	}

	team := domain.Team{
		ID:          idx.New().String(),
		Name:        name,
		Description: description,
		ManagerID:   userID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	// The team and its first membership land together or not at all.
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Teams().CreateTeam(ctx, team); err != nil {
			return err
		}
		return tx.Memberships().AddMember(ctx, domain.TeamMember{
			TeamID:   team.ID,
			UserID:   userID,
			Role:     domain.TeamRoleManager,
			JoinedAt: now,
		})
	})
	if err != nil {
		l.Error("failed to create team", slog.Any("error", err))
		return domain.Team{}, err
	}

	l.Info("team created",
		slog.String("team_id", team.ID),
		slog.String("manager_id", userID))
	return team, nil
}

// GetTeam returns one team. Membership gates visibility, so outsiders get
// the same denial whether the team exists or not.
func (s *TeamService) GetTeam(ctx context.Context, userID, teamID string) (domain.Team, error) {
	if err := s.Policy.AuthorizeTeam(ctx, userID, ActionTeamView, teamID); err != nil {
		return domain.Team{}, err
	}
	return s.Store.Teams().GetTeamByID(ctx, teamID)
}

// ListTeams returns every team the user belongs to, newest first.
func (s *TeamService) ListTeams(ctx context.Context, userID string) ([]domain.Team, error) {
	return s.Store.Teams().ListTeamsByUser(ctx, userID)
}

// UpdateTeam renames or redescribes a team. Manager only.
func (s *TeamService) UpdateTeam(ctx context.Context, userID, teamID, name, description string) (domain.Team, error) {
	if err := s.Policy.AuthorizeTeam(ctx, userID, ActionTeamUpdate, teamID); err != nil {
		return domain.Team{}, err
	}
	if err := s.Store.Teams().UpdateTeam(ctx, teamID, name, description); err != nil {
		return domain.Team{}, err
	}
	return s.Store.Teams().GetTeamByID(ctx, teamID)
}

// DeleteTeam removes a team with its memberships, invitations and team
// tasks. Manager only.
func (s *TeamService) DeleteTeam(ctx context.Context, userID, teamID string) error {
	if err := s.Policy.AuthorizeTeam(ctx, userID, ActionTeamDelete, teamID); err != nil {
		return err
	}
	if err := s.Store.Teams().DeleteTeam(ctx, teamID); err != nil {
		return err
	}
	slogx.FromContext(ctx).Info("team deleted",
		slog.String("team_id", teamID),
		slog.String("user_id", userID))
	return nil
}

// ListMembers returns the membership roster of a team, oldest first.
func (s *TeamService) ListMembers(ctx context.Context, userID, teamID string) ([]domain.TeamMember, error) {
	if err := s.Policy.AuthorizeTeam(ctx, userID, ActionMemberList, teamID); err != nil {
		return nil, err
	}
	return s.Store.Memberships().ListMembers(ctx, teamID)
}

// InviteMember emails an invitation token for a team. Manager only. The
// address does not need an account yet; the invitation is redeemed by
// whoever registers it. Re-inviting the same address replaces the previous
// invitation.
func (s *TeamService) InviteMember(ctx context.Context, inviterID, teamID, email string) (domain.TeamInvitation, error) {
	l := slogx.FromContext(ctx)
	now := time.Now().UTC()
	email = normalizeEmail(email)

	// 1. Only the manager invites.
	if err := s.Policy.AuthorizeTeam(ctx, inviterID, ActionMemberInvite, teamID); err != nil {
		return domain.TeamInvitation{}, err
	}

	// 2. Inviting a current member is a caller mistake worth naming.
	if existing, err := s.Store.Users().GetUserByEmail(ctx, email); err == nil {
		if _, merr := s.Store.Memberships().GetMember(ctx, teamID, existing.ID); merr == nil {
			return domain.TeamInvitation{}, ErrAlreadyMember
		} else if !errors.Is(merr, store.ErrNotFound) {
			return domain.TeamInvitation{}, merr
		}
	} else if !errors.Is(err, store.ErrNotFound) {
		return domain.TeamInvitation{}, err
	}

	// 3. Mint the token. Only its fingerprint is stored; the raw token
	// exists in the mail body alone.
	token, err := cryptox.GenerateToken(cryptox.TokenSize256)
	if err != nil {
		return domain.TeamInvitation{}, fmt.Errorf("failed to generate invitation token: %w", err)
	}
	inv := domain.TeamInvitation{
		ID:        idx.New().String(),
		TeamID:    teamID,
		Email:     email,
		InviterID: inviterID,
		TokenHash: cryptox.FingerprintToken(token),
		CreatedAt: now,
		ExpiresAt: now.Add(InvitationTTL),
	}
	if err := s.Store.Invitations().ReplaceInvitation(ctx, inv); err != nil {
		l.Error("failed to store invitation", slog.Any("error", err))
		return domain.TeamInvitation{}, err
	}

	// 4. Mail it. A failed send keeps the invitation so a retry only needs
	// to re-invite.
	team, err := s.Store.Teams().GetTeamByID(ctx, teamID)
	if err != nil {
		return domain.TeamInvitation{}, err
	}
	subject := fmt.Sprintf("You have been invited to join %s", team.Name)
	body := fmt.Sprintf("Use this invitation token to join %s: %s\nThe invitation expires in %d days.",
		team.Name, token, int(InvitationTTL.Hours()/24))
	if err := s.Mailer.Send(ctx, email, subject, body); err != nil {
		l.Error("failed to send invitation",
			slog.String("team_id", teamID),
			slog.Any("error", err))
		return domain.TeamInvitation{}, ErrDeliveryFailure
	}

	l.Info("member invited", slog.String("team_id", teamID))
	return inv, nil
}

// AcceptInvitation redeems an invitation token for the authenticated user.
// The token must have been issued to the user's own email address, and each
// invitation joins exactly one member: the delete is the single-use gate.
func (s *TeamService) AcceptInvitation(ctx context.Context, userID, token string) (domain.Team, error) {
	l := slogx.FromContext(ctx)
	now := time.Now().UTC()

	// 1. Look the invitation up by fingerprint. Expired reads as missing.
	inv, err := s.Store.Invitations().GetInvitationByTokenHash(ctx, cryptox.FingerprintToken(token))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Team{}, ErrInvitationInvalid
		}
		return domain.Team{}, err
	}

	// 2. The redeemer must be the invited address.
	user, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		return domain.Team{}, err
	}
	if user.Email != inv.Email {
		return domain.Team{}, ErrForbidden
	}

	// 3. Consume the invitation and add the membership together.
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Invitations().DeleteInvitation(ctx, inv.ID); err != nil {
			return err
		}
		return tx.Memberships().AddMember(ctx, domain.TeamMember{
			TeamID:   inv.TeamID,
			UserID:   userID,
			Role:     domain.TeamRoleMember,
			JoinedAt: now,
		})
	})
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			// Someone else redeemed it first.
			return domain.Team{}, ErrInvitationInvalid
		case errors.Is(err, store.ErrAlreadyExists):
			return domain.Team{}, ErrAlreadyMember
		}
		l.Error("failed to accept invitation",
			slog.String("team_id", inv.TeamID),
			slog.Any("error", err))
		return domain.Team{}, err
	}

	l.Info("invitation accepted",
		slog.String("team_id", inv.TeamID),
		slog.String("user_id", userID))
	return s.Store.Teams().GetTeamByID(ctx, inv.TeamID)
}

// RemoveMember removes target from a team. Members may remove themselves
// (leaving the team); the manager may remove anyone else. The manager
// cannot be removed, including by themselves.
func (s *TeamService) RemoveMember(ctx context.Context, actorID, teamID, targetID string) error {
	if err := s.Policy.AuthorizeMemberRemove(ctx, actorID, targetID, teamID); err != nil {
		return err
	}
	if err := s.Store.Memberships().RemoveMember(ctx, teamID, targetID); err != nil {
		return err
	}
	slogx.FromContext(ctx).Info("member removed",
		slog.String("team_id", teamID),
		slog.String("user_id", targetID),
		slog.String("removed_by", actorID))
	return nil
}
