package store

import (
	"context"
	"errors"
	"time"

	"github.com/taskhubhq/taskhub/internal/auth/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite, postgres)
// implement this. It exposes sub-repositories to keep concerns tidy and
// testable. We can change having the sub-repos as methods later but we do it
// now so we can have more control and actively stop people from accidently
// doing transactions within transactions.
type Store interface {
	Users() Users
	Challenges() Challenges
	OTPCodes() OTPCodes
	BackupCodes() BackupCodes
	Teams() Teams
	Memberships() Memberships
	Invitations() Invitations
	Tasks() Tasks

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// Use it for multi-step operations that must be atomic (e.g., challenge
	// consumption). The caller MUST call Commit() or Rollback() on the
	// returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	// If fn returns nil, the transaction is committed.
	// This is the recommended way to handle transactions as it automatically
	// handles commit/rollback logic.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources (optional for sqlite).
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	// GetUserByID returns a user by id.
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByEmail looks a user up by their (lowercased) email address.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// CreateUser inserts a new user (id is provided by app via ULID).
	CreateUser(ctx context.Context, u domain.User) error

	// DeleteUser removes a user row; dependent rows cascade per schema.
	DeleteUser(ctx context.Context, userID string) error

	// UpdatePasswordHash sets the password_hash (argon2) and bumps updated_at.
	UpdatePasswordHash(ctx context.Context, userID string, newHash string) error

	// MarkVerified stamps verified_at for a user.
	MarkVerified(ctx context.Context, userID string) error

	// UpdateLastLogin stamps last_login for a user.
	UpdateLastLogin(ctx context.Context, userID string) error

	// UpdateTOTPSecret sets the TOTP secret for a user. Enrollment may be
	// repeated before activation; each call overwrites the previous secret.
	UpdateTOTPSecret(ctx context.Context, userID string, secret string) error

	// EnableTOTP marks 2FA as active for a user (sets totp_enabled_at).
	EnableTOTP(ctx context.Context, userID string) error

	// DisableTOTP clears totp_enabled_at, totp_secret and totp_last_step.
	DisableTOTP(ctx context.Context, userID string) error

	// ConsumeTOTPStep records step as the newest consumed TOTP time step.
	// Returns ErrNotFound when step is not newer than the stored one, so two
	// concurrent verifications cannot both spend the same code.
	ConsumeTOTPStep(ctx context.Context, userID string, step int64) error
}

type Challenges interface {
	// ReplaceChallenge removes any existing challenge for the same user and
	// inserts ch, so a repeated login always wins the pending slot.
	ReplaceChallenge(ctx context.Context, ch domain.Challenge) error

	// GetChallenge retrieves a challenge by its token (only if not expired).
	GetChallenge(ctx context.Context, id string) (domain.Challenge, error)

	// IncrementChallengeAttempts increments the failed attempt counter.
	// Returns the updated Challenge with the new attempt count.
	IncrementChallengeAttempts(ctx context.Context, id string) (domain.Challenge, error)

	// SetEmailCode switches the challenge to the email channel and records
	// the fingerprint and expiry of the freshly generated code.
	SetEmailCode(ctx context.Context, id string, fingerprint string, expiresAt time.Time) error

	// DeleteChallenge removes a challenge by its token. Returns ErrNotFound
	// when no row was deleted, which makes the delete usable as the
	// single-use commit point.
	DeleteChallenge(ctx context.Context, id string) error

	// DeleteExpiredChallenges removes all expired challenges (housekeeping).
	DeleteExpiredChallenges(ctx context.Context) error
}

type OTPCodes interface {
	// ReplaceOTPCode removes any existing code for the same (user, purpose)
	// and inserts c, so resending always invalidates the previous code.
	ReplaceOTPCode(ctx context.Context, c domain.OTPCode) error

	// GetOTPCode returns the active (not expired) code for a user and purpose.
	GetOTPCode(ctx context.Context, userID, purpose string) (domain.OTPCode, error)

	// DeleteOTPCode consumes a code after successful use.
	DeleteOTPCode(ctx context.Context, id string) error

	// DeleteExpiredOTPCodes removes all expired codes (housekeeping).
	DeleteExpiredOTPCodes(ctx context.Context) error
}

type BackupCodes interface {
	// CreateBackupCode stores a backup code hash for a user.
	CreateBackupCode(ctx context.Context, userID string, codeHash string) error

	// VerifyBackupCode checks if a backup code hash exists for a user.
	VerifyBackupCode(ctx context.Context, userID string, codeHash string) (bool, error)

	// DeleteBackupCode removes a specific backup code after use.
	DeleteBackupCode(ctx context.Context, userID string, codeHash string) error

	// DeleteAllBackupCodes removes all backup codes for a user.
	DeleteAllBackupCodes(ctx context.Context, userID string) error

	// CountUserBackupCodes returns the number of backup codes for a user.
	CountUserBackupCodes(ctx context.Context, userID string) (int, error)
}

type Teams interface {
	// CreateTeam inserts a new team (id is ULID).
	CreateTeam(ctx context.Context, t domain.Team) error

	// GetTeamByID fetches a team by its id.
	GetTeamByID(ctx context.Context, id string) (domain.Team, error)

	// ListTeamsByUser returns all teams the user is a member of, newest first.
	ListTeamsByUser(ctx context.Context, userID string) ([]domain.Team, error)

	// UpdateTeam sets name and description and bumps updated_at.
	UpdateTeam(ctx context.Context, id, name, description string) error

	// DeleteTeam removes a team; members, invitations and team tasks cascade.
	DeleteTeam(ctx context.Context, id string) error
}

type Memberships interface {
	// AddMember inserts a membership row.
	AddMember(ctx context.Context, m domain.TeamMember) error

	// GetMember returns the membership row for (team, user).
	GetMember(ctx context.Context, teamID, userID string) (domain.TeamMember, error)

	// ListMembers returns all members of a team ordered by join date.
	ListMembers(ctx context.Context, teamID string) ([]domain.TeamMember, error)

	// RemoveMember deletes a membership row. Returns ErrNotFound when the
	// user was not a member.
	RemoveMember(ctx context.Context, teamID, userID string) error
}

type Invitations interface {
	// ReplaceInvitation removes any existing invitation for the same
	// (team, email) and inserts inv.
	ReplaceInvitation(ctx context.Context, inv domain.TeamInvitation) error

	// GetInvitationByTokenHash returns a not-expired invitation by hash.
	GetInvitationByTokenHash(ctx context.Context, hash string) (domain.TeamInvitation, error)

	// DeleteInvitation removes an invitation after redemption or revocation.
	DeleteInvitation(ctx context.Context, id string) error

	// DeleteExpiredInvitations removes all expired invitations (housekeeping).
	DeleteExpiredInvitations(ctx context.Context) error
}

type Tasks interface {
	// CreateTask inserts a new task (id is ULID).
	CreateTask(ctx context.Context, t domain.Task) error

	// GetTaskByID fetches a task by its id.
	GetTaskByID(ctx context.Context, id string) (domain.Task, error)

	// ListTasksByUser returns the user's personal tasks plus every task of
	// the teams they belong to, newest first.
	ListTasksByUser(ctx context.Context, userID string) ([]domain.Task, error)

	// UpdateTask writes all mutable task fields and bumps updated_at.
	UpdateTask(ctx context.Context, t domain.Task) error

	// DeleteTask removes a task.
	DeleteTask(ctx context.Context, id string) error
}
