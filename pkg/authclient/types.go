package authclient

import "time"

// ============================================================================
// Internal Response Types (used for JSON unmarshaling)
// ============================================================================

// ErrorResponse is the standard error envelope every failing endpoint
// returns. Client code should use the APIError type from errors.go instead.
type ErrorResponse struct {
	// Error is the machine-readable error code (e.g., "invalid_credentials")
	Error string `json:"error"`

	// ErrorDescription is a human-readable description of the error
	ErrorDescription string `json:"error_description"`
}

// ============================================================================
// Registration Types
// ============================================================================

// RegisterRequest creates a new account. The address receives a 6-digit
// verification code; the account cannot log in until it is verified.
type RegisterRequest struct {
	Email    string `json:"email" example:"casey@example.com"`
	Name     string `json:"name" example:"Casey"`
	Password string `json:"password"` // min 8 chars, at least one letter and one digit
}

// RegisterResponse describes the freshly created, still unverified account.
type RegisterResponse struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
}

// VerifyEmailRequest redeems an emailed verification code.
type VerifyEmailRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"` // 6-digit code from the verification mail
}

// ResendCodeRequest asks for a fresh verification code. Always reports
// success so it cannot confirm which addresses have accounts.
type ResendCodeRequest struct {
	Email string `json:"email"`
}

// ============================================================================
// Login Types
// ============================================================================

// LoginRequest authenticates with email and password. When the account has
// two-factor enabled the response is a 202 challenge instead of a token;
// Channel picks the preferred second-factor delivery ("totp" or "email",
// default "totp").
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Channel  string `json:"channel,omitempty"`
}

// TokenResponse carries the session token issued by a completed login.
// There are no refresh tokens; expiry is the only exit.
type TokenResponse struct {
	// AccessToken is the signed JWT used to authenticate API requests
	AccessToken string `json:"access_token"`

	// TokenType is always "Bearer"
	TokenType string `json:"token_type"`

	// ExpiresIn is the lifetime in seconds of the access token
	ExpiresIn int64 `json:"expires_in"`
}

// SecondFactorChallengeResponse is the 202 body returned when a password
// login needs a second factor to complete.
type SecondFactorChallengeResponse struct {
	SecondFactorRequired bool      `json:"second_factor_required"` // always true
	ChallengeToken       string    `json:"challenge_token"`
	Channel              string    `json:"channel"` // "totp" or "email"
	ExpiresAt            time.Time `json:"expires_at"`
}

// SecondFactorVerifyRequest completes a pending login challenge. Method
// defaults to the challenge's channel; "backup" redeems a backup code.
type SecondFactorVerifyRequest struct {
	ChallengeToken string `json:"challenge_token"`
	Method         string `json:"method,omitempty"` // "totp", "email" or "backup"
	Code           string `json:"code"`
}

// SendCodeRequest asks for an emailed login code against a pending
// challenge, switching the challenge to the email channel.
type SendCodeRequest struct {
	ChallengeToken string `json:"challenge_token"`
}

// ============================================================================
// Password Types
// ============================================================================

// ForgotPasswordRequest asks for an emailed password reset code. Always
// reports success so it cannot confirm which addresses have accounts.
type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

// ResetPasswordRequest redeems a reset code and replaces the password.
type ResetPasswordRequest struct {
	Email       string `json:"email"`
	Code        string `json:"code"` // 6-digit code from the reset mail
	NewPassword string `json:"new_password"`
}

// ChangePasswordRequest swaps the password of the authenticated account.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// ============================================================================
// Profile Types
// ============================================================================

// ProfileResponse is what GET /v1/me exposes about the authenticated account.
type ProfileResponse struct {
	UserID               string     `json:"user_id"`
	Email                string     `json:"email"`
	Name                 string     `json:"name"`
	Role                 string     `json:"role"` // "manager" or "member"
	TwoFactorEnabled     bool       `json:"two_factor_enabled"`
	BackupCodesRemaining int        `json:"backup_codes_remaining"`
	VerifiedAt           *time.Time `json:"verified_at,omitempty"`
	LastLogin            *time.Time `json:"last_login,omitempty"`
	CreatedAt            time.Time  `json:"created_at"`
}

// ============================================================================
// Two-Factor Types
// ============================================================================

// TOTPEnrollResponse carries the provisioning material for an authenticator
// app. The secret stays inactive until one code is verified via activate.
type TOTPEnrollResponse struct {
	Secret  string `json:"secret" example:"JBSWY3DPEHPK3PXP"`
	URI     string `json:"uri" example:"otpauth://totp/taskhub:casey@example.com?secret=JBSWY3DPEHPK3PXP&issuer=taskhub"`
	Issuer  string `json:"issuer"`
	Account string `json:"account"`
}

// TOTPActivateRequest turns two-factor on after enrollment.
type TOTPActivateRequest struct {
	Code string `json:"code"` // 6-digit code from the authenticator app
}

// TwoFactorDisableRequest turns two-factor off. Method defaults to "totp";
// "backup" proves possession with a backup code instead.
type TwoFactorDisableRequest struct {
	Method string `json:"method,omitempty"` // "totp" or "backup"
	Code   string `json:"code"`
}

// BackupCodesRegenerateRequest replaces all backup codes. Requires a
// currently valid authenticator code.
type BackupCodesRegenerateRequest struct {
	Code string `json:"code"` // 6-digit code from the authenticator app
}

// BackupCodesResponse carries freshly minted backup codes. They are shown
// exactly once; only fingerprints are stored.
type BackupCodesResponse struct {
	Codes []string `json:"codes"`
}

// ============================================================================
// Team Types
// ============================================================================

// CreateTeamRequest creates a team with the caller as its manager.
type CreateTeamRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// UpdateTeamRequest renames or redescribes a team. Nil fields keep their
// current value.
type UpdateTeamRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}

// TeamResponse describes one team.
type TeamResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	ManagerID   string    `json:"manager_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ListTeamsResponse lists every team the caller belongs to.
type ListTeamsResponse struct {
	Teams []TeamResponse `json:"teams"`
}

// MemberResponse describes one membership row.
type MemberResponse struct {
	UserID   string    `json:"user_id"`
	Role     string    `json:"role"` // "manager" or "member"
	JoinedAt time.Time `json:"joined_at"`
}

// ListMembersResponse lists the roster of a team.
type ListMembersResponse struct {
	Members []MemberResponse `json:"members"`
}

// InviteMemberRequest emails an invitation for a team. The invitation token
// only ever travels in the mail body.
type InviteMemberRequest struct {
	Email string `json:"email"`
}

// InvitationResponse describes a pending invitation. It never carries the
// raw token.
type InvitationResponse struct {
	TeamID    string    `json:"team_id"`
	Email     string    `json:"email"`
	ExpiresAt time.Time `json:"expires_at"`
}

// AcceptInvitationRequest redeems an emailed invitation token for the
// authenticated account.
type AcceptInvitationRequest struct {
	Token string `json:"token"`
}

// ============================================================================
// Task Types
// ============================================================================

// CreateTaskRequest creates a task owned by the caller. A nil TeamID makes
// it personal; assignment requires a team.
type CreateTaskRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Status      string     `json:"status,omitempty"`   // default "pending"
	Priority    string     `json:"priority,omitempty"` // default "medium"
	TeamID      *string    `json:"team_id,omitempty"`
	AssigneeID  *string    `json:"assignee_id,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
}

// UpdateTaskRequest is a partial task update. Nil fields keep their current
// value; an empty assignee_id or zero due_date clears the field.
type UpdateTaskRequest struct {
	Title       *string    `json:"title,omitempty"`
	Description *string    `json:"description,omitempty"`
	Status      *string    `json:"status,omitempty"`
	Priority    *string    `json:"priority,omitempty"`
	AssigneeID  *string    `json:"assignee_id,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
}

// TaskResponse describes one task.
type TaskResponse struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Status      string     `json:"status"`
	Priority    string     `json:"priority"`
	OwnerID     string     `json:"owner_id"`
	AssigneeID  *string    `json:"assignee_id,omitempty"`
	TeamID      *string    `json:"team_id,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// ListTasksResponse lists every task visible to the caller: personal tasks
// they own plus all tasks of their teams.
type ListTasksResponse struct {
	Tasks []TaskResponse `json:"tasks"`
}

// ============================================================================
// Health Types
// ============================================================================

// HealthResponse is the body of the /livez and /readyz probes. Checks is
// only present on /readyz.
type HealthResponse struct {
	// Status indicates the overall health status (e.g., "ok")
	Status string `json:"status"`

	// Uptime is the service uptime duration as a string (e.g., "1h23m45s")
	Uptime string `json:"uptime,omitempty"`

	// Version is the service version string
	Version string `json:"version,omitempty"`

	// Checks contains readiness check results for critical dependencies
	Checks *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks reports the status of critical service dependencies.
type HealthChecks struct {
	// Database indicates the database connection status
	Database string `json:"database"`
}
