package authclient

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/taskhubhq/taskhub/pkg/httpx"
)

// ============================================================================
// API Error Codes
// ============================================================================

const (
	// Error codes carried in the "error" field of error responses.
	ErrorCodeInvalidRequest       = "invalid_request"
	ErrorCodeInvalidCredentials   = "invalid_credentials"
	ErrorCodeInvalidToken         = "invalid_token"
	ErrorCodeInvalidCode          = "invalid_code"
	ErrorCodeChallengeInvalid     = "challenge_expired_or_invalid"
	ErrorCodeSecondFactorRequired = "second_factor_required"
	ErrorCodeTooManyAttempts      = "too_many_attempts"
	ErrorCodeForbidden            = "forbidden"
	ErrorCodeNotFound             = "not_found"
	ErrorCodeEmailTaken           = "email_taken"
	ErrorCodeWeakPassword         = "weak_password"
	ErrorCodeAccountInactive      = "account_inactive"
	ErrorCodeAccountUnverified    = "account_unverified"
	ErrorCodeDeliveryFailure      = "delivery_failure"
	ErrorCodeRateLimited          = "rate_limit_exceeded"
	ErrorCodeServerError          = "server_error"
)

// ============================================================================
// APIError - Standard API error type
// ============================================================================

// APIError represents an error response from the service. It implements the
// error interface and can be used both by the server (to write HTTP
// responses) and by the SDK client (to represent errors).
type APIError struct {
	// StatusCode is the HTTP status code for this error
	StatusCode int `json:"-"`

	// Code is the machine-readable error code (e.g., "invalid_credentials")
	Code string `json:"error"`

	// Description is a human-readable description of the error
	Description string `json:"error_description"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Description)
}

// WriteError writes this APIError to an HTTP response writer.
// This is used by HTTP handlers to return consistent error responses.
func (e *APIError) WriteError(w http.ResponseWriter) {
	httpx.NoCache(w)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(e.StatusCode)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error":             e.Code,
		"error_description": e.Description,
	})
}

// ============================================================================
// Predefined API Errors
// ============================================================================

var (
	// ErrInvalidRequest is returned when the request is missing a required
	// parameter, includes an invalid parameter value, or is otherwise malformed.
	ErrInvalidRequest = &APIError{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeInvalidRequest,
		Description: "the request is malformed or missing required parameters",
	}

	// ErrInvalidCredentials is returned when the email or password is wrong.
	// The description is identical for unknown accounts and wrong passwords.
	ErrInvalidCredentials = &APIError{
		StatusCode:  http.StatusUnauthorized,
		Code:        ErrorCodeInvalidCredentials,
		Description: "invalid email or password",
	}

	// ErrInvalidToken is returned when the access token is missing, invalid or expired.
	ErrInvalidToken = &APIError{
		StatusCode:  http.StatusUnauthorized,
		Code:        ErrorCodeInvalidToken,
		Description: "the access token is missing, invalid or expired",
	}

	// ErrInvalidCode is returned when a verification code does not match or
	// has expired.
	ErrInvalidCode = &APIError{
		StatusCode:  http.StatusUnauthorized,
		Code:        ErrorCodeInvalidCode,
		Description: "the verification code is invalid or has expired",
	}

	// ErrChallengeInvalid is returned when a challenge token does not
	// reference a pending login challenge. Expired and unknown tokens are
	// indistinguishable.
	ErrChallengeInvalid = &APIError{
		StatusCode:  http.StatusUnauthorized,
		Code:        ErrorCodeChallengeInvalid,
		Description: "the challenge has expired or does not exist, log in again",
	}

	// ErrTooManyAttempts is returned when a login challenge has burned
	// through its attempt budget.
	ErrTooManyAttempts = &APIError{
		StatusCode:  http.StatusTooManyRequests,
		Code:        ErrorCodeTooManyAttempts,
		Description: "too many failed attempts, log in again",
	}

	// ErrForbidden is returned when the authenticated user is not allowed to
	// perform the requested action.
	ErrForbidden = &APIError{
		StatusCode:  http.StatusForbidden,
		Code:        ErrorCodeForbidden,
		Description: "you do not have permission to perform this action",
	}

	// ErrNotFound is returned when the requested resource does not exist or
	// is not visible to the caller.
	ErrNotFound = &APIError{
		StatusCode:  http.StatusNotFound,
		Code:        ErrorCodeNotFound,
		Description: "the requested resource does not exist",
	}

	// ErrEmailTaken is returned when registering with an email that already
	// belongs to a verified account.
	ErrEmailTaken = &APIError{
		StatusCode:  http.StatusConflict,
		Code:        ErrorCodeEmailTaken,
		Description: "an account with this email already exists",
	}

	// ErrWeakPassword is returned when a password does not meet the policy.
	ErrWeakPassword = &APIError{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeWeakPassword,
		Description: "password must be at least 8 characters and contain a letter and a digit",
	}

	// ErrAccountInactive is returned when the account has been deactivated.
	ErrAccountInactive = &APIError{
		StatusCode:  http.StatusForbidden,
		Code:        ErrorCodeAccountInactive,
		Description: "this account has been deactivated",
	}

	// ErrAccountUnverified is returned when the email address has not been
	// verified yet.
	ErrAccountUnverified = &APIError{
		StatusCode:  http.StatusForbidden,
		Code:        ErrorCodeAccountUnverified,
		Description: "verify your email address before logging in",
	}

	// ErrDeliveryFailure is returned when a verification email could not be
	// handed to the mail provider.
	ErrDeliveryFailure = &APIError{
		StatusCode:  http.StatusBadGateway,
		Code:        ErrorCodeDeliveryFailure,
		Description: "could not send the verification email, try again",
	}

	// ErrServerError is returned when the service encountered an unexpected
	// condition that prevented it from fulfilling the request.
	ErrServerError = &APIError{
		StatusCode:  http.StatusInternalServerError,
		Code:        ErrorCodeServerError,
		Description: "internal server error",
	}
)

// NewAPIError creates a new APIError with the given status code, error code,
// and description. This is useful when you need custom error messages while
// keeping the response shape consistent.
func NewAPIError(statusCode int, code, description string) *APIError {
	return &APIError{
		StatusCode:  statusCode,
		Code:        code,
		Description: description,
	}
}

// ============================================================================
// Second Factor Challenge Response
// ============================================================================

// SecondFactorRequiredError is returned when a password login needs a second
// factor to complete. It is written with HTTP 202 Accepted because the
// credentials were valid but authentication is not finished yet; the caller
// must submit a code against the returned challenge token.
type SecondFactorRequiredError struct {
	// ChallengeToken identifies the pending login challenge
	ChallengeToken string `json:"challenge_token"`

	// Channel is the delivery channel for the second factor ("totp" or "email")
	Channel string `json:"channel"`

	// ExpiresAt is when the challenge stops being usable
	ExpiresAt time.Time `json:"expires_at"`
}

// Error implements the error interface.
func (e *SecondFactorRequiredError) Error() string {
	return fmt.Sprintf("second factor required: channel=%s", e.Channel)
}

// WriteError writes the challenge as a 202 Accepted response.
func (e *SecondFactorRequiredError) WriteError(w http.ResponseWriter) {
	httpx.NoCache(w)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted) // 202
	_ = json.NewEncoder(w).Encode(map[string]any{
		"second_factor_required": true,
		"challenge_token":        e.ChallengeToken,
		"channel":                e.Channel,
		"expires_at":             e.ExpiresAt,
	})
}

// ============================================================================
// Error Parsing Helpers
// ============================================================================

// parseErrorResponse attempts to parse an HTTP error response into a typed
// error. It checks for second factor challenges (202) and standard API
// errors. Returns nil if the response indicates a completed success.
func parseErrorResponse(resp *http.Response, body []byte) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 && resp.StatusCode != http.StatusAccepted {
		return nil
	}

	// Check for a pending second factor challenge (202 Accepted)
	if resp.StatusCode == http.StatusAccepted {
		var chResp struct {
			SecondFactorRequired bool      `json:"second_factor_required"`
			ChallengeToken       string    `json:"challenge_token"`
			Channel              string    `json:"channel"`
			ExpiresAt            time.Time `json:"expires_at"`
		}
		if err := json.Unmarshal(body, &chResp); err == nil && chResp.SecondFactorRequired {
			return &SecondFactorRequiredError{
				ChallengeToken: chResp.ChallengeToken,
				Channel:        chResp.Channel,
				ExpiresAt:      chResp.ExpiresAt,
			}
		}
		return nil
	}

	// Try parsing as a standard API error
	var errResp struct {
		Error            string `json:"error"`
		ErrorDescription string `json:"error_description"`
	}
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error != "" {
		return &APIError{
			StatusCode:  resp.StatusCode,
			Code:        errResp.Error,
			Description: errResp.ErrorDescription,
		}
	}

	// Fallback: create a generic error from the status code
	return &APIError{
		StatusCode:  resp.StatusCode,
		Code:        ErrorCodeServerError,
		Description: fmt.Sprintf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode)),
	}
}
