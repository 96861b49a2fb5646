package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/taskhubhq/taskhub/internal/auth/service"
	"github.com/taskhubhq/taskhub/pkg/authclient"
	"github.com/taskhubhq/taskhub/pkg/httpx"
	"github.com/taskhubhq/taskhub/pkg/slogx"
)

// RegistrationHandler handles signup and email verification endpoints.
type RegistrationHandler struct {
	Service *service.RegistrationService
}

// HandleRegister handles POST /v1/auth/register
//
//	@Summary		Register a new account
//	@Description	Creates an unverified account and emails it a 6-digit verification code. The account cannot log in until verified.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authclient.RegisterRequest	true	"Registration request"
//	@Success		201		{object}	authclient.RegisterResponse
//	@Failure		400		{object}	authclient.ErrorResponse	"Invalid request or weak password"
//	@Failure		409		{object}	authclient.ErrorResponse	"Email already registered"
//	@Failure		502		{object}	authclient.ErrorResponse	"Verification mail could not be sent"
//	@Router			/v1/auth/register [post].
func (h *RegistrationHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	// Parse request body
	var req authclient.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn("failed to parse request", "err", err)
		authclient.ErrInvalidRequest.WriteError(w)
		return
	}

	if strings.TrimSpace(req.Email) == "" || strings.TrimSpace(req.Name) == "" {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "Email and name are required")
		return
	}

	user, err := h.Service.Register(ctx, req.Email, req.Name, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmailTaken):
			authclient.ErrEmailTaken.WriteError(w)
		case errors.Is(err, service.ErrWeakPassword):
			authclient.ErrWeakPassword.WriteError(w)
		case errors.Is(err, service.ErrDeliveryFailure):
			log.Warn("verification mail failed", "email", req.Email)
			authclient.ErrDeliveryFailure.WriteError(w)
		default:
			log.Error("failed to register account", "err", err)
			authclient.ErrServerError.WriteError(w)
		}
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, authclient.RegisterResponse{
		UserID: user.ID,
		Email:  user.Email,
		Name:   user.Name,
	})
}

// HandleVerifyEmail handles POST /v1/auth/verify-email
//
//	@Summary		Verify an email address
//	@Description	Redeems the emailed 6-digit code and marks the account verified. Codes are single use and expire after 15 minutes.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authclient.VerifyEmailRequest	true	"Verification request"
//	@Success		200		{object}	map[string]string				"Success message"
//	@Failure		400		{object}	authclient.ErrorResponse		"Invalid request"
//	@Failure		401		{object}	authclient.ErrorResponse		"Wrong, expired or already used code"
//	@Router			/v1/auth/verify-email [post].
func (h *RegistrationHandler) HandleVerifyEmail(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req authclient.VerifyEmailRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn("failed to parse request", "err", err)
		authclient.ErrInvalidRequest.WriteError(w)
		return
	}

	if err := h.Service.VerifyEmail(ctx, req.Email, req.Code); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCode):
			authclient.ErrInvalidCode.WriteError(w)
		default:
			log.Error("failed to verify email", "err", err)
			authclient.ErrServerError.WriteError(w)
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, map[string]string{
		"message": "Email verified, you can now log in",
	})
}

// HandleResendCode handles POST /v1/auth/resend-code
//
// Always reports success: a different answer for unknown addresses would
// leak which emails have accounts.
//
//	@Summary		Resend the verification code
//	@Description	Emails a fresh verification code, invalidating the previous one. Always reports success.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authclient.ResendCodeRequest	true	"Resend request"
//	@Success		200		{object}	map[string]string				"Success message"
//	@Failure		400		{object}	authclient.ErrorResponse		"Invalid request"
//	@Failure		502		{object}	authclient.ErrorResponse		"Mail could not be sent"
//	@Router			/v1/auth/resend-code [post].
func (h *RegistrationHandler) HandleResendCode(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req authclient.ResendCodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn("failed to parse request", "err", err)
		authclient.ErrInvalidRequest.WriteError(w)
		return
	}

	if strings.TrimSpace(req.Email) == "" {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "Email is required")
		return
	}

	if err := h.Service.ResendVerificationCode(ctx, req.Email); err != nil {
		switch {
		case errors.Is(err, service.ErrDeliveryFailure):
			log.Warn("verification mail failed", "email", req.Email)
			authclient.ErrDeliveryFailure.WriteError(w)
		default:
			log.Error("failed to resend verification code", "err", err)
			authclient.ErrServerError.WriteError(w)
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, map[string]string{
		"message": "If the address has a pending registration, a new code is on its way",
	})
}
