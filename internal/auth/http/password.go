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

// PasswordHandler handles password change and reset endpoints.
type PasswordHandler struct {
	Service *service.PasswordService
}

// HandleForgotPassword handles POST /v1/auth/forgot-password
//
// Always reports success: a different answer for unknown addresses would
// leak which emails have accounts.
//
//	@Summary		Request a password reset
//	@Description	Emails a 6-digit reset code when the address belongs to an active, verified account. Always reports success.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authclient.ForgotPasswordRequest	true	"Reset request"
//	@Success		200		{object}	map[string]string					"Success message"
//	@Failure		400		{object}	authclient.ErrorResponse			"Invalid request"
//	@Failure		502		{object}	authclient.ErrorResponse			"Mail could not be sent"
//	@Router			/v1/auth/forgot-password [post].
func (h *PasswordHandler) HandleForgotPassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req authclient.ForgotPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn("failed to parse request", "err", err)
		authclient.ErrInvalidRequest.WriteError(w)
		return
	}

	if strings.TrimSpace(req.Email) == "" {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "Email is required")
		return
	}

	if err := h.Service.RequestPasswordReset(ctx, req.Email); err != nil {
		switch {
		case errors.Is(err, service.ErrDeliveryFailure):
			log.Warn("reset mail failed", "email", req.Email)
			authclient.ErrDeliveryFailure.WriteError(w)
		default:
			log.Error("failed to request password reset", "err", err)
			authclient.ErrServerError.WriteError(w)
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, map[string]string{
		"message": "If the address has an account, a reset code is on its way",
	})
}

// HandleResetPassword handles POST /v1/auth/reset-password
//
//	@Summary		Reset a forgotten password
//	@Description	Redeems an emailed reset code and replaces the password. Codes are single use and expire after 15 minutes.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authclient.ResetPasswordRequest	true	"Reset request"
//	@Success		200		{object}	map[string]string				"Success message"
//	@Failure		400		{object}	authclient.ErrorResponse		"Invalid request or weak password"
//	@Failure		401		{object}	authclient.ErrorResponse		"Wrong, expired or already used code"
//	@Router			/v1/auth/reset-password [post].
func (h *PasswordHandler) HandleResetPassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req authclient.ResetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn("failed to parse request", "err", err)
		authclient.ErrInvalidRequest.WriteError(w)
		return
	}

	if err := h.Service.ResetPassword(ctx, req.Email, req.Code, req.NewPassword); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCode):
			authclient.ErrInvalidCode.WriteError(w)
		case errors.Is(err, service.ErrWeakPassword):
			authclient.ErrWeakPassword.WriteError(w)
		default:
			log.Error("failed to reset password", "err", err)
			authclient.ErrServerError.WriteError(w)
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, map[string]string{
		"message": "Password updated, you can now log in",
	})
}

// HandleChangePassword handles POST /v1/me/password
//
//	@Summary		Change the password
//	@Description	Replaces the password of the authenticated account after checking the current one.
//	@Tags			Me
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authclient.ChangePasswordRequest	true	"Change request"
//	@Success		200		{object}	map[string]string					"Success message"
//	@Failure		400		{object}	authclient.ErrorResponse			"Weak or reused password"
//	@Failure		401		{object}	authclient.ErrorResponse			"Wrong current password or missing token"
//	@Router			/v1/me/password [post].
func (h *PasswordHandler) HandleChangePassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	// Get user ID from context (injected by AuthnMiddleware)
	userID, ok := ctx.Value(httpx.CtxKeyUserID).(string)
	if !ok || userID == "" {
		authclient.ErrInvalidToken.WriteError(w)
		return
	}

	var req authclient.ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn("failed to parse request", "err", err)
		authclient.ErrInvalidRequest.WriteError(w)
		return
	}

	if err := h.Service.ChangePassword(ctx, userID, req.CurrentPassword, req.NewPassword); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			authclient.ErrInvalidCredentials.WriteError(w)
		case errors.Is(err, service.ErrWeakPassword):
			authclient.ErrWeakPassword.WriteError(w)
		case errors.Is(err, service.ErrPasswordReuse):
			httpx.WriteError(w, http.StatusBadRequest, "password_reuse",
				"New password must differ from the current one")
		default:
			log.Error("failed to change password", "user_id", userID, "err", err)
			authclient.ErrServerError.WriteError(w)
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, map[string]string{
		"message": "Password updated",
	})
}
