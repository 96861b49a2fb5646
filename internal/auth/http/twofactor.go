package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/taskhubhq/taskhub/internal/auth/service"
	"github.com/taskhubhq/taskhub/pkg/authclient"
	"github.com/taskhubhq/taskhub/pkg/httpx"
	"github.com/taskhubhq/taskhub/pkg/slogx"
)

// TwoFactorHandler handles all two-factor management endpoints.
type TwoFactorHandler struct {
	Service *service.TwoFactorService
}

// HandleEnroll handles POST /v1/me/2fa/enroll
//
//	@Summary		Enroll in two-factor
//	@Description	Generates an authenticator secret and provisioning URI. The secret stays inactive until one code is verified via activate.
//	@Tags			TwoFactor
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	authclient.TOTPEnrollResponse	"Secret and provisioning URI"
//	@Failure		400	{object}	authclient.ErrorResponse		"Two-factor already enabled"
//	@Failure		401	{object}	authclient.ErrorResponse		"Invalid or missing access token"
//	@Failure		500	{object}	authclient.ErrorResponse		"Internal server error"
//	@Router			/v1/me/2fa/enroll [post].
func (h *TwoFactorHandler) HandleEnroll(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	// Get user ID from context (injected by AuthnMiddleware)
	userID, ok := ctx.Value(httpx.CtxKeyUserID).(string)
	if !ok || userID == "" {
		authclient.ErrInvalidToken.WriteError(w)
		return
	}

	enrollment, err := h.Service.Enroll(ctx, userID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTwoFactorAlreadyEnabled):
			log.Warn("two-factor already enabled", "user_id", userID)
			httpx.WriteError(w, http.StatusBadRequest, "two_factor_already_enabled",
				"Two-factor is already enabled; disable it before re-enrolling")
		default:
			log.Error("failed to enroll two-factor", "user_id", userID, "err", err)
			authclient.ErrServerError.WriteError(w)
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, authclient.TOTPEnrollResponse{
		Secret:  enrollment.Secret,
		URI:     enrollment.URI,
		Issuer:  enrollment.Issuer,
		Account: enrollment.Account,
	})
}

// HandleActivate handles POST /v1/me/2fa/activate
//
//	@Summary		Activate two-factor
//	@Description	Verifies one authenticator code and turns two-factor on. Returns the backup codes, shown exactly once.
//	@Tags			TwoFactor
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authclient.TOTPActivateRequest	true	"Authenticator code"
//	@Success		200		{object}	authclient.BackupCodesResponse	"Backup codes (shown once)"
//	@Failure		400		{object}	authclient.ErrorResponse		"Not enrolled or already enabled"
//	@Failure		401		{object}	authclient.ErrorResponse		"Wrong code or missing token"
//	@Failure		500		{object}	authclient.ErrorResponse		"Internal server error"
//	@Router			/v1/me/2fa/activate [post].
func (h *TwoFactorHandler) HandleActivate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	userID, ok := ctx.Value(httpx.CtxKeyUserID).(string)
	if !ok || userID == "" {
		authclient.ErrInvalidToken.WriteError(w)
		return
	}

	var req authclient.TOTPActivateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn("failed to parse request", "err", err)
		authclient.ErrInvalidRequest.WriteError(w)
		return
	}

	backupCodes, err := h.Service.Activate(ctx, userID, req.Code)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTwoFactorNotEnrolled):
			httpx.WriteError(w, http.StatusBadRequest, "two_factor_not_enrolled",
				"Enroll first to get an authenticator secret")
		case errors.Is(err, service.ErrTwoFactorAlreadyEnabled):
			httpx.WriteError(w, http.StatusBadRequest, "two_factor_already_enabled",
				"Two-factor is already enabled")
		case errors.Is(err, service.ErrInvalidCode):
			log.Warn("invalid activation code", "user_id", userID)
			authclient.ErrInvalidCode.WriteError(w)
		default:
			log.Error("failed to activate two-factor", "user_id", userID, "err", err)
			authclient.ErrServerError.WriteError(w)
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, authclient.BackupCodesResponse{
		Codes: backupCodes,
	})
}

// HandleDisable handles POST /v1/me/2fa/disable
//
//	@Summary		Disable two-factor
//	@Description	Turns two-factor off after proving possession with an authenticator or backup code. Wipes the secret and all backup codes.
//	@Tags			TwoFactor
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authclient.TwoFactorDisableRequest	true	"Proof of possession"
//	@Success		200		{object}	map[string]string					"Success message"
//	@Failure		400		{object}	authclient.ErrorResponse			"Two-factor not enabled"
//	@Failure		401		{object}	authclient.ErrorResponse			"Wrong code or missing token"
//	@Failure		500		{object}	authclient.ErrorResponse			"Internal server error"
//	@Router			/v1/me/2fa/disable [post].
func (h *TwoFactorHandler) HandleDisable(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	userID, ok := ctx.Value(httpx.CtxKeyUserID).(string)
	if !ok || userID == "" {
		authclient.ErrInvalidToken.WriteError(w)
		return
	}

	var req authclient.TwoFactorDisableRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn("failed to parse request", "err", err)
		authclient.ErrInvalidRequest.WriteError(w)
		return
	}

	if err := h.Service.Disable(ctx, userID, req.Method, req.Code); err != nil {
		switch {
		case errors.Is(err, service.ErrTwoFactorNotEnabled):
			httpx.WriteError(w, http.StatusBadRequest, "two_factor_not_enabled",
				"Two-factor is not enabled for this account")
		case errors.Is(err, service.ErrInvalidCode):
			log.Warn("invalid disable code", "user_id", userID)
			authclient.ErrInvalidCode.WriteError(w)
		default:
			log.Error("failed to disable two-factor", "user_id", userID, "err", err)
			authclient.ErrServerError.WriteError(w)
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, map[string]string{
		"message": "Two-factor disabled",
	})
}

// HandleRegenerateBackupCodes handles POST /v1/me/2fa/backup-codes
//
//	@Summary		Regenerate backup codes
//	@Description	Replaces all backup codes. Requires a currently valid authenticator code; the new codes are shown exactly once.
//	@Tags			TwoFactor
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authclient.BackupCodesRegenerateRequest	true	"Authenticator code"
//	@Success		200		{object}	authclient.BackupCodesResponse			"New backup codes (shown once)"
//	@Failure		400		{object}	authclient.ErrorResponse				"Two-factor not enabled"
//	@Failure		401		{object}	authclient.ErrorResponse				"Wrong code or missing token"
//	@Failure		500		{object}	authclient.ErrorResponse				"Internal server error"
//	@Router			/v1/me/2fa/backup-codes [post].
func (h *TwoFactorHandler) HandleRegenerateBackupCodes(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	userID, ok := ctx.Value(httpx.CtxKeyUserID).(string)
	if !ok || userID == "" {
		authclient.ErrInvalidToken.WriteError(w)
		return
	}

	var req authclient.BackupCodesRegenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn("failed to parse request", "err", err)
		authclient.ErrInvalidRequest.WriteError(w)
		return
	}

	backupCodes, err := h.Service.RegenerateBackupCodes(ctx, userID, req.Code)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTwoFactorNotEnabled):
			httpx.WriteError(w, http.StatusBadRequest, "two_factor_not_enabled",
				"Two-factor is not enabled for this account")
		case errors.Is(err, service.ErrInvalidCode):
			log.Warn("invalid regenerate code", "user_id", userID)
			authclient.ErrInvalidCode.WriteError(w)
		default:
			log.Error("failed to regenerate backup codes", "user_id", userID, "err", err)
			authclient.ErrServerError.WriteError(w)
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, authclient.BackupCodesResponse{
		Codes: backupCodes,
	})
}
