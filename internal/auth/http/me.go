package http

import (
	"errors"
	"net/http"

	"github.com/taskhubhq/taskhub/internal/auth/service"
	"github.com/taskhubhq/taskhub/internal/auth/store"
	"github.com/taskhubhq/taskhub/pkg/authclient"
	"github.com/taskhubhq/taskhub/pkg/httpx"
	"github.com/taskhubhq/taskhub/pkg/slogx"
)

// MeHandler returns the profile of the authenticated account.
type MeHandler struct {
	UserService *service.UserService
}

// ServeHTTP handles GET /v1/me
//
//	@Summary		Get the authenticated profile
//	@Description	Returns the account behind the bearer token, including two-factor status and remaining backup codes.
//	@Tags			Me
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	authclient.ProfileResponse
//	@Failure		401	{object}	authclient.ErrorResponse	"Invalid or missing access token"
//	@Failure		500	{object}	authclient.ErrorResponse	"Internal server error"
//	@Router			/v1/me [get].
func (h *MeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	// Get user ID from context (injected by AuthnMiddleware)
	userID, ok := ctx.Value(httpx.CtxKeyUserID).(string)
	if !ok || userID == "" {
		authclient.ErrInvalidToken.WriteError(w)
		return
	}

	profile, err := h.UserService.GetProfile(ctx, userID)
	if err != nil {
		// A token whose subject no longer exists is just a dead token.
		if errors.Is(err, store.ErrNotFound) {
			authclient.ErrInvalidToken.WriteError(w)
			return
		}
		log.Error("failed to load profile", "user_id", userID, "err", err)
		authclient.ErrServerError.WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, authclient.ProfileResponse{
		UserID:               profile.User.ID,
		Email:                profile.User.Email,
		Name:                 profile.User.Name,
		Role:                 profile.User.Role,
		TwoFactorEnabled:     profile.TwoFactorEnabled,
		BackupCodesRemaining: profile.BackupCodesLeft,
		VerifiedAt:           profile.User.VerifiedAt,
		LastLogin:            profile.User.LastLogin,
		CreatedAt:            profile.User.CreatedAt,
	})
}
