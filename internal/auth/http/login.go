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

// LoginHandler handles the login flow, including the second-factor step.
type LoginHandler struct {
	Service *service.LoginService
}

// HandleLogin handles POST /v1/auth/login
//
// Accounts with two-factor enabled get a 202 challenge instead of a token;
// the login completes via /v1/auth/2fa/verify.
//
//	@Summary		Log in with email and password
//	@Description	Issues a session token, or a 202 second-factor challenge when the account has two-factor enabled.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authclient.LoginRequest	true	"Login request"
//	@Success		200		{object}	authclient.TokenResponse
//	@Success		202		{object}	authclient.SecondFactorChallengeResponse	"Second factor required"
//	@Failure		400		{object}	authclient.ErrorResponse					"Invalid request"
//	@Failure		401		{object}	authclient.ErrorResponse					"Wrong email or password"
//	@Failure		403		{object}	authclient.ErrorResponse					"Account disabled or unverified"
//	@Failure		429		{object}	authclient.ErrorResponse					"Too many failed attempts"
//	@Router			/v1/auth/login [post].
func (h *LoginHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	// Parse request body
	var req authclient.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn("failed to parse request", "err", err)
		authclient.ErrInvalidRequest.WriteError(w)
		return
	}

	token, err := h.Service.Login(ctx, req.Email, req.Password, req.Channel)
	if err != nil {
		// Valid credentials with two-factor on come back as a challenge,
		// not a failure.
		var sfErr *authclient.SecondFactorRequiredError
		if errors.As(err, &sfErr) {
			sfErr.WriteError(w)
			return
		}

		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			authclient.ErrInvalidCredentials.WriteError(w)
		case errors.Is(err, service.ErrAccountInactive):
			authclient.ErrAccountInactive.WriteError(w)
		case errors.Is(err, service.ErrAccountUnverified):
			authclient.ErrAccountUnverified.WriteError(w)
		case errors.Is(err, service.ErrTooManyAttempts):
			authclient.ErrTooManyAttempts.WriteError(w)
		case errors.Is(err, service.ErrDeliveryFailure):
			log.Warn("login code mail failed", "email", req.Email)
			authclient.ErrDeliveryFailure.WriteError(w)
		default:
			log.Error("failed to log in", "err", err)
			authclient.ErrServerError.WriteError(w)
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, authclient.TokenResponse{
		AccessToken: token.AccessToken,
		TokenType:   token.TokenType,
		ExpiresIn:   token.ExpiresIn,
	})
}

// HandleVerifySecondFactor handles POST /v1/auth/2fa/verify
//
//	@Summary		Complete a second-factor challenge
//	@Description	Redeems an authenticator, email or backup code against a pending login challenge and issues the session token.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authclient.SecondFactorVerifyRequest	true	"Verification request"
//	@Success		200		{object}	authclient.TokenResponse
//	@Failure		400		{object}	authclient.ErrorResponse	"Invalid request"
//	@Failure		401		{object}	authclient.ErrorResponse	"Wrong code or dead challenge"
//	@Failure		429		{object}	authclient.ErrorResponse	"Too many failed attempts"
//	@Router			/v1/auth/2fa/verify [post].
func (h *LoginHandler) HandleVerifySecondFactor(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req authclient.SecondFactorVerifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn("failed to parse request", "err", err)
		authclient.ErrInvalidRequest.WriteError(w)
		return
	}

	token, err := h.Service.CompleteSecondFactor(ctx, req.ChallengeToken, req.Method, req.Code)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrChallengeExpiredOrInvalid):
			authclient.ErrChallengeInvalid.WriteError(w)
		case errors.Is(err, service.ErrInvalidCode):
			authclient.ErrInvalidCode.WriteError(w)
		case errors.Is(err, service.ErrTooManyAttempts):
			authclient.ErrTooManyAttempts.WriteError(w)
		default:
			log.Error("failed to verify second factor", "err", err)
			authclient.ErrServerError.WriteError(w)
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, authclient.TokenResponse{
		AccessToken: token.AccessToken,
		TokenType:   token.TokenType,
		ExpiresIn:   token.ExpiresIn,
	})
}

// HandleSendCode handles POST /v1/auth/2fa/send-code
//
//	@Summary		Email a login code
//	@Description	Sends a 6-digit login code for a pending challenge and switches it to the email channel. Useful when the authenticator is unavailable.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authclient.SendCodeRequest	true	"Send code request"
//	@Success		200		{object}	map[string]string			"Success message"
//	@Failure		400		{object}	authclient.ErrorResponse	"Invalid request"
//	@Failure		401		{object}	authclient.ErrorResponse	"Dead challenge"
//	@Failure		502		{object}	authclient.ErrorResponse	"Mail could not be sent"
//	@Router			/v1/auth/2fa/send-code [post].
func (h *LoginHandler) HandleSendCode(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req authclient.SendCodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn("failed to parse request", "err", err)
		authclient.ErrInvalidRequest.WriteError(w)
		return
	}

	if err := h.Service.RequestEmailCode(ctx, req.ChallengeToken); err != nil {
		switch {
		case errors.Is(err, service.ErrChallengeExpiredOrInvalid):
			authclient.ErrChallengeInvalid.WriteError(w)
		case errors.Is(err, service.ErrDeliveryFailure):
			log.Warn("login code mail failed")
			authclient.ErrDeliveryFailure.WriteError(w)
		default:
			log.Error("failed to send login code", "err", err)
			authclient.ErrServerError.WriteError(w)
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, map[string]string{
		"message": "A login code has been sent to your email",
	})
}
