package authclient

import (
	"context"
	"net/http"
	"strings"
	"time"
)

// Client is a client for the TaskHub authentication service.
// It provides access to unauthenticated operations and can create
// authenticated Sessions.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient creates a new auth service client.
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Login authenticates with email and password and returns a Session.
//
// On accounts with two-factor enabled the password alone is not enough: the
// error is a *SecondFactorRequiredError carrying a challenge token, and the
// session comes from VerifySecondFactor instead.
func (c *Client) Login(ctx context.Context, email, password string) (*Session, error) {
	return c.login(ctx, LoginRequest{Email: email, Password: password})
}

// LoginWithChannel authenticates like Login but requests the second factor
// on a specific channel: "totp" (the default) or "email". The email channel
// does not send anything until RequestEmailCode is called.
func (c *Client) LoginWithChannel(ctx context.Context, email, password, channel string) (*Session, error) {
	return c.login(ctx, LoginRequest{Email: email, Password: password, Channel: channel})
}

func (c *Client) login(ctx context.Context, req LoginRequest) (*Session, error) {
	resp, err := c.postJSON(ctx, "/v1/auth/login", req)
	if err != nil {
		return nil, err
	}

	var tokenResp TokenResponse
	if err := decodeJSON(resp, &tokenResp, http.StatusOK); err != nil {
		return nil, err
	}

	return newSession(c, &tokenResp), nil
}

// VerifySecondFactor redeems a code against a pending login challenge and
// returns the Session the challenge was holding back.
//
// method picks what the code is: "totp" (default), "email" for a mailed
// login code, or "backup" for a single-use backup code.
func (c *Client) VerifySecondFactor(ctx context.Context, challengeToken, method, code string) (*Session, error) {
	resp, err := c.postJSON(ctx, "/v1/auth/2fa/verify", SecondFactorVerifyRequest{
		ChallengeToken: challengeToken,
		Method:         method,
		Code:           code,
	})
	if err != nil {
		return nil, err
	}

	var tokenResp TokenResponse
	if err := decodeJSON(resp, &tokenResp, http.StatusOK); err != nil {
		return nil, err
	}

	return newSession(c, &tokenResp), nil
}

// RequestEmailCode emails a login code for a pending challenge and switches
// the challenge to the email channel. Useful when the authenticator app is
// unavailable.
func (c *Client) RequestEmailCode(ctx context.Context, challengeToken string) error {
	resp, err := c.postJSON(ctx, "/v1/auth/2fa/send-code", SendCodeRequest{ChallengeToken: challengeToken})
	if err != nil {
		return err
	}

	return checkStatusOK(resp)
}

// NewSessionFromToken creates a Session from a previously issued access
// token, e.g. one a caller stored from an earlier login. expiresIn is the
// remaining lifetime in seconds.
func (c *Client) NewSessionFromToken(accessToken string, expiresIn int64) *Session {
	expiresAt := time.Now().Add(time.Duration(expiresIn) * time.Second)
	expiresAt = expiresAt.Add(-30 * time.Second) // refuse slightly early rather than send a doomed request

	return &Session{
		client:      c,
		accessToken: accessToken,
		expiresAt:   expiresAt,
	}
}
