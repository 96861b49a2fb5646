package authclient

import (
	"context"
	"net/http"
)

// Register creates a new unverified account. The service mails a 6-digit
// verification code to the address; the account cannot log in until
// VerifyEmail redeems it.
func (c *Client) Register(ctx context.Context, email, name, password string) (*RegisterResponse, error) {
	resp, err := c.postJSON(ctx, "/v1/auth/register", RegisterRequest{
		Email:    email,
		Name:     name,
		Password: password,
	})
	if err != nil {
		return nil, err
	}

	var regResp RegisterResponse
	if err := decodeJSON(resp, &regResp, http.StatusCreated); err != nil {
		return nil, err
	}

	return &regResp, nil
}

// VerifyEmail redeems the emailed verification code and marks the account
// verified. Codes are single use and expire after 15 minutes.
func (c *Client) VerifyEmail(ctx context.Context, email, code string) error {
	resp, err := c.postJSON(ctx, "/v1/auth/verify-email", VerifyEmailRequest{Email: email, Code: code})
	if err != nil {
		return err
	}

	return checkStatusOK(resp)
}

// ResendCode mails a fresh verification code, invalidating the previous one.
// Always reports success so callers cannot probe which addresses have
// accounts.
func (c *Client) ResendCode(ctx context.Context, email string) error {
	resp, err := c.postJSON(ctx, "/v1/auth/resend-code", ResendCodeRequest{Email: email})
	if err != nil {
		return err
	}

	return checkStatusOK(resp)
}
