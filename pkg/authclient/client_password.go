package authclient

import "context"

// ForgotPassword asks the service to mail a password reset code. Always
// reports success whether or not the address has an account.
func (c *Client) ForgotPassword(ctx context.Context, email string) error {
	resp, err := c.postJSON(ctx, "/v1/auth/forgot-password", ForgotPasswordRequest{Email: email})
	if err != nil {
		return err
	}

	return checkStatusOK(resp)
}

// ResetPassword redeems an emailed reset code and replaces the password.
// Codes are single use and expire after 15 minutes.
func (c *Client) ResetPassword(ctx context.Context, email, code, newPassword string) error {
	resp, err := c.postJSON(ctx, "/v1/auth/reset-password", ResetPasswordRequest{
		Email:       email,
		Code:        code,
		NewPassword: newPassword,
	})
	if err != nil {
		return err
	}

	return checkStatusOK(resp)
}
