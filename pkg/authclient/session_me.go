package authclient

import (
	"context"
	"net/http"
)

// Me retrieves the profile of the account behind the session, including
// two-factor status and the number of backup codes left.
func (s *Session) Me(ctx context.Context) (*ProfileResponse, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, "/v1/me", nil, nil)
	if err != nil {
		return nil, err
	}

	var profile ProfileResponse
	if err := decodeJSON(resp, &profile, http.StatusOK); err != nil {
		return nil, err
	}

	return &profile, nil
}

// ChangePassword replaces the account password. The current password must
// verify, and the new one must pass policy and differ from it.
func (s *Session) ChangePassword(ctx context.Context, currentPassword, newPassword string) error {
	resp, err := s.doAuthJSON(ctx, http.MethodPost, "/v1/me/password", ChangePasswordRequest{
		CurrentPassword: currentPassword,
		NewPassword:     newPassword,
	})
	if err != nil {
		return err
	}

	return checkStatusOK(resp)
}
