package authclient

import (
	"context"
	"net/http"
)

// EnrollTOTP generates an authenticator secret for the account and returns
// it with the otpauth provisioning URI. The secret stays inactive until
// ActivateTOTP verifies one code from it.
func (s *Session) EnrollTOTP(ctx context.Context) (*TOTPEnrollResponse, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodPost, "/v1/me/2fa/enroll", nil, nil)
	if err != nil {
		return nil, err
	}

	var enrollResp TOTPEnrollResponse
	if err := decodeJSON(resp, &enrollResp, http.StatusOK); err != nil {
		return nil, err
	}

	return &enrollResp, nil
}

// ActivateTOTP verifies one authenticator code and turns two-factor on.
// Returns the backup codes, which the service shows exactly once.
func (s *Session) ActivateTOTP(ctx context.Context, code string) (*BackupCodesResponse, error) {
	resp, err := s.doAuthJSON(ctx, http.MethodPost, "/v1/me/2fa/activate", TOTPActivateRequest{Code: code})
	if err != nil {
		return nil, err
	}

	var backupResp BackupCodesResponse
	if err := decodeJSON(resp, &backupResp, http.StatusOK); err != nil {
		return nil, err
	}

	return &backupResp, nil
}

// DisableTwoFactor turns two-factor off after proving possession with an
// authenticator code (method "totp", the default) or a backup code
// (method "backup"). The secret and all backup codes are wiped.
func (s *Session) DisableTwoFactor(ctx context.Context, method, code string) error {
	resp, err := s.doAuthJSON(ctx, http.MethodPost, "/v1/me/2fa/disable", TwoFactorDisableRequest{
		Method: method,
		Code:   code,
	})
	if err != nil {
		return err
	}

	return checkStatusOK(resp)
}

// RegenerateBackupCodes replaces all backup codes. Requires a currently
// valid authenticator code; the new codes are shown exactly once.
func (s *Session) RegenerateBackupCodes(ctx context.Context, code string) (*BackupCodesResponse, error) {
	resp, err := s.doAuthJSON(ctx, http.MethodPost, "/v1/me/2fa/backup-codes", BackupCodesRegenerateRequest{Code: code})
	if err != nil {
		return nil, err
	}

	var backupResp BackupCodesResponse
	if err := decodeJSON(resp, &backupResp, http.StatusOK); err != nil {
		return nil, err
	}

	return &backupResp, nil
}
