package app

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/taskhubhq/taskhub/pkg/jwtx"
)

// InitTokenKeys loads the HS256 signing secret and returns the signer and
// verifier built from it.
//
// The secret lives in a file so it survives restarts: a token issued before
// a deploy still verifies after it. On first boot the file is created with
// fresh random material. Every replica pointed at the same file verifies
// every other replica's tokens.
func InitTokenKeys(cfg Config, logger *slog.Logger) (jwtx.Signer, jwtx.Verifier, error) {
	secret, created, err := loadOrGenerateSecret(cfg.TokenSecretFile)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load token signing secret: %w", err)
	}
	if created {
		logger.Info("generated new token signing secret", "path", cfg.TokenSecretFile)
	}

	signer, err := jwtx.NewSignerHS256(secret)
	if err != nil {
		return nil, nil, err
	}
	verifier, err := jwtx.NewVerifierHS256(secret, cfg.Issuer)
	if err != nil {
		return nil, nil, err
	}

	logger.Info("token signing ready",
		"alg", signer.Alg(),
		"issuer", cfg.Issuer,
	)
	return signer, verifier, nil
}

// loadOrGenerateSecret reads the base64 secret file, creating it with fresh
// random material when missing. Returns whether a new secret was minted.
func loadOrGenerateSecret(path string) ([]byte, bool, error) {
	path = filepath.Clean(path)
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return nil, false, err
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		secret := make([]byte, jwtx.MinHS256SecretLen)
		if _, err := rand.Read(secret); err != nil {
			return nil, false, err
		}

		encoded := base64.StdEncoding.EncodeToString(secret)
		if err := os.WriteFile(path, []byte(encoded), 0600); err != nil {
			return nil, false, err
		}
		return secret, true, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, false, err
	}

	secret, err := base64.StdEncoding.DecodeString(strings.TrimSpace(string(raw)))
	if err != nil {
		return nil, false, fmt.Errorf("secret file %s is not valid base64: %w", path, err)
	}
	return secret, false, nil
}
