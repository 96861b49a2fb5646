package domain

// Token is what successful authentication returns. Access tokens are
// stateless signed JWTs; there are no refresh tokens and no server-side
// revocation, expiry is the only exit.
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"` // always "Bearer"
	ExpiresIn   int64  `json:"expires_in"` // seconds until expiry
}
