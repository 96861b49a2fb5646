/*
Package authclient provides a typed client for the TaskHub authentication
service.

# Overview

The authclient package wraps the service's JSON API. It provides both
unauthenticated operations (via Client) and authenticated operations (via
Session). Authentication is email/password with an optional second factor;
sessions carry a single bearer token and expire when it does.

# Client vs Session

The package is organized around two main types:

  - Client: Provides unauthenticated operations and creates authenticated sessions
  - Session: Provides authenticated operations using the session's bearer token

Create a Client to interact with public endpoints and initiate authentication
flows:

	client := authclient.NewClient("https://auth.example.com")

	// Check service health
	health, err := client.GetLiveness(ctx)

	// Register and verify an account
	account, err := client.Register(ctx, "casey@example.com", "Casey", "password1")
	err = client.VerifyEmail(ctx, "casey@example.com", code)

	// Authenticate to create a session
	session, err := client.Login(ctx, "casey@example.com", "password1")

Use a Session for authenticated operations:

	// Get the caller's profile
	profile, err := session.Me(ctx)

	// Create a team (requires the manager role)
	team, err := session.CreateTeam(ctx, "Platform", "Infra and tooling")

	// Create a personal task
	task, err := session.CreateTask(ctx, authclient.CreateTaskRequest{Title: "Write docs"})

# Two-Factor Logins

Accounts with two-factor enabled do not get a token from Login directly.
Instead Login returns a *SecondFactorRequiredError carrying a challenge
token; complete the challenge to obtain the session:

	session, err := client.Login(ctx, email, password)
	var challenge *authclient.SecondFactorRequiredError
	if errors.As(err, &challenge) {
		// Ask the user for their authenticator code, then redeem it.
		session, err = client.VerifySecondFactor(ctx, challenge.ChallengeToken, "totp", code)
	}

When the authenticator is unavailable the challenge can be switched to an
emailed code:

	err = client.RequestEmailCode(ctx, challenge.ChallengeToken)
	session, err = client.VerifySecondFactor(ctx, challenge.ChallengeToken, "email", mailedCode)

Backup codes redeem the same way with method "backup".

# Session Lifetime

There are no refresh tokens. A Session is valid until its token expires;
after that every method returns ErrSessionExpired and the caller must log in
again. A token from an earlier login can be rehydrated into a session with
NewSessionFromToken.

# Error Handling

Failed requests return typed errors:

  - *APIError: the service's error envelope with status code, machine-readable
    code and description
  - *SecondFactorRequiredError: a password login that needs a second factor
  - ErrSessionExpired: the session token has lapsed

Match on the error code to branch on specific failures:

	_, err := client.Register(ctx, email, name, password)
	var apiErr *authclient.APIError
	if errors.As(err, &apiErr) && apiErr.Code == authclient.ErrorCodeEmailTaken {
		// Offer password reset instead
	}

# Thread Safety

A Session is immutable once created: the token and expiry never change, so a
single Session is safe for concurrent use without locking. When the token
expires, log in again and replace the Session.
*/
package authclient
