package httpx_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/taskhubhq/taskhub/pkg/httpx"
	"github.com/taskhubhq/taskhub/pkg/jwtx"
)

const testIssuer = "httpx-test"

var testSecret = []byte("0123456789abcdef0123456789abcdef")

func newTestKeypair(t *testing.T) (jwtx.Signer, jwtx.Verifier) {
	t.Helper()

	signer, err := jwtx.NewSignerHS256(testSecret)
	require.NoError(t, err)

	verifier, err := jwtx.NewVerifierHS256(testSecret, testIssuer)
	require.NoError(t, err)

	return signer, verifier
}

func mintToken(t *testing.T, signer jwtx.Signer, subject, role string, ttl time.Duration) string {
	t.Helper()

	claims := jwtx.NewSessionClaims(subject, "user@test", "User", role,
		[]string{"pwd"}, ttl, testIssuer, time.Now())

	token, err := signer.Sign(claims)
	require.NoError(t, err)
	return token
}

func TestChain(t *testing.T) {
	var order []string
	tag := func(name string) httpx.Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		order = append(order, "handler")
		w.WriteHeader(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	httpx.Chain(handler, tag("outer"), tag("inner")).
		ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, []string{"outer", "inner", "handler"}, order,
		"first listed middleware should run first")
}

func TestAuthnMiddleware(t *testing.T) {
	signer, verifier := newTestKeypair(t)

	// Echoes what the middleware put in the context.
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		w.Header().Set("X-User", httpx.UserIDFromCtx(ctx))
		w.Header().Set("X-Role", httpx.RoleFromCtx(ctx))
		w.WriteHeader(http.StatusOK)
	})
	secured := httpx.AuthnMiddleware(verifier)(handler)

	requireRejected := func(t *testing.T, rec *httptest.ResponseRecorder) {
		t.Helper()
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.Contains(t, rec.Header().Get("WWW-Authenticate"), `Bearer error="invalid_token"`)
		require.Contains(t, rec.Body.String(), "invalid_token")
	}

	t.Run("injects identity on valid token", func(t *testing.T) {
		token := mintToken(t, signer, "user-1", "manager", time.Hour)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)

		rec := httptest.NewRecorder()
		secured.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, "user-1", rec.Header().Get("X-User"))
		require.Equal(t, "manager", rec.Header().Get("X-Role"))
	})

	t.Run("rejects missing header", func(t *testing.T) {
		rec := httptest.NewRecorder()
		secured.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		requireRejected(t, rec)
	})

	t.Run("rejects non-bearer scheme", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")

		rec := httptest.NewRecorder()
		secured.ServeHTTP(rec, req)
		requireRejected(t, rec)
	})

	t.Run("rejects foreign signature", func(t *testing.T) {
		foreign, err := jwtx.NewSignerHS256([]byte("ffffffffffffffffffffffffffffffff"))
		require.NoError(t, err)
		token := mintToken(t, foreign, "user-1", "manager", time.Hour)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)

		rec := httptest.NewRecorder()
		secured.ServeHTTP(rec, req)
		requireRejected(t, rec)
	})

	t.Run("rejects expired token", func(t *testing.T) {
		token := mintToken(t, signer, "user-1", "manager", -time.Minute)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)

		rec := httptest.NewRecorder()
		secured.ServeHTTP(rec, req)
		requireRejected(t, rec)
	})
}

func TestRequireRole(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	managerOnly := httpx.RequireRole("manager")(handler)

	withRole := func(role string) *http.Request {
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		return req.WithContext(context.WithValue(req.Context(), httpx.CtxKeyRole, role))
	}

	t.Run("allows listed role", func(t *testing.T) {
		rec := httptest.NewRecorder()
		managerOnly.ServeHTTP(rec, withRole("manager"))
		require.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("rejects other roles", func(t *testing.T) {
		rec := httptest.NewRecorder()
		managerOnly.ServeHTTP(rec, withRole("member"))

		require.Equal(t, http.StatusForbidden, rec.Code)
		require.Contains(t, rec.Body.String(), "insufficient role")
	})

	t.Run("rejects anonymous requests", func(t *testing.T) {
		rec := httptest.NewRecorder()
		managerOnly.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))

		require.Equal(t, http.StatusForbidden, rec.Code)
	})
}
