package httpx_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/taskhubhq/taskhub/pkg/httpx"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func getFrom(addr string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = addr
	return req
}

func TestIPKeyExtractor(t *testing.T) {
	cases := []struct {
		name    string
		headers map[string]string
		remote  string
		want    string
	}{
		{
			name:   "socket address when no proxy headers",
			remote: "192.168.1.1:12345",
			want:   "192.168.1.1",
		},
		{
			name:    "first X-Forwarded-For entry wins",
			headers: map[string]string{"X-Forwarded-For": "203.0.113.1, 192.168.1.1"},
			remote:  "192.168.1.1:12345",
			want:    "203.0.113.1",
		},
		{
			name:    "X-Real-IP when X-Forwarded-For absent",
			headers: map[string]string{"X-Real-IP": "203.0.113.2"},
			remote:  "192.168.1.1:12345",
			want:    "203.0.113.2",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := getFrom(tc.remote)
			for k, v := range tc.headers {
				req.Header.Set(k, v)
			}
			require.Equal(t, tc.want, httpx.IPKeyExtractor(req))
		})
	}
}

func TestCompositeKeyExtractor(t *testing.T) {
	header := func(name string) httpx.KeyExtractor {
		return func(r *http.Request) string { return r.Header.Get(name) }
	}
	extract := httpx.CompositeKeyExtractor(":", httpx.IPKeyExtractor, header("X-Account"))

	t.Run("joins non-empty parts", func(t *testing.T) {
		req := getFrom("192.168.1.1:12345")
		req.Header.Set("X-Account", "alice")
		require.Equal(t, "192.168.1.1:alice", extract(req))
	})

	t.Run("skips empty parts", func(t *testing.T) {
		req := getFrom("192.168.1.1:12345")
		require.Equal(t, "192.168.1.1", extract(req))
	})
}

func TestRateLimitMiddleware(t *testing.T) {
	limited := func(cfg httpx.RateLimitConfig) http.Handler {
		return httpx.RateLimitMiddleware(cfg, httpx.IPKeyExtractor)(okHandler())
	}

	t.Run("requests within budget pass", func(t *testing.T) {
		h := limited(httpx.RateLimitConfig{RequestsPerWindow: 5, Window: time.Second, Burst: 5})

		for i := range 5 {
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, getFrom("192.168.1.1:12345"))
			require.Equal(t, http.StatusOK, rec.Code, "request %d", i+1)
		}
	})

	t.Run("request past the budget is rejected", func(t *testing.T) {
		h := limited(httpx.RateLimitConfig{RequestsPerWindow: 3, Window: time.Minute, Burst: 3})

		for range 3 {
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, getFrom("192.168.1.1:12345"))
			require.Equal(t, http.StatusOK, rec.Code)
		}

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, getFrom("192.168.1.1:12345"))
		require.Equal(t, http.StatusTooManyRequests, rec.Code)
		require.NotEmpty(t, rec.Header().Get("Retry-After"))
	})

	t.Run("keys do not share buckets", func(t *testing.T) {
		h := limited(httpx.RateLimitConfig{RequestsPerWindow: 2, Window: time.Minute, Burst: 2})

		for range 2 {
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, getFrom("192.168.1.1:12345"))
			require.Equal(t, http.StatusOK, rec.Code)
		}

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, getFrom("192.168.1.1:12345"))
		require.Equal(t, http.StatusTooManyRequests, rec.Code, "first IP exhausted")

		rec = httptest.NewRecorder()
		h.ServeHTTP(rec, getFrom("192.168.1.2:12345"))
		require.Equal(t, http.StatusOK, rec.Code, "second IP has its own bucket")
	})

	t.Run("burst is spendable at once", func(t *testing.T) {
		h := limited(httpx.RateLimitConfig{RequestsPerWindow: 10, Window: time.Second, Burst: 5})

		for i := range 5 {
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, getFrom("192.168.1.1:12345"))
			require.Equal(t, http.StatusOK, rec.Code, "burst request %d", i+1)
		}
	})

	t.Run("unattributable requests are not limited", func(t *testing.T) {
		noKey := func(r *http.Request) string { return "" }
		h := httpx.RateLimitMiddleware(
			httpx.RateLimitConfig{RequestsPerWindow: 1, Window: time.Minute, Burst: 1},
			noKey,
		)(okHandler())

		for range 3 {
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, getFrom("192.168.1.1:12345"))
			require.Equal(t, http.StatusOK, rec.Code)
		}
	})
}

func TestRateLimitRejectionShape(t *testing.T) {
	h := httpx.RateLimitMiddleware(
		httpx.RateLimitConfig{RequestsPerWindow: 1, Window: time.Minute, Burst: 1},
		httpx.IPKeyExtractor,
	)(okHandler())

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, getFrom("192.168.1.1:12345"))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, getFrom("192.168.1.1:12345"))

	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	require.NotEmpty(t, rec.Header().Get("Retry-After"))
	require.Equal(t, "1", rec.Header().Get("X-RateLimit-Limit"))
	require.Equal(t, "1m0s", rec.Header().Get("X-RateLimit-Window"))
	require.Contains(t, rec.Body.String(), "rate_limit_exceeded")
	require.Contains(t, rec.Body.String(), "error_description")
}

func TestRateLimitByUser(t *testing.T) {
	h := httpx.RateLimitByUser(
		httpx.RateLimitConfig{RequestsPerWindow: 2, Window: time.Minute, Burst: 2},
	)(okHandler())

	as := func(userID string) *http.Request {
		req := getFrom("192.168.1.1:12345")
		ctx := context.WithValue(req.Context(), httpx.CtxKeyUserID, userID)
		return req.WithContext(ctx)
	}

	// Exhaust alice's bucket.
	for range 2 {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, as("alice"))
		require.Equal(t, http.StatusOK, rec.Code)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, as("alice"))
	require.Equal(t, http.StatusTooManyRequests, rec.Code)

	// Bob shares the IP but not the bucket.
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, as("bob"))
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestRateLimitProfiles(t *testing.T) {
	for name, cfg := range map[string]httpx.RateLimitConfig{
		"strict":   httpx.StrictLimit,
		"moderate": httpx.ModerateLimit,
		"lenient":  httpx.LenientLimit,
		"public":   httpx.PublicLimit,
	} {
		t.Run(name, func(t *testing.T) {
			require.Positive(t, cfg.RequestsPerWindow)
			require.Positive(t, cfg.Window)
			require.Positive(t, cfg.Burst)
		})
	}

	require.Less(t, httpx.StrictLimit.RequestsPerWindow, httpx.ModerateLimit.RequestsPerWindow)
	require.Less(t, httpx.ModerateLimit.RequestsPerWindow, httpx.LenientLimit.RequestsPerWindow)
	require.Less(t, httpx.LenientLimit.RequestsPerWindow, httpx.PublicLimit.RequestsPerWindow)
}

func TestParseRateLimitFromEnv(t *testing.T) {
	def := httpx.RateLimitConfig{RequestsPerWindow: 10, Window: time.Minute, Burst: 10}

	t.Run("no env keeps defaults", func(t *testing.T) {
		require.Equal(t, def, httpx.ParseRateLimitFromEnv("TEST", def))
	})

	t.Run("single field override", func(t *testing.T) {
		t.Setenv("RATELIMIT_TEST_REQUESTS", "50")

		cfg := httpx.ParseRateLimitFromEnv("TEST", def)
		require.Equal(t, 50, cfg.RequestsPerWindow)
		require.Equal(t, def.Window, cfg.Window)
		require.Equal(t, def.Burst, cfg.Burst)
	})

	t.Run("window given in seconds", func(t *testing.T) {
		t.Setenv("RATELIMIT_TEST_WINDOW_SEC", "120")

		cfg := httpx.ParseRateLimitFromEnv("TEST", def)
		require.Equal(t, 120*time.Second, cfg.Window)
	})

	t.Run("all fields override", func(t *testing.T) {
		t.Setenv("RATELIMIT_TEST_REQUESTS", "200")
		t.Setenv("RATELIMIT_TEST_WINDOW_SEC", "30")
		t.Setenv("RATELIMIT_TEST_BURST", "250")

		cfg := httpx.ParseRateLimitFromEnv("TEST", def)
		require.Equal(t, 200, cfg.RequestsPerWindow)
		require.Equal(t, 30*time.Second, cfg.Window)
		require.Equal(t, 250, cfg.Burst)
	})

	t.Run("garbage and non-positive values keep defaults", func(t *testing.T) {
		t.Setenv("RATELIMIT_TEST_REQUESTS", "invalid")
		t.Setenv("RATELIMIT_TEST_WINDOW_SEC", "-10")
		t.Setenv("RATELIMIT_TEST_BURST", "0")

		require.Equal(t, def, httpx.ParseRateLimitFromEnv("TEST", def))
	})
}

func BenchmarkRateLimitMiddleware(b *testing.B) {
	h := httpx.RateLimitMiddleware(
		httpx.RateLimitConfig{RequestsPerWindow: 1_000_000, Window: time.Minute, Burst: 1000},
		httpx.IPKeyExtractor,
	)(okHandler())

	b.Run("single key", func(b *testing.B) {
		req := getFrom("192.168.1.1:12345")
		for b.Loop() {
			h.ServeHTTP(httptest.NewRecorder(), req)
		}
	})

	b.Run("many keys", func(b *testing.B) {
		for i := 0; b.Loop(); i++ {
			req := getFrom(fmt.Sprintf("192.168.%d.%d:12345", i%255, (i/255)%255))
			h.ServeHTTP(httptest.NewRecorder(), req)
		}
	})
}
