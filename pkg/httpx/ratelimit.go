package httpx

import (
	"net"
	"net/http"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/taskhubhq/taskhub/pkg/slogx"
	"golang.org/x/time/rate"
)

// RateLimitConfig describes a token bucket: RequestsPerWindow tokens refill
// over Window, and up to Burst requests may be spent at once.
type RateLimitConfig struct {
	RequestsPerWindow int
	Window            time.Duration
	Burst             int
}

// Default profiles, tiered by endpoint sensitivity. Each profile can be
// overridden at startup through RATELIMIT_<NAME>_REQUESTS,
// RATELIMIT_<NAME>_WINDOW_SEC and RATELIMIT_<NAME>_BURST.
var (
	// StrictLimit guards credential-accepting endpoints against guessing.
	StrictLimit = RateLimitConfig{RequestsPerWindow: 5, Window: time.Minute, Burst: 5}

	// ModerateLimit covers authenticated write operations.
	ModerateLimit = RateLimitConfig{RequestsPerWindow: 20, Window: time.Minute, Burst: 20}

	// LenientLimit covers authenticated reads.
	LenientLimit = RateLimitConfig{RequestsPerWindow: 100, Window: time.Minute, Burst: 100}

	// PublicLimit covers unauthenticated read-only endpoints.
	PublicLimit = RateLimitConfig{RequestsPerWindow: 1000, Window: time.Minute, Burst: 1000}
)

func init() {
	StrictLimit = ParseRateLimitFromEnv("STRICT", StrictLimit)
	ModerateLimit = ParseRateLimitFromEnv("MODERATE", ModerateLimit)
	LenientLimit = ParseRateLimitFromEnv("LENIENT", LenientLimit)
	PublicLimit = ParseRateLimitFromEnv("PUBLIC", PublicLimit)
}

// ParseRateLimitFromEnv overlays RATELIMIT_<prefix>_* environment variables
// onto def. Unset, non-numeric and non-positive values keep the default, so
// a partially configured environment never produces a zero limit.
func ParseRateLimitFromEnv(prefix string, def RateLimitConfig) RateLimitConfig {
	cfg := def
	if n, ok := positiveEnvInt("RATELIMIT_" + prefix + "_REQUESTS"); ok {
		cfg.RequestsPerWindow = n
	}
	if n, ok := positiveEnvInt("RATELIMIT_" + prefix + "_WINDOW_SEC"); ok {
		cfg.Window = time.Duration(n) * time.Second
	}
	if n, ok := positiveEnvInt("RATELIMIT_" + prefix + "_BURST"); ok {
		cfg.Burst = n
	}
	return cfg
}

func positiveEnvInt(name string) (int, bool) {
	v := os.Getenv(name)
	if v == "" {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

// KeyExtractor derives the bucket key for a request. An empty key means the
// request cannot be attributed and is let through unlimited.
type KeyExtractor func(*http.Request) string

// IPKeyExtractor keys by client IP, trusting X-Forwarded-For and X-Real-IP
// set by the reverse proxy before falling back to the socket address.
func IPKeyExtractor(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		return strings.TrimSpace(first)
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// UserIDKeyExtractor keys by the authenticated user injected by
// AuthnMiddleware. Empty when the request carries no identity.
func UserIDKeyExtractor(r *http.Request) string {
	id, _ := r.Context().Value(CtxKeyUserID).(string)
	return id
}

// CompositeKeyExtractor joins the non-empty results of several extractors
// with sep, so buckets can be scoped by more than one dimension.
func CompositeKeyExtractor(sep string, extractors ...KeyExtractor) KeyExtractor {
	return func(r *http.Request) string {
		parts := make([]string, 0, len(extractors))
		for _, extract := range extractors {
			if k := extract(r); k != "" {
				parts = append(parts, k)
			}
		}
		return strings.Join(parts, sep)
	}
}

// bucketEntry pairs a limiter with the last time its key was seen, which
// drives the idle sweep.
type bucketEntry struct {
	lim  *rate.Limiter
	seen time.Time
}

// buckets holds one token bucket per key. Entries idle for longer than the
// sweep horizon are dropped so ephemeral keys cannot grow the map forever.
type buckets struct {
	mu        sync.Mutex
	entries   map[string]*bucketEntry
	limit     rate.Limit
	burst     int
	horizon   time.Duration
	nextSweep time.Time
}

func newBuckets(cfg RateLimitConfig) *buckets {
	perSecond := float64(cfg.RequestsPerWindow) / cfg.Window.Seconds()
	return &buckets{
		entries:   make(map[string]*bucketEntry),
		limit:     rate.Limit(perSecond),
		burst:     cfg.Burst,
		horizon:   5 * time.Minute,
		nextSweep: time.Now().Add(5 * time.Minute),
	}
}

// take reports whether key may proceed now, and if not, how long until the
// next token frees up.
func (b *buckets) take(key string) (bool, time.Duration) {
	now := time.Now()

	b.mu.Lock()
	e, ok := b.entries[key]
	if !ok {
		e = &bucketEntry{lim: rate.NewLimiter(b.limit, b.burst)}
		b.entries[key] = e
	}
	e.seen = now
	if now.After(b.nextSweep) {
		b.sweepLocked(now)
	}
	b.mu.Unlock()

	if e.lim.Allow() {
		return true, 0
	}
	// Reserve to learn the wait, then hand the token back.
	res := e.lim.Reserve()
	wait := res.Delay()
	res.Cancel()
	return false, wait
}

func (b *buckets) sweepLocked(now time.Time) {
	for key, e := range b.entries {
		if now.Sub(e.seen) > b.horizon {
			delete(b.entries, key)
		}
	}
	b.nextSweep = now.Add(b.horizon)
}

// RateLimitMiddleware enforces cfg per key. On rejection it answers 429 with
// Retry-After, X-RateLimit-Limit and X-RateLimit-Window headers and the
// standard error envelope.
func RateLimitMiddleware(cfg RateLimitConfig, extract KeyExtractor) Middleware {
	b := newBuckets(cfg)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			log := slogx.FromContext(r.Context())

			key := extract(r)
			if key == "" {
				log.Warn("rate limit key empty, request not limited", "endpoint", r.URL.Path)
				next.ServeHTTP(w, r)
				return
			}

			allowed, wait := b.take(key)
			if allowed {
				next.ServeHTTP(w, r)
				return
			}

			retryAfter := max(int(wait.Seconds()), 1)
			w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(cfg.RequestsPerWindow))
			w.Header().Set("X-RateLimit-Window", cfg.Window.String())

			log.Warn("rate limit exceeded",
				"key", key,
				"endpoint", r.URL.Path,
				"retry_after", retryAfter,
			)

			WriteJSON(w, http.StatusTooManyRequests, map[string]string{
				"error":             "rate_limit_exceeded",
				"error_description": "Too many requests. Please try again later.",
			})
		})
	}
}

// RateLimitByIP limits per client IP.
func RateLimitByIP(cfg RateLimitConfig) Middleware {
	return RateLimitMiddleware(cfg, IPKeyExtractor)
}

// RateLimitByUser limits per authenticated user, with the IP folded in so
// anonymous traffic on the same route still gets bucketed.
func RateLimitByUser(cfg RateLimitConfig) Middleware {
	return RateLimitMiddleware(cfg, CompositeKeyExtractor(":",
		UserIDKeyExtractor,
		IPKeyExtractor,
	))
}
