package http

import (
	"net/http"
	"time"

	"github.com/taskhubhq/taskhub/internal/auth/store"
	"github.com/taskhubhq/taskhub/pkg/authclient"
	"github.com/taskhubhq/taskhub/pkg/httpx"
)

// ReadyzHandler godoc
//
//	@Summary		Readiness probe
//	@Description	Reports whether the service can take traffic. Answers 503 with
//	@Description	per-dependency checks when the database is unreachable.
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	authclient.HealthResponse	"status, uptime, version, checks"
//	@Failure		503	{object}	authclient.HealthResponse	"status, uptime, version, checks"
//	@Router			/readyz [get].
func ReadyzHandler(startTime time.Time, version string, st store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := "ok"
		code := http.StatusOK
		checks := &authclient.HealthChecks{Database: "ok"}

		if err := st.Ping(r.Context()); err != nil {
			checks.Database = "error: " + err.Error()
			status = "degraded"
			code = http.StatusServiceUnavailable
		}

		httpx.WriteJSON(w, code, authclient.HealthResponse{
			Status:  status,
			Uptime:  time.Since(startTime).String(),
			Version: version,
			Checks:  checks,
		})
	}
}
