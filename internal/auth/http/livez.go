package http

import (
	"net/http"
	"time"

	"github.com/taskhubhq/taskhub/pkg/authclient"
	"github.com/taskhubhq/taskhub/pkg/httpx"
)

// LivezHandler godoc
//
//	@Summary		Liveness probe
//	@Description	Reports that the process is up, with uptime and build version.
//	@Description	Always answers 200 while the service is running.
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	authclient.HealthResponse	"status, uptime, version"
//	@Router			/livez [get].
func LivezHandler(startTime time.Time, version string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, authclient.HealthResponse{
			Status:  "ok",
			Uptime:  time.Since(startTime).String(),
			Version: version,
		})
	}
}
