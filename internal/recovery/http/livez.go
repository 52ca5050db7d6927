package http

import (
	"net/http"
	"time"

	"github.com/lockstead/recovery/pkg/httpx"
	"github.com/lockstead/recovery/pkg/recoverysdk"
)

// LivezHandler is the liveness probe: 200 OK with uptime and version as long
// as the process is serving.
func LivezHandler(startTime time.Time, version string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response := recoverysdk.HealthResponse{
			Status:  "ok",
			Uptime:  time.Since(startTime).String(),
			Version: version,
		}
		httpx.WriteJSON(w, http.StatusOK, response)
	}
}
