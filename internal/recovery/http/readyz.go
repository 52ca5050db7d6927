package http

import (
	"net/http"
	"time"

	"github.com/lockstead/recovery/internal/recovery/store"
	"github.com/lockstead/recovery/pkg/httpx"
	"github.com/lockstead/recovery/pkg/recoverysdk"
)

// ReadyzHandler is the readiness probe. It degrades to 503 when the question
// store cannot be reached, since every endpoint depends on it.
func ReadyzHandler(startTime time.Time, version string, st store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		checks := &recoverysdk.HealthChecks{
			Database: "ok",
		}
		overallStatus := "ok"
		statusCode := http.StatusOK

		if err := st.Ping(r.Context()); err != nil {
			checks.Database = "error: " + err.Error()
			overallStatus = "degraded"
			statusCode = http.StatusServiceUnavailable
		}

		response := recoverysdk.HealthResponse{
			Status:  overallStatus,
			Uptime:  time.Since(startTime).String(),
			Version: version,
			Checks:  checks,
		}
		httpx.WriteJSON(w, statusCode, response)
	}
}
