package web

import (
	"context"
	"net/http"
	"time"
)

// HealthResponse is the payload of the health and readiness endpoints.
type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Checks    map[string]string `json:"checks,omitempty"`
	Uptime    string            `json:"uptime,omitempty"`
}

var startTime = time.Now()

// HealthCheck reports liveness. A running process answers ok; dependencies
// are deliberately not touched here, /readiness covers them.
// GET /health
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	jsonResponse(w, HealthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC(),
		Uptime:    time.Since(startTime).Truncate(time.Second).String(),
	})
}

// ReadinessCheck reports whether the service can take traffic: the database
// must answer a ping and the schema must be in place. Returns 503 when any
// check fails so the load balancer pulls the instance.
// GET /readiness
func (h *Handler) ReadinessCheck(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	checks := map[string]string{
		"database": h.checkDatabase(ctx),
		"schema":   h.checkSchema(ctx),
	}

	status, httpStatus := "ok", http.StatusOK
	for _, v := range checks {
		if v != "ok" {
			status, httpStatus = "error", http.StatusServiceUnavailable
			break
		}
	}

	jsonResponseStatus(w, httpStatus, HealthResponse{
		Status:    status,
		Timestamp: time.Now().UTC(),
		Checks:    checks,
	})
}

func (h *Handler) checkDatabase(ctx context.Context) string {
	if err := h.container.DB.PingContext(ctx); err != nil {
		return "error"
	}
	return "ok"
}

// checkSchema verifies the migrations ran: the personnes table is the root
// of the schema, every profile hangs off it.
func (h *Handler) checkSchema(ctx context.Context) string {
	var n int
	if err := h.container.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM personnes").Scan(&n); err != nil {
		return "error"
	}
	return "ok"
}
