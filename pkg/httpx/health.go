package httpx

import (
	"context"
	"net/http"
	"time"
)

const healthProbeTimeout = 2 * time.Second

// HealthChecker is satisfied by any infrastructure dependency that exposes
// a Ping method (Database, RedisClient, EventBus, TemporalClient all qualify).
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// HealthChecks holds the set of dependencies to probe in the health endpoint.
// Scheduler is optional and only reported when set.
type HealthChecks struct {
	Database  HealthChecker
	Redis     HealthChecker
	EventBus  HealthChecker
	Scheduler HealthChecker
}

type healthResponse struct {
	Status    string `json:"status"`
	Database  string `json:"database"`
	Redis     string `json:"redis"`
	EventBus  string `json:"event_bus"`
	Scheduler string `json:"scheduler,omitempty"`
}

// HealthHandler returns an http.HandlerFunc that probes all registered
// HealthCheckers and reports degraded status if any of them fail.
func HealthHandler(checks HealthChecks) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), healthProbeTimeout)
		defer cancel()

		resp := healthResponse{Status: "ok"}
		probes := []struct {
			checker HealthChecker
			result  *string
		}{
			{checks.Database, &resp.Database},
			{checks.Redis, &resp.Redis},
			{checks.EventBus, &resp.EventBus},
			{checks.Scheduler, &resp.Scheduler},
		}
		for _, p := range probes {
			if p.checker == nil {
				continue
			}
			*p.result = "ok"
			if err := p.checker.Ping(ctx); err != nil {
				resp.Status = "degraded"
				*p.result = "unreachable"
			}
		}

		status := http.StatusOK
		if resp.Status != "ok" {
			status = http.StatusServiceUnavailable
		}
		JSON(w, status, resp)
	}
}
