package handler

import (
	"context"
	"net/http"
	"time"

	"mediquick-api/pkg/response"

	"github.com/sirupsen/logrus"
)

const healthTimeout = 2 * time.Second

// HealthCheck probes one dependency.
type HealthCheck struct {
	Name  string
	Check func(ctx context.Context) error
}

type HealthHandler struct {
	checks []HealthCheck
	log    *logrus.Logger
}

func NewHealthHandler(log *logrus.Logger, checks ...HealthCheck) *HealthHandler {
	return &HealthHandler{
		checks: checks,
		log:    log,
	}
}

// Health reports "ok" per dependency, or 503 when any of them is down.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
	defer cancel()

	status := map[string]string{}
	healthy := true
	for _, c := range h.checks {
		if err := c.Check(ctx); err != nil {
			h.log.Warnf("Health check %s failed: %+v", c.Name, err)
			status[c.Name] = "down"
			healthy = false
			continue
		}
		status[c.Name] = "ok"
	}

	if !healthy {
		response.Error(w, http.StatusServiceUnavailable, "Service unhealthy", status)
		return
	}
	response.Success(w, http.StatusOK, "Service healthy", status)
}
