package handlers

import (
	"net/http"
	"time"

	"agendamento/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

type HealthHandler struct {
	Store utils.Pinger
	Cache *redis.Client
	// MaxAge is how old the monitor's snapshot may be before a request checks again.
	MaxAge time.Duration
}

func NewHealthHandler(store utils.Pinger, cache *redis.Client, maxAge time.Duration) *HealthHandler {
	return &HealthHandler{Store: store, Cache: cache, MaxAge: maxAge}
}

// RootHandler handles GET /.
func (h *HealthHandler) RootHandler(c *gin.Context) {
	c.String(http.StatusOK, "API rodando...")
}

// HealthCheckHandler reports the store and cache health. A cache outage degrades but does not fail the check.
// The monitor's snapshot is served while fresh; otherwise both are checked now.
func (h *HealthHandler) HealthCheckHandler(c *gin.Context) {
	status := utils.GetHealthStatus()
	if status.CheckedAt.IsZero() || time.Since(status.CheckedAt) >= h.MaxAge {
		status = utils.CheckHealth(c.Request.Context(), h.Store, h.Cache)
	}
	code := http.StatusOK
	state := "ok"
	if !status.Store {
		code = http.StatusServiceUnavailable
		state = "unavailable"
	} else if status.Redis != nil && !*status.Redis {
		state = "degraded"
	}
	c.JSON(code, gin.H{"status": state, "checks": status})
}
