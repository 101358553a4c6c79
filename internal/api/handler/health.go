package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/neurocare-ai/portal/internal/core/ports"
)

// HealthHandler exposes liveness and readiness probes. A nil redis client
// means the in-memory token store is in use and the check is skipped.
type HealthHandler struct {
	redis    *redis.Client
	mongo    *mongo.Client
	upstream ports.UpstreamGateway
}

func NewHealthHandler(rdb *redis.Client, mdb *mongo.Client, upstream ports.UpstreamGateway) *HealthHandler {
	return &HealthHandler{redis: rdb, mongo: mdb, upstream: upstream}
}

// Liveness godoc
// @Summary      Liveness probe
// @Tags         health
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *HealthHandler) Liveness(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// Readiness godoc
// @Summary      Readiness probe
// @Description  Checks the token store, audit store and upstream service
// @Tags         health
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      503  {object}  map[string]string
// @Router       /health/ready [get]
func (h *HealthHandler) Readiness(c echo.Context) error {
	ctx := c.Request().Context()
	checks := map[string]string{}
	healthy := true

	if h.redis == nil {
		checks["redis"] = "disabled"
	} else if err := h.redis.Ping(ctx).Err(); err != nil {
		checks["redis"] = err.Error()
		healthy = false
	} else {
		checks["redis"] = "ok"
	}

	if err := h.mongo.Ping(ctx, readpref.Primary()); err != nil {
		checks["mongo"] = err.Error()
		healthy = false
	} else {
		checks["mongo"] = "ok"
	}

	if err := h.upstream.Reachable(ctx); err != nil {
		checks["upstream"] = err.Error()
		healthy = false
	} else {
		checks["upstream"] = "ok"
	}

	status := http.StatusOK
	if !healthy {
		status = http.StatusServiceUnavailable
	}
	return c.JSON(status, checks)
}
