package handlers

import (
	"context"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/iamyashsharma43/SENTIFY/internal/constants"
	"github.com/iamyashsharma43/SENTIFY/internal/utils"
)

// HealthHandler reports liveness and build information.
type HealthHandler struct {
	db          HealthChecker
	version     string
	environment string
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(db HealthChecker, version, environment string) *HealthHandler {
	return &HealthHandler{db: db, version: version, environment: environment}
}

// Health pings the store and responds 503 when it is unreachable.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), constants.DBHealthCheckTimeout)
	defer cancel()

	if err := h.db.HealthCheck(ctx); err != nil {
		log.Error().Err(err).Msg("Health check failed")
		utils.Error(w, constants.StatusServiceUnavailable, constants.MsgServiceUnhealthy, nil)
		return
	}

	utils.JSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": h.version,
	})
}

// Version reports the running version and environment.
func (h *HealthHandler) Version(w http.ResponseWriter, r *http.Request) {
	utils.JSON(w, http.StatusOK, map[string]string{
		"version":     h.version,
		"environment": h.environment,
	})
}
