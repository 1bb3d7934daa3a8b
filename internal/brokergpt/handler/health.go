package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kart-io/brokergpt/internal/brokergpt/store"
)

// HealthHandler reports process liveness and the storage backend in use.
type HealthHandler struct {
	bootstrapper *store.Bootstrapper
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(bootstrapper *store.Bootstrapper) *HealthHandler {
	return &HealthHandler{bootstrapper: bootstrapper}
}

// Healthz always answers 200 while the process is alive; degraded storage is
// reported in the body, not the status code.
func (h *HealthHandler) Healthz(c *gin.Context) {
	database := store.StateUnavailable
	if h.bootstrapper != nil {
		database = h.bootstrapper.State()
	}
	c.JSON(http.StatusOK, gin.H{
		"status":   "ok",
		"database": database.String(),
		"fallback": database != store.StateConnected,
	})
}
