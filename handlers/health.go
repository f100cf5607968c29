package handlers

import (
	"net/http"

	"quotecompare/utils"

	"github.com/gin-gonic/gin"
)

// HealthHandler reports liveness and the active store.
type HealthHandler struct {
	StoreMode string
	MockMode  bool
}

func (h *HealthHandler) HealthCheckHandler(c *gin.Context) {
	message := "Quote Compare API is running"
	if h.MockMode {
		message += " (mock mode: Firebase not configured)"
	}
	c.JSON(http.StatusOK, gin.H{
		"status":   "ok",
		"message":  message,
		"store":    h.StoreMode,
		"services": utils.GetHealthStatus().Services,
	})
}
