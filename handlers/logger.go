package handlers

import (
	"quotecompare/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// getLogger returns the global logger tagged with the request route.
func getLogger(c *gin.Context) *zap.Logger {
	return utils.GetLogger().With(
		zap.String("method", c.Request.Method),
		zap.String("path", c.Request.URL.Path),
	)
}
