package routes

import (
	"net/http"
	"time"

	"quotecompare/config"
	"quotecompare/handlers"
	"quotecompare/middleware"
	"quotecompare/models"
	"quotecompare/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RegisterQuoteRoutes registers buyer and vendor quote endpoints.
func RegisterQuoteRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/quotes")
	{
		// Guests may submit and track quotes.
		api.POST("", middleware.OptionalAuth(hb.Authenticator), hb.QuoteHandler.CreateQuoteHandler)
		api.GET("/:id", middleware.OptionalAuth(hb.Authenticator), hb.QuoteHandler.GetQuoteHandler)

		api.GET("", middleware.RequireAuth(hb.Authenticator), hb.QuoteHandler.ListQuotesHandler)

		// gin requires one wildcard name per segment, so the quote id is :id here too.
		vendor := api.Group("/:id")
		vendor.Use(middleware.RequireAuth(hb.Authenticator), middleware.RequireRole(models.RoleVendor))
		vendor.POST("/respond", hb.QuoteHandler.RespondHandler)
		vendor.PUT("/respond", hb.QuoteHandler.UpdateResponseHandler)
	}
}

// RegisterAdminRoutes sets up endpoints for admin operations.
func RegisterAdminRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	adminGroup := r.Group("/api/admin")
	{
		adminGroup.Use(middleware.RequireAuth(hb.Authenticator), middleware.RequireRole(models.RoleAdmin))
		adminGroup.GET("/users", hb.AdminHandler.GetAllUsersHandler)
		adminGroup.GET("/users/export", hb.AdminHandler.ExportUsersHandler)
		adminGroup.PATCH("/users/:id", hb.AdminHandler.UpdateUserStatusHandler)
		adminGroup.GET("/stats", hb.AdminHandler.GetStatsHandler)
		adminGroup.GET("/stats/:id", hb.AdminHandler.GetUserStatsHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/api/health", hb.HealthHandler.HealthCheckHandler)
}

// RegisterMetricsRoute exposes Prometheus metrics when enabled.
func RegisterMetricsRoute(r *gin.Engine, hb *handlers.HandlerBundle) {
	if hb.Metrics == nil {
		return
	}
	r.GET("/metrics", gin.WrapH(hb.Metrics.Handler()))
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	if err := r.SetTrustedProxies(config.TrustedProxies()); err != nil {
		utils.GetLogger().Error("invalid TRUSTED_PROXIES, trusting no proxies", zap.Error(err))
		_ = r.SetTrustedProxies(nil)
	}
	r.Use(utils.ErrorHandler())
	if hb.Metrics != nil {
		r.Use(hb.Metrics.Middleware())
	}
	r.Use(cors.New(cors.Config{
		AllowOrigins:     config.AllowedOrigins(),
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", utils.MockRoleHeader},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.RateLimitMiddleware(config.AppConfig.MaxRequestsPerMin))

	RegisterHealthRoute(r, hb)
	RegisterMetricsRoute(r, hb)
	RegisterQuoteRoutes(r, hb)
	RegisterAdminRoutes(r, hb)

	r.NoRoute(spaHandler(config.AppConfig.StaticDir))
}

// unknownAPI answers unmatched /api paths.
func unknownAPI(c *gin.Context) {
	c.JSON(http.StatusNotFound, utils.ErrorResponse{Error: "Not found"})
}
