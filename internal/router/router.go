package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"expertap/internal/domain"
	"expertap/internal/handler"
	"expertap/internal/middleware"
	"expertap/internal/service"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	log *zap.Logger,
	authSvc service.AuthService,
	decisionH *handler.DecisionHandler,
	healthH *handler.HealthHandler,
	allowedOrigins []string,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery(log))
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(log))
	r.Use(middleware.CORS(allowedOrigins))

	// Health checks and metrics
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := r.Group("/api/v1")

	// Public read routes
	v1.GET("/criticism-codes", decisionH.CriticismCodes)
	decisions := v1.Group("/decisions")
	decisions.GET("", decisionH.List)
	decisions.GET("/stats", decisionH.Stats)
	decisions.GET("/export", decisionH.Export)
	decisions.POST("/parse", decisionH.Parse)
	decisions.GET("/:id", decisionH.GetByID)
	decisions.GET("/:id/sections", decisionH.ListSections)

	// Protected routes - require a valid bearer token
	protected := v1.Group("/decisions")
	protected.Use(middleware.AuthMiddleware(authSvc))
	protected.GET("/:id/original", decisionH.GetOriginal)

	admin := protected.Group("")
	admin.Use(middleware.RequireRole(domain.RoleAdmin))
	admin.POST("/upload", decisionH.Upload)
	admin.POST("/:id/reparse", decisionH.Reparse)
	admin.DELETE("/:id", decisionH.Delete)

	return r
}
