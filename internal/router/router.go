package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"rosterscan/internal/handler"
	"rosterscan/internal/middleware"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	uploadH *handler.UploadHandler,
	healthH *handler.HealthHandler,
	allowedOrigins []string,
	logger *zap.Logger,
) *gin.Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	r := gin.New()

	r.Use(middleware.RequestID())
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS(allowedOrigins))

	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)
	r.GET("/health", healthH.Liveness)

	v1 := r.Group("/api/v1")

	rosters := v1.Group("/rosters/:roster_id")
	rosters.POST("/uploads", uploadH.Create)
	rosters.GET("/players", uploadH.ListPlayers)

	v1.GET("/uploads/:id", uploadH.GetByID)

	return r
}
