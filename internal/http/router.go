package http

import (
	"github.com/gin-gonic/gin"

	httpH "github.com/openmedix/facility-backend/internal/http/handlers"
	httpMW "github.com/openmedix/facility-backend/internal/http/middleware"
	"github.com/openmedix/facility-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log *logger.Logger

	HealthHandler *httpH.HealthHandler
	AuthHandler   *httpH.AuthHandler
	SampleHandler *httpH.SampleHandler

	AuthMiddleware *httpMW.AuthMiddleware
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	// PUT is deliberately unrouted; this turns it into a 405 instead of a 404.
	r.HandleMethodNotAllowed = true

	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.CORS())

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}

	api := r.Group("/api/v1")

	protected := api.Group("/")
	{
		if cfg.AuthMiddleware != nil {
			protected.Use(cfg.AuthMiddleware.RequireAuth())
		}

		// Auth
		if cfg.AuthHandler != nil {
			protected.POST("/auth/logout", cfg.AuthHandler.Logout)
			protected.GET("/auth/me", cfg.AuthHandler.Me)
		}

		// Samples
		if cfg.SampleHandler != nil {
			protected.GET("/samples", cfg.SampleHandler.List)
			protected.POST("/samples", cfg.SampleHandler.Create)
			protected.GET("/samples/:id", cfg.SampleHandler.Get)
			protected.PATCH("/samples/:id", cfg.SampleHandler.Update)
			protected.DELETE("/samples/:id", cfg.SampleHandler.Delete)

			// Patient-scoped nesting
			protected.GET("/patients/:patient_id/samples", cfg.SampleHandler.List)
			protected.POST("/patients/:patient_id/samples", cfg.SampleHandler.Create)
		}
	}

	return r
}
