package app

import (
	"github.com/gin-gonic/gin"

	"github.com/openmedix/facility-backend/internal/http"
	httpH "github.com/openmedix/facility-backend/internal/http/handlers"
	httpMW "github.com/openmedix/facility-backend/internal/http/middleware"
	"github.com/openmedix/facility-backend/internal/platform/logger"
)

type Middleware struct {
	Auth *httpMW.AuthMiddleware
}

type Handlers struct {
	Health *httpH.HealthHandler
	Auth   *httpH.AuthHandler
	Sample *httpH.SampleHandler
}

func wireHandlers(log *logger.Logger, services Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health: httpH.NewHealthHandler(),
		Auth:   httpH.NewAuthHandler(services.Auth),
		Sample: httpH.NewSampleHandler(log, services.Sample),
	}
}

func wireMiddleware(log *logger.Logger, services Services) Middleware {
	log.Info("Wiring middleware...")
	return Middleware{
		Auth: httpMW.NewAuthMiddleware(log, services.Auth),
	}
}

func wireRouter(log *logger.Logger, handlers Handlers, middleware Middleware) *gin.Engine {
	return http.NewRouter(http.RouterConfig{
		Log:            log,
		HealthHandler:  handlers.Health,
		AuthHandler:    handlers.Auth,
		SampleHandler:  handlers.Sample,
		AuthMiddleware: middleware.Auth,
	})
}
