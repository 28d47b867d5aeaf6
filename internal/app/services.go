package app

import (
	goredis "github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/openmedix/facility-backend/internal/platform/logger"
	"github.com/openmedix/facility-backend/internal/services"
)

type Services struct {
	Auth   services.AuthService
	Sample services.SampleService
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, r Repos, rdb *goredis.Client) Services {
	log.Info("Wiring services...")
	return Services{
		Auth:   services.NewAuthService(db, log, r.User, rdb, cfg.JWTSecretKey),
		Sample: services.NewSampleService(db, log, r.Sample, r.SampleFlow, r.Consultation),
	}
}
