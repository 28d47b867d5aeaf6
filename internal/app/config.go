package app

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/openmedix/facility-backend/internal/data/db"
	"github.com/openmedix/facility-backend/internal/platform/logger"
	"github.com/openmedix/facility-backend/internal/utils"
)

type Config struct {
	HTTPAddr     string `yaml:"http_addr"`
	LogMode      string `yaml:"log_mode"`
	Environment  string `yaml:"environment"`
	JWTSecretKey string `yaml:"jwt_secret_key"`

	Postgres db.PostgresConfig `yaml:"postgres"`

	RedisAddr     string `yaml:"redis_addr"`
	RedisPassword string `yaml:"redis_password"`
	RedisDB       int    `yaml:"redis_db"`

	OtelEnabled  bool   `yaml:"otel_enabled"`
	OtelEndpoint string `yaml:"otel_endpoint"`
	OtelInsecure bool   `yaml:"otel_insecure"`
}

// LoadConfig reads env vars first, then overlays an optional YAML file named
// by CONFIG_FILE. Keys absent from the file keep their env values.
func LoadConfig(log *logger.Logger) (Config, error) {
	cfg := Config{
		HTTPAddr:     utils.GetEnv("HTTP_ADDR", ":8080", log),
		LogMode:      utils.GetEnv("LOG_MODE", "development", log),
		Environment:  utils.GetEnv("ENVIRONMENT", "development", log),
		JWTSecretKey: utils.GetEnv("JWT_SECRET_KEY", "defaultsecret", log),
		Postgres: db.PostgresConfig{
			Host:     utils.GetEnv("POSTGRES_HOST", "localhost", log),
			Port:     utils.GetEnv("POSTGRES_PORT", "5432", log),
			User:     utils.GetEnv("POSTGRES_USER", "postgres", log),
			Password: utils.GetEnv("POSTGRES_PASSWORD", "", log),
			Name:     utils.GetEnv("POSTGRES_NAME", "facility", log),
		},
		RedisAddr:     utils.GetEnv("REDIS_ADDR", "", log),
		RedisPassword: utils.GetEnv("REDIS_PASSWORD", "", log),
		RedisDB:       utils.GetEnvAsInt("REDIS_DB", 0, log),
		OtelEnabled:   utils.GetEnv("OTEL_ENABLED", "", log) != "",
		OtelEndpoint:  utils.GetEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "", log),
		OtelInsecure:  utils.GetEnv("OTEL_EXPORTER_OTLP_INSECURE", "", log) != "",
	}

	if path := utils.GetEnv("CONFIG_FILE", "", log); path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config file: %w", err)
		}
	}

	return cfg, nil
}
