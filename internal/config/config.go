package config

import (
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"

	"agenda_backend/internal/logger"
)

type Config struct {
	AppPort     string `env:"APP_PORT" env-default:"8080"`
	DatabaseURL string `env:"DATABASE_URL" env-required:"true"`

	LogLevel string `env:"LOG_LEVEL" env-default:"info"`
	LogJSON  bool   `env:"LOG_JSON" env-default:"false"`

	JWTSecret       string        `env:"JWT_SECRET" env-required:"true"`
	AccessTokenTTL  time.Duration `env:"ACCESS_TOKEN_TTL" env-default:"15m"`
	RefreshTokenTTL time.Duration `env:"REFRESH_TOKEN_TTL" env-default:"720h"`
	ResetTokenTTL   time.Duration `env:"RESET_TOKEN_TTL" env-default:"1h"`

	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" env-default:"0"`

	APIRateLimit   int           `env:"API_RATE_LIMIT" env-default:"60"`
	APIRateWindow  time.Duration `env:"API_RATE_WINDOW" env-default:"1m"`
	AuthRateLimit  int           `env:"AUTH_RATE_LIMIT" env-default:"5"`
	AuthRateWindow time.Duration `env:"AUTH_RATE_WINDOW" env-default:"1m"`

	CORSOrigins []string `env:"CORS_ORIGINS" env-default:"*"`
}

// Load reads .env (if present) and the environment. Missing mandatory
// variables are fatal: the server cannot run without a database or a
// token signing key.
func Load() *Config {
	_ = godotenv.Load()

	cfg := new(Config)
	if err := cleanenv.ReadEnv(cfg); err != nil {
		logger.Fatal("failed to read config from env", "error", err)
	}
	return cfg
}
