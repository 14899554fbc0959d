package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config aggregates runtime configuration for the service.
type Config struct {
	App          AppConfig
	Postgres     PostgresConfig
	Redis        RedisConfig
	Logger       LoggerConfig
	Auth         AuthConfig
	Notification NotificationConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name                  string   `env:"APP_NAME" envDefault:"visitor-register"`
	Env                   string   `env:"APP_ENV" envDefault:"development"`
	Host                  string   `env:"APP_HOST" envDefault:"0.0.0.0"`
	Port                  string   `env:"APP_PORT" envDefault:"8080"`
	Version               string   `env:"APP_VERSION" envDefault:"dev"`
	Timezone              string   `env:"APP_TIMEZONE" envDefault:"UTC"`
	SecretKeyBase         string   `env:"APP_SECRET_KEY_BASE"`
	RequestTimeoutSeconds int      `env:"HTTP_REQUEST_TIMEOUT_SECONDS" envDefault:"30"`
	CORSAllowedOrigins    []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:4200"`

	location *time.Location
}

// PostgresConfig holds DB connection values.
type PostgresConfig struct {
	DSN            string `env:"POSTGRES_DSN"`
	MaxConns       int32  `env:"POSTGRES_MAX_CONNS" envDefault:"10"`
	MinConns       int32  `env:"POSTGRES_MIN_CONNS" envDefault:"2"`
	RunMigrations  bool   `env:"POSTGRES_RUN_MIGRATIONS" envDefault:"true"`
	ConnMaxIdleSec int32  `env:"POSTGRES_CONN_MAX_IDLE_SECONDS" envDefault:"30"`
	ConnMaxLifeSec int32  `env:"POSTGRES_CONN_MAX_LIFE_SECONDS" envDefault:"300"`
}

// RedisConfig holds Redis connection values.
type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR" envDefault:"127.0.0.1:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB" envDefault:"0"`
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string `env:"LOG_LEVEL" envDefault:"info"`
}

// AuthConfig defines authentication parameters.
type AuthConfig struct {
	JWTSecret string `env:"AUTH_JWT_SECRET" envDefault:"dev-secret"`
	// PreviousSecrets are still accepted for verification after a key rotation.
	PreviousSecrets  []string      `env:"AUTH_JWT_PREVIOUS_SECRETS" envSeparator:","`
	AccessTokenTTL   time.Duration `env:"AUTH_ACCESS_TOKEN_TTL" envDefault:"30m"`
	BcryptCost       int           `env:"AUTH_BCRYPT_COST" envDefault:"12"`
	LoginMaxAttempts int           `env:"AUTH_LOGIN_MAX_ATTEMPTS" envDefault:"5"`
	LoginWindow      time.Duration `env:"AUTH_LOGIN_WINDOW" envDefault:"15m"`
}

// NotificationConfig holds stub notification endpoints.
type NotificationConfig struct {
	EmailFrom  string `env:"NOTIFY_EMAIL_FROM" envDefault:"frontdesk@example.com"`
	WebhookURL string `env:"NOTIFY_WEBHOOK_URL"`
}

// Load reads configuration from a .env file (if any) and environment variables.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	loc, err := time.LoadLocation(cfg.App.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid APP_TIMEZONE: %w", err)
	}
	cfg.App.location = loc

	if cfg.Auth.AccessTokenTTL <= 0 {
		return nil, fmt.Errorf("invalid AUTH_ACCESS_TOKEN_TTL: %s", cfg.Auth.AccessTokenTTL)
	}

	return cfg, nil
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// RequestTimeout returns the configured request timeout duration.
func (a AppConfig) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

// Location is the zone used for ticket dates, time periods and rendering.
func (a AppConfig) Location() *time.Location {
	if a.location == nil {
		return time.UTC
	}
	return a.location
}

// TokenSecrets lists the signing secret candidates in verification order.
// The first entry signs new tokens.
func (c Config) TokenSecrets() []string {
	candidates := make([]string, 0, len(c.Auth.PreviousSecrets)+2)
	candidates = append(candidates, c.Auth.JWTSecret)
	candidates = append(candidates, c.Auth.PreviousSecrets...)
	candidates = append(candidates, c.App.SecretKeyBase)

	secrets := make([]string, 0, len(candidates))
	for _, s := range candidates {
		if s = strings.TrimSpace(s); s != "" {
			secrets = append(secrets, s)
		}
	}
	return secrets
}
