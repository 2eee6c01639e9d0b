package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/agenciasgt/distribuidores-backend/pkg/env"
	"github.com/kelseyhightower/envconfig"
)

const EnvPrefix = "DISTRIBUIDORES"

// Legacy environment names kept for compatibility with the original deployment.
const (
	EnvLegacyPort       = "PORT"
	EnvLegacyDSN        = "ConnectionStrings__DefaultConnection"
	EnvLegacyFabricaURL = "FabricaApiUrl"
)

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

type Config struct {
	App     AppConfig
	DB      DBConfig
	Redis   RedisConfig
	JWT     JWTConfig
	AuthRL  AuthRateLimitConfig
	Fabrica FabricaConfig
	Mail    MailConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	cfg.applyLegacyEnv()
	if cfg.DB.DSN == "" {
		return nil, fmt.Errorf("either DISTRIBUIDORES_DB_DSN or %s is required", EnvLegacyDSN)
	}
	return &cfg, nil
}

// applyLegacyEnv honors the mixed-case variables the .NET deployment used.
func (c *Config) applyLegacyEnv() {
	if v := env.Get(EnvLegacyPort, ""); v != "" {
		c.App.Port = v
	}
	if c.DB.DSN == "" {
		c.DB.DSN = env.Get(EnvLegacyDSN, "")
	}
	if v := env.Get(EnvLegacyFabricaURL, ""); v != "" {
		c.Fabrica.BaseURL = v
	}
}

type AppConfig struct {
	Env          string `envconfig:"DISTRIBUIDORES_APP_ENV" default:"dev"`
	Port         string `envconfig:"DISTRIBUIDORES_APP_PORT" default:"8081"`
	LogLevel     string `envconfig:"DISTRIBUIDORES_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"DISTRIBUIDORES_LOG_WARN_STACK" default:"false"`
	AutoMigrate  bool   `envconfig:"DISTRIBUIDORES_AUTO_MIGRATE" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"DISTRIBUIDORES_DB_DSN"`
	Driver string `envconfig:"DISTRIBUIDORES_DB_DRIVER" default:"postgres"`

	MaxOpenConns    int           `envconfig:"DISTRIBUIDORES_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"DISTRIBUIDORES_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"DISTRIBUIDORES_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"DISTRIBUIDORES_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

// RedisConfig is optional: an empty URL disables rate limiting entirely.
type RedisConfig struct {
	URL          string        `envconfig:"DISTRIBUIDORES_REDIS_URL"`
	PoolSize     int           `envconfig:"DISTRIBUIDORES_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"DISTRIBUIDORES_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"DISTRIBUIDORES_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"DISTRIBUIDORES_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"DISTRIBUIDORES_REDIS_WRITE_TIMEOUT" default:"5s"`
}

func (r RedisConfig) Enabled() bool {
	return strings.TrimSpace(r.URL) != ""
}

type JWTConfig struct {
	Secret            string `envconfig:"DISTRIBUIDORES_JWT_SECRET" default:"distribuidores-dev-secret"`
	Issuer            string `envconfig:"DISTRIBUIDORES_JWT_ISSUER" default:"distribuidores"`
	ExpirationMinutes int    `envconfig:"DISTRIBUIDORES_JWT_EXPIRATION_MINUTES" default:"480"`
}

type AuthRateLimitConfig struct {
	LoginWindow        time.Duration `envconfig:"DISTRIBUIDORES_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit    int           `envconfig:"DISTRIBUIDORES_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit       int           `envconfig:"DISTRIBUIDORES_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
	RegisterWindow     time.Duration `envconfig:"DISTRIBUIDORES_AUTH_RATE_LIMIT_REGISTER_WINDOW" default:"5m"`
	RegisterEmailLimit int           `envconfig:"DISTRIBUIDORES_AUTH_RATE_LIMIT_REGISTER_EMAIL_LIMIT" default:"3"`
	RegisterIPLimit    int           `envconfig:"DISTRIBUIDORES_AUTH_RATE_LIMIT_REGISTER_IP_LIMIT" default:"20"`
}

type FabricaConfig struct {
	BaseURL string        `envconfig:"DISTRIBUIDORES_FABRICA_API_URL" default:"http://localhost:8080"`
	Timeout time.Duration `envconfig:"DISTRIBUIDORES_FABRICA_TIMEOUT" default:"30s"`
}

// MailConfig reads the MAIL_* variables the original deployment used. The
// hardcoded Gmail fallbacks mirror the factory's mail.properties; blanking
// MAIL_HOST switches the mailer to console simulation.
type MailConfig struct {
	Host     string `envconfig:"MAIL_HOST" default:"smtp.gmail.com"`
	Port     int    `envconfig:"MAIL_PORT" default:"587"`
	User     string `envconfig:"MAIL_USER" default:"rr36693904@gmail.com"`
	Password string `envconfig:"MAIL_PASSWORD" default:"oyyg qdla yqga bbho"`
}

func (m MailConfig) Enabled() bool {
	return strings.TrimSpace(m.Host) != "" &&
		strings.TrimSpace(m.User) != "" &&
		strings.TrimSpace(m.Password) != ""
}

// Addr returns host:port for the SMTP dialer.
func (m MailConfig) Addr() string {
	return m.Host + ":" + strconv.Itoa(m.Port)
}
