package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=3000"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Session SessionConfig
	HTTP    HTTPConfig
	Mongo   MongoConfig
	Redis   RedisConfig
	Stripe  StripeConfig
}

type SessionConfig struct {
	Secret string        `env:"ACCESS_TOKEN_SECRET, required"`
	TTL    time.Duration `env:"SESSION_TTL,         default=8760h"`
	Cookie string        `env:"SESSION_COOKIE,      default=token"`
}

type HTTPConfig struct {
	CORSOrigins    []string `env:"CORS_ORIGINS,     default=http://localhost:5173,http://localhost:5174"`
	RateLimitRPS   float64  `env:"RATE_LIMIT_RPS,   default=5"`
	RateLimitBurst int      `env:"RATE_LIMIT_BURST, default=10"`
}

type MongoConfig struct {
	URI      string `env:"MONGODB_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,    default=phc_plantnet"`
}

// RedisConfig is optional. An unset REDIS_ADDR runs the service without
// session revocation and transaction claims.
type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,       default=0"`
}

type StripeConfig struct {
	SecretKey string `env:"STRIPE_SECRET_KEY"`
	Currency  string `env:"STRIPE_CURRENCY, default=usd"`
}

// Production reports whether the service runs in production mode.
func (c *Config) Production() bool {
	return strings.EqualFold(c.Env, "production")
}

// Load reads an optional .env file and then the process environment. Values
// already present in the environment win over the file.
func Load(ctx context.Context, envFiles ...string) (*Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load env file: %w", err)
	}
	return FromLookuper(ctx, envconfig.OsLookuper())
}

// FromLookuper builds a Config from an arbitrary variable source.
func FromLookuper(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, fmt.Errorf("process config: %w", err)
	}
	if strings.TrimSpace(cfg.Session.Secret) == "" {
		return nil, errors.New("ACCESS_TOKEN_SECRET must not be empty")
	}
	return &cfg, nil
}
