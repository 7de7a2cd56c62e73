package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	// Secure marks the service as terminating TLS itself. Requests arriving
	// through a TLS-terminating proxy are detected per request via the
	// X-Forwarded-Proto header instead.
	Secure bool `env:"HTTP_SECURE, default=false"`

	Secrets SecretsConfig
	Session SessionConfig
	Mongo   MongoConfig
	Redis   RedisConfig
}

// SecretsConfig holds the process-wide signing secret and password salt.
// Constructed once at startup and passed explicitly to the components that
// need them; nothing reads these ambiently.
type SecretsConfig struct {
	JWT          string `env:"JWT_SECRET"`
	PasswordSalt string `env:"PASSWORD_SALT"`
}

type SessionConfig struct {
	TTL           time.Duration `env:"SESSION_TTL,            default=24h"`
	ExtendedTTL   time.Duration `env:"SESSION_EXTENDED_TTL,   default=8760h"`
	SweepInterval time.Duration `env:"SESSION_SWEEP_INTERVAL, default=10m"`
	TouchWindow   time.Duration `env:"SESSION_TOUCH_WINDOW,   default=1m"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=accounts_system"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
