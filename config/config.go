package config

import (
	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

type Config struct {
	// Port the HTTP server listens on
	ServerPort string `env:"SERVER_PORT" envDefault:"5250"`

	// Path to the SQLite database file
	DatabasePath string `env:"DATABASE_PATH" envDefault:"database/hillgate.db"`

	// Secret used to sign JWT tokens
	JWTSecret string `env:"JWT_SECRET" envDefault:"change-me"`

	// Token lifetime in hours
	JWTExpiryHours int `env:"JWT_EXPIRY_HOURS" envDefault:"24"`

	// Credentials for the admin account seeded on first start
	DefaultAdminUsername string `env:"DEFAULT_ADMIN_USERNAME" envDefault:"admin"`
	DefaultAdminPassword string `env:"DEFAULT_ADMIN_PASSWORD" envDefault:"admin"`

	// Gin mode: debug, release or test
	GinMode string `env:"GIN_MODE" envDefault:"debug"`
}

// LoadConfig reads configuration from the environment. A .env file in the
// working directory is loaded first when present; a missing file is not an
// error since production sets real environment variables.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
