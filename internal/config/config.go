// Package config loads service configuration from environment variables.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

const (
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

type Config struct {
	HTTPAddr string `env:"HTTP_ADDR" envDefault:":8080"`
	AppEnv   string `env:"APP_ENV" envDefault:"dev"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	StoreDriver             string `env:"STORE_DRIVER" envDefault:"mongo"`
	MongoURI                string `env:"MONGO_URI" envDefault:"mongodb://localhost:27017"`
	MongoDatabase           string `env:"MONGO_DATABASE" envDefault:"storefront"`
	MongoProductsCollection string `env:"MONGO_PRODUCTS_COLLECTION" envDefault:"Products"`
	MongoCartsCollection    string `env:"MONGO_CARTS_COLLECTION" envDefault:"Carts"`
	DatabaseDSN             string `env:"DATABASE_DSN"`
	RunMigrations           bool   `env:"RUN_MIGRATIONS" envDefault:"true"`

	RabbitMQURL string `env:"RABBITMQ_URL"`

	RequestTimeout   time.Duration `env:"REQUEST_TIMEOUT" envDefault:"5s"`
	ShutdownTimeout  time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
	CORSAllowOrigins []string      `env:"CORS_ALLOW_ORIGINS" envDefault:"*" envSeparator:","`

	OTelEndpoint string `env:"OTEL_ENDPOINT"`
}

// Load parses the environment and checks that the selected store driver has
// what it needs to connect.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var errs []error

	switch c.StoreDriver {
	case DriverMongo:
		if c.MongoURI == "" {
			errs = append(errs, errors.New("MONGO_URI is required for the mongo driver"))
		}
		if c.MongoDatabase == "" {
			errs = append(errs, errors.New("MONGO_DATABASE is required for the mongo driver"))
		}
	case DriverPostgres:
		if c.DatabaseDSN == "" {
			errs = append(errs, errors.New("DATABASE_DSN is required for the postgres driver"))
		}
	case DriverMemory:
	default:
		errs = append(errs, fmt.Errorf("unknown STORE_DRIVER %q", c.StoreDriver))
	}

	if c.RequestTimeout <= 0 {
		errs = append(errs, errors.New("REQUEST_TIMEOUT must be positive"))
	}
	if c.ShutdownTimeout <= 0 {
		errs = append(errs, errors.New("SHUTDOWN_TIMEOUT must be positive"))
	}
	return errors.Join(errs...)
}
