package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, DriverMongo, cfg.StoreDriver)
	assert.Equal(t, "Products", cfg.MongoProductsCollection)
	assert.Equal(t, "Carts", cfg.MongoCartsCollection)
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, []string{"*"}, cfg.CORSAllowOrigins)
	assert.Empty(t, cfg.RabbitMQURL)
	assert.Empty(t, cfg.OTelEndpoint)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("STORE_DRIVER", "postgres")
	t.Setenv("DATABASE_DSN", "postgres://u:p@localhost:5432/shop?sslmode=disable")
	t.Setenv("RUN_MIGRATIONS", "false")
	t.Setenv("REQUEST_TIMEOUT", "750ms")
	t.Setenv("CORS_ALLOW_ORIGINS", "https://a.example,https://b.example")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, DriverPostgres, cfg.StoreDriver)
	assert.False(t, cfg.RunMigrations)
	assert.Equal(t, 750*time.Millisecond, cfg.RequestTimeout)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowOrigins)
}

func TestLoadInvalid(t *testing.T) {
	tests := map[string]map[string]string{
		"unknown driver":        {"STORE_DRIVER": "redis"},
		"postgres without dsn":  {"STORE_DRIVER": "postgres"},
		"bad duration":          {"REQUEST_TIMEOUT": "soon"},
		"non-positive timeout":  {"SHUTDOWN_TIMEOUT": "0s"},
		"bad migrations toggle": {"RUN_MIGRATIONS": "maybe"},
	}

	for name, vars := range tests {
		t.Run(name, func(t *testing.T) {
			for k, v := range vars {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestValidateMongo(t *testing.T) {
	cfg := Config{StoreDriver: DriverMongo, RequestTimeout: time.Second, ShutdownTimeout: time.Second}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MONGO_URI")
	assert.Contains(t, err.Error(), "MONGO_DATABASE")
}

func TestMemoryDriverNeedsNothing(t *testing.T) {
	cfg := Config{StoreDriver: DriverMemory, RequestTimeout: time.Second, ShutdownTimeout: time.Second}
	assert.NoError(t, cfg.Validate())
}
