package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", "development")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, DriverPgx, cfg.DB.Driver)
	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.NotEmpty(t, cfg.JWT.Secret)
	assert.False(t, cfg.Kafka.Enabled())
	assert.Equal(t, 30*time.Second, cfg.DB.ConnectTimeout)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "s3cr3t")
	t.Setenv("STORE_DRIVER", "SQLite")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092,")
	t.Setenv("SESSION_COOKIE_SECURE", "true")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, DriverSQLite, cfg.DB.Driver)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	assert.True(t, cfg.JWT.CookieSecure)
}

func TestLoad_MissingSecretOutsideDevelopment(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestValidate_UnknownDriver(t *testing.T) {
	cfg := &Config{
		DB:  DBConfig{Driver: "mongo"},
		JWT: JWTConfig{Secret: "x", Expiration: 10},
	}
	assert.ErrorContains(t, cfg.Validate(), "STORE_DRIVER")
}

func TestDBConfig_DSNEscapesPassword(t *testing.T) {
	c := DBConfig{Host: "db", Port: 5432, User: "u", Password: "p@ss/w", DBName: "vg", SSLMode: "disable"}
	assert.Equal(t, "postgres://u:p%40ss%2Fw@db:5432/vg?sslmode=disable", c.DSN())

	c.DatabaseURL = "postgres://other"
	assert.Equal(t, "postgres://other", c.ConnectionString())
}
