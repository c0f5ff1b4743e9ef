package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mowistore/backend/internal/config"
	"github.com/stretchr/testify/assert"
)

const testConfigYAML = `
env: "local"
http_server:
  address: "0.0.0.0:9000"
  timeout: 5s
  idle_timeout: 30s
database:
  host: "db.internal"
  port: 5433
  user: "mowi"
  name: "mowistore"
jwt:
  token_ttl: 120
migrations:
  path: "./migrations"
`

func writeTestConfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	assert.NoError(t, os.WriteFile(path, []byte(testConfigYAML), 0o600))
	return path
}

func TestMustLoadByPath_Success(t *testing.T) {
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("JWT_SECRET", "test-secret")

	cfg := config.MustLoadByPath(writeTestConfig(t))

	assert.Equal(t, "local", cfg.Env)
	assert.Equal(t, "0.0.0.0:9000", cfg.HTTPServer.Address)
	assert.Equal(t, 5*time.Second, cfg.HTTPServer.Timeout)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, 5433, cfg.Database.Port)
	assert.Equal(t, "secret", cfg.Database.Password)
	assert.Equal(t, "test-secret", cfg.JWT.Secret)
	assert.Equal(t, 120, cfg.JWT.TokenTTL)
	assert.Equal(t, "./migrations", cfg.Migrations.Path)
}

func TestMustLoadByPath_MissingFile(t *testing.T) {
	assert.Panics(t, func() {
		config.MustLoadByPath(filepath.Join(t.TempDir(), "missing.yaml"))
	})
}
