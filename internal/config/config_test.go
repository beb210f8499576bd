package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfig_FromFile(t *testing.T) {
	path := writeConfigFile(t, `
server:
  port: "9090"
  mode: "production"
database:
  host: "db.internal"
  dbname: "hub_test"
jwt:
  secret: "file-secret"
  access_token_expiration: "2h"
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "production", cfg.Server.Mode)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, "hub_test", cfg.Database.DBName)
	assert.Equal(t, "file-secret", cfg.JWT.Secret)
	assert.Equal(t, "2h", cfg.JWT.AccessTokenExpiration)

	// Untouched values keep their defaults
	assert.Equal(t, "5432", cfg.Database.Port)
	assert.Equal(t, "content-hub", cfg.JWT.Issuer)
}

func TestLoadConfig_EnvOverridesFile(t *testing.T) {
	path := writeConfigFile(t, `
jwt:
  secret: "file-secret"
`)

	t.Setenv("SERVER_PORT", "7070")
	t.Setenv("JWT_SECRET", "env-secret")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "7070", cfg.Server.Port)
	assert.Equal(t, "env-secret", cfg.JWT.Secret)
}

func TestLoadConfig_MissingSecret(t *testing.T) {
	path := writeConfigFile(t, `
server:
  port: "8080"
`)

	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT secret")
}

func TestLoadConfig_BadExpiration(t *testing.T) {
	path := writeConfigFile(t, `
jwt:
  secret: "s"
  access_token_expiration: "soon"
`)

	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expiration")
}

func TestGetPostgresConnectionString(t *testing.T) {
	cfg := &Config{}
	setDefaults(cfg)
	cfg.Database.User = "hub"
	cfg.Database.Password = "pw"
	cfg.Database.Host = "localhost"
	cfg.Database.Port = "5433"
	cfg.Database.DBName = "content_hub"

	assert.Equal(t,
		"postgres://hub:pw@localhost:5433/content_hub?sslmode=disable",
		cfg.GetPostgresConnectionString())
}
