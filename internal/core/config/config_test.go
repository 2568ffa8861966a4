package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeYAML(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(p, []byte(body), 0o600))
	return p
}

func TestLoadE_FileAndDefaults(t *testing.T) {
	p := writeYAML(t, `
jwt:
  secret: s3cret
db:
  driver: postgres
  dsn: host=localhost
orders:
  strict_transitions: true
`)
	c, err := LoadE(p)
	require.NoError(t, err)
	assert.Equal(t, "s3cret", c.JWT.Secret)
	assert.Equal(t, "postgres", c.DB.Driver)
	assert.True(t, c.Orders.StrictTransitions)
	assert.Equal(t, 8080, c.App.HTTP.Port)
	assert.Equal(t, 720, c.JWT.AccessTokenTTLMin)
	assert.Equal(t, "local", c.Storage.Driver)
	assert.Equal(t, 30, c.Cache.DashboardTTLSec)
}

func TestLoadE_EnvOverride(t *testing.T) {
	p := writeYAML(t, "jwt:\n  secret: from-file\n")
	t.Setenv("APP_JWT_SECRET", "from-env")
	t.Setenv("APP_APP_ADMIN_PORT", "9999")

	c, err := LoadE(p)
	require.NoError(t, err)
	assert.Equal(t, "from-env", c.JWT.Secret)
	assert.Equal(t, 9999, c.App.Admin.Port)
}

func TestLoadE_MissingFileUsesEnv(t *testing.T) {
	t.Setenv("APP_JWT_SECRET", "env-only")
	c, err := LoadE(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "env-only", c.JWT.Secret)
	assert.Equal(t, "sqlite", c.DB.Driver)
}

func TestLoadE_RequiresSecret(t *testing.T) {
	p := writeYAML(t, "app:\n  name: x\n")
	_, err := LoadE(p)
	assert.Error(t, err)
}
