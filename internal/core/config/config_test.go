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

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")
	chdir(t, t.TempDir())

	c, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 3001, c.App.HTTP.Port)
	assert.Equal(t, "postgres", c.DB.Driver)
	assert.Equal(t, 24*60, c.JWT.AccessTokenTTLMin)
	assert.Equal(t, DefaultJWTSecret, c.JWT.Secret)
	assert.True(t, c.InsecureSecret())
	assert.Empty(t, c.Redis.Addr)
	assert.Equal(t, []string{"http://localhost:5173"}, c.App.CORS.AllowOrigins)
}

func TestLoad_ExplicitMissingFileFails(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_FileValues(t *testing.T) {
	p := writeYAML(t, `
app:
  http:
    port: 8080
db:
  driver: sqlite
  dsn: file::memory:
jwt:
  secret: from-file
redis:
  addr: localhost:6379
  customerttlsec: 60
`)
	c, err := Load(p)
	require.NoError(t, err)

	assert.Equal(t, 8080, c.App.HTTP.Port)
	assert.Equal(t, "sqlite", c.DB.Driver)
	assert.Equal(t, "from-file", c.JWT.Secret)
	assert.False(t, c.InsecureSecret())
	assert.Equal(t, "localhost:6379", c.Redis.Addr)
	assert.Equal(t, 60, c.Redis.CustomerTTLSec)
	assert.Equal(t, 10, c.App.HTTP.RequestTimeoutSec, "unset keys keep defaults")
}

func TestLoad_EnvOverrides(t *testing.T) {
	p := writeYAML(t, "jwt:\n  secret: from-file\n")
	t.Setenv("PORT", "9090")
	t.Setenv("JWT_SECRET", "from-env")
	t.Setenv("APP_DB_DRIVER", "mysql")
	t.Setenv("CORS_ORIGINS", "http://a.test, http://b.test,")

	c, err := Load(p)
	require.NoError(t, err)

	assert.Equal(t, 9090, c.App.HTTP.Port)
	assert.Equal(t, "from-env", c.JWT.Secret)
	assert.Equal(t, "mysql", c.DB.Driver)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, c.App.CORS.AllowOrigins)
}

func TestLoad_PrefixedEnvBeatsAlias(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("APP_APP_HTTP_PORT", "7000")
	t.Setenv("PORT", "9090")

	c, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 7000, c.App.HTTP.Port)
}

// chdir mirrors testing.T.Chdir (Go 1.24+) for older toolchains.
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
}
