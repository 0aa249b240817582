package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noEnvFiles() Options { return Options{EnvFiles: []string{}} }

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(noEnvFiles())
	require.NoError(t, err)

	assert.Equal(t, Default(), cfg)
	assert.Equal(t, ":8080", cfg.Addr())
	assert.False(t, cfg.IsProduction())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("AGROFLEET_APP_PORT", "9090")
	t.Setenv("AGROFLEET_DATABASE_URL", "postgres://fleet@localhost/fleet")
	t.Setenv("AGROFLEET_TUI_BLUR_DELAY", "300ms")
	t.Setenv("AGROFLEET_SUGGEST_LIMIT", "5")

	cfg, err := Load(noEnvFiles())
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.App.Port)
	assert.Equal(t, "postgres://fleet@localhost/fleet", cfg.Database.URL)
	assert.Equal(t, 300*time.Millisecond, cfg.TUI.BlurDelay)
	assert.Equal(t, 5, cfg.Suggest.Limit)
}

func TestLoad_YAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "agrofleet.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
app:
  env: production
  port: 8181
log:
  level: warn
  development: false
server:
  read_timeout: 5s
`), 0o600))

	cfg, err := Load(Options{File: path, EnvFiles: []string{}})
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, 8181, cfg.App.Port)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, 5*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 15*time.Second, cfg.Server.WriteTimeout, "unset keys keep defaults")
}

func TestLoad_EnvBeatsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "agrofleet.yaml")
	require.NoError(t, os.WriteFile(path, []byte("app:\n  port: 8181\n"), 0o600))
	t.Setenv("AGROFLEET_APP_PORT", "7070")

	cfg, err := Load(Options{File: path, EnvFiles: []string{}})
	require.NoError(t, err)
	assert.Equal(t, 7070, cfg.App.Port)
}

func TestLoad_DotEnv(t *testing.T) {
	const key = "AGROFLEET_LOG_LEVEL"
	t.Cleanup(func() { os.Unsetenv(key) })

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte(key+"=debug\n"), 0o600))

	cfg, err := Load(Options{EnvFiles: []string{path, filepath.Join(t.TempDir(), "missing.env")}})
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_MissingConfigFile(t *testing.T) {
	_, err := Load(Options{File: filepath.Join(t.TempDir(), "nope.yaml"), EnvFiles: []string{}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read config")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(*Config) {}, ""},
		{"bad env", func(c *Config) { c.App.Env = "staging" }, "app.env"},
		{"bad port", func(c *Config) { c.App.Port = 0 }, "app.port"},
		{"bad level", func(c *Config) { c.Log.Level = "loud" }, "log.level"},
		{"no conns", func(c *Config) { c.Database.MaxConns = 0 }, "database.max_conns"},
		{"zero timeout", func(c *Config) { c.Server.WriteTimeout = 0 }, "server timeouts"},
		{"zero limit", func(c *Config) { c.Suggest.Limit = 0 }, "suggest.limit"},
		{"negative blur", func(c *Config) { c.TUI.BlurDelay = -time.Second }, "tui.blur_delay"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidate_ReportsEveryProblem(t *testing.T) {
	cfg := Default()
	cfg.App.Port = -1
	cfg.Suggest.Limit = 0

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "app.port")
	assert.Contains(t, err.Error(), "suggest.limit")
}
