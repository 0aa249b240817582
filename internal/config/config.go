// Package config loads application settings from defaults, an optional YAML
// file, a .env file and AGROFLEET_* environment variables, in increasing
// order of precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"
)

// EnvPrefix prefixes every environment variable, e.g. AGROFLEET_DATABASE_URL.
const EnvPrefix = "AGROFLEET"

// Config is the complete application configuration.
type Config struct {
	App      AppConfig      `mapstructure:"app"`
	Log      LogConfig      `mapstructure:"log"`
	Database DatabaseConfig `mapstructure:"database"`
	Server   ServerConfig   `mapstructure:"server"`
	Suggest  SuggestConfig  `mapstructure:"suggest"`
	TUI      TUIConfig      `mapstructure:"tui"`
}

// AppConfig holds process-level settings.
type AppConfig struct {
	// Env is "development" or "production"; development enables gin debug mode
	Env  string `mapstructure:"env"`
	Port int    `mapstructure:"port"`
}

// LogConfig configures pkg/logger.
type LogConfig struct {
	Level       string `mapstructure:"level"`
	Development bool   `mapstructure:"development"`
}

// DatabaseConfig configures the PostgreSQL pool. An empty URL selects the
// in-memory store.
type DatabaseConfig struct {
	URL      string `mapstructure:"url"`
	MaxConns int32  `mapstructure:"max_conns"`
}

// ServerConfig holds HTTP server timeouts.
type ServerConfig struct {
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// SuggestConfig configures the suggestion engine.
type SuggestConfig struct {
	Limit int `mapstructure:"limit"`
}

// TUIConfig configures the terminal browser.
type TUIConfig struct {
	// BlurDelay is how long a suggestion list stays open after its field loses focus
	BlurDelay time.Duration `mapstructure:"blur_delay"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		App: AppConfig{
			Env:  "development",
			Port: 8080,
		},
		Log: LogConfig{
			Level:       "info",
			Development: true,
		},
		Database: DatabaseConfig{
			MaxConns: 10,
		},
		Server: ServerConfig{
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    15 * time.Second,
			ShutdownTimeout: 30 * time.Second,
		},
		Suggest: SuggestConfig{
			Limit: 8,
		},
		TUI: TUIConfig{
			BlurDelay: 150 * time.Millisecond,
		},
	}
}

// IsProduction reports whether the app runs with production settings.
func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}

// Addr is the HTTP listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.App.Port)
}

// SetDefaults registers default values with v.
func SetDefaults(v *viper.Viper) {
	d := Default()

	v.SetDefault("app.env", d.App.Env)
	v.SetDefault("app.port", d.App.Port)

	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.development", d.Log.Development)

	v.SetDefault("database.url", d.Database.URL)
	v.SetDefault("database.max_conns", d.Database.MaxConns)

	v.SetDefault("server.read_timeout", d.Server.ReadTimeout)
	v.SetDefault("server.write_timeout", d.Server.WriteTimeout)
	v.SetDefault("server.shutdown_timeout", d.Server.ShutdownTimeout)

	v.SetDefault("suggest.limit", d.Suggest.Limit)

	v.SetDefault("tui.blur_delay", d.TUI.BlurDelay)
}

// Options controls where Load looks for settings.
type Options struct {
	// File is an optional YAML config file.
	File string

	// EnvFiles are dotenv files loaded into the process environment.
	// Missing files are skipped. Nil means ".env".
	EnvFiles []string
}

// Load builds and validates the configuration.
func Load(opts Options) (*Config, error) {
	envFiles := opts.EnvFiles
	if envFiles == nil {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", f, err)
		}
	}

	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if opts.File != "" {
		v.SetConfigFile(opts.File)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", opts.File, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks value ranges. All problems are reported together.
func (c *Config) Validate() error {
	var errs []error

	switch c.App.Env {
	case "development", "production", "test":
	default:
		errs = append(errs, fmt.Errorf("app.env: unknown environment %q", c.App.Env))
	}
	if c.App.Port < 1 || c.App.Port > 65535 {
		errs = append(errs, fmt.Errorf("app.port: %d out of range", c.App.Port))
	}
	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}
	if c.Database.MaxConns < 1 {
		errs = append(errs, fmt.Errorf("database.max_conns must be positive"))
	}
	if c.Server.ReadTimeout <= 0 || c.Server.WriteTimeout <= 0 {
		errs = append(errs, fmt.Errorf("server timeouts must be positive"))
	}
	if c.Suggest.Limit < 1 {
		errs = append(errs, fmt.Errorf("suggest.limit must be positive"))
	}
	if c.TUI.BlurDelay < 0 {
		errs = append(errs, fmt.Errorf("tui.blur_delay must not be negative"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid configuration: %w", errors.Join(errs...))
	}
	return nil
}
