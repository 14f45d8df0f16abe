package config

import (
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"

	"promptcraft/pkg/database"
	"promptcraft/pkg/llm"
)

const (
	BaseConfigFile       = "config.toml"
	OverlayConfigPattern = "config.%s.toml"

	EnvPromptCraftEnv             = "PROMPTCRAFT_ENV"
	EnvPromptCraftShutdownTimeout = "PROMPTCRAFT_SHUTDOWN_TIMEOUT"
	EnvPromptCraftVersion         = "PROMPTCRAFT_VERSION"
)

var databaseEnv = &database.Env{
	Host:            "PROMPTCRAFT_DB_HOST",
	Port:            "PROMPTCRAFT_DB_PORT",
	Name:            "PROMPTCRAFT_DB_NAME",
	User:            "PROMPTCRAFT_DB_USER",
	Password:        "PROMPTCRAFT_DB_PASSWORD",
	SSLMode:         "PROMPTCRAFT_DB_SSL_MODE",
	MaxOpenConns:    "PROMPTCRAFT_DB_MAX_OPEN_CONNS",
	MaxIdleConns:    "PROMPTCRAFT_DB_MAX_IDLE_CONNS",
	ConnMaxLifetime: "PROMPTCRAFT_DB_CONN_MAX_LIFETIME",
	ConnTimeout:     "PROMPTCRAFT_DB_CONN_TIMEOUT",
}

var llmEnv = &llm.Env{
	APIKey:      "PROMPTCRAFT_LLM_API_KEY",
	BaseURL:     "PROMPTCRAFT_LLM_BASE_URL",
	Model:       "PROMPTCRAFT_LLM_MODEL",
	Temperature: "PROMPTCRAFT_LLM_TEMPERATURE",
	MaxTokens:   "PROMPTCRAFT_LLM_MAX_TOKENS",
	MaxAttempts: "PROMPTCRAFT_LLM_MAX_ATTEMPTS",
}

// Config is the root configuration for the PromptCraft service.
type Config struct {
	Server          ServerConfig    `toml:"server"`
	Database        database.Config `toml:"database"`
	LLM             llm.Config      `toml:"llm"`
	Auth            AuthConfig      `toml:"auth"`
	API             APIConfig       `toml:"api"`
	ShutdownTimeout string          `toml:"shutdown_timeout"`
	Version         string          `toml:"version"`
}

// Env returns the PROMPTCRAFT_ENV value, defaulting to "local".
func (c *Config) Env() string {
	if env := os.Getenv(EnvPromptCraftEnv); env != "" {
		return env
	}
	return "local"
}

// ShutdownTimeoutDuration returns ShutdownTimeout as a time.Duration.
func (c *Config) ShutdownTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.ShutdownTimeout)
	return d
}

// Load reads the base config (if present), applies any environment overlay,
// and finalizes all values. If no config.toml exists, defaults and environment
// variables provide all configuration.
func Load() (*Config, error) {
	cfg := &Config{}

	if _, err := os.Stat(BaseConfigFile); err == nil {
		loaded, err := load(BaseConfigFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if path := overlayPath(); path != "" {
		overlay, err := load(path)
		if err != nil {
			return nil, fmt.Errorf("load overlay %s: %w", path, err)
		}
		cfg.Merge(overlay)
	}

	if err := cfg.finalize(); err != nil {
		return nil, fmt.Errorf("finalize config: %w", err)
	}

	return cfg, nil
}

// Merge overwrites non-zero fields from overlay across all sub-configs.
func (c *Config) Merge(overlay *Config) {
	mergeString(&c.ShutdownTimeout, overlay.ShutdownTimeout)
	mergeString(&c.Version, overlay.Version)

	c.Server.Merge(&overlay.Server)
	c.Database.Merge(&overlay.Database)
	c.LLM.Merge(&overlay.LLM)
	c.Auth.Merge(&overlay.Auth)
	c.API.Merge(&overlay.API)
}

func (c *Config) finalize() error {
	c.loadDefaults()
	c.loadEnv()

	if err := c.validate(); err != nil {
		return err
	}

	steps := []struct {
		name     string
		finalize func() error
	}{
		{"server", c.Server.Finalize},
		{"database", func() error { return c.Database.Finalize(databaseEnv) }},
		{"llm", func() error { return c.LLM.Finalize(llmEnv) }},
		{"auth", c.Auth.Finalize},
		{"api", c.API.Finalize},
	}
	for _, step := range steps {
		if err := step.finalize(); err != nil {
			return fmt.Errorf("%s: %w", step.name, err)
		}
	}
	return nil
}

func (c *Config) loadDefaults() {
	defaultString(&c.ShutdownTimeout, "30s")
	defaultString(&c.Version, "0.1.0")
}

func (c *Config) loadEnv() {
	envString(EnvPromptCraftShutdownTimeout, &c.ShutdownTimeout)
	envString(EnvPromptCraftVersion, &c.Version)
}

func (c *Config) validate() error {
	return checkDuration("shutdown_timeout", c.ShutdownTimeout)
}

func load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	return &cfg, nil
}

func overlayPath() string {
	if env := os.Getenv(EnvPromptCraftEnv); env != "" {
		path := fmt.Sprintf(OverlayConfigPattern, env)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}
