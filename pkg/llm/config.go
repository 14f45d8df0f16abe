package llm

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds LLM API connection and generation parameters.
// An absent APIKey is valid configuration: the client reports
// unconfigured and completion calls fail with ErrNotConfigured
// instead of the service refusing to start.
type Config struct {
	APIKey      string  `toml:"api_key"`
	BaseURL     string  `toml:"base_url"`
	Model       string  `toml:"model"`
	Temperature float64 `toml:"temperature"`
	MaxTokens   int64   `toml:"max_tokens"`
	MaxAttempts uint    `toml:"max_attempts"`
}

// Env maps config fields to environment variable names for override injection.
type Env struct {
	APIKey      string
	BaseURL     string
	Model       string
	Temperature string
	MaxTokens   string
	MaxAttempts string
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *Config) Finalize(env *Env) error {
	c.loadDefaults()
	if env != nil {
		c.loadEnv(env)
	}
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *Config) Merge(overlay *Config) {
	if overlay.APIKey != "" {
		c.APIKey = overlay.APIKey
	}
	if overlay.BaseURL != "" {
		c.BaseURL = overlay.BaseURL
	}
	if overlay.Model != "" {
		c.Model = overlay.Model
	}
	if overlay.Temperature != 0 {
		c.Temperature = overlay.Temperature
	}
	if overlay.MaxTokens != 0 {
		c.MaxTokens = overlay.MaxTokens
	}
	if overlay.MaxAttempts != 0 {
		c.MaxAttempts = overlay.MaxAttempts
	}
}

func (c *Config) loadDefaults() {
	if c.Model == "" {
		c.Model = "gpt-4o-mini"
	}
	if c.Temperature == 0 {
		c.Temperature = 0.7
	}
	if c.MaxTokens == 0 {
		c.MaxTokens = 2000
	}
	if c.MaxAttempts == 0 {
		c.MaxAttempts = 3
	}
}

func (c *Config) loadEnv(env *Env) {
	if env.APIKey != "" {
		if v := os.Getenv(env.APIKey); v != "" {
			c.APIKey = v
		}
	}
	if env.BaseURL != "" {
		if v := os.Getenv(env.BaseURL); v != "" {
			c.BaseURL = v
		}
	}
	if env.Model != "" {
		if v := os.Getenv(env.Model); v != "" {
			c.Model = v
		}
	}
	if env.Temperature != "" {
		if v := os.Getenv(env.Temperature); v != "" {
			if t, err := strconv.ParseFloat(v, 64); err == nil {
				c.Temperature = t
			}
		}
	}
	if env.MaxTokens != "" {
		if v := os.Getenv(env.MaxTokens); v != "" {
			if n, err := strconv.ParseInt(v, 10, 64); err == nil {
				c.MaxTokens = n
			}
		}
	}
	if env.MaxAttempts != "" {
		if v := os.Getenv(env.MaxAttempts); v != "" {
			if n, err := strconv.ParseUint(v, 10, 32); err == nil {
				c.MaxAttempts = uint(n)
			}
		}
	}
}

func (c *Config) validate() error {
	if c.Temperature < 0 || c.Temperature > 2 {
		return fmt.Errorf("temperature must be between 0 and 2")
	}
	if c.MaxTokens < 1 {
		return fmt.Errorf("max_tokens must be positive")
	}
	if c.MaxAttempts < 1 {
		return fmt.Errorf("max_attempts must be positive")
	}
	return nil
}
