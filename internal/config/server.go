package config

import (
	"fmt"
	"time"
)

const (
	EnvServerHost            = "PROMPTCRAFT_SERVER_HOST"
	EnvServerPort            = "PROMPTCRAFT_SERVER_PORT"
	EnvServerReadTimeout     = "PROMPTCRAFT_SERVER_READ_TIMEOUT"
	EnvServerWriteTimeout    = "PROMPTCRAFT_SERVER_WRITE_TIMEOUT"
	EnvServerShutdownTimeout = "PROMPTCRAFT_SERVER_SHUTDOWN_TIMEOUT"
)

// ServerConfig holds HTTP listener parameters. Timeouts are duration
// strings ("1m", "30s") validated during Finalize.
type ServerConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	ReadTimeout     string `toml:"read_timeout"`
	WriteTimeout    string `toml:"write_timeout"`
	ShutdownTimeout string `toml:"shutdown_timeout"`
}

// Addr returns the host:port listen address.
func (c *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func (c *ServerConfig) ReadTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.ReadTimeout)
	return d
}

func (c *ServerConfig) WriteTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.WriteTimeout)
	return d
}

func (c *ServerConfig) ShutdownTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.ShutdownTimeout)
	return d
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *ServerConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *ServerConfig) Merge(overlay *ServerConfig) {
	mergeString(&c.Host, overlay.Host)
	mergeInt(&c.Port, overlay.Port)
	mergeString(&c.ReadTimeout, overlay.ReadTimeout)
	mergeString(&c.WriteTimeout, overlay.WriteTimeout)
	mergeString(&c.ShutdownTimeout, overlay.ShutdownTimeout)
}

func (c *ServerConfig) loadDefaults() {
	defaultString(&c.Host, "0.0.0.0")
	defaultInt(&c.Port, 8080)
	defaultString(&c.ReadTimeout, "1m")
	defaultString(&c.WriteTimeout, "2m")
	defaultString(&c.ShutdownTimeout, "30s")
}

func (c *ServerConfig) loadEnv() {
	envString(EnvServerHost, &c.Host)
	envInt(EnvServerPort, &c.Port)
	envString(EnvServerReadTimeout, &c.ReadTimeout)
	envString(EnvServerWriteTimeout, &c.WriteTimeout)
	envString(EnvServerShutdownTimeout, &c.ShutdownTimeout)
}

func (c *ServerConfig) validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Port)
	}
	if err := checkDuration("read_timeout", c.ReadTimeout); err != nil {
		return err
	}
	if err := checkDuration("write_timeout", c.WriteTimeout); err != nil {
		return err
	}
	return checkDuration("shutdown_timeout", c.ShutdownTimeout)
}
