package config

import (
	"fmt"

	"promptcraft/pkg/middleware"
	"promptcraft/pkg/openapi"
	"promptcraft/pkg/pagination"
)

var corsEnv = &middleware.CORSEnv{
	Enabled:          "PROMPTCRAFT_CORS_ENABLED",
	Origins:          "PROMPTCRAFT_CORS_ORIGINS",
	AllowedMethods:   "PROMPTCRAFT_CORS_ALLOWED_METHODS",
	AllowedHeaders:   "PROMPTCRAFT_CORS_ALLOWED_HEADERS",
	AllowCredentials: "PROMPTCRAFT_CORS_ALLOW_CREDENTIALS",
	MaxAge:           "PROMPTCRAFT_CORS_MAX_AGE",
}

var paginationEnv = &pagination.ConfigEnv{
	DefaultPageSize: "PROMPTCRAFT_PAGINATION_DEFAULT_PAGE_SIZE",
	MaxPageSize:     "PROMPTCRAFT_PAGINATION_MAX_PAGE_SIZE",
}

var rateLimitEnv = &middleware.RateLimitEnv{
	Enabled: "PROMPTCRAFT_RATE_LIMIT_ENABLED",
	Limit:   "PROMPTCRAFT_RATE_LIMIT_LIMIT",
	Window:  "PROMPTCRAFT_RATE_LIMIT_WINDOW",
}

var openapiEnv = &openapi.ConfigEnv{
	Title:       "PROMPTCRAFT_OPENAPI_TITLE",
	Description: "PROMPTCRAFT_OPENAPI_DESCRIPTION",
}

// APIConfig holds API routing, CORS, pagination, rate limiting, and
// OpenAPI metadata settings.
type APIConfig struct {
	BasePath   string                     `toml:"base_path"`
	CORS       middleware.CORSConfig      `toml:"cors"`
	Pagination pagination.Config          `toml:"pagination"`
	RateLimit  middleware.RateLimitConfig `toml:"rate_limit"`
	OpenAPI    openapi.Config             `toml:"openapi"`
}

// Finalize applies defaults, environment variable overrides, and validation
// for the API config and its nested configs.
func (c *APIConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()

	if err := c.CORS.Finalize(corsEnv); err != nil {
		return fmt.Errorf("cors: %w", err)
	}
	if err := c.Pagination.Finalize(paginationEnv); err != nil {
		return fmt.Errorf("pagination: %w", err)
	}
	if err := c.RateLimit.Finalize(rateLimitEnv); err != nil {
		return fmt.Errorf("rate_limit: %w", err)
	}
	if err := c.OpenAPI.Finalize(openapiEnv); err != nil {
		return fmt.Errorf("openapi: %w", err)
	}
	return nil
}

// Merge overwrites non-zero fields from overlay across nested configs.
func (c *APIConfig) Merge(overlay *APIConfig) {
	mergeString(&c.BasePath, overlay.BasePath)

	c.CORS.Merge(&overlay.CORS)
	c.Pagination.Merge(&overlay.Pagination)
	c.RateLimit.Merge(&overlay.RateLimit)
	c.OpenAPI.Merge(&overlay.OpenAPI)
}

func (c *APIConfig) loadDefaults() {
	defaultString(&c.BasePath, "/api")
}

func (c *APIConfig) loadEnv() {
	envString("PROMPTCRAFT_API_BASE_PATH", &c.BasePath)
}
