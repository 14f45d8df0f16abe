package config

import (
	"fmt"
	"time"
)

const (
	EnvAuthBaseURL        = "PROMPTCRAFT_AUTH_BASE_URL"
	EnvAuthAPIKey         = "PROMPTCRAFT_AUTH_API_KEY"
	EnvAuthIssuer         = "PROMPTCRAFT_AUTH_ISSUER"
	EnvAuthClientID       = "PROMPTCRAFT_AUTH_CLIENT_ID"
	EnvAuthClientSecret   = "PROMPTCRAFT_AUTH_CLIENT_SECRET"
	EnvAuthRedirectURL    = "PROMPTCRAFT_AUTH_REDIRECT_URL"
	EnvAuthSignOutTimeout = "PROMPTCRAFT_AUTH_SIGN_OUT_TIMEOUT"
)

// AuthConfig holds delegated authentication settings: the hosted auth
// service endpoint plus OIDC provider parameters for federated sign-in.
// An empty BaseURL disables authentication; sessions remain anonymous.
type AuthConfig struct {
	BaseURL        string `toml:"base_url"`
	APIKey         string `toml:"api_key"`
	Issuer         string `toml:"issuer"`
	ClientID       string `toml:"client_id"`
	ClientSecret   string `toml:"client_secret"`
	RedirectURL    string `toml:"redirect_url"`
	SignOutTimeout string `toml:"sign_out_timeout"`
}

// Enabled reports whether an auth service endpoint is configured.
func (c *AuthConfig) Enabled() bool {
	return c.BaseURL != ""
}

// SignOutTimeoutDuration returns SignOutTimeout as a time.Duration.
func (c *AuthConfig) SignOutTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.SignOutTimeout)
	return d
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *AuthConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *AuthConfig) Merge(overlay *AuthConfig) {
	mergeString(&c.BaseURL, overlay.BaseURL)
	mergeString(&c.APIKey, overlay.APIKey)
	mergeString(&c.Issuer, overlay.Issuer)
	mergeString(&c.ClientID, overlay.ClientID)
	mergeString(&c.ClientSecret, overlay.ClientSecret)
	mergeString(&c.RedirectURL, overlay.RedirectURL)
	mergeString(&c.SignOutTimeout, overlay.SignOutTimeout)
}

func (c *AuthConfig) loadDefaults() {
	defaultString(&c.SignOutTimeout, "8s")
}

func (c *AuthConfig) loadEnv() {
	envString(EnvAuthBaseURL, &c.BaseURL)
	envString(EnvAuthAPIKey, &c.APIKey)
	envString(EnvAuthIssuer, &c.Issuer)
	envString(EnvAuthClientID, &c.ClientID)
	envString(EnvAuthClientSecret, &c.ClientSecret)
	envString(EnvAuthRedirectURL, &c.RedirectURL)
	envString(EnvAuthSignOutTimeout, &c.SignOutTimeout)
}

func (c *AuthConfig) validate() error {
	if err := checkDuration("sign_out_timeout", c.SignOutTimeout); err != nil {
		return err
	}
	if c.Issuer != "" && c.ClientID == "" {
		return fmt.Errorf("client_id required when issuer is set")
	}
	return nil
}
