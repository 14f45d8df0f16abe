package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"promptcraft/internal/config"
)

const baseConfig = `
shutdown_timeout = "30s"
version = "0.1.0"

[server]
host = "0.0.0.0"
port = 8080
read_timeout = "1m"
write_timeout = "2m"
shutdown_timeout = "30s"

[database]
host = "localhost"
port = 5432
name = "promptcraft"
user = "promptcraft"
password = "promptcraft"
ssl_mode = "disable"

[llm]
model = "gpt-4o-mini"

[auth]
base_url = "http://localhost:9999"
sign_out_timeout = "8s"

[api]
base_path = "/api"

[api.pagination]
default_page_size = 25
max_page_size = 50
`

const overlayConfig = `
[server]
port = 9090

[database]
host = "prodhost"
`

// minimalConfig carries only the fields validation requires (db name and
// user). Everything else fills in from defaults.
const minimalConfig = `
[database]
name = "promptcraft"
user = "promptcraft"
`

func writeConfig(t *testing.T, dir, filename, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, filename), []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", filename, err)
	}
}

func chdir(t *testing.T, dir string) {
	t.Helper()
	orig, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { os.Chdir(orig) })
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "config.toml", baseConfig)
	chdir(t, dir)

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("server port: got %d, want 8080", cfg.Server.Port)
	}
	if cfg.Database.Host != "localhost" {
		t.Errorf("db host: got %s, want localhost", cfg.Database.Host)
	}
	if cfg.LLM.Model != "gpt-4o-mini" {
		t.Errorf("llm model: got %s, want gpt-4o-mini", cfg.LLM.Model)
	}
	if !cfg.Auth.Enabled() {
		t.Error("auth should be enabled with a base_url")
	}
	if cfg.API.BasePath != "/api" {
		t.Errorf("api base_path: got %s, want /api", cfg.API.BasePath)
	}
	if cfg.API.Pagination.DefaultPageSize != 25 {
		t.Errorf("pagination default_page_size: got %d, want 25", cfg.API.Pagination.DefaultPageSize)
	}
	if cfg.API.Pagination.MaxPageSize != 50 {
		t.Errorf("pagination max_page_size: got %d, want 50", cfg.API.Pagination.MaxPageSize)
	}
}

func TestLoadWithOverlay(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "config.toml", baseConfig)
	writeConfig(t, dir, "config.staging.toml", overlayConfig)
	chdir(t, dir)

	t.Setenv("PROMPTCRAFT_ENV", "staging")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("server port: got %d, want 9090 (from overlay)", cfg.Server.Port)
	}
	if cfg.Database.Host != "prodhost" {
		t.Errorf("db host: got %s, want prodhost (from overlay)", cfg.Database.Host)
	}
	if cfg.Database.Port != 5432 {
		t.Errorf("db port: got %d, want 5432 (from base)", cfg.Database.Port)
	}
}

func TestLoadEnvVarOverrides(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "config.toml", baseConfig)
	chdir(t, dir)

	t.Setenv("PROMPTCRAFT_VERSION", "2.0.0")
	t.Setenv("PROMPTCRAFT_SERVER_PORT", "3000")
	t.Setenv("PROMPTCRAFT_LLM_MODEL", "gpt-4o")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Version != "2.0.0" {
		t.Errorf("version: got %s, want 2.0.0", cfg.Version)
	}
	if cfg.Server.Port != 3000 {
		t.Errorf("server port: got %d, want 3000", cfg.Server.Port)
	}
	if cfg.LLM.Model != "gpt-4o" {
		t.Errorf("llm model: got %s, want gpt-4o", cfg.LLM.Model)
	}
}

func TestLoadNoConfigFile(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	t.Setenv("PROMPTCRAFT_DB_NAME", "testdb")
	t.Setenv("PROMPTCRAFT_DB_USER", "testuser")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load without config.toml failed: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("server port default: got %d, want 8080", cfg.Server.Port)
	}
	if cfg.Database.Name != "testdb" {
		t.Errorf("db name from env: got %s, want testdb", cfg.Database.Name)
	}
	if cfg.Auth.Enabled() {
		t.Error("auth should be disabled without a base_url")
	}
	if cfg.Auth.SignOutTimeout != "8s" {
		t.Errorf("sign_out_timeout default: got %s, want 8s", cfg.Auth.SignOutTimeout)
	}
}

func TestLoadMinimalConfig(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "config.toml", minimalConfig)
	chdir(t, dir)

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.ShutdownTimeout != "30s" {
		t.Errorf("shutdown_timeout default: got %s, want 30s", cfg.ShutdownTimeout)
	}
	if cfg.API.BasePath != "/api" {
		t.Errorf("api base_path default: got %s, want /api", cfg.API.BasePath)
	}
	if cfg.LLM.MaxAttempts != 3 {
		t.Errorf("llm max_attempts default: got %d, want 3", cfg.LLM.MaxAttempts)
	}
}

func TestLoadInvalidConfig(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "config.toml", "shutdown_timeout = [broken")
	chdir(t, dir)

	if _, err := config.Load(); err == nil {
		t.Fatal("expected error for invalid TOML")
	}
}

func TestLoadMissingDatabaseName(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "config.toml", `
[database]
user = "promptcraft"
`)
	chdir(t, dir)

	if _, err := config.Load(); err == nil {
		t.Fatal("expected error for missing database name")
	}
}

func TestLoadOAuthRequiresClientID(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "config.toml", baseConfig)
	chdir(t, dir)

	t.Setenv("PROMPTCRAFT_AUTH_ISSUER", "https://issuer.example.com")

	if _, err := config.Load(); err == nil {
		t.Fatal("expected error for issuer without client_id")
	}
}

func TestEnvDefault(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "config.toml", baseConfig)
	chdir(t, dir)

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Env() != "local" {
		t.Errorf("env: got %s, want local", cfg.Env())
	}
}

func TestShutdownTimeoutDuration(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "config.toml", baseConfig)
	chdir(t, dir)

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if got := cfg.ShutdownTimeoutDuration(); got != 30*time.Second {
		t.Errorf("shutdown timeout: got %s, want 30s", got)
	}
}
