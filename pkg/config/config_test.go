package config

import (
	"os"
	"testing"
)

func TestLoad_Success(t *testing.T) {
	setMinimalEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}

	if cfg.App.Env != "production" {
		t.Fatalf("expected App.Env to be production, got %q", cfg.App.Env)
	}
	if cfg.DB.Driver != DriverSQLite {
		t.Fatalf("expected sqlite default driver, got %q", cfg.DB.Driver)
	}
	if cfg.Shopify.APIVersion == "" {
		t.Fatal("expected a default shopify api version")
	}
	if cfg.Redis.Enabled() {
		t.Fatal("redis should be disabled without a URL")
	}
}

func TestLoad_MissingRequired(t *testing.T) {
	setMinimalEnv(t)
	if err := os.Unsetenv(EnvShopifyAPISecret); err != nil {
		t.Fatalf("failed to unset %s: %v", EnvShopifyAPISecret, err)
	}

	if _, err := Load(); err == nil {
		t.Fatal("expected missing required env to return an error")
	}
}

func TestLoad_RejectsUnknownDriver(t *testing.T) {
	setMinimalEnv(t)
	t.Setenv(EnvDBDriver, "oracle")

	if _, err := Load(); err == nil {
		t.Fatal("expected unsupported driver to return an error")
	}
}

func setMinimalEnv(t *testing.T) {
	t.Helper()

	t.Setenv(EnvAppEnv, "production")
	t.Setenv(EnvShopifyAPIKey, "api-key")
	t.Setenv(EnvShopifyAPISecret, "api-secret")
	t.Setenv(EnvShopifyAdminToken, "shpat_test")
	os.Unsetenv(EnvRedisURL)
}
