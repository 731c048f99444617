package infra

import (
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("NVIDIA_API_KEY", "")
	t.Setenv("CORS_ALLOWED_ORIGIN", "")
	t.Setenv("PROVIDER_TIMEOUT_SECONDS", "")
	t.Setenv("HTTP_WRITE_TIMEOUT_SECONDS", "")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.Port != "8000" {
		t.Fatalf("Port mismatch: got %q want %q", cfg.Port, "8000")
	}
	if cfg.CORSAllowedOrigin != "http://localhost:3000" {
		t.Fatalf("CORSAllowedOrigin mismatch: got %q", cfg.CORSAllowedOrigin)
	}
	if cfg.ProviderTimeout != 120*time.Second {
		t.Fatalf("ProviderTimeout mismatch: got %s", cfg.ProviderTimeout)
	}
	if cfg.HTTPWriteTimeout < 2*cfg.ProviderTimeout {
		t.Fatalf("write timeout %s cannot cover two provider attempts", cfg.HTTPWriteTimeout)
	}
	if cfg.NvidiaAPIKey != "" {
		t.Fatalf("expected no provider key")
	}
	if cfg.TempDir == "" {
		t.Fatalf("TempDir should default to the OS temp dir")
	}
}

func TestLoadConfigHonorsOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("NVIDIA_API_KEY", "  nvapi-test  ")
	t.Setenv("CORS_ALLOWED_ORIGIN", "https://studio.example.com/")
	t.Setenv("PROVIDER_TIMEOUT_SECONDS", "45")
	t.Setenv("TEMP_DIR", "/var/tmp/renders")
	t.Setenv("RENDER_PROVIDERS_FILE", "providers.yaml")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.Port != "9090" {
		t.Fatalf("Port mismatch: got %q", cfg.Port)
	}
	if cfg.NvidiaAPIKey != "nvapi-test" {
		t.Fatalf("NvidiaAPIKey mismatch: got %q", cfg.NvidiaAPIKey)
	}
	if cfg.CORSAllowedOrigin != "https://studio.example.com" {
		t.Fatalf("CORSAllowedOrigin mismatch: got %q", cfg.CORSAllowedOrigin)
	}
	if cfg.ProviderTimeout != 45*time.Second {
		t.Fatalf("ProviderTimeout mismatch: got %s", cfg.ProviderTimeout)
	}
	if cfg.TempDir != "/var/tmp/renders" {
		t.Fatalf("TempDir mismatch: got %q", cfg.TempDir)
	}
	if cfg.ProvidersFile != "providers.yaml" {
		t.Fatalf("ProvidersFile mismatch: got %q", cfg.ProvidersFile)
	}
}

func TestLoadConfigIgnoresInvalidTimeout(t *testing.T) {
	t.Setenv("PROVIDER_TIMEOUT_SECONDS", "soon")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.ProviderTimeout != 120*time.Second {
		t.Fatalf("ProviderTimeout mismatch: got %s", cfg.ProviderTimeout)
	}
}

func TestLoadConfigRejectsRelativeOrigin(t *testing.T) {
	t.Setenv("CORS_ALLOWED_ORIGIN", "localhost:3000")

	if _, err := LoadConfig(); err == nil {
		t.Fatalf("expected error for origin without scheme")
	}
}

func TestNewHTTPServerStretchesWriteTimeout(t *testing.T) {
	cfg := &Config{Port: "8000", ProviderTimeout: 120 * time.Second, HTTPWriteTimeout: 30 * time.Second}

	srv := NewHTTPServer(cfg, nil)
	if srv.Addr() != ":8000" {
		t.Fatalf("Addr mismatch: got %q", srv.Addr())
	}
	if srv.server.WriteTimeout < 240*time.Second {
		t.Fatalf("WriteTimeout %s shorter than two provider attempts", srv.server.WriteTimeout)
	}
}
