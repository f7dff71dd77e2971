package config

import (
	"os"
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	os.Unsetenv("API_BASE_URL")
	os.Unsetenv("API_TIMEOUT")
	os.Unsetenv("TOKEN_KEY")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.API.BaseURL != "http://localhost:8080/api" {
		t.Fatalf("unexpected base URL: %s", cfg.API.BaseURL)
	}
	if cfg.API.Timeout != 10*time.Second {
		t.Fatalf("unexpected timeout: %v", cfg.API.Timeout)
	}
	if cfg.Tokens.AccessKey != "gharsaathi_token" || cfg.Tokens.RefreshKey != "gharsaathi_refresh_token" {
		t.Fatalf("unexpected token keys: %+v", cfg.Tokens)
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	os.Setenv("API_BASE_URL", "http://api.example.test/api")
	os.Setenv("API_TIMEOUT", "3")
	os.Setenv("TOKEN_KEY", "custom_token")
	defer func() {
		os.Unsetenv("API_BASE_URL")
		os.Unsetenv("API_TIMEOUT")
		os.Unsetenv("TOKEN_KEY")
	}()

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.API.BaseURL != "http://api.example.test/api" {
		t.Fatalf("override not applied: %s", cfg.API.BaseURL)
	}
	if cfg.API.Timeout != 3*time.Second {
		t.Fatalf("timeout override not applied: %v", cfg.API.Timeout)
	}
	if cfg.Tokens.AccessKey != "custom_token" {
		t.Fatalf("token key override not applied: %s", cfg.Tokens.AccessKey)
	}
}
