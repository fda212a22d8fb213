package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	unsetEnv(t, "API_BASE_URL")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.APIBaseURL != DevelopmentAPIURL {
		t.Errorf("APIBaseURL = %q, want %q", cfg.APIBaseURL, DevelopmentAPIURL)
	}
	if cfg.HTTPTimeout != 10*time.Second {
		t.Errorf("HTTPTimeout = %s", cfg.HTTPTimeout)
	}
	if cfg.SearchRateLimit != 30 {
		t.Errorf("SearchRateLimit = %d", cfg.SearchRateLimit)
	}
	if !cfg.IsDevelopment() {
		t.Error("expected development")
	}
}

func TestLoad_ProductionURL(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	unsetEnv(t, "API_BASE_URL")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.APIBaseURL != ProductionAPIURL {
		t.Errorf("APIBaseURL = %q, want %q", cfg.APIBaseURL, ProductionAPIURL)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("API_BASE_URL", "http://api.test")
	t.Setenv("HTTP_TIMEOUT", "3s")
	t.Setenv("SESSION_TTL", "5m")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.APIBaseURL != "http://api.test" {
		t.Errorf("APIBaseURL = %q", cfg.APIBaseURL)
	}
	if cfg.HTTPTimeout != 3*time.Second {
		t.Errorf("HTTPTimeout = %s", cfg.HTTPTimeout)
	}
	if cfg.SessionTTL != 5*time.Minute {
		t.Errorf("SessionTTL = %s", cfg.SessionTTL)
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := map[string]string{
		"HTTP_TIMEOUT":      "soon",
		"SEARCH_RATE_LIMIT": "many",
		"API_BASE_URL":      "",
	}
	for key, value := range tests {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, value)
			if _, err := Load(); err == nil {
				t.Errorf("expected error for %s=%q", key, value)
			}
		})
	}
}

func TestLoadFile(t *testing.T) {
	t.Setenv("API_BASE_URL", "http://from-env")
	path := filepath.Join(t.TempDir(), "peoplefinder.toml")
	data := `
api_base_url = "http://from-file"
http_timeout = "2s"
search_rate_limit = 5
`
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.APIBaseURL != "http://from-file" {
		t.Errorf("APIBaseURL = %q", cfg.APIBaseURL)
	}
	if cfg.HTTPTimeout != 2*time.Second {
		t.Errorf("HTTPTimeout = %s", cfg.HTTPTimeout)
	}
	if cfg.SearchRateLimit != 5 {
		t.Errorf("SearchRateLimit = %d", cfg.SearchRateLimit)
	}
}

func TestLoadFile_Missing(t *testing.T) {
	t.Setenv("API_BASE_URL", "http://from-env")
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.APIBaseURL != "http://from-env" {
		t.Errorf("APIBaseURL = %q", cfg.APIBaseURL)
	}
}

func TestLoadFile_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(path, []byte("api_base_url = "), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFile(path); err == nil {
		t.Error("expected error for malformed file")
	}
}

// unsetEnv removes key for the duration of the test.
func unsetEnv(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	os.Unsetenv(key)
}
