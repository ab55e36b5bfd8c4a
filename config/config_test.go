package config

import (
	"os"
	"testing"
	"time"
)

var configKeys = []string{
	"SERVER_PORT", "SERVER_SHUTDOWN_TIMEOUT_SEC",
	"MODEL_ID", "MODEL_PATH", "MODEL_REMOTE_URL", "MODEL_REMOTE_TIMEOUT_SEC",
	"REDIS_HOST", "REDIS_PORT", "REDIS_PASSWORD", "REDIS_DB", "CACHE_TTL_SEC",
	"CORS_ALLOWED_ORIGINS", "UI_LAYOUT", "LOG_MODE", "METRICS_ENABLED",
}

func clearEnv() {
	for _, key := range configKeys {
		os.Unsetenv(key)
	}
}

func TestGetEnv(t *testing.T) {
	os.Unsetenv("TEST_CONFIG_VAR")
	if got := getEnv("TEST_CONFIG_VAR", "default"); got != "default" {
		t.Errorf("getEnv() = %q, want %q", got, "default")
	}

	os.Setenv("TEST_CONFIG_VAR", "custom")
	defer os.Unsetenv("TEST_CONFIG_VAR")
	if got := getEnv("TEST_CONFIG_VAR", "default"); got != "custom" {
		t.Errorf("getEnv() = %q, want %q", got, "custom")
	}
}

func TestGetIntEnv(t *testing.T) {
	t.Run("fallback when unset", func(t *testing.T) {
		os.Unsetenv("TEST_INT_VAR")
		got, err := getIntEnv("TEST_INT_VAR", 8080)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != 8080 {
			t.Errorf("getIntEnv() = %d, want %d", got, 8080)
		}
	})

	t.Run("parses valid int", func(t *testing.T) {
		os.Setenv("TEST_INT_VAR", "9090")
		defer os.Unsetenv("TEST_INT_VAR")
		got, err := getIntEnv("TEST_INT_VAR", 8080)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != 9090 {
			t.Errorf("getIntEnv() = %d, want %d", got, 9090)
		}
	})

	t.Run("error on invalid int", func(t *testing.T) {
		os.Setenv("TEST_INT_VAR", "not_int")
		defer os.Unsetenv("TEST_INT_VAR")
		_, err := getIntEnv("TEST_INT_VAR", 8080)
		if err == nil {
			t.Error("expected error for invalid int value")
		}
	})
}

func TestGetBoolEnv(t *testing.T) {
	tests := []struct {
		value    string
		fallback bool
		want     bool
	}{
		{"", true, true},
		{"", false, false},
		{"true", false, true},
		{"YES", false, true},
		{"1", false, true},
		{"off", true, false},
		{"nope", true, false},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			os.Setenv("TEST_BOOL_VAR", tt.value)
			defer os.Unsetenv("TEST_BOOL_VAR")
			if got := getBoolEnv("TEST_BOOL_VAR", tt.fallback); got != tt.want {
				t.Errorf("getBoolEnv(%q, %v) = %v, want %v", tt.value, tt.fallback, got, tt.want)
			}
		})
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	clearEnv()

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Server.ShutdownTimeout != 15*time.Second {
		t.Errorf("Server.ShutdownTimeout = %v, want 15s", cfg.Server.ShutdownTimeout)
	}
	if cfg.Model.Path != "" {
		t.Errorf("Model.Path = %q, want empty", cfg.Model.Path)
	}
	if cfg.Model.ID != "youtube-views" {
		t.Errorf("Model.ID = %q, want %q", cfg.Model.ID, "youtube-views")
	}
	if cfg.Redis.Enabled() {
		t.Error("Redis should be disabled without REDIS_HOST")
	}
	if cfg.Redis.Port != 6379 {
		t.Errorf("Redis.Port = %d, want 6379", cfg.Redis.Port)
	}
	if cfg.Redis.CacheTTL != 5*time.Minute {
		t.Errorf("Redis.CacheTTL = %v, want 5m", cfg.Redis.CacheTTL)
	}
	if cfg.CORS.AllowedOrigins != "*" {
		t.Errorf("CORS.AllowedOrigins = %q, want %q", cfg.CORS.AllowedOrigins, "*")
	}
	if cfg.UI.Layout != "wide" {
		t.Errorf("UI.Layout = %q, want %q", cfg.UI.Layout, "wide")
	}
	if !cfg.Metrics.Enabled {
		t.Error("Metrics should be enabled by default")
	}
}

func TestLoadConfigCustom(t *testing.T) {
	clearEnv()
	os.Setenv("SERVER_PORT", "3000")
	os.Setenv("MODEL_PATH", "/models/views.json")
	os.Setenv("REDIS_HOST", "redis.local")
	os.Setenv("REDIS_PORT", "6380")
	os.Setenv("UI_LAYOUT", "Compact")
	defer clearEnv()

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}

	if cfg.Server.Port != 3000 {
		t.Errorf("Server.Port = %d, want 3000", cfg.Server.Port)
	}
	if cfg.Model.Path != "/models/views.json" {
		t.Errorf("Model.Path = %q", cfg.Model.Path)
	}
	if !cfg.Redis.Enabled() {
		t.Error("Redis should be enabled when REDIS_HOST is set")
	}
	if got := cfg.Redis.Addr(); got != "redis.local:6380" {
		t.Errorf("Redis.Addr() = %q, want %q", got, "redis.local:6380")
	}
	if cfg.UI.Layout != "compact" {
		t.Errorf("UI.Layout = %q, want %q", cfg.UI.Layout, "compact")
	}
}

func TestLoadConfigInvalidPort(t *testing.T) {
	clearEnv()
	os.Setenv("SERVER_PORT", "invalid")
	defer os.Unsetenv("SERVER_PORT")

	_, err := LoadConfig()
	if err == nil {
		t.Error("expected error for invalid SERVER_PORT")
	}
}

func TestLoadConfigInvalidLayout(t *testing.T) {
	clearEnv()
	os.Setenv("UI_LAYOUT", "sidebar")
	defer os.Unsetenv("UI_LAYOUT")

	_, err := LoadConfig()
	if err == nil {
		t.Error("expected error for unknown UI_LAYOUT")
	}
}
