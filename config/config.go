package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Server  ServerConfig
	Model   ModelConfig
	Redis   RedisConfig
	CORS    CORSConfig
	UI      UIConfig
	Log     LogConfig
	Metrics MetricsConfig
}

type ServerConfig struct {
	Port            int
	ShutdownTimeout time.Duration
}

// ModelConfig points at the serialized model artifact. An empty Path selects
// the built-in heuristic estimator.
type ModelConfig struct {
	ID            string
	Path          string
	RemoteURL     string
	RemoteTimeout time.Duration
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
	CacheTTL time.Duration
}

func (r RedisConfig) Enabled() bool {
	return r.Host != ""
}

func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

type CORSConfig struct {
	AllowedOrigins string
}

type UIConfig struct {
	Layout string
}

type LogConfig struct {
	Mode string
}

type MetricsConfig struct {
	Enabled bool
}

func LoadConfig() (*Config, error) {
	serverPort, err := getIntEnv("SERVER_PORT", 8080)
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_PORT: %w", err)
	}

	shutdownSec, err := getIntEnv("SERVER_SHUTDOWN_TIMEOUT_SEC", 15)
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_SHUTDOWN_TIMEOUT_SEC: %w", err)
	}

	remoteTimeoutSec, err := getIntEnv("MODEL_REMOTE_TIMEOUT_SEC", 10)
	if err != nil {
		return nil, fmt.Errorf("invalid MODEL_REMOTE_TIMEOUT_SEC: %w", err)
	}

	redisPort, err := getIntEnv("REDIS_PORT", 6379)
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_PORT: %w", err)
	}

	redisDB, err := getIntEnv("REDIS_DB", 0)
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	cacheTTLSec, err := getIntEnv("CACHE_TTL_SEC", 300)
	if err != nil {
		return nil, fmt.Errorf("invalid CACHE_TTL_SEC: %w", err)
	}

	layout := strings.ToLower(getEnv("UI_LAYOUT", "wide"))
	if layout != "wide" && layout != "compact" {
		return nil, fmt.Errorf("invalid UI_LAYOUT %q: must be wide or compact", layout)
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:            serverPort,
			ShutdownTimeout: time.Duration(shutdownSec) * time.Second,
		},
		Model: ModelConfig{
			ID:            getEnv("MODEL_ID", "youtube-views"),
			Path:          getEnv("MODEL_PATH", ""),
			RemoteURL:     getEnv("MODEL_REMOTE_URL", ""),
			RemoteTimeout: time.Duration(remoteTimeoutSec) * time.Second,
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", ""),
			Port:     redisPort,
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       redisDB,
			CacheTTL: time.Duration(cacheTTLSec) * time.Second,
		},
		CORS: CORSConfig{
			AllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
		},
		UI: UIConfig{
			Layout: layout,
		},
		Log: LogConfig{
			Mode: getEnv("LOG_MODE", "development"),
		},
		Metrics: MetricsConfig{
			Enabled: getBoolEnv("METRICS_ENABLED", true),
		},
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value
}

func getIntEnv(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}
	return parsed, nil
}

func getBoolEnv(key string, fallback bool) bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(key))) {
	case "":
		return fallback
	case "1", "t", "true", "y", "yes", "on":
		return true
	default:
		return false
	}
}
