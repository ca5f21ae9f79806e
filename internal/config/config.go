package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/dimitrije/prompthub/internal/client"
	"github.com/dimitrije/prompthub/internal/logger"
	"github.com/joho/godotenv"
)

type Config struct {
	Env string

	APIBaseURL     string
	HealthURL      string
	RequestTimeout time.Duration

	Server ServerConfig
	Log    logger.Config
}

// ServerConfig configures the development server that proxies API calls
// to the prompt backend.
type ServerConfig struct {
	Port            string
	BackendURL      string
	ProxyPrefix     string
	AllowedOrigins  []string
	ShutdownTimeout time.Duration
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	requestTimeout, err := time.ParseDuration(getEnv("REQUEST_TIMEOUT", "30s"))
	if err != nil {
		requestTimeout = client.DefaultTimeout
	}

	shutdownTimeout, err := time.ParseDuration(getEnv("SHUTDOWN_TIMEOUT", "10s"))
	if err != nil {
		shutdownTimeout = 10 * time.Second
	}

	return &Config{
		Env: getEnv("ENV", "development"),

		APIBaseURL:     getEnv("API_BASE_URL", client.DefaultBaseURL),
		HealthURL:      getEnv("HEALTH_URL", ""),
		RequestTimeout: requestTimeout,

		Server: ServerConfig{
			Port:            getEnv("PORT", "5173"),
			BackendURL:      getEnv("BACKEND_URL", "http://127.0.0.1:5000"),
			ProxyPrefix:     getEnv("PROXY_PREFIX", "/api"),
			AllowedOrigins:  splitList(getEnv("ALLOWED_ORIGINS", "*")),
			ShutdownTimeout: shutdownTimeout,
		},

		Log: logger.Config{
			Level:      getEnv("LOG_LEVEL", "info"),
			Filename:   getEnv("LOG_FILENAME", ""),
			MaxSize:    getEnvAsInt("LOG_MAX_SIZE", 100),
			MaxBackups: getEnvAsInt("LOG_MAX_BACKUPS", 3),
			MaxAge:     getEnvAsInt("LOG_MAX_AGE", 28),
			Compress:   getEnvAsBool("LOG_COMPRESS", true),
		},
	}, nil
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func (c *Config) ClientConfig() client.Config {
	return client.Config{
		BaseURL:   c.APIBaseURL,
		HealthURL: c.HealthURL,
		Timeout:   c.RequestTimeout,
	}
}

func (s ServerConfig) Addr() string {
	return ":" + s.Port
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}

func splitList(value string) []string {
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
