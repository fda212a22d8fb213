package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

const (
	DevelopmentAPIURL = "http://localhost:5000"
	ProductionAPIURL  = "https://searchnametorre-production.up.railway.app"
)

type Config struct {
	Env             string
	Port            string
	APIBaseURL      string
	HTTPTimeout     time.Duration
	LogLevel        string
	SessionTTL      time.Duration
	SearchRateLimit int
	MetricsUser     string
	MetricsPassword string
}

// fileConfig is the TOML file layout; durations are strings there.
type fileConfig struct {
	Env             string `toml:"env"`
	Port            string `toml:"port"`
	APIBaseURL      string `toml:"api_base_url"`
	HTTPTimeout     string `toml:"http_timeout"`
	LogLevel        string `toml:"log_level"`
	SessionTTL      string `toml:"session_ttl"`
	SearchRateLimit int    `toml:"search_rate_limit"`
	MetricsUser     string `toml:"metrics_user"`
	MetricsPassword string `toml:"metrics_password"`
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Env:             getEnv("APP_ENV", "development"),
		Port:            getEnv("PORT", "8080"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		MetricsUser:     getEnv("METRICS_USER", ""),
		MetricsPassword: getEnv("METRICS_PASSWORD", ""),
	}
	cfg.APIBaseURL = getEnv("API_BASE_URL", defaultAPIURL(cfg.Env))

	var err error
	if cfg.HTTPTimeout, err = getDuration("HTTP_TIMEOUT", 10*time.Second); err != nil {
		return nil, err
	}
	if cfg.SessionTTL, err = getDuration("SESSION_TTL", 30*time.Minute); err != nil {
		return nil, err
	}
	if cfg.SearchRateLimit, err = getInt("SEARCH_RATE_LIMIT", 30); err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile loads the environment configuration and then applies the values
// set in the TOML file at path. A missing file is not an error.
func LoadFile(path string) (*Config, error) {
	cfg, err := Load()
	if err != nil {
		return nil, err
	}
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var fc fileConfig
	if err := toml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if fc.Env != "" {
		cfg.Env = fc.Env
		if _, ok := os.LookupEnv("API_BASE_URL"); !ok {
			cfg.APIBaseURL = defaultAPIURL(cfg.Env)
		}
	}
	if fc.Port != "" {
		cfg.Port = fc.Port
	}
	if fc.APIBaseURL != "" {
		cfg.APIBaseURL = fc.APIBaseURL
	}
	if fc.LogLevel != "" {
		cfg.LogLevel = fc.LogLevel
	}
	if fc.SearchRateLimit != 0 {
		cfg.SearchRateLimit = fc.SearchRateLimit
	}
	if fc.MetricsUser != "" {
		cfg.MetricsUser = fc.MetricsUser
	}
	if fc.MetricsPassword != "" {
		cfg.MetricsPassword = fc.MetricsPassword
	}
	if fc.HTTPTimeout != "" {
		if cfg.HTTPTimeout, err = time.ParseDuration(fc.HTTPTimeout); err != nil {
			return nil, fmt.Errorf("http_timeout: %w", err)
		}
	}
	if fc.SessionTTL != "" {
		if cfg.SessionTTL, err = time.ParseDuration(fc.SessionTTL); err != nil {
			return nil, fmt.Errorf("session_ttl: %w", err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.APIBaseURL == "" {
		return fmt.Errorf("API_BASE_URL is required")
	}
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive")
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be positive")
	}
	if c.SearchRateLimit <= 0 {
		return fmt.Errorf("SEARCH_RATE_LIMIT must be positive")
	}
	return nil
}

func defaultAPIURL(env string) string {
	if env == "production" {
		return ProductionAPIURL
	}
	return DevelopmentAPIURL
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	s, ok := os.LookupEnv(key)
	if !ok || s == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}

func getInt(key string, fallback int) (int, error) {
	s, ok := os.LookupEnv(key)
	if !ok || s == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}
