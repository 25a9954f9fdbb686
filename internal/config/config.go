package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/PauloHFS/deepseek/internal/validator"
)

type Config struct {
	APIKey        string
	BaseURL       string        `validate:"required,url,startswith=http"`
	Model         string        `validate:"required"`
	Temperature   float64       `validate:"gte=0,lte=2"`
	Timeout       time.Duration `validate:"gte=0"`
	Env           string        `validate:"oneof=dev prod"`
	LogLevel      string        `validate:"oneof=debug info warn warning error"`
	MetricsAddr   string        `validate:"omitempty,hostname_port"`
	TraceExporter string        `validate:"oneof=none stdout otlp-http otlp-grpc"`
}

// Load reads .env (if present) and the environment. A missing
// DEEPSEEK_API_KEY is not reported here; the client constructor rejects it.
func Load() (*Config, error) {
	_ = godotenv.Load()

	temperature, err := getEnvFloat("DEEPSEEK_TEMPERATURE", 0.7)
	if err != nil {
		return nil, err
	}

	timeout, err := getEnvDuration("DEEPSEEK_TIMEOUT", 60*time.Second)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		APIKey:        os.Getenv("DEEPSEEK_API_KEY"),
		BaseURL:       getEnv("DEEPSEEK_BASE_URL", "https://api.deepseek.com"),
		Model:         getEnv("DEEPSEEK_MODEL", "deepseek-chat"),
		Temperature:   temperature,
		Timeout:       timeout,
		Env:           getEnv("APP_ENV", "dev"),
		LogLevel:      strings.ToLower(getEnv("LOG_LEVEL", "info")),
		MetricsAddr:   os.Getenv("METRICS_ADDR"),
		TraceExporter: getEnv("OTEL_TRACES_EXPORTER", "none"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if err := validator.Validate(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) (float64, error) {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return f, nil
}

// getEnvDuration accepts integer seconds or a Go duration string.
func getEnvDuration(key string, fallback time.Duration) (time.Duration, error) {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return fallback, nil
	}
	if secs, err := strconv.Atoi(value); err == nil {
		return time.Duration(secs) * time.Second, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}
