package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap/zapcore"
)

// Config holds the CLI configuration.
type Config struct {
	APIURL         string
	LogLevel       zapcore.Level
	RequestTimeout time.Duration
	RetryMax       int
}

// loadConfig reads configuration from environment variables.
func loadConfig() (*Config, error) {
	cfg := &Config{}

	cfg.APIURL = os.Getenv("FINSIGHT_API_URL")
	if cfg.APIURL == "" {
		cfg.APIURL = "http://localhost:8080"
	}

	level, err := parseLogLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		return nil, err
	}
	cfg.LogLevel = level

	timeout, err := parseTimeout(os.Getenv("REQUEST_TIMEOUT"))
	if err != nil {
		return nil, err
	}
	cfg.RequestTimeout = timeout

	retries, err := parseRetryMax(os.Getenv("RETRY_MAX"))
	if err != nil {
		return nil, err
	}
	cfg.RetryMax = retries

	return cfg, nil
}

func parseLogLevel(s string) (zapcore.Level, error) {
	if s == "" {
		return zapcore.WarnLevel, nil
	}
	switch strings.ToLower(s) {
	case "debug":
		return zapcore.DebugLevel, nil
	case "info":
		return zapcore.InfoLevel, nil
	case "warn":
		return zapcore.WarnLevel, nil
	case "error":
		return zapcore.ErrorLevel, nil
	default:
		return 0, fmt.Errorf("invalid LOG_LEVEL %q: must be debug, info, warn, or error", s)
	}
}

func parseTimeout(s string) (time.Duration, error) {
	if s == "" {
		return 30 * time.Second, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid REQUEST_TIMEOUT %q: %w", s, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("REQUEST_TIMEOUT must be positive, got %v", d)
	}
	return d, nil
}

func parseRetryMax(s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid RETRY_MAX %q: %w", s, err)
	}
	if n < 0 {
		return 0, fmt.Errorf("RETRY_MAX must not be negative, got %d", n)
	}
	return n, nil
}
