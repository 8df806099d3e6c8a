package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"serviceregistry/adapters/healthprobe"
	"serviceregistry/service"
)

// Env variable names.
const (
	envRegistrationKey     = "SERVICE_REGISTRATION_KEY"
	envAdminAPIKey         = "ADMIN_API_KEY"
	envPort                = "PORT"
	envLogLevel            = "LOG_LEVEL"
	envHealthEnabled       = "HEALTH_CHECK_ENABLED"
	envHealthIntervalMs    = "HEALTH_CHECK_INTERVAL_MS"
	envHealthBatchSize     = "HEALTH_CHECK_BATCH_SIZE"
	envHealthMaxConcurrent = "HEALTH_CHECK_MAX_CONCURRENT"
	envHealthTTLMs         = "HEALTH_CHECK_TTL_MS"
	envHealthProbeScheme   = "HEALTH_PROBE_SCHEME"
	envRateLimitRPS        = "RATE_LIMIT_RPS"
)

const (
	defaultPort         = 3002
	defaultLogLevel     = "info"
	defaultRateLimitRPS = 20
)

// AppConfig is the full process configuration loaded from environment
// variables. SERVICE_REGISTRATION_KEY and ADMIN_API_KEY are required;
// startup fails without them.
type AppConfig struct {
	RegistrationKey string
	AdminAPIKey     string
	Port            int
	LogLevel        string
	Health          service.HealthConfig
	ProbeScheme     string
	RateLimitRPS    float64
}

// LoadConfig loads configuration from environment variables.
func LoadConfig() (*AppConfig, error) {
	regKey := os.Getenv(envRegistrationKey)
	if regKey == "" {
		return nil, fmt.Errorf("%s is required", envRegistrationKey)
	}
	adminKey := os.Getenv(envAdminAPIKey)
	if adminKey == "" {
		return nil, fmt.Errorf("%s is required", envAdminAPIKey)
	}

	port, err := intEnv(envPort, defaultPort)
	if err != nil {
		return nil, err
	}
	if port <= 0 || port > 65535 {
		return nil, fmt.Errorf("%s must be 1-65535, got %d", envPort, port)
	}

	logLevel := os.Getenv(envLogLevel)
	if logLevel == "" {
		logLevel = defaultLogLevel
	}

	health := service.DefaultHealthConfig()
	if raw := os.Getenv(envHealthEnabled); raw != "" {
		enabled, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", envHealthEnabled, err)
		}
		health.Enabled = enabled
	}
	if health.Interval, err = durationMsEnv(envHealthIntervalMs, health.Interval); err != nil {
		return nil, err
	}
	if health.BatchSize, err = intEnv(envHealthBatchSize, health.BatchSize); err != nil {
		return nil, err
	}
	if health.MaxConcurrent, err = intEnv(envHealthMaxConcurrent, health.MaxConcurrent); err != nil {
		return nil, err
	}
	if health.TTL, err = durationMsEnv(envHealthTTLMs, health.TTL); err != nil {
		return nil, err
	}
	if health.BatchSize <= 0 || health.MaxConcurrent <= 0 || health.Interval <= 0 || health.TTL <= 0 {
		return nil, fmt.Errorf("health check tuning values must be positive")
	}

	scheme := os.Getenv(envHealthProbeScheme)
	if scheme == "" {
		scheme = healthprobe.DefaultScheme
	}
	if scheme != "http" && scheme != "https" {
		return nil, fmt.Errorf("%s must be http|https, got %q", envHealthProbeScheme, scheme)
	}

	rps := float64(defaultRateLimitRPS)
	if raw := os.Getenv(envRateLimitRPS); raw != "" {
		rps, err = strconv.ParseFloat(raw, 64)
		if err != nil || rps <= 0 {
			return nil, fmt.Errorf("%s must be a positive number", envRateLimitRPS)
		}
	}

	return &AppConfig{
		RegistrationKey: regKey,
		AdminAPIKey:     adminKey,
		Port:            port,
		LogLevel:        logLevel,
		Health:          health,
		ProbeScheme:     scheme,
		RateLimitRPS:    rps,
	}, nil
}

func intEnv(name string, fallback int) (int, error) {
	raw := os.Getenv(name)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", name, err)
	}
	return v, nil
}

func durationMsEnv(name string, fallback time.Duration) (time.Duration, error) {
	raw := os.Getenv(name)
	if raw == "" {
		return fallback, nil
	}
	ms, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", name, err)
	}
	return time.Duration(ms) * time.Millisecond, nil
}
