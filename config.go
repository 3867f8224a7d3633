package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"lg/wellness-coach-go-api/internal/coach"
)

// config is everything the server reads from the environment (and an optional
// .env file) at startup.
type config struct {
	Addr      string
	LogLevel  string
	LogFormat string // json | console

	SessionStore  string // memory | redis
	SessionTTL    time.Duration
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	ContentPath    string // optional YAML catalog replacing the embedded one
	Features       coach.Features
	MetricsEnabled bool
}

// loadConfig reads .env (if present) and the process environment. A missing
// .env is fine for the server; bad values are not.
func loadConfig() (config, error) {
	_ = godotenv.Load()

	cfg := config{
		Addr:          getEnv("ADDR", "localhost:3000"),
		LogLevel:      strings.ToLower(getEnv("LOG_LEVEL", "info")),
		LogFormat:     strings.ToLower(getEnv("LOG_FORMAT", "json")),
		SessionStore:  strings.ToLower(getEnv("SESSION_STORE", "memory")),
		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		ContentPath:   os.Getenv("CONTENT_PATH"),
	}

	if cfg.LogFormat != "json" && cfg.LogFormat != "console" {
		return cfg, fmt.Errorf("LOG_FORMAT must be json or console, got %q", cfg.LogFormat)
	}
	if cfg.SessionStore != "memory" && cfg.SessionStore != "redis" {
		return cfg, fmt.Errorf("SESSION_STORE must be memory or redis, got %q", cfg.SessionStore)
	}

	ttl, err := time.ParseDuration(getEnv("SESSION_TTL", "2h"))
	if err != nil || ttl <= 0 {
		return cfg, fmt.Errorf("SESSION_TTL must be a positive duration, got %q", os.Getenv("SESSION_TTL"))
	}
	cfg.SessionTTL = ttl

	if cfg.RedisDB, err = strconv.Atoi(getEnv("REDIS_DB", "0")); err != nil {
		return cfg, fmt.Errorf("REDIS_DB must be an integer: %w", err)
	}

	if cfg.Features, err = coach.FeatureSet(getEnv("FEATURE_SET", coach.DefaultFeatureSet)); err != nil {
		return cfg, fmt.Errorf("FEATURE_SET: %w", err)
	}
	// Allows turning the gender split off without dropping back a whole version.
	if v := os.Getenv("WORKOUT_GENDER_SPLIT"); v != "" {
		split, err := strconv.ParseBool(v)
		if err != nil {
			return cfg, fmt.Errorf("WORKOUT_GENDER_SPLIT must be a boolean, got %q", v)
		}
		cfg.Features.GenderSplitWorkouts = split
	}

	if cfg.MetricsEnabled, err = strconv.ParseBool(getEnv("METRICS_ENABLED", "true")); err != nil {
		return cfg, fmt.Errorf("METRICS_ENABLED must be a boolean, got %q", os.Getenv("METRICS_ENABLED"))
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
