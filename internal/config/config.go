package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds the application configuration.
type Config struct {
	ServerPort       int
	DatabasePath     string
	JWTSecret        string
	TokenTTL         time.Duration
	SeedPath         string
	BackupPath       string
	BackupSchedule   string // cron expression for store snapshots
	SweepSchedule    string // cron expression for the job retention sweep
	JobRetentionDays int    // 0 disables the sweep
	AllowedOrigins   []string
}

// Load loads configuration from environment variables or sets defaults.
func Load() (*Config, error) {
	portStr := getEnv("PORT", "8080")
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid PORT: %w", err)
	}

	ttlStr := getEnv("TOKEN_TTL", "24h")
	ttl, err := time.ParseDuration(ttlStr)
	if err != nil {
		return nil, fmt.Errorf("invalid TOKEN_TTL: %w", err)
	}

	retentionStr := getEnv("JOB_RETENTION_DAYS", "90")
	retention, err := strconv.Atoi(retentionStr)
	if err != nil {
		return nil, fmt.Errorf("invalid JOB_RETENTION_DAYS: %w", err)
	}

	return &Config{
		ServerPort:       port,
		DatabasePath:     getEnv("DATABASE_PATH", "./alumninet.db"),
		JWTSecret:        getEnv("JWT_SECRET", "dev-secret-change-me"),
		TokenTTL:         ttl,
		SeedPath:         getEnv("SEED_PATH", "./seed.json"),
		BackupPath:       getEnv("BACKUP_PATH", "./backups"),
		BackupSchedule:   getEnv("BACKUP_SCHEDULE", "0 3 * * *"),
		SweepSchedule:    getEnv("SWEEP_SCHEDULE", "30 3 * * *"),
		JobRetentionDays: retention,
		AllowedOrigins:   splitList(getEnv("ALLOWED_ORIGINS", "http://localhost:5173")),
	}, nil
}

// Helper to get an environment variable with a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
