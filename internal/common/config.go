package common

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	LogLevel string
	Profiles ProfilesConfig
	Batch    BatchConfig
	Export   ExportConfig
}

// ProfilesConfig holds vendor-profile loading configuration
type ProfilesConfig struct {
	Dir string
}

// BatchConfig holds batch/watch extraction configuration
type BatchConfig struct {
	Workers        int
	QueueSize      int
	Debounce       time.Duration
	ProcessTimeout time.Duration
}

// ExportConfig holds XLSX export configuration
type ExportConfig struct {
	OutputPath string
	SheetName  string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		LogLevel: getEnv("RENTA_LOG_LEVEL", "info"),
		Profiles: ProfilesConfig{
			Dir: getEnv("RENTA_PROFILE_DIR", "./configs"),
		},
		Batch: BatchConfig{
			Workers:        getEnvAsInt("RENTA_WORKERS", 4),
			QueueSize:      getEnvAsInt("RENTA_QUEUE_SIZE", 256),
			Debounce:       getEnvAsDuration("RENTA_WATCH_DEBOUNCE", 500*time.Millisecond),
			ProcessTimeout: getEnvAsDuration("RENTA_PROCESS_TIMEOUT", 2*time.Minute),
		},
		Export: ExportConfig{
			OutputPath: getEnv("RENTA_EXPORT_PATH", "./extractions.xlsx"),
			SheetName:  getEnv("RENTA_EXPORT_SHEET", "Extractions"),
		},
	}
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// Validate validates the loaded configuration
func (c *Config) Validate() error {
	if c.Profiles.Dir == "" {
		return NewAppError("CONFIG_ERROR", "RENTA_PROFILE_DIR is required", ErrInvalidInput)
	}
	if c.Batch.Workers <= 0 {
		return NewAppError("CONFIG_ERROR", "RENTA_WORKERS must be positive", ErrInvalidInput)
	}
	return nil
}
