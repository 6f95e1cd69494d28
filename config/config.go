package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all app configuration
type Config struct {
	// Environment: local, dev or prod. Selects the log handler.
	Env string

	// Server
	HTTPPort string

	// Dataset generation
	RecordCount int   // records sampled at startup
	Seed        int64 // 0 means time-derived, i.e. a fresh map each run

	// App settings
	RebuildBufferSize int
	Debug             bool
}

// LoadConfig loads configuration from environment variables, with an
// optional .env file.
func LoadConfig() *Config {
	// A missing .env is fine; env vars may be set by the environment.
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}

	return &Config{
		Env: getEnv("ENV", "local"),

		// Server
		HTTPPort: getEnv("HTTP_PORT", "8080"),

		// Dataset generation
		RecordCount: getEnvAsInt("RECORD_COUNT", 5000),
		Seed:        getEnvAsInt64("SEED", 0),

		// App settings
		RebuildBufferSize: getEnvAsInt("REBUILD_BUFFER_SIZE", 16),
		Debug:             getEnvAsBool("DEBUG", false),
	}
}

// Helper functions for parsing environment variables
func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultVal
}

func getEnvAsInt64(key string, defaultVal int64) int64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseInt(valueStr, 10, 64); err == nil {
		return value
	}
	return defaultVal
}

func getEnvAsBool(key string, defaultVal bool) bool {
	valStr := getEnv(key, "")
	if val, err := strconv.ParseBool(valStr); err == nil {
		return val
	}
	return defaultVal
}
