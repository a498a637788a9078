package config

import (
	"os"
	"strconv"
)

// ============================================================
// Configuration
// ============================================================

type Config struct {
	Port           string
	Environment    string
	ReadTimeout    int
	WriteTimeout   int
	DBPath         string
	MigrationsPath string
	StorageKey     string
	SessionIdleMin int
	OpenAPIPath    string
	LogLevel       string
	LogFormat      string
}

// Load reads the configuration from environment variables.
func Load() *Config {
	return &Config{
		Port:           getEnv("PORT", "3000"),
		Environment:    getEnv("ENV", "development"),
		ReadTimeout:    getEnvAsInt("READ_TIMEOUT", 10),
		WriteTimeout:   getEnvAsInt("WRITE_TIMEOUT", 10),
		DBPath:         getEnv("EDITOR_DB_PATH", "data/db/editor.db"),
		MigrationsPath: getEnv("EDITOR_MIGRATIONS", ""),
		StorageKey:     getEnv("EDITOR_STORAGE_KEY", "floorPlans"),
		SessionIdleMin: getEnvAsInt("EDITOR_SESSION_IDLE_MINUTES", 60),
		OpenAPIPath:    getEnv("EDITOR_OPENAPI", "docs/floorplan-editor.openapi.yaml"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LogFormat:      getEnv("LOG_FORMAT", "json"),
	}
}

func getEnv(key, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultVal
}
