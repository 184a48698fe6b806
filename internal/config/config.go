package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	StorageType    string
	DatabasePath   string
	DatabaseURL    string
	MigrationsPath string
	DataDir        string
	ProgressKey    string
	CatalogPath    string
	LogLevel       string
	LogFormat      string
}

// Load reads configuration from environment variables with sensible defaults.
// A .env file in the working directory is loaded first when present.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		StorageType:    getEnv("STORAGE_TYPE", "sqlite"),
		DatabasePath:   getEnv("DB_PATH", "./wordgym.db"),
		DatabaseURL:    getEnv("DATABASE_URL", ""),
		MigrationsPath: getEnv("MIGRATIONS_PATH", ""),
		DataDir:        getEnv("DATA_DIR", "./data"),
		ProgressKey:    getEnv("PROGRESS_KEY", "spellbee_progress"),
		CatalogPath:    getEnv("CATALOG_PATH", ""),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LogFormat:      getEnv("LOG_FORMAT", "console"),
	}
}

// getEnv reads an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
