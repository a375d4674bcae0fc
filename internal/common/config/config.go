package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// ============================================================
// Configuration
// ============================================================

type Config struct {
	Port           string
	Environment    string
	ReadTimeout    int
	WriteTimeout   int
	OutputDir      string
	DBPath         string
	MigrationsPath string
	DefaultDPI     float64
	DefaultFormat  string
	LogLevel       string
	CORSOrigins    []string
}

// Load reads the configuration from the environment. A .env file in the
// working directory, when present, fills variables that are not already set.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Port:           getEnv("PORT", "3001"),
		Environment:    getEnv("ENV", "development"),
		ReadTimeout:    getEnvAsInt("READ_TIMEOUT", 10),
		WriteTimeout:   getEnvAsInt("WRITE_TIMEOUT", 30),
		OutputDir:      getEnv("OUTPUT_DIR", "data/renders"),
		DBPath:         getEnv("RENDER_DB_PATH", "data/db/renders.db"),
		MigrationsPath: getEnv("MIGRATIONS_PATH", "migrations/001_init_renders.sql"),
		DefaultDPI:     getEnvAsFloat("DEFAULT_DPI", 100),
		DefaultFormat:  getEnv("DEFAULT_FORMAT", "png"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		CORSOrigins:    getEnvAsList("CORS_ORIGINS", []string{"*"}),
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

func getEnvAsFloat(key string, defaultVal float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil && f > 0 {
			return f
		}
	}
	return defaultVal
}

func getEnvAsList(key string, defaultVal []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultVal
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultVal
	}
	return out
}
