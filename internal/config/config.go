package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds the runtime settings of the roster application.
type Config struct {
	DBPath         string
	HTTPAddr       string
	ExportPath     string
	LogLevel       string
	LogFormat      string
	AllowedOrigins []string
}

// Load reads a .env file if present, then the environment, falling back to
// defaults for anything unset.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		DBPath:         getEnv("DB_PATH", "students.db"),
		HTTPAddr:       getEnv("HTTP_ADDR", "127.0.0.1:8080"),
		ExportPath:     getEnv("EXPORT_PATH", "students.csv"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LogFormat:      getEnv("LOG_FORMAT", "pretty"),
		AllowedOrigins: parseOrigins(getEnv("ALLOWED_ORIGINS", "http://localhost:8080")),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseOrigins(raw string) []string {
	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}
