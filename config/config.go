package config

import (
	"os"
	"strconv"
)

// AppConfig holds everything read from the environment at startup.
type AppConfig struct {
	Port      string
	GinMode   string
	DBDSN     string
	JWTSecret string
	RedisAddr string
	// PublicBaseURL is the origin embedded in table QR codes.
	PublicBaseURL string
	// DefaultGSTRate is the process-wide GST percentage applied when a hotel
	// has no rate of its own.
	DefaultGSTRate int
}

// Load reads the environment (godotenv is loaded by main before this runs).
func Load() AppConfig {
	return AppConfig{
		Port:           EnvOrDefault("PORT", "8080"),
		GinMode:        EnvOrDefault("GIN_MODE", "debug"),
		DBDSN:          os.Getenv("DB_DSN"),
		JWTSecret:      os.Getenv("JWT_SECRET"),
		RedisAddr:      os.Getenv("REDIS_ADDR"),
		PublicBaseURL:  EnvOrDefault("PUBLIC_BASE_URL", "http://localhost:8080"),
		DefaultGSTRate: envIntOrDefault("DEFAULT_GST_RATE", 5),
	}
}

func EnvOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOrDefault(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
