package main

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds everything the process reads from the environment.
type Config struct {
	Port        string
	DatabaseDSN string
	JWTSecret   string
	AutoMigrate bool
	CORSOrigins []string
}

// loadConfig reads a local .env if present (never overwriting variables that
// are already set) and then resolves configuration from the environment.
func loadConfig() Config {
	_ = godotenv.Load()

	cfg := Config{
		Port:        getEnv("PORT", "5000"),
		DatabaseDSN: os.Getenv("DB_DSN"),
		JWTSecret:   getEnv("JWT_SECRET", "dev-insecure-secret-change"),
		AutoMigrate: true,
		CORSOrigins: splitList(getEnv("CORS_ORIGINS", "http://localhost:5173,http://localhost:3000")),
	}
	// Schema migration is on by default; set DB_AUTO_MIGRATE=false to skip.
	if v := strings.ToLower(os.Getenv("DB_AUTO_MIGRATE")); v == "false" || v == "0" || v == "no" {
		cfg.AutoMigrate = false
	}
	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
