package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const defaultMaxUploadBytes = 16 << 20 // 16 MiB

// Config carries everything the services need from the environment so that
// nothing downstream reads os.Getenv directly.
type Config struct {
	Port           string
	PostgresURL    string
	SecretKey      string
	UploadDir      string
	MaxUploadBytes int64
	AllowedExts    []string
	SessionTTL     time.Duration
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading environment directly")
	}

	cfg := &Config{
		Port:           getEnv("PORT", "8080"),
		PostgresURL:    os.Getenv("POSTGRES_URL"),
		SecretKey:      getEnv("SECRET_KEY", "fallback_secret"),
		UploadDir:      getEnv("UPLOAD_DIR", "static/photos"),
		MaxUploadBytes: getEnvInt64("MAX_UPLOAD_BYTES", defaultMaxUploadBytes),
		AllowedExts:    []string{"png", "jpg", "jpeg", "gif"},
		SessionTTL:     getEnvDuration("SESSION_TTL", 24*time.Hour),
	}

	if cfg.SecretKey == "fallback_secret" {
		log.Println("SECRET_KEY not set, using fallback secret")
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt64(key string, fallback int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parsed, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		log.Printf("Invalid value for %s: %v, using default", key, err)
		return fallback
	}
	return parsed
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(v)
	if err != nil {
		log.Printf("Invalid value for %s: %v, using default", key, err)
		return fallback
	}
	return parsed
}
