package config

import (
	"os"
	"strings"
)

// Config holds all service configuration loaded from environment variables.
// The JWT secret is read once here and never mutated afterwards.
type Config struct {
	Port           string
	Debug          bool
	PostgresDSN    string
	JWTSecret      string
	CORSOrigins    []string
	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioBucket    string
	MinioUseSSL    bool
}

func Load() *Config {
	return &Config{
		Port:           getenv("PORT", "8080"),
		Debug:          getenv("DEBUG", "false") == "true",
		PostgresDSN:    getenv("POSTGRES_DSN", ""),
		JWTSecret:      getenv("JWT_SECRET", ""),
		CORSOrigins:    strings.Split(getenv("CORS_ORIGINS", "http://localhost:3000"), ","),
		MinioEndpoint:  getenv("MINIO_ENDPOINT", "minio:9000"),
		MinioAccessKey: getenv("MINIO_ACCESS_KEY", ""),
		MinioSecretKey: getenv("MINIO_SECRET_KEY", ""),
		MinioBucket:    getenv("MINIO_BUCKET", "avatars"),
		MinioUseSSL:    getenv("MINIO_USE_SSL", "false") == "true",
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
