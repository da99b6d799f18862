package config

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	DatabaseURL  string
	HTTPAddr     string
	JWTSecret    string
	RedisAddress string
}

// Load reads the .env file if present, then resolves configuration from
// environment variables. DATABASE_URL is the only hard requirement.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	cfg := &Config{
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		HTTPAddr:     getEnv("HTTP_ADDR", ":8080"),
		JWTSecret:    os.Getenv("JWT_SECRET"),
		RedisAddress: os.Getenv("REDIS_ADDRESS"),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	// An empty HMAC key is a valid signing key, so tokens signed with ""
	// would verify and the auth gate would be forgeable.
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.RedisAddress == "" {
		log.Println("REDIS_ADDRESS not set, category catalog cache disabled")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
