package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all service configuration loaded from environment variables.
type Config struct {
	Env           string
	Port          string
	MongoURI      string
	MongoDB       string
	RedisAddr     string
	RedisPassword string
	JWTSecret     string
	FrontendURL   string

	// Per-IP limits applied to /login and /register.
	AuthRateLimit  int
	AuthRateWindow int // seconds
}

func Load() *Config {
	// A missing .env is fine; plain environment variables still apply.
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using environment variables")
	}

	cfg := &Config{
		Env:            getenv("APP_ENV", "development"),
		Port:           getenv("PORT", "8080"),
		MongoURI:       getenv("MONGO_URI", ""),
		MongoDB:        getenv("MONGO_DB", "itemboard"),
		RedisAddr:      getenv("REDIS_ADDR", ""),
		RedisPassword:  getenv("REDIS_PASSWORD", ""),
		JWTSecret:      getenv("JWT_SECRET", ""),
		FrontendURL:    getenv("FRONTEND_URL", "http://localhost:3000"),
		AuthRateLimit:  getenvInt("AUTH_RATE_LIMIT", 20),
		AuthRateWindow: getenvInt("AUTH_RATE_WINDOW_SECONDS", 60),
	}

	if cfg.MongoURI == "" {
		log.Fatal("MONGO_URI is required")
	}
	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET is required")
	}
	return cfg
}

// Production reports whether the service runs in a production-like
// environment. Session cookies are marked Secure only in that case.
func (c *Config) Production() bool {
	return c.Env == "production"
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
