package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/joho/godotenv"
)

type Config struct {
	Port          int
	DatabaseDSN   string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	JWTSecret     string
	AllowOrigins  []string
}

// Load reads configuration from the environment. A .env file is honored
// when present so local runs match the docker setup.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Port:          envInt("PORT", 8000),
		DatabaseDSN:   envString("DATABASE_DSN", "host=localhost user=amenapp password=secret dbname=amenapp sslmode=disable"),
		RedisAddr:     envString("REDIS_ADDR", "localhost:6379"),
		RedisPassword: envString("REDIS_PASSWORD", ""),
		RedisDB:       envInt("REDIS_DB", 0),
		JWTSecret:     envString("JWT_SECRET", "dev-secret"),
		AllowOrigins:  strings.Split(envString("CORS_ORIGINS", "http://localhost:3000"), ","),
	}
}

// Addr returns the listen address for the HTTP server.
func (c *Config) Addr() string {
	return ":" + strconv.Itoa(c.Port)
}

func (c *Config) Cors() cors.Config {
	return cors.Config{
		AllowOrigins:     c.AllowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders:     []string{"*"},
		ExposeHeaders:    []string{"X-My-Custom-Header"},
		AllowCredentials: true,
	}
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
