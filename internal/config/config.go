package config

import (
	"os"
	"strings"
)

// Backend names accepted in COMMENTS_BACKEND.
const (
	BackendFile     = "file"
	BackendMemory   = "memory"
	BackendMongo    = "mongo"
	BackendPostgres = "postgres"
)

type Config struct {
	Port        string
	Environment string // ENV: production, development, etc.

	// Backend selects the comment store: file, memory, mongo or postgres.
	// Exactly one is used per deployment.
	Backend      string
	CommentsFile string
	MongoURI     string
	PostgresURI  string

	// RedisURI is optional. When set, mutations are fanned out across
	// instances over pub/sub and the dev rate limiter uses Redis.
	RedisURI string
}

func Load() *Config {
	return &Config{
		Port:         getEnv("PORT", "8080"),
		Environment:  strings.ToLower(strings.TrimSpace(getEnv("ENV", "development"))),
		Backend:      strings.ToLower(strings.TrimSpace(getEnv("COMMENTS_BACKEND", BackendFile))),
		CommentsFile: getEnv("COMMENTS_FILE", "comments.json"),
		MongoURI:     getEnv("MONGODB_URI", getEnv("MONGO_URI", "mongodb://localhost:27017/gobernanza")),
		PostgresURI:  getEnv("POSTGRES_URI", "postgres://localhost:5432/gobernanza?sslmode=disable"),
		RedisURI:     getEnv("REDIS_URI", ""),
	}
}

// IsProduction returns true when ENV is set to "production".
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
