package config

import (
	"os"
	"strings"
	"time"
)

type Config struct {
	MongoURI      string
	PostgresURI   string
	RedisURI      string
	JWTSecret     string
	TokenTTL      time.Duration // lifetime of issued session tokens; the cookie Max-Age follows this
	GoogleAPIKey  string
	GeminiModel   string
	Port          string
	AllowedHost   string // bare hostname for Host header checks; empty disables
	FrontendURL   string
	ClientOrigins []string // CORS: from CLIENT_ORIGINS or FRONTEND_URL; must include the SPA origin
}

func Load() *Config {
	origins := parseOrigins(getEnv("CLIENT_ORIGINS", ""))
	if len(origins) == 0 {
		for _, u := range []string{getEnv("CLIENT_ORIGIN", ""), getEnv("FRONTEND_URL", "")} {
			u = strings.TrimSpace(u)
			if u != "" {
				origins = append(origins, u)
			}
		}
	}
	if len(origins) == 0 {
		origins = []string{"http://localhost:5173"}
	}

	return &Config{
		MongoURI:      getEnv("MONGODB_URI", getEnv("MONGO_URI", "mongodb://localhost:27017/gembot")),
		PostgresURI:   getEnv("POSTGRES_URI", "postgres://localhost:5432/gembot?sslmode=disable"),
		RedisURI:      getEnv("REDIS_URI", "redis://localhost:6379/0"),
		JWTSecret:     getEnv("JWT_SECRET", "your-secret-key-change-in-production"),
		TokenTTL:      getDuration("TOKEN_TTL", 24*time.Hour),
		GoogleAPIKey:  getEnv("GOOGLE_API_KEY", ""),
		GeminiModel:   getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		Port:          getEnv("PORT", "5000"),
		AllowedHost:   getEnv("ALLOWED_HOST", ""),
		FrontendURL:   getEnv("FRONTEND_URL", "http://localhost:5173"),
		ClientOrigins: origins,
	}
}

func parseOrigins(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
