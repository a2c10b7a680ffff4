package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config is the full environment surface of the server. Load it once in
// main and hand the pieces to whatever needs them.
type Config struct {
	Port string

	MongoURI    string
	MongoDBName string
	PostgresURI string
	RedisAddr   string

	JWTSecret     string
	TokenLifetime time.Duration

	CORSOrigins []string

	GCPProject   string
	GCPLocation  string
	GeminiModel  string
	ResumeBucket string

	GenerateTimeout time.Duration
}

func Load() Config {
	cfg := Config{
		Port:            getenv("PORT", "8080"),
		MongoURI:        os.Getenv("MONGO_URI"),
		MongoDBName:     getenv("MONGO_DB", "jobpilot"),
		PostgresURI:     os.Getenv("POSTGRES_URI"),
		RedisAddr:       os.Getenv("REDIS_ADDR"),
		JWTSecret:       os.Getenv("JWT_SECRET"),
		TokenLifetime:   getenvDuration("TOKEN_LIFETIME_HOURS", 24) * time.Hour,
		GCPProject:      os.Getenv("GCP_PROJECT"),
		GCPLocation:     getenv("GCP_LOCATION", "us-central1"),
		GeminiModel:     getenv("GEMINI_MODEL", "gemini-2.0-flash"),
		ResumeBucket:    os.Getenv("RESUME_BUCKET"),
		GenerateTimeout: getenvDuration("GENERATE_TIMEOUT_SECONDS", 90) * time.Second,
	}

	origins := getenv("CORS_ORIGINS", "*")
	for _, o := range strings.Split(origins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			cfg.CORSOrigins = append(cfg.CORSOrigins, o)
		}
	}
	return cfg
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvDuration(key string, fallback int64) time.Duration {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 {
			return time.Duration(n)
		}
	}
	return time.Duration(fallback)
}
