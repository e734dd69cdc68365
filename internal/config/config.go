package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Store drivers understood by STORE_DRIVER.
const (
	DriverMongo = "mongo"
	DriverMySQL = "mysql"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	Port            string
	StoreDriver     string
	MongoURI        string
	MongoDatabase   string
	MySQLDSN        string
	RedisAddr       string
	RedisDB         int
	RedisPass       string
	ListCacheTTL    time.Duration
	AllowedOrigins  []string
	LogLevel        string
	ShutdownTimeout time.Duration
}

// Load builds Config from environment with sensible defaults.
// A .env file in the working directory is applied first when present.
func Load() *Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("could not read .env file", "error", err)
	}

	return &Config{
		Port:            getEnv("PORT", "3000"),
		StoreDriver:     strings.ToLower(getEnv("STORE_DRIVER", DriverMongo)),
		MongoURI:        getEnv("MONGODB_URI", "mongodb://localhost:27017/todo"),
		MongoDatabase:   os.Getenv("MONGODB_DATABASE"),
		MySQLDSN:        getEnv("MYSQL_DSN", "user:password@tcp(localhost:3306)/todo?charset=utf8mb4&parseTime=True&loc=Local"),
		RedisAddr:       os.Getenv("REDIS_ADDR"),
		RedisDB:         getEnvInt("REDIS_DB", 0),
		RedisPass:       os.Getenv("REDIS_PASSWORD"),
		ListCacheTTL:    getEnvDuration("LIST_CACHE_TTL", 30*time.Second),
		AllowedOrigins:  getEnvList("CORS_ALLOWED_ORIGINS", []string{"*"}),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		ShutdownTimeout: getEnvDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
	}
}

// SlogLevel converts LogLevel to a slog.Level, defaulting to info.
func (c *Config) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvList(key string, def []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}
