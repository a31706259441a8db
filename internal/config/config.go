package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Transport values
const (
	TransportStdio = "stdio"
	TransportHTTP  = "http"
)

// Store driver values
const (
	DriverMemory   = "memory"
	DriverRedis    = "redis"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config holds runtime settings read from the environment
type Config struct {
	Transport   string
	HTTPAddr    string
	StoreDriver string
	RedisURL    string
	SQLitePath  string
	PostgresDSN string
	LogLevel    string
	LeaguesFile string
}

// Load reads configuration from the environment, loading a .env file first when present
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Transport:   strings.ToLower(getenv("TRANSPORT", TransportStdio)),
		HTTPAddr:    getenv("HTTP_ADDR", ":8080"),
		StoreDriver: strings.ToLower(getenv("STORE_DRIVER", DriverMemory)),
		RedisURL:    getenv("REDIS_URL", "redis://localhost:6379/0"),
		SQLitePath:  getenv("SQLITE_PATH", "court-league.db"),
		PostgresDSN: os.Getenv("POSTGRES_DSN"),
		LogLevel:    getenv("LOG_LEVEL", "info"),
		LeaguesFile: os.Getenv("LEAGUES_FILE"),
	}
}

func getenv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}
