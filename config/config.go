package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/subosito/gotenv"
)

type Config struct {
	HTTPAddr        string
	MongoURI        string
	MongoDatabase   string
	ValkeyAddr      string
	ValkeyPassword  string
	NATSUrl         string
	NewsAPIBaseURL  string
	NewsAPIKey      string
	Countries       []string
	PageSize        int
	CacheTTL        time.Duration
	RefreshInterval time.Duration
	WorkerCount     int
}

// Load reads configuration from the environment, with an optional .env file
// layered underneath.
func Load() *Config {
	if err := gotenv.Load(); err != nil {
		slog.Debug("no .env file found, using OS environment")
	}

	cfg := &Config{
		HTTPAddr:        getEnv("HTTP_ADDR", ":8080"),
		MongoURI:        getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDatabase:   getEnv("MONGO_DATABASE", "newsintel"),
		ValkeyAddr:      getEnv("VALKEY_ADDR", "localhost:6379"),
		ValkeyPassword:  getEnv("VALKEY_PASSWORD", ""),
		NATSUrl:         getEnv("NATS_URL", "nats://localhost:4222"),
		NewsAPIBaseURL:  getEnv("NEWSAPI_BASE_URL", "https://newsapi.org/v2/top-headlines"),
		NewsAPIKey:      getEnv("NEWSAPI_KEY", ""),
		Countries:       getListEnv("COUNTRIES", "US,GB,DE,FR,CA,AU"),
		PageSize:        getIntEnv("FETCH_PAGE_SIZE", 20),
		CacheTTL:        getDurationEnv("CACHE_TTL", "15m"),
		RefreshInterval: getDurationEnv("REFRESH_INTERVAL", "4h"),
		WorkerCount:     getIntEnv("WORKER_COUNT", 3),
	}

	slog.Info("config loaded",
		slog.String("httpAddr", cfg.HTTPAddr),
		slog.Any("countries", cfg.Countries),
		slog.Duration("cacheTTL", cfg.CacheTTL),
		slog.Duration("refreshInterval", cfg.RefreshInterval))

	return cfg
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue string) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	duration, _ := time.ParseDuration(defaultValue)
	return duration
}

func getListEnv(key string, defaultValue string) []string {
	value := getEnv(key, defaultValue)
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.ToUpper(strings.TrimSpace(p))
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
