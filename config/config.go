package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

type Config struct {
	ServerPort   string
	BaseURL      string
	UserAgent    string
	CacheTTLSecs string
	LogLevel     string
	StaticDir    string
	FetchTimeout time.Duration
	RequestDelay time.Duration
}

// GetCacheTTL returns the entry cache TTL from environment or the
// 30 minute default the portal backend has always used.
func (c *Config) GetCacheTTL() time.Duration {
	if c.CacheTTLSecs == "" {
		return 1800 * time.Second
	}

	secs, err := strconv.Atoi(c.CacheTTLSecs)
	if err != nil || secs <= 0 {
		logrus.Warnf("Invalid ZVG_CACHE_TTL value: %s, using default 1800 seconds", c.CacheTTLSecs)
		return 1800 * time.Second
	}

	return time.Duration(secs) * time.Second
}

func LoadConfig() *Config {
	err := godotenv.Load()
	if err != nil {
		logrus.Warn("Error loading .env file, using system environment variables")
	}

	return &Config{
		ServerPort:   getEnv("SERVER_PORT", "8000"),
		BaseURL:      getEnv("ZVG_BASE_URL", "https://www.zvg-portal.de"),
		UserAgent:    getEnv("ZVG_USER_AGENT", "ZvgPortalBackend/1.0"),
		CacheTTLSecs: getEnv("ZVG_CACHE_TTL", "1800"),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		StaticDir:    getEnv("STATIC_DIR", "./web/dist"),
		FetchTimeout: getEnvDuration("ZVG_FETCH_TIMEOUT", 30*time.Second),
		RequestDelay: getEnvDuration("ZVG_REQUEST_DELAY", 1*time.Second),
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		logrus.Warnf("Invalid %s value: %s, using default %v", key, value, fallback)
		return fallback
	}
	return d
}
