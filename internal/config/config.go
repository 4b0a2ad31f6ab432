package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// Server
	Port        string
	Environment string

	// Remote business API
	APIURL            string
	APIConnectTimeout time.Duration
	APIReadTimeout    time.Duration
	APIVerboseLog     bool

	// Session store
	RedisURL          string
	SessionTTL        time.Duration
	SessionCookieName string

	// CORS
	CORSOrigins []string

	// Rate Limiting
	RateLimitRequests int
	RateLimitWindow   int
	RateLimitBurst    int

	// Features
	EnableMetrics bool

	// Site Meta
	SiteName string
}

func New() *Config {
	return &Config{
		// Server
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),

		// Remote business API
		APIURL:            strings.TrimRight(getEnv("API_URL", "http://localhost:8081/api"), "/"),
		APIConnectTimeout: time.Duration(getEnvAsInt("API_CONNECT_TIMEOUT_MS", 5000)) * time.Millisecond,
		APIReadTimeout:    time.Duration(getEnvAsInt("API_READ_TIMEOUT_MS", 10000)) * time.Millisecond,
		APIVerboseLog:     getEnvAsBool("API_VERBOSE_LOG", false),

		// Session store
		RedisURL:          getEnv("REDIS_URL", "localhost:6379"),
		SessionTTL:        time.Duration(getEnvAsInt("SESSION_TTL_MINUTES", 30)) * time.Minute,
		SessionCookieName: getEnv("SESSION_COOKIE_NAME", "vesta_session"),

		// CORS
		CORSOrigins: strings.Split(getEnv("CORS_ORIGINS", "http://localhost:3000,http://localhost:8080"), ","),

		// Rate Limiting
		RateLimitRequests: getEnvAsInt("RATE_LIMIT_REQUESTS", 100),
		RateLimitWindow:   getEnvAsInt("RATE_LIMIT_WINDOW", 60),
		RateLimitBurst:    getEnvAsInt("RATE_LIMIT_BURST", 0),

		// Features
		EnableMetrics: getEnvAsBool("ENABLE_METRICS", true),

		// Site Meta
		SiteName: getEnv("SITE_NAME", "Vesta Seguros"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}
