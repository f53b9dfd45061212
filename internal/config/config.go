// internal/config/config.go
package config

import (
	"os"
	"strconv"
	"time"

	"cyberwallet-api/pkg/db"

	"github.com/joho/godotenv"
)

// AppConfig holds all application-wide configurations.
type AppConfig struct {
	Environment string // "dev", "test" or "prod"
	ServerPort  string
	DB          db.Config

	// JWTSecret is the base64-encoded HMAC key for session tokens.
	JWTSecret string
	// JWTExpiration is the session token lifetime.
	JWTExpiration time.Duration

	// RateLimitEnabled gates the login rate limiter. Disabled outside prod so
	// test suites can hammer the login endpoint.
	RateLimitEnabled bool

	// DollarAPIBaseURL is the upstream quote provider.
	DollarAPIBaseURL string

	// BlacklistCleanupInterval is how often expired revoked tokens are purged.
	BlacklistCleanupInterval time.Duration
}

// LoadConfig loads configuration from environment variables. In dev a .env
// file is read first; real environment variables still win.
func LoadConfig() (*AppConfig, error) {
	environment := getEnv("ENV", "dev")
	if environment == "dev" {
		godotenv.Load()
	}

	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, err
	}

	jwtExpiration := 24 * time.Hour
	if ms := os.Getenv("JWT_EXPIRATION_MS"); ms != "" {
		parsed, err := strconv.ParseInt(ms, 10, 64)
		if err != nil {
			return nil, err
		}
		jwtExpiration = time.Duration(parsed) * time.Millisecond
	}

	cleanupInterval := time.Hour
	if raw := os.Getenv("BLACKLIST_CLEANUP_INTERVAL"); raw != "" {
		parsed, err := time.ParseDuration(raw)
		if err != nil {
			return nil, err
		}
		cleanupInterval = parsed
	}

	return &AppConfig{
		Environment: environment,
		ServerPort:  getEnv("SERVER_PORT", "8080"),
		DB: db.Config{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     dbPort,
			User:     getEnv("DB_USER", "cyberwallet"),
			Password: getEnv("DB_PASSWORD", "password"),
			DBName:   getEnv("DB_NAME", "cyberwallet_db"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		JWTSecret:                getEnv("JWT_SECRET", "Y3liZXJ3YWxsZXQtZGV2LXNlY3JldC1kby1ub3QtdXNlLWluLXByb2Q="),
		JWTExpiration:            jwtExpiration,
		RateLimitEnabled:         environment == "prod" || getEnv("RATE_LIMIT_ENABLED", "") == "true",
		DollarAPIBaseURL:         getEnv("DOLLAR_API_BASE_URL", "https://dolarapi.com"),
		BlacklistCleanupInterval: cleanupInterval,
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
