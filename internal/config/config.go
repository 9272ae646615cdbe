package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	Server ServerConfig

	// Database configuration
	Database DatabaseConfig

	// GitHub token verification
	GitHub GitHubConfig

	// Rate limiting configuration
	RateLimit RateLimitConfig

	// Article creation secret
	ArticlePassword string

	// Origin allowed to call the API
	CORSOrigin string
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration

	// MaxBodyBytes is the hard cap on buffered request bodies.
	// Exceeding it kills the connection.
	MaxBodyBytes int64
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	// URL, when set, wins over the discrete fields
	URL          string
	Host         string
	Port         string
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
	MaxLifetime  time.Duration
}

// GitHubConfig holds token verification settings
type GitHubConfig struct {
	APIBaseURL string
	Timeout    time.Duration
}

// RateLimitConfig holds throttling settings
type RateLimitConfig struct {
	CommentCooldown  time.Duration
	AttemptThreshold int
	AttemptWindow    time.Duration
	ThrottleRPS      float64
	ThrottleBurst    int
	SweepEvery       time.Duration
}

// Load reads configuration from environment variables.
// A .env file in the working directory is loaded first if present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Port:            getEnv("PORT", "8080"),
			ReadTimeout:     getDurationEnv("SERVER_READ_TIMEOUT", 30*time.Second),
			WriteTimeout:    getDurationEnv("SERVER_WRITE_TIMEOUT", 30*time.Second),
			ShutdownTimeout: getDurationEnv("SERVER_SHUTDOWN_TIMEOUT", 30*time.Second),
			MaxBodyBytes:    getInt64Env("MAX_BODY_BYTES", 1_000_000),
		},
		Database: DatabaseConfig{
			URL:          getEnv("DATABASE_URL", ""),
			Host:         getEnv("DB_HOST", "localhost"),
			Port:         getEnv("DB_PORT", "5432"),
			User:         getEnv("DB_USER", "postgres"),
			Password:     getEnv("DB_PASSWORD", "postgres"),
			Name:         getEnv("DB_NAME", "blog"),
			SSLMode:      getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns: getIntEnv("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns: getIntEnv("DB_MAX_IDLE_CONNS", 5),
			MaxLifetime:  getDurationEnv("DB_MAX_LIFETIME", 5*time.Minute),
		},
		GitHub: GitHubConfig{
			APIBaseURL: getEnv("GITHUB_API_URL", "https://api.github.com"),
			Timeout:    getDurationEnv("GITHUB_TIMEOUT", 10*time.Second),
		},
		RateLimit: RateLimitConfig{
			CommentCooldown:  getDurationEnv("COMMENT_COOLDOWN", 20*time.Second),
			AttemptThreshold: getIntEnv("PASSWORD_ATTEMPT_THRESHOLD", 3),
			AttemptWindow:    getDurationEnv("PASSWORD_ATTEMPT_WINDOW", 30*time.Second),
			ThrottleRPS:      getFloatEnv("THROTTLE_RPS", 5),
			ThrottleBurst:    getIntEnv("THROTTLE_BURST", 10),
			SweepEvery:       getDurationEnv("RATELIMIT_SWEEP_EVERY", 2*time.Minute),
		},
		ArticlePassword: getEnv("PASSWORD", ""),
		CORSOrigin:      getEnv("CORS_ORIGIN", "http://icelolly.ddns.net:466"),
	}

	// Validate required configuration
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Database.URL == "" && c.Database.Host == "" {
		return fmt.Errorf("DATABASE_URL or DB_HOST is required")
	}
	if c.ArticlePassword == "" {
		return fmt.Errorf("PASSWORD is required")
	}
	return nil
}

// GetDSN returns the PostgreSQL connection string
func (c *DatabaseConfig) GetDSN() string {
	if c.URL != "" {
		return c.URL
	}
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode,
	)
}

// Helper functions for environment variable parsing

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getInt64Env(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getFloatEnv(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
