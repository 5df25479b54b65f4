// ============================================================================
// backend/internal/shared/config.go
// Configuration management and environment variable helpers
// ============================================================================

package shared

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// ============================================================================
// Configuration Structs
// ============================================================================

// ServiceConfig holds configuration for the reports service.
type ServiceConfig struct {
	ServiceName string
	HTTPPort    string
	Environment string // development, staging, production
	LogLevel    string // debug, info, warn, error

	// MongoDB Configuration
	MongoDB MongoConfig

	// CORS Configuration
	CORS CORSConfig

	// Per-request ceiling for store reads
	RequestTimeout time.Duration
}

// CORSConfig holds CORS-related configuration for the HTTP surface.
type CORSConfig struct {
	AllowedOrigins   []string
	AllowedMethods   []string
	AllowedHeaders   []string
	AllowCredentials bool
	MaxAge           int // in seconds
}

// ============================================================================
// Configuration Loading Functions
// ============================================================================

// LoadEnv loads environment variables from a .env file.
func LoadEnv(envFile string) error {
	if envFile == "" {
		envFile = ".env"
	}

	if err := godotenv.Load(envFile); err != nil {
		log.Printf("Warning: %s file not found, using system environment variables", envFile)
		return err
	}

	log.Printf("Successfully loaded environment from %s", envFile)
	return nil
}

// LoadServiceConfig loads service configuration from the environment.
func LoadServiceConfig(serviceName string) (*ServiceConfig, error) {
	config := &ServiceConfig{
		ServiceName:    serviceName,
		HTTPPort:       GetEnv("HTTP_PORT", "8080"),
		Environment:    GetEnv("ENVIRONMENT", "development"),
		LogLevel:       GetEnv("LOG_LEVEL", "info"),
		RequestTimeout: GetDurationEnv("REQUEST_TIMEOUT", 10*time.Second),
	}

	mongoURI := GetEnv("MONGO_URI", "")
	if mongoURI == "" {
		return nil, fmt.Errorf("MONGO_URI environment variable is required")
	}

	config.MongoDB = MongoConfig{
		URI:            mongoURI,
		Database:       GetEnv("MONGO_DB_NAME", "SchoolReports"),
		ConnectTimeout: GetDurationEnv("MONGO_CONNECT_TIMEOUT", 20*time.Second),
		MaxPoolSize:    uint64(GetIntEnv("MONGO_MAX_POOL_SIZE", 50)),
		MinPoolSize:    uint64(GetIntEnv("MONGO_MIN_POOL_SIZE", 10)),
		MaxIdleTime:    GetDurationEnv("MONGO_MAX_IDLE_TIME", 30*time.Second),
	}

	config.CORS = CORSConfig{
		AllowedOrigins:   GetSliceEnv("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000", "http://localhost:5173"}),
		AllowedMethods:   []string{"GET", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: GetBoolEnv("CORS_ALLOW_CREDENTIALS", true),
		MaxAge:           GetIntEnv("CORS_MAX_AGE", 300),
	}

	return config, nil
}

// ============================================================================
// Environment Variable Helpers
// ============================================================================

// GetEnv returns the value of an environment variable or a default.
func GetEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// GetIntEnv returns an integer environment variable or a default.
func GetIntEnv(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	parsed, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Warning: invalid integer for %s (%q), using default %d", key, value, defaultValue)
		return defaultValue
	}
	return parsed
}

// GetBoolEnv returns a boolean environment variable or a default.
func GetBoolEnv(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	parsed, err := strconv.ParseBool(value)
	if err != nil {
		log.Printf("Warning: invalid boolean for %s (%q), using default %t", key, value, defaultValue)
		return defaultValue
	}
	return parsed
}

// GetDurationEnv returns a duration environment variable or a default.
func GetDurationEnv(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	parsed, err := time.ParseDuration(value)
	if err != nil {
		log.Printf("Warning: invalid duration for %s (%q), using default %s", key, value, defaultValue)
		return defaultValue
	}
	return parsed
}

// GetSliceEnv returns a comma-separated environment variable or a default.
func GetSliceEnv(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	if len(result) == 0 {
		return defaultValue
	}
	return result
}
