// Package config loads process configuration from the environment.
package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds the application's configuration values.
type Config struct {
	HostIP          string // Host IP for the server
	RESTPort        int    // Port for the REST API
	DBHost          string // Hostname or IP address for the database
	DBPort          int    // Port number for the database
	DBUser          string // Username for the database
	DBPassword      string // Password for the database
	DBName          string // Name of the database
	RedisAddr       string // host:port of the maze cache
	RedisPassword   string // Password for the maze cache
	CacheTTLSeconds int    // Lifetime of cached maze documents
	GinMode         string // Mode for the Gin framework (e.g., release, debug, test)
	JWTSecret       string // Secret key for JWT signing
	JWTIssuer       string // Issuer claim for JWTs
	OutputDir       string // Directory batch exports are written to
	PresetsFile     string // Optional YAML file with extra difficulty presets
	Workers         int    // Concurrent builds per batch
	MaxBatchCount   int    // Upper bound on mazes per batch request
	LogLevel        string // logrus level name
}

// Load reads an optional .env file and builds a Config, filling defaults
// for anything unset.
func Load() (Config, error) {
	// Load .env file if available
	if err := godotenv.Load(); err != nil {
		log.Printf("[APP] [INFO] .env file not found or could not be loaded: %v", err)
	}

	var errs []error
	intEnv := func(key string, defaultValue int) int {
		v, err := getEnvAsIntWithDefault(key, defaultValue)
		if err != nil {
			errs = append(errs, err)
		}
		return v
	}

	c := Config{
		HostIP:          getEnvWithDefault("HOST_IP", "0.0.0.0"),
		RESTPort:        intEnv("REST_PORT", 8080),
		DBHost:          getEnvWithDefault("DB_HOST", "localhost"),
		DBPort:          intEnv("DB_PORT", 27017),
		DBUser:          getEnvWithDefault("DB_USER", ""),
		DBPassword:      getEnvWithDefault("DB_PASS", ""),
		DBName:          getEnvWithDefault("DB_NAME", "mazegen"),
		RedisAddr:       getEnvWithDefault("REDIS_ADDR", "localhost:6379"),
		RedisPassword:   getEnvWithDefault("REDIS_PASS", ""),
		CacheTTLSeconds: intEnv("CACHE_TTL_SECONDS", 3600),
		GinMode:         getEnvWithDefault("GIN_MODE", "release"),
		JWTSecret:       getEnvWithDefault("JWT_SECRET", ""),
		JWTIssuer:       getEnvWithDefault("JWT_ISSUER", "mazegen"),
		OutputDir:       getEnvWithDefault("OUTPUT_DIR", "./mazes"),
		PresetsFile:     getEnvWithDefault("PRESETS_FILE", ""),
		Workers:         intEnv("WORKERS", 4),
		MaxBatchCount:   intEnv("MAX_BATCH_COUNT", 100),
		LogLevel:        getEnvWithDefault("LOG_LEVEL", "info"),
	}

	if len(errs) > 0 {
		return Config{}, errs[0]
	}
	return c, nil
}

// MongoURI builds the connection string for the maze repository.
func (c Config) MongoURI() string {
	if c.DBUser == "" {
		return fmt.Sprintf("mongodb://%s:%d", c.DBHost, c.DBPort)
	}
	return fmt.Sprintf("mongodb://%s:%s@%s:%d", c.DBUser, c.DBPassword, c.DBHost, c.DBPort)
}

// MustGetEnv retrieves the value of an environment variable or logs a fatal error if not set.
func MustGetEnv(key string) string {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		log.Fatalf("[APP] [FATAL] Environment variable %s is not set", key)
	}
	return value
}

// getEnvAsIntWithDefault retrieves an integer environment variable, falling back to defaultValue when unset.
func getEnvAsIntWithDefault(key string, defaultValue int) (int, error) {
	valueStr, exists := os.LookupEnv(key)
	if !exists || valueStr == "" {
		return defaultValue, nil
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return 0, fmt.Errorf("environment variable %s must be an integer: %w", key, err)
	}
	return value, nil
}

// getEnvWithDefault retrieves the value of an environment variable or returns a default value if not set.
func getEnvWithDefault(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
