package config

import (
	"os"
	"strconv"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	ServerPort        string
	MySQLDSN          string
	RedisAddr         string
	RedisDB           int
	RedisPass         string
	JWTSecret         string
	StorageURL        string
	StorageServiceKey string
	MapsAPIKey        string
	DemoMode          bool
	SwaggerHost       string
}

// Load builds Config from environment with sensible defaults.
func Load() *Config {
	return &Config{
		ServerPort:        getEnv("SERVER_PORT", "8080"),
		MySQLDSN:          getEnv("MYSQL_DSN", "user:password@tcp(localhost:3306)/smarthauling?charset=utf8mb4&parseTime=True&loc=Local"),
		RedisAddr:         getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:           getEnvInt("REDIS_DB", 0),
		RedisPass:         os.Getenv("REDIS_PASSWORD"),
		JWTSecret:         getEnv("JWT_SECRET", "change-me"),
		StorageURL:        os.Getenv("STORAGE_URL"),
		StorageServiceKey: os.Getenv("STORAGE_SERVICE_ROLE_KEY"),
		MapsAPIKey:        os.Getenv("GOOGLE_MAPS_API_KEY"),
		DemoMode:          getEnvBool("DEMO_MODE", false),
		SwaggerHost:       os.Getenv("SWAGGER_HOST"),
	}
}

// MissingVars reports which required settings are absent so startup and the
// health endpoint can surface misconfiguration instead of failing quietly.
func (c *Config) MissingVars() []string {
	var missing []string
	if c.JWTSecret == "" || c.JWTSecret == "change-me" {
		missing = append(missing, "JWT_SECRET")
	}
	if c.StorageURL == "" {
		missing = append(missing, "STORAGE_URL")
	}
	if c.StorageServiceKey == "" {
		missing = append(missing, "STORAGE_SERVICE_ROLE_KEY")
	}
	if c.MapsAPIKey == "" {
		missing = append(missing, "GOOGLE_MAPS_API_KEY")
	}
	return missing
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

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.ParseBool(v); err == nil {
			return parsed
		}
	}
	return def
}
