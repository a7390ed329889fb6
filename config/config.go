package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"resourcehub/storage"
)

type Config struct {
	// Server Configuration
	Port        string
	Environment string
	Debug       bool

	// Database Configuration
	MongoURI string
	DBName   string

	// JWT Configuration
	JWTSecret        string
	JWTRefreshSecret string

	// Storage Configuration
	Storage        storage.Config
	StorageTimeout time.Duration

	// Security Configuration
	CORSAllowedOrigins []string

	// Application Configuration
	AppName    string
	AppVersion string
}

// LoadConfig loads configuration from environment variables. A .env file
// is honored when present.
func LoadConfig() *Config {
	_ = godotenv.Load()

	return &Config{
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),
		Debug:       getEnvAsBool("DEBUG", true),

		MongoURI: getEnv("MONGO_URI", "mongodb://localhost:27017"),
		DBName:   getEnv("DB_NAME", "resourcehub"),

		JWTSecret:        getEnv("JWT_SECRET", "your-super-secret-jwt-key-change-in-production"),
		JWTRefreshSecret: getEnv("JWT_REFRESH_SECRET", "your-refresh-secret-key-change-in-production"),

		Storage: storage.Config{
			Provider: getEnv("STORAGE_PROVIDER", "local"),
			S3: storage.S3Config{
				Bucket:    getEnv("S3_BUCKET", ""),
				Region:    getEnv("S3_REGION", "us-east-1"),
				AccessKey: getEnv("S3_ACCESS_KEY", ""),
				SecretKey: getEnv("S3_SECRET_KEY", ""),
				Endpoint:  getEnv("S3_ENDPOINT", ""),
				BaseURL:   getEnv("S3_BASE_URL", ""),
			},
			LocalPath:    getEnv("UPLOAD_PATH", "./uploads"),
			LocalBaseURL: getEnv("UPLOAD_BASE_URL", "http://localhost:8080/uploads"),
		},
		StorageTimeout: getEnvAsDuration("STORAGE_TIMEOUT", 30*time.Second),

		CORSAllowedOrigins: []string{getEnv("CORS_ALLOWED_ORIGINS", "*")},

		AppName:    getEnv("APP_NAME", "ResourceHub"),
		AppVersion: getEnv("APP_VERSION", "1.0.0"),
	}
}

// ValidateConfig checks settings that have no safe default.
func (c *Config) ValidateConfig() error {
	if c.Storage.Provider == "s3" && c.Storage.S3.Bucket == "" {
		return fmt.Errorf("S3_BUCKET is required when STORAGE_PROVIDER=s3")
	}
	if c.IsProduction() && c.JWTSecret == "your-super-secret-jwt-key-change-in-production" {
		return fmt.Errorf("JWT_SECRET must be set in production")
	}
	return nil
}

// IsProduction returns true when running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// GetServerAddress returns the listen address for the HTTP server.
func (c *Config) GetServerAddress() string {
	return ":" + c.Port
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
