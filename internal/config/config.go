package config

import (
	"os" // For environment variables

	"github.com/joho/godotenv"   // For loading .env files
	"github.com/sirupsen/logrus" // Logging library
)

// Development-only fallback for the token signing secret
const devJWTSecret = "your-secret-key-change-in-production"

// Config holds the application configuration
type Config struct {
	AppPort    string // Application port
	DBUser     string // Database user
	DBPassword string // Database password
	DBHost     string // Database host
	DBPort     string // Database port
	DBName     string // Database name
	JWTSecret  string // JWT signing secret
	UploadDir  string // Directory for uploaded project files
	IsProd     bool   // Is production environment
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	_ = godotenv.Load() // Load .env file if present
	cfg := &Config{
		AppPort:    os.Getenv("APP_PORT"),          // Application port
		DBUser:     os.Getenv("DB_USER"),           // Database user
		DBPassword: os.Getenv("DB_PASSWORD"),       // Database password
		DBHost:     os.Getenv("DB_HOST"),           // Database host
		DBPort:     os.Getenv("DB_PORT"),           // Database port
		DBName:     os.Getenv("DB_NAME"),           // Database name
		JWTSecret:  os.Getenv("JWT_SECRET"),        // JWT signing secret
		UploadDir:  os.Getenv("UPLOAD_DIR"),        // Upload directory
		IsProd:     os.Getenv("IS_PROD") == "true", // Is production environment
	}
	if cfg.AppPort == "" {
		cfg.AppPort = "3000" // Default port
	}
	if cfg.UploadDir == "" {
		cfg.UploadDir = "./public/uploads" // Default upload directory
	}
	// The signing secret must be provided explicitly outside development
	if cfg.JWTSecret == "" {
		if cfg.IsProd {
			logrus.Fatal("JWT_SECRET must be set when IS_PROD=true") // Refuse to start without a secret
		}
		cfg.JWTSecret = devJWTSecret // Development fallback
	}
	return cfg
}
