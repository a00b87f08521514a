package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"
)

type Config struct {
	// Server
	Port           string
	AllowedOrigins string
	BaseURL        string // public URL prefix used when building share links

	// Recipe storage
	RecipesDir string // folder of per-recipe JSON files; point it at a synced directory

	// Sharing
	ShareSecret string
	ShareExpiry time.Duration

	// Environment
	Environment string

	// Photo import (OCR)
	OCREnabled bool

	// S3 backup (optional)
	S3Enabled   bool
	S3Endpoint  string
	S3AccessKey string
	S3SecretKey string
	S3Bucket    string
	S3UseSSL    bool
	S3Region    string
}

func Load() *Config {
	return &Config{
		Port:           getEnv("PORT", "8080"),
		AllowedOrigins: getEnv("ALLOWED_ORIGINS", "*"),
		BaseURL:        getEnv("BASE_URL", "http://localhost:8080"),
		RecipesDir:     getEnv("RECIPES_DIR", defaultRecipesDir()),
		ShareSecret:    getEnv("SHARE_SECRET", "change-me-in-production-please"),
		ShareExpiry:    getDurationEnv("SHARE_EXPIRY_HOURS", 72) * time.Hour,
		Environment:    getEnv("ENVIRONMENT", "development"),
		OCREnabled:     getBoolEnv("OCR_ENABLED", false),
		S3Enabled:      getBoolEnv("S3_ENABLED", false),
		S3Endpoint:     getEnv("S3_ENDPOINT", "localhost:3900"),
		S3AccessKey:    getEnv("S3_ACCESS_KEY", ""),
		S3SecretKey:    getEnv("S3_SECRET_KEY", ""),
		S3Bucket:       getEnv("S3_BUCKET", "recipe-backups"),
		S3UseSSL:       getBoolEnv("S3_USE_SSL", false),
		S3Region:       getEnv("S3_REGION", "garage"),
	}
}

// defaultRecipesDir is a folder under the user's home so a bare start
// works without configuration
func defaultRecipesDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "./recipes"
	}
	return filepath.Join(home, "Recipes")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue int) time.Duration {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return time.Duration(intVal)
		}
	}
	return time.Duration(defaultValue)
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
