package config

import (
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Database DatabaseConfig
	Server   ServerConfig
	AWS      AWSConfig
	Ingest   IngestConfig
}

// DatabaseConfig holds database configuration. An empty URL disables the
// dataset catalog.
type DatabaseConfig struct {
	URL string
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port           string
	Env            string
	AllowedOrigins []string
}

// AWSConfig holds AWS/S3 configuration. An empty bucket disables the
// raw-file archive.
type AWSConfig struct {
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	S3Bucket        string
	S3Endpoint      string
}

// IngestConfig holds ingestion limits
type IngestConfig struct {
	MaxUploadBytes int64
	PreviewRows    int
}

// Load loads configuration from environment variables and .env files
func Load() (*Config, error) {
	// Set defaults
	viper.SetDefault("DATABASE_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("ENVIRONMENT", "dev")
	viper.SetDefault("AWS_REGION", "us-east-1")
	viper.SetDefault("AWS_ACCESS_KEY_ID", "")
	viper.SetDefault("AWS_SECRET_ACCESS_KEY", "")
	viper.SetDefault("S3_BUCKET", "")
	viper.SetDefault("S3_ENDPOINT", "")
	viper.SetDefault("ALLOWED_ORIGINS", "http://localhost:5173,http://localhost:3000")
	viper.SetDefault("MAX_UPLOAD_BYTES", int64(20<<20))
	viper.SetDefault("PREVIEW_ROWS", 100)

	// Try to read .env file for the current environment
	env := viper.GetString("ENVIRONMENT")
	if env == "" {
		env = "dev"
	}
	viper.SetConfigName(".env." + env)
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	_ = viper.ReadInConfig() // Ignore error - file may not exist

	// Environment variables override .env file values
	viper.AutomaticEnv()

	viper.BindEnv("DATABASE_URL")
	viper.BindEnv("PORT")
	viper.BindEnv("ENVIRONMENT")
	viper.BindEnv("AWS_REGION")
	viper.BindEnv("AWS_ACCESS_KEY_ID")
	viper.BindEnv("AWS_SECRET_ACCESS_KEY")
	viper.BindEnv("S3_BUCKET")
	viper.BindEnv("S3_ENDPOINT")
	viper.BindEnv("ALLOWED_ORIGINS")
	viper.BindEnv("MAX_UPLOAD_BYTES")
	viper.BindEnv("PREVIEW_ROWS")

	var config Config
	config.Database.URL = viper.GetString("DATABASE_URL")
	config.Server.Port = viper.GetString("PORT")
	config.Server.Env = viper.GetString("ENVIRONMENT")
	config.Server.AllowedOrigins = strings.Split(viper.GetString("ALLOWED_ORIGINS"), ",")
	config.AWS.Region = viper.GetString("AWS_REGION")
	config.AWS.AccessKeyID = viper.GetString("AWS_ACCESS_KEY_ID")
	config.AWS.SecretAccessKey = viper.GetString("AWS_SECRET_ACCESS_KEY")
	config.AWS.S3Bucket = viper.GetString("S3_BUCKET")
	config.AWS.S3Endpoint = viper.GetString("S3_ENDPOINT")
	config.Ingest.MaxUploadBytes = viper.GetInt64("MAX_UPLOAD_BYTES")
	config.Ingest.PreviewRows = viper.GetInt("PREVIEW_ROWS")

	return &config, nil
}
