package config

import (
	"os"
	"strconv"
)

// GeminiConfig holds the vision service settings.
type GeminiConfig struct {
	APIKey     string
	BaseURL    string
	Model      string
	TimeoutSec int
}

// SheetsConfig holds the Apps Script endpoint settings. SecretKey is the
// shared static string the deployed script checks; authorization beyond
// that is the script's concern, not ours.
type SheetsConfig struct {
	ScriptURL  string
	SecretKey  string
	TimeoutSec int
}

// MinIOConfig holds object storage settings for the optional photo archive.
// An empty Endpoint disables archiving.
type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// AppConfig is the centralized configuration struct for the application.
// It is populated from environment variables. Sensitive values are not hardcoded.
type AppConfig struct {
	Port           string
	MaxUploadMB    int
	EnhanceUploads bool
	Gemini         GeminiConfig
	Sheets         SheetsConfig
	MinIO          MinIOConfig
}

// ArchiveEnabled reports whether the photo archive is configured.
func (c *AppConfig) ArchiveEnabled() bool {
	return c.MinIO.Endpoint != ""
}

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
// This function does not require a .env file; real environment variables take precedence.
func Load() *AppConfig {
	return &AppConfig{
		Port:           getEnv("PORT", "8080"),
		MaxUploadMB:    getEnvInt("MAX_UPLOAD_MB", 10),
		EnhanceUploads: getEnvBool("ENHANCE_UPLOADS", false),
		Gemini: GeminiConfig{
			APIKey:     getEnv("GEMINI_API_KEY", ""),
			BaseURL:    getEnv("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com"),
			Model:      getEnv("GEMINI_MODEL", "gemini-1.5-flash"),
			TimeoutSec: getEnvInt("GEMINI_TIMEOUT_SEC", 60),
		},
		Sheets: SheetsConfig{
			ScriptURL:  getEnv("GOOGLE_APPS_SCRIPT_URL", ""),
			SecretKey:  getEnv("SHEETS_SECRET_KEY", "abc123"),
			TimeoutSec: getEnvInt("SHEETS_TIMEOUT_SEC", 30),
		},
		MinIO: MinIOConfig{
			Endpoint:  getEnv("MINIO_ENDPOINT", ""),
			AccessKey: getEnv("MINIO_ACCESS_KEY", ""),
			SecretKey: getEnv("MINIO_SECRET_KEY", ""),
			Bucket:    getEnv("MINIO_BUCKET", "challan-photos"),
			UseSSL:    getEnvBool("MINIO_USE_SSL", false),
		},
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err == nil {
			return i
		}
	}
	return def
}
