package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	Host               string
	Port               string
	User               string
	Password           string
	Name               string
	SSLMode            string
	ApplicationName    string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeSec int
}

// MinIOConfig holds object storage settings for published exports.
type MinIOConfig struct {
	Endpoint      string
	AccessKey     string
	SecretKey     string
	Bucket        string
	UseSSL        bool
	PresignExpiry time.Duration
}

// RenderConfig controls the document renderer.
// Font fields are candidate paths tried in order; the built-in Go fonts are the last resort.
type RenderConfig struct {
	Density       float64
	BitmapDPI     float64
	TempDir       string
	MaxConcurrent int
	FontRegular   []string
	FontBold      []string
	FontSymbol    []string
}

// AIConfig locates the text transformation service.
type AIConfig struct {
	ServiceURL    string
	Timeout       time.Duration
	RetryAttempts int
}

// AppConfig is the centralized configuration struct for the application.
type AppConfig struct {
	AppHost  string
	Port     string
	TimeZone string
	LogLevel string

	// TemplateSource is "db" (seeded table) or "embedded" (in-memory assets).
	TemplateSource string
	Database       DatabaseConfig
	MinIO          MinIOConfig
	Render         RenderConfig
	AI             AIConfig
}

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
func Load() *AppConfig {
	return &AppConfig{
		AppHost:        getEnv("APP_HOST", "localhost:8080"),
		Port:           getEnv("PORT", "8080"),
		TimeZone:       getEnv("TZ", "Asia/Ho_Chi_Minh"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		TemplateSource: strings.ToLower(getEnv("TEMPLATE_SOURCE", "db")),
		Database: DatabaseConfig{
			Host:               getEnv("DB_HOST", ""),
			Port:               getEnv("DB_PORT", "5432"),
			User:               getEnv("DB_USER", ""),
			Password:           getEnv("DB_PASSWORD", ""),
			Name:               getEnv("DB_NAME", ""),
			SSLMode:            getEnv("DB_SSLMODE", "disable"),
			ApplicationName:    getEnv("DB_APPLICATION_NAME", "cvdoc"),
			MaxOpenConns:       getEnvInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:       getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetimeSec: getEnvInt("DB_CONN_MAX_LIFETIME_SEC", 300),
		},
		MinIO: MinIOConfig{
			Endpoint:      getEnv("MINIO_ENDPOINT", ""),
			AccessKey:     getEnv("MINIO_ACCESS_KEY", ""),
			SecretKey:     getEnv("MINIO_SECRET_KEY", ""),
			Bucket:        getEnv("MINIO_BUCKET", ""),
			UseSSL:        getEnvBool("MINIO_USE_SSL", false),
			PresignExpiry: time.Duration(getEnvInt("MINIO_PRESIGN_EXPIRY_SEC", 900)) * time.Second,
		},
		Render: RenderConfig{
			Density:       getEnvFloat("RENDER_DENSITY", 72),
			BitmapDPI:     getEnvFloat("RENDER_BITMAP_DPI", 300),
			TempDir:       getEnv("RENDER_TEMP_DIR", ""),
			MaxConcurrent: getEnvInt("RENDER_MAX_CONCURRENT", 4),
			FontRegular:   getEnvList("RENDER_FONT_REGULAR", []string{"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf"}),
			FontBold:      getEnvList("RENDER_FONT_BOLD", []string{"/usr/share/fonts/truetype/dejavu/DejaVuSans-Bold.ttf"}),
			FontSymbol:    getEnvList("RENDER_FONT_SYMBOL", []string{"/usr/share/fonts/truetype/noto/NotoEmoji-Regular.ttf"}),
		},
		AI: AIConfig{
			ServiceURL:    getEnv("AI_SERVICE_URL", "http://ai-service:8000"),
			Timeout:       time.Duration(getEnvInt("AI_TIMEOUT_SEC", 60)) * time.Second,
			RetryAttempts: getEnvInt("AI_RETRY_ATTEMPTS", 3),
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

func getEnvFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err == nil && f > 0 {
			return f
		}
	}
	return def
}

// getEnvList splits a comma separated value, dropping blanks.
func getEnvList(key string, def []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	var out []string
	for _, p := range strings.Split(v, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}
