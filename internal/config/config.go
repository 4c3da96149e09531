package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	DB        DBConfig
	JWT       JWTConfig
	Redis     RedisConfig
	S3        S3Config
	Email     EmailConfig
	Log       LogConfig
	CORS      CORSConfig
	Dashboard DashboardConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// JWTConfig holds JWT signing and expiry settings.
type JWTConfig struct {
	Secret             string        `mapstructure:"secret"`
	AccessTokenExpiry  time.Duration `mapstructure:"access_expiry"`
	RefreshTokenExpiry time.Duration `mapstructure:"refresh_expiry"`
	Issuer             string        `mapstructure:"issuer"`
}

// RedisConfig holds notification channel settings.
type RedisConfig struct {
	URL     string `mapstructure:"url"`
	Enabled bool   `mapstructure:"enabled"`
}

// S3Config holds attachment storage settings.
type S3Config struct {
	Region        string `mapstructure:"region"`
	Bucket        string `mapstructure:"bucket"`
	Endpoint      string `mapstructure:"endpoint"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	MaxFileSizeMB int64  `mapstructure:"max_file_size_mb"`
	PresignExpiry int64  `mapstructure:"presign_expiry"`
}

// EmailConfig holds email delivery settings.
type EmailConfig struct {
	Provider    string `mapstructure:"provider"`
	Region      string `mapstructure:"region"`
	FromAddress string `mapstructure:"from_address"`
	FromName    string `mapstructure:"from_name"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// DashboardConfig holds reporting settings.
type DashboardConfig struct {
	UpcomingWindowDays int `mapstructure:"upcoming_window_days"`
	ListLimit          int `mapstructure:"list_limit"`
}

// Load reads configuration from environment variables with the DOCFLOW_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("DOCFLOW")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.environment", "development")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "docflow")
	v.SetDefault("db.password", "docflow_secret")
	v.SetDefault("db.name", "docflow_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// JWT defaults
	v.SetDefault("jwt.secret", "change-me-in-production")
	v.SetDefault("jwt.access_expiry", "15m")
	v.SetDefault("jwt.refresh_expiry", "168h")
	v.SetDefault("jwt.issuer", "docflow")

	// Redis defaults
	v.SetDefault("redis.url", "redis://localhost:6379/0")
	v.SetDefault("redis.enabled", false)

	// S3 defaults
	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.bucket", "docflow-attachments")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.max_file_size_mb", 50)
	v.SetDefault("s3.presign_expiry", 3600)

	// Email defaults
	v.SetDefault("email.provider", "noop")
	v.SetDefault("email.region", "us-east-1")
	v.SetDefault("email.from_address", "noreply@docflow.local")
	v.SetDefault("email.from_name", "DocFlow")

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// Dashboard defaults
	v.SetDefault("dashboard.upcoming_window_days", 7)
	v.SetDefault("dashboard.list_limit", 50)

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":                    "DOCFLOW_SERVER_PORT",
		"server.read_timeout":            "DOCFLOW_SERVER_READ_TIMEOUT",
		"server.write_timeout":           "DOCFLOW_SERVER_WRITE_TIMEOUT",
		"server.environment":             "DOCFLOW_SERVER_ENVIRONMENT",
		"db.host":                        "DOCFLOW_DB_HOST",
		"db.port":                        "DOCFLOW_DB_PORT",
		"db.user":                        "DOCFLOW_DB_USER",
		"db.password":                    "DOCFLOW_DB_PASSWORD",
		"db.name":                        "DOCFLOW_DB_NAME",
		"db.sslmode":                     "DOCFLOW_DB_SSLMODE",
		"db.max_open":                    "DOCFLOW_DB_MAX_OPEN",
		"db.max_idle":                    "DOCFLOW_DB_MAX_IDLE",
		"jwt.secret":                     "DOCFLOW_JWT_SECRET",
		"jwt.access_expiry":              "DOCFLOW_JWT_ACCESS_EXPIRY",
		"jwt.refresh_expiry":             "DOCFLOW_JWT_REFRESH_EXPIRY",
		"jwt.issuer":                     "DOCFLOW_JWT_ISSUER",
		"redis.url":                      "DOCFLOW_REDIS_URL",
		"redis.enabled":                  "DOCFLOW_REDIS_ENABLED",
		"s3.region":                      "DOCFLOW_S3_REGION",
		"s3.bucket":                      "DOCFLOW_S3_BUCKET",
		"s3.endpoint":                    "DOCFLOW_S3_ENDPOINT",
		"s3.access_key":                  "DOCFLOW_S3_ACCESS_KEY",
		"s3.secret_key":                  "DOCFLOW_S3_SECRET_KEY",
		"s3.max_file_size_mb":            "DOCFLOW_S3_MAX_FILE_SIZE_MB",
		"s3.presign_expiry":              "DOCFLOW_S3_PRESIGN_EXPIRY",
		"email.provider":                 "DOCFLOW_EMAIL_PROVIDER",
		"email.region":                   "DOCFLOW_EMAIL_REGION",
		"email.from_address":             "DOCFLOW_EMAIL_FROM_ADDRESS",
		"email.from_name":                "DOCFLOW_EMAIL_FROM_NAME",
		"log.level":                      "DOCFLOW_LOG_LEVEL",
		"log.format":                     "DOCFLOW_LOG_FORMAT",
		"cors.allowed_origins":           "DOCFLOW_CORS_ALLOWED_ORIGINS",
		"dashboard.upcoming_window_days": "DOCFLOW_DASHBOARD_UPCOMING_WINDOW_DAYS",
		"dashboard.list_limit":           "DOCFLOW_DASHBOARD_LIST_LIMIT",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if DOCFLOW_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("DOCFLOW_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.DB = DBConfig{
		Host:     v.GetString("db.host"),
		Port:     v.GetInt("db.port"),
		User:     v.GetString("db.user"),
		Password: v.GetString("db.password"),
		Name:     v.GetString("db.name"),
		SSLMode:  v.GetString("db.sslmode"),
		MaxOpen:  v.GetInt("db.max_open"),
		MaxIdle:  v.GetInt("db.max_idle"),
	}
	cfg.JWT = JWTConfig{
		Secret:             v.GetString("jwt.secret"),
		AccessTokenExpiry:  v.GetDuration("jwt.access_expiry"),
		RefreshTokenExpiry: v.GetDuration("jwt.refresh_expiry"),
		Issuer:             v.GetString("jwt.issuer"),
	}
	cfg.Redis = RedisConfig{
		URL:     v.GetString("redis.url"),
		Enabled: v.GetBool("redis.enabled"),
	}
	cfg.S3 = S3Config{
		Region:        v.GetString("s3.region"),
		Bucket:        v.GetString("s3.bucket"),
		Endpoint:      v.GetString("s3.endpoint"),
		AccessKey:     v.GetString("s3.access_key"),
		SecretKey:     v.GetString("s3.secret_key"),
		MaxFileSizeMB: v.GetInt64("s3.max_file_size_mb"),
		PresignExpiry: v.GetInt64("s3.presign_expiry"),
	}
	cfg.Email = EmailConfig{
		Provider:    v.GetString("email.provider"),
		Region:      v.GetString("email.region"),
		FromAddress: v.GetString("email.from_address"),
		FromName:    v.GetString("email.from_name"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}

	// Parse CORS allowed origins from comma-separated string
	var corsOrigins []string
	for _, o := range strings.Split(v.GetString("cors.allowed_origins"), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			corsOrigins = append(corsOrigins, o)
		}
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: corsOrigins,
	}

	cfg.Dashboard = DashboardConfig{
		UpcomingWindowDays: v.GetInt("dashboard.upcoming_window_days"),
		ListLimit:          v.GetInt("dashboard.list_limit"),
	}

	return cfg, nil
}
