package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// DBConfig holds database configuration. When URL is set it wins over the
// discrete fields.
type DBConfig struct {
	URL             string
	Host            string
	Port            string
	User            string
	Password        string
	Name            string
	SSLMode         string
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
}

// DSN returns the PostgreSQL connection string.
func (c *DBConfig) DSN() string {
	if c.URL != "" {
		return c.URL
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode)
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port        string
	Env         string
	FrontendURL string
}

// AdminConfig holds the administrative shared secret and token signing key.
type AdminConfig struct {
	SecretKey   string
	TokenSecret string
	TokenTTL    time.Duration
}

// Config holds all configuration for the service.
type Config struct {
	Server    ServerConfig
	DB        DBConfig
	Admin     AdminConfig
	LogLevel  string
	UploadDir string
}

// Load reads .env (if present) and the environment into a Config.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		// .env is optional; plain environment variables still apply.
		fmt.Println("no .env file found, using environment variables")
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:        getEnv("APP_PORT", "8080"),
			Env:         getEnv("APP_ENV", "development"),
			FrontendURL: getEnv("FRONTEND_URL", ""),
		},
		DB: DBConfig{
			URL:             getEnv("DATABASE_URL", ""),
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnv("DB_PORT", "5432"),
			User:            getEnv("DB_USER", "postgres"),
			Password:        getEnv("DB_PASSWORD", "password"),
			Name:            getEnv("DB_NAME", "precofacil"),
			SSLMode:         getEnv("DB_SSL_MODE", "disable"),
			MaxIdleConns:    getEnvAsInt("DB_MAX_IDLE_CONNS", 10),
			MaxOpenConns:    getEnvAsInt("DB_MAX_OPEN_CONNS", 50),
			ConnMaxLifetime: getEnvAsDuration("DB_CONN_MAX_LIFETIME", time.Hour),
		},
		Admin: AdminConfig{
			SecretKey:   getEnv("ADMIN_SECRET_KEY", ""),
			TokenSecret: getEnv("ADMIN_JWT_SECRET", ""),
			TokenTTL:    getEnvAsDuration("ADMIN_TOKEN_TTL", time.Hour),
		},
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		UploadDir: getEnv("UPLOAD_DIR", "./uploads"),
	}

	// The token secret falls back to the admin key so a minimal deployment
	// only has to configure one secret.
	if cfg.Admin.TokenSecret == "" {
		cfg.Admin.TokenSecret = cfg.Admin.SecretKey
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, err := strconv.Atoi(getEnv(key, "")); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, err := time.ParseDuration(getEnv(key, "")); err == nil {
		return value
	}
	return defaultValue
}
