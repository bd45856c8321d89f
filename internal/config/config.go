// Package config loads the storefront configuration from an optional YAML
// file plus environment overrides. A .env file is honoured for local runs.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/udvasito/storefront/internal/logging"
)

// ServerConfig holds the HTTP listener settings.
type ServerConfig struct {
	Host           string `yaml:"host"`
	Port           int    `yaml:"port"`
	ReadTimeout    int    `yaml:"read_timeout"`  // seconds
	WriteTimeout   int    `yaml:"write_timeout"` // seconds
	IdleTimeout    int    `yaml:"idle_timeout"`  // seconds
	AllowedOrigins string `yaml:"allowed_origins"`
	RateLimit      int    `yaml:"rate_limit"` // requests per second per client, 0 disables
	RateBurst      int    `yaml:"rate_burst"`
}

// DatabaseConfig holds the relational datastore settings. An empty DSN keeps
// the server on the in-memory store.
type DatabaseConfig struct {
	Driver          string `yaml:"driver"`
	DSN             string `yaml:"dsn"`
	MaxOpenConns    int    `yaml:"max_open_conns"`
	MaxIdleConns    int    `yaml:"max_idle_conns"`
	ConnMaxLifetime int    `yaml:"conn_max_lifetime"` // seconds
}

// EmailConfig identifies the transactional-email provider: a template, an
// authorization key, and the addresses the order notification travels
// between.
type EmailConfig struct {
	APIKey     string `yaml:"api_key"`
	TemplateID string `yaml:"template_id"`
	From       string `yaml:"from"`
	To         string `yaml:"to"`
}

// ImageHostConfig identifies the hosted object store that serves uploaded
// cover images.
type ImageHostConfig struct {
	Bucket        string `yaml:"bucket"`
	Folder        string `yaml:"folder"`
	PublicBaseURL string `yaml:"public_base_url"`
}

// AdminConfig gates the content-management surface. The password is a single
// shared credential supplied by the operator; an empty password disables the
// admin guard entirely.
type AdminConfig struct {
	Password  string `yaml:"password"`
	JWTSecret string `yaml:"jwt_secret"`
}

// Config is the full configuration surface.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Email     EmailConfig     `yaml:"email"`
	ImageHost ImageHostConfig `yaml:"image_host"`
	Admin     AdminConfig     `yaml:"admin"`
	Logging   logging.Config  `yaml:"logging"`
}

// Load reads CONFIG_PATH (when set) and applies environment overrides.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := defaults()

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}

	applyEnv(cfg)

	if cfg.Database.DSN != "" && cfg.Database.Driver == "" {
		cfg.Database.Driver = "postgres"
	}
	return cfg, nil
}

func defaults() *Config {
	return &Config{
		Server: ServerConfig{
			Host:           "0.0.0.0",
			Port:           8080,
			ReadTimeout:    30,
			WriteTimeout:   30,
			IdleTimeout:    120,
			AllowedOrigins: "*",
		},
		ImageHost: ImageHostConfig{
			Folder:        "uploads",
			PublicBaseURL: "https://storage.googleapis.com",
		},
		Logging: logging.Config{Level: "info", Format: "text"},
	}
}

func applyEnv(cfg *Config) {
	setString(&cfg.Server.Host, "SERVER_HOST")
	setInt(&cfg.Server.Port, "SERVER_PORT")
	setString(&cfg.Server.AllowedOrigins, "CORS_ALLOWED_ORIGINS")
	setInt(&cfg.Server.RateLimit, "RATE_LIMIT")
	setInt(&cfg.Server.RateBurst, "RATE_BURST")

	setString(&cfg.Database.Driver, "DATABASE_DRIVER")
	setString(&cfg.Database.DSN, "DATABASE_URL")
	setInt(&cfg.Database.MaxOpenConns, "DATABASE_MAX_OPEN_CONNS")
	setInt(&cfg.Database.MaxIdleConns, "DATABASE_MAX_IDLE_CONNS")
	setInt(&cfg.Database.ConnMaxLifetime, "DATABASE_CONN_MAX_LIFETIME")

	setString(&cfg.Email.APIKey, "EMAIL_API_KEY")
	setString(&cfg.Email.TemplateID, "EMAIL_TEMPLATE_ID")
	setString(&cfg.Email.From, "EMAIL_FROM")
	setString(&cfg.Email.To, "EMAIL_TO")

	setString(&cfg.ImageHost.Bucket, "IMAGE_BUCKET")
	setString(&cfg.ImageHost.Folder, "IMAGE_FOLDER")
	setString(&cfg.ImageHost.PublicBaseURL, "IMAGE_PUBLIC_BASE_URL")

	setString(&cfg.Admin.Password, "ADMIN_PASSWORD")
	setString(&cfg.Admin.JWTSecret, "ADMIN_JWT_SECRET")

	setString(&cfg.Logging.Level, "LOG_LEVEL")
	setString(&cfg.Logging.Format, "LOG_FORMAT")
}

func setString(dst *string, key string) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

// Origins splits the configured allow-list into its entries.
func (s ServerConfig) Origins() []string {
	parts := strings.Split(s.AllowedOrigins, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
