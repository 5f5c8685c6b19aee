// Package config provides application configuration loading.
// This is part of the platform layer and contains no business logic.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// =============================================================================
// Module-Specific Config Interfaces (Principle of Least Privilege)
// =============================================================================

// ZohoConfig provides credentials and endpoints for the Zoho CRM API.
type ZohoConfig interface {
	GetZohoClientID() string
	GetZohoClientSecret() string
	GetZohoRefreshToken() string
	GetZohoRedirectURI() string
	GetZohoAccountsURL() string
	GetZohoAPIBaseURL() string
}

// CacheConfig provides cache TTLs and the optional Redis backing store.
type CacheConfig interface {
	GetTokenCacheTTL() time.Duration
	GetSnapshotCacheTTL() time.Duration
	GetRedisURL() string
}

// HTTPConfig provides settings for the HTTP server.
type HTTPConfig interface {
	GetHTTPAddr() string
	GetCORSAllowAll() bool
	GetCORSOrigins() []string
	GetCORSAllowCreds() bool
}

// StorageConfig provides settings for MinIO S3-compatible storage.
type StorageConfig interface {
	GetMinIOEndpoint() string
	GetMinIOAccessKey() string
	GetMinIOSecretKey() string
	GetMinIOUseSSL() bool
	GetMinioBucketMessages() string
	IsMinIOEnabled() bool
}

// EmailConfig provides settings for SMTP delivery of composed messages.
type EmailConfig interface {
	GetSMTPHost() string
	GetSMTPPort() int
	GetSMTPUsername() string
	GetSMTPPassword() string
	GetEmailFromName() string
	GetEmailFromAddress() string
	IsEmailEnabled() bool
}

// SchedulerConfig provides settings for the background refresh worker.
type SchedulerConfig interface {
	GetRedisURL() string
	GetRedisTLSInsecure() bool
	GetAsynqQueueName() string
	GetSnapshotRefreshInterval() time.Duration
}

// =============================================================================
// Main Config Struct
// =============================================================================

// Config holds all application configuration values.
type Config struct {
	Env      string
	HTTPAddr string

	ZohoClientID     string
	ZohoClientSecret string
	ZohoRefreshToken string
	ZohoRedirectURI  string
	ZohoAccountsURL  string
	ZohoAPIBaseURL   string

	TokenCacheTTL    time.Duration
	SnapshotCacheTTL time.Duration

	CORSAllowAll   bool
	CORSOrigins    []string
	CORSAllowCreds bool

	RedisURL                string
	RedisTLSInsecure        bool
	AsynqQueueName          string
	SnapshotRefreshInterval time.Duration

	MinIOEndpoint       string
	MinIOAccessKey      string
	MinIOSecretKey      string
	MinIOUseSSL         bool
	MinioBucketMessages string

	SMTPHost         string
	SMTPPort         int
	SMTPUsername     string
	SMTPPassword     string
	EmailFromName    string
	EmailFromAddress string
}

// =============================================================================
// Interface Implementations
// =============================================================================

// ZohoConfig implementation
func (c *Config) GetZohoClientID() string     { return c.ZohoClientID }
func (c *Config) GetZohoClientSecret() string { return c.ZohoClientSecret }
func (c *Config) GetZohoRefreshToken() string { return c.ZohoRefreshToken }
func (c *Config) GetZohoRedirectURI() string  { return c.ZohoRedirectURI }
func (c *Config) GetZohoAccountsURL() string  { return c.ZohoAccountsURL }
func (c *Config) GetZohoAPIBaseURL() string   { return c.ZohoAPIBaseURL }

// CacheConfig implementation
func (c *Config) GetTokenCacheTTL() time.Duration    { return c.TokenCacheTTL }
func (c *Config) GetSnapshotCacheTTL() time.Duration { return c.SnapshotCacheTTL }

// HTTPConfig implementation
func (c *Config) GetHTTPAddr() string      { return c.HTTPAddr }
func (c *Config) GetCORSAllowAll() bool    { return c.CORSAllowAll }
func (c *Config) GetCORSOrigins() []string { return c.CORSOrigins }
func (c *Config) GetCORSAllowCreds() bool  { return c.CORSAllowCreds }

// StorageConfig implementation
func (c *Config) GetMinIOEndpoint() string       { return c.MinIOEndpoint }
func (c *Config) GetMinIOAccessKey() string      { return c.MinIOAccessKey }
func (c *Config) GetMinIOSecretKey() string      { return c.MinIOSecretKey }
func (c *Config) GetMinIOUseSSL() bool           { return c.MinIOUseSSL }
func (c *Config) GetMinioBucketMessages() string { return c.MinioBucketMessages }
func (c *Config) IsMinIOEnabled() bool           { return c.MinIOEndpoint != "" }

// EmailConfig implementation
func (c *Config) GetSMTPHost() string         { return c.SMTPHost }
func (c *Config) GetSMTPPort() int            { return c.SMTPPort }
func (c *Config) GetSMTPUsername() string     { return c.SMTPUsername }
func (c *Config) GetSMTPPassword() string     { return c.SMTPPassword }
func (c *Config) GetEmailFromName() string    { return c.EmailFromName }
func (c *Config) GetEmailFromAddress() string { return c.EmailFromAddress }
func (c *Config) IsEmailEnabled() bool {
	return c.SMTPHost != "" && c.EmailFromAddress != ""
}

// SchedulerConfig implementation
func (c *Config) GetRedisURL() string          { return c.RedisURL }
func (c *Config) GetRedisTLSInsecure() bool    { return c.RedisTLSInsecure }
func (c *Config) GetAsynqQueueName() string    { return c.AsynqQueueName }
func (c *Config) GetSnapshotRefreshInterval() time.Duration {
	return c.SnapshotRefreshInterval
}

// secretsFile mirrors the hosted secret store: a YAML document holding the
// CRM credentials. Values present here take precedence over the environment.
type secretsFile struct {
	ZohoClientID     string `yaml:"ZOHO_CLIENT_ID"`
	ZohoClientSecret string `yaml:"ZOHO_CLIENT_SECRET"`
	ZohoRefreshToken string `yaml:"ZOHO_REFRESH_TOKEN"`
	ZohoRedirectURI  string `yaml:"ZOHO_REDIRECT_URI"`
}

// Load reads configuration from the secrets file and environment variables.
func Load() (*Config, error) {
	_ = godotenv.Load()

	corsOrigins := splitCSV(getEnv("CORS_ORIGINS", "http://localhost:4200"))
	corsAllowAll := strings.EqualFold(getEnv("CORS_ALLOW_ALL", "false"), "true")
	if containsWildcard(corsOrigins) {
		corsAllowAll = true
	}

	cfg := &Config{
		Env:      getEnv("APP_ENV", "development"),
		HTTPAddr: getEnv("HTTP_ADDR", ":8080"),

		ZohoClientID:     getEnv("ZOHO_CLIENT_ID", ""),
		ZohoClientSecret: getEnv("ZOHO_CLIENT_SECRET", ""),
		ZohoRefreshToken: getEnv("ZOHO_REFRESH_TOKEN", ""),
		ZohoRedirectURI:  getEnv("ZOHO_REDIRECT_URI", "http://localhost:7860"),
		ZohoAccountsURL:  getEnv("ZOHO_ACCOUNTS_URL", "https://accounts.zoho.com/oauth/v2/token"),
		ZohoAPIBaseURL:   getEnv("ZOHO_API_BASE_URL", "https://www.zohoapis.com/crm/v2"),

		TokenCacheTTL:    mustDuration(getEnv("TOKEN_CACHE_TTL", "30m")),
		SnapshotCacheTTL: mustDuration(getEnv("SNAPSHOT_CACHE_TTL", "1h")),

		CORSAllowAll:   corsAllowAll,
		CORSOrigins:    corsOrigins,
		CORSAllowCreds: strings.EqualFold(getEnv("CORS_ALLOW_CREDENTIALS", "true"), "true"),

		RedisURL:                getEnv("REDIS_URL", ""),
		RedisTLSInsecure:        strings.EqualFold(getEnv("REDIS_TLS_INSECURE", "false"), "true"),
		AsynqQueueName:          getEnv("ASYNQ_QUEUE", "default"),
		SnapshotRefreshInterval: mustDuration(getEnv("SNAPSHOT_REFRESH_INTERVAL", "55m")),

		MinIOEndpoint:       getEnv("MINIO_ENDPOINT", ""),
		MinIOAccessKey:      getEnv("MINIO_ACCESS_KEY", ""),
		MinIOSecretKey:      getEnv("MINIO_SECRET_KEY", ""),
		MinIOUseSSL:         strings.EqualFold(getEnv("MINIO_USE_SSL", "false"), "true"),
		MinioBucketMessages: getEnv("MINIO_BUCKET_MESSAGES", "lead-messages"),

		SMTPHost:         getEnv("SMTP_HOST", ""),
		SMTPPort:         mustInt(getEnv("SMTP_PORT", "587")),
		SMTPUsername:     getEnv("SMTP_USERNAME", ""),
		SMTPPassword:     getEnv("SMTP_PASSWORD", ""),
		EmailFromName:    getEnv("EMAIL_FROM_NAME", "Marketing Dashboard"),
		EmailFromAddress: getEnv("EMAIL_FROM_ADDRESS", ""),
	}

	if err := applySecretsFile(cfg, getEnv("SECRETS_FILE", "")); err != nil {
		return nil, err
	}

	if cfg.ZohoClientID == "" || cfg.ZohoClientSecret == "" || cfg.ZohoRefreshToken == "" {
		return nil, fmt.Errorf("ZOHO_CLIENT_ID, ZOHO_CLIENT_SECRET and ZOHO_REFRESH_TOKEN are required")
	}
	if cfg.TokenCacheTTL <= 0 || cfg.SnapshotCacheTTL <= 0 {
		return nil, fmt.Errorf("cache TTLs must be positive durations")
	}
	if cfg.CORSAllowAll && cfg.CORSAllowCreds {
		return nil, fmt.Errorf("CORS_ALLOW_CREDENTIALS cannot be true when CORS_ALLOW_ALL is true")
	}

	return cfg, nil
}

func applySecretsFile(cfg *Config, path string) error {
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read secrets file: %w", err)
	}

	var secrets secretsFile
	if err := yaml.Unmarshal(data, &secrets); err != nil {
		return fmt.Errorf("parse secrets file: %w", err)
	}

	if secrets.ZohoClientID != "" {
		cfg.ZohoClientID = secrets.ZohoClientID
	}
	if secrets.ZohoClientSecret != "" {
		cfg.ZohoClientSecret = secrets.ZohoClientSecret
	}
	if secrets.ZohoRefreshToken != "" {
		cfg.ZohoRefreshToken = secrets.ZohoRefreshToken
	}
	if secrets.ZohoRedirectURI != "" {
		cfg.ZohoRedirectURI = secrets.ZohoRedirectURI
	}

	return nil
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}

func mustDuration(value string) time.Duration {
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0
	}
	return d
}

func mustInt(value string) int {
	result, err := strconv.Atoi(value)
	if err != nil {
		return 0
	}
	return result
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	results := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			results = append(results, trimmed)
		}
	}
	return results
}

func containsWildcard(values []string) bool {
	for _, value := range values {
		if value == "*" {
			return true
		}
	}
	return false
}
