package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds runtime configuration loaded from environment variables,
// optionally overlaid by a YAML file named in CONFIG_FILE.
type Config struct {
	Port                 string   `yaml:"port"`
	DatabaseURL          string   `yaml:"database_url"`
	SessionSecret        string   `yaml:"session_secret"`
	SessionIssuer        string   `yaml:"session_issuer"`
	SessionTTLSeconds    int64    `yaml:"session_ttl_seconds"`
	CookieSecure         bool     `yaml:"cookie_secure"`
	MediaStoragePath     string   `yaml:"media_storage_path"`
	UploadMaxBytes       int64    `yaml:"upload_max_bytes"`
	ResendAPIKey         string   `yaml:"resend_api_key"`
	MailFrom             string   `yaml:"mail_from"`
	MailTestRecipient    string   `yaml:"mail_test_recipient"`
	SiteURL              string   `yaml:"site_url"`
	LogDir               string   `yaml:"log_dir"`
	LogRetentionDays     int      `yaml:"log_retention_days"`
	LogLevel             string   `yaml:"log_level"`
	MetricsDiskPath      string   `yaml:"metrics_disk_path"`
	MetricsSampleSeconds int      `yaml:"metrics_sample_interval"`
	CorsOrigins          []string `yaml:"cors_origins"`
}

// Load reads the configuration. Environment variables win over the YAML file.
func Load() (Config, error) {
	cfg := Config{}
	if path := strings.TrimSpace(os.Getenv("CONFIG_FILE")); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config file: %w", err)
		}
	}

	cfg.Port = envOr("PORT", orDefault(cfg.Port, "8080"))
	cfg.DatabaseURL = envOr("DATABASE_URL", cfg.DatabaseURL)
	cfg.SessionSecret = envOr("SESSION_SECRET", cfg.SessionSecret)
	cfg.SessionIssuer = envOr("SESSION_ISSUER", orDefault(cfg.SessionIssuer, "alphinex"))
	cfg.SessionTTLSeconds = int64(envOrInt("SESSION_TTL_SECONDS", int(orDefaultInt64(cfg.SessionTTLSeconds, 86400))))
	cfg.CookieSecure = envOrBool("COOKIE_SECURE", cfg.CookieSecure)
	cfg.MediaStoragePath = envOr("MEDIA_STORAGE_PATH", orDefault(cfg.MediaStoragePath, "storage/media"))
	cfg.UploadMaxBytes = int64(envOrInt("UPLOAD_MAX_BYTES", int(orDefaultInt64(cfg.UploadMaxBytes, 10<<20))))
	cfg.ResendAPIKey = envOr("RESEND_API_KEY", cfg.ResendAPIKey)
	cfg.MailFrom = envOr("MAIL_FROM", orDefault(cfg.MailFrom, "Alphinex Solutions <onboarding@resend.dev>"))
	cfg.MailTestRecipient = envOr("MAIL_TEST_RECIPIENT", orDefault(cfg.MailTestRecipient, "delivered@resend.dev"))
	cfg.SiteURL = envOr("SITE_URL", orDefault(cfg.SiteURL, "https://alphinexsolutions.com"))
	cfg.LogDir = envOr("LOG_DIR", orDefault(cfg.LogDir, "storage/logs"))
	cfg.LogRetentionDays = envOrInt("LOG_RETENTION_DAYS", orDefaultInt(cfg.LogRetentionDays, 7))
	cfg.LogLevel = envOr("LOG_LEVEL", orDefault(cfg.LogLevel, "info"))
	cfg.MetricsDiskPath = envOr("METRICS_DISK_PATH", orDefault(cfg.MetricsDiskPath, cfg.MediaStoragePath))
	cfg.MetricsSampleSeconds = envOrInt("METRICS_SAMPLE_INTERVAL", orDefaultInt(cfg.MetricsSampleSeconds, 30))
	if origins := parseCSV(os.Getenv("CORS_ORIGINS")); len(origins) > 0 {
		cfg.CorsOrigins = origins
	}

	if cfg.LogRetentionDays < 1 || cfg.LogRetentionDays > 7 {
		cfg.LogRetentionDays = 7
	}
	if cfg.MetricsSampleSeconds < 1 {
		cfg.MetricsSampleSeconds = 30
	}
	return cfg, cfg.Validate()
}

// Validate reports the first missing required value.
func (c Config) Validate() error {
	if strings.TrimSpace(c.DatabaseURL) == "" {
		return fmt.Errorf("missing env var: DATABASE_URL")
	}
	if strings.TrimSpace(c.SessionSecret) == "" {
		return fmt.Errorf("missing env var: SESSION_SECRET")
	}
	return nil
}

// MailConfigured reports whether outbound email can be sent.
func (c Config) MailConfigured() bool {
	return strings.TrimSpace(c.ResendAPIKey) != ""
}

func envOr(key, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value
}

func envOrInt(key string, fallback int) int {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrBool(key string, fallback bool) bool {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func orDefault(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}

func orDefaultInt(value, fallback int) int {
	if value == 0 {
		return fallback
	}
	return value
}

func orDefaultInt64(value, fallback int64) int64 {
	if value == 0 {
		return fallback
	}
	return value
}

func parseCSV(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	items := make([]string, 0, len(parts))
	for _, part := range parts {
		value := strings.TrimSpace(part)
		if value != "" {
			items = append(items, value)
		}
	}
	return items
}
