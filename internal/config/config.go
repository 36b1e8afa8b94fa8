// Package config loads service and CLI configuration from a JSON or YAML
// file, the environment and defaults.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Store and blob backends.
const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
	StoreRedis    = "redis"

	BlobLocal = "local"
	BlobMinIO = "minio"
)

// Config is the full configuration. Zero values are filled from Default by
// MergeWithDefaults.
type Config struct {
	Port           int      `json:"port,omitempty" yaml:"port,omitempty"`
	AllowedOrigins []string `json:"allowed_origins,omitempty" yaml:"allowed_origins,omitempty"`
	UploadLimit    int64    `json:"upload_limit,omitempty" yaml:"upload_limit,omitempty"` // bytes
	UseBrowser     bool     `json:"use_browser,omitempty" yaml:"use_browser,omitempty"`
	GeminiAPIKey   string   `json:"gemini_api_key,omitempty" yaml:"gemini_api_key,omitempty"`

	Store     StoreConfig     `json:"store" yaml:"store"`
	Blob      BlobConfig      `json:"blob" yaml:"blob"`
	SMTP      SMTPConfig      `json:"smtp" yaml:"smtp"`
	Log       LogConfig       `json:"log" yaml:"log"`
	RateLimit RateLimitConfig `json:"rate_limit" yaml:"rate_limit"`
}

// StoreConfig selects the record store.
type StoreConfig struct {
	Backend       string `json:"backend,omitempty" yaml:"backend,omitempty"`
	DatabaseURL   string `json:"database_url,omitempty" yaml:"database_url,omitempty"`
	RedisAddr     string `json:"redis_addr,omitempty" yaml:"redis_addr,omitempty"`
	RedisPassword string `json:"redis_password,omitempty" yaml:"redis_password,omitempty"`
	RedisDB       int    `json:"redis_db,omitempty" yaml:"redis_db,omitempty"`
}

// BlobConfig selects file storage.
type BlobConfig struct {
	Backend        string `json:"backend,omitempty" yaml:"backend,omitempty"`
	Dir            string `json:"dir,omitempty" yaml:"dir,omitempty"`
	MinIOEndpoint  string `json:"minio_endpoint,omitempty" yaml:"minio_endpoint,omitempty"`
	MinIOAccessKey string `json:"minio_access_key,omitempty" yaml:"minio_access_key,omitempty"`
	MinIOSecretKey string `json:"minio_secret_key,omitempty" yaml:"minio_secret_key,omitempty"`
	MinIOBucket    string `json:"minio_bucket,omitempty" yaml:"minio_bucket,omitempty"`
	MinIOUseSSL    bool   `json:"minio_use_ssl,omitempty" yaml:"minio_use_ssl,omitempty"`
}

// SMTPConfig holds mail settings. Secure is a pointer so that an explicit
// false survives merging with the default of true.
type SMTPConfig struct {
	Host     string `json:"host,omitempty" yaml:"host,omitempty"`
	Port     int    `json:"port,omitempty" yaml:"port,omitempty"`
	Secure   *bool  `json:"secure,omitempty" yaml:"secure,omitempty"`
	User     string `json:"user,omitempty" yaml:"user,omitempty"`
	Pass     string `json:"pass,omitempty" yaml:"pass,omitempty"`
	From     string `json:"from,omitempty" yaml:"from,omitempty"`
	FromName string `json:"from_name,omitempty" yaml:"from_name,omitempty"`
}

// IsSecure reports whether implicit TLS is used. Unset means true.
func (s SMTPConfig) IsSecure() bool {
	return s.Secure == nil || *s.Secure
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `json:"level,omitempty" yaml:"level,omitempty"`
	Format string `json:"format,omitempty" yaml:"format,omitempty"`
}

// RateLimitConfig bounds customize and send calls per client.
type RateLimitConfig struct {
	PerMinute int `json:"per_minute,omitempty" yaml:"per_minute,omitempty"`
	Burst     int `json:"burst,omitempty" yaml:"burst,omitempty"`
}

// Default returns the built-in configuration.
func Default() Config {
	secure := true
	return Config{
		Port:           3000,
		AllowedOrigins: []string{"https://mp.weixin.qq.com"},
		UploadLimit:    10 << 20,
		Store:          StoreConfig{Backend: StoreMemory},
		Blob:           BlobConfig{Backend: BlobLocal, Dir: "data", MinIOBucket: "resume-dispatch"},
		SMTP: SMTPConfig{
			Host:     "smtp.qq.com",
			Port:     465,
			Secure:   &secure,
			FromName: "求职者",
		},
		Log:       LogConfig{Level: "info", Format: "json"},
		RateLimit: RateLimitConfig{PerMinute: 30, Burst: 10},
	}
}

// LoadConfig reads a JSON or YAML file, chosen by extension.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config YAML: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config JSON: %w", err)
		}
	}
	return &cfg, nil
}

// Load reads path when given, overlays the environment and fills defaults.
func Load(path string) (Config, error) {
	cfg := &Config{}
	if path != "" {
		loaded, err := LoadConfig(path)
		if err != nil {
			return Config{}, err
		}
		cfg = loaded
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return Config{}, err
	}
	merged := cfg.MergeWithDefaults(Default())
	if err := merged.Validate(); err != nil {
		return Config{}, err
	}
	return merged, nil
}

// ApplyEnv overrides fields from environment variables found by lookup.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}
	num := func(key string, dst *int) error {
		v, ok := lookup(key)
		if !ok || v == "" {
			return nil
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config error: %s must be an integer: %w", key, err)
		}
		*dst = n
		return nil
	}

	if err := num("PORT", &c.Port); err != nil {
		return err
	}
	if v, ok := lookup("ALLOWED_ORIGINS"); ok && v != "" {
		c.AllowedOrigins = splitList(v)
	}
	str("GEMINI_API_KEY", &c.GeminiAPIKey)

	str("STORE_BACKEND", &c.Store.Backend)
	str("DATABASE_URL", &c.Store.DatabaseURL)
	str("REDIS_ADDR", &c.Store.RedisAddr)
	str("REDIS_PASSWORD", &c.Store.RedisPassword)
	if err := num("REDIS_DB", &c.Store.RedisDB); err != nil {
		return err
	}

	str("BLOB_BACKEND", &c.Blob.Backend)
	str("BLOB_DIR", &c.Blob.Dir)
	str("MINIO_ENDPOINT", &c.Blob.MinIOEndpoint)
	str("MINIO_ACCESS_KEY", &c.Blob.MinIOAccessKey)
	str("MINIO_SECRET_KEY", &c.Blob.MinIOSecretKey)
	str("MINIO_BUCKET", &c.Blob.MinIOBucket)
	if v, ok := lookup("MINIO_USE_SSL"); ok {
		c.Blob.MinIOUseSSL = v == "true"
	}

	str("SMTP_HOST", &c.SMTP.Host)
	if err := num("SMTP_PORT", &c.SMTP.Port); err != nil {
		return err
	}
	if v, ok := lookup("SMTP_SECURE"); ok && v != "" {
		secure := v != "false"
		c.SMTP.Secure = &secure
	}
	str("SMTP_USER", &c.SMTP.User)
	str("SMTP_PASS", &c.SMTP.Pass)
	str("SMTP_FROM", &c.SMTP.From)
	str("SMTP_FROM_NAME", &c.SMTP.FromName)

	str("LOG_LEVEL", &c.Log.Level)
	str("LOG_FORMAT", &c.Log.Format)
	return nil
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Validate checks that the configuration has usable values.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535")
	}
	if c.UploadLimit < 0 {
		return fmt.Errorf("config error: 'upload_limit' must be non-negative")
	}
	if c.RateLimit.PerMinute < 0 || c.RateLimit.Burst < 0 {
		return fmt.Errorf("config error: 'rate_limit' values must be non-negative")
	}

	switch c.Store.Backend {
	case "", StoreMemory:
	case StorePostgres:
		if c.Store.DatabaseURL == "" {
			return fmt.Errorf("config error: postgres store requires 'database_url'")
		}
	case StoreRedis:
		if c.Store.RedisAddr == "" {
			return fmt.Errorf("config error: redis store requires 'redis_addr'")
		}
	default:
		return fmt.Errorf("config error: unknown store backend %q", c.Store.Backend)
	}

	switch c.Blob.Backend {
	case "", BlobLocal:
	case BlobMinIO:
		if c.Blob.MinIOEndpoint == "" || c.Blob.MinIOAccessKey == "" || c.Blob.MinIOSecretKey == "" {
			return fmt.Errorf("config error: minio blob store requires endpoint and keys")
		}
	default:
		return fmt.Errorf("config error: unknown blob backend %q", c.Blob.Backend)
	}

	switch c.Log.Format {
	case "", "json", "pretty":
	default:
		return fmt.Errorf("config error: log format must be 'json' or 'pretty'")
	}
	return nil
}

// MergeWithDefaults returns a copy of c with zero fields filled from
// defaults. Booleans other than SMTP.Secure cannot be told apart from
// unset and are left as they are.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if len(result.AllowedOrigins) == 0 {
		result.AllowedOrigins = append([]string(nil), defaults.AllowedOrigins...)
	}
	if result.UploadLimit == 0 {
		result.UploadLimit = defaults.UploadLimit
	}
	if result.GeminiAPIKey == "" {
		result.GeminiAPIKey = defaults.GeminiAPIKey
	}

	if result.Store.Backend == "" {
		result.Store.Backend = defaults.Store.Backend
	}
	if result.Store.DatabaseURL == "" {
		result.Store.DatabaseURL = defaults.Store.DatabaseURL
	}
	if result.Store.RedisAddr == "" {
		result.Store.RedisAddr = defaults.Store.RedisAddr
	}

	if result.Blob.Backend == "" {
		result.Blob.Backend = defaults.Blob.Backend
	}
	if result.Blob.Dir == "" {
		result.Blob.Dir = defaults.Blob.Dir
	}
	if result.Blob.MinIOBucket == "" {
		result.Blob.MinIOBucket = defaults.Blob.MinIOBucket
	}

	if result.SMTP.Host == "" {
		result.SMTP.Host = defaults.SMTP.Host
	}
	if result.SMTP.Port == 0 {
		result.SMTP.Port = defaults.SMTP.Port
	}
	if result.SMTP.Secure == nil && defaults.SMTP.Secure != nil {
		secure := *defaults.SMTP.Secure
		result.SMTP.Secure = &secure
	}
	if result.SMTP.FromName == "" {
		result.SMTP.FromName = defaults.SMTP.FromName
	}

	if result.Log.Level == "" {
		result.Log.Level = defaults.Log.Level
	}
	if result.Log.Format == "" {
		result.Log.Format = defaults.Log.Format
	}

	if result.RateLimit.PerMinute == 0 {
		result.RateLimit.PerMinute = defaults.RateLimit.PerMinute
	}
	if result.RateLimit.Burst == 0 {
		result.RateLimit.Burst = defaults.RateLimit.Burst
	}
	return result
}
