package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

var (
	ErrMissingURL         = errors.New("SOLR_URL is required")
	ErrInvalidURL         = errors.New("SOLR_URL must be an absolute http(s) url")
	ErrInvalidConcurrency = errors.New("batch concurrency must be positive")
	ErrInvalidTimeout     = errors.New("timeouts must be positive")
)

type Config struct {
	Solr      SolrConfig      `yaml:"solr"`
	Log       LogConfig       `yaml:"log"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Batch     BatchConfig     `yaml:"batch"`
	Metrics   MetricsConfig   `yaml:"metrics"`
}

type SolrConfig struct {
	URL           string        `yaml:"url"`
	Timeout       time.Duration `yaml:"timeout"`
	SearchTimeout time.Duration `yaml:"search_timeout"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // json, console
}

type RateLimitConfig struct {
	RequestsPerMinute int  `yaml:"requests_per_minute"`
	Wait              bool `yaml:"wait"`
}

type BatchConfig struct {
	Concurrency int `yaml:"concurrency"`
}

type MetricsConfig struct {
	Addr string `yaml:"addr"`
}

func Load() (*Config, error) {
	cfg := &Config{
		Solr: SolrConfig{
			URL:           os.Getenv("SOLR_URL"),
			Timeout:       time.Duration(getEnvIntOrDefault("SOLR_TIMEOUT_SEC", 30)) * time.Second,
			SearchTimeout: time.Duration(getEnvIntOrDefault("SEARCH_TIMEOUT_SEC", 60)) * time.Second,
		},
		Log: LogConfig{
			Level:  getEnvOrDefault("LOG_LEVEL", "info"),
			Format: getEnvOrDefault("LOG_FORMAT", "json"),
		},
		RateLimit: RateLimitConfig{
			RequestsPerMinute: getEnvIntOrDefault("RATE_LIMIT_PER_MINUTE", 60),
			Wait:              getEnvBoolOrDefault("RATE_LIMIT_WAIT", true),
		},
		Batch: BatchConfig{
			Concurrency: getEnvIntOrDefault("BATCH_CONCURRENCY", 4),
		},
		Metrics: MetricsConfig{
			Addr: os.Getenv("METRICS_ADDR"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadEnvFile loads KEY=VALUE pairs from path into the process environment.
// Variables that are already set win. A missing file is not an error.
func LoadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load env file %s: %w", path, err)
	}
	return nil
}

// LoadFile reads a YAML config. ${VAR} and ${VAR:-default} are expanded
// from the environment before parsing.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) ApplyDefaults() {
	if c.Solr.Timeout == 0 {
		c.Solr.Timeout = 30 * time.Second
	}
	if c.Solr.SearchTimeout == 0 {
		c.Solr.SearchTimeout = 60 * time.Second
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "json"
	}
	if c.RateLimit.RequestsPerMinute == 0 {
		c.RateLimit.RequestsPerMinute = 60
	}
	if c.Batch.Concurrency == 0 {
		c.Batch.Concurrency = 4
	}
}

func (c *Config) Validate() error {
	if c.Solr.URL == "" {
		return ErrMissingURL
	}

	u, err := url.Parse(c.Solr.URL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return ErrInvalidURL
	}

	if c.Solr.Timeout <= 0 || c.Solr.SearchTimeout <= 0 {
		return ErrInvalidTimeout
	}
	if c.Batch.Concurrency <= 0 {
		return ErrInvalidConcurrency
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1])
		name, def, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(name)
		if val == "" && hasDefault {
			val = def
		}
		return []byte(val)
	})
}
