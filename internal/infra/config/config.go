package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

const defaultConfigPath = "configs/config.yaml"

// Config aggregates runtime configuration used across the service.
type Config struct {
	HTTP      HTTPConfig      `yaml:"http"`
	Model     ModelConfig     `yaml:"model"`
	Summary   SummaryConfig   `yaml:"summary"`
	Cache     CacheConfig     `yaml:"cache"`
	History   HistoryConfig   `yaml:"history"`
	Artifacts ArtifactsConfig `yaml:"artifacts"`
	MCP       MCPConfig       `yaml:"mcp"`
}

// HTTPConfig controls server level behavior.
type HTTPConfig struct {
	Address      string          `yaml:"address" env:"HTTP_ADDRESS"`
	ReadTimeout  time.Duration   `yaml:"readTimeout" env:"HTTP_READ_TIMEOUT"`
	WriteTimeout time.Duration   `yaml:"writeTimeout" env:"HTTP_WRITE_TIMEOUT"`
	CORSOrigins  []string        `yaml:"corsOrigins" env:"HTTP_CORS_ORIGINS"`
	RateLimit    RateLimitConfig `yaml:"rateLimit"`
}

// RateLimitConfig drives the request limiting middleware.
type RateLimitConfig struct {
	Enabled           bool `yaml:"enabled" env:"HTTP_RATE_LIMIT_ENABLED"`
	RequestsPerMinute int  `yaml:"requestsPerMinute" env:"HTTP_RATE_LIMIT_RPM"`
	Burst             int  `yaml:"burst" env:"HTTP_RATE_LIMIT_BURST"`
}

// ModelConfig selects and locates the summarization model.
type ModelConfig struct {
	// Backend is "huggingface" or "openai".
	Backend        string        `yaml:"backend" env:"MODEL_BACKEND"`
	Dir            string        `yaml:"dir" env:"MODEL_DIR"`
	FineTunedID    string        `yaml:"fineTunedId" env:"MODEL_FINE_TUNED_ID"`
	FallbackID     string        `yaml:"fallbackId" env:"MODEL_FALLBACK_ID"`
	Endpoint       string        `yaml:"endpoint" env:"MODEL_ENDPOINT"`
	APIToken       string        `yaml:"apiToken" env:"MODEL_API_TOKEN"`
	RequestTimeout time.Duration `yaml:"requestTimeout" env:"MODEL_REQUEST_TIMEOUT"`
	ProbeOnStartup bool          `yaml:"probeOnStartup" env:"MODEL_PROBE_ON_STARTUP"`
	// GPU is "auto", "true" or "false".
	GPU            string       `yaml:"gpu" env:"MODEL_GPU"`
	CheckpointsDir string       `yaml:"checkpointsDir" env:"MODEL_CHECKPOINTS_DIR"`
	OpenAI         OpenAIConfig `yaml:"openai"`
}

// OpenAIConfig contains settings of the OpenAI backend.
type OpenAIConfig struct {
	APIKey  string `yaml:"apiKey" env:"OPENAI_API_KEY"`
	BaseURL string `yaml:"baseUrl" env:"OPENAI_BASE_URL"`
	Model   string `yaml:"model" env:"OPENAI_MODEL"`
}

// SummaryConfig carries the request limits and generation defaults.
type SummaryConfig struct {
	DefaultMaxLength int    `yaml:"defaultMaxLength" env:"SUMMARY_DEFAULT_MAX_LENGTH"`
	DefaultMinLength int    `yaml:"defaultMinLength" env:"SUMMARY_DEFAULT_MIN_LENGTH"`
	MinInputChars    int    `yaml:"minInputChars" env:"SUMMARY_MIN_INPUT_CHARS"`
	MaxInputChars    int    `yaml:"maxInputChars" env:"SUMMARY_MAX_INPUT_CHARS"`
	EchoChars        int    `yaml:"echoChars" env:"SUMMARY_ECHO_CHARS"`
	Workers          int    `yaml:"workers" env:"SUMMARY_WORKERS"`
	ContextTokens    int    `yaml:"contextTokens" env:"SUMMARY_CONTEXT_TOKENS"`
	TokenEncoding    string `yaml:"tokenEncoding" env:"SUMMARY_TOKEN_ENCODING"`
}

// CacheConfig controls the summary cache.
type CacheConfig struct {
	Enabled    bool          `yaml:"enabled" env:"CACHE_ENABLED"`
	TTL        time.Duration `yaml:"ttl" env:"CACHE_TTL"`
	MaxEntries int           `yaml:"maxEntries" env:"CACHE_MAX_ENTRIES"`
	Valkey     ValkeyConfig  `yaml:"valkey"`
}

// ValkeyConfig contains connection information for the shared cache.
type ValkeyConfig struct {
	Enabled bool   `yaml:"enabled" env:"CACHE_VALKEY_ENABLED"`
	Addr    string `yaml:"addr" env:"CACHE_VALKEY_ADDR"`
}

// HistoryConfig controls where successful summaries are recorded.
type HistoryConfig struct {
	Capacity int            `yaml:"capacity" env:"HISTORY_CAPACITY"`
	Postgres PostgresConfig `yaml:"postgres"`
}

// PostgresConfig contains DSN and pooling settings.
type PostgresConfig struct {
	DSN      string `yaml:"dsn" env:"HISTORY_POSTGRES_DSN"`
	MaxConns int32  `yaml:"maxConns" env:"HISTORY_POSTGRES_MAX_CONNS"`
	MinConns int32  `yaml:"minConns" env:"HISTORY_POSTGRES_MIN_CONNS"`
}

// ArtifactsConfig points at the bucket holding published model directories.
type ArtifactsConfig struct {
	Endpoint  string `yaml:"endpoint" env:"ARTIFACTS_ENDPOINT"`
	AccessKey string `yaml:"accessKey" env:"ARTIFACTS_ACCESS_KEY"`
	SecretKey string `yaml:"secretKey" env:"ARTIFACTS_SECRET_KEY"`
	Bucket    string `yaml:"bucket" env:"ARTIFACTS_BUCKET"`
	Region    string `yaml:"region" env:"ARTIFACTS_REGION"`
	Prefix    string `yaml:"prefix" env:"ARTIFACTS_PREFIX"`
}

// MCPConfig toggles the MCP endpoint.
type MCPConfig struct {
	Enabled bool   `yaml:"enabled" env:"MCP_ENABLED"`
	Path    string `yaml:"path" env:"MCP_PATH"`
}

// Load reads configuration from a YAML file and environment variables.
func Load() (*Config, error) {
	cfg := defaultConfig()

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := hydrateFromFile(cfg, path); err != nil {
			return nil, err
		}
	} else if _, err := os.Stat(defaultConfigPath); err == nil {
		if err := hydrateFromFile(cfg, defaultConfigPath); err != nil {
			return nil, err
		}
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env overrides: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func hydrateFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func defaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Address:     ":5000",
			ReadTimeout: 15 * time.Second,
			// Generation has no deadline, so responses are not cut off either.
			WriteTimeout: 0,
			CORSOrigins:  []string{"*"},
			RateLimit: RateLimitConfig{
				Enabled:           false,
				RequestsPerMinute: 60,
				Burst:             20,
			},
		},
		Model: ModelConfig{
			Backend:        "huggingface",
			Dir:            "./models/bart-dialogsum",
			FineTunedID:    "bart-dialogsum",
			FallbackID:     "facebook/bart-large-cnn",
			Endpoint:       "https://api-inference.huggingface.co/models",
			ProbeOnStartup: true,
			GPU:            "auto",
			CheckpointsDir: "./models/checkpoints",
			OpenAI: OpenAIConfig{
				Model: "gpt-4o-mini",
			},
		},
		Summary: SummaryConfig{
			DefaultMaxLength: 150,
			DefaultMinLength: 40,
			MinInputChars:    10,
			MaxInputChars:    10000,
			EchoChars:        1000,
			Workers:          2,
			ContextTokens:    1024,
			TokenEncoding:    "r50k_base",
		},
		Cache: CacheConfig{
			Enabled:    false,
			TTL:        time.Hour,
			MaxEntries: 512,
		},
		History: HistoryConfig{
			Capacity: 100,
			Postgres: PostgresConfig{
				MaxConns: 4,
			},
		},
		Artifacts: ArtifactsConfig{
			Region: "auto",
			Prefix: "models/bart-dialogsum",
		},
		MCP: MCPConfig{
			Enabled: true,
			Path:    "/mcp",
		},
	}
}

// Validate ensures the configuration is safe to use.
func (c *Config) Validate() error {
	if c.HTTP.Address == "" {
		return errors.New("http.address cannot be empty")
	}
	if c.HTTP.ReadTimeout < 0 || c.HTTP.WriteTimeout < 0 {
		return errors.New("http timeouts cannot be negative")
	}
	if c.HTTP.RateLimit.Enabled {
		if c.HTTP.RateLimit.RequestsPerMinute <= 0 {
			return errors.New("http.rateLimit.requestsPerMinute must be positive")
		}
		if c.HTTP.RateLimit.Burst <= 0 {
			return errors.New("http.rateLimit.burst must be positive")
		}
	}
	switch c.Model.Backend {
	case "huggingface":
		if strings.TrimSpace(c.Model.Endpoint) == "" {
			return errors.New("model.endpoint cannot be empty")
		}
		if strings.TrimSpace(c.Model.FallbackID) == "" {
			return errors.New("model.fallbackId cannot be empty")
		}
	case "openai":
		if strings.TrimSpace(c.Model.OpenAI.Model) == "" {
			return errors.New("model.openai.model cannot be empty")
		}
	default:
		return fmt.Errorf("model.backend %q is not supported", c.Model.Backend)
	}
	if c.Model.RequestTimeout < 0 {
		return errors.New("model.requestTimeout cannot be negative")
	}
	switch strings.ToLower(c.Model.GPU) {
	case "auto", "true", "false":
	default:
		return fmt.Errorf("model.gpu must be auto, true or false, got %q", c.Model.GPU)
	}
	if c.Summary.DefaultMaxLength < 1 {
		return errors.New("summary.defaultMaxLength must be positive")
	}
	if c.Summary.DefaultMinLength < 0 || c.Summary.DefaultMinLength > c.Summary.DefaultMaxLength {
		return errors.New("summary.defaultMinLength must be between 0 and summary.defaultMaxLength")
	}
	if c.Summary.MinInputChars <= 0 {
		return errors.New("summary.minInputChars must be positive")
	}
	if c.Summary.MaxInputChars < c.Summary.MinInputChars {
		return errors.New("summary.maxInputChars must not be below summary.minInputChars")
	}
	if c.Summary.EchoChars <= 0 {
		return errors.New("summary.echoChars must be positive")
	}
	if c.Summary.Workers <= 0 {
		return errors.New("summary.workers must be positive")
	}
	if c.Cache.TTL < 0 {
		return errors.New("cache.ttl cannot be negative")
	}
	if c.Cache.Enabled && !c.Cache.Valkey.Enabled && c.Cache.MaxEntries <= 0 {
		return errors.New("cache.maxEntries must be positive")
	}
	if c.Cache.Valkey.Enabled && strings.TrimSpace(c.Cache.Valkey.Addr) == "" {
		return errors.New("cache.valkey.addr cannot be empty when valkey cache is enabled")
	}
	if c.History.Capacity <= 0 {
		return errors.New("history.capacity must be positive")
	}
	if c.MCP.Enabled && !strings.HasPrefix(c.MCP.Path, "/") {
		return errors.New("mcp.path must start with /")
	}
	return nil
}
