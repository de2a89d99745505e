// Package config defines service configuration structures and loading hooks.
package config

import (
	"context"
	"time"
)

// Store backends.
const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

// Generation providers.
const (
	ProviderAnthropic = "anthropic"
	ProviderOpenAI    = "openai"
)

// EnvironmentDevelopment enables diagnostic echoes (verification code, raw
// upstream error text) in API responses.
const EnvironmentDevelopment = "development"

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`
	// LogFormat selects text or json log output.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`
	// Environment is "production" or "development".
	Environment string `koanf:"environment"`

	// MinScore is the minimum pitch score (percent) required to generate.
	MinScore int `koanf:"min_score"`

	// RateLimit and RateLimitWindow bound generation requests per client address.
	RateLimit       int           `koanf:"rate_limit"`
	RateLimitWindow time.Duration `koanf:"rate_limit_window"`

	// CodeTTL is the lifetime of an issued verification code.
	CodeTTL time.Duration `koanf:"code_ttl"`
	// VerifyRPS and VerifyBurst throttle the verification endpoint per client address.
	VerifyRPS   float64 `koanf:"verify_rps"`
	VerifyBurst int     `koanf:"verify_burst"`

	// StoreBackend is "memory" or "redis" for codes and rate-limit windows.
	StoreBackend  string        `koanf:"store_backend"`
	RedisAddr     string        `koanf:"redis_addr"`
	RedisPassword string        `koanf:"redis_password"`
	RedisDB       int           `koanf:"redis_db"`
	SweepInterval time.Duration `koanf:"sweep_interval"`

	// AIProvider is "anthropic" or "openai".
	AIProvider        string        `koanf:"ai_provider"`
	AnthropicAPIKey   string        `koanf:"anthropic_api_key"`
	AnthropicModel    string        `koanf:"anthropic_model"`
	OpenAIAPIKey      string        `koanf:"openai_api_key"`
	OpenAIModel       string        `koanf:"openai_model"`
	GenerationTimeout time.Duration `koanf:"generation_timeout"`
	MaxTokens         int           `koanf:"max_tokens"`

	// CRM contact sync. Sync is disabled when CRMAPIKey is empty.
	CRMAPIKey     string        `koanf:"crm_api_key"`
	CRMLocationID string        `koanf:"crm_location_id"`
	CRMBaseURL    string        `koanf:"crm_base_url"`
	CRMTimeout    time.Duration `koanf:"crm_timeout"`
	CRMMaxRetries int           `koanf:"crm_max_retries"`

	// Contact sync worker pool.
	SyncWorkers    int `koanf:"sync_workers"`
	SyncQueueSize  int `koanf:"sync_queue_size"`
	SyncDedupeSize int `koanf:"sync_dedupe_size"`
}

// New returns a Config populated with defaults.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:          "info",
		LogFormat:         "text",
		Addr:              ":9080",
		Environment:       "production",
		MinScore:          50,
		RateLimit:         5,
		RateLimitWindow:   24 * time.Hour,
		CodeTTL:           10 * time.Minute,
		VerifyRPS:         1,
		VerifyBurst:       5,
		StoreBackend:      BackendMemory,
		RedisAddr:         "localhost:6379",
		SweepInterval:     time.Minute,
		AIProvider:        ProviderAnthropic,
		AnthropicModel:    "claude-sonnet-4-20250514",
		OpenAIModel:       "gpt-4o",
		GenerationTimeout: 60 * time.Second,
		MaxTokens:         4000,
		CRMBaseURL:        "https://services.leadconnectorhq.com",
		CRMTimeout:        10 * time.Second,
		CRMMaxRetries:     3,
		SyncWorkers:       2,
		SyncQueueSize:     1024,
		SyncDedupeSize:    10_000,
	}
}

// IsDevelopment reports whether diagnostic response fields are enabled.
func (c *Config) IsDevelopment() bool {
	return c.Environment == EnvironmentDevelopment
}
