package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	envPrefix     = "PITCHGATE_"
	envConfigPath = "PITCHGATE_CONFIG"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New(ctx))
//  2. file (YAML) if PITCHGATE_CONFIG is set
//  3. env (prefix PITCHGATE_)
func Load(ctx context.Context) (*Config, error) {
	base := New(ctx)

	k := koanf.New(".")

	if path := os.Getenv(envConfigPath); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrLoadConfig, path, err)
		}
	}

	// PITCHGATE_MIN_SCORE -> min_score; underscores are kept to match the flat koanf tags.
	envProvider := env.Provider(envPrefix, ".", func(s string) string {
		return strings.TrimPrefix(strings.ToLower(s), strings.ToLower(envPrefix))
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: env: %w", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks value ranges and enumerations.
func (c *Config) Validate() error {
	switch {
	case c.Addr == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.MinScore < 0 || c.MinScore > 100:
		return fmt.Errorf("%w: min_score must be within [0,100], got %d", ErrInvalidConfig, c.MinScore)
	case c.RateLimit <= 0 || c.RateLimitWindow <= 0:
		return fmt.Errorf("%w: rate_limit and rate_limit_window must be positive", ErrInvalidConfig)
	case c.CodeTTL <= 0:
		return fmt.Errorf("%w: code_ttl must be positive", ErrInvalidConfig)
	case c.VerifyRPS <= 0 || c.VerifyBurst <= 0:
		return fmt.Errorf("%w: verify_rps and verify_burst must be positive", ErrInvalidConfig)
	case c.SyncWorkers <= 0 || c.SyncQueueSize <= 0:
		return fmt.Errorf("%w: sync_workers and sync_queue_size must be positive", ErrInvalidConfig)
	}

	switch c.StoreBackend {
	case BackendMemory:
	case BackendRedis:
		if c.RedisAddr == "" {
			return fmt.Errorf("%w: redis_addr is required for the redis backend", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown store_backend %q", ErrInvalidConfig, c.StoreBackend)
	}

	switch c.AIProvider {
	case ProviderAnthropic, ProviderOpenAI:
	default:
		return fmt.Errorf("%w: unknown ai_provider %q", ErrInvalidConfig, c.AIProvider)
	}
	return nil
}
