package config_test

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/okian/pitchgate/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()
		clearConfigEnvVars()

		convey.Convey("When loading config with defaults only", func() {
			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
				convey.So(cfg.MinScore, convey.ShouldEqual, 50)
				convey.So(cfg.RateLimit, convey.ShouldEqual, 5)
				convey.So(cfg.RateLimitWindow, convey.ShouldEqual, 24*time.Hour)
				convey.So(cfg.CodeTTL, convey.ShouldEqual, 10*time.Minute)
				convey.So(cfg.StoreBackend, convey.ShouldEqual, config.BackendMemory)
				convey.So(cfg.AIProvider, convey.ShouldEqual, config.ProviderAnthropic)
				convey.So(cfg.IsDevelopment(), convey.ShouldBeFalse)
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("PITCHGATE_ADDR", ":8080")
			_ = os.Setenv("PITCHGATE_MIN_SCORE", "60")
			_ = os.Setenv("PITCHGATE_CODE_TTL", "5m")
			_ = os.Setenv("PITCHGATE_ENVIRONMENT", "development")
			_ = os.Setenv("PITCHGATE_AI_PROVIDER", "openai")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.MinScore, convey.ShouldEqual, 60)
				convey.So(cfg.CodeTTL, convey.ShouldEqual, 5*time.Minute)
				convey.So(cfg.IsDevelopment(), convey.ShouldBeTrue)
				convey.So(cfg.AIProvider, convey.ShouldEqual, config.ProviderOpenAI)
			})
		})

		convey.Convey("When loading config with both file and environment variables", func() {
			tmpFile := createTempConfigFile(`
addr: ":9090"
rate_limit: 10
store_backend: redis
redis_addr: "cache:6379"
sync_workers: 4
`)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("PITCHGATE_CONFIG", tmpFile)
			_ = os.Setenv("PITCHGATE_SYNC_WORKERS", "8")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then environment variables should override file values", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9090")
				convey.So(cfg.RateLimit, convey.ShouldEqual, 10)
				convey.So(cfg.StoreBackend, convey.ShouldEqual, config.BackendRedis)
				convey.So(cfg.RedisAddr, convey.ShouldEqual, "cache:6379")
				convey.So(cfg.SyncWorkers, convey.ShouldEqual, 8)
				convey.So(cfg.SyncQueueSize, convey.ShouldEqual, 1024)
			})
		})

		convey.Convey("When loading config with invalid YAML file", func() {
			tmpFile := createTempConfigFile(`invalid: yaml: content: [`)
			defer func() { _ = os.Remove(tmpFile) }()
			_ = os.Setenv("PITCHGATE_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a load error", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with non-existent file", func() {
			_ = os.Setenv("PITCHGATE_CONFIG", "/non/existent/file.yaml")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with invalid numeric environment variables", func() {
			_ = os.Setenv("PITCHGATE_MIN_SCORE", "not_a_number")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with YAML file containing an empty addr", func() {
			tmpFile := createTempConfigFile(`
addr: ""
`)
			defer func() { _ = os.Remove(tmpFile) }()
			_ = os.Setenv("PITCHGATE_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return validation error for empty addr", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(err.Error(), convey.ShouldContainSubstring, "addr must not be empty")
				convey.So(cfg, convey.ShouldBeNil)
			})
		})
	})
}

func TestConfigValidate(t *testing.T) {
	convey.Convey("Given a default config", t, func() {
		cfg := config.New(context.Background())
		convey.So(cfg.Validate(), convey.ShouldBeNil)

		convey.Convey("When min_score is out of range", func() {
			cfg.MinScore = 101
			convey.So(errors.Is(cfg.Validate(), config.ErrInvalidConfig), convey.ShouldBeTrue)
		})

		convey.Convey("When the store backend is unknown", func() {
			cfg.StoreBackend = "etcd"
			convey.So(cfg.Validate(), convey.ShouldNotBeNil)
		})

		convey.Convey("When redis is selected without an address", func() {
			cfg.StoreBackend = config.BackendRedis
			cfg.RedisAddr = ""
			convey.So(cfg.Validate(), convey.ShouldNotBeNil)
		})

		convey.Convey("When the provider is unknown", func() {
			cfg.AIProvider = "cohere"
			convey.So(cfg.Validate(), convey.ShouldNotBeNil)
		})

		convey.Convey("When the rate limit is zero", func() {
			cfg.RateLimit = 0
			convey.So(cfg.Validate(), convey.ShouldNotBeNil)
		})
	})
}

func clearConfigEnvVars() {
	for _, envVar := range []string{
		"PITCHGATE_CONFIG",
		"PITCHGATE_ADDR",
		"PITCHGATE_MIN_SCORE",
		"PITCHGATE_CODE_TTL",
		"PITCHGATE_ENVIRONMENT",
		"PITCHGATE_AI_PROVIDER",
		"PITCHGATE_SYNC_WORKERS",
	} {
		_ = os.Unsetenv(envVar)
	}
}

func createTempConfigFile(content string) string {
	tmpFile, err := os.CreateTemp("", "pitchgate-config-*.yaml")
	if err != nil {
		panic(err)
	}
	if _, err := tmpFile.WriteString(content); err != nil {
		panic(err)
	}
	if err := tmpFile.Close(); err != nil {
		panic(err)
	}
	return tmpFile.Name()
}
