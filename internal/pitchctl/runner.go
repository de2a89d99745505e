package pitchctl

import (
	"context"
	"fmt"
	"time"

	"github.com/okian/pitchgate/internal/domain/scoring"
	"github.com/okian/pitchgate/pkg/logger"
)

// Run executes a smoke run against a live server.
func Run(ctx context.Context, config *Config) (*Stats, error) {
	stats := &Stats{StartTime: time.Now()}
	log := logger.Get()
	client := newHTTPClient(config.Timeout)

	log.Info(ctx, "starting pitchgate smoke run",
		logger.String("baseURL", config.BaseURL),
		logger.Int("requests", config.Requests),
		logger.Int("workers", config.Workers),
		logger.Duration("timeout", config.Timeout),
		logger.Bool("generate", config.Generate))

	// Step 1: Check service health
	if err := client.getJSON(ctx, config.BaseURL+"/healthz", nil); err != nil {
		return stats, fmt.Errorf("service health check failed: %w", err)
	}

	// Step 2: Rule table must match this build
	var table scoring.Table
	if err := client.getJSON(ctx, config.BaseURL+"/api/rules", &table); err != nil {
		return stats, fmt.Errorf("rules: %w", err)
	}
	if table.RulesVersion != scoring.RulesVersion {
		log.Warn(ctx, "server rules differ from this build",
			logger.String("server", table.RulesVersion),
			logger.String("local", scoring.RulesVersion))
	}

	// Step 3: Provider status
	var status StatusResponse
	if err := client.getJSON(ctx, config.BaseURL+"/api/generate", &status); err != nil {
		return stats, fmt.Errorf("generate status: %w", err)
	}
	log.Info(ctx, "generation provider",
		logger.String("provider", status.Provider),
		logger.Int("rateLimit", status.RateLimit))

	// Step 4: Score previews concurrently
	submitScores(ctx, config, sampleForms(config.Requests), stats)

	// Step 5: Verification round trip
	if err := verifyRoundTrip(ctx, client, config, stats); err != nil {
		return stats, err
	}

	// Step 6: Optional generation
	if config.Generate {
		if err := client.postJSON(ctx, config.BaseURL+"/api/generate", SampleForm(), nil); err != nil {
			return stats, fmt.Errorf("generate: %w", err)
		}
		stats.Generated = true
	}

	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)
	displayFinalStats(ctx, stats)

	if stats.ScoresFailed > 0 {
		return stats, fmt.Errorf("%w: %d of %d score previews failed", ErrSmokeFailed, stats.ScoresFailed, stats.ScoresSubmitted)
	}
	log.Info(ctx, "smoke run completed successfully")
	return stats, nil
}

// verifyRoundTrip requests a code and, when the server echoes it in
// development, verifies it.
func verifyRoundTrip(ctx context.Context, client *HTTPClient, config *Config, stats *Stats) error {
	email := config.Email
	if email == "" {
		email = smokeEmail()
	}
	url := config.BaseURL + "/api/verify-email"

	var issued VerifyResponse
	if err := client.postJSON(ctx, url, map[string]string{"email": email, "action": "request"}, &issued); err != nil {
		return fmt.Errorf("request code: %w", err)
	}
	stats.CodeRequested = true
	if issued.Code == "" {
		logger.Get().Info(ctx, "server does not echo codes; skipping verify step")
		return nil
	}

	var verified VerifyResponse
	body := map[string]interface{}{"email": email, "action": "verify", "code": issued.Code, "formData": SampleForm()}
	if err := client.postJSON(ctx, url, body, &verified); err != nil {
		return fmt.Errorf("verify code: %w", err)
	}
	stats.EmailVerified = verified.Verified
	return nil
}

func displayFinalStats(ctx context.Context, stats *Stats) {
	var successRate float64
	if stats.ScoresSubmitted > 0 {
		successRate = float64(stats.ScoresSuccessful) / float64(stats.ScoresSubmitted) * PercentageMultiplier
	}
	logger.Get().Info(ctx, "final statistics",
		logger.Int("scoresSubmitted", stats.ScoresSubmitted),
		logger.Int("scoresSuccessful", stats.ScoresSuccessful),
		logger.Int("scoresFailed", stats.ScoresFailed),
		logger.Bool("codeRequested", stats.CodeRequested),
		logger.Bool("emailVerified", stats.EmailVerified),
		logger.Bool("generated", stats.Generated),
		logger.Duration("duration", stats.Duration),
		logger.Float64("successRate", successRate))
}
