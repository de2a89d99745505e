package llm

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/okian/pitchgate/internal/domain/generation"
)

var (
	// ErrUnknownProvider is returned for an unsupported provider name.
	ErrUnknownProvider = errors.New("unknown ai provider")
	// ErrMissingAPIKey is returned when the selected provider has no key.
	ErrMissingAPIKey = errors.New("missing api key")
)

var (
	authMarkers      = []string{"401", "403", "unauthorized", "authentication", "invalid x-api-key", "invalid api key", "incorrect api key", "permission"}
	rateLimitMarkers = []string{"429", "529", "rate limit", "rate_limit", "overloaded", "too many requests", "quota"}
)

// classify wraps err with the generation error kind it represents.
func classify(ctx context.Context, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("%w: %w", generation.ErrTimeout, err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		if netErr.Timeout() {
			return fmt.Errorf("%w: %w", generation.ErrTimeout, err)
		}
		return fmt.Errorf("%w: %w", generation.ErrNetwork, err)
	}
	if errors.Is(err, context.Canceled) {
		return fmt.Errorf("%w: %w", generation.ErrNetwork, err)
	}

	msg := strings.ToLower(err.Error())
	switch {
	case containsAny(msg, authMarkers):
		return fmt.Errorf("%w: %w", generation.ErrUpstreamAuth, err)
	case containsAny(msg, rateLimitMarkers):
		return fmt.Errorf("%w: %w", generation.ErrUpstreamRateLimited, err)
	default:
		return fmt.Errorf("%w: %w", generation.ErrUpstreamGeneric, err)
	}
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
