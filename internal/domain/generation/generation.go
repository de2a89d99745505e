// Package generation defines the contract for the pitch generation collaborator.
package generation

import (
	"context"
	"errors"

	"github.com/okian/pitchgate/internal/domain/model"
)

// Generator turns a validated request into pitches and follow-ups.
type Generator interface {
	Generate(ctx context.Context, req model.GenerationRequest) (model.Pitches, error)
	// Provider names the upstream service, e.g. "anthropic".
	Provider() string
}

// Outcome labels used for metrics and logs.
const (
	OutcomeOK          = "ok"
	OutcomeAuth        = "auth"
	OutcomeRateLimited = "rate_limited"
	OutcomeMalformed   = "malformed"
	OutcomeUpstream    = "upstream"
	OutcomeNetwork     = "network"
	OutcomeTimeout     = "timeout"
)

// Outcome maps a Generate error to its label. Unclassified errors count as
// upstream failures.
func Outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeOK
	case errors.Is(err, ErrTimeout):
		return OutcomeTimeout
	case errors.Is(err, ErrNetwork):
		return OutcomeNetwork
	case errors.Is(err, ErrUpstreamAuth):
		return OutcomeAuth
	case errors.Is(err, ErrUpstreamRateLimited):
		return OutcomeRateLimited
	case errors.Is(err, ErrUpstreamMalformed):
		return OutcomeMalformed
	default:
		return OutcomeUpstream
	}
}
