package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/okian/pitchgate/internal/domain/generation"
	"github.com/okian/pitchgate/internal/domain/verification"
)

// ErrBadRequest marks a body that could not be decoded.
var ErrBadRequest = errors.New("bad request")

// Error codes returned in the code field of error bodies.
const (
	codeBadRequest         = "bad_request"
	codeMethodNotAllowed   = "method_not_allowed"
	codeRateLimited        = "rate_limited"
	codeValidation         = "missing_required_fields"
	codeInsufficientScore  = "insufficient_score"
	codeUpstreamAuth       = "upstream_auth"
	codeUpstreamRateLimit  = "upstream_rate_limited"
	codeUpstreamMalformed  = "upstream_malformed"
	codeUpstream           = "upstream_error"
	codeNetwork            = "network_error"
	codeTimeout            = "timeout"
	codeInvalidEmail       = "invalid_email"
	codeCodeRequired       = "code_required"
	codeCodeNotFound       = "code_not_found"
	codeCodeExpired        = "code_expired"
	codeCodeMismatch       = "code_mismatch"
	codeInvalidAction      = "invalid_action"
	codeInternal           = "internal"
	msgInvalidBody         = "Invalid request body"
	msgGenerateRateLimited = "Rate limit exceeded. Please try again tomorrow."
	msgVerifyRateLimited   = "Too many verification attempts. Please slow down."
	msgGenerateFailed      = "Failed to generate pitches. Please try again."
	msgValidationFailed    = "Validation failed"
	msgScoreTooLow         = "Pitch score too low"
	msgInvalidEmail        = "Valid email address is required"
	msgCodeRequired        = "Verification code is required"
	msgCodeNotFound        = "No verification code found. Please request a new one."
	msgCodeExpired         = "Verification code has expired. Please request a new one."
	msgCodeMismatch        = "Invalid verification code. Please try again."
	msgInvalidAction       = `Invalid action. Use "request" or "verify"`
	msgVerificationFailed  = "An error occurred during verification"
)

func wrapKind(kind, err error) error {
	return fmt.Errorf("%w: %w", kind, err)
}

type apiError struct {
	status int
	code   string
	msg    string
}

// generationError maps a generation failure to its response. Provider text
// never appears in msg.
func generationError(err error) apiError {
	switch {
	case errors.Is(err, generation.ErrTimeout):
		return apiError{http.StatusGatewayTimeout, codeTimeout, "Pitch generation timed out. Please try again."}
	case errors.Is(err, generation.ErrNetwork):
		return apiError{http.StatusServiceUnavailable, codeNetwork, "Could not reach the AI provider. Please try again."}
	case errors.Is(err, generation.ErrUpstreamRateLimited):
		return apiError{http.StatusServiceUnavailable, codeUpstreamRateLimit, "The AI provider is busy. Please try again in a few minutes."}
	case errors.Is(err, generation.ErrUpstreamAuth):
		return apiError{http.StatusInternalServerError, codeUpstreamAuth, msgGenerateFailed}
	case errors.Is(err, generation.ErrUpstreamMalformed):
		return apiError{http.StatusInternalServerError, codeUpstreamMalformed, msgGenerateFailed}
	default:
		return apiError{http.StatusInternalServerError, codeUpstream, msgGenerateFailed}
	}
}

// verificationError maps a verification failure to its response.
func verificationError(err error) apiError {
	switch {
	case errors.Is(err, verification.ErrInvalidEmail):
		return apiError{http.StatusBadRequest, codeInvalidEmail, msgInvalidEmail}
	case errors.Is(err, verification.ErrCodeRequired):
		return apiError{http.StatusBadRequest, codeCodeRequired, msgCodeRequired}
	case errors.Is(err, verification.ErrNotFound):
		return apiError{http.StatusNotFound, codeCodeNotFound, msgCodeNotFound}
	case errors.Is(err, verification.ErrExpired):
		return apiError{http.StatusGone, codeCodeExpired, msgCodeExpired}
	case errors.Is(err, verification.ErrMismatch):
		return apiError{http.StatusBadRequest, codeCodeMismatch, msgCodeMismatch}
	default:
		return apiError{http.StatusInternalServerError, codeInternal, msgVerificationFailed}
	}
}
