package generation

import "errors"

// Error kinds a Generator reports. Implementations wrap the provider error
// with exactly one of these.
var (
	ErrUpstreamAuth        = errors.New("upstream authentication failed")
	ErrUpstreamRateLimited = errors.New("upstream rate limited")
	ErrUpstreamMalformed   = errors.New("upstream response malformed")
	ErrUpstreamGeneric     = errors.New("upstream error")
	ErrNetwork             = errors.New("network error")
	ErrTimeout             = errors.New("generation timed out")
)
