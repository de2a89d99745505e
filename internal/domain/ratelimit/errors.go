package ratelimit

import "errors"

// ErrStore wraps window store failures.
var ErrStore = errors.New("rate limit store failed")
