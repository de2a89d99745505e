package scoring

import "errors"

// Sentinel errors for the scoring package.
var (
	ErrUnknownField = errors.New("unknown field")
)
