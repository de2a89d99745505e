package pitchctl

import "errors"

// Sentinel errors for pitchctl.
var (
	ErrUnexpectedStatus = errors.New("unexpected status")
	ErrReadForm         = errors.New("read pitch form")
	ErrSmokeFailed      = errors.New("smoke run failed")
)
