package verification

import "errors"

// Sentinel errors for code issue and verification.
var (
	ErrNotFound     = errors.New("verification code not found")
	ErrExpired      = errors.New("verification code expired")
	ErrMismatch     = errors.New("verification code mismatch")
	ErrInvalidEmail = errors.New("invalid email address")
	ErrCodeRequired = errors.New("verification code required")
	ErrStore        = errors.New("verification store failed")
	ErrDelivery     = errors.New("verification code delivery failed")
)
