package crm

import "errors"

var (
	// ErrNotConfigured is returned when no API key is set.
	ErrNotConfigured = errors.New("crm credentials not configured")
	// ErrRejected is returned for a 4xx reply other than 429. It is not retried.
	ErrRejected = errors.New("crm rejected contact")
	// ErrUnavailable is returned when retries are exhausted.
	ErrUnavailable = errors.New("crm unavailable")
)
