// Package pitchctl implements the pitchctl command line tool: offline pitch
// scoring and a smoke run against a live server.
package pitchctl

import "time"

// Config holds configuration for a smoke run.
type Config struct {
	BaseURL  string        // Base URL of the service
	Requests int           // Number of score previews to submit
	Workers  int           // Number of concurrent workers
	Timeout  time.Duration // HTTP request timeout
	Email    string        // Address used for the verification round trip
	Generate bool          // Also call POST /api/generate (spends rate limit and tokens)
	Verbose  bool          // Enable verbose logging
}

// Stats holds smoke run statistics.
type Stats struct {
	ScoresSubmitted  int
	ScoresSuccessful int
	ScoresFailed     int
	CodeRequested    bool
	EmailVerified    bool
	Generated        bool
	StartTime        time.Time
	EndTime          time.Time
	Duration         time.Duration
}

// StatusResponse is the body of GET /api/generate.
type StatusResponse struct {
	Status    string `json:"status"`
	Provider  string `json:"provider"`
	RateLimit int    `json:"rateLimit"`
}

// VerifyResponse is the body of a successful /api/verify-email call.
type VerifyResponse struct {
	Success  bool   `json:"success"`
	Verified bool   `json:"verified"`
	Message  string `json:"message"`
	Code     string `json:"code"`
}
