package model

import "time"

// ContactSync is a queued request to upsert a verified contact into the CRM.
type ContactSync struct {
	// JobID identifies the job in logs.
	JobID string
	// Email is the verified, lowercased address.
	Email string
	// Form is the pitch form submitted with the verification, if any.
	Form *PitchForm
	// VerifiedAt is when the code was accepted.
	VerifiedAt time.Time
}
