package verification

import (
	"io"
	"time"
)

// Option configures a Service.
type Option func(*Service)

// WithTTL sets the code lifetime.
func WithTTL(ttl time.Duration) Option {
	return func(s *Service) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithRandom overrides the randomness source used for codes.
func WithRandom(r io.Reader) Option {
	return func(s *Service) {
		if r != nil {
			s.random = r
		}
	}
}

// WithSender delivers every issued code through sender.
func WithSender(sender Sender) Option {
	return func(s *Service) {
		s.sender = sender
	}
}
