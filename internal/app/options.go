package service

import (
	"github.com/redis/go-redis/v9"

	"github.com/okian/pitchgate/internal/domain/generation"
	"github.com/okian/pitchgate/internal/domain/verification"
	"github.com/okian/pitchgate/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithGenerator replaces the configured generation provider.
func WithGenerator(g generation.Generator) Option {
	return func(s *Service) { s.generator = g }
}

// WithContactUpserter replaces the CRM client.
func WithContactUpserter(c ContactUpserter) Option {
	return func(s *Service) { s.crm = c }
}

// WithSender replaces the verification code sender.
func WithSender(snd verification.Sender) Option {
	return func(s *Service) { s.sender = snd }
}

// WithRedisClient supplies the client used by the redis backend.
func WithRedisClient(c redis.UniversalClient) Option {
	return func(s *Service) { s.redis = c }
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}
