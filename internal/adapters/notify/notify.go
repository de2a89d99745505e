// Package notify delivers verification codes.
package notify

import (
	"context"
	"time"

	"github.com/okian/pitchgate/internal/domain/verification"
	"github.com/okian/pitchgate/pkg/logger"
)

var _ verification.Sender = (*LogSender)(nil)

// LogSender writes codes to the log instead of sending mail. The code itself
// is only logged at debug level.
type LogSender struct {
	logger logger.Logger
}

// NewLogSender returns a LogSender. A nil logger uses the global one.
func NewLogSender(l logger.Logger) *LogSender {
	if l == nil {
		l = logger.Get().Named("notify")
	}
	return &LogSender{logger: l}
}

// SendCode logs the delivery.
func (s *LogSender) SendCode(ctx context.Context, email string, c verification.Code) error {
	s.logger.Info(ctx, "verification code issued",
		logger.String("email", email),
		logger.String("expires_at", c.ExpiresAt.UTC().Format(time.RFC3339)))
	s.logger.Debug(ctx, "verification code value",
		logger.String("email", email),
		logger.String("code", c.Value))
	return nil
}
