package notify

import (
	"context"

	"github.com/hirebuddy/hirebuddy/internal/infrastructure/logging"
)

// Sender delivers one-time verification codes. SMS/email providers plug in
// behind this interface; the default implementation just logs the code.
type Sender interface {
	SendOTP(ctx context.Context, destination, code string) error
}

type LogSender struct {
	logger logging.Logger
}

func NewLogSender(logger logging.Logger) *LogSender {
	return &LogSender{logger: logger}
}

func (s *LogSender) SendOTP(ctx context.Context, destination, code string) error {
	s.logger.Info(logging.General, logging.ExternalService, "otp code issued", map[logging.ExtraKey]interface{}{
		"destination": destination,
		"code":        code,
	})
	return nil
}
