package notify

import (
	"context"
	"log/slog"

	"github.com/aussiebroadwan/passageqa/pkg/slogx"
)

// LogSender writes messages to the log instead of sending them. It exists
// for local development and end to end tests, where the code is read back
// out of the container logs. Never enable it in production.
type LogSender struct {
	Logger *slog.Logger
}

func (s *LogSender) Send(ctx context.Context, to, subject, body string) bool {
	logger := s.Logger
	if logger == nil {
		logger = slogx.FromContext(ctx)
	}
	logger.InfoContext(ctx, "notification (log driver)",
		"to", to,
		"subject", subject,
		"body", body,
	)
	return true
}
