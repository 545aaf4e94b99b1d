package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/webcheck"
)

// Ensure LoggingNotifier implements webcheck.Notifier.
var _ webcheck.Notifier = (*LoggingNotifier)(nil)

// LoggingNotifier wraps a Notifier with logging.
type LoggingNotifier struct {
	next   webcheck.Notifier
	logger *slog.Logger
}

// NewLoggingNotifier creates a new LoggingNotifier.
func NewLoggingNotifier(next webcheck.Notifier, logger *slog.Logger) *LoggingNotifier {
	return &LoggingNotifier{next: next, logger: logger}
}

// Notify delegates to the wrapped notifier and logs the outcome.
func (n *LoggingNotifier) Notify(ctx context.Context, notification webcheck.Notification, recipients []string) (err error) {
	defer func(begin time.Time) {
		n.logger.Info("notify",
			"subject", notification.Subject,
			"recipients", len(recipients),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return n.next.Notify(ctx, notification, recipients)
}
