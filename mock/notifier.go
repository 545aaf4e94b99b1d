package mock

import (
	"context"

	"github.com/fwojciec/webcheck"
)

var _ webcheck.Notifier = (*Notifier)(nil)

// Notifier is a mock implementation of webcheck.Notifier.
type Notifier struct {
	NotifyFn func(ctx context.Context, n webcheck.Notification, recipients []string) error
}

func (n *Notifier) Notify(ctx context.Context, notification webcheck.Notification, recipients []string) error {
	return n.NotifyFn(ctx, notification, recipients)
}
