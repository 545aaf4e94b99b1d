package slog_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/fwojciec/webcheck"
	"github.com/fwojciec/webcheck/mock"
	wcslog "github.com/fwojciec/webcheck/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingNotifier_Notify(t *testing.T) {
	t.Parallel()

	t.Run("logs subject and recipient count", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		var gotRecipients []string
		inner := &mock.Notifier{
			NotifyFn: func(ctx context.Context, n webcheck.Notification, recipients []string) error {
				gotRecipients = recipients
				return nil
			},
		}

		notifier := wcslog.NewLoggingNotifier(inner, logger)
		err := notifier.Notify(context.Background(), webcheck.Notification{
			Subject: "Web Check - Site changed prices",
		}, []string{"a@example.com", "b@example.com"})

		require.NoError(t, err)
		assert.Equal(t, []string{"a@example.com", "b@example.com"}, gotRecipients)
		output := buf.String()
		assert.Contains(t, output, "msg=notify")
		assert.Contains(t, output, "subject=\"Web Check - Site changed prices\"")
		assert.Contains(t, output, "recipients=2")
	})

	t.Run("returns and logs delivery error", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Notifier{
			NotifyFn: func(ctx context.Context, n webcheck.Notification, recipients []string) error {
				return errors.New("smtp down")
			},
		}

		err := wcslog.NewLoggingNotifier(inner, logger).Notify(context.Background(), webcheck.Notification{}, nil)

		require.EqualError(t, err, "smtp down")
		assert.Contains(t, buf.String(), "err=\"smtp down\"")
	})
}
