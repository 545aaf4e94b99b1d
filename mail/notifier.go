// Package mail delivers change notifications by email over SMTP.
package mail

import (
	"context"
	"time"

	"github.com/fwojciec/webcheck"
	gomail "github.com/wneessen/go-mail"
)

// DefaultPort is the SMTP submission port.
const DefaultPort = 587

// DefaultTimeout bounds connecting to and talking with the SMTP server.
const DefaultTimeout = 15 * time.Second

// Ensure Notifier implements webcheck.Notifier at compile time.
var _ webcheck.Notifier = (*Notifier)(nil)

// Notifier sends each notification as a multipart/alternative email with a
// plain text and an HTML part.
type Notifier struct {
	host     string
	from     string
	port     int
	username string
	password string
	timeout  time.Duration
	tls      gomail.TLSPolicy
}

// Option configures a Notifier.
type Option func(*Notifier)

// WithPort sets the SMTP port. Defaults to DefaultPort.
func WithPort(port int) Option {
	return func(n *Notifier) {
		n.port = port
	}
}

// WithAuth enables SMTP PLAIN authentication.
func WithAuth(username, password string) Option {
	return func(n *Notifier) {
		n.username = username
		n.password = password
	}
}

// WithTimeout sets the SMTP timeout. Defaults to DefaultTimeout.
func WithTimeout(d time.Duration) Option {
	return func(n *Notifier) {
		n.timeout = d
	}
}

// WithoutTLS disables STARTTLS, e.g. for a local relay.
func WithoutTLS() Option {
	return func(n *Notifier) {
		n.tls = gomail.NoTLS
	}
}

// NewNotifier creates a Notifier that relays through host and sends as from.
func NewNotifier(host, from string, opts ...Option) *Notifier {
	n := &Notifier{
		host:    host,
		from:    from,
		port:    DefaultPort,
		timeout: DefaultTimeout,
		tls:     gomail.TLSMandatory,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Notify sends n to recipients in a single message.
func (n *Notifier) Notify(ctx context.Context, notification webcheck.Notification, recipients []string) error {
	msg, err := NewMessage(n.from, notification, recipients)
	if err != nil {
		return err
	}

	opts := []gomail.Option{
		gomail.WithPort(n.port),
		gomail.WithTimeout(n.timeout),
		gomail.WithTLSPolicy(n.tls),
	}
	if n.username != "" {
		opts = append(opts,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(n.username),
			gomail.WithPassword(n.password),
		)
	}

	client, err := gomail.NewClient(n.host, opts...)
	if err != nil {
		return webcheck.WrapError(webcheck.EINVALID, err, "invalid SMTP configuration")
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return webcheck.WrapError(webcheck.ENOTIFY, err, "sending %q", notification.Subject)
	}
	return nil
}

// NewMessage builds the email for a notification.
func NewMessage(from string, notification webcheck.Notification, recipients []string) (*gomail.Msg, error) {
	if len(recipients) == 0 {
		return nil, webcheck.Errorf(webcheck.EINVALID, "no recipients")
	}

	msg := gomail.NewMsg()
	if err := msg.From(from); err != nil {
		return nil, webcheck.WrapError(webcheck.EINVALID, err, "invalid sender %q", from)
	}
	if err := msg.To(recipients...); err != nil {
		return nil, webcheck.WrapError(webcheck.EINVALID, err, "invalid recipients")
	}
	msg.Subject(notification.Subject)
	msg.SetDate()
	msg.SetMessageID()
	msg.SetBodyString(gomail.TypeTextPlain, notification.PlainBody)
	msg.AddAlternativeString(gomail.TypeTextHTML, notification.HTMLBody)

	return msg, nil
}
