package webcheck

import "context"

// Notification is a rendered change report.
type Notification struct {
	Subject   string
	PlainBody string
	HTMLBody  string
}

// Notifier delivers change reports.
type Notifier interface {
	// Notify sends n to every recipient. Returns ENOTIFY on delivery failure.
	Notify(ctx context.Context, n Notification, recipients []string) error
}
