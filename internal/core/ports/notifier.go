package ports

import "context"

// Notifier sends customer-facing notifications from the notification
// service. Failures are transient from the consumer's point of view and
// propagate into the broker retry path.
type Notifier interface {
	SendEmail(ctx context.Context, to, subject, body string) error
	SendSMS(ctx context.Context, to, body string) error
}
