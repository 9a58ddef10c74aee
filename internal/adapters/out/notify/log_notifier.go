// Package notify holds notification channel adapters. The only current
// implementation writes to the log; real email and SMS gateways plug in
// behind the same port.
package notify

import (
	"context"
	"log/slog"
)

// LogNotifier implements ports.Notifier by logging the notification
// instead of delivering it. Stands in for the email and SMS gateways in
// development and test environments.
type LogNotifier struct {
	logger *slog.Logger
}

// NewLogNotifier creates a notifier that records notifications in the log.
func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger.With("component", "LogNotifier")}
}

// SendEmail logs the email that would have been sent.
func (n *LogNotifier) SendEmail(ctx context.Context, to, subject, body string) error {
	n.logger.InfoContext(ctx, "email notification",
		"to", to, "subject", subject, "body", body)
	return nil
}

// SendSMS logs the SMS that would have been sent.
func (n *LogNotifier) SendSMS(ctx context.Context, to, body string) error {
	n.logger.InfoContext(ctx, "sms notification", "to", to, "body", body)
	return nil
}
