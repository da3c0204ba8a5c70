package auth

import (
	"context"
)

// Email is the templated notification payload handed to the dispatcher.
type Email struct {
	Subject  string         `json:"subject"`
	Template string         `json:"template"`
	Fields   map[string]any `json:"fields,omitempty"`
	To       []string       `json:"to"`
}

// Mailer dispatches notifications. Delivery retries and failures are the
// dispatcher's own domain; the verification workflow treats Send as
// fire-and-forget and never rolls back persisted state on a send failure.
type Mailer interface {
	Send(ctx context.Context, msg Email) error
}

// LogMailer logs notifications instead of delivering them. It is the
// default wiring for local development and tests.
type LogMailer struct {
	logger Logger
}

var _ Mailer = (*LogMailer)(nil)

// NewLogMailer creates a LogMailer.
func NewLogMailer(logger Logger) *LogMailer {
	if logger == nil {
		logger = defLogger{}
	}
	return &LogMailer{logger: logger}
}

// Send logs the notification and reports success.
func (m *LogMailer) Send(_ context.Context, msg Email) error {
	m.logger.Info(
		"====== SENDING EMAIL NOTIFICATION ======",
		"to", msg.To,
		"subject", msg.Subject,
		"template", msg.Template,
		"link", msg.Fields["link"],
	)
	return nil
}
