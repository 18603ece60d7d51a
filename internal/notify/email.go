package notify

import (
	"context"
	"strings"

	"github.com/sextosistema/agency-platform/pkg/logging"
)

// EmailSender defines the interface for sending emails.
// Implementations can be swapped (SendGrid, SES, log-only) without changing
// callers.
type EmailSender interface {
	Send(ctx context.Context, msg Email) error
}

// Email represents a message to be sent.
type Email struct {
	To      []string
	Subject string
	HTML    string
	Text    string // Plain text fallback
	ReplyTo string // Optional, lets the admin reply straight to the lead
}

// LogSender is the degraded-mode sender used when no provider credential is
// configured. It logs the message and reports success so a missing API key
// never blocks the intake pipeline.
type LogSender struct {
	logger *logging.Logger
}

// NewLogSender creates a sender that logs instead of delivering.
func NewLogSender(logger *logging.Logger) *LogSender {
	if logger == nil {
		logger = logging.Default()
	}
	return &LogSender{logger: logger}
}

// Send logs the email and returns nil.
func (s *LogSender) Send(ctx context.Context, msg Email) error {
	s.logger.Info("email provider not configured, logging instead of sending",
		"to", strings.Join(msg.To, ", "),
		"subject", msg.Subject,
		"reply_to", msg.ReplyTo,
		"text_preview", truncate(msg.Text, 120),
	)
	return nil
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}

var _ EmailSender = (*LogSender)(nil)
