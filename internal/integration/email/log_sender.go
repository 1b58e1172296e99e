package email

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/epiwatch/backend/internal/application/adapter"
)

// LogEmailSender writes emails to the log instead of delivering them. It is
// used when no Resend API key is configured.
type LogEmailSender struct {
	sent atomic.Int64
}

// NewLogEmailSender creates a new log-only email sender.
func NewLogEmailSender() *LogEmailSender {
	return &LogEmailSender{}
}

// Send implements the adapter.EmailSender interface.
func (l *LogEmailSender) Send(ctx context.Context, input adapter.SendEmailInput) (*adapter.SendEmailResult, error) {
	n := l.sent.Add(1)
	slog.InfoContext(ctx, "Email not delivered, no provider configured",
		"to", input.To,
		"subject", input.Subject,
	)
	return &adapter.SendEmailResult{MessageID: fmt.Sprintf("log-%d", n)}, nil
}

var _ adapter.EmailSender = (*LogEmailSender)(nil)
