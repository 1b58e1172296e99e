// Package email delivers reminder emails from the outbox.
package email

import (
	"context"
	"fmt"
	"strings"

	"github.com/resend/resend-go/v2"

	"github.com/epiwatch/backend/internal/application/adapter"
	domainerror "github.com/epiwatch/backend/internal/domain/error"
)

// ResendClient implements the adapter.EmailSender interface using Resend.
type ResendClient struct {
	client *resend.Client
	from   string
}

// NewResendClient creates a new Resend client.
func NewResendClient(apiKey, fromName, fromEmail string) *ResendClient {
	return &ResendClient{
		client: resend.NewClient(apiKey),
		from:   fmt.Sprintf("%s <%s>", fromName, fromEmail),
	}
}

// Send sends an email via Resend.
func (c *ResendClient) Send(ctx context.Context, input adapter.SendEmailInput) (*adapter.SendEmailResult, error) {
	resp, err := c.client.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    c.from,
		To:      []string{input.To},
		Subject: input.Subject,
		Html:    input.HTML,
		Text:    input.Text,
	})
	if err != nil {
		return nil, classifyDeliveryError(err)
	}
	return &adapter.SendEmailResult{MessageID: resp.Id}, nil
}

var (
	retryableMarkers = []string{"429", "rate limit", "timeout", "500", "502", "503", "504"}
	permanentMarkers = []string{"400", "401", "403", "404", "422", "unauthorized", "forbidden", "validation", "invalid", "bad request"}
)

// isPermanent reports whether a provider error will fail again on retry.
// Rate limits and server errors are retryable; other client errors are not.
func isPermanent(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	for _, marker := range retryableMarkers {
		if strings.Contains(msg, marker) {
			return false
		}
	}
	for _, marker := range permanentMarkers {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}

func classifyDeliveryError(err error) error {
	if isPermanent(err) {
		return domainerror.NewNotificationError(domainerror.ErrCodePermanentDeliveryFailure, "email rejected by provider", err)
	}
	return domainerror.NewNotificationError(domainerror.ErrCodeTemporaryDeliveryFailure, "email provider unavailable", err)
}

var _ adapter.EmailSender = (*ResendClient)(nil)
