package notify

import (
	"context"

	"github.com/resend/resend-go/v2"
)

// ResendSender sends email through the Resend API.
type ResendSender struct {
	client *resend.Client
}

// NewResendSender creates a ResendSender for apiKey.
func NewResendSender(apiKey string) *ResendSender {
	return &ResendSender{client: resend.NewClient(apiKey)}
}

// Send implements Sender.
func (s *ResendSender) Send(ctx context.Context, e Email) (string, error) {
	resp, err := s.client.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    e.From,
		To:      e.To,
		Subject: e.Subject,
		Html:    e.HTML,
		ReplyTo: e.ReplyTo,
	})
	if err != nil {
		return "", err
	}
	return resp.Id, nil
}
