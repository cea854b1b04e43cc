package mailer

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.uber.org/zap"
)

// Sender delivers a notification email. Delivery is fire-and-forget from the
// caller's point of view; a failed send is logged, never surfaced to the
// site visitor.
type Sender interface {
	Send(ctx context.Context, to, subject, body string) error
}

// SendGridSender implements Sender using the SendGrid API
type SendGridSender struct {
	apiKey      string
	fromName    string
	fromAddress string
	logger      *zap.Logger
}

// NewSendGridSender creates a new SendGrid-backed sender
func NewSendGridSender(apiKey, fromName, fromAddress string, log *zap.Logger) *SendGridSender {
	return &SendGridSender{
		apiKey:      apiKey,
		fromName:    fromName,
		fromAddress: fromAddress,
		logger:      log,
	}
}

// Send sends an email using SendGrid
func (s *SendGridSender) Send(ctx context.Context, to, subject, body string) error {
	if s.apiKey == "" {
		return fmt.Errorf("sendgrid api key is empty")
	}
	if to == "" {
		return fmt.Errorf("to address is empty")
	}

	fromEmail := mail.NewEmail(s.fromName, s.fromAddress)
	toEmail := mail.NewEmail("", to)

	plainTextContent := body
	htmlContent := fmt.Sprintf("<pre>%s</pre>", body)

	message := mail.NewSingleEmail(fromEmail, subject, toEmail, plainTextContent, htmlContent)

	client := sendgrid.NewSendClient(s.apiKey)
	response, err := client.Send(message)
	if err != nil {
		return fmt.Errorf("sendgrid send error: %w", err)
	}

	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid send failed: status=%d, body=%s", response.StatusCode, response.Body)
	}

	s.logger.Info("Notification mail sent",
		zap.Int("status", response.StatusCode),
		zap.String("to", to),
		zap.String("subject", subject))
	return nil
}
